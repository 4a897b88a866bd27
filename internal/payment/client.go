package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/fitlife-pro/fitlife/internal/config"
	"github.com/fitlife-pro/fitlife/pkg/version"
)

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 64 << 10

// Preference is a checkout preference request.
type Preference struct {
	Items             []Item   `json:"items"`
	Payer             Payer    `json:"payer"`
	BackURLs          BackURLs `json:"back_urls"`
	AutoReturn        string   `json:"auto_return,omitempty"`
	ExternalReference string   `json:"external_reference"`
	NotificationURL   string   `json:"notification_url,omitempty"`
}

// Item is one checkout line.
type Item struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id,omitempty"`
}

// Payer identifies the buyer.
type Payer struct {
	Email string `json:"email,omitempty"`
}

// BackURLs are where the buyer returns after checkout.
type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// PreferenceResponse is the part of a created preference the app needs.
type PreferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point,omitempty"`
}

// Payment is the part of a payment resource the webhook reads.
type Payment struct {
	ID                ResourceID `json:"id"`
	Status            string     `json:"status"`
	StatusDetail      string     `json:"status_detail"`
	Description       string     `json:"description"`
	ExternalReference string     `json:"external_reference"`
	TransactionAmount float64    `json:"transaction_amount"`
	DateApproved      *time.Time `json:"date_approved"`
}

// Payment statuses this service acts on.
const (
	StatusApproved = "approved"
)

// Client is a minimal Mercado Pago REST client with bearer auth and
// client-side rate limiting.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter

	mu           sync.Mutex
	requestCount int
}

// NewClient creates a client from configuration. An empty access token
// yields ErrNotConfigured.
func NewClient(cfg config.PaymentConfig) (*Client, error) {
	if cfg.AccessToken == "" {
		return nil, ErrNotConfigured
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultMercadoPagoURL
	}

	rps := cfg.RateLimit
	if rps <= 0 {
		rps = config.DefaultPaymentRateLimit
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = 30 * time.Second

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// CreatePreference creates a checkout preference.
func (c *Client) CreatePreference(ctx context.Context, pref *Preference) (*PreferenceResponse, error) {
	var out PreferenceResponse
	if err := c.do(ctx, http.MethodPost, "/checkout/preferences", pref, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPayment fetches a payment by id.
func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
	var out Payment
	if err := c.do(ctx, http.MethodGet, "/v1/payments/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// requests returns how many requests the client has sent.
func (c *Client) requests() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requestCount
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	c.requestCount++
	c.mu.Unlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mercadopago %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       jsonBody(raw),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// jsonBody keeps a JSON error body as is and quotes anything else.
func jsonBody(raw []byte) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	if json.Valid(raw) {
		return raw
	}
	b, _ := json.Marshal(string(raw))
	return b
}
