package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitlife-pro/fitlife/internal/db"
	"github.com/fitlife-pro/fitlife/internal/log"
	"github.com/fitlife-pro/fitlife/internal/models"
	"github.com/fitlife-pro/fitlife/internal/telemetry"
)

// Service creates checkouts and applies payment notifications.
type Service struct {
	client    *Client
	db        *db.DB
	telemetry telemetry.Client
	publicURL string
	now       func() time.Time
}

// NewService creates the payment service. client may be nil when payments
// are not configured; checkout and webhook calls then fail with
// ErrNotConfigured.
func NewService(client *Client, database *db.DB, tc telemetry.Client, publicURL string) *Service {
	if tc == nil {
		tc = telemetry.Noop()
	}
	return &Service{
		client:    client,
		db:        database,
		telemetry: tc,
		publicURL: strings.TrimRight(publicURL, "/"),
		now:       time.Now,
	}
}

// Enabled reports whether a Mercado Pago client is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.client != nil
}

// CheckoutRequest is the app's subscription purchase request.
type CheckoutRequest struct {
	Plan      string `json:"plan"`
	UserEmail string `json:"userEmail"`
	UserID    string `json:"userId"`
}

// Checkout is what the app needs to redirect the buyer.
type Checkout struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// CreateCheckout creates a checkout preference for the requested tier.
func (s *Service) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	tier, err := LookupTier(req.Plan)
	if err != nil {
		return nil, err
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidRequest)
	}
	if s.client == nil {
		return nil, ErrNotConfigured
	}

	pref := &Preference{
		Items: []Item{{
			Title:      tier.Title,
			Quantity:   1,
			UnitPrice:  tier.Price,
			CurrencyID: CurrencyBRL,
		}},
		Payer: Payer{Email: strings.TrimSpace(req.UserEmail)},
		BackURLs: BackURLs{
			Success: s.publicURL + "/payment/success",
			Failure: s.publicURL + "/payment/failure",
			Pending: s.publicURL + "/payment/pending",
		},
		AutoReturn:        StatusApproved,
		ExternalReference: userID,
		NotificationURL:   s.publicURL + "/api/webhook-mercadopago",
	}

	resp, err := s.client.CreatePreference(ctx, pref)
	if err != nil {
		return nil, err
	}

	s.telemetry.TrackCheckoutCreated(userID, tier.Plan)
	return &Checkout{ID: resp.ID, InitPoint: resp.InitPoint}, nil
}

// Notification is a Mercado Pago webhook body.
type Notification struct {
	Type   string `json:"type"`
	Action string `json:"action,omitempty"`
	Data   struct {
		ID ResourceID `json:"id"`
	} `json:"data"`
}

// WebhookResult describes what a notification did.
type WebhookResult struct {
	PaymentID string
	Status    string
	UserID    string
	Plan      string
	Activated bool
}

// HandleWebhook applies a notification. Only approved payments change
// state; everything else is acknowledged without side effects.
func (s *Service) HandleWebhook(ctx context.Context, n Notification) (*WebhookResult, error) {
	if n.Type != "payment" {
		return &WebhookResult{}, nil
	}

	paymentID := strings.TrimSpace(n.Data.ID.String())
	if paymentID == "" {
		return nil, fmt.Errorf("%w: data.id is required", ErrInvalidRequest)
	}
	if s.client == nil {
		return nil, ErrNotConfigured
	}

	p, err := s.client.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	result := &WebhookResult{
		PaymentID: paymentID,
		Status:    p.Status,
		UserID:    p.ExternalReference,
	}
	if p.Status != StatusApproved {
		return result, nil
	}

	if result.UserID == "" {
		log.Warnf("payment %s approved without external reference, ignoring", paymentID)
		return result, nil
	}

	result.Plan = PlanFromDescription(p.Description)
	err = s.db.WithContext(ctx).ActivateSubscription(result.UserID, result.Plan, s.now().UTC())
	if errors.Is(err, db.ErrNotFound) {
		log.Warnf("payment %s approved for unknown user %s, ignoring", paymentID, result.UserID)
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	result.Activated = true
	log.Printf("subscription %s activated for user %s", result.Plan, result.UserID)
	s.telemetry.TrackSubscriptionActivated(result.UserID, result.Plan)
	return result, nil
}

// Subscription is the subscription state of a user.
type Subscription struct {
	UserID string     `json:"userId"`
	Plan   string     `json:"subscription"`
	Status string     `json:"subscription_status"`
	Since  *time.Time `json:"subscription_date"`
	Active bool       `json:"active"`
}

// Subscription reads a user's subscription. Unknown users return
// db.ErrNotFound.
func (s *Service) Subscription(ctx context.Context, userID string) (*Subscription, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidRequest)
	}
	user, err := s.db.WithContext(ctx).GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, db.ErrNotFound
	}
	return subscriptionOf(user), nil
}

func subscriptionOf(u *models.User) *Subscription {
	return &Subscription{
		UserID: u.ID,
		Plan:   u.Subscription,
		Status: u.SubscriptionStatus,
		Since:  u.SubscriptionDate,
		Active: u.IsSubscribed(),
	}
}
