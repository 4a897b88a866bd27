package payment

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned when no access token is set.
	ErrNotConfigured = errors.New("payments not configured: set MERCADOPAGO_ACCESS_TOKEN")

	// ErrInvalidRequest marks missing or malformed checkout and webhook input.
	ErrInvalidRequest = errors.New("invalid payment request")
)

// APIError is a non-success answer from the Mercado Pago API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mercadopago %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// AsAPIError extracts an *APIError from err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
