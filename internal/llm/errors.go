package llm

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidMessage marks a malformed client conversation.
	ErrInvalidMessage = errors.New("invalid messages")

	// ErrNotConfigured is returned when no provider key is set.
	ErrNotConfigured = errors.New("no LLM provider configured: set ANTHROPIC_API_KEY, OPENAI_API_KEY, or OPENROUTER_API_KEY")
)

// UpstreamError is a non-success answer from the LLM vendor.
type UpstreamError struct {
	Provider   string
	StatusCode int
	// Body is the vendor's error payload when it was JSON.
	Body json.RawMessage
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream status %d: %v", e.Provider, e.StatusCode, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// AsUpstream extracts an *UpstreamError from err.
func AsUpstream(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// rawOrString returns body as JSON when it is valid, else as a JSON string.
func rawOrString(body string) json.RawMessage {
	if body == "" {
		return nil
	}
	if json.Valid([]byte(body)) {
		return json.RawMessage(body)
	}
	b, _ := json.Marshal(body)
	return b
}
