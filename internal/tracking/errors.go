package tracking

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func required(field, value string) error {
	if value == "" {
		return invalid(field, "is required")
	}
	return nil
}
