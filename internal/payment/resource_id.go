package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ResourceID is a Mercado Pago id, which arrives as a JSON number in some
// payloads and as a string in others.
type ResourceID string

// UnmarshalJSON accepts strings, numbers and null.
func (r *ResourceID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ResourceID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("resource id must be a string or number")
		}
		*r = ResourceID(n.String())
	}
	return nil
}

// String returns the id.
func (r ResourceID) String() string {
	return string(r)
}
