package tracking

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseMeasurement reads an optional non-negative decimal sent either as a
// JSON number or a numeric string. Absent, null and "" yield nil.
func ParseMeasurement(field string, raw json.RawMessage) (*float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, invalid(field, "must be a number")
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, nil
		}
	} else {
		text = string(raw)
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, invalid(field, "must be a finite number")
	}
	if v < 0 {
		return nil, invalid(field, "must not be negative")
	}
	return &v, nil
}

// requireMeasurement is ParseMeasurement for fields that must be present.
func requireMeasurement(field string, raw json.RawMessage) (float64, error) {
	v, err := ParseMeasurement(field, raw)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, invalid(field, "is required")
	}
	return *v, nil
}

// jsonDocument validates a plan payload. Empty and null count as absent.
func jsonDocument(field string, raw json.RawMessage, mandatory bool) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		if mandatory {
			return nil, invalid(field, "is required")
		}
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, invalid(field, "must be valid JSON")
	}
	return raw, nil
}
