package models

import (
	"github.com/google/uuid"
)

// DayLayout is the calendar-day format used by day-scoped completions.
const DayLayout = "2006-01-02"

// newID returns a fresh row identifier.
func newID() string {
	return uuid.New().String()
}
