package tracking

import "strings"

// Kind selects which completion or plan table an operation targets.
type Kind string

const (
	KindMeal    Kind = "meal"
	KindWorkout Kind = "workout"
)

// ParseKind accepts "meal"/"meals" and "workout"/"workouts".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "meal", "meals":
		return KindMeal, nil
	case "workout", "workouts":
		return KindWorkout, nil
	}
	return "", invalid("kind", "must be meal or workout")
}
