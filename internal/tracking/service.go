// Package tracking implements the per-user fitness records: weight history,
// progress photos, meal and workout completions, custom plans and
// notifications. It validates input and stamps times; storage is internal/db.
package tracking

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/fitlife-pro/fitlife/internal/db"
	"github.com/fitlife-pro/fitlife/internal/models"
	"github.com/fitlife-pro/fitlife/internal/telemetry"
)

// Service is the entry point for all tracking operations.
type Service struct {
	db        *db.DB
	telemetry telemetry.Client
	now       func() time.Time
}

// NewService creates a tracking service. A nil telemetry client is replaced
// by a disabled one.
func NewService(database *db.DB, tc telemetry.Client) *Service {
	if tc == nil {
		tc = telemetry.Noop()
	}
	return &Service{
		db:        database,
		telemetry: tc,
		now:       time.Now,
	}
}

// WithClock replaces the service clock. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// today is the current UTC calendar day, the key for completions.
func (s *Service) today() string {
	return s.now().UTC().Format(models.DayLayout)
}

// LogWeight appends a weight entry stamped with the current time.
func (s *Service) LogWeight(ctx context.Context, userID string, weight json.RawMessage, note string) (*models.WeightEntry, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	w, err := requireMeasurement("weight", weight)
	if err != nil {
		return nil, err
	}

	entry := &models.WeightEntry{
		UserID: userID,
		Weight: w,
		Note:   strings.TrimSpace(note),
		Date:   s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).AddWeightEntry(entry); err != nil {
		return nil, err
	}
	s.telemetry.TrackWeightLogged(userID)
	return entry, nil
}

// WeightHistory lists a user's weight entries, oldest first.
func (s *Service) WeightHistory(ctx context.Context, userID string) ([]models.WeightEntry, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	return s.db.WithContext(ctx).WeightHistory(userID)
}

// AddPhoto appends a progress photo with an optional weight.
func (s *Service) AddPhoto(ctx context.Context, userID, photoURL string, weight json.RawMessage) (*models.ProgressPhoto, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	photoURL = strings.TrimSpace(photoURL)
	if err := required("photoUrl", photoURL); err != nil {
		return nil, err
	}
	w, err := ParseMeasurement("weight", weight)
	if err != nil {
		return nil, err
	}

	photo := &models.ProgressPhoto{
		UserID:   userID,
		PhotoURL: photoURL,
		Weight:   w,
		Date:     s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).AddProgressPhoto(photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// Photos lists a user's progress photos, newest first.
func (s *Service) Photos(ctx context.Context, userID string) ([]models.ProgressPhoto, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	return s.db.WithContext(ctx).ProgressPhotos(userID)
}

// ToggleResult is the outcome of a completion toggle. Data is set only
// when a row was added.
type ToggleResult struct {
	Action db.ToggleAction `json:"action"`
	Data   interface{}     `json:"data,omitempty"`
}

// ToggleCompletion flips today's completion of a meal or workout.
// caloriesBurned applies to workouts and is ignored on removal.
func (s *Service) ToggleCompletion(ctx context.Context, kind Kind, userID, resourceID string, caloriesBurned json.RawMessage) (*ToggleResult, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	if err := required(string(kind)+"Id", resourceID); err != nil {
		return nil, err
	}

	store := s.db.WithContext(ctx)
	day := s.today()
	result := &ToggleResult{}

	switch kind {
	case KindMeal:
		res, err := store.ToggleMealCompletion(userID, resourceID, day)
		if err != nil {
			return nil, err
		}
		result.Action = res.Action
		if res.Data != nil {
			result.Data = res.Data
		}
	case KindWorkout:
		calories, parseErr := ParseMeasurement("caloriesBurned", caloriesBurned)
		if parseErr != nil {
			// a bad value only matters when the row would be added
			removed, err := store.RemoveWorkoutCompletion(userID, resourceID, day)
			if err != nil {
				return nil, err
			}
			if !removed {
				return nil, parseErr
			}
			result.Action = db.ToggleRemoved
			break
		}
		res, err := store.ToggleWorkoutCompletion(userID, resourceID, day, calories)
		if err != nil {
			return nil, err
		}
		result.Action = res.Action
		if res.Data != nil {
			result.Data = res.Data
		}
	default:
		return nil, invalid("kind", "must be meal or workout")
	}

	s.telemetry.TrackCompletionToggled(userID, string(kind), string(result.Action))
	return result, nil
}

// TodayMeals returns the food ids completed today.
func (s *Service) TodayMeals(ctx context.Context, userID string) ([]string, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	return s.db.WithContext(ctx).TodayMealCompletions(userID, s.today())
}

// TodayWorkouts returns today's workout completion rows.
func (s *Service) TodayWorkouts(ctx context.Context, userID string) ([]models.WorkoutCompletion, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	return s.db.WithContext(ctx).TodayWorkoutCompletions(userID, s.today())
}

// ListTodayCompletions dispatches to TodayMeals or TodayWorkouts.
func (s *Service) ListTodayCompletions(ctx context.Context, kind Kind, userID string) (interface{}, error) {
	switch kind {
	case KindMeal:
		return s.TodayMeals(ctx, userID)
	case KindWorkout:
		return s.TodayWorkouts(ctx, userID)
	}
	return nil, invalid("kind", "must be meal or workout")
}

// SaveMealPlan creates or replaces the user's meal plan.
func (s *Service) SaveMealPlan(ctx context.Context, userID string, mealData, nutritionGoals json.RawMessage) (*models.MealPlan, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	meals, err := jsonDocument("mealData", mealData, true)
	if err != nil {
		return nil, err
	}
	goals, err := jsonDocument("nutritionGoals", nutritionGoals, false)
	if err != nil {
		return nil, err
	}

	plan, err := s.db.WithContext(ctx).SaveMealPlan(userID, datatypes.JSON(meals), datatypes.JSON(goals), s.now().UTC())
	if err != nil {
		return nil, err
	}
	s.telemetry.TrackPlanSaved(userID, string(KindMeal))
	return plan, nil
}

// MealPlan returns the user's meal plan, or nil when none was saved.
func (s *Service) MealPlan(ctx context.Context, userID string) (*models.MealPlan, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	return s.db.WithContext(ctx).GetMealPlan(userID)
}

// SaveWorkoutPlan creates or replaces the user's workout plan.
func (s *Service) SaveWorkoutPlan(ctx context.Context, userID string, workoutData json.RawMessage) (*models.WorkoutPlan, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	workouts, err := jsonDocument("workoutData", workoutData, true)
	if err != nil {
		return nil, err
	}

	plan, err := s.db.WithContext(ctx).SaveWorkoutPlan(userID, datatypes.JSON(workouts), s.now().UTC())
	if err != nil {
		return nil, err
	}
	s.telemetry.TrackPlanSaved(userID, string(KindWorkout))
	return plan, nil
}

// WorkoutPlan returns the user's workout plan, or nil when none was saved.
func (s *Service) WorkoutPlan(ctx context.Context, userID string) (*models.WorkoutPlan, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	return s.db.WithContext(ctx).GetWorkoutPlan(userID)
}

// NotificationInput carries the fields a caller may set on a notification.
type NotificationInput struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Icon    string `json:"icon"`
}

// Notify appends an unread notification.
func (s *Service) Notify(ctx context.Context, userID string, in NotificationInput) (*models.Notification, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if err := required("title", title); err != nil {
		return nil, err
	}

	n := &models.Notification{
		UserID:    userID,
		Type:      in.Type,
		Title:     title,
		Message:   in.Message,
		Icon:      in.Icon,
		CreatedAt: s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).AddNotification(n); err != nil {
		return nil, err
	}
	return n, nil
}

// Notifications lists the user's newest notifications.
func (s *Service) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	return s.db.WithContext(ctx).Notifications(userID, db.NotificationListLimit)
}

// MarkRead flags a notification as read. Unknown ids return db.ErrNotFound.
func (s *Service) MarkRead(ctx context.Context, notificationID string) (*models.Notification, error) {
	if err := required("id", notificationID); err != nil {
		return nil, err
	}
	return s.db.WithContext(ctx).MarkNotificationRead(notificationID)
}
