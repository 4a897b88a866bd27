package db

import (
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/fitlife-pro/fitlife/internal/models"
)

// ToggleAction reports which branch a toggle took.
type ToggleAction string

const (
	ToggleAdded   ToggleAction = "added"
	ToggleRemoved ToggleAction = "removed"
)

// ToggleResult is the outcome of a day-scoped completion toggle.
// Data is set only when the row was added.
type ToggleResult[T any] struct {
	Action ToggleAction `json:"action"`
	Data   *T           `json:"data,omitempty"`
}

// ToggleMealCompletion flips the "eaten today" state of a food for a user.
func (db *DB) ToggleMealCompletion(userID, foodID, day string) (*ToggleResult[models.MealCompletion], error) {
	row := &models.MealCompletion{UserID: userID, FoodID: foodID, CompletedAt: day}
	return toggle(db, "toggle meal completion", "food_id", userID, foodID, day, row)
}

// ToggleWorkoutCompletion flips the "done today" state of a workout.
// caloriesBurned is stored only when the row is added.
func (db *DB) ToggleWorkoutCompletion(userID, workoutID, day string, caloriesBurned *float64) (*ToggleResult[models.WorkoutCompletion], error) {
	row := &models.WorkoutCompletion{UserID: userID, WorkoutID: workoutID, CompletedAt: day, CaloriesBurned: caloriesBurned}
	return toggle(db, "toggle workout completion", "workout_id", userID, workoutID, day, row)
}

// toggle deletes the (user, resource, day) row if present, otherwise inserts row.
//
// Each step is a single statement, so there is no window between a lookup and
// the mutation that a concurrent toggle could slip into.
func toggle[T any](db *DB, op, resourceColumn, userID, resourceID, day string, row *T) (*ToggleResult[T], error) {
	where := completionWhere(resourceColumn)

	removed, err := removeCompletion[T](db, where, userID, resourceID, day)
	if err != nil {
		return nil, storeErr(op+": delete", err)
	}
	if removed {
		return &ToggleResult[T]{Action: ToggleRemoved}, nil
	}

	added, err := insertCompletion(db, where, userID, resourceID, day, row)
	if err != nil {
		return nil, storeErr(op+": insert", err)
	}
	return &ToggleResult[T]{Action: ToggleAdded, Data: added}, nil
}

// RemoveWorkoutCompletion deletes today's row for a workout, if any, and
// reports whether one was removed.
func (db *DB) RemoveWorkoutCompletion(userID, workoutID, day string) (bool, error) {
	removed, err := removeCompletion[models.WorkoutCompletion](db, completionWhere("workout_id"), userID, workoutID, day)
	if err != nil {
		return false, storeErr("remove workout completion", err)
	}
	return removed, nil
}

func completionWhere(resourceColumn string) string {
	return fmt.Sprintf("user_id = ? AND %s = ? AND completed_at = ?", resourceColumn)
}

func removeCompletion[T any](db *DB, where, userID, resourceID, day string) (bool, error) {
	res := db.Where(where, userID, resourceID, day).Delete(new(T))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// insertCompletion inserts row unless the composite unique index already
// holds one for the key. In that case a concurrent toggle won the race and
// its row is returned instead.
func insertCompletion[T any](db *DB, where, userID, resourceID, day string, row *T) (*T, error) {
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return row, nil
	}

	var existing T
	if err := db.Where(where, userID, resourceID, day).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// TodayMealCompletions returns the food ids the user completed on day.
func (db *DB) TodayMealCompletions(userID, day string) ([]string, error) {
	foodIDs := []string{}
	err := db.Model(&models.MealCompletion{}).
		Where("user_id = ? AND completed_at = ?", userID, day).
		Pluck("food_id", &foodIDs).Error
	if err != nil {
		return nil, storeErr("list meal completions", err)
	}
	return foodIDs, nil
}

// TodayWorkoutCompletions returns the workout rows the user completed on day.
func (db *DB) TodayWorkoutCompletions(userID, day string) ([]models.WorkoutCompletion, error) {
	rows := []models.WorkoutCompletion{}
	err := db.Where("user_id = ? AND completed_at = ?", userID, day).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, storeErr("list workout completions", err)
	}
	return rows, nil
}
