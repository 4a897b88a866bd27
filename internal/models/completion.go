package models

import (
	"time"

	"gorm.io/gorm"
)

// MealCompletion marks a food as eaten on a calendar day. The row existing
// is the "completed" state; at most one row per (user, food, day).
type MealCompletion struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:64;not null;uniqueIndex:idx_meal_completion_day,priority:1" json:"user_id"`
	FoodID      string    `gorm:"size:128;not null;uniqueIndex:idx_meal_completion_day,priority:2" json:"food_id"`
	CompletedAt string    `gorm:"size:10;not null;uniqueIndex:idx_meal_completion_day,priority:3" json:"completed_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM.
func (MealCompletion) TableName() string {
	return "meal_completions"
}

// BeforeCreate assigns the row id.
func (m *MealCompletion) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}

// WorkoutCompletion marks a workout as done on a calendar day.
// Same existence-implies-completed model as MealCompletion.
type WorkoutCompletion struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	UserID         string    `gorm:"size:64;not null;uniqueIndex:idx_workout_completion_day,priority:1" json:"user_id"`
	WorkoutID      string    `gorm:"size:128;not null;uniqueIndex:idx_workout_completion_day,priority:2" json:"workout_id"`
	CaloriesBurned *float64  `json:"calories_burned"`
	CompletedAt    string    `gorm:"size:10;not null;uniqueIndex:idx_workout_completion_day,priority:3" json:"completed_at"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM.
func (WorkoutCompletion) TableName() string {
	return "workout_completions"
}

// BeforeCreate assigns the row id.
func (w *WorkoutCompletion) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = newID()
	}
	return nil
}
