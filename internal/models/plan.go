package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MealPlan is a user's custom meal plan. Singleton per user.
type MealPlan struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	UserID         string         `gorm:"size:64;not null;uniqueIndex" json:"user_id"`
	MealData       datatypes.JSON `json:"meal_data"`
	NutritionGoals datatypes.JSON `json:"nutrition_goals"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (MealPlan) TableName() string {
	return "custom_meal_plans"
}

// BeforeCreate assigns the row id.
func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}

// WorkoutPlan is a user's custom workout plan. Singleton per user.
type WorkoutPlan struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	UserID      string         `gorm:"size:64;not null;uniqueIndex" json:"user_id"`
	WorkoutData datatypes.JSON `json:"workout_data"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (WorkoutPlan) TableName() string {
	return "custom_workout_plans"
}

// BeforeCreate assigns the row id.
func (p *WorkoutPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}
