package db

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm/clause"

	"github.com/fitlife-pro/fitlife/internal/models"
)

// SaveMealPlan creates the user's meal plan or replaces its payloads in place.
// created_at of an existing plan is preserved.
func (db *DB) SaveMealPlan(userID string, mealData, nutritionGoals datatypes.JSON, now time.Time) (*models.MealPlan, error) {
	plan := models.MealPlan{
		UserID:         userID,
		MealData:       mealData,
		NutritionGoals: nutritionGoals,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var stored models.MealPlan
	err := db.Transaction(func(tx *DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"meal_data", "nutrition_goals", "updated_at"}),
		}).Create(&plan).Error
		if err != nil {
			return err
		}
		// plan.ID holds the id generated for the insert attempt, which is
		// not the stored id when the upsert hit an existing row.
		return tx.Where("user_id = ?", userID).First(&stored).Error
	})
	if err != nil {
		return nil, storeErr("save meal plan", err)
	}
	return &stored, nil
}

// GetMealPlan returns the user's meal plan, or nil if there is none.
func (db *DB) GetMealPlan(userID string) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := db.Where("user_id = ?", userID).First(&plan).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, storeErr("get meal plan", err)
	}
	return &plan, nil
}

// SaveWorkoutPlan creates the user's workout plan or replaces it in place.
func (db *DB) SaveWorkoutPlan(userID string, workoutData datatypes.JSON, now time.Time) (*models.WorkoutPlan, error) {
	plan := models.WorkoutPlan{
		UserID:      userID,
		WorkoutData: workoutData,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var stored models.WorkoutPlan
	err := db.Transaction(func(tx *DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"workout_data", "updated_at"}),
		}).Create(&plan).Error
		if err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).First(&stored).Error
	})
	if err != nil {
		return nil, storeErr("save workout plan", err)
	}
	return &stored, nil
}

// GetWorkoutPlan returns the user's workout plan, or nil if there is none.
func (db *DB) GetWorkoutPlan(userID string) (*models.WorkoutPlan, error) {
	var plan models.WorkoutPlan
	err := db.Where("user_id = ?", userID).First(&plan).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, storeErr("get workout plan", err)
	}
	return &plan, nil
}
