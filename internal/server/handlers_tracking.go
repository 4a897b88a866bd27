package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitlife-pro/fitlife/internal/tracking"
)

type weightRequest struct {
	Weight json.RawMessage `json:"weight"`
	Note   string          `json:"note"`
}

func (s *Server) handleLogWeight(c *gin.Context) {
	var req weightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	entry, err := s.tracking.LogWeight(c.Request.Context(), c.Param("userId"), req.Weight, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) handleWeightHistory(c *gin.Context) {
	entries, err := s.tracking.WeightHistory(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type photoRequest struct {
	PhotoURL string          `json:"photoUrl"`
	Weight   json.RawMessage `json:"weight"`
}

func (s *Server) handleAddPhoto(c *gin.Context) {
	var req photoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	photo, err := s.tracking.AddPhoto(c.Request.Context(), c.Param("userId"), req.PhotoURL, req.Weight)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

func (s *Server) handlePhotos(c *gin.Context) {
	photos, err := s.tracking.Photos(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, photos)
}

func (s *Server) handleToggleMeal(c *gin.Context) {
	res, err := s.tracking.ToggleCompletion(c.Request.Context(), tracking.KindMeal, c.Param("userId"), c.Param("foodId"), nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type workoutToggleRequest struct {
	CaloriesBurned json.RawMessage `json:"caloriesBurned"`
}

func (s *Server) handleToggleWorkout(c *gin.Context) {
	var req workoutToggleRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badBody(c, err)
		return
	}

	res, err := s.tracking.ToggleCompletion(c.Request.Context(), tracking.KindWorkout, c.Param("userId"), c.Param("workoutId"), req.CaloriesBurned)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleTodayMeals(c *gin.Context) {
	s.listToday(c, tracking.KindMeal)
}

func (s *Server) handleTodayWorkouts(c *gin.Context) {
	s.listToday(c, tracking.KindWorkout)
}

// handleTodayCompletions serves ?kind=meals|workouts.
func (s *Server) handleTodayCompletions(c *gin.Context) {
	kind, err := tracking.ParseKind(c.Query("kind"))
	if err != nil {
		respondError(c, err)
		return
	}
	s.listToday(c, kind)
}

func (s *Server) listToday(c *gin.Context, kind tracking.Kind) {
	list, err := s.tracking.ListTodayCompletions(c.Request.Context(), kind, c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type mealPlanRequest struct {
	MealData       json.RawMessage `json:"mealData"`
	NutritionGoals json.RawMessage `json:"nutritionGoals"`
}

func (s *Server) handleSaveMealPlan(c *gin.Context) {
	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	plan, err := s.tracking.SaveMealPlan(c.Request.Context(), c.Param("userId"), req.MealData, req.NutritionGoals)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// handleMealPlan answers null when the user has no plan yet.
func (s *Server) handleMealPlan(c *gin.Context) {
	plan, err := s.tracking.MealPlan(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

type workoutPlanRequest struct {
	WorkoutData json.RawMessage `json:"workoutData"`
}

func (s *Server) handleSaveWorkoutPlan(c *gin.Context) {
	var req workoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	plan, err := s.tracking.SaveWorkoutPlan(c.Request.Context(), c.Param("userId"), req.WorkoutData)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) handleWorkoutPlan(c *gin.Context) {
	plan, err := s.tracking.WorkoutPlan(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) handleNotify(c *gin.Context) {
	var req tracking.NotificationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	n, err := s.tracking.Notify(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (s *Server) handleNotifications(c *gin.Context) {
	list, err := s.tracking.Notifications(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleMarkRead(c *gin.Context) {
	n, err := s.tracking.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// bindOptionalJSON decodes the body when there is one.
func bindOptionalJSON(c *gin.Context, v interface{}) error {
	err := c.ShouldBindJSON(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
