package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerRoutes() {
	r := s.engine

	r.GET("/", s.handleStatus)

	api := r.Group("/api")
	api.GET("/test", s.handleTestKey)
	api.POST("/chat", s.handleChat)
	api.POST("/create-subscription", s.handleCreateSubscription)
	api.POST("/webhook-mercadopago", s.handleWebhook)
	api.PATCH("/notifications/:id/read", s.handleMarkRead)

	users := api.Group("/users/:userId")
	users.GET("/subscription", s.handleSubscription)

	users.POST("/weights", s.handleLogWeight)
	users.GET("/weights", s.handleWeightHistory)
	users.POST("/photos", s.handleAddPhoto)
	users.GET("/photos", s.handlePhotos)

	users.POST("/meals/:foodId/toggle", s.handleToggleMeal)
	users.GET("/meals/today", s.handleTodayMeals)
	users.POST("/workouts/:workoutId/toggle", s.handleToggleWorkout)
	users.GET("/workouts/today", s.handleTodayWorkouts)
	users.GET("/completions/today", s.handleTodayCompletions)

	users.PUT("/meal-plan", s.handleSaveMealPlan)
	users.GET("/meal-plan", s.handleMealPlan)
	users.PUT("/workout-plan", s.handleSaveWorkoutPlan)
	users.GET("/workout-plan", s.handleWorkoutPlan)

	users.POST("/notifications", s.handleNotify)
	users.GET("/notifications", s.handleNotifications)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found", "path": c.Request.URL.Path})
	})
}
