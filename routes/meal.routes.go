package routes

import (
	"kalkulori/internal/controllers"
	"kalkulori/internal/middleware"
	"kalkulori/internal/session"

	"github.com/gin-gonic/gin"
)

func RegisterMealRoutes(router *gin.Engine, mealController *controllers.MealController, sessions session.Store) {
	mealRoutes := router.Group("/api/meals")
	mealRoutes.Use(middleware.AuthMiddleware(sessions))
	{
		mealRoutes.POST("/", mealController.CreateMealEntry)
		mealRoutes.GET("/", mealController.GetMealEntries)

		mealRoutes.GET("/suggestion", mealController.GetMealSuggestions)
		mealRoutes.POST("/suggestion/add", mealController.AddMealFromPlan)

		mealRoutes.PUT("/:id", mealController.UpdateMealEntry)
		mealRoutes.DELETE("/:id", mealController.DeleteMealEntry)
		mealRoutes.GET("/:id/details", mealController.GetMealDetailsByRecipeID)
	}

	logRoutes := router.Group("/api/logs")
	logRoutes.Use(middleware.AuthMiddleware(sessions))
	{
		logRoutes.GET("/:log_date", mealController.GetDailyLog)
	}

	planRoutes := router.Group("/api/meal-plans")
	planRoutes.Use(middleware.AuthMiddleware(sessions))
	{
		planRoutes.GET("/generate", mealController.GenerateMealPlan)
		planRoutes.POST("/add-meal", mealController.AddMealFromPlan)
		planRoutes.POST("/add-full-plan", mealController.AddFullMealPlan)
	}

	router.GET("/api/health", controllers.Health)
}
