package routes

import (
	"kalkulori/internal/controllers"
	"kalkulori/internal/middleware"
	"kalkulori/internal/session"

	"github.com/gin-gonic/gin"
)

// RegisterFoodRoutes wires the catalog, search and per-user custom food
// endpoints. Catalog reads and search are public; writes require auth.
func RegisterFoodRoutes(
	router *gin.Engine,
	foodController *controllers.FoodController,
	customFoodController *controllers.CustomFoodController,
	sessions session.Store,
) {
	auth := middleware.AuthMiddleware(sessions)

	foodRoutes := router.Group("/api/foods")
	{
		foodRoutes.POST("/", auth, foodController.CreateFood)
		foodRoutes.GET("/", foodController.GetAllFoods)
		foodRoutes.GET("/:id", foodController.GetFoodByID)
		foodRoutes.PUT("/:id", auth, foodController.UpdateFood)
		foodRoutes.DELETE("/:id", auth, foodController.DeleteFood)
	}

	router.GET("/api/search", foodController.SearchFoods)
	router.POST("/api/search/add", auth, foodController.AddFoodFromSearch)

	customFoodRoutes := router.Group("/api/users/foods")
	customFoodRoutes.Use(auth)
	{
		customFoodRoutes.POST("/", customFoodController.CreateCustomFood)
		customFoodRoutes.GET("/", customFoodController.GetUserCustomFoods)
	}
}
