package routes

import (
	"kalkulori/internal/controllers"
	"kalkulori/internal/middleware"
	"kalkulori/internal/session"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(router *gin.Engine, profileController *controllers.UserProfileController, sessions session.Store) {
	userRoutes := router.Group("/api/users")
	userRoutes.Use(middleware.AuthMiddleware(sessions))
	{
		userRoutes.GET("/profile", profileController.GetUserProfile)
		userRoutes.PUT("/profile", profileController.UpdateUserProfile)
	}
}
