package routes

import (
	"kalkulori/internal/controllers"
	"kalkulori/internal/middleware"
	"kalkulori/internal/session"

	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(router *gin.Engine, authController *controllers.AuthController, sessions session.Store) {
	authRoutes := router.Group("/api/auth")
	{
		authRoutes.POST("/register", authController.Register)
		authRoutes.POST("/login", authController.Login)
		authRoutes.POST("/verify-token", authController.VerifyToken)
		authRoutes.POST("/logout", middleware.AuthMiddleware(sessions), authController.Logout)
	}
}
