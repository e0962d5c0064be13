package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estatelist/estatelist_backend/controllers"
	"github.com/estatelist/estatelist_backend/middleware"
)

// RegisterAuthRoutes sets up authentication routes.
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Database) {
	authController := controllers.NewAuthController(db)

	e.POST("/api/auth/signup", authController.Signup)
	e.POST("/api/auth/login", authController.Login)

	authenticated := e.Group("/api/auth")
	authenticated.Use(middleware.JWTMiddleware())
	authenticated.POST("/fcm-token", authController.RegisterFCMToken)
}
