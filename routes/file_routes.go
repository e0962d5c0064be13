package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estatelist/estatelist_backend/controllers"
	"github.com/estatelist/estatelist_backend/middleware"
)

// RegisterFileRoutes sets up the app download and notification routes.
func RegisterFileRoutes(e *echo.Echo, db *mongo.Database) {
	appController := controllers.NewAppController()
	notificationController := controllers.NewNotificationController(db)

	e.GET("/api/app/download", appController.DownloadApp)

	notifications := e.Group("/api/notifications")
	notifications.Use(middleware.JWTMiddleware())
	notifications.GET("", notificationController.GetMyNotifications)
	notifications.PUT("/:id/read", notificationController.MarkNotificationRead)
}
