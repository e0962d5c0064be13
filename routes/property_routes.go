package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estatelist/estatelist_backend/controllers"
	"github.com/estatelist/estatelist_backend/middleware"
	"github.com/estatelist/estatelist_backend/websocket"
)

// RegisterPropertyRoutes sets up the public listing pages and the
// authenticated owner endpoints.
func RegisterPropertyRoutes(e *echo.Echo, db *mongo.Database, rdb *redis.Client, hub *websocket.Hub) {
	propertyController := controllers.NewPropertyController(db, rdb, hub)

	// Public routes
	e.GET("/api/properties", propertyController.GetProperties)
	e.GET("/api/properties/:id", propertyController.GetProperty)
	e.GET("/api/properties/:id/qr", propertyController.GetPropertyQRCode)

	// Owner routes
	properties := e.Group("/api/properties")
	properties.Use(middleware.JWTMiddleware())
	properties.POST("", propertyController.CreateProperty)
	properties.PUT("/:id", propertyController.UpdateProperty)
	properties.DELETE("/:id", propertyController.DeleteProperty)

	my := e.Group("/api/my-properties")
	my.Use(middleware.JWTMiddleware())
	my.GET("", propertyController.GetMyProperties)
}
