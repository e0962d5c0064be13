package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estatelist/estatelist_backend/websocket"
)

// SetupRoutes configures all API routes by calling the individual route
// registration functions.
func SetupRoutes(e *echo.Echo, db *mongo.Database, rdb *redis.Client, hub *websocket.Hub) {
	RegisterAuthRoutes(e, db)
	RegisterPropertyRoutes(e, db, rdb, hub)
	RegisterCategoryRoutes(e, db)
	RegisterBlogRoutes(e, db)
	RegisterAdsRoutes(e, db, hub)
	RegisterAdminRoutes(e, db, rdb, hub)
	RegisterFileRoutes(e, db)
}
