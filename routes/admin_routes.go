package routes

import (
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estatelist/estatelist_backend/controllers"
	"github.com/estatelist/estatelist_backend/middleware"
	"github.com/estatelist/estatelist_backend/models"
	"github.com/estatelist/estatelist_backend/websocket"
)

// RegisterAdminRoutes sets up the moderation queue, the one-shot data
// repair endpoint and the live admin event feed.
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Database, rdb *redis.Client, hub *websocket.Hub) {
	adminPropertyController := controllers.NewAdminPropertyController(db, rdb)

	admin := e.Group("/api/admin")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireUserType("admin"))

	admin.GET("/properties/pending", adminPropertyController.GetPendingProperties)
	admin.PUT("/properties/:id/approve", adminPropertyController.ApproveProperty)
	admin.PUT("/properties/:id/reject", adminPropertyController.RejectProperty)
	admin.POST("/properties/normalize", adminPropertyController.NormalizePropertyTypes)

	// Live feed of new property and advertisement submissions
	admin.GET("/ws", func(c echo.Context) error {
		userID, err := middleware.ExtractUserID(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, models.Fail("Authentication failed"))
		}
		objectID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Fail("Invalid user ID"))
		}
		return websocket.HandleWebSocket(c, hub, objectID)
	})
}
