package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estatelist/estatelist_backend/controllers"
	"github.com/estatelist/estatelist_backend/middleware"
	"github.com/estatelist/estatelist_backend/websocket"
)

// RegisterAdsRoutes sets up the public advertisement submission and
// banner routes plus the admin review routes.
func RegisterAdsRoutes(e *echo.Echo, db *mongo.Database, hub *websocket.Hub) {
	adsController := controllers.NewAdsController(db, hub)

	// Public routes
	e.POST("/api/advertisements", adsController.SubmitAdvertisement)
	e.GET("/api/banners", adsController.GetBanners)

	// Admin routes
	admin := e.Group("/api/admin")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireUserType("admin"))

	admin.GET("/advertisements", adsController.GetSubmissions)
	admin.POST("/advertisements/:id/approve", adsController.ApproveSubmission)
	admin.POST("/advertisements/:id/reject", adsController.RejectSubmission)
	admin.DELETE("/advertisements/:id", adsController.DeleteSubmission)

	admin.PUT("/banners/:id", adsController.UpdateBanner)
	admin.DELETE("/banners/:id", adsController.DeleteBanner)
}
