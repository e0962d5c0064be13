package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estatelist/estatelist_backend/controllers"
	"github.com/estatelist/estatelist_backend/middleware"
)

// RegisterBlogRoutes sets up the public blog pages and the admin
// editorial routes.
func RegisterBlogRoutes(e *echo.Echo, db *mongo.Database) {
	blogController := controllers.NewBlogController(db)

	// Public routes
	e.GET("/api/blogs", blogController.GetPublishedBlogs)
	e.GET("/api/blogs/:slug", blogController.GetBlogBySlug)

	// Admin routes
	admin := e.Group("/api/admin/blogs")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireUserType("admin"))

	admin.GET("", blogController.GetAllBlogs)
	admin.POST("", blogController.CreateBlog)
	admin.PUT("/:id", blogController.UpdateBlog)
	admin.DELETE("/:id", blogController.DeleteBlog)
	admin.POST("/image", blogController.UploadBlogImage)
}
