package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estatelist/estatelist_backend/controllers"
	"github.com/estatelist/estatelist_backend/middleware"
)

// RegisterCategoryRoutes sets up the three-level taxonomy routes.
func RegisterCategoryRoutes(e *echo.Echo, db *mongo.Database) {
	categoryController := controllers.NewCategoryController(db)
	subcategoryController := controllers.NewSubcategoryController(db)

	// Public routes
	e.GET("/api/categories", categoryController.GetCategories)
	e.GET("/api/categories/:id", categoryController.GetCategory)
	e.GET("/api/categories/:categoryId/subcategories", subcategoryController.GetSubcategories)
	e.GET("/api/subcategories/:subcategoryId/mini-subcategories", subcategoryController.GetMiniSubcategories)

	// Admin routes
	admin := e.Group("/api/admin")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireUserType("admin"))

	admin.POST("/categories", categoryController.CreateCategory)
	admin.PUT("/categories/:id", categoryController.UpdateCategory)
	admin.DELETE("/categories/:id", categoryController.DeleteCategory)
	admin.POST("/categories/:id/excel", categoryController.UploadCategoryExcel)

	admin.POST("/subcategories", subcategoryController.CreateSubcategory)
	admin.PUT("/subcategories/:id", subcategoryController.UpdateSubcategory)
	admin.DELETE("/subcategories/:id", subcategoryController.DeleteSubcategory)

	admin.POST("/mini-subcategories", subcategoryController.CreateMiniSubcategory)
	admin.PUT("/mini-subcategories/:id", subcategoryController.UpdateMiniSubcategory)
	admin.DELETE("/mini-subcategories/:id", subcategoryController.DeleteMiniSubcategory)
}
