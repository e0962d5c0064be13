package main

import (
	"log"
	"mime"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/estatelist/estatelist_backend/config"
	"github.com/estatelist/estatelist_backend/middleware"
	"github.com/estatelist/estatelist_backend/routes"
	"github.com/estatelist/estatelist_backend/websocket"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Ensure correct MIME type for SVG icons
	_ = mime.AddExtensionType(".svg", "image/svg+xml")

	// Initialize Firebase (push notifications)
	config.InitFirebase()

	// Connect to Redis (listing cache)
	config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()
	db := client.Database(config.DatabaseName())

	// Create WebSocket hub for the admin live feed
	hub := websocket.NewHub()
	go hub.Run()

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		AllowedDomains: []string{"*"},
		AllowInlineJS:  true, // Set to false in production
		AllowEval:      false,
	}))

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "EstateList Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	e.Use(httpsRedirect())

	// Register all routes
	routes.SetupRoutes(e, db, config.GetRedisClient(), hub)

	// Ensure uploads directories exist
	os.MkdirAll("uploads", 0755)
	os.MkdirAll("uploads/properties", 0755)
	os.MkdirAll("uploads/properties/videos", 0755)
	os.MkdirAll("uploads/thumbnails", 0755)
	os.MkdirAll("uploads/categories", 0755)
	os.MkdirAll("uploads/categories/excel", 0755)
	os.MkdirAll("uploads/banners", 0755)
	os.MkdirAll("uploads/blogs", 0755)
	os.MkdirAll("uploads/app", 0755)

	e.Static("/uploads", "uploads")

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}

func httpsRedirect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("X-Forwarded-Proto") == "http" {
				return c.Redirect(301, "https://"+c.Request().Host+c.Request().RequestURI)
			}
			return next(c)
		}
	}
}
