package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estatelist/estatelist_backend/middleware"
	"github.com/estatelist/estatelist_backend/models"
	"github.com/estatelist/estatelist_backend/utils"
)

type AuthController struct {
	DB *mongo.Database
}

func NewAuthController(db *mongo.Database) *AuthController {
	return &AuthController{DB: db}
}

// Signup registers a new property owner account
func (ac *AuthController) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Validation failed: "+err.Error()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var existing models.User
	err := ac.DB.Collection("users").FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing)
	if err == nil {
		return c.JSON(http.StatusConflict, models.Fail("An account with this email already exists"))
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to create account"))
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     req.Email,
		Password:  hash,
		FullName:  req.FullName,
		Phone:     req.Phone,
		UserType:  "user",
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := ac.DB.Collection("users").InsertOne(ctx, user); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to create account"))
	}

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.UserType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate token"))
	}

	return c.JSON(http.StatusCreated, models.OK("Account created successfully", models.LoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
	}))
}

// Login authenticates a user or admin and returns a JWT pair
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Validation failed: "+err.Error()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := ac.DB.Collection("users").FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Invalid email or password"))
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, models.Fail("Invalid email or password"))
	}

	if !user.IsActive {
		return c.JSON(http.StatusForbidden, models.Fail("Account is deactivated"))
	}

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.UserType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate token"))
	}

	return c.JSON(http.StatusOK, models.OK("Login successful", models.LoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
	}))
}

// RegisterFCMToken stores the device token used for moderation push
// notifications
func (ac *AuthController) RegisterFCMToken(c echo.Context) error {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Authentication failed"))
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid user ID"))
	}

	var req models.FCMTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Token is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = ac.DB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"fcmToken": req.Token, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to save token"))
	}

	return c.JSON(http.StatusOK, models.OK("Token registered", nil))
}
