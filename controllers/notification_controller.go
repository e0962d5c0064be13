package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/estatelist/estatelist_backend/middleware"
	"github.com/estatelist/estatelist_backend/models"
)

type NotificationController struct {
	DB *mongo.Database
}

func NewNotificationController(db *mongo.Database) *NotificationController {
	return &NotificationController{DB: db}
}

// GetMyNotifications lists the requester's notifications, newest first.
func (nc *NotificationController) GetMyNotifications(c echo.Context) error {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Authentication failed"))
	}
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid user ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(100)
	cursor, err := nc.DB.Collection("notifications").Find(ctx, bson.M{"userId": objectID}, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve notifications"))
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err = cursor.All(ctx, &notifications); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode notifications"))
	}

	return c.JSON(http.StatusOK, models.OK("Notifications retrieved successfully", notifications))
}

// MarkNotificationRead flags one of the requester's notifications read.
func (nc *NotificationController) MarkNotificationRead(c echo.Context) error {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Authentication failed"))
	}
	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid user ID"))
	}
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid notification ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := nc.DB.Collection("notifications").UpdateOne(ctx,
		bson.M{"_id": objectID, "userId": ownerID},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update notification"))
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Fail("Notification not found"))
	}

	return c.JSON(http.StatusOK, models.OK("Notification marked as read", nil))
}
