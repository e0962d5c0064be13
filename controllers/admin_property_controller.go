package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/estatelist/estatelist_backend/models"
	"github.com/estatelist/estatelist_backend/repositories"
	"github.com/estatelist/estatelist_backend/utils"
)

type AdminPropertyController struct {
	DB    *mongo.Database
	Redis *redis.Client
	Repo  *repositories.PropertyRepository
}

func NewAdminPropertyController(db *mongo.Database, rdb *redis.Client) *AdminPropertyController {
	return &AdminPropertyController{
		DB:    db,
		Redis: rdb,
		Repo:  repositories.NewPropertyRepository(db),
	}
}

// GetPendingProperties lists the moderation queue, oldest submission
// first. Legacy documents may carry "pending_approval", so both
// spellings are matched.
func (ac *AdminPropertyController) GetPendingProperties(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	skip, limit := utils.Pagination(c.QueryParam("page"), c.QueryParam("limit"))
	filter := bson.M{"approvalStatus": bson.M{"$in": []string{
		models.ApprovalPending, models.ApprovalPendingApproval,
	}}}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := ac.DB.Collection("properties").Find(ctx, filter, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve pending properties"))
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err = cursor.All(ctx, &properties); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode properties"))
	}

	total, err := ac.DB.Collection("properties").CountDocuments(ctx, filter)
	if err != nil {
		total = int64(len(properties))
	}

	return c.JSON(http.StatusOK, models.OK("Pending properties retrieved successfully", map[string]interface{}{
		"properties": properties,
		"total":      total,
	}))
}

// ApproveProperty makes a listing publicly visible and notifies the
// owner.
func (ac *AdminPropertyController) ApproveProperty(c echo.Context) error {
	return ac.moderate(c, true)
}

// RejectProperty keeps a listing hidden and notifies the owner. The
// owner can edit and resubmit.
func (ac *AdminPropertyController) RejectProperty(c echo.Context) error {
	return ac.moderate(c, false)
}

func (ac *AdminPropertyController) moderate(c echo.Context, approve bool) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid property ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var property models.Property
	err = ac.DB.Collection("properties").FindOne(ctx, bson.M{"_id": objectID}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("Property not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve property"))
	}

	if approve {
		property.Approve()
	} else {
		property.Reject()
	}
	property.UpdatedAt = time.Now()

	_, err = ac.DB.Collection("properties").UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"status":         property.Status,
			"approvalStatus": property.ApprovalStatus,
			"isApproved":     property.IsApproved,
			"updatedAt":      property.UpdatedAt,
		}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update property"))
	}

	go ac.notifyOwner(property, approve)

	message := "Property approved successfully"
	if !approve {
		message = "Property rejected"
	}
	return c.JSON(http.StatusOK, models.OK(message, property))
}

// notifyOwner fans out the moderation verdict: email, in-app
// notification, push. All best-effort.
func (ac *AdminPropertyController) notifyOwner(property models.Property, approved bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	subject, body := utils.ModerationEmailBody(property.ContactInfo.Name, property.Title, approved)
	if property.ContactInfo.Email != "" {
		if err := utils.SendEmail(property.ContactInfo.Email, subject, body); err != nil {
			log.Printf("failed to send moderation email: %v", err)
		}
	}

	notifType := "property_approved"
	if !approved {
		notifType = "property_rejected"
	}
	if err := utils.SaveNotification(ac.DB, property.OwnerID, subject, body, notifType, map[string]interface{}{
		"propertyId": property.ID.Hex(),
	}); err != nil {
		log.Printf("failed to save moderation notification: %v", err)
	}

	var owner models.User
	err := ac.DB.Collection("users").FindOne(ctx, bson.M{"_id": property.OwnerID}).Decode(&owner)
	if err == nil && owner.FCMToken != "" {
		utils.SendPushNotification(ctx, owner.FCMToken, subject, body, map[string]string{
			"propertyId": property.ID.Hex(),
			"type":       notifType,
		})
	}

	utils.InvalidateListingCache(ctx, ac.Redis)
}

// NormalizePropertyTypes is a one-shot repair endpoint that rewrites
// stored propertyType and subCategory values onto their canonical
// spellings.
func (ac *AdminPropertyController) NormalizePropertyTypes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fixed, err := ac.Repo.NormalizeTypes(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to normalize property types"))
	}

	utils.InvalidateListingCache(ctx, ac.Redis)

	return c.JSON(http.StatusOK, models.OK("Property types normalized", map[string]interface{}{
		"updated": fixed,
	}))
}
