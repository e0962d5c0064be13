package controllers

import (
	"context"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/estatelist/estatelist_backend/middleware"
	"github.com/estatelist/estatelist_backend/models"
	"github.com/estatelist/estatelist_backend/utils"
	"github.com/estatelist/estatelist_backend/websocket"
)

type AdsController struct {
	DB  *mongo.Database
	Hub *websocket.Hub
}

func NewAdsController(db *mongo.Database, hub *websocket.Hub) *AdsController {
	return &AdsController{DB: db, Hub: hub}
}

// SubmitAdvertisement is the public banner proposal endpoint. No
// account is needed; advertisers leave a phone number and the creative.
func (ac *AdsController) SubmitAdvertisement(c echo.Context) error {
	advertiserName := strings.TrimSpace(c.FormValue("advertiserName"))
	phone := strings.TrimSpace(c.FormValue("phone"))
	if advertiserName == "" || phone == "" {
		return c.JSON(http.StatusBadRequest, models.Fail("advertiserName and phone are required"))
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("image is required"))
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Failed to read image"))
	}
	defer src.Close()
	fileData, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Failed to read image"))
	}

	filename := uuid.New().String() + filepath.Ext(file.Filename)
	imageURL, err := utils.UploadFileToPath(fileData, filename, "image", "banners")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Image upload failed: "+err.Error()))
	}

	submission := models.AdvertisementSubmission{
		ID:             primitive.NewObjectID(),
		AdvertiserName: advertiserName,
		Phone:          phone,
		Email:          strings.TrimSpace(c.FormValue("email")),
		ImageURL:       imageURL,
		TargetURL:      strings.TrimSpace(c.FormValue("targetUrl")),
		Placement:      strings.TrimSpace(c.FormValue("placement")),
		Status:         models.SubmissionPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := ac.DB.Collection("advertisement_submissions").InsertOne(ctx, submission); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to submit advertisement"))
	}

	ac.Hub.NotifyAdvertisementSubmitted(map[string]interface{}{
		"id":             submission.ID.Hex(),
		"advertiserName": submission.AdvertiserName,
		"placement":      submission.Placement,
	})

	return c.JSON(http.StatusCreated, models.OK("Advertisement submitted for review", submission))
}

// GetSubmissions lists banner proposals for the admin dashboard,
// optionally filtered by status.
func (ac *AdsController) GetSubmissions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := ac.DB.Collection("advertisement_submissions").Find(ctx, filter, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve submissions"))
	}
	defer cursor.Close(ctx)

	submissions := []models.AdvertisementSubmission{}
	if err = cursor.All(ctx, &submissions); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode submissions"))
	}

	return c.JSON(http.StatusOK, models.OK("Submissions retrieved successfully", submissions))
}

// ApproveSubmission turns a pending proposal into a live banner.
func (ac *AdsController) ApproveSubmission(c echo.Context) error {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Authentication failed"))
	}
	adminID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid user ID"))
	}

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid submission ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var submission models.AdvertisementSubmission
	err = ac.DB.Collection("advertisement_submissions").FindOne(ctx, bson.M{"_id": objectID}).Decode(&submission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("Submission not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve submission"))
	}
	if submission.Status != models.SubmissionPending {
		return c.JSON(http.StatusConflict, models.Fail("Submission has already been reviewed"))
	}

	banner := models.Banner{
		ID:        primitive.NewObjectID(),
		ImageURL:  submission.ImageURL,
		TargetURL: submission.TargetURL,
		Placement: submission.Placement,
		Order:     0,
		IsActive:  true,
		CreatedBy: adminID,
		CreatedAt: time.Now(),
	}
	if _, err := ac.DB.Collection("banners").InsertOne(ctx, banner); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to create banner"))
	}

	_, err = ac.DB.Collection("advertisement_submissions").UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": models.SubmissionApproved, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Banner created but failed to update submission"))
	}

	if submission.Email != "" {
		go func() {
			if err := utils.SendEmail(submission.Email, "Your advertisement is live",
				"Hi "+submission.AdvertiserName+", your advertisement has been approved and is now live."); err != nil {
				log.Printf("failed to send advertisement approval email: %v", err)
			}
		}()
	}

	return c.JSON(http.StatusOK, models.OK("Submission approved", banner))
}

// RejectSubmission marks a proposal rejected without creating a banner.
func (ac *AdsController) RejectSubmission(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid submission ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ac.DB.Collection("advertisement_submissions").UpdateOne(ctx,
		bson.M{"_id": objectID, "status": models.SubmissionPending},
		bson.M{"$set": bson.M{"status": models.SubmissionRejected, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to reject submission"))
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Fail("Pending submission not found"))
	}

	return c.JSON(http.StatusOK, models.OK("Submission rejected", nil))
}

// DeleteSubmission removes a proposal record.
func (ac *AdsController) DeleteSubmission(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid submission ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ac.DB.Collection("advertisement_submissions").DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to delete submission"))
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Fail("Submission not found"))
	}

	return c.JSON(http.StatusOK, models.OK("Submission deleted successfully", nil))
}

// GetBanners is the public endpoint the client renders ad slots from.
func (ac *AdsController) GetBanners(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"isActive": true}
	if placement := c.QueryParam("placement"); placement != "" {
		filter["placement"] = placement
	}

	findOptions := options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "createdAt", Value: -1},
	})
	cursor, err := ac.DB.Collection("banners").Find(ctx, filter, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve banners"))
	}
	defer cursor.Close(ctx)

	banners := []models.Banner{}
	if err = cursor.All(ctx, &banners); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode banners"))
	}

	return c.JSON(http.StatusOK, models.OK("Banners retrieved successfully", banners))
}

// UpdateBanner edits placement, ordering, target URL or the active
// flag of a live banner.
func (ac *AdsController) UpdateBanner(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid banner ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{}
	if v := strings.TrimSpace(c.FormValue("targetUrl")); v != "" {
		update["targetUrl"] = v
	}
	if v := strings.TrimSpace(c.FormValue("placement")); v != "" {
		update["placement"] = v
	}
	if v := c.FormValue("order"); v != "" {
		order, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Fail("order must be an integer"))
		}
		update["order"] = order
	}
	if v := c.FormValue("isActive"); v != "" {
		update["isActive"] = v == "true"
	}
	if len(update) == 0 {
		return c.JSON(http.StatusBadRequest, models.Fail("No fields to update"))
	}

	result, err := ac.DB.Collection("banners").UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": update})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update banner"))
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Fail("Banner not found"))
	}

	var updated models.Banner
	if err := ac.DB.Collection("banners").FindOne(ctx, bson.M{"_id": objectID}).Decode(&updated); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Banner updated but failed to retrieve updated data"))
	}

	return c.JSON(http.StatusOK, models.OK("Banner updated successfully", updated))
}

// DeleteBanner removes a live banner.
func (ac *AdsController) DeleteBanner(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid banner ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ac.DB.Collection("banners").DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to delete banner"))
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Fail("Banner not found"))
	}

	return c.JSON(http.StatusOK, models.OK("Banner deleted successfully", nil))
}
