package controllers

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/estatelist/estatelist_backend/middleware"
	"github.com/estatelist/estatelist_backend/models"
	"github.com/estatelist/estatelist_backend/repositories"
	"github.com/estatelist/estatelist_backend/utils"
	"github.com/estatelist/estatelist_backend/websocket"
)

type PropertyController struct {
	DB    *mongo.Database
	Redis *redis.Client
	Hub   *websocket.Hub
	Repo  *repositories.PropertyRepository
}

func NewPropertyController(db *mongo.Database, rdb *redis.Client, hub *websocket.Hub) *PropertyController {
	return &PropertyController{
		DB:    db,
		Redis: rdb,
		Hub:   hub,
		Repo:  repositories.NewPropertyRepository(db),
	}
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func publicBaseURL() string {
	if v := os.Getenv("PUBLIC_BASE_URL"); v != "" {
		return strings.TrimSuffix(v, "/")
	}
	return "https://estatelist.in"
}

// listingQueryParams are the parameters that shape a public listing page.
var listingQueryParams = []string{
	"category", "subcategory", "miniSubcategory", "propertyType",
	"minPrice", "maxPrice", "bedrooms", "bathrooms", "minArea", "maxArea",
	"sector", "mohalla", "sort", "page", "limit",
}

// GetProperties serves the public listing endpoint. Results are cached
// briefly in Redis keyed on the query parameters.
func (pc *PropertyController) GetProperties(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	params := make(map[string]string, len(listingQueryParams))
	for _, p := range listingQueryParams {
		params[p] = c.QueryParam(p)
	}

	cacheKey := utils.ListingCacheKey(params)
	var cached []models.Property
	if hit, err := utils.GetCached(ctx, pc.Redis, cacheKey, &cached); err == nil && hit {
		return c.JSON(http.StatusOK, models.OK("Properties retrieved successfully", cached))
	}

	filter := utils.ListingFilter(utils.ListingQuery{
		Category:        params["category"],
		Subcategory:     params["subcategory"],
		MiniSubcategory: params["miniSubcategory"],
		PropertyType:    params["propertyType"],
		MinPrice:        params["minPrice"],
		MaxPrice:        params["maxPrice"],
		Bedrooms:        params["bedrooms"],
		Bathrooms:       params["bathrooms"],
		MinArea:         params["minArea"],
		MaxArea:         params["maxArea"],
		Sector:          params["sector"],
		Mohalla:         params["mohalla"],
	})

	skip, limit := utils.Pagination(params["page"], params["limit"])
	findOptions := options.Find().
		SetSort(utils.ListingSort(params["sort"])).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := pc.DB.Collection("properties").Find(ctx, filter, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve properties"))
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err = cursor.All(ctx, &properties); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode properties"))
	}

	if err := utils.SetCached(ctx, pc.Redis, cacheKey, properties, utils.ListingCacheTTL); err != nil {
		log.Printf("failed to cache listing page: %v", err)
	}

	return c.JSON(http.StatusOK, models.OK("Properties retrieved successfully", properties))
}

// GetProperty returns a single listing and bumps its view counter.
func (pc *PropertyController) GetProperty(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid property ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var property models.Property
	err = pc.DB.Collection("properties").FindOneAndUpdate(ctx,
		bson.M{"_id": objectID},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("Property not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve property"))
	}

	return c.JSON(http.StatusOK, models.OK("Property retrieved successfully", property))
}

// GetPropertyQRCode renders a QR code pointing at the public listing page.
func (pc *PropertyController) GetPropertyQRCode(c echo.Context) error {
	id := c.Param("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid property ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := pc.DB.Collection("properties").CountDocuments(ctx, bson.M{"_id": objectID})
	if err != nil || count == 0 {
		return c.JSON(http.StatusNotFound, models.Fail("Property not found"))
	}

	content := fmt.Sprintf("%s/properties/%s", publicBaseURL(), id)
	qrCode, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate QR code"))
	}

	qrCode, err = barcode.Scale(qrCode, 300, 300)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate QR code"))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qrCode); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate QR code"))
	}

	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// CreateProperty accepts a multipart listing submission. The new
// document always enters the moderation queue as pending/inactive no
// matter what the payload claims, and owners without a paid package are
// capped by the rolling free-listing quota.
func (pc *PropertyController) CreateProperty(c echo.Context) error {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Authentication failed"))
	}
	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid user ID"))
	}

	title := strings.TrimSpace(c.FormValue("title"))
	priceStr := strings.TrimSpace(c.FormValue("price"))
	priceType := utils.NormalizeToken(c.FormValue("priceType"))
	propertyType := utils.CanonicalPropertyType(c.FormValue("propertyType"))
	contactPhone := strings.TrimSpace(c.FormValue("contactPhone"))

	if title == "" || priceStr == "" || priceType == "" || propertyType == "" || contactPhone == "" {
		return c.JSON(http.StatusBadRequest, models.Fail("title, price, priceType, propertyType and contactPhone are required"))
	}
	if priceType != models.PriceTypeSale && priceType != models.PriceTypeRent {
		return c.JSON(http.StatusBadRequest, models.Fail("priceType must be 'sale' or 'rent'"))
	}
	price, err := strconv.ParseInt(priceStr, 10, 64)
	if err != nil || price < 0 {
		return c.JSON(http.StatusBadRequest, models.Fail("price must be a non-negative integer"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Free-listing quota, rolling window, unpackaged listings only
	quotaLimit := int64(envInt("FREE_LISTING_LIMIT", 5))
	windowDays := envInt("FREE_LISTING_WINDOW_DAYS", 30)
	since := time.Now().AddDate(0, 0, -windowDays)
	count, err := pc.Repo.CountFreeListings(ctx, ownerID, since)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to check listing quota"))
	}
	if count >= quotaLimit {
		return c.JSON(http.StatusForbidden, models.Fail(
			fmt.Sprintf("Free listing limit reached: at most %d listings per %d days", quotaLimit, windowDays)))
	}

	property := models.Property{
		ID:              primitive.NewObjectID(),
		Title:           title,
		Description:     strings.TrimSpace(c.FormValue("description")),
		Price:           price,
		PriceType:       priceType,
		PropertyType:    propertyType,
		SubCategory:     utils.NormalizeToken(c.FormValue("subCategory")),
		MiniSubCategory: utils.NormalizeToken(c.FormValue("miniSubCategory")),
		Location: models.Location{
			Sector:   utils.NormalizeToken(c.FormValue("sector")),
			Mohalla:  utils.NormalizeToken(c.FormValue("mohalla")),
			Landmark: strings.TrimSpace(c.FormValue("landmark")),
		},
		Specifications: parseSpecifications(c),
		Amenities:      splitCommaList(c.FormValue("amenities")),
		OwnerID:        ownerID,
		OwnerType:      strings.TrimSpace(c.FormValue("ownerType")),
		ContactInfo: models.ContactInfo{
			Name:  strings.TrimSpace(c.FormValue("contactName")),
			Phone: contactPhone,
			Email: strings.TrimSpace(c.FormValue("contactEmail")),
		},
		Premium:   false,
		Views:     0,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	property.MarkPending()

	// Listing photos
	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for _, file := range form.File["images"] {
			src, err := file.Open()
			if err != nil {
				continue
			}
			fileData, err := io.ReadAll(src)
			src.Close()
			if err != nil {
				continue
			}

			filename := uuid.New().String() + filepath.Ext(file.Filename)
			fileURL, err := utils.UploadListingImage(fileData, filename, "properties")
			if err != nil {
				return c.JSON(http.StatusBadRequest, models.Fail("Image upload failed: "+err.Error()))
			}
			property.Images = append(property.Images, fileURL)
		}
	}

	// Optional video tour
	if file, err := c.FormFile("video"); err == nil && file != nil {
		src, err := file.Open()
		if err == nil {
			fileData, err := io.ReadAll(src)
			src.Close()
			if err == nil {
				filename := uuid.New().String() + filepath.Ext(file.Filename)
				videoURL, err := utils.UploadFileToPath(fileData, filename, "video", "properties/videos")
				if err != nil {
					return c.JSON(http.StatusBadRequest, models.Fail("Video upload failed: "+err.Error()))
				}
				property.Video = videoURL
				if thumb, err := utils.GenerateVideoThumbnail(videoURL); err == nil {
					property.VideoThumbnail = thumb
				} else {
					log.Printf("video thumbnail generation failed: %v", err)
				}
			}
		}
	}

	if _, err := pc.DB.Collection("properties").InsertOne(ctx, property); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to create property"))
	}

	pc.afterSubmission(property)

	return c.JSON(http.StatusCreated, models.OK("Property submitted for review", property))
}

// afterSubmission runs the best-effort side effects of a new listing:
// confirmation email, admin feed event, cache invalidation. None of
// them can fail the request.
func (pc *PropertyController) afterSubmission(property models.Property) {
	if property.ContactInfo.Email != "" {
		subject, body := utils.SubmissionEmailBody(property.ContactInfo.Name, property.Title)
		if err := utils.SendEmail(property.ContactInfo.Email, subject, body); err != nil {
			log.Printf("failed to send submission email: %v", err)
		}
	}

	pc.Hub.NotifyPropertySubmitted(map[string]interface{}{
		"id":           property.ID.Hex(),
		"title":        property.Title,
		"propertyType": property.PropertyType,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	utils.InvalidateListingCache(ctx, pc.Redis)
}

// UpdateProperty lets the owner (or an admin) edit a listing. Every
// edit drops the listing back into the moderation queue, including
// edits to an already approved or rejected listing.
func (pc *PropertyController) UpdateProperty(c echo.Context) error {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Authentication failed"))
	}
	userType := middleware.ExtractUserType(c)

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid property ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var property models.Property
	err = pc.DB.Collection("properties").FindOne(ctx, bson.M{"_id": objectID}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("Property not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve property"))
	}

	if property.OwnerID.Hex() != userID && userType != "admin" {
		return c.JSON(http.StatusForbidden, models.Fail("You are not authorized to update this property"))
	}

	updateData := make(map[string]interface{})
	if err := c.Bind(&updateData); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}

	// Fields the caller can never set directly
	for _, key := range []string{"_id", "id", "ownerId", "views", "premium", "packageId", "createdAt",
		"status", "approvalStatus", "isApproved"} {
		delete(updateData, key)
	}

	if raw, ok := updateData["propertyType"].(string); ok {
		updateData["propertyType"] = utils.CanonicalPropertyType(raw)
	}
	if raw, ok := updateData["subCategory"].(string); ok {
		updateData["subCategory"] = utils.NormalizeToken(raw)
	}
	if raw, ok := updateData["miniSubCategory"].(string); ok {
		updateData["miniSubCategory"] = utils.NormalizeToken(raw)
	}

	// Every edit goes back through moderation
	updateData["status"] = models.StatusInactive
	updateData["approvalStatus"] = models.ApprovalPending
	updateData["isApproved"] = false
	updateData["updatedAt"] = time.Now()

	result, err := pc.DB.Collection("properties").UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateData},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update property"))
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Fail("Property not found"))
	}

	var updated models.Property
	if err := pc.DB.Collection("properties").FindOne(ctx, bson.M{"_id": objectID}).Decode(&updated); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Property updated but failed to retrieve updated data"))
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		utils.InvalidateListingCache(ctx, pc.Redis)
	}()

	return c.JSON(http.StatusOK, models.OK("Property updated and submitted for review", updated))
}

// DeleteProperty soft-deletes a listing by flipping its status. There
// is no hard delete path.
func (pc *PropertyController) DeleteProperty(c echo.Context) error {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Authentication failed"))
	}
	userType := middleware.ExtractUserType(c)

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid property ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var property models.Property
	err = pc.DB.Collection("properties").FindOne(ctx, bson.M{"_id": objectID}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("Property not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve property"))
	}

	if property.OwnerID.Hex() != userID && userType != "admin" {
		return c.JSON(http.StatusForbidden, models.Fail("You are not authorized to delete this property"))
	}

	_, err = pc.DB.Collection("properties").UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": models.StatusInactive, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to delete property"))
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		utils.InvalidateListingCache(ctx, pc.Redis)
	}()

	return c.JSON(http.StatusOK, models.OK("Property deleted successfully", nil))
}

// GetMyProperties lists the requester's own properties in every
// moderation state.
func (pc *PropertyController) GetMyProperties(c echo.Context) error {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Authentication failed"))
	}
	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid user ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := pc.DB.Collection("properties").Find(ctx, bson.M{"ownerId": ownerID}, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve properties"))
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err = cursor.All(ctx, &properties); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode properties"))
	}

	return c.JSON(http.StatusOK, models.OK("Properties retrieved successfully", properties))
}

func parseSpecifications(c echo.Context) models.Specifications {
	atoi := func(name string) int {
		n, _ := strconv.Atoi(strings.TrimSpace(c.FormValue(name)))
		return n
	}
	return models.Specifications{
		Bedrooms:    atoi("bedrooms"),
		Bathrooms:   atoi("bathrooms"),
		Area:        atoi("area"),
		Floor:       atoi("floor"),
		TotalFloors: atoi("totalFloors"),
		Parking:     c.FormValue("parking") == "true",
	}
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
