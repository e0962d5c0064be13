package controllers

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
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
)

type BlogController struct {
	DB *mongo.Database
}

func NewBlogController(db *mongo.Database) *BlogController {
	return &BlogController{DB: db}
}

// GetPublishedBlogs is the public blog index, newest publication first.
func (bc *BlogController) GetPublishedBlogs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	skip, limit := utils.Pagination(c.QueryParam("page"), c.QueryParam("limit"))
	filter := bson.M{"publishStatus": models.PublishStatusPublished}
	if tag := c.QueryParam("tag"); tag != "" {
		filter["tags"] = tag
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := bc.DB.Collection("blogs").Find(ctx, filter, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve blogs"))
	}
	defer cursor.Close(ctx)

	blogs := []models.Blog{}
	if err = cursor.All(ctx, &blogs); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode blogs"))
	}

	return c.JSON(http.StatusOK, models.OK("Blogs retrieved successfully", blogs))
}

// GetBlogBySlug serves the public article page and bumps the view
// counter. Drafts are not reachable here.
func (bc *BlogController) GetBlogBySlug(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var blog models.Blog
	err := bc.DB.Collection("blogs").FindOneAndUpdate(ctx,
		bson.M{"slug": c.Param("slug"), "publishStatus": models.PublishStatusPublished},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&blog)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("Blog not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve blog"))
	}

	return c.JSON(http.StatusOK, models.OK("Blog retrieved successfully", blog))
}

// GetAllBlogs is the admin index including drafts.
func (bc *BlogController) GetAllBlogs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	skip, limit := utils.Pagination(c.QueryParam("page"), c.QueryParam("limit"))
	filter := bson.M{}
	if status := c.QueryParam("publishStatus"); status != "" {
		filter["publishStatus"] = status
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := bc.DB.Collection("blogs").Find(ctx, filter, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve blogs"))
	}
	defer cursor.Close(ctx)

	blogs := []models.Blog{}
	if err = cursor.All(ctx, &blogs); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode blogs"))
	}

	return c.JSON(http.StatusOK, models.OK("Blogs retrieved successfully", blogs))
}

// CreateBlog creates an article, draft by default. Publishing stamps
// publishedAt.
func (bc *BlogController) CreateBlog(c echo.Context) error {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Fail("Authentication failed"))
	}
	authorID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid user ID"))
	}

	var req models.BlogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := bc.DB.Collection("blogs")
	slug, err := utils.UniqueSlug(ctx, coll, req.Title, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate slug"))
	}

	var author models.User
	authorName := ""
	if err := bc.DB.Collection("users").FindOne(ctx, bson.M{"_id": authorID}).Decode(&author); err == nil {
		authorName = author.FullName
	}

	status := req.PublishStatus
	if status == "" {
		status = models.PublishStatusDraft
	}

	blog := models.Blog{
		ID:              primitive.NewObjectID(),
		Title:           req.Title,
		Slug:            slug,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
		FeaturedImage:   req.FeaturedImage,
		AuthorID:        authorID,
		AuthorName:      authorName,
		PublishStatus:   status,
		Tags:            req.Tags,
		Views:           0,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if status == models.PublishStatusPublished {
		now := time.Now()
		blog.PublishedAt = &now
	}

	if _, err := coll.InsertOne(ctx, blog); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to create blog"))
	}

	return c.JSON(http.StatusCreated, models.OK("Blog created successfully", blog))
}

// UpdateBlog edits an article. A title change regenerates the slug;
// moving from draft to published stamps publishedAt once.
func (bc *BlogController) UpdateBlog(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid blog ID"))
	}

	var req models.BlogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := bc.DB.Collection("blogs")
	var existing models.Blog
	if err := coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("Blog not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve blog"))
	}

	update := bson.M{
		"title":           req.Title,
		"content":         req.Content,
		"excerpt":         req.Excerpt,
		"metaDescription": req.MetaDescription,
		"metaKeywords":    req.MetaKeywords,
		"featuredImage":   req.FeaturedImage,
		"tags":            req.Tags,
		"updatedAt":       time.Now(),
	}

	if req.Title != existing.Title {
		slug, err := utils.UniqueSlug(ctx, coll, req.Title, bson.M{"_id": bson.M{"$ne": objectID}})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate slug"))
		}
		update["slug"] = slug
	}

	if req.PublishStatus != "" && req.PublishStatus != existing.PublishStatus {
		update["publishStatus"] = req.PublishStatus
		if req.PublishStatus == models.PublishStatusPublished && existing.PublishedAt == nil {
			update["publishedAt"] = time.Now()
		}
	}

	if _, err := coll.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": update}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update blog"))
	}

	var updated models.Blog
	if err := coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&updated); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Blog updated but failed to retrieve updated data"))
	}

	return c.JSON(http.StatusOK, models.OK("Blog updated successfully", updated))
}

// DeleteBlog removes an article permanently.
func (bc *BlogController) DeleteBlog(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid blog ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := bc.DB.Collection("blogs").DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to delete blog"))
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Fail("Blog not found"))
	}

	return c.JSON(http.StatusOK, models.OK("Blog deleted successfully", nil))
}

// UploadBlogImage stores a featured image and returns its URL for use
// in a subsequent create or update.
func (bc *BlogController) UploadBlogImage(c echo.Context) error {
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
	fileURL, err := utils.UploadListingImage(fileData, filename, "blogs")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Image upload failed: "+err.Error()))
	}

	return c.JSON(http.StatusOK, models.OK("Image uploaded successfully", map[string]string{"url": fileURL}))
}
