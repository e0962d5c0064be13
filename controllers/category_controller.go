package controllers

import (
	"context"
	"io"
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

	"github.com/estatelist/estatelist_backend/models"
	"github.com/estatelist/estatelist_backend/utils"
)

type CategoryController struct {
	DB *mongo.Database
}

func NewCategoryController(db *mongo.Database) *CategoryController {
	return &CategoryController{DB: db}
}

// GetCategories returns the top taxonomy level ordered for display.
// Pass ?all=true (admin dashboards) to include inactive entries.
func (cc *CategoryController) GetCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if c.QueryParam("all") != "true" {
		filter["active"] = true
	}

	findOptions := options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "name", Value: 1},
	})
	cursor, err := cc.DB.Collection("categories").Find(ctx, filter, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve categories"))
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err = cursor.All(ctx, &categories); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode categories"))
	}

	return c.JSON(http.StatusOK, models.OK("Categories retrieved successfully", categories))
}

// GetCategory resolves one category by hex id or by slug.
func (cc *CategoryController) GetCategory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	param := c.Param("id")
	filter := bson.M{"slug": param}
	if objectID, err := primitive.ObjectIDFromHex(param); err == nil {
		filter = bson.M{"_id": objectID}
	}

	var category models.Category
	if err := cc.DB.Collection("categories").FindOne(ctx, filter).Decode(&category); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("Category not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve category"))
	}

	return c.JSON(http.StatusOK, models.OK("Category retrieved successfully", category))
}

// CreateCategory adds a top-level taxonomy node. The slug is derived
// from the name and suffixed with a counter on collision.
func (cc *CategoryController) CreateCategory(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, models.Fail("name is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := cc.DB.Collection("categories")
	slug, err := utils.UniqueSlug(ctx, coll, name, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate slug"))
	}

	order, _ := strconv.Atoi(c.FormValue("order"))
	category := models.Category{
		ID:            primitive.NewObjectID(),
		Name:          name,
		Slug:          slug,
		Order:         order,
		SortOrder:     order,
		Active:        true,
		IsActive:      true,
		Subcategories: []string{},
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if iconURL, err := cc.saveIcon(c); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
	} else if iconURL != "" {
		category.Icon = iconURL
	}

	if _, err := coll.InsertOne(ctx, category); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to create category"))
	}

	return c.JSON(http.StatusCreated, models.OK("Category created successfully", category))
}

// UpdateCategory edits name, ordering, active flag or icon. A name
// change regenerates the slug, again with collision suffixing.
func (cc *CategoryController) UpdateCategory(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid category ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := cc.DB.Collection("categories")
	var existing models.Category
	if err := coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("Category not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve category"))
	}

	update := bson.M{"updatedAt": time.Now()}

	if name := strings.TrimSpace(c.FormValue("name")); name != "" && name != existing.Name {
		slug, err := utils.UniqueSlug(ctx, coll, name, bson.M{"_id": bson.M{"$ne": objectID}})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate slug"))
		}
		update["name"] = name
		update["slug"] = slug
	}
	if v := c.FormValue("order"); v != "" {
		order, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Fail("order must be an integer"))
		}
		update["order"] = order
		update["sortOrder"] = order
	}
	if v := c.FormValue("active"); v != "" {
		active := v == "true"
		update["active"] = active
		update["isActive"] = active
	}
	if iconURL, err := cc.saveIcon(c); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
	} else if iconURL != "" {
		update["icon"] = iconURL
	}

	if _, err := coll.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": update}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update category"))
	}

	var updated models.Category
	if err := coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&updated); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Category updated but failed to retrieve updated data"))
	}

	return c.JSON(http.StatusOK, models.OK("Category updated successfully", updated))
}

// DeleteCategory refuses to remove a category that still has
// subcategories attached.
func (cc *CategoryController) DeleteCategory(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid category ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	children, err := cc.DB.Collection("subcategories").CountDocuments(ctx, bson.M{"categoryId": objectID.Hex()})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to check subcategories"))
	}
	if children > 0 {
		return c.JSON(http.StatusConflict, models.Fail("Category has subcategories; delete or move them first"))
	}

	result, err := cc.DB.Collection("categories").DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to delete category"))
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Fail("Category not found"))
	}

	return c.JSON(http.StatusOK, models.OK("Category deleted successfully", nil))
}

// UploadCategoryExcel attaches a spreadsheet to a category and records
// its sheet name and row count.
func (cc *CategoryController) UploadCategoryExcel(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid category ID"))
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("file is required"))
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Failed to read file"))
	}
	defer src.Close()
	fileData, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Failed to read file"))
	}

	filename := uuid.New().String() + filepath.Ext(file.Filename)
	fileURL, err := utils.UploadFileToPath(fileData, filename, "excel", "categories/excel")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Excel upload failed: "+err.Error()))
	}

	sheet, rows, err := utils.InspectExcel(fileData)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid Excel file: "+err.Error()))
	}

	excelFile := models.ExcelFile{
		FileName:   file.Filename,
		FileURL:    fileURL,
		SheetName:  sheet,
		RowCount:   rows,
		UploadedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cc.DB.Collection("categories").UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"excelFile": excelFile, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to attach Excel file"))
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Fail("Category not found"))
	}

	return c.JSON(http.StatusOK, models.OK("Excel file uploaded successfully", excelFile))
}

func (cc *CategoryController) saveIcon(c echo.Context) (string, error) {
	file, err := c.FormFile("icon")
	if err != nil || file == nil {
		return "", nil
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	fileData, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	filename := uuid.New().String() + filepath.Ext(file.Filename)
	return utils.UploadFileToPath(fileData, filename, "image", "categories")
}
