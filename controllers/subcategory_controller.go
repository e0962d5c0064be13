package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/estatelist/estatelist_backend/models"
	"github.com/estatelist/estatelist_backend/utils"
)

type SubcategoryController struct {
	DB *mongo.Database
}

func NewSubcategoryController(db *mongo.Database) *SubcategoryController {
	return &SubcategoryController{DB: db}
}

// syncEmbeddedSubcategories rewrites the legacy subcategories name list
// embedded in the parent category document from the subcategories
// collection. Older app builds still read the embedded list.
func (sc *SubcategoryController) syncEmbeddedSubcategories(ctx context.Context, categoryID string) error {
	cursor, err := sc.DB.Collection("subcategories").Find(ctx,
		bson.M{"categoryId": categoryID},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}}),
	)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var subs []models.Subcategory
	if err := cursor.All(ctx, &subs); err != nil {
		return err
	}

	names := make([]string, 0, len(subs))
	for _, s := range subs {
		names = append(names, s.Name)
	}

	objectID, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return err
	}
	_, err = sc.DB.Collection("categories").UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"subcategories": names, "updatedAt": time.Now()}},
	)
	return err
}

// GetSubcategories lists the subcategories of one category.
func (sc *SubcategoryController) GetSubcategories(c echo.Context) error {
	categoryID := c.Param("categoryId")
	if _, err := primitive.ObjectIDFromHex(categoryID); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid category ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"categoryId": categoryID}
	if c.QueryParam("all") != "true" {
		filter["active"] = true
	}

	findOptions := options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "name", Value: 1},
	})
	cursor, err := sc.DB.Collection("subcategories").Find(ctx, filter, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve subcategories"))
	}
	defer cursor.Close(ctx)

	subcategories := []models.Subcategory{}
	if err = cursor.All(ctx, &subcategories); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode subcategories"))
	}

	return c.JSON(http.StatusOK, models.OK("Subcategories retrieved successfully", subcategories))
}

// CreateSubcategory adds a second-level node. Slug collisions are
// resolved within the parent category only, so two categories may both
// have a "flats" subcategory.
func (sc *SubcategoryController) CreateSubcategory(c echo.Context) error {
	categoryID := strings.TrimSpace(c.FormValue("categoryId"))
	name := strings.TrimSpace(c.FormValue("name"))
	if categoryID == "" || name == "" {
		return c.JSON(http.StatusBadRequest, models.Fail("categoryId and name are required"))
	}
	parentID, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid category ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	parent, err := sc.DB.Collection("categories").CountDocuments(ctx, bson.M{"_id": parentID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to verify category"))
	}
	if parent == 0 {
		return c.JSON(http.StatusNotFound, models.Fail("Category not found"))
	}

	coll := sc.DB.Collection("subcategories")
	slug, err := utils.UniqueSlug(ctx, coll, name, bson.M{"categoryId": categoryID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate slug"))
	}

	order, _ := strconv.Atoi(c.FormValue("order"))
	subcategory := models.Subcategory{
		ID:         primitive.NewObjectID(),
		CategoryID: categoryID,
		Name:       name,
		Slug:       slug,
		Order:      order,
		SortOrder:  order,
		Active:     true,
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if _, err := coll.InsertOne(ctx, subcategory); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to create subcategory"))
	}

	if err := sc.syncEmbeddedSubcategories(ctx, categoryID); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Subcategory created but failed to sync category"))
	}

	return c.JSON(http.StatusCreated, models.OK("Subcategory created successfully", subcategory))
}

// UpdateSubcategory edits a subcategory. A rename regenerates the slug
// within the parent scope and resyncs the embedded name list.
func (sc *SubcategoryController) UpdateSubcategory(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid subcategory ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := sc.DB.Collection("subcategories")
	var existing models.Subcategory
	if err := coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("Subcategory not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve subcategory"))
	}

	update := bson.M{"updatedAt": time.Now()}
	renamed := false

	if name := strings.TrimSpace(c.FormValue("name")); name != "" && name != existing.Name {
		slug, err := utils.UniqueSlug(ctx, coll, name, bson.M{
			"categoryId": existing.CategoryID,
			"_id":        bson.M{"$ne": objectID},
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate slug"))
		}
		update["name"] = name
		update["slug"] = slug
		renamed = true
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

	if _, err := coll.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": update}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update subcategory"))
	}

	if renamed {
		if err := sc.syncEmbeddedSubcategories(ctx, existing.CategoryID); err != nil {
			return c.JSON(http.StatusInternalServerError, models.Fail("Subcategory updated but failed to sync category"))
		}
	}

	var updated models.Subcategory
	if err := coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&updated); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Subcategory updated but failed to retrieve updated data"))
	}

	return c.JSON(http.StatusOK, models.OK("Subcategory updated successfully", updated))
}

// DeleteSubcategory refuses while mini subcategories still point at it.
func (sc *SubcategoryController) DeleteSubcategory(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid subcategory ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var existing models.Subcategory
	if err := sc.DB.Collection("subcategories").FindOne(ctx, bson.M{"_id": objectID}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("Subcategory not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve subcategory"))
	}

	children, err := sc.DB.Collection("mini_subcategories").CountDocuments(ctx, bson.M{"subCategoryId": objectID.Hex()})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to check mini subcategories"))
	}
	if children > 0 {
		return c.JSON(http.StatusConflict, models.Fail("Subcategory has mini subcategories; delete or move them first"))
	}

	inUse, err := sc.DB.Collection("properties").CountDocuments(ctx, bson.M{"subCategory": existing.Slug})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to check properties"))
	}
	if inUse > 0 {
		return c.JSON(http.StatusConflict, models.Fail("Subcategory is referenced by existing properties"))
	}

	if _, err := sc.DB.Collection("subcategories").DeleteOne(ctx, bson.M{"_id": objectID}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to delete subcategory"))
	}

	if err := sc.syncEmbeddedSubcategories(ctx, existing.CategoryID); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Subcategory deleted but failed to sync category"))
	}

	return c.JSON(http.StatusOK, models.OK("Subcategory deleted successfully", nil))
}

// GetMiniSubcategories lists the third taxonomy level under one
// subcategory.
func (sc *SubcategoryController) GetMiniSubcategories(c echo.Context) error {
	subCategoryID := c.Param("subcategoryId")
	if _, err := primitive.ObjectIDFromHex(subCategoryID); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid subcategory ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"subCategoryId": subCategoryID}
	if c.QueryParam("all") != "true" {
		filter["active"] = true
	}

	findOptions := options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "name", Value: 1},
	})
	cursor, err := sc.DB.Collection("mini_subcategories").Find(ctx, filter, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve mini subcategories"))
	}
	defer cursor.Close(ctx)

	minis := []models.MiniSubcategory{}
	if err = cursor.All(ctx, &minis); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode mini subcategories"))
	}

	return c.JSON(http.StatusOK, models.OK("Mini subcategories retrieved successfully", minis))
}

// CreateMiniSubcategory adds a third-level node, slug scoped to the
// parent subcategory.
func (sc *SubcategoryController) CreateMiniSubcategory(c echo.Context) error {
	subCategoryID := strings.TrimSpace(c.FormValue("subCategoryId"))
	name := strings.TrimSpace(c.FormValue("name"))
	if subCategoryID == "" || name == "" {
		return c.JSON(http.StatusBadRequest, models.Fail("subCategoryId and name are required"))
	}
	parentID, err := primitive.ObjectIDFromHex(subCategoryID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid subcategory ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	parent, err := sc.DB.Collection("subcategories").CountDocuments(ctx, bson.M{"_id": parentID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to verify subcategory"))
	}
	if parent == 0 {
		return c.JSON(http.StatusNotFound, models.Fail("Subcategory not found"))
	}

	coll := sc.DB.Collection("mini_subcategories")
	slug, err := utils.UniqueSlug(ctx, coll, name, bson.M{"subCategoryId": subCategoryID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate slug"))
	}

	order, _ := strconv.Atoi(c.FormValue("order"))
	mini := models.MiniSubcategory{
		ID:            primitive.NewObjectID(),
		SubCategoryID: subCategoryID,
		Name:          name,
		Slug:          slug,
		Order:         order,
		Active:        true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if _, err := coll.InsertOne(ctx, mini); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to create mini subcategory"))
	}

	return c.JSON(http.StatusCreated, models.OK("Mini subcategory created successfully", mini))
}

// UpdateMiniSubcategory edits a third-level node.
func (sc *SubcategoryController) UpdateMiniSubcategory(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid mini subcategory ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := sc.DB.Collection("mini_subcategories")
	var existing models.MiniSubcategory
	if err := coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("Mini subcategory not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to retrieve mini subcategory"))
	}

	update := bson.M{"updatedAt": time.Now()}

	if name := strings.TrimSpace(c.FormValue("name")); name != "" && name != existing.Name {
		slug, err := utils.UniqueSlug(ctx, coll, name, bson.M{
			"subCategoryId": existing.SubCategoryID,
			"_id":           bson.M{"$ne": objectID},
		})
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
	}
	if v := c.FormValue("active"); v != "" {
		update["active"] = v == "true"
	}

	if _, err := coll.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": update}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update mini subcategory"))
	}

	var updated models.MiniSubcategory
	if err := coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&updated); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Mini subcategory updated but failed to retrieve updated data"))
	}

	return c.JSON(http.StatusOK, models.OK("Mini subcategory updated successfully", updated))
}

// DeleteMiniSubcategory removes a third-level node.
func (sc *SubcategoryController) DeleteMiniSubcategory(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid mini subcategory ID"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := sc.DB.Collection("mini_subcategories").DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to delete mini subcategory"))
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Fail("Mini subcategory not found"))
	}

	return c.JSON(http.StatusOK, models.OK("Mini subcategory deleted successfully", nil))
}
