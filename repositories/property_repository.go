package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estatelist/estatelist_backend/models"
	"github.com/estatelist/estatelist_backend/utils"
)

type PropertyRepository struct {
	collection *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{
		collection: db.Collection("properties"),
	}
}

// CountFreeListings counts the owner's unpackaged properties created
// since the given time. Feeds the free-listing quota check.
func (r *PropertyRepository) CountFreeListings(ctx context.Context, ownerID primitive.ObjectID, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, utils.FreeListingFilter(ownerID, since))
}

// NormalizeTypes rewrites every stored propertyType onto its canonical
// value. One-time repair for documents written before normalization was
// shared between the read and write paths. Returns the number of
// documents changed.
func (r *PropertyRepository) NormalizeTypes(ctx context.Context) (int64, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var fixed int64
	for cursor.Next(ctx) {
		var property models.Property
		if err := cursor.Decode(&property); err != nil {
			continue
		}

		canonical := utils.CanonicalPropertyType(property.PropertyType)
		subCategory := utils.NormalizeToken(property.SubCategory)
		if canonical == property.PropertyType && subCategory == property.SubCategory {
			continue
		}

		_, err := r.collection.UpdateOne(ctx,
			bson.M{"_id": property.ID},
			bson.M{"$set": bson.M{
				"propertyType": canonical,
				"subCategory":  subCategory,
				"updatedAt":    time.Now(),
			}},
		)
		if err != nil {
			return fixed, err
		}
		fixed++
	}
	return fixed, cursor.Err()
}
