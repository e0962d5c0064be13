package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListingFilterAlwaysEnforcesModeration(t *testing.T) {
	queries := []ListingQuery{
		{},
		{Category: "buy"},
		{Category: "rent"},
		{PropertyType: "flat", MinPrice: "100000", Bedrooms: "3"},
		{Category: "weird-nonsense", Sector: "12"},
	}

	for _, q := range queries {
		filter := ListingFilter(q)
		assert.Equal(t, "active", filter["status"])
		assert.Equal(t, bson.M{"$in": []interface{}{"approved", nil}}, filter["approvalStatus"])
	}
}

func TestListingFilterBuyTab(t *testing.T) {
	filter := ListingFilter(ListingQuery{Category: "buy"})

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok, "buy tab should produce a $or disjunction")
	assert.Len(t, or, 5)
	for _, pair := range or {
		assert.Equal(t, "sale", pair["priceType"])
	}
	assert.NotContains(t, filter, "propertyType")
}

func TestListingFilterRentTab(t *testing.T) {
	filter := ListingFilter(ListingQuery{Category: "rent"})

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	assert.Len(t, or, 4)
	for _, pair := range or {
		assert.Equal(t, "rent", pair["priceType"])
	}
}

func TestListingFilterTabOverridesPropertyType(t *testing.T) {
	// An explicit propertyType must not narrow the fixed tab pairs.
	filter := ListingFilter(ListingQuery{Category: "buy", PropertyType: "pg"})

	assert.Contains(t, filter, "$or")
	assert.NotContains(t, filter, "propertyType")
}

func TestListingFilterCategoryFallsBackAsPropertyType(t *testing.T) {
	filter := ListingFilter(ListingQuery{Category: "apartment"})
	assert.Equal(t, "flat", filter["propertyType"])

	// Explicit propertyType wins over the category fallback.
	filter = ListingFilter(ListingQuery{Category: "apartment", PropertyType: "plot"})
	assert.Equal(t, "plot", filter["propertyType"])
}

func TestListingFilterRanges(t *testing.T) {
	filter := ListingFilter(ListingQuery{
		MinPrice: "500000",
		MaxPrice: "2000000",
		MinArea:  "800",
	})

	assert.Equal(t, bson.M{"$gte": int64(500000), "$lte": int64(2000000)}, filter["price"])
	assert.Equal(t, bson.M{"$gte": int64(800)}, filter["specifications.area"])
}

func TestListingFilterMalformedNumbersOmitted(t *testing.T) {
	filter := ListingFilter(ListingQuery{
		MinPrice: "cheap",
		Bedrooms: "many",
	})

	assert.NotContains(t, filter, "price")
	assert.NotContains(t, filter, "specifications.bedrooms")
}

func TestListingFilterBedrooms(t *testing.T) {
	filter := ListingFilter(ListingQuery{Bedrooms: "3"})
	assert.Equal(t, 3, filter["specifications.bedrooms"])

	filter = ListingFilter(ListingQuery{Bedrooms: "4+"})
	assert.Equal(t, bson.M{"$gte": 4}, filter["specifications.bedrooms"])
}

func TestListingFilterLocation(t *testing.T) {
	filter := ListingFilter(ListingQuery{Sector: " 15 ", Mohalla: "Model Town"})
	assert.Equal(t, "15", filter["location.sector"])
	assert.Equal(t, "model town", filter["location.mohalla"])
}

func TestListingSort(t *testing.T) {
	cases := map[string]bson.D{
		"":           {{Key: "premium", Value: -1}, {Key: "createdAt", Value: -1}},
		"newest":     {{Key: "premium", Value: -1}, {Key: "createdAt", Value: -1}},
		"oldest":     {{Key: "premium", Value: -1}, {Key: "createdAt", Value: 1}},
		"price_low":  {{Key: "premium", Value: -1}, {Key: "price", Value: 1}},
		"price_high": {{Key: "premium", Value: -1}, {Key: "price", Value: -1}},
		"popular":    {{Key: "premium", Value: -1}, {Key: "views", Value: -1}},
		"bogus":      {{Key: "premium", Value: -1}, {Key: "createdAt", Value: -1}},
	}

	for input, want := range cases {
		assert.Equal(t, want, ListingSort(input), "sort=%q", input)
	}
}

func TestPagination(t *testing.T) {
	skip, limit := Pagination("", "")
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(12), limit)

	skip, limit = Pagination("3", "20")
	assert.Equal(t, int64(40), skip)
	assert.Equal(t, int64(20), limit)

	_, limit = Pagination("1", "5000")
	assert.Equal(t, int64(100), limit)

	skip, limit = Pagination("-2", "0")
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(12), limit)
}

func TestFreeListingFilter(t *testing.T) {
	ownerID := primitive.NewObjectID()
	since := time.Now().AddDate(0, 0, -30)

	filter := FreeListingFilter(ownerID, since)

	assert.Equal(t, ownerID, filter["ownerId"])
	assert.Equal(t, bson.M{"$exists": false}, filter["packageId"])
	assert.Equal(t, bson.M{"$gte": since}, filter["createdAt"])
}
