package utils

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListingQuery carries the raw query parameters of a public listing
// request. All fields are optional strings straight off the URL.
type ListingQuery struct {
	Category        string
	Subcategory     string
	MiniSubcategory string
	PropertyType    string
	MinPrice        string
	MaxPrice        string
	Bedrooms        string
	Bathrooms       string
	MinArea         string
	MaxArea         string
	Sector          string
	Mohalla         string
}

// The buy and rent tabs are fixed (propertyType, priceType) groupings,
// not plain propertyType filters. When the category is one of these two
// the disjunction overrides any explicit propertyType parameter.
var buyTabPairs = []bson.M{
	{"propertyType": "residential", "priceType": "sale"},
	{"propertyType": "flat", "priceType": "sale"},
	{"propertyType": "plot", "priceType": "sale"},
	{"propertyType": "commercial", "priceType": "sale"},
	{"propertyType": "agricultural", "priceType": "sale"},
}

var rentTabPairs = []bson.M{
	{"propertyType": "residential", "priceType": "rent"},
	{"propertyType": "flat", "priceType": "rent"},
	{"propertyType": "commercial", "priceType": "rent"},
	{"propertyType": "pg", "priceType": "rent"},
}

// ListingFilter builds the MongoDB filter for public listing queries.
// Moderation state is always enforced: only active documents whose
// approvalStatus is "approved" (or missing, for pre-moderation legacy
// documents) are ever returned. Empty or malformed parameters are
// omitted, never an error.
func ListingFilter(q ListingQuery) bson.M {
	filter := bson.M{
		"status":         "active",
		"approvalStatus": bson.M{"$in": []interface{}{"approved", nil}},
	}

	switch category := NormalizeToken(q.Category); category {
	case "buy":
		filter["$or"] = buyTabPairs
	case "rent":
		filter["$or"] = rentTabPairs
	default:
		propertyType := q.PropertyType
		if propertyType == "" {
			propertyType = category
		}
		if t := CanonicalPropertyType(propertyType); t != "" {
			filter["propertyType"] = t
		}
	}

	if s := NormalizeToken(q.Subcategory); s != "" {
		filter["subCategory"] = s
	}
	if s := NormalizeToken(q.MiniSubcategory); s != "" {
		filter["miniSubCategory"] = s
	}
	if s := NormalizeToken(q.Sector); s != "" {
		filter["location.sector"] = s
	}
	if s := NormalizeToken(q.Mohalla); s != "" {
		filter["location.mohalla"] = s
	}

	if r := rangeFilter(q.MinPrice, q.MaxPrice); r != nil {
		filter["price"] = r
	}
	if r := rangeFilter(q.MinArea, q.MaxArea); r != nil {
		filter["specifications.area"] = r
	}

	if b := strings.TrimSpace(q.Bedrooms); b != "" {
		// "4+" means four or more; everything else is an exact match.
		if strings.HasSuffix(b, "+") {
			if n, err := strconv.Atoi(strings.TrimSuffix(b, "+")); err == nil {
				filter["specifications.bedrooms"] = bson.M{"$gte": n}
			}
		} else if n, err := strconv.Atoi(b); err == nil {
			filter["specifications.bedrooms"] = n
		}
	}
	if b := strings.TrimSpace(q.Bathrooms); b != "" {
		if n, err := strconv.Atoi(b); err == nil {
			filter["specifications.bathrooms"] = n
		}
	}

	return filter
}

// rangeFilter builds an inclusive $gte/$lte document; either bound may
// be absent. Returns nil when neither bound parses.
func rangeFilter(min, max string) bson.M {
	r := bson.M{}
	if v, err := strconv.ParseInt(strings.TrimSpace(min), 10, 64); err == nil && min != "" {
		r["$gte"] = v
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(max), 10, 64); err == nil && max != "" {
		r["$lte"] = v
	}
	if len(r) == 0 {
		return nil
	}
	return r
}

// ListingSort maps the sort enum onto a sort specification. Premium
// listings rank first within every ordering. Unknown values fall back
// to newest.
func ListingSort(sort string) bson.D {
	var key string
	var dir int
	switch NormalizeToken(sort) {
	case "oldest":
		key, dir = "createdAt", 1
	case "price_low":
		key, dir = "price", 1
	case "price_high":
		key, dir = "price", -1
	case "popular":
		key, dir = "views", -1
	default:
		key, dir = "createdAt", -1
	}
	return bson.D{
		{Key: "premium", Value: -1},
		{Key: key, Value: dir},
	}
}

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// Pagination computes skip/limit from raw page/limit parameters.
func Pagination(page, limit string) (skip, lim int64) {
	p, err := strconv.ParseInt(strings.TrimSpace(page), 10, 64)
	if err != nil || p < 1 {
		p = 1
	}
	lim, err = strconv.ParseInt(strings.TrimSpace(limit), 10, 64)
	if err != nil || lim < 1 {
		lim = defaultPageSize
	}
	if lim > maxPageSize {
		lim = maxPageSize
	}
	return (p - 1) * lim, lim
}

// FreeListingFilter selects an owner's unpackaged properties created
// since the given time. Used by the free-listing quota check.
func FreeListingFilter(ownerID primitive.ObjectID, since time.Time) bson.M {
	return bson.M{
		"ownerId":   ownerID,
		"packageId": bson.M{"$exists": false},
		"createdAt": bson.M{"$gte": since},
	}
}
