package utils

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a URL slug: lower-case, runs of
// non-alphanumerics collapsed to single hyphens, no leading/trailing
// hyphens.
func Slugify(name string) string {
	slug := nonSlugChars.ReplaceAllString(NormalizeToken(name), "-")
	return strings.Trim(slug, "-")
}

// slugCandidate is the nth candidate for a base slug: the base itself,
// then base-2, base-3, and so on.
func slugCandidate(base string, n int) string {
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// UniqueSlug returns the first candidate slug not already taken within
// the given scope (e.g. bson.M{"categoryId": id} for subcategories, or
// an empty scope for globally unique slugs). Updates can keep their own
// slug by passing `"_id": bson.M{"$ne": id}` in the scope.
func UniqueSlug(ctx context.Context, coll *mongo.Collection, name string, scope bson.M) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "item"
	}

	for n := 1; n <= 1000; n++ {
		filter := bson.M{"slug": slugCandidate(base, n)}
		for k, v := range scope {
			filter[k] = v
		}
		count, err := coll.CountDocuments(ctx, filter)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return slugCandidate(base, n), nil
		}
	}
	return "", fmt.Errorf("no free slug for %q", base)
}
