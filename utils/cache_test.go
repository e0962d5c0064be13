package utils

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingCacheKeyStable(t *testing.T) {
	a := ListingCacheKey(map[string]string{"category": "buy", "page": "2", "sort": "price_low"})
	b := ListingCacheKey(map[string]string{"sort": "price_low", "category": "buy", "page": "2"})

	// Map iteration order must not leak into the key.
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "listings:"))
}

func TestListingCacheKeyDistinguishesQueries(t *testing.T) {
	a := ListingCacheKey(map[string]string{"category": "buy"})
	b := ListingCacheKey(map[string]string{"category": "rent"})
	c := ListingCacheKey(map[string]string{"category": "buy", "page": "2"})

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCacheHelpersNilClient(t *testing.T) {
	ctx := context.Background()

	var out []string
	hit, err := GetCached(ctx, nil, "listings:x", &out)
	assert.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, SetCached(ctx, nil, "listings:x", []string{"a"}, ListingCacheTTL))

	// Must not panic without Redis.
	InvalidateListingCache(ctx, nil)
}
