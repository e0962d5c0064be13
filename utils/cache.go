package utils

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const listingCachePrefix = "listings:"

// ListingCacheTTL is short on purpose; moderation changes must show up
// quickly even if invalidation misses.
const ListingCacheTTL = 60 * time.Second

// ListingCacheKey derives a stable cache key from the query parameters
// of a listing request. Parameter order does not matter.
func ListingCacheKey(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
		b.WriteByte('&')
	}
	sum := md5.Sum([]byte(b.String()))
	return listingCachePrefix + hex.EncodeToString(sum[:])
}

// GetCached loads a cached JSON value. Returns false on a miss or when
// the cache is unavailable.
func GetCached(ctx context.Context, rdb *redis.Client, key string, dest interface{}) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	data, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(data), dest)
}

// SetCached stores a JSON value with a TTL.
func SetCached(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, data, ttl).Err()
}

// InvalidateListingCache drops every cached listing page. Best-effort:
// failures are logged and ignored.
func InvalidateListingCache(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	keys, err := rdb.Keys(ctx, listingCachePrefix+"*").Result()
	if err != nil {
		log.Printf("listing cache invalidation failed: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("listing cache invalidation failed: %v", err)
	}
}
