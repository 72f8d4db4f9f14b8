package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache key templates and TTLs for the read-heavy surfaces.
const (
	blogKeyPrefix     = "blog:%s"
	trendingBlogsKey  = "blogs:trending"
	latestBlogsPrefix = "blogs:latest:%d"
)

const (
	BlogTTL     = 30 * time.Minute
	TrendingTTL = 10 * time.Minute
	LatestTTL   = 2 * time.Minute
)

// BlogKey returns the cache key for a blog addressed by slug.
func BlogKey(slug string) string {
	return fmt.Sprintf(blogKeyPrefix, slug)
}

// TrendingKey returns the cache key for the trending blogs list.
func TrendingKey() string {
	return trendingBlogsKey
}

// LatestKey returns the cache key for a page of the latest-blogs listing.
func LatestKey(page int) string {
	return fmt.Sprintf(latestBlogsPrefix, page)
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first, on miss it calls fetch (which must populate
// dest), then stores the result with ttl. Cache writes are best-effort.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate removes a single key.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateBlog drops the cached detail for a blog slug together with
// the listing caches that may contain it.
func InvalidateBlog(ctx context.Context, slug string) {
	Invalidate(ctx, BlogKey(slug))
	Invalidate(ctx, TrendingKey())
}
