package stats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheVersionKey = "advisor:stats:version"

// Cache stores rendered reports in Redis under a versioned key. Bumping the
// version invalidates every entry at once.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper. A nil client or a non-positive ttl
// disables caching.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

// Version returns the current cache version, initialising when missing.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, cacheVersionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// BuildKey composes the cache key with the current version.
func (c *Cache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(parts, ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", joined, ver), nil
}

// FetchText loads a cached value or populates it using the loader.
func (c *Cache) FetchText(ctx context.Context, key string, loader func(context.Context) (string, error)) (string, error) {
	if loader == nil {
		return "", errors.New("stats: cache loader required")
	}
	if c == nil || c.client == nil {
		return loader(ctx)
	}
	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, redis.Nil) {
		return "", err
	}
	value, err := loader(ctx)
	if err != nil {
		return "", err
	}
	if err := c.Store(ctx, key, value); err != nil {
		return "", err
	}
	return value, nil
}

// Store writes value under key with the configured ttl.
func (c *Cache) Store(ctx context.Context, key, value string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key, value, c.ttl).Err()
}

// Bump invalidates the cache by incrementing the global version.
func (c *Cache) Bump(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Result()
}

func keyReport() string {
	return strings.Join([]string{"advisor", "stats", "report"}, ":")
}
