// Package cache holds Redis backed read-through caches.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const catalogKeyPrefix = "catalog:list:"

// CatalogCache stores rendered named catalog lists.
type CatalogCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCatalogCache builds a cache. A nil client or zero ttl disables caching.
func NewCatalogCache(client redis.Cmdable, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// Enabled reports whether reads and writes reach Redis.
func (c *CatalogCache) Enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Key returns the Redis key of a named list.
func Key(name string) string {
	return catalogKeyPrefix + name
}

// Get decodes the cached list into dest. It reports false on a miss.
func (c *CatalogCache) Get(ctx context.Context, name string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	raw, err := c.client.Get(ctx, Key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under the list name for the configured ttl.
func (c *CatalogCache) Set(ctx context.Context, name string, value any) error {
	if !c.Enabled() {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key(name), raw, c.ttl).Err()
}

// Invalidate drops the given named lists.
func (c *CatalogCache) Invalidate(ctx context.Context, names ...string) error {
	if !c.Enabled() || len(names) == 0 {
		return nil
	}
	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = Key(name)
	}
	return c.client.Del(ctx, keys...).Err()
}
