package advisor

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores advisory responses in Redis so identical snapshots do not
// re-bill the text-generation provider. A nil *Cache is valid and means
// caching is disabled.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache connects to the Redis instance at addr. The connection is lazy;
// a dead Redis degrades to cache misses rather than errors.
func NewCache(addr string) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    24 * time.Hour,
	}
}

// Get returns the cached response for key, if any.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores a response under key. Failures are ignored; the cache is an
// optimization, never a dependency.
func (c *Cache) Set(ctx context.Context, key, value string) {
	if c == nil {
		return
	}
	c.client.Set(ctx, key, value, c.ttl)
}
