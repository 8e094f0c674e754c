package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const cachePrefix = "cache:"

// Cache implements usecase.Cache on redis. Period summaries are the
// only cached values; a miss surfaces as redis.Nil and callers fall
// back to recomputing.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.client.Get(ctx, cachePrefix+key).Bytes()
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, cachePrefix+key, value, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, cachePrefix+key).Err()
}
