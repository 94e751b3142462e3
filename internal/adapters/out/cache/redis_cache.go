// Package cache provides ports.Cache implementations for the query layer:
// a Redis-backed cache for deployments and an in-memory cache for single
// instances and tests.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements ports.Cache on a Redis client. Expiration is
// delegated to Redis through the per-key TTL.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a cache talking to the Redis instance at addr.
func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Get returns the cached value for key. redis.Nil is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set stores value under key for the given time to live.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes key from the cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close releases the underlying client connections.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
