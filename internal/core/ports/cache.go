package ports

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value cache with per-entry expiration.
// Query handlers use it for read-through caching of serialized responses;
// a miss is not an error.
type Cache interface {
	// Get returns the cached value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for the given time to live.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key from the cache. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key string) error
}

// OrderCacheKey is the cache key under which the order read model for the
// given order id is stored. Command handlers use it to evict the entry when
// the order changes.
func OrderCacheKey(orderID string) string {
	return "order:" + orderID
}
