package infrastructure

import (
	"context"
	"time"
)

// Cache is a byte-oriented response cache with TTL and prefix invalidation.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeletePrefix evicts every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}
