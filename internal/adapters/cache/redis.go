package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/docflow_backend/internal/core/ports/infrastructure"
	"github.com/redis/go-redis/v9"
)

const scanBatchSize = 100

// RedisCache implements infrastructure.Cache on Redis. Keys are namespaced with a prefix.
type RedisCache struct {
	client    *redis.Client
	namespace string
	logger    *slog.Logger
}

var _ infrastructure.Cache = (*RedisCache)(nil)

// NewRedisCache parses a redis:// URL and verifies connectivity.
func NewRedisCache(ctx context.Context, url, namespace string, logger *slog.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisCacheWithClient(client, namespace, logger), nil
}

// NewRedisCacheWithClient wraps an existing client; the caller keeps ownership of it.
func NewRedisCacheWithClient(client *redis.Client, namespace string, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{client: client, namespace: namespace, logger: logger}
}

func (c *RedisCache) key(k string) string {
	return c.namespace + k
}

// Get implements infrastructure.Cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, true, nil
}

// Set implements infrastructure.Cache.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// DeletePrefix walks matching keys with SCAN so Redis is never blocked by KEYS.
func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) error {
	var cursor uint64
	var deleted int64
	pattern := c.key(prefix) + "*"
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("redis del %s: %w", pattern, err)
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	c.logger.Debug("Invalidated cache prefix", slog.String("prefix", prefix), slog.Int64("deleted", deleted))
	return nil
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
