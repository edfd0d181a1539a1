package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/docflow_backend/internal/core/ports/infrastructure"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is a process-local infrastructure.Cache used when Redis is not configured.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

var _ infrastructure.Cache = (*MemoryCache)(nil)

// NewMemoryCache returns an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]entry), now: time.Now}
}

// Get implements infrastructure.Cache. Expired entries are dropped on read.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

// Set implements infrastructure.Cache. A zero ttl keeps the value until invalidated.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

// DeletePrefix implements infrastructure.Cache.
func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}
