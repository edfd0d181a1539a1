package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	portsinfra "github.com/SscSPs/docflow_backend/internal/core/ports/infrastructure"
	portsrepo "github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	"github.com/SscSPs/docflow_backend/internal/middleware"
	"github.com/SscSPs/docflow_backend/internal/platform/metrics"
)

// Stats cache key prefixes, one per document collection.
const (
	statsPrefixQuotes    = "stats:quotes"
	statsPrefixInvoices  = "stats:invoices"
	statsPrefixContracts = "stats:contracts"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock    func() time.Time
	cache    portsinfra.Cache
	cacheTTL time.Duration
	metrics  *metrics.Metrics
}

// Option configures the shared parts of a service.
type Option func(*BaseService)

// WithClock overrides time.Now, mostly for tests.
func WithClock(clock func() time.Time) Option {
	return func(b *BaseService) { b.clock = clock }
}

// WithStatsCache caches list statistics for ttl. Writes invalidate by prefix.
func WithStatsCache(cache portsinfra.Cache, ttl time.Duration) Option {
	return func(b *BaseService) {
		b.cache = cache
		b.cacheTTL = ttl
	}
}

// WithMetrics records service level metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *BaseService) { b.metrics = m }
}

func newBaseService(opts []Option) BaseService {
	b := BaseService{clock: time.Now}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Now returns the current time in UTC.
func (s *BaseService) Now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// cachedStats returns the status counts under key, loading and caching them on a miss.
// Cache failures only cost a recomputation.
func (s *BaseService) cachedStats(ctx context.Context, key string, load func() (portsrepo.StatusCounts, error)) (portsrepo.StatusCounts, error) {
	if s.cache != nil {
		raw, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.LogError(ctx, err, "Stats cache read failed", slog.String("key", key))
		}
		s.metrics.ObserveCacheLookup(ok)
		if ok {
			var counts portsrepo.StatusCounts
			if err := json.Unmarshal(raw, &counts); err == nil {
				return counts, nil
			}
		}
	}

	counts, err := load()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if raw, err := json.Marshal(counts); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
				s.LogError(ctx, err, "Stats cache write failed", slog.String("key", key))
			}
		}
	}
	return counts, nil
}

// invalidateStats evicts cached statistics for the given collections.
func (s *BaseService) invalidateStats(ctx context.Context, prefixes ...string) {
	if s.cache == nil {
		return
	}
	for _, prefix := range prefixes {
		if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
			s.LogError(ctx, err, "Stats cache invalidation failed", slog.String("prefix", prefix))
		}
	}
}
