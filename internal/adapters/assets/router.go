package assets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/core/ports/infrastructure"
	"github.com/SscSPs/docflow_backend/internal/platform/metrics"
)

// Router dispatches a reference to the fetcher registered for its scheme.
type Router struct {
	fetchers map[string]infrastructure.AssetFetcher
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

var _ infrastructure.AssetFetcher = (*Router)(nil)

// NewRouter creates an empty router. m may be nil.
func NewRouter(m *metrics.Metrics, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{fetchers: make(map[string]infrastructure.AssetFetcher), metrics: m, logger: logger}
}

// Handle registers f for scheme ("https", "s3", ...).
func (r *Router) Handle(scheme string, f infrastructure.AssetFetcher) *Router {
	r.fetchers[scheme] = f
	return r
}

// Fetch implements infrastructure.AssetFetcher.
func (r *Router) Fetch(ctx context.Context, ref string) ([]byte, error) {
	scheme, _, ok := strings.Cut(ref, "://")
	if !ok {
		return nil, fmt.Errorf("asset reference %q has no scheme: %w", ref, apperrors.ErrValidation)
	}
	scheme = strings.ToLower(scheme)
	f, ok := r.fetchers[scheme]
	if !ok {
		return nil, fmt.Errorf("no fetcher for scheme %q: %w", scheme, apperrors.ErrValidation)
	}
	data, err := f.Fetch(ctx, ref)
	r.metrics.ObserveAssetFetch(scheme, err)
	if err != nil {
		r.logger.DebugContext(ctx, "Asset fetch failed", slog.String("ref", ref), slog.String("error", err.Error()))
		return nil, err
	}
	return data, nil
}
