package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/core/ports/infrastructure"
	"github.com/sony/gobreaker"
)

// MaxAssetBytes caps the size of a fetched asset.
const MaxAssetBytes = 5 << 20

// HTTPFetcher downloads http(s) assets through a circuit breaker.
type HTTPFetcher struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

var _ infrastructure.AssetFetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a fetcher whose client timeout caps every request.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "asset-http",
			MaxRequests: 2,
			Interval:    time.Minute,
			Timeout:     20 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.Requests >= 4 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
			},
		}),
	}
}

// Fetch implements infrastructure.AssetFetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	out, err := f.breaker.Execute(func() (interface{}, error) {
		return f.get(ctx, ref)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %v: %w", ref, err, apperrors.ErrUpstream)
	}
	return out.([]byte), nil
}

func (f *HTTPFetcher) get(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxAssetBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxAssetBytes {
		return nil, fmt.Errorf("asset exceeds %d bytes", MaxAssetBytes)
	}
	return data, nil
}
