package infrastructure

import "context"

// AssetFetcher retrieves binary assets such as logos. Callers bound the call with ctx.
type AssetFetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}
