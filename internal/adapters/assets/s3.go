package assets

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/core/ports/infrastructure"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectGetter is the subset of *s3.Client used here.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Fetcher reads s3://bucket/key references.
type S3Fetcher struct {
	client objectGetter
}

var _ infrastructure.AssetFetcher = (*S3Fetcher)(nil)

// NewS3Fetcher loads the default AWS credential chain for region.
func NewS3Fetcher(ctx context.Context, region string) (*S3Fetcher, error) {
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Fetcher{client: s3.NewFromConfig(awsCfg)}, nil
}

// Fetch implements infrastructure.AssetFetcher.
func (f *S3Fetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	bucket, key, err := parseS3Ref(ref)
	if err != nil {
		return nil, err
	}
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return nil, fmt.Errorf("get s3 object %s: %v: %w", ref, err, apperrors.ErrUpstream)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(io.LimitReader(out.Body, MaxAssetBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read s3 object %s: %v: %w", ref, err, apperrors.ErrUpstream)
	}
	if len(data) > MaxAssetBytes {
		return nil, fmt.Errorf("s3 object %s exceeds %d bytes: %w", ref, MaxAssetBytes, apperrors.ErrValidation)
	}
	return data, nil
}

func parseS3Ref(ref string) (string, string, error) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid s3 reference %q: %w", ref, apperrors.ErrValidation)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("s3 reference %q has no key: %w", ref, apperrors.ErrValidation)
	}
	return u.Host, key, nil
}
