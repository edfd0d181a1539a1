package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// DefaultLimit and MaxLimit bound page sizes for list endpoints.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// EncodeToken creates a base64 keyset token from the last row's creation time and id.
func EncodeToken(createdAt time.Time, id string) string {
	return EncodeMultiFieldToken(createdAt.UTC().Format(timeFormat), id)
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (time.Time, string, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return time.Time{}, "", err
	}
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}
	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return createdAt, parts[1], nil
}

// EncodeMultiFieldToken creates a token with any number of string fields.
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields.
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}

// NormalizeLimit clamps a requested page size into [1, MaxLimit].
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
