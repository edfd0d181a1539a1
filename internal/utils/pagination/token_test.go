package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(createdAt, "QT-ABCDEF0123")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.True(t, createdAt.Equal(decodedAt))
	assert.Equal(t, "QT-ABCDEF0123", decodedID)

	// Non-UTC times are normalised.
	loc := time.FixedZone("EET", 2*60*60)
	local := time.Date(2024, 1, 2, 3, 4, 5, 0, loc)
	decodedAt, _, err = DecodeToken(EncodeToken(local, "INV-1"))
	assert.NoError(t, err)
	assert.True(t, local.Equal(decodedAt))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, _, err = DecodeToken(EncodeMultiFieldToken("2023-05-15T00:00:00Z"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, _, err = DecodeToken(EncodeMultiFieldToken("yesterday", "QT-1"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-5))
	assert.Equal(t, 7, NormalizeLimit(7))
	assert.Equal(t, MaxLimit, NormalizeLimit(1000))
}
