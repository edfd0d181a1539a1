package utils

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// ImageDigest returns the hex-encoded BLAKE2b-256 digest of a signature payload.
// It lets auditors verify that a stored signature image was not altered.
func ImageDigest(payload string) string {
	sum := blake2b.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
