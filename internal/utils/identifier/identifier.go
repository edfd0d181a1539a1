package identifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/google/uuid"
)

// Kind identifies the family of records an identifier belongs to.
type Kind string

const (
	KindPartner      Kind = "partner"
	KindQuote        Kind = "quote"
	KindInvoice      Kind = "invoice"
	KindContract     Kind = "contract"
	KindSignature    Kind = "signature"
	KindGalleryPhoto Kind = "gallery_photo"
)

// suffixLength is the number of hex characters appended after the prefix.
// 10 hex chars = 40 bits of entropy.
const suffixLength = 10

// MaxAttempts bounds regeneration on storage-level collisions.
const MaxAttempts = 3

var prefixes = map[Kind]string{
	KindPartner:      "PRT",
	KindQuote:        "QT",
	KindInvoice:      "INV",
	KindContract:     "CTR",
	KindSignature:    "SIG",
	KindGalleryPhoto: "GPH",
}

// ErrIdentifierSpaceExhausted is returned when every attempt collided. Given the entropy
// this means the storage layer or the generator is misconfigured.
var ErrIdentifierSpaceExhausted = fmt.Errorf("identifier collisions exceeded %d attempts: %w", MaxAttempts, apperrors.ErrInternal)

// Prefix returns the prefix for a kind, or an empty string for unknown kinds.
func Prefix(kind Kind) string {
	return prefixes[kind]
}

// Next generates a new identifier like "QT-3F9A12BC07".
func Next(kind Kind) string {
	prefix, ok := prefixes[kind]
	if !ok {
		panic(fmt.Sprintf("identifier: unknown kind %q", kind))
	}
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(raw[:suffixLength])
}

// KindOf resolves the kind of an identifier from its prefix.
func KindOf(id string) (Kind, bool) {
	prefix, suffix, found := strings.Cut(id, "-")
	if !found || suffix == "" {
		return "", false
	}
	for kind, p := range prefixes {
		if p == prefix {
			return kind, true
		}
	}
	return "", false
}

// IsKind reports whether id is a well-formed identifier of the given kind.
func IsKind(id string, kind Kind) bool {
	k, ok := KindOf(id)
	return ok && k == kind
}

// WithRetry generates an identifier and hands it to save. When save reports
// apperrors.ErrDuplicate a fresh identifier is generated, up to MaxAttempts in total.
func WithRetry(kind Kind, save func(id string) error) (string, error) {
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		id := Next(kind)
		err := save(id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return "", err
		}
	}
	return "", ErrIdentifierSpaceExhausted
}
