package repositories

import (
	"context"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
)

// SignatureReader defines read operations over the signature ledger
type SignatureReader interface {
	FindSignatureByID(ctx context.Context, signatureID string) (*domain.Signature, error)

	// ListSignaturesByContractID returns the ledger of one contract ordered by arrival.
	ListSignaturesByContractID(ctx context.Context, contractID string) ([]domain.Signature, error)

	// ListSignaturesByContractIDs batches ledger reads for list pages.
	ListSignaturesByContractIDs(ctx context.Context, contractIDs []string) (map[string][]domain.Signature, error)
}

// SignatureWriter defines the append/delete operations of the ledger
type SignatureWriter interface {
	SaveSignature(ctx context.Context, signature domain.Signature) error
	DeleteSignature(ctx context.Context, signatureID string) error
}

// SignatureRepositoryFacade combines all signature-related repository interfaces
type SignatureRepositoryFacade interface {
	SignatureReader
	SignatureWriter
}
