package services

import (
	"context"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/SscSPs/docflow_backend/internal/dto"
)

// SignatureSvcFacade manages a contract's signature ledger. Every mutation returns the
// ledger with the contract status recomputed from it.
type SignatureSvcFacade interface {
	AddSignature(ctx context.Context, contractID string, req dto.AddSignatureRequest, actorID string) (*domain.Signature, *domain.SignatureLedger, error)
	GetSignatureLedger(ctx context.Context, contractID string) (*domain.SignatureLedger, error)
	DeleteSignature(ctx context.Context, contractID string, signatureID string) (*domain.SignatureLedger, error)
}
