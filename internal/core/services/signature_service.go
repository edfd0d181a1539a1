package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/dto"
	"github.com/SscSPs/docflow_backend/internal/utils"
	"github.com/SscSPs/docflow_backend/internal/utils/identifier"
)

// signatureService implements the SignatureSvcFacade interface
type signatureService struct {
	BaseService
	signatureRepo portsrepo.SignatureRepositoryFacade
	contractRepo  portsrepo.ContractReader
}

// NewSignatureService creates a new signature service with the provided dependencies
func NewSignatureService(signatureRepo portsrepo.SignatureRepositoryFacade, contractRepo portsrepo.ContractReader, opts ...Option) portssvc.SignatureSvcFacade {
	return &signatureService{
		BaseService:   newBaseService(opts),
		signatureRepo: signatureRepo,
		contractRepo:  contractRepo,
	}
}

var _ portssvc.SignatureSvcFacade = (*signatureService)(nil)

// AddSignature appends a signature to a contract that has been sent and returns the
// recomputed ledger.
func (s *signatureService) AddSignature(ctx context.Context, contractID string, req dto.AddSignatureRequest, actorID string) (*domain.Signature, *domain.SignatureLedger, error) {
	name := strings.TrimSpace(req.SignerName)
	if name == "" {
		return nil, nil, validationError("signerName is required")
	}
	if !req.SignerRole.IsValid() {
		return nil, nil, validationError(fmt.Sprintf("signerRole %q is not supported", req.SignerRole))
	}
	if strings.TrimSpace(req.ImageData) == "" {
		return nil, nil, validationError("imageData is required")
	}

	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, nil, err
	}
	if err := contract.EnsureSignable(); err != nil {
		return nil, nil, err
	}

	sig := domain.Signature{
		ContractID:  contractID,
		SignerName:  name,
		SignerRole:  req.SignerRole,
		ImageData:   req.ImageData,
		ImageDigest: utils.ImageDigest(req.ImageData),
		CreatedAt:   s.Now(),
		CreatedBy:   actorID,
	}
	_, err = identifier.WithRetry(identifier.KindSignature, func(id string) error {
		sig.SignatureID = id
		return s.signatureRepo.SaveSignature(ctx, sig)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save signature", slog.String("contract_id", contractID))
		return nil, nil, err
	}
	s.invalidateStats(ctx, statsPrefixContracts)

	ledger, err := s.ledger(ctx, contract)
	if err != nil {
		return nil, nil, err
	}
	s.LogInfo(ctx, "Signature added",
		slog.String("contract_id", contractID),
		slog.String("signature_id", sig.SignatureID),
		slog.String("role", string(sig.SignerRole)),
		slog.String("status", string(ledger.Status)))
	return &sig, ledger, nil
}

// GetSignatureLedger lists a contract's signatures with completeness flags.
func (s *signatureService) GetSignatureLedger(ctx context.Context, contractID string) (*domain.SignatureLedger, error) {
	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return s.ledger(ctx, contract)
}

// DeleteSignature removes one ledger entry of the given contract.
func (s *signatureService) DeleteSignature(ctx context.Context, contractID string, signatureID string) (*domain.SignatureLedger, error) {
	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	sig, err := s.signatureRepo.FindSignatureByID(ctx, signatureID)
	if err != nil {
		return nil, err
	}
	if sig.ContractID != contractID {
		return nil, fmt.Errorf("signature %s does not belong to contract %s: %w", signatureID, contractID, apperrors.ErrNotFound)
	}

	if err := s.signatureRepo.DeleteSignature(ctx, signatureID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete signature", slog.String("signature_id", signatureID))
		}
		return nil, err
	}
	s.invalidateStats(ctx, statsPrefixContracts)
	s.LogInfo(ctx, "Signature deleted", slog.String("contract_id", contractID), slog.String("signature_id", signatureID))
	return s.ledger(ctx, contract)
}

func (s *signatureService) ledger(ctx context.Context, contract *domain.Contract) (*domain.SignatureLedger, error) {
	signatures, err := s.signatureRepo.ListSignaturesByContractID(ctx, contract.ContractID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load signature ledger", slog.String("contract_id", contract.ContractID))
		return nil, err
	}
	if signatures == nil {
		signatures = []domain.Signature{}
	}
	contract.ApplySignatures(signatures)
	return &domain.SignatureLedger{
		ContractID: contract.ContractID,
		Signatures: signatures,
		Summary:    contract.Signatures,
		Status:     contract.Status,
	}, nil
}
