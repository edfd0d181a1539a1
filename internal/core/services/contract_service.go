package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/dto"
	"github.com/SscSPs/docflow_backend/internal/utils/identifier"
	"golang.org/x/sync/errgroup"
)

// contractService implements the ContractSvcFacade interface
type contractService struct {
	BaseService
	contractRepo  portsrepo.ContractRepositoryFacade
	signatureRepo portsrepo.SignatureReader
	partnerRepo   portsrepo.PartnerReader
}

// NewContractService creates a new contract service with the provided dependencies
func NewContractService(
	contractRepo portsrepo.ContractRepositoryFacade,
	signatureRepo portsrepo.SignatureReader,
	partnerRepo portsrepo.PartnerReader,
	opts ...Option,
) portssvc.ContractSvcFacade {
	return &contractService{
		BaseService:   newBaseService(opts),
		contractRepo:  contractRepo,
		signatureRepo: signatureRepo,
		partnerRepo:   partnerRepo,
	}
}

var _ portssvc.ContractSvcFacade = (*contractService)(nil)

// loadContractWithLedger reads the contract and its signature ledger concurrently and
// applies the derived status.
func loadContractWithLedger(ctx context.Context, contracts portsrepo.ContractReader, signatures portsrepo.SignatureReader, contractID string) (*domain.Contract, []domain.Signature, error) {
	var (
		contract *domain.Contract
		ledger   []domain.Signature
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contract, err = contracts.FindContractByID(gctx, contractID)
		return err
	})
	g.Go(func() error {
		var err error
		ledger, err = signatures.ListSignaturesByContractID(gctx, contractID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	contract.ApplySignatures(ledger)
	return contract, ledger, nil
}

// CreateContract drafts a contract.
func (s *contractService) CreateContract(ctx context.Context, req dto.CreateContractRequest, actorID string) (*domain.Contract, error) {
	if _, err := requirePartner(ctx, s.partnerRepo, req.PartnerID); err != nil {
		return nil, err
	}

	now := s.Now()
	contract := domain.Contract{
		PartnerID:        req.PartnerID,
		ContractType:     req.ContractType,
		Title:            req.Title,
		Description:      req.Description,
		Clauses:          dto.ToDomainClauses(req.Clauses),
		PartnershipTerms: dto.ToDomainPartnershipTerms(req.PartnershipTerms),
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Value:            req.Value,
		Notes:            req.Notes,
		Lifecycle:        domain.LifecycleDraft,
		AuditFields:      domain.NewAuditFields(actorID, now),
	}
	if err := validateContract(contract); err != nil {
		return nil, err
	}
	contract.ApplySignatures(nil)

	_, err := identifier.WithRetry(identifier.KindContract, func(id string) error {
		contract.ContractID = id
		return s.contractRepo.SaveContract(ctx, contract)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save contract", slog.String("partner_id", contract.PartnerID))
		return nil, err
	}
	s.invalidateStats(ctx, statsPrefixContracts)

	s.LogInfo(ctx, "Contract created successfully",
		slog.String("contract_id", contract.ContractID),
		slog.String("type", string(contract.ContractType)))
	return &contract, nil
}

// GetContractByID retrieves a contract with its ledger-derived status.
func (s *contractService) GetContractByID(ctx context.Context, contractID string) (*domain.Contract, error) {
	contract, _, err := loadContractWithLedger(ctx, s.contractRepo, s.signatureRepo, contractID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load contract", slog.String("contract_id", contractID))
		}
		return nil, err
	}
	return contract, nil
}

// ListContracts returns a page of contracts with derived status counts.
func (s *contractService) ListContracts(ctx context.Context, params dto.ListParams) (*dto.ListContractsResponse, error) {
	contracts, next, err := s.contractRepo.ListContracts(ctx, params.ToListFilter())
	if err != nil {
		s.LogError(ctx, err, "Failed to list contracts")
		return nil, err
	}

	ids := make([]string, len(contracts))
	for i := range contracts {
		ids[i] = contracts[i].ContractID
	}
	ledgers := map[string][]domain.Signature{}
	if len(ids) > 0 {
		ledgers, err = s.signatureRepo.ListSignaturesByContractIDs(ctx, ids)
		if err != nil {
			s.LogError(ctx, err, "Failed to load signature ledgers")
			return nil, err
		}
	}
	for i := range contracts {
		contracts[i].ApplySignatures(ledgers[contracts[i].ContractID])
	}

	counts, err := s.cachedStats(ctx, statsPrefixContracts+":all", func() (portsrepo.StatusCounts, error) {
		return s.contractRepo.ContractStatusCounts(ctx)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to count contracts by status")
		return nil, err
	}

	return &dto.ListContractsResponse{
		Contracts: dto.ToContractResponses(contracts),
		NextToken: next,
		Stats:     dto.NewStatsResponse(domain.ContractStatuses, counts),
	}, nil
}

// UpdateContract edits a draft contract. Non-editable clauses must be kept as they are.
func (s *contractService) UpdateContract(ctx context.Context, contractID string, req dto.UpdateContractRequest, actorID string) (*domain.Contract, error) {
	contract, err := s.GetContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if err := contract.EnsureEditable(); err != nil {
		return nil, err
	}

	if req.Title != nil {
		contract.Title = *req.Title
	}
	if req.Description != nil {
		contract.Description = req.Description
	}
	if req.Clauses != nil {
		updated := dto.ToDomainClauses(*req.Clauses)
		if err := domain.ValidateClauseUpdate(contract.Clauses, updated); err != nil {
			return nil, err
		}
		contract.Clauses = updated
	}
	if req.PartnershipTerms != nil {
		contract.PartnershipTerms = dto.ToDomainPartnershipTerms(req.PartnershipTerms)
	}
	if req.StartDate != nil {
		contract.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		contract.EndDate = req.EndDate
	}
	if req.Value != nil {
		contract.Value = req.Value
	}
	if req.Notes != nil {
		contract.Notes = req.Notes
	}
	if err := validateContract(*contract); err != nil {
		return nil, err
	}
	contract.Touch(actorID, s.Now())

	if err := s.contractRepo.UpdateContract(ctx, *contract); err != nil {
		s.LogError(ctx, err, "Failed to update contract", slog.String("contract_id", contractID))
		return nil, err
	}
	s.LogInfo(ctx, "Contract updated successfully", slog.String("contract_id", contractID))
	return contract, nil
}

// DeleteContract removes a draft contract.
func (s *contractService) DeleteContract(ctx context.Context, contractID string) error {
	contract, err := s.GetContractByID(ctx, contractID)
	if err != nil {
		return err
	}
	if err := contract.EnsureDeletable(); err != nil {
		return err
	}
	if err := s.contractRepo.DeleteContract(ctx, contractID); err != nil {
		s.LogError(ctx, err, "Failed to delete contract", slog.String("contract_id", contractID))
		return err
	}
	s.invalidateStats(ctx, statsPrefixContracts)
	s.LogInfo(ctx, "Contract deleted successfully", slog.String("contract_id", contractID))
	return nil
}

// SendContract shares a draft contract for signature.
func (s *contractService) SendContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error) {
	return s.transition(ctx, contractID, actorID, "sent", func(c *domain.Contract) error {
		return c.Send()
	})
}

// ActivateContract puts a fully signed contract in force.
func (s *contractService) ActivateContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error) {
	return s.transition(ctx, contractID, actorID, "activated", func(c *domain.Contract) error {
		return c.Activate(s.Now())
	})
}

// TerminateContract ends an active contract with a reason.
func (s *contractService) TerminateContract(ctx context.Context, contractID string, req dto.TerminateContractRequest, actorID string) (*domain.Contract, error) {
	return s.transition(ctx, contractID, actorID, "terminated", func(c *domain.Contract) error {
		return c.Terminate(req.Reason, s.Now())
	})
}

func (s *contractService) transition(ctx context.Context, contractID, actorID, verb string, apply func(*domain.Contract) error) (*domain.Contract, error) {
	contract, err := s.GetContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	from := contract.Status
	if err := apply(contract); err != nil {
		return nil, err
	}
	contract.Touch(actorID, s.Now())
	if err := s.contractRepo.UpdateContract(ctx, *contract); err != nil {
		s.LogError(ctx, err, "Failed to persist contract transition", slog.String("contract_id", contractID))
		return nil, err
	}
	s.invalidateStats(ctx, statsPrefixContracts)
	s.LogInfo(ctx, "Contract "+verb,
		slog.String("contract_id", contractID),
		slog.String("from", string(from)),
		slog.String("to", string(contract.Status)))
	return contract, nil
}

func validateContract(c domain.Contract) error {
	if strings.TrimSpace(c.Title) == "" {
		return validationError("contract title is required")
	}
	if c.Value != nil && *c.Value < 0 {
		return validationError("contract value must not be negative")
	}
	if err := domain.ValidateDates(c.StartDate, c.EndDate); err != nil {
		return err
	}
	return domain.ValidateContractShape(c.ContractType, c.Clauses, c.PartnershipTerms)
}
