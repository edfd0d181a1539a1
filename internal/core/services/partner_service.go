package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/dto"
	"github.com/SscSPs/docflow_backend/internal/utils/identifier"
)

// partnerService implements the PartnerSvcFacade interface
type partnerService struct {
	BaseService
	partnerRepo portsrepo.PartnerRepositoryFacade
}

// NewPartnerService creates a new partner service with the provided dependencies
func NewPartnerService(partnerRepo portsrepo.PartnerRepositoryFacade, opts ...Option) portssvc.PartnerSvcFacade {
	return &partnerService{
		BaseService: newBaseService(opts),
		partnerRepo: partnerRepo,
	}
}

var _ portssvc.PartnerSvcFacade = (*partnerService)(nil)

// CreatePartner registers a new partner under a freshly generated identifier.
func (s *partnerService) CreatePartner(ctx context.Context, req dto.CreatePartnerRequest, actorID string) (*domain.Partner, error) {
	now := s.Now()
	partner := domain.Partner{
		Name:            req.Name,
		CompanyName:     req.CompanyName,
		TaxID:           req.TaxID,
		TradeRegistryID: req.TradeRegistryID,
		Address:         req.Address,
		City:            req.City,
		Country:         req.Country,
		Email:           req.Email,
		Phone:           req.Phone,
		LogoURL:         req.LogoURL,
		Representative:  req.Representative,
		AuditFields:     domain.NewAuditFields(actorID, now),
	}
	if err := validatePartner(partner); err != nil {
		return nil, err
	}

	_, err := identifier.WithRetry(identifier.KindPartner, func(id string) error {
		partner.PartnerID = id
		return s.partnerRepo.SavePartner(ctx, partner)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save partner", slog.String("name", partner.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Partner created successfully", slog.String("partner_id", partner.PartnerID))
	return &partner, nil
}

// GetPartnerByID retrieves a partner by its identifier
func (s *partnerService) GetPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find partner by ID", slog.String("partner_id", partnerID))
		}
		return nil, err
	}
	return partner, nil
}

// ListPartners returns a page of partners
func (s *partnerService) ListPartners(ctx context.Context, params dto.ListParams) ([]domain.Partner, *string, error) {
	partners, next, err := s.partnerRepo.ListPartners(ctx, params.ToListFilter())
	if err != nil {
		s.LogError(ctx, err, "Failed to list partners")
		return nil, nil, err
	}
	if partners == nil {
		partners = []domain.Partner{}
	}
	s.LogDebug(ctx, "Partners listed successfully", slog.Int("count", len(partners)))
	return partners, next, nil
}

// UpdatePartner applies the provided fields. Documents keep referencing the partner by id.
func (s *partnerService) UpdatePartner(ctx context.Context, partnerID string, req dto.UpdatePartnerRequest, actorID string) (*domain.Partner, error) {
	partner, err := s.GetPartnerByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		partner.Name = *req.Name
	}
	if req.CompanyName != nil {
		partner.CompanyName = req.CompanyName
	}
	if req.TaxID != nil {
		partner.TaxID = *req.TaxID
	}
	if req.TradeRegistryID != nil {
		partner.TradeRegistryID = *req.TradeRegistryID
	}
	if req.Address != nil {
		partner.Address = *req.Address
	}
	if req.City != nil {
		partner.City = *req.City
	}
	if req.Country != nil {
		partner.Country = *req.Country
	}
	if req.Email != nil {
		partner.Email = *req.Email
	}
	if req.Phone != nil {
		partner.Phone = *req.Phone
	}
	if req.LogoURL != nil {
		partner.LogoURL = req.LogoURL
	}
	if req.Representative != nil {
		partner.Representative = req.Representative
	}
	if err := validatePartner(*partner); err != nil {
		return nil, err
	}
	partner.Touch(actorID, s.Now())

	if err := s.partnerRepo.UpdatePartner(ctx, *partner); err != nil {
		s.LogError(ctx, err, "Failed to update partner", slog.String("partner_id", partnerID))
		return nil, err
	}
	s.LogInfo(ctx, "Partner updated successfully", slog.String("partner_id", partnerID))
	return partner, nil
}

// DeletePartner removes a partner; referenced partners are never deleted.
func (s *partnerService) DeletePartner(ctx context.Context, partnerID string) error {
	if _, err := s.GetPartnerByID(ctx, partnerID); err != nil {
		return err
	}
	refs, err := s.partnerRepo.CountPartnerReferences(ctx, partnerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count partner references", slog.String("partner_id", partnerID))
		return err
	}
	if refs > 0 {
		return fmt.Errorf("partner %s is referenced by %d documents: %w", partnerID, refs, apperrors.ErrInvalidState)
	}
	if err := s.partnerRepo.DeletePartner(ctx, partnerID); err != nil {
		s.LogError(ctx, err, "Failed to delete partner", slog.String("partner_id", partnerID))
		return err
	}
	s.LogInfo(ctx, "Partner deleted successfully", slog.String("partner_id", partnerID))
	return nil
}

func validatePartner(p domain.Partner) error {
	if p.Name == "" {
		return fmt.Errorf("partner name is required: %w", apperrors.ErrValidation)
	}
	return nil
}

// requirePartner checks that a document's partner reference resolves.
func requirePartner(ctx context.Context, repo portsrepo.PartnerReader, partnerID string) (*domain.Partner, error) {
	if !identifier.IsKind(partnerID, identifier.KindPartner) {
		return nil, fmt.Errorf("partnerID %q is not a partner identifier: %w", partnerID, apperrors.ErrValidation)
	}
	partner, err := repo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("partner %s: %w", partnerID, err)
		}
		return nil, err
	}
	return partner, nil
}
