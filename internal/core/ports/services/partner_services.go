package services

import (
	"context"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/SscSPs/docflow_backend/internal/dto"
)

// PartnerReaderSvc defines read operations for the partner directory
type PartnerReaderSvc interface {
	// GetPartnerByID retrieves a partner by its identifier.
	GetPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error)

	// ListPartners returns a page of partners and the token of the next page.
	ListPartners(ctx context.Context, params dto.ListParams) ([]domain.Partner, *string, error)
}

// PartnerWriterSvc defines write operations for the partner directory
type PartnerWriterSvc interface {
	CreatePartner(ctx context.Context, req dto.CreatePartnerRequest, actorID string) (*domain.Partner, error)
	UpdatePartner(ctx context.Context, partnerID string, req dto.UpdatePartnerRequest, actorID string) (*domain.Partner, error)

	// DeletePartner removes a partner that no document references.
	DeletePartner(ctx context.Context, partnerID string) error
}

// PartnerSvcFacade combines all partner-related service interfaces
type PartnerSvcFacade interface {
	PartnerReaderSvc
	PartnerWriterSvc
}
