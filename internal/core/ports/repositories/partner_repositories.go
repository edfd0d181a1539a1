package repositories

import (
	"context"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
)

// PartnerReader defines read operations for partner data
type PartnerReader interface {
	// FindPartnerByID retrieves a partner by its identifier.
	FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error)

	// ListPartners returns a page of partners and the token for the next page, if any.
	ListPartners(ctx context.Context, filter ListFilter) ([]domain.Partner, *string, error)

	// CountPartnerReferences counts quotes, invoices and contracts pointing at the partner.
	CountPartnerReferences(ctx context.Context, partnerID string) (int, error)
}

// PartnerWriter defines write operations for partner data
type PartnerWriter interface {
	SavePartner(ctx context.Context, partner domain.Partner) error
	UpdatePartner(ctx context.Context, partner domain.Partner) error
	DeletePartner(ctx context.Context, partnerID string) error
}

// PartnerRepositoryFacade combines all partner-related repository interfaces
type PartnerRepositoryFacade interface {
	PartnerReader
	PartnerWriter
}
