package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	"github.com/SscSPs/docflow_backend/internal/models"
	"github.com/SscSPs/docflow_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPartnerRepository struct {
	BaseRepository
}

func newPgxPartnerRepository(pool *pgxpool.Pool) portsrepo.PartnerRepositoryFacade {
	return &PgxPartnerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PartnerRepositoryFacade = (*PgxPartnerRepository)(nil)

const partnerSelectQuery = `
SELECT
	partner_id, name, company_name, tax_id, trade_registry_id, address, city, country,
	email, phone, logo_url, representative,
	created_at, created_by, last_updated_at, last_updated_by
FROM partners`

func (r *PgxPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	m := mapping.ToModelPartner(partner)
	query := `
		INSERT INTO partners (
			partner_id, name, company_name, tax_id, trade_registry_id, address, city, country,
			email, phone, logo_url, representative,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PartnerID, m.Name, m.CompanyName, m.TaxID, m.TradeRegistryID, m.Address, m.City, m.Country,
		m.Email, m.Phone, m.LogoURL, m.Representative,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, "partner "+partner.PartnerID)
}

func (r *PgxPartnerRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	rows, err := r.Pool.Query(ctx, partnerSelectQuery+` WHERE partner_id = $1`, partnerID)
	if err != nil {
		return nil, translateError(err, "partner "+partnerID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Partner])
	if err != nil {
		return nil, translateError(err, "partner "+partnerID)
	}
	p := mapping.ToDomainPartner(m)
	return &p, nil
}

func (r *PgxPartnerRepository) ListPartners(ctx context.Context, filter portsrepo.ListFilter) ([]domain.Partner, *string, error) {
	query, args, limit, err := keysetQuery(partnerSelectQuery, "partner_id", filter, false)
	if err != nil {
		return nil, nil, err
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, translateError(err, "partners")
	}
	return collectPage(ctx, rows, limit,
		func(m models.Partner) (time.Time, string) { return m.CreatedAt, m.PartnerID },
		func(m models.Partner) (domain.Partner, error) { return mapping.ToDomainPartner(m), nil },
	)
}

func (r *PgxPartnerRepository) CountPartnerReferences(ctx context.Context, partnerID string) (int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM quotes WHERE partner_id = $1) +
			(SELECT COUNT(*) FROM invoices WHERE partner_id = $1) +
			(SELECT COUNT(*) FROM contracts WHERE partner_id = $1);
	`
	var n int
	if err := r.Pool.QueryRow(ctx, query, partnerID).Scan(&n); err != nil {
		return 0, translateError(err, "partner references "+partnerID)
	}
	return n, nil
}

func (r *PgxPartnerRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	m := mapping.ToModelPartner(partner)
	query := `
		UPDATE partners
		SET name = $2, company_name = $3, tax_id = $4, trade_registry_id = $5, address = $6,
			city = $7, country = $8, email = $9, phone = $10, logo_url = $11, representative = $12,
			last_updated_at = $13, last_updated_by = $14
		WHERE partner_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PartnerID, m.Name, m.CompanyName, m.TaxID, m.TradeRegistryID, m.Address,
		m.City, m.Country, m.Email, m.Phone, m.LogoURL, m.Representative,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "partner "+partner.PartnerID)
	}
	return expectAffected(tag, "partner "+partner.PartnerID)
}

func (r *PgxPartnerRepository) DeletePartner(ctx context.Context, partnerID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM partners WHERE partner_id = $1;`, partnerID)
	if err != nil {
		return translateError(err, "partner "+partnerID)
	}
	return expectAffected(tag, "partner "+partnerID)
}
