package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	"github.com/SscSPs/docflow_backend/internal/models"
	"github.com/SscSPs/docflow_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxContractRepository struct {
	BaseRepository
}

func newPgxContractRepository(pool *pgxpool.Pool) portsrepo.ContractRepositoryFacade {
	return &PgxContractRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ContractRepositoryFacade = (*PgxContractRepository)(nil)

const contractSelectQuery = `
SELECT
	contract_id, partner_id, contract_type, title, description, clauses, partnership_terms,
	start_date, end_date, value, notes, lifecycle, termination_reason, activated_at, terminated_at,
	created_at, created_by, last_updated_at, last_updated_by
FROM contracts`

func (r *PgxContractRepository) SaveContract(ctx context.Context, contract domain.Contract) error {
	m, err := mapping.ToModelContract(contract)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode contract "+contract.ContractID, err)
	}
	query := `
		INSERT INTO contracts (
			contract_id, partner_id, contract_type, title, description, clauses, partnership_terms,
			start_date, end_date, value, notes, lifecycle, termination_reason, activated_at, terminated_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.ContractID, m.PartnerID, m.ContractType, m.Title, m.Description, m.Clauses, m.PartnershipTerms,
		m.StartDate, m.EndDate, m.Value, m.Notes, m.Lifecycle, m.TerminationReason, m.ActivatedAt, m.TerminatedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, "contract "+contract.ContractID)
}

func (r *PgxContractRepository) FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error) {
	rows, err := r.Pool.Query(ctx, contractSelectQuery+` WHERE contract_id = $1`, contractID)
	if err != nil {
		return nil, translateError(err, "contract "+contractID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Contract])
	if err != nil {
		return nil, translateError(err, "contract "+contractID)
	}
	c, err := mapping.ToDomainContract(m)
	if err != nil {
		return nil, fmt.Errorf("contract %s: %v: %w", contractID, err, apperrors.ErrInternal)
	}
	return &c, nil
}

func (r *PgxContractRepository) ListContracts(ctx context.Context, filter portsrepo.ListFilter) ([]domain.Contract, *string, error) {
	query, args, limit, err := keysetQuery(contractSelectQuery, "contract_id", filter, true)
	if err != nil {
		return nil, nil, err
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, translateError(err, "contracts")
	}
	return collectPage(ctx, rows, limit,
		func(m models.Contract) (time.Time, string) { return m.CreatedAt, m.ContractID },
		mapping.ToDomainContract,
	)
}

// ContractStatusCounts overlays signature completeness on sent contracts in SQL.
func (r *PgxContractRepository) ContractStatusCounts(ctx context.Context) (portsrepo.StatusCounts, error) {
	query := `
		SELECT
			CASE
				WHEN c.lifecycle <> 'sent' THEN c.lifecycle
				WHEN bool_or(s.signer_role = 'partner') AND bool_or(s.signer_role = 'company') THEN 'fully_signed'
				WHEN COUNT(s.signature_id) > 0 THEN 'partially_signed'
				ELSE 'sent'
			END AS presented
		FROM contracts c
		LEFT JOIN contract_signatures s ON s.contract_id = c.contract_id
		GROUP BY c.contract_id, c.lifecycle
	`
	rows, err := r.Pool.Query(ctx, `SELECT presented, COUNT(*) FROM (`+query+`) per_contract GROUP BY presented;`)
	if err != nil {
		return nil, translateError(err, "contract status counts")
	}
	return collectCounts(rows)
}

func (r *PgxContractRepository) UpdateContract(ctx context.Context, contract domain.Contract) error {
	m, err := mapping.ToModelContract(contract)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode contract "+contract.ContractID, err)
	}
	query := `
		UPDATE contracts
		SET contract_type = $2, title = $3, description = $4, clauses = $5, partnership_terms = $6,
			start_date = $7, end_date = $8, value = $9, notes = $10, lifecycle = $11,
			termination_reason = $12, activated_at = $13, terminated_at = $14,
			last_updated_at = $15, last_updated_by = $16
		WHERE contract_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ContractID, m.ContractType, m.Title, m.Description, m.Clauses, m.PartnershipTerms,
		m.StartDate, m.EndDate, m.Value, m.Notes, m.Lifecycle,
		m.TerminationReason, m.ActivatedAt, m.TerminatedAt,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "contract "+contract.ContractID)
	}
	return expectAffected(tag, "contract "+contract.ContractID)
}

// DeleteContract removes the contract; its ledger goes with it through the cascade.
func (r *PgxContractRepository) DeleteContract(ctx context.Context, contractID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM contracts WHERE contract_id = $1;`, contractID)
	if err != nil {
		return translateError(err, "contract "+contractID)
	}
	return expectAffected(tag, "contract "+contractID)
}
