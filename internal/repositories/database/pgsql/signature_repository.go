package pgsql

import (
	"context"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	"github.com/SscSPs/docflow_backend/internal/models"
	"github.com/SscSPs/docflow_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSignatureRepository struct {
	BaseRepository
}

func newPgxSignatureRepository(pool *pgxpool.Pool) portsrepo.SignatureRepositoryFacade {
	return &PgxSignatureRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SignatureRepositoryFacade = (*PgxSignatureRepository)(nil)

const signatureSelectQuery = `
SELECT signature_id, contract_id, signer_name, signer_role, image_data, image_digest, created_at, created_by
FROM contract_signatures`

func (r *PgxSignatureRepository) SaveSignature(ctx context.Context, signature domain.Signature) error {
	m := mapping.ToModelSignature(signature)
	query := `
		INSERT INTO contract_signatures (
			signature_id, contract_id, signer_name, signer_role, image_data, image_digest, created_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SignatureID, m.ContractID, m.SignerName, m.SignerRole, m.ImageData, m.ImageDigest, m.CreatedAt, m.CreatedBy,
	)
	return translateError(err, "signature "+signature.SignatureID)
}

func (r *PgxSignatureRepository) FindSignatureByID(ctx context.Context, signatureID string) (*domain.Signature, error) {
	rows, err := r.Pool.Query(ctx, signatureSelectQuery+` WHERE signature_id = $1`, signatureID)
	if err != nil {
		return nil, translateError(err, "signature "+signatureID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Signature])
	if err != nil {
		return nil, translateError(err, "signature "+signatureID)
	}
	s := mapping.ToDomainSignature(m)
	return &s, nil
}

func (r *PgxSignatureRepository) ListSignaturesByContractID(ctx context.Context, contractID string) ([]domain.Signature, error) {
	rows, err := r.Pool.Query(ctx, signatureSelectQuery+` WHERE contract_id = $1 ORDER BY created_at, signature_id`, contractID)
	if err != nil {
		return nil, translateError(err, "signatures of "+contractID)
	}
	modelRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Signature])
	if err != nil {
		return nil, translateError(err, "signatures of "+contractID)
	}
	out := make([]domain.Signature, len(modelRows))
	for i, m := range modelRows {
		out[i] = mapping.ToDomainSignature(m)
	}
	return out, nil
}

func (r *PgxSignatureRepository) ListSignaturesByContractIDs(ctx context.Context, contractIDs []string) (map[string][]domain.Signature, error) {
	ledgers := make(map[string][]domain.Signature, len(contractIDs))
	if len(contractIDs) == 0 {
		return ledgers, nil
	}
	rows, err := r.Pool.Query(ctx, signatureSelectQuery+` WHERE contract_id = ANY($1) ORDER BY created_at, signature_id`, contractIDs)
	if err != nil {
		return nil, translateError(err, "signatures")
	}
	modelRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Signature])
	if err != nil {
		return nil, translateError(err, "signatures")
	}
	for _, m := range modelRows {
		ledgers[m.ContractID] = append(ledgers[m.ContractID], mapping.ToDomainSignature(m))
	}
	return ledgers, nil
}

func (r *PgxSignatureRepository) DeleteSignature(ctx context.Context, signatureID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM contract_signatures WHERE signature_id = $1;`, signatureID)
	if err != nil {
		return translateError(err, "signature "+signatureID)
	}
	return expectAffected(tag, "signature "+signatureID)
}
