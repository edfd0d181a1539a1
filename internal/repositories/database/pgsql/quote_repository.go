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

type PgxQuoteRepository struct {
	BaseRepository
}

func newPgxQuoteRepository(pool *pgxpool.Pool) portsrepo.QuoteRepositoryWithTx {
	return &PgxQuoteRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxQuoteRepository implements portsrepo.QuoteRepositoryWithTx
var _ portsrepo.QuoteRepositoryWithTx = (*PgxQuoteRepository)(nil)

const quoteSelectQuery = `
SELECT
	quote_id, partner_id, title, description, items, discount, validity_days, expires_at,
	payment_terms, notes, status, subtotal, total, converted_invoice_id,
	created_at, created_by, last_updated_at, last_updated_by
FROM quotes`

func (r *PgxQuoteRepository) SaveQuote(ctx context.Context, quote domain.Quote) error {
	m, err := mapping.ToModelQuote(quote)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode quote "+quote.QuoteID, err)
	}
	query := `
		INSERT INTO quotes (
			quote_id, partner_id, title, description, items, discount, validity_days, expires_at,
			payment_terms, notes, status, subtotal, total, converted_invoice_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.QuoteID, m.PartnerID, m.Title, m.Description, m.Items, m.Discount, m.ValidityDays, m.ExpiresAt,
		m.PaymentTerms, m.Notes, m.Status, m.Subtotal, m.Total, m.ConvertedInvoiceID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, "quote "+quote.QuoteID)
}

func (r *PgxQuoteRepository) FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	rows, err := r.Pool.Query(ctx, quoteSelectQuery+` WHERE quote_id = $1`, quoteID)
	if err != nil {
		return nil, translateError(err, "quote "+quoteID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Quote])
	if err != nil {
		return nil, translateError(err, "quote "+quoteID)
	}
	q, err := mapping.ToDomainQuote(m)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %v: %w", quoteID, err, apperrors.ErrInternal)
	}
	return &q, nil
}

func (r *PgxQuoteRepository) ListQuotes(ctx context.Context, filter portsrepo.ListFilter) ([]domain.Quote, *string, error) {
	query, args, limit, err := keysetQuery(quoteSelectQuery, "quote_id", filter, true)
	if err != nil {
		return nil, nil, err
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, translateError(err, "quotes")
	}
	return collectPage(ctx, rows, limit,
		func(m models.Quote) (time.Time, string) { return m.CreatedAt, m.QuoteID },
		mapping.ToDomainQuote,
	)
}

// QuoteStatusCounts applies lazy expiry in SQL so counts match presented statuses.
func (r *PgxQuoteRepository) QuoteStatusCounts(ctx context.Context, now time.Time) (portsrepo.StatusCounts, error) {
	query := `
		SELECT
			CASE WHEN status IN ('draft', 'sent') AND expires_at < $1 THEN 'expired' ELSE status END AS presented,
			COUNT(*)
		FROM quotes
		GROUP BY presented;
	`
	rows, err := r.Pool.Query(ctx, query, now)
	if err != nil {
		return nil, translateError(err, "quote status counts")
	}
	return collectCounts(rows)
}

func (r *PgxQuoteRepository) UpdateQuote(ctx context.Context, quote domain.Quote) error {
	m, err := mapping.ToModelQuote(quote)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode quote "+quote.QuoteID, err)
	}
	query := `
		UPDATE quotes
		SET title = $2, description = $3, items = $4, discount = $5, validity_days = $6,
			expires_at = $7, payment_terms = $8, notes = $9, status = $10, subtotal = $11,
			total = $12, converted_invoice_id = $13, last_updated_at = $14, last_updated_by = $15
		WHERE quote_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.QuoteID, m.Title, m.Description, m.Items, m.Discount, m.ValidityDays,
		m.ExpiresAt, m.PaymentTerms, m.Notes, m.Status, m.Subtotal,
		m.Total, m.ConvertedInvoiceID, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "quote "+quote.QuoteID)
	}
	return expectAffected(tag, "quote "+quote.QuoteID)
}

func (r *PgxQuoteRepository) DeleteQuote(ctx context.Context, quoteID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM quotes WHERE quote_id = $1;`, quoteID)
	if err != nil {
		return translateError(err, "quote "+quoteID)
	}
	return expectAffected(tag, "quote "+quoteID)
}

// MarkQuoteConvertedTx only succeeds once per accepted quote.
func (r *PgxQuoteRepository) MarkQuoteConvertedTx(ctx context.Context, tx pgx.Tx, quoteID, invoiceID, actorID string, now time.Time) error {
	query := `
		UPDATE quotes
		SET converted_invoice_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE quote_id = $1 AND status = 'accepted' AND converted_invoice_id IS NULL;
	`
	tag, err := tx.Exec(ctx, query, quoteID, invoiceID, now, actorID)
	if err != nil {
		return translateError(err, "quote "+quoteID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quote %s is not accepted or was already converted: %w", quoteID, apperrors.ErrInvalidState)
	}
	return nil
}
