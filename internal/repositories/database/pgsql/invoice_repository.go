package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	"github.com/SscSPs/docflow_backend/internal/models"
	"github.com/SscSPs/docflow_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const invoiceSourceQuoteConstraint = "invoices_source_quote_id_key"

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

const invoiceSelectQuery = `
SELECT
	invoice_id, partner_id, invoice_type, items, discount, due_date, payment_terms, notes,
	amount_paid, source_quote_id, subtotal, total,
	created_at, created_by, last_updated_at, last_updated_by
FROM invoices`

const invoiceInsertQuery = `
	INSERT INTO invoices (
		invoice_id, partner_id, invoice_type, items, discount, due_date, payment_terms, notes,
		amount_paid, source_quote_id, subtotal, total,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

func invoiceInsertArgs(m models.Invoice) []any {
	return []any{
		m.InvoiceID, m.PartnerID, m.InvoiceType, m.Items, m.Discount, m.DueDate, m.PaymentTerms, m.Notes,
		m.AmountPaid, m.SourceQuoteID, m.Subtotal, m.Total,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m, err := mapping.ToModelInvoice(invoice)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode invoice "+invoice.InvoiceID, err)
	}
	_, err = r.Pool.Exec(ctx, invoiceInsertQuery+";", invoiceInsertArgs(m)...)
	return translateError(err, "invoice "+invoice.InvoiceID)
}

// SaveInvoiceTx reports an identifier collision as ErrDuplicate without aborting tx, so
// the caller can retry with a fresh identifier.
func (r *PgxInvoiceRepository) SaveInvoiceTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	m, err := mapping.ToModelInvoice(invoice)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode invoice "+invoice.InvoiceID, err)
	}
	tag, err := tx.Exec(ctx, invoiceInsertQuery+" ON CONFLICT (invoice_id) DO NOTHING;", invoiceInsertArgs(m)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == invoiceSourceQuoteConstraint {
			return fmt.Errorf("quote already has an invoice: %w", apperrors.ErrInvalidState)
		}
		return translateError(err, "invoice "+invoice.InvoiceID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s: %w", invoice.InvoiceID, apperrors.ErrDuplicate)
	}
	return nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	rows, err := r.Pool.Query(ctx, invoiceSelectQuery+` WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return nil, translateError(err, "invoice "+invoiceID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Invoice])
	if err != nil {
		return nil, translateError(err, "invoice "+invoiceID)
	}
	inv, err := mapping.ToDomainInvoice(m)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %v: %w", invoiceID, err, apperrors.ErrInternal)
	}
	return &inv, nil
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.ListFilter) ([]domain.Invoice, *string, error) {
	query, args, limit, err := keysetQuery(invoiceSelectQuery, "invoice_id", filter, true)
	if err != nil {
		return nil, nil, err
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, translateError(err, "invoices")
	}
	return collectPage(ctx, rows, limit,
		func(m models.Invoice) (time.Time, string) { return m.CreatedAt, m.InvoiceID },
		mapping.ToDomainInvoice,
	)
}

// InvoiceStatusCounts derives the payment status from the denormalized total.
func (r *PgxInvoiceRepository) InvoiceStatusCounts(ctx context.Context) (portsrepo.StatusCounts, error) {
	query := `
		SELECT
			CASE
				WHEN amount_paid <= 0 THEN 'unpaid'
				WHEN amount_paid >= total THEN 'paid'
				ELSE 'partial'
			END AS presented,
			COUNT(*)
		FROM invoices
		GROUP BY presented;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err, "invoice status counts")
	}
	return collectCounts(rows)
}

func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m, err := mapping.ToModelInvoice(invoice)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode invoice "+invoice.InvoiceID, err)
	}
	query := `
		UPDATE invoices
		SET invoice_type = $2, items = $3, discount = $4, due_date = $5, payment_terms = $6,
			notes = $7, amount_paid = $8, subtotal = $9, total = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE invoice_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.InvoiceID, m.InvoiceType, m.Items, m.Discount, m.DueDate, m.PaymentTerms,
		m.Notes, m.AmountPaid, m.Subtotal, m.Total,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "invoice "+invoice.InvoiceID)
	}
	return expectAffected(tag, "invoice "+invoice.InvoiceID)
}

func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return translateError(err, "invoice "+invoiceID)
	}
	return expectAffected(tag, "invoice "+invoiceID)
}
