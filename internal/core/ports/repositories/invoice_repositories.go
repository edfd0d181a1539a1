package repositories

import (
	"context"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// InvoiceReader defines read operations for invoices
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices skips rows that cannot be decoded.
	ListInvoices(ctx context.Context, filter ListFilter) ([]domain.Invoice, *string, error)

	// InvoiceStatusCounts counts invoices per derived payment status.
	InvoiceStatusCounts(ctx context.Context) (StatusCounts, error)
}

// InvoiceWriter defines write operations for invoices
type InvoiceWriter interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceTransactionSupport defines invoice writes that participate in a wider transaction.
type InvoiceTransactionSupport interface {
	// SaveInvoiceTx inserts the invoice inside tx, reporting apperrors.ErrDuplicate on an
	// identifier collision without aborting the transaction.
	SaveInvoiceTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction support
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	InvoiceTransactionSupport
}
