package services

import (
	"context"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/SscSPs/docflow_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices
type InvoiceReaderSvc interface {
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, params dto.ListParams) (*dto.ListInvoicesResponse, error)
}

// InvoiceWriterSvc defines write operations for invoices
type InvoiceWriterSvc interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, actorID string) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, actorID string) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, invoiceID string) error

	// RecordPayment sets the cumulative amount paid; the status follows from it.
	RecordPayment(ctx context.Context, invoiceID string, req dto.RecordPaymentRequest, actorID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
