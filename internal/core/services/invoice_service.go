package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/dto"
	"github.com/SscSPs/docflow_backend/internal/utils/identifier"
	"github.com/SscSPs/docflow_backend/internal/utils/pricing"
)

// invoiceService implements the InvoiceSvcFacade interface
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	partnerRepo portsrepo.PartnerReader
}

// NewInvoiceService creates a new invoice service with the provided dependencies
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, partnerRepo portsrepo.PartnerReader, opts ...Option) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		BaseService: newBaseService(opts),
		invoiceRepo: invoiceRepo,
		partnerRepo: partnerRepo,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice issues an invoice. The status is derived from the amount paid.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, actorID string) (*domain.Invoice, error) {
	if !req.InvoiceType.IsValid() {
		return nil, validationError("invoiceType must be proforma or final")
	}
	if _, err := requirePartner(ctx, s.partnerRepo, req.PartnerID); err != nil {
		return nil, err
	}

	now := s.Now()
	invoice := domain.Invoice{
		PartnerID:    req.PartnerID,
		InvoiceType:  req.InvoiceType,
		Items:        dto.ToDomainLineItems(req.Items),
		Discount:     req.Discount,
		DueDate:      req.DueDate,
		PaymentTerms: req.PaymentTerms,
		Notes:        req.Notes,
		AmountPaid:   req.AmountPaid,
		AuditFields:  domain.NewAuditFields(actorID, now),
	}
	if err := validateInvoice(invoice); err != nil {
		return nil, err
	}
	pricing.ApplyToInvoice(&invoice)
	if err := domain.ValidatePayment(invoice.AmountPaid, invoice.Total); err != nil {
		return nil, err
	}

	_, err := identifier.WithRetry(identifier.KindInvoice, func(id string) error {
		invoice.InvoiceID = id
		return s.invoiceRepo.SaveInvoice(ctx, invoice)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("partner_id", invoice.PartnerID))
		return nil, err
	}
	s.invalidateStats(ctx, statsPrefixInvoices)

	s.LogInfo(ctx, "Invoice created successfully",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("type", string(invoice.InvoiceType)),
		slog.Int64("total", invoice.Total))
	return &invoice, nil
}

// GetInvoiceByID retrieves an invoice with totals and status recomputed.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find invoice by ID", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	pricing.ApplyToInvoice(invoice)
	return invoice, nil
}

// ListInvoices returns a page of invoices with payment status counts.
func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListParams) (*dto.ListInvoicesResponse, error) {
	invoices, next, err := s.invoiceRepo.ListInvoices(ctx, params.ToListFilter())
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, err
	}
	for i := range invoices {
		pricing.ApplyToInvoice(&invoices[i])
	}

	counts, err := s.cachedStats(ctx, statsPrefixInvoices+":all", func() (portsrepo.StatusCounts, error) {
		return s.invoiceRepo.InvoiceStatusCounts(ctx)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to count invoices by status")
		return nil, err
	}

	return &dto.ListInvoicesResponse{
		Invoices:  dto.ToInvoiceResponses(invoices),
		NextToken: next,
		Stats:     dto.NewStatsResponse(domain.InvoiceStatuses, counts),
	}, nil
}

// UpdateInvoice edits the mutable fields. Items and discount only change while unpaid.
func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, actorID string) (*domain.Invoice, error) {
	invoice, err := s.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if req.Items != nil || req.Discount != nil {
		if err := invoice.EnsureItemsEditable(); err != nil {
			return nil, err
		}
	}
	if req.Items != nil {
		invoice.Items = dto.ToDomainLineItems(*req.Items)
	}
	if req.Discount != nil {
		invoice.Discount = *req.Discount
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}
	if req.PaymentTerms != nil {
		invoice.PaymentTerms = req.PaymentTerms
	}
	if req.Notes != nil {
		invoice.Notes = req.Notes
	}
	if err := validateInvoice(*invoice); err != nil {
		return nil, err
	}
	pricing.ApplyToInvoice(invoice)
	if err := domain.ValidatePayment(invoice.AmountPaid, invoice.Total); err != nil {
		return nil, err
	}
	invoice.Touch(actorID, s.Now())

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to update invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	s.invalidateStats(ctx, statsPrefixInvoices)
	s.LogInfo(ctx, "Invoice updated successfully", slog.String("invoice_id", invoiceID))
	return invoice, nil
}

// RecordPayment sets the cumulative amount paid.
func (s *invoiceService) RecordPayment(ctx context.Context, invoiceID string, req dto.RecordPaymentRequest, actorID string) (*domain.Invoice, error) {
	if req.AmountPaid == nil {
		return nil, validationError("amountPaid is required")
	}
	invoice, err := s.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePayment(*req.AmountPaid, invoice.Total); err != nil {
		return nil, err
	}
	previous := invoice.Status
	invoice.AmountPaid = *req.AmountPaid
	pricing.ApplyToInvoice(invoice)
	invoice.Touch(actorID, s.Now())

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to record payment", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	s.invalidateStats(ctx, statsPrefixInvoices)
	s.LogInfo(ctx, "Invoice payment recorded",
		slog.String("invoice_id", invoiceID),
		slog.Int64("amount_paid", invoice.AmountPaid),
		slog.String("from", string(previous)),
		slog.String("to", string(invoice.Status)))
	return invoice, nil
}

// DeleteInvoice removes an unpaid invoice.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	invoice, err := s.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if err := invoice.EnsureDeletable(); err != nil {
		return err
	}
	if err := s.invoiceRepo.DeleteInvoice(ctx, invoiceID); err != nil {
		s.LogError(ctx, err, "Failed to delete invoice", slog.String("invoice_id", invoiceID))
		return err
	}
	s.invalidateStats(ctx, statsPrefixInvoices)
	s.LogInfo(ctx, "Invoice deleted successfully", slog.String("invoice_id", invoiceID))
	return nil
}

func validateInvoice(inv domain.Invoice) error {
	if inv.Discount < 0 {
		return validationError("discount must not be negative")
	}
	if inv.AmountPaid < 0 {
		return validationError("amountPaid must not be negative")
	}
	return domain.ValidateLineItems(inv.Items)
}
