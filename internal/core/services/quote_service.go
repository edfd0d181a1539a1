package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/dto"
	"github.com/SscSPs/docflow_backend/internal/utils/identifier"
	"github.com/SscSPs/docflow_backend/internal/utils/pricing"
)

// quoteService implements the QuoteSvcFacade interface
type quoteService struct {
	BaseService
	quoteRepo   portsrepo.QuoteRepositoryWithTx
	invoiceRepo portsrepo.InvoiceTransactionSupport
	partnerRepo portsrepo.PartnerReader
}

// NewQuoteService creates a new quote service. The invoice repository is only used to
// issue proforma invoices from accepted quotes.
func NewQuoteService(
	quoteRepo portsrepo.QuoteRepositoryWithTx,
	invoiceRepo portsrepo.InvoiceTransactionSupport,
	partnerRepo portsrepo.PartnerReader,
	opts ...Option,
) portssvc.QuoteSvcFacade {
	return &quoteService{
		BaseService: newBaseService(opts),
		quoteRepo:   quoteRepo,
		invoiceRepo: invoiceRepo,
		partnerRepo: partnerRepo,
	}
}

var _ portssvc.QuoteSvcFacade = (*quoteService)(nil)

// CreateQuote creates a draft quote priced with the shared calculator.
func (s *quoteService) CreateQuote(ctx context.Context, req dto.CreateQuoteRequest, actorID string) (*domain.Quote, error) {
	if _, err := requirePartner(ctx, s.partnerRepo, req.PartnerID); err != nil {
		return nil, err
	}

	now := s.Now()
	validity := req.ValidityDays
	if validity == 0 {
		validity = domain.DefaultQuoteValidityDays
	}
	quote := domain.Quote{
		PartnerID:    req.PartnerID,
		Title:        req.Title,
		Description:  req.Description,
		Items:        dto.ToDomainLineItems(req.Items),
		Discount:     req.Discount,
		ValidityDays: validity,
		ExpiresAt:    domain.ComputeExpiry(now, validity),
		PaymentTerms: req.PaymentTerms,
		Notes:        req.Notes,
		Status:       domain.QuoteDraft,
		AuditFields:  domain.NewAuditFields(actorID, now),
	}
	if err := validateQuote(quote); err != nil {
		return nil, err
	}
	pricing.ApplyToQuote(&quote)

	_, err := identifier.WithRetry(identifier.KindQuote, func(id string) error {
		quote.QuoteID = id
		return s.quoteRepo.SaveQuote(ctx, quote)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save quote", slog.String("partner_id", quote.PartnerID))
		return nil, err
	}
	s.invalidateStats(ctx, statsPrefixQuotes)

	s.LogInfo(ctx, "Quote created successfully",
		slog.String("quote_id", quote.QuoteID),
		slog.Int64("total", quote.Total))
	return &quote, nil
}

// GetQuoteByID retrieves a quote, presenting lazy expiry.
func (s *quoteService) GetQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find quote by ID", slog.String("quote_id", quoteID))
		}
		return nil, err
	}
	s.present(quote)
	return quote, nil
}

// ListQuotes returns a page of quotes with status counts.
func (s *quoteService) ListQuotes(ctx context.Context, params dto.ListParams) (*dto.ListQuotesResponse, error) {
	quotes, next, err := s.quoteRepo.ListQuotes(ctx, params.ToListFilter())
	if err != nil {
		s.LogError(ctx, err, "Failed to list quotes")
		return nil, err
	}
	for i := range quotes {
		s.present(&quotes[i])
	}

	counts, err := s.cachedStats(ctx, statsPrefixQuotes+":all", func() (portsrepo.StatusCounts, error) {
		return s.quoteRepo.QuoteStatusCounts(ctx, s.Now())
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to count quotes by status")
		return nil, err
	}

	return &dto.ListQuotesResponse{
		Quotes:    dto.ToQuoteResponses(quotes),
		NextToken: next,
		Stats:     dto.NewStatsResponse(domain.QuoteStatuses, counts),
	}, nil
}

// UpdateQuote edits a draft quote and reprices it.
func (s *quoteService) UpdateQuote(ctx context.Context, quoteID string, req dto.UpdateQuoteRequest, actorID string) (*domain.Quote, error) {
	quote, err := s.GetQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	if err := quote.EnsureEditable(now); err != nil {
		return nil, err
	}

	if req.Title != nil {
		quote.Title = *req.Title
	}
	if req.Description != nil {
		quote.Description = req.Description
	}
	if req.Items != nil {
		quote.Items = dto.ToDomainLineItems(*req.Items)
	}
	if req.Discount != nil {
		quote.Discount = *req.Discount
	}
	if req.ValidityDays != nil {
		quote.ValidityDays = *req.ValidityDays
		quote.ExpiresAt = domain.ComputeExpiry(quote.CreatedAt, quote.ValidityDays)
	}
	if req.PaymentTerms != nil {
		quote.PaymentTerms = req.PaymentTerms
	}
	if req.Notes != nil {
		quote.Notes = req.Notes
	}
	if err := validateQuote(*quote); err != nil {
		return nil, err
	}
	pricing.ApplyToQuote(quote)
	quote.Touch(actorID, now)

	if err := s.quoteRepo.UpdateQuote(ctx, *quote); err != nil {
		s.LogError(ctx, err, "Failed to update quote", slog.String("quote_id", quoteID))
		return nil, err
	}
	s.invalidateStats(ctx, statsPrefixQuotes)
	s.present(quote)
	s.LogInfo(ctx, "Quote updated successfully", slog.String("quote_id", quoteID))
	return quote, nil
}

// DeleteQuote removes a draft quote.
func (s *quoteService) DeleteQuote(ctx context.Context, quoteID string) error {
	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return err
	}
	if err := quote.EnsureDeletable(); err != nil {
		return err
	}
	if err := s.quoteRepo.DeleteQuote(ctx, quoteID); err != nil {
		s.LogError(ctx, err, "Failed to delete quote", slog.String("quote_id", quoteID))
		return err
	}
	s.invalidateStats(ctx, statsPrefixQuotes)
	s.LogInfo(ctx, "Quote deleted successfully", slog.String("quote_id", quoteID))
	return nil
}

func (s *quoteService) SendQuote(ctx context.Context, quoteID string, actorID string) (*domain.Quote, error) {
	return s.transition(ctx, quoteID, domain.QuoteSent, actorID)
}

func (s *quoteService) AcceptQuote(ctx context.Context, quoteID string, actorID string) (*domain.Quote, error) {
	return s.transition(ctx, quoteID, domain.QuoteAccepted, actorID)
}

func (s *quoteService) RejectQuote(ctx context.Context, quoteID string, actorID string) (*domain.Quote, error) {
	return s.transition(ctx, quoteID, domain.QuoteRejected, actorID)
}

func (s *quoteService) transition(ctx context.Context, quoteID string, target domain.QuoteStatus, actorID string) (*domain.Quote, error) {
	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	from := quote.EffectiveStatus(now)
	if err := quote.TransitionTo(target, now); err != nil {
		return nil, err
	}
	quote.Touch(actorID, now)
	if err := s.quoteRepo.UpdateQuote(ctx, *quote); err != nil {
		s.LogError(ctx, err, "Failed to persist quote transition",
			slog.String("quote_id", quoteID),
			slog.String("target", string(target)))
		return nil, err
	}
	s.invalidateStats(ctx, statsPrefixQuotes)
	s.LogInfo(ctx, "Quote status changed",
		slog.String("quote_id", quoteID),
		slog.String("from", string(from)),
		slog.String("to", string(target)))
	return quote, nil
}

// ConvertQuoteToInvoice creates the proforma invoice and links it to the quote in one transaction.
func (s *quoteService) ConvertQuoteToInvoice(ctx context.Context, quoteID string, actorID string) (*domain.Invoice, error) {
	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	if err := quote.EnsureConvertible(now); err != nil {
		return nil, err
	}

	items := make([]domain.LineItem, len(quote.Items))
	copy(items, quote.Items)
	sourceID := quote.QuoteID
	invoice := domain.Invoice{
		PartnerID:     quote.PartnerID,
		InvoiceType:   domain.InvoiceProforma,
		Items:         items,
		Discount:      quote.Discount,
		PaymentTerms:  quote.PaymentTerms,
		Notes:         quote.Notes,
		SourceQuoteID: &sourceID,
		AuditFields:   domain.NewAuditFields(actorID, now),
	}
	pricing.ApplyToInvoice(&invoice)

	tx, err := s.quoteRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := s.quoteRepo.Rollback(ctx, tx); rbErr != nil {
				s.LogError(ctx, rbErr, "Failed to roll back quote conversion", slog.String("quote_id", quoteID))
			}
		}
	}()

	_, err = identifier.WithRetry(identifier.KindInvoice, func(id string) error {
		invoice.InvoiceID = id
		return s.invoiceRepo.SaveInvoiceTx(ctx, tx, invoice)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save invoice from quote", slog.String("quote_id", quoteID))
		return nil, err
	}
	if err := s.quoteRepo.MarkQuoteConvertedTx(ctx, tx, quoteID, invoice.InvoiceID, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to link quote to invoice", slog.String("quote_id", quoteID))
		return nil, err
	}
	if err := s.quoteRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	committed = true
	s.invalidateStats(ctx, statsPrefixQuotes, statsPrefixInvoices)

	s.LogInfo(ctx, "Quote converted to proforma invoice",
		slog.String("quote_id", quoteID),
		slog.String("invoice_id", invoice.InvoiceID))
	return &invoice, nil
}

// present replaces the stored status with the lazily expired one.
func (s *quoteService) present(q *domain.Quote) {
	q.Status = q.EffectiveStatus(s.Now())
}

func validateQuote(q domain.Quote) error {
	if strings.TrimSpace(q.Title) == "" {
		return validationError("quote title is required")
	}
	if q.ValidityDays < 1 {
		return validationError("validityDays must be at least 1")
	}
	if q.Discount < 0 {
		return validationError("discount must not be negative")
	}
	return domain.ValidateLineItems(q.Items)
}
