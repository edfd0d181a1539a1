package services

import (
	"context"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/SscSPs/docflow_backend/internal/dto"
)

// QuoteReaderSvc defines read operations for quotes. Returned quotes present lazy expiry.
type QuoteReaderSvc interface {
	GetQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error)

	// ListQuotes returns a page of quotes together with status counts over all quotes.
	ListQuotes(ctx context.Context, params dto.ListParams) (*dto.ListQuotesResponse, error)
}

// QuoteWriterSvc defines write operations for quotes
type QuoteWriterSvc interface {
	CreateQuote(ctx context.Context, req dto.CreateQuoteRequest, actorID string) (*domain.Quote, error)
	UpdateQuote(ctx context.Context, quoteID string, req dto.UpdateQuoteRequest, actorID string) (*domain.Quote, error)
	DeleteQuote(ctx context.Context, quoteID string) error
}

// QuoteLifecycleSvc defines the quote state transitions
type QuoteLifecycleSvc interface {
	SendQuote(ctx context.Context, quoteID string, actorID string) (*domain.Quote, error)
	AcceptQuote(ctx context.Context, quoteID string, actorID string) (*domain.Quote, error)
	RejectQuote(ctx context.Context, quoteID string, actorID string) (*domain.Quote, error)

	// ConvertQuoteToInvoice issues a proforma invoice from an accepted quote, once.
	ConvertQuoteToInvoice(ctx context.Context, quoteID string, actorID string) (*domain.Invoice, error)
}

// QuoteSvcFacade combines all quote-related service interfaces
type QuoteSvcFacade interface {
	QuoteReaderSvc
	QuoteWriterSvc
	QuoteLifecycleSvc
}
