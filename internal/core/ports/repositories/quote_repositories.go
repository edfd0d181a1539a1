package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// QuoteReader defines read operations for quotes. Returned quotes carry their stored
// status; lazy expiry is applied by the service layer.
type QuoteReader interface {
	FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error)

	// ListQuotes skips rows that cannot be decoded.
	ListQuotes(ctx context.Context, filter ListFilter) ([]domain.Quote, *string, error)

	// QuoteStatusCounts counts quotes per presented status, treating draft/sent rows
	// past their expiry at now as expired.
	QuoteStatusCounts(ctx context.Context, now time.Time) (StatusCounts, error)
}

// QuoteWriter defines write operations for quotes
type QuoteWriter interface {
	SaveQuote(ctx context.Context, quote domain.Quote) error
	UpdateQuote(ctx context.Context, quote domain.Quote) error
	DeleteQuote(ctx context.Context, quoteID string) error
}

// QuoteRepositoryFacade combines all quote-related repository interfaces
type QuoteRepositoryFacade interface {
	QuoteReader
	QuoteWriter
}

// QuoteTransactionSupport defines quote writes that participate in a wider transaction.
type QuoteTransactionSupport interface {
	// MarkQuoteConvertedTx links an accepted quote to the invoice created from it.
	MarkQuoteConvertedTx(ctx context.Context, tx pgx.Tx, quoteID, invoiceID, actorID string, now time.Time) error
}

// QuoteRepositoryWithTx extends QuoteRepositoryFacade with transaction capabilities
type QuoteRepositoryWithTx interface {
	QuoteRepositoryFacade
	QuoteTransactionSupport
	TransactionManager
}
