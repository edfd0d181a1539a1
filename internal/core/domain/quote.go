package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
)

// QuoteStatus is the lifecycle state of a quote.
type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "draft"
	QuoteSent     QuoteStatus = "sent"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
	QuoteExpired  QuoteStatus = "expired"
)

// QuoteStatuses lists every status in presentation order.
var QuoteStatuses = []QuoteStatus{QuoteDraft, QuoteSent, QuoteAccepted, QuoteRejected, QuoteExpired}

// DefaultQuoteValidityDays is used when a quote is created without a validity window.
const DefaultQuoteValidityDays = 30

// Quote is a priced offer sent to a partner.
type Quote struct {
	QuoteID      string      `json:"quoteID"`
	PartnerID    string      `json:"partnerID"`
	Title        string      `json:"title"`
	Description  *string     `json:"description,omitempty"`
	Items        []LineItem  `json:"items"`
	Discount     int64       `json:"discount"` // Explicit document-level discount
	ValidityDays int         `json:"validityDays"`
	ExpiresAt    time.Time   `json:"expiresAt"`
	PaymentTerms *string     `json:"paymentTerms,omitempty"`
	Notes        *string     `json:"notes,omitempty"`
	Status       QuoteStatus `json:"status"`
	Subtotal     int64       `json:"subtotal"`
	Total        int64       `json:"total"`

	ConvertedInvoiceID *string `json:"convertedInvoiceID,omitempty"`
	AuditFields
}

// ComputeExpiry returns createdAt + validityDays.
func ComputeExpiry(createdAt time.Time, validityDays int) time.Time {
	return createdAt.AddDate(0, 0, validityDays)
}

// EffectiveStatus applies lazy expiry: draft and sent quotes read as expired once now
// is past ExpiresAt.
func (q Quote) EffectiveStatus(now time.Time) QuoteStatus {
	if (q.Status == QuoteDraft || q.Status == QuoteSent) && now.After(q.ExpiresAt) {
		return QuoteExpired
	}
	return q.Status
}

// IsTerminal reports whether no further transitions are possible.
func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteAccepted || s == QuoteRejected || s == QuoteExpired
}

var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteDraft: {QuoteSent},
	QuoteSent:  {QuoteAccepted, QuoteRejected},
}

// TransitionTo moves the quote to target if allowed from its effective status at now.
func (q *Quote) TransitionTo(target QuoteStatus, now time.Time) error {
	current := q.EffectiveStatus(now)
	for _, allowed := range quoteTransitions[current] {
		if allowed == target {
			q.Status = target
			return nil
		}
	}
	return fmt.Errorf("quote %s cannot move from %s to %s: %w", q.QuoteID, current, target, apperrors.ErrInvalidState)
}

// EnsureEditable rejects edits outside of draft.
func (q Quote) EnsureEditable(now time.Time) error {
	if status := q.EffectiveStatus(now); status != QuoteDraft {
		return fmt.Errorf("quote %s is %s, only draft quotes can be edited: %w", q.QuoteID, status, apperrors.ErrInvalidState)
	}
	return nil
}

// EnsureDeletable rejects deletion outside of draft. An expired draft is still a draft.
func (q Quote) EnsureDeletable() error {
	if q.Status != QuoteDraft {
		return fmt.Errorf("quote %s is %s, only draft quotes can be deleted: %w", q.QuoteID, q.Status, apperrors.ErrInvalidState)
	}
	return nil
}

// EnsureConvertible allows converting an accepted quote into an invoice exactly once.
func (q Quote) EnsureConvertible(now time.Time) error {
	if status := q.EffectiveStatus(now); status != QuoteAccepted {
		return fmt.Errorf("quote %s is %s, only accepted quotes can be invoiced: %w", q.QuoteID, status, apperrors.ErrInvalidState)
	}
	if q.ConvertedInvoiceID != nil {
		return fmt.Errorf("quote %s was already invoiced as %s: %w", q.QuoteID, *q.ConvertedInvoiceID, apperrors.ErrInvalidState)
	}
	return nil
}
