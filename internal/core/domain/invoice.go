package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
)

// InvoiceType distinguishes proforma from final invoices. Immutable after creation.
type InvoiceType string

const (
	InvoiceProforma InvoiceType = "proforma"
	InvoiceFinal    InvoiceType = "final"
)

// InvoiceStatus is derived from the amount paid; it is never stored.
type InvoiceStatus string

const (
	InvoiceUnpaid  InvoiceStatus = "unpaid"
	InvoicePartial InvoiceStatus = "partial"
	InvoicePaid    InvoiceStatus = "paid"
)

// InvoiceStatuses lists every status in presentation order.
var InvoiceStatuses = []InvoiceStatus{InvoiceUnpaid, InvoicePartial, InvoicePaid}

// Invoice is a request for payment, proforma or final.
type Invoice struct {
	InvoiceID     string        `json:"invoiceID"`
	PartnerID     string        `json:"partnerID"`
	InvoiceType   InvoiceType   `json:"invoiceType"`
	Items         []LineItem    `json:"items"`
	Discount      int64         `json:"discount"`
	DueDate       *time.Time    `json:"dueDate,omitempty"`
	PaymentTerms  *string       `json:"paymentTerms,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
	AmountPaid    int64         `json:"amountPaid"`
	SourceQuoteID *string       `json:"sourceQuoteID,omitempty"`
	Subtotal      int64         `json:"subtotal"`
	Total         int64         `json:"total"`
	Status        InvoiceStatus `json:"status"`
	AuditFields
}

// DeriveInvoiceStatus is the pure status function of (amountPaid, total).
func DeriveInvoiceStatus(amountPaid, total int64) InvoiceStatus {
	switch {
	case amountPaid <= 0:
		return InvoiceUnpaid
	case amountPaid >= total:
		return InvoicePaid
	default:
		return InvoicePartial
	}
}

// BalanceDue is what remains to be paid, never negative.
func (i Invoice) BalanceDue() int64 {
	if i.AmountPaid >= i.Total {
		return 0
	}
	return i.Total - i.AmountPaid
}

// IsValid reports whether t is a known invoice type.
func (t InvoiceType) IsValid() bool {
	return t == InvoiceProforma || t == InvoiceFinal
}

// ValidatePayment checks amountPaid against the invoice total.
func ValidatePayment(amountPaid, total int64) error {
	if amountPaid < 0 {
		return fmt.Errorf("amountPaid must not be negative, got %d: %w", amountPaid, apperrors.ErrValidation)
	}
	if amountPaid > total {
		return fmt.Errorf("amountPaid %d exceeds invoice total %d: %w", amountPaid, total, apperrors.ErrValidation)
	}
	return nil
}

// EnsureItemsEditable rejects item edits once any payment was recorded.
func (i Invoice) EnsureItemsEditable() error {
	if i.AmountPaid > 0 {
		return fmt.Errorf("invoice %s has recorded payments, items can no longer change: %w", i.InvoiceID, apperrors.ErrInvalidState)
	}
	return nil
}

// EnsureDeletable rejects deletion of invoices that are no longer unpaid.
func (i Invoice) EnsureDeletable() error {
	if status := DeriveInvoiceStatus(i.AmountPaid, i.Total); status != InvoiceUnpaid {
		return fmt.Errorf("invoice %s is %s, only unpaid invoices can be deleted: %w", i.InvoiceID, status, apperrors.ErrInvalidState)
	}
	return nil
}
