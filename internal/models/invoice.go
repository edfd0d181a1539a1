package models

import "time"

// Invoice is the invoices table row. The payment status is never stored.
type Invoice struct {
	InvoiceID     string     `db:"invoice_id"`
	PartnerID     string     `db:"partner_id"`
	InvoiceType   string     `db:"invoice_type"`
	Items         []byte     `db:"items"`
	Discount      int64      `db:"discount"`
	DueDate       *time.Time `db:"due_date"`
	PaymentTerms  *string    `db:"payment_terms"`
	Notes         *string    `db:"notes"`
	AmountPaid    int64      `db:"amount_paid"`
	SourceQuoteID *string    `db:"source_quote_id"`
	Subtotal      int64      `db:"subtotal"`
	Total         int64      `db:"total"`
	AuditFields
}
