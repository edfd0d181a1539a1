package models

import "time"

// Quote is the quotes table row. Items are stored as JSONB; subtotal and total are
// denormalized for aggregate queries.
type Quote struct {
	QuoteID            string    `db:"quote_id"`
	PartnerID          string    `db:"partner_id"`
	Title              string    `db:"title"`
	Description        *string   `db:"description"`
	Items              []byte    `db:"items"`
	Discount           int64     `db:"discount"`
	ValidityDays       int       `db:"validity_days"`
	ExpiresAt          time.Time `db:"expires_at"`
	PaymentTerms       *string   `db:"payment_terms"`
	Notes              *string   `db:"notes"`
	Status             string    `db:"status"`
	Subtotal           int64     `db:"subtotal"`
	Total              int64     `db:"total"`
	ConvertedInvoiceID *string   `db:"converted_invoice_id"`
	AuditFields
}
