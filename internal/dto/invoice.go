package dto

import (
	"time"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
)

// CreateInvoiceRequest defines the data needed to issue an invoice.
type CreateInvoiceRequest struct {
	PartnerID    string             `json:"partnerID" binding:"required,docid=partner"`
	InvoiceType  domain.InvoiceType `json:"invoiceType" binding:"required,oneof=proforma final"`
	Items        []LineItemRequest  `json:"items" binding:"dive"`
	Discount     int64              `json:"discount" binding:"gte=0"`
	DueDate      *time.Time         `json:"dueDate"`
	PaymentTerms *string            `json:"paymentTerms"`
	Notes        *string            `json:"notes"`
	AmountPaid   int64              `json:"amountPaid" binding:"gte=0"`
}

// UpdateInvoiceRequest defines the mutable invoice fields. The invoice type is immutable.
type UpdateInvoiceRequest struct {
	Items        *[]LineItemRequest `json:"items" binding:"omitempty,dive"`
	Discount     *int64             `json:"discount" binding:"omitempty,gte=0"`
	DueDate      *time.Time         `json:"dueDate"`
	PaymentTerms *string            `json:"paymentTerms"`
	Notes        *string            `json:"notes"`
}

// RecordPaymentRequest sets the cumulative amount paid on an invoice.
type RecordPaymentRequest struct {
	AmountPaid *int64 `json:"amountPaid" binding:"required,gte=0"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string               `json:"invoiceID"`
	PartnerID     string               `json:"partnerID"`
	InvoiceType   domain.InvoiceType   `json:"invoiceType"`
	Items         []LineItemResponse   `json:"items"`
	Subtotal      int64                `json:"subtotal"`
	Discount      int64                `json:"discount"`
	Total         int64                `json:"total"`
	AmountPaid    int64                `json:"amountPaid"`
	BalanceDue    int64                `json:"balanceDue"`
	Status        domain.InvoiceStatus `json:"status"`
	DueDate       *time.Time           `json:"dueDate,omitempty"`
	PaymentTerms  *string              `json:"paymentTerms,omitempty"`
	Notes         *string              `json:"notes,omitempty"`
	SourceQuoteID *string              `json:"sourceQuoteID,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy string               `json:"lastUpdatedBy"`
}

// ListInvoicesResponse wraps a page of invoices with aggregate stats.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
	Stats     StatsResponse     `json:"stats"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		PartnerID:     inv.PartnerID,
		InvoiceType:   inv.InvoiceType,
		Items:         ToLineItemResponses(inv.Items),
		Subtotal:      inv.Subtotal,
		Discount:      inv.Discount,
		Total:         inv.Total,
		AmountPaid:    inv.AmountPaid,
		BalanceDue:    inv.BalanceDue(),
		Status:        inv.Status,
		DueDate:       inv.DueDate,
		PaymentTerms:  inv.PaymentTerms,
		Notes:         inv.Notes,
		SourceQuoteID: inv.SourceQuoteID,
		CreatedAt:     inv.CreatedAt,
		CreatedBy:     inv.CreatedBy,
		LastUpdatedAt: inv.LastUpdatedAt,
		LastUpdatedBy: inv.LastUpdatedBy,
	}
}

// ToInvoiceResponses converts a slice of invoices.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i])
	}
	return res
}
