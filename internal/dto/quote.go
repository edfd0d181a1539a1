package dto

import (
	"time"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
)

// CreateQuoteRequest defines the data needed to create a quote.
type CreateQuoteRequest struct {
	PartnerID    string            `json:"partnerID" binding:"required,docid=partner"`
	Title        string            `json:"title" binding:"required,max=200"`
	Description  *string           `json:"description"`
	Items        []LineItemRequest `json:"items" binding:"dive"`
	Discount     int64             `json:"discount" binding:"gte=0"`
	ValidityDays int               `json:"validityDays" binding:"omitempty,min=1,max=365"`
	PaymentTerms *string           `json:"paymentTerms"`
	Notes        *string           `json:"notes"`
}

// UpdateQuoteRequest defines the fields that can be changed on a draft quote.
type UpdateQuoteRequest struct {
	Title        *string            `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string            `json:"description"`
	Items        *[]LineItemRequest `json:"items" binding:"omitempty,dive"`
	Discount     *int64             `json:"discount" binding:"omitempty,gte=0"`
	ValidityDays *int               `json:"validityDays" binding:"omitempty,min=1,max=365"`
	PaymentTerms *string            `json:"paymentTerms"`
	Notes        *string            `json:"notes"`
}

// QuoteResponse defines the data returned for a quote. Status reflects lazy expiry.
type QuoteResponse struct {
	QuoteID            string             `json:"quoteID"`
	PartnerID          string             `json:"partnerID"`
	Title              string             `json:"title"`
	Description        *string            `json:"description,omitempty"`
	Items              []LineItemResponse `json:"items"`
	Subtotal           int64              `json:"subtotal"`
	Discount           int64              `json:"discount"`
	Total              int64              `json:"total"`
	ValidityDays       int                `json:"validityDays"`
	ExpiresAt          time.Time          `json:"expiresAt"`
	PaymentTerms       *string            `json:"paymentTerms,omitempty"`
	Notes              *string            `json:"notes,omitempty"`
	Status             domain.QuoteStatus `json:"status"`
	ConvertedInvoiceID *string            `json:"convertedInvoiceID,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	CreatedBy          string             `json:"createdBy"`
	LastUpdatedAt      time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy      string             `json:"lastUpdatedBy"`
}

// ListQuotesResponse wraps a page of quotes with aggregate stats.
type ListQuotesResponse struct {
	Quotes    []QuoteResponse `json:"quotes"`
	NextToken *string         `json:"nextToken,omitempty"`
	Stats     StatsResponse   `json:"stats"`
}

// ToQuoteResponse converts a domain.Quote to QuoteResponse DTO
func ToQuoteResponse(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		QuoteID:            q.QuoteID,
		PartnerID:          q.PartnerID,
		Title:              q.Title,
		Description:        q.Description,
		Items:              ToLineItemResponses(q.Items),
		Subtotal:           q.Subtotal,
		Discount:           q.Discount,
		Total:              q.Total,
		ValidityDays:       q.ValidityDays,
		ExpiresAt:          q.ExpiresAt,
		PaymentTerms:       q.PaymentTerms,
		Notes:              q.Notes,
		Status:             q.Status,
		ConvertedInvoiceID: q.ConvertedInvoiceID,
		CreatedAt:          q.CreatedAt,
		CreatedBy:          q.CreatedBy,
		LastUpdatedAt:      q.LastUpdatedAt,
		LastUpdatedBy:      q.LastUpdatedBy,
	}
}

// ToQuoteResponses converts a slice of quotes.
func ToQuoteResponses(quotes []domain.Quote) []QuoteResponse {
	res := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		res[i] = ToQuoteResponse(&quotes[i])
	}
	return res
}
