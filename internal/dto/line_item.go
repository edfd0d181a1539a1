package dto

import (
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/SscSPs/docflow_backend/internal/utils/pricing"
	"github.com/shopspring/decimal"
)

// LineItemRequest is a line item as submitted by clients. Quantity and discount
// accept JSON numbers or strings; range checks happen in the domain.
type LineItemRequest struct {
	Description     string          `json:"description" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" swaggertype:"number"`
	Unit            string          `json:"unit"`
	UnitPrice       int64           `json:"unitPrice" binding:"gte=0"`
	DiscountPercent decimal.Decimal `json:"discountPercent" swaggertype:"number"`
}

// LineItemResponse adds the derived line total.
type LineItemResponse struct {
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity" swaggertype:"number"`
	Unit            string          `json:"unit"`
	UnitPrice       int64           `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent" swaggertype:"number"`
	LineTotal       int64           `json:"lineTotal"`
}

// ToDomainLineItems converts request items preserving order.
func ToDomainLineItems(items []LineItemRequest) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i, it := range items {
		out[i] = domain.LineItem{
			Description:     it.Description,
			Quantity:        it.Quantity,
			Unit:            it.Unit,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
		}
	}
	return out
}

// ToLineItemResponses prices each item with the shared calculator.
func ToLineItemResponses(items []domain.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, len(items))
	for i, it := range items {
		out[i] = LineItemResponse{
			Description:     it.Description,
			Quantity:        it.Quantity,
			Unit:            it.Unit,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
			LineTotal:       pricing.PriceLine(it),
		}
	}
	return out
}
