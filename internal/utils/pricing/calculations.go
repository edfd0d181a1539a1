package pricing

import (
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals is the priced summary of a document.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Total    int64 `json:"total"`
}

// PriceLine computes round(quantity * unitPrice * (1 - discount/100)).
// This is used by services, repositories and the PDF composer so that figures never diverge.
// Rounding is half-up: decimal.Round rounds half away from zero and every operand is non-negative.
func PriceLine(item domain.LineItem) int64 {
	factor := hundred.Sub(item.DiscountPercent).Div(hundred)
	amount := item.Quantity.Mul(decimal.NewFromInt(item.UnitPrice)).Mul(factor)
	return amount.Round(0).IntPart()
}

// PriceLines returns the line totals in document order.
func PriceLines(items []domain.LineItem) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = PriceLine(item)
	}
	return out
}

// PriceDocument sums the line totals and applies the explicit discount, clamping at zero.
func PriceDocument(items []domain.LineItem, explicitDiscount int64) Totals {
	var subtotal int64
	for _, item := range items {
		subtotal += PriceLine(item)
	}
	total := subtotal - explicitDiscount
	if total < 0 {
		total = 0
	}
	return Totals{Subtotal: subtotal, Discount: explicitDiscount, Total: total}
}

// ApplyToQuote refreshes the derived totals on a quote.
func ApplyToQuote(q *domain.Quote) Totals {
	t := PriceDocument(q.Items, q.Discount)
	q.Subtotal, q.Total = t.Subtotal, t.Total
	return t
}

// ApplyToInvoice refreshes the derived totals and status on an invoice.
func ApplyToInvoice(inv *domain.Invoice) Totals {
	t := PriceDocument(inv.Items, inv.Discount)
	inv.Subtotal, inv.Total = t.Subtotal, t.Total
	inv.Status = domain.DeriveInvoiceStatus(inv.AmountPaid, inv.Total)
	return t
}
