package pricing

import (
	"testing"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(qty string, price int64, discount string) domain.LineItem {
	return domain.LineItem{
		Description:     "x",
		Quantity:        decimal.RequireFromString(qty),
		Unit:            "pcs",
		UnitPrice:       price,
		DiscountPercent: decimal.RequireFromString(discount),
	}
}

func TestPriceLine(t *testing.T) {
	tests := []struct {
		name string
		item domain.LineItem
		want int64
	}{
		{"no discount", item("2", 10000, "0"), 20000},
		{"fractional quantity", item("1.5", 3, "0"), 5},       // 4.5 rounds up
		{"half rounds up not to even", item("2.5", 1, "0"), 3}, // half-even would give 2
		{"below half rounds down", item("1.49", 1, "0"), 1},
		{"ten percent", item("3", 999, "10"), 2697}, // 2697.3
		{"fractional discount", item("1", 1000, "12.5"), 875},
		{"full discount", item("7", 12345, "100"), 0},
		{"zero price", item("4", 0, "0"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriceLine(tt.item))
		})
	}
}

func TestPriceLine_Monotonic(t *testing.T) {
	prev := int64(-1)
	for price := int64(0); price <= 500; price += 7 {
		got := PriceLine(item("1.3", price, "17"))
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
	prev = -1
	for q := 1; q <= 50; q++ {
		got := PriceLine(item(decimal.NewFromInt(int64(q)).Div(decimal.NewFromInt(4)).String(), 333, "5"))
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestPriceDocument(t *testing.T) {
	items := []domain.LineItem{item("2", 10000, "0"), item("1", 500, "50")}

	totals := PriceDocument(items, 0)
	assert.Equal(t, Totals{Subtotal: 20250, Discount: 0, Total: 20250}, totals)

	totals = PriceDocument(items, 250)
	assert.Equal(t, int64(20000), totals.Total)

	totals = PriceDocument(items, 999999)
	assert.Equal(t, int64(0), totals.Total, "total is clamped at zero")
	assert.Equal(t, int64(20250), totals.Subtotal)

	empty := PriceDocument(nil, 0)
	assert.Equal(t, Totals{}, empty)
}

func TestApplyToInvoice_DerivesStatus(t *testing.T) {
	inv := &domain.Invoice{Items: []domain.LineItem{item("1", 1000, "0")}, AmountPaid: 1000}
	ApplyToInvoice(inv)
	assert.Equal(t, int64(1000), inv.Total)
	assert.Equal(t, domain.InvoicePaid, inv.Status)

	inv.AmountPaid = 10
	ApplyToInvoice(inv)
	assert.Equal(t, domain.InvoicePartial, inv.Status)
}
