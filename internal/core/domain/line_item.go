package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineItem is a priced row embedded in a quote or invoice. It has no identity
// beyond its position in the parent document.
type LineItem struct {
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	UnitPrice       int64           `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// Validate checks a single line item. index is used in the error message only.
func (li LineItem) Validate(index int) error {
	if strings.TrimSpace(li.Description) == "" {
		return fmt.Errorf("items[%d].description is required: %w", index, apperrors.ErrValidation)
	}
	if !li.Quantity.IsPositive() {
		return fmt.Errorf("items[%d].quantity must be positive, got %s: %w", index, li.Quantity, apperrors.ErrValidation)
	}
	if li.UnitPrice < 0 {
		return fmt.Errorf("items[%d].unitPrice must not be negative, got %d: %w", index, li.UnitPrice, apperrors.ErrValidation)
	}
	if li.DiscountPercent.IsNegative() || li.DiscountPercent.GreaterThan(hundred) {
		return fmt.Errorf("items[%d].discountPercent must be between 0 and 100, got %s: %w", index, li.DiscountPercent, apperrors.ErrValidation)
	}
	return nil
}

// ValidateLineItems validates every item, stopping at the first failure.
func ValidateLineItems(items []LineItem) error {
	for i, item := range items {
		if err := item.Validate(i); err != nil {
			return err
		}
	}
	return nil
}

// HasDiscount reports whether a per-line discount applies.
func (li LineItem) HasDiscount() bool {
	return li.DiscountPercent.IsPositive()
}
