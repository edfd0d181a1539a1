package domain

import (
	"fmt"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PaymentFrequency is how often the platform pays out a partner.
type PaymentFrequency string

const (
	PayWeekly   PaymentFrequency = "weekly"
	PayBiweekly PaymentFrequency = "biweekly"
	PayMonthly  PaymentFrequency = "monthly"
)

// PaymentMethod is how payouts are made.
type PaymentMethod string

const (
	PayByBankTransfer PaymentMethod = "bank_transfer"
	PayByCard         PaymentMethod = "card"
	PayByCash         PaymentMethod = "cash"
)

// DeliveryResponsibility names the party handling deliveries.
type DeliveryResponsibility string

const (
	DeliveryByProvider DeliveryResponsibility = "provider"
	DeliveryByPlatform DeliveryResponsibility = "platform"
)

// PartnershipTerms are the values substituted into the partnership contract template.
type PartnershipTerms struct {
	CommissionPercent      decimal.Decimal        `json:"commissionPercent"`
	PaymentFrequency       PaymentFrequency       `json:"paymentFrequency"`
	PaymentMethod          PaymentMethod          `json:"paymentMethod"`
	DeliveryResponsibility DeliveryResponsibility `json:"deliveryResponsibility"`
	DeliveryFee            int64                  `json:"deliveryFee"`
	DurationMonths         int                    `json:"durationMonths"`
}

// Validate checks every template parameter.
func (t PartnershipTerms) Validate() error {
	if t.CommissionPercent.IsNegative() || t.CommissionPercent.GreaterThan(hundred) {
		return fmt.Errorf("partnershipTerms.commissionPercent must be between 0 and 100: %w", apperrors.ErrValidation)
	}
	switch t.PaymentFrequency {
	case PayWeekly, PayBiweekly, PayMonthly:
	default:
		return fmt.Errorf("partnershipTerms.paymentFrequency %q is not supported: %w", t.PaymentFrequency, apperrors.ErrValidation)
	}
	switch t.PaymentMethod {
	case PayByBankTransfer, PayByCard, PayByCash:
	default:
		return fmt.Errorf("partnershipTerms.paymentMethod %q is not supported: %w", t.PaymentMethod, apperrors.ErrValidation)
	}
	switch t.DeliveryResponsibility {
	case DeliveryByProvider, DeliveryByPlatform:
	default:
		return fmt.Errorf("partnershipTerms.deliveryResponsibility %q is not supported: %w", t.DeliveryResponsibility, apperrors.ErrValidation)
	}
	if t.DeliveryFee < 0 {
		return fmt.Errorf("partnershipTerms.deliveryFee must not be negative: %w", apperrors.ErrValidation)
	}
	if t.DurationMonths < 1 {
		return fmt.Errorf("partnershipTerms.durationMonths must be at least 1: %w", apperrors.ErrValidation)
	}
	return nil
}

// ValidateContractShape enforces the relation between contract type, clauses and terms.
func ValidateContractShape(contractType ContractType, clauses []Clause, terms *PartnershipTerms) error {
	if !contractType.IsValid() {
		return fmt.Errorf("contractType %q is not supported: %w", contractType, apperrors.ErrValidation)
	}
	if contractType == ContractPartnership {
		if terms == nil {
			return fmt.Errorf("partnership contracts require partnershipTerms: %w", apperrors.ErrValidation)
		}
		if len(clauses) > 0 {
			return fmt.Errorf("partnership contracts use the fixed article template and cannot carry clauses: %w", apperrors.ErrValidation)
		}
		return terms.Validate()
	}
	if terms != nil {
		return fmt.Errorf("partnershipTerms are only valid for partnership contracts: %w", apperrors.ErrValidation)
	}
	return ValidateClauses(clauses)
}
