package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/SscSPs/docflow_backend/internal/models"
)

// ErrMalformedRow marks a stored row whose JSON columns or enums cannot be decoded.
var ErrMalformedRow = fmt.Errorf("malformed row")

func encodeJSON(column string, v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", column, err)
	}
	return b, nil
}

func decodeJSON(column string, raw []byte, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrMalformedRow, column, err)
	}
	return nil
}

// ToModelQuote converts a domain Quote to a model Quote
func ToModelQuote(d domain.Quote) (models.Quote, error) {
	items, err := encodeJSON("items", nonNilItems(d.Items))
	if err != nil {
		return models.Quote{}, err
	}
	return models.Quote{
		QuoteID:            d.QuoteID,
		PartnerID:          d.PartnerID,
		Title:              d.Title,
		Description:        d.Description,
		Items:              items,
		Discount:           d.Discount,
		ValidityDays:       d.ValidityDays,
		ExpiresAt:          d.ExpiresAt,
		PaymentTerms:       d.PaymentTerms,
		Notes:              d.Notes,
		Status:             string(d.Status),
		Subtotal:           d.Subtotal,
		Total:              d.Total,
		ConvertedInvoiceID: d.ConvertedInvoiceID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainQuote converts a model Quote to a domain Quote
func ToDomainQuote(m models.Quote) (domain.Quote, error) {
	var items []domain.LineItem
	if err := decodeJSON("items", m.Items, &items); err != nil {
		return domain.Quote{}, err
	}
	status := domain.QuoteStatus(m.Status)
	if !isKnown(domain.QuoteStatuses, status) {
		return domain.Quote{}, fmt.Errorf("%w: unknown quote status %q", ErrMalformedRow, m.Status)
	}
	return domain.Quote{
		QuoteID:            m.QuoteID,
		PartnerID:          m.PartnerID,
		Title:              m.Title,
		Description:        m.Description,
		Items:              nonNilItems(items),
		Discount:           m.Discount,
		ValidityDays:       m.ValidityDays,
		ExpiresAt:          m.ExpiresAt,
		PaymentTerms:       m.PaymentTerms,
		Notes:              m.Notes,
		Status:             status,
		Subtotal:           m.Subtotal,
		Total:              m.Total,
		ConvertedInvoiceID: m.ConvertedInvoiceID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) (models.Invoice, error) {
	items, err := encodeJSON("items", nonNilItems(d.Items))
	if err != nil {
		return models.Invoice{}, err
	}
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		PartnerID:     d.PartnerID,
		InvoiceType:   string(d.InvoiceType),
		Items:         items,
		Discount:      d.Discount,
		DueDate:       d.DueDate,
		PaymentTerms:  d.PaymentTerms,
		Notes:         d.Notes,
		AmountPaid:    d.AmountPaid,
		SourceQuoteID: d.SourceQuoteID,
		Subtotal:      d.Subtotal,
		Total:         d.Total,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainInvoice converts a model Invoice to a domain Invoice. Totals and status are
// left to the pricing layer.
func ToDomainInvoice(m models.Invoice) (domain.Invoice, error) {
	var items []domain.LineItem
	if err := decodeJSON("items", m.Items, &items); err != nil {
		return domain.Invoice{}, err
	}
	invoiceType := domain.InvoiceType(m.InvoiceType)
	if !invoiceType.IsValid() {
		return domain.Invoice{}, fmt.Errorf("%w: unknown invoice type %q", ErrMalformedRow, m.InvoiceType)
	}
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		PartnerID:     m.PartnerID,
		InvoiceType:   invoiceType,
		Items:         nonNilItems(items),
		Discount:      m.Discount,
		DueDate:       m.DueDate,
		PaymentTerms:  m.PaymentTerms,
		Notes:         m.Notes,
		AmountPaid:    m.AmountPaid,
		SourceQuoteID: m.SourceQuoteID,
		Subtotal:      m.Subtotal,
		Total:         m.Total,
		Status:        domain.DeriveInvoiceStatus(m.AmountPaid, m.Total),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelContract converts a domain Contract to a model Contract
func ToModelContract(d domain.Contract) (models.Contract, error) {
	clauses := d.Clauses
	if clauses == nil {
		clauses = []domain.Clause{}
	}
	clausesJSON, err := encodeJSON("clauses", clauses)
	if err != nil {
		return models.Contract{}, err
	}
	var termsJSON []byte
	if d.PartnershipTerms != nil {
		if termsJSON, err = encodeJSON("partnership_terms", d.PartnershipTerms); err != nil {
			return models.Contract{}, err
		}
	}
	return models.Contract{
		ContractID:        d.ContractID,
		PartnerID:         d.PartnerID,
		ContractType:      string(d.ContractType),
		Title:             d.Title,
		Description:       d.Description,
		Clauses:           clausesJSON,
		PartnershipTerms:  termsJSON,
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		Value:             d.Value,
		Notes:             d.Notes,
		Lifecycle:         string(d.Lifecycle),
		TerminationReason: d.TerminationReason,
		ActivatedAt:       d.ActivatedAt,
		TerminatedAt:      d.TerminatedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainContract converts a model Contract to a domain Contract. The status reflects
// the lifecycle alone until signatures are applied.
func ToDomainContract(m models.Contract) (domain.Contract, error) {
	clauses := []domain.Clause{}
	if err := decodeJSON("clauses", m.Clauses, &clauses); err != nil {
		return domain.Contract{}, err
	}
	var terms *domain.PartnershipTerms
	if len(m.PartnershipTerms) > 0 && string(m.PartnershipTerms) != "null" {
		terms = &domain.PartnershipTerms{}
		if err := decodeJSON("partnership_terms", m.PartnershipTerms, terms); err != nil {
			return domain.Contract{}, err
		}
	}
	lifecycle := domain.ContractLifecycle(m.Lifecycle)
	switch lifecycle {
	case domain.LifecycleDraft, domain.LifecycleSent, domain.LifecycleActive, domain.LifecycleTerminated:
	default:
		return domain.Contract{}, fmt.Errorf("%w: unknown contract lifecycle %q", ErrMalformedRow, m.Lifecycle)
	}
	c := domain.Contract{
		ContractID:        m.ContractID,
		PartnerID:         m.PartnerID,
		ContractType:      domain.ContractType(m.ContractType),
		Title:             m.Title,
		Description:       m.Description,
		Clauses:           clauses,
		PartnershipTerms:  terms,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Value:             m.Value,
		Notes:             m.Notes,
		Lifecycle:         lifecycle,
		TerminationReason: m.TerminationReason,
		ActivatedAt:       m.ActivatedAt,
		TerminatedAt:      m.TerminatedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	c.Status = domain.ContractStatus(lifecycle)
	return c, nil
}

// ToModelSignature converts a domain Signature to a model Signature
func ToModelSignature(d domain.Signature) models.Signature {
	return models.Signature{
		SignatureID: d.SignatureID,
		ContractID:  d.ContractID,
		SignerName:  d.SignerName,
		SignerRole:  string(d.SignerRole),
		ImageData:   d.ImageData,
		ImageDigest: d.ImageDigest,
		CreatedAt:   d.CreatedAt,
		CreatedBy:   d.CreatedBy,
	}
}

// ToDomainSignature converts a model Signature to a domain Signature
func ToDomainSignature(m models.Signature) domain.Signature {
	return domain.Signature{
		SignatureID: m.SignatureID,
		ContractID:  m.ContractID,
		SignerName:  m.SignerName,
		SignerRole:  domain.SignerRole(m.SignerRole),
		ImageData:   m.ImageData,
		ImageDigest: m.ImageDigest,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

func nonNilItems(items []domain.LineItem) []domain.LineItem {
	if items == nil {
		return []domain.LineItem{}
	}
	return items
}

func isKnown[S comparable](known []S, v S) bool {
	for _, k := range known {
		if k == v {
			return true
		}
	}
	return false
}
