package dto

import (
	"time"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ClauseRequest is a contract clause as submitted by clients.
type ClauseRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Editable bool   `json:"editable"`
}

// PartnershipTermsRequest carries the partnership template parameters.
type PartnershipTermsRequest struct {
	CommissionPercent      decimal.Decimal `json:"commissionPercent" swaggertype:"number"`
	PaymentFrequency       string          `json:"paymentFrequency" binding:"required,oneof=weekly biweekly monthly"`
	PaymentMethod          string          `json:"paymentMethod" binding:"required,oneof=bank_transfer card cash"`
	DeliveryResponsibility string          `json:"deliveryResponsibility" binding:"required,oneof=provider platform"`
	DeliveryFee            int64           `json:"deliveryFee" binding:"gte=0"`
	DurationMonths         int             `json:"durationMonths" binding:"required,min=1,max=120"`
}

// CreateContractRequest defines the data needed to draft a contract.
type CreateContractRequest struct {
	PartnerID        string                   `json:"partnerID" binding:"required,docid=partner"`
	ContractType     domain.ContractType      `json:"contractType" binding:"required,oneof=generic partnership sponsoring vendor"`
	Title            string                   `json:"title" binding:"required,max=200"`
	Description      *string                  `json:"description"`
	Clauses          []ClauseRequest          `json:"clauses" binding:"dive"`
	PartnershipTerms *PartnershipTermsRequest `json:"partnershipTerms"`
	StartDate        time.Time                `json:"startDate" binding:"required"`
	EndDate          *time.Time               `json:"endDate"`
	Value            *int64                   `json:"value" binding:"omitempty,gte=0"`
	Notes            *string                  `json:"notes"`
}

// UpdateContractRequest defines the fields that can be changed on a draft contract.
type UpdateContractRequest struct {
	Title            *string                  `json:"title" binding:"omitempty,min=1,max=200"`
	Description      *string                  `json:"description"`
	Clauses          *[]ClauseRequest         `json:"clauses" binding:"omitempty,dive"`
	PartnershipTerms *PartnershipTermsRequest `json:"partnershipTerms"`
	StartDate        *time.Time               `json:"startDate"`
	EndDate          *time.Time               `json:"endDate"`
	Value            *int64                   `json:"value" binding:"omitempty,gte=0"`
	Notes            *string                  `json:"notes"`
}

// TerminateContractRequest carries the mandatory termination reason.
type TerminateContractRequest struct {
	Reason string `json:"reason" binding:"required,max=2000"`
}

// ContractResponse defines the data returned for a contract.
type ContractResponse struct {
	ContractID        string                   `json:"contractID"`
	PartnerID         string                   `json:"partnerID"`
	ContractType      domain.ContractType      `json:"contractType"`
	Title             string                   `json:"title"`
	Description       *string                  `json:"description,omitempty"`
	Clauses           []domain.Clause          `json:"clauses"`
	PartnershipTerms  *domain.PartnershipTerms `json:"partnershipTerms,omitempty"`
	StartDate         time.Time                `json:"startDate"`
	EndDate           *time.Time               `json:"endDate,omitempty"`
	Value             *int64                   `json:"value,omitempty"`
	Notes             *string                  `json:"notes,omitempty"`
	Status            domain.ContractStatus    `json:"status"`
	PartnerSigned     bool                     `json:"partnerSigned"`
	CompanySigned     bool                     `json:"companySigned"`
	FullySigned       bool                     `json:"fullySigned"`
	TerminationReason *string                  `json:"terminationReason,omitempty"`
	ActivatedAt       *time.Time               `json:"activatedAt,omitempty"`
	TerminatedAt      *time.Time               `json:"terminatedAt,omitempty"`
	CreatedAt         time.Time                `json:"createdAt"`
	CreatedBy         string                   `json:"createdBy"`
	LastUpdatedAt     time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy     string                   `json:"lastUpdatedBy"`
}

// ListContractsResponse wraps a page of contracts with aggregate stats.
type ListContractsResponse struct {
	Contracts []ContractResponse `json:"contracts"`
	NextToken *string            `json:"nextToken,omitempty"`
	Stats     StatsResponse      `json:"stats"`
}

// ToDomainClauses converts request clauses preserving order.
func ToDomainClauses(clauses []ClauseRequest) []domain.Clause {
	out := make([]domain.Clause, len(clauses))
	for i, c := range clauses {
		out[i] = domain.Clause{Title: c.Title, Body: c.Body, Editable: c.Editable}
	}
	return out
}

// ToDomainPartnershipTerms converts the optional template parameters.
func ToDomainPartnershipTerms(t *PartnershipTermsRequest) *domain.PartnershipTerms {
	if t == nil {
		return nil
	}
	return &domain.PartnershipTerms{
		CommissionPercent:      t.CommissionPercent,
		PaymentFrequency:       domain.PaymentFrequency(t.PaymentFrequency),
		PaymentMethod:          domain.PaymentMethod(t.PaymentMethod),
		DeliveryResponsibility: domain.DeliveryResponsibility(t.DeliveryResponsibility),
		DeliveryFee:            t.DeliveryFee,
		DurationMonths:         t.DurationMonths,
	}
}

// ToContractResponse converts a domain.Contract to ContractResponse DTO
func ToContractResponse(c *domain.Contract) ContractResponse {
	clauses := c.Clauses
	if clauses == nil {
		clauses = []domain.Clause{}
	}
	return ContractResponse{
		ContractID:        c.ContractID,
		PartnerID:         c.PartnerID,
		ContractType:      c.ContractType,
		Title:             c.Title,
		Description:       c.Description,
		Clauses:           clauses,
		PartnershipTerms:  c.PartnershipTerms,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		Value:             c.Value,
		Notes:             c.Notes,
		Status:            c.Status,
		PartnerSigned:     c.Signatures.PartnerSigned,
		CompanySigned:     c.Signatures.CompanySigned,
		FullySigned:       c.Signatures.FullySigned,
		TerminationReason: c.TerminationReason,
		ActivatedAt:       c.ActivatedAt,
		TerminatedAt:      c.TerminatedAt,
		CreatedAt:         c.CreatedAt,
		CreatedBy:         c.CreatedBy,
		LastUpdatedAt:     c.LastUpdatedAt,
		LastUpdatedBy:     c.LastUpdatedBy,
	}
}

// ToContractResponses converts a slice of contracts.
func ToContractResponses(contracts []domain.Contract) []ContractResponse {
	res := make([]ContractResponse, len(contracts))
	for i := range contracts {
		res[i] = ToContractResponse(&contracts[i])
	}
	return res
}
