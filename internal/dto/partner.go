package dto

import (
	"time"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
)

// CreatePartnerRequest defines the data needed to register a partner.
type CreatePartnerRequest struct {
	Name            string  `json:"name" binding:"required,max=200"`
	CompanyName     *string `json:"companyName" binding:"omitempty,max=200"`
	TaxID           string  `json:"taxID" binding:"max=50"`
	TradeRegistryID string  `json:"tradeRegistryID" binding:"max=50"`
	Address         string  `json:"address"`
	City            string  `json:"city"`
	Country         string  `json:"country"`
	Email           string  `json:"email" binding:"omitempty,email"`
	Phone           string  `json:"phone"`
	LogoURL         *string `json:"logoURL" binding:"omitempty,url"`
	Representative  *string `json:"representative"`
}

// UpdatePartnerRequest defines the fields that can be changed on a partner.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdatePartnerRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=200"`
	CompanyName     *string `json:"companyName" binding:"omitempty,max=200"`
	TaxID           *string `json:"taxID" binding:"omitempty,max=50"`
	TradeRegistryID *string `json:"tradeRegistryID" binding:"omitempty,max=50"`
	Address         *string `json:"address"`
	City            *string `json:"city"`
	Country         *string `json:"country"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Phone           *string `json:"phone"`
	LogoURL         *string `json:"logoURL" binding:"omitempty,url"`
	Representative  *string `json:"representative"`
}

// PartnerResponse defines the data returned for a partner.
type PartnerResponse struct {
	PartnerID       string    `json:"partnerID"`
	Name            string    `json:"name"`
	CompanyName     *string   `json:"companyName,omitempty"`
	TaxID           string    `json:"taxID"`
	TradeRegistryID string    `json:"tradeRegistryID"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	Country         string    `json:"country"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	LogoURL         *string   `json:"logoURL,omitempty"`
	Representative  *string   `json:"representative,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatedBy       string    `json:"createdBy"`
	LastUpdatedAt   time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy   string    `json:"lastUpdatedBy"`
}

// ListPartnersResponse wraps a page of partners.
type ListPartnersResponse struct {
	Partners  []PartnerResponse `json:"partners"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToPartnerResponse converts a domain.Partner to PartnerResponse DTO
func ToPartnerResponse(p *domain.Partner) PartnerResponse {
	return PartnerResponse{
		PartnerID:       p.PartnerID,
		Name:            p.Name,
		CompanyName:     p.CompanyName,
		TaxID:           p.TaxID,
		TradeRegistryID: p.TradeRegistryID,
		Address:         p.Address,
		City:            p.City,
		Country:         p.Country,
		Email:           p.Email,
		Phone:           p.Phone,
		LogoURL:         p.LogoURL,
		Representative:  p.Representative,
		CreatedAt:       p.CreatedAt,
		CreatedBy:       p.CreatedBy,
		LastUpdatedAt:   p.LastUpdatedAt,
		LastUpdatedBy:   p.LastUpdatedBy,
	}
}

// ToListPartnersResponse converts a page of partners.
func ToListPartnersResponse(partners []domain.Partner, nextToken *string) ListPartnersResponse {
	res := ListPartnersResponse{Partners: make([]PartnerResponse, len(partners)), NextToken: nextToken}
	for i := range partners {
		res.Partners[i] = ToPartnerResponse(&partners[i])
	}
	return res
}
