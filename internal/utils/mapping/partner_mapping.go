package mapping

import (
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/SscSPs/docflow_backend/internal/models"
)

// ToModelPartner converts a domain Partner to a model Partner
func ToModelPartner(d domain.Partner) models.Partner {
	return models.Partner{
		PartnerID:       d.PartnerID,
		Name:            d.Name,
		CompanyName:     d.CompanyName,
		TaxID:           d.TaxID,
		TradeRegistryID: d.TradeRegistryID,
		Address:         d.Address,
		City:            d.City,
		Country:         d.Country,
		Email:           d.Email,
		Phone:           d.Phone,
		LogoURL:         d.LogoURL,
		Representative:  d.Representative,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPartner converts a model Partner to a domain Partner
func ToDomainPartner(m models.Partner) domain.Partner {
	return domain.Partner{
		PartnerID:       m.PartnerID,
		Name:            m.Name,
		CompanyName:     m.CompanyName,
		TaxID:           m.TaxID,
		TradeRegistryID: m.TradeRegistryID,
		Address:         m.Address,
		City:            m.City,
		Country:         m.Country,
		Email:           m.Email,
		Phone:           m.Phone,
		LogoURL:         m.LogoURL,
		Representative:  m.Representative,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
