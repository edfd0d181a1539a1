package domain

// Partner is a commercial counterparty referenced by quotes, invoices and contracts.
type Partner struct {
	PartnerID       string  `json:"partnerID"`
	Name            string  `json:"name"`
	CompanyName     *string `json:"companyName,omitempty"`
	TaxID           string  `json:"taxID"`           // Taxpayer identification number
	TradeRegistryID string  `json:"tradeRegistryID"` // Trade registry number
	Address         string  `json:"address"`
	City            string  `json:"city"`
	Country         string  `json:"country"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	LogoURL         *string `json:"logoURL,omitempty"`
	Representative  *string `json:"representative,omitempty"`
	AuditFields
}

// DisplayName prefers the company name when one is set.
func (p Partner) DisplayName() string {
	if p.CompanyName != nil && *p.CompanyName != "" {
		return *p.CompanyName
	}
	return p.Name
}
