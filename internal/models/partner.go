package models

// Partner is the partners table row.
type Partner struct {
	PartnerID       string  `db:"partner_id"`
	Name            string  `db:"name"`
	CompanyName     *string `db:"company_name"`
	TaxID           string  `db:"tax_id"`
	TradeRegistryID string  `db:"trade_registry_id"`
	Address         string  `db:"address"`
	City            string  `db:"city"`
	Country         string  `db:"country"`
	Email           string  `db:"email"`
	Phone           string  `db:"phone"`
	LogoURL         *string `db:"logo_url"`
	Representative  *string `db:"representative"`
	AuditFields
}
