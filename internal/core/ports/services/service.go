package services

// ServiceContainer holds all service interfaces used by the handlers.
type ServiceContainer struct {
	Partner   PartnerSvcFacade
	Quote     QuoteSvcFacade
	Invoice   InvoiceSvcFacade
	Contract  ContractSvcFacade
	Signature SignatureSvcFacade
	Document  DocumentSvcFacade
}
