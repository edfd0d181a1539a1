package services

import (
	"github.com/SscSPs/docflow_backend/internal/core/ports/infrastructure"
	portsrepo "github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	renderer portssvc.DocumentRenderer,
	mailer infrastructure.Mailer,
	opts ...Option,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Partner = NewPartnerService(repos.PartnerRepo, opts...)
	container.Quote = NewQuoteService(repos.QuoteRepo, repos.InvoiceRepo, repos.PartnerRepo, opts...)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.PartnerRepo, opts...)
	container.Contract = NewContractService(repos.ContractRepo, repos.SignatureRepo, repos.PartnerRepo, opts...)
	container.Signature = NewSignatureService(repos.SignatureRepo, repos.ContractRepo, opts...)

	container.Document = NewDocumentService(DocumentRepositories{
		Quotes:     repos.QuoteRepo,
		Invoices:   repos.InvoiceRepo,
		Contracts:  repos.ContractRepo,
		Signatures: repos.SignatureRepo,
		Partners:   repos.PartnerRepo,
	}, renderer, mailer, cfg.Organization.Name, opts...)

	return container
}
