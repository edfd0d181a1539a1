package pgsql

import (
	portsrepo "github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PartnerRepo:   newPgxPartnerRepository(dbPool),
		QuoteRepo:     newPgxQuoteRepository(dbPool),
		InvoiceRepo:   newPgxInvoiceRepository(dbPool),
		ContractRepo:  newPgxContractRepository(dbPool),
		SignatureRepo: newPgxSignatureRepository(dbPool),
	}
}
