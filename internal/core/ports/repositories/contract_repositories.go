package repositories

import (
	"context"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
)

// ContractReader defines read operations for contracts. Returned contracts carry only
// their stored lifecycle; the derived status is applied from the signature ledger.
type ContractReader interface {
	FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error)

	// ListContracts skips rows that cannot be decoded.
	ListContracts(ctx context.Context, filter ListFilter) ([]domain.Contract, *string, error)

	// ContractStatusCounts counts contracts per derived status, evaluating the ledger in SQL.
	ContractStatusCounts(ctx context.Context) (StatusCounts, error)
}

// ContractWriter defines write operations for contracts
type ContractWriter interface {
	SaveContract(ctx context.Context, contract domain.Contract) error
	UpdateContract(ctx context.Context, contract domain.Contract) error
	DeleteContract(ctx context.Context, contractID string) error
}

// ContractRepositoryFacade combines all contract-related repository interfaces
type ContractRepositoryFacade interface {
	ContractReader
	ContractWriter
}
