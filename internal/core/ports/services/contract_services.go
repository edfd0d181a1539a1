package services

import (
	"context"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/SscSPs/docflow_backend/internal/dto"
)

// ContractReaderSvc defines read operations for contracts. Returned contracts carry the
// status derived from their signature ledger.
type ContractReaderSvc interface {
	GetContractByID(ctx context.Context, contractID string) (*domain.Contract, error)
	ListContracts(ctx context.Context, params dto.ListParams) (*dto.ListContractsResponse, error)
}

// ContractWriterSvc defines write operations for draft contracts
type ContractWriterSvc interface {
	CreateContract(ctx context.Context, req dto.CreateContractRequest, actorID string) (*domain.Contract, error)
	UpdateContract(ctx context.Context, contractID string, req dto.UpdateContractRequest, actorID string) (*domain.Contract, error)
	DeleteContract(ctx context.Context, contractID string) error
}

// ContractLifecycleSvc defines the explicit contract transitions
type ContractLifecycleSvc interface {
	SendContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error)
	ActivateContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error)
	TerminateContract(ctx context.Context, contractID string, req dto.TerminateContractRequest, actorID string) (*domain.Contract, error)
}

// ContractSvcFacade combines all contract-related service interfaces
type ContractSvcFacade interface {
	ContractReaderSvc
	ContractWriterSvc
	ContractLifecycleSvc
}
