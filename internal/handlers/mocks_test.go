package handlers_test

import (
	"context"

	"github.com/SscSPs/docflow_backend/internal/composition"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock PartnerService ---
type MockPartnerService struct {
	mock.Mock
}

func (m *MockPartnerService) GetPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}
func (m *MockPartnerService) ListPartners(ctx context.Context, params dto.ListParams) ([]domain.Partner, *string, error) {
	args := m.Called(ctx, params)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Partner), next, args.Error(2)
}
func (m *MockPartnerService) CreatePartner(ctx context.Context, req dto.CreatePartnerRequest, actorID string) (*domain.Partner, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}
func (m *MockPartnerService) UpdatePartner(ctx context.Context, partnerID string, req dto.UpdatePartnerRequest, actorID string) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}
func (m *MockPartnerService) DeletePartner(ctx context.Context, partnerID string) error {
	return m.Called(ctx, partnerID).Error(0)
}

var _ portssvc.PartnerSvcFacade = (*MockPartnerService)(nil)

// --- Mock QuoteService ---
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) quote(args mock.Arguments) (*domain.Quote, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}
func (m *MockQuoteService) GetQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	return m.quote(m.Called(ctx, quoteID))
}
func (m *MockQuoteService) ListQuotes(ctx context.Context, params dto.ListParams) (*dto.ListQuotesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListQuotesResponse), args.Error(1)
}
func (m *MockQuoteService) CreateQuote(ctx context.Context, req dto.CreateQuoteRequest, actorID string) (*domain.Quote, error) {
	return m.quote(m.Called(ctx, req, actorID))
}
func (m *MockQuoteService) UpdateQuote(ctx context.Context, quoteID string, req dto.UpdateQuoteRequest, actorID string) (*domain.Quote, error) {
	return m.quote(m.Called(ctx, quoteID, req, actorID))
}
func (m *MockQuoteService) DeleteQuote(ctx context.Context, quoteID string) error {
	return m.Called(ctx, quoteID).Error(0)
}
func (m *MockQuoteService) SendQuote(ctx context.Context, quoteID string, actorID string) (*domain.Quote, error) {
	return m.quote(m.Called(ctx, quoteID, actorID))
}
func (m *MockQuoteService) AcceptQuote(ctx context.Context, quoteID string, actorID string) (*domain.Quote, error) {
	return m.quote(m.Called(ctx, quoteID, actorID))
}
func (m *MockQuoteService) RejectQuote(ctx context.Context, quoteID string, actorID string) (*domain.Quote, error) {
	return m.quote(m.Called(ctx, quoteID, actorID))
}
func (m *MockQuoteService) ConvertQuoteToInvoice(ctx context.Context, quoteID string, actorID string) (*domain.Invoice, error) {
	args := m.Called(ctx, quoteID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

var _ portssvc.QuoteSvcFacade = (*MockQuoteService)(nil)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) invoice(args mock.Arguments) (*domain.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, invoiceID))
}
func (m *MockInvoiceService) ListInvoices(ctx context.Context, params dto.ListParams) (*dto.ListInvoicesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListInvoicesResponse), args.Error(1)
}
func (m *MockInvoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, actorID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, req, actorID))
}
func (m *MockInvoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, actorID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, invoiceID, req, actorID))
}
func (m *MockInvoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	return m.Called(ctx, invoiceID).Error(0)
}
func (m *MockInvoiceService) RecordPayment(ctx context.Context, invoiceID string, req dto.RecordPaymentRequest, actorID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, invoiceID, req, actorID))
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Mock ContractService ---
type MockContractService struct {
	mock.Mock
}

func (m *MockContractService) contract(args mock.Arguments) (*domain.Contract, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractService) GetContractByID(ctx context.Context, contractID string) (*domain.Contract, error) {
	return m.contract(m.Called(ctx, contractID))
}
func (m *MockContractService) ListContracts(ctx context.Context, params dto.ListParams) (*dto.ListContractsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListContractsResponse), args.Error(1)
}
func (m *MockContractService) CreateContract(ctx context.Context, req dto.CreateContractRequest, actorID string) (*domain.Contract, error) {
	return m.contract(m.Called(ctx, req, actorID))
}
func (m *MockContractService) UpdateContract(ctx context.Context, contractID string, req dto.UpdateContractRequest, actorID string) (*domain.Contract, error) {
	return m.contract(m.Called(ctx, contractID, req, actorID))
}
func (m *MockContractService) DeleteContract(ctx context.Context, contractID string) error {
	return m.Called(ctx, contractID).Error(0)
}
func (m *MockContractService) SendContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error) {
	return m.contract(m.Called(ctx, contractID, actorID))
}
func (m *MockContractService) ActivateContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error) {
	return m.contract(m.Called(ctx, contractID, actorID))
}
func (m *MockContractService) TerminateContract(ctx context.Context, contractID string, req dto.TerminateContractRequest, actorID string) (*domain.Contract, error) {
	return m.contract(m.Called(ctx, contractID, req, actorID))
}

var _ portssvc.ContractSvcFacade = (*MockContractService)(nil)

// --- Mock SignatureService ---
type MockSignatureService struct {
	mock.Mock
}

func (m *MockSignatureService) AddSignature(ctx context.Context, contractID string, req dto.AddSignatureRequest, actorID string) (*domain.Signature, *domain.SignatureLedger, error) {
	args := m.Called(ctx, contractID, req, actorID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Signature), args.Get(1).(*domain.SignatureLedger), args.Error(2)
}
func (m *MockSignatureService) GetSignatureLedger(ctx context.Context, contractID string) (*domain.SignatureLedger, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SignatureLedger), args.Error(1)
}
func (m *MockSignatureService) DeleteSignature(ctx context.Context, contractID string, signatureID string) (*domain.SignatureLedger, error) {
	args := m.Called(ctx, contractID, signatureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SignatureLedger), args.Error(1)
}

var _ portssvc.SignatureSvcFacade = (*MockSignatureService)(nil)

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) RenderDocument(ctx context.Context, documentID string, actor domain.Actor) (*composition.Artifact, error) {
	args := m.Called(ctx, documentID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*composition.Artifact), args.Error(1)
}
func (m *MockDocumentService) SendDocumentEmail(ctx context.Context, documentID string, req dto.SendDocumentEmailRequest, actor domain.Actor) (*dto.DispatchResult, error) {
	args := m.Called(ctx, documentID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DispatchResult), args.Error(1)
}

var _ portssvc.DocumentSvcFacade = (*MockDocumentService)(nil)
