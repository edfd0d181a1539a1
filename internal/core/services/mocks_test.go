package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/docflow_backend/internal/composition"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portsinfra "github.com/SscSPs/docflow_backend/internal/core/ports/infrastructure"
	portsrepo "github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock PartnerRepository ---
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID)
	var p *domain.Partner
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Partner)
	}
	return p, args.Error(1)
}

func (m *MockPartnerRepository) ListPartners(ctx context.Context, filter portsrepo.ListFilter) ([]domain.Partner, *string, error) {
	args := m.Called(ctx, filter)
	var partners []domain.Partner
	if args.Get(0) != nil {
		partners = args.Get(0).([]domain.Partner)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return partners, next, args.Error(2)
}

func (m *MockPartnerRepository) CountPartnerReferences(ctx context.Context, partnerID string) (int, error) {
	args := m.Called(ctx, partnerID)
	return args.Int(0), args.Error(1)
}

func (m *MockPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	return m.Called(ctx, partner).Error(0)
}

func (m *MockPartnerRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	return m.Called(ctx, partner).Error(0)
}

func (m *MockPartnerRepository) DeletePartner(ctx context.Context, partnerID string) error {
	return m.Called(ctx, partnerID).Error(0)
}

// --- Mock QuoteRepository (with transactions) ---
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	args := m.Called(ctx, quoteID)
	var q *domain.Quote
	if args.Get(0) != nil {
		q = args.Get(0).(*domain.Quote)
	}
	return q, args.Error(1)
}

func (m *MockQuoteRepository) ListQuotes(ctx context.Context, filter portsrepo.ListFilter) ([]domain.Quote, *string, error) {
	args := m.Called(ctx, filter)
	var quotes []domain.Quote
	if args.Get(0) != nil {
		quotes = args.Get(0).([]domain.Quote)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return quotes, next, args.Error(2)
}

func (m *MockQuoteRepository) QuoteStatusCounts(ctx context.Context, now time.Time) (portsrepo.StatusCounts, error) {
	args := m.Called(ctx, now)
	var counts portsrepo.StatusCounts
	if args.Get(0) != nil {
		counts = args.Get(0).(portsrepo.StatusCounts)
	}
	return counts, args.Error(1)
}

func (m *MockQuoteRepository) SaveQuote(ctx context.Context, quote domain.Quote) error {
	return m.Called(ctx, quote).Error(0)
}

func (m *MockQuoteRepository) UpdateQuote(ctx context.Context, quote domain.Quote) error {
	return m.Called(ctx, quote).Error(0)
}

func (m *MockQuoteRepository) DeleteQuote(ctx context.Context, quoteID string) error {
	return m.Called(ctx, quoteID).Error(0)
}

func (m *MockQuoteRepository) MarkQuoteConvertedTx(ctx context.Context, tx pgx.Tx, quoteID, invoiceID, actorID string, now time.Time) error {
	return m.Called(ctx, tx, quoteID, invoiceID, actorID, now).Error(0)
}

func (m *MockQuoteRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockQuoteRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockQuoteRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// --- Mock InvoiceRepository (with transactions) ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	var inv *domain.Invoice
	if args.Get(0) != nil {
		inv = args.Get(0).(*domain.Invoice)
	}
	return inv, args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.ListFilter) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, filter)
	var invoices []domain.Invoice
	if args.Get(0) != nil {
		invoices = args.Get(0).([]domain.Invoice)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return invoices, next, args.Error(2)
}

func (m *MockInvoiceRepository) InvoiceStatusCounts(ctx context.Context) (portsrepo.StatusCounts, error) {
	args := m.Called(ctx)
	var counts portsrepo.StatusCounts
	if args.Get(0) != nil {
		counts = args.Get(0).(portsrepo.StatusCounts)
	}
	return counts, args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	return m.Called(ctx, invoiceID).Error(0)
}

func (m *MockInvoiceRepository) SaveInvoiceTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	return m.Called(ctx, tx, invoice).Error(0)
}

// --- Mock ContractRepository ---
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error) {
	args := m.Called(ctx, contractID)
	if rf, ok := args.Get(0).(func(context.Context, string) *domain.Contract); ok {
		return rf(ctx, contractID), args.Error(1)
	}
	var c *domain.Contract
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Contract)
	}
	return c, args.Error(1)
}

func (m *MockContractRepository) ListContracts(ctx context.Context, filter portsrepo.ListFilter) ([]domain.Contract, *string, error) {
	args := m.Called(ctx, filter)
	var contracts []domain.Contract
	if args.Get(0) != nil {
		contracts = args.Get(0).([]domain.Contract)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return contracts, next, args.Error(2)
}

func (m *MockContractRepository) ContractStatusCounts(ctx context.Context) (portsrepo.StatusCounts, error) {
	args := m.Called(ctx)
	var counts portsrepo.StatusCounts
	if args.Get(0) != nil {
		counts = args.Get(0).(portsrepo.StatusCounts)
	}
	return counts, args.Error(1)
}

func (m *MockContractRepository) SaveContract(ctx context.Context, contract domain.Contract) error {
	return m.Called(ctx, contract).Error(0)
}

func (m *MockContractRepository) UpdateContract(ctx context.Context, contract domain.Contract) error {
	return m.Called(ctx, contract).Error(0)
}

func (m *MockContractRepository) DeleteContract(ctx context.Context, contractID string) error {
	return m.Called(ctx, contractID).Error(0)
}

// --- Mock SignatureRepository ---
type MockSignatureRepository struct {
	mock.Mock
}

func (m *MockSignatureRepository) FindSignatureByID(ctx context.Context, signatureID string) (*domain.Signature, error) {
	args := m.Called(ctx, signatureID)
	if rf, ok := args.Get(0).(func(context.Context, string) *domain.Signature); ok {
		errFn := args.Get(1).(func(context.Context, string) error)
		return rf(ctx, signatureID), errFn(ctx, signatureID)
	}
	var s *domain.Signature
	if args.Get(0) != nil {
		s = args.Get(0).(*domain.Signature)
	}
	return s, args.Error(1)
}

func (m *MockSignatureRepository) ListSignaturesByContractID(ctx context.Context, contractID string) ([]domain.Signature, error) {
	args := m.Called(ctx, contractID)
	if rf, ok := args.Get(0).(func(context.Context, string) []domain.Signature); ok {
		return rf(ctx, contractID), args.Error(1)
	}
	var sigs []domain.Signature
	if args.Get(0) != nil {
		sigs = args.Get(0).([]domain.Signature)
	}
	return sigs, args.Error(1)
}

func (m *MockSignatureRepository) ListSignaturesByContractIDs(ctx context.Context, contractIDs []string) (map[string][]domain.Signature, error) {
	args := m.Called(ctx, contractIDs)
	var ledgers map[string][]domain.Signature
	if args.Get(0) != nil {
		ledgers = args.Get(0).(map[string][]domain.Signature)
	}
	return ledgers, args.Error(1)
}

func (m *MockSignatureRepository) SaveSignature(ctx context.Context, signature domain.Signature) error {
	return m.Called(ctx, signature).Error(0)
}

func (m *MockSignatureRepository) DeleteSignature(ctx context.Context, signatureID string) error {
	return m.Called(ctx, signatureID).Error(0)
}

// --- Mock Renderer and Mailer ---
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, doc composition.Document) (*composition.Artifact, error) {
	args := m.Called(ctx, doc)
	var a *composition.Artifact
	if args.Get(0) != nil {
		a = args.Get(0).(*composition.Artifact)
	}
	return a, args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, email portsinfra.Email) error {
	return m.Called(ctx, email).Error(0)
}

// fixedClock pins service time for deterministic expiry checks.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }
