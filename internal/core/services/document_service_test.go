package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/composition"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portsinfra "github.com/SscSPs/docflow_backend/internal/core/ports/infrastructure"
	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/core/services"
	"github.com/SscSPs/docflow_backend/internal/dto"
	"github.com/SscSPs/docflow_backend/internal/platform/metrics"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var (
	admin    = domain.Actor{ID: testActorID, Role: domain.ActorAdmin}
	provider = domain.Actor{ID: "provider-1", Role: domain.ActorProvider}
)

type DocumentServiceTestSuite struct {
	suite.Suite
	quoteRepo     *MockQuoteRepository
	invoiceRepo   *MockInvoiceRepository
	contractRepo  *MockContractRepository
	signatureRepo *MockSignatureRepository
	partnerRepo   *MockPartnerRepository
	renderer      *MockRenderer
	mailer        *MockMailer
	service       portssvc.DocumentSvcFacade
	ctx           context.Context
	partner       *domain.Partner
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.quoteRepo = new(MockQuoteRepository)
	suite.invoiceRepo = new(MockInvoiceRepository)
	suite.contractRepo = new(MockContractRepository)
	suite.signatureRepo = new(MockSignatureRepository)
	suite.partnerRepo = new(MockPartnerRepository)
	suite.renderer = new(MockRenderer)
	suite.mailer = new(MockMailer)
	suite.service = services.NewDocumentService(services.DocumentRepositories{
		Quotes:     suite.quoteRepo,
		Invoices:   suite.invoiceRepo,
		Contracts:  suite.contractRepo,
		Signatures: suite.signatureRepo,
		Partners:   suite.partnerRepo,
	}, suite.renderer, suite.mailer, "Docflow Events SRL",
		services.WithClock(fixedClock(testNow)),
		services.WithMetrics(metrics.New()))
	suite.ctx = context.Background()
	suite.partner = &domain.Partner{PartnerID: testPartnerID, Name: "Acme"}
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}

func (suite *DocumentServiceTestSuite) artifact(name string) *composition.Artifact {
	return &composition.Artifact{Content: []byte("%PDF-1.3"), ContentType: composition.ContentTypePDF, FileName: name}
}

func (suite *DocumentServiceTestSuite) TestRenderQuote_AppliesExpiryAndTotals() {
	id := "QT-00000000F1"
	suite.quoteRepo.On("FindQuoteByID", suite.ctx, id).Return(&domain.Quote{
		QuoteID:   id,
		PartnerID: testPartnerID,
		Status:    domain.QuoteSent,
		ExpiresAt: testNow.Add(-time.Hour),
	}, nil).Once()
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, testPartnerID).Return(suite.partner, nil).Once()
	suite.renderer.On("Render", suite.ctx, mock.MatchedBy(func(doc composition.Document) bool {
		return doc.Kind == composition.KindQuote && doc.Quote.Status == domain.QuoteExpired &&
			doc.Quote.Total == 0 && doc.Partner.Name == "Acme"
	})).Return(suite.artifact("quote-"+id+".pdf"), nil).Once()

	artifact, err := suite.service.RenderDocument(suite.ctx, id, admin)

	suite.Require().NoError(err)
	suite.Equal(composition.ContentTypePDF, artifact.ContentType)
	suite.renderer.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestRenderContract_LoadsLedger() {
	id := "CTR-00000000F2"
	ledger := []domain.Signature{{SignatureID: "SIG-00000000F2", ContractID: id, SignerRole: domain.SignerPartner}}
	suite.contractRepo.On("FindContractByID", mock.Anything, id).Return(&domain.Contract{
		ContractID: id, PartnerID: testPartnerID, Lifecycle: domain.LifecycleSent,
	}, nil).Once()
	suite.signatureRepo.On("ListSignaturesByContractID", mock.Anything, id).Return(ledger, nil).Once()
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, testPartnerID).Return(suite.partner, nil).Once()
	suite.renderer.On("Render", suite.ctx, mock.MatchedBy(func(doc composition.Document) bool {
		return doc.Kind == composition.KindContract && len(doc.Signatures) == 1 &&
			doc.Contract.Status == domain.ContractPartiallySigned
	})).Return(suite.artifact("contract-"+id+".pdf"), nil).Once()

	_, err := suite.service.RenderDocument(suite.ctx, id, provider)

	suite.Require().NoError(err)
	suite.renderer.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestRender_ProviderLimitedToContracts() {
	_, err := suite.service.RenderDocument(suite.ctx, "INV-00000000F3", provider)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceByID", mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestRender_UnknownPrefix() {
	_, err := suite.service.RenderDocument(suite.ctx, "XYZ-123", admin)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.RenderDocument(suite.ctx, "PRT-00000000F4", admin)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DocumentServiceTestSuite) TestRender_MissingDocument() {
	suite.invoiceRepo.On("FindInvoiceByID", suite.ctx, "INV-00000000F5").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RenderDocument(suite.ctx, "INV-00000000F5", admin)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.renderer.AssertNotCalled(suite.T(), "Render", mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) expectInvoiceRender(id string) {
	suite.invoiceRepo.On("FindInvoiceByID", suite.ctx, id).Return(&domain.Invoice{
		InvoiceID: id, PartnerID: testPartnerID, InvoiceType: domain.InvoiceFinal,
	}, nil).Once()
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, testPartnerID).Return(suite.partner, nil).Once()
	suite.renderer.On("Render", suite.ctx, mock.Anything).Return(suite.artifact("invoice-"+id+".pdf"), nil).Once()
}

func (suite *DocumentServiceTestSuite) TestSendDocumentEmail_AttachesPDF() {
	id := "INV-00000000F6"
	suite.expectInvoiceRender(id)
	suite.mailer.On("Send", suite.ctx, mock.MatchedBy(func(e portsinfra.Email) bool {
		return e.To == "billing@acme.test" &&
			len(e.Attachments) == 1 && e.Attachments[0].FileName == "invoice-"+id+".pdf" &&
			strings.Contains(e.HTML, "Dear Ana") &&
			strings.Contains(e.HTML, "&lt;b&gt;") &&
			strings.Contains(e.HTML, id)
	})).Return(nil).Once()

	result, err := suite.service.SendDocumentEmail(suite.ctx, id, dto.SendDocumentEmailRequest{
		RecipientEmail: "billing@acme.test",
		RecipientName:  "Ana",
		Subject:        "Your invoice",
		Message:        "Please pay <b>soon</b>.\n\nThanks!",
	}, admin)

	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Empty(result.Error)
	suite.mailer.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestSendDocumentEmail_FailureIsReportedNotRaised() {
	id := "INV-00000000F7"
	suite.expectInvoiceRender(id)
	suite.mailer.On("Send", suite.ctx, mock.Anything).
		Return(errors.Join(errors.New("smtp: 421 try later"), apperrors.ErrUpstream)).Once()

	result, err := suite.service.SendDocumentEmail(suite.ctx, id, dto.SendDocumentEmailRequest{
		RecipientEmail: "billing@acme.test",
		Subject:        "Your invoice",
	}, admin)

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Contains(result.Error, "421")
	suite.Equal(id, result.DocumentID)
	suite.mailer.AssertNumberOfCalls(suite.T(), "Send", 1)
}

func (suite *DocumentServiceTestSuite) TestSendDocumentEmail_RenderFailurePropagates() {
	id := "INV-00000000F8"
	suite.invoiceRepo.On("FindInvoiceByID", suite.ctx, id).Return(&domain.Invoice{InvoiceID: id, PartnerID: testPartnerID}, nil).Once()
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, testPartnerID).Return(suite.partner, nil).Once()
	suite.renderer.On("Render", suite.ctx, mock.Anything).Return(nil, apperrors.ErrValidation).Once()

	_, err := suite.service.SendDocumentEmail(suite.ctx, id, dto.SendDocumentEmailRequest{RecipientEmail: "a@b.test"}, admin)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mailer.AssertNotCalled(suite.T(), "Send", mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestDanglingPartnerIsInternal() {
	id := "QT-00000000F9"
	suite.quoteRepo.On("FindQuoteByID", suite.ctx, id).Return(&domain.Quote{QuoteID: id, PartnerID: testPartnerID}, nil).Once()
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, testPartnerID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RenderDocument(suite.ctx, id, admin)

	suite.ErrorIs(err, apperrors.ErrInternal)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

