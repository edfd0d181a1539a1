package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/docflow_backend/internal/adapters/cache"
	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/core/services"
	"github.com/SscSPs/docflow_backend/internal/dto"
	"github.com/SscSPs/docflow_backend/internal/utils/identifier"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testPartnerID = "PRT-00000000A1"
	testActorID   = "user-1"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type QuoteServiceTestSuite struct {
	suite.Suite
	quoteRepo   *MockQuoteRepository
	invoiceRepo *MockInvoiceRepository
	partnerRepo *MockPartnerRepository
	cache       *cache.MemoryCache
	service     portssvc.QuoteSvcFacade
	ctx         context.Context
}

func (suite *QuoteServiceTestSuite) SetupTest() {
	suite.quoteRepo = new(MockQuoteRepository)
	suite.invoiceRepo = new(MockInvoiceRepository)
	suite.partnerRepo = new(MockPartnerRepository)
	suite.cache = cache.NewMemoryCache()
	suite.service = services.NewQuoteService(suite.quoteRepo, suite.invoiceRepo, suite.partnerRepo,
		services.WithClock(fixedClock(testNow)),
		services.WithStatsCache(suite.cache, time.Minute))
	suite.ctx = context.Background()
}

func TestQuoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QuoteServiceTestSuite))
}

func (suite *QuoteServiceTestSuite) partnerExists() {
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, testPartnerID).
		Return(&domain.Partner{PartnerID: testPartnerID, Name: "Acme"}, nil).Once()
}

func (suite *QuoteServiceTestSuite) TestCreateQuote_SingleItemTotals() {
	suite.partnerExists()
	suite.quoteRepo.On("SaveQuote", suite.ctx, mock.MatchedBy(func(q domain.Quote) bool {
		return identifier.IsKind(q.QuoteID, identifier.KindQuote) &&
			q.Subtotal == 20000 && q.Total == 20000 && q.Status == domain.QuoteDraft
	})).Return(nil).Once()

	quote, err := suite.service.CreateQuote(suite.ctx, dto.CreateQuoteRequest{
		PartnerID: testPartnerID,
		Title:     "Catering",
		Items: []dto.LineItemRequest{
			{Description: "Menu", Quantity: decimal.NewFromInt(2), UnitPrice: 10000},
		},
	}, testActorID)

	suite.Require().NoError(err)
	suite.Equal(int64(20000), quote.Subtotal)
	suite.Equal(int64(20000), quote.Total)
	suite.Equal(domain.DefaultQuoteValidityDays, quote.ValidityDays)
	suite.Equal(testNow.AddDate(0, 0, 30), quote.ExpiresAt)
	suite.Equal(testActorID, quote.CreatedBy)
	suite.quoteRepo.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestCreateQuote_RetriesOnIdentifierCollision() {
	suite.partnerExists()
	suite.quoteRepo.On("SaveQuote", suite.ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()
	suite.quoteRepo.On("SaveQuote", suite.ctx, mock.Anything).Return(nil).Once()

	quote, err := suite.service.CreateQuote(suite.ctx, dto.CreateQuoteRequest{
		PartnerID: testPartnerID,
		Title:     "Retry",
	}, testActorID)

	suite.Require().NoError(err)
	suite.True(identifier.IsKind(quote.QuoteID, identifier.KindQuote))
	suite.quoteRepo.AssertNumberOfCalls(suite.T(), "SaveQuote", 2)
}

func (suite *QuoteServiceTestSuite) TestCreateQuote_UnknownPartner() {
	suite.partnerRepo.On("FindPartnerByID", suite.ctx, testPartnerID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateQuote(suite.ctx, dto.CreateQuoteRequest{PartnerID: testPartnerID, Title: "x"}, testActorID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.quoteRepo.AssertNotCalled(suite.T(), "SaveQuote", mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestCreateQuote_MalformedPartnerID() {
	_, err := suite.service.CreateQuote(suite.ctx, dto.CreateQuoteRequest{PartnerID: "QT-0000000001", Title: "x"}, testActorID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.partnerRepo.AssertNotCalled(suite.T(), "FindPartnerByID", mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestCreateQuote_InvalidItemRejectedBeforeWrite() {
	suite.partnerExists()

	_, err := suite.service.CreateQuote(suite.ctx, dto.CreateQuoteRequest{
		PartnerID: testPartnerID,
		Title:     "Bad",
		Items: []dto.LineItemRequest{
			{Description: "Menu", Quantity: decimal.Zero, UnitPrice: 100},
		},
	}, testActorID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.quoteRepo.AssertNotCalled(suite.T(), "SaveQuote", mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestGetQuote_PresentsLazyExpiry() {
	stored := &domain.Quote{
		QuoteID:   "QT-00000000B1",
		Status:    domain.QuoteSent,
		ExpiresAt: testNow.Add(-time.Hour),
	}
	suite.quoteRepo.On("FindQuoteByID", suite.ctx, stored.QuoteID).Return(stored, nil).Once()

	quote, err := suite.service.GetQuoteByID(suite.ctx, stored.QuoteID)

	suite.Require().NoError(err)
	suite.Equal(domain.QuoteExpired, quote.Status)
}

func (suite *QuoteServiceTestSuite) TestAcceptQuote_ExpiredIsInvalidState() {
	stored := &domain.Quote{
		QuoteID:   "QT-00000000B2",
		Status:    domain.QuoteSent,
		ExpiresAt: testNow.Add(-time.Minute),
	}
	suite.quoteRepo.On("FindQuoteByID", suite.ctx, stored.QuoteID).Return(stored, nil).Once()

	_, err := suite.service.AcceptQuote(suite.ctx, stored.QuoteID, testActorID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.quoteRepo.AssertNotCalled(suite.T(), "UpdateQuote", mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestSendThenAccept() {
	id := "QT-00000000B3"
	suite.quoteRepo.On("FindQuoteByID", suite.ctx, id).Return(&domain.Quote{
		QuoteID: id, Status: domain.QuoteDraft, ExpiresAt: testNow.AddDate(0, 0, 5),
	}, nil).Once()
	suite.quoteRepo.On("UpdateQuote", suite.ctx, mock.MatchedBy(func(q domain.Quote) bool {
		return q.Status == domain.QuoteSent && q.LastUpdatedBy == testActorID
	})).Return(nil).Once()

	sent, err := suite.service.SendQuote(suite.ctx, id, testActorID)
	suite.Require().NoError(err)
	suite.Equal(domain.QuoteSent, sent.Status)

	suite.quoteRepo.On("FindQuoteByID", suite.ctx, id).Return(sent, nil).Once()
	suite.quoteRepo.On("UpdateQuote", suite.ctx, mock.MatchedBy(func(q domain.Quote) bool {
		return q.Status == domain.QuoteAccepted
	})).Return(nil).Once()

	accepted, err := suite.service.AcceptQuote(suite.ctx, id, testActorID)
	suite.Require().NoError(err)
	suite.Equal(domain.QuoteAccepted, accepted.Status)
	suite.quoteRepo.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestUpdateQuote_OnlyDraft() {
	id := "QT-00000000B4"
	suite.quoteRepo.On("FindQuoteByID", suite.ctx, id).Return(&domain.Quote{
		QuoteID: id, Status: domain.QuoteSent, ExpiresAt: testNow.AddDate(0, 0, 5),
	}, nil).Once()

	_, err := suite.service.UpdateQuote(suite.ctx, id, dto.UpdateQuoteRequest{Title: strPtr("New")}, testActorID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *QuoteServiceTestSuite) TestDeleteQuote_ExpiredDraft() {
	id := "QT-00000000E1"
	suite.quoteRepo.On("FindQuoteByID", suite.ctx, id).Return(&domain.Quote{
		QuoteID: id, Status: domain.QuoteDraft, ExpiresAt: testNow.Add(-24 * time.Hour),
	}, nil).Once()
	suite.quoteRepo.On("DeleteQuote", suite.ctx, id).Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteQuote(suite.ctx, id))
	suite.quoteRepo.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestDeleteQuote_SentIsInvalidState() {
	id := "QT-00000000E2"
	suite.quoteRepo.On("FindQuoteByID", suite.ctx, id).Return(&domain.Quote{
		QuoteID: id, Status: domain.QuoteSent, ExpiresAt: testNow.AddDate(0, 0, 5),
	}, nil).Once()

	err := suite.service.DeleteQuote(suite.ctx, id)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.quoteRepo.AssertNotCalled(suite.T(), "DeleteQuote", mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestCreateQuote_BlankTitle() {
	suite.partnerExists()

	_, err := suite.service.CreateQuote(suite.ctx, dto.CreateQuoteRequest{PartnerID: testPartnerID, Title: " \t "}, testActorID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.quoteRepo.AssertNotCalled(suite.T(), "SaveQuote", mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestConvertQuoteToInvoice_Transactional() {
	id := "QT-00000000B5"
	suite.quoteRepo.On("FindQuoteByID", suite.ctx, id).Return(&domain.Quote{
		QuoteID:   id,
		PartnerID: testPartnerID,
		Status:    domain.QuoteAccepted,
		ExpiresAt: testNow.AddDate(0, 0, 5),
		Discount:  500,
		Items: []domain.LineItem{
			{Description: "Menu", Quantity: decimal.NewFromInt(3), UnitPrice: 1000, DiscountPercent: decimal.Zero},
		},
	}, nil).Once()
	suite.quoteRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.invoiceRepo.On("SaveInvoiceTx", suite.ctx, nil, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceType == domain.InvoiceProforma &&
			inv.SourceQuoteID != nil && *inv.SourceQuoteID == id &&
			inv.Total == 2500 && inv.Status == domain.InvoiceUnpaid
	})).Return(nil).Once()
	suite.quoteRepo.On("MarkQuoteConvertedTx", suite.ctx, nil, id, mock.AnythingOfType("string"), testActorID, testNow).Return(nil).Once()
	suite.quoteRepo.On("Commit", suite.ctx, nil).Return(nil).Once()

	invoice, err := suite.service.ConvertQuoteToInvoice(suite.ctx, id, testActorID)

	suite.Require().NoError(err)
	suite.True(identifier.IsKind(invoice.InvoiceID, identifier.KindInvoice))
	suite.Equal(int64(2500), invoice.Total)
	suite.quoteRepo.AssertNotCalled(suite.T(), "Rollback", mock.Anything, mock.Anything)
	suite.quoteRepo.AssertExpectations(suite.T())
	suite.invoiceRepo.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestConvertQuoteToInvoice_RollsBackOnLinkFailure() {
	id := "QT-00000000B6"
	suite.quoteRepo.On("FindQuoteByID", suite.ctx, id).Return(&domain.Quote{
		QuoteID: id, PartnerID: testPartnerID, Status: domain.QuoteAccepted, ExpiresAt: testNow.AddDate(0, 0, 5),
	}, nil).Once()
	suite.quoteRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.invoiceRepo.On("SaveInvoiceTx", suite.ctx, nil, mock.Anything).Return(nil).Once()
	suite.quoteRepo.On("MarkQuoteConvertedTx", suite.ctx, nil, id, mock.Anything, testActorID, testNow).
		Return(apperrors.ErrInvalidState).Once()
	suite.quoteRepo.On("Rollback", suite.ctx, nil).Return(nil).Once()

	_, err := suite.service.ConvertQuoteToInvoice(suite.ctx, id, testActorID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.quoteRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.quoteRepo.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestConvertQuoteToInvoice_NotAccepted() {
	id := "QT-00000000B7"
	suite.quoteRepo.On("FindQuoteByID", suite.ctx, id).Return(&domain.Quote{
		QuoteID: id, Status: domain.QuoteSent, ExpiresAt: testNow.AddDate(0, 0, 5),
	}, nil).Once()

	_, err := suite.service.ConvertQuoteToInvoice(suite.ctx, id, testActorID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.quoteRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestListQuotes_StatsAreCachedUntilWrite() {
	suite.quoteRepo.On("ListQuotes", suite.ctx, mock.Anything).Return([]domain.Quote{}, nil, nil)
	suite.quoteRepo.On("QuoteStatusCounts", suite.ctx, testNow).
		Return(portsrepo.StatusCounts{"draft": 2, "expired": 1}, nil).Once()

	first, err := suite.service.ListQuotes(suite.ctx, dto.ListParams{})
	suite.Require().NoError(err)
	suite.Equal(3, first.Stats.Total)
	suite.Equal(0, first.Stats.ByStatus["accepted"])

	second, err := suite.service.ListQuotes(suite.ctx, dto.ListParams{})
	suite.Require().NoError(err)
	suite.Equal(first.Stats, second.Stats)
	suite.quoteRepo.AssertNumberOfCalls(suite.T(), "QuoteStatusCounts", 1)

	// a delete invalidates the cached counts
	id := "QT-00000000B8"
	suite.quoteRepo.On("FindQuoteByID", suite.ctx, id).Return(&domain.Quote{
		QuoteID: id, Status: domain.QuoteDraft, ExpiresAt: testNow.AddDate(0, 0, 1),
	}, nil).Once()
	suite.quoteRepo.On("DeleteQuote", suite.ctx, id).Return(nil).Once()
	suite.Require().NoError(suite.service.DeleteQuote(suite.ctx, id))

	suite.quoteRepo.On("QuoteStatusCounts", suite.ctx, testNow).
		Return(portsrepo.StatusCounts{"draft": 1, "expired": 1}, nil).Once()
	third, err := suite.service.ListQuotes(suite.ctx, dto.ListParams{})
	suite.Require().NoError(err)
	suite.Equal(2, third.Stats.Total)
}
