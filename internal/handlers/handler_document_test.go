package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/composition"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/SscSPs/docflow_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testInvoiceID = "INV-00000000D1"

type DocumentHandlerTestSuite struct {
	HandlerTestSuite
}

func TestDocumentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentHandlerTestSuite))
}

func (suite *DocumentHandlerTestSuite) sendRequest() dto.SendDocumentEmailRequest {
	return dto.SendDocumentEmailRequest{
		RecipientEmail: "billing@acme.test",
		RecipientName:  "Ana",
		Subject:        "Your invoice",
		Message:        "Please find the invoice attached.",
	}
}

func (suite *DocumentHandlerTestSuite) TestRenderDocument_Inline() {
	suite.documents.On("RenderDocument", mock.Anything, testInvoiceID, domain.Actor{ID: adminUserID, Role: domain.ActorAdmin}).
		Return(&composition.Artifact{
			Content:     []byte("%PDF-1.3 test"),
			ContentType: composition.ContentTypePDF,
			FileName:    "invoice-" + testInvoiceID + ".pdf",
		}, nil).Once()

	w := suite.asAdmin(http.MethodGet, "/api/v1/documents/"+testInvoiceID+"/pdf", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(composition.ContentTypePDF, w.Header().Get("Content-Type"))
	suite.Equal(`inline; filename="invoice-`+testInvoiceID+`.pdf"`, w.Header().Get("Content-Disposition"))
	suite.Equal("%PDF-1.3 test", w.Body.String())
	suite.documents.AssertExpectations(suite.T())
}

func (suite *DocumentHandlerTestSuite) TestRenderDocument_Download() {
	suite.documents.On("RenderDocument", mock.Anything, testContractID, mock.Anything).
		Return(&composition.Artifact{Content: []byte("%PDF"), ContentType: composition.ContentTypePDF, FileName: "contract.pdf"}, nil).Once()

	w := suite.asProvider(http.MethodGet, "/api/v1/documents/"+testContractID+"/pdf?download=true", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(`attachment; filename="contract.pdf"`, w.Header().Get("Content-Disposition"))
}

func (suite *DocumentHandlerTestSuite) TestRenderDocument_ProviderForbiddenByService() {
	suite.documents.On("RenderDocument", mock.Anything, testInvoiceID, domain.Actor{ID: providerID, Role: domain.ActorProvider}).
		Return(nil, apperrors.ErrForbidden).Once()

	w := suite.asProvider(http.MethodGet, "/api/v1/documents/"+testInvoiceID+"/pdf", nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *DocumentHandlerTestSuite) TestRenderDocument_UnknownPrefix() {
	suite.documents.On("RenderDocument", mock.Anything, "XYZ-1", mock.Anything).Return(nil, apperrors.ErrValidation).Once()

	w := suite.asAdmin(http.MethodGet, "/api/v1/documents/XYZ-1/pdf", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *DocumentHandlerTestSuite) TestSendDocument_Delivered() {
	suite.documents.On("SendDocumentEmail", mock.Anything, testInvoiceID, suite.sendRequest(), mock.Anything).
		Return(&dto.DispatchResult{Success: true, DocumentID: testInvoiceID, Recipient: "billing@acme.test"}, nil).Once()

	w := suite.asAdmin(http.MethodPost, "/api/v1/documents/"+testInvoiceID+"/send", suite.sendRequest())

	suite.Equal(http.StatusOK, w.Code)
	suite.documents.AssertExpectations(suite.T())
}

func (suite *DocumentHandlerTestSuite) TestSendDocument_DeliveryFailureIsBadGateway() {
	suite.documents.On("SendDocumentEmail", mock.Anything, testInvoiceID, mock.Anything, mock.Anything).
		Return(&dto.DispatchResult{Success: false, DocumentID: testInvoiceID, Error: "smtp: 421 try later"}, nil).Once()

	w := suite.asAdmin(http.MethodPost, "/api/v1/documents/"+testInvoiceID+"/send", suite.sendRequest())

	suite.Equal(http.StatusBadGateway, w.Code)
	var result dto.DispatchResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))
	suite.False(result.Success)
	suite.Contains(result.Error, "421")
}

func (suite *DocumentHandlerTestSuite) TestSendDocument_InvalidRecipient() {
	req := suite.sendRequest()
	req.RecipientEmail = "not-an-email"

	w := suite.asAdmin(http.MethodPost, "/api/v1/documents/"+testInvoiceID+"/send", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.documents.AssertNotCalled(suite.T(), "SendDocumentEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentHandlerTestSuite) TestSendDocument_AdminOnly() {
	w := suite.asProvider(http.MethodPost, "/api/v1/documents/"+testContractID+"/send", suite.sendRequest())

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *DocumentHandlerTestSuite) TestSendDocument_RateLimited() {
	suite.cfg.RateLimitSend = "1-M"
	suite.buildRouter()
	suite.documents.On("SendDocumentEmail", mock.Anything, testInvoiceID, mock.Anything, mock.Anything).
		Return(&dto.DispatchResult{Success: true, DocumentID: testInvoiceID}, nil).Once()

	first := suite.asAdmin(http.MethodPost, "/api/v1/documents/"+testInvoiceID+"/send", suite.sendRequest())
	second := suite.asAdmin(http.MethodPost, "/api/v1/documents/"+testInvoiceID+"/send", suite.sendRequest())

	suite.Equal(http.StatusOK, first.Code)
	suite.Equal(http.StatusTooManyRequests, second.Code)
	suite.documents.AssertNumberOfCalls(suite.T(), "SendDocumentEmail", 1)
}
