package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/SscSPs/docflow_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testContractID  = "CTR-00000000C1"
	testSignatureID = "SIG-00000000C1"
)

type ContractHandlerTestSuite struct {
	HandlerTestSuite
}

func TestContractHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ContractHandlerTestSuite))
}

func (suite *ContractHandlerTestSuite) ledger(sigs ...domain.Signature) *domain.SignatureLedger {
	summary := domain.SummarizeSignatures(sigs)
	status := domain.DeriveContractStatus(domain.LifecycleSent, summary)
	return &domain.SignatureLedger{ContractID: testContractID, Signatures: sigs, Summary: summary, Status: status}
}

func (suite *ContractHandlerTestSuite) TestProviderCanReadContract() {
	suite.contracts.On("GetContractByID", mock.Anything, testContractID).Return(&domain.Contract{
		ContractID: testContractID,
		PartnerID:  testPartnerID,
		Lifecycle:  domain.LifecycleSent,
		Status:     domain.ContractSent,
	}, nil).Once()

	w := suite.asProvider(http.MethodGet, "/api/v1/contracts/"+testContractID, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.contracts.AssertExpectations(suite.T())
}

func (suite *ContractHandlerTestSuite) TestProviderCannotWriteContracts() {
	w := suite.asProvider(http.MethodPost, "/api/v1/contracts/"+testContractID+"/send", nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.asProvider(http.MethodDelete, "/api/v1/contracts/"+testContractID, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	suite.contracts.AssertNotCalled(suite.T(), "SendContract", mock.Anything, mock.Anything, mock.Anything)
	suite.contracts.AssertNotCalled(suite.T(), "DeleteContract", mock.Anything, mock.Anything)
}

func (suite *ContractHandlerTestSuite) TestSendDraftContract() {
	suite.contracts.On("SendContract", mock.Anything, testContractID, adminUserID).Return(&domain.Contract{
		ContractID: testContractID,
		Lifecycle:  domain.LifecycleSent,
		Status:     domain.ContractSent,
	}, nil).Once()

	w := suite.asAdmin(http.MethodPost, "/api/v1/contracts/"+testContractID+"/send", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.contracts.AssertExpectations(suite.T())
}

func (suite *ContractHandlerTestSuite) TestProviderSignsContract() {
	sig := domain.Signature{SignatureID: testSignatureID, ContractID: testContractID, SignerName: "Ana", SignerRole: domain.SignerPartner}
	suite.signatures.On("AddSignature", mock.Anything, testContractID, mock.MatchedBy(func(r dto.AddSignatureRequest) bool {
		return r.SignerRole == domain.SignerPartner && r.SignerName == "Ana"
	}), providerID).Return(&sig, suite.ledger(sig), nil).Once()

	w := suite.asProvider(http.MethodPost, "/api/v1/contracts/"+testContractID+"/signatures", dto.AddSignatureRequest{
		SignerName: "Ana",
		SignerRole: domain.SignerPartner,
		ImageData:  "data:image/png;base64,iVBORw0KGgo=",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(string(domain.ContractPartiallySigned), body["contractStatus"])
	suite.signatures.AssertExpectations(suite.T())
}

func (suite *ContractHandlerTestSuite) TestUnknownSignerRoleRejected() {
	w := suite.asAdmin(http.MethodPost, "/api/v1/contracts/"+testContractID+"/signatures", map[string]string{
		"signerName": "Ana",
		"signerRole": "witness",
		"imageData":  "data:image/png;base64,iVBORw0KGgo=",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.signatures.AssertNotCalled(suite.T(), "AddSignature", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ContractHandlerTestSuite) TestSigningDraftIsConflict() {
	suite.signatures.On("AddSignature", mock.Anything, testContractID, mock.Anything, adminUserID).
		Return(nil, nil, apperrors.ErrInvalidState).Once()

	w := suite.asAdmin(http.MethodPost, "/api/v1/contracts/"+testContractID+"/signatures", dto.AddSignatureRequest{
		SignerName: "Bob",
		SignerRole: domain.SignerCompany,
		ImageData:  "data:image/png;base64,iVBORw0KGgo=",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ContractHandlerTestSuite) TestProviderCannotDeleteSignature() {
	w := suite.asProvider(http.MethodDelete, "/api/v1/contracts/"+testContractID+"/signatures/"+testSignatureID, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.signatures.AssertNotCalled(suite.T(), "DeleteSignature", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ContractHandlerTestSuite) TestAdminDeletesSignature() {
	suite.signatures.On("DeleteSignature", mock.Anything, testContractID, testSignatureID).Return(suite.ledger(), nil).Once()

	w := suite.asAdmin(http.MethodDelete, "/api/v1/contracts/"+testContractID+"/signatures/"+testSignatureID, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.signatures.AssertExpectations(suite.T())
}

func (suite *ContractHandlerTestSuite) TestLedgerOfUnknownContract() {
	suite.signatures.On("GetSignatureLedger", mock.Anything, "CTR-FFFFFFFFFF").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.asProvider(http.MethodGet, "/api/v1/contracts/CTR-FFFFFFFFFF/signatures", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}
