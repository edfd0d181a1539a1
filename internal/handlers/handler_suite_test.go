package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/handlers"
	"github.com/SscSPs/docflow_backend/internal/middleware"
	"github.com/SscSPs/docflow_backend/internal/platform/config"
	"github.com/SscSPs/docflow_backend/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

const (
	testJWTSecret = "test-secret-key-that-is-long-enough"
	testIssuer    = "docflow-test"
	adminUserID   = "admin-1"
	providerID    = "provider-1"
	testPartnerID = "PRT-00000000A1"
)

// HandlerTestSuite wires the real router, auth and role guards over mocked services.
type HandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	cfg        *config.Config
	partners   *MockPartnerService
	quotes     *MockQuoteService
	invoices   *MockInvoiceService
	contracts  *MockContractService
	signatures *MockSignatureService
	documents  *MockDocumentService
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.partners = new(MockPartnerService)
	suite.quotes = new(MockQuoteService)
	suite.invoices = new(MockInvoiceService)
	suite.contracts = new(MockContractService)
	suite.signatures = new(MockSignatureService)
	suite.documents = new(MockDocumentService)

	suite.cfg = &config.Config{
		JWTSecret:    testJWTSecret,
		JWTIssuer:    testIssuer,
		IsProduction: true,
	}
	suite.buildRouter()
}

func (suite *HandlerTestSuite) buildRouter() {
	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		Partner:   suite.partners,
		Quote:     suite.quotes,
		Invoice:   suite.invoices,
		Contract:  suite.contracts,
		Signature: suite.signatures,
		Document:  suite.documents,
	}, metrics.New().Registry)
}

// generateTestToken creates a signed JWT carrying the role claim.
func (suite *HandlerTestSuite) generateTestToken(userID string, role domain.ActorRole) string {
	claims := middleware.ActorClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// do performs a request as the given user; an empty userID sends no token.
func (suite *HandlerTestSuite) do(method, url string, body any, userID string, role domain.ActorRole) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, role))
	}
	return suite.serve(req)
}

func (suite *HandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) asAdmin(method, url string, body any) *httptest.ResponseRecorder {
	return suite.do(method, url, body, adminUserID, domain.ActorAdmin)
}

func (suite *HandlerTestSuite) asProvider(method, url string, body any) *httptest.ResponseRecorder {
	return suite.do(method, url, body, providerID, domain.ActorProvider)
}

func (suite *HandlerTestSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}
