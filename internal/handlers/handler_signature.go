package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/dto"
	"github.com/SscSPs/docflow_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type signatureHandler struct {
	signatureService portssvc.SignatureSvcFacade
}

func newSignatureHandler(ss portssvc.SignatureSvcFacade) *signatureHandler {
	return &signatureHandler{signatureService: ss}
}

// registerSignatureRoutes registers the signature ledger of a contract. Readers may also
// sign; removing an entry is reserved to writers.
func registerSignatureRoutes(rg *gin.RouterGroup, signatureService portssvc.SignatureSvcFacade, readers, writers gin.HandlerFunc) {
	h := newSignatureHandler(signatureService)

	rg.POST("", readers, h.addSignature)
	rg.GET("", readers, h.listSignatures)
	rg.DELETE("/:signatureID", writers, h.deleteSignature)
}

// addSignature godoc
// @Summary Sign a contract
// @Description Appends a signature and returns the recomputed contract status.
// @Tags signatures
// @Accept  json
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Param   signature body dto.AddSignatureRequest true "Signer and image data URL"
// @Success 201 {object} dto.AddSignatureResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 409 {object} map[string]string "Contract cannot be signed in its status"
// @Security BearerAuth
// @Router /contracts/{contractID}/signatures [post]
func (h *signatureHandler) addSignature(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddSignatureRequest
	if !bindJSON(c, logger, &req, "AddSignature") {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	signature, ledger, err := h.signatureService.AddSignature(c.Request.Context(), c.Param("contractID"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "add signature")
		return
	}

	logger.Info("Signature added",
		slog.String("signature_id", signature.SignatureID),
		slog.String("contract_id", signature.ContractID),
		slog.String("contract_status", string(ledger.Status)))
	c.JSON(http.StatusCreated, dto.ToAddSignatureResponse(signature, ledger))
}

// listSignatures godoc
// @Summary List a contract's signatures
// @Tags signatures
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Success 200 {object} dto.SignatureLedgerResponse
// @Failure 404 {object} map[string]string "Contract not found"
// @Security BearerAuth
// @Router /contracts/{contractID}/signatures [get]
func (h *signatureHandler) listSignatures(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ledger, err := h.signatureService.GetSignatureLedger(c.Request.Context(), c.Param("contractID"))
	if err != nil {
		respondWithError(c, logger, err, "list signatures")
		return
	}
	c.JSON(http.StatusOK, dto.ToSignatureLedgerResponse(ledger))
}

// deleteSignature godoc
// @Summary Remove a signature
// @Tags signatures
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Param   signatureID path string true "Signature ID"
// @Success 200 {object} dto.SignatureLedgerResponse
// @Failure 404 {object} map[string]string "Signature not found"
// @Security BearerAuth
// @Router /contracts/{contractID}/signatures/{signatureID} [delete]
func (h *signatureHandler) deleteSignature(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ledger, err := h.signatureService.DeleteSignature(c.Request.Context(), c.Param("contractID"), c.Param("signatureID"))
	if err != nil {
		respondWithError(c, logger, err, "delete signature")
		return
	}
	c.JSON(http.StatusOK, dto.ToSignatureLedgerResponse(ledger))
}
