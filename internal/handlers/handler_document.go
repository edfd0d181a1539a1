package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/dto"
	"github.com/SscSPs/docflow_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler renders and dispatches any quote, invoice or contract by identifier.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds}
}

// registerDocumentRoutes registers rendering and email dispatch. sendGuards run before the
// dispatch handler only.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade, readers gin.HandlerFunc, sendGuards ...gin.HandlerFunc) {
	h := newDocumentHandler(documentService)

	documents := rg.Group("/documents/:documentID")
	{
		documents.GET("/pdf", readers, h.renderDocument)
		documents.POST("/send", append(sendGuards, h.sendDocument)...)
	}
}

// renderDocument godoc
// @Summary Render a document as PDF
// @Description The identifier prefix selects the template. Providers may render contracts only.
// @Tags documents
// @Produce  application/pdf
// @Param   documentID path string true "Quote, invoice or contract ID"
// @Param   download query bool false "Serve as an attachment"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string "Unknown identifier"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Document not found"
// @Security BearerAuth
// @Router /documents/{documentID}/pdf [get]
func (h *documentHandler) renderDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	artifact, err := h.documentService.RenderDocument(c.Request.Context(), c.Param("documentID"), actor)
	if err != nil {
		respondWithError(c, logger, err, "render document")
		return
	}

	disposition := "inline"
	if c.Query("download") == "true" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, artifact.FileName))
	logger.Info("Document rendered", slog.String("file_name", artifact.FileName), slog.Int("bytes", len(artifact.Content)))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Content)
}

// sendDocument godoc
// @Summary Email a rendered document
// @Description Renders the document and sends it as an attachment. Delivery failures are reported with 502 and the dispatch result.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   documentID path string true "Quote, invoice or contract ID"
// @Param   email body dto.SendDocumentEmailRequest true "Recipient and message"
// @Success 200 {object} dto.DispatchResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 502 {object} dto.DispatchResult "Delivery failed"
// @Security BearerAuth
// @Router /documents/{documentID}/send [post]
func (h *documentHandler) sendDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SendDocumentEmailRequest
	if !bindJSON(c, logger, &req, "SendDocumentEmail") {
		return
	}
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.documentService.SendDocumentEmail(c.Request.Context(), c.Param("documentID"), req, actor)
	if err != nil {
		respondWithError(c, logger, err, "send document")
		return
	}
	if !result.Success {
		logger.Warn("Document email not delivered", slog.String("document_id", result.DocumentID), slog.String("error", result.Error))
		c.JSON(http.StatusBadGateway, result)
		return
	}

	logger.Info("Document emailed", slog.String("document_id", result.DocumentID))
	c.JSON(http.StatusOK, result)
}
