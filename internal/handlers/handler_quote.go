package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/dto"
	"github.com/SscSPs/docflow_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// quoteHandler handles HTTP requests related to quotes.
type quoteHandler struct {
	quoteService portssvc.QuoteSvcFacade
}

func newQuoteHandler(qs portssvc.QuoteSvcFacade) *quoteHandler {
	return &quoteHandler{
		quoteService: qs,
	}
}

// registerQuoteRoutes registers quote CRUD and its lifecycle transitions.
func registerQuoteRoutes(rg *gin.RouterGroup, quoteService portssvc.QuoteSvcFacade, guards ...gin.HandlerFunc) {
	h := newQuoteHandler(quoteService)

	quotes := rg.Group("/quotes", guards...)
	{
		quotes.POST("", h.createQuote)
		quotes.GET("", h.listQuotes)
		quotes.GET("/:quoteID", h.getQuote)
		quotes.PUT("/:quoteID", h.updateQuote)
		quotes.DELETE("/:quoteID", h.deleteQuote)

		quotes.POST("/:quoteID/send", h.transition("send", quoteService.SendQuote))
		quotes.POST("/:quoteID/accept", h.transition("accept", quoteService.AcceptQuote))
		quotes.POST("/:quoteID/reject", h.transition("reject", quoteService.RejectQuote))
		quotes.POST("/:quoteID/convert", h.convertQuote)
	}
}

// createQuote godoc
// @Summary Create a quote
// @Description Creates a draft quote for a partner. Totals are computed from the items.
// @Tags quotes
// @Accept  json
// @Produce  json
// @Param   quote body dto.CreateQuoteRequest true "Quote details"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Partner not found"
// @Security BearerAuth
// @Router /quotes [post]
func (h *quoteHandler) createQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateQuoteRequest
	if !bindJSON(c, logger, &req, "CreateQuote") {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "create quote")
		return
	}

	logger.Info("Quote created successfully", slog.String("quote_id", quote.QuoteID), slog.Int64("total", quote.Total))
	c.JSON(http.StatusCreated, dto.ToQuoteResponse(quote))
}

// listQuotes godoc
// @Summary List quotes
// @Description Lists quotes with counts per status over the whole collection.
// @Tags quotes
// @Produce  json
// @Param   limit query int false "Page size (max 100)"
// @Param   nextToken query string false "Token of the next page"
// @Param   partnerID query string false "Only quotes of this partner"
// @Success 200 {object} dto.ListQuotesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /quotes [get]
func (h *quoteHandler) listQuotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListQuotes", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.quoteService.ListQuotes(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "list quotes")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getQuote godoc
// @Summary Get a quote
// @Tags quotes
// @Produce  json
// @Param   quoteID path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} map[string]string "Quote not found"
// @Security BearerAuth
// @Router /quotes/{quoteID} [get]
func (h *quoteHandler) getQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	quote, err := h.quoteService.GetQuoteByID(c.Request.Context(), c.Param("quoteID"))
	if err != nil {
		respondWithError(c, logger, err, "get quote")
		return
	}
	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

// updateQuote godoc
// @Summary Update a draft quote
// @Tags quotes
// @Accept  json
// @Produce  json
// @Param   quoteID path string true "Quote ID"
// @Param   quote body dto.UpdateQuoteRequest true "Fields to change"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 409 {object} map[string]string "Quote is no longer a draft"
// @Security BearerAuth
// @Router /quotes/{quoteID} [put]
func (h *quoteHandler) updateQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateQuoteRequest
	if !bindJSON(c, logger, &req, "UpdateQuote") {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), c.Param("quoteID"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "update quote")
		return
	}
	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

// deleteQuote godoc
// @Summary Delete a quote
// @Tags quotes
// @Param   quoteID path string true "Quote ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 409 {object} map[string]string "Quote cannot be deleted in its status"
// @Security BearerAuth
// @Router /quotes/{quoteID} [delete]
func (h *quoteHandler) deleteQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.quoteService.DeleteQuote(c.Request.Context(), c.Param("quoteID")); err != nil {
		respondWithError(c, logger, err, "delete quote")
		return
	}
	c.Status(http.StatusNoContent)
}

// transition godoc
// @Summary Move a quote through its lifecycle
// @Description send: draft to sent. accept and reject: sent to the final status, unless expired.
// @Tags quotes
// @Produce  json
// @Param   quoteID path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /quotes/{quoteID}/send [post]
// @Router /quotes/{quoteID}/accept [post]
// @Router /quotes/{quoteID}/reject [post]
func (h *quoteHandler) transition(verb string, apply func(ctx context.Context, quoteID, actorID string) (*domain.Quote, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		userID, ok := requireUserID(c, logger)
		if !ok {
			return
		}

		quote, err := apply(c.Request.Context(), c.Param("quoteID"), userID)
		if err != nil {
			respondWithError(c, logger, err, verb+" quote")
			return
		}

		logger.Info("Quote transitioned", slog.String("quote_id", quote.QuoteID), slog.String("status", string(quote.Status)))
		c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
	}
}

// convertQuote godoc
// @Summary Convert an accepted quote into a proforma invoice
// @Tags quotes
// @Produce  json
// @Param   quoteID path string true "Quote ID"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 409 {object} map[string]string "Quote not accepted or already converted"
// @Security BearerAuth
// @Router /quotes/{quoteID}/convert [post]
func (h *quoteHandler) convertQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	quoteID := c.Param("quoteID")
	invoice, err := h.quoteService.ConvertQuoteToInvoice(c.Request.Context(), quoteID, userID)
	if err != nil {
		respondWithError(c, logger, err, "convert quote")
		return
	}

	logger.Info("Quote converted", slog.String("quote_id", quoteID), slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}
