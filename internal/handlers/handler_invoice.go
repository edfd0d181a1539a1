package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/dto"
	"github.com/SscSPs/docflow_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: is,
	}
}

// registerInvoiceRoutes registers invoice CRUD and payment recording.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, guards ...gin.HandlerFunc) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices", guards...)
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PUT("/:invoiceID", h.updateInvoice)
		invoices.DELETE("/:invoiceID", h.deleteInvoice)
		invoices.PUT("/:invoiceID/payment", h.recordPayment)
	}
}

// createInvoice godoc
// @Summary Issue an invoice
// @Description Creates a proforma or final invoice. The status follows from the amount paid.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Partner not found"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if !bindJSON(c, logger, &req, "CreateInvoice") {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "create invoice")
		return
	}

	logger.Info("Invoice created successfully",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("status", string(invoice.Status)))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce  json
// @Param   limit query int false "Page size (max 100)"
// @Param   nextToken query string false "Token of the next page"
// @Param   partnerID query string false "Only invoices of this partner"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "list invoices")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), c.Param("invoiceID"))
	if err != nil {
		respondWithError(c, logger, err, "get invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Items and discount are frozen once a payment is recorded.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   invoice body dto.UpdateInvoiceRequest true "Fields to change"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Items can no longer change"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateInvoiceRequest
	if !bindJSON(c, logger, &req, "UpdateInvoice") {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), c.Param("invoiceID"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "update invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// deleteInvoice godoc
// @Summary Delete an unpaid invoice
// @Tags invoices
// @Param   invoiceID path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice has payments"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), c.Param("invoiceID")); err != nil {
		respondWithError(c, logger, err, "delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

// recordPayment godoc
// @Summary Set the amount paid on an invoice
// @Description The amount is cumulative and cannot exceed the invoice total.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   payment body dto.RecordPaymentRequest true "Cumulative amount paid, in minor units"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/payment [put]
func (h *invoiceHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if !bindJSON(c, logger, &req, "RecordPayment") {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), c.Param("invoiceID"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "record payment")
		return
	}

	logger.Info("Payment recorded",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.Int64("amount_paid", invoice.AmountPaid),
		slog.String("status", string(invoice.Status)))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}
