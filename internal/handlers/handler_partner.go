package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/dto"
	"github.com/SscSPs/docflow_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// partnerHandler handles HTTP requests related to the partner directory.
type partnerHandler struct {
	partnerService portssvc.PartnerSvcFacade
}

// newPartnerHandler creates a new partnerHandler.
func newPartnerHandler(ps portssvc.PartnerSvcFacade) *partnerHandler {
	return &partnerHandler{
		partnerService: ps,
	}
}

// registerPartnerRoutes registers routes related to partners.
func registerPartnerRoutes(rg *gin.RouterGroup, partnerService portssvc.PartnerSvcFacade, guards ...gin.HandlerFunc) {
	h := newPartnerHandler(partnerService)

	partners := rg.Group("/partners", guards...)
	{
		partners.POST("", h.createPartner)
		partners.GET("", h.listPartners)
		partners.GET("/:partnerID", h.getPartner)
		partners.PUT("/:partnerID", h.updatePartner)
		partners.DELETE("/:partnerID", h.deletePartner)
	}
}

// createPartner godoc
// @Summary Register a partner
// @Description Adds a partner to the directory.
// @Tags partners
// @Accept  json
// @Produce  json
// @Param   partner body dto.CreatePartnerRequest true "Partner details"
// @Success 201 {object} dto.PartnerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create partner"
// @Security BearerAuth
// @Router /partners [post]
func (h *partnerHandler) createPartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePartnerRequest
	if !bindJSON(c, logger, &req, "CreatePartner") {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	partner, err := h.partnerService.CreatePartner(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "create partner")
		return
	}

	logger.Info("Partner created successfully", slog.String("partner_id", partner.PartnerID))
	c.JSON(http.StatusCreated, dto.ToPartnerResponse(partner))
}

// listPartners godoc
// @Summary List partners
// @Tags partners
// @Produce  json
// @Param   limit query int false "Page size (max 100)"
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListPartnersResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Failed to list partners"
// @Security BearerAuth
// @Router /partners [get]
func (h *partnerHandler) listPartners(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListPartners", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	partners, next, err := h.partnerService.ListPartners(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "list partners")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPartnersResponse(partners, next))
}

// getPartner godoc
// @Summary Get a partner
// @Tags partners
// @Produce  json
// @Param   partnerID path string true "Partner ID"
// @Success 200 {object} dto.PartnerResponse
// @Failure 404 {object} map[string]string "Partner not found"
// @Security BearerAuth
// @Router /partners/{partnerID} [get]
func (h *partnerHandler) getPartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	partner, err := h.partnerService.GetPartnerByID(c.Request.Context(), c.Param("partnerID"))
	if err != nil {
		respondWithError(c, logger, err, "get partner")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

// updatePartner godoc
// @Summary Update a partner
// @Description Applies the provided fields to a partner.
// @Tags partners
// @Accept  json
// @Produce  json
// @Param   partnerID path string true "Partner ID"
// @Param   partner body dto.UpdatePartnerRequest true "Fields to change"
// @Success 200 {object} dto.PartnerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Partner not found"
// @Security BearerAuth
// @Router /partners/{partnerID} [put]
func (h *partnerHandler) updatePartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdatePartnerRequest
	if !bindJSON(c, logger, &req, "UpdatePartner") {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	partner, err := h.partnerService.UpdatePartner(c.Request.Context(), c.Param("partnerID"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "update partner")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

// deletePartner godoc
// @Summary Delete a partner
// @Description Removes a partner no document refers to.
// @Tags partners
// @Param   partnerID path string true "Partner ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Partner not found"
// @Failure 409 {object} map[string]string "Partner is still referenced"
// @Security BearerAuth
// @Router /partners/{partnerID} [delete]
func (h *partnerHandler) deletePartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partnerID := c.Param("partnerID")

	if err := h.partnerService.DeletePartner(c.Request.Context(), partnerID); err != nil {
		respondWithError(c, logger, err, "delete partner")
		return
	}

	logger.Info("Partner deleted", slog.String("partner_id", partnerID))
	c.Status(http.StatusNoContent)
}
