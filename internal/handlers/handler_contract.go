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

// contractHandler handles HTTP requests related to contracts.
type contractHandler struct {
	contractService portssvc.ContractSvcFacade
}

func newContractHandler(cs portssvc.ContractSvcFacade) *contractHandler {
	return &contractHandler{
		contractService: cs,
	}
}

// registerContractRoutes registers contract routes. Reads are open to readers, the rest
// to writers. Signature routes are nested under a single contract.
func registerContractRoutes(rg *gin.RouterGroup, contractService portssvc.ContractSvcFacade, signatureService portssvc.SignatureSvcFacade, readers, writers gin.HandlerFunc) {
	h := newContractHandler(contractService)

	contracts := rg.Group("/contracts")
	{
		contracts.POST("", writers, h.createContract)
		contracts.GET("", readers, h.listContracts)
		contracts.GET("/:contractID", readers, h.getContract)
		contracts.PUT("/:contractID", writers, h.updateContract)
		contracts.DELETE("/:contractID", writers, h.deleteContract)

		contracts.POST("/:contractID/send", writers, h.transition("send", contractService.SendContract))
		contracts.POST("/:contractID/activate", writers, h.transition("activate", contractService.ActivateContract))
		contracts.POST("/:contractID/terminate", writers, h.terminateContract)
	}

	registerSignatureRoutes(contracts.Group("/:contractID/signatures"), signatureService, readers, writers)
}

// createContract godoc
// @Summary Create a contract
// @Description Creates a draft contract. Partnership contracts require terms.
// @Tags contracts
// @Accept  json
// @Produce  json
// @Param   contract body dto.CreateContractRequest true "Contract details"
// @Success 201 {object} dto.ContractResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Partner not found"
// @Security BearerAuth
// @Router /contracts [post]
func (h *contractHandler) createContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateContractRequest
	if !bindJSON(c, logger, &req, "CreateContract") {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	contract, err := h.contractService.CreateContract(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "create contract")
		return
	}

	logger.Info("Contract created successfully", slog.String("contract_id", contract.ContractID))
	c.JSON(http.StatusCreated, dto.ToContractResponse(contract))
}

// listContracts godoc
// @Summary List contracts
// @Description Lists contracts with the status derived from their signatures.
// @Tags contracts
// @Produce  json
// @Param   limit query int false "Page size (max 100)"
// @Param   nextToken query string false "Token of the next page"
// @Param   partnerID query string false "Only contracts of this partner"
// @Success 200 {object} dto.ListContractsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /contracts [get]
func (h *contractHandler) listContracts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListContracts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.contractService.ListContracts(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "list contracts")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getContract godoc
// @Summary Get a contract
// @Tags contracts
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Success 200 {object} dto.ContractResponse
// @Failure 404 {object} map[string]string "Contract not found"
// @Security BearerAuth
// @Router /contracts/{contractID} [get]
func (h *contractHandler) getContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	contract, err := h.contractService.GetContractByID(c.Request.Context(), c.Param("contractID"))
	if err != nil {
		respondWithError(c, logger, err, "get contract")
		return
	}
	c.JSON(http.StatusOK, dto.ToContractResponse(contract))
}

// updateContract godoc
// @Summary Update a draft contract
// @Tags contracts
// @Accept  json
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Param   contract body dto.UpdateContractRequest true "Fields to change"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} map[string]string "Invalid input or locked clause"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 409 {object} map[string]string "Contract is no longer a draft"
// @Security BearerAuth
// @Router /contracts/{contractID} [put]
func (h *contractHandler) updateContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateContractRequest
	if !bindJSON(c, logger, &req, "UpdateContract") {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	contract, err := h.contractService.UpdateContract(c.Request.Context(), c.Param("contractID"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "update contract")
		return
	}
	c.JSON(http.StatusOK, dto.ToContractResponse(contract))
}

// deleteContract godoc
// @Summary Delete a draft contract
// @Tags contracts
// @Param   contractID path string true "Contract ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 409 {object} map[string]string "Contract is no longer a draft"
// @Security BearerAuth
// @Router /contracts/{contractID} [delete]
func (h *contractHandler) deleteContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.contractService.DeleteContract(c.Request.Context(), c.Param("contractID")); err != nil {
		respondWithError(c, logger, err, "delete contract")
		return
	}
	c.Status(http.StatusNoContent)
}

// transition godoc
// @Summary Send or activate a contract
// @Description send: draft to sent. activate: requires both parties' signatures.
// @Tags contracts
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Success 200 {object} dto.ContractResponse
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /contracts/{contractID}/send [post]
// @Router /contracts/{contractID}/activate [post]
func (h *contractHandler) transition(verb string, apply func(ctx context.Context, contractID, actorID string) (*domain.Contract, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		userID, ok := requireUserID(c, logger)
		if !ok {
			return
		}

		contract, err := apply(c.Request.Context(), c.Param("contractID"), userID)
		if err != nil {
			respondWithError(c, logger, err, verb+" contract")
			return
		}

		logger.Info("Contract transitioned", slog.String("contract_id", contract.ContractID), slog.String("status", string(contract.Status)))
		c.JSON(http.StatusOK, dto.ToContractResponse(contract))
	}
}

// terminateContract godoc
// @Summary Terminate a contract
// @Tags contracts
// @Accept  json
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Param   termination body dto.TerminateContractRequest true "Termination reason"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} map[string]string "Reason missing"
// @Failure 409 {object} map[string]string "Contract is not active"
// @Security BearerAuth
// @Router /contracts/{contractID}/terminate [post]
func (h *contractHandler) terminateContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TerminateContractRequest
	if !bindJSON(c, logger, &req, "TerminateContract") {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	contract, err := h.contractService.TerminateContract(c.Request.Context(), c.Param("contractID"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "terminate contract")
		return
	}

	logger.Info("Contract terminated", slog.String("contract_id", contract.ContractID))
	c.JSON(http.StatusOK, dto.ToContractResponse(contract))
}
