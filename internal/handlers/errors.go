package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError maps service errors onto HTTP responses. Client errors echo the
// service message; server errors only name the failed action.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, action string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrInternal):
		status = http.StatusInternalServerError
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrUpstream):
		status = http.StatusBadGateway
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		status = appErr.Code
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Failed to " + action})
		return
	}
	logger.Warn("Rejected request to "+action, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}

// bindJSON binds the request body and writes the 400 response on failure.
func bindJSON(c *gin.Context, logger *slog.Logger, req any, operation string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Warn("Failed to bind JSON for "+operation, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return false
	}
	return true
}

// requireUserID returns the authenticated user or writes a 401.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userID, ok
}
