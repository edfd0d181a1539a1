package middleware

import (
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey = contextKey("userID")
	roleKey   = contextKey("role")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if userID, ok := c.Request.Context().Value(userIDKey).(string); ok {
			return userID, true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	return userID, ok
}

// GetActorFromContext returns the authenticated caller with its role claim.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}
	role, _ := c.Request.Context().Value(roleKey).(domain.ActorRole)
	return domain.Actor{ID: userID, Role: role}, true
}
