package shared

import (
	"github.com/fuelflow/internal/http/response"
	"github.com/fuelflow/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserID is the authenticated user id key.
	ContextUserID = "user_id"
	// ContextUsername is the authenticated username key.
	ContextUsername = "username"
	// ContextDepartment is the authenticated department key.
	ContextDepartment = "department"
)

// GetContextUint reads a uint value from the request context and writes the
// error response on failure.
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid context value", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid context value", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "invalid context value type", nil)
		return 0, false
	}
}

func getContextString(c *gin.Context, key string) string {
	if value, ok := c.Get(key); ok {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}

// Actor builds the acting user from the authenticated request context. The
// auth middleware fills the context keys; a missing user id means the request
// never passed authentication.
func Actor(c *gin.Context) (service.Actor, bool) {
	userID, ok := GetContextUint(c, ContextUserID)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{
		UserID:     userID,
		Username:   getContextString(c, ContextUsername),
		Department: getContextString(c, ContextDepartment),
	}, true
}
