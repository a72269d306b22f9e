package shared

import (
	"errors"

	"github.com/fuelflow/internal/http/response"
	"github.com/fuelflow/internal/logger"
	"github.com/fuelflow/internal/service"
	"github.com/fuelflow/internal/workflow"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog returns a logger carrying the request id.
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError writes an error envelope and logs the wrapped cause when
// present.
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondServiceError maps a service error onto the matching business code.
func RespondServiceError(c *gin.Context, err error) {
	code := ServiceErrorCode(err)
	var logged error
	if code == response.CodeInternal || code == response.CodeUnavailable {
		logged = err
	}
	RespondError(c, code, err.Error(), logged)
}

// ServiceErrorCode resolves the business code of a service error.
func ServiceErrorCode(err error) int {
	switch {
	case err == nil:
		return response.CodeOK
	case errors.Is(err, workflow.ErrValidation),
		errors.Is(err, workflow.ErrUnknownAction),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrUploadType),
		errors.Is(err, service.ErrUploadTooLarge),
		errors.Is(err, service.ErrCaptchaRequired),
		errors.Is(err, service.ErrCaptchaInvalid),
		errors.Is(err, service.ErrClientInactive):
		return response.CodeBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrUserDisabled):
		return response.CodeUnauthorized
	case errors.Is(err, workflow.ErrForbiddenDepartment):
		return response.CodeForbidden
	case errors.Is(err, service.ErrNotFound):
		return response.CodeNotFound
	case errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, service.ErrDuplicateEntry):
		return response.CodeConflict
	case errors.Is(err, service.ErrBackendUnavailable):
		return response.CodeUnavailable
	default:
		return response.CodeInternal
	}
}
