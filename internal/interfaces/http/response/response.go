package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	appErr := FromError(err)
	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message,
	})
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}

// FromError maps domain sentinels to an AppError; unknown errors become 500.
func FromError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("resource not found")
	case errors.Is(err, domainerrors.ErrStoreUnavailable):
		return domainerrors.ServiceUnavailable("Database connection error.")
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return domainerrors.Unauthorized("invalid email or password")
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized("unauthorized")
	case errors.Is(err, domainerrors.ErrPermissionDenied):
		return domainerrors.Forbidden("permission denied")
	case errors.Is(err, domainerrors.ErrInvalidInput), errors.Is(err, domainerrors.ErrBadRequest):
		return domainerrors.BadRequest(err.Error())
	}
	return domainerrors.InternalError(err)
}

// ResultStatus picks the HTTP status for an action result.
func ResultStatus(res *entities.ActionResult, successStatus int) int {
	if res.Success {
		return successStatus
	}
	switch res.Kind {
	case entities.FailureInvalid:
		return http.StatusBadRequest
	case entities.FailureNotFound:
		return http.StatusNotFound
	case entities.FailureUnavailable:
		return http.StatusServiceUnavailable
	case entities.FailureUpload:
		return http.StatusUnprocessableEntity
	case entities.FailurePermission:
		return http.StatusForbidden
	case entities.FailureCancelled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Result renders an action result as-is with its mapped status.
func Result(c *gin.Context, res *entities.ActionResult, successStatus int) {
	c.JSON(ResultStatus(res, successStatus), res)
}
