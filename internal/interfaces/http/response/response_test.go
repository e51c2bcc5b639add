package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
)

func TestSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, http.StatusOK, gin.H{"ok": true})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestError_AppError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, domainerrors.NotFound("missing"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), domainerrors.CodeNotFound)
	assert.Contains(t, w.Body.String(), "missing")
}

func TestError_GenericError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), domainerrors.CodeInternalError)
}

func TestFromError_Sentinels(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("get: %w", domainerrors.ErrNotFound):    http.StatusNotFound,
		domainerrors.ErrStoreUnavailable:                   http.StatusServiceUnavailable,
		domainerrors.ErrInvalidCredentials:                 http.StatusUnauthorized,
		domainerrors.ErrUnauthorized:                       http.StatusUnauthorized,
		domainerrors.ErrPermissionDenied:                   http.StatusForbidden,
		domainerrors.ErrInvalidInput:                       http.StatusBadRequest,
		fmt.Errorf("wrap: %w", domainerrors.Conflict("x")): http.StatusConflict,
	}
	for err, status := range cases {
		assert.Equal(t, status, FromError(err).Status, err.Error())
	}
}

func TestErrorWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorWithError(c, http.StatusBadRequest, "ERR_X", "bad")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"ERR_X"`)
}

func TestResult(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Result(c, entities.Succeeded("Team member saved successfully!"), http.StatusCreated)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	kinds := map[entities.FailureKind]int{
		entities.FailureInvalid:     http.StatusBadRequest,
		entities.FailureNotFound:    http.StatusNotFound,
		entities.FailureUnavailable: http.StatusServiceUnavailable,
		entities.FailureUpload:      http.StatusUnprocessableEntity,
		entities.FailurePermission:  http.StatusForbidden,
		entities.FailureCancelled:   http.StatusRequestTimeout,
		entities.FailureStore:       http.StatusInternalServerError,
	}
	for kind, status := range kinds {
		assert.Equal(t, status, ResultStatus(entities.Failed(kind, "x"), http.StatusOK))
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Result(c, entities.Failed(entities.FailureInvalid, "Invalid data: name: too short"), http.StatusOK)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"Invalid data: name: too short"`)
	assert.NotContains(t, w.Body.String(), "Kind")
}
