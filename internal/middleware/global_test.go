package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkpoint/forkpoint-service/internal/errs"
)

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind errs.Kind
		want int
	}{
		{errs.KindValidation, http.StatusBadRequest},
		{errs.KindAuth, http.StatusUnauthorized},
		{errs.KindNotFound, http.StatusNotFound},
		{errs.KindConflict, http.StatusConflict},
		{errs.KindConnection, http.StatusServiceUnavailable},
		{errs.KindInternal, http.StatusInternalServerError},
		{errs.Kind("unmapped"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, statusForKind(tt.kind))
		})
	}
}

// runErrorHandler pushes an error through the global funnel and decodes
// the envelope it writes. The handler only touches the request-scoped
// logger, which falls back to a no-op, so no server is needed.
func runErrorHandler(t *testing.T, err error) (int, errorResponse) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewGlobalMiddlewares(nil).GlobalErrorHandler(err, c)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestGlobalErrorHandlerAppError(t *testing.T) {
	status, body := runErrorHandler(t, errs.NotFound("user not found"))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Equal(t, "user not found", body.Message)
	assert.Equal(t, http.StatusNotFound, body.Status)
}

func TestGlobalErrorHandlerValidationFields(t *testing.T) {
	status, body := runErrorHandler(t, errs.Validation("validation failed",
		errs.FieldError{Field: "email", Error: "must be a valid email address"},
	))

	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "email", body.Errors[0].Field)
}

func TestGlobalErrorHandlerRouteNotFound(t *testing.T) {
	status, body := runErrorHandler(t, echo.NewHTTPError(http.StatusNotFound))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Equal(t, "route not found", body.Message)
}

func TestGlobalErrorHandlerMethodNotAllowed(t *testing.T) {
	status, body := runErrorHandler(t, echo.NewHTTPError(http.StatusMethodNotAllowed))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "METHOD_NOT_ALLOWED", body.Code)
}

func TestGlobalErrorHandlerRateLimited(t *testing.T) {
	status, body := runErrorHandler(t, echo.NewHTTPError(http.StatusTooManyRequests))

	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "RATE_LIMITED", body.Code)
	assert.Equal(t, http.StatusTooManyRequests, body.Status)
}

func TestGlobalErrorHandlerUnclassified(t *testing.T) {
	status, body := runErrorHandler(t, errors.New("driver: bad connection"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.NotContains(t, body.Message, "driver", "internal details never leak to clients")
}
