package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

	return body
}

func TestSuccess(t *testing.T) {
	rr := httptest.NewRecorder()

	response.Success(rr, http.StatusCreated, "Created", map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	body := decode(t, rr)
	assert.InDelta(t, float64(http.StatusCreated), body["status"], 0)
	assert.Equal(t, "Created", body["message"])
	assert.NotContains(t, body, "error", "success replies never carry an error")
	assert.Equal(t, map[string]any{"id": "1"}, body["data"])
}

func TestError(t *testing.T) {
	t.Run("AppError", func(t *testing.T) {
		rr := httptest.NewRecorder()

		response.Error(rr, appErrors.NotFoundError("Product not found").WithDetail("id=1"))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"status":404,"data":null,"error":{"code":"NOT_FOUND","message":"Product not found","details":["id=1"]}}`, rr.Body.String())
	})

	t.Run("AppError with data", func(t *testing.T) {
		rr := httptest.NewRecorder()

		response.Error(rr, appErrors.BadRequestError("Payment requires a payment method").WithData(map[string]string{"client_secret": "cs"}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"status":400,"data":{"client_secret":"cs"},"error":{"code":"BAD_REQUEST","message":"Payment requires a payment method"}}`, rr.Body.String())
	})

	t.Run("Plain error becomes internal", func(t *testing.T) {
		rr := httptest.NewRecorder()

		response.Error(rr, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"status":500,"data":null,"error":{"code":"INTERNAL_ERROR","message":"An unexpected error occurred"}}`, rr.Body.String())
	})

	t.Run("Wrapped AppError keeps its status", func(t *testing.T) {
		rr := httptest.NewRecorder()

		wrapped := errors.Join(errors.New("context"), appErrors.ForbiddenError("nope"))
		response.Error(rr, wrapped)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
