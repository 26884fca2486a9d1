package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAddressHandler(t *testing.T) {
	userID := uuid.New()
	validRequest := models.AddressRequest{
		AddressLine1: "12 MG Road",
		City:         "new delhi",
		State:        "delhi",
		PostalCode:   "110001",
		Country:      "india",
		AddressType:  models.AddressHome,
	}

	t.Run("Create - Success", func(t *testing.T) {
		addressService := mocks.NewAddressService(t)
		addressService.On("CreateAddress", mock.Anything, userID, &validRequest).Return(&models.Address{
			ID: uuid.New(), UserID: userID, City: "New Delhi", State: "Delhi", Country: "India",
		}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/addresses", jsonBody(t, validRequest), userID, nil)
		rr := httptest.NewRecorder()

		handlers.NewAddressHandler(addressService).CreateAddress().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "New Delhi", dataAs[models.Address](t, decodeResponse(t, rr)).City)
	})

	t.Run("Create - Already Exists", func(t *testing.T) {
		addressService := mocks.NewAddressService(t)
		addressService.On("CreateAddress", mock.Anything, userID, mock.Anything).
			Return(nil, appErrors.ConflictError("Address already exists")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/addresses", jsonBody(t, validRequest), userID, nil)
		rr := httptest.NewRecorder()

		handlers.NewAddressHandler(addressService).CreateAddress().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Create - Bad Address Type", func(t *testing.T) {
		addressService := mocks.NewAddressService(t)
		invalid := validRequest
		invalid.AddressType = "castle"

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/addresses", jsonBody(t, invalid), userID, nil)
		rr := httptest.NewRecorder()

		handlers.NewAddressHandler(addressService).CreateAddress().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Update - Not Found", func(t *testing.T) {
		addressService := mocks.NewAddressService(t)
		addressService.On("UpdateAddress", mock.Anything, userID, mock.Anything).
			Return(nil, appErrors.NotFoundError("Address not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/addresses", jsonBody(t, validRequest), userID, nil)
		rr := httptest.NewRecorder()

		handlers.NewAddressHandler(addressService).UpdateAddress().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Get - Success", func(t *testing.T) {
		addressService := mocks.NewAddressService(t)
		addressService.On("GetAddress", mock.Anything, userID).Return(&models.Address{ID: uuid.New(), UserID: userID}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/addresses", nil, userID, nil)
		rr := httptest.NewRecorder()

		handlers.NewAddressHandler(addressService).GetAddress().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, userID, dataAs[models.Address](t, decodeResponse(t, rr)).UserID)
	})

	t.Run("Get - Unauthorized", func(t *testing.T) {
		addressService := mocks.NewAddressService(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/addresses", nil, nil)
		rr := httptest.NewRecorder()

		handlers.NewAddressHandler(addressService).GetAddress().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
