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

func TestRegister(t *testing.T) {
	validRequest := models.RegisterRequest{
		Email:           "jane@example.com",
		FullName:        "Jane Doe",
		ContactNumber:   "+919876543210",
		Password:        "secret1!",
		ConfirmPassword: "secret1!",
	}

	tests := []struct {
		name       string
		body       models.RegisterRequest
		setupMock  func(m *mocks.UserService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "Success",
			body: validRequest,
			setupMock: func(m *mocks.UserService) {
				m.On("Register", mock.Anything, &validRequest).Return(&models.User{
					ID: uuid.New(), Email: validRequest.Email, FullName: validRequest.FullName, Role: models.RoleUser,
				}, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "Email Taken",
			body: validRequest,
			setupMock: func(m *mocks.UserService) {
				m.On("Register", mock.Anything, mock.Anything).
					Return(nil, appErrors.DuplicateEntryError("User already exists")).Once()
			},
			wantStatus: http.StatusConflict,
			wantCode:   appErrors.ErrCodeDuplicateEntry,
		},
		{
			name: "Password Without Digit",
			body: models.RegisterRequest{
				Email: "jane@example.com", FullName: "Jane Doe", ContactNumber: "+919876543210",
				Password: "secret!!", ConfirmPassword: "secret!!",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Name With Digits",
			body: models.RegisterRequest{
				Email: "jane@example.com", FullName: "Jane 2", ContactNumber: "+919876543210",
				Password: "secret1!", ConfirmPassword: "secret1!",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			userService := mocks.NewUserService(t)
			if tc.setupMock != nil {
				tc.setupMock(userService)
			}

			req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register", jsonBody(t, tc.body), nil)
			rr := httptest.NewRecorder()

			handlers.NewUserHandler(userService).Register().ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)

			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, decodeResponse(t, rr).Error.Code)
			}
		})
	}
}

func TestVerifyEmail(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		userService.On("VerifyEmail", mock.Anything, "verify-token").
			Return(&models.User{ID: uuid.New(), IsEmailVerified: true}, nil).Once()

		body := jsonBody(t, models.VerifyEmailRequest{Token: "verify-token"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/verify-email", body, nil)
		rr := httptest.NewRecorder()

		handlers.NewUserHandler(userService).VerifyEmail().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, dataAs[models.User](t, decodeResponse(t, rr)).IsEmailVerified)
	})

	t.Run("Failure - Unknown Token", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		userService.On("VerifyEmail", mock.Anything, "nope").
			Return(nil, appErrors.BadRequestError("Invalid verification token")).Once()

		body := jsonBody(t, models.VerifyEmailRequest{Token: "nope"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/verify-email", body, nil)
		rr := httptest.NewRecorder()

		handlers.NewUserHandler(userService).VerifyEmail().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateUser(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		userService.On("UpdateUser", mock.Anything, userID, mock.MatchedBy(func(r *models.UpdateUserRequest) bool {
			return r.FullName == "jane smith"
		})).Return(&models.User{ID: userID, FullName: "Jane Smith"}, nil).Once()

		body := jsonBody(t, models.UpdateUserRequest{FullName: "jane smith", ContactNumber: "+919876543210"})
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/users", body, userID, nil)
		rr := httptest.NewRecorder()

		handlers.NewUserHandler(userService).UpdateUser().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Jane Smith", dataAs[models.User](t, decodeResponse(t, rr)).FullName)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		userService := mocks.NewUserService(t)

		body := jsonBody(t, models.UpdateUserRequest{FullName: "Jane Smith", ContactNumber: "+919876543210"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPut, "/api/v1/users", body, nil)
		rr := httptest.NewRecorder()

		handlers.NewUserHandler(userService).UpdateUser().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
