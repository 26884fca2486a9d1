package service_test

import (
	"context"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/pkg/stripe"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	payments *mocks.PaymentRepository
	orders   *mocks.OrderRepository
	stripe   *fakeStripe
	service  service.PaymentService
}

func setupPaymentService(t *testing.T, intent *stripe.PaymentIntent, err error) *paymentFixture {
	t.Helper()

	f := &paymentFixture{
		payments: mocks.NewPaymentRepository(t),
		orders:   mocks.NewOrderRepository(t),
		stripe:   &fakeStripe{intent: intent, err: err},
	}
	f.service = service.NewPaymentService(f.payments, f.orders, f.stripe, []string{"INR", " usd "})

	return f
}

func succeededIntent() *stripe.PaymentIntent {
	return &stripe.PaymentIntent{
		ID:           "pi_123",
		ClientSecret: "pi_123_secret",
		Status:       stripe.StatusSucceeded,
		Amount:       5000,
		Currency:     "inr",
	}
}

func TestPaymentService_CreatePaymentIntent(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - Records the payment and marks the order paid", func(t *testing.T) {
		f := setupPaymentService(t, succeededIntent(), nil)
		order := &models.Order{ID: uuid.New(), UserID: userID}

		f.orders.On("GetOrderByID", mock.Anything, order.ID, false).Return(order, nil).Once()
		f.payments.On("GetPaymentByPaymentID", mock.Anything, "pi_123").Return(nil, repository.ErrNotFound).Once()
		f.payments.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
			return p.PaymentID == "pi_123" && p.UserID == userID && p.Amount == 5000 && *p.OrderID == order.ID
		})).Return(nil).Once()
		f.orders.On("UpdatePaymentStatus", mock.Anything, order.ID, models.PaymentStatusCompleted).Return(order, nil).Once()

		resp, err := f.service.CreatePaymentIntent(ctx, userID, &models.CreatePaymentIntentRequest{Amount: 5000, Currency: "INR", OrderID: &order.ID})

		require.NoError(t, err)
		assert.Equal(t, "pi_123_secret", resp.ClientSecret)
		require.NotNil(t, resp.Payment)
		assert.Equal(t, order.ID.String(), f.stripe.metadata["order_id"])
		assert.Equal(t, userID.String(), f.stripe.metadata["user_id"])
	})

	t.Run("Success - Already recorded intent is not duplicated", func(t *testing.T) {
		f := setupPaymentService(t, succeededIntent(), nil)
		existing := &models.Payment{ID: uuid.New(), PaymentID: "pi_123"}

		f.payments.On("GetPaymentByPaymentID", mock.Anything, "pi_123").Return(existing, nil).Once()

		resp, err := f.service.CreatePaymentIntent(ctx, userID, &models.CreatePaymentIntentRequest{Amount: 5000, Currency: "usd"})

		require.NoError(t, err)
		assert.Equal(t, existing, resp.Payment)
		f.payments.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unsupported currency", func(t *testing.T) {
		f := setupPaymentService(t, succeededIntent(), nil)

		_, err := f.service.CreatePaymentIntent(ctx, userID, &models.CreatePaymentIntentRequest{Amount: 5000, Currency: "gbp"})

		requireAppError(t, err, appErrors.ErrCodeValidation, http.StatusBadRequest)
		assert.Equal(t, 0, f.stripe.calls)
	})

	t.Run("Failure - Order belongs to someone else", func(t *testing.T) {
		f := setupPaymentService(t, succeededIntent(), nil)
		order := &models.Order{ID: uuid.New(), UserID: uuid.New()}

		f.orders.On("GetOrderByID", mock.Anything, order.ID, false).Return(order, nil).Once()

		_, err := f.service.CreatePaymentIntent(ctx, userID, &models.CreatePaymentIntentRequest{Amount: 5000, Currency: "inr", OrderID: &order.ID})

		requireAppError(t, err, appErrors.ErrCodeForbidden, http.StatusForbidden)
		assert.Equal(t, 0, f.stripe.calls)
	})

	t.Run("Failure - Requires a payment method", func(t *testing.T) {
		intent := succeededIntent()
		intent.Status = stripe.StatusRequiresPaymentMethod
		f := setupPaymentService(t, intent, nil)

		_, err := f.service.CreatePaymentIntent(ctx, userID, &models.CreatePaymentIntentRequest{Amount: 5000, Currency: "inr"})

		appErr := requireAppError(t, err, appErrors.ErrCodeBadRequest, http.StatusBadRequest)
		data, ok := appErr.Data.(*models.PaymentIntentResponse)
		require.True(t, ok)
		assert.Equal(t, "pi_123_secret", data.ClientSecret)
	})

	t.Run("Failure - Needs further action", func(t *testing.T) {
		intent := succeededIntent()
		intent.Status = "requires_action"
		f := setupPaymentService(t, intent, nil)

		_, err := f.service.CreatePaymentIntent(ctx, userID, &models.CreatePaymentIntentRequest{Amount: 5000, Currency: "inr"})

		requireAppError(t, err, appErrors.ErrCodeThirdPartyError, http.StatusBadGateway)
	})

	t.Run("Failure - Stripe error", func(t *testing.T) {
		f := setupPaymentService(t, nil, assert.AnError)

		_, err := f.service.CreatePaymentIntent(ctx, userID, &models.CreatePaymentIntentRequest{Amount: 5000, Currency: "inr"})

		requireAppError(t, err, appErrors.ErrCodeThirdPartyError, http.StatusBadGateway)
	})
}
