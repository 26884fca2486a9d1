package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/pkg/stripe"
	"github.com/google/uuid"
)

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, userID uuid.UUID, req *models.CreatePaymentIntentRequest) (*models.PaymentIntentResponse, error)
}

type paymentService struct {
	payments   repository.PaymentRepository
	orders     repository.OrderRepository
	client     stripe.Client
	currencies []string
}

func NewPaymentService(payments repository.PaymentRepository, orders repository.OrderRepository, client stripe.Client, currencies []string) PaymentService {
	supported := make([]string, 0, len(currencies))
	for _, c := range currencies {
		supported = append(supported, strings.ToLower(strings.TrimSpace(c)))
	}

	return &paymentService{
		payments:   payments,
		orders:     orders,
		client:     client,
		currencies: supported,
	}
}

// CreatePaymentIntent charges through Stripe. Only intents that succeed are recorded locally.
func (s *paymentService) CreatePaymentIntent(ctx context.Context, userID uuid.UUID, req *models.CreatePaymentIntentRequest) (*models.PaymentIntentResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	currency := strings.ToLower(req.Currency)
	if !slices.Contains(s.currencies, currency) {
		return nil, appErrors.AddValidationError("currency", "unsupported currency")
	}

	metadata := map[string]string{"user_id": userID.String()}

	if req.OrderID != nil {
		order, err := s.orders.GetOrderByID(ctx, *req.OrderID, false)
		if err != nil {
			return nil, notFoundOr(err, "Order not found", "Failed to get order")
		}

		if order.UserID != userID {
			return nil, appErrors.ForbiddenError("You do not have access to this order")
		}

		metadata["order_id"] = order.ID.String()
	}

	intent, err := s.client.CreatePaymentIntent(ctx, req.Amount, currency, metadata)
	if err != nil {
		logger.Error("Stripe payment intent failed", slog.Any("error", err))

		return nil, appErrors.ThirdPartyError("Failed to create payment intent").WithError(err)
	}

	resp := &models.PaymentIntentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Status:          intent.Status,
	}

	switch intent.Status {
	case stripe.StatusRequiresPaymentMethod:
		return nil, appErrors.BadRequestError("Payment requires a payment method").WithData(resp)

	case stripe.StatusSucceeded:
		payment, err := s.recordPayment(ctx, userID, req.OrderID, intent)
		if err != nil {
			return nil, err
		}

		resp.Payment = payment

		return resp, nil

	default:
		logger.Warn("Payment intent not completed", slog.String("paymentIntentId", intent.ID), slog.String("status", intent.Status))

		return nil, appErrors.ThirdPartyError("Payment failed or requires additional actions").WithData(resp)
	}
}

// recordPayment is idempotent on the Stripe payment intent id.
func (s *paymentService) recordPayment(ctx context.Context, userID uuid.UUID, orderID *uuid.UUID, intent *stripe.PaymentIntent) (*models.Payment, error) {
	existing, err := s.payments.GetPaymentByPaymentID(ctx, intent.ID)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, repository.ErrNotFound) {
		return nil, appErrors.DatabaseError("Failed to check payment").WithError(err)
	}

	payment := &models.Payment{
		ID:        uuid.New(),
		PaymentID: intent.ID,
		UserID:    userID,
		OrderID:   orderID,
		Amount:    intent.Amount,
		Currency:  intent.Currency,
		Status:    intent.Status,
		Customer:  intent.Customer,
	}

	if err := s.payments.CreatePayment(ctx, payment); err != nil {
		return nil, appErrors.DatabaseError("Failed to record payment").WithError(err)
	}

	if orderID != nil {
		if _, err := s.orders.UpdatePaymentStatus(ctx, *orderID, models.PaymentStatusCompleted); err != nil {
			return nil, notFoundOr(err, "Order not found", "Failed to update payment status")
		}
	}

	return payment, nil
}
