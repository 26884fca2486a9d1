package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func NewCartService(t testingT) *CartService {
	m := &CartService{}
	register(&m.Mock, t)

	return m
}

func (m *CartService) GetCart(ctx context.Context, token string) (*models.Cart, error) {
	args := m.Called(ctx, token)

	return ret[*models.Cart](args, 0), args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, req *models.AddItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, req)

	return ret[*models.Cart](args, 0), args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, req *models.RemoveItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, req)

	return ret[*models.Cart](args, 0), args.Error(1)
}

func (m *CartService) UpdateItem(ctx context.Context, req *models.UpdateItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, req)

	return ret[*models.Cart](args, 0), args.Error(1)
}

type OrderService struct {
	mock.Mock
}

func NewOrderService(t testingT) *OrderService {
	m := &OrderService{}
	register(&m.Mock, t)

	return m
}

func (m *OrderService) Checkout(ctx context.Context, userID uuid.UUID, cartToken string) (*models.Order, error) {
	args := m.Called(ctx, userID, cartToken)

	return ret[*models.Order](args, 0), args.Error(1)
}

func (m *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, params models.ListParams) (*models.PaginatedResponse[*models.Order], error) {
	args := m.Called(ctx, userID, params)

	return ret[*models.PaginatedResponse[*models.Order]](args, 0), args.Error(1)
}

func (m *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID)

	return ret[*models.Order](args, 0), args.Error(1)
}

func (m *OrderService) UpdateOrderStatus(ctx context.Context, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	args := m.Called(ctx, req)

	return ret[*models.Order](args, 0), args.Error(1)
}

func (m *OrderService) UpdatePaymentStatus(ctx context.Context, req *models.UpdatePaymentStatusRequest) (*models.Order, error) {
	args := m.Called(ctx, req)

	return ret[*models.Order](args, 0), args.Error(1)
}

type PaymentService struct {
	mock.Mock
}

func NewPaymentService(t testingT) *PaymentService {
	m := &PaymentService{}
	register(&m.Mock, t)

	return m
}

func (m *PaymentService) CreatePaymentIntent(ctx context.Context, userID uuid.UUID, req *models.CreatePaymentIntentRequest) (*models.PaymentIntentResponse, error) {
	args := m.Called(ctx, userID, req)

	return ret[*models.PaymentIntentResponse](args, 0), args.Error(1)
}
