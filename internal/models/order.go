package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

type PaymentStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

type OrderItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Size        string          `json:"size,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	ActualPrice decimal.Decimal `json:"actual_price"`
	Price       decimal.Decimal `json:"price"`
}

// Order is a snapshot of a cart. Only the two status fields change after creation.
type Order struct {
	ID                uuid.UUID       `json:"id"`
	OrderNumber       string          `json:"order_number"`
	UserID            uuid.UUID       `json:"user_id"`
	Items             []OrderItem     `json:"items"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	ShippingAddressID uuid.UUID       `json:"shipping_address_id"`
	PaymentStatus     PaymentStatus   `json:"payment_status"`
	OrderStatus       OrderStatus     `json:"order_status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func OrderItemsFromCart(items []CartItem) []OrderItem {
	out := make([]OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, OrderItem(item))
	}

	return out
}

type CheckoutRequest struct {
	Token string `json:"cart_token"`
}

type UpdateOrderStatusRequest struct {
	OrderID uuid.UUID   `json:"order_id" validate:"required"`
	Status  OrderStatus `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
}

type UpdatePaymentStatusRequest struct {
	OrderID uuid.UUID     `json:"order_id" validate:"required"`
	Status  PaymentStatus `json:"status" validate:"required,oneof=pending completed failed"`
}
