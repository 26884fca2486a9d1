package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID, cartToken string) (*models.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID, params models.ListParams) (*models.PaginatedResponse[*models.Order], error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, req *models.UpdateOrderStatusRequest) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, req *models.UpdatePaymentStatusRequest) (*models.Order, error)
}

type orderService struct {
	tx        repository.Transactor
	orders    repository.OrderRepository
	carts     repository.CartRepository
	addresses repository.AddressRepository
	products  repository.ProductRepository
	users     repository.UserRepository
	cache     cache.Cache
	numberer  *utils.OrderNumberer
	listTTL   time.Duration
	now       func() time.Time
}

func NewOrderService(repos *repository.Repositories, c cache.Cache, numberer *utils.OrderNumberer, listTTL time.Duration) OrderService {
	return &orderService{
		tx:        repos.Transactor,
		orders:    repos.Orders,
		carts:     repos.Carts,
		addresses: repos.Addresses,
		products:  repos.Products,
		users:     repos.Users,
		cache:     c,
		numberer:  numberer,
		listTTL:   listTTL,
		now:       time.Now,
	}
}

// Checkout turns the cart into an order. Stock was reserved when items were added,
// so the products are only checked for availability here.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, cartToken string) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)

	if cartToken == "" {
		return nil, appErrors.BadRequestError("Cart token is required")
	}

	address, err := s.addresses.GetAddressByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.BadRequestError("Please add a shipping address before placing an order").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to get address").WithError(err)
	}

	cart, err := s.carts.GetCartByToken(ctx, cartToken, false)
	if err != nil {
		return nil, notFoundOr(err, "Cart not found", "Failed to fetch cart")
	}

	if err := checkoutable(cart, userID); err != nil {
		return nil, err
	}

	var order *models.Order

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		cart, err := s.carts.GetCartByToken(ctx, cartToken, true)
		if err != nil {
			return notFoundOr(err, "Cart not found", "Failed to fetch cart")
		}

		if err := checkoutable(cart, userID); err != nil {
			return err
		}

		for _, item := range cart.Items {
			product, err := s.products.GetProductForUpdate(ctx, item.ProductID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return appErrors.DatabaseError("Failed to get product").WithError(err)
			}

			if product == nil || product.IsDeleted {
				return appErrors.ConflictError(fmt.Sprintf("Product %q is no longer available", item.ProductName))
			}
		}

		id := uuid.New()
		createdAt := s.now().UTC()

		number, err := s.numberer.Next(id, createdAt)
		if err != nil {
			return appErrors.InternalError("Failed to generate order number").WithError(err)
		}

		order = &models.Order{
			ID:                id,
			OrderNumber:       number,
			UserID:            userID,
			Items:             models.OrderItemsFromCart(cart.Items),
			TotalAmount:       cart.Bill,
			ShippingAddressID: address.ID,
			PaymentStatus:     models.PaymentStatusPending,
			OrderStatus:       models.OrderStatusPending,
			CreatedAt:         createdAt,
		}

		if err := s.orders.CreateOrder(ctx, order); err != nil {
			return appErrors.DatabaseError("Failed to create order").WithError(err)
		}

		cart.Clear()
		cart.UserID = &userID

		if err := s.carts.UpdateCart(ctx, cart); err != nil {
			return appErrors.DatabaseError("Failed to clear cart").WithError(err)
		}

		return nil
	})
	if err != nil {
		logger.Warn("Checkout failed", slog.String("userId", userID.String()), slog.Any("error", err))

		return nil, err
	}

	metrics.RecordOrderPlaced()
	logger.Info("Order placed", slog.String("orderId", order.ID.String()), slog.String("orderNumber", order.OrderNumber))

	return order, nil
}

func checkoutable(cart *models.Cart, userID uuid.UUID) error {
	if cart.OwnedByOther(userID) {
		return appErrors.ForbiddenError("This cart belongs to another account")
	}

	if cart.IsEmpty() {
		return appErrors.BadRequestError("Cart is empty")
	}

	return nil
}

func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID, params models.ListParams) (*models.PaginatedResponse[*models.Order], error) {
	params = params.Normalize()
	key := cache.ListKey(cache.OrderKeyPrefix, userID.String(), params)

	return cache.Remember(ctx, s.cache, middleware.LoggerFromContext(ctx), key, s.listTTL,
		func(ctx context.Context) (*models.PaginatedResponse[*models.Order], error) {
			orders, total, err := s.orders.ListOrdersByUser(ctx, userID, params)
			if err != nil {
				return nil, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
			}

			return models.NewPaginatedResponse(orders, total, params), nil
		})
}

// GetOrder is limited to the owner of the order and administrators.
func (s *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID, false)
	if err != nil {
		return nil, notFoundOr(err, "Order not found", "Failed to get order")
	}

	if order.UserID == userID {
		return order, nil
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "Failed to get user")
	}

	if user.Role != models.RoleAdmin {
		return nil, appErrors.ForbiddenError("You do not have access to this order")
	}

	return order, nil
}

// UpdateOrderStatus follows the order lifecycle; cancelling gives the reserved stock back.
func (s *orderService) UpdateOrderStatus(ctx context.Context, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	var updated *models.Order

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetOrderByID(ctx, req.OrderID, true)
		if err != nil {
			return notFoundOr(err, "Order not found", "Failed to get order")
		}

		if order.OrderStatus == req.Status {
			updated = order

			return nil
		}

		if !order.OrderStatus.CanTransitionTo(req.Status) {
			return appErrors.BadRequestError(fmt.Sprintf("Cannot change order status from %s to %s", order.OrderStatus, req.Status))
		}

		if req.Status == models.OrderStatusCancelled {
			for _, item := range order.Items {
				if err := restock(ctx, s.products, item.ProductID, item.Size, item.Quantity); err != nil {
					return err
				}
			}
		}

		updated, err = s.orders.UpdateOrderStatus(ctx, order.ID, req.Status)
		if err != nil {
			return notFoundOr(err, "Order not found", "Failed to update order status")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *orderService) UpdatePaymentStatus(ctx context.Context, req *models.UpdatePaymentStatusRequest) (*models.Order, error) {
	order, err := s.orders.UpdatePaymentStatus(ctx, req.OrderID, req.Status)
	if err != nil {
		return nil, notFoundOr(err, "Order not found", "Failed to update payment status")
	}

	return order, nil
}
