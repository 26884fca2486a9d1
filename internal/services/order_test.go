package service_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	tx        *mocks.Transactor
	orders    *mocks.OrderRepository
	carts     *mocks.CartRepository
	addresses *mocks.AddressRepository
	products  *mocks.ProductRepository
	users     *mocks.UserRepository
	cache     *memoryCache
	service   service.OrderService
}

func setupOrderService(t *testing.T) *orderFixture {
	t.Helper()

	numberer, err := utils.NewOrderNumberer("test-salt", 8)
	require.NoError(t, err)

	f := &orderFixture{
		tx:        mocks.NewTransactor(),
		orders:    mocks.NewOrderRepository(t),
		carts:     mocks.NewCartRepository(t),
		addresses: mocks.NewAddressRepository(t),
		products:  mocks.NewProductRepository(t),
		users:     mocks.NewUserRepository(t),
		cache:     newMemoryCache(),
	}

	repos := &repository.Repositories{
		Transactor: f.tx,
		Orders:     f.orders,
		Carts:      f.carts,
		Addresses:  f.addresses,
		Products:   f.products,
		Users:      f.users,
	}
	f.service = service.NewOrderService(repos, f.cache, numberer, 30*time.Second)

	return f
}

func TestOrderService_Checkout(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	address := &models.Address{ID: uuid.New(), UserID: userID}

	twoItemCart := func(p1, p2 *models.Product) *models.Cart {
		return cartWith("tok",
			models.CartItem{ProductID: p1.ID, ProductName: p1.Name, Quantity: 2, ActualPrice: dec("10.25")},
			models.CartItem{ProductID: p2.ID, ProductName: p2.Name, Quantity: 1, ActualPrice: dec("15")},
		)
	}

	t.Run("Success - total equals the bill and the cart is cleared", func(t *testing.T) {
		f := setupOrderService(t)
		mug := flatProduct("Mug", "10.25", 3)
		plate := flatProduct("Plate", "15", 3)

		f.addresses.On("GetAddressByUserID", mock.Anything, userID).Return(address, nil).Once()
		f.carts.On("GetCartByToken", mock.Anything, "tok", false).Return(twoItemCart(mug, plate), nil).Once()

		locked := twoItemCart(mug, plate)
		f.carts.On("GetCartByToken", mock.Anything, "tok", true).Return(locked, nil).Once()
		f.products.On("GetProductForUpdate", mock.Anything, mug.ID).Return(mug, nil).Once()
		f.products.On("GetProductForUpdate", mock.Anything, plate.ID).Return(plate, nil).Once()
		f.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
			return o.UserID == userID &&
				o.ShippingAddressID == address.ID &&
				dec("35.50").Equal(o.TotalAmount) &&
				len(o.Items) == 2 &&
				o.OrderStatus == models.OrderStatusPending &&
				o.PaymentStatus == models.PaymentStatusPending &&
				strings.HasPrefix(o.OrderNumber, "ORD-")
		})).Return(nil).Once()
		f.carts.On("UpdateCart", mock.Anything, mock.MatchedBy(func(c *models.Cart) bool {
			return c.IsEmpty() && c.Bill.IsZero() && c.UserID != nil && *c.UserID == userID
		})).Return(nil).Once()

		order, err := f.service.Checkout(ctx, userID, "tok")

		require.NoError(t, err)
		assertDecimal(t, "35.50", order.TotalAmount)
		assert.Equal(t, "Mug", order.Items[0].ProductName)
		assert.Equal(t, 2, order.Items[0].Quantity)
		assert.True(t, locked.IsEmpty())
		assert.Equal(t, 1, f.tx.Calls)
	})

	t.Run("Failure - No shipping address creates no order", func(t *testing.T) {
		f := setupOrderService(t)

		f.addresses.On("GetAddressByUserID", mock.Anything, userID).Return(nil, repository.ErrNotFound).Once()

		order, err := f.service.Checkout(ctx, userID, "tok")

		assert.Nil(t, order)
		appErr := requireAppError(t, err, appErrors.ErrCodeBadRequest, http.StatusBadRequest)
		assert.Less(t, appErr.StatusCode, 500)
		assert.Equal(t, 0, f.tx.Calls)
		f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Empty cart", func(t *testing.T) {
		f := setupOrderService(t)

		f.addresses.On("GetAddressByUserID", mock.Anything, userID).Return(address, nil).Once()
		f.carts.On("GetCartByToken", mock.Anything, "tok", false).Return(models.NewCart("tok"), nil).Once()

		_, err := f.service.Checkout(ctx, userID, "tok")

		requireAppError(t, err, appErrors.ErrCodeBadRequest, http.StatusBadRequest)
		assert.Equal(t, 0, f.tx.Calls)
	})

	t.Run("Failure - Cart owned by another user", func(t *testing.T) {
		f := setupOrderService(t)
		other := uuid.New()
		cart := twoItemCart(flatProduct("Mug", "10.25", 3), flatProduct("Plate", "15", 3))
		cart.UserID = &other

		f.addresses.On("GetAddressByUserID", mock.Anything, userID).Return(address, nil).Once()
		f.carts.On("GetCartByToken", mock.Anything, "tok", false).Return(cart, nil).Once()

		_, err := f.service.Checkout(ctx, userID, "tok")

		requireAppError(t, err, appErrors.ErrCodeForbidden, http.StatusForbidden)
	})

	t.Run("Failure - Product deleted after it was added", func(t *testing.T) {
		f := setupOrderService(t)
		mug := flatProduct("Mug", "10.25", 3)
		plate := flatProduct("Plate", "15", 3)
		plate.IsDeleted = true

		f.addresses.On("GetAddressByUserID", mock.Anything, userID).Return(address, nil).Once()
		f.carts.On("GetCartByToken", mock.Anything, "tok", false).Return(twoItemCart(mug, plate), nil).Once()
		f.carts.On("GetCartByToken", mock.Anything, "tok", true).Return(twoItemCart(mug, plate), nil).Once()
		f.products.On("GetProductForUpdate", mock.Anything, mug.ID).Return(mug, nil).Once()
		f.products.On("GetProductForUpdate", mock.Anything, plate.ID).Return(plate, nil).Once()

		order, err := f.service.Checkout(ctx, userID, "tok")

		assert.Nil(t, order)
		appErr := requireAppError(t, err, appErrors.ErrCodeConflict, http.StatusConflict)
		assert.Contains(t, appErr.Message, "Plate")
		f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Product removed entirely", func(t *testing.T) {
		f := setupOrderService(t)
		mug := flatProduct("Mug", "10.25", 3)
		plate := flatProduct("Plate", "15", 3)

		f.addresses.On("GetAddressByUserID", mock.Anything, userID).Return(address, nil).Once()
		f.carts.On("GetCartByToken", mock.Anything, "tok", false).Return(twoItemCart(mug, plate), nil).Once()
		f.carts.On("GetCartByToken", mock.Anything, "tok", true).Return(twoItemCart(mug, plate), nil).Once()
		f.products.On("GetProductForUpdate", mock.Anything, mug.ID).Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.Checkout(ctx, userID, "tok")

		requireAppError(t, err, appErrors.ErrCodeConflict, http.StatusConflict)
	})

	t.Run("Failure - Missing cart token", func(t *testing.T) {
		f := setupOrderService(t)

		_, err := f.service.Checkout(ctx, userID, "")

		requireAppError(t, err, appErrors.ErrCodeBadRequest, http.StatusBadRequest)
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Repeated query is served from the cache", func(t *testing.T) {
		f := setupOrderService(t)
		params := models.ListParams{Search: "mug", Page: 1, PageSize: 5, SortField: "created_at", SortOrder: models.SortDesc}
		orders := []*models.Order{{ID: uuid.New(), UserID: userID, OrderNumber: "ORD-AAAA2222", TotalAmount: dec("12")}}

		f.orders.On("ListOrdersByUser", mock.Anything, userID, params).Return(orders, 1, nil).Once()

		first, err := f.service.ListOrders(ctx, userID, params)
		require.NoError(t, err)

		second, err := f.service.ListOrders(ctx, userID, params)
		require.NoError(t, err)

		assert.Equal(t, 1, f.cache.hits)
		assert.Equal(t, first.TotalCount, second.TotalCount)
		assert.Equal(t, first.Items[0].OrderNumber, second.Items[0].OrderNumber)
		assert.Equal(t, 1, second.TotalPages)
	})

	t.Run("Failure - Database error is not cached", func(t *testing.T) {
		f := setupOrderService(t)

		f.orders.On("ListOrdersByUser", mock.Anything, userID, mock.Anything).Return(nil, 0, assert.AnError).Twice()

		_, err := f.service.ListOrders(ctx, userID, models.ListParams{})
		requireAppError(t, err, appErrors.ErrCodeDatabaseError, http.StatusInternalServerError)

		_, err = f.service.ListOrders(ctx, userID, models.ListParams{})
		requireAppError(t, err, appErrors.ErrCodeDatabaseError, http.StatusInternalServerError)
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	order := &models.Order{ID: uuid.New(), UserID: owner}

	t.Run("Owner", func(t *testing.T) {
		f := setupOrderService(t)
		f.orders.On("GetOrderByID", mock.Anything, order.ID, false).Return(order, nil).Once()

		got, err := f.service.GetOrder(ctx, owner, order.ID)

		require.NoError(t, err)
		assert.Equal(t, order, got)
	})

	t.Run("Admin", func(t *testing.T) {
		f := setupOrderService(t)
		admin := &models.User{ID: uuid.New(), Role: models.RoleAdmin}
		f.orders.On("GetOrderByID", mock.Anything, order.ID, false).Return(order, nil).Once()
		f.users.On("GetUserByID", mock.Anything, admin.ID).Return(admin, nil).Once()

		got, err := f.service.GetOrder(ctx, admin.ID, order.ID)

		require.NoError(t, err)
		assert.Equal(t, order, got)
	})

	t.Run("Failure - Another customer", func(t *testing.T) {
		f := setupOrderService(t)
		stranger := &models.User{ID: uuid.New(), Role: models.RoleUser}
		f.orders.On("GetOrderByID", mock.Anything, order.ID, false).Return(order, nil).Once()
		f.users.On("GetUserByID", mock.Anything, stranger.ID).Return(stranger, nil).Once()

		_, err := f.service.GetOrder(ctx, stranger.ID, order.ID)

		requireAppError(t, err, appErrors.ErrCodeForbidden, http.StatusForbidden)
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		f := setupOrderService(t)
		f.orders.On("GetOrderByID", mock.Anything, order.ID, false).Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.GetOrder(ctx, owner, order.ID)

		requireAppError(t, err, appErrors.ErrCodeNotFound, http.StatusNotFound)
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Cancelling restores stock", func(t *testing.T) {
		f := setupOrderService(t)
		productID := uuid.New()
		order := &models.Order{
			ID:          uuid.New(),
			OrderStatus: models.OrderStatusPending,
			Items:       []models.OrderItem{{ProductID: productID, Size: "M", Quantity: 2}},
		}
		cancelled := *order
		cancelled.OrderStatus = models.OrderStatusCancelled

		f.orders.On("GetOrderByID", mock.Anything, order.ID, true).Return(order, nil).Once()
		f.products.On("AdjustStock", mock.Anything, productID, "M", 2).Return(&models.Product{ID: productID}, nil).Once()
		f.orders.On("UpdateOrderStatus", mock.Anything, order.ID, models.OrderStatusCancelled).Return(&cancelled, nil).Once()

		got, err := f.service.UpdateOrderStatus(ctx, &models.UpdateOrderStatusRequest{OrderID: order.ID, Status: models.OrderStatusCancelled})

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCancelled, got.OrderStatus)
	})

	t.Run("Cancelling skips sizes the product no longer offers", func(t *testing.T) {
		f := setupOrderService(t)
		sizedID, flatID := uuid.New(), uuid.New()
		order := &models.Order{
			ID:          uuid.New(),
			OrderStatus: models.OrderStatusConfirmed,
			Items: []models.OrderItem{
				{ProductID: sizedID, Size: "M", Quantity: 2},
				{ProductID: flatID, Quantity: 1},
			},
		}
		cancelled := *order
		cancelled.OrderStatus = models.OrderStatusCancelled

		f.orders.On("GetOrderByID", mock.Anything, order.ID, true).Return(order, nil).Once()
		f.products.On("AdjustStock", mock.Anything, sizedID, "M", 2).Return(nil, models.ErrSizeNotApplicable).Once()
		f.products.On("AdjustStock", mock.Anything, flatID, "", 1).Return(&models.Product{ID: flatID}, nil).Once()
		f.orders.On("UpdateOrderStatus", mock.Anything, order.ID, models.OrderStatusCancelled).Return(&cancelled, nil).Once()

		got, err := f.service.UpdateOrderStatus(ctx, &models.UpdateOrderStatusRequest{OrderID: order.ID, Status: models.OrderStatusCancelled})

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCancelled, got.OrderStatus)
	})

	t.Run("Confirming leaves stock alone", func(t *testing.T) {
		f := setupOrderService(t)
		order := &models.Order{ID: uuid.New(), OrderStatus: models.OrderStatusPending}
		confirmed := *order
		confirmed.OrderStatus = models.OrderStatusConfirmed

		f.orders.On("GetOrderByID", mock.Anything, order.ID, true).Return(order, nil).Once()
		f.orders.On("UpdateOrderStatus", mock.Anything, order.ID, models.OrderStatusConfirmed).Return(&confirmed, nil).Once()

		got, err := f.service.UpdateOrderStatus(ctx, &models.UpdateOrderStatusRequest{OrderID: order.ID, Status: models.OrderStatusConfirmed})

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusConfirmed, got.OrderStatus)
	})

	t.Run("Failure - Invalid transition", func(t *testing.T) {
		f := setupOrderService(t)
		order := &models.Order{ID: uuid.New(), OrderStatus: models.OrderStatusDelivered}

		f.orders.On("GetOrderByID", mock.Anything, order.ID, true).Return(order, nil).Once()

		_, err := f.service.UpdateOrderStatus(ctx, &models.UpdateOrderStatusRequest{OrderID: order.ID, Status: models.OrderStatusCancelled})

		requireAppError(t, err, appErrors.ErrCodeBadRequest, http.StatusBadRequest)
	})
}

func TestOrderService_UpdatePaymentStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := setupOrderService(t)
		order := &models.Order{ID: uuid.New(), PaymentStatus: models.PaymentStatusCompleted}

		f.orders.On("UpdatePaymentStatus", mock.Anything, order.ID, models.PaymentStatusCompleted).Return(order, nil).Once()

		got, err := f.service.UpdatePaymentStatus(ctx, &models.UpdatePaymentStatusRequest{OrderID: order.ID, Status: models.PaymentStatusCompleted})

		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusCompleted, got.PaymentStatus)
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		f := setupOrderService(t)
		id := uuid.New()

		f.orders.On("UpdatePaymentStatus", mock.Anything, id, models.PaymentStatusFailed).Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.UpdatePaymentStatus(ctx, &models.UpdatePaymentStatusRequest{OrderID: id, Status: models.PaymentStatusFailed})

		requireAppError(t, err, appErrors.ErrCodeNotFound, http.StatusNotFound)
	})
}
