package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, params models.ListParams) ([]*models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) (*models.Order, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `id, order_number, user_id, items, total_amount, shipping_address_id, payment_status, order_status, created_at, updated_at`

// items::text lets a search match product names inside the snapshot.
var orderListing = listSpec{
	searchColumns: []string{"order_number", "order_status", "payment_status", "items::text"},
	sortColumns: map[string]string{
		"created_at":   "created_at",
		"createdAt":    "created_at",
		"total_amount": "total_amount",
		"totalAmount":  "total_amount",
		"order_number": "order_number",
		"orderNumber":  "order_number",
	},
	defaultSort: "created_at",
}

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}

	var itemsJSON []byte

	err := row.Scan(&order.ID, &order.OrderNumber, &order.UserID, &itemsJSON, &order.TotalAmount, &order.ShippingAddressID,
		&order.PaymentStatus, &order.OrderStatus, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	return order, nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, order_number, user_id, items, total_amount, shipping_address_id, payment_status, order_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err = conn(ctx, r.DB).QueryRowContext(dbCtx, query, order.ID, order.OrderNumber, order.UserID, itemsJSON, order.TotalAmount,
		order.ShippingAddressID, order.PaymentStatus, order.OrderStatus).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", translate(err))
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	order, err := scanOrder(conn(ctx, r.DB).QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, translate(err)
	}

	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, params models.ListParams) ([]*models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	db := conn(ctx, r.DB)

	where, args := orderListing.searchClause(params.Search, 2, []any{userID})

	var total int

	countQuery := `SELECT COUNT(*) FROM orders WHERE user_id = $1` + where
	if err := db.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	n := len(args)
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1` + where +
		orderListing.orderBy(params) + fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)

	rows, err := db.QueryContext(dbCtx, query, append(args, params.PageSize, params.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	return r.updateStatus(ctx, `UPDATE orders SET order_status = $1, updated_at = NOW() WHERE id = $2 RETURNING `+orderColumns, status, id)
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) (*models.Order, error) {
	return r.updateStatus(ctx, `UPDATE orders SET payment_status = $1, updated_at = NOW() WHERE id = $2 RETURNING `+orderColumns, status, id)
}

func (r *orderRepository) updateStatus(ctx context.Context, query string, status any, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order, err := scanOrder(conn(ctx, r.DB).QueryRowContext(dbCtx, query, status, id))
	if err != nil {
		return nil, translate(err)
	}

	return order, nil
}
