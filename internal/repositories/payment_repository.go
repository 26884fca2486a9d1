package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error)
}

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepo(db *sql.DB) PaymentRepository {
	return &paymentRepository{DB: db}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO payments (id, payment_id, user_id, order_id, amount, currency, status, customer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, payment.ID, payment.PaymentID, payment.UserID, payment.OrderID, payment.Amount,
		payment.Currency, payment.Status, payment.Customer).Scan(&payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", translate(err))
	}

	return nil
}

func (r *paymentRepository) GetPaymentByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	payment := &models.Payment{}

	query := `
		SELECT id, payment_id, user_id, order_id, amount, currency, status, customer, created_at
		FROM payments
		WHERE payment_id = $1
	`

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, paymentID).Scan(&payment.ID, &payment.PaymentID, &payment.UserID, &payment.OrderID,
		&payment.Amount, &payment.Currency, &payment.Status, &payment.Customer, &payment.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}

	return payment, nil
}
