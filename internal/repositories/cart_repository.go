package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
)

type CartRepository interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCartByToken(ctx context.Context, token string, forUpdate bool) (*models.Cart, error)
	UpdateCart(ctx context.Context, cart *models.Cart) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		INSERT INTO carts (id, token, user_id, items, bill, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (token) DO NOTHING
		RETURNING created_at, updated_at
	`

	err = conn(ctx, r.DB).QueryRowContext(dbCtx, query, cart.ID, cart.Token, cart.UserID, itemsJSON, cart.Bill).Scan(&cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// The token was claimed by a concurrent insert.
		return ErrDuplicate
	}

	return translate(err)
}

// GetCartByToken optionally locks the cart row so concurrent bill updates serialize.
func (r *cartRepository) GetCartByToken(ctx context.Context, token string, forUpdate bool) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, token, user_id, items, bill, created_at, updated_at
		FROM carts
		WHERE token = $1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	cart := &models.Cart{}

	var itemsJSON []byte

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, token).Scan(&cart.ID, &cart.Token, &cart.UserID, &itemsJSON, &cart.Bill, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	return cart, nil
}

func (r *cartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		UPDATE carts SET items = $1, bill = $2, user_id = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err = conn(ctx, r.DB).QueryRowContext(dbCtx, query, itemsJSON, cart.Bill, cart.UserID, cart.ID).Scan(&cart.UpdatedAt)

	return translate(err)
}
