package repository

import (
	"context"
	"database/sql"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type RatingRepository interface {
	UpsertRating(ctx context.Context, rating *models.Rating) (previous *int, err error)
	GetRating(ctx context.Context, productID, userID uuid.UUID) (*models.Rating, error)
	DeleteRating(ctx context.Context, productID, userID uuid.UUID) (int, error)
}

type ratingRepository struct {
	DB *sql.DB
}

func NewRatingRepo(db *sql.DB) RatingRepository {
	return &ratingRepository{DB: db}
}

// UpsertRating inserts or replaces the (product, user) rating and reports the value it replaced.
func (r *ratingRepository) UpsertRating(ctx context.Context, rating *models.Rating) (*int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		WITH previous AS (
			SELECT rating FROM ratings WHERE product_id = $2 AND user_id = $3
		)
		INSERT INTO ratings (id, product_id, user_id, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (product_id, user_id) DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()
		RETURNING id, created_at, updated_at, (SELECT rating FROM previous)
	`

	var previous sql.NullInt64

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, rating.ID, rating.ProductID, rating.UserID, rating.Value).
		Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt, &previous)
	if err != nil {
		return nil, translate(err)
	}

	if !previous.Valid {
		return nil, nil
	}

	value := int(previous.Int64)

	return &value, nil
}

func (r *ratingRepository) GetRating(ctx context.Context, productID, userID uuid.UUID) (*models.Rating, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, product_id, user_id, rating, created_at, updated_at
		FROM ratings
		WHERE product_id = $1 AND user_id = $2
	`

	rating := &models.Rating{}

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, productID, userID).
		Scan(&rating.ID, &rating.ProductID, &rating.UserID, &rating.Value, &rating.CreatedAt, &rating.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}

	return rating, nil
}

// DeleteRating removes the rating and returns the value it held.
func (r *ratingRepository) DeleteRating(ctx context.Context, productID, userID uuid.UUID) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var value int

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, `DELETE FROM ratings WHERE product_id = $1 AND user_id = $2 RETURNING rating`, productID, userID).Scan(&value)
	if err != nil {
		return 0, translate(err)
	}

	return value, nil
}
