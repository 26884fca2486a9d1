package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProductForUpdate(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	UpdateImages(ctx context.Context, id uuid.UUID, images []string) error
	ListProducts(ctx context.Context, params models.ListParams) ([]*models.Product, int, error)
	ListByCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]*models.Product, error)
	AdjustStock(ctx context.Context, id uuid.UUID, size string, delta int) (*models.Product, error)
	UpdateRatingAggregate(ctx context.Context, id uuid.UUID, agg models.RatingAggregate) error
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, category_id, name, description, images, stock, rating_sum, total_rating, average_rating, is_deleted, version, created_at, updated_at`

var productListing = listSpec{
	searchColumns: []string{"name", "description"},
	sortColumns: map[string]string{
		"name":           "name",
		"created_at":     "created_at",
		"createdAt":      "created_at",
		"average_rating": "average_rating",
		"averageRating":  "average_rating",
		"total_rating":   "total_rating",
		"totalRating":    "total_rating",
	},
	defaultSort: "created_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}

	var stockJSON []byte

	err := row.Scan(&product.ID, &product.CategoryID, &product.Name, &product.Description, pq.Array(&product.Images), &stockJSON,
		&product.RatingSum, &product.TotalRating, &product.AverageRating, &product.IsDeleted, &product.Version, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(stockJSON, &product.Stock); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product stock: %w", err)
	}

	if product.Images == nil {
		product.Images = []string{}
	}

	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	stockJSON, err := json.Marshal(product.Stock)
	if err != nil {
		return fmt.Errorf("failed to marshal product stock: %w", err)
	}

	query := `
		INSERT INTO products (id, category_id, name, description, images, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING version, created_at, updated_at
	`

	err = conn(ctx, r.DB).QueryRowContext(dbCtx, query, product.ID, product.CategoryID, product.Name, product.Description, pq.Array(product.Images), stockJSON).
		Scan(&product.Version, &product.CreatedAt, &product.UpdatedAt)

	return translate(err)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return r.getProduct(ctx, id, false)
}

// GetProductForUpdate locks the row until the surrounding transaction ends.
func (r *productRepository) GetProductForUpdate(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return r.getProduct(ctx, id, true)
}

func (r *productRepository) getProduct(ctx context.Context, id uuid.UUID, forUpdate bool) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	product, err := scanProduct(conn(ctx, r.DB).QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, translate(err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	stockJSON, err := json.Marshal(product.Stock)
	if err != nil {
		return fmt.Errorf("failed to marshal product stock: %w", err)
	}

	query := `
		UPDATE products SET category_id = $1, name = $2, description = $3, images = $4, stock = $5, version = version + 1, updated_at = NOW()
		WHERE id = $6
		RETURNING version, updated_at
	`

	err = conn(ctx, r.DB).QueryRowContext(dbCtx, query, product.CategoryID, product.Name, product.Description, pq.Array(product.Images), stockJSON, product.ID).
		Scan(&product.Version, &product.UpdatedAt)

	return translate(err)
}

func (r *productRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE products SET is_deleted = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + productColumns

	product, err := scanProduct(conn(ctx, r.DB).QueryRowContext(dbCtx, query, deleted, id))
	if err != nil {
		return nil, translate(err)
	}

	return product, nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}

	return expectOneRow(result)
}

func (r *productRepository) UpdateImages(ctx context.Context, id uuid.UUID, images []string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, `UPDATE products SET images = $1, updated_at = NOW() WHERE id = $2`, pq.Array(images), id)
	if err != nil {
		return translate(err)
	}

	return expectOneRow(result)
}

func (r *productRepository) ListProducts(ctx context.Context, params models.ListParams) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	db := conn(ctx, r.DB)

	where, args := productListing.searchClause(params.Search, 1, nil)

	var total int

	countQuery := `SELECT COUNT(*) FROM products WHERE is_deleted = false` + where
	if err := db.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	n := len(args)
	query := `SELECT ` + productColumns + ` FROM products WHERE is_deleted = false` + where +
		productListing.orderBy(params) + fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)

	rows, err := db.QueryContext(dbCtx, query, append(args, params.PageSize, params.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) ListByCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	ids := make([]string, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		ids = append(ids, id.String())
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE is_deleted = false AND category_id = ANY($1::uuid[]) ORDER BY created_at DESC`

	rows, err := conn(ctx, r.DB).QueryContext(dbCtx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func collectProducts(rows *sql.Rows) ([]*models.Product, error) {
	products := []*models.Product{}

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// AdjustStock is the only path that changes stock. It locks the product row, applies the
// signed delta to the flat quantity or the named size and persists the result. Reservations
// (delta < 0) on a soft-deleted product fail with ErrProductUnavailable; restorations are allowed.
// Callers must run it inside Transactor.WithinTx for the lock to span their other writes.
func (r *productRepository) AdjustStock(ctx context.Context, id uuid.UUID, size string, delta int) (*models.Product, error) {
	product, err := r.GetProductForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if delta < 0 && product.IsDeleted {
		return nil, ErrProductUnavailable
	}

	if err := product.Stock.Adjust(size, delta); err != nil {
		return nil, err
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	stockJSON, err := json.Marshal(product.Stock)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product stock: %w", err)
	}

	query := `UPDATE products SET stock = $1, version = version + 1, updated_at = NOW() WHERE id = $2 RETURNING version, updated_at`

	if err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, stockJSON, id).Scan(&product.Version, &product.UpdatedAt); err != nil {
		return nil, translate(err)
	}

	return product, nil
}

func (r *productRepository) UpdateRatingAggregate(ctx context.Context, id uuid.UUID, agg models.RatingAggregate) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE products SET rating_sum = $1, total_rating = $2, average_rating = $3, updated_at = NOW() WHERE id = $4`

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, query, agg.Sum, agg.Count, agg.Average(), id)
	if err != nil {
		return translate(err)
	}

	return expectOneRow(result)
}
