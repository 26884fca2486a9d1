package repository

import (
	"context"
	"database/sql"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

const categoryColumns = `id, name, description, slug, image, status, keywords, is_featured, is_deleted, created_at, updated_at`

func scanCategory(row rowScanner) (*models.Category, error) {
	category := &models.Category{}

	err := row.Scan(&category.ID, &category.Name, &category.Description, &category.Slug, &category.Image, &category.Status,
		pq.Array(&category.Keywords), &category.IsFeatured, &category.IsDeleted, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if category.Keywords == nil {
		category.Keywords = []string{}
	}

	return category, nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO categories (id, name, description, slug, image, status, keywords, is_featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, category.ID, category.Name, category.Description, category.Slug, category.Image,
		category.Status, pq.Array(category.Keywords), category.IsFeatured).Scan(&category.CreatedAt, &category.UpdatedAt)

	return translate(err)
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	category, err := scanCategory(conn(ctx, r.DB).QueryRowContext(dbCtx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}

	return category, nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE categories SET name = $1, description = $2, slug = $3, image = $4, status = $5, keywords = $6, is_featured = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, category.Name, category.Description, category.Slug, category.Image, category.Status,
		pq.Array(category.Keywords), category.IsFeatured, category.ID).Scan(&category.UpdatedAt)

	return translate(err)
}

func (r *categoryRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, `UPDATE categories SET is_deleted = $1, updated_at = NOW() WHERE id = $2`, deleted, id)
	if err != nil {
		return translate(err)
	}

	return expectOneRow(result)
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}

	return expectOneRow(result)
}

func (r *categoryRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := conn(ctx, r.DB).QueryContext(dbCtx, `SELECT `+categoryColumns+` FROM categories WHERE is_deleted = false ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.Category{}

	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}
