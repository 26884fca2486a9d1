package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func NewProductRepository(t testingT) *ProductRepository {
	m := &ProductRepository{}
	register(&m.Mock, t)

	return m
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)

	return ret[*models.Product](args, 0), args.Error(1)
}

func (m *ProductRepository) GetProductForUpdate(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)

	return ret[*models.Product](args, 0), args.Error(1)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) (*models.Product, error) {
	args := m.Called(ctx, id, deleted)

	return ret[*models.Product](args, 0), args.Error(1)
}

func (m *ProductRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProductRepository) UpdateImages(ctx context.Context, id uuid.UUID, images []string) error {
	return m.Called(ctx, id, images).Error(0)
}

func (m *ProductRepository) ListProducts(ctx context.Context, params models.ListParams) ([]*models.Product, int, error) {
	args := m.Called(ctx, params)

	return ret[[]*models.Product](args, 0), args.Int(1), args.Error(2)
}

func (m *ProductRepository) ListByCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]*models.Product, error) {
	args := m.Called(ctx, categoryIDs)

	return ret[[]*models.Product](args, 0), args.Error(1)
}

func (m *ProductRepository) AdjustStock(ctx context.Context, id uuid.UUID, size string, delta int) (*models.Product, error) {
	args := m.Called(ctx, id, size, delta)

	return ret[*models.Product](args, 0), args.Error(1)
}

func (m *ProductRepository) UpdateRatingAggregate(ctx context.Context, id uuid.UUID, agg models.RatingAggregate) error {
	return m.Called(ctx, id, agg).Error(0)
}
