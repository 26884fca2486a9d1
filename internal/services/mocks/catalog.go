package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ProductService struct {
	mock.Mock
}

func NewProductService(t testingT) *ProductService {
	m := &ProductService{}
	register(&m.Mock, t)

	return m
}

func (m *ProductService) CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	args := m.Called(ctx, req)

	return ret[*models.Product](args, 0), args.Error(1)
}

func (m *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)

	return ret[*models.Product](args, 0), args.Error(1)
}

func (m *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.ProductRequest) (*models.Product, error) {
	args := m.Called(ctx, id, req)

	return ret[*models.Product](args, 0), args.Error(1)
}

func (m *ProductService) UpdateStatus(ctx context.Context, id uuid.UUID, deleted bool) (*models.Product, error) {
	args := m.Called(ctx, id, deleted)

	return ret[*models.Product](args, 0), args.Error(1)
}

func (m *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProductService) AddImages(ctx context.Context, id uuid.UUID, images []string) (*models.Product, error) {
	args := m.Called(ctx, id, images)

	return ret[*models.Product](args, 0), args.Error(1)
}

func (m *ProductService) RemoveImages(ctx context.Context, id uuid.UUID, images []string) (*models.Product, error) {
	args := m.Called(ctx, id, images)

	return ret[*models.Product](args, 0), args.Error(1)
}

func (m *ProductService) ListProducts(ctx context.Context, params models.ListParams) (*models.PaginatedResponse[*models.Product], error) {
	args := m.Called(ctx, params)

	return ret[*models.PaginatedResponse[*models.Product]](args, 0), args.Error(1)
}

func (m *ProductService) ListByCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]*models.Product, error) {
	args := m.Called(ctx, categoryIDs)

	return ret[[]*models.Product](args, 0), args.Error(1)
}

type CategoryService struct {
	mock.Mock
}

func NewCategoryService(t testingT) *CategoryService {
	m := &CategoryService{}
	register(&m.Mock, t)

	return m
}

func (m *CategoryService) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, req)

	return ret[*models.Category](args, 0), args.Error(1)
}

func (m *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, id, req)

	return ret[*models.Category](args, 0), args.Error(1)
}

func (m *CategoryService) UpdateStatus(ctx context.Context, id uuid.UUID, deleted bool) error {
	return m.Called(ctx, id, deleted).Error(0)
}

func (m *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CategoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)

	return ret[[]*models.Category](args, 0), args.Error(1)
}

type RatingService struct {
	mock.Mock
}

func NewRatingService(t testingT) *RatingService {
	m := &RatingService{}
	register(&m.Mock, t)

	return m
}

func (m *RatingService) AddOrUpdateRating(ctx context.Context, userID uuid.UUID, req *models.RatingRequest) (*models.RatingSummary, error) {
	args := m.Called(ctx, userID, req)

	return ret[*models.RatingSummary](args, 0), args.Error(1)
}

func (m *RatingService) DeleteRating(ctx context.Context, userID, productID uuid.UUID) (*models.RatingSummary, error) {
	args := m.Called(ctx, userID, productID)

	return ret[*models.RatingSummary](args, 0), args.Error(1)
}

func (m *RatingService) GetMyRating(ctx context.Context, userID, productID uuid.UUID) (*models.Rating, error) {
	args := m.Called(ctx, userID, productID)

	return ret[*models.Rating](args, 0), args.Error(1)
}
