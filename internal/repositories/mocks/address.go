package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type AddressRepository struct {
	mock.Mock
}

func NewAddressRepository(t testingT) *AddressRepository {
	m := &AddressRepository{}
	register(&m.Mock, t)

	return m
}

func (m *AddressRepository) CreateAddress(ctx context.Context, address *models.Address) error {
	return m.Called(ctx, address).Error(0)
}

func (m *AddressRepository) GetAddressByUserID(ctx context.Context, userID uuid.UUID) (*models.Address, error) {
	args := m.Called(ctx, userID)

	return ret[*models.Address](args, 0), args.Error(1)
}

func (m *AddressRepository) UpdateAddress(ctx context.Context, address *models.Address) error {
	return m.Called(ctx, address).Error(0)
}

type CategoryRepository struct {
	mock.Mock
}

func NewCategoryRepository(t testingT) *CategoryRepository {
	m := &CategoryRepository{}
	register(&m.Mock, t)

	return m
}

func (m *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *CategoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)

	return ret[*models.Category](args, 0), args.Error(1)
}

func (m *CategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *CategoryRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	return m.Called(ctx, id, deleted).Error(0)
}

func (m *CategoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CategoryRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)

	return ret[[]*models.Category](args, 0), args.Error(1)
}

type PaymentRepository struct {
	mock.Mock
}

func NewPaymentRepository(t testingT) *PaymentRepository {
	m := &PaymentRepository{}
	register(&m.Mock, t)

	return m
}

func (m *PaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *PaymentRepository) GetPaymentByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	args := m.Called(ctx, paymentID)

	return ret[*models.Payment](args, 0), args.Error(1)
}
