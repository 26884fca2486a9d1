package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type RatingRepository struct {
	mock.Mock
}

func NewRatingRepository(t testingT) *RatingRepository {
	m := &RatingRepository{}
	register(&m.Mock, t)

	return m
}

func (m *RatingRepository) UpsertRating(ctx context.Context, rating *models.Rating) (*int, error) {
	args := m.Called(ctx, rating)

	return ret[*int](args, 0), args.Error(1)
}

func (m *RatingRepository) GetRating(ctx context.Context, productID, userID uuid.UUID) (*models.Rating, error) {
	args := m.Called(ctx, productID, userID)

	return ret[*models.Rating](args, 0), args.Error(1)
}

func (m *RatingRepository) DeleteRating(ctx context.Context, productID, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, productID, userID)

	return args.Int(0), args.Error(1)
}
