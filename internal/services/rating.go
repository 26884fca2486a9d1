package service

import (
	"context"
	"errors"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
)

type RatingService interface {
	AddOrUpdateRating(ctx context.Context, userID uuid.UUID, req *models.RatingRequest) (*models.RatingSummary, error)
	DeleteRating(ctx context.Context, userID, productID uuid.UUID) (*models.RatingSummary, error)
	GetMyRating(ctx context.Context, userID, productID uuid.UUID) (*models.Rating, error)
}

type ratingService struct {
	tx       repository.Transactor
	ratings  repository.RatingRepository
	products repository.ProductRepository
}

func NewRatingService(tx repository.Transactor, ratings repository.RatingRepository, products repository.ProductRepository) RatingService {
	return &ratingService{tx: tx, ratings: ratings, products: products}
}

// AddOrUpdateRating keeps one rating per user and product; the product aggregate is
// adjusted by the difference instead of being recomputed.
func (s *ratingService) AddOrUpdateRating(ctx context.Context, userID uuid.UUID, req *models.RatingRequest) (*models.RatingSummary, error) {
	var summary *models.RatingSummary

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		product, err := s.lockProduct(ctx, req.ProductID)
		if err != nil {
			return err
		}

		rating := &models.Rating{
			ID:        uuid.New(),
			ProductID: req.ProductID,
			UserID:    userID,
			Value:     req.Rating,
		}

		previous, err := s.ratings.UpsertRating(ctx, rating)
		if err != nil {
			return appErrors.DatabaseError("Failed to save rating").WithError(err)
		}

		agg := aggregateOf(product).Replace(previous, req.Rating)

		summary, err = s.saveAggregate(ctx, req.ProductID, agg)
		if err != nil {
			return err
		}

		summary.Rating = rating

		return nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *ratingService) DeleteRating(ctx context.Context, userID, productID uuid.UUID) (*models.RatingSummary, error) {
	var summary *models.RatingSummary

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		product, err := s.lockProduct(ctx, productID)
		if err != nil {
			return err
		}

		value, err := s.ratings.DeleteRating(ctx, productID, userID)
		if err != nil {
			return notFoundOr(err, "Rating not found", "Failed to delete rating")
		}

		summary, err = s.saveAggregate(ctx, productID, aggregateOf(product).Remove(value))

		return err
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// GetMyRating returns the rating the user left on the product.
func (s *ratingService) GetMyRating(ctx context.Context, userID, productID uuid.UUID) (*models.Rating, error) {
	rating, err := s.ratings.GetRating(ctx, productID, userID)
	if err != nil {
		return nil, notFoundOr(err, "Rating not found", "Failed to get rating")
	}

	return rating, nil
}

func (s *ratingService) lockProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.GetProductForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to get product").WithError(err)
	}

	return product, nil
}

func (s *ratingService) saveAggregate(ctx context.Context, productID uuid.UUID, agg models.RatingAggregate) (*models.RatingSummary, error) {
	if err := s.products.UpdateRatingAggregate(ctx, productID, agg); err != nil {
		return nil, notFoundOr(err, "Product not found", "Failed to update product rating")
	}

	return &models.RatingSummary{
		ProductID:     productID,
		AverageRating: agg.Average(),
		TotalRating:   agg.Count,
	}, nil
}

func aggregateOf(product *models.Product) models.RatingAggregate {
	return models.RatingAggregate{Sum: product.RatingSum, Count: product.TotalRating}
}
