package service

import (
	"errors"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

// stockError maps the outcome of a stock adjustment to the error returned to the client.
func stockError(err error) error {
	if _, ok := appErrors.IsAppError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, models.ErrInsufficientStock):
		metrics.RecordStockRejection("insufficient")

		return appErrors.BadRequestError("Insufficient stock").WithError(err)
	case errors.Is(err, models.ErrSizeNotFound):
		metrics.RecordStockRejection("size_not_found")

		return appErrors.BadRequestError("Invalid size selected").WithError(err)
	case errors.Is(err, models.ErrSizeRequired):
		return appErrors.BadRequestError("A size must be selected for this product").WithError(err)
	case errors.Is(err, models.ErrSizeNotApplicable):
		return appErrors.BadRequestError("This product is not sold in sizes").WithError(err)
	case errors.Is(err, repository.ErrProductUnavailable):
		metrics.RecordStockRejection("unavailable")

		return appErrors.ConflictError("Product is no longer available").WithError(err)
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.NotFoundError("Product not found").WithError(err)
	default:
		return appErrors.DatabaseError("Failed to update stock").WithError(err)
	}
}

// notFoundOr returns a 404 with message when err is a missing row, otherwise a database error.
func notFoundOr(err error, message, dbMessage string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.NotFoundError(message).WithError(err)
	}

	return appErrors.DatabaseError(dbMessage).WithError(err)
}
