package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
)

// restock returns reserved units to a product. A product removed in the meantime, or one whose
// size options no longer match the reserved size, has nothing to return to.
func restock(ctx context.Context, products repository.ProductRepository, productID uuid.UUID, size string, quantity int) error {
	_, err := products.AdjustStock(ctx, productID, size, quantity)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		middleware.LoggerFromContext(ctx).Warn("Skipping stock restoration for missing product",
			slog.String("productId", productID.String()), slog.Int("quantity", quantity))

		return nil
	case errors.Is(err, models.ErrSizeNotFound),
		errors.Is(err, models.ErrSizeNotApplicable),
		errors.Is(err, models.ErrSizeRequired):
		middleware.LoggerFromContext(ctx).Warn("Skipping stock restoration for a size the product no longer offers",
			slog.String("productId", productID.String()), slog.String("size", size),
			slog.Int("quantity", quantity), slog.Any("error", err))

		return nil
	default:
		return stockError(err)
	}
}
