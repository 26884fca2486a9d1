package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/metrics"
)

// Remember returns the cached value for key, or calls load and stores its result for ttl.
// Cache failures are logged and bypassed; only load errors are returned.
func Remember[T any](ctx context.Context, c Cache, logger *slog.Logger, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T

	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Cache read failed, falling back to database", slog.String("key", key), slog.Any("error", err))
	}

	if found {
		metrics.RecordCacheLookup(true)
		logger.Debug("Cache hit", slog.String("key", key))

		return cached, nil
	}

	metrics.RecordCacheLookup(false)

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		logger.Warn("Cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return value, nil
}
