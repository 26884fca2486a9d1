package repository_test

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return db, mock
}

var productRowColumns = []string{
	"id", "category_id", "name", "description", "images", "stock", "rating_sum", "total_rating",
	"average_rating", "is_deleted", "version", "created_at", "updated_at",
}

func productRows(t *testing.T, products ...*models.Product) *sqlmock.Rows {
	t.Helper()

	rows := sqlmock.NewRows(productRowColumns)

	for _, p := range products {
		stockJSON, err := json.Marshal(p.Stock)
		require.NoError(t, err)

		images := "{}"
		if len(p.Images) > 0 {
			images = "{" + p.Images[0] + "}"
		}

		rows.AddRow(p.ID, p.CategoryID, p.Name, p.Description, images, stockJSON, p.RatingSum, p.TotalRating,
			p.AverageRating, p.IsDeleted, p.Version, p.CreatedAt, p.UpdatedAt)
	}

	return rows
}

func truncatedNow() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
