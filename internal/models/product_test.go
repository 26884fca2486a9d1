package models_test

import (
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockValidate(t *testing.T) {
	tests := []struct {
		name    string
		stock   models.Stock
		wantErr bool
	}{
		{name: "Flat ok", stock: models.NewFlatStock(5, dec("10"))},
		{name: "Sized ok", stock: models.NewSizedStock(models.Size{Label: "M", Price: dec("10"), Quantity: 1})},
		{name: "Flat zero price", stock: models.NewFlatStock(5, decimal.Zero), wantErr: true},
		{name: "Flat negative quantity", stock: models.NewFlatStock(-1, dec("10")), wantErr: true},
		{name: "Sized empty", stock: models.NewSizedStock(), wantErr: true},
		{
			name: "Sized duplicate label",
			stock: models.NewSizedStock(
				models.Size{Label: "M", Price: dec("10"), Quantity: 1},
				models.Size{Label: "m", Price: dec("11"), Quantity: 1},
			),
			wantErr: true,
		},
		{
			name: "Both shapes at once",
			stock: models.Stock{
				Kind:     models.StockSized,
				Quantity: 3,
				Sizes:    []models.Size{{Label: "M", Price: dec("10"), Quantity: 1}},
			},
			wantErr: true,
		},
		{name: "Unknown kind", stock: models.Stock{Kind: "mixed"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.stock.Validate()
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, models.ErrInvalidStock)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestStockUnitPrice(t *testing.T) {
	flat := models.NewFlatStock(5, dec("10"))
	sized := models.NewSizedStock(
		models.Size{Label: "M", Price: dec("20"), Quantity: 2},
		models.Size{Label: "L", Price: dec("25"), Quantity: 0},
	)

	price, err := flat.UnitPrice("")
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(price))

	_, err = flat.UnitPrice("M")
	assert.ErrorIs(t, err, models.ErrSizeNotApplicable)

	price, err = sized.UnitPrice("l")
	require.NoError(t, err)
	assert.True(t, dec("25").Equal(price))

	_, err = sized.UnitPrice("")
	assert.ErrorIs(t, err, models.ErrSizeRequired)

	_, err = sized.UnitPrice("XL")
	assert.ErrorIs(t, err, models.ErrSizeNotFound)
}

func TestStockAdjust(t *testing.T) {
	t.Run("Flat decrement and restore", func(t *testing.T) {
		stock := models.NewFlatStock(5, dec("10"))

		require.NoError(t, stock.Adjust("", -3))
		assert.Equal(t, 2, stock.Quantity)

		require.NoError(t, stock.Adjust("", 3))
		assert.Equal(t, 5, stock.Quantity)
	})

	t.Run("Flat insufficient leaves stock untouched", func(t *testing.T) {
		stock := models.NewFlatStock(2, dec("10"))

		err := stock.Adjust("", -3)

		assert.ErrorIs(t, err, models.ErrInsufficientStock)
		assert.Equal(t, 2, stock.Quantity)
	})

	t.Run("Sized only touches the named size", func(t *testing.T) {
		stock := models.NewSizedStock(
			models.Size{Label: "M", Price: dec("20"), Quantity: 2},
			models.Size{Label: "L", Price: dec("25"), Quantity: 4},
		)

		require.NoError(t, stock.Adjust("L", -4))

		available, err := stock.Available("L")
		require.NoError(t, err)
		assert.Equal(t, 0, available)
		assert.Equal(t, 2, stock.Sizes[0].Quantity)

		assert.ErrorIs(t, stock.Adjust("L", -1), models.ErrInsufficientStock)
	})
}

func TestProductRequestToStock(t *testing.T) {
	qty := 5
	price := dec("9.99")

	t.Run("Flat", func(t *testing.T) {
		req := &models.ProductRequest{Quantity: &qty, DefaultPrice: &price}

		stock, err := req.ToStock()

		require.NoError(t, err)
		assert.Equal(t, models.StockFlat, stock.Kind)
		assert.Equal(t, 5, stock.Quantity)
	})

	t.Run("Sized", func(t *testing.T) {
		req := &models.ProductRequest{Sizes: []models.SizeRequest{{Label: "S", Price: dec("5"), Quantity: 1}}}

		stock, err := req.ToStock()

		require.NoError(t, err)
		assert.Equal(t, models.StockSized, stock.Kind)
		require.Len(t, stock.Sizes, 1)
	})

	t.Run("Both shapes rejected", func(t *testing.T) {
		req := &models.ProductRequest{
			Quantity: &qty,
			Sizes:    []models.SizeRequest{{Label: "S", Price: dec("5"), Quantity: 1}},
		}

		_, err := req.ToStock()

		assert.ErrorIs(t, err, models.ErrInvalidStock)
	})

	t.Run("Neither shape rejected", func(t *testing.T) {
		_, err := (&models.ProductRequest{Quantity: &qty}).ToStock()

		assert.ErrorIs(t, err, models.ErrInvalidStock)
	})
}

func TestProductClone(t *testing.T) {
	original := &models.Product{
		Name:  "Shirt",
		Stock: models.NewSizedStock(models.Size{Label: "M", Price: dec("20"), Quantity: 2}),
	}

	clone := original.Clone()
	require.NoError(t, clone.Stock.Adjust("M", -1))

	assert.Equal(t, 2, original.Stock.Sizes[0].Quantity, "clone must not share sizes")
	assert.Equal(t, 1, clone.Stock.Sizes[0].Quantity)
}

func TestRatingAggregate(t *testing.T) {
	var agg models.RatingAggregate

	agg = agg.Replace(nil, 4)
	agg = agg.Replace(nil, 2)
	assert.Equal(t, 2, agg.Count)
	assert.InDelta(t, 3.0, agg.Average(), 0.0001)

	// Same user re-rates 5 -> 3: subtract old, add new.
	previous := 5
	agg = models.RatingAggregate{Sum: 11, Count: 3}.Replace(&previous, 3)
	assert.Equal(t, 3, agg.Count)
	assert.Equal(t, 9, agg.Sum)

	agg = models.RatingAggregate{Sum: 3, Count: 1}.Remove(3)
	assert.Equal(t, 0, agg.Count)
	assert.Zero(t, agg.Average(), "average of zero ratings is zero")
}

func TestListParamsNormalize(t *testing.T) {
	p := models.ListParams{Search: "  shirt ", Page: 0, PageSize: 500, SortOrder: "sideways"}.Normalize()

	assert.Equal(t, "shirt", p.Search)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, models.MaxPageSize, p.PageSize)
	assert.Equal(t, models.SortDesc, p.SortOrder)
	assert.Equal(t, 0, p.Offset())

	resp := models.NewPaginatedResponse([]string{"a"}, 21, models.ListParams{Page: 2, PageSize: 10})
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 2, resp.CurrentPage)
}
