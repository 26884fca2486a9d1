package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrSizeNotFound      = errors.New("invalid size selected")
	ErrSizeRequired      = errors.New("a size must be selected for this product")
	ErrSizeNotApplicable = errors.New("product is not sold in sizes")
	ErrInvalidStock      = errors.New("invalid stock definition")
)

type StockKind string

const (
	StockFlat  StockKind = "flat"
	StockSized StockKind = "sized"
)

type Size struct {
	Label       string          `json:"label"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description,omitempty"`
}

// Stock is either a flat quantity/price pair or a list of size variants.
// Only the fields of the active Kind are meaningful.
type Stock struct {
	Kind     StockKind       `json:"kind"`
	Quantity int             `json:"quantity,omitempty"`
	Price    decimal.Decimal `json:"price,omitzero"`
	Sizes    []Size          `json:"sizes,omitempty"`
}

func NewFlatStock(quantity int, price decimal.Decimal) Stock {
	return Stock{Kind: StockFlat, Quantity: quantity, Price: price}
}

func NewSizedStock(sizes ...Size) Stock {
	return Stock{Kind: StockSized, Sizes: sizes}
}

func (s Stock) Validate() error {
	switch s.Kind {
	case StockFlat:
		if len(s.Sizes) > 0 {
			return fmt.Errorf("%w: flat stock cannot carry sizes", ErrInvalidStock)
		}

		if s.Quantity < 0 {
			return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidStock)
		}

		if !s.Price.IsPositive() {
			return fmt.Errorf("%w: price must be greater than 0", ErrInvalidStock)
		}

	case StockSized:
		if len(s.Sizes) == 0 {
			return fmt.Errorf("%w: at least one size is required", ErrInvalidStock)
		}

		if s.Quantity != 0 || !s.Price.IsZero() {
			return fmt.Errorf("%w: sized stock cannot carry a flat quantity or price", ErrInvalidStock)
		}

		seen := make(map[string]struct{}, len(s.Sizes))

		for _, size := range s.Sizes {
			label := strings.ToLower(size.Label)
			if label == "" {
				return fmt.Errorf("%w: size label is required", ErrInvalidStock)
			}

			if _, dup := seen[label]; dup {
				return fmt.Errorf("%w: duplicate size %q", ErrInvalidStock, size.Label)
			}

			seen[label] = struct{}{}

			if size.Quantity < 0 || !size.Price.IsPositive() {
				return fmt.Errorf("%w: size %q needs a positive price and a non-negative quantity", ErrInvalidStock, size.Label)
			}
		}

	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidStock, s.Kind)
	}

	return nil
}

func (s Stock) sizeIndex(size string) (int, error) {
	if s.Kind == StockFlat {
		if size != "" {
			return -1, ErrSizeNotApplicable
		}

		return -1, nil
	}

	if size == "" {
		return -1, ErrSizeRequired
	}

	for i := range s.Sizes {
		if strings.EqualFold(s.Sizes[i].Label, size) {
			return i, nil
		}
	}

	return -1, ErrSizeNotFound
}

// UnitPrice resolves the price of one unit for the given size ("" for flat products).
func (s Stock) UnitPrice(size string) (decimal.Decimal, error) {
	i, err := s.sizeIndex(size)
	if err != nil {
		return decimal.Zero, err
	}

	if i < 0 {
		return s.Price, nil
	}

	return s.Sizes[i].Price, nil
}

func (s Stock) Available(size string) (int, error) {
	i, err := s.sizeIndex(size)
	if err != nil {
		return 0, err
	}

	if i < 0 {
		return s.Quantity, nil
	}

	return s.Sizes[i].Quantity, nil
}

// Adjust applies a signed delta to the matching stock field.
// A result below zero leaves the stock untouched and returns ErrInsufficientStock.
func (s *Stock) Adjust(size string, delta int) error {
	i, err := s.sizeIndex(size)
	if err != nil {
		return err
	}

	target := &s.Quantity
	if i >= 0 {
		target = &s.Sizes[i].Quantity
	}

	if *target+delta < 0 {
		return ErrInsufficientStock
	}

	*target += delta

	return nil
}

func (s Stock) clone() Stock {
	out := s
	if s.Sizes != nil {
		out.Sizes = append([]Size(nil), s.Sizes...)
	}

	return out
}

type Product struct {
	ID            uuid.UUID `json:"id"`
	CategoryID    uuid.UUID `json:"category_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Images        []string  `json:"images"`
	Stock         Stock     `json:"stock"`
	AverageRating float64   `json:"average_rating"`
	TotalRating   int       `json:"total_rating"`
	RatingSum     int       `json:"-"`
	IsDeleted     bool      `json:"is_deleted"`
	Version       int       `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Clone returns a copy that does not share the size slice.
func (p *Product) Clone() *Product {
	out := *p
	out.Stock = p.Stock.clone()
	out.Images = append([]string(nil), p.Images...)

	return &out
}

type SizeRequest struct {
	Label       string          `json:"label" validate:"required,max=20"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Description string          `json:"description,omitempty" validate:"max=200"`
}

type ProductRequest struct {
	CategoryID   uuid.UUID        `json:"category_id" validate:"required"`
	Name         string           `json:"name" validate:"required,min=3,max=200"`
	Description  string           `json:"description" validate:"required,max=2000"`
	Images       []string         `json:"images,omitempty" validate:"omitempty,dive,url"`
	Quantity     *int             `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	DefaultPrice *decimal.Decimal `json:"default_price,omitempty"`
	Sizes        []SizeRequest    `json:"sizes,omitempty" validate:"omitempty,dive"`
}

// ToStock picks the stock variant described by the request. Mixing both shapes is rejected.
func (r *ProductRequest) ToStock() (Stock, error) {
	flat := r.Quantity != nil || r.DefaultPrice != nil

	switch {
	case len(r.Sizes) > 0 && flat:
		return Stock{}, fmt.Errorf("%w: provide either sizes or quantity and default_price, not both", ErrInvalidStock)

	case len(r.Sizes) > 0:
		sizes := make([]Size, 0, len(r.Sizes))
		for _, s := range r.Sizes {
			sizes = append(sizes, Size(s))
		}

		stock := NewSizedStock(sizes...)

		return stock, stock.Validate()

	case r.Quantity != nil && r.DefaultPrice != nil:
		stock := NewFlatStock(*r.Quantity, *r.DefaultPrice)

		return stock, stock.Validate()

	default:
		return Stock{}, fmt.Errorf("%w: quantity and default_price are required when no sizes are given", ErrInvalidStock)
	}
}

type UpdateStatusRequest struct {
	IsDeleted *bool `json:"is_deleted" validate:"required"`
}

type ProductImagesRequest struct {
	Images []string `json:"images" validate:"required,min=1,dive,url"`
}

type ProductsByCategoryRequest struct {
	CategoryIDs []uuid.UUID `json:"category_ids" validate:"required,min=1"`
}
