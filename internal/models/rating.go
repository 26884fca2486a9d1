package models

import (
	"time"

	"github.com/google/uuid"
)

type Rating struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Value     int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RatingRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
}

type DeleteRatingRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// RatingAggregate is the running (sum, count) pair kept on a product.
type RatingAggregate struct {
	Sum   int `json:"-"`
	Count int `json:"total_rating"`
}

// Replace swaps a previous value (nil for a first rating) for a new one.
func (a RatingAggregate) Replace(previous *int, value int) RatingAggregate {
	if previous != nil {
		a.Sum -= *previous
	} else {
		a.Count++
	}

	a.Sum += value

	return a
}

func (a RatingAggregate) Remove(value int) RatingAggregate {
	a.Sum -= value
	a.Count--

	if a.Count <= 0 {
		return RatingAggregate{}
	}

	return a
}

func (a RatingAggregate) Average() float64 {
	if a.Count <= 0 {
		return 0
	}

	return float64(a.Sum) / float64(a.Count)
}

type RatingSummary struct {
	ProductID     uuid.UUID `json:"product_id"`
	AverageRating float64   `json:"average_rating"`
	TotalRating   int       `json:"total_rating"`
	Rating        *Rating   `json:"rating,omitempty"`
}
