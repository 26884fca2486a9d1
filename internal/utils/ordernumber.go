package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	hashids "github.com/speps/go-hashids/v2"
)

const orderNumberPrefix = "ORD-"

type OrderNumberer struct {
	h *hashids.HashID
}

func NewOrderNumberer(salt string, minLength int) (*OrderNumberer, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = minLength
	data.Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to init order number encoder: %w", err)
	}

	return &OrderNumberer{h: h}, nil
}

// Next derives a short, human friendly number from the order id and creation time.
func (o *OrderNumberer) Next(orderID uuid.UUID, at time.Time) (string, error) {
	encoded, err := o.h.EncodeInt64([]int64{at.UnixMilli(), int64(orderID.ID())})
	if err != nil {
		return "", fmt.Errorf("failed to encode order number: %w", err)
	}

	return orderNumberPrefix + encoded, nil
}

// Decode returns the creation time in unix millis and the id fragment of a number.
func (o *OrderNumberer) Decode(number string) ([]int64, error) {
	if len(number) <= len(orderNumberPrefix) || number[:len(orderNumberPrefix)] != orderNumberPrefix {
		return nil, fmt.Errorf("invalid order number %q", number)
	}

	return o.h.DecodeInt64WithError(number[len(orderNumberPrefix):])
}
