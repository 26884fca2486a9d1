package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment is recorded only for intents that reached "succeeded".
type Payment struct {
	ID        uuid.UUID  `json:"id"`
	PaymentID string     `json:"payment_id"`
	UserID    uuid.UUID  `json:"user_id"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	Amount    int64      `json:"amount"`
	Currency  string     `json:"currency"`
	Status    string     `json:"status"`
	Customer  string     `json:"customer,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Amount is expressed in the currency's minor unit.
type CreatePaymentIntentRequest struct {
	Amount   int64      `json:"amount" validate:"required,gt=0"`
	Currency string     `json:"currency" validate:"required,len=3"`
	OrderID  *uuid.UUID `json:"order_id,omitempty"`
}

type PaymentIntentResponse struct {
	PaymentIntentID string   `json:"payment_intent_id"`
	ClientSecret    string   `json:"client_secret"`
	Status          string   `json:"status"`
	Payment         *Payment `json:"payment,omitempty"`
}
