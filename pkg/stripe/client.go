package stripe

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

const (
	StatusSucceeded             = string(stripe.PaymentIntentStatusSucceeded)
	StatusRequiresPaymentMethod = string(stripe.PaymentIntentStatusRequiresPaymentMethod)
)

// PaymentIntent is the subset of a Stripe payment intent the checkout flow cares about.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	Currency     string
	Customer     string
}

// defines the methods that any payment client must implement.
type Client interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	Ping(ctx context.Context) error
}

type stripeClient struct {
	api *client.API
}

func NewStripeClient(apiKey string) Client {
	return NewStripeClientWithBackends(apiKey, nil)
}

// NewStripeClientWithBackends lets callers point the SDK at a different API host.
func NewStripeClientWithBackends(apiKey string, backends *stripe.Backends) Client {
	return &stripeClient{api: client.New(apiKey, backends)}
}

// PaymentIntent == "planned payment" waiting for the card details.
func (s *stripeClient) CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create payment intent: %w", err)
	}

	intent := &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}

	if pi.Customer != nil {
		intent.Customer = pi.Customer.ID
	}

	return intent, nil
}

// Ping reads the account balance, the cheapest authenticated call available.
func (s *stripeClient) Ping(ctx context.Context) error {
	params := &stripe.BalanceParams{}
	params.Context = ctx

	if _, err := s.api.Balance.Get(params); err != nil {
		return fmt.Errorf("stripe: balance probe: %w", err)
	}

	return nil
}
