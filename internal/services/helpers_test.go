package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/pkg/stripe"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache stores JSON like the Redis cache does, so hits return decoded copies.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	hits    int
	misses  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, value any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.entries[key]
	if !ok {
		c.misses++

		return false, nil
	}

	c.hits++

	return true, json.Unmarshal(data, value)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[key] = data
	c.mu.Unlock()

	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	return nil
}

func (c *memoryCache) Close() error {
	return nil
}

type sentMail struct {
	kind  string
	to    string
	token string
}

// fakeMailer reports every delivery on a channel because mails go out asynchronously.
type fakeMailer struct {
	sent chan sentMail
	err  error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan sentMail, 4)}
}

func (m *fakeMailer) SendVerification(_ context.Context, to, _, token string) error {
	m.sent <- sentMail{kind: "verification", to: to, token: token}

	return m.err
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, to, _, token string) error {
	m.sent <- sentMail{kind: "password_reset", to: to, token: token}

	return m.err
}

func (m *fakeMailer) wait(t *testing.T) sentMail {
	t.Helper()

	select {
	case mail := <-m.sent:
		return mail
	case <-time.After(2 * time.Second):
		t.Fatal("expected an email to be sent")

		return sentMail{}
	}
}

type fakeStripe struct {
	intent   *stripe.PaymentIntent
	err      error
	calls    int
	metadata map[string]string
}

func (f *fakeStripe) CreatePaymentIntent(_ context.Context, _ int64, _ string, metadata map[string]string) (*stripe.PaymentIntent, error) {
	f.calls++
	f.metadata = metadata

	return f.intent, f.err
}

func (f *fakeStripe) Ping(context.Context) error {
	return f.err
}

func flatProduct(name string, price string, quantity int) *models.Product {
	return &models.Product{
		ID:    uuid.New(),
		Name:  name,
		Stock: models.NewFlatStock(quantity, decimal.RequireFromString(price)),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()

	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func requireAppError(t *testing.T, err error, code string, status int) *appErrors.AppError {
	t.Helper()

	require.Error(t, err)

	var appErr *appErrors.AppError
	require.True(t, errors.As(err, &appErr), "expected an AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, status, appErr.StatusCode)

	return appErr
}
