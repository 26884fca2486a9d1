package stripe_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	stripeclient "github.com/aaravmahajanofficial/storefront/pkg/stripe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) stripeclient.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(server.URL),
		MaxNetworkRetries: stripe.Int64(0),
	})

	return stripeclient.NewStripeClientWithBackends("sk_test_123", &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})
}

func TestCreatePaymentIntent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/payment_intents", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "4999", r.PostForm.Get("amount"))
			assert.Equal(t, "usd", r.PostForm.Get("currency"))
			assert.Equal(t, "card", r.PostForm.Get("payment_method_types[0]"))
			assert.Equal(t, "order-1", r.PostForm.Get("metadata[order_id]"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"pi_123","object":"payment_intent","amount":4999,"currency":"usd","status":"succeeded","client_secret":"pi_123_secret","customer":"cus_1"}`))
		})

		intent, err := client.CreatePaymentIntent(context.Background(), 4999, "usd", map[string]string{"order_id": "order-1"})

		require.NoError(t, err)
		assert.Equal(t, "pi_123", intent.ID)
		assert.Equal(t, "pi_123_secret", intent.ClientSecret)
		assert.Equal(t, stripeclient.StatusSucceeded, intent.Status)
		assert.Equal(t, int64(4999), intent.Amount)
		assert.Equal(t, "usd", intent.Currency)
		assert.Equal(t, "cus_1", intent.Customer)
	})

	t.Run("API error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"error":{"type":"card_error","message":"Your card was declined."}}`))
		})

		intent, err := client.CreatePaymentIntent(context.Background(), 100, "usd", nil)

		require.Error(t, err)
		assert.Nil(t, intent)
		assert.Contains(t, err.Error(), "create payment intent")
	})
}

func TestPing(t *testing.T) {
	t.Run("Reachable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/balance", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"object":"balance","available":[],"pending":[],"livemode":false}`))
		})

		assert.NoError(t, client.Ping(context.Background()))
	})

	t.Run("Unauthorized", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`))
		})

		assert.Error(t, client.Ping(context.Background()))
	})
}
