package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateCheckout(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/checkouts", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"data": {
				"id": "cs_test_123",
				"attributes": {
					"checkout_url": "https://pay.example.com/cs_test_123",
					"status": "awaiting_payment"
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", zap.NewNop())

	checkout, err := client.CreateCheckout(context.Background(), CheckoutRequest{
		Amount:      100_000,
		Description: "Donation for campaign \"Test\"",
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", checkout.PaymentRef)
	assert.Equal(t, "https://pay.example.com/cs_test_123", checkout.CheckoutURL)
	assert.Equal(t, "awaiting_payment", checkout.Status)

	// Basic auth with the secret key
	assert.Contains(t, gotAuth, "Basic ")

	attrs := gotBody["data"].(map[string]any)["attributes"].(map[string]any)
	assert.Equal(t, float64(100_000), attrs["amount"])
	assert.Equal(t, "PHP", attrs["currency"]) // defaulted
}

func TestCreateCheckout_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":[{"detail":"amount below minimum"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", zap.NewNop())

	_, err := client.CreateCheckout(context.Background(), CheckoutRequest{Amount: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestGetPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/payments/pay_abc", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"id": "pay_abc",
				"attributes": {"amount": 250000, "status": "paid"}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", zap.NewNop())

	payment, err := client.GetPayment(context.Background(), "pay_abc")
	require.NoError(t, err)

	assert.Equal(t, "pay_abc", payment.PaymentRef)
	assert.Equal(t, int64(250_000), payment.Amount)
	assert.Equal(t, "paid", payment.Status)
}
