package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/givehub/backend/internal/config"
	"github.com/givehub/backend/internal/http/dto"
	"github.com/givehub/backend/internal/payments"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newCallbackApp wires a PaymentHandler against a fake provider. The
// donation service is nil on purpose: any test path that should stop
// before recording would panic loudly if it reached the service.
func newCallbackApp(t *testing.T, providerAmount int64, providerStatus string) (*fiber.App, *int) {
	t.Helper()

	providerCalls := 0
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		providerCalls++
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":{"id":"cs_test_123","attributes":{"amount":%d,"status":%q}}}`,
			providerAmount, providerStatus)
	}))
	t.Cleanup(provider.Close)

	client := payments.NewClient(provider.URL, "sk_test_secret", zap.NewNop())
	cfg := &config.Config{PaymentCallbackSecret: "cb_secret"}
	handler := NewPaymentHandler(nil, client, cfg, zap.NewNop())

	app := fiber.New()
	app.Post("/payments/callback", handler.Callback)
	return app, &providerCalls
}

func postCallback(t *testing.T, app *fiber.App, secret string, body dto.PaymentCallbackRequest) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/payments/callback", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Callback-Secret", secret)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCallback_RejectsWrongSecret(t *testing.T) {
	app, providerCalls := newCallbackApp(t, 100_000, "paid")

	resp := postCallback(t, app, "wrong", dto.PaymentCallbackRequest{
		PaymentRef: "cs_test_123",
		Status:     "paid",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, *providerCalls, "provider must not be consulted without a valid secret")
}

func TestCallback_IgnoresPaymentTheProviderSaysIsPending(t *testing.T) {
	// The webhook claims "paid" but the provider's own record says pending.
	// The provider wins: nothing is recorded, 200 stops the retries.
	app, providerCalls := newCallbackApp(t, 100_000, "pending")

	resp := postCallback(t, app, "cb_secret", dto.PaymentCallbackRequest{
		PaymentRef: "cs_test_123",
		Status:     "paid",
		Amount:     100_000,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, *providerCalls)

	var out dto.SuccessResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.OK)
	assert.Nil(t, out.Data, "an ignored callback carries no donation")
}

func TestCallback_RejectsAmountDisagreeingWithProvider(t *testing.T) {
	app, _ := newCallbackApp(t, 100_000, "paid")

	resp := postCallback(t, app, "cb_secret", dto.PaymentCallbackRequest{
		PaymentRef: "cs_test_123",
		Status:     "paid",
		Amount:     500_000, // inflated claim
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "does not match")
}

func TestCallback_ProviderDownIsServerError(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	provider.Close() // connection refused from here on

	client := payments.NewClient(provider.URL, "sk_test_secret", zap.NewNop())
	cfg := &config.Config{PaymentCallbackSecret: "cb_secret"}
	handler := NewPaymentHandler(nil, client, cfg, zap.NewNop())

	app := fiber.New()
	app.Post("/payments/callback", handler.Callback)

	resp := postCallback(t, app, "cb_secret", dto.PaymentCallbackRequest{
		PaymentRef: "cs_test_123",
		Status:     "paid",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "connection refused", "driver detail must not leak")
}
