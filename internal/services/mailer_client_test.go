package services

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

func TestMailerSend(t *testing.T) {
	var got map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/internal/send", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	mailer := NewMailerClient(server.URL, "no-reply@givehub.ph", zap.NewNop())

	err := mailer.Send(context.Background(), Email{
		To:      "donor@example.com",
		Subject: "Thank you",
		Body:    "We received your donation.",
	})
	require.NoError(t, err)

	assert.Equal(t, "no-reply@givehub.ph", got["from"])
	assert.Equal(t, "donor@example.com", got["to"])
	assert.Equal(t, "Thank you", got["subject"])
}

func TestMailerSend_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "smtp relay down", http.StatusBadGateway)
	}))
	defer server.Close()

	mailer := NewMailerClient(server.URL, "no-reply@givehub.ph", zap.NewNop())

	err := mailer.Send(context.Background(), Email{To: "donor@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
