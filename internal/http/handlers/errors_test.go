package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/givehub/backend/internal/http/dto"
	"github.com/givehub/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRespondErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing entity is 404",
			err:        models.ErrCampaignNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   models.ErrCampaignNotFound.Error(),
		},
		{
			name:       "broken business rule is 400",
			err:        models.ErrFundingExceeded,
			wantStatus: http.StatusBadRequest,
			wantBody:   models.ErrFundingExceeded.Error(),
		},
		{
			name:       "wrapped validation failure is 400",
			err:        fmt.Errorf("%w: campaign name is required", models.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantBody:   "campaign name is required",
		},
		{
			name:       "raw connection failure is 500 without the driver message",
			err:        errors.New("read tcp 10.0.0.5:5432: connection reset by peer"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal error",
		},
		{
			name:       "wrapped infrastructure failure is 500",
			err:        fmt.Errorf("failed to open payment checkout: %w", errors.New("dial tcp: i/o timeout")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/boom", func(c *fiber.Ctx) error {
				return respondErr(c, zap.NewNop(), tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var out dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.Contains(t, out.Error, tt.wantBody)

			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, "internal error", out.Error, "internals must not leak to the client")
			}
		})
	}
}
