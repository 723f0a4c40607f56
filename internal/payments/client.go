// Package payments is the HTTP client for the external payment provider.
// The provider is an opaque collaborator: the platform creates a checkout,
// the donor pays on the provider's page, and the provider reports back via
// the payments callback. Amounts cross the wire in centavos.
package payments

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(baseURL, secretKey string, log *zap.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

type CheckoutRequest struct {
	Amount      int64  `json:"amount"` // centavos
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Remarks     string `json:"remarks,omitempty"`
}

type Checkout struct {
	PaymentRef  string `json:"payment_ref"`
	CheckoutURL string `json:"checkout_url"`
	Status      string `json:"status"`
}

// CreateCheckout opens a payment session with the provider and returns the
// reference the callback will later carry.
func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	if req.Currency == "" {
		req.Currency = "PHP"
	}

	body, err := json.Marshal(map[string]any{
		"data": map[string]any{
			"attributes": map[string]any{
				"amount":      req.Amount,
				"currency":    req.Currency,
				"description": req.Description,
				"remarks":     req.Remarks,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/checkouts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment provider unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("payment provider returned %d: %s", resp.StatusCode, string(b))
	}

	var out struct {
		Data struct {
			ID         string `json:"id"`
			Attributes struct {
				CheckoutURL string `json:"checkout_url"`
				Status      string `json:"status"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	return &Checkout{
		PaymentRef:  out.Data.ID,
		CheckoutURL: out.Data.Attributes.CheckoutURL,
		Status:      out.Data.Attributes.Status,
	}, nil
}

type Payment struct {
	PaymentRef string `json:"payment_ref"`
	Amount     int64  `json:"amount"` // centavos
	Status     string `json:"status"` // paid / pending / failed
}

// GetPayment fetches the provider's view of a payment, used to re-verify
// callback claims before recording money.
func (c *Client) GetPayment(ctx context.Context, ref string) (*Payment, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/payments/%s", c.baseURL, ref), nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment provider unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("payment provider returned %d: %s", resp.StatusCode, string(b))
	}

	var out struct {
		Data struct {
			ID         string `json:"id"`
			Attributes struct {
				Amount int64  `json:"amount"`
				Status string `json:"status"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	return &Payment{
		PaymentRef: out.Data.ID,
		Amount:     out.Data.Attributes.Amount,
		Status:     out.Data.Attributes.Status,
	}, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization",
		"Basic "+base64.StdEncoding.EncodeToString([]byte(c.secretKey+":")))
}
