package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MailerClient talks to the internal mail delivery service over HTTP. The
// notifier bridge is its only caller; API handlers never send mail inline.
type MailerClient struct {
	baseURL    string
	from       string
	httpClient *http.Client
	log        *zap.Logger
}

func NewMailerClient(baseURL, from string, log *zap.Logger) *MailerClient {
	return &MailerClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		from:    from,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (m *MailerClient) Send(ctx context.Context, email Email) error {
	body, err := json.Marshal(map[string]string{
		"from":    m.from,
		"to":      email.To,
		"subject": email.Subject,
		"body":    email.Body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		m.baseURL+"/internal/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailer unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mailer returned %d: %s", resp.StatusCode, string(b))
	}

	m.log.Debug("email sent", zap.String("to", email.To), zap.String("subject", email.Subject))
	return nil
}
