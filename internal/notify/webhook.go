// Package notify delivers best-effort signup notifications to an
// operator-configured webhook, typically a mail or chat bridge.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	consts "github.com/headcheck/headcheck/internal/shared/constants"
	"github.com/headcheck/headcheck/internal/waitlist"
)

// WebhookNotifier POSTs signup events as JSON to a configured webhook URL.
type WebhookNotifier struct {
	webhookURL string
	client     *http.Client
	logger     *zap.Logger
}

// NewWebhookNotifier builds a notifier for webhookURL. An empty URL is valid
// and turns the notifier into a logged no-op.
func NewWebhookNotifier(webhookURL string, logger *zap.Logger) *WebhookNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: consts.WebhookTimeout},
		logger:     logger,
	}
}

// signupEvent is the webhook payload shape.
type signupEvent struct {
	Event     string    `json:"event"`
	Email     string    `json:"email"`
	SourceURL string    `json:"source_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NotifySignup delivers one signup event. The returned error is for the
// caller's log; signup handling never depends on it.
func (n *WebhookNotifier) NotifySignup(ctx context.Context, signup waitlist.Signup) error {
	if n.webhookURL == "" {
		n.logger.Debug("webhook URL not configured, skipping signup notification")
		return nil
	}

	payload, err := json.Marshal(signupEvent{
		Event:     "waitlist.signup",
		Email:     signup.Email,
		SourceURL: signup.SourceURL,
		CreatedAt: signup.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal signup event: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, consts.WebhookTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver signup event: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}

	n.logger.Info("signup notification delivered", zap.String("email", signup.Email))
	return nil
}
