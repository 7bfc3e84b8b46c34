package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tanvirhs/resto/internal/config"
)

// Client delivers operational events (low-stock alerts, scheduled reports) to
// an external webhook.
type Client interface {
	Notify(ctx context.Context, event Event) error
}

// Event is the JSON payload posted to the webhook endpoint.
type Event struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Payload any    `json:"payload,omitempty"`
}

// Event types emitted by the application.
const (
	EventLowStock    = "low_stock"
	EventDailyReport = "daily_report"
)

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client from the notification configuration.
func NewClient(cfg config.NotifyConfig) *WebhookClient {
	restyClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	if cfg.AuthToken != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AuthToken))
	}

	return &WebhookClient{
		httpClient: restyClient,
		url:        cfg.WebhookURL,
	}
}

// Notify posts the event and treats any non-2xx response as a delivery error.
func (c *WebhookClient) Notify(ctx context.Context, event Event) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(event).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("deliver %s event: %w", event.Type, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("webhook rejected %s event: status=%d body=%s", event.Type, resp.StatusCode(), resp.String())
	}

	return nil
}

var _ Client = (*WebhookClient)(nil)
