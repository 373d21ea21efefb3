package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/maintenance-system/maintenance-service/internal/logs"
	"github.com/maintenance-system/maintenance-service/internal/model"
)

// Client pushes transitioned records to the maintenance panel webhook
// (best-effort, never blocks the API).
type Client struct {
	webhookURL string
	httpClient *http.Client
}

// NewClient returns a client. With an empty URL all calls are no-ops.
func NewClient(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Notify POSTs the record to the webhook.
func (c *Client) Notify(ctx context.Context, event string, m *model.MaintenanceRequest) {
	if c.webhookURL == "" || m == nil {
		return
	}
	payload := struct {
		Event   string                    `json:"event"`
		Request *model.MaintenanceRequest `json:"request"`
	}{Event: event, Request: m}
	body, err := json.Marshal(payload)
	if err != nil {
		logs.Logger.Warnf("notify: marshal: %v", err)
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		logs.Logger.Warnf("notify: new request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logs.Logger.Warnf("notify: request: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		logs.Logger.Warnf("notify: status %d for request %d", resp.StatusCode, m.ID)
	}
}

// NotifyAsync calls Notify in a goroutine with its own timeout.
func (c *Client) NotifyAsync(event string, m *model.MaintenanceRequest) {
	if c.webhookURL == "" || m == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Notify(ctx, event, m)
	}()
}
