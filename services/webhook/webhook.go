package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"taskpilot/models"
	"taskpilot/utils"

	"go.uber.org/zap"
)

// Deliverer sends a prepared message to a webhook endpoint. The boolean
// result is the whole contract: delivery either happened or it did not, and
// a failure must never abort the caller's loop.
type Deliverer interface {
	Deliver(ctx context.Context, endpointURL string, msg models.WebhookMessage) bool
}

// Client is the production Deliverer. One attempt per call, no retries;
// re-attempting on the next tick is the orchestrator's business.
type Client struct {
	http *http.Client
}

// NewClient creates a webhook client with a bounded request timeout so a
// stuck endpoint cannot stall the reminder scheduler.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// Deliver serializes the message and POSTs it to the endpoint. Any
// serialization failure, network error, or non-2xx response yields false.
func (c *Client) Deliver(ctx context.Context, endpointURL string, msg models.WebhookMessage) bool {
	logger := utils.GetLogger()

	body, err := json.Marshal(msg)
	if err != nil {
		logger.Error("webhook: failed to serialize message", zap.Error(err))
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(body))
	if err != nil {
		logger.Error("webhook: failed to build request", zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("webhook: delivery failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Warn("webhook: endpoint rejected message",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", detail))
		return false
	}

	return true
}
