// internal/delivery/telegram/app/http_client/polling.go
package http_client

import (
	"context"
	"net/http"
	"time"
)

// PollingClient клиент для long-polling запросов с увеличенным таймаутом
type PollingClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewPollingClient создает новый клиент для polling.
// HTTP таймаут должен быть больше timeout самого getUpdates.
func NewPollingClient(baseURL string, pollTimeout time.Duration) *PollingClient {
	return &PollingClient{
		httpClient: &http.Client{
			Timeout: pollTimeout + 5*time.Second,
		},
		baseURL: baseURL,
	}
}

// GetUpdates запрашивает обновления начиная с offset
func (c *PollingClient) GetUpdates(ctx context.Context, offset, timeoutSec, limit int) ([]Update, error) {
	payload := map[string]interface{}{
		"offset":          offset,
		"timeout":         timeoutSec,
		"allowed_updates": []string{"message"},
	}
	if limit > 0 {
		payload["limit"] = limit
	}

	var updates []Update
	if err := call(ctx, c.httpClient, c.baseURL, "getUpdates", payload, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}
