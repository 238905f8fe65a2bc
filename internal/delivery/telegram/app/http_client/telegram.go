// internal/delivery/telegram/app/http_client/telegram.go
package http_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TelegramClient клиент для работы с Telegram API
type TelegramClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewTelegramClient создает новый клиент Telegram.
// baseURL вида https://api.telegram.org/bot<token>/
func NewTelegramClient(baseURL string) *TelegramClient {
	return &TelegramClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

// Call выполняет метод Bot API и раскладывает result в out (если out != nil)
func (c *TelegramClient) Call(ctx context.Context, method string, payload interface{}, out interface{}) error {
	return call(ctx, c.httpClient, c.baseURL, method, payload, out)
}

// SendMessage отправляет сообщение через Telegram API
func (c *TelegramClient) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	var msg Message
	if err := c.Call(ctx, "sendMessage", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SetMyCommands публикует меню команд бота
func (c *TelegramClient) SetMyCommands(ctx context.Context, commands []BotCommand) error {
	payload := map[string]interface{}{
		"commands": commands,
	}
	return c.Call(ctx, "setMyCommands", payload, nil)
}

// GetMe проверяет токен и возвращает профиль бота
func (c *TelegramClient) GetMe(ctx context.Context) (*User, error) {
	var me User
	if err := c.Call(ctx, "getMe", nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// DeleteWebhook снимает вебхук, чтобы заработал getUpdates
func (c *TelegramClient) DeleteWebhook(ctx context.Context, dropPendingUpdates bool) error {
	payload := map[string]interface{}{
		"drop_pending_updates": dropPendingUpdates,
	}
	return c.Call(ctx, "deleteWebhook", payload, nil)
}

// call общий POST JSON запрос к Bot API
func call(ctx context.Context, client *http.Client, baseURL, method string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+method, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return fmt.Errorf("failed to parse %s response (HTTP %d): %w", method, resp.StatusCode, err)
	}

	if !apiResp.OK {
		apiErr := &APIError{
			Method:      method,
			Code:        apiResp.ErrorCode,
			Description: apiResp.Description,
		}
		if apiErr.Code == 0 {
			apiErr.Code = resp.StatusCode
		}
		if apiResp.Parameters != nil {
			apiErr.RetryAfter = apiResp.Parameters.RetryAfter
		}
		return apiErr
	}

	if out != nil && len(apiResp.Result) > 0 {
		if err := json.Unmarshal(apiResp.Result, out); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", method, err)
		}
	}
	return nil
}
