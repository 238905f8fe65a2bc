// internal/delivery/telegram/app/bot/message_sender/sender.go
package message_sender

import (
	"context"
	"errors"
	"fmt"
	"time"

	"euro-rate-bot/internal/delivery/telegram/app/http_client"
	"euro-rate-bot/internal/infrastructure/config"
	"euro-rate-bot/pkg/logger"

	"github.com/sethvargo/go-retry"
)

const (
	defaultMaxRetries = 3
	defaultRetryWait  = 5 * time.Second
)

// MessageSender интерфейс для отправки сообщений
type MessageSender interface {
	// Send отправляет текст с необязательной клавиатурой.
	// Ошибка всегда *DeliveryError.
	Send(ctx context.Context, chatID int64, text string, keyboard interface{}) error
}

// DeliveryError сообщение не доставлено конкретному чату
type DeliveryError struct {
	ChatID      int64
	Code        int // код Bot API, 0 для транспортных ошибок
	Description string
	Err         error
}

func (e *DeliveryError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("delivery to %d failed: %d %s", e.ChatID, e.Code, e.Description)
	}
	return fmt.Sprintf("delivery to %d failed: %v", e.ChatID, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Options настройки отправителя
type Options struct {
	ParseMode   string
	MaxRetries  int           // повторы после 429
	RetryWait   time.Duration // ожидание, если Telegram не прислал retry_after
	MinInterval time.Duration // пауза между отправками
}

// MessageSenderImpl реализация MessageSender поверх Bot API
type MessageSenderImpl struct {
	client      *http_client.TelegramClient
	parseMode   string
	maxRetries  int
	retryWait   time.Duration
	rateLimiter *RateLimiter
}

// NewMessageSender создает новый MessageSender
func NewMessageSender(client *http_client.TelegramClient, opts Options) *MessageSenderImpl {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = defaultRetryWait
	}

	return &MessageSenderImpl{
		client:      client,
		parseMode:   opts.ParseMode,
		maxRetries:  opts.MaxRetries,
		retryWait:   opts.RetryWait,
		rateLimiter: NewRateLimiter(opts.MinInterval),
	}
}

// NewMessageSenderFromConfig создает отправителя из конфигурации
func NewMessageSenderFromConfig(cfg *config.Config, client *http_client.TelegramClient) *MessageSenderImpl {
	return NewMessageSender(client, Options{
		ParseMode:   cfg.Telegram.ParseMode,
		MaxRetries:  cfg.Sender.MaxRetries,
		RetryWait:   cfg.Sender.RetryWait,
		MinInterval: cfg.Sender.MinInterval,
	})
}

// Send отправляет сообщение, повторяя попытку при 429 не больше maxRetries раз
func (ms *MessageSenderImpl) Send(ctx context.Context, chatID int64, text string, keyboard interface{}) error {
	request := http_client.SendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: ms.parseMode,
	}
	if keyboard != nil {
		request.ReplyMarkup = keyboard
	}

	var wait time.Duration
	backoff := retry.WithMaxRetries(uint64(ms.maxRetries), retry.BackoffFunc(func() (time.Duration, bool) {
		return wait, false
	}))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := ms.rateLimiter.Wait(ctx); err != nil {
			return err
		}

		_, err := ms.client.SendMessage(ctx, request)
		var apiErr *http_client.APIError
		if errors.As(err, &apiErr) && apiErr.TooManyRequests() {
			wait = ms.retryAfter(apiErr)
			logger.Warn("⚠️ Telegram API rate limit для %d, ждем %v", chatID, wait)
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return toDeliveryError(chatID, err)
	}

	logger.Debug("📤 Сообщение отправлено в %d (%d символов)", chatID, len([]rune(text)))
	return nil
}

// retryAfter время ожидания перед повтором
func (ms *MessageSenderImpl) retryAfter(apiErr *http_client.APIError) time.Duration {
	if apiErr.RetryAfter > 0 {
		return time.Duration(apiErr.RetryAfter) * time.Second
	}
	return ms.retryWait
}

var _ MessageSender = (*MessageSenderImpl)(nil)
