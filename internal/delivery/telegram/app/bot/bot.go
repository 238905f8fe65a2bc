// internal/delivery/telegram/app/bot/bot.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"euro-rate-bot/internal/delivery/telegram/app/bot/buttons"
	"euro-rate-bot/internal/delivery/telegram/app/bot/handlers"
	"euro-rate-bot/internal/delivery/telegram/app/bot/handlers/router"
	"euro-rate-bot/internal/delivery/telegram/app/bot/message_sender"
	telegram_http "euro-rate-bot/internal/delivery/telegram/app/http_client"
	"euro-rate-bot/internal/delivery/telegram/services/rate"
	"euro-rate-bot/internal/infrastructure/config"
	"euro-rate-bot/pkg/logger"
)

// TelegramBot - бот: принимает обновления и отвечает через MessageSender
type TelegramBot struct {
	config *config.Config

	// HTTP клиенты
	telegramClient *telegram_http.TelegramClient
	pollingClient  *telegram_http.PollingClient

	// MessageSender для отправки сообщений
	messageSender message_sender.MessageSender

	router router.Router

	// Polling handler
	pollingHandler *PollingClient

	mu       sync.RWMutex
	username string
}

// Dependencies зависимости для TelegramBot
type Dependencies struct {
	RateService    rate.Service
	MessageSender  message_sender.MessageSender
	TelegramClient *telegram_http.TelegramClient
}

// NewTelegramBot создает новый экземпляр TelegramBot
func NewTelegramBot(cfg *config.Config, deps *Dependencies) *TelegramBot {
	baseURL := cfg.GetBotAPIURL()

	telegramClient := deps.TelegramClient
	if telegramClient == nil {
		telegramClient = telegram_http.NewTelegramClient(baseURL)
	}
	pollingClient := telegram_http.NewPollingClient(baseURL, time.Duration(cfg.Polling.Timeout)*time.Second)

	ms := deps.MessageSender
	if ms == nil {
		ms = message_sender.NewMessageSenderFromConfig(cfg, telegramClient)
	}

	r := router.NewRouter()
	InitHandlers(r, deps.RateService)

	bot := &TelegramBot{
		config:         cfg,
		telegramClient: telegramClient,
		pollingClient:  pollingClient,
		messageSender:  ms,
		router:         r,
	}

	bot.pollingHandler = NewPollingClient(bot, PollingOptions{
		Timeout:       cfg.Polling.Timeout,
		Limit:         cfg.Polling.Limit,
		RetryInterval: time.Duration(cfg.Polling.RetryInterval) * time.Second,
	})

	return bot
}

// Prepare проверяет токен (getMe) и публикует меню команд.
// Ошибка getMe фатальна, ошибка меню только логируется.
func (b *TelegramBot) Prepare(ctx context.Context) error {
	me, err := b.telegramClient.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("telegram token check failed: %w", err)
	}

	b.mu.Lock()
	b.username = me.Username
	b.mu.Unlock()
	logger.Info("🤖 Бот авторизован: @%s (id %d)", me.Username, me.ID)

	if err := b.SetMyCommands(ctx); err != nil {
		logger.Warn("Не удалось установить меню команд: %v", err)
		logger.Info("Бот будет работать, но меню команд в Telegram может не отображаться")
	}
	return nil
}

// HandleUpdate обрабатывает одно обновление
func (b *TelegramBot) HandleUpdate(ctx context.Context, update telegram_http.Update) error {
	msg := update.Message
	if msg == nil || strings.TrimSpace(msg.Text) == "" {
		return nil // Игнорируем другие типы обновлений
	}

	key, args := b.routingKey(msg.Text)
	params := handlers.HandlerParams{
		ChatID:   msg.Chat.ID,
		Text:     msg.Text,
		Args:     args,
		UpdateID: update.UpdateID,
	}
	if msg.From != nil {
		params.UserID = msg.From.ID
		params.Username = msg.From.Username
	}

	result, err := b.router.Handle(ctx, key, params)
	if errors.Is(err, router.ErrNoHandler) {
		logger.Debug("Сообщение без хэндлера от %d: %q", msg.Chat.ID, msg.Text)
		return nil
	}
	if err != nil {
		return err
	}

	return b.messageSender.Send(ctx, msg.Chat.ID, result.Message, result.Keyboard)
}

// routingKey возвращает ключ роутера: "/команда" без @username или текст целиком
func (b *TelegramBot) routingKey(text string) (string, string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text, ""
	}

	command, args, _ := strings.Cut(text, " ")
	if name, mention, found := strings.Cut(command, "@"); found {
		b.mu.RLock()
		own := b.username
		b.mu.RUnlock()
		if own == "" || strings.EqualFold(mention, own) {
			command = name
		}
	}
	return command, strings.TrimSpace(args)
}

// SetMyCommands устанавливает меню команд в Telegram
func (b *TelegramBot) SetMyCommands(ctx context.Context) error {
	logger.Info("Установка меню команд в Telegram API")

	commands := buttons.NewButtonBuilder().CreateBotCommands()
	if err := b.telegramClient.SetMyCommands(ctx, commands); err != nil {
		return fmt.Errorf("ошибка настройки меню команд: %w", err)
	}

	for _, cmd := range commands {
		logger.Debug("   • /%s - %s", cmd.Command, cmd.Description)
	}
	return nil
}

// StartPolling запускает long polling до отмены ctx
func (b *TelegramBot) StartPolling(ctx context.Context) error {
	return b.pollingHandler.Start(ctx)
}

// StopPolling останавливает polling и ждет обработки текущих обновлений
func (b *TelegramBot) StopPolling() {
	b.pollingHandler.Stop()
}

// IsPolling true, пока работает цикл polling
func (b *TelegramBot) IsPolling() bool {
	return b.pollingHandler != nil && b.pollingHandler.IsRunning()
}

// GetPollingClient возвращает HTTP клиент long polling
func (b *TelegramBot) GetPollingClient() *telegram_http.PollingClient {
	return b.pollingClient
}
