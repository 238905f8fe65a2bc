// application/bootstrap/app_builder.go
package bootstrap

import (
	"errors"

	"euro-rate-bot/application/scheduler"
	"euro-rate-bot/application/services/notification"
	"euro-rate-bot/internal/core/domain/rates"
	"euro-rate-bot/internal/core/domain/recipients"
	"euro-rate-bot/internal/delivery/api"
	"euro-rate-bot/internal/delivery/telegram/app/bot"
	"euro-rate-bot/internal/delivery/telegram/app/bot/formatters"
	"euro-rate-bot/internal/delivery/telegram/app/bot/message_sender"
	telegram_http "euro-rate-bot/internal/delivery/telegram/app/http_client"
	"euro-rate-bot/internal/delivery/telegram/services/rate"
	"euro-rate-bot/internal/infrastructure/api/exchanges/ligovka"
	"euro-rate-bot/internal/infrastructure/config"
	"euro-rate-bot/internal/infrastructure/metrics"
	"euro-rate-bot/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// AppBuilder строит приложение
type AppBuilder struct {
	config   *config.Config
	fetcher  rates.Fetcher
	registry *prometheus.Registry
}

// NewAppBuilder создает построитель приложения
func NewAppBuilder() *AppBuilder {
	return &AppBuilder{}
}

// WithConfig задает конфигурацию
func (b *AppBuilder) WithConfig(cfg *config.Config) *AppBuilder {
	b.config = cfg
	return b
}

// WithFetcher подменяет источник страницы курса
func (b *AppBuilder) WithFetcher(fetcher rates.Fetcher) *AppBuilder {
	b.fetcher = fetcher
	return b
}

// WithRegistry задает реестр метрик
func (b *AppBuilder) WithRegistry(registry *prometheus.Registry) *AppBuilder {
	b.registry = registry
	return b
}

// Build собирает все компоненты
func (b *AppBuilder) Build() (*Application, error) {
	cfg := b.config
	if cfg == nil {
		return nil, errors.New("конфигурация не задана")
	}

	registry := b.registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	rateMetrics := metrics.NewRateMetrics(registry)

	// 1. Источник курса
	fetcher := b.fetcher
	if fetcher == nil {
		fetcher = ligovka.NewClientFromConfig(cfg)
	}
	source := rates.NewSource(fetcher,
		rates.WithThreshold(cfg.RateSource.Threshold),
		rates.WithObserver(rateMetrics),
	)

	// 2. Получатели
	seeds := make([]recipients.ID, 0, len(cfg.Telegram.SeedChatIDs))
	for _, id := range cfg.Telegram.SeedChatIDs {
		seeds = append(seeds, recipients.ID(id))
	}
	set := recipients.NewSet(seeds...)
	rateMetrics.SetRecipients(set.Len())

	// 3. Telegram
	telegramClient := telegram_http.NewTelegramClient(cfg.GetBotAPIURL())
	sender := message_sender.NewMessageSenderFromConfig(cfg, telegramClient)
	formatter := formatters.NewRateFormatterFromConfig(cfg)

	rateService := rate.NewService(source, set, formatter, rateMetrics)
	telegramBot := bot.NewTelegramBot(cfg, &bot.Dependencies{
		RateService:    rateService,
		MessageSender:  sender,
		TelegramClient: telegramClient,
	})

	// 4. Рассылка по расписанию
	notifier := notification.NewRateNotificationService(source, set, sender, formatter, rateMetrics)
	sched := scheduler.New()
	sched.Register(&scheduler.Job{
		Name:        RateUpdateJob,
		Description: "Проверка курса и рассылка при изменении",
		Schedule:    scheduler.Every(cfg.GetUpdateInterval()).After(cfg.UpdateInitialDelay),
		Handler:     notifier.Run,
	})

	app := &Application{
		source:      source,
		recipients:  set,
		registry:    registry,
		telegramBot: telegramBot,
		scheduler:   sched,
	}

	// 5. HTTP сервер статуса
	if cfg.Logging.HTTPEnabled {
		app.statusServer = api.NewServer(cfg.Logging.HTTPPort, api.Dependencies{
			Rates:      source,
			Recipients: set,
			Jobs:       sched,
			Gatherer:   registry,
			Version:    cfg.Version,
		})
	}

	logger.Info("🧩 Приложение собрано: %d стартовых получателей", set.Len())
	return app, nil
}
