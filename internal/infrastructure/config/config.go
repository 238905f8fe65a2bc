// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"euro-rate-bot/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// ============================================
// ЗНАЧЕНИЯ ПО УМОЛЧАНИЮ
// ============================================

const (
	DefaultTelegramAPIURL   = "https://api.telegram.org"
	DefaultRateSourceURL    = "https://ligovka.ru/detailed/eur"
	DefaultQuantityLabel    = "от 1"
	DefaultUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultUpdateInterval   = 600
	DefaultChangeThreshold  = "0.01"
	DefaultChangedPrefix    = "❗️ Обнаружено изменение курса!\n\n"
	DefaultUnavailableText  = "Извините, не удалось получить текущий курс евро."
	DefaultRateMessage      = "\n💶 Курс евро:\n\nПокупка: {buy_rate} ₽\nПродажа: {sell_rate} ₽\n\n🕒 Обновлено: {time}\n"
	DefaultLogFile          = "logs/euro_rate_bot.log"
	tokenRequiredValidation = "TELEGRAM_BOT_TOKEN is required"
)

// ============================================
// ОСНОВНАЯ КОНФИГУРАЦИЯ ПРИЛОЖЕНИЯ
// ============================================

// Config - основная структура конфигурации
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`

	// ======================
	// TELEGRAM
	// ======================
	Telegram struct {
		BotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
		APIURL   string `mapstructure:"TELEGRAM_API_URL"`
		// Чаты, которые получают рассылку с момента старта
		SeedChatIDs []int64 `mapstructure:"TELEGRAM_CHAT_ID"`
		ParseMode   string  `mapstructure:"TELEGRAM_PARSE_MODE"`
	} `mapstructure:",squash"`

	// ======================
	// POLLING КОНФИГУРАЦИЯ
	// ======================
	Polling struct {
		Timeout       int `mapstructure:"POLLING_TIMEOUT"`        // timeout в секундах
		Limit         int `mapstructure:"POLLING_LIMIT"`          // лимит обновлений
		RetryInterval int `mapstructure:"POLLING_RETRY_INTERVAL"` // интервал переподключения
	} `mapstructure:",squash"`

	// ======================
	// ОТПРАВКА СООБЩЕНИЙ
	// ======================
	Sender struct {
		MaxRetries int           `mapstructure:"SEND_MAX_RETRIES"`
		RetryWait  time.Duration `mapstructure:"SEND_RETRY_WAIT"`

		// Пауза между сообщениями при рассылке
		MinInterval time.Duration `mapstructure:"SEND_MIN_INTERVAL"`
	} `mapstructure:",squash"`

	// ======================
	// ИСТОЧНИК КУРСА
	// ======================
	RateSource struct {
		URL           string          `mapstructure:"RATE_SOURCE_URL"`
		Timeout       time.Duration   `mapstructure:"RATE_SOURCE_TIMEOUT"`
		QuantityLabel string          `mapstructure:"RATE_SOURCE_QUANTITY"`
		UserAgent     string          `mapstructure:"RATE_SOURCE_USER_AGENT"`
		Threshold     decimal.Decimal `mapstructure:"RATE_CHANGE_THRESHOLD"`
	} `mapstructure:",squash"`

	// ======================
	// РАСПИСАНИЕ
	// ======================
	UpdateInterval     int           `mapstructure:"UPDATE_INTERVAL"` // секунды
	UpdateInitialDelay time.Duration `mapstructure:"UPDATE_INITIAL_DELAY"`

	// ======================
	// ШАБЛОНЫ СООБЩЕНИЙ
	// ======================
	Messages struct {
		RateTemplate  string `mapstructure:"RATE_MESSAGE_TEMPLATE"`
		ChangedPrefix string `mapstructure:"RATE_CHANGED_PREFIX"`
		Unavailable   string `mapstructure:"RATE_UNAVAILABLE_MESSAGE"`
		TimeLayout    string `mapstructure:"RATE_TIME_LAYOUT"`
	} `mapstructure:",squash"`

	// ======================
	// ЛОГИРОВАНИЕ И МОНИТОРИНГ
	// ======================
	Logging struct {
		Level       string `mapstructure:"LOG_LEVEL"`
		File        string `mapstructure:"LOG_FILE"`
		ToFile      bool   `mapstructure:"LOG_TO_FILE,omitempty"`
		DebugMode   bool   `mapstructure:"DEBUG_MODE,omitempty"`
		HTTPEnabled bool   `mapstructure:"HTTP_ENABLED"`
		HTTPPort    int    `mapstructure:"HTTP_PORT"`
	} `mapstructure:",squash"`
}

// ============================================
// ЗАГРУЗКА КОНФИГУРАЦИИ
// ============================================

// LoadConfig загружает конфигурацию из .env файла и переменных окружения
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			fmt.Printf("⚠️  Config file not found, using environment variables\n")
		}
	}

	cfg := &Config{}

	cfg.Environment = getEnv("ENVIRONMENT", "production")
	cfg.Version = getEnv("VERSION", "1.0.0")

	// ======================
	// TELEGRAM
	// ======================
	cfg.Telegram.BotToken = strings.TrimSpace(getEnv("TELEGRAM_BOT_TOKEN", ""))
	cfg.Telegram.APIURL = strings.TrimRight(getEnv("TELEGRAM_API_URL", DefaultTelegramAPIURL), "/")
	cfg.Telegram.ParseMode = getEnv("TELEGRAM_PARSE_MODE", "")

	seeds, err := parseChatIDs(getEnv("TELEGRAM_CHAT_ID", ""))
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	cfg.Telegram.SeedChatIDs = seeds

	cfg.Polling.Timeout = getEnvInt("POLLING_TIMEOUT", 30)
	cfg.Polling.Limit = getEnvInt("POLLING_LIMIT", 100)
	cfg.Polling.RetryInterval = getEnvInt("POLLING_RETRY_INTERVAL", 5)

	cfg.Sender.MaxRetries = getEnvInt("SEND_MAX_RETRIES", 3)
	cfg.Sender.RetryWait = getEnvDuration("SEND_RETRY_WAIT", 5*time.Second)
	cfg.Sender.MinInterval = getEnvDuration("SEND_MIN_INTERVAL", 35*time.Millisecond)

	// ======================
	// ИСТОЧНИК КУРСА
	// ======================
	cfg.RateSource.URL = getEnv("RATE_SOURCE_URL", DefaultRateSourceURL)
	cfg.RateSource.Timeout = getEnvDuration("RATE_SOURCE_TIMEOUT", 10*time.Second)
	cfg.RateSource.QuantityLabel = getEnv("RATE_SOURCE_QUANTITY", DefaultQuantityLabel)
	cfg.RateSource.UserAgent = getEnv("RATE_SOURCE_USER_AGENT", DefaultUserAgent)
	cfg.RateSource.Threshold = getEnvDecimal("RATE_CHANGE_THRESHOLD", decimal.RequireFromString(DefaultChangeThreshold))

	cfg.UpdateInterval = getEnvInt("UPDATE_INTERVAL", DefaultUpdateInterval)
	cfg.UpdateInitialDelay = getEnvDuration("UPDATE_INITIAL_DELAY", time.Second)

	// ======================
	// ШАБЛОНЫ СООБЩЕНИЙ
	// ======================
	cfg.Messages.RateTemplate = unescapeNewlines(getEnv("RATE_MESSAGE_TEMPLATE", DefaultRateMessage))
	cfg.Messages.ChangedPrefix = unescapeNewlines(getEnv("RATE_CHANGED_PREFIX", DefaultChangedPrefix))
	cfg.Messages.Unavailable = getEnv("RATE_UNAVAILABLE_MESSAGE", DefaultUnavailableText)
	cfg.Messages.TimeLayout = getEnv("RATE_TIME_LAYOUT", "15:04:05")

	// ======================
	// ЛОГИРОВАНИЕ И МОНИТОРИНГ
	// ======================
	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")
	cfg.Logging.File = getEnv("LOG_FILE", DefaultLogFile)
	cfg.Logging.ToFile = getEnvBool("LOG_TO_FILE", false)
	cfg.Logging.DebugMode = getEnvBool("DEBUG_MODE", false)
	cfg.Logging.HTTPEnabled = getEnvBool("HTTP_ENABLED", false)
	cfg.Logging.HTTPPort = getEnvInt("HTTP_PORT", 8080)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// ============================================
// ВАЛИДАЦИЯ
// ============================================

// validate проверяет обязательные параметры конфигурации
func (c *Config) validate() error {
	var validationErrors []string

	if c.Telegram.BotToken == "" {
		validationErrors = append(validationErrors, tokenRequiredValidation)
	}
	if c.UpdateInterval <= 0 {
		validationErrors = append(validationErrors, "UPDATE_INTERVAL must be positive")
	}
	if c.UpdateInitialDelay < 0 {
		validationErrors = append(validationErrors, "UPDATE_INITIAL_DELAY must not be negative")
	}
	if c.RateSource.URL == "" {
		validationErrors = append(validationErrors, "RATE_SOURCE_URL is required")
	}
	if c.RateSource.Timeout <= 0 {
		validationErrors = append(validationErrors, "RATE_SOURCE_TIMEOUT must be positive")
	}
	if c.RateSource.Threshold.IsNegative() {
		validationErrors = append(validationErrors, "RATE_CHANGE_THRESHOLD must not be negative")
	}
	if c.Polling.Timeout < 0 {
		validationErrors = append(validationErrors, "POLLING_TIMEOUT must not be negative")
	}
	if c.Sender.MaxRetries < 0 {
		validationErrors = append(validationErrors, "SEND_MAX_RETRIES must not be negative")
	}
	if c.Sender.MinInterval < 0 {
		validationErrors = append(validationErrors, "SEND_MIN_INTERVAL must not be negative")
	}
	if c.Logging.HTTPEnabled && (c.Logging.HTTPPort <= 0 || c.Logging.HTTPPort > 65535) {
		validationErrors = append(validationErrors, "HTTP_PORT должен быть в диапазоне 1-65535")
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("%s", strings.Join(validationErrors, "; "))
	}

	return nil
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ МЕТОДЫ
// ============================================

// GetUpdateInterval возвращает период опроса источника курса
func (c *Config) GetUpdateInterval() time.Duration {
	return time.Duration(c.UpdateInterval) * time.Second
}

// GetBotAPIURL возвращает базовый URL методов Bot API (с завершающим /)
func (c *Config) GetBotAPIURL() string {
	return fmt.Sprintf("%s/bot%s/", c.Telegram.APIURL, c.Telegram.BotToken)
}

// MaskedToken возвращает токен для логов
func (c *Config) MaskedToken() string {
	token := c.Telegram.BotToken
	if len(token) > 10 {
		return token[:5] + "..." + token[len(token)-5:]
	}
	return strings.Repeat("*", len(token))
}

// PrintSummary выводит сводку конфигурации
func (c *Config) PrintSummary() {
	logger.Info("📋 Конфигурация приложения:")
	logger.Info("   • Окружение: %s (версия %s)", c.Environment, c.Version)
	logger.Info("   • Уровень логирования: %s", c.Logging.Level)
	logger.Info("   • Telegram Token: %s", c.MaskedToken())
	logger.Info("   • Стартовые чаты: %d", len(c.Telegram.SeedChatIDs))
	logger.Info("   • Источник курса: %s (таймаут %v)", c.RateSource.URL, c.RateSource.Timeout)
	logger.Info("   • Порог изменения: %s", c.RateSource.Threshold.String())
	logger.Info("   • Интервал обновления: %d сек (первый запуск через %v)", c.UpdateInterval, c.UpdateInitialDelay)
	logger.Info("   • Polling timeout: %d сек", c.Polling.Timeout)
	logger.Info("   • HTTP сервер: %v (порт: %d)", c.Logging.HTTPEnabled, c.Logging.HTTPPort)
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ ФУНКЦИИ
// ============================================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return defaultValue
}

// parseChatIDs разбирает список chat ID через запятую
func parseChatIDs(value string) ([]int64, error) {
	var result []int64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID: invalid chat id %q", part)
		}
		result = append(result, id)
	}
	return result, nil
}

// unescapeNewlines позволяет задавать шаблоны в .env одной строкой
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
