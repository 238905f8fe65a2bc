// internal/delivery/telegram/app/bot/formatters/rate.go
package formatters

import (
	"strings"
	"time"

	"euro-rate-bot/internal/core/domain/rates"
	"euro-rate-bot/internal/infrastructure/config"
)

const (
	placeholderBuy  = "{buy_rate}"
	placeholderSell = "{sell_rate}"
	placeholderTime = "{time}"

	defaultTimeLayout = "15:04:05"
)

// RateFormatter форматирует сообщения о курсе
type RateFormatter struct {
	template      string
	changedPrefix string
	unavailable   string
	timeLayout    string
}

// NewRateFormatter создает форматтер по шаблонам.
// Пустые значения заменяются значениями по умолчанию.
func NewRateFormatter(template, changedPrefix, unavailable, timeLayout string) *RateFormatter {
	if template == "" {
		template = config.DefaultRateMessage
	}
	if changedPrefix == "" {
		changedPrefix = config.DefaultChangedPrefix
	}
	if unavailable == "" {
		unavailable = config.DefaultUnavailableText
	}
	if timeLayout == "" {
		timeLayout = defaultTimeLayout
	}

	return &RateFormatter{
		template:      template,
		changedPrefix: changedPrefix,
		unavailable:   unavailable,
		timeLayout:    timeLayout,
	}
}

// NewRateFormatterFromConfig создает форматтер из конфигурации
func NewRateFormatterFromConfig(cfg *config.Config) *RateFormatter {
	return NewRateFormatter(
		cfg.Messages.RateTemplate,
		cfg.Messages.ChangedPrefix,
		cfg.Messages.Unavailable,
		cfg.Messages.TimeLayout,
	)
}

// Rate текст с текущим курсом. Цены выводятся в том виде, в каком
// сравниваются при поиске изменений, без округления.
func (f *RateFormatter) Rate(obs rates.Observation, at time.Time) string {
	return strings.NewReplacer(
		placeholderBuy, obs.Buy.String(),
		placeholderSell, obs.Sell.String(),
		placeholderTime, at.Format(f.timeLayout),
	).Replace(f.template)
}

// Changed уведомление об изменении курса для рассылки
func (f *RateFormatter) Changed(obs rates.Observation, at time.Time) string {
	return f.changedPrefix + f.Rate(obs, at)
}

// Unavailable текст для случая, когда курс получить не удалось
func (f *RateFormatter) Unavailable() string {
	return f.unavailable
}

// Reply текст ответа на запрос пользователя по результату опроса
func (f *RateFormatter) Reply(result rates.PollResult) string {
	if !result.Fetched() {
		return f.Unavailable()
	}
	return f.Rate(result.Observation, result.FetchedAt)
}

