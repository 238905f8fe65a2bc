// internal/infrastructure/metrics/metrics.go
package metrics

import (
	"euro-rate-bot/internal/core/domain/rates"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "euro_rate_bot"

// Результаты доставки
const (
	DeliveryOK     = "ok"
	DeliveryFailed = "failed"
)

// RateMetrics метрики опроса курса и рассылки.
// Все методы безопасны для nil-получателя.
type RateMetrics struct {
	// Опросы источника по результату (fetched/unavailable)
	PollsTotal *prometheus.CounterVec
	// Обнаруженные изменения курса
	RateChangesTotal prometheus.Counter
	// Доставка сообщений по результату
	DeliveriesTotal *prometheus.CounterVec
	// Удаленные из рассылки получатели
	PrunedTotal prometheus.Counter
	// Текущее число получателей
	Recipients prometheus.Gauge
	// Последний курс по сторонам (buy/sell)
	Rate *prometheus.GaugeVec
	// Время последнего успешного опроса
	LastFetchTimestamp prometheus.Gauge
}

// NewRateMetrics регистрирует метрики в переданном реестре
func NewRateMetrics(reg prometheus.Registerer) *RateMetrics {
	factory := promauto.With(reg)

	return &RateMetrics{
		PollsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "polls_total",
				Help:      "Количество опросов источника курса",
			},
			[]string{"result"},
		),
		RateChangesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_changes_total",
				Help:      "Количество обнаруженных изменений курса",
			},
		),
		DeliveriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deliveries_total",
				Help:      "Отправленные уведомления по результату",
			},
			[]string{"result"},
		),
		PrunedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recipients_pruned_total",
				Help:      "Получатели, удаленные после неудачной доставки",
			},
		),
		Recipients: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "recipients",
				Help:      "Текущее количество получателей рассылки",
			},
		),
		Rate: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "eur_rub_rate",
				Help:      "Последний полученный курс EUR/RUB",
			},
			[]string{"side"},
		),
		LastFetchTimestamp: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_fetch_timestamp_seconds",
				Help:      "Unix-время последнего успешного опроса",
			},
		),
	}
}

// ObservePoll учитывает результат опроса источника
func (m *RateMetrics) ObservePoll(result rates.PollResult) {
	if m == nil {
		return
	}

	m.PollsTotal.WithLabelValues(string(result.Status)).Inc()
	if !result.Fetched() {
		return
	}

	buy, _ := result.Observation.Buy.Float64()
	sell, _ := result.Observation.Sell.Float64()
	m.Rate.WithLabelValues("buy").Set(buy)
	m.Rate.WithLabelValues("sell").Set(sell)
	m.LastFetchTimestamp.Set(float64(result.FetchedAt.Unix()))

	if result.Changed {
		m.RateChangesTotal.Inc()
	}
}

// ObserveDelivery учитывает одну попытку доставки
func (m *RateMetrics) ObserveDelivery(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.DeliveriesTotal.WithLabelValues(DeliveryOK).Inc()
		return
	}
	m.DeliveriesTotal.WithLabelValues(DeliveryFailed).Inc()
	m.PrunedTotal.Inc()
}

// SetRecipients обновляет число получателей
func (m *RateMetrics) SetRecipients(n int) {
	if m == nil {
		return
	}
	m.Recipients.Set(float64(n))
}

var _ rates.Observer = (*RateMetrics)(nil)
