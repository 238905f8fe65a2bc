// internal/core/domain/rates/source.go
package rates

import (
	"context"
	"sync"
	"time"

	"euro-rate-bot/pkg/logger"

	"github.com/shopspring/decimal"
)

// Observer получает результат каждого опроса (метрики)
type Observer interface {
	ObservePoll(result PollResult)
}

// Source кэширует последнее успешное наблюдение и определяет изменение курса
type Source struct {
	fetcher   Fetcher
	threshold decimal.Decimal
	observer  Observer
	nowFn     func() time.Time

	mu   sync.Mutex
	last *Observation
}

// Option настройка Source
type Option func(*Source)

// WithThreshold задает порог изменения
func WithThreshold(threshold decimal.Decimal) Option {
	return func(s *Source) {
		s.threshold = threshold
	}
}

// WithObserver подключает наблюдателя за опросами
func WithObserver(observer Observer) Option {
	return func(s *Source) {
		s.observer = observer
	}
}

// WithClock подменяет источник времени
func WithClock(nowFn func() time.Time) Option {
	return func(s *Source) {
		s.nowFn = nowFn
	}
}

// NewSource создает источник курса без предыдущего наблюдения
func NewSource(fetcher Fetcher, opts ...Option) *Source {
	s := &Source{
		fetcher:   fetcher,
		threshold: DefaultThreshold,
		nowFn:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Poll запрашивает курс и сравнивает его с последним успешным наблюдением.
// Ошибка запроса не меняет кэш и возвращается как StatusUnavailable.
func (s *Source) Poll(ctx context.Context) PollResult {
	obs, err := s.fetcher.Fetch(ctx)
	if err != nil {
		logger.Warn("⚠️ Курс недоступен (%s): %v", ErrorKind(err), err)
		result := PollResult{Status: StatusUnavailable, Err: err}
		s.notify(result)
		return result
	}

	s.mu.Lock()
	changed := s.last != nil && obs.DiffersFrom(*s.last, s.threshold)
	current := obs
	s.last = &current
	s.mu.Unlock()

	result := PollResult{
		Status:      StatusFetched,
		Observation: obs,
		Changed:     changed,
		FetchedAt:   s.nowFn(),
	}

	logger.Info("✅ Получен курс: покупка %s, продажа %s", obs.Buy.String(), obs.Sell.String())
	if changed {
		logger.Info("📈 Обнаружено изменение курса!")
	}

	s.notify(result)
	return result
}

// Last возвращает последнее успешное наблюдение
func (s *Source) Last() (Observation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return Observation{}, false
	}
	return *s.last, true
}

// Threshold возвращает порог изменения
func (s *Source) Threshold() decimal.Decimal {
	return s.threshold
}

func (s *Source) notify(result PollResult) {
	if s.observer != nil {
		s.observer.ObservePoll(result)
	}
}
