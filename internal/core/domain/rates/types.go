// internal/core/domain/rates/types.go
package rates

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultThreshold минимальная разница курса, которая считается изменением
var DefaultThreshold = decimal.RequireFromString("0.01")

// Observation пара курсов покупки/продажи, полученная за один успешный запрос
type Observation struct {
	Buy  decimal.Decimal `json:"buy"`
	Sell decimal.Decimal `json:"sell"`
}

// NewObservation создает наблюдение из float значений
func NewObservation(buy, sell float64) Observation {
	return Observation{
		Buy:  decimal.NewFromFloat(buy),
		Sell: decimal.NewFromFloat(sell),
	}
}

// Equal сравнивает наблюдения по значению
func (o Observation) Equal(other Observation) bool {
	return o.Buy.Equal(other.Buy) && o.Sell.Equal(other.Sell)
}

// DiffersFrom возвращает true, если хотя бы одна сторона изменилась на threshold и больше
func (o Observation) DiffersFrom(prev Observation, threshold decimal.Decimal) bool {
	return o.Buy.Sub(prev.Buy).Abs().GreaterThanOrEqual(threshold) ||
		o.Sell.Sub(prev.Sell).Abs().GreaterThanOrEqual(threshold)
}

// Status тип результата опроса
type Status string

const (
	StatusFetched     Status = "fetched"
	StatusUnavailable Status = "unavailable"
)

// PollResult результат одного опроса источника: Fetched или Unavailable
type PollResult struct {
	Status      Status
	Observation Observation // заполнено только для StatusFetched
	Changed     bool
	FetchedAt   time.Time
	Err         error // причина для StatusUnavailable
}

// Fetched возвращает true для успешного опроса
func (r PollResult) Fetched() bool {
	return r.Status == StatusFetched
}

// Fetcher получает текущую пару курсов из внешнего источника.
// Любая ошибка (сеть, таймаут, разметка) трактуется как Unavailable.
type Fetcher interface {
	Fetch(ctx context.Context) (Observation, error)
}

// KindError ошибка Fetcher, знающая свой вид (fetch, parse)
type KindError interface {
	error
	Kind() string
}

// ErrorKind возвращает вид ошибки получения курса или "unknown"
func ErrorKind(err error) string {
	var kinded KindError
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return "unknown"
}

// FetcherFunc функциональный адаптер Fetcher
type FetcherFunc func(ctx context.Context) (Observation, error)

func (f FetcherFunc) Fetch(ctx context.Context) (Observation, error) {
	return f(ctx)
}

// Poller то, что нужно рассылке и обработчику запросов от источника курса
type Poller interface {
	Poll(ctx context.Context) PollResult
}
