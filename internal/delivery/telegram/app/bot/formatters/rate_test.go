package formatters

import (
	"errors"
	"testing"
	"time"

	"euro-rate-bot/internal/core/domain/rates"

	"github.com/stretchr/testify/assert"
)

var at = time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC)

func TestRateFormatter_Rate(t *testing.T) {
	f := NewRateFormatter("", "", "", "")

	text := f.Rate(rates.NewObservation(92.15, 93.7), at)

	assert.Equal(t, "\n💶 Курс евро:\n\nПокупка: 92.15 ₽\nПродажа: 93.7 ₽\n\n🕒 Обновлено: 14:05:09\n", text)
}

func TestRateFormatter_Changed(t *testing.T) {
	f := NewRateFormatter("{buy_rate}/{sell_rate} @ {time}", "CHANGED ", "", "15:04")

	text := f.Changed(rates.NewObservation(5.1, 5.25), at)

	assert.Equal(t, "CHANGED 5.1/5.25 @ 14:05", text)
}

func TestRateFormatter_Reply(t *testing.T) {
	f := NewRateFormatter("{buy_rate}|{sell_rate}", "", "sorry", "")

	fetched := rates.PollResult{
		Status:      rates.StatusFetched,
		Observation: rates.NewObservation(1, 2),
		FetchedAt:   at,
	}
	unavailable := rates.PollResult{
		Status: rates.StatusUnavailable,
		Err:    errors.New("boom"),
	}

	assert.Equal(t, "1|2", f.Reply(fetched))
	assert.Equal(t, "sorry", f.Reply(unavailable))
	assert.NotContains(t, f.Reply(unavailable), "boom")
}

func TestRateFormatter_Defaults(t *testing.T) {
	f := NewRateFormatter("", "", "", "")

	assert.Equal(t, "Извините, не удалось получить текущий курс евро.", f.Unavailable())
	assert.Contains(t, f.Changed(rates.NewObservation(1, 2), at), "❗️ Обнаружено изменение курса!")
}

func TestRateFormatter_ShowsComparedValue(t *testing.T) {
	f := NewRateFormatter("{buy_rate}/{sell_rate}", "", "", "")

	assert.Equal(t, "5.009/5", f.Rate(rates.NewObservation(5.009, 5.000), at))
	assert.Equal(t, "98.5/99.1", f.Rate(rates.NewObservation(98.50, 99.10), at))
}
