package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"euro-rate-bot/internal/core/domain/rates"
	"euro-rate-bot/internal/core/domain/recipients"
	"euro-rate-bot/internal/delivery/telegram/app/bot/formatters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingGauge struct {
	last int
}

func (g *countingGauge) SetRecipients(n int) {
	g.last = n
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
}

func TestHandleQuery_FetchedRegistersAndReplies(t *testing.T) {
	source := rates.NewSource(rates.FetcherFunc(func(ctx context.Context) (rates.Observation, error) {
		return rates.NewObservation(92.15, 93.75), nil
	}), rates.WithClock(fixedClock))
	set := recipients.NewSet()
	gauge := &countingGauge{}
	svc := NewService(source, set, formatters.NewRateFormatter("{buy_rate}/{sell_rate} {time}", "", "", ""), gauge)

	reply := svc.HandleQuery(context.Background(), 42)

	assert.True(t, reply.Available)
	assert.True(t, reply.NewMember)
	assert.Equal(t, "92.15/93.75 09:30:00", reply.Text)
	require.Len(t, reply.Keyboard.Keyboard, 1)
	assert.Equal(t, "💶 Курс евро", reply.Keyboard.Keyboard[0][0].Text)
	assert.True(t, set.Contains(42))
	assert.Equal(t, 1, gauge.last)

	last, ok := source.Last()
	require.True(t, ok)
	assert.Equal(t, "92.15", last.Buy.String())
}

func TestHandleQuery_UnavailableStillRegisters(t *testing.T) {
	source := rates.NewSource(rates.FetcherFunc(func(ctx context.Context) (rates.Observation, error) {
		return rates.Observation{}, errors.New("connection refused")
	}))
	set := recipients.NewSet()
	svc := NewService(source, set, formatters.NewRateFormatter("", "", "sorry", ""), nil)

	reply := svc.HandleQuery(context.Background(), 7)

	assert.False(t, reply.Available)
	assert.Equal(t, "sorry", reply.Text)
	assert.NotEmpty(t, reply.Keyboard.Keyboard)
	assert.True(t, set.Contains(7))
}

func TestHandleQuery_RepeatedQueryIsIdempotent(t *testing.T) {
	source := rates.NewSource(rates.FetcherFunc(func(ctx context.Context) (rates.Observation, error) {
		return rates.NewObservation(1, 2), nil
	}))
	set := recipients.NewSet(5)
	svc := NewService(source, set, formatters.NewRateFormatter("", "", "", ""), nil)

	first := svc.HandleQuery(context.Background(), 5)
	second := svc.HandleQuery(context.Background(), 5)

	assert.False(t, first.NewMember)
	assert.False(t, second.NewMember)
	assert.Equal(t, 1, set.Len())
}

func TestHandleQuery_RefreshSuppressesLaterChange(t *testing.T) {
	values := []rates.Observation{
		rates.NewObservation(5.00, 5.20),
		rates.NewObservation(5.05, 5.20),
		rates.NewObservation(5.05, 5.20),
	}
	calls := 0
	source := rates.NewSource(rates.FetcherFunc(func(ctx context.Context) (rates.Observation, error) {
		v := values[calls]
		calls++
		return v, nil
	}))
	svc := NewService(source, recipients.NewSet(), formatters.NewRateFormatter("", "", "", ""), nil)

	require.False(t, source.Poll(context.Background()).Changed)
	svc.HandleQuery(context.Background(), 1)

	assert.False(t, source.Poll(context.Background()).Changed)
}
