package metrics

import (
	"testing"
	"time"

	"euro-rate-bot/internal/core/domain/rates"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRateMetrics_ObservePoll(t *testing.T) {
	m := NewRateMetrics(prometheus.NewRegistry())

	m.ObservePoll(rates.PollResult{
		Status:      rates.StatusFetched,
		Observation: rates.NewObservation(92.15, 93.75),
		Changed:     true,
		FetchedAt:   time.Unix(1700000000, 0),
	})
	m.ObservePoll(rates.PollResult{Status: rates.StatusUnavailable})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PollsTotal.WithLabelValues("fetched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PollsTotal.WithLabelValues("unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateChangesTotal))
	assert.InDelta(t, 92.15, testutil.ToFloat64(m.Rate.WithLabelValues("buy")), 1e-9)
	assert.InDelta(t, 93.75, testutil.ToFloat64(m.Rate.WithLabelValues("sell")), 1e-9)
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(m.LastFetchTimestamp))
}

func TestRateMetrics_Deliveries(t *testing.T) {
	m := NewRateMetrics(prometheus.NewRegistry())

	m.ObserveDelivery(true)
	m.ObserveDelivery(true)
	m.ObserveDelivery(false)
	m.SetRecipients(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DeliveriesTotal.WithLabelValues(DeliveryOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DeliveriesTotal.WithLabelValues(DeliveryFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PrunedTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Recipients))
}

func TestRateMetrics_NilSafe(t *testing.T) {
	var m *RateMetrics

	assert.NotPanics(t, func() {
		m.ObservePoll(rates.PollResult{Status: rates.StatusFetched})
		m.ObserveDelivery(false)
		m.SetRecipients(1)
	})
}
