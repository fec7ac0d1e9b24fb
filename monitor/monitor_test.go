package monitor

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor_GameMetrics(t *testing.T) {
	m := NewMonitor("songquiz_test")

	m.SessionStarted("classic")
	m.SessionStarted("classic")
	m.SessionEnded("classic")
	m.RoundStarted()
	m.CorrectGuess(1)
	m.CorrectGuess(2)
	m.CorrectGuess(1)
	m.ObserveExp(350)
	m.ObserveGuessLatency(1200)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.metrics.ActiveSessions.WithLabelValues("classic")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.metrics.GamesStarted.WithLabelValues("classic")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.metrics.RoundsStarted))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.metrics.CorrectGuesses.WithLabelValues("1")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.metrics.ExpAwarded))
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	// two monitors must not collide on the default registry
	require.NotPanics(t, func() {
		NewMetrics("songquiz_a", prometheus.NewRegistry())
		NewMetrics("songquiz_a", prometheus.NewRegistry())
	})
}
