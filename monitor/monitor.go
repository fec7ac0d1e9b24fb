// monitor/monitor.go
package monitor

import (
	"expvar"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wfunc/songquiz/logger"
)

type Metrics struct {
	OnlinePlayers  prometheus.Gauge
	ActiveSessions *prometheus.GaugeVec
	GamesStarted   *prometheus.CounterVec
	RoundsStarted  prometheus.Counter
	CorrectGuesses *prometheus.CounterVec
	ExpAwarded     prometheus.Histogram
	GuessLatency   prometheus.Histogram
	Messages       prometheus.Counter
}

// NewMetrics 创建指标并注册到 registerer
func NewMetrics(namespace string, registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		OnlinePlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online_players",
			Help:      "Number of connected players",
		}),
		ActiveSessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_games",
			Help:      "Number of running games by game type",
		}, []string{"game_type"}),
		GamesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Total number of games started by game type",
		}, []string{"game_type"}),
		RoundsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_started_total",
			Help:      "Total number of rounds started",
		}),
		CorrectGuesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "correct_guesses_total",
			Help:      "Total number of correct guesses by placement",
		}, []string{"place"}),
		ExpAwarded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "exp_awarded",
			Help:      "Exp awarded per correct guess",
			Buckets:   prometheus.ExponentialBuckets(10, 2, 12),
		}),
		GuessLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "guess_latency_seconds",
			Help:      "Time from round start to a correct guess",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 9),
		}),
		Messages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Total number of gateway messages received",
		}),
	}

	registerer.MustRegister(
		m.OnlinePlayers,
		m.ActiveSessions,
		m.GamesStarted,
		m.RoundsStarted,
		m.CorrectGuesses,
		m.ExpAwarded,
		m.GuessLatency,
		m.Messages,
	)

	return m
}

// Monitor 实现 game.Metrics，并提供 /metrics 服务
type Monitor struct {
	metrics      *Metrics
	registry     *prometheus.Registry
	startTime    time.Time
	requestCount int64
	mutex        sync.Mutex
}

func NewMonitor(namespace string) *Monitor {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	return &Monitor{
		metrics:   NewMetrics(namespace, registry),
		registry:  registry,
		startTime: time.Now(),
	}
}

// Handler serves the monitor's registry.
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Monitor) StartServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.Handle("/debug/vars", expvar.Handler())

	// 添加expvar指标
	expvar.Publish("uptime", expvar.Func(func() interface{} {
		return time.Since(m.startTime).Seconds()
	}))

	expvar.Publish("requests", expvar.Func(func() interface{} {
		m.mutex.Lock()
		defer m.mutex.Unlock()
		return m.requestCount
	}))

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			logger.Log.Errorf("metrics server stopped: %v", err)
		}
	}()
}

func (m *Monitor) IncOnlinePlayers() {
	m.metrics.OnlinePlayers.Inc()
}

func (m *Monitor) DecOnlinePlayers() {
	m.metrics.OnlinePlayers.Dec()
}

func (m *Monitor) IncMessagesReceived() {
	m.metrics.Messages.Inc()
	m.mutex.Lock()
	m.requestCount++
	m.mutex.Unlock()
}

func (m *Monitor) SessionStarted(gameType string) {
	m.metrics.GamesStarted.WithLabelValues(gameType).Inc()
	m.metrics.ActiveSessions.WithLabelValues(gameType).Inc()
}

func (m *Monitor) SessionEnded(gameType string) {
	m.metrics.ActiveSessions.WithLabelValues(gameType).Dec()
}

func (m *Monitor) RoundStarted() {
	m.metrics.RoundsStarted.Inc()
}

func (m *Monitor) CorrectGuess(place int) {
	m.metrics.CorrectGuesses.WithLabelValues(strconv.Itoa(place)).Inc()
}

func (m *Monitor) ObserveExp(exp int64) {
	m.metrics.ExpAwarded.Observe(float64(exp))
}

func (m *Monitor) ObserveGuessLatency(ms int64) {
	m.metrics.GuessLatency.Observe(float64(ms) / 1000)
}
