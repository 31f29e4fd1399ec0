// Package metrics exposes Prometheus counters for bot commands.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "baitbot"

// Command outcomes used as the "outcome" label.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeCooldown = "cooldown"
	OutcomeError    = "error"
)

type Metrics struct {
	registry            *prometheus.Registry
	commands            *prometheus.CounterVec
	cooldownRejections  *prometheus.CounterVec
	persistenceFailures prometheus.Counter
	trackedUsers        prometheus.Gauge
}

// New registers the bot's collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands handled, by command and outcome.",
		}, []string{"command", "outcome"}),
		cooldownRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cooldown_rejections_total",
			Help:      "Attempts rejected by a cooldown window.",
		}, []string{"action"}),
		persistenceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_failures_total",
			Help:      "Ledger flushes that failed.",
		}),
		trackedUsers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tracked_users",
			Help:      "Users with a score entry.",
		}),
	}
	reg.MustRegister(m.commands, m.cooldownRejections, m.persistenceFailures, m.trackedUsers)
	return m
}

// All methods are safe on a nil *Metrics so callers can run without metrics.

func (m *Metrics) CommandHandled(command, outcome string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(command, outcome).Inc()
}

func (m *Metrics) CooldownRejected(action string) {
	if m == nil {
		return
	}
	m.cooldownRejections.WithLabelValues(action).Inc()
}

func (m *Metrics) PersistenceFailed() {
	if m == nil {
		return
	}
	m.persistenceFailures.Inc()
}

func (m *Metrics) SetTrackedUsers(n int) {
	if m == nil {
		return
	}
	m.trackedUsers.Set(float64(n))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// NewServer returns an HTTP server exposing /metrics on addr. The caller
// starts and shuts it down.
func (m *Metrics) NewServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
