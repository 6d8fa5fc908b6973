package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records password generation activity. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	generated *prometheus.CounterVec
	failures  *prometheus.CounterVec
	length    prometheus.Histogram
	sessions  prometheus.Gauge
}

// New registers the generator metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		generated: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "passgen",
			Name:      "passwords_generated_total",
			Help:      "Total number of passwords generated.",
		}, []string{"digits", "symbols"}),
		failures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "passgen",
			Name:      "generation_failures_total",
			Help:      "Total number of rejected or failed generation requests.",
		}, []string{"reason"}),
		length: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: "passgen",
			Name:      "password_length",
			Help:      "Length of generated passwords.",
			Buckets:   []float64{6, 8, 12, 16, 24, 32, 64, 100, 256, 1024},
		}),
		sessions: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: "passgen",
			Name:      "active_sessions",
			Help:      "Number of generation sessions held in memory.",
		}),
	}
}

// ObserveGenerated records a successful generation.
func (m *Metrics) ObserveGenerated(length int, digits, symbols bool) {
	if m == nil {
		return
	}
	m.generated.WithLabelValues(strconv.FormatBool(digits), strconv.FormatBool(symbols)).Inc()
	m.length.Observe(float64(length))
}

// ObserveFailure records a rejected or failed generation.
func (m *Metrics) ObserveFailure(reason string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(reason).Inc()
}

// SessionOpened records a new session.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.sessions.Inc()
}

// SessionClosed records a session leaving memory, by deletion or eviction.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.sessions.Dec()
}
