package session

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	stageUser      = "user"
	stageSite      = "site"
	stageIdenticon = "identicon"
)

// Metrics are the session's Prometheus collectors.
type Metrics struct {
	derivations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	stale       prometheus.Counter
	coalesced   prometheus.Counter
	cached      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		derivations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spectre",
			Subsystem: "session",
			Name:      "derivations_total",
			Help:      "Derivations by stage and outcome.",
		}, []string{"stage", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "spectre",
			Subsystem: "session",
			Name:      "derivation_seconds",
			Help:      "Derivation latency by stage.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"stage"}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "spectre",
			Subsystem: "session",
			Name:      "stale_results_total",
			Help:      "Site results discarded because their identity was no longer current.",
		}),
		coalesced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "spectre",
			Subsystem: "session",
			Name:      "coalesced_requests_total",
			Help:      "Site requests answered by an identical in-flight derivation.",
		}),
		cached: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "spectre",
			Subsystem: "session",
			Name:      "cached_results",
			Help:      "Results cached for the current identity.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.derivations, m.duration, m.stale, m.coalesced, m.cached)
	}
	return m
}

func (m *Metrics) observe(stage string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.derivations.WithLabelValues(stage, outcome).Inc()
	m.duration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
