package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/domain"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	AuditsTotal      prometheus.Counter
	AuditDuration    prometheus.Histogram
	LateItems        prometheus.Gauge
	UpcomingItems    prometheus.Gauge
	PendingTriggers  prometheus.Gauge
	TransitionsTotal *prometheus.CounterVec
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
// Using a custom registry (instead of prometheus.DefaultRegisterer) keeps
// tests isolated and avoids global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AuditsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_audits_total",
			Help: "Total number of schedule audits run.",
		}),

		AuditDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "schedule_audit_seconds",
			Help:    "Wall time of a full audit (snapshot + classify + inspect).",
			Buckets: prometheus.DefBuckets,
		}),

		LateItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "schedule_late_items",
			Help: "Number of late scheduled items found by the most recent audit.",
		}),
		UpcomingItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "schedule_upcoming_items",
			Help: "Number of upcoming scheduled items found by the most recent audit.",
		}),
		PendingTriggers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cron_pending_publish_triggers",
			Help: "Pending publish-trigger invocations observed in the deferred queue.",
		}),

		TransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_transitions_total",
			Help: "Applied transition attempts by kind and result.",
		}, []string{"kind", "result"}),
	}

	reg.MustRegister(
		m.AuditsTotal,
		m.AuditDuration,
		m.LateItems,
		m.UpcomingItems,
		m.PendingTriggers,
		m.TransitionsTotal,
	)

	return m
}

// AuditHook returns the callback fired after each audit run.
// Centralises the prometheus observation calls so the services stay
// import-free.
func (m *Metrics) AuditHook() func(late, upcoming, pendingTriggers int, elapsed time.Duration) {
	return func(late, upcoming, pendingTriggers int, elapsed time.Duration) {
		m.AuditsTotal.Inc()
		m.AuditDuration.Observe(elapsed.Seconds())
		m.LateItems.Set(float64(late))
		m.UpcomingItems.Set(float64(upcoming))
		m.PendingTriggers.Set(float64(pendingTriggers))
	}
}

// TransitionHook returns the callback fired after each transition attempt.
func (m *Metrics) TransitionHook() func(kind domain.TransitionKind, result domain.TransitionResult) {
	return func(kind domain.TransitionKind, result domain.TransitionResult) {
		m.TransitionsTotal.WithLabelValues(string(kind), string(result)).Inc()
	}
}
