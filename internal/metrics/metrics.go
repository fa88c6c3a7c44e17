// Package metrics exposes Prometheus collectors for the decision write path
// and the feed caches.
//
// Labels stay bounded:
//
//   - action:  liked | rejected
//   - outcome: changed | noop | policy | conflict | error
//   - cache:   hidden | match_count
//   - result:  hit | miss | error
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeChanged  = "changed"
	OutcomeNoop     = "noop"
	OutcomePolicy   = "policy"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"

	CacheHidden     = "hidden"
	CacheMatchCount = "match_count"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	decisions       *prometheus.CounterVec
	conflictRetries prometheus.Counter
	cacheLookups    *prometheus.CounterVec
	decisionLatency prometheus.Histogram
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "duo_decisions_total",
			Help: "Member actions by action and outcome.",
		}, []string{"action", "outcome"}),
		conflictRetries: f.NewCounter(prometheus.CounterOpts{
			Name: "duo_decision_conflict_retries_total",
			Help: "Optimistic write conflicts that triggered a retry.",
		}),
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "duo_cache_lookups_total",
			Help: "Feed cache lookups by cache and result.",
		}, []string{"cache", "result"}),
		decisionLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "duo_decision_duration_seconds",
			Help:    "Time to record one member action, retries included.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) ObserveDecision(action, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(action, outcome).Inc()
	m.decisionLatency.Observe(took.Seconds())
}

func (m *Metrics) ObserveConflictRetry() {
	if m == nil {
		return
	}
	m.conflictRetries.Inc()
}

// ObserveCache records a lookup. err wins over hit.
func (m *Metrics) ObserveCache(cache string, hit bool, err error) {
	if m == nil {
		return
	}
	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case hit:
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(cache, result).Inc()
}
