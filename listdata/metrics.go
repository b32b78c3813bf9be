package listdata

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for prefetch and mutation counters.
const (
	OutcomeConfirmed  = "confirmed"
	OutcomeRolledBack = "rolled_back"
	OutcomeDropped    = "dropped"
	OutcomeWarmed     = "warmed"
	OutcomeSkipped    = "skipped"
	OutcomeFailed     = "failed"
	OutcomeStale      = "stale"
)

// Metrics tracks list data layer activity for Prometheus export. Every
// record method is safe on a nil receiver, so components can run unmetered
// when no registry is wired in.
type Metrics struct {
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	fetchSeconds  *prometheus.HistogramVec
	fetchErrors   *prometheus.CounterVec
	prefetchPages *prometheus.CounterVec
	mutations     *prometheus.CounterVec
}

// NewMetrics builds the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "testiq",
			Subsystem: "listdata",
			Name:      "cache_hits_total",
			Help:      "Page and stats reads served from the cache.",
		}, []string{"kind"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "testiq",
			Subsystem: "listdata",
			Name:      "cache_misses_total",
			Help:      "Page and stats reads that fell through to the provider.",
		}, []string{"kind"}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "testiq",
			Subsystem: "listdata",
			Name:      "invalidations_total",
			Help:      "Full cache drops, one per filter change or forced refresh.",
		}, []string{"kind"}),
		fetchSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "testiq",
			Subsystem: "listdata",
			Name:      "fetch_duration_seconds",
			Help:      "Latency of successful provider page fetches.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		fetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "testiq",
			Subsystem: "listdata",
			Name:      "fetch_errors_total",
			Help:      "Provider fetches that failed and surfaced to the caller.",
		}, []string{"kind"}),
		prefetchPages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "testiq",
			Subsystem: "listdata",
			Name:      "prefetch_pages_total",
			Help:      "Background page warming attempts by outcome.",
		}, []string{"kind", "outcome"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "testiq",
			Subsystem: "listdata",
			Name:      "mutations_total",
			Help:      "Optimistic mutations by outcome.",
		}, []string{"kind", "outcome"}),
	}

	reg.MustRegister(
		m.cacheHits,
		m.cacheMisses,
		m.invalidations,
		m.fetchSeconds,
		m.fetchErrors,
		m.prefetchPages,
		m.mutations,
	)

	return m
}

// RecordCacheHit records a read served from the cache.
func (m *Metrics) RecordCacheHit(kind string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(kind).Inc()
}

// RecordCacheMiss records a read that fell through to the provider.
func (m *Metrics) RecordCacheMiss(kind string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(kind).Inc()
}

// RecordInvalidation records a full cache drop.
func (m *Metrics) RecordInvalidation(kind string) {
	if m == nil {
		return
	}
	m.invalidations.WithLabelValues(kind).Inc()
}

// RecordFetch records the latency of a successful provider fetch.
func (m *Metrics) RecordFetch(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.fetchSeconds.WithLabelValues(kind).Observe(d.Seconds())
}

// RecordFetchError records a provider fetch that failed.
func (m *Metrics) RecordFetchError(kind string) {
	if m == nil {
		return
	}
	m.fetchErrors.WithLabelValues(kind).Inc()
}

// RecordPrefetch records one background warming attempt.
func (m *Metrics) RecordPrefetch(kind, outcome string) {
	if m == nil {
		return
	}
	m.prefetchPages.WithLabelValues(kind, outcome).Inc()
}

// RecordMutation records one settled optimistic mutation.
func (m *Metrics) RecordMutation(kind, outcome string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(kind, outcome).Inc()
}
