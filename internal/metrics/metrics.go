// Package metrics bundles Prometheus collectors for the deal pipeline on a
// dedicated registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the pipeline's collectors.
type Metrics struct {
	Registry        *prometheus.Registry
	FetchesTotal    *prometheus.CounterVec
	FetchDuration   prometheus.Histogram
	PricesExtracted prometheus.Counter
	CacheHitsTotal  prometheus.Counter
	DealsRanked     prometheus.Counter
	SearchesTotal   *prometheus.CounterVec
}

// New constructs and registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	fetches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfscan_fetches_total",
			Help: "Candidate page fetches by outcome.",
		},
		[]string{"outcome"},
	)
	fetchDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shelfscan_fetch_duration_seconds",
			Help:    "Candidate page fetch latency.",
			Buckets: prometheus.DefBuckets,
		},
	)
	pricesExtracted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shelfscan_prices_extracted_total",
			Help: "Candidate pages a price was successfully extracted from.",
		},
	)
	cacheHits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shelfscan_cache_hits_total",
			Help: "Deal lookups served entirely from the deal cache.",
		},
	)
	dealsRanked := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shelfscan_deals_ranked_total",
			Help: "Candidates that made it through dedup and ranking.",
		},
	)
	searches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfscan_searches_total",
			Help: "External search index calls by outcome.",
		},
		[]string{"outcome"},
	)

	registry.MustRegister(fetches, fetchDuration, pricesExtracted, cacheHits, dealsRanked, searches)

	return &Metrics{
		Registry:        registry,
		FetchesTotal:    fetches,
		FetchDuration:   fetchDuration,
		PricesExtracted: pricesExtracted,
		CacheHitsTotal:  cacheHits,
		DealsRanked:     dealsRanked,
		SearchesTotal:   searches,
	}
}

// IncFetch records one fetch with the given outcome ("ok", "error",
// "timeout", "no_price"). Safe on a nil receiver.
func (m *Metrics) IncFetch(outcome string) {
	if m == nil {
		return
	}
	m.FetchesTotal.WithLabelValues(outcome).Inc()
}

// ObserveFetch records a fetch duration. Safe on a nil receiver.
func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
}

// IncPriceExtracted records one successful price extraction. Safe on a nil
// receiver.
func (m *Metrics) IncPriceExtracted() {
	if m == nil {
		return
	}
	m.PricesExtracted.Inc()
}

// IncCacheHit records one cache-served lookup. Safe on a nil receiver.
func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

// AddDealsRanked records candidates surviving dedup/ranking. Safe on a nil
// receiver.
func (m *Metrics) AddDealsRanked(n int) {
	if m == nil {
		return
	}
	m.DealsRanked.Add(float64(n))
}

// IncSearch records one search-index call by outcome. Safe on a nil
// receiver.
func (m *Metrics) IncSearch(outcome string) {
	if m == nil {
		return
	}
	m.SearchesTotal.WithLabelValues(outcome).Inc()
}
