// Package metrics collects and exposes Prometheus metrics for the offer list front end.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector is what the service layer records into.
type MetricsCollector interface {
	RecordOfferFetch(result string, duration time.Duration)
	RecordCacheHit()
	RecordCacheMiss()
	RecordRefreshFailure()
}

// Fetch results.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Collector is the Prometheus implementation.
type Collector struct {
	offerFetches    *prometheus.CounterVec
	fetchLatency    prometheus.Histogram
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	refreshFailures prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		offerFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coderr_offer_fetch_total",
			Help: "Offer list fetches against the API, by result.",
		}, []string{"result"}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "coderr_offer_fetch_latency_seconds",
			Help:    "Latency of offer list fetches against the API.",
			Buckets: prometheus.DefBuckets,
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coderr_offer_cache_hits_total",
			Help: "Offer list pages served from the cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coderr_offer_cache_misses_total",
			Help: "Offer list pages not found in the cache.",
		}),
		refreshFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coderr_offer_list_refresh_failures_total",
			Help: "Offer list refreshes that ended in an error state.",
		}),
	}

	reg.MustRegister(
		c.offerFetches,
		c.fetchLatency,
		c.cacheHits,
		c.cacheMisses,
		c.refreshFailures,
	)

	return c
}

func (c *Collector) RecordOfferFetch(result string, duration time.Duration) {
	c.offerFetches.WithLabelValues(result).Inc()
	c.fetchLatency.Observe(duration.Seconds())
}

func (c *Collector) RecordCacheHit() {
	c.cacheHits.Inc()
}

func (c *Collector) RecordCacheMiss() {
	c.cacheMisses.Inc()
}

func (c *Collector) RecordRefreshFailure() {
	c.refreshFailures.Inc()
}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Noop discards everything. Used by the CLI and in tests.
type Noop struct{}

func (Noop) RecordOfferFetch(string, time.Duration) {}
func (Noop) RecordCacheHit()                        {}
func (Noop) RecordCacheMiss()                       {}
func (Noop) RecordRefreshFailure()                  {}
