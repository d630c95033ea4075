// Package metrics provides Prometheus metrics for the user directory client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userdir"

// Metrics holds all Prometheus collectors of the client.
type Metrics struct {
	// Cache metrics
	CacheLookups   *prometheus.CounterVec
	CacheEvictions prometheus.Counter

	// Upstream metrics
	UpstreamRequests        *prometheus.CounterVec
	UpstreamRequestDuration prometheus.Histogram
	UpstreamErrors          *prometheus.CounterVec
	PagesFetched            prometheus.Counter
}

// New registers the collectors on reg. A nil reg yields unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by resource and result (hit or miss)",
		}, []string{"resource", "result"}),
		CacheEvictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Expired cache entries removed by the janitor",
		}),
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Requests sent to the directory API by response code",
		}, []string{"code"}),
		UpstreamRequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Directory API request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		UpstreamErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_errors_total",
			Help:      "Failed directory API lookups by cause",
		}, []string{"cause"}),
		PagesFetched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "Listing pages fetched from the directory API",
		}),
	}
}

// NewNop returns collectors that are not registered anywhere.
func NewNop() *Metrics {
	return New(nil)
}

// CacheHit records a cache hit for resource.
func (m *Metrics) CacheHit(resource string) {
	m.CacheLookups.WithLabelValues(resource, "hit").Inc()
}

// CacheMiss records a cache miss for resource.
func (m *Metrics) CacheMiss(resource string) {
	m.CacheLookups.WithLabelValues(resource, "miss").Inc()
}
