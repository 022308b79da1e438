package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all Prometheus metrics for the service.
type Registry struct {
	// HTTP metrics
	HTTPRequestsTotal   prometheus.CounterVec
	HTTPRequestDuration prometheus.HistogramVec

	// Cache metrics
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	// Business metrics
	MembershipResolutionsTotal  prometheus.CounterVec
	AffiliationTransitionsTotal prometheus.CounterVec
}

// NewRegistry initializes and returns a Registry with all metrics registered
// on the default registerer.
func NewRegistry() *Registry {
	return &Registry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "civichub_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "civichub_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"endpoint", "method"},
		),
		CacheHitsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civichub_membership_cache_hits_total",
			Help: "Membership state resolutions served from cache",
		}),
		CacheMissesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civichub_membership_cache_misses_total",
			Help: "Membership state resolutions that required data store reads",
		}),
		MembershipResolutionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "civichub_membership_resolutions_total",
				Help: "Membership state resolutions by resolved state",
			},
			[]string{"state"},
		),
		AffiliationTransitionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "civichub_affiliation_transitions_total",
				Help: "Affiliation request transitions by target status",
			},
			[]string{"status"},
		),
	}
}
