package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "appsuite_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route", "status"},
	)

	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appsuite_requests_total",
			Help: "Total number of requests",
		},
		[]string{"method", "route", "status"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appsuite_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"limiter"},
	)

	// Shortener metrics
	URLsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appsuite_urls_created_total",
			Help: "Short URLs created",
		},
		[]string{"variant"}, // "anonymous" or "account"
	)

	CodeCollisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "appsuite_short_code_collisions_total",
			Help: "Generated short codes rejected because they were already taken",
		},
	)

	Redirects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appsuite_redirects_total",
			Help: "Redirect lookups by result",
		},
		[]string{"result"}, // "found" or "not_found"
	)

	// Cache metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appsuite_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"kind"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appsuite_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"kind"},
	)
)

// Variant returns the label used for a mapping owner.
func Variant(userID *string) string {
	if userID == nil {
		return "anonymous"
	}
	return "account"
}
