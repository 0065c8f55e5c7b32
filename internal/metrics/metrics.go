package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// once guards registration; the default registry panics on duplicates.
	once sync.Once

	// HTTPRequestsTotal counts finished requests by method, route pattern
	// and status. Route is the echo pattern, not the raw path, to keep
	// label cardinality bounded.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDurationSeconds observes request latency by method and
	// route pattern.
	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency distributions.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// StateOperations counts session-state loads and saves by operation
	// and outcome (ok, miss, corrupt, error).
	StateOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_state_operations_total",
			Help: "Session state store operations by outcome.",
		},
		[]string{"operation", "outcome"},
	)

	// CartMutations counts cart mutations by kind (add, update, remove, clear).
	CartMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Cart mutations by kind.",
		},
		[]string{"kind"},
	)
)

// Init registers the collectors with the default registry exactly once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			StateOperations,
			CartMutations,
		)
	})
}
