package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Invocation metrics
	ExecuteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundrouter_execute_requests_total",
			Help: "Total number of ledger invocations",
		},
		[]string{"action", "status"},
	)

	ExecuteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fundrouter_execute_duration_seconds",
			Help:    "Ledger invocation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"action"},
	)

	// Deposit metrics
	Deposits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fundrouter_deposits_total",
		Help: "Total number of successful deposits",
	})

	RoutedAmount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundrouter_routed_amount_total",
			Help: "Amount routed per destination leg in base units (float approximation)",
		},
		[]string{"leg"},
	)

	DustAmount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fundrouter_dust_amount_total",
		Help: "Rounding remainder left unrouted by deposits in base units",
	})

	// Query metrics
	QueryRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundrouter_query_requests_total",
			Help: "Total number of read-only queries",
		},
		[]string{"query", "status"},
	)

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundrouter_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fundrouter_http_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fundrouter_rate_limited_total",
		Help: "Total number of requests rejected by the rate limiter",
	})
)
