package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheLookups counts cache reads by adapter mode and result (hit|miss|error).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_cache_lookups_total",
			Help: "Total number of cache lookups",
		},
		[]string{"mode", "result"},
	)

	// CacheWrites counts cache writes and invalidations by adapter mode and operation (set|invalidate).
	CacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_cache_writes_total",
			Help: "Total number of cache writes and invalidations",
		},
		[]string{"mode", "op"},
	)

	// ForecastsGenerated counts forecasts produced on a cache miss.
	ForecastsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weather_forecasts_generated_total",
			Help: "Total number of forecasts generated on cache miss",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weather_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
