// Package metrics exposes Prometheus collectors for the API.
//
//	curl http://localhost:5000/metrics
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPRequestDuration observes request latency by route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "endpoint"},
	)

	// CacheHits counts result cache hits
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	// CacheMisses counts result cache misses
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	// DatasetRecords reports the loaded size of each dataset
	DatasetRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_records",
			Help: "Number of activity records loaded per dataset",
		},
		[]string{"dataset"},
	)

	// SpanningTreeNodes observes the unique coordinate count fed to the pathfinder
	SpanningTreeNodes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spanning_tree_nodes",
			Help:    "Unique coordinates per spanning tree build",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)
