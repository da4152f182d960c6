// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, path and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// StageSubmissionsTotal counts successful stage submissions by stage.
	StageSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stage_submissions_total",
			Help: "Total number of successful stage submissions",
		},
		[]string{"stage"},
	)

	// StageRejectionsTotal counts rejected stage submissions by stage.
	StageRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stage_rejections_total",
			Help: "Total number of rejected stage submissions",
		},
		[]string{"stage"},
	)
)
