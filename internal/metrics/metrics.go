// Package metrics holds the dashboard's self-monitoring counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Backend API calls made by the dashboard
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "industrial_dashboard_upstream_requests_total",
			Help: "Total number of backend API requests by endpoint and outcome",
		},
		[]string{"method", "endpoint", "outcome"}, // outcome: ok/client_error/server_error/transport_error
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "industrial_dashboard_upstream_request_duration_seconds",
			Help:    "Backend API request duration in seconds, retries included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	UpstreamRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "industrial_dashboard_upstream_retries_total",
			Help: "Total number of backend API retry attempts",
		},
		[]string{"method"},
	)

	// Pages rendered for browsers
	PageRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "industrial_dashboard_page_renders_total",
			Help: "Total number of dashboard pages rendered",
		},
		[]string{"view", "result"}, // result: ok/degraded/error
	)

	AIQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "industrial_dashboard_ai_queries_total",
			Help: "Total number of AI assistant queries",
		},
		[]string{"result"},
	)

	ActiveWebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "industrial_dashboard_websocket_connections_active",
			Help: "Number of live-refresh websocket connections",
		},
	)
)
