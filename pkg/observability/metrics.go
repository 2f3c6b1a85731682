// Package observability exposes Prometheus metrics for gateway calls.
// Metrics register on the default registry; embedding applications serve
// them however they already serve the rest of their metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "satim_gateway_requests_total",
			Help: "Total number of SATIM gateway requests",
		},
		[]string{"endpoint", "outcome"},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "satim_gateway_request_duration_seconds",
			Help:    "Duration of SATIM gateway requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// ObserveGatewayRequest records one completed gateway call. Outcome is
// "success" or the error kind that ended the call.
func ObserveGatewayRequest(endpoint, outcome string, duration time.Duration) {
	gatewayRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	gatewayRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
