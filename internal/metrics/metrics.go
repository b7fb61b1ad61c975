// Package metrics holds the Prometheus collectors for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "usersearch",
			Name:      "upstream_requests_total",
			Help:      "Upstream API calls by endpoint and classified outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "usersearch",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of upstream API calls.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "usersearch",
			Name:      "http_requests_total",
			Help:      "Inbound HTTP requests by method and status code.",
		},
		[]string{"method", "status"},
	)
)

// ObserveUpstream records one classified upstream call.
func ObserveUpstream(endpoint, outcome string, elapsed time.Duration) {
	upstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	upstreamRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveHTTP records one inbound HTTP request.
func ObserveHTTP(method string, status int) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
