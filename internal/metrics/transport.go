// Package metrics holds the Prometheus collectors of the HTTP transport.
package metrics

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Transport Prometheus metrics.
var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "solrdex",
			Subsystem: "transport",
			Name:      "requests_total",
			Help:      "Total number of requests sent to the search server",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "solrdex",
			Subsystem: "transport",
			Name:      "request_duration_seconds",
			Help:      "Search server request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	ResponseBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "solrdex",
			Subsystem: "transport",
			Name:      "response_bytes_total",
			Help:      "Total response body bytes read from the search server",
		},
		[]string{"path"},
	)
)

// Register adds the transport collectors to reg. Registering twice is not an error.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{RequestsTotal, RequestDuration, ResponseBytes} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return fmt.Errorf("register transport metric: %w", err)
		}
	}
	return nil
}

// StatusLabel maps an HTTP status to a label value; 0 means no response was received.
func StatusLabel(code int) string {
	if code == 0 {
		return "error"
	}
	return strconv.Itoa(code)
}

// ObserveRequest records one finished request.
func ObserveRequest(method, path string, status int, seconds float64, bytes int) {
	RequestsTotal.WithLabelValues(method, path, StatusLabel(status)).Inc()
	RequestDuration.WithLabelValues(method, path).Observe(seconds)
	if bytes > 0 {
		ResponseBytes.WithLabelValues(path).Add(float64(bytes))
	}
}
