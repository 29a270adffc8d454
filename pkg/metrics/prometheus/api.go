package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/sharefs/pkg/metrics"
)

type apiMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewAPIMetrics returns Prometheus-backed gateway metrics on the global
// registry, or a no-op when metrics are disabled.
func NewAPIMetrics() metrics.APIMetrics {
	reg := metrics.GetRegistry()
	if reg == nil {
		return metrics.NewNoopAPIMetrics()
	}
	return NewAPIMetricsWith(reg)
}

// NewAPIMetricsWith registers the gateway metrics on reg.
func NewAPIMetricsWith(reg prometheus.Registerer) metrics.APIMetrics {
	return &apiMetrics{
		requests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sharefs_api_requests_total",
				Help: "Total number of gateway requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		duration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sharefs_api_request_duration_seconds",
				Help:    "Duration of gateway requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (m *apiMetrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(d.Seconds())
}
