package metrics

import "time"

// APIMetrics observes requests served by the HTTP gateway.
type APIMetrics interface {
	// ObserveRequest records one request. route is the matched pattern,
	// not the raw URL.
	ObserveRequest(method, route string, status int, duration time.Duration)
}

type noopAPIMetrics struct{}

func (noopAPIMetrics) ObserveRequest(string, string, int, time.Duration) {}

// NewNoopAPIMetrics returns an APIMetrics that discards everything.
func NewNoopAPIMetrics() APIMetrics { return noopAPIMetrics{} }

var newPrometheusAPIMetrics func() APIMetrics

// RegisterAPIMetricsConstructor registers the Prometheus gateway metrics
// constructor.
func RegisterAPIMetricsConstructor(constructor func() APIMetrics) {
	newPrometheusAPIMetrics = constructor
}

// NewAPIMetrics returns the gateway metrics sink, or a no-op when metrics
// are disabled.
func NewAPIMetrics() APIMetrics {
	if !IsEnabled() || newPrometheusAPIMetrics == nil {
		return NewNoopAPIMetrics()
	}
	return newPrometheusAPIMetrics()
}
