package metrics

import (
	"github.com/marmos91/sharefs/pkg/sharefs"
)

// newPrometheusShareMetrics is set by pkg/metrics/prometheus during package
// initialization. The indirection keeps this package free of the
// implementation import.
var newPrometheusShareMetrics func() sharefs.Metrics

// RegisterShareMetricsConstructor registers the Prometheus share metrics
// constructor.
func RegisterShareMetricsConstructor(constructor func() sharefs.Metrics) {
	newPrometheusShareMetrics = constructor
}

// NewShareMetrics returns the metrics sink for sharefs connections. It is
// a no-op unless the registry is initialized and the Prometheus package is
// linked in.
func NewShareMetrics() sharefs.Metrics {
	if !IsEnabled() || newPrometheusShareMetrics == nil {
		return sharefs.NoopMetrics()
	}
	return newPrometheusShareMetrics()
}
