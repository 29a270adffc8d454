// Package metrics provides Prometheus metrics collection for sharefs.
//
// Metrics are optional. Until InitRegistry is called every constructor
// returns a no-op implementation, so components pay nothing when metrics
// are disabled.
//
// Usage:
//
//	metrics.InitRegistry()
//	conn, err := sharefs.Connect(ctx, dialer, addr, user, pass,
//		sharefs.WithMetrics(metrics.NewShareMetrics()))
//
// The Prometheus implementations live in pkg/metrics/prometheus and
// register themselves on import.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	registry     *prometheus.Registry
	registryOnce sync.Once
)

// InitRegistry creates the global registry. Later calls are no-ops.
// Go runtime and process collectors are registered alongside the sharefs
// metrics.
func InitRegistry() {
	registryOnce.Do(func() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		registry = reg
	})
}

// GetRegistry returns the global registry, or nil when metrics are
// disabled.
func GetRegistry() *prometheus.Registry {
	return registry
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	return GetRegistry() != nil
}
