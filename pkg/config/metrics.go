package config

import (
	"github.com/marmos91/sharefs/pkg/metrics"
	"github.com/marmos91/sharefs/pkg/sharefs"
)

// MetricsResult holds the metrics components built from configuration.
type MetricsResult struct {
	// Server exposes /metrics; nil when metrics are disabled.
	Server *metrics.Server

	// Share observes Conn operations. Never nil.
	Share sharefs.Metrics

	// API observes gateway requests. Never nil.
	API metrics.APIMetrics
}

// InitializeMetrics initializes the global registry when metrics are
// enabled and returns the sinks to hand to components. The Prometheus
// implementation must be linked in by importing pkg/metrics/prometheus.
func InitializeMetrics(cfg *Config) *MetricsResult {
	if !cfg.Metrics.Enabled {
		return &MetricsResult{
			Share: sharefs.NoopMetrics(),
			API:   metrics.NewNoopAPIMetrics(),
		}
	}

	metrics.InitRegistry()

	return &MetricsResult{
		Server: metrics.NewServer(metrics.ServerConfig{Port: cfg.Metrics.Port}),
		Share:  metrics.NewShareMetrics(),
		API:    metrics.NewAPIMetrics(),
	}
}
