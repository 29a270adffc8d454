// Package prometheus implements the pkg/metrics interfaces with
// client_golang. Importing it registers the constructors:
//
//	import _ "github.com/marmos91/sharefs/pkg/metrics/prometheus"
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/sharefs/pkg/metrics"
	"github.com/marmos91/sharefs/pkg/sharefs"
)

func init() {
	metrics.RegisterShareMetricsConstructor(NewShareMetrics)
	metrics.RegisterAPIMetricsConstructor(NewAPIMetrics)
}

// shareMetrics is the Prometheus implementation of sharefs.Metrics.
type shareMetrics struct {
	operations     *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	bytes          *prometheus.CounterVec
	skippedEntries prometheus.Counter
}

// NewShareMetrics returns Prometheus-backed share metrics registered on the
// global registry, or a no-op when metrics are disabled.
func NewShareMetrics() sharefs.Metrics {
	reg := metrics.GetRegistry()
	if reg == nil {
		return sharefs.NoopMetrics()
	}
	return NewShareMetricsWith(reg)
}

// NewShareMetricsWith registers the share metrics on reg.
func NewShareMetricsWith(reg prometheus.Registerer) sharefs.Metrics {
	return &shareMetrics{
		operations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sharefs_operations_total",
				Help: "Total number of share operations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		duration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "sharefs_operation_duration_seconds",
				Help: "Duration of share operations, including time spent waiting for the session",
				Buckets: []float64{
					0.001, // 1ms
					0.005,
					0.01,
					0.05,
					0.1,
					0.5,
					1,
					5,
					30, // large transfers
				},
			},
			[]string{"operation"},
		),
		bytes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sharefs_bytes_total",
				Help: "Total payload bytes moved by read_file and write_file",
			},
			[]string{"operation"},
		),
		skippedEntries: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "sharefs_list_skipped_entries_total",
				Help: "Directory entries dropped from listings because they could not be decoded",
			},
		),
	}
}

func (m *shareMetrics) ObserveOperation(op, outcome string, d time.Duration) {
	m.operations.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *shareMetrics) AddBytes(op string, n int) {
	if n > 0 {
		m.bytes.WithLabelValues(op).Add(float64(n))
	}
}

func (m *shareMetrics) SkippedEntries(n int) {
	if n > 0 {
		m.skippedEntries.Add(float64(n))
	}
}
