package sharefs

import "time"

// Metrics receives per-operation observations from a Conn.
//
// Implementations must be safe for concurrent use. A nil Metrics passed to
// WithMetrics is replaced with a no-op.
type Metrics interface {
	// ObserveOperation records one completed operation. outcome is "ok" or
	// the ErrorCode tag of the failure.
	ObserveOperation(op, outcome string, duration time.Duration)

	// AddBytes records payload bytes moved by read_file and write_file.
	AddBytes(op string, n int)

	// SkippedEntries records directory entries dropped from a listing.
	SkippedEntries(n int)
}

type noopMetrics struct{}

func (noopMetrics) ObserveOperation(string, string, time.Duration) {}
func (noopMetrics) AddBytes(string, int)                           {}
func (noopMetrics) SkippedEntries(int)                             {}

// NoopMetrics returns a Metrics that discards everything.
func NoopMetrics() Metrics { return noopMetrics{} }
