package telemetry

// Config selects what Init turns on. Tracing and profiling are independent:
// either can run without the other.
type Config struct {
	Enabled        bool   // export spans over OTLP
	ServiceName    string // service.name resource attribute
	ServiceVersion string // service.version resource attribute

	// Endpoint is the OTLP gRPC collector, host:port.
	Endpoint string
	Insecure bool

	// SampleRate is the fraction of root traces kept. Values at or above 1
	// keep everything; values at or below 0 keep nothing.
	SampleRate float64

	Profiling ProfilingConfig
}

// DefaultConfig returns the configuration used when nothing is set: tracing
// and profiling off, endpoints pointing at local collectors.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "sharefs",
		ServiceVersion: "dev",
		Endpoint:       "localhost:4317",
		Insecure:       true,
		SampleRate:     1.0,
		Profiling: ProfilingConfig{
			Endpoint:     "http://localhost:4040",
			ProfileTypes: []string{"cpu", "alloc_space", "inuse_space"},
		},
	}
}
