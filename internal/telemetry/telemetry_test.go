package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// recordSpans installs an in-memory tracer for the duration of the test.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	setTracer(provider.Tracer("test"), true)
	t.Cleanup(func() {
		setTracer(nil, false)
		_ = provider.Shutdown(context.Background())
	})
	return rec
}

func attrMap(kvs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[string(kv.Key)] = kv.Value
	}
	return m
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "sharefs", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.ServiceVersion)
	assert.Equal(t, "localhost:4317", cfg.Endpoint)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 1.0, cfg.SampleRate)
	assert.False(t, cfg.Profiling.Enabled)
	assert.NotEmpty(t, cfg.Profiling.ProfileTypes)
}

func TestInitDisabled(t *testing.T) {
	ctx := context.Background()

	shutdown, err := Init(ctx, DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	assert.NoError(t, shutdown(ctx))
	assert.False(t, IsEnabled())
}

func TestInitRejectsUnknownProfileType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Profiling.Enabled = true
	cfg.Profiling.ProfileTypes = []string{"cpu", "heap_everything"}

	_, err := Init(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "heap_everything")
}

func TestResolveProfileTypes(t *testing.T) {
	types, err := resolveProfileTypes([]string{"CPU", " inuse_space ", "mutex_count"})
	require.NoError(t, err)
	assert.Equal(t, []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileInuseSpace,
		pyroscope.ProfileMutexCount,
	}, types)

	_, err = resolveProfileTypes([]string{"wall"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block_count")
}

func TestProfileTypeNamesSorted(t *testing.T) {
	names := ProfileTypeNames()
	assert.Len(t, names, len(profileTypes))
	assert.IsNonDecreasing(t, names)
}

func TestNewSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), newSampler(1).Description())
	assert.Equal(t, sdktrace.AlwaysSample().Description(), newSampler(2).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), newSampler(0).Description())
	assert.Contains(t, newSampler(0.25).Description(), "TraceIDRatioBased")
}

func TestTracerReturnsNoOp(t *testing.T) {
	setTracer(nil, false)

	tr := Tracer()
	require.NotNil(t, tr)

	_, span := tr.Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}

func TestStartShareSpan(t *testing.T) {
	rec := recordSpans(t)

	ctx, span := StartShareSpan(context.Background(), "rename", `\\files\docs`, "a/b.txt",
		Target("c.txt"), Replace(true))
	require.NotEmpty(t, TraceID(ctx))
	require.NotEmpty(t, SpanID(ctx))
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "sharefs.rename", spans[0].Name())

	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, "rename", attrs[AttrOperation].AsString())
	assert.Equal(t, `\\files\docs`, attrs[AttrShareRoot].AsString())
	assert.Equal(t, "a/b.txt", attrs[AttrPath].AsString())
	assert.Equal(t, "c.txt", attrs[AttrTarget].AsString())
	assert.True(t, attrs[AttrReplace].AsBool())
}

func TestStartGatewaySpan(t *testing.T) {
	rec := recordSpans(t)

	_, span := StartGatewaySpan(context.Background(), "/api/v1/fs/stat", ClientIP("10.0.0.7"))
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "gateway /api/v1/fs/stat", spans[0].Name())
	assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind())

	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, "/api/v1/fs/stat", attrs[AttrHTTPRoute].AsString())
	assert.Equal(t, "10.0.0.7", attrs[AttrClientIP].AsString())
}

func TestRecordError(t *testing.T) {
	rec := recordSpans(t)

	ctx, span := StartSpan(context.Background(), "op")
	RecordError(ctx, nil)
	RecordError(ctx, errors.New("boom"), ErrorCode("open_error"))
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
}

func TestAddEventAndSetAttributes(t *testing.T) {
	rec := recordSpans(t)

	ctx, span := StartSpan(context.Background(), "op")
	AddEvent(ctx, "entry.skipped", Path("broken"))
	SetAttributes(ctx, Entries(3), Skipped(1))
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "entry.skipped", spans[0].Events()[0].Name)

	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, int64(3), attrs[AttrEntries].AsInt64())
	assert.Equal(t, int64(1), attrs[AttrSkipped].AsInt64())
}

func TestIDsWithoutSpan(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceID(ctx))
	assert.Empty(t, SpanID(ctx))
}

func TestAttributeHelpers(t *testing.T) {
	tests := []struct {
		name string
		kv   attribute.KeyValue
		key  string
		want string
	}{
		{"share host", ShareHost("files"), AttrShareHost, "files"},
		{"domain", Domain("CORP"), AttrDomain, "CORP"},
		{"remote path", RemotePath(`\\files\docs\a`), AttrRemotePath, `\\files\docs\a`},
		{"kind", Kind("directory"), AttrKind, "directory"},
		{"status", NTStatus(0xC0000034), AttrNTStatus, "0xC0000034"},
		{"open options", OpenOptions(0x1040), AttrOpenOptions, "0x00001040"},
		{"username", Username("alice"), AttrUsername, "alice"},
		{"error code", ErrorCode("bad_path"), AttrErrorCode, "bad_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.key, string(tt.kv.Key))
			assert.Equal(t, tt.want, tt.kv.Value.AsString())
		})
	}

	assert.Equal(t, int64(42), Size(42).Value.AsInt64())
}
