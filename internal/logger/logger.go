// Package logger is the process-wide structured logger used by the CLI and
// the HTTP gateway. It wraps log/slog with a colored text handler, a JSON
// handler, and request-scoped fields carried in a LogContext.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// Config holds logger configuration
type Config struct {
	Level  string // DEBUG, INFO, WARN, ERROR
	Format string // text, json
	Output string // stdout, stderr, or file path
}

// sink is where records end up.
type sink struct {
	w      io.Writer
	closer io.Closer // open log file, if w is one
	color  bool
	format string
}

type state struct {
	sink   sink
	logger *slog.Logger
}

var (
	// level is shared by every handler built here, so level changes
	// apply without rebuilding anything.
	level = new(slog.LevelVar)

	mu      sync.Mutex // serializes sink swaps
	current atomic.Pointer[state]
)

func init() {
	install(sink{w: os.Stdout, color: isTerminal(os.Stdout.Fd()), format: "text"})
}

// install builds a logger for s and makes it current. Callers hold mu or run
// before any concurrent use.
func install(s sink) {
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if s.format == "json" {
		h = slog.NewJSONHandler(s.w, opts)
	} else {
		h = NewColorTextHandler(s.w, opts, s.color)
	}

	current.Store(&state{sink: s, logger: slog.New(contextHandler{h})})
}

// openSink resolves an Output value to a writer.
func openSink(output string) (sink, error) {
	switch strings.ToLower(output) {
	case "", "stdout":
		return sink{w: os.Stdout, color: isTerminal(os.Stdout.Fd())}, nil
	case "stderr":
		return sink{w: os.Stderr, color: isTerminal(os.Stderr.Fd())}, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return sink{}, fmt.Errorf("failed to open log file %q: %w", output, err)
	}
	return sink{w: f, closer: f}, nil
}

// Init applies cfg. Empty fields keep their current value, so Init may be
// called again with a reloaded configuration; a previously opened log file
// is closed once the new output is in place.
func Init(cfg Config) error {
	SetLevel(cfg.Level)

	mu.Lock()
	defer mu.Unlock()

	s := current.Load().sink
	old := s.closer
	if cfg.Output != "" {
		next, err := openSink(cfg.Output)
		if err != nil {
			return err
		}
		next.format = s.format
		s = next
	}
	if f, ok := parseFormat(cfg.Format); ok {
		s.format = f
	}
	install(s)

	if cfg.Output != "" && old != nil {
		_ = old.Close()
	}
	return nil
}

// InitWithWriter points the logger at w. Tests and embedders use it to
// capture output.
func InitWithWriter(w io.Writer, lvl, format string, enableColor bool) {
	SetLevel(lvl)

	mu.Lock()
	defer mu.Unlock()

	s := sink{w: w, color: enableColor, format: current.Load().sink.format}
	if f, ok := parseFormat(format); ok {
		s.format = f
	}
	install(s)
}

// SetLevel sets the minimum level. Unknown names are ignored.
func SetLevel(name string) {
	if l, ok := parseLevel(name); ok {
		level.Set(l)
	}
}

// SetFormat switches between "text" and "json". Unknown names are ignored.
func SetFormat(name string) {
	f, ok := parseFormat(name)
	if !ok {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	s := current.Load().sink
	if s.format == f {
		return
	}
	s.format = f
	install(s)
}

func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	}
	return 0, false
}

func parseFormat(name string) (string, bool) {
	switch f := strings.ToLower(name); f {
	case "text", "json":
		return f, true
	}
	return "", false
}

// Default returns the current logger.
func Default() *slog.Logger {
	return current.Load().logger
}

// With returns a logger with pre-bound fields.
func With(args ...any) *slog.Logger {
	return Default().With(args...)
}

func emit(ctx context.Context, l slog.Level, msg string, args []any) {
	if ctx == nil {
		ctx = context.Background()
	}
	if l < level.Level() {
		return
	}
	Default().Log(ctx, l, msg, args...)
}

// Debug logs at debug level: Debug("message", "key1", value1, ...)
func Debug(msg string, args ...any) { emit(context.Background(), slog.LevelDebug, msg, args) }

// Info logs at info level.
func Info(msg string, args ...any) { emit(context.Background(), slog.LevelInfo, msg, args) }

// Warn logs at warn level.
func Warn(msg string, args ...any) { emit(context.Background(), slog.LevelWarn, msg, args) }

// Error logs at error level.
func Error(msg string, args ...any) { emit(context.Background(), slog.LevelError, msg, args) }

// DebugCtx logs at debug level, adding the LogContext fields found in ctx.
func DebugCtx(ctx context.Context, msg string, args ...any) {
	emit(ctx, slog.LevelDebug, msg, args)
}

// InfoCtx logs at info level with context fields.
func InfoCtx(ctx context.Context, msg string, args ...any) {
	emit(ctx, slog.LevelInfo, msg, args)
}

// WarnCtx logs at warn level with context fields.
func WarnCtx(ctx context.Context, msg string, args ...any) {
	emit(ctx, slog.LevelWarn, msg, args)
}

// ErrorCtx logs at error level with context fields.
func ErrorCtx(ctx context.Context, msg string, args ...any) {
	emit(ctx, slog.LevelError, msg, args)
}

// contextHandler puts the LogContext fields of the record's context ahead
// of the record's own attributes.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	lc := FromContext(ctx)
	if lc == nil {
		return h.Handler.Handle(ctx, r)
	}

	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	out.AddAttrs(lc.attrs()...)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(a)
		return true
	})
	return h.Handler.Handle(ctx, out)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}
