package sharefs

import (
	"context"
	"sync"
	"time"

	"github.com/marmos91/sharefs/internal/logger"
	"github.com/marmos91/sharefs/internal/telemetry"
	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Conn is a session to one share. All methods are safe for concurrent use;
// protocol requests on one Conn are serialized.
//
// If a method panics while it holds the session, the Conn is poisoned:
// every later call fails with ErrLockUnavailable and the Conn has to be
// replaced.
type Conn struct {
	mu       sync.Mutex
	session  smbclient.Session
	poisoned bool
	closed   bool

	root        string
	maxReadSize int64
	metrics     Metrics
}

// Option configures a Conn.
type Option func(*Conn)

// WithMaxReadSize caps the payload ReadFile will buffer. Zero or negative
// means no cap.
func WithMaxReadSize(n int64) Option {
	return func(c *Conn) { c.maxReadSize = n }
}

// WithMetrics installs m for per-operation observations.
func WithMetrics(m Metrics) Option {
	return func(c *Conn) {
		if m != nil {
			c.metrics = m
		}
	}
}

// Connect dials the share at address (`\\host\share`) and authenticates.
// username may be given as DOMAIN\user.
func Connect(ctx context.Context, dialer smbclient.Dialer, address, username, password string, opts ...Option) (*Conn, error) {
	addr, err := ParseShareAddress(address)
	if err != nil {
		return nil, err
	}

	domain, user := SplitUsername(username)
	ctx, span := telemetry.StartShareSpan(ctx, "connect", addr.Root(), "",
		telemetry.ShareHost(addr.Host), telemetry.Username(user), telemetry.Domain(domain))
	defer span.End()

	sess, err := dialer.Dial(ctx, addr, smbclient.Credentials{Username: user, Password: password, Domain: domain})
	if err != nil {
		telemetry.RecordError(ctx, err, telemetry.ErrorCode(ErrConnect.String()))
		logger.WarnCtx(ctx, "share connect failed", logger.Share(addr.Root()), logger.Username(user), logger.Err(err))
		return nil, newError(ErrConnect, "connect", address, err)
	}

	logger.DebugCtx(ctx, "share connected", logger.Share(sess.Root()), logger.Username(user))
	return NewConn(sess, opts...), nil
}

// NewConn wraps an established session.
func NewConn(sess smbclient.Session, opts ...Option) *Conn {
	c := &Conn{
		session: sess,
		root:    sess.Root(),
		metrics: noopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Root returns the \\host\share the Conn is bound to.
func (c *Conn) Root() string { return c.root }

// Close ends the session. Later calls fail with ErrLockUnavailable.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if err := c.session.Close(); err != nil {
		return newError(ErrConnect, "close", c.root, err)
	}
	return nil
}

// withSession runs fn with exclusive use of the session. If fn does not
// return, the Conn is poisoned and call is marked interrupted.
func (c *Conn) withSession(call *opCall, fn func(smbclient.Session) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.poisoned:
		return &Error{Code: ErrLockUnavailable, Op: call.op, Message: "connection poisoned by an earlier panic"}
	case c.closed:
		return &Error{Code: ErrLockUnavailable, Op: call.op, Message: "connection closed"}
	}

	completed := false
	defer func() {
		if !completed {
			c.poisoned = true
			call.interrupted = true
		}
	}()
	err := fn(c.session)
	completed = true
	return err
}

// opCall is one instrumented operation on a Conn.
type opCall struct {
	c     *Conn
	ctx   context.Context
	span  trace.Span
	op    string
	rel   string
	start time.Time

	// interrupted is set when the operation panicked while holding the
	// session.
	interrupted bool
}

// instrument opens a span for op. The returned call's finish records the
// outcome in the span, the metrics and the debug log.
func (c *Conn) instrument(ctx context.Context, op, rel string, attrs ...attribute.KeyValue) (context.Context, *opCall) {
	ctx, span := telemetry.StartShareSpan(ctx, op, c.root, rel, attrs...)
	ctx = logger.WithContext(ctx, logContext(ctx, op, c.root))
	return ctx, &opCall{c: c, ctx: ctx, span: span, op: op, rel: rel, start: time.Now()}
}

// finish records err as the outcome. An interrupted call is recorded as
// ErrLockUnavailable whatever err holds, since a panic leaves err unset.
func (call *opCall) finish(err error) {
	defer call.span.End()

	if call.interrupted {
		err = &Error{Code: ErrLockUnavailable, Op: call.op, Path: call.rel, Message: "operation panicked; connection poisoned"}
	}

	outcome := "ok"
	if err != nil {
		code := CodeOf(err)
		outcome = code.String()
		eattrs := []attribute.KeyValue{telemetry.ErrorCode(outcome)}
		if status, ok := StatusOf(err); ok {
			eattrs = append(eattrs, telemetry.NTStatus(uint32(status)))
		}
		telemetry.RecordError(call.ctx, err, eattrs...)
	}

	elapsed := time.Since(call.start)
	call.c.metrics.ObserveOperation(call.op, outcome, elapsed)
	logger.DebugCtx(call.ctx, "share operation",
		logger.Path(call.rel),
		logger.Outcome(outcome),
		logger.DurationMs(float64(elapsed.Microseconds())/1000.0),
		logger.Err(err))
}

// logContext derives the operation's LogContext from any request-scoped one
// already on ctx.
func logContext(ctx context.Context, op, root string) *logger.LogContext {
	lc := logger.FromContext(ctx)
	if lc == nil {
		lc = &logger.LogContext{StartTime: time.Now()}
	}
	return lc.WithOperation(op).WithShare(root).WithTrace(telemetry.TraceID(ctx), telemetry.SpanID(ctx))
}

// closeHandle releases h. Close failures after a completed operation do not
// change its outcome.
func closeHandle(ctx context.Context, h smbclient.Handle) {
	if err := h.Close(); err != nil {
		logger.DebugCtx(ctx, "handle close failed", logger.Err(err))
	}
}

func isCollision(err error) bool {
	status, ok := StatusOf(err)
	return ok && status == types.StatusObjectNameCollision
}
