package logger

import (
	"fmt"
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently so logs from the CLI and the gateway can be
// queried the same way.
const (
	// Distributed tracing
	KeyTraceID   = "trace_id"
	KeySpanID    = "span_id"
	KeyRequestID = "request_id"

	// Share & operation
	KeyOperation = "op"         // read_file, write_file, rename...
	KeyShare     = "share"      // \\host\share
	KeyHost      = "host"       // server host
	KeyPath      = "path"       // share-relative path as given
	KeyFrom      = "from"       // rename source
	KeyTo        = "to"         // rename destination
	KeyKind      = "kind"       // file, directory, not_found
	KeyReplace   = "replace"    // rename replace flag
	KeyStatus    = "status"     // NT_STATUS code
	KeyStatusMsg = "status_msg" // NT_STATUS name

	// Data
	KeySize    = "size"
	KeyEntries = "entries"
	KeySkipped = "skipped"
	KeyIndex   = "index" // position of an entry within a listing

	// Caller identification
	KeyClientIP = "client_ip"
	KeyUsername = "username"
	KeyDomain   = "domain"

	// Outcome
	KeyDurationMs = "duration_ms"
	KeyOutcome    = "outcome" // ok, error
	KeyError      = "error"
	KeyErrorCode  = "error_code" // sharefs error tag

	// Servers
	KeyAddress = "address"
	KeyRoute   = "route"
	KeyMethod  = "method"
	KeyHTTP    = "http_status"
)

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// RequestID returns a slog.Attr for a gateway request ID
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// Operation returns a slog.Attr for a share operation name
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Share returns a slog.Attr for the share root
func Share(root string) slog.Attr {
	return slog.String(KeyShare, root)
}

// Host returns a slog.Attr for a server host
func Host(host string) slog.Attr {
	return slog.String(KeyHost, host)
}

// Path returns a slog.Attr for a share-relative path
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// From returns a slog.Attr for a rename source
func From(p string) slog.Attr {
	return slog.String(KeyFrom, p)
}

// To returns a slog.Attr for a rename destination
func To(p string) slog.Attr {
	return slog.String(KeyTo, p)
}

// Kind returns a slog.Attr for a resource kind
func Kind(k fmt.Stringer) slog.Attr {
	return slog.String(KeyKind, k.String())
}

// Replace returns a slog.Attr for the rename replace flag
func Replace(replace bool) slog.Attr {
	return slog.Bool(KeyReplace, replace)
}

// Status returns a slog.Attr for an NT_STATUS code (formatted as hex)
func Status(code uint32) slog.Attr {
	return slog.String(KeyStatus, fmt.Sprintf("0x%08X", code))
}

// StatusMsg returns a slog.Attr for a human-readable status name
func StatusMsg(msg string) slog.Attr {
	return slog.String(KeyStatusMsg, msg)
}

// Size returns a slog.Attr for a byte count
func Size(n int64) slog.Attr {
	return slog.Int64(KeySize, n)
}

// Entries returns a slog.Attr for a listing length
func Entries(n int) slog.Attr {
	return slog.Int(KeyEntries, n)
}

// Skipped returns a slog.Attr for skipped listing entries
func Skipped(n int) slog.Attr {
	return slog.Int(KeySkipped, n)
}

// Index returns a slog.Attr for a listing entry position
func Index(i int) slog.Attr {
	return slog.Int(KeyIndex, i)
}

// ClientIP returns a slog.Attr for client IP address
func ClientIP(addr string) slog.Attr {
	return slog.String(KeyClientIP, addr)
}

// Username returns a slog.Attr for username
func Username(name string) slog.Attr {
	return slog.String(KeyUsername, name)
}

// Domain returns a slog.Attr for domain name
func Domain(name string) slog.Attr {
	return slog.String(KeyDomain, name)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Outcome returns a slog.Attr for an operation outcome
func Outcome(outcome string) slog.Attr {
	return slog.String(KeyOutcome, outcome)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns a slog.Attr for a sharefs error tag
func ErrorCode(code fmt.Stringer) slog.Attr {
	return slog.String(KeyErrorCode, code.String())
}

// Address returns a slog.Attr for a listen or dial address
func Address(addr string) slog.Attr {
	return slog.String(KeyAddress, addr)
}

// Route returns a slog.Attr for an HTTP route pattern
func Route(route string) slog.Attr {
	return slog.String(KeyRoute, route)
}

// Method returns a slog.Attr for an HTTP method
func Method(m string) slog.Attr {
	return slog.String(KeyMethod, m)
}

// HTTPStatus returns a slog.Attr for an HTTP response status
func HTTPStatus(code int) slog.Attr {
	return slog.Int(KeyHTTP, code)
}
