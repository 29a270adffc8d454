package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for share operations.
// These follow OpenTelemetry semantic conventions where applicable.
const (
	// Client attributes (HTTP gateway callers)
	AttrClientIP = "client.ip"
	AttrUsername = "enduser.id"

	// Share attributes
	AttrShareRoot   = "smb.share"       // \\host\share
	AttrShareHost   = "server.address"  // host part of the share address
	AttrDomain      = "smb.domain"      // NTLM domain
	AttrOperation   = "fs.operation"    // read_file, rm, rename...
	AttrPath        = "fs.path"         // share-relative path as given by the caller
	AttrRemotePath  = "fs.remote_path"  // resolved \\host\share\... path
	AttrTarget      = "fs.target"       // rename destination
	AttrKind        = "fs.kind"         // file, directory, not_found
	AttrSize        = "fs.size"         // payload or file size
	AttrEntries     = "fs.entries"      // listing length
	AttrSkipped     = "fs.skipped"      // undecodable listing entries
	AttrReplace     = "fs.replace"      // rename replace flag
	AttrNTStatus    = "smb.status"      // NT_STATUS code, hex
	AttrErrorCode   = "fs.error_code"   // sharefs error tag
	AttrHTTPRoute   = "http.route"      // gateway route pattern
	AttrOpenOptions = "smb.create_opts" // create options bitmask
)

// ClientIP returns an attribute for the caller's IP address.
func ClientIP(ip string) attribute.KeyValue {
	return attribute.String(AttrClientIP, ip)
}

// Username returns an attribute for the authenticated user.
func Username(name string) attribute.KeyValue {
	return attribute.String(AttrUsername, name)
}

// ShareRoot returns an attribute for the \\host\share identity.
func ShareRoot(root string) attribute.KeyValue {
	return attribute.String(AttrShareRoot, root)
}

// ShareHost returns an attribute for the server host.
func ShareHost(host string) attribute.KeyValue {
	return attribute.String(AttrShareHost, host)
}

// Domain returns an attribute for the NTLM domain.
func Domain(name string) attribute.KeyValue {
	return attribute.String(AttrDomain, name)
}

// Operation returns an attribute for the share operation name.
func Operation(op string) attribute.KeyValue {
	return attribute.String(AttrOperation, op)
}

// Path returns an attribute for the caller-supplied path.
func Path(p string) attribute.KeyValue {
	return attribute.String(AttrPath, p)
}

// RemotePath returns an attribute for the resolved UNC path.
func RemotePath(p string) attribute.KeyValue {
	return attribute.String(AttrRemotePath, p)
}

// Target returns an attribute for a rename destination.
func Target(p string) attribute.KeyValue {
	return attribute.String(AttrTarget, p)
}

// Kind returns an attribute for the resource kind.
func Kind(kind string) attribute.KeyValue {
	return attribute.String(AttrKind, kind)
}

// Size returns an attribute for a byte count.
func Size(n int64) attribute.KeyValue {
	return attribute.Int64(AttrSize, n)
}

// Entries returns an attribute for a listing length.
func Entries(n int) attribute.KeyValue {
	return attribute.Int(AttrEntries, n)
}

// Skipped returns an attribute for skipped listing entries.
func Skipped(n int) attribute.KeyValue {
	return attribute.Int(AttrSkipped, n)
}

// Replace returns an attribute for the rename replace flag.
func Replace(replace bool) attribute.KeyValue {
	return attribute.Bool(AttrReplace, replace)
}

// NTStatus returns an attribute for an NT_STATUS code, rendered as hex.
func NTStatus(status uint32) attribute.KeyValue {
	return attribute.String(AttrNTStatus, fmt.Sprintf("0x%08X", status))
}

// ErrorCode returns an attribute for a sharefs error tag.
func ErrorCode(code string) attribute.KeyValue {
	return attribute.String(AttrErrorCode, code)
}

// HTTPRoute returns an attribute for a gateway route pattern.
func HTTPRoute(route string) attribute.KeyValue {
	return attribute.String(AttrHTTPRoute, route)
}

// OpenOptions returns an attribute for SMB2 create options.
func OpenOptions(opts uint32) attribute.KeyValue {
	return attribute.String(AttrOpenOptions, fmt.Sprintf("0x%08X", opts))
}

// StartShareSpan starts a span for a share operation.
// This is a convenience function that sets common attributes.
func StartShareSpan(ctx context.Context, operation, root, path string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		Operation(operation),
		ShareRoot(root),
		Path(path),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "sharefs."+operation, trace.WithAttributes(allAttrs...))
}

// StartGatewaySpan starts a span for an HTTP gateway request.
func StartGatewaySpan(ctx context.Context, route string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{HTTPRoute(route)}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "gateway "+route, trace.WithAttributes(allAttrs...), trace.WithSpanKind(trace.SpanKindServer))
}
