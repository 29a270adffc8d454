package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/marmos91/sharefs/internal/logger"
	"github.com/marmos91/sharefs/internal/telemetry"
	"github.com/marmos91/sharefs/pkg/metrics"
)

// RequestLogger logs each request, wraps it in a gateway span and records
// it in m. It must run after chi's RequestID and RealIP middleware.
//
// Health probes are logged at DEBUG to keep orchestrator polling out of
// the INFO stream.
func RequestLogger(m metrics.APIMetrics) func(http.Handler) http.Handler {
	if m == nil {
		m = metrics.NewNoopAPIMetrics()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lc := logger.NewLogContext(clientIP(r.RemoteAddr))
			lc.RequestID = chimw.GetReqID(r.Context())

			ctx, span := telemetry.StartGatewaySpan(r.Context(), r.URL.Path)
			defer span.End()
			lc = lc.WithTrace(telemetry.TraceID(ctx), telemetry.SpanID(ctx))
			ctx = logger.WithContext(ctx, lc)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			logger.DebugCtx(ctx, "API request started", logger.Method(r.Method), logger.Path(r.URL.Path))

			r = r.WithContext(ctx)
			next.ServeHTTP(ww, r)

			// The route pattern is only known once chi has matched the request.
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			span.SetName("gateway " + route)
			span.SetAttributes(telemetry.HTTPRoute(route))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(lc.StartTime)
			m.ObserveRequest(r.Method, route, status, elapsed)

			args := []any{
				logger.Method(r.Method),
				logger.Route(route),
				logger.HTTPStatus(status),
				logger.DurationMs(lc.DurationMs()),
				"bytes", ww.BytesWritten(),
			}
			switch {
			case isHealthPath(r.URL.Path):
				logger.DebugCtx(ctx, "API request completed", args...)
			case status >= http.StatusInternalServerError:
				logger.WarnCtx(ctx, "API request completed", args...)
			default:
				logger.InfoCtx(ctx, "API request completed", args...)
			}
		})
	}
}

func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/")
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
