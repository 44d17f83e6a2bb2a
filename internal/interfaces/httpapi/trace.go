package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer = otel.Tracer("tournament-registration/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())

	// Health and scrape endpoints stay out of traces.
	untracedPaths = map[string]struct{}{
		"/healthz": {},
		"/health":  {},
		"/livez":   {},
		"/readyz":  {},
		"/metrics": {},
	}
)

// RequestTracing opens the server span for every traced route.
func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "tournament-registration-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)
}

func shouldTraceRequest(path string) bool {
	_, skip := untracedPaths[strings.ToLower(strings.TrimSpace(path))]
	return !skip
}

// startSpan opens a child span for handlers only. Middleware and helpers pass the context
// through, and untraced requests never get a root span here.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !strings.HasPrefix(name, handlerSpanPrefix) {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}
