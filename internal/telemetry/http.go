package telemetry

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// WrapHTTPTransport wraps transport with OTEL instrumentation, keeping its
// proxy and cookie settings. It returns transport unchanged when tracing is
// off.
func WrapHTTPTransport(transport http.RoundTripper) http.RoundTripper {
	if !IsEnabled() {
		return transport
	}
	if transport == nil {
		transport = http.DefaultTransport
	}

	return otelhttp.NewTransport(
		&sanitisedURLTransport{next: transport},
		otelhttp.WithTracerProvider(globalProvider()),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return SpanNameHTTPClient + " " + r.Method + " " + r.URL.Host + r.URL.Path
		}),
	)
}

// sanitisedURLTransport tags the active HTTP span with the redacted URL
type sanitisedURLTransport struct {
	next http.RoundTripper
}

func (t *sanitisedURLTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	span := trace.SpanFromContext(req.Context())
	if span.IsRecording() {
		span.SetAttributes(attribute.String(AttrURL, SanitiseURL(req.URL.String())))
	}
	return t.next.RoundTrip(req)
}

func globalProvider() trace.TracerProvider {
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	if globalTracerProvider == nil {
		return noop.NewTracerProvider()
	}
	return globalTracerProvider
}
