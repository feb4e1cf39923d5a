package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type contextKey string

const (
	invocationIDKey contextKey = "ddg.invocation.id"

	tracerName     = "ddg"
	maxQueryLength = 256
)

var (
	// globalMutex protects the tracer globals below
	globalMutex          sync.RWMutex
	globalTracer         trace.Tracer
	globalTracerProvider *sdktrace.TracerProvider
	tracingEnabled       bool
)

// Options controls span export.
type Options struct {
	// Enabled turns on span export; OTEL_SDK_DISABLED=true overrides it
	Enabled bool
	// Writer receives the exported spans as JSON, stderr when nil
	Writer  io.Writer
	Version string
}

// otelErrorHandler routes OTEL SDK errors to our logger
type otelErrorHandler struct {
	logger *logrus.Logger
}

func (h *otelErrorHandler) Handle(err error) {
	if err == nil {
		return
	}
	h.logger.WithError(err).Debug("OTEL: SDK error occurred")
}

// InitTracer sets up the global tracer. When tracing is off a noop tracer is
// installed. The returned function flushes and stops the exporter.
func InitTracer(logger *logrus.Logger, opts Options) (func() error, error) {
	globalMutex.Lock()
	defer globalMutex.Unlock()

	noopShutdown := func() error { return nil }

	if strings.ToLower(os.Getenv("OTEL_SDK_DISABLED")) == "true" {
		logger.Debug("OTEL: Explicitly disabled via OTEL_SDK_DISABLED")
		opts.Enabled = false
	}
	if !opts.Enabled {
		globalTracer = noop.NewTracerProvider().Tracer(tracerName)
		globalTracerProvider = nil
		tracingEnabled = false
		return noopShutdown, nil
	}

	otel.SetErrorHandler(&otelErrorHandler{logger: logger})

	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(writer), stdouttrace.WithPrettyPrint())
	if err != nil {
		globalTracer = noop.NewTracerProvider().Tracer(tracerName)
		tracingEnabled = false
		return noopShutdown, fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", tracerName),
		attribute.String("service.version", opts.Version),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	globalTracer = tp.Tracer(tracerName)
	globalTracerProvider = tp
	tracingEnabled = true

	logger.Debug("OTEL: Tracer initialised with stdout exporter")

	return func() error {
		globalMutex.Lock()
		defer globalMutex.Unlock()

		if globalTracerProvider == nil {
			return nil
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := globalTracerProvider.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("OTEL: Failed to shutdown tracer provider")
			return fmt.Errorf("failed to shutdown tracer provider: %w", err)
		}
		globalTracerProvider = nil
		tracingEnabled = false
		return nil
	}, nil
}

// GetTracer returns the global tracer, a noop one before InitTracer.
func GetTracer() trace.Tracer {
	globalMutex.RLock()
	defer globalMutex.RUnlock()

	if globalTracer == nil {
		return noop.NewTracerProvider().Tracer(tracerName)
	}
	return globalTracer
}

// IsEnabled returns true if spans are being exported
func IsEnabled() bool {
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	return tracingEnabled
}

// NewInvocationID generates an id for one ddg run
func NewInvocationID() string {
	return uuid.New().String()
}

// ContextWithInvocationID stores the invocation id in ctx
func ContextWithInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, invocationIDKey, id)
}

// InvocationIDFromContext returns the invocation id stored in ctx, if any
func InvocationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(invocationIDKey).(string); ok {
		return id
	}
	return ""
}

// SearchSpanInfo describes the search a span covers.
type SearchSpanInfo struct {
	Backend    string
	Query      string
	Region     string
	SafeSearch bool
	Limit      int
}

// StartSearchSpan starts the span wrapping one backend call. HTTP spans
// created during the call become its children. The caller must end it with
// EndSearchSpan.
func StartSearchSpan(ctx context.Context, info SearchSpanInfo) (context.Context, trace.Span) {
	if !IsEnabled() {
		return ctx, trace.SpanFromContext(ctx)
	}

	attrs := []attribute.KeyValue{
		attribute.String(AttrBackend, info.Backend),
		attribute.String(AttrQuery, TruncateString(info.Query, maxQueryLength)),
		attribute.String(AttrRegion, info.Region),
		attribute.Bool(AttrSafeSearch, info.SafeSearch),
		attribute.Int(AttrLimit, info.Limit),
	}
	if id := InvocationIDFromContext(ctx); id != "" {
		attrs = append(attrs, attribute.String(AttrInvocationID, id))
	}

	return GetTracer().Start(ctx, SpanNameSearch,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// EndSearchSpan records the outcome and ends span
func EndSearchSpan(span trace.Span, resultCount int, err error) {
	if span == nil {
		return
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(
			attribute.Bool(AttrSuccess, false),
			attribute.String(AttrError, err.Error()),
		)
	} else {
		span.SetStatus(codes.Ok, "")
		span.SetAttributes(
			attribute.Bool(AttrSuccess, true),
			attribute.Int(AttrResultCount, resultCount),
		)
	}

	span.End()
}
