// Package logger provides structured logging with optional OpenTelemetry spans.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "customs-fts"

var (
	globalLogger   *slog.Logger
	tracingEnabled bool
	tracer         trace.Tracer
	tracerProvider *sdktrace.TracerProvider
)

// Config holds logging configuration
type Config struct {
	Level          string    // DEBUG, INFO, WARN, ERROR
	Format         string    // json or text
	TracingEnabled bool      // export spans to Output
	Output         io.Writer // defaults to stderr; stdout is reserved for CLI output
}

// Init initializes the global logger and tracer.
func Init(cfg Config) error {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	globalLogger = slog.New(handler)

	tracingEnabled = cfg.TracingEnabled
	if tracingEnabled {
		if err := initTracer(out); err != nil {
			globalLogger.Warn("Failed to initialize OpenTelemetry tracer, tracing disabled", "error", err)
			tracingEnabled = false
		}
	}

	return nil
}

func initTracer(out io.Writer) error {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(out),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return err
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return err
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	tracer = otel.Tracer(serviceName)

	return nil
}

// Shutdown flushes pending spans.
func Shutdown(ctx context.Context) error {
	if tracerProvider != nil {
		return tracerProvider.Shutdown(ctx)
	}
	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func current() *slog.Logger {
	if globalLogger == nil {
		return slog.Default()
	}
	return globalLogger
}

// StartSpan starts a new span, or returns the context unchanged when tracing is off.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !tracingEnabled || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

func traceAttrs(ctx context.Context) []any {
	if !tracingEnabled {
		return nil
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return nil
	}
	return []any{"trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String()}
}

func log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if attrs := traceAttrs(ctx); attrs != nil {
		args = append(attrs, args...)
	}
	current().Log(ctx, level, msg, args...)
}

// Debug logs a debug message
func Debug(ctx context.Context, msg string, args ...any) {
	log(ctx, slog.LevelDebug, msg, args...)
}

// Info logs an info message
func Info(ctx context.Context, msg string, args ...any) {
	log(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message
func Warn(ctx context.Context, msg string, args ...any) {
	log(ctx, slog.LevelWarn, msg, args...)
}

// ErrorWithErr logs an error and records it on the active span.
func ErrorWithErr(ctx context.Context, msg string, err error, args ...any) {
	if tracingEnabled {
		span := trace.SpanFromContext(ctx)
		if span.SpanContext().IsValid() {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}
	log(ctx, slog.LevelError, msg, append([]any{"error", err}, args...)...)
}

// OperationTimer measures one operation and owns its span.
type OperationTimer struct {
	ctx       context.Context
	span      trace.Span
	operation string
	start     time.Time
	fields    []any
}

// StartOperation starts timing an operation. Fields are key/value pairs.
func StartOperation(ctx context.Context, operation string, fields ...any) *OperationTimer {
	var span trace.Span
	if tracingEnabled {
		ctx, span = StartSpan(ctx, operation)
		span.SetAttributes(toAttributes(fields)...)
	}

	Debug(ctx, "Operation started", append([]any{"operation", operation}, fields...)...)

	return &OperationTimer{
		ctx:       ctx,
		span:      span,
		operation: operation,
		start:     time.Now(),
		fields:    fields,
	}
}

// Context returns the context carrying the operation span.
func (ot *OperationTimer) Context() context.Context {
	return ot.ctx
}

// End completes the operation successfully.
func (ot *OperationTimer) End(additionalFields ...any) {
	duration := time.Since(ot.start)

	if ot.span != nil {
		ot.span.SetAttributes(attribute.Int64("duration_ms", duration.Milliseconds()))
		ot.span.SetAttributes(toAttributes(additionalFields)...)
		ot.span.SetStatus(codes.Ok, "completed")
		ot.span.End()
	}

	fields := append([]any{"operation", ot.operation}, ot.fields...)
	fields = append(fields, "duration_ms", duration.Milliseconds())
	Debug(ot.ctx, "Operation completed", append(fields, additionalFields...)...)
}

// EndWithError completes the operation with a failure.
func (ot *OperationTimer) EndWithError(err error, additionalFields ...any) {
	duration := time.Since(ot.start)

	if ot.span != nil {
		ot.span.SetAttributes(attribute.Int64("duration_ms", duration.Milliseconds()))
		ot.span.RecordError(err)
		ot.span.SetStatus(codes.Error, err.Error())
		ot.span.End()
	}

	fields := append([]any{"operation", ot.operation}, ot.fields...)
	fields = append(fields, "duration_ms", duration.Milliseconds(), "error", err)
	log(ot.ctx, slog.LevelError, "Operation failed", append(fields, additionalFields...)...)
}

func toAttributes(fields []any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case string:
			attrs = append(attrs, attribute.String(key, v))
		case int:
			attrs = append(attrs, attribute.Int(key, v))
		case int64:
			attrs = append(attrs, attribute.Int64(key, v))
		case float64:
			attrs = append(attrs, attribute.Float64(key, v))
		case bool:
			attrs = append(attrs, attribute.Bool(key, v))
		}
	}
	return attrs
}
