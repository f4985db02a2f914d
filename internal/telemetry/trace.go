// Package telemetry sets up OpenTelemetry tracing and provides span helpers
// for commands, synthesis stages and oracle calls.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StartCommandSpan creates a span for a CLI command execution.
//
// Usage:
//
//	ctx, span := telemetry.StartCommandSpan(ctx, "generate")
//	defer span.End()
func StartCommandSpan(ctx context.Context, cmdName string) (context.Context, trace.Span) {
	tracer := GetTracerProvider().Tracer("commands")
	ctx, span := tracer.Start(ctx, "command."+cmdName)

	span.SetAttributes(
		attribute.String("command", cmdName),
		attribute.String("component", "cli"),
	)

	return ctx, span
}

// StartOracleSpan creates a span for one oracle chat call. attempt is 1 for
// the original call and 2 for the retry.
func StartOracleSpan(ctx context.Context, purpose string, attempt int) (context.Context, trace.Span) {
	tracer := GetTracerProvider().Tracer("oracle")
	ctx, span := tracer.Start(ctx, "oracle."+purpose, trace.WithSpanKind(trace.SpanKindClient))

	span.SetAttributes(
		attribute.String("purpose", purpose),
		attribute.Int("attempt", attempt),
		attribute.String("component", "oracle"),
	)

	return ctx, span
}

// StartSynthSpan creates a span for one synthesis run.
func StartSynthSpan(ctx context.Context, mode string) (context.Context, trace.Span) {
	tracer := GetTracerProvider().Tracer("synth")
	ctx, span := tracer.Start(ctx, "synth.run")

	span.SetAttributes(
		attribute.String("mode", mode),
		attribute.String("component", "synth"),
	)

	return ctx, span
}

// RecordSuccess marks a span as successful with optional result attributes.
func RecordSuccess(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
	span.SetStatus(codes.Ok, "")
}

// RecordError records an error in a span and sets error status.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
