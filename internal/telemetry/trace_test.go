package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prev := GetTracerProvider()
	SetTracerProvider(tp, tp.Shutdown)
	t.Cleanup(func() { SetTracerProvider(prev, nil) })

	return recorder
}

func attrMap(kvs []attribute.KeyValue) map[string]any {
	out := make(map[string]any, len(kvs))
	for _, kv := range kvs {
		out[string(kv.Key)] = kv.Value.AsInterface()
	}
	return out
}

func TestStartOracleSpan(t *testing.T) {
	recorder := withRecorder(t)

	_, span := StartOracleSpan(context.Background(), "plan", 2)
	RecordSuccess(span, attribute.Int("response_chars", 42))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "oracle.plan", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, int64(2), attrs["attempt"])
	assert.Equal(t, int64(42), attrs["response_chars"])
}

func TestRecordError(t *testing.T) {
	recorder := withRecorder(t)

	ctx, parent := StartSynthSpan(context.Background(), "modify")
	_, child := StartCommandSpan(ctx, "generate")
	RecordError(child, errors.New("boom"))
	RecordError(child, nil)
	child.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "command.generate", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	assert.Len(t, spans[0].Events(), 1)
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestInitProviderDisabled(t *testing.T) {
	shutdown, err := InitProvider(context.Background(), DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	_, span := StartCommandSpan(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}

func TestInitProviderWithoutExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true

	shutdown, err := InitProvider(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	_, span := StartCommandSpan(context.Background(), "sampled")
	assert.True(t, span.SpanContext().IsSampled())
	span.End()

	require.NoError(t, Shutdown(context.Background()))
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), sampler(0).Description())
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased")
}
