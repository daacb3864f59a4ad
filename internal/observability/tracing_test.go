package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{
		ServiceName: "plume-test",
		Enabled:     false,
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracingStdoutExporter(t *testing.T) {
	prevProvider := otel.GetTracerProvider()
	prevTracer := Tracer
	t.Cleanup(func() {
		otel.SetTracerProvider(prevProvider)
		Tracer = prevTracer
	})

	shutdown, err := InitTracing(TracingConfig{
		ServiceName:  "plume-test",
		Environment:  "test",
		Enabled:      true,
		Exporter:     "stdout",
		SamplerRatio: 1.0,
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	ctx, span := Tracer.Start(context.Background(), "test-span")
	assert.True(t, span.SpanContext().IsValid())
	assert.True(t, span.SpanContext().HasTraceID())
	span.End()

	require.NoError(t, shutdown(ctx))
}
