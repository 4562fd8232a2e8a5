package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	before := otel.GetTracerProvider()
	shutdown, err := Init(context.Background(), "  ")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	require.Equal(t, before, otel.GetTracerProvider())
}

func TestInitInstallsProvider(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	orig := exporterFactory
	exporterFactory = func(context.Context, string) (sdktrace.SpanExporter, error) { return exporter, nil }
	before := otel.GetTracerProvider()
	t.Cleanup(func() {
		exporterFactory = orig
		otel.SetTracerProvider(before)
	})

	shutdown, err := Init(context.Background(), "http://collector:4318")
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	span.End()

	provider, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	require.True(t, ok)
	require.NoError(t, provider.ForceFlush(context.Background()))
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Equal(t, "op", spans[0].Name)
	require.NoError(t, shutdown(context.Background()))
}
