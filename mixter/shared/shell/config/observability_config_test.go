package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func Test_NewResource_DescribesService(t *testing.T) {
	// act
	res, err := NewResource(context.Background(), Config{ServiceName: "mixter-test", ServiceVersion: "1.0.0"})

	// assert
	require.NoError(t, err)

	name, found := res.Set().Value(semconv.ServiceNameKey)
	require.True(t, found)
	assert.Equal(t, "mixter-test", name.AsString())

	version, found := res.Set().Value(semconv.ServiceVersionKey)
	require.True(t, found)
	assert.Equal(t, "1.0.0", version.AsString())
}

func Test_ObservabilityProviders_CollectorsAndShutdown(t *testing.T) {
	// arrange
	reader := metric.NewManualReader()
	exporter := tracetest.NewInMemoryExporter()
	providers := &ObservabilityProviders{
		TracerProvider:  trace.NewTracerProvider(trace.WithSyncer(exporter)),
		MeterProvider:   metric.NewMeterProvider(metric.WithReader(reader)),
		shutdownTimeout: time.Second,
	}

	// act
	metrics := providers.MetricsCollector("test")
	tracing := providers.TracingCollector("test")
	metrics.IncrementCounter("eventbus_events_published_total", nil)
	_, span := tracing.StartSpan(context.Background(), "eventbus.publish", nil)
	tracing.FinishSpan(span, "success", nil)

	// assert
	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))
	assert.NotEmpty(t, resourceMetrics.ScopeMetrics)
	assert.Len(t, exporter.GetSpans(), 1)
	assert.NoError(t, providers.Shutdown(context.Background()))
}
