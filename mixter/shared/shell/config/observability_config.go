package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore/oteladapters"
)

// ObservabilityProviders holds the OpenTelemetry providers of the process.
type ObservabilityProviders struct {
	TracerProvider  *trace.TracerProvider
	MeterProvider   *metric.MeterProvider
	Resource        *resource.Resource
	shutdownTimeout time.Duration
}

// NewResource describes this service for all exported telemetry.
func NewResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	return res, nil
}

// NewObservabilityProviders creates OTLP/gRPC exporting tracer and meter providers
// and installs them, with the W3C trace context propagator, as the global OpenTelemetry providers.
func NewObservabilityProviders(ctx context.Context, cfg Config) (*ObservabilityProviders, error) {
	res, err := NewResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(cfg.OTelTraceEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	metricExporter, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(cfg.OTelMetricEndpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create metric exporter: %w", err), traceExporter.Shutdown(ctx))
	}

	providers := &ObservabilityProviders{
		TracerProvider: trace.NewTracerProvider(
			trace.WithBatcher(traceExporter),
			trace.WithResource(res),
		),
		MeterProvider: metric.NewMeterProvider(
			metric.WithReader(metric.NewPeriodicReader(metricExporter, metric.WithInterval(cfg.OTelMetricInterval))),
			metric.WithResource(res),
		),
		Resource:        res,
		shutdownTimeout: cfg.OTelShutdownTimeout,
	}

	otel.SetTracerProvider(providers.TracerProvider)
	otel.SetMeterProvider(providers.MeterProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return providers, nil
}

// MetricsCollector returns a collector recording to the MeterProvider.
func (p *ObservabilityProviders) MetricsCollector(instrumentationName string) *oteladapters.MetricsCollector {
	return oteladapters.NewMetricsCollector(p.MeterProvider.Meter(instrumentationName))
}

// TracingCollector returns a collector creating spans with the TracerProvider.
func (p *ObservabilityProviders) TracingCollector(instrumentationName string) *oteladapters.TracingCollector {
	return oteladapters.NewTracingCollector(p.TracerProvider.Tracer(instrumentationName))
}

// Shutdown flushes and stops both providers, waiting at most MIXTER_OTEL_SHUTDOWN_TIMEOUT.
func (p *ObservabilityProviders) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.shutdownTimeout)
	defer cancel()

	return errors.Join(
		p.TracerProvider.Shutdown(ctx),
		p.MeterProvider.Shutdown(ctx),
	)
}
