// Package oteladapters provides OpenTelemetry implementations of the eventstore observability interfaces.
//
// Every component that accepts an eventstore.Logger, eventstore.ContextualLogger,
// eventstore.MetricsCollector or eventstore.TracingCollector (the event log, the event bus, and the
// observable handler wrappers) can be handed these adapters:
//
//	metrics := oteladapters.NewMetricsCollector(otel.Meter("mixter"))
//	tracing := oteladapters.NewTracingCollector(otel.Tracer("mixter"))
//	logger := oteladapters.NewSlogBridgeLogger("mixter")
//
// Provider setup (exporters, resources, shutdown) is left to the application.
package oteladapters
