// Package testdoubles provides test doubles (spies) for the observability interfaces
// defined in the eventstore package:
//   - MetricsCollectorSpy: captures metrics recording calls for verification
//   - TracingCollectorSpy: captures spans with their start and finish attributes
//   - ContextualLoggerSpy: captures context-aware log calls
//
// They let tests verify instrumentation of the event log, the event bus,
// and the handlers without a telemetry backend.
package testdoubles
