package memengine

import (
	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore"
)

// Option defines a functional option for configuring an EventLog.
type Option func(*EventLog) error

// WithLogger sets the logger for the EventLog.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: Query and append details with timing (development use)
// Info level: Event counts and durations (production-safe)
// Error level: Operations aborted by a canceled or expired context.
func WithLogger(logger eventstore.Logger) Option {
	return func(el *EventLog) error {
		el.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the EventLog.
// It takes precedence over a plain Logger, so log records carry trace correlation when tracing is enabled.
func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(el *EventLog) error {
		el.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the EventLog.
// It receives query/append durations, event counts, and error counters.
func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(el *EventLog) error {
		el.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the EventLog.
// A span is created for every query and append operation.
func WithTracing(collector eventstore.TracingCollector) Option {
	return func(el *EventLog) error {
		el.tracingCollector = collector
		return nil
	}
}
