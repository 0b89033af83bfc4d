package eventbus

import (
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore/memengine"
)

// ErrUnknownDispatchPolicy is returned when parsing an unsupported dispatch policy name.
var ErrUnknownDispatchPolicy = errors.New("unknown dispatch policy")

// DispatchPolicy decides how Publish proceeds when a subscriber fails.
type DispatchPolicy int

const (
	// FailFast stops the fan-out at the first failing subscriber and returns its error.
	FailFast DispatchPolicy = iota

	// ContinueOnError calls every subscriber and returns all failures joined.
	ContinueOnError
)

const (
	dispatchPolicyFailFast        = "fail_fast"
	dispatchPolicyContinueOnError = "continue_on_error"
)

// String returns the configuration name of the policy.
func (p DispatchPolicy) String() string {
	switch p {
	case ContinueOnError:
		return dispatchPolicyContinueOnError
	default:
		return dispatchPolicyFailFast
	}
}

// ParseDispatchPolicy maps a configuration name ("fail_fast", "continue_on_error") to a DispatchPolicy.
func ParseDispatchPolicy(name string) (DispatchPolicy, error) {
	switch name {
	case dispatchPolicyFailFast, "":
		return FailFast, nil
	case dispatchPolicyContinueOnError:
		return ContinueOnError, nil
	default:
		return FailFast, fmt.Errorf("%w: %q", ErrUnknownDispatchPolicy, name)
	}
}

// Option defines a functional option for configuring a Bus.
type Option func(*Bus) error

// WithDispatchPolicy sets how subscriber failures are handled. The default is FailFast.
func WithDispatchPolicy(policy DispatchPolicy) Option {
	return func(b *Bus) error {
		if policy != FailFast && policy != ContinueOnError {
			return fmt.Errorf("%w: %d", ErrUnknownDispatchPolicy, policy)
		}

		b.dispatchPolicy = policy

		return nil
	}
}

// WithEventLogOptions configures the event log the Bus creates, e.g. with memengine.WithTracing.
func WithEventLogOptions(options ...memengine.Option) Option {
	return func(b *Bus) error {
		b.eventLogOptions = append(b.eventLogOptions, options...)
		return nil
	}
}

// WithClock sets the source of the occurrence time recorded for published events.
func WithClock(clock func() time.Time) Option {
	return func(b *Bus) error {
		if clock != nil {
			b.clock = clock
		}

		return nil
	}
}

// WithLogger sets the logger for the Bus.
func WithLogger(logger eventstore.Logger) Option {
	return func(b *Bus) error {
		b.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Bus. It takes precedence over a plain Logger.
func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(b *Bus) error {
		b.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Bus.
// It receives publish durations, published event counts, subscriber failures, and the number of subscribers.
func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(b *Bus) error {
		b.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Bus. A span is created for every publish.
func WithTracing(collector eventstore.TracingCollector) Option {
	return func(b *Bus) error {
		b.tracingCollector = collector
		return nil
	}
}
