package eventbus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore/memengine"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/shell"
)

var (
	// ErrNilSubscriber is returned when registering a nil Subscriber.
	ErrNilSubscriber = errors.New("subscriber must not be nil")

	// ErrPublishingFailed is returned when an event could not be appended. Subscribers were not called.
	ErrPublishingFailed = errors.New("publishing event failed")

	// ErrSubscriberFailed wraps errors returned by subscribers. The event was appended nevertheless.
	ErrSubscriberFailed = errors.New("subscriber failed")

	// ErrReplayFailed is returned by SubscribeWithReplay when the history could not be replayed.
	// The subscriber is not registered in that case.
	ErrReplayFailed = errors.New("replaying history to subscriber failed")
)

// Bus is the single write path into the event log and the dispatcher of published events.
// It creates the log it owns, so nothing else can append to it.
type Bus struct {
	mu               sync.Mutex
	eventLog         *memengine.EventLog
	eventLogOptions  []memengine.Option
	subscribers      []Subscriber
	dispatchPolicy   DispatchPolicy
	clock            func() time.Time
	logger           eventstore.Logger
	contextualLogger eventstore.ContextualLogger
	metricsCollector eventstore.MetricsCollector
	tracingCollector eventstore.TracingCollector
}

// New creates a Bus with an empty event log and without any subscribers.
// The log is configured with the options given via WithEventLogOptions.
func New(options ...Option) (*Bus, error) {
	b := &Bus{
		subscribers:    make([]Subscriber, 0),
		dispatchPolicy: FailFast,
		clock:          time.Now,
	}

	for _, option := range options {
		if err := option(b); err != nil {
			return nil, err
		}
	}

	eventLog, err := memengine.NewEventLog(b.eventLogOptions...)
	if err != nil {
		return nil, err
	}

	b.eventLog = eventLog

	return b, nil
}

// Subscribe registers a subscriber for all events published from now on.
// Subscribers are called in registration order.
func (b *Bus) Subscribe(subscriber Subscriber) error {
	if subscriber == nil {
		return ErrNilSubscriber
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers = append(b.subscribers, subscriber)
	b.recordSubscriberCount(context.Background())

	return nil
}

// SubscribeWithReplay hands every event of the current history to the subscriber, oldest first,
// and then registers it. No publish can happen in between.
func (b *Bus) SubscribeWithReplay(ctx context.Context, subscriber Subscriber) error {
	if subscriber == nil {
		return ErrNilSubscriber
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	storableEvents, _, err := b.eventLog.Query(ctx, eventstore.BuildEventFilter().MatchingAnyEvent())
	if err != nil {
		return errors.Join(ErrReplayFailed, err)
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return errors.Join(ErrReplayFailed, err)
	}

	for _, event := range history {
		if err = subscriber.Handle(ctx, event); err != nil {
			return errors.Join(ErrReplayFailed, err)
		}
	}

	b.subscribers = append(b.subscribers, subscriber)
	b.logDebug(ctx, logMsgReplayed, logAttrEventCount, len(history))
	b.recordSubscriberCount(ctx)

	return nil
}

// Publish appends the event to the log and then delivers it to all subscribers in registration order.
// It returns after the last subscriber has been called.
//
// If the append fails, no subscriber is called and ErrPublishingFailed is returned.
// Subscriber errors are wrapped with ErrSubscriberFailed and handled according to the DispatchPolicy.
func (b *Bus) Publish(ctx context.Context, event core.DomainEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tracer, ctx := b.startPublishTracing(ctx, event, len(b.subscribers))
	metrics := b.startPublishMetrics(ctx)
	start := time.Now()

	storableEvent, err := shell.StorableEventFrom(event, shell.NewEventMetadataFrom(ctx), b.clock())
	if err != nil {
		return b.publishFailed(ctx, tracer, metrics, start, err)
	}

	sequenceNumber, err := b.eventLog.Append(ctx, storableEvent)
	if err != nil {
		return b.publishFailed(ctx, tracer, metrics, start, err)
	}

	dispatchErr := b.dispatch(ctx, event)

	duration := time.Since(start)
	b.logOperation(
		ctx,
		logMsgPublished,
		logAttrEventType, event.EventType(),
		logAttrSequence, sequenceNumber,
		logAttrSubscriberCount, len(b.subscribers),
		logAttrDurationMS, toMilliseconds(duration),
	)
	tracer.finish(sequenceNumber, duration, dispatchErr)
	metrics.recordPublished(event.EventType(), duration, dispatchErr)

	return dispatchErr
}

func (b *Bus) publishFailed(
	ctx context.Context,
	tracer *tracingObserver,
	metrics *metricsObserver,
	start time.Time,
	err error,
) error {

	duration := time.Since(start)
	b.logError(ctx, logMsgPublishFailed, err)
	tracer.finishError(errorTypeFrom(err), duration)
	metrics.recordError(errorTypeFrom(err), duration)

	return errors.Join(ErrPublishingFailed, err)
}

func (b *Bus) dispatch(ctx context.Context, event core.DomainEvent) error {
	var failures []error

	for position, subscriber := range b.subscribers {
		if err := subscriber.Handle(ctx, event); err != nil {
			failure := fmt.Errorf("%w: position %d: %w", ErrSubscriberFailed, position, err)
			b.logError(ctx, logMsgSubscriberFailed, err, logAttrEventType, event.EventType(), logAttrPosition, position)
			b.incrementCounterContext(ctx, metricSubscriberFailures, map[string]string{
				logAttrEventType: event.EventType(),
			})

			if b.dispatchPolicy == FailFast {
				return failure
			}

			failures = append(failures, failure)
		}
	}

	return errors.Join(failures...)
}

// Events returns the full history as domain events, oldest first.
func (b *Bus) Events(ctx context.Context) (core.DomainEvents, error) {
	storableEvents, _, err := b.eventLog.Query(ctx, eventstore.BuildEventFilter().MatchingAnyEvent())
	if err != nil {
		return nil, err
	}

	return shell.DomainEventsFrom(storableEvents)
}

// Query reads from the underlying event log, see memengine.EventLog.Query.
func (b *Bus) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	return b.eventLog.Query(ctx, filter)
}

// Len returns the number of events in the log.
func (b *Bus) Len() int {
	return b.eventLog.Len()
}

// MaxSequenceNumber returns the sequence number of the most recently appended event, or 0 for an empty log.
func (b *Bus) MaxSequenceNumber() eventstore.MaxSequenceNumberUint {
	return b.eventLog.MaxSequenceNumber()
}

// Subscribers returns the number of registered subscribers.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.subscribers)
}
