package memengine

import (
	"context"
	"sync"
	"time"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore"
)

const (
	logMsgQueryCompleted = "query completed"
	logMsgEventsAppended = "events appended"
	logMsgQueryAborted   = "query aborted"
	logMsgAppendAborted  = "append aborted, no events were appended"
	logMsgOperation      = "eventlog operation: "
	logAttrError         = "error"
	logAttrEventType     = "event_type"
	logAttrEventCount    = "event_count"
	logAttrDurationMS    = "duration_ms"
	logAttrMaxSequence   = "max_sequence"
	logActionQuery       = "query"
	logActionAppend      = "append"
)

// record is an appended event together with the position the log assigned to it.
type record struct {
	sequenceNumber eventstore.MaxSequenceNumberUint
	event          eventstore.StorableEvent
}

// EventLog is an append-only, in-memory sequence of eventstore.StorableEvent(s).
//
// It is safe for concurrent use. Appends are serialized; reads run concurrently with each other.
// Events are copied on the way in and on the way out.
type EventLog struct {
	mu               sync.RWMutex
	records          []record
	logger           eventstore.Logger
	contextualLogger eventstore.ContextualLogger
	metricsCollector eventstore.MetricsCollector
	tracingCollector eventstore.TracingCollector
}

// NewEventLog creates an empty EventLog with optional configuration.
func NewEventLog(options ...Option) (*EventLog, error) {
	el := &EventLog{
		records: make([]record, 0),
	}

	for _, option := range options {
		if err := option(el); err != nil {
			return nil, err
		}
	}

	return el, nil
}

// Append appends one or multiple eventstore.StorableEvent(s) atomically to the tail of the log
// and returns the new MaxSequenceNumberUint.
//
// A canceled or expired context aborts the operation before anything is appended.
func (el *EventLog) Append(
	ctx context.Context,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) (eventstore.MaxSequenceNumberUint, error) {

	allEvents := eventstore.StorableEvents{event}
	allEvents = append(allEvents, additionalEvents...)

	tracer, ctx := el.startAppendTracing(ctx, allEvents)
	metrics := el.startAppendMetrics(ctx)
	start := time.Now()

	if ctxErr := ctx.Err(); ctxErr != nil {
		duration := time.Since(start)
		errorType := errorTypeFrom(ctxErr)
		el.logError(ctx, logMsgAppendAborted, ctxErr, logAttrEventType, event.EventType)
		tracer.finishError(errorType, duration)
		metrics.recordError(errorType, duration)

		return 0, ctxErr
	}

	el.mu.Lock()
	for _, e := range allEvents {
		el.records = append(el.records, record{
			sequenceNumber: eventstore.MaxSequenceNumberUint(len(el.records) + 1),
			event:          e.Clone(),
		})
	}
	maxSequenceNumber := el.maxSequenceNumberLocked()
	el.mu.Unlock()

	duration := time.Since(start)
	el.logDebug(ctx, logActionAppend, logAttrEventType, event.EventType, logAttrMaxSequence, maxSequenceNumber)
	el.logOperation(
		ctx,
		logMsgEventsAppended,
		logAttrEventCount, len(allEvents),
		logAttrDurationMS, toMilliseconds(duration),
	)
	tracer.finishSuccess(len(allEvents), maxSequenceNumber, duration)
	metrics.recordSuccess(len(allEvents), duration)

	return maxSequenceNumber, nil
}

// Query retrieves deep copies of all events matching the eventstore.Filter criteria, oldest first,
// and the MaxSequenceNumberUint of the whole log at the time of the query.
func (el *EventLog) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	tracer, ctx := el.startQueryTracing(ctx)
	metrics := el.startQueryMetrics(ctx)
	start := time.Now()

	if ctxErr := ctx.Err(); ctxErr != nil {
		duration := time.Since(start)
		errorType := errorTypeFrom(ctxErr)
		el.logError(ctx, logMsgQueryAborted, ctxErr)
		tracer.finishError(errorType, duration)
		metrics.recordError(errorType, duration)

		return nil, 0, ctxErr
	}

	el.mu.RLock()
	eventStream := make(eventstore.StorableEvents, 0, len(el.records))
	for _, r := range el.records {
		if r.sequenceNumber <= filter.SequenceNumberHigherThan() {
			continue
		}

		if filter.Matches(r.event) {
			eventStream = append(eventStream, r.event.Clone())
		}
	}
	maxSequenceNumber := el.maxSequenceNumberLocked()
	el.mu.RUnlock()

	duration := time.Since(start)
	el.logDebug(ctx, logActionQuery, logAttrEventCount, len(eventStream), logAttrMaxSequence, maxSequenceNumber)
	el.logOperation(
		ctx,
		logMsgQueryCompleted,
		logAttrEventCount, len(eventStream),
		logAttrDurationMS, toMilliseconds(duration),
	)
	tracer.finishSuccess(len(eventStream), maxSequenceNumber, duration)
	metrics.recordSuccess(len(eventStream), duration)

	return eventStream, maxSequenceNumber, nil
}

// Events returns a snapshot of the full history, oldest first.
func (el *EventLog) Events() eventstore.StorableEvents {
	el.mu.RLock()
	defer el.mu.RUnlock()

	eventStream := make(eventstore.StorableEvents, 0, len(el.records))
	for _, r := range el.records {
		eventStream = append(eventStream, r.event.Clone())
	}

	return eventStream
}

// Len returns the number of appended events.
func (el *EventLog) Len() int {
	el.mu.RLock()
	defer el.mu.RUnlock()

	return len(el.records)
}

// MaxSequenceNumber returns the sequence number of the most recently appended event, or 0 for an empty log.
func (el *EventLog) MaxSequenceNumber() eventstore.MaxSequenceNumberUint {
	el.mu.RLock()
	defer el.mu.RUnlock()

	return el.maxSequenceNumberLocked()
}

func (el *EventLog) maxSequenceNumberLocked() eventstore.MaxSequenceNumberUint {
	if len(el.records) == 0 {
		return 0
	}

	return el.records[len(el.records)-1].sequenceNumber
}
