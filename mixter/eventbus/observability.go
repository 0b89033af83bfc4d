package eventbus

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
)

const (
	metricPublishDuration    = "eventbus_publish_duration_seconds"
	metricEventsPublished    = "eventbus_events_published_total"
	metricPublishErrors      = "eventbus_publish_errors_total"
	metricSubscriberFailures = "eventbus_subscriber_failures_total"
	metricSubscribers        = "eventbus_subscribers"

	spanNamePublish = "eventbus.publish"

	logMsgPublished        = "event published"
	logMsgPublishFailed    = "publish failed, event was not appended"
	logMsgSubscriberFailed = "subscriber failed"
	logMsgReplayed         = "history replayed to new subscriber"

	logAttrError           = "error"
	logAttrEventType       = "event_type"
	logAttrEventCount      = "event_count"
	logAttrSequence        = "sequence_number"
	logAttrSubscriberCount = "subscriber_count"
	logAttrPosition        = "position"
	logAttrDurationMS      = "duration_ms"
	logAttrErrorType       = "error_type"
	logAttrStatus          = "status"

	statusSuccess          = "success"
	statusError            = "error"
	statusSubscriberFailed = "subscriber_failed"

	errorTypeCanceled = "context_canceled"
	errorTypeTimeout  = "context_deadline_exceeded"
	errorTypeOther    = "other"
)

func errorTypeFrom(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return errorTypeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return errorTypeTimeout
	default:
		return errorTypeOther
	}
}

func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func (b *Bus) logDebug(ctx context.Context, message string, args ...any) {
	if b.contextualLogger != nil {
		b.contextualLogger.DebugContext(ctx, message, args...)
		return
	}

	if b.logger != nil {
		b.logger.Debug(message, args...)
	}
}

func (b *Bus) logOperation(ctx context.Context, message string, args ...any) {
	if b.contextualLogger != nil {
		b.contextualLogger.InfoContext(ctx, message, args...)
		return
	}

	if b.logger != nil {
		b.logger.Info(message, args...)
	}
}

func (b *Bus) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if b.contextualLogger != nil {
		b.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if b.logger != nil {
		b.logger.Error(message, allArgs...)
	}
}

func (b *Bus) recordDurationContext(ctx context.Context, metricName string, duration time.Duration, labels map[string]string) {
	if b.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := b.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
		return
	}

	b.metricsCollector.RecordDuration(metricName, duration, labels)
}

func (b *Bus) recordValueContext(ctx context.Context, metricName string, value float64, labels map[string]string) {
	if b.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := b.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metricName, value, labels)
		return
	}

	b.metricsCollector.RecordValue(metricName, value, labels)
}

func (b *Bus) incrementCounterContext(ctx context.Context, metricName string, labels map[string]string) {
	if b.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := b.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricName, labels)
		return
	}

	b.metricsCollector.IncrementCounter(metricName, labels)
}

// recordSubscriberCount must be called with b.mu held.
func (b *Bus) recordSubscriberCount(ctx context.Context) {
	b.recordValueContext(ctx, metricSubscribers, float64(len(b.subscribers)), nil)
}

// === Tracing ===

type tracingObserver struct {
	b    *Bus
	span eventstore.SpanContext
}

func (b *Bus) startPublishTracing(ctx context.Context, event core.DomainEvent, subscriberCount int) (*tracingObserver, context.Context) {
	if b.tracingCollector == nil {
		return &tracingObserver{b: b}, ctx
	}

	attrs := map[string]string{
		logAttrSubscriberCount: fmt.Sprintf("%d", subscriberCount),
	}

	if !core.IsNilEvent(event) {
		attrs[logAttrEventType] = event.EventType()
	}

	newCtx, span := b.tracingCollector.StartSpan(ctx, spanNamePublish, attrs)

	return &tracingObserver{b: b, span: span}, newCtx
}

func (to *tracingObserver) finish(sequenceNumber eventstore.MaxSequenceNumberUint, duration time.Duration, dispatchErr error) {
	if to.span == nil {
		return
	}

	to.span.AddAttribute(logAttrDurationMS, fmt.Sprintf("%.2f", toMilliseconds(duration)))

	status := statusSuccess
	if dispatchErr != nil {
		status = statusSubscriberFailed
	}

	to.b.tracingCollector.FinishSpan(to.span, status, map[string]string{
		logAttrSequence: fmt.Sprintf("%d", sequenceNumber),
	})
}

func (to *tracingObserver) finishError(errorType string, duration time.Duration) {
	if to.span == nil {
		return
	}

	to.span.AddAttribute(logAttrDurationMS, fmt.Sprintf("%.2f", toMilliseconds(duration)))
	to.b.tracingCollector.FinishSpan(to.span, statusError, map[string]string{
		logAttrErrorType: errorType,
	})
}

// === Metrics ===

type metricsObserver struct {
	b   *Bus
	ctx context.Context
}

func (b *Bus) startPublishMetrics(ctx context.Context) *metricsObserver {
	return &metricsObserver{b: b, ctx: ctx}
}

func (mo *metricsObserver) recordPublished(eventType string, duration time.Duration, dispatchErr error) {
	status := statusSuccess
	if dispatchErr != nil {
		status = statusSubscriberFailed
	}

	labels := map[string]string{logAttrEventType: eventType, logAttrStatus: status}
	mo.b.recordDurationContext(mo.ctx, metricPublishDuration, duration, labels)
	mo.b.incrementCounterContext(mo.ctx, metricEventsPublished, labels)
}

func (mo *metricsObserver) recordError(errorType string, duration time.Duration) {
	mo.b.recordDurationContext(mo.ctx, metricPublishDuration, duration, map[string]string{logAttrStatus: statusError})
	mo.b.incrementCounterContext(mo.ctx, metricPublishErrors, map[string]string{
		logAttrStatus:    statusError,
		logAttrErrorType: errorType,
	})
}
