package memengine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore"
)

const (
	metricQueryDuration  = "eventlog_query_duration_seconds"
	metricAppendDuration = "eventlog_append_duration_seconds"
	metricEventsQueried  = "eventlog_events_queried"
	metricEventsAppended = "eventlog_events_appended_total"
	metricErrors         = "eventlog_errors_total"

	spanNameQuery  = "eventlog.query"
	spanNameAppend = "eventlog.append"

	spanAttrOperation   = "operation"
	spanAttrEventType   = "event_type"
	spanAttrEventCount  = "event_count"
	spanAttrMaxSequence = "max_sequence"
	spanAttrDurationMS  = "duration_ms"
	spanAttrErrorType   = "error_type"

	operationQuery  = "query"
	operationAppend = "append"

	statusSuccess = "success"
	statusError   = "error"

	errorTypeCanceled = "context_canceled"
	errorTypeTimeout  = "context_deadline_exceeded"
	errorTypeOther    = "other"
)

// errorTypeFrom classifies errors for metrics and span attributes.
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

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// logDebug logs operation details at debug level, preferring the contextual logger.
func (el *EventLog) logDebug(ctx context.Context, action string, args ...any) {
	if el.contextualLogger != nil {
		el.contextualLogger.DebugContext(ctx, logMsgOperation+action, args...)
		return
	}

	if el.logger != nil {
		el.logger.Debug(logMsgOperation+action, args...)
	}
}

// logOperation logs operational information at info level, preferring the contextual logger.
func (el *EventLog) logOperation(ctx context.Context, message string, args ...any) {
	if el.contextualLogger != nil {
		el.contextualLogger.InfoContext(ctx, message, args...)
		return
	}

	if el.logger != nil {
		el.logger.Info(message, args...)
	}
}

// logError logs error information at the error level, preferring the contextual logger.
func (el *EventLog) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if el.contextualLogger != nil {
		el.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if el.logger != nil {
		el.logger.Error(message, allArgs...)
	}
}

// recordDurationContext records duration metrics with context if the collector supports it.
func (el *EventLog) recordDurationContext(ctx context.Context, metricName string, duration time.Duration, labels map[string]string) {
	if el.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := el.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
		return
	}

	el.metricsCollector.RecordDuration(metricName, duration, labels)
}

// recordValueContext records value metrics with context if the collector supports it.
func (el *EventLog) recordValueContext(ctx context.Context, metricName string, value float64, labels map[string]string) {
	if el.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := el.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metricName, value, labels)
		return
	}

	el.metricsCollector.RecordValue(metricName, value, labels)
}

// incrementCounterContext increments a counter with context if the collector supports it.
func (el *EventLog) incrementCounterContext(ctx context.Context, metricName string, labels map[string]string) {
	if el.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := el.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricName, labels)
		return
	}

	el.metricsCollector.IncrementCounter(metricName, labels)
}

// === Tracing ===

// tracingObserver encapsulates the span lifecycle of a single query or append operation.
type tracingObserver struct {
	el   *EventLog
	span eventstore.SpanContext
}

func (el *EventLog) startQueryTracing(ctx context.Context) (*tracingObserver, context.Context) {
	return el.startTracing(ctx, spanNameQuery, map[string]string{
		spanAttrOperation: operationQuery,
	})
}

func (el *EventLog) startAppendTracing(ctx context.Context, events eventstore.StorableEvents) (*tracingObserver, context.Context) {
	spanAttrs := map[string]string{
		spanAttrOperation:  operationAppend,
		spanAttrEventCount: fmt.Sprintf("%d", len(events)),
	}

	if len(events) > 0 {
		spanAttrs[spanAttrEventType] = events[0].EventType
	}

	return el.startTracing(ctx, spanNameAppend, spanAttrs)
}

func (el *EventLog) startTracing(ctx context.Context, name string, attrs map[string]string) (*tracingObserver, context.Context) {
	if el.tracingCollector == nil {
		return &tracingObserver{el: el}, ctx
	}

	newCtx, span := el.tracingCollector.StartSpan(ctx, name, attrs)

	return &tracingObserver{el: el, span: span}, newCtx
}

func (to *tracingObserver) finishSuccess(
	eventCount int,
	maxSequenceNumber eventstore.MaxSequenceNumberUint,
	duration time.Duration,
) {
	if to.span == nil {
		return
	}

	to.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", toMilliseconds(duration)))
	to.el.tracingCollector.FinishSpan(to.span, statusSuccess, map[string]string{
		spanAttrEventCount:  fmt.Sprintf("%d", eventCount),
		spanAttrMaxSequence: fmt.Sprintf("%d", maxSequenceNumber),
	})
}

func (to *tracingObserver) finishError(errorType string, duration time.Duration) {
	if to.span == nil {
		return
	}

	to.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", toMilliseconds(duration)))
	to.el.tracingCollector.FinishSpan(to.span, statusError, map[string]string{
		spanAttrErrorType: errorType,
	})
}

// === Metrics ===

// metricsObserver encapsulates the metrics recording of a single query or append operation.
type metricsObserver struct {
	el                  *EventLog
	ctx                 context.Context
	operation           string
	durationMetric      string
	eventCountMetric    string
	recordEventsAsValue bool
}

func (el *EventLog) startQueryMetrics(ctx context.Context) *metricsObserver {
	return &metricsObserver{
		el:                  el,
		ctx:                 ctx,
		operation:           operationQuery,
		durationMetric:      metricQueryDuration,
		eventCountMetric:    metricEventsQueried,
		recordEventsAsValue: true,
	}
}

func (el *EventLog) startAppendMetrics(ctx context.Context) *metricsObserver {
	return &metricsObserver{
		el:               el,
		ctx:              ctx,
		operation:        operationAppend,
		durationMetric:   metricAppendDuration,
		eventCountMetric: metricEventsAppended,
	}
}

func (mo *metricsObserver) recordSuccess(eventCount int, duration time.Duration) {
	labels := map[string]string{spanAttrOperation: mo.operation, "status": statusSuccess}
	mo.el.recordDurationContext(mo.ctx, mo.durationMetric, duration, labels)

	if mo.recordEventsAsValue {
		mo.el.recordValueContext(mo.ctx, mo.eventCountMetric, float64(eventCount), labels)
		return
	}

	for range eventCount {
		mo.el.incrementCounterContext(mo.ctx, mo.eventCountMetric, labels)
	}
}

func (mo *metricsObserver) recordError(errorType string, duration time.Duration) {
	mo.el.recordDurationContext(mo.ctx, mo.durationMetric, duration, map[string]string{
		spanAttrOperation: mo.operation,
		"status":          statusError,
	})

	mo.el.incrementCounterContext(mo.ctx, metricErrors, map[string]string{
		spanAttrOperation: mo.operation,
		"status":          statusError,
		spanAttrErrorType: errorType,
	})
}
