package eventstore

import (
	"slices"
)

// Filter selects events from an event log by event type and by position.
//
// A Filter without event types matches every event.
type Filter struct {
	eventTypes               []string
	sequenceNumberHigherThan MaxSequenceNumberUint
}

// EventTypes returns the sorted, deduplicated event types the Filter accepts.
func (f Filter) EventTypes() []string {
	return f.eventTypes
}

// SequenceNumberHigherThan returns the lower, exclusive sequence number bound. 0 means unbounded.
func (f Filter) SequenceNumberHigherThan() MaxSequenceNumberUint {
	return f.sequenceNumberHigherThan
}

// Matches reports whether the event has one of the Filter's event types.
// The sequence number bound is not checked here, since StorableEvent does not carry its position;
// event logs apply it themselves.
func (f Filter) Matches(event StorableEvent) bool {
	if len(f.eventTypes) == 0 {
		return true
	}

	_, found := slices.BinarySearch(f.eventTypes, event.EventType)

	return found
}

// FilterBuilder is the entry point for building a Filter:
//
//	BuildEventFilter().MatchingAnyEvent()
//	BuildEventFilter().Matching().AnyEventTypeOf("MessageDeleted").Finalize()
//	BuildEventFilter().WithSequenceNumberHigherThan(7).Matching().AnyEventTypeOf(...).Finalize()
type FilterBuilder interface {
	// Matching starts restricting the Filter by event type.
	Matching() EventTypeFilterBuilder

	// MatchingAnyEvent creates a Filter without event type restriction.
	MatchingAnyEvent() Filter

	// WithSequenceNumberHigherThan restricts the Filter to events appended after the given sequence number.
	WithSequenceNumberHigherThan(sequenceNumber MaxSequenceNumberUint) FilterBuilder
}

type EventTypeFilterBuilder interface {
	// AnyEventTypeOf accepts events of ANY of the given types.
	// Empty types are dropped, the rest is sorted and deduplicated.
	AnyEventTypeOf(eventType string, eventTypes ...string) CompletedFilterBuilder
}

type CompletedFilterBuilder interface {
	Finalize() Filter
}

type filterBuilder struct {
	filter Filter
}

// BuildEventFilter creates a FilterBuilder which must eventually be finalized with Finalize() or MatchingAnyEvent().
func BuildEventFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) Matching() EventTypeFilterBuilder {
	return fb
}

func (fb filterBuilder) AnyEventTypeOf(eventType string, eventTypes ...string) CompletedFilterBuilder {
	all := append([]string{eventType}, eventTypes...)
	all = slices.DeleteFunc(all, func(e string) bool { return e == "" })
	slices.Sort(all)
	fb.filter.eventTypes = slices.Clip(slices.Compact(all))

	return fb
}

func (fb filterBuilder) WithSequenceNumberHigherThan(sequenceNumber MaxSequenceNumberUint) FilterBuilder {
	fb.filter.sequenceNumberHigherThan = sequenceNumber

	return fb
}

func (fb filterBuilder) MatchingAnyEvent() Filter {
	return fb.filter
}

func (fb filterBuilder) Finalize() Filter {
	return fb.filter
}
