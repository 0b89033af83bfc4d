package timeline

import (
	"slices"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
)

type evolver struct {
	policy RetractionPolicy
}

func (evolver) WhenMessageQuacked(messages []TimelineMessage, event core.MessageQuacked) []TimelineMessage {
	return append(messages, TimelineMessage{Content: event.Content})
}

func (e evolver) WhenMessageDeleted(messages []TimelineMessage, _ core.MessageDeleted) []TimelineMessage {
	if e.policy == KeepRetracted || len(messages) == 0 {
		return messages
	}

	return messages[:len(messages)-1]
}

// Project implements the query logic of the timeline.
// This is a pure function - it takes the domain events and optionally a base timeline to build upon.
//
// Query Logic:
//
//	GIVEN: All message events (or the events since the base timeline was built)
//	WHEN: MessageQuacked is applied
//	THEN: a TimelineMessage with its content is appended
//	WHEN: MessageDeleted is applied with RemovePrevious
//	THEN: the most recent TimelineMessage is removed, if there is one
func Project(history core.DomainEvents, policy RetractionPolicy, base ...[]TimelineMessage) []TimelineMessage {
	messages := make([]TimelineMessage, 0, len(history))
	if len(base) > 0 {
		messages = slices.Clone(base[0])
	}

	return core.Fold(messages, history, evolver{policy: policy})
}

// BuildEventFilter creates the filter for querying all events relevant for the timeline,
// optionally only those after a previous result.
func BuildEventFilter(after ...Result) eventstore.Filter {
	builder := eventstore.BuildEventFilter()
	if len(after) > 0 {
		builder = builder.WithSequenceNumberHigherThan(after[0].SequenceNumber)
	}

	return builder.
		Matching().
		AnyEventTypeOf(
			core.MessageQuackedEventType,
			core.MessageDeletedEventType,
		).
		Finalize()
}
