package quackcounter

import (
	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
)

type counter struct{}

func (counter) WhenMessageQuacked(count int, _ core.MessageQuacked) int {
	return count + 1
}

func (counter) WhenMessageDeleted(count int, _ core.MessageDeleted) int {
	return count - 1
}

// Project counts quacks minus deletes over history.
func Project(history core.DomainEvents) int {
	return core.Fold(0, history, counter{})
}

// BuildEventFilter creates the filter for querying all events that change the count,
// optionally only those after a previous result.
func BuildEventFilter(after ...QuackCount) eventstore.Filter {
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
