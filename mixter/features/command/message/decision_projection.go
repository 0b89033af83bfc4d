package message

import (
	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
)

// DecisionProjection is the state the deciders need. Once IsDeleted is true it stays true.
type DecisionProjection struct {
	IsDeleted bool
}

type decisionEvolver struct{}

func (decisionEvolver) WhenMessageQuacked(state DecisionProjection, _ core.MessageQuacked) DecisionProjection {
	return state
}

func (decisionEvolver) WhenMessageDeleted(_ DecisionProjection, _ core.MessageDeleted) DecisionProjection {
	return DecisionProjection{IsDeleted: true}
}

// ProjectDecision folds the history, oldest first, into a DecisionProjection.
func ProjectDecision(history core.DomainEvents) DecisionProjection {
	return core.Fold(DecisionProjection{}, history, decisionEvolver{})
}

// Apply returns the projection after event.
func (p DecisionProjection) Apply(event core.DomainEvent) DecisionProjection {
	return core.Evolve(p, event, decisionEvolver{})
}

// BuildEventFilter creates the filter for querying all events relevant for the decision.
// MessageQuacked never changes the decision state, so only MessageDeleted is selected.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.MessageDeletedEventType).
		Finalize()
}
