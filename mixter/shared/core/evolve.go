package core

// Evolver computes the next state of a projection for each domain event variant.
type Evolver[S any] interface {
	WhenMessageQuacked(state S, event MessageQuacked) S
	WhenMessageDeleted(state S, event MessageDeleted) S
}

// Evolve applies a single event to state, dispatching on its variant.
// A nil event, or a nil pointer variant, leaves the state unchanged.
func Evolve[S any](state S, event DomainEvent, evolver Evolver[S]) S {
	if IsNilEvent(event) {
		return state
	}

	switch e := event.(type) {
	case MessageQuacked:
		return evolver.WhenMessageQuacked(state, e)

	case *MessageQuacked:
		return evolver.WhenMessageQuacked(state, *e)

	case MessageDeleted:
		return evolver.WhenMessageDeleted(state, e)

	case *MessageDeleted:
		return evolver.WhenMessageDeleted(state, *e)

	default:
		return state
	}
}

// Fold is the left fold of history over initial, oldest event first.
func Fold[S any](initial S, history DomainEvents, evolver Evolver[S]) S {
	state := initial

	for _, event := range history {
		state = Evolve(state, event, evolver)
	}

	return state
}
