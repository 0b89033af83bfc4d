package quackcounter

import (
	"context"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/shell"
)

// QueryHandler orchestrates the complete query processing workflow: Query -> Unmarshal -> Project.
type QueryHandler struct {
	eventLog shell.QueriesEvents
}

// NewQueryHandler creates a new QueryHandler with the provided event log dependency.
func NewQueryHandler(eventLog shell.QueriesEvents) QueryHandler {
	return QueryHandler{
		eventLog: eventLog,
	}
}

// Handle computes the count over the full history.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (QuackCount, error) {
	return h.project(ctx, QuackCount{}, BuildEventFilter())
}

// Update reads only the events after base and adds them to base.
func (h QueryHandler) Update(ctx context.Context, base QuackCount) (QuackCount, error) {
	return h.project(ctx, base, BuildEventFilter(base))
}

func (h QueryHandler) project(ctx context.Context, base QuackCount, filter eventstore.Filter) (QuackCount, error) {
	storableEvents, maxSequenceNumber, err := h.eventLog.Query(ctx, filter)
	if err != nil {
		return QuackCount{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return QuackCount{}, err
	}

	return QuackCount{
		Count:          base.Count + Project(history),
		SequenceNumber: maxSequenceNumber,
	}, nil
}
