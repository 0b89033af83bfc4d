package timeline

import (
	"context"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/shell"
)

// QueryHandler orchestrates the complete query processing workflow: Query -> Unmarshal -> Project.
type QueryHandler struct {
	eventLog shell.QueriesEvents
	settings settings
}

// NewQueryHandler creates a new QueryHandler with the provided event log dependency.
func NewQueryHandler(eventLog shell.QueriesEvents, opts ...Option) QueryHandler {
	return QueryHandler{
		eventLog: eventLog,
		settings: buildSettings(opts),
	}
}

// Handle builds the timeline from the full history.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (Result, error) {
	return h.project(ctx, BuildEventFilter())
}

// Update reads only the events after base and applies them on top of base.
func (h QueryHandler) Update(ctx context.Context, base Result) (Result, error) {
	return h.project(ctx, BuildEventFilter(base), base.Messages)
}

func (h QueryHandler) project(ctx context.Context, filter eventstore.Filter, base ...[]TimelineMessage) (Result, error) {
	storableEvents, maxSequenceNumber, err := h.eventLog.Query(ctx, filter)
	if err != nil {
		return Result{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return Result{}, err
	}

	messages := Project(history, h.settings.retractionPolicy, base...)

	return Result{
		Messages:       messages,
		Count:          len(messages),
		SequenceNumber: maxSequenceNumber,
	}, nil
}
