package shell

import (
	"context"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
)

// QueriesEvents defines the read-only access to an event log needed by command and query handlers.
type QueriesEvents interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// PublishesEvents defines the single write path into the event log.
// Implementations append the event first and then notify subscribers.
type PublishesEvents interface {
	Publish(ctx context.Context, event core.DomainEvent) error
}

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// QueryResult represents the contract for all query result types (projections).
// GetSequenceNumber returns the highest event sequence number included in the projection,
// enabling incremental updates from a previous result.
type QueryResult interface {
	GetSequenceNumber() uint
}

// CoreCommandHandler defines the contract for components that process commands with pure business logic:
// Query -> Unmarshal -> Decide -> Publish. Observability is added by wrapping it.
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// CoreQueryHandler defines the contract for components that process queries with pure business logic:
// Query -> Unmarshal -> Project. Observability is added by wrapping it.
type CoreQueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
