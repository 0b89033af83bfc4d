package eventbus

import (
	"context"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
)

// Subscriber reacts to published domain events.
type Subscriber interface {
	Handle(ctx context.Context, event core.DomainEvent) error
}

// SubscriberFunc adapts an ordinary function to the Subscriber interface.
type SubscriberFunc func(ctx context.Context, event core.DomainEvent) error

// Handle calls f(ctx, event).
func (f SubscriberFunc) Handle(ctx context.Context, event core.DomainEvent) error {
	return f(ctx, event)
}
