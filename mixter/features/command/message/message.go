package message

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/eventbus"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/shell"
)

// Message is the command handler for one message, built from a history snapshot.
//
// Business rejections are reported through the returned core.DecisionResult.
// The error return is reserved for publishing failures.
// A Message is not safe for concurrent use.
type Message struct {
	projection DecisionProjection
	settings   settings
}

// NewMessage derives the decision state from history.
func NewMessage(history core.DomainEvents, opts ...Option) *Message {
	return &Message{
		projection: ProjectDecision(history),
		settings:   buildSettings(opts),
	}
}

// Quack publishes MessageQuacked with the given content.
func (m *Message) Quack(ctx context.Context, publisher shell.PublishesEvents, content core.MessageContent) (core.DecisionResult, error) {
	return m.execute(ctx, publisher, DecideQuack(m.projection, BuildQuackCommand(content), m.settings.quackPolicy))
}

// Delete publishes MessageDeleted unless the message is already deleted.
func (m *Message) Delete(ctx context.Context, publisher shell.PublishesEvents) (core.DecisionResult, error) {
	return m.execute(ctx, publisher, DecideDelete(m.projection, BuildDeleteCommand()))
}

// IsDeleted reports the current decision state.
func (m *Message) IsDeleted() bool {
	return m.projection.IsDeleted
}

func (m *Message) execute(ctx context.Context, publisher shell.PublishesEvents, result core.DecisionResult) (core.DecisionResult, error) {
	if !result.HasEventToPublish() {
		return result, nil
	}

	err := publisher.Publish(ctx, result.Event)
	if err == nil || errors.Is(err, eventbus.ErrSubscriberFailed) {
		// the event is in the log
		m.projection = m.projection.Apply(result.Event)
	}

	return result, err
}
