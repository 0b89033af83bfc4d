package message

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/shell"
)

// QuackCommandHandler orchestrates the complete Quack workflow: Query → Unmarshal → Decide → Publish.
// All observability concerns are handled by the external observable wrapper.
type QuackCommandHandler struct {
	eventLog  shell.QueriesEvents
	publisher shell.PublishesEvents
	settings  settings
}

// NewQuackCommandHandler creates a new QuackCommandHandler with optional configuration.
func NewQuackCommandHandler(eventLog shell.QueriesEvents, publisher shell.PublishesEvents, opts ...Option) QuackCommandHandler {
	return QuackCommandHandler{
		eventLog:  eventLog,
		publisher: publisher,
		settings:  buildSettings(opts),
	}
}

// Handle executes the Quack workflow. A business rejection is returned joined with shell.ErrCommandRejected.
func (h QuackCommandHandler) Handle(ctx context.Context, command QuackCommand) (shell.HandlerResult, error) {
	projection, err := loadDecisionProjection(ctx, h.eventLog)
	if err != nil {
		return shell.NewErrorResult(), err
	}

	return publishDecision(ctx, h.publisher, DecideQuack(projection, command, h.settings.quackPolicy))
}

// DeleteCommandHandler orchestrates the complete Delete workflow: Query → Unmarshal → Decide → Publish.
// All observability concerns are handled by the external observable wrapper.
type DeleteCommandHandler struct {
	eventLog  shell.QueriesEvents
	publisher shell.PublishesEvents
}

// NewDeleteCommandHandler creates a new DeleteCommandHandler.
func NewDeleteCommandHandler(eventLog shell.QueriesEvents, publisher shell.PublishesEvents) DeleteCommandHandler {
	return DeleteCommandHandler{
		eventLog:  eventLog,
		publisher: publisher,
	}
}

// Handle executes the Delete workflow. Deleting a deleted message yields an idempotent result.
func (h DeleteCommandHandler) Handle(ctx context.Context, command DeleteCommand) (shell.HandlerResult, error) {
	projection, err := loadDecisionProjection(ctx, h.eventLog)
	if err != nil {
		return shell.NewErrorResult(), err
	}

	return publishDecision(ctx, h.publisher, DecideDelete(projection, command))
}

func loadDecisionProjection(ctx context.Context, eventLog shell.QueriesEvents) (DecisionProjection, error) {
	storableEvents, _, err := eventLog.Query(ctx, BuildEventFilter())
	if err != nil {
		return DecisionProjection{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return DecisionProjection{}, err
	}

	return ProjectDecision(history), nil
}

func publishDecision(ctx context.Context, publisher shell.PublishesEvents, result core.DecisionResult) (shell.HandlerResult, error) {
	if err := result.HasError(); err != nil {
		return shell.NewErrorResult(), errors.Join(shell.ErrCommandRejected, err)
	}

	if result.IsIdempotent() {
		return shell.NewIdempotentResult(), nil
	}

	if err := publisher.Publish(ctx, result.Event); err != nil {
		return shell.NewErrorResult(), err
	}

	return shell.NewSuccessResult(result.Event.EventType()), nil
}
