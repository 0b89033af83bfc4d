package message

import (
	"errors"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
)

// ErrMessageDeleted is the business error for quacking a deleted message under QuackRejectedAfterDelete.
var ErrMessageDeleted = errors.New("message is deleted")

// QuackPolicy decides whether a deleted message may still be quacked.
type QuackPolicy int

const (
	// QuackAllowedAfterDelete lets Quack publish regardless of the decision state.
	QuackAllowedAfterDelete QuackPolicy = iota

	// QuackRejectedAfterDelete makes Quack fail with ErrMessageDeleted once the message is deleted.
	QuackRejectedAfterDelete
)

// DecideQuack determines whether a MessageQuacked event should be published.
//
// Business Rules:
//
//	WHEN: Quack command is received
//	THEN: MessageQuacked event with the command's content is generated
//	ERROR: ErrMessageDeleted if the message is deleted and the policy is QuackRejectedAfterDelete
func DecideQuack(projection DecisionProjection, command QuackCommand, policy QuackPolicy) core.DecisionResult {
	if projection.IsDeleted && policy == QuackRejectedAfterDelete {
		return core.ErrorDecision(ErrMessageDeleted)
	}

	return core.SuccessDecision(core.BuildMessageQuacked(command.Content))
}

// DecideDelete determines whether a MessageDeleted event should be published.
//
// Business Rules:
//
//	WHEN: Delete command is received
//	THEN: MessageDeleted event is generated
//	IDEMPOTENCY: If the message is already deleted, no event is generated
func DecideDelete(projection DecisionProjection, _ DeleteCommand) core.DecisionResult {
	if projection.IsDeleted {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildMessageDeleted())
}
