package message_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/eventbus"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/features/command/message"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/shell"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/shell/observable"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/testutil/observability/testdoubles"
)

func Test_CommandHandlers_Handle_Success(t *testing.T) {
	// arrange
	bus := givenEventBus(t)
	ctx := context.Background()
	quackHandler := message.NewQuackCommandHandler(bus, bus)
	deleteHandler := message.NewDeleteCommandHandler(bus, bus)

	// act
	quackResult, err := quackHandler.Handle(ctx, message.BuildQuackCommand("Hello"))
	require.NoError(t, err)
	deleteResult, err := deleteHandler.Handle(ctx, message.BuildDeleteCommand())
	require.NoError(t, err)

	// assert
	assertNonIdempotentResult(t, quackResult, core.MessageQuackedEventType)
	assertNonIdempotentResult(t, deleteResult, core.MessageDeletedEventType)
	verifyHistory(ctx, t, bus, givenQuacked("Hello"), core.BuildMessageDeleted())
}

func Test_DeleteCommandHandler_Handle_Idempotent_WhenAlreadyDeleted(t *testing.T) {
	// arrange
	bus := givenEventBus(t)
	ctx := context.Background()
	deleteHandler := message.NewDeleteCommandHandler(bus, bus)
	_, err := deleteHandler.Handle(ctx, message.BuildDeleteCommand())
	require.NoError(t, err)

	// act
	result, err := deleteHandler.Handle(ctx, message.BuildDeleteCommand())

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Empty(t, result.PublishedEventType)
	verifyHistory(ctx, t, bus, core.BuildMessageDeleted())
}

func Test_QuackCommandHandler_Handle_Rejected_WhenDeletedAndPolicyRejects(t *testing.T) {
	// arrange
	bus := givenEventBus(t)
	ctx := context.Background()
	_, err := message.NewDeleteCommandHandler(bus, bus).Handle(ctx, message.BuildDeleteCommand())
	require.NoError(t, err)

	quackHandler := message.NewQuackCommandHandler(bus, bus, message.WithQuackPolicy(message.QuackRejectedAfterDelete))

	// act
	result, err := quackHandler.Handle(ctx, message.BuildQuackCommand("Too late"))

	// assert
	assert.ErrorIs(t, err, shell.ErrCommandRejected)
	assert.ErrorIs(t, err, message.ErrMessageDeleted)
	assert.False(t, result.Idempotent)
	verifyHistory(ctx, t, bus, core.BuildMessageDeleted())
}

func Test_CommandHandler_Handle_WithCanceledContext_Fails(t *testing.T) {
	// arrange
	bus := givenEventBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	_, err := message.NewQuackCommandHandler(bus, bus).Handle(ctx, message.BuildQuackCommand("Hello"))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_ObservableCommandHandler_RecordsOutcomes(t *testing.T) {
	// arrange
	bus := givenEventBus(t)
	ctx := context.Background()
	metricsSpy := testdoubles.NewMetricsCollectorSpy(true)
	tracingSpy := testdoubles.NewTracingCollectorSpy(true)
	loggerSpy := testdoubles.NewContextualLoggerSpy(true)

	deleteHandler, err := observable.NewCommandWrapper[message.DeleteCommand](
		message.NewDeleteCommandHandler(bus, bus),
		observable.WithCommandMetrics[message.DeleteCommand](metricsSpy),
		observable.WithCommandTracing[message.DeleteCommand](tracingSpy),
		observable.WithCommandContextualLogging[message.DeleteCommand](loggerSpy),
	)
	require.NoError(t, err)

	// act
	_, err = deleteHandler.Handle(ctx, message.BuildDeleteCommand())
	require.NoError(t, err)
	result, err := deleteHandler.Handle(ctx, message.BuildDeleteCommand())
	require.NoError(t, err)

	// assert
	assert.True(t, result.Idempotent)
	assert.Equal(t, 2, metricsSpy.CounterRecordCount(shell.CommandHandlerCallsMetric))
	assert.Equal(t, 1, metricsSpy.CounterRecordCount(shell.CommandHandlerIdempotentMetric))

	spans := tracingSpy.GetSpanRecordsForName(shell.SpanNameCommandHandle)
	require.Len(t, spans, 2)
	assert.Equal(t, shell.StatusSuccess, spans[0].Status)
	assert.Equal(t, shell.StatusIdempotent, spans[1].Status)
	assert.True(t, loggerSpy.HasInfoLog(shell.LogMsgCommandCompleted))
}

func givenEventBus(t *testing.T) *eventbus.Bus {
	t.Helper()

	bus, err := eventbus.New()
	require.NoError(t, err)

	return bus
}

func assertNonIdempotentResult(t *testing.T, result shell.HandlerResult, expectedEventType string) {
	t.Helper()

	assert.False(t, result.Idempotent)
	assert.Equal(t, expectedEventType, result.PublishedEventType)
}

func verifyHistory(ctx context.Context, t *testing.T, bus *eventbus.Bus, expected ...core.DomainEvent) {
	t.Helper()

	history, err := bus.Events(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.DomainEvents(expected), history)
}
