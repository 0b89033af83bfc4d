package observable_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/shell"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/shell/observable"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/testutil/observability/testdoubles"
)

type mockCommand struct{}

func (mockCommand) CommandType() string {
	return "TestCommand"
}

type mockCommandHandler struct {
	mu     sync.Mutex
	calls  []mockCommand
	result shell.HandlerResult
	err    error
}

func newMockCommandHandler(result shell.HandlerResult, err error) *mockCommandHandler {
	return &mockCommandHandler{result: result, err: err}
}

func (h *mockCommandHandler) Handle(_ context.Context, command mockCommand) (shell.HandlerResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.calls = append(h.calls, command)

	return h.result, h.err
}

func (h *mockCommandHandler) callCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.calls)
}

func Test_CommandWrapper_Handle_Success_NonIdempotent(t *testing.T) {
	// arrange
	expectedResult := shell.NewSuccessResult("MessageQuacked")
	handler := newMockCommandHandler(expectedResult, nil)
	metricsSpy := testdoubles.NewMetricsCollectorSpy(true)
	tracingSpy := testdoubles.NewTracingCollectorSpy(true)
	loggerSpy := testdoubles.NewContextualLoggerSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		handler,
		observable.WithCommandMetrics[mockCommand](metricsSpy),
		observable.WithCommandTracing[mockCommand](tracingSpy),
		observable.WithCommandContextualLogging[mockCommand](loggerSpy),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, expectedResult, result)
	assert.Equal(t, 1, handler.callCount())

	assert.True(t, metricsSpy.HasDurationRecord(shell.CommandHandlerDurationMetric))
	assertCounterRecordedWithStatus(t, metricsSpy, shell.CommandHandlerCallsMetric, shell.StatusSuccess)
	assert.Equal(t, 0, metricsSpy.CounterRecordCount(shell.CommandHandlerIdempotentMetric))

	spans := tracingSpy.GetSpanRecordsForName(shell.SpanNameCommandHandle)
	require.Len(t, spans, 1)
	assert.Equal(t, "TestCommand", spans[0].StartAttributes[shell.LogAttrCommandType])
	assert.Equal(t, shell.StatusSuccess, spans[0].Status)

	assert.True(t, loggerSpy.HasInfoLog(shell.LogMsgCommandStarted))
	assert.True(t, loggerSpy.HasInfoLog(shell.LogMsgCommandCompleted))
}

func Test_CommandWrapper_Handle_Success_Idempotent(t *testing.T) {
	// arrange
	handler := newMockCommandHandler(shell.NewIdempotentResult(), nil)
	metricsSpy := testdoubles.NewMetricsCollectorSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		handler,
		observable.WithCommandMetrics[mockCommand](metricsSpy),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Equal(t, 1, metricsSpy.CounterRecordCount(shell.CommandHandlerIdempotentMetric))
	assertCounterRecordedWithStatus(t, metricsSpy, shell.CommandHandlerCallsMetric, shell.StatusIdempotent)
}

func Test_CommandWrapper_Handle_Errors_AreClassified(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus string
	}{
		{"business rule rejection", errors.Join(shell.ErrCommandRejected, errors.New("message deleted")), shell.StatusRejected},
		{"canceled context", context.Canceled, shell.StatusCanceled},
		{"expired context", context.DeadlineExceeded, shell.StatusTimeout},
		{"technical failure", errors.New("boom"), shell.StatusError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			handler := newMockCommandHandler(shell.NewErrorResult(), tc.err)
			metricsSpy := testdoubles.NewMetricsCollectorSpy(true)
			tracingSpy := testdoubles.NewTracingCollectorSpy(true)
			loggerSpy := testdoubles.NewContextualLoggerSpy(true)

			wrapper, err := observable.NewCommandWrapper[mockCommand](
				handler,
				observable.WithCommandMetrics[mockCommand](metricsSpy),
				observable.WithCommandTracing[mockCommand](tracingSpy),
				observable.WithCommandContextualLogging[mockCommand](loggerSpy),
			)
			require.NoError(t, err)

			// act
			_, err = wrapper.Handle(context.Background(), mockCommand{})

			// assert
			assert.ErrorIs(t, err, tc.err)
			assertCounterRecordedWithStatus(t, metricsSpy, shell.CommandHandlerCallsMetric, tc.expectedStatus)

			spans := tracingSpy.GetSpanRecordsForName(shell.SpanNameCommandHandle)
			require.Len(t, spans, 1)
			assert.Equal(t, tc.expectedStatus, spans[0].Status)
			assert.Equal(t, tc.err.Error(), spans[0].EndAttributes[shell.LogAttrError])

			assert.True(t, loggerSpy.HasErrorLog(shell.LogMsgCommandFailed))
		})
	}
}

func Test_CommandWrapper_Handle_RejectedCommand_CountsRejection(t *testing.T) {
	// arrange
	handler := newMockCommandHandler(shell.NewErrorResult(), errors.Join(shell.ErrCommandRejected, assert.AnError))
	metricsSpy := testdoubles.NewMetricsCollectorSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		handler,
		observable.WithCommandMetrics[mockCommand](metricsSpy),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, shell.ErrCommandRejected)
	assert.Equal(t, 1, metricsSpy.CounterRecordCount(shell.CommandHandlerRejectedMetric))
}

func Test_CommandWrapper_Handle_WithoutObservability_Delegates(t *testing.T) {
	// arrange
	handler := newMockCommandHandler(shell.NewSuccessResult("MessageDeleted"), nil)

	wrapper, err := observable.NewCommandWrapper[mockCommand](handler)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, "MessageDeleted", result.PublishedEventType)
	assert.Equal(t, 1, handler.callCount())
}

func assertCounterRecordedWithStatus(
	t *testing.T,
	metricsSpy *testdoubles.MetricsCollectorSpy,
	metric string,
	expectedStatus string,
) {
	t.Helper()

	for _, record := range metricsSpy.GetCounterRecords() {
		if record.Metric == metric && record.Labels[shell.LogAttrStatus] == expectedStatus {
			return
		}
	}

	assert.Failf(t, "counter not recorded", "expected %s with status %q", metric, expectedStatus)
}
