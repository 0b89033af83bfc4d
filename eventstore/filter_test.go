package eventstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore"
)

func Test_FilterBuilder_ValidCombinations(t *testing.T) {
	tests := []struct {
		name     string
		build    func() eventstore.Filter
		validate func(t *testing.T, filter eventstore.Filter)
	}{
		{
			name: "matching_any_event_creates_empty_filter",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().MatchingAnyEvent()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Empty(t, f.EventTypes())
				assert.Equal(t, uint(0), f.SequenceNumberHigherThan())
			},
		},
		{
			name: "sequence_bound_with_any_event",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					WithSequenceNumberHigherThan(3).
					MatchingAnyEvent()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Empty(t, f.EventTypes())
				assert.Equal(t, uint(3), f.SequenceNumberHigherThan())
			},
		},
		{
			name: "event_types_are_sorted_and_deduplicated",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("MessageQuacked", "", "MessageDeleted", "MessageQuacked").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Equal(t, []string{"MessageDeleted", "MessageQuacked"}, f.EventTypes())
			},
		},
		{
			name: "sequence_bound_with_event_types",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					WithSequenceNumberHigherThan(7).
					Matching().
					AnyEventTypeOf("MessageDeleted").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Equal(t, []string{"MessageDeleted"}, f.EventTypes())
				assert.Equal(t, uint(7), f.SequenceNumberHigherThan())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, tt.build())
		})
	}
}

func Test_Filter_Matches(t *testing.T) {
	quacked := givenStorableEvent(t, "MessageQuacked", `{"Content":"Hello"}`)
	deleted := givenStorableEvent(t, "MessageDeleted", `{}`)

	tests := []struct {
		name     string
		filter   eventstore.Filter
		event    eventstore.StorableEvent
		expected bool
	}{
		{
			name:     "empty filter matches everything",
			filter:   eventstore.BuildEventFilter().MatchingAnyEvent(),
			event:    deleted,
			expected: true,
		},
		{
			name:     "event type matches",
			filter:   eventstore.BuildEventFilter().Matching().AnyEventTypeOf("MessageDeleted").Finalize(),
			event:    deleted,
			expected: true,
		},
		{
			name:     "event type does not match",
			filter:   eventstore.BuildEventFilter().Matching().AnyEventTypeOf("MessageDeleted").Finalize(),
			event:    quacked,
			expected: false,
		},
		{
			name: "any of several event types matches",
			filter: eventstore.BuildEventFilter().
				Matching().
				AnyEventTypeOf("MessageDeleted", "MessageQuacked").
				Finalize(),
			event:    quacked,
			expected: true,
		},
		{
			name:     "only empty event types match everything",
			filter:   eventstore.BuildEventFilter().Matching().AnyEventTypeOf("").Finalize(),
			event:    quacked,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Matches(tt.event))
		})
	}
}

func givenStorableEvent(t *testing.T, eventType string, payloadJSON string) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEventWithEmptyMetadata(eventType, time.Now(), []byte(payloadJSON))
	require.NoError(t, err)

	return event
}
