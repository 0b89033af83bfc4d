package timeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/eventbus"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/features/query/timeline"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
)

func Test_Project(t *testing.T) {
	testCases := []struct {
		name     string
		history  core.DomainEvents
		policy   timeline.RetractionPolicy
		expected []string
	}{
		{name: "empty history", expected: []string{}},
		{
			name:     "quacks keep their order",
			history:  core.DomainEvents{givenQuacked("Hello"), givenQuacked("World")},
			expected: []string{"Hello", "World"},
		},
		{
			name:     "delete removes the most recent message",
			history:  core.DomainEvents{givenQuacked("Hello"), givenQuacked("World"), core.BuildMessageDeleted()},
			expected: []string{"Hello"},
		},
		{
			name:     "delete on empty timeline is a no-op",
			history:  core.DomainEvents{core.BuildMessageDeleted(), givenQuacked("Hello")},
			expected: []string{"Hello"},
		},
		{
			name: "every delete removes one more",
			history: core.DomainEvents{
				givenQuacked("Hello"),
				givenQuacked("World"),
				core.BuildMessageDeleted(),
				core.BuildMessageDeleted(),
				core.BuildMessageDeleted(),
			},
			expected: []string{},
		},
		{
			name:     "keep retracted ignores deletes",
			history:  core.DomainEvents{givenQuacked("Hello"), core.BuildMessageDeleted(), givenQuacked("World")},
			policy:   timeline.KeepRetracted,
			expected: []string{"Hello", "World"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			messages := timeline.Project(tc.history, tc.policy)

			// assert
			assertContents(t, messages, tc.expected...)
		})
	}
}

func Test_Project_FromBase_DoesNotModifyBase(t *testing.T) {
	// arrange
	base := []timeline.TimelineMessage{{Content: "Hello"}, {Content: "World"}}

	// act
	messages := timeline.Project(core.DomainEvents{core.BuildMessageDeleted(), givenQuacked("Again")}, timeline.RemovePrevious, base)

	// assert
	assertContents(t, messages, "Hello", "Again")
	assertContents(t, base, "Hello", "World")
}

func Test_Timeline_SubscribedToBus_FollowsPublishedEvents(t *testing.T) {
	// arrange
	bus := givenEventBus(t)
	ctx := context.Background()
	tl := timeline.NewTimeline()
	require.NoError(t, bus.Subscribe(tl))

	// act
	require.NoError(t, bus.Publish(ctx, givenQuacked("Hello")))
	require.NoError(t, bus.Publish(ctx, givenQuacked("World")))
	require.NoError(t, bus.Publish(ctx, core.BuildMessageDeleted()))
	require.NoError(t, bus.Publish(ctx, givenQuacked("General Kenobi")))

	// assert
	assertContents(t, tl.Messages(), "Hello", "General Kenobi")
}

func Test_Timeline_WithKeepRetracted_KeepsEveryQuack(t *testing.T) {
	// arrange
	tl := timeline.NewTimeline(timeline.WithRetractionPolicy(timeline.KeepRetracted))
	ctx := context.Background()

	// act
	require.NoError(t, tl.Handle(ctx, givenQuacked("Hello")))
	require.NoError(t, tl.Handle(ctx, core.BuildMessageDeleted()))

	// assert
	assertContents(t, tl.Messages(), "Hello")
}

func Test_Timeline_Messages_ReturnsCopy(t *testing.T) {
	// arrange
	tl := timeline.NewTimeline()
	require.NoError(t, tl.Handle(context.Background(), givenQuacked("Hello")))

	// act
	snapshot := tl.Messages()
	snapshot[0].Content = "Tampered"

	// assert
	assertContents(t, tl.Messages(), "Hello")
}

func Test_Timeline_SubscribedWithReplay_MatchesFromStartSubscriber(t *testing.T) {
	// arrange
	bus := givenEventBus(t)
	ctx := context.Background()
	fromStart := timeline.NewTimeline()
	require.NoError(t, bus.Subscribe(fromStart))
	require.NoError(t, bus.Publish(ctx, givenQuacked("Hello")))
	require.NoError(t, bus.Publish(ctx, givenQuacked("World")))
	require.NoError(t, bus.Publish(ctx, core.BuildMessageDeleted()))

	replayed := timeline.NewTimeline()

	// act
	require.NoError(t, bus.SubscribeWithReplay(ctx, replayed))
	require.NoError(t, bus.Publish(ctx, givenQuacked("Again")))

	// assert
	assert.Equal(t, fromStart.Messages(), replayed.Messages())
	assertContents(t, replayed.Messages(), "Hello", "Again")
}

func givenEventBus(t *testing.T) *eventbus.Bus {
	t.Helper()

	bus, err := eventbus.New()
	require.NoError(t, err)

	return bus
}

func givenQuacked(content core.MessageContent) core.DomainEvent {
	return core.BuildMessageQuacked(content)
}

func assertContents(t *testing.T, messages []timeline.TimelineMessage, expected ...string) {
	t.Helper()

	actual := make([]string, 0, len(messages))
	for _, m := range messages {
		actual = append(actual, m.Content)
	}

	if expected == nil {
		expected = []string{}
	}

	assert.Equal(t, expected, actual)
}
