package quackcounter_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/eventbus"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/features/query/quackcounter"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
)

func Test_Project(t *testing.T) {
	testCases := []struct {
		name     string
		history  core.DomainEvents
		expected int
	}{
		{name: "empty history", history: nil, expected: 0},
		{
			name:     "two quacks",
			history:  core.DomainEvents{core.BuildMessageQuacked("Hello"), core.BuildMessageQuacked("World")},
			expected: 2,
		},
		{
			name: "two quacks and a delete",
			history: core.DomainEvents{
				core.BuildMessageQuacked("Hello"),
				core.BuildMessageQuacked("World"),
				core.BuildMessageDeleted(),
			},
			expected: 1,
		},
		{
			name:     "delete without quack goes negative",
			history:  core.DomainEvents{core.BuildMessageDeleted()},
			expected: -1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, quackcounter.Project(tc.history))
		})
	}
}

func Test_QuackCounter_Handle_IncrementsAndDecrements(t *testing.T) {
	// arrange
	counter := quackcounter.NewQuackCounter()
	ctx := context.Background()

	// act
	require.NoError(t, counter.Handle(ctx, core.BuildMessageQuacked("Hello")))
	require.NoError(t, counter.Handle(ctx, core.BuildMessageQuacked("World")))
	require.NoError(t, counter.Handle(ctx, core.BuildMessageDeleted()))

	// assert
	assert.Equal(t, 1, counter.Count())
}

func Test_QuackCounter_SubscribedToBus_CountsOnlyEventsAfterRegistration(t *testing.T) {
	// arrange
	bus := givenEventBus(t)
	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, core.BuildMessageQuacked("before")))

	counter := quackcounter.NewQuackCounter()
	require.NoError(t, bus.Subscribe(counter))

	// act
	require.NoError(t, bus.Publish(ctx, core.BuildMessageDeleted()))

	// assert
	assert.Equal(t, -1, counter.Count())
}

func Test_QuackCounter_SubscribedWithReplay_MatchesFromStartSubscriber(t *testing.T) {
	// arrange
	bus := givenEventBus(t)
	ctx := context.Background()
	fromStart := quackcounter.NewQuackCounter()
	require.NoError(t, bus.Subscribe(fromStart))
	require.NoError(t, bus.Publish(ctx, core.BuildMessageQuacked("Hello")))
	require.NoError(t, bus.Publish(ctx, core.BuildMessageQuacked("World")))

	replayed := quackcounter.NewQuackCounter()

	// act
	require.NoError(t, bus.SubscribeWithReplay(ctx, replayed))
	require.NoError(t, bus.Publish(ctx, core.BuildMessageDeleted()))

	// assert
	assert.Equal(t, 1, fromStart.Count())
	assert.Equal(t, fromStart.Count(), replayed.Count())
}

func Test_QuackCounter_IsSafeForConcurrentReads(t *testing.T) {
	// arrange
	bus := givenEventBus(t)
	counter := quackcounter.NewQuackCounter()
	require.NoError(t, bus.Subscribe(counter))
	const quacks = 50

	// act
	var wg sync.WaitGroup
	for range quacks {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, bus.Publish(context.Background(), core.BuildMessageQuacked("quack")))
		}()
		go func() {
			defer wg.Done()
			assert.GreaterOrEqual(t, counter.Count(), 0)
		}()
	}
	wg.Wait()

	// assert
	assert.Equal(t, quacks, counter.Count())
}

func givenEventBus(t *testing.T) *eventbus.Bus {
	t.Helper()

	bus, err := eventbus.New()
	require.NoError(t, err)

	return bus
}
