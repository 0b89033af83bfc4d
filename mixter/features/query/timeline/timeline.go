package timeline

import (
	"context"
	"slices"
	"sync"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
)

// TimelineMessage is one entry of the timeline.
type TimelineMessage struct {
	Content core.MessageContent
}

// Timeline is an eventbus subscriber that keeps the timeline current. It is safe for concurrent use.
type Timeline struct {
	mu       sync.RWMutex
	messages []TimelineMessage
	evolver  evolver
}

// NewTimeline creates an empty Timeline.
func NewTimeline(opts ...Option) *Timeline {
	return &Timeline{
		messages: make([]TimelineMessage, 0),
		evolver:  evolver{policy: buildSettings(opts).retractionPolicy},
	}
}

// Handle applies the event to the timeline.
func (t *Timeline) Handle(_ context.Context, event core.DomainEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = core.Evolve(t.messages, event, t.evolver)

	return nil
}

// Messages returns a copy of the timeline, oldest first.
func (t *Timeline) Messages() []TimelineMessage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return slices.Clone(t.messages)
}
