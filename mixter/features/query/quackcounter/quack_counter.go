package quackcounter

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
)

// QuackCounter is an eventbus subscriber that keeps a running count. It is safe for concurrent use.
type QuackCounter struct {
	mu    sync.RWMutex
	count int
}

// NewQuackCounter creates a counter starting at 0.
func NewQuackCounter() *QuackCounter {
	return &QuackCounter{}
}

// Handle adds 1 for MessageQuacked and subtracts 1 for MessageDeleted.
func (c *QuackCounter) Handle(_ context.Context, event core.DomainEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.count = core.Evolve(c.count, event, counter{})

	return nil
}

// Count returns the current value.
func (c *QuackCounter) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.count
}
