// Package quackcounter maintains the number of quacks minus the number of deletes.
//
// QuackCounter is a live read model fed by the event bus. Registered with Subscribe it starts
// counting from the moment of registration; use SubscribeWithReplay to count the whole history.
// The count is never clamped, so it may go negative.
//
// QueryHandler computes the same number on demand from the event log.
package quackcounter
