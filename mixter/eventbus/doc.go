// Package eventbus provides the synchronous publish/subscribe bus of the Mixter domain.
//
// A Bus owns the event log. Publish appends the event first and then calls every
// subscriber in registration order, on the caller's goroutine, before it returns.
// Publishes are serialized, so subscribers observe all events in exactly the order
// they were appended. Subscribers must not publish from inside Handle.
//
// Subscribers registered with Subscribe only see events published after registration.
// SubscribeWithReplay first feeds the current history to the subscriber and then registers it,
// without any publish slipping in between.
//
// Subscriber failures are handled according to the configured DispatchPolicy.
// In both policies the event stays appended.
package eventbus
