// Package eventstore provides core abstractions and types for event logs.
//
// This package defines the fundamental types shared by event log implementations
// and their consumers: filters, storable events, observability interfaces,
// and common error definitions.
//
// Events can be selected based on:
//   - Event types
//   - A lower sequence number bound
//
// Key types:
//   - Filter: Defines criteria for querying events
//   - StorableEvent: Represents an event that can be stored and retrieved
//   - StorableEvents: Collection of storable events
//
// Common usage pattern:
//
//	filter := BuildEventFilter().
//		Matching().
//		AnyEventTypeOf("MessageDeleted").
//		Finalize()
//
//	events, maxSeq, err := eventLog.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
package eventstore
