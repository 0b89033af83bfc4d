// Package message implements the write side of a single Mixter message.
//
// The decision state is tiny: a message is either deleted or not. It is re-derived from
// the MessageDeleted events in the history (see DecisionProjection) and consulted by the
// pure deciders DecideQuack and DecideDelete.
//
// Two ways of running the deciders are provided:
//   - Message, built once from a history snapshot, which keeps its decision state current
//     by applying the events it publishes itself.
//   - QuackCommandHandler and DeleteCommandHandler, which read the history from the event log
//     on every call: Query -> Unmarshal -> Decide -> Publish.
//
// Deleting is idempotent: deleting an already deleted message publishes nothing.
// Quacking after a delete is allowed unless QuackRejectedAfterDelete is configured.
package message
