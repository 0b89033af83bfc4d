// Package timeline maintains the ordered list of quacked messages.
//
// With the default RemovePrevious policy a MessageDeleted event removes the most recent
// remaining timeline message, and is ignored when the timeline is empty. KeepRetracted
// ignores deletes entirely and keeps every quacked message.
//
// Timeline is the live read model fed by the event bus; QueryHandler computes the same
// list on demand from the event log.
package timeline
