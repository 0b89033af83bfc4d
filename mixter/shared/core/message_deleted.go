package core

// MessageDeletedEventType is the event type identifier.
const MessageDeletedEventType = "MessageDeleted"

// MessageDeleted represents the deletion of a message. It carries no payload.
type MessageDeleted struct{}

// BuildMessageDeleted creates a new MessageDeleted event.
func BuildMessageDeleted() MessageDeleted {
	return MessageDeleted{}
}

// EventType returns the event type identifier.
func (e MessageDeleted) EventType() string {
	return MessageDeletedEventType
}

func (e MessageDeleted) isDomainEvent() {}
