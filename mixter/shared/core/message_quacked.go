package core

// MessageQuackedEventType is the event type identifier.
const MessageQuackedEventType = "MessageQuacked"

// MessageContent is the text of a quacked message.
type MessageContent = string

// MessageQuacked represents a message that was posted.
type MessageQuacked struct {
	Content MessageContent
}

// BuildMessageQuacked creates a new MessageQuacked event.
func BuildMessageQuacked(content MessageContent) MessageQuacked {
	return MessageQuacked{
		Content: content,
	}
}

// EventType returns the event type identifier.
func (e MessageQuacked) EventType() string {
	return MessageQuackedEventType
}

func (e MessageQuacked) isDomainEvent() {}
