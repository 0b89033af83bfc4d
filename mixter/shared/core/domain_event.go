package core

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent represents a business event that has occurred in the domain.
type DomainEvent interface {
	// EventType returns the string identifier for this event type.
	EventType() string

	isDomainEvent()
}

// IsNilEvent reports whether event is nil or a nil pointer to one of the variants.
func IsNilEvent(event DomainEvent) bool {
	switch e := event.(type) {
	case nil:
		return true
	case *MessageQuacked:
		return e == nil
	case *MessageDeleted:
		return e == nil
	default:
		return false
	}
}
