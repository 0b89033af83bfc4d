package shell

import (
	"context"
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore"
)

// ErrMappingToEventMetadataFailed is returned when metadata conversion fails.
var ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

// MessageID represents a unique message identifier.
type MessageID = string

// CausationID represents the ID of the message that caused this event.
type CausationID = string

// CorrelationID represents the ID correlating related events.
type CorrelationID = string

// EventMetadata contains event tracking information.
type EventMetadata struct {
	MessageID     MessageID
	CausationID   CausationID
	CorrelationID CorrelationID
}

// BuildEventMetadata creates EventMetadata from UUID values.
func BuildEventMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}

type metadataContextKey string

const (
	causationIDKey   metadataContextKey = "mixter.causation_id"
	correlationIDKey metadataContextKey = "mixter.correlation_id"
)

// WithCausationID returns a context whose published events record causationID as their cause.
func WithCausationID(ctx context.Context, causationID uuid.UUID) context.Context {
	return context.WithValue(ctx, causationIDKey, causationID)
}

// WithCorrelationID returns a context whose published events share correlationID.
func WithCorrelationID(ctx context.Context, correlationID uuid.UUID) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

// NewEventMetadataFrom creates EventMetadata with a fresh MessageID.
// Causation and correlation IDs are taken from ctx and default to the new MessageID.
func NewEventMetadataFrom(ctx context.Context) EventMetadata {
	messageID := uuid.New()
	causationID := messageID
	correlationID := messageID

	if id, ok := ctx.Value(causationIDKey).(uuid.UUID); ok {
		causationID = id
	}

	if id, ok := ctx.Value(correlationIDKey).(uuid.UUID); ok {
		correlationID = id
	}

	return BuildEventMetadata(messageID, causationID, correlationID)
}

// EventMetadataFrom extracts EventMetadata from a StorableEvent.
func EventMetadataFrom(storableEvent eventstore.StorableEvent) (EventMetadata, error) {
	metadata := new(EventMetadata)
	err := jsoniter.ConfigFastest.Unmarshal(storableEvent.MetadataJSON, metadata)
	if err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return *metadata, nil
}
