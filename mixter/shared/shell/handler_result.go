package shell

// HandlerResult represents the outcome of a command handler execution.
// It captures business outcomes without coupling the handler to specific observability implementations.
type HandlerResult struct {
	// Idempotent indicates whether the operation was idempotent (no state change needed).
	// This is a first-class business outcome, not an error condition.
	Idempotent bool

	// PublishedEventType is the type of the event that was published, empty if none was.
	PublishedEventType string
}

// NewSuccessResult creates a HandlerResult for operations that published an event.
func NewSuccessResult(publishedEventType string) HandlerResult {
	return HandlerResult{
		PublishedEventType: publishedEventType,
	}
}

// NewIdempotentResult creates a HandlerResult for idempotent operations.
func NewIdempotentResult() HandlerResult {
	return HandlerResult{
		Idempotent: true,
	}
}

// NewErrorResult creates a HandlerResult for failed or rejected operations.
func NewErrorResult() HandlerResult {
	return HandlerResult{}
}
