package timeline

// RetractionPolicy decides what a MessageDeleted event does to the timeline.
type RetractionPolicy int

const (
	// RemovePrevious removes the most recent timeline message.
	RemovePrevious RetractionPolicy = iota

	// KeepRetracted leaves the timeline unchanged.
	KeepRetracted
)

// Option configures a Timeline or a QueryHandler.
type Option func(*settings)

type settings struct {
	retractionPolicy RetractionPolicy
}

func buildSettings(opts []Option) settings {
	s := settings{retractionPolicy: RemovePrevious}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// WithRetractionPolicy sets how deletes are applied. The default is RemovePrevious.
func WithRetractionPolicy(policy RetractionPolicy) Option {
	return func(s *settings) {
		s.retractionPolicy = policy
	}
}
