package message

// Option configures a Message or a command handler.
type Option func(*settings)

type settings struct {
	quackPolicy QuackPolicy
}

func buildSettings(opts []Option) settings {
	s := settings{quackPolicy: QuackAllowedAfterDelete}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// WithQuackPolicy sets whether quacking a deleted message is allowed. The default is QuackAllowedAfterDelete.
func WithQuackPolicy(policy QuackPolicy) Option {
	return func(s *settings) {
		s.quackPolicy = policy
	}
}
