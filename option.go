package goconic

type Option func(*Model) error

func WithLogger(logger Logger) Option {
	return func(m *Model) error {
		if logger == nil {
			logger = noopLogger{}
		}
		m.logger = logger

		return nil
	}
}
