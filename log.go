package goconic

// Logger receives diagnostic messages about formulation and solving.
// *log.Logger satisfies it.
type Logger interface {
	Print(v ...interface{})
}

// LoggerFunc adapts a function to the Logger interface.
type LoggerFunc func(v ...interface{})

func (f LoggerFunc) Print(v ...interface{}) { f(v...) }

type noopLogger struct{}

func (noopLogger) Print(v ...interface{}) {}
