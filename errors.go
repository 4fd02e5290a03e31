package goconic

import "github.com/pkg/errors"

// Errors returned while formulating a problem. They are usually wrapped with
// additional context, so match them with errors.Is.
var (
	ErrMismatchedLength      = errors.New("mismatched length")
	ErrUnsupportedConstraint = errors.New("unsupported constraint")
	ErrUnsupportedCone       = errors.New("unsupported cone")
	ErrIndexOutOfRange       = errors.New("index out of range")
	ErrNotLoaded             = errors.New("no problem loaded")
	ErrNilProblem            = errors.New("nil problem")
)
