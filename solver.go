package goconic

import "context"

// Solver solves problems in canonical form. Implementations must release
// any native resources before Solve returns, whatever the outcome.
//
// Failing to find a solution is reported through RawSolution.Status; an
// error means the form could not be submitted at all.
type Solver interface {
	Solve(ctx context.Context, form *CanonicalForm) (*RawSolution, error)
}

// RawSolution is a solver's answer in canonical variable order and in the
// canonical (minimizing) sense.
type RawSolution struct {
	Status    Status
	X         []float64
	Objective float64
}
