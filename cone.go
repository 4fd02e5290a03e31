package goconic

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConeKind identifies the convex cone a group of variables or constraint
// rows belongs to.
type ConeKind int

const (
	Free ConeKind = iota
	Zero
	NonNeg
	NonPos
	SecondOrder

	// The kinds below can be named but are always rejected.
	RotatedSecondOrder
	SemiDefinite
	ExpPrimal
	ExpDual
)

func (k ConeKind) String() string {
	switch k {
	case Free:
		return "Free"
	case Zero:
		return "Zero"
	case NonNeg:
		return "NonNeg"
	case NonPos:
		return "NonPos"
	case SecondOrder:
		return "SOC"
	case RotatedSecondOrder:
		return "SOCRotated"
	case SemiDefinite:
		return "SDP"
	case ExpPrimal:
		return "ExpPrimal"
	case ExpDual:
		return "ExpDual"
	default:
		return fmt.Sprintf("ConeKind(%d)", int(k))
	}
}

// Supported reports whether k can be expressed in the canonical form.
func (k ConeKind) Supported() bool {
	switch k {
	case Free, Zero, NonNeg, NonPos, SecondOrder:
		return true
	default:
		return false
	}
}

// Cone assigns a set of zero-based variable or row indices to a cone.
// For SecondOrder cones the first index is the epigraph variable (or row):
// the members (t, x...) satisfy t >= ||x||.
type Cone struct {
	Kind    ConeKind
	Indices []int
}

// validateCones checks both assignment lists before anything is built.
func validateCones(constraints, variables []Cone) error {
	for i, c := range variables {
		if !c.Kind.Supported() {
			return errors.Wrapf(ErrUnsupportedCone, "variable cone %d has kind %s", i, c.Kind)
		}
	}
	for i, c := range constraints {
		if !c.Kind.Supported() {
			return errors.Wrapf(ErrUnsupportedCone, "constraint cone %d has kind %s", i, c.Kind)
		}
		if c.Kind == Free {
			return errors.Wrapf(ErrUnsupportedConstraint, "constraint cone %d is Free", i)
		}
	}
	return nil
}
