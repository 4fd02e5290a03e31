package goconic

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ConicProblem is a conic program in the form
//
//	minimize (or maximize)  Objectiveᵀx
//	subject to              RHS - Matrix·x ∈ K₁
//	                        x ∈ K₂
//
// where K₁ is described by ConstraintCones (rows not listed are treated as
// equalities) and K₂ by VariableCones, which must cover every variable
// exactly once. All indices are zero-based.
type ConicProblem struct {
	Objective       []float64
	Matrix          mat.Matrix
	RHS             []float64
	ConstraintCones []Cone
	VariableCones   []Cone
	Sense           Sense
}

// FormulateConic converts a conic problem into canonical form.
func FormulateConic(p *ConicProblem) (*CanonicalForm, error) {
	return formulateConic(p, noopLogger{})
}

func formulateConic(p *ConicProblem, logger Logger) (*CanonicalForm, error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	if err := validateCones(p.ConstraintCones, p.VariableCones); err != nil {
		return nil, err
	}

	n := len(p.Objective)
	m, err := matrixRows(p.Matrix, n)
	if err != nil {
		return nil, err
	}
	if len(p.RHS) != m {
		return nil, errors.Wrapf(ErrMismatchedLength, "%d right-hand side values for %d rows", len(p.RHS), m)
	}

	idx, err := NewIndexMap(p.VariableCones, n)
	if err != nil {
		return nil, err
	}
	if err := checkRowCones(p.ConstraintCones, m); err != nil {
		return nil, err
	}

	// size every block before filling it
	var numZero, numIneq int
	for _, c := range p.VariableCones {
		switch c.Kind {
		case Zero:
			numZero += len(c.Indices)
		case NonNeg, NonPos, SecondOrder:
			numIneq += len(c.Indices)
		}
	}
	moved := 0
	for _, c := range p.ConstraintCones {
		if c.Kind != Zero {
			moved += len(c.Indices)
		}
	}
	numIneq += moved

	g := newTripletBuilder(n, numIneq, numIneq)
	removed := make([]bool, m)
	var coneDims []int

	// variable sign restrictions: x ≥ 0 is 0 - (-1)x ≥ 0, x ≤ 0 is 0 - x ≥ 0
	for _, c := range p.VariableCones {
		var coef float64
		switch c.Kind {
		case NonNeg:
			coef = -1
		case NonPos:
			coef = 1
		default:
			continue
		}
		for _, j := range c.Indices {
			g.set(g.addRow(0), idx.Canonical(j), coef)
		}
	}

	// orthant constraint rows
	for _, c := range p.ConstraintCones {
		var sign float64
		switch c.Kind {
		case NonNeg:
			sign = 1
		case NonPos:
			sign = -1
		default:
			continue
		}
		for _, i := range c.Indices {
			copyRow(g, p.Matrix, i, g.addRow(sign*p.RHS[i]), sign, idx.Canonical)
			removed[i] = true
		}
	}
	numPos := g.rows

	// second-order cones over variables, then over constraint rows
	for _, c := range p.VariableCones {
		if c.Kind != SecondOrder || len(c.Indices) == 0 {
			continue
		}
		for _, j := range c.Indices {
			g.set(g.addRow(0), idx.Canonical(j), -1)
		}
		coneDims = append(coneDims, len(c.Indices))
	}
	for _, c := range p.ConstraintCones {
		if c.Kind != SecondOrder || len(c.Indices) == 0 {
			continue
		}
		for _, i := range c.Indices {
			copyRow(g, p.Matrix, i, g.addRow(p.RHS[i]), 1, idx.Canonical)
			removed[i] = true
		}
		coneDims = append(coneDims, len(c.Indices))
	}

	// surviving rows stay equalities, followed by x = 0 for Zero variables
	a := newTripletBuilder(n, m-moved+numZero, 0)
	for i := 0; i < m; i++ {
		if !removed[i] {
			copyRow(a, p.Matrix, i, a.addRow(p.RHS[i]), 1, idx.Canonical)
		}
	}
	for _, c := range p.VariableCones {
		if c.Kind != Zero {
			continue
		}
		for _, j := range c.Indices {
			a.set(a.addRow(0), idx.Canonical(j), 1)
		}
	}

	G, h := g.build()
	A, b := a.build()
	form := &CanonicalForm{
		NumVars:  n,
		NumIneq:  G.rows,
		NumEq:    A.rows,
		NumPos:   numPos,
		ConeDims: coneDims,
		G:        G,
		H:        h,
		A:        A,
		B:        b,
		C:        idx.permute(senseAdjusted(p.Objective, p.Sense)),
		Map:      idx,
		Sense:    p.Sense,
	}
	logger.Print(form)
	return form, nil
}

// checkRowCones verifies that constraint cones reference rows inside the
// matrix and that no row belongs to two cones.
func checkRowCones(cones []Cone, m int) error {
	seen := make([]bool, m)
	for ci, c := range cones {
		for _, i := range c.Indices {
			if i < 0 || i >= m {
				return errors.Wrapf(ErrIndexOutOfRange, "constraint cone %d references row %d of %d", ci, i, m)
			}
			if seen[i] {
				return errors.Wrapf(ErrIndexOutOfRange, "row %d assigned to more than one cone", i)
			}
			seen[i] = true
		}
	}
	return nil
}
