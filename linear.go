package goconic

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LinearProblem is a plain linear program:
//
//	minimize (or maximize)  Objectiveᵀx
//	subject to              RowLower ≤ Matrix·x ≤ RowUpper
//	                        ColLower ≤ x ≤ ColUpper
//
// Use math.Inf(-1) and math.Inf(1) for missing bounds. Empty ColLower and
// ColUpper default to -∞ and +∞. Matrix may be nil when there are no rows.
type LinearProblem struct {
	Objective []float64
	Matrix    mat.Matrix
	ColLower  []float64
	ColUpper  []float64
	RowLower  []float64
	RowUpper  []float64
	Sense     Sense
}

// FormulateLinear converts a linear problem into canonical form. Column
// bounds become orthant rows, ranged rows are rejected.
func FormulateLinear(p *LinearProblem) (*CanonicalForm, error) {
	return formulateLinear(p, noopLogger{})
}

func formulateLinear(p *LinearProblem, logger Logger) (*CanonicalForm, error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	n := len(p.Objective)
	m, err := matrixRows(p.Matrix, n)
	if err != nil {
		return nil, err
	}

	colLower, err := expandBounds("column lower bounds", p.ColLower, n, math.Inf(-1))
	if err != nil {
		return nil, err
	}
	colUpper, err := expandBounds("column upper bounds", p.ColUpper, n, math.Inf(1))
	if err != nil {
		return nil, err
	}
	if len(p.RowLower) != m {
		return nil, errors.Wrapf(ErrMismatchedLength, "%d row lower bounds for %d rows", len(p.RowLower), m)
	}
	if len(p.RowUpper) != m {
		return nil, errors.Wrapf(ErrMismatchedLength, "%d row upper bounds for %d rows", len(p.RowUpper), m)
	}

	// classify rows up front so a ranged row fails before anything is built
	const (
		rowEq = iota
		rowLe
		rowGe
		rowFree
	)
	kinds := make([]int, m)
	numEq, numIneq := 0, 0
	for i := 0; i < m; i++ {
		lo, up := p.RowLower[i], p.RowUpper[i]
		switch {
		case lo == up:
			kinds[i] = rowEq
			numEq++
		case math.IsInf(lo, -1) && math.IsInf(up, 1):
			kinds[i] = rowFree
			logger.Print("dropping unconstrained row ", i)
		case math.IsInf(lo, -1):
			kinds[i] = rowLe
			numIneq++
		case math.IsInf(up, 1):
			kinds[i] = rowGe
			numIneq++
		default:
			return nil, errors.Wrapf(ErrUnsupportedConstraint, "row %d has range [%g, %g]", i, lo, up)
		}
	}
	for j := 0; j < n; j++ {
		if math.IsNaN(colLower[j]) || math.IsNaN(colUpper[j]) {
			return nil, errors.Wrapf(ErrUnsupportedConstraint, "column %d has bounds [%g, %g]", j, colLower[j], colUpper[j])
		}
		if isFinite(colLower[j]) {
			numIneq++
		}
		if isFinite(colUpper[j]) {
			numIneq++
		}
	}

	g := newTripletBuilder(n, numIneq, numIneq)
	for j := 0; j < n; j++ {
		if lb := colLower[j]; isFinite(lb) {
			g.set(g.addRow(-lb), j, -1)
		}
		if ub := colUpper[j]; isFinite(ub) {
			g.set(g.addRow(ub), j, 1)
		}
	}

	a := newTripletBuilder(n, numEq, 0)
	for i, kind := range kinds {
		switch kind {
		case rowEq:
			copyRow(a, p.Matrix, i, a.addRow(p.RowUpper[i]), 1, identityColumn)
		case rowLe:
			copyRow(g, p.Matrix, i, g.addRow(p.RowUpper[i]), 1, identityColumn)
		case rowGe:
			copyRow(g, p.Matrix, i, g.addRow(-p.RowLower[i]), -1, identityColumn)
		}
	}

	G, h := g.build()
	A, b := a.build()
	form := &CanonicalForm{
		NumVars: n,
		NumIneq: G.rows,
		NumEq:   A.rows,
		NumPos:  G.rows,
		G:       G,
		H:       h,
		A:       A,
		B:       b,
		C:       senseAdjusted(p.Objective, p.Sense),
		Map:     identityMap(n),
		Sense:   p.Sense,
	}
	logger.Print(form)
	return form, nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// expandBounds expands an empty bound slice to length n filled with fill.
func expandBounds(what string, bounds []float64, n int, fill float64) ([]float64, error) {
	switch len(bounds) {
	case n:
		return bounds, nil
	case 0:
		out := make([]float64, n)
		for i := range out {
			out[i] = fill
		}
		return out, nil
	default:
		return nil, errors.Wrapf(ErrMismatchedLength, "%d %s for %d variables", len(bounds), what, n)
	}
}

// matrixRows returns the row count of a constraint matrix that must have n
// columns. A nil matrix has no rows.
func matrixRows(a mat.Matrix, n int) (int, error) {
	if a == nil {
		return 0, nil
	}
	r, c := a.Dims()
	if c != n {
		return 0, errors.Wrapf(ErrMismatchedLength, "constraint matrix has %d columns for %d variables", c, n)
	}
	return r, nil
}

func identityColumn(j int) int { return j }

// copyRow copies row src of a into row dst of b, scaling by sign and moving
// column j to column col(j).
func copyRow(b *tripletBuilder, a mat.Matrix, src, dst int, sign float64, col func(int) int) {
	_, n := a.Dims()
	for j := 0; j < n; j++ {
		b.set(dst, col(j), sign*a.At(src, j))
	}
}

// senseAdjusted returns a copy of c, negated when maximizing.
func senseAdjusted(c []float64, sense Sense) []float64 {
	out := make([]float64, len(c))
	for i, v := range c {
		if sense == Maximize {
			v = -v
		}
		out[i] = v
	}
	return out
}
