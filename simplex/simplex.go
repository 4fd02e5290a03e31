// Package simplex solves canonical forms without second-order cones with
// the simplex implementation of gonum's optimize/convex/lp package.
//
// The canonical form min cᵀx s.t. Ax = b, h - Gx ≥ 0 is handed to
// lp.Convert, which splits every variable into positive and negative parts
// and adds one slack per inequality, and then to lp.Simplex.
package simplex

import (
	"context"

	"github.com/costela/goconic"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Solver is a goconic.Solver backed by gonum's simplex method. It holds no
// state between calls and is safe for concurrent use.
type Solver struct {
	tol    float64
	logger goconic.Logger
}

var _ goconic.Solver = (*Solver)(nil)

type Option func(*Solver)

// WithTolerance sets the simplex tolerance. Zero selects gonum's default.
func WithTolerance(tol float64) Option {
	return func(s *Solver) {
		s.tol = tol
	}
}

// WithLogger sets the logger that receives simplex failures.
func WithLogger(logger goconic.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

// NewSolver returns a simplex solver.
func NewSolver(opts ...Option) *Solver {
	s := &Solver{logger: goconic.LoggerFunc(func(...interface{}) {})}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve implements goconic.Solver. Forms with second-order cones are
// rejected with goconic.ErrUnsupportedCone.
func (s *Solver) Solve(ctx context.Context, form *goconic.CanonicalForm) (*goconic.RawSolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if form.NumCones() > 0 {
		return nil, errors.Wrapf(goconic.ErrUnsupportedCone, "simplex cannot handle %d second-order cones", form.NumCones())
	}

	p, status := reduce(form)
	if status != goconic.NotSolved {
		return &goconic.RawSolution{Status: status}, nil
	}
	x := make([]float64, form.NumVars)
	if len(p.cols) == 0 || len(p.h)+len(p.b) == 0 {
		// everything left is trivially satisfied at x = 0
		return &goconic.RawSolution{Status: goconic.Optimal, X: x}, nil
	}

	c, a, b := lp.Convert(p.c, p.g, p.h, p.a, p.b)
	opt, xt, err := lp.Simplex(c, a, b, s.tol, nil)
	switch {
	case err == nil:
	case errors.Is(err, lp.ErrInfeasible):
		return &goconic.RawSolution{Status: goconic.PrimalInfeasible}, nil
	case errors.Is(err, lp.ErrUnbounded):
		return &goconic.RawSolution{Status: goconic.DualInfeasible}, nil
	default:
		s.logger.Print("simplex failed: ", err)
		return &goconic.RawSolution{Status: goconic.Error}, nil
	}

	n := len(p.cols)
	for k, j := range p.cols {
		x[j] = xt[k] - xt[n+k]
	}
	return &goconic.RawSolution{Status: goconic.Optimal, X: x, Objective: opt}, nil
}

// reduced is a canonical form without empty columns and empty equality rows,
// which lp.Simplex refuses.
type reduced struct {
	cols []int // kept canonical columns
	c    []float64
	g    mat.Matrix
	h    []float64
	a    mat.Matrix
	b    []float64
}

// reduce drops variables that appear in no constraint and equality rows
// without coefficients. It returns a terminal status when that alone
// decides the problem.
func reduce(form *goconic.CanonicalForm) (*reduced, goconic.Status) {
	p := &reduced{}
	for j := 0; j < form.NumVars; j++ {
		used := form.G.ColPtr[j+1] > form.G.ColPtr[j] || form.A.ColPtr[j+1] > form.A.ColPtr[j]
		switch {
		case used:
			p.cols = append(p.cols, j)
			p.c = append(p.c, form.C[j])
		case form.C[j] != 0:
			return nil, goconic.DualInfeasible
		}
	}

	eqUsed := make([]bool, form.NumEq)
	for _, i := range form.A.RowIdx {
		eqUsed[i] = true
	}
	var eqRows []int
	for i, ok := range eqUsed {
		switch {
		case ok:
			eqRows = append(eqRows, i)
		case form.B[i] != 0:
			return nil, goconic.PrimalInfeasible
		}
	}

	if len(p.cols) == 0 {
		for _, v := range form.H {
			if v < 0 {
				return nil, goconic.PrimalInfeasible
			}
		}
		return p, goconic.NotSolved
	}

	if form.NumIneq > 0 {
		p.g = submatrix(form.G, seq(form.NumIneq), p.cols)
		p.h = form.H
	}
	if len(eqRows) > 0 {
		p.a = submatrix(form.A, eqRows, p.cols)
		for _, i := range eqRows {
			p.b = append(p.b, form.B[i])
		}
	}
	return p, goconic.NotSolved
}

func submatrix(m mat.Matrix, rows, cols []int) *mat.Dense {
	d := mat.NewDense(len(rows), len(cols), nil)
	for r, i := range rows {
		for c, j := range cols {
			if v := m.At(i, j); v != 0 {
				d.Set(r, c, v)
			}
		}
	}
	return d
}

func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}
