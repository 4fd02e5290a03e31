/*
Copyright © 2015-2022 Leo Antunes <leo@costela.net>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

/*
Package ecos submits goconic canonical forms to the ECOS second-order cone
solver (https://github.com/embotech/ecos).

Every call to Solve sets up its own ECOS workspace and releases it before
returning, whatever the outcome, so a Solver may be shared between
goroutines.
*/
package ecos

// #cgo linux LDFLAGS: -lecos -lm
// #cgo linux CFLAGS: -I/usr/include/ecos -I/usr/local/include/ecos -DDLONG -DLDL_LONG
// #cgo darwin LDFLAGS: -L/usr/local/lib -lecos
// #cgo darwin CFLAGS: -I/usr/local/include/ecos -DDLONG -DLDL_LONG
// #include <stdlib.h>
// #include <ecos.h>
import "C"

import (
	"context"
	"unsafe"

	"github.com/costela/goconic"
	"github.com/pkg/errors"
)

/* Types */

// Solver is a goconic.Solver backed by ECOS.
type Solver struct {
	maxIter int
	feasTol float64
	absTol  float64
	relTol  float64
	verbose bool
}

var _ goconic.Solver = (*Solver)(nil)

type Option func(*Solver)

// WithMaxIterations caps the number of interior point iterations. Reaching
// the cap ends the solve with goconic.IterationLimitReached.
func WithMaxIterations(n int) Option {
	return func(s *Solver) {
		s.maxIter = n
	}
}

func WithFeasibilityTolerance(tol float64) Option {
	return func(s *Solver) {
		s.feasTol = tol
	}
}

func WithAbsoluteTolerance(tol float64) Option {
	return func(s *Solver) {
		s.absTol = tol
	}
}

func WithRelativeTolerance(tol float64) Option {
	return func(s *Solver) {
		s.relTol = tol
	}
}

// WithVerbose lets ECOS print its progress to stdout.
func WithVerbose(verbose bool) Option {
	return func(s *Solver) {
		s.verbose = verbose
	}
}

// NewSolver returns an ECOS solver. Settings not given as options keep the
// ECOS defaults.
func NewSolver(opts ...Option) *Solver {
	s := new(Solver)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

/* Solving */

// Solve implements goconic.Solver.
func (s *Solver) Solve(ctx context.Context, form *goconic.CanonicalForm) (*goconic.RawSolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// ECOS keeps pointers to its inputs inside the workspace, so they must
	// live in C memory
	var data cData
	defer data.free()

	gpr, gjc, gir := data.sparse(form.G)
	apr, ajc, air := data.sparse(form.A)
	q := data.ints(form.ConeDims)
	c := data.floats(form.C)
	h := data.floats(form.H)
	b := data.floats(form.B)

	work := C.ECOS_setup(
		C.idxint(form.NumVars), C.idxint(form.NumIneq), C.idxint(form.NumEq),
		C.idxint(form.NumPos), C.idxint(form.NumCones()), q, 0,
		gpr, gjc, gir,
		apr, ajc, air,
		c, h, b,
	)
	if work == nil {
		return nil, errors.Errorf("ECOS setup failed for %s", form)
	}
	defer C.ECOS_cleanup(work, 0)

	s.applySettings(work)

	exit := C.ECOS_solve(work)
	res := &goconic.RawSolution{Status: statusFromExit(exit)}
	if res.Status != goconic.Optimal && res.Status != goconic.IterationLimitReached {
		return res, nil
	}

	res.Objective = float64(work.info.pcost)
	res.X = make([]float64, form.NumVars)
	if form.NumVars > 0 {
		x := unsafe.Slice(work.x, form.NumVars)
		for i := range res.X {
			res.X[i] = float64(x[i])
		}
	}
	return res, nil
}

func (s *Solver) applySettings(work *C.pwork) {
	stgs := work.stgs
	if s.maxIter > 0 {
		stgs.maxit = C.idxint(s.maxIter)
	}
	if s.feasTol > 0 {
		stgs.feastol = C.pfloat(s.feasTol)
	}
	if s.absTol > 0 {
		stgs.abstol = C.pfloat(s.absTol)
	}
	if s.relTol > 0 {
		stgs.reltol = C.pfloat(s.relTol)
	}
	if s.verbose {
		stgs.verbose = 1
	} else {
		stgs.verbose = 0
	}
}

// statusFromExit maps ECOS exit codes. Codes in the "close to" range
// (exit + ECOS_INACC_OFFSET) count as their accurate counterparts.
func statusFromExit(exit C.idxint) goconic.Status {
	switch exit {
	case C.ECOS_OPTIMAL, C.ECOS_OPTIMAL + C.ECOS_INACC_OFFSET:
		return goconic.Optimal
	case C.ECOS_PINF, C.ECOS_PINF + C.ECOS_INACC_OFFSET:
		return goconic.PrimalInfeasible
	case C.ECOS_DINF, C.ECOS_DINF + C.ECOS_INACC_OFFSET:
		return goconic.DualInfeasible
	case C.ECOS_MAXIT:
		return goconic.IterationLimitReached
	default:
		return goconic.Error
	}
}
