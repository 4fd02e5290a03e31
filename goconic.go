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

GoConic is a library for formulating conic optimization problems and handing
them to second-order cone solvers.

Solvers such as ECOS only accept problems of the form

    minimize    cᵀx
    subject to  Ax = b
                h - Gx ∈ K

where K is a nonnegative orthant followed by a sequence of second-order
cones. GoConic rewrites general problems into that form. A conic problem tags
groups of variables and groups of constraint rows with the cone they belong
to; a linear problem gives lower and upper bounds for columns and rows.

As an example, the problem

    Minimize:
      y
    Subject to:
      y >= |x|
      x = 1

can be expressed with GoConic like this:

	package main

	import (
		"fmt"

		"github.com/costela/goconic"
		"github.com/costela/goconic/ecos"
		"gonum.org/v1/gonum/mat"
	)

	func main() {
		model, _ := goconic.NewModel(ecos.NewSolver())

		model.LoadConic(&goconic.ConicProblem{
			Objective: []float64{1, 0},
			Matrix:    mat.NewDense(1, 2, []float64{0, 1}),
			RHS:       []float64{1},
			ConstraintCones: []goconic.Cone{{Kind: goconic.Zero, Indices: []int{0}}},
			VariableCones:   []goconic.Cone{{Kind: goconic.SecondOrder, Indices: []int{0, 1}}},
		}) // you should check for errors

		result, _ := model.Solve()

		fmt.Printf("solution optimal? %t\n", result.Status() == goconic.Optimal)
		fmt.Printf("y = %f, x = %f\n", result.Value(0), result.Value(1))
	}

*/
package goconic

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

/* Types */

// Sense is the optimization direction of a problem.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Model holds the canonical form of the most recently loaded problem and
// the solver it is submitted to.
type Model struct {
	mu     sync.RWMutex
	solver Solver
	form   *CanonicalForm
	logger Logger
}

/* Model related functions */

// NewModel instantiates a model that solves problems with the given solver.
func NewModel(solver Solver, opts ...Option) (*Model, error) {
	if solver == nil {
		return nil, errors.New("nil solver")
	}

	model := &Model{
		solver: solver,
		logger: noopLogger{},
	}

	for _, opt := range opts {
		if err := opt(model); err != nil {
			return nil, errors.Wrap(err, "applying model option")
		}
	}

	return model, nil
}

// LoadLinear formulates a linear problem, replacing any previously loaded
// problem. On error the model is left without a problem.
func (model *Model) LoadLinear(p *LinearProblem) error {
	form, err := formulateLinear(p, model.logger)
	model.setForm(form)
	return errors.Wrap(err, "loading linear problem")
}

// LoadConic formulates a conic problem, replacing any previously loaded
// problem. On error the model is left without a problem.
func (model *Model) LoadConic(p *ConicProblem) error {
	form, err := formulateConic(p, model.logger)
	model.setForm(form)
	return errors.Wrap(err, "loading conic problem")
}

func (model *Model) setForm(form *CanonicalForm) {
	model.mu.Lock()
	defer model.mu.Unlock()

	model.form = form
}

// CanonicalForm returns the form built by the last successful load, or nil.
func (model *Model) CanonicalForm() *CanonicalForm {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.form
}

// Solve submits the loaded problem to the solver.
// A problem the solver could not solve is reported through the result's
// Status, not as an error.
func (model *Model) Solve() (*SolveResult, error) {
	return model.SolveWithContext(context.Background())
}

// SolveWithContext is like Solve, passing ctx on to the solver.
func (model *Model) SolveWithContext(ctx context.Context) (*SolveResult, error) {
	model.mu.RLock()
	defer model.mu.RUnlock()

	if model.form == nil {
		return nil, ErrNotLoaded
	}

	raw, err := model.solver.Solve(ctx, model.form)
	if err != nil {
		return nil, errors.Wrap(err, "solving")
	}
	model.logger.Print("solver finished with status ", raw.Status)

	return newSolveResult(model.form, raw)
}
