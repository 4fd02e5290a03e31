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

package goconic

/* Types */

// Status is the terminal state reported by a solver.
type Status int

const (
	NotSolved Status = iota
	Optimal
	PrimalInfeasible
	DualInfeasible
	IterationLimitReached
	Error
)

// String returns a string representation of the given status.
func (s Status) String() string {
	switch s {
	case NotSolved:
		return "not solved"
	case Optimal:
		return "optimal"
	case PrimalInfeasible:
		return "primal infeasible"
	case DualInfeasible:
		return "dual infeasible"
	case IterationLimitReached:
		return "iteration limit reached"
	case Error:
		return "solver error"
	default:
		return "unknown status"
	}
}

// SolveResult holds a solution mapped back to the caller's variable order.
type SolveResult struct {
	status    Status
	objective float64
	values    []float64
}

func newSolveResult(form *CanonicalForm, raw *RawSolution) (*SolveResult, error) {
	res := &SolveResult{
		status:    raw.Status,
		objective: raw.Objective,
	}
	if form.Sense == Maximize {
		res.objective = -res.objective
	}
	if raw.X != nil {
		values, err := form.Map.Restore(raw.X)
		if err != nil {
			return nil, err
		}
		res.values = values
	}
	return res, nil
}

// Status reports how the solver terminated.
func (res *SolveResult) Status() Status {
	return res.status
}

// ObjectiveValue returns the value of the objective function in the sense
// of the loaded problem. It is only optimal if Status returns Optimal.
func (res *SolveResult) ObjectiveValue() float64 {
	return res.objective
}

// Values returns a copy of the primal solution in the original variable
// order, or nil if the solver returned none.
func (res *SolveResult) Values() []float64 {
	if res.values == nil {
		return nil
	}
	return append([]float64(nil), res.values...)
}

// Value returns the computed value of variable i. It returns 0 if there is
// no solution or i is out of range.
func (res *SolveResult) Value(i int) float64 {
	if i < 0 || i >= len(res.values) {
		return 0
	}
	return res.values[i]
}
