package simplex

import (
	"context"
	"math"
	"testing"

	"github.com/costela/goconic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const (
	delta = 0.000001 // acceptable numerical deviation for test results
)

func solve(t *testing.T, load func(*goconic.Model) error) *goconic.SolveResult {
	t.Helper()

	model, err := goconic.NewModel(NewSolver())
	require.NoError(t, err)
	require.NoError(t, load(model))

	res, err := model.Solve()
	require.NoError(t, err)
	return res
}

func TestSolveLP(t *testing.T) {
	res := solve(t, func(m *goconic.Model) error {
		return m.LoadLinear(&goconic.LinearProblem{
			Objective: []float64{1, 2, -1},
			Matrix: mat.NewDense(3, 3, []float64{
				2, 1, 1,
				4, 2, 3,
				2, 5, 5,
			}),
			ColLower: []float64{0, 0, 0},
			RowLower: []float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
			RowUpper: []float64{14, 28, 30},
			Sense:    goconic.Maximize,
		})
	})

	expected_xs := []float64{5, 4, 0}
	expected_obj := 13.0

	assert.Equal(t, goconic.Optimal, res.Status())
	assert.InDelta(t, expected_obj, res.ObjectiveValue(), delta)
	for i, x := range res.Values() {
		assert.InDelta(t, expected_xs[i], x, delta)
	}
}

func TestSolveConicOrthant(t *testing.T) {
	// minimize x0 + x1 with x0 ≥ 1 (as -1 + x0 ≥ 0), x1 ≥ 0 and x0 + x1 = 3
	res := solve(t, func(m *goconic.Model) error {
		return m.LoadConic(&goconic.ConicProblem{
			Objective: []float64{1, 2},
			Matrix: mat.NewDense(2, 2, []float64{
				-1, 0,
				1, 1,
			}),
			RHS:             []float64{-1, 3},
			ConstraintCones: []goconic.Cone{{Kind: goconic.NonNeg, Indices: []int{0}}},
			VariableCones: []goconic.Cone{
				{Kind: goconic.Free, Indices: []int{0}},
				{Kind: goconic.NonNeg, Indices: []int{1}},
			},
		})
	})

	assert.Equal(t, goconic.Optimal, res.Status())
	assert.InDelta(t, 3, res.Value(0), delta)
	assert.InDelta(t, 0, res.Value(1), delta)
	assert.InDelta(t, 3, res.ObjectiveValue(), delta)
}

func TestSolveInfeasible(t *testing.T) {
	// x ≥ 1 and x ≤ 0
	res := solve(t, func(m *goconic.Model) error {
		return m.LoadConic(&goconic.ConicProblem{
			Objective:       []float64{1},
			Matrix:          mat.NewDense(2, 1, []float64{-1, 1}),
			RHS:             []float64{-1, 0},
			ConstraintCones: []goconic.Cone{{Kind: goconic.NonNeg, Indices: []int{0, 1}}},
			VariableCones:   []goconic.Cone{{Kind: goconic.Free, Indices: []int{0}}},
		})
	})

	assert.Equal(t, goconic.PrimalInfeasible, res.Status())
	assert.Nil(t, res.Values())
}

func TestSolveUnbounded(t *testing.T) {
	// minimize x with x ≤ 1
	res := solve(t, func(m *goconic.Model) error {
		return m.LoadLinear(&goconic.LinearProblem{
			Objective: []float64{1},
			ColUpper:  []float64{1},
		})
	})

	assert.Equal(t, goconic.DualInfeasible, res.Status())
}

func TestSolveUnusedVariables(t *testing.T) {
	// x1 appears nowhere; with a cost it makes the problem unbounded
	res := solve(t, func(m *goconic.Model) error {
		return m.LoadLinear(&goconic.LinearProblem{
			Objective: []float64{1, 1},
			ColLower:  []float64{2, math.Inf(-1)},
		})
	})
	assert.Equal(t, goconic.DualInfeasible, res.Status())

	res = solve(t, func(m *goconic.Model) error {
		return m.LoadLinear(&goconic.LinearProblem{
			Objective: []float64{1, 0},
			ColLower:  []float64{2, math.Inf(-1)},
		})
	})
	require.Equal(t, goconic.Optimal, res.Status())
	assert.InDelta(t, 2, res.Value(0), delta)
	assert.Equal(t, 0.0, res.Value(1))
	assert.InDelta(t, 2, res.ObjectiveValue(), delta)
}

func TestSolveNoConstraints(t *testing.T) {
	res := solve(t, func(m *goconic.Model) error {
		return m.LoadLinear(&goconic.LinearProblem{Objective: []float64{0, 0}})
	})

	assert.Equal(t, goconic.Optimal, res.Status())
	assert.Equal(t, []float64{0, 0}, res.Values())
}

func TestSolveRejectsSecondOrderCones(t *testing.T) {
	form, err := goconic.FormulateConic(&goconic.ConicProblem{
		Objective:     []float64{1, 0},
		VariableCones: []goconic.Cone{{Kind: goconic.SecondOrder, Indices: []int{0, 1}}},
	})
	require.NoError(t, err)

	_, err = NewSolver().Solve(context.Background(), form)
	assert.ErrorIs(t, err, goconic.ErrUnsupportedCone)
}

func TestSolveCancelled(t *testing.T) {
	form, err := goconic.FormulateLinear(&goconic.LinearProblem{Objective: []float64{1}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewSolver().Solve(ctx, form)
	assert.ErrorIs(t, err, context.Canceled)
}
