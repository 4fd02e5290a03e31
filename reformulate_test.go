package goconic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func sum(xs []int) (s int) {
	for _, x := range xs {
		s += x
	}
	return s
}

func TestFormulateConicNonNegVariable(t *testing.T) {
	form, err := FormulateConic(&ConicProblem{
		Objective:     []float64{1},
		VariableCones: []Cone{{Kind: NonNeg, Indices: []int{0}}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, form.NumVars)
	assert.Equal(t, 1, form.NumPos)
	assert.Equal(t, 1, form.NumIneq)
	assert.Equal(t, 0, form.NumCones())
	assertMatrix(t, 1, 1, []float64{-1}, form.G)
	assert.Equal(t, []float64{0}, form.H)
	assert.Equal(t, 0, form.NumEq)
	assertMatrix(t, 0, 1, nil, form.A)
	assert.Empty(t, form.B)
	assert.Equal(t, []float64{1}, form.C)
}

func TestFormulateConicSecondOrderVariables(t *testing.T) {
	// y ≥ |x|, minimize y
	form, err := FormulateConic(&ConicProblem{
		Objective:     []float64{1, 0},
		VariableCones: []Cone{{Kind: SecondOrder, Indices: []int{0, 1}}},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, form.NumPos)
	assert.Equal(t, []int{2}, form.ConeDims)
	assert.Equal(t, 1, form.NumCones())
	assert.Equal(t, 2, form.NumIneq)
	assertMatrix(t, 2, 2, []float64{
		-1, 0,
		0, -1,
	}, form.G)
	assert.Equal(t, []float64{0, 0}, form.H)
	assert.Equal(t, 0, form.NumEq)
}

func TestFormulateConicZeroVariable(t *testing.T) {
	// x0 + x1 = 1 with x0 ∈ Zero and x1 ≥ 0
	form, err := FormulateConic(&ConicProblem{
		Objective: []float64{2, 3},
		Matrix:    mat.NewDense(1, 2, []float64{1, 1}),
		RHS:       []float64{1},
		VariableCones: []Cone{
			{Kind: Zero, Indices: []int{0}},
			{Kind: NonNeg, Indices: []int{1}},
		},
	})
	require.NoError(t, err)

	// x1 moves to the front
	assert.Equal(t, []int{1, 0}, form.Map.Reverse())
	assert.Equal(t, []float64{3, 2}, form.C)

	// the original row survives, followed by the row pinning x0
	assert.Equal(t, 2, form.NumEq)
	assertMatrix(t, 2, 2, []float64{
		1, 1,
		0, 1,
	}, form.A)
	assert.Equal(t, []float64{1, 0}, form.B)

	assertMatrix(t, 1, 2, []float64{-1, 0}, form.G)
	assert.Equal(t, []float64{0}, form.H)
	assert.Equal(t, 1, form.NumPos)
}

func TestFormulateConicOrthantConstraints(t *testing.T) {
	form, err := FormulateConic(&ConicProblem{
		Objective: []float64{1, 1},
		Matrix: mat.NewDense(3, 2, []float64{
			1, 2,
			3, 4,
			5, 6,
		}),
		RHS: []float64{7, 8, 9},
		ConstraintCones: []Cone{
			{Kind: NonPos, Indices: []int{2}},
			{Kind: Zero, Indices: []int{1}},
			{Kind: NonNeg, Indices: []int{0}},
		},
		VariableCones: []Cone{{Kind: Free, Indices: []int{0, 1}}},
	})
	require.NoError(t, err)

	// constraint cones are emitted in declaration order
	assert.Equal(t, 2, form.NumPos)
	assertMatrix(t, 2, 2, []float64{
		-5, -6,
		1, 2,
	}, form.G)
	assert.Equal(t, []float64{-9, 7}, form.H)

	assertMatrix(t, 1, 2, []float64{3, 4}, form.A)
	assert.Equal(t, []float64{8}, form.B)
}

func TestFormulateConicMixed(t *testing.T) {
	form, err := FormulateConic(&ConicProblem{
		Objective: []float64{1, 2, 3, 4},
		Matrix: mat.NewDense(4, 4, []float64{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 1,
			1, 1, 1, 1,
		}),
		RHS: []float64{1, 2, 3, 4},
		ConstraintCones: []Cone{
			{Kind: NonNeg, Indices: []int{2}},
			{Kind: SecondOrder, Indices: []int{0, 1}},
		},
		VariableCones: []Cone{
			{Kind: Free, Indices: []int{0}},
			{Kind: SecondOrder, Indices: []int{3, 1}},
			{Kind: NonPos, Indices: []int{2}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{3, 2, 0, 1}, form.Map.Forward())
	assert.Equal(t, []int{2, 3, 1, 0}, form.Map.Reverse())
	assert.Equal(t, []float64{3, 4, 2, 1}, form.C)

	assert.Equal(t, 2, form.NumPos)
	assert.Equal(t, []int{2, 2}, form.ConeDims)
	assert.Equal(t, 6, form.NumIneq)
	assert.Equal(t, form.NumIneq, form.NumPos+sum(form.ConeDims))
	assertMatrix(t, 6, 4, []float64{
		1, 0, 0, 0, // x2 ≤ 0
		1, 1, 0, 0, // row 2
		0, -1, 0, 0, // cone over (x3, x1)
		0, 0, -1, 0,
		0, 0, 0, 1, // cone over rows 0 and 1
		0, 0, 1, 0,
	}, form.G)
	assert.Equal(t, []float64{0, 3, 0, 0, 1, 2}, form.H)

	assert.Equal(t, 1, form.NumEq)
	assertMatrix(t, 1, 4, []float64{1, 1, 1, 1}, form.A)
	assert.Equal(t, []float64{4}, form.B)
}

func TestFormulateConicMaximize(t *testing.T) {
	form, err := FormulateConic(&ConicProblem{
		Objective: []float64{1, 2},
		VariableCones: []Cone{
			{Kind: Free, Indices: []int{0}},
			{Kind: NonNeg, Indices: []int{1}},
		},
		Sense: Maximize,
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{-2, -1}, form.C)
}

func TestFormulateConicInequalityCount(t *testing.T) {
	form, err := FormulateConic(&ConicProblem{
		Objective: make([]float64, 7),
		Matrix:    mat.NewDense(5, 7, nil),
		RHS:       make([]float64, 5),
		ConstraintCones: []Cone{
			{Kind: SecondOrder, Indices: []int{4, 0, 2}},
			{Kind: NonPos, Indices: []int{1}},
			{Kind: Zero, Indices: []int{3}},
		},
		VariableCones: []Cone{
			{Kind: SecondOrder, Indices: []int{6, 5}},
			{Kind: NonNeg, Indices: []int{0, 1}},
			{Kind: Zero, Indices: []int{2}},
			{Kind: Free, Indices: []int{3, 4}},
			{Kind: SecondOrder, Indices: []int{}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, form.NumPos)
	assert.Equal(t, []int{2, 3}, form.ConeDims)
	assert.Equal(t, form.NumIneq, form.NumPos+sum(form.ConeDims))
	assert.Equal(t, 2, form.NumEq)
	assert.Len(t, form.H, form.NumIneq)
	assert.Len(t, form.B, form.NumEq)
}

func TestFormulateConicErrors(t *testing.T) {
	free2 := []Cone{{Kind: Free, Indices: []int{0, 1}}}
	a := mat.NewDense(2, 2, nil)

	tests := []struct {
		name string
		p    ConicProblem
		err  error
	}{
		{
			name: "unsupported variable cone",
			p: ConicProblem{
				Objective:     []float64{1, 1},
				VariableCones: []Cone{{Kind: SemiDefinite, Indices: []int{0, 1}}},
			},
			err: ErrUnsupportedCone,
		},
		{
			name: "unsupported constraint cone",
			p: ConicProblem{
				Objective:       []float64{1, 1},
				Matrix:          a,
				RHS:             []float64{0, 0},
				ConstraintCones: []Cone{{Kind: RotatedSecondOrder, Indices: []int{0, 1}}},
				VariableCones:   free2,
			},
			err: ErrUnsupportedCone,
		},
		{
			name: "free constraint",
			p: ConicProblem{
				Objective:       []float64{1, 1},
				Matrix:          a,
				RHS:             []float64{0, 0},
				ConstraintCones: []Cone{{Kind: Free, Indices: []int{0}}},
				VariableCones:   free2,
			},
			err: ErrUnsupportedConstraint,
		},
		{
			name: "rhs length",
			p: ConicProblem{
				Objective:     []float64{1, 1},
				Matrix:        a,
				RHS:           []float64{0},
				VariableCones: free2,
			},
			err: ErrMismatchedLength,
		},
		{
			name: "matrix columns",
			p: ConicProblem{
				Objective:     []float64{1, 1},
				Matrix:        mat.NewDense(2, 3, nil),
				RHS:           []float64{0, 0},
				VariableCones: free2,
			},
			err: ErrMismatchedLength,
		},
		{
			name: "unassigned variable",
			p: ConicProblem{
				Objective:     []float64{1, 1},
				VariableCones: []Cone{{Kind: Free, Indices: []int{0}}},
			},
			err: ErrIndexOutOfRange,
		},
		{
			name: "row out of range",
			p: ConicProblem{
				Objective:       []float64{1, 1},
				Matrix:          a,
				RHS:             []float64{0, 0},
				ConstraintCones: []Cone{{Kind: NonNeg, Indices: []int{2}}},
				VariableCones:   free2,
			},
			err: ErrIndexOutOfRange,
		},
		{
			name: "row in two cones",
			p: ConicProblem{
				Objective: []float64{1, 1},
				Matrix:    a,
				RHS:       []float64{0, 0},
				ConstraintCones: []Cone{
					{Kind: NonNeg, Indices: []int{0}},
					{Kind: SecondOrder, Indices: []int{1, 0}},
				},
				VariableCones: free2,
			},
			err: ErrIndexOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, err := FormulateConic(&tt.p)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, form)
		})
	}
}
