package goconic

import "fmt"

// CanonicalForm is the solver-ready representation of a problem:
//
//	minimize    cᵀx
//	subject to  Ax = b
//	            h - Gx ∈ K
//
// where K is the nonnegative orthant of dimension NumPos followed by one
// second-order cone per entry of ConeDims. Variables are in canonical order;
// Map translates back to the caller's order.
type CanonicalForm struct {
	NumVars  int
	NumIneq  int
	NumEq    int
	NumPos   int
	ConeDims []int

	G *SparseMatrix
	H []float64
	A *SparseMatrix
	B []float64
	C []float64

	Map   IndexMap
	Sense Sense
}

// NumCones returns the number of second-order cones.
func (f *CanonicalForm) NumCones() int {
	return len(f.ConeDims)
}

func (f *CanonicalForm) String() string {
	return fmt.Sprintf("canonical form: %d variables, %d equalities, %d inequalities (orthant %d, cones %v)",
		f.NumVars, f.NumEq, f.NumIneq, f.NumPos, f.ConeDims)
}
