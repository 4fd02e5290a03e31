package goconic

import (
	"gonum.org/v1/gonum/mat"
)

// SparseMatrix is a matrix in compressed sparse column format, the layout
// expected by ECOS. Row indices within a column are strictly increasing.
type SparseMatrix struct {
	rows, cols int

	ColPtr []int // len cols+1
	RowIdx []int
	Values []float64
}

var _ mat.Matrix = (*SparseMatrix)(nil)

// Dims returns the number of rows and columns of the matrix.
func (s *SparseMatrix) Dims() (r, c int) {
	return s.rows, s.cols
}

// At returns the element at row i, column j.
func (s *SparseMatrix) At(i, j int) float64 {
	if i < 0 || i >= s.rows || j < 0 || j >= s.cols {
		panic(mat.ErrIndexOutOfRange)
	}
	for k := s.ColPtr[j]; k < s.ColPtr[j+1]; k++ {
		switch {
		case s.RowIdx[k] == i:
			return s.Values[k]
		case s.RowIdx[k] > i:
			return 0
		}
	}
	return 0
}

// T returns the implicit transpose of the matrix.
func (s *SparseMatrix) T() mat.Matrix {
	return mat.Transpose{Matrix: s}
}

// NNZ returns the number of stored entries.
func (s *SparseMatrix) NNZ() int {
	return len(s.Values)
}

// Dense returns a dense copy of the matrix, or nil if it has no rows or no
// columns (gonum does not allow empty dense matrices).
func (s *SparseMatrix) Dense() *mat.Dense {
	if s.rows == 0 || s.cols == 0 {
		return nil
	}
	d := mat.NewDense(s.rows, s.cols, nil)
	for j := 0; j < s.cols; j++ {
		for k := s.ColPtr[j]; k < s.ColPtr[j+1]; k++ {
			d.Set(s.RowIdx[k], j, s.Values[k])
		}
	}
	return d
}

type triplet struct {
	row, col int
	val      float64
}

// tripletBuilder accumulates entries row by row and is turned into a
// SparseMatrix once. Rows must be started in increasing order.
type tripletBuilder struct {
	rows, cols int
	entries    []triplet
	rhs        []float64
}

func newTripletBuilder(cols, rowCap, nnzCap int) *tripletBuilder {
	return &tripletBuilder{
		cols:    cols,
		entries: make([]triplet, 0, nnzCap),
		rhs:     make([]float64, 0, rowCap),
	}
}

// addRow starts a new row with right-hand side rhs and returns its index.
func (b *tripletBuilder) addRow(rhs float64) int {
	b.rhs = append(b.rhs, rhs)
	b.rows++
	return b.rows - 1
}

func (b *tripletBuilder) set(row, col int, val float64) {
	if val == 0 {
		return
	}
	b.entries = append(b.entries, triplet{row: row, col: col, val: val})
}

// build materializes the accumulated triplets with a counting sort on the
// column index. The sort is stable, so rows stay ordered inside a column.
func (b *tripletBuilder) build() (*SparseMatrix, []float64) {
	s := &SparseMatrix{
		rows:   b.rows,
		cols:   b.cols,
		ColPtr: make([]int, b.cols+1),
		RowIdx: make([]int, len(b.entries)),
		Values: make([]float64, len(b.entries)),
	}
	for _, e := range b.entries {
		s.ColPtr[e.col+1]++
	}
	for j := 0; j < b.cols; j++ {
		s.ColPtr[j+1] += s.ColPtr[j]
	}
	next := make([]int, b.cols)
	copy(next, s.ColPtr[:b.cols])
	for _, e := range b.entries {
		k := next[e.col]
		s.RowIdx[k] = e.row
		s.Values[k] = e.val
		next[e.col]++
	}
	return s, b.rhs
}
