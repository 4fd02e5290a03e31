package goconic

import (
	"github.com/pkg/errors"
)

// IndexMap is a bijection between the caller's variable order and the
// canonical order handed to the solver. It is immutable once built.
type IndexMap struct {
	forward []int // original -> canonical
	reverse []int // canonical -> original
}

// identityMap returns the map that keeps every variable in place.
func identityMap(n int) IndexMap {
	fwd := make([]int, n)
	for i := range fwd {
		fwd[i] = i
	}
	rev := make([]int, n)
	copy(rev, fwd)
	return IndexMap{forward: fwd, reverse: rev}
}

// NewIndexMap groups the n variables contiguously by cone kind: NonNeg and
// NonPos members first, then every SecondOrder group in declaration order
// (members keep their relative order), then Free and Zero members. Every
// variable must appear in exactly one cone of a supported kind.
func NewIndexMap(cones []Cone, n int) (IndexMap, error) {
	seen := make([]bool, n)
	for ci, c := range cones {
		if !c.Kind.Supported() {
			return IndexMap{}, errors.Wrapf(ErrUnsupportedCone, "variable cone %d has kind %v", ci, c.Kind)
		}
		for _, idx := range c.Indices {
			if idx < 0 || idx >= n {
				return IndexMap{}, errors.Wrapf(ErrIndexOutOfRange, "variable cone %d references variable %d of %d", ci, idx, n)
			}
			if seen[idx] {
				return IndexMap{}, errors.Wrapf(ErrIndexOutOfRange, "variable %d assigned to more than one cone", idx)
			}
			seen[idx] = true
		}
	}
	for idx, ok := range seen {
		if !ok {
			return IndexMap{}, errors.Wrapf(ErrIndexOutOfRange, "variable %d not assigned to any cone", idx)
		}
	}

	reverse := make([]int, 0, n)
	emit := func(match func(ConeKind) bool) {
		for _, c := range cones {
			if match(c.Kind) {
				reverse = append(reverse, c.Indices...)
			}
		}
	}
	emit(func(k ConeKind) bool { return k == NonNeg || k == NonPos })
	emit(func(k ConeKind) bool { return k == SecondOrder })
	emit(func(k ConeKind) bool { return k == Free || k == Zero })

	forward := make([]int, n)
	for canon, orig := range reverse {
		forward[orig] = canon
	}
	return IndexMap{forward: forward, reverse: reverse}, nil
}

// Len returns the number of variables covered by the map.
func (m IndexMap) Len() int {
	return len(m.forward)
}

// Canonical returns the canonical index of original variable i.
func (m IndexMap) Canonical(i int) int {
	return m.forward[i]
}

// Original returns the original index of canonical variable i.
func (m IndexMap) Original(i int) int {
	return m.reverse[i]
}

// Forward returns a copy of the original -> canonical permutation.
func (m IndexMap) Forward() []int {
	return append([]int(nil), m.forward...)
}

// Reverse returns a copy of the canonical -> original permutation.
func (m IndexMap) Reverse() []int {
	return append([]int(nil), m.reverse...)
}

// Restore maps a solution vector in canonical order back to the original
// variable order.
func (m IndexMap) Restore(canonical []float64) ([]float64, error) {
	if len(canonical) != len(m.forward) {
		return nil, errors.Wrapf(ErrMismatchedLength, "solution has %d values, expected %d", len(canonical), len(m.forward))
	}
	original := make([]float64, len(m.forward))
	for i, c := range m.forward {
		original[i] = canonical[c]
	}
	return original, nil
}

// permute returns xs reordered into canonical order.
func (m IndexMap) permute(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[m.forward[i]] = v
	}
	return out
}
