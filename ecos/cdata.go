package ecos

// #include <stdlib.h>
// #include <ecos.h>
import "C"

import (
	"unsafe"

	"github.com/costela/goconic"
)

// cData tracks C allocations made for one solve.
type cData struct {
	ptrs []unsafe.Pointer
}

func (d *cData) alloc(n int, size uintptr) unsafe.Pointer {
	p := C.malloc(C.size_t(uintptr(n) * size))
	if p == nil {
		panic("could not allocate memory for ECOS input")
	}
	d.ptrs = append(d.ptrs, p)
	return p
}

// floats copies xs into C memory. Empty input yields nil.
func (d *cData) floats(xs []float64) *C.pfloat {
	if len(xs) == 0 {
		return nil
	}
	p := (*C.pfloat)(d.alloc(len(xs), unsafe.Sizeof(C.pfloat(0))))
	dst := unsafe.Slice(p, len(xs))
	for i, v := range xs {
		dst[i] = C.pfloat(v)
	}
	return p
}

// ints copies xs into C memory. Empty input yields nil.
func (d *cData) ints(xs []int) *C.idxint {
	if len(xs) == 0 {
		return nil
	}
	p := (*C.idxint)(d.alloc(len(xs), unsafe.Sizeof(C.idxint(0))))
	dst := unsafe.Slice(p, len(xs))
	for i, v := range xs {
		dst[i] = C.idxint(v)
	}
	return p
}

// sparse copies a CCS matrix. A matrix without rows yields nil pointers,
// which ECOS expects for an absent block.
func (d *cData) sparse(m *goconic.SparseMatrix) (pr *C.pfloat, jc, ir *C.idxint) {
	if rows, _ := m.Dims(); rows == 0 {
		return nil, nil, nil
	}
	jc = d.ints(m.ColPtr)
	if m.NNZ() == 0 {
		// ECOS reads at least the column pointers; keep data arrays valid
		return (*C.pfloat)(d.alloc(1, unsafe.Sizeof(C.pfloat(0)))), jc, (*C.idxint)(d.alloc(1, unsafe.Sizeof(C.idxint(0))))
	}
	return d.floats(m.Values), jc, d.ints(m.RowIdx)
}

func (d *cData) free() {
	for _, p := range d.ptrs {
		C.free(p)
	}
	d.ptrs = nil
}
