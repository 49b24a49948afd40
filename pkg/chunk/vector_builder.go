package chunk

import (
	"github.com/unionvec/unionvec/pkg/common"
	"github.com/unionvec/unionvec/pkg/util"
)

// MutableVector appends rows to a flat vector. It tracks the logical
// length separately because vectors themselves only know capacity.
type MutableVector struct {
	vec *Vector
	len int
	cap int
}

func NewMutableVector(typ common.LType, cap int) *MutableVector {
	return &MutableVector{
		vec: NewFlatVector(typ, cap),
		cap: cap,
	}
}

func (mv *MutableVector) Len() int {
	return mv.len
}

// ExtendFrom appends rows [start, end) of src, values and validity both.
func (mv *MutableVector) ExtendFrom(src *Vector, start, end int) {
	util.AssertFunc(start <= end)
	util.AssertFunc(mv.len+(end-start) <= mv.cap)
	Copy(src, mv.vec, &SelectVector{}, end, start, mv.len)
	mv.len += end - start
}

func (mv *MutableVector) ExtendNulls(n int) {
	util.AssertFunc(mv.len+n <= mv.cap)
	for i := 0; i < n; i++ {
		SetNullInPhyFormatFlat(mv.vec, uint64(mv.len+i), true)
	}
	mv.len += n
}

func (mv *MutableVector) Freeze() *Vector {
	return mv.vec
}
