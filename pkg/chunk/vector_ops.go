package chunk

import (
	"github.com/unionvec/unionvec/pkg/common"
	"github.com/unionvec/unionvec/pkg/util"
)

func NewVector(lTyp common.LType, initData bool, cap int) *Vector {
	vec := &Vector{
		_PhyFormat: PF_FLAT,
		_Typ:       lTyp,
		Mask:       &util.Bitmap{},
	}
	if initData {
		vec.Init(cap)
	}
	return vec
}

func NewVector2(lTyp common.LType, cap int) *Vector {
	return NewVector(lTyp, true, cap)
}

func NewFlatVector(lTyp common.LType, cap int) *Vector {
	return NewVector2(lTyp, cap)
}

func NewConstVector(lTyp common.LType) *Vector {
	vec := NewVector2(lTyp, util.DefaultVectorSize)
	vec.SetPhyFormat(PF_CONST)
	return vec
}

// NewDictVector wraps child with a selection layer. Rows map through sel
// into child without copying the child's data.
func NewDictVector(child *Vector, sel []int) *Vector {
	vec := &Vector{
		_PhyFormat: PF_DICT,
		_Typ:       child.Typ(),
		Mask:       &util.Bitmap{},
	}
	vec.Buf = NewDictBuffer(sel)
	vec.Aux = NewChildBuffer(child)
	return vec
}

func ZeroSelectVectorInPhyFormatConst(cnt int, sel *SelectVector) *SelectVector {
	sel.Init(cnt)
	return sel
}

// Copy gathers copyCount rows of src through sel into dst starting at
// dstOffset. Varchar payloads are cloned so dst owns its strings.
func Copy(
	srcP *Vector,
	dstP *Vector,
	selP *SelectVector,
	srcCount int,
	srcOffset int,
	dstOffset int,
) {
	util.AssertFunc(srcOffset <= srcCount)
	util.AssertFunc(srcP.Typ().Id == dstP.Typ().Id)
	copyCount := srcCount - srcOffset
	finished := false

	ownedSel := &SelectVector{}
	sel := selP
	src := srcP

	for !finished {
		switch src.PhyFormat() {
		case PF_DICT:
			//dict vector
			child := GetChildInPhyFormatDict(src)
			dictSel := GetSelVectorInPhyFormatDict(src)
			//
			newBuff := dictSel.Slice(sel, srcCount)
			ownedSel.Init3(newBuff)
			sel = ownedSel
			src = child
		case PF_CONST:
			sel = ZeroSelectVectorInPhyFormatConst(copyCount, ownedSel)
			finished = true
		case PF_FLAT:
			finished = true
		default:
			panic("usp")
		}
	}

	if copyCount == 0 {
		return
	}

	dstVecType := dstP.PhyFormat()
	if copyCount == 1 && dstVecType == PF_DICT {
		dstOffset = 0
		dstP.SetPhyFormat(PF_FLAT)
	}

	util.AssertFunc(dstP.PhyFormat().IsFlat())

	//copy bitmap
	dstBitmap := GetMaskInPhyFormatFlat(dstP)
	if src.PhyFormat().IsConst() {
		valid := !IsNullInPhyFormatConst(src)
		for i := 0; i < copyCount; i++ {
			dstBitmap.Set(uint64(dstOffset+i), valid)
		}
	} else {
		srcBitmap := CopyBitmap(src)
		if srcBitmap.IsMaskSet() {
			for i := 0; i < copyCount; i++ {
				idx := sel.GetIndex(srcOffset + i)

				if srcBitmap.RowIsValid(uint64(idx)) {
					if !dstBitmap.AllValid() {
						dstBitmap.SetValidUnsafe(uint64(dstOffset + i))
					}
				} else {
					if dstBitmap.AllValid() {
						initSize := max(util.DefaultVectorSize,
							dstOffset+copyCount)
						dstBitmap.Init(initSize)
					}
					dstBitmap.SetInvalidUnsafe(uint64(dstOffset + i))
				}
			}
		}
	}

	util.AssertFunc(sel != nil)

	//copy data
	switch src.Typ().GetInternalType() {
	case common.BOOL:
		TemplatedCopy[bool](src, sel, dstP, srcOffset, dstOffset, copyCount)
	case common.INT8:
		TemplatedCopy[int8](src, sel, dstP, srcOffset, dstOffset, copyCount)
	case common.INT16:
		TemplatedCopy[int16](src, sel, dstP, srcOffset, dstOffset, copyCount)
	case common.INT32:
		TemplatedCopy[int32](src, sel, dstP, srcOffset, dstOffset, copyCount)
	case common.INT64:
		TemplatedCopy[int64](src, sel, dstP, srcOffset, dstOffset, copyCount)
	case common.UINT8:
		TemplatedCopy[uint8](src, sel, dstP, srcOffset, dstOffset, copyCount)
	case common.UINT16:
		TemplatedCopy[uint16](src, sel, dstP, srcOffset, dstOffset, copyCount)
	case common.UINT32:
		TemplatedCopy[uint32](src, sel, dstP, srcOffset, dstOffset, copyCount)
	case common.UINT64:
		TemplatedCopy[uint64](src, sel, dstP, srcOffset, dstOffset, copyCount)
	case common.FLOAT:
		TemplatedCopy[float32](src, sel, dstP, srcOffset, dstOffset, copyCount)
	case common.DOUBLE:
		TemplatedCopy[float64](src, sel, dstP, srcOffset, dstOffset, copyCount)
	case common.DECIMAL:
		TemplatedCopy[common.Decimal](src, sel, dstP, srcOffset, dstOffset, copyCount)
	case common.VARCHAR:
		srcSlice := GetSliceInPhyFormatFlat[common.String](src)
		dstSlice := GetSliceInPhyFormatFlat[common.String](dstP)

		for i := 0; i < copyCount; i++ {
			srcIdx := sel.GetIndex(srcOffset + i)
			dstIdx := dstOffset + i
			if dstBitmap.RowIsValid(uint64(dstIdx)) {
				srcStr := srcSlice[srcIdx]
				ptr := util.CMalloc(srcStr.Length())
				util.PointerCopy(ptr, srcStr.DataPtr(), srcStr.Length())
				dstSlice[dstIdx] = common.String{Data: ptr, Len: srcStr.Length()}
			}
		}
	default:
		panic("usp")
	}
}

func TemplatedCopy[T any](
	src *Vector,
	sel *SelectVector,
	dst *Vector,
	srcOffset int,
	dstOffset int,
	copyCount int,
) {
	srcSlice := GetSliceInPhyFormatFlat[T](src)
	dstSlice := GetSliceInPhyFormatFlat[T](dst)

	for i := 0; i < copyCount; i++ {
		srcIdx := sel.GetIndex(srcOffset + i)
		dstSlice[dstOffset+i] = srcSlice[srcIdx]
	}
}

func CopyBitmap(v *Vector) *util.Bitmap {
	switch v.PhyFormat() {
	case PF_FLAT:
		return GetMaskInPhyFormatFlat(v)
	default:
		panic("usp")
	}
}

func NewBoolFlatVector(v []bool, sz int) *Vector {
	vec := NewFlatVector(common.BooleanType(), sz)
	data := GetSliceInPhyFormatFlat[bool](vec)
	copy(data, v)
	return vec
}

func NewInt32FlatVector(v []int32, sz int) *Vector {
	vec := NewFlatVector(common.IntegerType(), sz)
	data := GetSliceInPhyFormatFlat[int32](vec)
	copy(data, v)
	return vec
}

func NewInt64FlatVector(v []int64, sz int) *Vector {
	vec := NewFlatVector(common.BigintType(), sz)
	data := GetSliceInPhyFormatFlat[int64](vec)
	copy(data, v)
	return vec
}

func NewFloat32FlatVector(v []float32, sz int) *Vector {
	vec := NewFlatVector(common.FloatType(), sz)
	data := GetSliceInPhyFormatFlat[float32](vec)
	copy(data, v)
	return vec
}

func NewVarcharFlatVector(v []string, sz int) *Vector {
	vec := NewFlatVector(common.VarcharType(), sz)
	data := GetSliceInPhyFormatFlat[common.String](vec)
	for i := 0; i < len(v); i++ {
		data[i] = common.CopyString(v[i])
	}
	return vec
}
