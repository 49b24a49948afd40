package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unionvec/unionvec/pkg/common"
)

func Test_flatVectorSetGet(t *testing.T) {
	vec := NewFlatVector(common.IntegerType(), 8)
	data := GetSliceInPhyFormatFlat[int32](vec)
	for i := 0; i < 8; i++ {
		data[i] = int32(i * 3)
	}
	SetNullInPhyFormatFlat(vec, 5, true)

	assert.Equal(t, int64(9), vec.GetValue(3).I64)
	assert.True(t, vec.GetValue(5).IsNull)
	assert.False(t, vec.GetValue(4).IsNull)
}

func Test_varcharVector(t *testing.T) {
	vec := NewVarcharFlatVector([]string{"a", "bc", ""}, 3)
	assert.Equal(t, "a", vec.GetValue(0).Str)
	assert.Equal(t, "bc", vec.GetValue(1).Str)
	assert.Equal(t, "", vec.GetValue(2).Str)

	vec.SetValue(1, &Value{Typ: common.VarcharType(), Str: "replaced"})
	assert.Equal(t, "replaced", vec.GetValue(1).Str)
}

func Test_decimalVector(t *testing.T) {
	typ := common.DecimalType(10, 2)
	vec := NewFlatVector(typ, 4)
	vec.SetValue(0, &Value{Typ: typ, Str: "1.23"})

	val := vec.GetValue(0)
	assert.Equal(t, int64(1), val.I64)
	assert.Equal(t, int64(23), val.I64_1)
}

func Test_constVector(t *testing.T) {
	vec := NewConstVector(common.BigintType())
	vec.ReferenceValue(&Value{Typ: common.BigintType(), I64: 7})
	assert.Equal(t, int64(7), vec.GetValue(0).I64)
	assert.Equal(t, int64(7), vec.GetValue(100).I64)

	SetNullInPhyFormatConst(vec, true)
	assert.True(t, vec.GetValue(0).IsNull)
}

func Test_dictVector(t *testing.T) {
	child := NewVarcharFlatVector([]string{"x", "y"}, 2)
	dict := NewDictVector(child, []int{1, 0, 1, 1})
	assert.Equal(t, "y", dict.GetValue(0).Str)
	assert.Equal(t, "x", dict.GetValue(1).Str)
	assert.Equal(t, "y", dict.GetValue(3).Str)
}

func Test_slice3ZeroCopy(t *testing.T) {
	src := NewFlatVector(common.BigintType(), 8)
	data := GetSliceInPhyFormatFlat[int64](src)
	for i := 0; i < 8; i++ {
		data[i] = int64(i)
	}
	SetNullInPhyFormatFlat(src, 3, true)

	ret := NewVector(common.BigintType(), false, 0)
	ret.Slice3(src, 2, 6)
	retData := GetSliceInPhyFormatFlat[int64](ret)
	assert.Equal(t, int64(2), retData[0])
	assert.Equal(t, int64(5), retData[3])
	assert.True(t, ret.GetValue(1).IsNull)
	assert.False(t, ret.GetValue(0).IsNull)

	//the source mask is untouched
	assert.True(t, src.Mask.RowIsValid(1))
	assert.False(t, src.Mask.RowIsValid(3))
}

func Test_copyGather(t *testing.T) {
	src := NewVarcharFlatVector([]string{"a", "b", "c"}, 3)
	SetNullInPhyFormatFlat(src, 1, true)

	dst := NewFlatVector(common.VarcharType(), 4)
	sel := NewSelectVector3([]int{2, 0, 1})
	Copy(src, dst, sel, 3, 0, 0)

	assert.Equal(t, "c", dst.GetValue(0).Str)
	assert.Equal(t, "a", dst.GetValue(1).Str)
	assert.True(t, dst.GetValue(2).IsNull)
}

func Test_mutableVector(t *testing.T) {
	src := NewFlatVector(common.IntegerType(), 8)
	data := GetSliceInPhyFormatFlat[int32](src)
	for i := 0; i < 8; i++ {
		data[i] = int32(i)
	}
	SetNullInPhyFormatFlat(src, 6, true)

	mv := NewMutableVector(common.IntegerType(), 16)
	mv.ExtendFrom(src, 0, 2)
	mv.ExtendNulls(3)
	mv.ExtendFrom(src, 5, 8)
	assert.Equal(t, 8, mv.Len())

	ret := mv.Freeze()
	assert.Equal(t, int64(0), ret.GetValue(0).I64)
	assert.Equal(t, int64(1), ret.GetValue(1).I64)
	assert.True(t, ret.GetValue(2).IsNull)
	assert.True(t, ret.GetValue(4).IsNull)
	assert.Equal(t, int64(5), ret.GetValue(5).I64)
	assert.True(t, ret.GetValue(6).IsNull)
	assert.Equal(t, int64(7), ret.GetValue(7).I64)
}
