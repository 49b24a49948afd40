package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unionvec/unionvec/pkg/common"
)

func intStrUnionType() common.LType {
	return common.UnionType([]common.UnionMemberDef{
		{Id: 0, Name: "int", Typ: common.IntegerType()},
		{Id: 1, Name: "str", Typ: common.VarcharType()},
	})
}

func Test_unionTypeLookup(t *testing.T) {
	typ := intStrUnionType()
	info := typ.Uinfo

	id, ok := info.MemberIdOf("str")
	assert.True(t, ok)
	assert.Equal(t, common.UnionMemberId(1), id)

	_, ok = info.MemberIdOf("missing")
	assert.False(t, ok)

	slot, ok := info.MemberSlot(1)
	assert.True(t, ok)
	assert.Equal(t, 1, slot)

	assert.True(t, info.MemberDeclared(0))
	assert.False(t, info.MemberDeclared(9))
	assert.Equal(t, common.UnionMemberId(1), info.MaxMemberId())
	assert.True(t, typ.Equal(intStrUnionType()))
}

func sparseIntStrUnion(t *testing.T, n int) *Vector {
	typ := intStrUnionType()
	ids := make([]common.UnionMemberId, n)
	intVec := NewFlatVector(common.IntegerType(), n)
	intData := GetSliceInPhyFormatFlat[int32](intVec)
	strs := make([]string, n)
	for i := 0; i < n; i++ {
		if i%2 == 1 {
			ids[i] = 1
		}
		intData[i] = int32(i * 10)
		strs[i] = "v"
	}
	strVec := NewVarcharFlatVector(strs, n)
	return NewSparseUnionVector(typ, ids, []*Vector{intVec, strVec}, n)
}

func Test_sparseUnionVector(t *testing.T) {
	vec := sparseIntStrUnion(t, 4)

	assert.False(t, UnionIsDense(vec))
	assert.Nil(t, UnionOffsets(vec))
	assert.Equal(t, 4, UnionMemberSize(vec, 0))

	ids := UnionMemberIds(vec)
	assert.Equal(t, common.UnionMemberId(0), ids[0])
	assert.Equal(t, common.UnionMemberId(1), ids[1])

	val := vec.GetValue(2)
	assert.Equal(t, common.UnionMemberId(0), val.Union.Id)
	assert.Equal(t, int64(20), val.Union.Val.I64)

	val = vec.GetValue(3)
	assert.Equal(t, common.UnionMemberId(1), val.Union.Id)
	assert.Equal(t, "v", val.Union.Val.Str)

	vec.Mask.SetInvalid(1)
	assert.True(t, vec.GetValue(1).IsNull)
}

func Test_denseUnionVector(t *testing.T) {
	typ := intStrUnionType()
	// rows: int 5, str "a", int 6, str "b"
	ids := []common.UnionMemberId{0, 1, 0, 1}
	offsets := []int32{0, 0, 1, 1}
	intVec := NewInt32FlatVector([]int32{5, 6}, 2)
	strVec := NewVarcharFlatVector([]string{"a", "b"}, 2)
	vec := NewDenseUnionVector(typ, ids, offsets,
		[]*Vector{intVec, strVec}, []int{2, 2}, 4)

	assert.True(t, UnionIsDense(vec))
	assert.Equal(t, 2, UnionMemberSize(vec, 1))

	assert.Equal(t, int64(5), vec.GetValue(0).Union.Val.I64)
	assert.Equal(t, "a", vec.GetValue(1).Union.Val.Str)
	assert.Equal(t, int64(6), vec.GetValue(2).Union.Val.I64)
	assert.Equal(t, "b", vec.GetValue(3).Union.Val.Str)
}

func Test_denseUnionSharedOffsets(t *testing.T) {
	typ := intStrUnionType()
	// both rows point at the same member value
	ids := []common.UnionMemberId{0, 0}
	offsets := []int32{0, 0}
	intVec := NewInt32FlatVector([]int32{9}, 1)
	strVec := NewVarcharFlatVector(nil, 1)
	vec := NewDenseUnionVector(typ, ids, offsets,
		[]*Vector{intVec, strVec}, []int{1, 0}, 2)

	assert.Equal(t, int64(9), vec.GetValue(0).Union.Val.I64)
	assert.Equal(t, int64(9), vec.GetValue(1).Union.Val.I64)
}

func Test_denseUnionRejectsBadOffset(t *testing.T) {
	typ := intStrUnionType()
	ids := []common.UnionMemberId{0}
	offsets := []int32{3}
	intVec := NewInt32FlatVector([]int32{1}, 1)
	strVec := NewVarcharFlatVector(nil, 1)
	assert.Panics(t, func() {
		NewDenseUnionVector(typ, ids, offsets,
			[]*Vector{intVec, strVec}, []int{1, 0}, 1)
	})
}

func Test_unionRejectsUndeclaredId(t *testing.T) {
	typ := intStrUnionType()
	ids := []common.UnionMemberId{7}
	intVec := NewInt32FlatVector([]int32{1}, 1)
	strVec := NewVarcharFlatVector([]string{"x"}, 1)
	assert.Panics(t, func() {
		NewSparseUnionVector(typ, ids, []*Vector{intVec, strVec}, 1)
	})
}

func Test_unionTypeRejectsDuplicates(t *testing.T) {
	assert.Panics(t, func() {
		common.UnionType([]common.UnionMemberDef{
			{Id: 0, Name: "a", Typ: common.IntegerType()},
			{Id: 0, Name: "b", Typ: common.IntegerType()},
		})
	})
	assert.Panics(t, func() {
		common.UnionType([]common.UnionMemberDef{
			{Id: 0, Name: "a", Typ: common.IntegerType()},
			{Id: 1, Name: "a", Typ: common.IntegerType()},
		})
	})
}

func Test_unionValueString(t *testing.T) {
	vec := sparseIntStrUnion(t, 2)
	assert.Equal(t, "int=>0", vec.GetValue(0).String())
	assert.Equal(t, "str=>v", vec.GetValue(1).String())
}
