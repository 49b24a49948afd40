package compute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unionvec/unionvec/pkg/chunk"
	"github.com/unionvec/unionvec/pkg/common"
	"github.com/unionvec/unionvec/pkg/util"
)

func intStrUnionType() common.LType {
	return common.UnionType([]common.UnionMemberDef{
		{Id: 0, Name: "int", Typ: common.IntegerType()},
		{Id: 1, Name: "str", Typ: common.VarcharType()},
	})
}

func newSparseUnion(ids []common.UnionMemberId, ints []int32, strs []string) *chunk.Vector {
	n := len(ids)
	typ := intStrUnionType()
	intVec := chunk.NewInt32FlatVector(ints, max(n, 1))
	strVec := chunk.NewVarcharFlatVector(strs, max(n, 1))
	return chunk.NewSparseUnionVector(typ, ids,
		[]*chunk.Vector{intVec, strVec}, n)
}

func newDenseUnion(
	ids []common.UnionMemberId,
	offsets []int32,
	ints []int32,
	strs []string,
) *chunk.Vector {
	n := len(ids)
	typ := intStrUnionType()
	intVec := chunk.NewInt32FlatVector(ints, max(len(ints), 1))
	strVec := chunk.NewVarcharFlatVector(strs, max(len(strs), 1))
	return chunk.NewDenseUnionVector(typ, ids, offsets,
		[]*chunk.Vector{intVec, strVec},
		[]int{len(ints), len(strs)}, n)
}

func Test_extractUnknownField(t *testing.T) {
	vec := newSparseUnion([]common.UnionMemberId{0}, []int32{1}, []string{"x"})
	_, err := UnionExtract(vec, 1, "missing")
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func Test_extractNonUnion(t *testing.T) {
	vec := chunk.NewInt32FlatVector([]int32{1}, 1)
	_, err := UnionExtract(vec, 1, "int")
	assert.ErrorIs(t, err, ErrNotUnion)
}

func Test_extractEmptyUnion(t *testing.T) {
	vec := newSparseUnion(nil, nil, nil)
	assert.Equal(t, extractEmptyUnion, classifySparse(vec, 0, 0))

	ret, err := UnionExtract(vec, 0, "int")
	require.NoError(t, err)
	assert.True(t, ret.PhyFormat().IsFlat())
	assert.True(t, ret.Typ().Equal(common.IntegerType()))
}

func Test_sparseAllMatchIsVerbatim(t *testing.T) {
	vec := newSparseUnion(
		[]common.UnionMemberId{0, 0, 0},
		[]int32{1, 2, 3},
		[]string{"", "", ""})
	assert.Equal(t, extractVerbatim, classifySparse(vec, 3, 0))

	ret, err := UnionExtract(vec, 3, "int")
	require.NoError(t, err)
	assert.Equal(t, int64(1), ret.GetValue(0).I64)
	assert.Equal(t, int64(3), ret.GetValue(2).I64)

	//the member's buffer is shared, not copied
	member := chunk.UnionMember(vec, 0)
	chunk.GetSliceInPhyFormatFlat[int32](member)[0] = 42
	assert.Equal(t, int64(42), ret.GetValue(0).I64)
}

func Test_sparseNoneMatchIsAllNull(t *testing.T) {
	vec := newSparseUnion(
		[]common.UnionMemberId{0, 0},
		[]int32{1, 2},
		[]string{"", ""})
	assert.Equal(t, extractAllNull, classifySparse(vec, 2, 1))

	ret, err := UnionExtract(vec, 2, "str")
	require.NoError(t, err)
	assert.True(t, ret.GetValue(0).IsNull)
	assert.True(t, ret.GetValue(1).IsNull)
}

func Test_sparseMixedMasksOtherRows(t *testing.T) {
	vec := newSparseUnion(
		[]common.UnionMemberId{0, 1, 0, 1},
		[]int32{10, 20, 30, 40},
		[]string{"a", "b", "c", "d"})
	assert.Equal(t, extractMaskedRows, classifySparse(vec, 4, 0))

	ret, err := UnionExtract(vec, 4, "int")
	require.NoError(t, err)
	assert.Equal(t, int64(10), ret.GetValue(0).I64)
	assert.True(t, ret.GetValue(1).IsNull)
	assert.Equal(t, int64(30), ret.GetValue(2).I64)
	assert.True(t, ret.GetValue(3).IsNull)

	sret, err := UnionExtract(vec, 4, "str")
	require.NoError(t, err)
	assert.True(t, sret.GetValue(0).IsNull)
	assert.Equal(t, "b", sret.GetValue(1).Str)
}

func Test_sparseNullUnionRow(t *testing.T) {
	vec := newSparseUnion(
		[]common.UnionMemberId{0, 0, 0},
		[]int32{1, 2, 3},
		[]string{"", "", ""})
	vec.Mask.SetInvalid(1)

	ret, err := UnionExtract(vec, 3, "int")
	require.NoError(t, err)
	assert.Equal(t, int64(1), ret.GetValue(0).I64)
	assert.True(t, ret.GetValue(1).IsNull)
	assert.Equal(t, int64(3), ret.GetValue(2).I64)
}

func Test_memberAllNullShortCircuits(t *testing.T) {
	vec := newSparseUnion(
		[]common.UnionMemberId{0, 1, 0},
		[]int32{1, 2, 3},
		[]string{"", "x", ""})
	member := chunk.UnionMember(vec, 0)
	chunk.GetMaskInPhyFormatFlat(member).SetAllInvalid(3)
	assert.Equal(t, extractAllNull, classifySparse(vec, 3, 0))

	ret, err := UnionExtract(vec, 3, "int")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.True(t, ret.GetValue(i).IsNull)
	}

	dvec := newDenseUnion(
		[]common.UnionMemberId{0, 0},
		[]int32{0, 1},
		[]int32{1, 2},
		nil)
	dmember := chunk.UnionMember(dvec, 0)
	chunk.GetMaskInPhyFormatFlat(dmember).SetAllInvalid(2)
	assert.Equal(t, extractAllNull, classifyDense(dvec, 2, 0))
}

func Test_sparseMemberNullPropagates(t *testing.T) {
	vec := newSparseUnion(
		[]common.UnionMemberId{0, 0, 1},
		[]int32{1, 2, 3},
		[]string{"", "", "x"})
	member := chunk.UnionMember(vec, 0)
	chunk.SetNullInPhyFormatFlat(member, 0, true)

	ret, err := UnionExtract(vec, 3, "int")
	require.NoError(t, err)
	assert.True(t, ret.GetValue(0).IsNull)
	assert.Equal(t, int64(2), ret.GetValue(1).I64)
	assert.True(t, ret.GetValue(2).IsNull)
}

func Test_denseEmptyMember(t *testing.T) {
	vec := newDenseUnion(
		[]common.UnionMemberId{0, 0},
		[]int32{0, 1},
		[]int32{1, 2},
		nil)
	assert.Equal(t, extractEmptyMember, classifyDense(vec, 2, 1))

	ret, err := UnionExtract(vec, 2, "str")
	require.NoError(t, err)
	assert.True(t, ret.GetValue(0).IsNull)
	assert.True(t, ret.GetValue(1).IsNull)
}

func Test_denseSequentialSlice(t *testing.T) {
	vec := newDenseUnion(
		[]common.UnionMemberId{0, 0, 0},
		[]int32{1, 2, 3},
		[]int32{9, 10, 20, 30},
		nil)
	assert.Equal(t, extractSliceSequential, classifyDense(vec, 3, 0))

	ret, err := UnionExtract(vec, 3, "int")
	require.NoError(t, err)
	assert.Equal(t, int64(10), ret.GetValue(0).I64)
	assert.Equal(t, int64(20), ret.GetValue(1).I64)
	assert.Equal(t, int64(30), ret.GetValue(2).I64)

	//zero copy: the slice window aliases the member buffer
	member := chunk.UnionMember(vec, 0)
	chunk.GetSliceInPhyFormatFlat[int32](member)[1] = 77
	assert.Equal(t, int64(77), ret.GetValue(0).I64)
}

func Test_denseGatherScattered(t *testing.T) {
	vec := newDenseUnion(
		[]common.UnionMemberId{0, 0, 0},
		[]int32{2, 0, 2},
		[]int32{5, 6, 7},
		nil)
	assert.Equal(t, extractGather, classifyDense(vec, 3, 0))

	ret, err := UnionExtract(vec, 3, "int")
	require.NoError(t, err)
	assert.Equal(t, int64(7), ret.GetValue(0).I64)
	assert.Equal(t, int64(5), ret.GetValue(1).I64)
	assert.Equal(t, int64(7), ret.GetValue(2).I64)
}

func Test_denseMixedSpanWalk(t *testing.T) {
	// rows: int x, int y, str, int z with contiguous int offsets
	vec := newDenseUnion(
		[]common.UnionMemberId{0, 0, 1, 0},
		[]int32{0, 1, 0, 2},
		[]int32{100, 200, 300},
		[]string{"other"})
	assert.Equal(t, extractSpanWalk, classifyDense(vec, 4, 0))

	ret, err := UnionExtract(vec, 4, "int")
	require.NoError(t, err)
	assert.Equal(t, int64(100), ret.GetValue(0).I64)
	assert.Equal(t, int64(200), ret.GetValue(1).I64)
	assert.True(t, ret.GetValue(2).IsNull)
	assert.Equal(t, int64(300), ret.GetValue(3).I64)
}

func Test_denseSpanWalkReordered(t *testing.T) {
	// offsets jump backwards and values are shared between rows
	vec := newDenseUnion(
		[]common.UnionMemberId{0, 1, 0, 0},
		[]int32{1, 0, 0, 0},
		[]int32{100, 200},
		[]string{"s"})

	ret, err := UnionExtract(vec, 4, "int")
	require.NoError(t, err)
	assert.Equal(t, int64(200), ret.GetValue(0).I64)
	assert.True(t, ret.GetValue(1).IsNull)
	assert.Equal(t, int64(100), ret.GetValue(2).I64)
	assert.Equal(t, int64(100), ret.GetValue(3).I64)
}

func Test_denseSpanWalkNullUnionRows(t *testing.T) {
	vec := newDenseUnion(
		[]common.UnionMemberId{0, 0, 1, 0},
		[]int32{0, 1, 0, 2},
		[]int32{1, 2, 3},
		[]string{"s"})
	vec.Mask.SetInvalid(1)

	ret, err := UnionExtract(vec, 4, "int")
	require.NoError(t, err)
	assert.Equal(t, int64(1), ret.GetValue(0).I64)
	assert.True(t, ret.GetValue(1).IsNull)
	assert.True(t, ret.GetValue(2).IsNull)
	assert.Equal(t, int64(3), ret.GetValue(3).I64)
}

func Test_denseSpanWalkVarchar(t *testing.T) {
	vec := newDenseUnion(
		[]common.UnionMemberId{1, 0, 1},
		[]int32{0, 0, 1},
		[]int32{7},
		[]string{"left", "right"})

	ret, err := UnionExtract(vec, 3, "str")
	require.NoError(t, err)
	assert.Equal(t, "left", ret.GetValue(0).Str)
	assert.True(t, ret.GetValue(1).IsNull)
	assert.Equal(t, "right", ret.GetValue(2).Str)
}

func Test_denseAllMatchWithNullRowsStillSlices(t *testing.T) {
	vec := newDenseUnion(
		[]common.UnionMemberId{0, 0, 0},
		[]int32{0, 1, 2},
		[]int32{1, 2, 3},
		nil)
	vec.Mask.SetInvalid(2)
	assert.Equal(t, extractSliceSequential, classifyDense(vec, 3, 0))

	ret, err := UnionExtract(vec, 3, "int")
	require.NoError(t, err)
	assert.Equal(t, int64(1), ret.GetValue(0).I64)
	assert.Equal(t, int64(2), ret.GetValue(1).I64)
	assert.True(t, ret.GetValue(2).IsNull)
}

func Test_extractValueScalar(t *testing.T) {
	typ := intStrUnionType()
	val := &chunk.Value{
		Typ: typ,
		Union: &chunk.UnionValue{
			Id: 0,
			Val: &chunk.Value{
				Typ: common.IntegerType(),
				I64: 42,
			},
		},
	}

	got, err := UnionExtractValue(val, "int")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.I64)

	//the boxed value is copied, not shared
	got.I64 = 1
	assert.Equal(t, int64(42), val.Union.Val.I64)

	other, err := UnionExtractValue(val, "str")
	require.NoError(t, err)
	assert.True(t, other.IsNull)
	assert.True(t, other.Typ.Equal(common.VarcharType()))

	_, err = UnionExtractValue(val, "missing")
	assert.ErrorIs(t, err, ErrFieldNotFound)

	nullVal := &chunk.Value{Typ: typ, IsNull: true}
	got, err = UnionExtractValue(nullVal, "int")
	require.NoError(t, err)
	assert.True(t, got.IsNull)
}

func Test_bindReturnType(t *testing.T) {
	typ := intStrUnionType()
	col := NewColumnExpr(0, typ)

	retTyp, err := UnionExtractReturnType([]*Expr{col, NewConstStrExpr("str")})
	require.NoError(t, err)
	assert.True(t, retTyp.Equal(common.VarcharType()))

	_, err = UnionExtractReturnType([]*Expr{
		NewColumnExpr(0, common.IntegerType()),
		NewConstStrExpr("str"),
	})
	assert.ErrorIs(t, err, ErrNotUnion)

	_, err = UnionExtractReturnType([]*Expr{
		col,
		NewColumnExpr(1, common.VarcharType()),
	})
	assert.ErrorIs(t, err, ErrFieldNameNotConst)

	_, err = UnionExtractReturnType([]*Expr{col, NewConstStrExpr("nope")})
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func Test_executorEndToEnd(t *testing.T) {
	vec := newSparseUnion(
		[]common.UnionMemberId{0, 1, 0},
		[]int32{10, 20, 30},
		[]string{"a", "b", "c"})

	input := &chunk.Chunk{}
	input.Init([]common.LType{vec.Typ()}, util.DefaultVectorSize)
	input.SetVector(0, vec)
	input.SetCard(3)

	col := NewColumnExpr(0, vec.Typ())
	extractExpr, err := BindScalarFunc("union_extract", col, NewConstStrExpr("int"))
	require.NoError(t, err)
	assert.True(t, extractExpr.DataTyp.Equal(common.IntegerType()))

	exec := NewExprExec(extractExpr)
	result := &chunk.Chunk{}
	result.Init([]common.LType{extractExpr.DataTyp}, util.DefaultVectorSize)
	require.NoError(t, exec.ExecuteExprs(input, result))

	assert.Equal(t, 3, result.Card())
	assert.Equal(t, int64(10), result.Data[0].GetValue(0).I64)
	assert.True(t, result.Data[0].GetValue(1).IsNull)
	assert.Equal(t, int64(30), result.Data[0].GetValue(2).I64)
}

func Test_bindUnknownFunction(t *testing.T) {
	_, err := BindScalarFunc("no_such_func")
	assert.Error(t, err)
}
