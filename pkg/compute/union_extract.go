// Copyright 2024-2025 unionvec
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compute

import (
	"errors"
	"fmt"

	"github.com/unionvec/unionvec/pkg/chunk"
	"github.com/unionvec/unionvec/pkg/common"
	"github.com/unionvec/unionvec/pkg/util"
)

var (
	ErrFieldNotFound     = errors.New("union field not found")
	ErrNotUnion          = errors.New("argument is not a union")
	ErrFieldNameNotConst = errors.New("field name must be a constant string")
)

// extractPath is the decision of the extraction planner. Every input
// lands on exactly one path; the paths are ordered from cheapest to most
// expensive.
type extractPath int

const (
	// no rows, empty result
	extractEmptyUnion extractPath = iota
	// dense member with no values, all-null result
	extractEmptyMember
	// no row selects the field, all-null result
	extractAllNull
	// every row selects the field, member returned as-is
	extractVerbatim
	// every row selects the field through contiguous offsets, zero-copy
	// slice of the member
	extractSliceSequential
	// every row selects the field through scattered offsets, gather
	extractGather
	// sparse mix of fields, member data reused under a recomputed mask
	extractMaskedRows
	// dense mix of fields, run-by-run rebuild
	extractSpanWalk
)

func (p extractPath) String() string {
	switch p {
	case extractEmptyUnion:
		return "empty-union"
	case extractEmptyMember:
		return "empty-member"
	case extractAllNull:
		return "all-null"
	case extractVerbatim:
		return "verbatim"
	case extractSliceSequential:
		return "slice-sequential"
	case extractGather:
		return "gather"
	case extractMaskedRows:
		return "masked-rows"
	case extractSpanWalk:
		return "span-walk"
	}
	panic(fmt.Sprintf("usp %d", p))
}

// UnionExtractReturnType resolves the result type of extracting field
// from the union argument. Argument errors surface here, at bind time.
func UnionExtractReturnType(args []*Expr) (common.LType, error) {
	if len(args) != 2 {
		return common.LType{}, fmt.Errorf(
			"union_extract expects 2 arguments, got %d", len(args))
	}
	uTyp := args[0].DataTyp
	if !uTyp.IsUnion() {
		return common.LType{}, fmt.Errorf("%w: %v", ErrNotUnion, uTyp)
	}
	fieldArg := args[1]
	if fieldArg.DataTyp.Id != common.LTID_VARCHAR || !fieldArg.IsConstStr() {
		return common.LType{}, fmt.Errorf("%w: %v", ErrFieldNameNotConst,
			fieldArg.DataTyp)
	}
	name := fieldArg.ConstValue.String
	id, ok := uTyp.Uinfo.MemberIdOf(name)
	if !ok {
		return common.LType{}, fmt.Errorf("%w: %s in %v",
			ErrFieldNotFound, name, uTyp.Uinfo)
	}
	return uTyp.Uinfo.MemberType(id), nil
}

// UnionExtract extracts the named field from the first count rows of a
// union vector. Rows selecting another field, rows where the union is
// null and rows where the member value is null all come out null. Cheap
// paths share the member's storage instead of copying it; vec itself is
// never written.
func UnionExtract(vec *chunk.Vector, count int, field string) (*chunk.Vector, error) {
	if !vec.Typ().IsUnion() {
		return nil, fmt.Errorf("%w: %v", ErrNotUnion, vec.Typ())
	}
	info := vec.Typ().Uinfo
	id, ok := info.MemberIdOf(field)
	if !ok {
		return nil, fmt.Errorf("%w: %s in %v", ErrFieldNotFound, field, info)
	}
	if chunk.UnionIsDense(vec) {
		return extractDense(vec, count, id), nil
	}
	return extractSparse(vec, count, id), nil
}

func classifySparse(vec *chunk.Vector, count int, id common.UnionMemberId) extractPath {
	if count == 0 {
		return extractEmptyUnion
	}
	member := chunk.UnionMember(vec, id)
	if member.Mask.IsMaskSet() && member.Mask.CountValid(count) == 0 {
		return extractAllNull
	}
	ids := chunk.UnionMemberIds(vec)
	matches := 0
	for i := 0; i < count; i++ {
		if ids[i] == id {
			matches++
		}
	}
	switch {
	case matches == 0:
		return extractAllNull
	case matches == count && vec.Mask.AllValid():
		return extractVerbatim
	default:
		return extractMaskedRows
	}
}

func extractSparse(vec *chunk.Vector, count int, id common.UnionMemberId) *chunk.Vector {
	member := chunk.UnionMember(vec, id)
	mTyp := member.Typ()
	switch classifySparse(vec, count, id) {
	case extractEmptyUnion:
		return chunk.NewFlatVector(mTyp, 0)
	case extractAllNull:
		return allNullVector(mTyp, count)
	case extractVerbatim:
		ret := chunk.NewVector(mTyp, false, 0)
		ret.Reference(member)
		return ret
	case extractMaskedRows:
		// member rows are already aligned with union rows. Only the
		// validity changes: a row survives when it selects the field,
		// the union row is valid and the member value is valid.
		ids := chunk.UnionMemberIds(vec)
		mask := &util.Bitmap{}
		mask.Init(max(count, util.DefaultVectorSize))
		for i := 0; i < count; i++ {
			if ids[i] != id {
				mask.SetInvalidUnsafe(uint64(i))
			}
		}
		mask.Combine(member.Mask, count)
		mask.Combine(vec.Mask, count)
		ret := chunk.NewVector(mTyp, false, 0)
		ret.Reference(member)
		ret.Mask = mask
		return ret
	default:
		panic("usp")
	}
}

func classifyDense(vec *chunk.Vector, count int, id common.UnionMemberId) extractPath {
	if count == 0 {
		return extractEmptyUnion
	}
	if chunk.UnionMemberSize(vec, id) == 0 {
		return extractEmptyMember
	}
	member := chunk.UnionMember(vec, id)
	if member.Mask.IsMaskSet() &&
		member.Mask.CountValid(chunk.UnionMemberSize(vec, id)) == 0 {
		return extractAllNull
	}
	ids := chunk.UnionMemberIds(vec)
	matches := 0
	for i := 0; i < count; i++ {
		if ids[i] == id {
			matches++
		}
	}
	switch {
	case matches == 0:
		return extractAllNull
	case matches == count:
		offsets := chunk.UnionOffsets(vec)
		if offsetsAreSequential(offsets, count) {
			return extractSliceSequential
		}
		return extractGather
	default:
		return extractSpanWalk
	}
}

func extractDense(vec *chunk.Vector, count int, id common.UnionMemberId) *chunk.Vector {
	member := chunk.UnionMember(vec, id)
	mTyp := member.Typ()
	switch classifyDense(vec, count, id) {
	case extractEmptyUnion:
		return chunk.NewFlatVector(mTyp, 0)
	case extractEmptyMember, extractAllNull:
		return allNullVector(mTyp, count)
	case extractSliceSequential:
		offsets := chunk.UnionOffsets(vec)
		start := uint64(offsets[0])
		ret := chunk.NewVector(mTyp, false, 0)
		ret.Slice3(member, start, start+uint64(count))
		return applyUnionMask(ret, vec, count)
	case extractGather:
		offsets := chunk.UnionOffsets(vec)
		sel := chunk.NewSelectVector(count)
		for i := 0; i < count; i++ {
			sel.SetIndex(i, int(offsets[i]))
		}
		ret := chunk.NewFlatVector(mTyp, max(count, util.DefaultVectorSize))
		chunk.Copy(member, ret, sel, count, 0, 0)
		return applyUnionMask(ret, vec, count)
	case extractSpanWalk:
		return extractDenseSpans(vec, count, id, member)
	default:
		panic("usp")
	}
}

// extractDenseSpans walks the rows once and copies each maximal run of
// contiguous member offsets in one call. Every row appends exactly one
// output slot, so the result stays row aligned even when the member is
// shared, reordered or interleaved with other members.
func extractDenseSpans(
	vec *chunk.Vector,
	count int,
	id common.UnionMemberId,
	member *chunk.Vector,
) *chunk.Vector {
	ids := chunk.UnionMemberIds(vec)
	offsets := chunk.UnionOffsets(vec)
	mv := chunk.NewMutableVector(member.Typ(), max(count, util.DefaultVectorSize))

	matching := false
	var runStart, runLast int32
	nulls := 0
	flushRun := func() {
		if matching {
			mv.ExtendFrom(member, int(runStart), int(runLast)+1)
			matching = false
		}
	}
	flushNulls := func() {
		if nulls > 0 {
			mv.ExtendNulls(nulls)
			nulls = 0
		}
	}

	for i := 0; i < count; i++ {
		if ids[i] == id && vec.Mask.RowIsValid(uint64(i)) {
			off := offsets[i]
			if matching && off == runLast+1 {
				runLast = off
			} else {
				flushRun()
				flushNulls()
				matching = true
				runStart, runLast = off, off
			}
		} else {
			flushRun()
			nulls++
		}
	}
	flushRun()
	flushNulls()

	util.AssertFunc(mv.Len() == count)
	return mv.Freeze()
}

// UnionExtractValue is the scalar form: pick the boxed member value out
// of a single union value.
func UnionExtractValue(val *chunk.Value, field string) (*chunk.Value, error) {
	if !val.Typ.IsUnion() {
		return nil, fmt.Errorf("%w: %v", ErrNotUnion, val.Typ)
	}
	info := val.Typ.Uinfo
	id, ok := info.MemberIdOf(field)
	if !ok {
		return nil, fmt.Errorf("%w: %s in %v", ErrFieldNotFound, field, info)
	}
	mTyp := info.MemberType(id)
	if val.IsNull || val.Union == nil || val.Union.Id != id {
		return &chunk.Value{
			Typ:    mTyp,
			IsNull: true,
		}, nil
	}
	return val.Union.Val.Copy(), nil
}

func offsetsAreSequential(offsets []int32, count int) bool {
	for i := 1; i < count; i++ {
		if offsets[i] != offsets[i-1]+1 {
			return false
		}
	}
	return true
}

func allNullVector(typ common.LType, count int) *chunk.Vector {
	ret := chunk.NewFlatVector(typ, max(count, util.DefaultVectorSize))
	chunk.GetMaskInPhyFormatFlat(ret).SetAllInvalid(count)
	return ret
}

// applyUnionMask nulls out result rows whose union row is null. The
// result keeps its own bitmap; vec is never written.
func applyUnionMask(ret *chunk.Vector, vec *chunk.Vector, count int) *chunk.Vector {
	if vec.Mask.AllValid() {
		return ret
	}
	mask := &util.Bitmap{}
	mask.CopyFrom(ret.Mask, count)
	mask.Combine(vec.Mask, count)
	ret.Mask = mask
	return ret
}

type UnionExtractFunc struct {
}

func (UnionExtractFunc) Register(funcList FunctionList) {
	set := NewFunctionSet("union_extract", ScalarFuncType)

	extract := &FunctionV2{
		_name: "union_extract",
		_args: []common.LType{
			common.MakeLType(common.LTID_UNION),
			common.VarcharType(),
		},
		_retType:      common.MakeLType(common.LTID_ANY),
		_funcTyp:      ScalarFuncType,
		_nullHandling: SpecialHandling,
		_scalar:       scalarUnionExtract,
		_bind:         bindUnionExtract,
	}

	set.Add(extract)

	funcList.Add("union_extract", set)
}

func bindUnionExtract(fun *FunctionV2, args []*Expr) (*FunctionData, error) {
	retTyp, err := UnionExtractReturnType(args)
	if err != nil {
		return nil, err
	}
	fun._retType = retTyp
	return nil, nil
}

func scalarUnionExtract(input *chunk.Chunk, state *ExprState, result *chunk.Vector) {
	field := state._expr.Children[1].ConstValue.String
	ret, err := UnionExtract(input.Data[0], input.Card(), field)
	if err != nil {
		panic(err)
	}
	result.Reference(ret)
}
