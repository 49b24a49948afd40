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
	"fmt"

	"github.com/unionvec/unionvec/pkg/chunk"
	"github.com/unionvec/unionvec/pkg/common"
)

// UnionTag maps every row to the name of its active member. The result
// is a dictionary vector: one varchar entry per declared member id, the
// row's member id as the selection index. Nothing is copied per row.
func UnionTag(vec *chunk.Vector, count int) (*chunk.Vector, error) {
	if !vec.Typ().IsUnion() {
		return nil, fmt.Errorf("%w: %v", ErrNotUnion, vec.Typ())
	}
	info := vec.Typ().Uinfo

	// names indexed by member id. Gaps between declared ids stay empty
	// and are never selected.
	names := make([]string, int(info.MaxMemberId())+1)
	for _, m := range info.Members {
		names[m.Id] = m.Name
	}
	dictChild := chunk.NewVarcharFlatVector(names, len(names))

	ids := chunk.UnionMemberIds(vec)
	sel := make([]int, count)
	for i := 0; i < count; i++ {
		sel[i] = int(ids[i])
	}
	return chunk.NewDictVector(dictChild, sel), nil
}

// UnionTagValue is the scalar form of UnionTag.
func UnionTagValue(val *chunk.Value) (*chunk.Value, error) {
	if !val.Typ.IsUnion() {
		return nil, fmt.Errorf("%w: %v", ErrNotUnion, val.Typ)
	}
	if val.IsNull || val.Union == nil {
		return &chunk.Value{
			Typ:    common.VarcharType(),
			IsNull: true,
		}, nil
	}
	return &chunk.Value{
		Typ: common.VarcharType(),
		Str: val.Typ.Uinfo.MemberName(val.Union.Id),
	}, nil
}

type UnionTagFunc struct {
}

func (UnionTagFunc) Register(funcList FunctionList) {
	set := NewFunctionSet("union_tag", ScalarFuncType)

	tag := &FunctionV2{
		_name: "union_tag",
		_args: []common.LType{
			common.MakeLType(common.LTID_UNION),
		},
		_retType:      common.VarcharType(),
		_funcTyp:      ScalarFuncType,
		_nullHandling: SpecialHandling,
		_scalar:       scalarUnionTag,
		_bind:         bindUnionTag,
	}

	set.Add(tag)

	funcList.Add("union_tag", set)
}

func bindUnionTag(fun *FunctionV2, args []*Expr) (*FunctionData, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("union_tag expects 1 argument, got %d", len(args))
	}
	if !args[0].DataTyp.IsUnion() {
		return nil, fmt.Errorf("%w: %v", ErrNotUnion, args[0].DataTyp)
	}
	return nil, nil
}

func scalarUnionTag(input *chunk.Chunk, state *ExprState, result *chunk.Vector) {
	ret, err := UnionTag(input.Data[0], input.Card())
	if err != nil {
		panic(err)
	}
	result.Reference(ret)
}
