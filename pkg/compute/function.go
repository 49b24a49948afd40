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
	"github.com/unionvec/unionvec/pkg/util"
)

type FuncNullHandling int

const (
	DefaultNullHandling FuncNullHandling = 0
	SpecialHandling     FuncNullHandling = 1
)

type FuncSideEffects int

const (
	NoSideEffects  FuncSideEffects = 0
	HasSideEffects FuncSideEffects = 1
)

type FuncType int

const (
	ScalarFuncType FuncType = 0
)

type FunctionV2 struct {
	_name         string
	_args         []common.LType
	_retType      common.LType
	_funcTyp      FuncType
	_sideEffects  FuncSideEffects
	_nullHandling FuncNullHandling

	_scalar ScalarFunc
	_bind   bindScalarFunc
}

func (fun *FunctionV2) Copy() *FunctionV2 {
	ret := &FunctionV2{
		_name:         fun._name,
		_args:         common.CopyLTypes(fun._args...),
		_retType:      fun._retType,
		_funcTyp:      fun._funcTyp,
		_sideEffects:  fun._sideEffects,
		_nullHandling: fun._nullHandling,
		_scalar:       fun._scalar,
		_bind:         fun._bind,
	}
	return ret
}

func (fun *FunctionV2) Name() string {
	return fun._name
}

func (fun *FunctionV2) RetType() common.LType {
	return fun._retType
}

type ScalarFunc func(*chunk.Chunk, *ExprState, *chunk.Vector)

type bindScalarFunc func(fun *FunctionV2, args []*Expr) (*FunctionData, error)

type FunctionData struct {
	_funDataTyp string
}

type FunctionSet struct {
	_name      string
	_functions []*FunctionV2
	_funcTyp   FuncType
}

func NewFunctionSet(name string, ftyp FuncType) *FunctionSet {
	ret := &FunctionSet{
		_name:    name,
		_funcTyp: ftyp,
	}
	return ret
}

func (set *FunctionSet) Add(fun *FunctionV2) {
	set._functions = append(set._functions, fun)
}

func (set *FunctionSet) GetFunc(offset int) *FunctionV2 {
	util.AssertFunc(offset < len(set._functions))
	//!!!note copy instead of referring directly
	return set._functions[offset].Copy()
}

type FunctionList map[string]*FunctionSet

func (flist FunctionList) Add(name string, set *FunctionSet) {
	if _, ok := flist[name]; ok {
		panic(fmt.Sprintf("function %s already registered", name))
	}
	flist[name] = set
}

var scalarFuncs = make(FunctionList)

func init() {
	RegisterOps()
}

func RegisterOps() {
	UnionExtractFunc{}.Register(scalarFuncs)
	UnionTagFunc{}.Register(scalarFuncs)
}

// BindScalarFunc resolves name against the registry and binds the
// function to args, producing a callable expression. Binding reports
// argument type errors instead of panicking.
func BindScalarFunc(name string, args ...*Expr) (*Expr, error) {
	fset := scalarFuncs[name]
	if fset == nil {
		return nil, fmt.Errorf("function %s not found", name)
	}
	fun := fset.GetFunc(0)
	var bindInfo *FunctionData
	if fun._bind != nil {
		var err error
		bindInfo, err = fun._bind(fun, args)
		if err != nil {
			return nil, err
		}
	}
	return &Expr{
		Typ:      ET_Func,
		DataTyp:  fun._retType,
		Children: args,
		BindInfo: bindInfo,
		FunImpl:  fun,
	}, nil
}
