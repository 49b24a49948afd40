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

type ExprState struct {
	_expr       *Expr
	_execState  *ExprExecState
	_children   []*ExprState
	_types      []common.LType
	_interChunk *chunk.Chunk
}

func NewExprState(expr *Expr, eeState *ExprExecState) *ExprState {
	return &ExprState{
		_expr:       expr,
		_execState:  eeState,
		_interChunk: &chunk.Chunk{},
	}
}

func (es *ExprState) addChild(child *Expr) {
	es._types = append(es._types, child.DataTyp)
	es._children = append(es._children, initExprState(child, es._execState))
}

func (es *ExprState) finalize() {
	if len(es._types) == 0 {
		return
	}
	es._interChunk.Init(es._types, util.DefaultVectorSize)
}

func initExprState(expr *Expr, eeState *ExprExecState) *ExprState {
	state := NewExprState(expr, eeState)
	for _, child := range expr.Children {
		state.addChild(child)
	}
	state.finalize()
	return state
}

type ExprExecState struct {
	_root *ExprState
	_exec *ExprExec
}

type ExprExec struct {
	_exprs      []*Expr
	_chunk      *chunk.Chunk
	_execStates []*ExprExecState
}

func NewExprExec(es ...*Expr) *ExprExec {
	exec := &ExprExec{}
	for _, e := range es {
		if e == nil {
			continue
		}
		exec.addExpr(e)
	}
	return exec
}

func (exec *ExprExec) addExpr(expr *Expr) {
	exec._exprs = append(exec._exprs, expr)
	eeState := &ExprExecState{}
	eeState._exec = exec
	eeState._root = initExprState(expr, eeState)
	exec._execStates = append(exec._execStates, eeState)
}

// ExecuteExprs evaluates every expression over data, one result column
// per expression.
func (exec *ExprExec) ExecuteExprs(data *chunk.Chunk, result *chunk.Chunk) error {
	for i := 0; i < len(exec._exprs); i++ {
		err := exec.ExecuteExprI(data, i, result.Data[i])
		if err != nil {
			return err
		}
	}
	if data != nil {
		result.SetCard(data.Card())
	}
	return nil
}

func (exec *ExprExec) ExecuteExprI(data *chunk.Chunk, exprId int, result *chunk.Vector) error {
	exec._chunk = data
	cnt := 1
	if exec._chunk != nil {
		cnt = exec._chunk.Card()
	}
	return exec.execute(
		exec._exprs[exprId],
		exec._execStates[exprId]._root,
		cnt,
		result,
	)
}

func (exec *ExprExec) execute(expr *Expr, eState *ExprState, count int, result *chunk.Vector) error {
	if count == 0 {
		return nil
	}
	switch expr.Typ {
	case ET_Column:
		return exec.executeColumnRef(expr, eState, count, result)
	case ET_Func:
		return exec.executeFunc(expr, eState, count, result)
	case ET_Const:
		return exec.executeConst(expr, eState, count, result)
	default:
		panic(fmt.Sprintf("%d", expr.Typ))
	}
}

func (exec *ExprExec) executeColumnRef(expr *Expr, eState *ExprState, count int, result *chunk.Vector) error {
	data := exec._chunk
	result.Reference(data.Data[expr.ColIdx])
	return nil
}

func (exec *ExprExec) executeConst(expr *Expr, state *ExprState, count int, result *chunk.Vector) error {
	switch expr.ConstValue.Type {
	case ConstTypeInteger,
		ConstTypeString,
		ConstTypeNull:
		val := &chunk.Value{
			Typ:    expr.DataTyp,
			IsNull: expr.ConstValue.Type == ConstTypeNull,
			I64:    expr.ConstValue.Integer,
			Str:    expr.ConstValue.String,
		}
		result.ReferenceValue(val)
	default:
		panic("usp")
	}
	return nil
}

func (exec *ExprExec) executeFunc(expr *Expr, eState *ExprState, count int, result *chunk.Vector) error {
	var err error
	eState._interChunk.Reset()
	for i, child := range expr.Children {
		err = exec.execute(child,
			eState._children[i],
			count,
			eState._interChunk.Data[i])
		if err != nil {
			return err
		}
	}
	eState._interChunk.SetCard(count)
	expr.FunImpl._scalar(eState._interChunk, eState, result)
	return nil
}
