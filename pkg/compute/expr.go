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
	"github.com/unionvec/unionvec/pkg/common"
)

type ET int

const (
	ET_Column ET = iota
	ET_Func
	ET_Const
)

type ConstType int

const (
	ConstTypeInteger ConstType = iota
	ConstTypeString
	ConstTypeNull
)

type ConstValue struct {
	Type    ConstType
	Integer int64
	String  string
}

type Expr struct {
	Typ     ET
	DataTyp common.LType

	Children []*Expr

	ColIdx     int // column position, ET_Column
	ConstValue ConstValue
	BindInfo   *FunctionData
	FunImpl    *FunctionV2
}

func NewColumnExpr(colIdx int, typ common.LType) *Expr {
	return &Expr{
		Typ:     ET_Column,
		DataTyp: typ,
		ColIdx:  colIdx,
	}
}

func NewConstStrExpr(s string) *Expr {
	return &Expr{
		Typ:     ET_Const,
		DataTyp: common.VarcharType(),
		ConstValue: ConstValue{
			Type:   ConstTypeString,
			String: s,
		},
	}
}

// IsConstStr reports whether the expr is a constant string literal.
func (e *Expr) IsConstStr() bool {
	return e.Typ == ET_Const && e.ConstValue.Type == ConstTypeString
}
