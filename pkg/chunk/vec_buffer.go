package chunk

import (
	"github.com/unionvec/unionvec/pkg/common"
	"github.com/unionvec/unionvec/pkg/util"
)

type VecBufferType int

const (
	//array of data
	VBT_STANDARD VecBufferType = iota
	VBT_DICT
	VBT_CHILD
	VBT_UNION
)

// UnionBuffer holds the member arrays of a union vector. Members is
// parallel to the declared member list of the union type. Sizes carries
// the value count of each member array (dense members may be longer than
// the number of rows selecting them). Offsets is nil for sparse unions.
type UnionBuffer struct {
	Members []*Vector
	Sizes   []int
	Offsets []int32
}

type VecBuffer struct {
	BufTyp VecBufferType
	Data   []byte
	Sel    *SelectVector
	Child  *Vector
	Union  *UnionBuffer
}

func (buf *VecBuffer) GetSelVector() *SelectVector {
	util.AssertFunc(buf.BufTyp == VBT_DICT)
	return buf.Sel
}

func (buf *VecBuffer) GetUnion() *UnionBuffer {
	util.AssertFunc(buf.BufTyp == VBT_UNION)
	return buf.Union
}

func NewBuffer(sz int) *VecBuffer {
	return &VecBuffer{
		BufTyp: VBT_STANDARD,
		Data:   util.GAlloc.Alloc(sz),
	}
}

func NewStandardBuffer(lt common.LType, cap int) *VecBuffer {
	return NewBuffer(lt.GetInternalType().Size() * cap)
}

func NewDictBuffer(data []int) *VecBuffer {
	return &VecBuffer{
		BufTyp: VBT_DICT,
		Sel: &SelectVector{
			SelVec: data,
		},
	}
}

func NewDictBuffer2(sel *SelectVector) *VecBuffer {
	buf := &VecBuffer{
		BufTyp: VBT_DICT,
		Sel:    &SelectVector{},
	}
	buf.Sel.Init2(sel)
	return buf
}

func NewChildBuffer(child *Vector) *VecBuffer {
	return &VecBuffer{
		BufTyp: VBT_CHILD,
		Child:  child,
	}
}

func NewConstBuffer(typ common.LType) *VecBuffer {
	return NewStandardBuffer(typ, 1)
}

func NewUnionBuffer(members []*Vector, sizes []int, offsets []int32) *VecBuffer {
	return &VecBuffer{
		BufTyp: VBT_UNION,
		Union: &UnionBuffer{
			Members: members,
			Sizes:   sizes,
			Offsets: offsets,
		},
	}
}
