package chunk

import (
	"github.com/unionvec/unionvec/pkg/common"
	"github.com/unionvec/unionvec/pkg/util"
)

// A union vector is a flat vector whose Data holds the per-row member
// ids and whose Aux carries the member arrays. Sparse unions keep every
// member row aligned with the union rows. Dense unions add a per-row
// offset into the selected member.
//
// Invariants are checked once here, at construction. The extraction
// paths trust them afterwards.

func NewSparseUnionVector(
	typ common.LType,
	memberIds []common.UnionMemberId,
	members []*Vector,
	count int,
) *Vector {
	util.AssertFunc(typ.IsUnion())
	info := typ.Uinfo
	util.AssertFunc(len(members) == info.MemberCount())
	util.AssertFunc(len(memberIds) >= count)
	validateUnionMembers(info, members)
	for i := 0; i < count; i++ {
		util.AssertFunc(info.MemberDeclared(memberIds[i]))
	}

	vec := newUnionVector(typ, memberIds, count)
	sizes := make([]int, len(members))
	for i := range sizes {
		sizes[i] = count
	}
	vec.Aux = NewUnionBuffer(members, sizes, nil)
	return vec
}

func NewDenseUnionVector(
	typ common.LType,
	memberIds []common.UnionMemberId,
	offsets []int32,
	members []*Vector,
	sizes []int,
	count int,
) *Vector {
	util.AssertFunc(typ.IsUnion())
	info := typ.Uinfo
	util.AssertFunc(len(members) == info.MemberCount())
	util.AssertFunc(len(sizes) == len(members))
	util.AssertFunc(len(memberIds) >= count)
	util.AssertFunc(len(offsets) >= count)
	validateUnionMembers(info, members)
	for i := 0; i < count; i++ {
		slot, ok := info.MemberSlot(memberIds[i])
		util.AssertFunc(ok)
		util.AssertFunc(offsets[i] >= 0)
		util.AssertFunc(int(offsets[i]) < sizes[slot])
	}

	vec := newUnionVector(typ, memberIds, count)
	vec.Aux = NewUnionBuffer(members, sizes, offsets)
	return vec
}

func newUnionVector(
	typ common.LType,
	memberIds []common.UnionMemberId,
	count int,
) *Vector {
	vec := &Vector{
		_PhyFormat: PF_FLAT,
		_Typ:       typ,
		Mask:       &util.Bitmap{},
	}
	vec.Buf = NewBuffer(max(count, 1) * common.Int8Size)
	vec.Data = vec.Buf.Data
	ids := util.ToSlice[int8](vec.Data, common.Int8Size)
	copy(ids, memberIds[:count])
	return vec
}

func validateUnionMembers(info *common.UnionTypeInfo, members []*Vector) {
	for i, m := range members {
		util.AssertFunc(m != nil)
		util.AssertFunc(m.PhyFormat().IsFlat())
		util.AssertFunc(m.Typ().Equal(info.Members[i].Typ))
	}
}

func UnionIsDense(vec *Vector) bool {
	return unionBuffer(vec).Offsets != nil
}

// UnionMemberIds exposes the per-row member id buffer.
func UnionMemberIds(vec *Vector) []common.UnionMemberId {
	util.AssertFunc(vec.Typ().IsUnion())
	util.AssertFunc(vec.PhyFormat().IsFlat())
	return util.ToSlice[int8](vec.Data, common.Int8Size)
}

// UnionOffsets is nil for sparse unions.
func UnionOffsets(vec *Vector) []int32 {
	return unionBuffer(vec).Offsets
}

// UnionMember returns the member array of a declared id.
func UnionMember(vec *Vector, id common.UnionMemberId) *Vector {
	slot, ok := vec.Typ().Uinfo.MemberSlot(id)
	util.AssertFunc(ok)
	return unionBuffer(vec).Members[slot]
}

// UnionMemberSize is the value count of a member array. Dense members
// may be shorter or longer than the union row count.
func UnionMemberSize(vec *Vector, id common.UnionMemberId) int {
	slot, ok := vec.Typ().Uinfo.MemberSlot(id)
	util.AssertFunc(ok)
	return unionBuffer(vec).Sizes[slot]
}

func unionBuffer(vec *Vector) *UnionBuffer {
	util.AssertFunc(vec.Typ().IsUnion())
	return vec.Aux.GetUnion()
}

func unionGetValue(vec *Vector, idx int) *Value {
	ids := UnionMemberIds(vec)
	id := ids[idx]
	buf := unionBuffer(vec)
	slot, ok := vec.Typ().Uinfo.MemberSlot(id)
	util.AssertFunc(ok)
	row := idx
	if buf.Offsets != nil {
		row = int(buf.Offsets[idx])
	}
	return &Value{
		Typ: vec.Typ(),
		Union: &UnionValue{
			Id:  id,
			Val: buf.Members[slot].GetValue(row),
		},
	}
}
