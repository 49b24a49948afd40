package common

import (
	"fmt"
	"strings"

	"github.com/unionvec/unionvec/pkg/util"
)

// UnionMemberId tags the active member of a union row. Ids are small and
// declared per member; they need not be dense or start at zero.
type UnionMemberId = int8

type UnionMemberDef struct {
	Id   UnionMemberId
	Name string
	Typ  LType
}

// UnionTypeInfo is the declared member set of a union type. Name to id is
// bijective. Shared by the type, its vectors and its values.
type UnionTypeInfo struct {
	Members []UnionMemberDef
}

func UnionType(members []UnionMemberDef) LType {
	util.AssertFunc(len(members) > 0)
	seenId := make(map[UnionMemberId]bool)
	seenName := make(map[string]bool)
	for _, m := range members {
		util.AssertFunc(m.Id >= 0)
		util.AssertFunc(!seenId[m.Id])
		util.AssertFunc(!seenName[m.Name])
		seenId[m.Id] = true
		seenName[m.Name] = true
	}
	ret := MakeLType(LTID_UNION)
	ret.Uinfo = &UnionTypeInfo{
		Members: members,
	}
	return ret
}

func (info *UnionTypeInfo) MemberCount() int {
	return len(info.Members)
}

// MemberIdOf resolves a declared name to its member id.
func (info *UnionTypeInfo) MemberIdOf(name string) (UnionMemberId, bool) {
	for _, m := range info.Members {
		if m.Name == name {
			return m.Id, true
		}
	}
	return 0, false
}

// MemberSlot resolves a member id to its position in the declared member
// list. Member arrays are stored by slot, not by id.
func (info *UnionTypeInfo) MemberSlot(id UnionMemberId) (int, bool) {
	for i, m := range info.Members {
		if m.Id == id {
			return i, true
		}
	}
	return 0, false
}

func (info *UnionTypeInfo) MemberDeclared(id UnionMemberId) bool {
	for _, m := range info.Members {
		if m.Id == id {
			return true
		}
	}
	return false
}

func (info *UnionTypeInfo) MemberName(id UnionMemberId) string {
	for _, m := range info.Members {
		if m.Id == id {
			return m.Name
		}
	}
	panic(fmt.Sprintf("union member %d not declared", id))
}

func (info *UnionTypeInfo) MemberType(id UnionMemberId) LType {
	for _, m := range info.Members {
		if m.Id == id {
			return m.Typ
		}
	}
	panic(fmt.Sprintf("union member %d not declared", id))
}

// MaxMemberId is the largest declared id. Useful for sizing id-indexed
// side tables such as the tag dictionary.
func (info *UnionTypeInfo) MaxMemberId() UnionMemberId {
	ret := info.Members[0].Id
	for _, m := range info.Members[1:] {
		if m.Id > ret {
			ret = m.Id
		}
	}
	return ret
}

func (info *UnionTypeInfo) Equal(o *UnionTypeInfo) bool {
	if info == o {
		return true
	}
	if info == nil || o == nil {
		return false
	}
	if len(info.Members) != len(o.Members) {
		return false
	}
	for i, m := range info.Members {
		om := o.Members[i]
		if m.Id != om.Id || m.Name != om.Name || !m.Typ.Equal(om.Typ) {
			return false
		}
	}
	return true
}

func (info *UnionTypeInfo) String() string {
	sb := strings.Builder{}
	sb.WriteByte('(')
	for i, m := range info.Members {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(fmt.Sprintf("%s:%v", m.Name, m.Typ))
	}
	sb.WriteByte(')')
	return sb.String()
}
