package chunk

import (
	"fmt"

	"github.com/govalues/decimal"
	clone "github.com/huandu/go-clone"

	"github.com/unionvec/unionvec/pkg/common"
)

// UnionValue is the scalar form of a union row: the active member id and
// the boxed member value. Val is nil only when the row is null.
type UnionValue struct {
	Id  common.UnionMemberId
	Val *Value
}

type Value struct {
	Typ    common.LType
	IsNull bool
	//value
	Bool  bool
	I64   int64
	I64_1 int64
	U64   uint64
	F64   float64
	Str   string
	Union *UnionValue
}

func (val Value) String() string {
	if val.IsNull {
		return "NULL"
	}
	switch val.Typ.Id {
	case common.LTID_BOOLEAN:
		return fmt.Sprintf("%v", val.Bool)
	case common.LTID_TINYINT, common.LTID_SMALLINT,
		common.LTID_INTEGER, common.LTID_BIGINT:
		return fmt.Sprintf("%d", val.I64)
	case common.LTID_UTINYINT, common.LTID_USMALLINT,
		common.LTID_UINTEGER, common.LTID_UBIGINT:
		return fmt.Sprintf("%d", val.U64)
	case common.LTID_FLOAT, common.LTID_DOUBLE:
		return fmt.Sprintf("%v", val.F64)
	case common.LTID_VARCHAR:
		return val.Str
	case common.LTID_DECIMAL:
		if len(val.Str) != 0 {
			return val.Str
		} else {
			d, err := decimal.NewFromInt64(val.I64, val.I64_1, val.Typ.Scale)
			if err != nil {
				panic(err)
			}
			return d.String()
		}
	case common.LTID_UNION:
		name := val.Typ.Uinfo.MemberName(val.Union.Id)
		return fmt.Sprintf("%s=>%v", name, val.Union.Val)
	default:
		panic("usp")
	}
}

// Copy deep clones the value. Boxed union values share nothing with the
// original.
func (val *Value) Copy() *Value {
	return clone.Clone(val).(*Value)
}
