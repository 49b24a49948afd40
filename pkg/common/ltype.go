package common

import (
	"fmt"
)

type LType struct {
	Id    LTypeId
	PTyp  PhyType
	Width int
	Scale int
	Uinfo *UnionTypeInfo
}

func MakeLType(id LTypeId) LType {
	ret := LType{Id: id}
	ret.PTyp = ret.GetInternalType()
	return ret
}

func Null() LType {
	return MakeLType(LTID_NULL)
}

func DecimalType(width, scale int) LType {
	ret := MakeLType(LTID_DECIMAL)
	ret.Width = width
	ret.Scale = scale
	return ret
}

func BigintType() LType {
	return MakeLType(LTID_BIGINT)
}

func IntegerType() LType {
	return MakeLType(LTID_INTEGER)
}

func TinyintType() LType {
	return MakeLType(LTID_TINYINT)
}

func SmallintType() LType {
	return MakeLType(LTID_SMALLINT)
}

func FloatType() LType {
	return MakeLType(LTID_FLOAT)
}

func DoubleType() LType {
	return MakeLType(LTID_DOUBLE)
}

func VarcharType() LType {
	return MakeLType(LTID_VARCHAR)
}

func BooleanType() LType {
	return MakeLType(LTID_BOOLEAN)
}

func UbigintType() LType {
	return MakeLType(LTID_UBIGINT)
}

func CopyLTypes(typs ...LType) []LType {
	ret := make([]LType, 0)
	ret = append(ret, typs...)
	return ret
}

func (lt LType) Equal(o LType) bool {
	if lt.Id != o.Id {
		return false
	}
	switch lt.Id {
	case LTID_DECIMAL:
		return lt.Width == o.Width && lt.Scale == o.Scale
	case LTID_UNION:
		return lt.Uinfo.Equal(o.Uinfo)
	default:
	}
	return true
}

func (lt LType) IsNumeric() bool {
	switch lt.Id {
	case LTID_TINYINT, LTID_SMALLINT, LTID_INTEGER,
		LTID_BIGINT, LTID_FLOAT, LTID_DOUBLE,
		LTID_DECIMAL, LTID_UTINYINT, LTID_USMALLINT,
		LTID_UINTEGER, LTID_UBIGINT:
		return true
	}
	return false
}

func (lt LType) IsUnion() bool {
	return lt.Id == LTID_UNION
}

func (lt LType) GetInternalType() PhyType {
	switch lt.Id {
	case LTID_BOOLEAN:
		return BOOL
	case LTID_TINYINT:
		return INT8
	case LTID_UTINYINT:
		return UINT8
	case LTID_SMALLINT:
		return INT16
	case LTID_USMALLINT:
		return UINT16
	case LTID_NULL, LTID_INTEGER:
		return INT32
	case LTID_UINTEGER:
		return UINT32
	case LTID_BIGINT:
		return INT64
	case LTID_UBIGINT:
		return UINT64
	case LTID_FLOAT:
		return FLOAT
	case LTID_DOUBLE:
		return DOUBLE
	case LTID_DECIMAL:
		return DECIMAL
	case LTID_VARCHAR:
		return VARCHAR
	case LTID_UNION, LTID_STRUCT:
		return STRUCT
	case LTID_LIST:
		return LIST
	case LTID_ANY, LTID_INVALID, LTID_UNKNOWN:
		return INVALID
	default:
		panic(fmt.Sprintf("usp logical type %d", lt.Id))
	}
}

func (lt LType) String() string {
	if lt.Id == LTID_DECIMAL {
		return fmt.Sprintf("%v(%d,%d)", lt.PTyp, lt.Width, lt.Scale)
	}
	if lt.Id == LTID_UNION {
		return fmt.Sprintf("UNION%v", lt.Uinfo)
	}
	return fmt.Sprintf("%v", lt.PTyp)
}
