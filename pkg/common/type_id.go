package common

import "fmt"

type LTypeId int

const (
	LTID_INVALID   LTypeId = 0
	LTID_NULL      LTypeId = 1
	LTID_UNKNOWN   LTypeId = 2
	LTID_ANY       LTypeId = 3
	LTID_BOOLEAN   LTypeId = 10
	LTID_TINYINT   LTypeId = 11
	LTID_SMALLINT  LTypeId = 12
	LTID_INTEGER   LTypeId = 13
	LTID_BIGINT    LTypeId = 14
	LTID_DECIMAL   LTypeId = 21
	LTID_FLOAT     LTypeId = 22
	LTID_DOUBLE    LTypeId = 23
	LTID_VARCHAR   LTypeId = 25
	LTID_UTINYINT  LTypeId = 28
	LTID_USMALLINT LTypeId = 29
	LTID_UINTEGER  LTypeId = 30
	LTID_UBIGINT   LTypeId = 31
	LTID_STRUCT    LTypeId = 100
	LTID_LIST      LTypeId = 101
	LTID_UNION     LTypeId = 107
)

var lTypeIdToStr = map[LTypeId]string{
	LTID_INVALID:   "LTID_INVALID",
	LTID_NULL:      "LTID_NULL",
	LTID_UNKNOWN:   "LTID_UNKNOWN",
	LTID_ANY:       "LTID_ANY",
	LTID_BOOLEAN:   "LTID_BOOLEAN",
	LTID_TINYINT:   "LTID_TINYINT",
	LTID_SMALLINT:  "LTID_SMALLINT",
	LTID_INTEGER:   "LTID_INTEGER",
	LTID_BIGINT:    "LTID_BIGINT",
	LTID_DECIMAL:   "LTID_DECIMAL",
	LTID_FLOAT:     "LTID_FLOAT",
	LTID_DOUBLE:    "LTID_DOUBLE",
	LTID_VARCHAR:   "LTID_VARCHAR",
	LTID_UTINYINT:  "LTID_UTINYINT",
	LTID_USMALLINT: "LTID_USMALLINT",
	LTID_UINTEGER:  "LTID_UINTEGER",
	LTID_UBIGINT:   "LTID_UBIGINT",
	LTID_STRUCT:    "LTID_STRUCT",
	LTID_LIST:      "LTID_LIST",
	LTID_UNION:     "LTID_UNION",
}

func (id LTypeId) String() string {
	if s, has := lTypeIdToStr[id]; has {
		return s
	}
	panic(fmt.Sprintf("usp %d", id))
}
