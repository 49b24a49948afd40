package common

import (
	decimal2 "github.com/govalues/decimal"
)

type Decimal struct {
	decimal2.Decimal
}

func (dec *Decimal) Equal(o *Decimal) bool {
	return dec.Decimal.Cmp(o.Decimal) == 0
}

func (dec *Decimal) String() string {
	return dec.Decimal.String()
}

const (
	DecimalMaxWidthInt64 = 18
	DecimalMaxWidth      = 38
)
