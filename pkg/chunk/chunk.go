package chunk

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/unionvec/unionvec/pkg/common"
	"github.com/unionvec/unionvec/pkg/util"
)

// Chunk is a batch of column vectors sharing one cardinality.
type Chunk struct {
	Data  []*Vector
	Count int
	_Cap  int
}

func (c *Chunk) Init(types []common.LType, cap int) {
	c._Cap = cap
	c.Data = nil
	for _, lType := range types {
		c.Data = append(c.Data, NewVector2(lType, c._Cap))
	}
}

func (c *Chunk) Reset() {
	if len(c.Data) == 0 {
		return
	}
	for _, vec := range c.Data {
		vec.Reset()
	}
	c._Cap = util.DefaultVectorSize
	c.Count = 0
}

func (c *Chunk) Cap() int {
	return c._Cap
}

func (c *Chunk) SetCap(cap int) {
	c._Cap = cap
}

func (c *Chunk) SetCard(count int) {
	util.AssertFunc(c.Count <= c._Cap)
	c.Count = count
}

func (c *Chunk) Card() int {
	return c.Count
}

func (c *Chunk) ColumnCount() int {
	if c == nil {
		return 0
	}
	return len(c.Data)
}

func (c *Chunk) SetVector(colIdx int, vec *Vector) {
	util.AssertFunc(colIdx < len(c.Data))
	c.Data[colIdx] = vec
}

func (c *Chunk) Print(rowPrefix string) {
	for j := 0; j < c.Card(); j++ {
		fields := make([]zap.Field, 0)
		for i := 0; i < c.ColumnCount(); i++ {
			val := c.Data[i].GetValue(j)
			fields = append(fields, zap.String("", val.String()))
		}
		util.Info(fmt.Sprintf("%s %d", rowPrefix, j), fields...)
	}
}
