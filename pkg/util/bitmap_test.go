package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_bitmapSetAndGet(t *testing.T) {
	bm := &Bitmap{}
	assert.True(t, bm.AllValid())
	assert.True(t, bm.RowIsValid(5))

	bm.SetInvalid(3)
	assert.False(t, bm.RowIsValid(3))
	assert.True(t, bm.RowIsValid(4))

	bm.SetValid(3)
	assert.True(t, bm.RowIsValid(3))
}

func Test_bitmapCombine(t *testing.T) {
	a := &Bitmap{}
	a.Init(16)
	a.SetInvalidUnsafe(1)

	b := &Bitmap{}
	b.Init(16)
	b.SetInvalidUnsafe(2)

	a.Combine(b, 16)
	assert.False(t, a.RowIsValid(1))
	assert.False(t, a.RowIsValid(2))
	assert.True(t, a.RowIsValid(0))
	assert.True(t, a.RowIsValid(3))

	//combining with an all-valid mask changes nothing
	c := &Bitmap{}
	a.Combine(c, 16)
	assert.False(t, a.RowIsValid(1))
	assert.True(t, a.RowIsValid(0))
}

func Test_bitmapSetAll(t *testing.T) {
	bm := &Bitmap{}
	bm.SetAllInvalid(10)
	for i := 0; i < 10; i++ {
		assert.False(t, bm.RowIsValid(uint64(i)))
	}
	bm.SetAllValid(10)
	for i := 0; i < 10; i++ {
		assert.True(t, bm.RowIsValid(uint64(i)))
	}
}

func Test_bitmapCountValid(t *testing.T) {
	bm := &Bitmap{}
	assert.Equal(t, 8, bm.CountValid(8))

	bm.Init(8)
	bm.SetInvalidUnsafe(0)
	bm.SetInvalidUnsafe(7)
	assert.Equal(t, 6, bm.CountValid(8))
}

func Test_bitmapSlice(t *testing.T) {
	src := &Bitmap{}
	src.Init(16)
	src.SetInvalidUnsafe(4)
	src.SetInvalidUnsafe(9)

	dst := &Bitmap{}
	dst.Slice(src, 4, 8)
	assert.False(t, dst.RowIsValid(0))
	assert.True(t, dst.RowIsValid(1))
	assert.False(t, dst.RowIsValid(5))
}
