package util

import (
	"unsafe"
)

func ToSlice[T any](data []byte, pSize int) []T {
	slen := len(data) / pSize
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(data))), slen)
}

func BytesSliceToPointer(data []byte) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(data))
}

func PointerToSlice[T any](base unsafe.Pointer, len int) []T {
	return unsafe.Slice((*T)(base), len)
}

func PointerCopy(dst, src unsafe.Pointer, len int) {
	dstSlice := PointerToSlice[byte](dst, len)
	srcSlice := PointerToSlice[byte](src, len)
	copy(dstSlice, srcSlice)
}

func PointerValid(ptr unsafe.Pointer) bool {
	return uintptr(ptr) != 0
}
