package sizeof

import "unsafe"

// Header is the size of a slice header.
const Header = 3 * uint64(unsafe.Sizeof(uintptr(0)))

func Elem[T any]() uint64 { return uint64(unsafe.Sizeof(*new(T))) }

// Block is the size of the backing array of v, which counts its capacity
// rather than its length.
func Block[T any](v []T) uint64 { return Elem[T]() * uint64(cap(v)) }

func Slice[T any](v []T) uint64 { return Header + Block(v) }
