package utils

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

const BitsPerByte = 8

// Returns the size in bytes of values of a type
func Sizeof[T any]() int {
	var val T
	return int(unsafe.Sizeof(val))
}

// Returns the size in bits of values of a type
func SizeofBits[T any]() int {
	return Sizeof[T]() * BitsPerByte
}

// Returns an all ones bitmask of n bits of the given unsigned integer type
func AllOnes[T constraints.Unsigned](bits int) T {
	return (T(1) << bits) - T(1)
}

// Implements a read/write view over an unsigned integer, allowing manipulating individual bits easily
type BitView[T constraints.Unsigned] struct {
	Bits *T
}

// Returns the viewed unsigned int value
func (v BitView[T]) Value() T {
	return *v.Bits
}

// Returns the size in bits of the viewed value
func (v BitView[T]) SizeofBits() int {
	return SizeofBits[T]()
}

// Extracts a range of bits given a first bit and a width
func (v BitView[T]) Read(bit int, width int) T {
	mask := AllOnes[T](width)
	return (v.Value() >> bit) & mask
}

// Extracts the inclusive bit range [hi, lo]
func (v BitView[T]) ReadRange(hi int, lo int) T {
	return v.Read(lo, hi-lo+1)
}

// Extracts a single bit
func (v BitView[T]) Bit(bit int) T {
	return v.Read(bit, 1)
}

// Copies a value into a range of bits, given the start and width of the range.
// All most significant bits of the value not fitting into the destination range are ignored.
func (v BitView[T]) Write(value T, bit int, width int) {
	mask := AllOnes[T](width)
	clearedValue := value & mask
	*v.Bits = (*v.Bits &^ (mask << bit)) | (clearedValue << bit)
}

// Copies a value into the inclusive bit range [hi, lo]
func (v BitView[T]) WriteRange(value T, hi int, lo int) {
	v.Write(value, lo, hi-lo+1)
}

// Creates a bit view out of an unsigned int
func CreateBitView[T constraints.Unsigned](value *T) BitView[T] {
	return BitView[T]{
		Bits: value,
	}
}

// Interprets the low n bits of value as a two's complement integer and widens
// it to a signed 32 bit value. The widening is a single shift pair on the
// signed representation, so the sign bit propagates through every upper bit
// at once instead of being patched in with conditional masks.
func SignExtend32(value uint32, bits int) int32 {
	shift := SizeofBits[uint32]() - bits
	return int32(value<<shift) >> shift
}
