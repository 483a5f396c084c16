// Package utils implements various helper functions.
package utils

import (
	"fmt"
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// BitReverse64 returns the bit-reversal of x with respect to a word of
// bitLen bits. Panics if bitLen is outside of [0, 64] or if x has a set
// bit at or above position bitLen (i.e. x does not fit in bitLen bits).
func BitReverse64(x uint64, bitLen int) uint64 {

	if bitLen < 0 || bitLen > 64 {
		panic(fmt.Errorf("invalid bitLen=%d: must be in [0, 64]", bitLen))
	}

	if bitLen < 64 && x >= 1<<bitLen {
		panic(fmt.Errorf("invalid x=%d: does not fit in %d bits", x, bitLen))
	}

	if bitLen == 0 {
		return 0
	}

	return bits.Reverse64(x) >> (64 - bitLen)
}

// bitRev8 is the bit-reversal table for a single byte.
var bitRev8 [256]uint8

func init() {
	for i := range bitRev8 {
		var r uint8
		for j := 0; j < 8; j++ {
			r |= uint8(i>>j&1) << (7 - j)
		}
		bitRev8[i] = r
	}
}

// BitReverse16 returns the bit-reversal of x with respect to a word of
// bitLen bits, using a byte lookup table. The word size is restricted
// to at most 16 bits. Same domain checks as [BitReverse64]: panics if
// bitLen is outside of [0, 16] or if x does not fit in bitLen bits.
//
// BitReverse16 and [BitReverse64] agree on their shared domain.
func BitReverse16(x uint64, bitLen int) uint64 {

	if bitLen < 0 || bitLen > 16 {
		panic(fmt.Errorf("invalid bitLen=%d: must be in [0, 16]", bitLen))
	}

	if x >= 1<<bitLen {
		panic(fmt.Errorf("invalid x=%d: does not fit in %d bits", x, bitLen))
	}

	if bitLen == 0 {
		return 0
	}

	rev16 := uint64(bitRev8[x&0xff])<<8 | uint64(bitRev8[x>>8])

	return rev16 >> (16 - bitLen)
}

// Alias1D returns true if x and y share the same base array.
/* #nosec G103 -- behavior and consequences well understood */
func Alias1D[V any](x, y []V) bool {
	return cap(x) > 0 && cap(y) > 0 && unsafe.Pointer(&x[0:cap(x)][cap(x)-1]) == unsafe.Pointer(&y[0:cap(y)][cap(y)-1])
}

// Min returns the minimum of x and y.
func Min[T constraints.Ordered](x, y T) T {
	if x < y {
		return x
	}
	return y
}

// Max returns the maximum of x and y.
func Max[T constraints.Ordered](x, y T) T {
	if x > y {
		return x
	}
	return y
}
