package utils

import (
	"fmt"
	"math/bits"
)

// BitReverseInPlaceSlice applies an in-place bit-reversal permutation
// on the first N elements of the slice. N must be a power of two.
func BitReverseInPlaceSlice[V any](slice []V, N int) {

	if N&(N-1) != 0 {
		panic(fmt.Errorf("invalid N=%d: must be a power of two", N))
	}

	logN := int(bits.Len64(uint64(N) - 1))

	for i := 0; i < N; i++ {
		if j := int(BitReverse64(uint64(i), logN)); i < j {
			slice[i], slice[j] = slice[j], slice[i]
		}
	}
}

// RotateSlice returns a new slice corresponding to s rotated by k
// positions to the left.
func RotateSlice[V any](s []V, k int) []V {
	out := make([]V, len(s))
	if len(s) == 0 {
		return out
	}
	k = ((k % len(s)) + len(s)) % len(s)
	copy(out, s[k:])
	copy(out[len(s)-k:], s[:k])
	return out
}
