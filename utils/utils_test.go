package utils

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitReverse(t *testing.T) {

	t.Run("Agreement", func(t *testing.T) {
		for _, x := range []uint64{12345, 0, 1, 0xffff} {
			for bitLen := 16; bitLen <= 16; bitLen++ {
				require.Equal(t, BitReverse64(x, bitLen), BitReverse16(x, bitLen))
			}
		}

		r := rand.New(rand.NewSource(0))
		for i := 0; i < 1000; i++ {
			bitLen := r.Intn(17)
			x := r.Uint64() & ((1 << bitLen) - 1)
			require.Equal(t, BitReverse64(x, bitLen), BitReverse16(x, bitLen))
		}
	})

	t.Run("KnownValues", func(t *testing.T) {
		// 12345 = 0b11000000111001
		require.Equal(t, uint64(0b10011100000011), BitReverse64(12345, 14))
		require.Equal(t, BitReverse16(12345, 14), BitReverse64(12345, 14))
		require.Equal(t, BitReverse16(12345, 15), BitReverse64(12345, 15))
		require.Equal(t, BitReverse16(12345, 16), BitReverse64(12345, 16))
		require.Equal(t, uint64(1)<<15, BitReverse64(1, 16))
	})

	t.Run("Involution", func(t *testing.T) {
		r := rand.New(rand.NewSource(1))
		for i := 0; i < 1000; i++ {
			bitLen := r.Intn(65)
			x := r.Uint64()
			if bitLen < 64 {
				x &= (1 << bitLen) - 1
			}
			require.Equal(t, x, BitReverse64(BitReverse64(x, bitLen), bitLen))
		}
	})

	t.Run("Domain", func(t *testing.T) {
		require.Panics(t, func() { BitReverse64(0, -1) })
		require.Panics(t, func() { BitReverse64(0, 100) })
		require.Panics(t, func() { BitReverse64(12345, 13) }) // 12345 needs 14 bits
		require.Panics(t, func() { BitReverse16(0, -1) })
		require.Panics(t, func() { BitReverse16(0, 17) })
		require.Panics(t, func() { BitReverse16(12345, 13) })
		require.NotPanics(t, func() { BitReverse64(0, 0) })
		require.NotPanics(t, func() { BitReverse16(0, 0) })
	})
}

func TestBitReverseInPlaceSlice(t *testing.T) {
	s := []int{0, 1, 2, 3, 4, 5, 6, 7}
	BitReverseInPlaceSlice(s, 8)
	require.Equal(t, []int{0, 4, 2, 6, 1, 5, 3, 7}, s)
	BitReverseInPlaceSlice(s, 8)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, s)
}

func TestRotateSlice(t *testing.T) {
	s := []int{0, 1, 2, 3}
	require.Equal(t, []int{1, 2, 3, 0}, RotateSlice(s, 1))
	require.Equal(t, []int{3, 0, 1, 2}, RotateSlice(s, -1))
	require.Equal(t, s, RotateSlice(s, 4))
}

func TestAlias1D(t *testing.T) {
	a := make([]uint64, 8)
	require.True(t, Alias1D(a, a))
	require.True(t, Alias1D(a[:4], a[4:]))
	require.False(t, Alias1D(a, make([]uint64, 8)))
}
