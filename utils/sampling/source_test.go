package sampling

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSource(t *testing.T) {

	var key [KeySize]byte
	key[0] = 1

	t.Run("Deterministic", func(t *testing.T) {
		a := NewSource(key)
		b := NewSource(key)
		for i := 0; i < 64; i++ {
			require.Equal(t, a.Uint64(), b.Uint64())
		}
	})

	t.Run("Reset", func(t *testing.T) {
		s := NewSource(key)
		first := s.Uint64()
		s.Uint64()
		s.Reset()
		require.Equal(t, first, s.Uint64())
	})

	t.Run("Derived", func(t *testing.T) {
		a := NewSource(key)
		b := NewSource(key)
		require.Equal(t, a.NewSource().Uint64(), b.NewSource().Uint64())
	})

	t.Run("Float64Range", func(t *testing.T) {
		s := NewSource(NewSeed())
		for i := 0; i < 1000; i++ {
			f := s.Float64()
			require.GreaterOrEqual(t, f, 0.0)
			require.Less(t, f, 1.0)
		}
	})
}
