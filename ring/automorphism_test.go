package ring

import (
	"testing"

	"github.com/hehub-go/hehub/utils/sampling"
	"github.com/stretchr/testify/require"
)

func randomEvalPoly(t *testing.T, N int, moduli []uint64, seed byte) *RNSPoly {
	var key [sampling.KeySize]byte
	key[0] = seed
	p, err := NewUniformSampler(sampling.NewSource(key)).ReadNew(N, moduli)
	require.NoError(t, err)
	require.NoError(t, p.NTTLazy())
	return p
}

func TestAutomorphism(t *testing.T) {

	moduli := []uint64{65537, 36028797017456641}

	t.Run("InvoluteOrderTwo", func(t *testing.T) {

		for _, N := range []int{8, 16, 64} {

			p := randomEvalPoly(t, N, moduli, 1)

			conj, err := Involute(p)
			require.NoError(t, err)
			require.True(t, conj.IsNTT)

			back, err := Involute(conj)
			require.NoError(t, err)
			require.True(t, p.Equal(back))
		}
	})

	t.Run("CycleGroupLaw", func(t *testing.T) {

		N := 16

		p := randomEvalPoly(t, N, moduli, 2)

		for a := 0; a <= N/2; a++ {
			for b := 0; b <= N/2; b++ {

				pa, err := Cycle(p, a)
				require.NoError(t, err)
				pab, err := Cycle(pa, b)
				require.NoError(t, err)

				want, err := Cycle(p, a+b)
				require.NoError(t, err)

				require.True(t, pab.Equal(want), "a=%d b=%d", a, b)
			}
		}

		// the rotation subgroup has order N/2
		identity, err := Cycle(p, N/2)
		require.NoError(t, err)
		require.True(t, p.Equal(identity))

		// negative steps wrap around
		back, err := Cycle(p, -1)
		require.NoError(t, err)
		want, err := Cycle(p, N/2-1)
		require.NoError(t, err)
		require.True(t, back.Equal(want))
	})

	t.Run("Scenario", func(t *testing.T) {

		// poly_len=8, one modulus, coefficients from a seeded LCG
		// bounded below q/10
		N := 8
		q := uint64(65537)

		p, err := NewRNSPoly(N, []uint64{q})
		require.NoError(t, err)

		seed := uint64(42)
		for i := range p.At(0) {
			seed = seed*4985348 + 93479384
			p.At(0)[i] = seed % (q / 10)
		}

		require.NoError(t, p.NTTLazy())

		p1, err := Cycle(p, 1)
		require.NoError(t, err)
		p2, err := Cycle(p, 2)
		require.NoError(t, err)

		p11, err := Cycle(p1, 1)
		require.NoError(t, err)
		require.True(t, p11.Equal(p2))

		// poly_len/2 - 1 = 3 more steps return the original
		p14, err := Cycle(p1, 3)
		require.NoError(t, err)
		require.True(t, p14.Equal(p))
	})

	t.Run("NormPreservation", func(t *testing.T) {

		N := 16

		var key [sampling.KeySize]byte
		key[0] = 3
		p, err := NewUniformSampler(sampling.NewSource(key)).ReadNew(N, moduli)
		require.NoError(t, err)

		norm, err := p.InfNorm()
		require.NoError(t, err)

		require.NoError(t, p.NTT())

		conj, err := Involute(p)
		require.NoError(t, err)
		require.NoError(t, conj.INTT())
		conjNorm, err := conj.InfNorm()
		require.NoError(t, err)
		require.Equal(t, 0, norm.Cmp(conjNorm))

		for _, k := range []int{1, 3, 7} {
			rot, err := Cycle(p, k)
			require.NoError(t, err)
			require.NoError(t, rot.INTT())
			rotNorm, err := rot.InfNorm()
			require.NoError(t, err)
			require.Equal(t, 0, norm.Cmp(rotNorm), "k=%d", k)
		}
	})

	t.Run("CoefficientFormRejected", func(t *testing.T) {

		p, err := NewRNSPoly(16, []uint64{65537})
		require.NoError(t, err)

		_, err = Involute(p)
		require.Error(t, err)

		_, err = Cycle(p, 1)
		require.Error(t, err)
	})

	t.Run("IndexTable", func(t *testing.T) {

		_, err := AutomorphismNTTIndex(16, 4)
		require.Error(t, err)

		_, err = AutomorphismNTTIndex(12, 5)
		require.Error(t, err)

		i0, err := AutomorphismNTTIndex(16, 5)
		require.NoError(t, err)
		i1, err := AutomorphismNTTIndex(16, 5)
		require.NoError(t, err)
		require.Same(t, &i0[0], &i1[0])

		// the identity automorphism has the identity table
		id, err := AutomorphismNTTIndex(16, 1)
		require.NoError(t, err)
		for i, v := range id {
			require.Equal(t, uint64(i), v)
		}

		// a non-trivial table is a permutation of [0, N), including
		// the positions of the upper half
		seen := make(map[uint64]bool, 16)
		for _, v := range i0 {
			require.Less(t, v, uint64(16))
			require.False(t, seen[v])
			seen[v] = true
		}
	})

	t.Run("InverseElement", func(t *testing.T) {

		N := 16

		p := randomEvalPoly(t, N, moduli, 4)

		galEl := GaloisElementForCycle(3, N)
		rot, err := Automorphism(p, galEl)
		require.NoError(t, err)

		back, err := Automorphism(rot, GaloisElementInverse(galEl, N))
		require.NoError(t, err)
		require.True(t, p.Equal(back))

		// the involution is its own inverse
		galEl = GaloisElementForInvolution(N)
		require.Equal(t, galEl, GaloisElementInverse(galEl, N))
	})
}
