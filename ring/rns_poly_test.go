package ring

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/hehub-go/hehub/utils/sampling"
	"github.com/stretchr/testify/require"
)

func TestPolyDimensions(t *testing.T) {

	valid := PolyDimensions{PolyLen: 16, ComponentCount: 2, Moduli: []uint64{65537, 36028797017456641}}

	t.Run("Valid", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, dims := range []PolyDimensions{
			{PolyLen: 0, ComponentCount: 1, Moduli: []uint64{65537}},
			{PolyLen: 12, ComponentCount: 1, Moduli: []uint64{65537}},
			{PolyLen: 16, ComponentCount: 2, Moduli: []uint64{65537}},
			{PolyLen: 16, ComponentCount: 0, Moduli: nil},
			{PolyLen: 16, ComponentCount: 1, Moduli: []uint64{65536}},	// even
			{PolyLen: 16, ComponentCount: 1, Moduli: []uint64{65537 * 3}},	// composite
			{PolyLen: 16, ComponentCount: 1, Moduli: []uint64{1 << 62}},	// too large
		} {
			require.Error(t, dims.Validate(), "dims: %+v", dims)
		}
	})

	t.Run("Equal", func(t *testing.T) {
		other := PolyDimensions{PolyLen: 16, ComponentCount: 2, Moduli: []uint64{65537, 36028797017456641}}
		require.True(t, valid.Equal(other))

		other.Moduli = []uint64{65537, 65537}
		require.False(t, valid.Equal(other))

		other = valid
		other.PolyLen = 32
		require.False(t, valid.Equal(other))

		other = valid
		other.ComponentCount = 1
		require.False(t, valid.Equal(other))
	})
}

func TestRNSPoly(t *testing.T) {

	moduli := []uint64{65537, 36028797017456641}

	var key [sampling.KeySize]byte
	sampler := NewUniformSampler(sampling.NewSource(key))

	t.Run("New", func(t *testing.T) {

		p, err := NewRNSPoly(16, moduli)
		require.NoError(t, err)
		require.Equal(t, 16, p.N())
		require.Equal(t, 4, p.LogN())
		require.Equal(t, 2, p.ComponentCount())
		require.Equal(t, uint64(65537), p.ModulusAt(0))
		require.False(t, p.IsNTT)
		require.True(t, p.Dimensions().Equal(PolyDimensions{PolyLen: 16, ComponentCount: 2, Moduli: moduli}))

		for i := 0; i < p.ComponentCount(); i++ {
			for _, c := range p.At(i) {
				require.Equal(t, uint64(0), c)
			}
		}

		_, err = NewRNSPoly(15, moduli)
		require.Error(t, err)
	})

	t.Run("AddRemoveComponents", func(t *testing.T) {

		p, err := NewRNSPoly(16, []uint64{65537})
		require.NoError(t, err)

		require.NoError(t, p.AddComponents(36028797017456641, 576460752308273153))
		require.Equal(t, 3, p.ComponentCount())
		require.Equal(t, uint64(576460752308273153), p.ModulusAt(2))
		require.Equal(t, 16, p.At(2).N())

		require.Error(t, p.AddComponents(65536))

		require.NoError(t, p.RemoveComponents(2))
		require.Equal(t, 1, p.ComponentCount())

		require.Error(t, p.RemoveComponents(2))
		require.Error(t, p.RemoveComponents(-1))
		require.NoError(t, p.RemoveComponents(0))
		require.Equal(t, 1, p.ComponentCount())
	})

	t.Run("CloneCopyEqual", func(t *testing.T) {

		p, err := sampler.ReadNew(16, moduli)
		require.NoError(t, err)

		clone := p.Clone()
		require.True(t, p.Equal(clone))

		clone.At(0)[3]++
		require.False(t, p.Equal(clone))

		cpy, err := NewRNSPoly(16, moduli)
		require.NoError(t, err)
		require.NoError(t, cpy.Copy(p))
		require.True(t, p.Equal(cpy))

		other, err := NewRNSPoly(32, moduli)
		require.NoError(t, err)
		require.Error(t, other.Copy(p))
	})

	t.Run("Arithmetic", func(t *testing.T) {

		p1, err := sampler.ReadNew(16, moduli)
		require.NoError(t, err)
		p2, err := sampler.ReadNew(16, moduli)
		require.NoError(t, err)

		sum, err := NewRNSPoly(16, moduli)
		require.NoError(t, err)
		require.NoError(t, sum.Add(p1, p2))

		diff, err := NewRNSPoly(16, moduli)
		require.NoError(t, err)
		require.NoError(t, diff.Sub(sum, p2))
		require.True(t, diff.Equal(p1))

		neg, err := NewRNSPoly(16, moduli)
		require.NoError(t, err)
		require.NoError(t, neg.Neg(p1))
		require.NoError(t, neg.Add(neg, p1))
		zero, err := NewRNSPoly(16, moduli)
		require.NoError(t, err)
		require.True(t, neg.Equal(zero))

		// form mismatch
		p3 := p2.Clone()
		p3.IsNTT = true
		require.Error(t, sum.Add(p1, p3))

		// MulCoeffs requires evaluation form
		require.Error(t, sum.MulCoeffs(p1, p2))

		require.NoError(t, p1.NTT())
		require.NoError(t, p3.Copy(p2))
		require.NoError(t, p3.NTT())
		require.NoError(t, sum.MulCoeffs(p1, p3))
		require.True(t, sum.IsNTT)
	})

	t.Run("Montgomery", func(t *testing.T) {

		p1, err := sampler.ReadNew(16, moduli)
		require.NoError(t, err)
		p2, err := sampler.ReadNew(16, moduli)
		require.NoError(t, err)
		require.NoError(t, p1.NTT())
		require.NoError(t, p2.NTT())

		p2Mont, err := NewRNSPoly(16, moduli)
		require.NoError(t, err)
		require.NoError(t, p2Mont.MForm(p2))

		back, err := NewRNSPoly(16, moduli)
		require.NoError(t, err)
		require.NoError(t, back.IMForm(p2Mont))
		require.True(t, back.Equal(p2))

		want, err := NewRNSPoly(16, moduli)
		require.NoError(t, err)
		require.NoError(t, want.MulCoeffs(p1, p2))

		have, err := NewRNSPoly(16, moduli)
		require.NoError(t, err)
		require.NoError(t, have.MulCoeffsMontgomery(p1, p2Mont))
		require.True(t, have.Equal(want))

		// coefficient form is rejected
		c1, err := sampler.ReadNew(16, moduli)
		require.NoError(t, err)
		c2, err := sampler.ReadNew(16, moduli)
		require.NoError(t, err)
		require.Error(t, have.MulCoeffsMontgomery(c1, c2))
	})

	t.Run("TransformFormChecks", func(t *testing.T) {

		p, err := sampler.ReadNew(16, moduli)
		require.NoError(t, err)

		require.Error(t, p.INTT())

		require.NoError(t, p.NTT())
		require.Error(t, p.NTT())
		require.Error(t, p.NTTLazy())

		require.NoError(t, p.INTT())
		require.False(t, p.IsNTT)
	})

	t.Run("RNSTransformRoundTrip", func(t *testing.T) {

		p, err := sampler.ReadNew(16, moduli)
		require.NoError(t, err)

		orig := p.Clone()

		require.NoError(t, p.NTTLazy())
		require.NoError(t, p.INTT())
		require.True(t, p.Equal(orig))
	})

	t.Run("InfNorm", func(t *testing.T) {

		p, err := NewRNSPoly(16, []uint64{65537})
		require.NoError(t, err)

		p.At(0)[0] = 5
		p.At(0)[1] = 65537 - 100 // -100 centered

		norm, err := p.InfNorm()
		require.NoError(t, err)
		require.Equal(t, 0, norm.Cmp(big.NewInt(100)))

		// evaluation form is rejected
		p.IsNTT = true
		_, err = p.InfNorm()
		require.Error(t, err)
		p.IsNTT = false

		// unreduced values are rejected
		p.At(0)[2] = 65537
		_, err = p.InfNorm()
		require.Error(t, err)
	})

	t.Run("InfNormCRT", func(t *testing.T) {

		// value 2^40 fits neither modulus alone but is exactly
		// representable in the CRT basis
		p, err := NewRNSPoly(16, []uint64{65537, 36028797017456641})
		require.NoError(t, err)

		v := new(big.Int).Lsh(big.NewInt(1), 40)
		p.At(0)[0] = new(big.Int).Mod(v, big.NewInt(65537)).Uint64()
		p.At(1)[0] = new(big.Int).Mod(v, big.NewInt(36028797017456641)).Uint64()

		norm, err := p.InfNorm()
		require.NoError(t, err)
		require.Equal(t, 0, norm.Cmp(v))
	})

	t.Run("Serialization", func(t *testing.T) {

		p, err := sampler.ReadNew(16, moduli)
		require.NoError(t, err)
		require.NoError(t, p.NTT())

		data, err := p.MarshalBinary()
		require.NoError(t, err)
		require.Equal(t, p.BinarySize(), len(data))

		q := new(RNSPoly)
		require.NoError(t, q.UnmarshalBinary(data))
		require.True(t, p.Equal(q))

		buf := new(bytes.Buffer)
		_, err = p.WriteTo(buf)
		require.NoError(t, err)

		q2 := new(RNSPoly)
		_, err = q2.ReadFrom(buf)
		require.NoError(t, err)
		require.True(t, p.Equal(q2))

		require.Error(t, q.UnmarshalBinary(data[:10]))
	})
}
