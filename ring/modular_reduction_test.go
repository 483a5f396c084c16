package ring

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

var testModuli = []uint64{
	65537,			// 17 bits, 2^16 | q-1
	576460752308273153,	// 60 bits, NTT friendly for N up to 2^17
	36028797017456641,	// 55 bits
}

func refMul(x, y, q uint64) uint64 {
	bq := new(big.Int).SetUint64(q)
	r := new(big.Int).Mul(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
	return r.Mod(r, bq).Uint64()
}

func TestModularReduction(t *testing.T) {

	r := rand.New(rand.NewSource(0))

	for _, q := range testModuli {

		brc := GetBRedConstant(q)
		mrc := GetMRedConstant(q)

		t.Run("MRedConstant", func(t *testing.T) {
			// q * q^-1 = 1 mod 2^64
			require.Equal(t, uint64(1), q*mrc)
		})

		t.Run("BRed", func(t *testing.T) {
			for i := 0; i < 1024; i++ {
				x := r.Uint64() % q
				y := r.Uint64() % q
				require.Equal(t, refMul(x, y, q), BRed(x, y, q, brc))
				require.Equal(t, refMul(x, y, q), BRedAdd(BRedLazy(x, y, q, brc), q, brc))
			}
		})

		t.Run("BRedAdd", func(t *testing.T) {
			for i := 0; i < 1024; i++ {
				x := r.Uint64()
				require.Equal(t, x%q, BRedAdd(x, q, brc))
				require.Less(t, BRedAddLazy(x, q, brc), 2*q)
				require.Equal(t, x%q, CRed(BRedAddLazy(x, q, brc), q))
			}
		})

		t.Run("MRed", func(t *testing.T) {
			for i := 0; i < 1024; i++ {
				x := r.Uint64() % q
				y := r.Uint64() % q
				yMont := MForm(y, q, brc)
				require.Equal(t, refMul(x, y, q), MRed(x, yMont, q, mrc))
				require.Less(t, MRedLazy(x, yMont, q, mrc), 2*q)
				require.Equal(t, refMul(x, y, q), CRed(MRedLazy(x, yMont, q, mrc), q))
			}
		})

		t.Run("MForm", func(t *testing.T) {
			for i := 0; i < 1024; i++ {
				x := r.Uint64() % q
				require.Equal(t, x, IMForm(MForm(x, q, brc), q, mrc))
				require.Equal(t, MForm(x, q, brc), CRed(MFormLazy(x, q, brc), q))
			}
		})
	}
}

func TestScalarKernel(t *testing.T) {

	r := rand.New(rand.NewSource(1))

	for _, q := range testModuli {

		bq := new(big.Int).SetUint64(q)

		t.Run("AddSubMul", func(t *testing.T) {
			for i := 0; i < 256; i++ {
				// operands deliberately unreduced
				x, y := r.Uint64(), r.Uint64()

				ref := new(big.Int).Add(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
				require.Equal(t, ref.Mod(ref, bq).Uint64(), AddMod(x, y, q))

				ref = new(big.Int).Sub(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
				require.Equal(t, ref.Mod(ref, bq).Uint64(), SubMod(x, y, q))

				require.Equal(t, refMul(x%q, y%q, q), MulMod(x, y, q))
			}
		})

		t.Run("PowMod", func(t *testing.T) {
			for i := 0; i < 64; i++ {
				x := r.Uint64() % q
				e := uint64(r.Intn(1 << 16))
				ref := new(big.Int).Exp(new(big.Int).SetUint64(x), new(big.Int).SetUint64(e), bq)
				require.Equal(t, ref.Uint64(), PowMod(x, e, q))
			}
		})
	}

	t.Run("InvalidModulus", func(t *testing.T) {
		require.Panics(t, func() { AddMod(1, 2, 0) })
		require.Panics(t, func() { SubMod(1, 2, 0) })
		require.Panics(t, func() { MulMod(1, 2, 0) })
		require.Panics(t, func() { PowMod(1, 2, 0) })
		require.Panics(t, func() { AddMod(1, 2, 1<<63) })
	})

	t.Run("ModExpMontgomery", func(t *testing.T) {
		q := testModuli[0]
		brc := GetBRedConstant(q)
		mrc := GetMRedConstant(q)
		for i := 0; i < 64; i++ {
			x := r.Uint64() % q
			e := uint64(r.Intn(1 << 16))
			xMont := MForm(x, q, brc)
			got := IMForm(ModExpMontgomery(xMont, e, q, mrc, brc), q, mrc)
			require.Equal(t, ModExp(x, e, q), got)
		}
	})

	t.Run("ModExpPow2", func(t *testing.T) {
		p := uint64(1 << 16)
		bp := new(big.Int).SetUint64(p)
		for i := 0; i < 64; i++ {
			x := r.Uint64()
			e := uint64(r.Intn(1 << 10))
			ref := new(big.Int).Exp(new(big.Int).SetUint64(x), new(big.Int).SetUint64(e), bp)
			require.Equal(t, ref.Uint64(), ModExpPow2(x, e, p))
		}
	})
}
