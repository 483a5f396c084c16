package ring

import (
	"fmt"
)

// The helpers in this file operate on scalars that are not required to
// be pre-reduced, at the cost of computing the reduction constants on
// each call. Hot loops should use the vector operations instead, which
// amortize the constants over the whole polynomial.

func checkModulus(q uint64) {
	if q == 0 {
		panic("invalid modulus: q = 0")
	}
	if q >= 1<<63 {
		panic(fmt.Sprintf("invalid modulus: q=%d >= 2^63", q))
	}
}

// AddMod returns x+y mod q.
func AddMod(x, y, q uint64) uint64 {
	checkModulus(q)
	return CRed(x%q+y%q, q)
}

// SubMod returns x-y mod q.
func SubMod(x, y, q uint64) uint64 {
	checkModulus(q)
	return CRed(x%q+q-y%q, q)
}

// MulMod returns x*y mod q.
func MulMod(x, y, q uint64) uint64 {
	checkModulus(q)
	return BRed(x%q, y%q, q, GetBRedConstant(q))
}

// PowMod returns x^e mod q.
func PowMod(x, e, q uint64) uint64 {
	checkModulus(q)
	return ModExp(x%q, e, q)
}

// ModExp returns y = x^e mod q.
// x and q are required to be at most 64 bits to avoid an overflow.
func ModExp(x, e, q uint64) (y uint64) {

	brc := GetBRedConstant(q)

	y = 1

	if q&(q-1) != 0 {

		mrc := GetMRedConstant(q)

		y = MForm(y, q, brc)
		x = MForm(x, q, brc)

		for i := e; i > 0; i >>= 1 {
			if i&1 == 1 {
				y = MRed(y, x, q, mrc)
			}
			x = MRed(x, x, q, mrc)
		}

		return IMForm(y, q, mrc)
	}

	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			y = BRed(y, x, q, brc)
		}
		x = BRed(x, x, q, brc)
	}

	return
}

// ModExpPow2 returns x^e mod p, where p is a power of two.
func ModExpPow2(x, e, p uint64) (y uint64) {
	y = 1
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			y *= x
		}
		x *= x
	}
	return y & (p - 1)
}

// ModExpMontgomery returns x^e mod q, where x is in the Montgomery
// domain, with the result also in the Montgomery domain.
func ModExpMontgomery(x, e, q, mredconstant uint64, bredconstant [2]uint64) (y uint64) {
	y = MForm(1, q, bredconstant)
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			y = MRed(y, x, q, mredconstant)
		}
		x = MRed(x, x, q, mredconstant)
	}
	return
}
