package ckks

import (
	"math"
	"math/big"

	"github.com/hehub-go/hehub/ring"
	"github.com/hehub-go/hehub/utils/bignum"
)

// GetRootsBigComplex returns the roots e^{2*pi*i*j/NthRoot} for
// 0 <= j <= NthRoot with prec bits of precision.
func GetRootsBigComplex(NthRoot int, prec uint) (roots []*bignum.Complex) {

	roots = make([]*bignum.Complex, NthRoot+1)

	quarm := NthRoot >> 2

	Pi := bignum.Pi(prec)

	e2ipi := bignum.NewFloat(2, prec)
	e2ipi.Mul(e2ipi, Pi)
	e2ipi.Quo(e2ipi, bignum.NewFloat(float64(NthRoot), prec))

	angle := new(big.Float).SetPrec(prec)

	for i := range roots {
		roots[i] = bignum.NewComplex(prec)
	}

	roots[0].Real().SetFloat64(1)

	for i := 1; i < quarm; i++ {
		angle.Mul(e2ipi, bignum.NewFloat(float64(i), prec))
		roots[i].Real().Set(bignum.Cos(angle))
	}

	for i := 1; i < quarm; i++ {
		roots[quarm-i].Imag().Set(roots[i].Real())
	}

	roots[quarm].Imag().SetFloat64(1)

	for i := 1; i < quarm+1; i++ {
		roots[i+1*quarm].Real().Neg(roots[quarm-i].Real())
		roots[i+1*quarm].Imag().Set(roots[quarm-i].Imag())
		roots[i+2*quarm].Neg(roots[i])
		roots[i+3*quarm].Conj(roots[quarm-i])
	}

	roots[NthRoot].Set(roots[0])

	return
}

// GetRootsComplex128 returns the roots e^{2*pi*i*j/NthRoot} for
// 0 <= j <= NthRoot.
func GetRootsComplex128(NthRoot int) (roots []complex128) {
	roots = make([]complex128, NthRoot+1)

	quarm := NthRoot >> 2

	angle := 2 * 3.141592653589793 / float64(NthRoot)

	for i := 0; i < quarm; i++ {
		roots[i] = complex(math.Cos(angle*float64(i)), 0)
	}

	for i := 0; i < quarm; i++ {
		roots[quarm-i] += complex(0, real(roots[i]))
	}

	for i := 1; i < quarm+1; i++ {
		roots[i+1*quarm] = complex(-real(roots[quarm-i]), imag(roots[quarm-i]))
		roots[i+2*quarm] = -roots[i]
		roots[i+3*quarm] = complex(real(roots[quarm-i]), -imag(roots[quarm-i]))
	}

	roots[NthRoot] = roots[0]

	return
}

// Complex128ToFixedPointCRT quantizes a vector of complex128 on the RNS
// components of p. The real parts are put in the left len(values)
// coefficients, the imaginary parts in the next len(values) and the
// remaining coefficients are zeroed.
func Complex128ToFixedPointCRT(values []complex128, scale float64, p *ring.RNSPoly) {

	brc := make([][2]uint64, len(p.Moduli))
	for j, qi := range p.Moduli {
		brc[j] = ring.GetBRedConstant(qi)
	}

	for i, v := range values {
		SingleFloat64ToFixedPointCRT(i, real(v), scale, p, brc)
	}

	slots := len(values)
	for i, v := range values {
		SingleFloat64ToFixedPointCRT(i+slots, imag(v), scale, p, brc)
	}

	for i := 2 * slots; i < p.N(); i++ {
		SingleFloat64ToFixedPointCRT(i, 0, 0, p, brc)
	}
}

// SingleFloat64ToFixedPointCRT quantizes a single float64 on the i-th
// coefficient of each RNS component of p.
func SingleFloat64ToFixedPointCRT(i int, value, scale float64, p *ring.RNSPoly, brc [][2]uint64) {

	if value == 0 {
		for j := range p.Components {
			p.Components[j][i] = 0
		}

		return
	}

	var isNegative bool
	var xFlo *big.Float
	var xInt *big.Int
	tmp := new(big.Int)
	var c uint64

	isNegative = false

	if value < 0 {
		isNegative = true
		scale *= -1
	}

	value *= scale

	moduli := p.Moduli

	if value >= 1.8446744073709552e+19 {
		xFlo = big.NewFloat(value)
		xInt = new(big.Int)
		bignum.Round(xFlo).Int(xInt)
		for j := range moduli {
			tmp.Mod(xInt, new(big.Int).SetUint64(moduli[j]))
			if isNegative {
				p.Components[j][i] = ring.CRed(moduli[j]-tmp.Uint64(), moduli[j])
			} else {
				p.Components[j][i] = tmp.Uint64()
			}
		}

	} else {

		c = uint64(value + 0.5)
		if isNegative {
			for j, qi := range moduli {
				// the residue can round to zero, in which case qi - c
				// must wrap back to the canonical representative
				if c > qi {
					p.Components[j][i] = ring.CRed(qi-ring.BRedAdd(c, qi, brc[j]), qi)
				} else {
					p.Components[j][i] = ring.CRed(qi-c, qi)
				}
			}
		} else {
			for j, qi := range moduli {
				if c >= qi {
					p.Components[j][i] = ring.BRedAdd(c, qi, brc[j])
				} else {
					p.Components[j][i] = c
				}
			}
		}
	}
}
