// Package ckks implements the SIMD encoding of complex vectors into
// RNS polynomials through the canonical embedding of the 2N-th
// cyclotomic field, with fixed-point scaling.
//
// A vector of at most N/2 complex values is mapped to a real
// polynomial of Z_Q[X]/(X^N+1) whose evaluations at the primitive
// 2N-th roots of unity recover the values. Point-wise products of
// encoded vectors correspond to negacyclic polynomial products, slot
// rotations to Galois automorphisms ([ring.Cycle]) and the slot-wise
// conjugation to the involution ([ring.Involute]).
package ckks

import (
	"fmt"
	"math/big"

	"github.com/hehub-go/hehub/ring"
)

// Encoder embeds vectors of complex values into polynomials of a ring
// of fixed degree. An Encoder is safe for concurrent use: its tables
// are read-only after construction and each call works on its own
// buffers.
type Encoder struct {
	n int
	m int

	prec uint

	// rotGroup[i] = 5^i mod m, the exponent of the primitive root
	// evaluated by the i-th slot.
	rotGroup []int

	roots []complex128
}

// NewEncoder creates a new [Encoder] for ring degree N, which must be
// a power of two greater than or equal to [ring.MinimumRingDegree].
//
// The optional precision argument sets the number of bits used to
// generate the roots of unity; the default (53) computes them directly
// with float64 arithmetic, a higher precision computes them with
// big.Float arithmetic before rounding to complex128.
func NewEncoder(N int, precision ...uint) (*Encoder, error) {

	if N < ring.MinimumRingDegree || N&(N-1) != 0 {
		return nil, fmt.Errorf("invalid ring degree: must be a power of 2 greater than or equal to %d but is %d", ring.MinimumRingDegree, N)
	}

	m := N << 1

	rotGroup := make([]int, m>>2)
	fivePows := 1
	for i := range rotGroup {
		rotGroup[i] = fivePows
		fivePows *= int(ring.GaloisGen)
		fivePows &= m - 1
	}

	prec := uint(53)
	if len(precision) != 0 && precision[0] != 0 {
		prec = precision[0]
	}

	var roots []complex128
	if prec <= 53 {
		roots = GetRootsComplex128(m)
	} else {
		bigRoots := GetRootsBigComplex(m, prec)
		roots = make([]complex128, m+1)
		for i := range roots {
			roots[i] = bigRoots[i].Complex128()
		}
	}

	return &Encoder{
		n:        N,
		m:        m,
		prec:     prec,
		rotGroup: rotGroup,
		roots:    roots,
	}, nil
}

// N returns the ring degree of the encoder.
func (ecd *Encoder) N() int {
	return ecd.n
}

// Slots returns the number of slots of the encoder, i.e. N/2.
func (ecd *Encoder) Slots() int {
	return ecd.n >> 1
}

// Prec returns the precision in bits used to generate the roots.
func (ecd *Encoder) Prec() uint {
	return ecd.prec
}

// SimdEncode encodes a vector of at most N/2 complex values on a new
// plaintext in coefficient form. Values are multiplied by the scaling
// factor and rounded to the nearest integer; vectors shorter than N/2
// are zero-padded.
func (ecd *Encoder) SimdEncode(values []complex128, scalingFactor float64, dims ring.PolyDimensions) (*Plaintext, error) {

	if dims.PolyLen != ecd.n {
		return nil, fmt.Errorf("cannot SimdEncode: PolyLen=%d but the encoder degree is %d", dims.PolyLen, ecd.n)
	}

	slots := ecd.Slots()

	if len(values) > slots {
		return nil, fmt.Errorf("cannot SimdEncode: maximum number of values is %d but len(values) is %d", slots, len(values))
	}

	if scalingFactor <= 0 {
		return nil, fmt.Errorf("cannot SimdEncode: scaling factor must be strictly positive but is %f", scalingFactor)
	}

	pt, err := NewPlaintext(dims, scalingFactor)
	if err != nil {
		return nil, fmt.Errorf("cannot SimdEncode: %w", err)
	}

	buff := make([]complex128, slots)
	copy(buff, values)

	SpecialIFFTDouble(buff, slots, ecd.m, ecd.rotGroup, ecd.roots)

	Complex128ToFixedPointCRT(buff, scalingFactor, pt.RNSPoly)

	return pt, nil
}

// SimdDecode decodes a plaintext in coefficient form on a new vector
// of N/2 complex values. The plaintext coefficients are
// CRT-reconstructed, centered and divided by the scaling factor before
// the forward transform.
func (ecd *Encoder) SimdDecode(pt *Plaintext) ([]complex128, error) {

	if pt == nil || pt.RNSPoly == nil {
		return nil, fmt.Errorf("cannot SimdDecode: plaintext is nil")
	}

	if pt.IsNTT {
		return nil, fmt.Errorf("cannot SimdDecode: plaintext is in evaluation form")
	}

	if pt.ScalingFactor <= 0 {
		return nil, fmt.Errorf("cannot SimdDecode: scaling factor must be strictly positive but is %f", pt.ScalingFactor)
	}

	if pt.N() != ecd.n {
		return nil, fmt.Errorf("cannot SimdDecode: plaintext degree is %d but the encoder degree is %d", pt.N(), ecd.n)
	}

	slots := ecd.Slots()
	values := make([]complex128, slots)

	var err error
	if pt.ComponentCount() == 1 {
		err = polyToComplexNoCRT(pt, values)
	} else {
		err = polyToComplexCRT(pt, values)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot SimdDecode: %w", err)
	}

	SpecialFFTDouble(values, slots, ecd.m, ecd.rotGroup, ecd.roots)

	return values, nil
}

// polyToComplexNoCRT decodes a single-component plaintext on a complex
// vector, skipping the big.Int reconstruction.
func polyToComplexNoCRT(pt *Plaintext, values []complex128) error {

	slots := len(values)
	coeffs := pt.At(0)
	Q := pt.ModulusAt(0)
	var c uint64

	for _, v := range coeffs {
		if v >= Q {
			return fmt.Errorf("coefficient %d >= modulus %d (unreduced value)", v, Q)
		}
	}

	for i := 0; i < slots; i++ {
		c = coeffs[i]
		if c >= Q>>1 {
			values[i] = complex(-float64(Q-c), 0)
		} else {
			values[i] = complex(float64(c), 0)
		}
	}

	for i := 0; i < slots; i++ {
		c = coeffs[i+slots]
		if c >= Q>>1 {
			values[i] += complex(0, -float64(Q-c))
		} else {
			values[i] += complex(0, float64(c))
		}
	}

	for i := range values {
		values[i] /= complex(pt.ScalingFactor, 0)
	}

	return nil
}

// polyToComplexCRT decodes a multiple-component plaintext on a complex
// vector through the centered big.Int reconstruction.
func polyToComplexCRT(pt *Plaintext, values []complex128) error {

	slots := len(values)

	coeffs := make([]big.Int, pt.N())
	if err := pt.ToBigIntCentered(coeffs); err != nil {
		return err
	}

	for i := 0; i < slots; i++ {
		values[i] = complex(scaleDown(&coeffs[i], pt.ScalingFactor), scaleDown(&coeffs[i+slots], pt.ScalingFactor))
	}

	return nil
}

func scaleDown(c *big.Int, scale float64) float64 {
	f, _ := new(big.Float).SetInt(c).Float64()
	return f / scale
}
