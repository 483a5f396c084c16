package ring

import (
	"fmt"
	"math/bits"
	"sync"
	"unsafe"

	"github.com/hehub-go/hehub/utils"
)

// GaloisGen is the generator of the sub-group of slot-rotation
// automorphisms X -> X^{5^k} within the Galois group of
// Z_q[X]/(X^N+1). Its order modulo 2N is N/2, which is also the period
// of the slot rotations.
const GaloisGen uint64 = 5

// GaloisElementForCycle returns the Galois element corresponding to a
// cyclic rotation of the encoded slots by step positions to the right:
// 5^{-step} mod 2N.
func GaloisElementForCycle(step, N int) uint64 {
	NthRoot := uint64(N) << 1
	return ModExpPow2(GaloisGen, uint64(-step)&(NthRoot-1), NthRoot)
}

// GaloisElementForInvolution returns the Galois element of the
// automorphism X -> X^{-1}: 2N-1.
func GaloisElementForInvolution(N int) uint64 {
	return (uint64(N) << 1) - 1
}

// GaloisElementInverse returns the Galois element of the inverse of
// the automorphism with Galois element galEl.
func GaloisElementInverse(galEl uint64, N int) uint64 {
	NthRoot := uint64(N) << 1
	return ModExpPow2(galEl, NthRoot-1, NthRoot)
}

type autoKey struct {
	n     int
	galEl uint64
}

type autoCacheEntry struct {
	once  sync.Once
	index []uint64
	err   error
}

var (
	autoCacheMu sync.Mutex
	autoCache   = map[autoKey]*autoCacheEntry{}
)

// AutomorphismNTTIndex returns the permutation of NTT-domain positions
// implementing the automorphism X -> X^galEl on a degree-N polynomial
// in evaluation form. The table is computed once per (N, galEl) pair
// and cached process-wide.
//
// The NTT outputs are stored in bit-reversed order, with position i
// holding the evaluation at psi^(2*bitrev(i)+1); the automorphism maps
// the evaluation at odd power u to the one at galEl*u mod 2N.
func AutomorphismNTTIndex(N int, galEl uint64) ([]uint64, error) {

	if N < MinimumRingDegree || N&(N-1) != 0 {
		return nil, fmt.Errorf("invalid N: must be a power of 2 greater than or equal to %d", MinimumRingDegree)
	}

	if galEl&1 == 0 {
		return nil, fmt.Errorf("invalid galEl: %d is even (not coprime to 2N)", galEl)
	}

	key := autoKey{n: N, galEl: galEl}

	autoCacheMu.Lock()
	entry, ok := autoCache[key]
	if !ok {
		entry = new(autoCacheEntry)
		autoCache[key] = entry
	}
	autoCacheMu.Unlock()

	entry.once.Do(func() {

		NthRoot := uint64(N) << 1
		mask := NthRoot - 1

		// (gi-1)>>1 ranges over [0, N), so the bit-reversal width is
		// log2(N) = bit_length(mask>>1)
		logNthRoot := int(bits.Len64(mask >> 1))

		index := make([]uint64, N)

		for i := uint64(0); i < uint64(N); i++ {
			gi := ((2*utils.BitReverse64(i, logNthRoot) + 1) * galEl) & mask
			index[i] = utils.BitReverse64((gi-1)>>1, logNthRoot)
		}

		entry.index = index
	})

	return entry.index, entry.err
}

// permuteNTTWithIndex evaluates pOut[i] = pIn[index[i]].
func permuteNTTWithIndex(pIn, pOut Poly, index []uint64) {

	N := len(pIn)

	if len(pOut) != N || len(index) != N {
		panic(fmt.Errorf("len(pIn)=%d len(pOut)=%d len(index)=%d", N, len(pOut), len(index)))
	}

	for j := 0; j < N-(N&7); j = j + 8 {

		/* #nosec G103 -- iteration number is ensured to be a multiple of 8*/
		i := (*[8]uint64)(unsafe.Pointer(&index[j]))
		/* #nosec G103 -- iteration number is ensured to be a multiple of 8*/
		z := (*[8]uint64)(unsafe.Pointer(&pOut[j]))

		z[0] = pIn[i[0]]
		z[1] = pIn[i[1]]
		z[2] = pIn[i[2]]
		z[3] = pIn[i[3]]
		z[4] = pIn[i[4]]
		z[5] = pIn[i[5]]
		z[6] = pIn[i[6]]
		z[7] = pIn[i[7]]
	}

	for j := N - (N & 7); j < N; j++ {
		pOut[j] = pIn[index[j]]
	}
}

// Automorphism applies X -> X^galEl to a polynomial in evaluation
// form and returns the result as a new polynomial. In the NTT domain
// the automorphism only permutes positions, so the coefficient bounds
// of the input (strict or lazy) carry over unchanged.
func Automorphism(p *RNSPoly, galEl uint64) (*RNSPoly, error) {

	if !p.IsNTT {
		return nil, fmt.Errorf("cannot Automorphism: polynomial is in coefficient form")
	}

	index, err := AutomorphismNTTIndex(p.N(), galEl)
	if err != nil {
		return nil, fmt.Errorf("cannot Automorphism: %w", err)
	}

	pOut, err := NewRNSPoly(p.N(), p.Moduli)
	if err != nil {
		return nil, fmt.Errorf("cannot Automorphism: %w", err)
	}
	pOut.IsNTT = true

	for i := range p.Components {
		permuteNTTWithIndex(p.Components[i], pOut.Components[i], index)
	}

	return pOut, nil
}

// Involute applies the automorphism X -> X^{-1}, the ring analogue of
// complex conjugation on the encoded slots. It is its own inverse.
// The input must be in evaluation form.
func Involute(p *RNSPoly) (*RNSPoly, error) {
	return Automorphism(p, GaloisElementForInvolution(p.N()))
}

// Cycle rotates the encoded slots of p by step positions to the right
// (slot i moves to slot (i+step) mod N/2). The rotations form a cyclic
// group of order N/2: Cycle(Cycle(p, a), b) equals Cycle(p, a+b), and
// N/2 single steps return the original polynomial. The input must be
// in evaluation form.
func Cycle(p *RNSPoly, step int) (*RNSPoly, error) {
	return Automorphism(p, GaloisElementForCycle(step, p.N()))
}
