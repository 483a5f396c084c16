package ring

import (
	"fmt"
	"math/bits"
	"sync"

	"github.com/hehub-go/hehub/utils"
	"github.com/hehub-go/hehub/utils/concurrency"
)

const (
	// MinimumRingDegree is the minimum ring degree necessary for
	// memory-safe loop unrolling of the vector operations.
	MinimumRingDegree = 8

	// MaxModulusBits is the largest supported modulus bit-size,
	// leaving the headroom required by the lazy butterfly invariants.
	MaxModulusBits = 61
)

// Ring stores the precomputations for fast modular reduction and the
// negacyclic NTT for a given (N, Modulus) pair.
type Ring struct {
	// Polynomial ring degree
	N int

	Modulus uint64

	// Unique factors of Modulus-1
	Factors []uint64

	// 2^bit_length(Modulus) - 1
	Mask uint64

	// Fast reduction constants
	BRedConstant [2]uint64 // Barrett Reduction
	MRedConstant uint64    // Montgomery Reduction

	*NTTTable // NTT related constants
}

// NewRing creates a new [Ring] with degree N and the given prime
// modulus. NTT constants still need to be generated with
// [Ring.GenNTTTable]; most callers should use [GetRing] instead, which
// caches fully initialized rings.
func NewRing(N int, Modulus uint64) (r *Ring, err error) {

	if N < MinimumRingDegree || (N&(N-1)) != 0 {
		return nil, fmt.Errorf("invalid ring degree: must be a power of 2 greater than or equal to %d", MinimumRingDegree)
	}

	if bits.Len64(Modulus) > MaxModulusBits {
		return nil, fmt.Errorf("invalid modulus: %d > 2^%d", Modulus, MaxModulusBits)
	}

	if Modulus&1 == 0 {
		return nil, fmt.Errorf("invalid modulus: %d is even", Modulus)
	}

	r = &Ring{}

	r.N = N

	r.Modulus = Modulus

	r.Mask = (1 << uint64(bits.Len64(Modulus-1))) - 1

	r.BRedConstant = GetBRedConstant(Modulus)
	r.MRedConstant = GetMRedConstant(Modulus)

	r.NTTTable = new(NTTTable)
	r.NthRoot = 2 * uint64(N)

	return
}

// LogN returns log2(N).
func (r *Ring) LogN() int {
	return bits.Len64(uint64(r.N) - 1)
}

// GenNTTTable generates the NTT tables of the target Ring. The fields
// `PrimitiveRoot` and `Factors` can be set manually to bypass the
// search for the primitive root (which requires factoring Modulus-1).
func (r *Ring) GenNTTTable() (err error) {

	if r.N == 0 || r.Modulus == 0 {
		return fmt.Errorf("invalid ring parameters (missing)")
	}

	Modulus := r.Modulus
	NthRoot := r.NthRoot

	if !IsPrime(Modulus) {
		return fmt.Errorf("invalid modulus: %d is not prime", Modulus)
	}

	if Modulus&(NthRoot-1) != 1 {
		return fmt.Errorf("invalid modulus: %d != 1 mod NthRoot=%d", Modulus, NthRoot)
	}

	// The primitive root can be provided along with the factors of
	// q-1, in which case only its validity is checked.
	if r.PrimitiveRoot != 0 && r.Factors != nil {
		if err = CheckPrimitiveRoot(r.PrimitiveRoot, Modulus, r.Factors); err != nil {
			return
		}
	} else {
		if r.PrimitiveRoot, r.Factors, err = PrimitiveRoot(Modulus, r.Factors); err != nil {
			return
		}
	}

	logNthRoot := int(bits.Len64(NthRoot>>1) - 1)

	// N^(-1) mod Modulus in Montgomery form
	r.NInv = MForm(ModExp(NthRoot>>1, Modulus-2, Modulus), Modulus, r.BRedConstant)

	// 2N-th primitive root Psi and its inverse, in Montgomery form
	Psi := ModExp(r.PrimitiveRoot, (Modulus-1)/NthRoot, Modulus)

	PsiMont := MForm(Psi, Modulus, r.BRedConstant)

	// Sanity checks: Psi^{2N} = 1 and Psi^{N} = -1 mod Modulus
	if IMForm(ModExpMontgomery(PsiMont, NthRoot, Modulus, r.MRedConstant, r.BRedConstant), Modulus, r.MRedConstant) != 1 {
		return fmt.Errorf("invalid 2Nth primitive root: psi^{2N} != 1 mod Modulus")
	}

	if IMForm(ModExpMontgomery(PsiMont, NthRoot>>1, Modulus, r.MRedConstant, r.BRedConstant), Modulus, r.MRedConstant) != Modulus-1 {
		return fmt.Errorf("invalid 2Nth primitive root: psi^{N} != -1 mod Modulus")
	}

	PsiInvMont := ModExpMontgomery(PsiMont, Modulus-2, Modulus, r.MRedConstant, r.BRedConstant)

	r.RootsForward = make([]uint64, NthRoot>>1)
	r.RootsBackward = make([]uint64, NthRoot>>1)

	r.RootsForward[0] = MForm(1, Modulus, r.BRedConstant)
	r.RootsBackward[0] = MForm(1, Modulus, r.BRedConstant)

	// RootsForward[bitrev(j)] = Psi^j, RootsBackward[bitrev(j)] = Psi^-j
	for j := uint64(1); j < NthRoot>>1; j++ {

		indexReversePrev := utils.BitReverse64(j-1, logNthRoot)
		indexReverseNext := utils.BitReverse64(j, logNthRoot)

		r.RootsForward[indexReverseNext] = MRed(r.RootsForward[indexReversePrev], PsiMont, Modulus, r.MRedConstant)
		r.RootsBackward[indexReverseNext] = MRed(r.RootsBackward[indexReversePrev], PsiInvMont, Modulus, r.MRedConstant)
	}

	return
}

// PrimitiveRoot computes the smallest primitive root of the given
// prime q. The unique factors of q-1 can be given to speed up the
// search for the root.
func PrimitiveRoot(q uint64, factors []uint64) (uint64, []uint64, error) {

	if factors != nil {
		if err := CheckFactors(q-1, factors); err != nil {
			return 0, factors, err
		}
	} else {
		factors = Factors(q - 1)
	}

	notFoundPrimitiveRoot := true

	var g uint64 = 2

	for notFoundPrimitiveRoot {
		g++
		for _, factor := range factors {
			// if for any factor of q-1, g^(q-1)/factor = 1 mod q, g is not a primitive root
			if ModExp(g, (q-1)/factor, q) == 1 {
				notFoundPrimitiveRoot = true
				break
			}
			notFoundPrimitiveRoot = false
		}
	}

	return g, factors, nil
}

// CheckFactors checks that the given list of factors contains all the
// unique primes of m.
func CheckFactors(m uint64, factors []uint64) (err error) {

	for _, factor := range factors {

		if !IsPrime(factor) {
			return fmt.Errorf("composite factor")
		}

		for m%factor == 0 {
			m /= factor
		}
	}

	if m != 1 {
		return fmt.Errorf("incomplete factor list")
	}

	return
}

// CheckPrimitiveRoot checks that g is a valid primitive root mod q,
// given the factors of q-1.
func CheckPrimitiveRoot(g, q uint64, factors []uint64) (err error) {

	if err = CheckFactors(q-1, factors); err != nil {
		return
	}

	for _, factor := range factors {
		if ModExp(g, (q-1)/factor, q) == 1 {
			return fmt.Errorf("invalid primitive root")
		}
	}

	return
}

type ringKey struct {
	n int
	q uint64
}

type ringCacheEntry struct {
	once sync.Once
	r    *Ring
	err  error
}

var (
	ringCacheMu sync.Mutex
	ringCache   = map[ringKey]*ringCacheEntry{}
)

// GetRing returns the fully initialized [Ring] for the given
// (N, Modulus) pair from the process-wide cache, generating its tables
// on first use. The tables are generated exactly once per pair and are
// read-only afterwards, so the returned Ring is safe for concurrent
// use.
func GetRing(N int, Modulus uint64) (*Ring, error) {

	key := ringKey{n: N, q: Modulus}

	ringCacheMu.Lock()
	entry, ok := ringCache[key]
	if !ok {
		entry = new(ringCacheEntry)
		ringCache[key] = entry
	}
	ringCacheMu.Unlock()

	entry.once.Do(func() {
		var r *Ring
		if r, entry.err = NewRing(N, Modulus); entry.err != nil {
			return
		}
		if entry.err = r.GenNTTTable(); entry.err != nil {
			return
		}
		entry.r = r
	})

	return entry.r, entry.err
}

// Precompute populates the ring cache for every modulus of the given
// dimensions, generating up to `workers` tables concurrently. It
// returns the first error encountered, if any.
func Precompute(dims PolyDimensions, workers int) error {

	workers = utils.Max(workers, 1)
	workers = utils.Min(workers, utils.Max(len(dims.Moduli), 1))

	rm := concurrency.NewResourceManager(make([]bool, workers))

	for _, q := range dims.Moduli {
		q := q
		rm.Run(func(_ bool) error {
			_, err := GetRing(dims.PolyLen, q)
			return err
		})
	}

	return rm.Wait()
}
