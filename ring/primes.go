package ring

import (
	"fmt"
	"math/big"
	"math/bits"
)

// IsPrime applies Baillie-PSW, which is 100% accurate for numbers
// below 2^64.
func IsPrime(x uint64) bool {
	return new(big.Int).SetUint64(x).ProbablyPrime(0)
}

// Factors returns the sorted list of unique prime factors of m, by
// trial division over small primes followed by Pollard's rho on the
// remaining composite cofactors.
func Factors(m uint64) (factors []uint64) {

	if m < 2 {
		return
	}

	for _, p := range []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37} {
		if m%p == 0 {
			factors = append(factors, p)
			for m%p == 0 {
				m /= p
			}
		}
	}

	if m == 1 {
		return
	}

	composites := []uint64{m}

	for len(composites) > 0 {

		n := composites[len(composites)-1]
		composites = composites[:len(composites)-1]

		if IsPrime(n) {
			var seen bool
			for _, f := range factors {
				if f == n {
					seen = true
					break
				}
			}
			if !seen {
				factors = append(factors, n)
			}
			continue
		}

		d := pollardRho(n)
		composites = append(composites, d, n/d)
	}

	for i := 1; i < len(factors); i++ {
		for j := i; j > 0 && factors[j-1] > factors[j]; j-- {
			factors[j-1], factors[j] = factors[j], factors[j-1]
		}
	}

	return
}

// pollardRho returns a non-trivial factor of the odd composite n,
// using Brent's cycle detection variant.
func pollardRho(n uint64) uint64 {

	if n&1 == 0 {
		return 2
	}

	brc := GetBRedConstant(n)

	for c := uint64(1); ; c++ {

		f := func(x uint64) uint64 {
			return CRed(BRed(x, x, n, brc)+c, n)
		}

		x, y, d := uint64(2), uint64(2), uint64(1)

		for d == 1 {
			x = f(x)
			y = f(f(y))
			diff := x - y
			if x < y {
				diff = y - x
			}
			if diff == 0 {
				break
			}
			d = gcd(diff, n)
		}

		if d != 1 && d != n {
			return d
		}
	}
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// NextNTTPrime returns the smallest prime p > q with p = 1 mod NthRoot.
// The input q must itself satisfy q = 1 mod NthRoot.
func NextNTTPrime(q uint64, NthRoot int) (qNext uint64, err error) {

	qNext = q + uint64(NthRoot)

	for !IsPrime(qNext) {

		qNext += uint64(NthRoot)

		if bits.Len64(qNext) > 61 {
			return 0, fmt.Errorf("next NTT prime exceeds the maximum bit-size of 61 bits")
		}
	}

	return qNext, nil
}

// PreviousNTTPrime returns the largest prime p < q with p = 1 mod
// NthRoot. The input q must itself satisfy q = 1 mod NthRoot.
func PreviousNTTPrime(q uint64, NthRoot int) (qPrev uint64, err error) {

	if q < uint64(NthRoot) {
		return 0, fmt.Errorf("previous NTT prime is smaller than NthRoot")
	}

	qPrev = q - uint64(NthRoot)

	for !IsPrime(qPrev) {

		if qPrev < uint64(NthRoot) {
			return 0, fmt.Errorf("previous NTT prime is smaller than NthRoot")
		}

		qPrev -= uint64(NthRoot)
	}

	return qPrev, nil
}

// GenerateNTTPrimes returns n primes of bit-size logQ supporting the
// negacyclic NTT of degree NthRoot/2, alternating above and below
// 2^logQ to minimize the deviation from the base power of two.
func GenerateNTTPrimes(logQ, NthRoot, n int) (primes []uint64, err error) {

	if logQ < 2 || logQ > 61 {
		return nil, fmt.Errorf("logQ must be between 2 and 61")
	}

	var nextPrime, prevPrime uint64
	checkNext, checkPrev := true, true

	Qpow2 := uint64(1) << logQ

	nextPrime = Qpow2 + 1
	prevPrime = Qpow2 + 1

	for {

		if !(checkNext || checkPrev) {
			return nil, fmt.Errorf("cannot generate %d primes for logQ=%d, NthRoot=%d", n, logQ, NthRoot)
		}

		if checkNext {
			if nextPrime > 0xffffffffffffffff-uint64(NthRoot) || bits.Len64(nextPrime+uint64(NthRoot)) > logQ+1 {
				checkNext = false
			} else {
				nextPrime += uint64(NthRoot)
				if IsPrime(nextPrime) {
					primes = append(primes, nextPrime)
					if len(primes) == n {
						return
					}
				}
			}
		}

		if checkPrev {
			if prevPrime < uint64(NthRoot) || bits.Len64(prevPrime-uint64(NthRoot)) < logQ {
				checkPrev = false
			} else {
				prevPrime -= uint64(NthRoot)
				if IsPrime(prevPrime) {
					primes = append(primes, prevPrime)
					if len(primes) == n {
						return
					}
				}
			}
		}
	}
}
