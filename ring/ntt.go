package ring

import (
	"fmt"
)

// NTTTable stores all the constants that are specifically tied to the
// negacyclic NTT of a given (N, Modulus) pair.
type NTTTable struct {
	NthRoot       uint64   // 2N, the order of the negacyclic root
	PrimitiveRoot uint64   // smallest generator of Z_q^*
	RootsForward  []uint64 // powers of the 2N-th root in Montgomery form, bit-reversed order
	RootsBackward []uint64 // powers of the inverse root in Montgomery form, bit-reversed order
	NInv          uint64   // N^-1 mod Modulus, in Montgomery form
}

// butterfly computes X, Y = U + V*Psi, U - V*Psi mod Q.
// U is required to be in [0, 8q-1] and V*Psi in Montgomery form;
// the results are in [0, 6q-1].
func butterfly(U, V, Psi, twoQ, fourQ, Q, MRedConstant uint64) (uint64, uint64) {
	if U >= fourQ {
		U -= fourQ
	}
	V = MRedLazy(V, Psi, Q, MRedConstant)
	return U + V, U + twoQ - V
}

// invbutterfly computes X, Y = U + V, (U - V) * Psi mod Q.
// U and V are required to be in [0, 2q-1]; so are the results.
func invbutterfly(U, V, Psi, twoQ, fourQ, Q, MRedConstant uint64) (X, Y uint64) {
	X = U + V
	if X >= twoQ {
		X -= twoQ
	}
	Y = MRedLazy(U+fourQ-V, Psi, Q, MRedConstant)
	return
}

// NTTStandard computes the forward negacyclic NTT of p1 on p2, with p2
// strictly reduced in [0, q-1].
func NTTStandard(p1, p2 []uint64, N int, Q, MRedConstant uint64, BRedConstant [2]uint64, roots []uint64) {
	nttCoreLazy(p1, p2, N, Q, MRedConstant, roots)
	ReduceVec(p2[:N], p2[:N], Q, BRedConstant)
}

// NTTStandardLazy computes the forward negacyclic NTT of p1 on p2,
// with p2 in [0, 2q-1].
func NTTStandardLazy(p1, p2 []uint64, N int, Q, MRedConstant uint64, BRedConstant [2]uint64, roots []uint64) {
	nttCoreLazy(p1, p2, N, Q, MRedConstant, roots)
	ReduceLazyVec(p2[:N], p2[:N], Q, BRedConstant)
}

// INTTStandard computes the backward negacyclic NTT of p1 on p2, with
// p2 strictly reduced in [0, q-1]. p1 may be lazily reduced in
// [0, 2q-1].
func INTTStandard(p1, p2 []uint64, N int, NInv, Q, MRedConstant uint64, roots []uint64) {
	inttCoreLazy(p1, p2, N, Q, MRedConstant, roots)
	MulScalarMontgomeryVec(p2[:N], NInv, p2[:N], Q, MRedConstant)
}

// nttCoreLazy computes the forward NTT with unreduced outputs (the
// butterfly invariants keep every value below 8q). Outputs are in
// bit-reversed order: p2[i] = p1(psi^(2*bitrev(i)+1)).
func nttCoreLazy(p1, p2 []uint64, N int, Q, MRedConstant uint64, roots []uint64) {

	// Sanity check
	if len(p1) < N || len(p2) < N || len(roots) < N {
		panic(fmt.Sprintf("cannot nttCoreLazy: ensure that len(p1)=%d, len(p2)=%d and len(roots)=%d >= N=%d", len(p1), len(p2), len(roots), N))
	}

	var j1, j2, t int
	var F uint64

	fourQ := 4 * Q
	twoQ := 2 * Q

	t = N >> 1
	F = roots[1]
	j1 = 0
	j2 = j1 + t

	for jx, jy := j1, j1+t; jx < j2; jx, jy = jx+1, jy+1 {
		p2[jx], p2[jy] = butterfly(p1[jx], p1[jy], F, twoQ, fourQ, Q, MRedConstant)
	}

	for m := 2; m < N; m <<= 1 {

		t >>= 1

		for i := 0; i < m; i++ {

			j1 = (i * t) << 1

			j2 = j1 + t

			F = roots[m+i]

			for jx, jy := j1, j1+t; jx < j2; jx, jy = jx+1, jy+1 {
				p2[jx], p2[jy] = butterfly(p2[jx], p2[jy], F, twoQ, fourQ, Q, MRedConstant)
			}
		}
	}
}

// inttCoreLazy computes the backward NTT with outputs in [0, 2q-1],
// before the final multiplication by N^-1. Inputs must be in
// [0, 2q-1].
func inttCoreLazy(p1, p2 []uint64, N int, Q, MRedConstant uint64, roots []uint64) {

	// Sanity check
	if len(p1) < N || len(p2) < N || len(roots) < N {
		panic(fmt.Sprintf("cannot inttCoreLazy: ensure that len(p1)=%d, len(p2)=%d and len(roots)=%d >= N=%d", len(p1), len(p2), len(roots), N))
	}

	var h, t int
	var F uint64

	t = 1
	h = N >> 1
	twoQ := Q << 1
	fourQ := Q << 2

	for i, j1, j2 := 0, 0, t; i < h; i, j1, j2 = i+1, j1+2*t, j2+2*t {

		F = roots[h+i]

		for jx, jy := j1, j1+t; jx < j2; jx, jy = jx+1, jy+1 {
			p2[jx], p2[jy] = invbutterfly(p1[jx], p1[jy], F, twoQ, fourQ, Q, MRedConstant)
		}
	}

	t <<= 1

	for m := N >> 1; m > 1; m >>= 1 {

		h = m >> 1

		for i, j1, j2 := 0, 0, t; i < h; i, j1, j2 = i+1, j1+2*t, j2+2*t {

			F = roots[h+i]

			for jx, jy := j1, j1+t; jx < j2; jx, jy = jx+1, jy+1 {
				p2[jx], p2[jy] = invbutterfly(p2[jx], p2[jy], F, twoQ, fourQ, Q, MRedConstant)
			}
		}

		t <<= 1
	}
}

// NTT evaluates p2 = NTT(p1) with p2 in [0, q-1].
func (r *Ring) NTT(p1, p2 []uint64) {
	NTTStandard(p1, p2, r.N, r.Modulus, r.MRedConstant, r.BRedConstant, r.RootsForward)
}

// NTTLazy evaluates p2 = NTT(p1) with p2 in [0, 2q-1].
func (r *Ring) NTTLazy(p1, p2 []uint64) {
	NTTStandardLazy(p1, p2, r.N, r.Modulus, r.MRedConstant, r.BRedConstant, r.RootsForward)
}

// INTT evaluates p2 = INTT(p1) with p2 in [0, q-1]. p1 may be lazily
// reduced in [0, 2q-1].
func (r *Ring) INTT(p1, p2 []uint64) {
	INTTStandard(p1, p2, r.N, r.NInv, r.Modulus, r.MRedConstant, r.RootsBackward)
}
