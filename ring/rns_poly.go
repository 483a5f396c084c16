package ring

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/google/go-cmp/cmp"
	"github.com/hehub-go/hehub/utils"
)

// Poly is a single RNS component: the coefficients of a polynomial
// modulo one prime.
type Poly []uint64

// NewPoly creates a new polynomial with N coefficients set to zero.
func NewPoly(N int) Poly {
	return make(Poly, N)
}

// N returns the number of coefficients of the polynomial.
func (p Poly) N() int {
	return len(p)
}

// PolyDimensions describes the shape of an [RNSPoly]: the ring degree,
// the number of RNS components and their moduli.
type PolyDimensions struct {
	PolyLen        int      `json:"poly_len"`
	ComponentCount int      `json:"component_count"`
	Moduli         []uint64 `json:"moduli"`
}

// Validate returns an error if the dimensions cannot back a valid
// [RNSPoly]: the degree must be a power of two greater than or equal
// to [MinimumRingDegree], the component count must match the number of
// moduli, and each modulus must be an odd prime below 2^61.
// NTT-friendliness of the moduli (2N | q-1) is checked at the first
// transform, not here.
func (d PolyDimensions) Validate() error {

	if d.PolyLen < MinimumRingDegree || d.PolyLen&(d.PolyLen-1) != 0 {
		return fmt.Errorf("invalid PolyLen: must be a power of 2 greater than or equal to %d but is %d", MinimumRingDegree, d.PolyLen)
	}

	if d.ComponentCount < 1 {
		return fmt.Errorf("invalid ComponentCount: must be at least 1 but is %d", d.ComponentCount)
	}

	if d.ComponentCount != len(d.Moduli) {
		return fmt.Errorf("invalid Moduli: ComponentCount=%d != len(Moduli)=%d", d.ComponentCount, len(d.Moduli))
	}

	for i, q := range d.Moduli {
		if err := checkModulusValue(q); err != nil {
			return fmt.Errorf("invalid Moduli[%d]: %w", i, err)
		}
	}

	return nil
}

func checkModulusValue(q uint64) error {
	if bits.Len64(q) > MaxModulusBits {
		return fmt.Errorf("%d > 2^%d", q, MaxModulusBits)
	}
	if q&1 == 0 {
		return fmt.Errorf("%d is even", q)
	}
	if !IsPrime(q) {
		return fmt.Errorf("%d is not prime", q)
	}
	return nil
}

// Equal returns true if both dimensions describe the same shape.
func (d PolyDimensions) Equal(other PolyDimensions) bool {
	res := d.PolyLen == other.PolyLen
	res = res && d.ComponentCount == other.ComponentCount
	res = res && cmp.Equal(d.Moduli, other.Moduli)
	return res
}

// RNSPoly is an element of Z_q[X]/(X^N+1) in RNS form: one component
// of N coefficients per modulus, index-aligned with Moduli, tagged
// with its current representation form.
type RNSPoly struct {
	Components []Poly
	Moduli     []uint64

	// IsNTT is true when the components hold NTT-domain evaluations
	// rather than coefficients.
	IsNTT bool
}

// NewRNSPoly creates a new zeroed polynomial in coefficient form with
// degree N and one component per modulus. The components are backed by
// a single 1D array.
func NewRNSPoly(N int, moduli []uint64) (*RNSPoly, error) {
	return NewRNSPolyFromDimensions(PolyDimensions{
		PolyLen:        N,
		ComponentCount: len(moduli),
		Moduli:         moduli,
	})
}

// NewRNSPolyFromDimensions creates a new zeroed polynomial in
// coefficient form from validated dimensions.
func NewRNSPolyFromDimensions(dims PolyDimensions) (*RNSPoly, error) {

	if err := dims.Validate(); err != nil {
		return nil, err
	}

	N := dims.PolyLen

	p := &RNSPoly{
		Components: make([]Poly, dims.ComponentCount),
		Moduli:     make([]uint64, dims.ComponentCount),
	}

	buf := make([]uint64, N*dims.ComponentCount)
	for i := range p.Components {
		p.Components[i] = buf[i*N : (i+1)*N]
	}

	copy(p.Moduli, dims.Moduli)

	return p, nil
}

// Dimensions returns the dimensions of the receiver.
func (p *RNSPoly) Dimensions() PolyDimensions {
	moduli := make([]uint64, len(p.Moduli))
	copy(moduli, p.Moduli)
	return PolyDimensions{
		PolyLen:        p.N(),
		ComponentCount: p.ComponentCount(),
		Moduli:         moduli,
	}
}

// N returns the ring degree.
func (p *RNSPoly) N() int {
	if len(p.Components) == 0 {
		return 0
	}
	return p.Components[0].N()
}

// LogN returns log2(N).
func (p *RNSPoly) LogN() int {
	return bits.Len64(uint64(p.N()) - 1)
}

// ComponentCount returns the current number of RNS components.
func (p *RNSPoly) ComponentCount() int {
	return len(p.Components)
}

// At returns the i-th component of the receiver.
func (p *RNSPoly) At(i int) Poly {
	if i >= len(p.Components) {
		panic(fmt.Errorf("i=%d >= ComponentCount=%d", i, len(p.Components)))
	}
	return p.Components[i]
}

// ModulusAt returns the modulus of the i-th component.
func (p *RNSPoly) ModulusAt(i int) uint64 {
	if i >= len(p.Moduli) {
		panic(fmt.Errorf("i=%d >= ComponentCount=%d", i, len(p.Moduli)))
	}
	return p.Moduli[i]
}

// Zero sets all coefficients of the receiver to zero.
func (p *RNSPoly) Zero() {
	for i := range p.Components {
		ZeroVec(p.Components[i])
	}
}

// Equal returns true if both polynomials have the same dimensions,
// representation form and coefficients.
func (p *RNSPoly) Equal(other *RNSPoly) bool {

	if p.IsNTT != other.IsNTT || len(p.Components) != len(other.Components) {
		return false
	}

	for i := range p.Moduli {
		if p.Moduli[i] != other.Moduli[i] {
			return false
		}
	}

	for i := range p.Components {
		c0, c1 := p.Components[i], other.Components[i]
		if len(c0) != len(c1) {
			return false
		}
		for j := range c0 {
			if c0[j] != c1[j] {
				return false
			}
		}
	}

	return true
}

// Clone returns a deep copy of the receiver.
func (p *RNSPoly) Clone() *RNSPoly {

	clone := &RNSPoly{
		Components: make([]Poly, len(p.Components)),
		Moduli:     make([]uint64, len(p.Moduli)),
		IsNTT:      p.IsNTT,
	}

	N := p.N()
	buf := make([]uint64, N*len(p.Components))
	for i := range p.Components {
		clone.Components[i] = buf[i*N : (i+1)*N]
		copy(clone.Components[i], p.Components[i])
	}

	copy(clone.Moduli, p.Moduli)

	return clone
}

// Copy copies the coefficients and representation form of p1 onto the
// receiver. Both polynomials must have the same dimensions.
func (p *RNSPoly) Copy(p1 *RNSPoly) error {

	if p.N() != p1.N() || len(p.Components) != len(p1.Components) {
		return fmt.Errorf("mismatched dimensions: (N=%d, count=%d) != (N=%d, count=%d)", p.N(), len(p.Components), p1.N(), len(p1.Components))
	}

	for i := range p.Components {
		if !utils.Alias1D(p.Components[i], p1.Components[i]) {
			copy(p.Components[i], p1.Components[i])
		}
	}

	copy(p.Moduli, p1.Moduli)
	p.IsNTT = p1.IsNTT

	return nil
}

// AddComponents appends one zeroed component per given modulus.
func (p *RNSPoly) AddComponents(moduli ...uint64) error {

	for _, q := range moduli {
		if err := checkModulusValue(q); err != nil {
			return fmt.Errorf("invalid modulus: %w", err)
		}
	}

	N := p.N()

	for _, q := range moduli {
		p.Components = append(p.Components, NewPoly(N))
		p.Moduli = append(p.Moduli, q)
	}

	return nil
}

// RemoveComponents drops the k trailing components. Removing more
// components than the receiver holds is an error.
func (p *RNSPoly) RemoveComponents(k int) error {

	if k < 0 {
		return fmt.Errorf("invalid k: %d < 0", k)
	}

	if k > len(p.Components) {
		return fmt.Errorf("cannot remove %d components: only %d present", k, len(p.Components))
	}

	p.Components = p.Components[:len(p.Components)-k]
	p.Moduli = p.Moduli[:len(p.Moduli)-k]

	return nil
}

// InfNorm returns the infinity norm of the receiver, with the
// coefficients CRT-reconstructed and centered around 0. The receiver
// must be in coefficient form and strictly reduced; a coefficient at
// or above its modulus is an error, since the lazy transform path can
// leave unreduced values.
func (p *RNSPoly) InfNorm() (*big.Int, error) {

	values := make([]big.Int, p.N())
	if err := p.ToBigIntCentered(values); err != nil {
		return nil, fmt.Errorf("cannot InfNorm: %w", err)
	}

	norm := new(big.Int)
	for i := range values {
		if values[i].CmpAbs(norm) > 0 {
			norm.Abs(&values[i])
		}
	}

	return norm, nil
}

// ToBigIntCentered CRT-reconstructs the coefficients of the receiver
// into values, centered around 0 in ]-Q/2, Q/2] where Q is the product
// of the moduli. The receiver must be in coefficient form and strictly
// reduced; a coefficient at or above its modulus is an error, since the
// lazy transform path can leave unreduced values.
func (p *RNSPoly) ToBigIntCentered(values []big.Int) error {

	if p.IsNTT {
		return fmt.Errorf("polynomial is in evaluation form")
	}

	if len(p.Components) == 0 {
		return fmt.Errorf("polynomial has no components")
	}

	if len(values) < p.N() {
		return fmt.Errorf("len(values)=%d < N=%d", len(values), p.N())
	}

	for i, c := range p.Components {
		q := p.Moduli[i]
		for j, v := range c {
			if v >= q {
				return fmt.Errorf("coefficient %d of component %d is %d >= modulus %d (unreduced value)", j, i, v, q)
			}
		}
	}

	count := len(p.Components)

	Q := new(big.Int).SetUint64(1)
	for _, q := range p.Moduli {
		Q.Mul(Q, new(big.Int).SetUint64(q))
	}

	// ICRT[i] = (Q/qi) * ((Q/qi)^-1 mod qi)
	ICRT := make([]big.Int, count)
	tmp := new(big.Int)
	QiB := new(big.Int)
	for i, q := range p.Moduli {
		QiB.SetUint64(q)
		ICRT[i].Quo(Q, QiB)
		tmp.ModInverse(&ICRT[i], QiB)
		tmp.Mod(tmp, QiB)
		ICRT[i].Mul(&ICRT[i], tmp)
	}

	QHalf := new(big.Int).Rsh(Q, 1)

	N := p.N()

	for j := 0; j < N; j++ {

		values[j].SetUint64(0)

		for i := 0; i < count; i++ {
			values[j].Add(&values[j], tmp.Mul(new(big.Int).SetUint64(p.Components[i][j]), &ICRT[i]))
		}

		values[j].Mod(&values[j], Q)

		// Centers the coefficients
		if values[j].Cmp(QHalf) > -1 {
			values[j].Sub(&values[j], Q)
		}
	}

	return nil
}
