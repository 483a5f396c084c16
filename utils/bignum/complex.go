package bignum

import (
	"math/big"
)

// Complex is an arbitrary-precision complex number, stored as
// [real, imag].
type Complex [2]big.Float

// NewComplex returns a new [Complex] of zero value with prec bits of
// precision.
func NewComplex(prec uint) (c *Complex) {
	c = new(Complex)
	c[0].SetPrec(prec)
	c[1].SetPrec(prec)
	return
}

// SetComplex128 sets the receiver to a complex128 value.
func (c *Complex) SetComplex128(x complex128) *Complex {
	c[0].SetFloat64(real(x))
	c[1].SetFloat64(imag(x))
	return c
}

// Set sets the receiver to the value of a.
func (c *Complex) Set(a *Complex) *Complex {
	c[0].Set(&a[0])
	c[1].Set(&a[1])
	return c
}

// Prec returns the precision in bits of the real component.
func (c *Complex) Prec() uint {
	return c[0].Prec()
}

// SetPrec sets the precision of both components to prec bits and
// returns the receiver.
func (c *Complex) SetPrec(prec uint) *Complex {
	c[0].SetPrec(prec)
	c[1].SetPrec(prec)
	return c
}

// Clone returns a deep copy of the receiver.
func (c *Complex) Clone() (clone *Complex) {
	clone = new(Complex)
	clone[0].Set(&c[0])
	clone[1].Set(&c[1])
	return
}

// Real returns a pointer to the real component.
func (c *Complex) Real() *big.Float {
	return &c[0]
}

// Imag returns a pointer to the imaginary component.
func (c *Complex) Imag() *big.Float {
	return &c[1]
}

// Complex128 returns the closest complex128 value.
func (c *Complex) Complex128() complex128 {
	re, _ := c[0].Float64()
	im, _ := c[1].Float64()
	return complex(re, im)
}

// Add sets the receiver to a + b.
func (c *Complex) Add(a, b *Complex) *Complex {
	c[0].Add(&a[0], &b[0])
	c[1].Add(&a[1], &b[1])
	return c
}

// Sub sets the receiver to a - b.
func (c *Complex) Sub(a, b *Complex) *Complex {
	c[0].Sub(&a[0], &b[0])
	c[1].Sub(&a[1], &b[1])
	return c
}

// Neg sets the receiver to -a.
func (c *Complex) Neg(a *Complex) *Complex {
	c[0].Neg(&a[0])
	c[1].Neg(&a[1])
	return c
}

// Conj sets the receiver to the complex conjugate of a.
func (c *Complex) Conj(a *Complex) *Complex {
	c[0].Set(&a[0])
	c[1].Neg(&a[1])
	return c
}

// IsZero returns true if both components are exactly zero.
func (c *Complex) IsZero() bool {
	return c[0].Cmp(new(big.Float)) == 0 && c[1].Cmp(new(big.Float)) == 0
}

// ComplexMultiplier is a scratch-space holder for complex
// multiplication, avoiding big.Float allocations in hot loops.
type ComplexMultiplier struct {
	tmp0 *big.Float
	tmp1 *big.Float
	tmp2 *big.Float
	tmp3 *big.Float
}

// NewComplexMultiplier instantiates a new [ComplexMultiplier].
func NewComplexMultiplier() (cm *ComplexMultiplier) {
	return &ComplexMultiplier{
		tmp0: new(big.Float),
		tmp1: new(big.Float),
		tmp2: new(big.Float),
		tmp3: new(big.Float),
	}
}

// Mul sets c to a * b. The receiver's scratch space is reused across
// calls, so a ComplexMultiplier must not be shared between goroutines.
func (cm *ComplexMultiplier) Mul(a, b, c *Complex) {

	if a[1].Cmp(new(big.Float)) == 0 {
		// a is real
		cm.tmp0.Mul(&a[0], &b[0])
		cm.tmp1.Mul(&a[0], &b[1])
		c[0].Set(cm.tmp0)
		c[1].Set(cm.tmp1)
		return
	}

	if b[1].Cmp(new(big.Float)) == 0 {
		// b is real
		cm.tmp0.Mul(&b[0], &a[0])
		cm.tmp1.Mul(&b[0], &a[1])
		c[0].Set(cm.tmp0)
		c[1].Set(cm.tmp1)
		return
	}

	cm.tmp0.Mul(&a[0], &b[0])
	cm.tmp1.Mul(&a[1], &b[1])
	cm.tmp2.Mul(&a[0], &b[1])
	cm.tmp3.Mul(&a[1], &b[0])

	c[0].Sub(cm.tmp0, cm.tmp1)
	c[1].Add(cm.tmp2, cm.tmp3)
}
