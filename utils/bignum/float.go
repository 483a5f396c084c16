// Package bignum provides arbitrary-precision arithmetic helpers over
// [big.Float] and [big.Int], including a complex type used by the
// high-precision encoder.
package bignum

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
)

const pi = "3.1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679821480865132823066470938446095505822317253594081284811174502841027019385211055596446229489549303819644288109756659334461284756482337867831652712019091456485669234603486104543266482133936072602491412737245870066063155881748815209209628292540917153643678925903600113305305488204665213841469519415116094330572703657595919530921861173819326117931051185480744623799627495673518857527248912279381830119491298336733624406566430860213949463952247371907021798609437027705392171762931767523846748184676694051320005681271452635608277857713427577896091736371787214684409012249534301465495853710507922796892589235420199561121290219608640344181598136297747713099605187072113499999983729780499510597317328160963185950244594553469083026425223082533446850352619311881710100031378387528865875332083814206171776691473035982534904287554687311595628638823537875937519577818577805321712268066130019278766111959092164201989380952572010654858632788659361533818279682303019520353018529689957736225994138912497217752834791315155748572424541506959508295331168617278558890750983817546374649393192550604009277016711390098488240128583616035637076601047101819429555961989467678374494482553797747268471040475346462080466842590694912933136770289891521047521620569660240580381501935112533824300355876402474964732639141992726042699227967823547816360093417216412199245863150302861829745557067498385054945885869269956909272107975093029553211653449872027559602364806654991198818347977535663698074265425278625518184175746728909777727938000816470600161452491921732172147723501414419735685481613611573525521334757418494684385233239073941433345477624168625189835694855620992192221842725502542568876717904946016534668049886272327917860857843838279679766814541009538837863609506800642251252051173929848960841284886269456042419652850222106611863067442786220391949450471237137869609563643719172874677646575739624138908658326459958133904780275898"

// Pi returns the value of pi with prec bits of precision.
func Pi(prec uint) *big.Float {
	pi, _ := new(big.Float).SetPrec(prec).SetString(pi)
	return pi
}

// NewFloat creates a new [big.Float] with prec bits of precision, set
// to x.
func NewFloat(x float64, prec uint) (y *big.Float) {

	if math.IsNaN(x) || math.IsInf(x, 0) {
		panic("cannot NewFloat: x cannot be NaN or Inf")
	}

	return new(big.Float).SetPrec(prec).SetFloat64(x)
}

// Round returns round(x) with the IEEE half-away-from-zero convention.
// The result has the same precision as the operand.
func Round(x *big.Float) (r *big.Float) {
	r = new(big.Float).SetPrec(x.Prec())
	half := new(big.Float).SetPrec(x.Prec()).SetFloat64(0.5)
	if x.Sign() >= 0 {
		r.Add(x, half)
	} else {
		r.Sub(x, half)
	}
	i, _ := r.Int(nil)
	return r.SetInt(i)
}

// Cos evaluates cos(x) with the iterative scheme of Johansson, An
// elementary algorithm to evaluate trigonometric functions to high
// precision, 2018. Each iteration of s = s(4-s) gains two bits.
func Cos(x *big.Float) (cosx *big.Float) {
	tmp := new(big.Float)

	t := NewFloat(0.5, x.Prec())
	half := new(big.Float).Copy(t)

	for i := uint(1); i < (x.Prec()>>1)-1; i++ {
		t.Mul(t, half)
	}

	s := new(big.Float).Mul(x, t)
	s.Mul(s, x)
	s.Mul(s, t)

	four := NewFloat(4.0, x.Prec())

	for i := uint(1); i < x.Prec()>>1; i++ {
		tmp.Sub(four, s)
		s.Mul(s, tmp)
	}

	cosx = new(big.Float).Quo(s, NewFloat(2.0, x.Prec()))
	cosx.Sub(NewFloat(1.0, x.Prec()), cosx)
	return
}

// Log returns ln(x).
func Log(x *big.Float) (lnx *big.Float) {
	return bigfloat.Log(x)
}

// Pow returns x^y.
func Pow(x, y *big.Float) (pow *big.Float) {
	return bigfloat.Pow(x, y)
}
