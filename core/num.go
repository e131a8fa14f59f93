package core

import (
	"fmt"
	"math"
	"math/big"
)

// Num is an exact Gaussian rational: re + im*j with both parts arbitrary
// precision rationals.  Circuit values entered as floats are converted to
// exact rationals so that repeated form conversions cannot accumulate
// floating point drift.
type Num struct{ re, im *big.Rat }

func N(n int64) *Num { return &Num{re: new(big.Rat).SetInt64(n), im: new(big.Rat)} }

func F(p, q int64) *Num {
	if q == 0 {
		panic("core: denominator is zero")
	}
	return &Num{re: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q)), im: new(big.Rat)}
}

func NFloat(f float64) *Num {
	r := new(big.Rat).SetFloat64(f)
	if r == nil {
		panic(fmt.Sprintf("core: cannot represent %v as a rational", f))
	}
	return &Num{re: r, im: new(big.Rat)}
}

// Cmplx builds a complex rational from real and imaginary parts.
func Cmplx(re, im *big.Rat) *Num {
	return &Num{re: new(big.Rat).Set(re), im: new(big.Rat).Set(im)}
}

// J is the imaginary unit.
func J() *Num { return &Num{re: new(big.Rat), im: new(big.Rat).SetInt64(1)} }

// Jn returns n*j.
func Jn(n int64) *Num { return &Num{re: new(big.Rat), im: new(big.Rat).SetInt64(n)} }

func ratFromFloat(f float64) *big.Rat {
	r := new(big.Rat).SetFloat64(f)
	if r == nil {
		r = new(big.Rat)
	}
	return r
}

func realNum(r *big.Rat) *Num { return &Num{re: r, im: new(big.Rat)} }

// NComplex converts a complex128 to an exact (binary) rational pair.
func NComplex(c complex128) *Num {
	return &Num{re: ratFromFloat(real(c)), im: ratFromFloat(imag(c))}
}

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return N(0) }
func (n *Num) Eval() (*Num, bool)    { return n, true }

func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.re.Cmp(o.re) == 0 && n.im.Cmp(o.im) == 0
}

func (n *Num) IsZero() bool    { return n.re.Sign() == 0 && n.im.Sign() == 0 }
func (n *Num) IsOne() bool     { return n.im.Sign() == 0 && n.re.Cmp(ratOne) == 0 }
func (n *Num) IsNegOne() bool  { return n.im.Sign() == 0 && n.re.Cmp(ratNegOne) == 0 }
func (n *Num) IsReal() bool    { return n.im.Sign() == 0 }
func (n *Num) IsImag() bool    { return n.re.Sign() == 0 && n.im.Sign() != 0 }
func (n *Num) IsInteger() bool { return n.im.Sign() == 0 && n.re.IsInt() }

// IsPositive and IsNegative only make sense for real values; a complex
// value is neither.
func (n *Num) IsPositive() bool { return n.im.Sign() == 0 && n.re.Sign() > 0 }
func (n *Num) IsNegative() bool { return n.im.Sign() == 0 && n.re.Sign() < 0 }

func (n *Num) Re() *big.Rat { return new(big.Rat).Set(n.re) }
func (n *Num) Im() *big.Rat { return new(big.Rat).Set(n.im) }

// RealPart and ImagPart return the components as real numbers.
func (n *Num) RealPart() *Num { return realNum(n.Re()) }
func (n *Num) ImagPart() *Num { return realNum(n.Im()) }

func (n *Num) Float64() float64 { f, _ := n.re.Float64(); return f }

func (n *Num) Complex128() complex128 {
	re, _ := n.re.Float64()
	im, _ := n.im.Float64()
	return complex(re, im)
}

var (
	ratOne    = new(big.Rat).SetInt64(1)
	ratNegOne = new(big.Rat).SetInt64(-1)
)

func ratString(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return r.RatString()
}

func imagString(r *big.Rat) string {
	if r.Cmp(ratOne) == 0 {
		return "j"
	}
	if r.Cmp(ratNegOne) == 0 {
		return "-j"
	}
	if r.IsInt() {
		return r.Num().String() + "*j"
	}
	return "(" + r.RatString() + ")*j"
}

func (n *Num) String() string {
	if n.im.Sign() == 0 {
		return ratString(n.re)
	}
	if n.re.Sign() == 0 {
		return imagString(n.im)
	}
	imPart := imagString(new(big.Rat).Abs(n.im))
	sign := "+"
	if n.im.Sign() < 0 {
		sign = "-"
	}
	return fmt.Sprintf("(%s %s %s)", ratString(n.re), sign, imPart)
}

func (n *Num) LaTeX() string {
	latexRat := func(r *big.Rat) string {
		if r.IsInt() {
			return r.Num().String()
		}
		sign := ""
		v := new(big.Rat).Set(r)
		if v.Sign() < 0 {
			sign = "-"
			v.Neg(v)
		}
		return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
	}
	if n.im.Sign() == 0 {
		return latexRat(n.re)
	}
	if n.re.Sign() == 0 {
		if n.im.Cmp(ratOne) == 0 {
			return "j"
		}
		if n.im.Cmp(ratNegOne) == 0 {
			return "-j"
		}
		return latexRat(n.im) + " j"
	}
	sign := "+"
	im := new(big.Rat).Abs(n.im)
	if n.im.Sign() < 0 {
		sign = "-"
	}
	return fmt.Sprintf("\\left(%s %s %s j\\right)", latexRat(n.re), sign, latexRat(im))
}

// Exact complex rational arithmetic.

func numAdd(a, b *Num) *Num {
	return &Num{re: new(big.Rat).Add(a.re, b.re), im: new(big.Rat).Add(a.im, b.im)}
}

func numSub(a, b *Num) *Num {
	return &Num{re: new(big.Rat).Sub(a.re, b.re), im: new(big.Rat).Sub(a.im, b.im)}
}

func numMul(a, b *Num) *Num {
	ac := new(big.Rat).Mul(a.re, b.re)
	bd := new(big.Rat).Mul(a.im, b.im)
	ad := new(big.Rat).Mul(a.re, b.im)
	bc := new(big.Rat).Mul(a.im, b.re)
	return &Num{re: ac.Sub(ac, bd), im: ad.Add(ad, bc)}
}

func numNeg(a *Num) *Num {
	return &Num{re: new(big.Rat).Neg(a.re), im: new(big.Rat).Neg(a.im)}
}

func numConj(a *Num) *Num {
	return &Num{re: new(big.Rat).Set(a.re), im: new(big.Rat).Neg(a.im)}
}

// numAbs2 returns |a|^2 as a real rational.
func numAbs2(a *Num) *big.Rat {
	rr := new(big.Rat).Mul(a.re, a.re)
	ii := new(big.Rat).Mul(a.im, a.im)
	return rr.Add(rr, ii)
}

func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("core: division by zero")
	}
	m := numAbs2(a)
	return &Num{
		re: new(big.Rat).Quo(a.re, m),
		im: new(big.Rat).Quo(new(big.Rat).Neg(a.im), m),
	}
}

func numDiv(a, b *Num) *Num { return numMul(a, numRecip(b)) }

func numAbs(a *Num) *Num {
	if a.im.Sign() == 0 {
		return &Num{re: new(big.Rat).Abs(a.re), im: new(big.Rat)}
	}
	if sq, ok := ratSqrt(numAbs2(a)); ok {
		return &Num{re: sq, im: new(big.Rat)}
	}
	m, _ := numAbs2(a).Float64()
	return NFloat(math.Sqrt(m))
}

// numCmp compares real values; complex values have no ordering.
func numCmp(a, b *Num) int { return a.re.Cmp(b.re) }

func numPowInt(a *Num, e int64) *Num {
	if e == 0 {
		return N(1)
	}
	neg := e < 0
	if neg {
		e = -e
	}
	out := N(1)
	for i := int64(0); i < e; i++ {
		out = numMul(out, a)
	}
	if neg {
		out = numRecip(out)
	}
	return out
}

// ratSqrt returns the exact square root of a non-negative rational when both
// the numerator and denominator are perfect squares.
func ratSqrt(r *big.Rat) (*big.Rat, bool) {
	if r.Sign() < 0 {
		return nil, false
	}
	num := new(big.Int).Sqrt(r.Num())
	den := new(big.Int).Sqrt(r.Denom())
	if new(big.Int).Mul(num, num).Cmp(r.Num()) != 0 {
		return nil, false
	}
	if new(big.Int).Mul(den, den).Cmp(r.Denom()) != 0 {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}

// numSqrt returns an exact square root when one exists, otherwise a float
// approximation.  The principal root is returned for negative reals.
func numSqrt(a *Num) *Num {
	if a.im.Sign() == 0 {
		if a.re.Sign() >= 0 {
			if sq, ok := ratSqrt(a.re); ok {
				return &Num{re: sq, im: new(big.Rat)}
			}
			f, _ := a.re.Float64()
			return NFloat(math.Sqrt(f))
		}
		pos := new(big.Rat).Neg(a.re)
		if sq, ok := ratSqrt(pos); ok {
			return &Num{re: new(big.Rat), im: sq}
		}
		f, _ := pos.Float64()
		return &Num{re: new(big.Rat), im: ratFromFloat(math.Sqrt(f))}
	}
	c := a.Complex128()
	re := math.Sqrt((cmplxAbs(c) + real(c)) / 2)
	im := math.Sqrt((cmplxAbs(c) - real(c)) / 2)
	if imag(c) < 0 {
		im = -im
	}
	return &Num{re: ratFromFloat(re), im: ratFromFloat(im)}
}

func cmplxAbs(c complex128) float64 { return math.Hypot(real(c), imag(c)) }
