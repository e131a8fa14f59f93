package core

import (
	"math/big"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Root pairs a root value with its multiplicity.
type Root struct {
	Value *Num
	Mult  int
}

// NumPoly converts dense symbolic coefficients to numeric ones; fails when
// any coefficient still contains a symbol.
func NumPoly(coeffs []Expr) ([]*Num, bool) {
	out := make([]*Num, len(coeffs))
	for i, c := range coeffs {
		n, ok := c.Simplify().Eval()
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return numTrim(out), true
}

func numTrim(p []*Num) []*Num {
	n := len(p)
	for n > 1 && p[n-1].IsZero() {
		n--
	}
	return p[:n]
}

// NumPolyExpr rebuilds an expression from numeric coefficients.
func NumPolyExpr(p []*Num, name string) Expr {
	exprs := make([]Expr, len(p))
	for i, c := range p {
		exprs[i] = c
	}
	return PolyExpr(exprs, name)
}

// Horner evaluation at an exact point.
func numPolyEval(p []*Num, x *Num) *Num {
	acc := N(0)
	for i := len(p) - 1; i >= 0; i-- {
		acc = numAdd(numMul(acc, x), p[i])
	}
	return acc
}

// numPolyDeflate divides p by (x - r), assuming r is a root.  The remainder
// is discarded.
func numPolyDeflate(p []*Num, r *Num) []*Num {
	n := len(p) - 1
	out := make([]*Num, n)
	carry := p[n]
	for i := n - 1; i >= 0; i-- {
		out[i] = carry
		carry = numAdd(p[i], numMul(carry, r))
	}
	return out
}

func numPolyDeriv(p []*Num) []*Num {
	if len(p) <= 1 {
		return []*Num{N(0)}
	}
	out := make([]*Num, len(p)-1)
	for i := 1; i < len(p); i++ {
		out[i-1] = numMul(N(int64(i)), p[i])
	}
	return out
}

// RootsOf finds the roots of a numeric polynomial with multiplicities.
// Linear and quadratic factors give exact values (including exact complex
// conjugate pairs); higher degrees are deflated by rational roots first and
// the rest fall back to companion-matrix eigenvalues, so irrational roots
// come back as float approximations.  Returns false only when the
// coefficients themselves are irreducibly complex floats the eigensolver
// cannot take.
func RootsOf(coeffs []*Num) ([]Root, bool) {
	p := numTrim(coeffs)
	if len(p) <= 1 {
		return nil, true
	}
	roots := []Root{}
	addRoot := func(v *Num) {
		for i := range roots {
			if rootsClose(roots[i].Value, v) {
				roots[i].Mult++
				return
			}
		}
		roots = append(roots, Root{Value: v, Mult: 1})
	}

	// Zero roots peel off directly.
	for len(p) > 1 && p[0].IsZero() {
		addRoot(N(0))
		p = p[1:]
	}

	for len(p) > 3 {
		r, ok := rationalRoot(p)
		if !ok {
			break
		}
		addRoot(r)
		p = numTrim(numPolyDeflate(p, r))
	}

	switch len(p) {
	case 1:
		return roots, true
	case 2:
		addRoot(numNeg(numDiv(p[0], p[1])))
		return roots, true
	case 3:
		r1, r2 := quadraticRoots(p[0], p[1], p[2])
		addRoot(r1)
		addRoot(r2)
		return roots, true
	}

	// Companion-matrix fallback for what exact deflation left behind.
	for _, c := range p {
		if !c.IsReal() {
			return roots, false
		}
	}
	n := len(p) - 1
	lead := p[n]
	comp := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		comp.Set(i, n-1, -numDiv(p[i], lead).Float64())
		if i > 0 {
			comp.Set(i, i-1, 1)
		}
	}
	var eig mat.Eigen
	if !eig.Factorize(comp, mat.EigenNone) {
		return roots, false
	}
	for _, v := range eig.Values(nil) {
		addRoot(NComplex(v))
	}
	return roots, true
}

// quadraticRoots solves a2 x^2 + a1 x + a0 exactly when the discriminant
// square root is rational, otherwise in floats.
func quadraticRoots(a0, a1, a2 *Num) (*Num, *Num) {
	if a0.IsReal() && a1.IsReal() && a2.IsReal() {
		// disc = a1^2 - 4 a2 a0
		disc := new(big.Rat).Mul(a1.re, a1.re)
		four := new(big.Rat).SetInt64(4)
		t := new(big.Rat).Mul(a2.re, a0.re)
		t.Mul(t, four)
		disc.Sub(disc, t)
		twoA := new(big.Rat).Add(a2.re, a2.re)
		negB := new(big.Rat).Neg(a1.re)
		if disc.Sign() >= 0 {
			if sq, ok := ratSqrt(disc); ok {
				r1 := new(big.Rat).Add(negB, sq)
				r1.Quo(r1, twoA)
				r2 := new(big.Rat).Sub(negB, sq)
				r2.Quo(r2, twoA)
				return realNum(r1), realNum(r2)
			}
		} else {
			pos := new(big.Rat).Neg(disc)
			if sq, ok := ratSqrt(pos); ok {
				re := new(big.Rat).Quo(negB, twoA)
				im := new(big.Rat).Quo(sq, twoA)
				return Cmplx(re, im), Cmplx(re, new(big.Rat).Neg(im))
			}
		}
	}
	// Float fallback, complex-safe.
	a := a2.Complex128()
	b := a1.Complex128()
	c := a0.Complex128()
	d := cmplxSqrt(b*b - 4*a*c)
	return NComplex((-b + d) / (2 * a)), NComplex((-b - d) / (2 * a))
}

// rationalRoot searches for an exact rational root of a polynomial with
// rational real coefficients using the rational root theorem.
func rationalRoot(p []*Num) (*Num, bool) {
	for _, c := range p {
		if !c.IsReal() || !isExactRat(c.re) {
			return nil, false
		}
	}
	// Clear denominators to integer coefficients.
	lcm := big.NewInt(1)
	for _, c := range p {
		lcm.Mul(lcm, new(big.Int).Div(c.re.Denom(), new(big.Int).GCD(nil, nil, lcm, c.re.Denom())))
	}
	ints := make([]*big.Int, len(p))
	for i, c := range p {
		v := new(big.Rat).Mul(c.re, new(big.Rat).SetInt(lcm))
		ints[i] = new(big.Int).Set(v.Num())
	}
	a0 := new(big.Int).Abs(ints[0])
	an := new(big.Int).Abs(ints[len(ints)-1])
	if a0.Sign() == 0 {
		return N(0), true
	}
	for _, pd := range smallDivisors(a0) {
		for _, qd := range smallDivisors(an) {
			for _, sign := range []int64{1, -1} {
				cand := realNum(new(big.Rat).SetFrac(
					new(big.Int).Mul(pd, big.NewInt(sign)), qd))
				if numPolyEval(p, cand).IsZero() {
					return cand, true
				}
			}
		}
	}
	return nil, false
}

// isExactRat filters out float-derived rationals with huge denominators,
// which would make divisor enumeration explode.
func isExactRat(r *big.Rat) bool { return r.Denom().BitLen() <= 32 && r.Num().BitLen() <= 64 }

const maxDivisors = 64

func smallDivisors(n *big.Int) []*big.Int {
	if !n.IsInt64() {
		return []*big.Int{big.NewInt(1)}
	}
	v := n.Int64()
	if v == 0 {
		return []*big.Int{big.NewInt(1)}
	}
	out := []*big.Int{}
	for d := int64(1); d*d <= v && len(out) < maxDivisors; d++ {
		if v%d == 0 {
			out = append(out, big.NewInt(d))
			if d != v/d {
				out = append(out, big.NewInt(v/d))
			}
		}
	}
	return out
}

// rootsClose merges a candidate root into an existing one; exact values
// compare exactly, floats within tolerance.
func rootsClose(a, b *Num) bool {
	if a.Equal(b) {
		return true
	}
	ca, cb := a.Complex128(), b.Complex128()
	return scalar.EqualWithinAbsOrRel(real(ca), real(cb), 1e-9, 1e-9) &&
		scalar.EqualWithinAbsOrRel(imag(ca), imag(cb), 1e-9, 1e-9)
}

func cmplxSqrt(c complex128) complex128 { return numSqrt(NComplex(c)).Complex128() }
