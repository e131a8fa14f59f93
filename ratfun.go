package lcapy

import (
	"fmt"
	"math/big"

	"github.com/HotPushUpGuy420/lcapy/core"
)

// The rational-form engine rewrites a ratio of polynomials in the domain
// variable into the standard presentations.  Every output is built from
// RawQuo/RawMul/RawAdd so the shape survives: converting to partial
// fractions and printing gives partial fractions, not a recombined ratio.
// All presentations of the same function are value-equal; only the
// structure differs.

// ratParts is a rational function split into dense coefficient slices
// (lowest degree first, possibly symbolic).
type ratParts struct {
	num, den []core.Expr
	v        string
}

func (e Expr) ratParts() (ratParts, error) {
	v := e.domain.VarName()
	if v == "" {
		return ratParts{}, fmt.Errorf("%w: constant-domain expression", ErrNotRational)
	}
	n, d := core.NumerDenom(e.expr.Simplify())
	nc, ok := core.Coeffs(n, v)
	if !ok {
		return ratParts{}, fmt.Errorf("%w: numerator %s", ErrNotRational, n)
	}
	dc, ok := core.Coeffs(d, v)
	if !ok {
		return ratParts{}, fmt.Errorf("%w: denominator %s", ErrNotRational, d)
	}
	return ratParts{num: coeffDense(nc), den: coeffDense(dc), v: v}, nil
}

func (r ratParts) numExpr() core.Expr { return core.PolyExpr(r.num, r.v) }
func (r ratParts) denExpr() core.Expr { return core.PolyExpr(r.den, r.v) }

// rewrap keeps domain, kind and assumptions while replacing the kernel
// expression.
func (e Expr) rewrap(out core.Expr) Expr {
	e.expr = out
	return e
}

// General is the expanded-numerator over expanded-denominator form.
func (e Expr) General() (Expr, error) {
	r, err := e.ratParts()
	if err != nil {
		return Expr{}, err
	}
	return e.rewrap(core.RawQuo(r.numExpr(), r.denExpr())), nil
}

// Canonical normalises the denominator to monic.  With factorConst the
// numerator is made monic too and the overall gain hoisted in front.
func (e Expr) Canonical(factorConst bool) (Expr, error) {
	r, err := e.ratParts()
	if err != nil {
		return Expr{}, err
	}
	dLead := r.den[len(r.den)-1]
	den := scalePoly(r.den, dLead)

	if factorConst {
		nLead := r.num[len(r.num)-1]
		num := scalePoly(r.num, nLead)
		gain := core.QuoOf(nLead, dLead)
		body := core.RawQuo(core.PolyExpr(num, r.v), core.PolyExpr(den, r.v))
		if n, ok := gain.Eval(); ok && n.IsOne() {
			return e.rewrap(body), nil
		}
		return e.rewrap(core.RawMul(gain, body)), nil
	}
	num := scalePoly(r.num, dLead)
	return e.rewrap(core.RawQuo(core.PolyExpr(num, r.v), core.PolyExpr(den, r.v))), nil
}

func scalePoly(p []core.Expr, by core.Expr) []core.Expr {
	out := make([]core.Expr, len(p))
	for i, c := range p {
		out[i] = core.QuoOf(c, by).Simplify()
	}
	return out
}

// Standard splits off the polynomial part: Q(v) + R(v)/D(v) with
// deg R < deg D.
func (e Expr) Standard() (Expr, error) {
	r, err := e.ratParts()
	if err != nil {
		return Expr{}, err
	}
	quo, rem := core.PolyDiv(r.num, r.den)
	terms := []core.Expr{}
	if q := core.PolyExpr(quo, r.v); !isZeroExpr(q) {
		terms = append(terms, q)
	}
	if rm := core.PolyExpr(rem, r.v); !isZeroExpr(rm) {
		terms = append(terms, core.RawQuo(rm, r.denExpr()))
	}
	if len(terms) == 0 {
		return e.rewrap(core.N(0)), nil
	}
	return e.rewrap(core.RawAdd(terms...)), nil
}

// ExpandCanonical writes each numerator term of the canonical form over
// the common monic denominator.
func (e Expr) ExpandCanonical() (Expr, error) {
	r, err := e.ratParts()
	if err != nil {
		return Expr{}, err
	}
	dLead := r.den[len(r.den)-1]
	den := core.PolyExpr(scalePoly(r.den, dLead), r.v)
	num := scalePoly(r.num, dLead)
	terms := []core.Expr{}
	for d := len(num) - 1; d >= 0; d-- {
		c := num[d].Simplify()
		if isZeroExpr(c) {
			continue
		}
		var mono core.Expr
		switch d {
		case 0:
			mono = c
		case 1:
			mono = core.MulOf(c, core.S(r.v))
		default:
			mono = core.MulOf(c, core.PowOf(core.S(r.v), core.N(int64(d))))
		}
		terms = append(terms, core.RawQuo(mono, den))
	}
	if len(terms) == 0 {
		return e.rewrap(core.N(0)), nil
	}
	return e.rewrap(core.RawAdd(terms...)), nil
}

// PoleZero is a root with its multiplicity, wrapped as a constant-domain
// expression.
type PoleZero struct {
	Value Expr
	Mult  int
}

func (e Expr) numericParts() (num, den []*core.Num, v string, err error) {
	r, err2 := e.ratParts()
	if err2 != nil {
		return nil, nil, "", err2
	}
	num, ok := core.NumPoly(r.num)
	if !ok {
		return nil, nil, "", fmt.Errorf("%w: symbolic numerator coefficients", ErrNotRational)
	}
	den, ok = core.NumPoly(r.den)
	if !ok {
		return nil, nil, "", fmt.Errorf("%w: symbolic denominator coefficients", ErrNotRational)
	}
	return num, den, r.v, nil
}

func rootList(p []*core.Num) ([]core.Root, error) {
	roots, ok := core.RootsOf(p)
	if !ok {
		return nil, fmt.Errorf("%w: could not find all roots", ErrNotRational)
	}
	total := 0
	for _, r := range roots {
		total += r.Mult
	}
	if total != len(p)-1 {
		return nil, fmt.Errorf("%w: incomplete root set", ErrNotRational)
	}
	return roots, nil
}

// Poles returns the denominator roots with multiplicities.
func (e Expr) Poles() ([]PoleZero, error) {
	_, den, _, err := e.numericParts()
	if err != nil {
		return nil, err
	}
	return wrapRoots(den)
}

// Zeros returns the numerator roots with multiplicities.
func (e Expr) Zeros() ([]PoleZero, error) {
	num, _, _, err := e.numericParts()
	if err != nil {
		return nil, err
	}
	return wrapRoots(num)
}

func wrapRoots(p []*core.Num) ([]PoleZero, error) {
	roots, err := rootList(p)
	if err != nil {
		return nil, err
	}
	out := make([]PoleZero, len(roots))
	for i, r := range roots {
		out[i] = PoleZero{
			Value: Expr{expr: r.Value, domain: DomainConst},
			Mult:  r.Mult,
		}
	}
	return out, nil
}

// ZPK is the zero-pole-gain factored form:
// K * prod(v - z) / prod(v - p).
func (e Expr) ZPK() (Expr, error) {
	num, den, v, err := e.numericParts()
	if err != nil {
		return Expr{}, err
	}
	zeros, err := rootList(num)
	if err != nil {
		return Expr{}, err
	}
	poles, err := rootList(den)
	if err != nil {
		return Expr{}, err
	}
	gain := core.MulOf(num[len(num)-1], core.PowOf(den[len(den)-1], core.N(-1)))

	build := func(roots []core.Root) core.Expr {
		factors := []core.Expr{}
		for _, r := range roots {
			lin := core.AddOf(core.S(v), core.MulOf(core.N(-1), r.Value))
			if r.Mult == 1 {
				factors = append(factors, lin)
			} else {
				factors = append(factors, core.RawPow(lin, core.N(int64(r.Mult))))
			}
		}
		if len(factors) == 0 {
			return core.N(1)
		}
		return core.RawMul(factors...)
	}

	body := core.RawQuo(build(zeros), build(poles))
	if g, ok := gain.Eval(); ok && g.IsOne() {
		return e.rewrap(body), nil
	}
	return e.rewrap(core.RawMul(gain, body)), nil
}

// Factored is ZPK under its other name.
func (e Expr) Factored() (Expr, error) { return e.ZPK() }

// TimeConst is the time-constant form K * prod(1 - v/z) / prod(1 - v/p),
// with roots at the origin kept as bare factors of v.
func (e Expr) TimeConst() (Expr, error) {
	num, den, v, err := e.numericParts()
	if err != nil {
		return Expr{}, err
	}
	zeros, err := rootList(num)
	if err != nil {
		return Expr{}, err
	}
	poles, err := rootList(den)
	if err != nil {
		return Expr{}, err
	}
	gain := core.MulOf(num[len(num)-1], core.PowOf(den[len(den)-1], core.N(-1))).(*core.Num)

	build := func(roots []core.Root, invertGain bool) core.Expr {
		factors := []core.Expr{}
		for _, r := range roots {
			for m := 0; m < r.Mult; m++ {
				if r.Value.IsZero() {
					factors = append(factors, core.S(v))
					continue
				}
				// 1 - v/z contributes a factor of -z to the gain.
				scale := core.MulOf(core.N(-1), r.Value).(*core.Num)
				if invertGain {
					gain = core.MulOf(gain, core.PowOf(scale, core.N(-1))).(*core.Num)
				} else {
					gain = core.MulOf(gain, scale).(*core.Num)
				}
				factors = append(factors, core.RawAdd(core.N(1),
					core.MulOf(core.N(-1), core.PowOf(r.Value, core.N(-1)), core.S(v))))
			}
		}
		if len(factors) == 0 {
			return core.N(1)
		}
		return core.RawMul(factors...)
	}

	numBody := build(zeros, false)
	denBody := build(poles, true)
	body := core.RawQuo(numBody, denBody)
	if gain.IsOne() {
		return e.rewrap(body), nil
	}
	return e.rewrap(core.RawMul(gain, body)), nil
}

// PartFrac expands into partial fractions.  With combineConjugates,
// simple conjugate pole pairs merge into real second-order terms.
func (e Expr) PartFrac(combineConjugates bool) (Expr, error) {
	num, den, v, err := e.numericParts()
	if err != nil {
		return Expr{}, err
	}
	quo, rem := core.PolyDiv(numsToExprs(num), numsToExprs(den))
	terms := []core.Expr{}
	if q := core.PolyExpr(quo, v); !isZeroExpr(q) {
		terms = append(terms, q)
	}
	rnum, ok := core.NumPoly(rem)
	if !ok {
		return Expr{}, fmt.Errorf("%w: remainder", ErrNotRational)
	}
	if !(len(rnum) == 1 && rnum[0].IsZero()) {
		roots, err := rootList(den)
		if err != nil {
			return Expr{}, err
		}
		used := map[int]bool{}
		for i, root := range roots {
			if used[i] {
				continue
			}
			used[i] = true
			p := root.Value
			dm := deflateAll(den, roots, i)
			rs, err := residuesAt(rnum, dm, p, root.Mult, v)
			if err != nil {
				return Expr{}, fmt.Errorf("%w: %v", ErrNotRational, err)
			}

			if combineConjugates && !p.IsReal() && root.Mult == 1 {
				ci := findConjugate(roots, used, p, 1)
				if ci >= 0 {
					used[ci] = true
					terms = append(terms, conjugateQuadTerm(rs[1], p, v))
					continue
				}
			}
			for k := 1; k <= root.Mult; k++ {
				if rs[k].IsZero() {
					continue
				}
				lin := core.AddOf(core.S(v), core.MulOf(core.N(-1), p))
				var d core.Expr = lin
				if k > 1 {
					d = core.RawPow(lin, core.N(int64(k)))
				}
				terms = append(terms, core.RawQuo(rs[k], d))
			}
		}
	}
	if len(terms) == 0 {
		return e.rewrap(core.N(0)), nil
	}
	return e.rewrap(core.RawAdd(terms...)), nil
}

// conjugateQuadTerm merges r/(v-p) + conj(r)/(v-conj(p)) into
// (2 re(r) v - 2 (re(r) re(p) + im(r) im(p))) / (v^2 - 2 re(p) v + |p|^2).
func conjugateQuadTerm(r, p *core.Num, v string) core.Expr {
	two := big.NewRat(2, 1)
	reR, imR := r.Re(), r.Im()
	reP, imP := p.Re(), p.Im()

	c1 := new(big.Rat).Mul(two, reR)
	c0 := new(big.Rat).Add(new(big.Rat).Mul(reR, reP), new(big.Rat).Mul(imR, imP))
	c0.Mul(c0, two)
	c0.Neg(c0)

	d1 := new(big.Rat).Mul(two, reP)
	d1.Neg(d1)
	d0 := new(big.Rat).Add(new(big.Rat).Mul(reP, reP), new(big.Rat).Mul(imP, imP))

	numPoly := []core.Expr{core.Cmplx(c0, new(big.Rat)), core.Cmplx(c1, new(big.Rat))}
	denPoly := []core.Expr{core.Cmplx(d0, new(big.Rat)), core.Cmplx(d1, new(big.Rat)), core.N(1)}
	return core.RawQuo(core.PolyExpr(numPoly, v), core.PolyExpr(denPoly, v))
}

// NumerCoeffs and DenomCoeffs list the polynomial coefficients, highest
// degree first.
func (e Expr) NumerCoeffs() ([]Expr, error) {
	r, err := e.ratParts()
	if err != nil {
		return nil, err
	}
	return wrapCoeffs(r.num), nil
}

func (e Expr) DenomCoeffs() ([]Expr, error) {
	r, err := e.ratParts()
	if err != nil {
		return nil, err
	}
	return wrapCoeffs(r.den), nil
}

// NormCoeffs lists the coefficients scaled so the leading denominator
// coefficient is one.
func (e Expr) NormCoeffs() (num, den []Expr, err error) {
	r, err := e.ratParts()
	if err != nil {
		return nil, nil, err
	}
	lead := r.den[len(r.den)-1]
	return wrapCoeffs(scalePoly(r.num, lead)), wrapCoeffs(scalePoly(r.den, lead)), nil
}

func wrapCoeffs(p []core.Expr) []Expr {
	out := make([]Expr, len(p))
	for i := range p {
		out[i] = Expr{expr: p[len(p)-1-i].Simplify(), domain: DomainConst}
	}
	return out
}
