package lcapy

import (
	"fmt"

	"github.com/HotPushUpGuy420/lcapy/core"
)

// The Laplace transform here is unilateral with the lower limit at 0, not
// 0-.  An impulse at the origin therefore contributes half its weight:
// delta(t) transforms to 1/2.

func sVar() core.Expr { return core.S("s") }
func tVar() core.Expr { return core.S("t") }

func factorial(n int) *core.Num {
	out := core.N(1)
	f := out
	for i := 2; i <= n; i++ {
		f = core.MulOf(f, core.N(int64(i))).(*core.Num)
		out = f
	}
	return out
}

// linearArg decomposes arg = c1*v + c0 with both coefficients free of v.
func linearArg(arg core.Expr, v string) (c1, c0 core.Expr, ok bool) {
	coeffs, good := core.Coeffs(arg, v)
	if !good {
		return nil, nil, false
	}
	for d := range coeffs {
		if d > 1 {
			return nil, nil, false
		}
	}
	c1 = coeffs[1]
	if c1 == nil {
		c1 = core.N(0)
	}
	c0 = coeffs[0]
	if c0 == nil {
		c0 = core.N(0)
	}
	return c1, c0, true
}

// timeTerm is one additive term of a time function, classified for the
// transform table: coeff * t^n * exp(a*t) * trig(w*t), possibly gated by
// u(t) (dropped under the unilateral transform) or an impulse.
type timeTerm struct {
	coeff      core.Expr
	n          int       // power of t
	expCoeff   core.Expr // a in exp(a*t); nil if none
	trigName   string    // "sin", "cos" or ""
	trigOmega  core.Expr
	deltaOrder int  // -1 when no impulse
	hasStep    bool // a u(t) factor was present
}

func classifyTimeTerm(t core.Expr, v string) (timeTerm, error) {
	out := timeTerm{coeff: core.N(1), deltaOrder: -1}
	factors := []core.Expr{t}
	if m, ok := t.(*core.Mul); ok {
		factors = m.Factors()
	}
	for _, f := range factors {
		if !core.FreeSymbols(f)[v] {
			out.coeff = core.MulOf(out.coeff, f)
			continue
		}
		switch g := f.(type) {
		case *core.Sym:
			out.n++
		case *core.Pow:
			b, isSym := g.Base().(*core.Sym)
			e, isNum := g.Exp().(*core.Num)
			if !isSym || b.Name() != v || !isNum || !e.IsInteger() || !e.IsPositive() {
				return out, fmt.Errorf("%w: factor %s", ErrTransformNotFound, f)
			}
			out.n += int(e.Re().Num().Int64())
		case *core.Func:
			c1, c0, ok := linearArg(g.Args()[0], v)
			if !ok {
				return out, fmt.Errorf("%w: argument of %s not linear in %s",
					ErrTransformNotFound, g.Name(), v)
			}
			switch name := g.Name(); {
			case name == "exp":
				if !isZeroExpr(c0) {
					out.coeff = core.MulOf(out.coeff, core.ExpOf(c0))
				}
				if out.expCoeff == nil {
					out.expCoeff = c1
				} else {
					out.expCoeff = core.AddOf(out.expCoeff, c1)
				}
			case name == "sin" || name == "cos":
				if out.trigName != "" || !isZeroExpr(c0) {
					return out, fmt.Errorf("%w: %s", ErrTransformNotFound, t)
				}
				out.trigName = name
				out.trigOmega = c1
			case name == "u":
				if !isZeroExpr(c0) {
					return out, fmt.Errorf("%w: shifted step %s", ErrTransformNotFound, f)
				}
				// Implicit under the unilateral Laplace transform; the
				// Fourier table does look at it.
				out.hasStep = true
			case isImpulseName(name):
				if !isZeroExpr(c0) {
					return out, fmt.Errorf("%w: shifted impulse %s", ErrTransformNotFound, f)
				}
				out.deltaOrder = impulseOrder(name)
			default:
				return out, fmt.Errorf("%w: function %s", ErrTransformNotFound, name)
			}
		default:
			return out, fmt.Errorf("%w: factor %s", ErrTransformNotFound, f)
		}
	}
	return out, nil
}

func isZeroExpr(e core.Expr) bool {
	n, ok := e.Simplify().Eval()
	return ok && n.IsZero()
}

func impulseOrder(name string) int {
	o := 0
	for _, c := range name {
		if c == '\'' {
			o++
		}
	}
	return o
}

// forwardLaplace transforms a time expression term by term.
func forwardLaplace(e core.Expr) (core.Expr, error) {
	expanded := core.Expand(e).Simplify()
	terms := []core.Expr{expanded}
	if a, ok := expanded.(*core.Add); ok {
		terms = a.Terms()
	}
	out := []core.Expr{}
	for _, t := range terms {
		lt, err := laplaceTerm(t)
		if err != nil {
			return nil, err
		}
		out = append(out, lt)
	}
	if len(out) == 1 {
		return out[0], nil
	}
	return core.RawAdd(out...), nil
}

func laplaceTerm(t core.Expr) (core.Expr, error) {
	tt, err := classifyTimeTerm(t, "t")
	if err != nil {
		return nil, err
	}
	s := sVar()

	if tt.deltaOrder >= 0 {
		if tt.n > 0 || tt.trigName != "" || tt.expCoeff != nil {
			return nil, fmt.Errorf("%w: impulse products in %s", ErrTransformNotFound, t)
		}
		// Lower limit 0 catches only half the impulse.
		weight := core.MulOf(tt.coeff, core.F(1, 2))
		if tt.deltaOrder == 0 {
			return weight, nil
		}
		return core.MulOf(weight, core.PowOf(s, core.N(int64(tt.deltaOrder)))), nil
	}

	// Shift s by the exponential coefficient: L{e^{at} f(t)} = F(s - a).
	sShift := s
	if tt.expCoeff != nil {
		sShift = core.AddOf(s, core.MulOf(core.N(-1), tt.expCoeff))
	}

	if tt.trigName != "" {
		if tt.n > 0 {
			return nil, fmt.Errorf("%w: %s", ErrTransformNotFound, t)
		}
		w := tt.trigOmega
		den := core.AddOf(core.MulOf(sShift, sShift), core.MulOf(w, w))
		var num core.Expr
		if tt.trigName == "sin" {
			num = core.MulOf(tt.coeff, w)
		} else {
			num = core.MulOf(tt.coeff, sShift)
		}
		return core.QuoOf(num, den), nil
	}

	// t^n e^{at}: n! / (s - a)^{n+1}
	num := core.MulOf(tt.coeff, factorial(tt.n))
	den := core.PowOf(sShift, core.N(int64(tt.n+1)))
	return core.QuoOf(num, den), nil
}

// ---------------------------------------------------------------------------
// Inverse Laplace

// polyRatio extracts numeric polynomial coefficients of num/den in v.
func polyRatio(e core.Expr, v string) (num, den []*core.Num, err error) {
	n, d := core.NumerDenom(e.Simplify())
	nc, ok := core.Coeffs(n, v)
	if !ok {
		return nil, nil, fmt.Errorf("%w: numerator %s", ErrNotRational, n)
	}
	dc, ok := core.Coeffs(d, v)
	if !ok {
		return nil, nil, fmt.Errorf("%w: denominator %s", ErrNotRational, d)
	}
	num, ok = core.NumPoly(coeffDense(nc))
	if !ok {
		return nil, nil, fmt.Errorf("%w: symbolic coefficients in %s", ErrNotRational, n)
	}
	den, ok = core.NumPoly(coeffDense(dc))
	if !ok {
		return nil, nil, fmt.Errorf("%w: symbolic coefficients in %s", ErrNotRational, d)
	}
	return num, den, nil
}

func coeffDense(m map[int]core.Expr) []core.Expr {
	max := 0
	for d := range m {
		if d > max {
			max = d
		}
	}
	out := make([]core.Expr, max+1)
	for i := range out {
		out[i] = core.N(0)
	}
	for d, c := range m {
		out[d] = c
	}
	return out
}

func numsToExprs(p []*core.Num) []core.Expr {
	out := make([]core.Expr, len(p))
	for i, c := range p {
		out[i] = c
	}
	return out
}

// residuesAt computes the residues r_1..r_m of R/Dm around a pole p of
// multiplicity m, where Dm is the denominator with the pole factored out.
// r_k multiplies t^{k-1} e^{pt} / (k-1)! in the time response.
func residuesAt(rpoly, dm []*core.Num, p *core.Num, m int, v string) ([]*core.Num, error) {
	g := core.RawQuo(core.NumPolyExpr(rpoly, v), core.NumPolyExpr(dm, v))
	out := make([]*core.Num, m+1)
	for k := m; k >= 1; k-- {
		d := core.DiffN(g, v, m-k)
		val, ok := d.Sub(v, p).Simplify().Eval()
		if !ok {
			return nil, fmt.Errorf("%w: residue at pole %s", ErrTransformNotFound, p)
		}
		out[k] = core.MulOf(val, core.PowOf(factorial(m-k), core.N(-1))).(*core.Num)
	}
	return out, nil
}

// inverseResult carries the pieces of an inverse transform before the
// causality wrap is chosen.
type inverseResult struct {
	impulses  []core.Expr // delta terms, already causal
	transient []core.Expr // terms valid for t >= 0
}

// inverseLaplaceRational inverts a rational function of s by residues.
// Conjugate pole pairs recombine into real damped sinusoids.
func inverseLaplaceRational(e core.Expr) (inverseResult, error) {
	var res inverseResult
	num, den, err := polyRatio(e, "s")
	if err != nil {
		return res, err
	}
	quo, rem := core.PolyDiv(numsToExprs(num), numsToExprs(den))
	for d, c := range quo {
		cs := c.Simplify()
		if n, ok := cs.Eval(); !ok || n.IsZero() {
			continue
		}
		res.impulses = append(res.impulses,
			core.MulOf(cs, core.DeltaN(d, tVar())))
	}
	rnum, ok := core.NumPoly(rem)
	if !ok {
		return res, fmt.Errorf("%w: remainder %v", ErrTransformNotFound, rem)
	}
	if len(rnum) == 1 && rnum[0].IsZero() {
		return res, nil
	}

	roots, complete := core.RootsOf(den)
	if !complete {
		return res, fmt.Errorf("%w: could not factor denominator", ErrTransformNotFound)
	}
	total := 0
	for _, r := range roots {
		total += r.Mult
	}
	if total != len(den)-1 {
		return res, fmt.Errorf("%w: incomplete root set for denominator", ErrTransformNotFound)
	}

	used := map[int]bool{}
	for i, root := range roots {
		if used[i] {
			continue
		}
		used[i] = true
		p := root.Value
		dm := deflateAll(den, roots, i)
		rs, err := residuesAt(rnum, dm, p, root.Mult, "s")
		if err != nil {
			return res, err
		}

		if p.IsReal() {
			for k := 1; k <= root.Mult; k++ {
				if rs[k].IsZero() {
					continue
				}
				res.transient = append(res.transient, realPoleTerm(rs[k], p, k))
			}
			continue
		}

		// Find the conjugate partner and emit real cosine/sine terms.
		ci := findConjugate(roots, used, p, root.Mult)
		if ci < 0 {
			return res, fmt.Errorf("%w: unpaired complex pole %s", ErrTransformNotFound, p)
		}
		used[ci] = true
		for k := 1; k <= root.Mult; k++ {
			if rs[k].IsZero() {
				continue
			}
			res.transient = append(res.transient, conjugatePairTerms(rs[k], p, k)...)
		}
	}
	return res, nil
}

// deflateAll divides the denominator by (s - p)^mult for root index i.
func deflateAll(den []*core.Num, roots []core.Root, i int) []*core.Num {
	dm := den
	for k := 0; k < roots[i].Mult; k++ {
		dm = numPolyDeflateNum(dm, roots[i].Value)
	}
	return dm
}

// numPolyDeflateNum is synthetic division by (s - r).
func numPolyDeflateNum(p []*core.Num, r *core.Num) []*core.Num {
	n := len(p) - 1
	out := make([]*core.Num, n)
	carry := p[n]
	for i := n - 1; i >= 0; i-- {
		out[i] = carry
		carry = core.AddOf(p[i], core.MulOf(carry, r)).(*core.Num)
	}
	return out
}

func findConjugate(roots []core.Root, used map[int]bool, p *core.Num, mult int) int {
	conj := core.Conj(p).(*core.Num)
	for i, r := range roots {
		if used[i] || r.Mult != mult {
			continue
		}
		if r.Value.Equal(conj) {
			return i
		}
	}
	return -1
}

// realPoleTerm is r * t^{k-1}/(k-1)! * e^{pt}.
func realPoleTerm(r, p *core.Num, k int) core.Expr {
	factors := []core.Expr{r}
	if k > 1 {
		factors = append(factors,
			core.PowOf(factorial(k-1), core.N(-1)),
			core.PowOf(tVar(), core.N(int64(k-1))))
	}
	if !p.IsZero() {
		factors = append(factors, core.ExpOf(core.MulOf(p, tVar())))
	}
	return core.MulOf(factors...)
}

// conjugatePairTerms merges the r/(s-p)^k term with its conjugate into
// 2 t^{k-1}/(k-1)! e^{sigma t} (re(r) cos(omega t) - im(r) sin(omega t)).
func conjugatePairTerms(r, p *core.Num, k int) []core.Expr {
	sigma := p.RealPart()
	omega := p.ImagPart()
	rRe := r.RealPart()
	rIm := r.ImagPart()

	common := []core.Expr{core.N(2)}
	if k > 1 {
		common = append(common,
			core.PowOf(factorial(k-1), core.N(-1)),
			core.PowOf(tVar(), core.N(int64(k-1))))
	}
	if !sigma.IsZero() {
		common = append(common, core.ExpOf(core.MulOf(sigma, tVar())))
	}
	wt := core.MulOf(omega, tVar())

	out := []core.Expr{}
	if !rRe.IsZero() {
		out = append(out, core.MulOf(append(append([]core.Expr{}, common...),
			rRe, core.CosOf(wt))...))
	}
	if !rIm.IsZero() {
		out = append(out, core.MulOf(append(append([]core.Expr{}, common...),
			core.N(-1), rIm, core.SinOf(wt))...))
	}
	return out
}

// inverseLaplace applies the disambiguation ladder: an explicitly causal
// request multiplies the transient by u(t); dc and ac assumptions return
// closed forms; everything else is reported as valid only for t >= 0.
func inverseLaplace(e core.Expr, o transformOpts, assume Assumptions) (core.Expr, error) {
	causal := o.causal || assume.Causal == TriTrue
	ac := o.ac || assume.AC == TriTrue
	damped := o.dampedSin || assume.DampedSin == TriTrue

	// Explicit options outrank assumptions derived from the expression,
	// and a dc reading only fits the c/s shape.  Any other spectrum with a
	// derived dc assumption (a bare constant, say) falls through to the
	// residue path, where an s-free gain inverts to a weighted impulse.
	if o.dc || (!o.causal && !o.ac && assume.DC == TriTrue) {
		if out, ok := inverseLaplaceDC(e); ok {
			return out, nil
		}
		if o.dc {
			return nil, fmt.Errorf("%w: %s is not a dc spectrum", ErrTransformNotFound, e)
		}
	}

	res, err := inverseLaplaceRational(e)
	if err != nil {
		return nil, err
	}

	transient := core.RawAdd(res.transient...)
	if damped {
		if d, ok := asDampedSin(res.transient); ok {
			transient = d
		}
	}

	switch {
	case causal:
		terms := append([]core.Expr{}, res.impulses...)
		if len(res.transient) > 0 {
			terms = append(terms, core.MulOf(transient, core.StepOf(tVar())))
		}
		return core.RawAdd(terms...), nil
	case ac:
		return core.RawAdd(append(append([]core.Expr{}, res.impulses...), transient)...), nil
	case len(res.transient) == 0:
		return core.RawAdd(res.impulses...), nil
	default:
		body := core.RawAdd(append(append([]core.Expr{}, res.impulses...), transient)...)
		return core.PiecewiseOf(body, "t"), nil
	}
}

// inverseLaplaceDC handles F(s) = c/s, the transform of a constant.  The
// second return is false when the spectrum does not have that shape.
func inverseLaplaceDC(e core.Expr) (core.Expr, bool) {
	num, den, err := polyRatio(e, "s")
	if err != nil {
		return nil, false
	}
	if len(num) == 1 && len(den) == 2 && den[0].IsZero() {
		return core.QuoOf(num[0], den[1]).Simplify(), true
	}
	return nil, false
}

// asDampedSin rewrites A e^{st} cos(wt) + B e^{st} sin(wt) as a single
// damped sine K e^{st} sin(wt + phi).
func asDampedSin(terms []core.Expr) (core.Expr, bool) {
	var aCos, bSin *core.Num
	var env, wt core.Expr
	for _, t := range terms {
		m, ok := t.(*core.Mul)
		if !ok {
			return nil, false
		}
		coeff := core.N(1)
		var trig *core.Func
		var expo core.Expr
		for _, f := range m.Factors() {
			switch g := f.(type) {
			case *core.Num:
				coeff = core.MulOf(coeff, g).(*core.Num)
			case *core.Func:
				switch g.Name() {
				case "sin", "cos":
					trig = g
				case "exp":
					expo = g
				default:
					return nil, false
				}
			default:
				return nil, false
			}
		}
		if trig == nil {
			return nil, false
		}
		if wt == nil {
			wt = trig.Args()[0]
			env = expo
		} else if !wt.Equal(trig.Args()[0]) {
			return nil, false
		}
		if trig.Name() == "cos" {
			aCos = coeff
		} else {
			bSin = coeff
		}
	}
	if aCos == nil && bSin == nil {
		return nil, false
	}
	if aCos == nil {
		aCos = core.N(0)
	}
	if bSin == nil {
		bSin = core.N(0)
	}
	k := core.SqrtOf(core.AddOf(core.MulOf(aCos, aCos), core.MulOf(bSin, bSin)))
	phi := core.Atan2Of(aCos, bSin)
	factors := []core.Expr{k}
	if env != nil {
		factors = append(factors, env)
	}
	factors = append(factors, core.SinOf(core.AddOf(wt, phi)))
	return core.RawMul(factors...), true
}
