package lcapy

import (
	"fmt"

	"github.com/HotPushUpGuy420/lcapy/core"
)

// Fourier transforms use the ordinary-frequency convention
// F(f) = \int f(t) e^{-j 2 pi f t} dt, so sinusoids land on impulses at
// +/- f0 and decaying causal exponentials on 1/(j 2 pi f - a).

func fVar() core.Expr { return core.S("f") }

func twoPiF() core.Expr {
	return core.MulOf(core.N(2), core.Pi(), fVar())
}

func forwardFourier(e core.Expr) (core.Expr, error) {
	expanded := core.Expand(e).Simplify()
	terms := []core.Expr{expanded}
	if a, ok := expanded.(*core.Add); ok {
		terms = a.Terms()
	}
	out := []core.Expr{}
	for _, t := range terms {
		ft, err := fourierTerm(t)
		if err != nil {
			return nil, err
		}
		out = append(out, ft)
	}
	if len(out) == 1 {
		return out[0], nil
	}
	return core.RawAdd(out...), nil
}

func fourierTerm(t core.Expr) (core.Expr, error) {
	tt, err := classifyTimeTerm(t, "t")
	if err != nil {
		return nil, err
	}
	j2pif := core.MulOf(core.J(), twoPiF())

	switch {
	case tt.deltaOrder >= 0:
		if tt.n > 0 || tt.trigName != "" || tt.expCoeff != nil {
			return nil, fmt.Errorf("%w: impulse products in %s", ErrTransformNotFound, t)
		}
		if tt.deltaOrder == 0 {
			return tt.coeff.Simplify(), nil
		}
		return core.MulOf(tt.coeff, core.PowOf(j2pif, core.N(int64(tt.deltaOrder)))), nil

	case tt.trigName != "":
		if tt.n > 0 || tt.expCoeff != nil || tt.hasStep {
			return nil, fmt.Errorf("%w: %s", ErrTransformNotFound, t)
		}
		// Impulses at +/- w/(2 pi).
		f0 := core.QuoOf(tt.trigOmega, core.MulOf(core.N(2), core.Pi()))
		plus := core.DeltaOf(core.AddOf(fVar(), core.MulOf(core.N(-1), f0)))
		minus := core.DeltaOf(core.AddOf(fVar(), f0))
		if tt.trigName == "cos" {
			return core.MulOf(tt.coeff, core.F(1, 2), core.RawAdd(plus, minus)), nil
		}
		return core.MulOf(tt.coeff, core.F(1, 2), core.Jn(-1),
			core.RawAdd(plus, core.MulOf(core.N(-1), minus))), nil

	case tt.hasStep:
		if tt.expCoeff == nil && tt.n == 0 {
			// u(t) -> 1/(j 2 pi f) + delta(f)/2.  The coefficient goes
			// into each addend: scaling the sum would let Simplify fold
			// the impulse over the quotient's denominator.
			return core.RawAdd(
				core.QuoOf(tt.coeff, j2pif),
				core.MulOf(tt.coeff, core.F(1, 2), core.DeltaOf(fVar())),
			), nil
		}
		if tt.expCoeff == nil {
			return nil, fmt.Errorf("%w: %s", ErrTransformNotFound, t)
		}
		// t^n e^{at} u(t) -> n! / (j 2 pi f - a)^{n+1}, for decaying a.
		den := core.PowOf(
			core.AddOf(j2pif, core.MulOf(core.N(-1), tt.expCoeff)),
			core.N(int64(tt.n+1)))
		return core.QuoOf(core.MulOf(tt.coeff, factorial(tt.n)), den), nil

	case tt.n == 0 && tt.expCoeff == nil:
		// A constant is a dc spectrum.
		return core.MulOf(tt.coeff, core.DeltaOf(fVar())), nil
	}
	return nil, fmt.Errorf("%w: %s has no Fourier transform in the table",
		ErrTransformNotFound, t)
}

// inverseFourier inverts impulse spectra directly and rational spectra by
// mapping onto the inverse Laplace transform with s = j 2 pi f.
func inverseFourier(e core.Expr, o transformOpts) (core.Expr, error) {
	// Split the additive terms before simplifying anything: a sum holding
	// both a quotient and an impulse folds over the common denominator
	// under Simplify, burying delta(f) where the rational path cannot
	// see it.  Each term is expanded and simplified on its own.
	split := []core.Expr{e}
	if a, ok := e.(*core.Add); ok {
		split = a.Terms()
	}
	terms := []core.Expr{}
	for _, t := range split {
		et := core.Expand(t).Simplify()
		if a, ok := et.(*core.Add); ok {
			terms = append(terms, a.Terms()...)
		} else {
			terms = append(terms, et)
		}
	}

	out := []core.Expr{}
	rational := []core.Expr{}
	dc := core.Expr(core.N(0))
	for _, t := range terms {
		it, ok, err := inverseFourierImpulseTerm(t)
		if err != nil {
			return nil, err
		}
		switch {
		case !ok:
			rational = append(rational, t)
		case core.FreeSymbols(it)["t"]:
			out = append(out, it)
		default:
			// An impulse at the origin carries the spectrum's dc level.
			dc = core.AddOf(dc, it)
		}
	}
	if len(rational) > 0 {
		// f = -j s / (2 pi) inverts s = j 2 pi f; the result is causal by
		// construction since these spectra came from decaying exponentials.
		sub := core.QuoOf(core.MulOf(core.Jn(-1), sVar()), core.MulOf(core.N(2), core.Pi()))
		mapped := core.Expand(core.RawAdd(rational...).Sub("f", sub)).Simplify()
		// A simple pole at s = 0 is the sign half of a step spectrum: its
		// true bilateral inverse is sign(t)/2, but the causal inversion
		// yields u(t), overstating the dc level by half the residue.  The
		// matching origin impulse supplies that half, so take it back out.
		k := originResidue(mapped)
		o.causal = true
		inv, err := inverseLaplace(mapped, o, Assumptions{})
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
		if !k.IsZero() {
			dc = core.AddOf(dc, core.MulOf(core.F(-1, 2), k))
		}
	}
	if !isZeroExpr(dc) {
		out = append(out, dc.Simplify())
	}
	if len(out) == 0 {
		return core.N(0), nil
	}
	if len(out) == 1 {
		return out[0], nil
	}
	return core.RawAdd(out...), nil
}

// originResidue is the residue of a rational F(s) at a simple pole at the
// origin; zero when there is no such pole.
func originResidue(e core.Expr) *core.Num {
	num, den, err := polyRatio(e, "s")
	if err != nil || len(num) == 0 || len(den) < 2 {
		return core.N(0)
	}
	if !den[0].IsZero() || den[1].IsZero() {
		return core.N(0)
	}
	r, ok := core.QuoOf(num[0], den[1]).Simplify().Eval()
	if !ok {
		return core.N(0)
	}
	return r
}

// inverseFourierImpulseTerm handles c*delta(f - f0) -> c e^{j 2 pi f0 t}
// and plain constants -> c delta(t).  Returns ok=false for terms that need
// the rational path.
func inverseFourierImpulseTerm(t core.Expr) (core.Expr, bool, error) {
	if !core.FreeSymbols(t)["f"] {
		return core.MulOf(t, core.DeltaOf(tVar())), true, nil
	}
	factors := []core.Expr{t}
	if m, ok := t.(*core.Mul); ok {
		factors = m.Factors()
	}
	coeff := core.Expr(core.N(1))
	var impulse *core.Func
	for _, f := range factors {
		if g, ok := f.(*core.Func); ok && g.Name() == "delta" && core.FreeSymbols(g)["f"] {
			if impulse != nil {
				return nil, false, fmt.Errorf("%w: impulse product %s", ErrTransformNotFound, t)
			}
			impulse = g
			continue
		}
		if core.FreeSymbols(f)["f"] {
			return nil, false, nil
		}
		coeff = core.MulOf(coeff, f)
	}
	if impulse == nil {
		return nil, false, nil
	}
	c1, c0, ok := linearArg(impulse.Args()[0], "f")
	if !ok {
		return nil, false, fmt.Errorf("%w: impulse argument %s", ErrTransformNotFound, impulse)
	}
	one, isNum := c1.Simplify().Eval()
	if !isNum || !one.IsOne() {
		return nil, false, fmt.Errorf("%w: scaled impulse %s", ErrTransformNotFound, impulse)
	}
	// delta(f + c0) sits at f0 = -c0.
	f0 := core.MulOf(core.N(-1), c0)
	phase := core.MulOf(core.J(), core.N(2), core.Pi(), f0, tVar())
	return core.MulOf(coeff, core.ExpOf(phase)), true, nil
}
