package lcapy

import (
	"fmt"
	"strings"

	"github.com/HotPushUpGuy420/lcapy/core"
)

// Super is a time-domain signal decomposed into dc, ac (per angular
// frequency, as complex phasor amplitudes) and transient parts.  Sources
// and responses are analysed per part: dc by inspection, each ac component
// in the phasor domain, the transient via Laplace.
type Super struct {
	kind      Kind
	dc        core.Expr
	keys      []string // ac map iteration order
	ac        map[string]acPart
	transient core.Expr
}

// acPart is one sinusoidal component.  The phasor convention follows
// c*cos(w t) -> c and c*sin(w t) -> -j*c, so the time signal is
// re(phasor) cos - im(phasor) sin.
type acPart struct {
	omega  core.Expr
	phasor core.Expr
}

// sinusoid is a matched c*sin/cos(w t + phi) term.
type sinusoid struct {
	omega  core.Expr
	phasor core.Expr
}

// matchSinusoid recognises a pure sinusoidal term in v.
func matchSinusoid(t core.Expr, v string) (sinusoid, bool) {
	coeff := core.Expr(core.N(1))
	var trig *core.Func
	factors := []core.Expr{t}
	if m, ok := t.(*core.Mul); ok {
		factors = m.Factors()
	}
	for _, f := range factors {
		if g, ok := f.(*core.Func); ok && (g.Name() == "sin" || g.Name() == "cos") &&
			core.FreeSymbols(g)[v] {
			if trig != nil {
				return sinusoid{}, false
			}
			trig = g
			continue
		}
		if core.FreeSymbols(f)[v] {
			return sinusoid{}, false
		}
		coeff = core.MulOf(coeff, f)
	}
	if trig == nil {
		return sinusoid{}, false
	}
	c1, c0, ok := linearArg(trig.Args()[0], v)
	if !ok || isZeroExpr(c1) {
		return sinusoid{}, false
	}
	phasor := coeff
	if !isZeroExpr(c0) {
		phasor = core.MulOf(phasor, core.ExpOf(core.MulOf(core.J(), c0)))
	}
	if trig.Name() == "sin" {
		phasor = core.MulOf(phasor, core.Jn(-1))
	}
	return sinusoid{omega: c1.Simplify(), phasor: phasor.Simplify()}, true
}

// Decompose splits a time-domain expression into dc + ac + transient.
// Recombine of the result reproduces the input value exactly.
func Decompose(e Expr) (*Super, error) {
	if e.domain != DomainTime && e.domain != DomainConst {
		return nil, fmt.Errorf("%w: decompose wants a time-domain signal, have %s",
			ErrDomainMismatch, e.domain)
	}
	s := &Super{kind: e.kind, ac: map[string]acPart{}}
	expanded := core.Expand(e.expr).Simplify()
	terms := []core.Expr{expanded}
	if a, ok := expanded.(*core.Add); ok {
		terms = a.Terms()
	}
	for _, t := range terms {
		switch {
		case isZeroExpr(t):
		case !core.FreeSymbols(t)["t"]:
			s.addDC(t)
		default:
			if sn, ok := matchSinusoid(t, "t"); ok {
				s.addAC(sn.omega, sn.phasor)
			} else {
				s.addTransient(t)
			}
		}
	}
	return s, nil
}

// DecomposeVoltage and DecomposeCurrent tag the result kind.
func DecomposeVoltage(e Expr) (*Super, error) { return Decompose(e.WithKind(KindVoltage)) }
func DecomposeCurrent(e Expr) (*Super, error) { return Decompose(e.WithKind(KindCurrent)) }

func (s *Super) addDC(e core.Expr) {
	if s.dc == nil {
		s.dc = e
		return
	}
	s.dc = core.AddOf(s.dc, e)
	if isZeroExpr(s.dc) {
		s.dc = nil
	}
}

func (s *Super) addTransient(e core.Expr) {
	if s.transient == nil {
		s.transient = e
		return
	}
	s.transient = core.AddOf(s.transient, e)
	if isZeroExpr(s.transient) {
		s.transient = nil
	}
}

func (s *Super) addAC(omega, phasor core.Expr) {
	key := omega.String()
	if p, ok := s.ac[key]; ok {
		sum := core.AddOf(p.phasor, phasor).Simplify()
		if isZeroExpr(sum) {
			// Components cancelling exactly removes the frequency.
			delete(s.ac, key)
			for i, k := range s.keys {
				if k == key {
					s.keys = append(s.keys[:i], s.keys[i+1:]...)
					break
				}
			}
			return
		}
		s.ac[key] = acPart{omega: p.omega, phasor: sum}
		return
	}
	s.ac[key] = acPart{omega: omega, phasor: phasor}
	s.keys = append(s.keys, key)
}

func (s *Super) Kind() Kind { return s.kind }

func (s *Super) HasDC() bool        { return s.dc != nil }
func (s *Super) HasAC() bool        { return len(s.ac) > 0 }
func (s *Super) HasTransient() bool { return s.transient != nil }

// IsDC, IsAC and IsTransient hold when exactly that one part is present.
func (s *Super) IsDC() bool { return s.HasDC() && !s.HasAC() && !s.HasTransient() }
func (s *Super) IsAC() bool { return s.HasAC() && !s.HasDC() && !s.HasTransient() }
func (s *Super) IsTransient() bool {
	return s.HasTransient() && !s.HasDC() && !s.HasAC()
}

// DC is the dc component (zero when absent).
func (s *Super) DC() Expr {
	if s.dc == nil {
		return Expr{expr: core.N(0), domain: DomainConst, kind: s.kind}
	}
	return Expr{expr: s.dc, domain: DomainConst, kind: s.kind,
		assume: Assumptions{DC: TriTrue}}
}

// ACComponent is a phasor at one angular frequency.
type ACComponent struct {
	Omega  Expr
	Phasor Expr
}

// AC lists the sinusoidal components in insertion order.
func (s *Super) AC() []ACComponent {
	out := make([]ACComponent, 0, len(s.keys))
	for _, k := range s.keys {
		p := s.ac[k]
		out = append(out, ACComponent{
			Omega:  Expr{expr: p.omega, domain: DomainConst},
			Phasor: Expr{expr: p.phasor, domain: DomainPhasor, kind: s.kind,
				assume: Assumptions{AC: TriTrue}},
		})
	}
	return out
}

// Transient is the non-dc, non-sinusoidal remainder.
func (s *Super) Transient() Expr {
	if s.transient == nil {
		return Expr{expr: core.N(0), domain: DomainTime, kind: s.kind}
	}
	return Expr{expr: s.transient, domain: DomainTime, kind: s.kind}
}

// Add merges two superpositions; components at the same frequency add as
// phasors, and sums that cancel exactly drop out.
func (s *Super) Add(o *Super) (*Super, error) {
	k, err := addKind(s.kind, o.kind)
	if err != nil {
		return nil, err
	}
	out := &Super{kind: k, ac: map[string]acPart{}}
	for _, src := range []*Super{s, o} {
		if src.dc != nil {
			out.addDC(src.dc)
		}
		for _, key := range src.keys {
			p := src.ac[key]
			out.addAC(p.omega, p.phasor)
		}
		if src.transient != nil {
			out.addTransient(src.transient)
		}
	}
	return out, nil
}

// Recombine reassembles the time-domain expression:
// dc + sum(re(A) cos(w t) - im(A) sin(w t)) + transient.
func (s *Super) Recombine() Expr {
	terms := []core.Expr{}
	if s.dc != nil {
		terms = append(terms, s.dc)
	}
	for _, key := range s.keys {
		p := s.ac[key]
		wt := core.MulOf(p.omega, tVar())
		re, im, ok := core.ReIm(p.phasor)
		if !ok {
			// Phasors built by this package always split; a foreign one
			// is treated as purely real.
			re, im = p.phasor, core.N(0)
		}
		cosTerm := core.MulOf(re, core.CosOf(wt))
		if !isZeroExpr(re) {
			terms = append(terms, cosTerm)
		}
		if !isZeroExpr(im) {
			terms = append(terms, core.MulOf(core.N(-1), im, core.SinOf(wt)))
		}
	}
	if s.transient != nil {
		terms = append(terms, s.transient)
	}
	if len(terms) == 0 {
		return Expr{expr: core.N(0), domain: DomainTime, kind: s.kind}
	}
	return Expr{expr: core.RawAdd(terms...), domain: DomainTime, kind: s.kind}
}

// Laplace transforms the recombined signal.
func (s *Super) Laplace(opts ...TransformOpt) (Expr, error) {
	return s.Recombine().Transform(S, opts...)
}

func (s *Super) String() string {
	parts := []string{}
	if s.dc != nil {
		parts = append(parts, "dc: "+s.dc.String())
	}
	for _, key := range s.keys {
		p := s.ac[key]
		parts = append(parts, fmt.Sprintf("ac(%s): %s", key, p.phasor.String()))
	}
	if s.transient != nil {
		parts = append(parts, "transient: "+s.transient.String())
	}
	if len(parts) == 0 {
		return "{0}"
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
