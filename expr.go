// Package lcapy is a domain-aware symbolic algebra for electrical circuit
// quantities.  Expressions carry the transform domain they live in (time,
// Laplace, Fourier, angular Fourier or phasor) and the kind of quantity
// they denote (voltage, current, impedance, admittance, transfer function),
// and the package keeps both consistent through arithmetic, transforms
// between domains, rational-function rewriting and numeric evaluation.
package lcapy

import (
	"fmt"

	"github.com/HotPushUpGuy420/lcapy/core"
)

// Kind classifies what a quantity means physically.
type Kind int

const (
	KindGeneric Kind = iota
	KindVoltage
	KindCurrent
	KindImpedance
	KindAdmittance
	KindTransfer
)

func (k Kind) String() string {
	switch k {
	case KindVoltage:
		return "voltage"
	case KindCurrent:
		return "current"
	case KindImpedance:
		return "impedance"
	case KindAdmittance:
		return "admittance"
	case KindTransfer:
		return "transfer"
	}
	return "generic"
}

// Expr is an immutable domain-tagged symbolic expression.  All methods
// return new values.
type Expr struct {
	expr   core.Expr
	domain Domain
	kind   Kind
	assume Assumptions
}

func newExpr(e core.Expr, d Domain, k Kind) Expr {
	return Expr{expr: e, domain: d, kind: k}
}

func (e Expr) String() string { return e.expr.String() }
func (e Expr) LaTeX() string  { return e.expr.LaTeX() }
func (e Expr) Domain() Domain { return e.domain }
func (e Expr) Kind() Kind     { return e.kind }

// Underlying exposes the kernel expression for operations the wrapper does
// not cover.  The result of kernel-level rewriting can be rewrapped with
// the entry functions.
func (e Expr) Underlying() core.Expr { return e.expr }

// WithKind retags the quantity kind.
func (e Expr) WithKind(k Kind) Expr {
	e.kind = k
	return e
}

// WithAssumptions attaches explicit assumptions (merged over existing).
func (e Expr) WithAssumptions(a Assumptions) Expr {
	e.assume = a.merge(e.assume)
	return e
}

// Assumptions returns the explicitly attached assumption record.
func (e Expr) Assumptions() Assumptions { return e.assume }

// IsZero reports whether the expression simplifies to exactly zero.
func (e Expr) IsZero() bool {
	n, ok := e.expr.Simplify().Eval()
	return ok && n.IsZero()
}

// Equal reports value equality after simplification and expansion.
func (e Expr) Equal(o Expr) bool {
	if e.domain != o.domain && e.domain != DomainConst && o.domain != DomainConst {
		return false
	}
	d := core.AddOf(core.Expand(e.expr), core.MulOf(core.N(-1), core.Expand(o.expr)))
	if n, ok := d.Simplify().Eval(); ok {
		return n.IsZero()
	}
	return core.Expand(e.expr).Simplify().Equal(core.Expand(o.expr).Simplify())
}

// ---------------------------------------------------------------------------
// Domain and kind combination

func combineDomain(a, b Domain) (Domain, error) {
	switch {
	case a == b:
		return a, nil
	case a == DomainConst:
		return b, nil
	case b == DomainConst:
		return a, nil
	}
	return 0, fmt.Errorf("%w: %s vs %s", ErrDomainMismatch, a, b)
}

func addKind(a, b Kind) (Kind, error) {
	switch {
	case a == b:
		return a, nil
	case a == KindGeneric:
		return b, nil
	case b == KindGeneric:
		return a, nil
	}
	return 0, fmt.Errorf("%w: cannot add %s and %s", ErrKindMismatch, a, b)
}

// mulKind follows Ohm's law: V = I*Z, I = V*Y, and transfer functions are
// transparent.  Products without a standard interpretation come back
// generic rather than failing, since scaling by a dimensionless expression
// is routine.
func mulKind(a, b Kind) Kind {
	if a == KindGeneric || a == KindTransfer {
		return b
	}
	if b == KindGeneric || b == KindTransfer {
		return a
	}
	pairs := map[[2]Kind]Kind{
		{KindCurrent, KindImpedance}:    KindVoltage,
		{KindImpedance, KindCurrent}:    KindVoltage,
		{KindVoltage, KindAdmittance}:   KindCurrent,
		{KindAdmittance, KindVoltage}:   KindCurrent,
		{KindImpedance, KindAdmittance}: KindTransfer,
		{KindAdmittance, KindImpedance}: KindTransfer,
	}
	if k, ok := pairs[[2]Kind{a, b}]; ok {
		return k
	}
	return KindGeneric
}

func divKind(a, b Kind) Kind {
	switch {
	case a == KindVoltage && b == KindCurrent:
		return KindImpedance
	case a == KindCurrent && b == KindVoltage:
		return KindAdmittance
	case a == b && a != KindGeneric:
		return KindTransfer
	}
	recip := map[Kind]Kind{
		KindGeneric:    KindGeneric,
		KindTransfer:   KindTransfer,
		KindImpedance:  KindAdmittance,
		KindAdmittance: KindImpedance,
	}
	if r, ok := recip[b]; ok {
		return mulKind(a, r)
	}
	return KindGeneric
}

// ---------------------------------------------------------------------------
// Arithmetic

func (e Expr) Add(o Expr) (Expr, error) {
	d, err := combineDomain(e.domain, o.domain)
	if err != nil {
		return Expr{}, err
	}
	k, err := addKind(e.kind, o.kind)
	if err != nil {
		return Expr{}, err
	}
	return Expr{expr: core.AddOf(e.expr, o.expr), domain: d, kind: k}, nil
}

func (e Expr) SubExpr(o Expr) (Expr, error) {
	return e.Add(o.Neg())
}

func (e Expr) Neg() Expr {
	e.expr = core.MulOf(core.N(-1), e.expr)
	return e
}

func (e Expr) Mul(o Expr) (Expr, error) {
	d, err := combineDomain(e.domain, o.domain)
	if err != nil {
		return Expr{}, err
	}
	return Expr{expr: core.MulOf(e.expr, o.expr), domain: d, kind: mulKind(e.kind, o.kind)}, nil
}

func (e Expr) Div(o Expr) (Expr, error) {
	d, err := combineDomain(e.domain, o.domain)
	if err != nil {
		return Expr{}, err
	}
	return Expr{expr: core.QuoOf(e.expr, o.expr), domain: d, kind: divKind(e.kind, o.kind)}, nil
}

// Scale multiplies by a dimensionless constant.
func (e Expr) Scale(c float64) Expr {
	e.expr = core.MulOf(core.NFloat(c), e.expr)
	return e
}

// ---------------------------------------------------------------------------
// Attribute queries

// Real is the real part, treating symbols as real quantities.
func (e Expr) Real() (Expr, error) {
	re, _, ok := core.ReIm(e.expr)
	if !ok {
		return Expr{}, fmt.Errorf("%w: cannot split %s into real and imaginary parts",
			ErrNumericEval, e.expr)
	}
	return Expr{expr: re.Simplify(), domain: e.domain, kind: e.kind}, nil
}

// Imag is the imaginary part.
func (e Expr) Imag() (Expr, error) {
	_, im, ok := core.ReIm(e.expr)
	if !ok {
		return Expr{}, fmt.Errorf("%w: cannot split %s into real and imaginary parts",
			ErrNumericEval, e.expr)
	}
	return Expr{expr: im.Simplify(), domain: e.domain, kind: e.kind}, nil
}

// Conj conjugates the expression.
func (e Expr) Conj() Expr {
	e.expr = core.Conj(e.expr).Simplify()
	return e
}

// Magnitude is sqrt(re^2 + im^2).
func (e Expr) Magnitude() (Expr, error) {
	re, im, ok := core.ReIm(e.expr)
	if !ok {
		return Expr{}, fmt.Errorf("%w: cannot form magnitude of %s", ErrNumericEval, e.expr)
	}
	mag := core.SqrtOf(core.AddOf(
		core.MulOf(re, re),
		core.MulOf(im, im),
	))
	return Expr{expr: mag.Simplify(), domain: e.domain, kind: e.kind}, nil
}

// Phase is atan2(im, re) in radians.
func (e Expr) Phase() (Expr, error) {
	re, im, ok := core.ReIm(e.expr)
	if !ok {
		return Expr{}, fmt.Errorf("%w: cannot form phase of %s", ErrNumericEval, e.expr)
	}
	return Expr{expr: core.Atan2Of(im.Simplify(), re.Simplify()), domain: e.domain}, nil
}

// DB is the magnitude in decibels, 20 log10 |e|.
func (e Expr) DB() (Expr, error) {
	mag, err := e.Magnitude()
	if err != nil {
		return Expr{}, err
	}
	db := core.MulOf(core.N(20), core.QuoOf(
		core.LnOf(mag.expr),
		core.LnOf(core.N(10)),
	))
	return Expr{expr: db, domain: e.domain}, nil
}

// Polar returns the magnitude and phase together.
func (e Expr) Polar() (mag, phase Expr, err error) {
	if mag, err = e.Magnitude(); err != nil {
		return Expr{}, Expr{}, err
	}
	if phase, err = e.Phase(); err != nil {
		return Expr{}, Expr{}, err
	}
	return mag, phase, nil
}

// Simplify simplifies the kernel expression.  Structural presentations
// (factored, partial fractions) may collapse; that is the point of calling
// it explicitly.
func (e Expr) Simplify() Expr {
	e.expr = e.expr.Simplify()
	return e
}

// Expand multiplies out products and powers.
func (e Expr) Expand() Expr {
	e.expr = core.Expand(e.expr).Simplify()
	return e
}

// Symbols lists the free symbols, excluding the domain variable.
func (e Expr) Symbols() []string {
	free := core.FreeSymbols(e.expr)
	delete(free, e.domain.VarName())
	out := make([]string, 0, len(free))
	for name := range free {
		out = append(out, name)
	}
	return out
}

// ---------------------------------------------------------------------------
// Derived assumptions

// Assumptions0 derives assumptions from the expression structure rather
// than the attached record: constants are dc, pure sinusoids are ac, and
// expressions gated by u(t) or built from impulses are causal.
func (e Expr) Assumptions0() Assumptions {
	var a Assumptions
	if !exprHasImagConst(e) {
		a.Real = TriTrue
	} else {
		a.Complex = TriTrue
	}
	v := e.domain.VarName()
	if v == "" || !core.FreeSymbols(e.expr)[v] {
		a.DC = TriTrue
		return a
	}
	if e.domain == DomainTime {
		if isPureSinusoid(e.expr, v) {
			a.AC = TriTrue
		}
		if isCausalShape(e.expr, v) {
			a.Causal = TriTrue
		}
	}
	return a
}

func exprHasImagConst(e Expr) bool {
	_, im, ok := core.ReIm(e.expr)
	if !ok {
		return true
	}
	n, ok := im.Simplify().Eval()
	return !ok || !n.IsZero()
}

// isPureSinusoid reports whether every additive term is a sinusoid in v.
func isPureSinusoid(e core.Expr, v string) bool {
	terms := []core.Expr{e}
	if a, ok := e.(*core.Add); ok {
		terms = a.Terms()
	}
	for _, t := range terms {
		if _, ok := matchSinusoid(t, v); !ok {
			return false
		}
	}
	return true
}

// isCausalShape reports whether every additive term vanishes for v < 0:
// each must carry a u(v...) factor or be an impulse.
func isCausalShape(e core.Expr, v string) bool {
	terms := []core.Expr{e}
	if a, ok := e.(*core.Add); ok {
		terms = a.Terms()
	}
	for _, t := range terms {
		if !termIsCausal(t, v) {
			return false
		}
	}
	return true
}

func termIsCausal(t core.Expr, v string) bool {
	switch f := t.(type) {
	case *core.Func:
		return f.Name() == "u" || isImpulseName(f.Name())
	case *core.Mul:
		for _, g := range f.Factors() {
			if termIsCausal(g, v) {
				return true
			}
		}
	}
	return false
}

func isImpulseName(name string) bool {
	return len(name) >= 5 && name[:5] == "delta"
}

// ---------------------------------------------------------------------------
// Escape hatch

// ApplyOp dispatches a named kernel operation on the wrapped expression.
// It exists so callers can reach kernel rewrites without the wrapper
// growing a method per operation.
func (e Expr) ApplyOp(op string, args ...string) (Expr, error) {
	v := e.domain.VarName()
	switch op {
	case "simplify":
		return e.Simplify(), nil
	case "expand":
		return e.Expand(), nil
	case "collect":
		if len(args) == 1 {
			v = args[0]
		}
		e.expr = core.Collect(e.expr, v)
		return e, nil
	case "diff":
		if len(args) == 1 {
			v = args[0]
		}
		e.expr = core.Diff(e.expr, v)
		return e, nil
	case "conj":
		return e.Conj(), nil
	case "limit":
		if len(args) != 2 {
			return Expr{}, fmt.Errorf("lcapy: limit needs a variable and a point")
		}
		point, err := core.Parse(args[1])
		if err != nil {
			return Expr{}, err
		}
		out, ok := core.Limit(e.expr, args[0], point)
		if !ok {
			return Expr{}, fmt.Errorf("lcapy: limit of %s does not exist or is not computable", e.expr)
		}
		e.expr = out
		return e, nil
	}
	return Expr{}, fmt.Errorf("lcapy: unknown operation %q", op)
}
