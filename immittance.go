package lcapy

import (
	"fmt"

	"github.com/HotPushUpGuy420/lcapy/core"
)

// Impedance Z = R + jX and Admittance Y = G + jB.  The resistive and
// reactive parts are defined on the angular-frequency form Z(j omega);
// expressions held in the Laplace domain are converted first.

type Impedance struct{ e Expr }

type Admittance struct{ e Expr }

func NewImpedance(e Expr) (Impedance, error) {
	switch e.domain {
	case DomainLaplace, DomainAngularFourier, DomainPhasor, DomainConst:
	default:
		return Impedance{}, fmt.Errorf("%w: impedance in the %s domain", ErrDomainMismatch, e.domain)
	}
	return Impedance{e: e.WithKind(KindImpedance)}, nil
}

func NewAdmittance(e Expr) (Admittance, error) {
	switch e.domain {
	case DomainLaplace, DomainAngularFourier, DomainPhasor, DomainConst:
	default:
		return Admittance{}, fmt.Errorf("%w: admittance in the %s domain", ErrDomainMismatch, e.domain)
	}
	return Admittance{e: e.WithKind(KindAdmittance)}, nil
}

// Expr returns the impedance in an explicitly chosen presentation domain;
// there is no silent default between s and j omega.
func (z Impedance) Expr(dom Domain) (Expr, error) {
	switch dom {
	case DomainLaplace:
		return z.e.Transform(S)
	case DomainAngularFourier:
		return z.e.Transform(Omega)
	case DomainPhasor:
		return z.e.Transform(JOmega)
	}
	return Expr{}, fmt.Errorf("%w: immittances live in s or omega, not %s",
		ErrDomainMismatch, dom)
}

func (y Admittance) Expr(dom Domain) (Expr, error) {
	return Impedance{e: y.e}.Expr(dom)
}

// omegaParts is Z(j omega) split into R and X.
func (z Impedance) omegaParts() (re, im core.Expr, err error) {
	w, err := z.e.Transform(Omega)
	if err != nil {
		return nil, nil, err
	}
	re, im, ok := core.ReIm(w.expr)
	if !ok {
		return nil, nil, fmt.Errorf("%w: cannot split %s", ErrNumericEval, w.expr)
	}
	return re.Simplify(), im.Simplify(), nil
}

// R is the resistance, the real part of Z(j omega).
func (z Impedance) R() (Expr, error) {
	re, _, err := z.omegaParts()
	if err != nil {
		return Expr{}, err
	}
	return Expr{expr: re, domain: DomainAngularFourier, kind: KindImpedance}, nil
}

// X is the reactance, the imaginary part of Z(j omega).
func (z Impedance) X() (Expr, error) {
	_, im, err := z.omegaParts()
	if err != nil {
		return Expr{}, err
	}
	return Expr{expr: im, domain: DomainAngularFourier, kind: KindImpedance}, nil
}

// Admittance inverts the impedance.
func (z Impedance) Admittance() Admittance {
	inv := core.QuoOf(core.N(1), z.e.expr)
	return Admittance{e: Expr{expr: inv, domain: z.e.domain, kind: KindAdmittance,
		assume: z.e.assume}}
}

// Impedance inverts the admittance.
func (y Admittance) Impedance() Impedance {
	inv := core.QuoOf(core.N(1), y.e.expr)
	return Impedance{e: Expr{expr: inv, domain: y.e.domain, kind: KindImpedance,
		assume: y.e.assume}}
}

// gbParts computes G and B from the impedance components:
// Y = 1/(R + jX) = R/(R^2+X^2) - j X/(R^2+X^2).
// When R is identically zero the conductance is exactly zero and the
// susceptance reduces to -1/X; the quotient form is never left to a
// simplifier that might miss the cancellation.
func (y Admittance) gbParts() (g, b core.Expr, err error) {
	re, im, err := y.Impedance().omegaParts()
	if err != nil {
		return nil, nil, err
	}
	if isZeroExpr(re) {
		if isZeroExpr(im) {
			return nil, nil, fmt.Errorf("%w: zero impedance", ErrNumericEval)
		}
		return core.N(0), core.MulOf(core.N(-1), core.PowOf(im, core.N(-1))).Simplify(), nil
	}
	mag := core.AddOf(core.MulOf(re, re), core.MulOf(im, im))
	g = core.QuoOf(re, mag)
	b = core.QuoOf(core.MulOf(core.N(-1), im), mag)
	return g, b, nil
}

// G is the conductance, the real part of Y(j omega).  A lossless
// impedance (R = 0) has exactly zero conductance whatever the reactance.
func (y Admittance) G() (Expr, error) {
	g, _, err := y.gbParts()
	if err != nil {
		return Expr{}, err
	}
	return Expr{expr: g.Simplify(), domain: DomainAngularFourier, kind: KindAdmittance}, nil
}

// B is the susceptance, the imaginary part of Y(j omega).
func (y Admittance) B() (Expr, error) {
	_, b, err := y.gbParts()
	if err != nil {
		return Expr{}, err
	}
	return Expr{expr: b.Simplify(), domain: DomainAngularFourier, kind: KindAdmittance}, nil
}

// TimeResponse is the impulse response: the causal inverse Laplace
// transform of Z(s).  A constant gives a weighted impulse, 1/s a step and
// s a doublet.
func (z Impedance) TimeResponse() (Expr, error) {
	sForm, err := z.e.Transform(S)
	if err != nil {
		return Expr{}, err
	}
	return sForm.Transform(T, WithCausal())
}

// TimeResponse is the causal inverse Laplace transform of Y(s) itself,
// not of the reciprocal impedance.
func (y Admittance) TimeResponse() (Expr, error) {
	sForm, err := y.e.Transform(S)
	if err != nil {
		return Expr{}, err
	}
	return sForm.Transform(T, WithCausal())
}
