package lcapy_test

import (
	"math"
	"testing"

	lcapy "github.com/HotPushUpGuy420/lcapy"
)

// ============================================================
// Forward Laplace
// ============================================================

func TestLaplace_ImpulseIsHalf(t *testing.T) {
	// The lower limit of the unilateral transform sits at 0, not 0-, so
	// only half the impulse is caught.
	e, _ := lcapy.TExpr("delta(t)")
	l, err := e.Transform(lcapy.S)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if l.String() != "1/2" {
		t.Errorf("want 1/2, got %s", l.String())
	}
}

func TestLaplace_Step(t *testing.T) {
	e, _ := lcapy.TExpr("5*u(t)")
	l, err := e.Transform(lcapy.S)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if l.String() != "5/s" {
		t.Errorf("want 5/s, got %s", l.String())
	}
}

func TestLaplace_DecayingExponential(t *testing.T) {
	e, _ := lcapy.TExpr("exp(-2*t)*u(t)")
	l, err := e.Transform(lcapy.S)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if l.String() != "1/(s + 2)" {
		t.Errorf("want 1/(s + 2), got %s", l.String())
	}
}

func TestLaplace_Cosine(t *testing.T) {
	e, _ := lcapy.TExpr("cos(3*t)")
	l, err := e.Transform(lcapy.S)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if l.String() != "s/(s^2 + 9)" {
		t.Errorf("want s/(s^2 + 9), got %s", l.String())
	}
}

func TestLaplace_RampedExponential(t *testing.T) {
	e, _ := lcapy.TExpr("t*exp(-t)")
	l, err := e.Transform(lcapy.S)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if l.String() != "1/(s + 1)^2" {
		t.Errorf("want 1/(s + 1)^2, got %s", l.String())
	}
}

// ============================================================
// Inverse Laplace and the disambiguation ladder
// ============================================================

func TestInverseLaplace_DefaultIsPiecewise(t *testing.T) {
	e, _ := lcapy.SExpr("1/(s + 2)")
	f, err := e.Transform(lcapy.T)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if f.String() != "Piecewise((exp(-2*t), t >= 0))" {
		t.Errorf("want a piecewise result, got %s", f.String())
	}
}

func TestInverseLaplace_CausalWrapsInStep(t *testing.T) {
	e, _ := lcapy.SExpr("1/(s + 2)")
	f, err := e.Transform(lcapy.T, lcapy.WithCausal())
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if f.String() != "exp(-2*t)*u(t)" {
		t.Errorf("want exp(-2*t)*u(t), got %s", f.String())
	}
}

func TestInverseLaplace_CausalAssumptionOnExpr(t *testing.T) {
	e, _ := lcapy.SExpr("1/(s + 2)")
	e = e.WithAssumptions(lcapy.Assumptions{Causal: lcapy.TriTrue})
	f, err := e.Transform(lcapy.T)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if f.String() != "exp(-2*t)*u(t)" {
		t.Errorf("causal assumption should wrap in u(t), got %s", f.String())
	}
}

func TestInverseLaplace_DC(t *testing.T) {
	e, _ := lcapy.SExpr("7/s")
	f, err := e.Transform(lcapy.T, lcapy.WithDC())
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if f.String() != "7" {
		t.Errorf("want 7, got %s", f.String())
	}
}

func TestInverseLaplace_AC(t *testing.T) {
	e, _ := lcapy.SExpr("s/(s^2 + 9)")
	f, err := e.Transform(lcapy.T, lcapy.WithAC())
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if f.String() != "cos(3*t)" {
		t.Errorf("want cos(3*t), got %s", f.String())
	}
}

func TestInverseLaplace_ConstantGivesImpulse(t *testing.T) {
	e, _ := lcapy.SExpr("5")
	f, err := e.Transform(lcapy.T)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if f.String() != "5*delta(t)" {
		t.Errorf("want 5*delta(t), got %s", f.String())
	}
}

func TestInverseLaplace_ConstantWithCausalOption(t *testing.T) {
	// The derived dc assumption on an s-free spectrum must not shadow an
	// explicit causal request; either way a flat gain is an impulse.
	e, _ := lcapy.SExpr("5")
	f, err := e.Transform(lcapy.T, lcapy.WithCausal())
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if f.String() != "5*delta(t)" {
		t.Errorf("want 5*delta(t), got %s", f.String())
	}
}

func TestInverseLaplace_ExplicitDCRejectsFlatSpectrum(t *testing.T) {
	e, _ := lcapy.SExpr("5")
	if _, err := e.Transform(lcapy.T, lcapy.WithDC()); err == nil {
		t.Errorf("an explicit dc reading of a flat spectrum should fail")
	}
}

func TestInverseLaplace_ConjugatePolePair(t *testing.T) {
	// 1/(s^2 + 2s + 5) has poles at -1 +/- 2j and inverts to
	// (1/2) e^{-t} sin(2t).
	e, _ := lcapy.SExpr("1/(s^2 + 2*s + 5)")
	f, err := e.Transform(lcapy.T, lcapy.WithCausal())
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	got, err := f.Evaluate(1)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	want := 0.5 * math.Exp(-1) * math.Sin(2)
	if math.Abs(real(got)-want) > 1e-9 || math.Abs(imag(got)) > 1e-12 {
		t.Errorf("at t=1: want %g, got %v", want, got)
	}
}

func TestInverseLaplace_DampedSinMatchesResidueForm(t *testing.T) {
	e, _ := lcapy.SExpr("1/(s^2 + 2*s + 5)")
	plain, err := e.Transform(lcapy.T, lcapy.WithCausal())
	if err != nil {
		t.Fatalf("plain: %v", err)
	}
	damped, err := e.Transform(lcapy.T, lcapy.WithCausal(), lcapy.WithDampedSin())
	if err != nil {
		t.Fatalf("damped: %v", err)
	}
	for _, x := range []float64{0.3, 1, 2.7} {
		a, err := plain.Evaluate(x)
		if err != nil {
			t.Fatalf("Evaluate plain: %v", err)
		}
		b, err := damped.Evaluate(x)
		if err != nil {
			t.Fatalf("Evaluate damped: %v", err)
		}
		if math.Abs(real(a)-real(b)) > 1e-9 {
			t.Errorf("at t=%g: forms disagree, %v vs %v", x, a, b)
		}
	}
}

func TestInverseLaplace_RepeatedPole(t *testing.T) {
	// 1/(s+1)^2 inverts to t e^{-t}.
	e, _ := lcapy.SExpr("1/(s^2 + 2*s + 1)")
	f, err := e.Transform(lcapy.T, lcapy.WithCausal())
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	got, err := f.Evaluate(2)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	want := 2 * math.Exp(-2)
	if math.Abs(real(got)-want) > 1e-9 {
		t.Errorf("at t=2: want %g, got %v", want, got)
	}
}

func TestInverseLaplace_PiecewiseResolvesForPositiveTime(t *testing.T) {
	e, _ := lcapy.SExpr("1/(s + 2)")
	f, err := e.Transform(lcapy.T)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	got, err := f.Evaluate(1)
	if err != nil {
		t.Fatalf("Evaluate at t=1: %v", err)
	}
	if math.Abs(real(got)-math.Exp(-2)) > 1e-12 {
		t.Errorf("want e^-2, got %v", got)
	}
	if _, err := f.Evaluate(-1); err == nil {
		t.Errorf("evaluating outside the region of validity should fail")
	}
}

// ============================================================
// Substitution-based hops
// ============================================================

func TestTransform_LaplaceToAngularFourier(t *testing.T) {
	e, _ := lcapy.SExpr("1/(s + 1)")
	w, err := e.Transform(lcapy.Omega)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if w.Domain() != lcapy.DomainAngularFourier {
		t.Errorf("want angular fourier, got %s", w.Domain())
	}
	if w.String() != "1/(j*omega + 1)" {
		t.Errorf("want 1/(j*omega + 1), got %s", w.String())
	}
}

func TestTransform_LaplaceToPhasor(t *testing.T) {
	e, _ := lcapy.SExpr("3*s")
	p, err := e.Transform(lcapy.JOmega)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if p.String() != "3*jomega" {
		t.Errorf("want 3*jomega, got %s", p.String())
	}
}

func TestTransform_ConstantRetagsFreely(t *testing.T) {
	e, _ := lcapy.ConstExpr("5")
	s, err := e.Transform(lcapy.S)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if s.Domain() != lcapy.DomainLaplace || s.String() != "5" {
		t.Errorf("want 5 in laplace domain, got %s in %s", s.String(), s.Domain())
	}
}

func TestTransform_ApplyCallRule(t *testing.T) {
	e, _ := lcapy.SExpr("1/(s + 1)")

	// Own domain variable: identity.
	same, err := e.Apply(lcapy.S)
	if err != nil || same.String() != e.String() {
		t.Errorf("identity apply changed the expression: %s (%v)", same.String(), err)
	}

	// Another domain variable: transform.
	w, err := e.Apply(lcapy.Omega)
	if err != nil || w.Domain() != lcapy.DomainAngularFourier {
		t.Errorf("apply with Omega should transform, got %s (%v)", w.Domain(), err)
	}

	// Anything else: substitution.
	v, err := e.Apply(3)
	if err != nil {
		t.Fatalf("Apply(3): %v", err)
	}
	if v.Domain() != lcapy.DomainConst || v.String() != "1/4" {
		t.Errorf("want 1/4 constant, got %s in %s", v.String(), v.Domain())
	}
}

// ============================================================
// Fourier
// ============================================================

func TestFourier_StepSpectrum(t *testing.T) {
	e, _ := lcapy.TExpr("u(t)")
	sp, err := e.Transform(lcapy.F)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	got, err := sp.Evaluate(1)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	// 1/(j 2 pi f) at f=1, the impulse contributes nothing away from 0.
	want := -1 / (2 * math.Pi)
	if math.Abs(imag(got)-want) > 1e-9 || math.Abs(real(got)) > 1e-12 {
		t.Errorf("want %gj, got %v", want, got)
	}
}

func TestFourier_CosineRoundTrip(t *testing.T) {
	e, _ := lcapy.TExpr("cos(8*pi*t)")
	sp, err := e.Transform(lcapy.F)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	back, err := sp.Transform(lcapy.T)
	if err != nil {
		t.Fatalf("inverse: %v", err)
	}
	for _, x := range []float64{0, 0.1, 0.37} {
		got, err := back.Evaluate(x)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		want := math.Cos(8 * math.Pi * x)
		if math.Abs(real(got)-want) > 1e-9 || math.Abs(imag(got)) > 1e-9 {
			t.Errorf("at t=%g: want %g, got %v", x, want, got)
		}
	}
}

func TestFourier_RationalSpectrumInverts(t *testing.T) {
	// F{e^{-2t} u(t)} = 1/(j 2 pi f + 2); inverting goes through the
	// Laplace engine and must come back causal.
	e, _ := lcapy.TExpr("exp(-2*t)*u(t)")
	sp, err := e.Transform(lcapy.F)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	back, err := sp.Transform(lcapy.T)
	if err != nil {
		t.Fatalf("inverse: %v", err)
	}
	for _, x := range []float64{-0.5, 0.25, 1} {
		got, err := back.Evaluate(x)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		want := 0.0
		if x >= 0 {
			want = math.Exp(-2 * x)
		}
		if math.Abs(real(got)-want) > 1e-9 {
			t.Errorf("at t=%g: want %g, got %v", x, want, got)
		}
	}
}

func TestFourier_StepRoundTrip(t *testing.T) {
	// F{u(t)} = 1/(j 2 pi f) + delta(f)/2 mixes a rational part with an
	// impulse at the origin.  Inverting must keep the two apart and
	// recover the step exactly: the origin impulse carries the dc level
	// that the sign half of the quotient lacks.
	e, _ := lcapy.TExpr("u(t)")
	sp, err := e.Transform(lcapy.F)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	back, err := sp.Transform(lcapy.T)
	if err != nil {
		t.Fatalf("inverse: %v", err)
	}
	for _, x := range []float64{-2, -0.5, 0.5, 3} {
		got, err := back.Evaluate(x)
		if err != nil {
			t.Fatalf("Evaluate at t=%g: %v", x, err)
		}
		want := 0.0
		if x >= 0 {
			want = 1
		}
		if math.Abs(real(got)-want) > 1e-9 || math.Abs(imag(got)) > 1e-9 {
			t.Errorf("at t=%g: want %g, got %v", x, want, got)
		}
	}
}

func TestFourier_ScaledStepRoundTrip(t *testing.T) {
	e, _ := lcapy.TExpr("3*u(t)")
	sp, err := e.Transform(lcapy.F)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	back, err := sp.Transform(lcapy.T)
	if err != nil {
		t.Fatalf("inverse: %v", err)
	}
	for _, x := range []float64{-1, 1} {
		got, err := back.Evaluate(x)
		if err != nil {
			t.Fatalf("Evaluate at t=%g: %v", x, err)
		}
		want := 0.0
		if x >= 0 {
			want = 3
		}
		if math.Abs(real(got)-want) > 1e-9 {
			t.Errorf("at t=%g: want %g, got %v", x, want, got)
		}
	}
}

// ============================================================
// Derived assumptions
// ============================================================

func TestAssumptions0_Derived(t *testing.T) {
	dc, _ := lcapy.TExpr("5")
	if dc.Assumptions0().DC != lcapy.TriTrue {
		t.Errorf("a constant should derive dc")
	}
	ac, _ := lcapy.TExpr("cos(3*t)")
	if ac.Assumptions0().AC != lcapy.TriTrue {
		t.Errorf("a pure sinusoid should derive ac")
	}
	ca, _ := lcapy.TExpr("3*u(t)")
	if ca.Assumptions0().Causal != lcapy.TriTrue {
		t.Errorf("a step-gated signal should derive causal")
	}
}
