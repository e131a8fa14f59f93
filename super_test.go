package lcapy_test

import (
	"math"
	"testing"

	lcapy "github.com/HotPushUpGuy420/lcapy"
)

func mustT(t *testing.T, src string) lcapy.Expr {
	t.Helper()
	e, err := lcapy.TExpr(src)
	if err != nil {
		t.Fatalf("TExpr(%q): %v", src, err)
	}
	return e
}

// ============================================================
// Decomposition
// ============================================================

func TestSuper_Decompose(t *testing.T) {
	sup, err := lcapy.Decompose(mustT(t, "1 + 2*cos(2*pi*3*t) + 3*u(t)"))
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if !sup.HasDC() || !sup.HasAC() || !sup.HasTransient() {
		t.Fatalf("want all three parts, got %s", sup)
	}
	if sup.DC().String() != "1" {
		t.Errorf("want dc 1, got %s", sup.DC().String())
	}
	ac := sup.AC()
	if len(ac) != 1 {
		t.Fatalf("want one ac component, got %d", len(ac))
	}
	if ac[0].Omega.String() != "6*pi" {
		t.Errorf("want omega 6*pi, got %s", ac[0].Omega.String())
	}
	if ac[0].Phasor.String() != "2" {
		t.Errorf("cosine of amplitude 2 has phasor 2, got %s", ac[0].Phasor.String())
	}
	if sup.Transient().String() != "3*u(t)" {
		t.Errorf("want transient 3*u(t), got %s", sup.Transient().String())
	}
}

func TestSuper_SinePhasor(t *testing.T) {
	sup, err := lcapy.Decompose(mustT(t, "4*sin(5*t)"))
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if !sup.IsAC() {
		t.Fatalf("a pure sinusoid should be ac only, got %s", sup)
	}
	ac := sup.AC()
	if ac[0].Phasor.String() != "-4*j" {
		t.Errorf("sine of amplitude 4 has phasor -4j, got %s", ac[0].Phasor.String())
	}
}

func TestSuper_RecombineRoundTrip(t *testing.T) {
	orig := mustT(t, "1 + 2*cos(2*pi*3*t) + 3*u(t)")
	sup, err := lcapy.Decompose(orig)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	back := sup.Recombine()
	if !back.Equal(orig) {
		t.Errorf("recombine should reproduce the input, got %s", back.String())
	}
}

func TestSuper_PhaseShiftRoundTrip(t *testing.T) {
	orig := mustT(t, "2*cos(3*t + 1)")
	sup, err := lcapy.Decompose(orig)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if !sup.IsAC() {
		t.Fatalf("want ac only, got %s", sup)
	}
	back := sup.Recombine()
	for _, x := range []float64{0, 0.4, 1.7} {
		got, err := back.Evaluate(x)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		want := 2 * math.Cos(3*x+1)
		if math.Abs(real(got)-want) > 1e-9 || math.Abs(imag(got)) > 1e-9 {
			t.Errorf("at t=%g: want %g, got %v", x, want, got)
		}
	}
}

func TestSuper_ExactCancellationRemovesFrequency(t *testing.T) {
	a, err := lcapy.Decompose(mustT(t, "cos(5*t)"))
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	b, err := lcapy.Decompose(mustT(t, "-cos(5*t)"))
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.HasAC() {
		t.Errorf("cancelled components should drop the frequency, got %s", sum)
	}
	if sum.String() != "{0}" {
		t.Errorf("want {0}, got %s", sum)
	}
}

func TestSuper_SameFrequencyPhasorsAdd(t *testing.T) {
	a, _ := lcapy.Decompose(mustT(t, "cos(5*t)"))
	b, _ := lcapy.Decompose(mustT(t, "sin(5*t)"))
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	ac := sum.AC()
	if len(ac) != 1 {
		t.Fatalf("want one merged component, got %d", len(ac))
	}
	c, err := ac[0].Phasor.Evaluate(0)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if real(c) != 1 || imag(c) != -1 {
		t.Errorf("cos + sin has phasor 1 - j, got %v", c)
	}
}

func TestSuper_KindMismatch(t *testing.T) {
	v, _ := lcapy.DecomposeVoltage(mustT(t, "cos(5*t)"))
	i, _ := lcapy.DecomposeCurrent(mustT(t, "cos(7*t)"))
	if _, err := v.Add(i); err == nil {
		t.Errorf("adding a voltage and a current superposition should fail")
	}
}

func TestSuper_RejectsNonTimeDomain(t *testing.T) {
	e, _ := lcapy.SExpr("1/(s + 1)")
	if _, err := lcapy.Decompose(e); err == nil {
		t.Errorf("decomposing an s-domain expression should fail")
	}
}

func TestSuper_Laplace(t *testing.T) {
	sup, _ := lcapy.Decompose(mustT(t, "3*u(t)"))
	l, err := sup.Laplace()
	if err != nil {
		t.Fatalf("Laplace: %v", err)
	}
	if l.String() != "3/s" {
		t.Errorf("want 3/s, got %s", l.String())
	}
}

// ============================================================
// One-port networks
// ============================================================

func TestOnePort_ParallelResistors(t *testing.T) {
	r1, _ := lcapy.Resistor(2)
	r2, _ := lcapy.Resistor(2)
	p, err := lcapy.Par(r1, r2)
	if err != nil {
		t.Fatalf("Par: %v", err)
	}
	z, err := p.Impedance()
	if err != nil {
		t.Fatalf("Impedance: %v", err)
	}
	ze, err := z.Expr(lcapy.DomainLaplace)
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	if ze.String() != "1" {
		t.Errorf("2 || 2 should be 1, got %s", ze.String())
	}
}

func TestOnePort_TheveninDC(t *testing.T) {
	v, _ := lcapy.VoltageDC(10)
	r, _ := lcapy.Resistor(5)
	p, err := lcapy.Ser(v, r)
	if err != nil {
		t.Fatalf("Ser: %v", err)
	}
	voc, err := p.Voc()
	if err != nil {
		t.Fatalf("Voc: %v", err)
	}
	if voc.DC().String() != "10" {
		t.Errorf("want open-circuit 10, got %s", voc.DC().String())
	}
	isc, err := p.Isc()
	if err != nil {
		t.Fatalf("Isc: %v", err)
	}
	if isc.DC().String() != "2" {
		t.Errorf("want short-circuit 2, got %s", isc.DC().String())
	}
}

func TestOnePort_StepResponseCurrent(t *testing.T) {
	v, _ := lcapy.VoltageStep(6)
	r, _ := lcapy.Resistor(3)
	p, err := lcapy.Ser(v, r)
	if err != nil {
		t.Fatalf("Ser: %v", err)
	}
	isc, err := p.Isc()
	if err != nil {
		t.Fatalf("Isc: %v", err)
	}
	if !isc.IsTransient() {
		t.Fatalf("a step drive is all transient, got %s", isc)
	}
	if isc.Transient().String() != "2*u(t)" {
		t.Errorf("want 2*u(t), got %s", isc.Transient().String())
	}
}

func TestOnePort_ACPhasorCurrent(t *testing.T) {
	v, _ := lcapy.VoltageAC(5, 3, nil)
	r, _ := lcapy.Resistor(1)
	l, _ := lcapy.Inductor(1)
	p, err := lcapy.Ser(v, r, l)
	if err != nil {
		t.Fatalf("Ser: %v", err)
	}
	isc, err := p.Isc()
	if err != nil {
		t.Fatalf("Isc: %v", err)
	}
	ac := isc.AC()
	if len(ac) != 1 {
		t.Fatalf("want one ac component, got %d", len(ac))
	}
	c, err := ac[0].Phasor.Evaluate(0)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	// 5 / (1 + 3j) = 1/2 - 3/2 j
	if math.Abs(real(c)-0.5) > 1e-12 || math.Abs(imag(c)+1.5) > 1e-12 {
		t.Errorf("want 0.5 - 1.5j, got %v", c)
	}
}

func TestOnePort_NortonToThevenin(t *testing.T) {
	i, _ := lcapy.CurrentDC(2)
	r, _ := lcapy.Resistor(4)
	p, err := lcapy.Par(i, r)
	if err != nil {
		t.Fatalf("Par: %v", err)
	}
	voc, err := p.Voc()
	if err != nil {
		t.Fatalf("Voc: %v", err)
	}
	if voc.DC().String() != "8" {
		t.Errorf("2A into 4 ohm should give 8V open circuit, got %s", voc.DC().String())
	}
}

func TestOnePort_CurrentSourceCollapsesSeries(t *testing.T) {
	i, _ := lcapy.CurrentDC(3)
	r, _ := lcapy.Resistor(7)
	p, err := lcapy.Ser(i, r)
	if err != nil {
		t.Fatalf("Ser: %v", err)
	}
	isc, err := p.Isc()
	if err != nil {
		t.Fatalf("Isc: %v", err)
	}
	if isc.DC().String() != "3" {
		t.Errorf("series current source forces 3A, got %s", isc.DC().String())
	}
	if _, err := p.Impedance(); err == nil {
		t.Errorf("impedance of an ideal current source should fail")
	}
	if _, err := p.Voc(); err == nil {
		t.Errorf("open-circuit voltage of an ideal current source should fail")
	}
}

func TestOnePort_ConflictingSources(t *testing.T) {
	v1, _ := lcapy.VoltageDC(1)
	v2, _ := lcapy.VoltageDC(2)
	if _, err := lcapy.Par(v1, v2); err == nil {
		t.Errorf("two ideal voltage sources in parallel should fail")
	}
	i1, _ := lcapy.CurrentDC(1)
	i2, _ := lcapy.CurrentDC(2)
	if _, err := lcapy.Ser(i1, i2); err == nil {
		t.Errorf("two ideal current sources in series should fail")
	}
}

func TestOnePort_RCStepVoltageAcrossCapacitor(t *testing.T) {
	// Voltage divider: step through R into C; the capacitor voltage is
	// 6 (1 - e^{-t/RC}) u(t) with R=1, C=1.
	v, _ := lcapy.VoltageStep(6)
	r, _ := lcapy.Resistor(1)
	src, err := lcapy.Ser(v, r)
	if err != nil {
		t.Fatalf("Ser: %v", err)
	}
	c, _ := lcapy.Capacitor(1)
	p, err := lcapy.Par(src, c)
	if err != nil {
		t.Fatalf("Par: %v", err)
	}
	voc, err := p.Voc()
	if err != nil {
		t.Fatalf("Voc: %v", err)
	}
	if !voc.IsTransient() {
		t.Fatalf("want a transient-only response, got %s", voc)
	}
	out := voc.Transient()
	for _, x := range []float64{0.5, 1, 3} {
		got, err := out.Evaluate(x)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		want := 6 * (1 - math.Exp(-x))
		if math.Abs(real(got)-want) > 1e-9 {
			t.Errorf("at t=%g: want %g, got %v", x, want, got)
		}
	}
}
