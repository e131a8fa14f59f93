package lcapy_test

import (
	"errors"
	"math"
	"testing"

	lcapy "github.com/HotPushUpGuy420/lcapy"
)

// ============================================================
// Entry points
// ============================================================

func TestEntry_TimeDomain(t *testing.T) {
	e, err := lcapy.TExpr("3*t + 1")
	if err != nil {
		t.Fatalf("TExpr: %v", err)
	}
	if e.Domain() != lcapy.DomainTime {
		t.Errorf("want time domain, got %s", e.Domain())
	}
	if e.String() != "3*t + 1" {
		t.Errorf("want 3*t + 1, got %s", e.String())
	}
}

func TestEntry_ForeignVariableRejected(t *testing.T) {
	_, err := lcapy.TExpr("s + 1")
	if !errors.Is(err, lcapy.ErrDomainMismatch) {
		t.Errorf("s in a time expression should be a domain mismatch, got %v", err)
	}
}

func TestEntry_OmegaAllowedAsParameter(t *testing.T) {
	// omega doubles as a sinusoid parameter in the time domain.
	e, err := lcapy.TExpr("3*cos(omega*t)")
	if err != nil {
		t.Fatalf("TExpr: %v", err)
	}
	if e.Domain() != lcapy.DomainTime {
		t.Errorf("want time domain, got %s", e.Domain())
	}
}

func TestEntry_ConstRejectsDomainVars(t *testing.T) {
	if _, err := lcapy.ConstExpr("2*s"); !errors.Is(err, lcapy.ErrDomainMismatch) {
		t.Errorf("want domain mismatch, got %v", err)
	}
	e, err := lcapy.ConstExpr("2*pi")
	if err != nil {
		t.Fatalf("ConstExpr: %v", err)
	}
	if e.Domain() != lcapy.DomainConst {
		t.Errorf("want constant domain, got %s", e.Domain())
	}
}

func TestEntry_ExprOfInfersDomain(t *testing.T) {
	e, err := lcapy.ExprOf("1/(s + 1)")
	if err != nil {
		t.Fatalf("ExprOf: %v", err)
	}
	if e.Domain() != lcapy.DomainLaplace {
		t.Errorf("want laplace, got %s", e.Domain())
	}
	c, err := lcapy.ExprOf("3")
	if err != nil || c.Domain() != lcapy.DomainConst {
		t.Errorf("want constant domain, got %s (%v)", c.Domain(), err)
	}
	if _, err := lcapy.ExprOf("s*t"); !errors.Is(err, lcapy.ErrDomainMismatch) {
		t.Errorf("mixed variables should fail, got %v", err)
	}
}

func TestEntry_FromNumber(t *testing.T) {
	e, err := lcapy.SExpr(0.5)
	if err != nil {
		t.Fatalf("SExpr: %v", err)
	}
	if e.String() != "1/2" {
		t.Errorf("0.5 should enter exactly as 1/2, got %s", e.String())
	}
}

// ============================================================
// Arithmetic, domains and kinds
// ============================================================

func TestArith_DomainMismatch(t *testing.T) {
	a, _ := lcapy.TExpr("t")
	b, _ := lcapy.SExpr("s")
	if _, err := a.Add(b); !errors.Is(err, lcapy.ErrDomainMismatch) {
		t.Errorf("adding t-domain and s-domain should fail, got %v", err)
	}
}

func TestArith_ConstCombines(t *testing.T) {
	a, _ := lcapy.SExpr("s")
	c, _ := lcapy.ConstExpr("2")
	sum, err := a.Add(c)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.Domain() != lcapy.DomainLaplace {
		t.Errorf("want laplace, got %s", sum.Domain())
	}
	if sum.String() != "s + 2" {
		t.Errorf("want s + 2, got %s", sum.String())
	}
}

func TestKind_OhmsLaw(t *testing.T) {
	i, _ := lcapy.SExpr("2")
	z, _ := lcapy.SExpr("s + 1")
	v, err := i.WithKind(lcapy.KindCurrent).Mul(z.WithKind(lcapy.KindImpedance))
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if v.Kind() != lcapy.KindVoltage {
		t.Errorf("I*Z should be a voltage, got %s", v.Kind())
	}

	zz, err := v.Div(i.WithKind(lcapy.KindCurrent))
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if zz.Kind() != lcapy.KindImpedance {
		t.Errorf("V/I should be an impedance, got %s", zz.Kind())
	}
}

func TestKind_SameKindRatioIsTransfer(t *testing.T) {
	a, _ := lcapy.SExpr("s")
	b, _ := lcapy.SExpr("s + 1")
	h, err := a.WithKind(lcapy.KindVoltage).Div(b.WithKind(lcapy.KindVoltage))
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if h.Kind() != lcapy.KindTransfer {
		t.Errorf("V/V should be a transfer function, got %s", h.Kind())
	}
}

func TestKind_AddMismatch(t *testing.T) {
	a, _ := lcapy.SExpr("1")
	b, _ := lcapy.SExpr("2")
	_, err := a.WithKind(lcapy.KindVoltage).Add(b.WithKind(lcapy.KindCurrent))
	if !errors.Is(err, lcapy.ErrKindMismatch) {
		t.Errorf("adding volts and amps should fail, got %v", err)
	}
}

// ============================================================
// Symbol registry
// ============================================================

func TestSymbol_ReservedNames(t *testing.T) {
	ctx := lcapy.NewContext()
	for _, name := range []string{"s", "t", "omega", "pi", "func"} {
		if _, err := ctx.Symbol(name, lcapy.Assumptions{}); !errors.Is(err, lcapy.ErrNaming) {
			t.Errorf("registering %q should fail, got %v", name, err)
		}
	}
}

func TestSymbol_ConflictingAssumptions(t *testing.T) {
	ctx := lcapy.NewContext()
	if _, err := ctx.Symbol("R1", lcapy.Assumptions{Positive: lcapy.TriTrue}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := ctx.Symbol("R1", lcapy.Assumptions{Positive: lcapy.TriFalse})
	if !errors.Is(err, lcapy.ErrNaming) {
		t.Errorf("conflicting re-registration should fail, got %v", err)
	}
}

func TestSymbol_DefaultPositive(t *testing.T) {
	ctx := lcapy.NewContext()
	sym, err := ctx.Symbol("Rload", lcapy.Assumptions{})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if sym.Assumptions().Positive != lcapy.TriTrue {
		t.Errorf("plain symbols default to positive, got %s", sym.Assumptions().Positive)
	}
}

// ============================================================
// Numeric evaluation
// ============================================================

func TestEvaluate_Point(t *testing.T) {
	e, _ := lcapy.SExpr("1/(s + 1)")
	c, err := e.Evaluate(1)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if math.Abs(real(c)-0.5) > 1e-12 || imag(c) != 0 {
		t.Errorf("want 0.5, got %v", c)
	}
}

func TestEvaluate_FreeSymbolRejected(t *testing.T) {
	e, _ := lcapy.SExpr("R/(s + 1)")
	if _, err := e.Evaluate(1); !errors.Is(err, lcapy.ErrNumericEval) {
		t.Errorf("free symbol should fail, got %v", err)
	}
}

func TestEvaluate_StepGatesExponential(t *testing.T) {
	// For large negative t the step is exactly zero; the clamped
	// exponential tail must not leak through the product.
	e, _ := lcapy.TExpr("exp(-3*t)*u(t)")
	c, err := e.Evaluate(-1000)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if c != 0 {
		t.Errorf("want exactly 0, got %v", c)
	}
}

func TestEvaluate_ExpClampStaysFinite(t *testing.T) {
	e, _ := lcapy.TExpr("exp(-3*t)")
	c, err := e.Evaluate(-1000)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if math.IsInf(real(c), 0) || math.IsNaN(real(c)) {
		t.Errorf("clamped exponential should stay finite, got %v", c)
	}
	if real(c) < 1e100 {
		t.Errorf("tail should still be huge, got %v", c)
	}
}

func TestEvaluate_Slice(t *testing.T) {
	e, _ := lcapy.TExpr("2*t")
	vals, err := e.EvaluateSlice([]float64{0, 1, 2.5})
	if err != nil {
		t.Fatalf("EvaluateSlice: %v", err)
	}
	want := []float64{0, 2, 5}
	for i, w := range want {
		if math.Abs(real(vals[i])-w) > 1e-12 {
			t.Errorf("at index %d: want %g, got %v", i, w, vals[i])
		}
	}
}

func TestEvaluate_Matrix(t *testing.T) {
	e, _ := lcapy.TExpr("t")
	m, err := e.EvaluateMatrix([]float64{1, 2})
	if err != nil {
		t.Fatalf("EvaluateMatrix: %v", err)
	}
	r, c := m.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("want 2x3 matrix, got %dx%d", r, c)
	}
	if m.At(1, 0) != 2 || m.At(1, 1) != 2 || m.At(1, 2) != 0 {
		t.Errorf("row 1 should be [2 2 0], got [%g %g %g]",
			m.At(1, 0), m.At(1, 1), m.At(1, 2))
	}
}

// ============================================================
// Attribute queries
// ============================================================

func TestAttr_RealImag(t *testing.T) {
	e, _ := lcapy.OmegaExpr("2 + 3*j*omega")
	re, err := e.Real()
	if err != nil {
		t.Fatalf("Real: %v", err)
	}
	if re.String() != "2" {
		t.Errorf("want 2, got %s", re.String())
	}
	im, err := e.Imag()
	if err != nil {
		t.Fatalf("Imag: %v", err)
	}
	if im.String() != "3*omega" {
		t.Errorf("want 3*omega, got %s", im.String())
	}
}

func TestAttr_Conj(t *testing.T) {
	e, _ := lcapy.ConstExpr("1 + 2*j")
	c, err := e.Conj().Evaluate(0)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if real(c) != 1 || imag(c) != -2 {
		t.Errorf("want 1 - 2j, got %v", c)
	}
}

func TestApplyOp_Diff(t *testing.T) {
	e, _ := lcapy.SExpr("s^2")
	d, err := e.ApplyOp("diff")
	if err != nil {
		t.Fatalf("ApplyOp: %v", err)
	}
	if d.String() != "2*s" {
		t.Errorf("want 2*s, got %s", d.String())
	}
}

// ============================================================
// Formatting
// ============================================================

func TestEngFormat(t *testing.T) {
	cases := []struct {
		value float64
		unit  string
		want  string
	}{
		{1.5e-9, "F", "1.5nF"},
		{4700, "ohm", "4.7kohm"},
		{0.02, "A", "20mA"},
		{0, "V", "0V"},
		{3, "", "3"},
	}
	for _, c := range cases {
		if got := lcapy.EngFormat(c.value, c.unit); got != c.want {
			t.Errorf("EngFormat(%g, %q): want %s, got %s", c.value, c.unit, c.want, got)
		}
	}
}

func TestFormatValue_UnitFromKind(t *testing.T) {
	e, _ := lcapy.TExpr("2*t")
	s, err := e.WithKind(lcapy.KindVoltage).FormatValue(0.001)
	if err != nil {
		t.Fatalf("FormatValue: %v", err)
	}
	if s != "2mV" {
		t.Errorf("want 2mV, got %s", s)
	}
}
