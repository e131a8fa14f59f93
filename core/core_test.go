package core_test

import (
	"math"
	"testing"

	"github.com/HotPushUpGuy420/lcapy/core"
)

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := core.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := core.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_Imaginary(t *testing.T) {
	if core.J().String() != "j" {
		t.Errorf("want j, got %s", core.J().String())
	}
	if core.Jn(-3).String() != "-3*j" {
		t.Errorf("want -3*j, got %s", core.Jn(-3).String())
	}
}

func TestNum_ComplexString(t *testing.T) {
	n := core.MulOf(core.J(), core.J())
	if n.String() != "-1" {
		t.Errorf("j*j should be -1, got %s", n.String())
	}
}

func TestNum_ComplexDivision(t *testing.T) {
	// (1 + j) / (1 - j) = j
	num := core.AddOf(core.N(1), core.J())
	den := core.AddOf(core.N(1), core.Jn(-1))
	q := core.QuoOf(num, den)
	v, ok := q.Eval()
	if !ok || v.String() != "j" {
		t.Errorf("(1+j)/(1-j) should be j, got %v", q)
	}
}

func TestNum_FloatIsExact(t *testing.T) {
	// 0.5 has an exact binary representation; the rational must be 1/2.
	n := core.NFloat(0.5)
	if n.String() != "1/2" {
		t.Errorf("want 1/2, got %s", n.String())
	}
}

// ============================================================
// Sym tests
// ============================================================

func TestSym_SubMatch(t *testing.T) {
	s := core.S("s")
	result := s.Sub("s", core.N(3))
	if result.String() != "3" {
		t.Errorf("want 3, got %s", result.String())
	}
}

func TestSym_PiEvals(t *testing.T) {
	v, ok := core.Pi().Eval()
	if !ok || math.Abs(v.Float64()-math.Pi) > 1e-12 {
		t.Errorf("pi should evaluate to 3.14159..., got %v", v)
	}
}

func TestSym_PiNotFree(t *testing.T) {
	e := core.MulOf(core.N(2), core.Pi(), core.S("f"))
	free := core.FreeSymbols(e)
	if free["pi"] {
		t.Errorf("pi should not be a free symbol")
	}
	if !free["f"] {
		t.Errorf("f should be a free symbol")
	}
}

// ============================================================
// Add / Mul / Pow tests
// ============================================================

func TestAdd_LikeTerms(t *testing.T) {
	x := core.S("x")
	expr := core.AddOf(x, x, x, core.N(2))
	if expr.String() != "3*x + 2" {
		t.Errorf("want '3*x + 2', got %s", expr.String())
	}
}

func TestAdd_OrdersByDegree(t *testing.T) {
	s := core.S("s")
	expr := core.AddOf(core.N(4), core.MulOf(core.N(5), s), core.PowOf(s, core.N(2)))
	if expr.String() != "s^2 + 5*s + 4" {
		t.Errorf("want 's^2 + 5*s + 4', got %s", expr.String())
	}
}

func TestMul_CombinesBases(t *testing.T) {
	x := core.S("x")
	expr := core.MulOf(x, x, core.PowOf(x, core.N(2)))
	if expr.String() != "x^4" {
		t.Errorf("want x^4, got %s", expr.String())
	}
}

func TestMul_ZeroAnnihilates(t *testing.T) {
	expr := core.MulOf(core.N(0), core.S("x"), core.SinOf(core.S("x")))
	if expr.String() != "0" {
		t.Errorf("want 0, got %s", expr.String())
	}
}

func TestPow_NumericFold(t *testing.T) {
	expr := core.PowOf(core.N(2), core.N(10))
	if expr.String() != "1024" {
		t.Errorf("want 1024, got %s", expr.String())
	}
}

func TestPow_JSquared(t *testing.T) {
	expr := core.PowOf(core.J(), core.N(2))
	if expr.String() != "-1" {
		t.Errorf("j^2 should be -1, got %s", expr.String())
	}
}

// ============================================================
// Quo tests — quotients keep their shape
// ============================================================

func TestQuo_KeepsShape(t *testing.T) {
	s := core.S("s")
	q := core.QuoOf(core.N(1), core.AddOf(s, core.N(2)))
	if q.String() != "1/(s + 2)" {
		t.Errorf("want '1/(s + 2)', got %s", q.String())
	}
	if q.Simplify().String() != "1/(s + 2)" {
		t.Errorf("Simplify must not merge a quotient, got %s", q.Simplify().String())
	}
}

func TestQuo_AddCombinesOverCommonDenominator(t *testing.T) {
	s := core.S("s")
	sum := core.AddOf(
		core.QuoOf(core.N(1), s),
		core.QuoOf(core.N(1), core.AddOf(s, core.N(1))),
	)
	q, ok := sum.(*core.Quo)
	if !ok {
		t.Fatalf("sum of quotients should be a quotient, got %T", sum)
	}
	// (2s + 1) / (s(s+1))
	num := core.Expand(q.Num()).Simplify()
	if num.String() != "2*s + 1" {
		t.Errorf("want numerator 2*s + 1, got %s", num.String())
	}
}

func TestQuo_Diff(t *testing.T) {
	// d/ds 1/(s+2) = -1/(s+2)^2; check numerically at s = 0: -1/4.
	s := core.S("s")
	d := core.QuoOf(core.N(1), core.AddOf(s, core.N(2))).Diff("s")
	v, ok := d.Sub("s", core.N(0)).Eval()
	if !ok || v.String() != "-1/4" {
		t.Errorf("want -1/4, got %v", v)
	}
}

// ============================================================
// Generalized function tests
// ============================================================

func TestStep_AtNumbers(t *testing.T) {
	if core.StepOf(core.N(3)).String() != "1" {
		t.Errorf("u(3) should be 1")
	}
	if core.StepOf(core.N(0)).String() != "1" {
		t.Errorf("u(0) should be 1")
	}
	if core.StepOf(core.N(-1)).String() != "0" {
		t.Errorf("u(-1) should be 0")
	}
}

func TestDelta_VanishesAwayFromZero(t *testing.T) {
	if core.DeltaOf(core.N(5)).String() != "0" {
		t.Errorf("delta(5) should be 0")
	}
	e := core.DeltaOf(core.S("t"))
	if e.String() != "delta(t)" {
		t.Errorf("want delta(t), got %s", e.String())
	}
}

func TestStep_DiffIsDelta(t *testing.T) {
	d := core.StepOf(core.S("t")).Diff("t").Simplify()
	if d.String() != "delta(t)" {
		t.Errorf("du/dt should be delta(t), got %s", d.String())
	}
}

// ============================================================
// Expand / Coeffs / PolyDiv tests
// ============================================================

func TestExpand_Product(t *testing.T) {
	s := core.S("s")
	e := core.Expand(core.MulOf(
		core.AddOf(s, core.N(1)),
		core.AddOf(s, core.N(4)),
	))
	if e.String() != "s^2 + 5*s + 4" {
		t.Errorf("want 's^2 + 5*s + 4', got %s", e.String())
	}
}

func TestExpand_Power(t *testing.T) {
	s := core.S("s")
	e := core.Expand(core.PowOf(core.AddOf(s, core.N(2)), core.N(2)))
	if e.String() != "s^2 + 4*s + 4" {
		t.Errorf("want 's^2 + 4*s + 4', got %s", e.String())
	}
}

func TestCoeffs_Symbolic(t *testing.T) {
	// a*s^2 + 3*s has coeff[2] = a.
	s := core.S("s")
	e := core.AddOf(
		core.MulOf(core.S("a"), core.PowOf(s, core.N(2))),
		core.MulOf(core.N(3), s),
	)
	coeffs, ok := core.Coeffs(e, "s")
	if !ok {
		t.Fatalf("Coeffs failed")
	}
	if coeffs[2].String() != "a" {
		t.Errorf("want coeff[2] = a, got %s", coeffs[2].String())
	}
	if coeffs[1].String() != "3" {
		t.Errorf("want coeff[1] = 3, got %s", coeffs[1].String())
	}
}

func TestDegree(t *testing.T) {
	s := core.S("s")
	e := core.AddOf(core.PowOf(s, core.N(3)), s, core.N(1))
	if d := core.Degree(e, "s"); d != 3 {
		t.Errorf("want degree 3, got %d", d)
	}
}

func TestPolyDiv(t *testing.T) {
	// (s^2 + 3s + 5) / (s + 1) = s + 2 remainder 3
	num := []core.Expr{core.N(5), core.N(3), core.N(1)}
	den := []core.Expr{core.N(1), core.N(1)}
	quo, rem := core.PolyDiv(num, den)
	if core.PolyExpr(quo, "s").String() != "s + 2" {
		t.Errorf("want quotient s + 2, got %s", core.PolyExpr(quo, "s").String())
	}
	if core.PolyExpr(rem, "s").String() != "3" {
		t.Errorf("want remainder 3, got %s", core.PolyExpr(rem, "s").String())
	}
}

// ============================================================
// Roots tests
// ============================================================

func findRoot(roots []core.Root, want core.Expr) bool {
	for _, r := range roots {
		if r.Value.Equal(want) {
			return true
		}
	}
	return false
}

func TestRoots_QuadraticRational(t *testing.T) {
	// s^2 + 5s + 4 -> {-1, -4}
	roots, ok := core.RootsOf([]*core.Num{core.N(4), core.N(5), core.N(1)})
	if !ok || len(roots) != 2 {
		t.Fatalf("want 2 roots, got %v", roots)
	}
	if !findRoot(roots, core.N(-1)) || !findRoot(roots, core.N(-4)) {
		t.Errorf("want roots -1 and -4, got %v", roots)
	}
}

func TestRoots_ComplexPairExact(t *testing.T) {
	// s^2 + 2s + 5 -> -1 +/- 2j
	roots, ok := core.RootsOf([]*core.Num{core.N(5), core.N(2), core.N(1)})
	if !ok || len(roots) != 2 {
		t.Fatalf("want 2 roots, got %v", roots)
	}
	want := core.AddOf(core.N(-1), core.Jn(2))
	if !findRoot(roots, want) {
		t.Errorf("want root -1 + 2j, got %v", roots)
	}
}

func TestRoots_CubicByDeflation(t *testing.T) {
	// (s+1)(s+2)(s+3) = s^3 + 6s^2 + 11s + 6
	roots, ok := core.RootsOf([]*core.Num{core.N(6), core.N(11), core.N(6), core.N(1)})
	if !ok || len(roots) != 3 {
		t.Fatalf("want 3 roots, got %v", roots)
	}
	for _, w := range []int64{-1, -2, -3} {
		if !findRoot(roots, core.N(w)) {
			t.Errorf("missing root %d in %v", w, roots)
		}
	}
}

func TestRoots_RepeatedRoot(t *testing.T) {
	// (s+2)^2 = s^2 + 4s + 4
	roots, ok := core.RootsOf([]*core.Num{core.N(4), core.N(4), core.N(1)})
	if !ok || len(roots) != 1 {
		t.Fatalf("want one distinct root, got %v", roots)
	}
	if roots[0].Mult != 2 || !roots[0].Value.Equal(core.N(-2)) {
		t.Errorf("want -2 with multiplicity 2, got %v", roots)
	}
}

func TestRoots_NumericFallback(t *testing.T) {
	// s^3 + s + 1 has no rational roots; the eigensolver takes over.
	roots, ok := core.RootsOf([]*core.Num{core.N(1), core.N(1), core.N(0), core.N(1)})
	if !ok || len(roots) != 3 {
		t.Fatalf("want 3 roots, got %v", roots)
	}
	found := false
	for _, r := range roots {
		c := r.Value.Complex128()
		if imag(c) == 0 && math.Abs(real(c)+0.6823278038) < 1e-6 {
			found = true
		}
	}
	if !found {
		t.Errorf("real root near -0.68233 missing in %v", roots)
	}
}

// ============================================================
// Parse tests
// ============================================================

func TestParse_Rational(t *testing.T) {
	e, err := core.Parse("5*(s^2+1)/(s^2+5*s+4)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	q, ok := e.(*core.Quo)
	if !ok {
		t.Fatalf("want a quotient, got %T", e)
	}
	if core.Expand(q.Num()).Simplify().String() != "5*s^2 + 5" {
		t.Errorf("want numerator 5*s^2 + 5, got %s", q.Num().String())
	}
}

func TestParse_DecimalIsExact(t *testing.T) {
	e, err := core.Parse("0.1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if e.String() != "1/10" {
		t.Errorf("0.1 should parse to 1/10, got %s", e.String())
	}
}

func TestParse_Functions(t *testing.T) {
	e, err := core.Parse("3*u(t) + DiracDelta(t)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if e.String() != "delta(t) + 3*u(t)" {
		t.Errorf("got %s", e.String())
	}
}

func TestParse_RejectsGarbage(t *testing.T) {
	if _, err := core.Parse("s + + 2"); err == nil {
		t.Errorf("want error for 's + + 2'")
	}
}

// ============================================================
// ReIm / Conj tests
// ============================================================

func TestReIm_Phasor(t *testing.T) {
	// R + j*omega*L: real part R, imaginary part omega*L.
	e := core.AddOf(
		core.S("R"),
		core.MulOf(core.J(), core.S("omega"), core.S("L")),
	)
	re, im, ok := core.ReIm(e)
	if !ok {
		t.Fatalf("ReIm failed")
	}
	if re.Simplify().String() != "R" {
		t.Errorf("want real part R, got %s", re.String())
	}
	if im.Simplify().String() != "L*omega" {
		t.Errorf("want imaginary part L*omega, got %s", im.String())
	}
}

func TestReIm_Quotient(t *testing.T) {
	// 1/(1+j) = 1/2 - j/2
	e := core.QuoOf(core.N(1), core.AddOf(core.N(1), core.J()))
	re, im, ok := core.ReIm(e)
	if !ok {
		t.Fatalf("ReIm failed")
	}
	rv, _ := re.Eval()
	iv, _ := im.Eval()
	if rv.String() != "1/2" || iv.String() != "-1/2" {
		t.Errorf("want 1/2 and -1/2, got %v and %v", rv, iv)
	}
}

func TestConj(t *testing.T) {
	e := core.AddOf(core.N(2), core.Jn(3))
	c, ok := core.Conj(e).Simplify().Eval()
	if !ok || !c.Equal(core.AddOf(core.N(2), core.Jn(-3))) {
		t.Errorf("conj(2+3j) should be 2-3j, got %v", c)
	}
}

// ============================================================
// Limit / Piecewise tests
// ============================================================

func TestLimit_LHopital(t *testing.T) {
	// lim_{x->0} sin(x)/x = 1
	x := core.S("x")
	v, ok := core.Limit(core.RawQuo(core.SinOf(x), x), "x", core.N(0))
	if !ok || v.String() != "1" {
		t.Errorf("want 1, got %v", v)
	}
}

func TestPiecewise_ResolvesForNonnegative(t *testing.T) {
	p := core.PiecewiseOf(core.ExpOf(core.MulOf(core.N(-2), core.S("t"))), "t")
	at1 := p.Sub("t", core.N(1))
	if _, ok := at1.(*core.Piecewise); ok {
		t.Errorf("t = 1 should resolve the branch, got %s", at1.String())
	}
	atNeg := p.Sub("t", core.N(-1))
	if _, ok := atNeg.(*core.Piecewise); !ok {
		t.Errorf("t = -1 should stay unresolved, got %s", atNeg.String())
	}
}
