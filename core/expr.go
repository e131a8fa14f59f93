// Package core is a small exact symbolic algebra kernel: complex rational
// constants, symbols, sums, products, powers, elementary and generalized
// functions, and the polynomial machinery needed to manipulate rational
// functions of a single variable.
//
// Constructors named XxxOf simplify on construction.  RawAdd, RawMul and
// RawQuo build the same nodes without the simplification pass; callers use
// them to produce expressions whose shape is part of the answer (factored
// forms, partial fractions) and must not be recombined.
package core

import (
	"sort"
	"strings"
)

// Expr is a symbolic expression node.
type Expr interface {
	// Simplify returns an equivalent, possibly smaller expression.
	Simplify() Expr
	// String renders in plain text, e.g. "5*s^2 + 5".
	String() string
	// LaTeX renders for typesetting.
	LaTeX() string
	// Sub substitutes value for every occurrence of the named symbol.
	Sub(name string, value Expr) Expr
	// Diff differentiates with respect to the named symbol.
	Diff(name string) Expr
	// Eval reduces to a single numeric value if possible.
	Eval() (*Num, bool)
	// Equal reports structural equality.
	Equal(other Expr) bool
}

// ---------------------------------------------------------------------------
// Sym

type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

// Pi is the circle constant as a symbol; Eval knows its value.
func Pi() *Sym { return &Sym{name: "pi"} }

func (s *Sym) Name() string    { return s.name }
func (s *Sym) Simplify() Expr  { return s }
func (s *Sym) String() string  { return s.name }
func (s *Sym) Diff(v string) Expr {
	if s.name == v {
		return N(1)
	}
	return N(0)
}

func (s *Sym) Sub(v string, value Expr) Expr {
	if s.name == v {
		return value
	}
	return s
}

func (s *Sym) Eval() (*Num, bool) {
	if s.name == "pi" {
		return NFloat(piFloat), true
	}
	return nil, false
}

func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && o.name == s.name
}

var latexNames = map[string]string{
	"omega":  "\\omega",
	"jomega": "j \\omega",
	"pi":     "\\pi",
	"alpha":  "\\alpha",
	"beta":   "\\beta",
	"tau":    "\\tau",
	"phi":    "\\phi",
	"theta":  "\\theta",
	"zeta":   "\\zeta",
}

func (s *Sym) LaTeX() string {
	if l, ok := latexNames[s.name]; ok {
		return l
	}
	return s.name
}

const piFloat = 3.141592653589793

// ---------------------------------------------------------------------------
// Add

type Add struct{ terms []Expr }

// AddOf builds a simplified sum.
func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// RawAdd builds a sum without simplification; the term order and shape are
// preserved exactly.
func RawAdd(terms ...Expr) Expr {
	switch len(terms) {
	case 0:
		return N(0)
	case 1:
		return terms[0]
	}
	return &Add{terms: terms}
}

// Terms exposes the summands of an unevaluated sum.
func (a *Add) Terms() []Expr { return a.terms }

func (a *Add) Simplify() Expr {
	// Flatten nested sums and fold constants.
	var flat []Expr
	num := N(0)
	quos := []*Quo{}
	for _, t := range a.terms {
		t = t.Simplify()
		switch v := t.(type) {
		case *Add:
			for _, inner := range v.terms {
				if n, ok := inner.(*Num); ok {
					num = numAdd(num, n)
				} else if q, ok := inner.(*Quo); ok {
					quos = append(quos, q)
				} else {
					flat = append(flat, inner)
				}
			}
		case *Num:
			num = numAdd(num, v)
		case *Quo:
			quos = append(quos, v)
		default:
			flat = append(flat, t)
		}
	}

	// Quotients pull everything over a common denominator.
	if len(quos) > 0 {
		n := Expr(num)
		d := Expr(N(1))
		for _, t := range flat {
			n = AddOf(n, MulOf(t, d))
		}
		for _, q := range quos {
			n = AddOf(MulOf(n, q.den), MulOf(q.num, d))
			d = MulOf(d, q.den)
		}
		return QuoOf(n, d)
	}

	// Combine like terms by their non-numeric part.
	type group struct {
		coeff *Num
		rest  Expr
	}
	order := []string{}
	groups := map[string]*group{}
	for _, t := range flat {
		c, rest := splitCoeff(t)
		key := rest.String()
		g, ok := groups[key]
		if !ok {
			g = &group{coeff: N(0), rest: rest}
			groups[key] = g
			order = append(order, key)
		}
		g.coeff = numAdd(g.coeff, c)
	}

	out := []Expr{}
	for _, key := range order {
		g := groups[key]
		if g.coeff.IsZero() {
			continue
		}
		if g.coeff.IsOne() {
			out = append(out, g.rest)
		} else {
			out = append(out, mulCoeff(g.coeff, g.rest))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := termDegree(out[i]), termDegree(out[j])
		if di != dj {
			return di > dj
		}
		_, ri := splitCoeff(out[i])
		_, rj := splitCoeff(out[j])
		return ri.String() < rj.String()
	})

	if !num.IsZero() {
		out = append(out, num)
	}
	switch len(out) {
	case 0:
		return N(0)
	case 1:
		return out[0]
	}
	return &Add{terms: out}
}

// splitCoeff separates a term into numeric coefficient and remainder.
func splitCoeff(e Expr) (*Num, Expr) {
	if m, ok := e.(*Mul); ok {
		coeff := N(1)
		rest := []Expr{}
		for _, f := range m.factors {
			if n, ok := f.(*Num); ok {
				coeff = numMul(coeff, n)
			} else {
				rest = append(rest, f)
			}
		}
		switch len(rest) {
		case 0:
			return coeff, N(1)
		case 1:
			return coeff, rest[0]
		default:
			return coeff, &Mul{factors: rest}
		}
	}
	if n, ok := e.(*Num); ok {
		return n, N(1)
	}
	return N(1), e
}

func mulCoeff(c *Num, rest Expr) Expr {
	if r, ok := rest.(*Num); ok {
		return numMul(c, r)
	}
	if m, ok := rest.(*Mul); ok {
		return &Mul{factors: append([]Expr{c}, m.factors...)}
	}
	return &Mul{factors: []Expr{c, rest}}
}

// termDegree orders printed sums with higher powers first.
func termDegree(e Expr) int {
	switch v := e.(type) {
	case *Sym:
		return 1
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsInteger() {
			return int(n.re.Num().Int64()) * termDegree(v.base)
		}
		return 1
	case *Mul:
		d := 0
		for _, f := range v.factors {
			d += termDegree(f)
		}
		return d
	}
	return 0
}

func (a *Add) String() string {
	parts := make([]string, 0, len(a.terms))
	for i, t := range a.terms {
		s := t.String()
		if i > 0 && strings.HasPrefix(s, "-") {
			parts = append(parts, "- "+strings.TrimPrefix(s, "-"))
		} else if i > 0 {
			parts = append(parts, "+ "+s)
		} else {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func (a *Add) LaTeX() string {
	parts := make([]string, 0, len(a.terms))
	for i, t := range a.terms {
		s := t.LaTeX()
		if i > 0 && strings.HasPrefix(s, "-") {
			parts = append(parts, "- "+strings.TrimPrefix(s, "-"))
		} else if i > 0 {
			parts = append(parts, "+ "+s)
		} else {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func (a *Add) Sub(v string, value Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Sub(v, value)
	}
	return AddOf(out...)
}

func (a *Add) Diff(v string) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Diff(v)
	}
	return AddOf(out...)
}

func (a *Add) Eval() (*Num, bool) {
	sum := N(0)
	for _, t := range a.terms {
		n, ok := t.Eval()
		if !ok {
			return nil, false
		}
		sum = numAdd(sum, n)
	}
	return sum, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(o.terms) != len(a.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Mul

type Mul struct{ factors []Expr }

// MulOf builds a simplified product.
func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// RawMul builds a product without simplification.
func RawMul(factors ...Expr) Expr {
	switch len(factors) {
	case 0:
		return N(1)
	case 1:
		return factors[0]
	}
	return &Mul{factors: factors}
}

// Factors exposes the factors of an unevaluated product.
func (m *Mul) Factors() []Expr { return m.factors }

func (m *Mul) Simplify() Expr {
	var flat []Expr
	coeff := N(1)
	quoNum := []Expr{}
	quoDen := []Expr{}
	push := func(f Expr) {
		switch v := f.(type) {
		case *Num:
			coeff = numMul(coeff, v)
		case *Quo:
			quoNum = append(quoNum, v.num)
			quoDen = append(quoDen, v.den)
		default:
			flat = append(flat, f)
		}
	}
	for _, f := range m.factors {
		f = f.Simplify()
		if inner, ok := f.(*Mul); ok {
			for _, g := range inner.factors {
				push(g)
			}
		} else {
			push(f)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}

	if len(quoDen) > 0 {
		n := []Expr{coeff}
		n = append(n, flat...)
		n = append(n, quoNum...)
		return QuoOf(MulOf(n...), MulOf(quoDen...))
	}

	// Merge factors with a common base: x * x^2 -> x^3.
	type group struct {
		base Expr
		exps []Expr
	}
	order := []string{}
	groups := map[string]*group{}
	for _, f := range flat {
		base, exp := asPow(f)
		key := base.String()
		g, ok := groups[key]
		if !ok {
			g = &group{base: base}
			groups[key] = g
			order = append(order, key)
		}
		g.exps = append(g.exps, exp)
	}

	out := []Expr{}
	for _, key := range order {
		g := groups[key]
		var f Expr
		if len(g.exps) == 1 {
			f = powMaybe(g.base, g.exps[0])
		} else {
			f = PowOf(g.base, AddOf(g.exps...))
		}
		switch v := f.(type) {
		case *Num:
			coeff = numMul(coeff, v)
		case *Mul:
			out = append(out, v.factors...)
		default:
			if !isOne(f) {
				out = append(out, f)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].String() < out[j].String() })

	if len(out) == 0 {
		return coeff
	}
	if coeff.IsOne() {
		if len(out) == 1 {
			return out[0]
		}
		return &Mul{factors: out}
	}
	return &Mul{factors: append([]Expr{coeff}, out...)}
}

func asPow(e Expr) (base, exp Expr) {
	if p, ok := e.(*Pow); ok {
		return p.base, p.exp
	}
	return e, N(1)
}

// powMaybe rebuilds a factor from a single (base, exp) pair without forcing
// a fresh simplification cycle.
func powMaybe(base, exp Expr) Expr {
	if isOne(exp) {
		return base
	}
	return PowOf(base, exp)
}

func isOne(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsOne()
}

func isZero(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsZero()
}

func mulNeedsParens(e Expr) bool {
	switch e.(type) {
	case *Add, *Quo, *Piecewise:
		return true
	}
	if n, ok := e.(*Num); ok {
		return n.im.Sign() != 0 && n.re.Sign() != 0
	}
	return false
}

func (m *Mul) String() string {
	parts := make([]string, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.String()
		if mulNeedsParens(f) && !strings.HasPrefix(s, "(") {
			s = "(" + s + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "*")
}

func (m *Mul) LaTeX() string {
	parts := make([]string, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.LaTeX()
		if mulNeedsParens(f) {
			s = "\\left(" + s + "\\right)"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func (m *Mul) Sub(v string, value Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Sub(v, value)
	}
	return MulOf(out...)
}

// Diff applies the product rule.
func (m *Mul) Diff(v string) Expr {
	terms := []Expr{}
	for i := range m.factors {
		fs := make([]Expr, len(m.factors))
		copy(fs, m.factors)
		fs[i] = m.factors[i].Diff(v)
		terms = append(terms, MulOf(fs...))
	}
	return AddOf(terms...)
}

func (m *Mul) Eval() (*Num, bool) {
	prod := N(1)
	for _, f := range m.factors {
		n, ok := f.Eval()
		if !ok {
			return nil, false
		}
		prod = numMul(prod, n)
	}
	return prod, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(o.factors) != len(m.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Pow

type Pow struct{ base, exp Expr }

// PowOf builds a simplified power.
func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

// RawPow builds a power without simplification.
func RawPow(base, exp Expr) Expr { return &Pow{base: base, exp: exp} }

func (p *Pow) Base() Expr { return p.base }
func (p *Pow) Exp() Expr  { return p.exp }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if n, ok := exp.(*Num); ok {
		if n.IsZero() {
			return N(1)
		}
		if n.IsOne() {
			return base
		}
		if bn, ok := base.(*Num); ok {
			if n.IsInteger() {
				e := n.re.Num().Int64()
				if bn.IsZero() && e < 0 {
					return &Pow{base: base, exp: exp}
				}
				if e > -64 && e < 64 {
					return numPowInt(bn, e)
				}
			}
			if n.Equal(F(1, 2)) && bn.IsReal() && bn.re.Sign() >= 0 {
				if sq, ok := ratSqrt(bn.re); ok {
					return realNum(sq)
				}
			}
		}
	}
	if bn, ok := base.(*Num); ok && bn.IsOne() {
		return N(1)
	}
	// (x^a)^b -> x^(a*b) for numeric exponents.
	if inner, ok := base.(*Pow); ok {
		if _, aNum := inner.exp.(*Num); aNum {
			if _, bNum := exp.(*Num); bNum {
				return PowOf(inner.base, MulOf(inner.exp, exp))
			}
		}
	}
	return &Pow{base: base, exp: exp}
}

func powBaseString(b Expr) string {
	s := b.String()
	switch b.(type) {
	case *Add, *Mul, *Quo:
		return "(" + s + ")"
	}
	if n, ok := b.(*Num); ok {
		if n.re.Sign() < 0 || !n.IsReal() || !n.re.IsInt() {
			return "(" + s + ")"
		}
	}
	return s
}

func (p *Pow) String() string {
	es := p.exp.String()
	switch p.exp.(type) {
	case *Add, *Mul, *Quo:
		es = "(" + es + ")"
	}
	if n, ok := p.exp.(*Num); ok && (n.re.Sign() < 0 || !n.re.IsInt() || !n.IsReal()) {
		es = "(" + es + ")"
	}
	return powBaseString(p.base) + "^" + es
}

func (p *Pow) LaTeX() string {
	bs := p.base.LaTeX()
	switch p.base.(type) {
	case *Add, *Mul, *Quo:
		bs = "\\left(" + bs + "\\right)"
	}
	return bs + "^{" + p.exp.LaTeX() + "}"
}

func (p *Pow) Sub(v string, value Expr) Expr {
	return PowOf(p.base.Sub(v, value), p.exp.Sub(v, value))
}

// Diff handles x^n (power rule) and a^x / general f^g via the logarithmic
// derivative.
func (p *Pow) Diff(v string) Expr {
	baseHasVar := containsSym(p.base, v)
	expHasVar := containsSym(p.exp, v)
	switch {
	case baseHasVar && !expHasVar:
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), p.base.Diff(v))
	case !baseHasVar && expHasVar:
		return MulOf(p, LnOf(p.base), p.exp.Diff(v))
	case baseHasVar && expHasVar:
		// f^g = exp(g ln f)
		return MulOf(p, AddOf(
			MulOf(p.exp.Diff(v), LnOf(p.base)),
			MulOf(p.exp, QuoOf(p.base.Diff(v), p.base)),
		))
	}
	return N(0)
}

func (p *Pow) Eval() (*Num, bool) {
	b, ok := p.base.Eval()
	if !ok {
		return nil, false
	}
	e, ok := p.exp.Eval()
	if !ok {
		return nil, false
	}
	if e.IsInteger() {
		n := e.re.Num().Int64()
		if b.IsZero() && n < 0 {
			return nil, false
		}
		return numPowInt(b, n), true
	}
	c := cmplxPow(b.Complex128(), e.Complex128())
	return NComplex(c), true
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

// containsSym reports whether the named symbol occurs in e.
func containsSym(e Expr, name string) bool {
	_, ok := FreeSymbols(e)[name]
	return ok
}
