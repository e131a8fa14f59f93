package core

// Quo is an unevaluated quotient.  Unlike Mul-with-negative-Pow it is a
// stable presentation: Simplify tidies the two sides but never merges the
// quotient into surrounding arithmetic, so a partial-fraction term or a
// factored ratio keeps its printed shape.
type Quo struct{ num, den Expr }

// QuoOf builds a quotient, collapsing only the trivial cases.
func QuoOf(num, den Expr) Expr {
	num = num.Simplify()
	den = den.Simplify()
	if isOne(den) {
		return num
	}
	if isZero(num) {
		return N(0)
	}
	if nn, ok := num.(*Num); ok {
		if dn, ok := den.(*Num); ok {
			return numDiv(nn, dn)
		}
	}
	// (a/b)/c and a/(b/c) flatten into a single quotient.
	if nq, ok := num.(*Quo); ok {
		return QuoOf(nq.num, MulOf(nq.den, den))
	}
	if dq, ok := den.(*Quo); ok {
		return QuoOf(MulOf(num, dq.den), dq.num)
	}
	return &Quo{num: num, den: den}
}

// RawQuo preserves both sides exactly as given.
func RawQuo(num, den Expr) Expr { return &Quo{num: num, den: den} }

func (q *Quo) Num() Expr { return q.num }
func (q *Quo) Den() Expr { return q.den }

func (q *Quo) Simplify() Expr {
	num := q.num.Simplify()
	den := q.den.Simplify()
	if isOne(den) {
		return num
	}
	if isZero(num) {
		return N(0)
	}
	if nn, ok := num.(*Num); ok {
		if dn, ok := den.(*Num); ok {
			return numDiv(nn, dn)
		}
	}
	return &Quo{num: num, den: den}
}

func quoSideString(e Expr) string {
	s := e.String()
	switch e.(type) {
	case *Add, *Mul, *Quo:
		return "(" + s + ")"
	}
	if n, ok := e.(*Num); ok && (n.re.Sign() < 0 || !n.IsReal() || !n.re.IsInt()) {
		return "(" + s + ")"
	}
	return s
}

func (q *Quo) String() string {
	return quoSideString(q.num) + "/" + quoSideString(q.den)
}

func (q *Quo) LaTeX() string {
	return "\\frac{" + q.num.LaTeX() + "}{" + q.den.LaTeX() + "}"
}

func (q *Quo) Sub(v string, value Expr) Expr {
	return QuoOf(q.num.Sub(v, value), q.den.Sub(v, value))
}

// Diff uses the quotient rule, keeping the result a quotient.
func (q *Quo) Diff(v string) Expr {
	num := AddOf(
		MulOf(q.num.Diff(v), q.den),
		MulOf(N(-1), q.num, q.den.Diff(v)),
	)
	return QuoOf(num, MulOf(q.den, q.den))
}

func (q *Quo) Eval() (*Num, bool) {
	n, ok := q.num.Eval()
	if !ok {
		return nil, false
	}
	d, ok := q.den.Eval()
	if !ok || d.IsZero() {
		return nil, false
	}
	return numDiv(n, d), true
}

func (q *Quo) Equal(other Expr) bool {
	o, ok := other.(*Quo)
	return ok && q.num.Equal(o.num) && q.den.Equal(o.den)
}

// ---------------------------------------------------------------------------

// Piecewise is a one-branch conditional: the expression holds for
// varName >= 0 and is unspecified elsewhere.  It is how an inverse Laplace
// transform without causality information reports its region of validity.
type Piecewise struct {
	expr    Expr
	varName string
}

func PiecewiseOf(e Expr, varName string) *Piecewise {
	return &Piecewise{expr: e, varName: varName}
}

func (p *Piecewise) Expr() Expr      { return p.expr }
func (p *Piecewise) VarName() string { return p.varName }

func (p *Piecewise) Simplify() Expr {
	return &Piecewise{expr: p.expr.Simplify(), varName: p.varName}
}

func (p *Piecewise) String() string {
	return "Piecewise((" + p.expr.String() + ", " + p.varName + " >= 0))"
}

func (p *Piecewise) LaTeX() string {
	return "\\begin{cases}" + p.expr.LaTeX() + " & " + p.varName + " \\geq 0\\end{cases}"
}

// Sub resolves the branch when the condition variable is replaced with a
// non-negative real number; for negative values the expression stays
// wrapped, since the value there is unknown.
func (p *Piecewise) Sub(v string, value Expr) Expr {
	inner := p.expr.Sub(v, value)
	if v == p.varName {
		if n, ok := value.(*Num); ok && n.IsReal() && n.re.Sign() >= 0 {
			return inner
		}
	}
	return &Piecewise{expr: inner, varName: p.varName}
}

func (p *Piecewise) Diff(v string) Expr {
	return &Piecewise{expr: p.expr.Diff(v), varName: p.varName}
}

func (p *Piecewise) Eval() (*Num, bool) { return nil, false }

func (p *Piecewise) Equal(other Expr) bool {
	o, ok := other.(*Piecewise)
	return ok && p.varName == o.varName && p.expr.Equal(o.expr)
}
