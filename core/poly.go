package core

import "sort"

// FreeSymbols collects the symbol names occurring in e.  The constant pi is
// not free.
func FreeSymbols(e Expr) map[string]bool {
	out := map[string]bool{}
	collectSymbols(e, out)
	return out
}

func collectSymbols(e Expr, out map[string]bool) {
	switch v := e.(type) {
	case *Sym:
		if v.name != "pi" {
			out[v.name] = true
		}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		for _, a := range v.args {
			collectSymbols(a, out)
		}
	case *Quo:
		collectSymbols(v.num, out)
		collectSymbols(v.den, out)
	case *Piecewise:
		collectSymbols(v.expr, out)
	}
}

// Sub is the package-level convenience form of Expr.Sub.
func Sub(e Expr, name string, value Expr) Expr { return e.Sub(name, value) }

// Diff differentiates once; DiffN differentiates n times.
func Diff(e Expr, name string) Expr { return e.Diff(name).Simplify() }

func DiffN(e Expr, name string, n int) Expr {
	for i := 0; i < n; i++ {
		e = e.Diff(name).Simplify()
	}
	return e
}

// Expand distributes products over sums and multiplies out small integer
// powers of sums.
func Expand(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		out := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			out[i] = Expand(t)
		}
		return AddOf(out...)
	case *Mul:
		terms := []Expr{N(1)}
		for _, f := range v.factors {
			ef := Expand(f)
			var addends []Expr
			if a, ok := ef.(*Add); ok {
				addends = a.terms
			} else {
				addends = []Expr{ef}
			}
			next := make([]Expr, 0, len(terms)*len(addends))
			for _, t := range terms {
				for _, a := range addends {
					next = append(next, MulOf(t, a))
				}
			}
			terms = next
		}
		return AddOf(terms...)
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsInteger() && n.IsPositive() {
			k := n.re.Num().Int64()
			if k <= 16 {
				base := Expand(v.base)
				if _, isAdd := base.(*Add); isAdd {
					out := Expr(N(1))
					for i := int64(0); i < k; i++ {
						out = Expand(MulOf(out, base))
					}
					return out
				}
				return PowOf(base, v.exp)
			}
		}
		return PowOf(Expand(v.base), Expand(v.exp))
	case *Quo:
		return QuoOf(Expand(v.num), Expand(v.den))
	case *Piecewise:
		return &Piecewise{expr: Expand(v.expr), varName: v.varName}
	}
	return e
}

// Collect rewrites a polynomial grouped by powers of the named symbol.
func Collect(e Expr, name string) Expr {
	coeffs, ok := Coeffs(e, name)
	if !ok {
		return e.Simplify()
	}
	degs := make([]int, 0, len(coeffs))
	for d := range coeffs {
		degs = append(degs, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(degs)))
	terms := []Expr{}
	for _, d := range degs {
		c := coeffs[d].Simplify()
		if isZero(c) {
			continue
		}
		switch d {
		case 0:
			terms = append(terms, c)
		case 1:
			terms = append(terms, MulOf(c, S(name)))
		default:
			terms = append(terms, MulOf(c, PowOf(S(name), N(int64(d)))))
		}
	}
	return RawAdd(terms...)
}

// Degree is the highest power of the named symbol, or -1 when e is not a
// polynomial in it.
func Degree(e Expr, name string) int {
	coeffs, ok := Coeffs(e, name)
	if !ok {
		return -1
	}
	max := 0
	for d := range coeffs {
		if d > max {
			max = d
		}
	}
	return max
}

// Coeffs extracts polynomial coefficients (possibly symbolic) of e in the
// named symbol, keyed by degree.  Returns false when e is not polynomial in
// that symbol.
func Coeffs(e Expr, name string) (map[int]Expr, bool) {
	out := map[int]Expr{}
	if !accumCoeffs(Expand(e).Simplify(), name, out) {
		return nil, false
	}
	if len(out) == 0 {
		out[0] = N(0)
	}
	return out, true
}

func accumCoeffs(e Expr, name string, out map[int]Expr) bool {
	addCoeff := func(d int, c Expr) {
		if prev, ok := out[d]; ok {
			out[d] = AddOf(prev, c)
		} else {
			out[d] = c
		}
	}
	if a, ok := e.(*Add); ok {
		for _, t := range a.terms {
			if !accumCoeffs(t, name, out) {
				return false
			}
		}
		return true
	}
	d, c, ok := termPower(e, name)
	if !ok {
		return false
	}
	addCoeff(d, c)
	return true
}

// termPower decomposes a single term as c * name^d.
func termPower(e Expr, name string) (int, Expr, bool) {
	if !containsSym(e, name) {
		return 0, e, true
	}
	switch v := e.(type) {
	case *Sym:
		if v.name == name {
			return 1, N(1), true
		}
	case *Pow:
		if b, ok := v.base.(*Sym); ok && b.name == name {
			if n, ok := v.exp.(*Num); ok && n.IsInteger() && n.IsPositive() {
				return int(n.re.Num().Int64()), N(1), true
			}
		}
		return 0, nil, false
	case *Mul:
		deg := 0
		coeff := []Expr{}
		for _, f := range v.factors {
			d, c, ok := termPower(f, name)
			if !ok {
				return 0, nil, false
			}
			deg += d
			coeff = append(coeff, c)
		}
		return deg, MulOf(coeff...), true
	case *Quo:
		if containsSym(v.den, name) {
			return 0, nil, false
		}
		d, c, ok := termPower(v.num, name)
		if !ok {
			return 0, nil, false
		}
		return d, QuoOf(c, v.den), true
	}
	return 0, nil, false
}

// coeffSlice converts a degree-keyed coefficient map to a dense slice,
// low degree first.
func coeffSlice(coeffs map[int]Expr) []Expr {
	max := 0
	for d := range coeffs {
		if d > max {
			max = d
		}
	}
	out := make([]Expr, max+1)
	for i := range out {
		out[i] = N(0)
	}
	for d, c := range coeffs {
		out[d] = c
	}
	return out
}

// polyTrim drops leading zero coefficients.
func polyTrim(p []Expr) []Expr {
	if len(p) == 0 {
		return []Expr{N(0)}
	}
	n := len(p)
	for n > 1 && isZero(p[n-1].Simplify()) {
		n--
	}
	return p[:n]
}

// PolyDiv divides polynomial num by den (dense coefficient slices, low
// degree first), returning quotient and remainder.  Coefficients may be
// symbolic.
func PolyDiv(num, den []Expr) (quo, rem []Expr) {
	num = polyTrim(num)
	den = polyTrim(den)
	rem = make([]Expr, len(num))
	copy(rem, num)
	dd := len(den) - 1
	lead := den[dd]
	if len(rem)-1 < dd {
		return []Expr{N(0)}, rem
	}
	quo = make([]Expr, len(rem)-dd)
	for i := range quo {
		quo[i] = N(0)
	}
	for len(rem)-1 >= dd {
		rd := len(rem) - 1
		c := QuoOf(rem[rd], lead)
		quo[rd-dd] = c
		for i := 0; i <= dd; i++ {
			rem[rd-dd+i] = AddOf(rem[rd-dd+i], MulOf(N(-1), c, den[i])).Simplify()
		}
		rem = polyTrim(rem[:rd])
		if rd == 0 {
			break
		}
	}
	for i := range quo {
		quo[i] = quo[i].Simplify()
	}
	return polyTrim(quo), polyTrim(rem)
}

// PolyExpr rebuilds an expression from dense coefficients, highest power
// first, without re-simplifying the sum.
func PolyExpr(coeffs []Expr, name string) Expr {
	terms := []Expr{}
	for d := len(coeffs) - 1; d >= 0; d-- {
		c := coeffs[d].Simplify()
		if isZero(c) {
			continue
		}
		switch d {
		case 0:
			terms = append(terms, c)
		case 1:
			terms = append(terms, MulOf(c, S(name)))
		default:
			terms = append(terms, MulOf(c, PowOf(S(name), N(int64(d)))))
		}
	}
	if len(terms) == 0 {
		return N(0)
	}
	return RawAdd(terms...)
}

// Limit evaluates lim_{name -> point} e by substitution, applying
// L'Hopital's rule to 0/0 quotients a bounded number of times.
func Limit(e Expr, name string, point Expr) (Expr, bool) {
	for i := 0; i < 8; i++ {
		if q, ok := e.Simplify().(*Quo); ok {
			n := q.num.Sub(name, point).Simplify()
			d := q.den.Sub(name, point).Simplify()
			if isZero(n) && isZero(d) {
				e = RawQuo(q.num.Diff(name), q.den.Diff(name))
				continue
			}
			if isZero(d) {
				return nil, false
			}
			return QuoOf(n, d), true
		}
		return e.Sub(name, point).Simplify(), true
	}
	return nil, false
}
