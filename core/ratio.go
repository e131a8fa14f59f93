package core

// NumerDenom splits an expression into numerator and denominator by
// structure: quotients, negative integer powers and sums over distinct
// denominators all land on the appropriate side.
func NumerDenom(e Expr) (num, den Expr) {
	switch v := e.(type) {
	case *Quo:
		nn, nd := NumerDenom(v.num)
		dn, dd := NumerDenom(v.den)
		return MulOf(nn, dd), MulOf(nd, dn)
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsInteger() && n.IsNegative() {
			k := -n.re.Num().Int64()
			return N(1), PowOf(v.base, N(k))
		}
		return e, N(1)
	case *Mul:
		num, den = N(1), N(1)
		for _, f := range v.factors {
			fn, fd := NumerDenom(f)
			num = MulOf(num, fn)
			den = MulOf(den, fd)
		}
		return num, den
	case *Add:
		num, den = N(0), N(1)
		for _, t := range v.terms {
			tn, td := NumerDenom(t)
			num = AddOf(MulOf(num, td), MulOf(tn, den))
			den = MulOf(den, td)
		}
		return num, den
	}
	return e, N(1)
}
