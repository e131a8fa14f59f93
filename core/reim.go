package core

// hasImag reports whether any numeric constant in e has an imaginary part.
func hasImag(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.im.Sign() != 0
	case *Add:
		for _, t := range v.terms {
			if hasImag(t) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if hasImag(f) {
				return true
			}
		}
	case *Pow:
		return hasImag(v.base) || hasImag(v.exp)
	case *Func:
		for _, a := range v.args {
			if hasImag(a) {
				return true
			}
		}
	case *Quo:
		return hasImag(v.num) || hasImag(v.den)
	case *Piecewise:
		return hasImag(v.expr)
	}
	return false
}

// ReIm splits e into real and imaginary parts, treating every symbol as a
// real quantity.  Returns false for shapes it cannot split (functions of
// complex arguments, symbolic exponents over complex bases).
func ReIm(e Expr) (re, im Expr, ok bool) {
	if !hasImag(e) {
		return e.Simplify(), N(0), true
	}
	switch v := e.(type) {
	case *Num:
		return realNum(v.Re()), realNum(v.Im()), true
	case *Add:
		res := []Expr{}
		ims := []Expr{}
		for _, t := range v.terms {
			r, i, ok := ReIm(t)
			if !ok {
				return nil, nil, false
			}
			res = append(res, r)
			ims = append(ims, i)
		}
		return AddOf(res...), AddOf(ims...), true
	case *Mul:
		re, im := Expr(N(1)), Expr(N(0))
		for _, f := range v.factors {
			fr, fi, ok := ReIm(f)
			if !ok {
				return nil, nil, false
			}
			re, im = AddOf(MulOf(re, fr), MulOf(N(-1), im, fi)),
				AddOf(MulOf(re, fi), MulOf(im, fr))
		}
		return re, im, true
	case *Pow:
		n, isNum := v.exp.(*Num)
		if !isNum || !n.IsInteger() {
			return nil, nil, false
		}
		k := n.re.Num().Int64()
		if k >= 0 {
			return ReIm(Expand(v))
		}
		r, i, ok := ReIm(QuoOf(N(1), Expand(PowOf(v.base, N(-k)))))
		return r, i, ok
	case *Quo:
		nr, ni, ok := ReIm(v.num)
		if !ok {
			return nil, nil, false
		}
		dr, di, ok := ReIm(v.den)
		if !ok {
			return nil, nil, false
		}
		// Multiply through by the conjugate of the denominator.
		mag := AddOf(MulOf(dr, dr), MulOf(di, di))
		re := QuoOf(AddOf(MulOf(nr, dr), MulOf(ni, di)), mag)
		im := QuoOf(AddOf(MulOf(ni, dr), MulOf(N(-1), nr, di)), mag)
		return re, im, true
	case *Func:
		// Euler: exp(a + jb) = e^a (cos b + j sin b).
		if v.name == "exp" && len(v.args) == 1 {
			ar, ai, ok := ReIm(v.args[0])
			if !ok {
				return nil, nil, false
			}
			mag := ExpOf(ar)
			return MulOf(mag, CosOf(ai)), MulOf(mag, SinOf(ai)), true
		}
	}
	return nil, nil, false
}

// Conj conjugates every numeric constant; for the expressions this kernel
// produces (symbols real) that is complex conjugation.
func Conj(e Expr) Expr {
	switch v := e.(type) {
	case *Num:
		return numConj(v)
	case *Add:
		out := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			out[i] = Conj(t)
		}
		return RawAdd(out...)
	case *Mul:
		out := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			out[i] = Conj(f)
		}
		return RawMul(out...)
	case *Pow:
		return RawPow(Conj(v.base), Conj(v.exp))
	case *Func:
		out := make([]Expr, len(v.args))
		for i, a := range v.args {
			out[i] = Conj(a)
		}
		return &Func{name: v.name, args: out}
	case *Quo:
		return RawQuo(Conj(v.num), Conj(v.den))
	case *Piecewise:
		return &Piecewise{expr: Conj(v.expr), varName: v.varName}
	}
	return e
}
