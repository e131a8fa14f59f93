package core

import (
	"math"
	"math/cmplx"
	"strings"
)

// Func is a named function application.  Most functions take one argument;
// atan2 takes two.
type Func struct {
	name string
	args []Expr
}

func funcOf(name string, args ...Expr) Expr {
	return (&Func{name: name, args: args}).Simplify()
}

func SinOf(x Expr) Expr       { return funcOf("sin", x) }
func CosOf(x Expr) Expr       { return funcOf("cos", x) }
func ExpOf(x Expr) Expr       { return funcOf("exp", x) }
func LnOf(x Expr) Expr        { return funcOf("ln", x) }
func SqrtOf(x Expr) Expr      { return funcOf("sqrt", x) }
func AbsOf(x Expr) Expr       { return funcOf("abs", x) }
func Atan2Of(y, x Expr) Expr  { return funcOf("atan2", y, x) }

// StepOf is the Heaviside step u(x), with u(0) = 1.
func StepOf(x Expr) Expr { return funcOf("u", x) }

// DeltaOf is the Dirac impulse.
func DeltaOf(x Expr) Expr { return funcOf("delta", x) }

// DeltaN is the n-th derivative of the Dirac impulse (n = 0 is delta
// itself, n = 1 the doublet).
func DeltaN(n int, x Expr) Expr {
	return funcOf("delta"+strings.Repeat("'", n), x)
}

func (f *Func) Name() string { return f.name }
func (f *Func) Args() []Expr { return f.args }

// Arg returns the sole argument of a single-argument function.
func (f *Func) Arg() Expr { return f.args[0] }

func isDeltaName(name string) bool { return strings.HasPrefix(name, "delta") }

// deltaOrder returns n for delta followed by n primes.
func deltaOrder(name string) int { return strings.Count(name, "'") }

func (f *Func) Simplify() Expr {
	args := make([]Expr, len(f.args))
	for i, a := range f.args {
		args[i] = a.Simplify()
	}
	if len(args) == 1 {
		arg := args[0]
		n, numeric := arg.(*Num)
		switch f.name {
		case "sin":
			if numeric && n.IsZero() {
				return N(0)
			}
		case "cos":
			if numeric && n.IsZero() {
				return N(1)
			}
		case "exp":
			if numeric && n.IsZero() {
				return N(1)
			}
			if inner, ok := arg.(*Func); ok && inner.name == "ln" {
				return inner.args[0]
			}
		case "ln":
			if numeric && n.IsOne() {
				return N(0)
			}
			if inner, ok := arg.(*Func); ok && inner.name == "exp" {
				return inner.args[0]
			}
		case "sqrt":
			if numeric && n.IsReal() && n.re.Sign() >= 0 {
				if sq, ok := ratSqrt(n.re); ok {
					return realNum(sq)
				}
			}
		case "abs":
			if numeric {
				return numAbs(n)
			}
		case "u":
			if numeric && n.IsReal() {
				if n.re.Sign() >= 0 {
					return N(1)
				}
				return N(0)
			}
		default:
			if isDeltaName(f.name) && numeric && !n.IsZero() {
				return N(0)
			}
		}
	}
	return &Func{name: f.name, args: args}
}

func (f *Func) String() string {
	parts := make([]string, len(f.args))
	for i, a := range f.args {
		parts[i] = a.String()
	}
	return f.name + "(" + strings.Join(parts, ", ") + ")"
}

func (f *Func) LaTeX() string {
	arg := f.args[0].LaTeX()
	switch f.name {
	case "exp":
		return "e^{" + arg + "}"
	case "sqrt":
		return "\\sqrt{" + arg + "}"
	case "abs":
		return "\\left|" + arg + "\\right|"
	case "u":
		return "u\\left(" + arg + "\\right)"
	case "atan2":
		return "\\operatorname{atan2}\\left(" + arg + ", " + f.args[1].LaTeX() + "\\right)"
	}
	if isDeltaName(f.name) {
		o := deltaOrder(f.name)
		if o == 0 {
			return "\\delta\\left(" + arg + "\\right)"
		}
		return "\\delta" + strings.Repeat("'", o) + "\\left(" + arg + "\\right)"
	}
	return "\\" + f.name + "\\left(" + arg + "\\right)"
}

func (f *Func) Sub(v string, value Expr) Expr {
	args := make([]Expr, len(f.args))
	for i, a := range f.args {
		args[i] = a.Sub(v, value)
	}
	return funcOf(f.name, args...)
}

// Diff applies the chain rule: d/dx f(g) = f'(g) * g'.
func (f *Func) Diff(v string) Expr {
	if len(f.args) != 1 {
		return funcOf("D["+f.name+"]", f.args...)
	}
	arg := f.args[0]
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(arg)
	case "cos":
		outer = MulOf(N(-1), SinOf(arg))
	case "exp":
		outer = ExpOf(arg)
	case "ln":
		outer = PowOf(arg, N(-1))
	case "sqrt":
		outer = MulOf(F(1, 2), PowOf(arg, F(-1, 2)))
	case "u":
		outer = DeltaOf(arg)
	default:
		if isDeltaName(f.name) {
			outer = funcOf(f.name+"'", arg)
		} else {
			outer = funcOf("D["+f.name+"]", arg)
		}
	}
	return MulOf(outer, arg.Diff(v))
}

func (f *Func) Eval() (*Num, bool) {
	vals := make([]complex128, len(f.args))
	for i, a := range f.args {
		n, ok := a.Eval()
		if !ok {
			return nil, false
		}
		vals[i] = n.Complex128()
	}
	c, ok := evalFunc(f.name, vals)
	if !ok {
		return nil, false
	}
	return NComplex(c), true
}

// evalFunc evaluates a named function at numeric arguments.  Impulses have
// no finite value at zero.
func evalFunc(name string, vals []complex128) (complex128, bool) {
	x := vals[0]
	switch name {
	case "sin":
		return cmplx.Sin(x), true
	case "cos":
		return cmplx.Cos(x), true
	case "exp":
		// Clamp huge real arguments so transient tails evaluate to a
		// large finite value instead of overflowing to +Inf.
		if real(x) > expArgClamp {
			x = complex(expArgClamp, imag(x))
		}
		return cmplx.Exp(x), true
	case "ln":
		if x == 0 {
			return 0, false
		}
		return cmplx.Log(x), true
	case "sqrt":
		return cmplx.Sqrt(x), true
	case "abs":
		return complex(cmplx.Abs(x), 0), true
	case "atan2":
		return complex(math.Atan2(real(x), real(vals[1])), 0), true
	case "u":
		if real(x) >= 0 {
			return 1, true
		}
		return 0, true
	}
	if isDeltaName(name) {
		if x == 0 {
			return 0, false
		}
		return 0, true
	}
	return 0, false
}

const expArgClamp = 500.0

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	if !ok || o.name != f.name || len(o.args) != len(f.args) {
		return false
	}
	for i := range f.args {
		if !f.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

func cmplxPow(b, e complex128) complex128 { return cmplx.Pow(b, e) }
