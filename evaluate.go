package lcapy

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/HotPushUpGuy420/lcapy/core"
)

// Evaluate substitutes a numeric value for the domain variable and reduces
// the expression to a complex number.  Any other free symbol is an error;
// substitute parameters first.
func (e Expr) Evaluate(x float64) (complex128, error) {
	v := e.domain.VarName()
	free := core.FreeSymbols(e.expr)
	delete(free, v)
	for name := range free {
		return 0, fmt.Errorf("%w: free symbol %q; substitute it before evaluating",
			ErrNumericEval, name)
	}
	if v == "" {
		return evalNode(e.expr)
	}
	return evalNode(e.expr.Sub(v, core.NFloat(x)))
}

// evalNode evaluates a fully numeric expression.  Products are gated on
// their step and impulse factors: an exact zero there zeroes the whole
// product, so u(t) e^{-a t} at large negative t is 0 rather than the
// clamped exponential blowing the product up.
func evalNode(e core.Expr) (complex128, error) {
	switch n := e.(type) {
	case *core.Add:
		var sum complex128
		for _, t := range n.Terms() {
			c, err := evalNode(t)
			if err != nil {
				return 0, err
			}
			sum += c
		}
		return sum, nil

	case *core.Mul:
		gate := complex(1, 0)
		rest := []core.Expr{}
		for _, f := range n.Factors() {
			g, ok := f.(*core.Func)
			if !ok || (g.Name() != "u" && !isImpulseName(g.Name())) {
				rest = append(rest, f)
				continue
			}
			c, err := evalNode(g)
			if err != nil {
				return 0, err
			}
			if c == 0 {
				return 0, nil
			}
			gate *= c
		}
		prod := gate
		for _, f := range rest {
			c, err := evalNode(f)
			if err != nil {
				return 0, err
			}
			prod *= c
		}
		return prod, nil

	case *core.Quo:
		den, err := evalNode(n.Den())
		if err != nil {
			return 0, err
		}
		if den == 0 {
			return 0, fmt.Errorf("%w: division by zero in %s", ErrNumericEval, e)
		}
		num, err := evalNode(n.Num())
		if err != nil {
			return 0, err
		}
		return num / den, nil

	case *core.Piecewise:
		// Substitution left the wrapper in place, so the point is outside
		// the region of validity.
		return 0, fmt.Errorf("%w: %s is only valid for %s >= 0",
			ErrNumericEval, n.Expr(), n.VarName())
	}

	num, ok := e.Eval()
	if !ok {
		return 0, fmt.Errorf("%w: cannot evaluate %s", ErrNumericEval, e)
	}
	return num.Complex128(), nil
}

// EvaluateSlice evaluates at each point of xs.
func (e Expr) EvaluateSlice(xs []float64) ([]complex128, error) {
	out := make([]complex128, len(xs))
	for i, x := range xs {
		c, err := e.Evaluate(x)
		if err != nil {
			return nil, fmt.Errorf("at %s = %g: %w", e.domain.VarName(), x, err)
		}
		out[i] = c
	}
	return out, nil
}

// EvaluateMatrix evaluates at each point of xs and returns a len(xs) x 3
// dense matrix with columns x, re and im, ready for plotting or fitting.
func (e Expr) EvaluateMatrix(xs []float64) (*mat.Dense, error) {
	vals, err := e.EvaluateSlice(xs)
	if err != nil {
		return nil, err
	}
	m := mat.NewDense(len(xs), 3, nil)
	for i, c := range vals {
		m.Set(i, 0, xs[i])
		m.Set(i, 1, real(c))
		m.Set(i, 2, imag(c))
	}
	return m, nil
}

// EvaluateCVector evaluates at each point of xs into a complex column
// vector.
func (e Expr) EvaluateCVector(xs []float64) (*mat.CDense, error) {
	vals, err := e.EvaluateSlice(xs)
	if err != nil {
		return nil, err
	}
	m := mat.NewCDense(len(xs), 1, nil)
	for i, c := range vals {
		m.Set(i, 0, c)
	}
	return m, nil
}
