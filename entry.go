package lcapy

import (
	"fmt"
	"sort"

	"github.com/HotPushUpGuy420/lcapy/core"
)

// Entry points.  Each constructor accepts a string (parsed), a Go number,
// a registered *Symbol, a kernel expression or another Expr, and tags the
// result with a domain.

// toCore converts any accepted input form into a kernel expression.
func toCore(v interface{}) (core.Expr, error) {
	switch x := v.(type) {
	case core.Expr:
		return x, nil
	case Expr:
		return x.expr, nil
	case *Symbol:
		return core.S(x.name), nil
	case string:
		return core.Parse(x)
	case int:
		return core.N(int64(x)), nil
	case int64:
		return core.N(x), nil
	case float64:
		return core.NFloat(x), nil
	case complex128:
		return core.NComplex(x), nil
	}
	return nil, fmt.Errorf("lcapy: cannot use %T as an expression", v)
}

// checkForeignVars rejects expressions written in another domain's variable.
// omega and f are allowed everywhere since they double as ordinary sinusoid
// parameters (3*cos(omega*t) is a time-domain signal).
func checkForeignVars(e core.Expr, own Domain) error {
	free := core.FreeSymbols(e)
	for _, name := range []string{"t", "s", "jomega"} {
		if name == own.VarName() {
			continue
		}
		if free[name] {
			return fmt.Errorf("%w: %s appears in a %s-domain expression",
				ErrDomainMismatch, name, own)
		}
	}
	return nil
}

func makeExpr(v interface{}, d Domain) (Expr, error) {
	e, err := toCore(v)
	if err != nil {
		return Expr{}, err
	}
	if err := checkForeignVars(e, d); err != nil {
		return Expr{}, err
	}
	return Expr{expr: e, domain: d}, nil
}

// TExpr builds a time-domain expression in t.
func TExpr(v interface{}) (Expr, error) { return makeExpr(v, DomainTime) }

// SExpr builds a Laplace-domain expression in s.
func SExpr(v interface{}) (Expr, error) { return makeExpr(v, DomainLaplace) }

// FExpr builds a Fourier-domain expression in f (Hz).
func FExpr(v interface{}) (Expr, error) { return makeExpr(v, DomainFourier) }

// OmegaExpr builds an angular-Fourier-domain expression in omega (rad/s).
func OmegaExpr(v interface{}) (Expr, error) { return makeExpr(v, DomainAngularFourier) }

// PhasorExpr builds a phasor-domain expression in jomega.
func PhasorExpr(v interface{}) (Expr, error) { return makeExpr(v, DomainPhasor) }

// ConstExpr builds a domain-free constant; any domain variable in the
// input is an error.
func ConstExpr(v interface{}) (Expr, error) {
	e, err := toCore(v)
	if err != nil {
		return Expr{}, err
	}
	free := core.FreeSymbols(e)
	for name := range domainVarNames {
		if free[name] {
			return Expr{}, fmt.Errorf("%w: %s in a constant expression",
				ErrDomainMismatch, name)
		}
	}
	return Expr{expr: e, domain: DomainConst}, nil
}

// ExprOf infers the domain from the free symbols: exactly one domain
// variable tags the result, none makes it a constant, several are an error.
func ExprOf(v interface{}) (Expr, error) {
	e, err := toCore(v)
	if err != nil {
		return Expr{}, err
	}
	free := core.FreeSymbols(e)
	found := []Domain{}
	for _, d := range []Domain{DomainTime, DomainLaplace, DomainFourier,
		DomainAngularFourier, DomainPhasor} {
		if free[d.VarName()] {
			found = append(found, d)
		}
	}
	switch len(found) {
	case 0:
		return Expr{expr: e, domain: DomainConst}, nil
	case 1:
		return Expr{expr: e, domain: found[0]}, nil
	}
	return Expr{}, fmt.Errorf("%w: %s mixes %s and %s variables",
		ErrDomainMismatch, e, found[0], found[1])
}

// ExprList builds a slice of same-domain expressions.
func ExprList(d Domain, values ...interface{}) ([]Expr, error) {
	out := make([]Expr, 0, len(values))
	for i, v := range values {
		e, err := makeExpr(v, d)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// ExprMap builds a name-keyed map of same-domain expressions.
func ExprMap(d Domain, values map[string]interface{}) (map[string]Expr, error) {
	out := make(map[string]Expr, len(values))
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e, err := makeExpr(values[k], d)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", k, err)
		}
		out[k] = e
	}
	return out, nil
}
