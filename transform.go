package lcapy

import (
	"fmt"

	"github.com/HotPushUpGuy420/lcapy/core"
)

// TransformOpt tunes how a transform disambiguates its result.
type TransformOpt func(*transformOpts)

type transformOpts struct {
	causal    bool
	dc        bool
	ac        bool
	dampedSin bool
}

// WithCausal asserts the time function is zero for t < 0, so an inverse
// Laplace transform returns f(t)*u(t) instead of a piecewise result.
func WithCausal() TransformOpt { return func(o *transformOpts) { o.causal = true } }

// WithDC asserts the spectrum is that of a constant.
func WithDC() TransformOpt { return func(o *transformOpts) { o.dc = true } }

// WithAC asserts a sinusoidal steady state; the result is a closed-form
// sinusoid with no region-of-validity wrapper.
func WithAC() TransformOpt { return func(o *transformOpts) { o.ac = true } }

// WithDampedSin folds a conjugate pole pair into a single damped sine.
func WithDampedSin() TransformOpt { return func(o *transformOpts) { o.dampedSin = true } }

// Apply implements the call rule: handing an expression its own domain
// variable is the identity, another domain's variable invokes the transform
// engine, and any other value substitutes for the domain variable.
func (e Expr) Apply(arg interface{}, opts ...TransformOpt) (Expr, error) {
	if dv, ok := arg.(*DomainVar); ok {
		if dv.domain == e.domain {
			return e, nil
		}
		return e.Transform(dv, opts...)
	}
	return e.Substitute(arg)
}

// Substitute replaces the domain variable with a value, bypassing the
// transform rule even if the value is a domain variable's worth of
// expression.
func (e Expr) Substitute(value interface{}) (Expr, error) {
	v, err := toCore(value)
	if err != nil {
		return Expr{}, err
	}
	out := e.expr.Sub(e.domain.VarName(), v)
	d := e.domain
	if _, isNum := v.(*core.Num); isNum {
		d = DomainConst
	}
	return Expr{expr: out, domain: d, kind: e.kind, assume: e.assume}, nil
}

// Transform converts to the target domain unconditionally.
func (e Expr) Transform(dv *DomainVar, opts ...TransformOpt) (Expr, error) {
	var o transformOpts
	for _, opt := range opts {
		opt(&o)
	}
	if e.domain == dv.domain {
		return e, nil
	}
	if e.domain == DomainConst {
		// Constants are domain-agnostic: retag.
		out := e
		out.domain = dv.domain
		return out, nil
	}
	path, ok := transformRoutes[[2]Domain{e.domain, dv.domain}]
	if !ok {
		return Expr{}, fmt.Errorf("%w: no route from %s to %s",
			ErrTransformNotFound, e.domain, dv.domain)
	}
	cur := e
	var err error
	for _, hop := range path {
		cur, err = cur.transformStep(hop, o)
		if err != nil {
			return Expr{}, fmt.Errorf("transform %s to %s: %w", e.domain, dv.domain, err)
		}
	}
	return cur, nil
}

// transformRoutes lists each reachable pair as a chain of primitive hops.
var transformRoutes = map[[2]Domain][]Domain{
	{DomainTime, DomainLaplace}:           {DomainLaplace},
	{DomainLaplace, DomainTime}:           {DomainTime},
	{DomainTime, DomainFourier}:           {DomainFourier},
	{DomainFourier, DomainTime}:           {DomainTime},
	{DomainLaplace, DomainAngularFourier}: {DomainAngularFourier},
	{DomainAngularFourier, DomainLaplace}: {DomainLaplace},
	{DomainFourier, DomainAngularFourier}: {DomainAngularFourier},
	{DomainAngularFourier, DomainFourier}: {DomainFourier},
	{DomainLaplace, DomainPhasor}:         {DomainPhasor},
	{DomainPhasor, DomainLaplace}:         {DomainLaplace},
	{DomainPhasor, DomainAngularFourier}:  {DomainAngularFourier},

	{DomainTime, DomainAngularFourier}:    {DomainFourier, DomainAngularFourier},
	{DomainAngularFourier, DomainTime}:    {DomainFourier, DomainTime},
	{DomainTime, DomainPhasor}:            {DomainLaplace, DomainPhasor},
	{DomainPhasor, DomainTime}:            {DomainLaplace, DomainTime},
	{DomainFourier, DomainLaplace}:        {DomainAngularFourier, DomainLaplace},
	{DomainLaplace, DomainFourier}:        {DomainAngularFourier, DomainFourier},
	{DomainFourier, DomainPhasor}:         {DomainAngularFourier, DomainLaplace, DomainPhasor},
	{DomainPhasor, DomainFourier}:         {DomainAngularFourier, DomainFourier},
	{DomainAngularFourier, DomainPhasor}:  {DomainLaplace, DomainPhasor},
}

// transformStep performs one primitive hop.
func (e Expr) transformStep(to Domain, o transformOpts) (Expr, error) {
	var out core.Expr
	var err error
	switch {
	case e.domain == DomainTime && to == DomainLaplace:
		out, err = forwardLaplace(e.expr)
	case e.domain == DomainLaplace && to == DomainTime:
		out, err = inverseLaplace(e.expr, o, e.assume.merge(e.Assumptions0()))
	case e.domain == DomainTime && to == DomainFourier:
		out, err = forwardFourier(e.expr)
	case e.domain == DomainFourier && to == DomainTime:
		out, err = inverseFourier(e.expr, o)
	case e.domain == DomainLaplace && to == DomainAngularFourier:
		// s = j omega
		out = e.expr.Sub("s", core.MulOf(core.J(), core.S("omega")))
	case e.domain == DomainAngularFourier && to == DomainLaplace:
		// omega = -j s
		out = e.expr.Sub("omega", core.MulOf(core.Jn(-1), core.S("s")))
	case e.domain == DomainFourier && to == DomainAngularFourier:
		// f = omega / (2 pi)
		out = e.expr.Sub("f", core.QuoOf(core.S("omega"), core.MulOf(core.N(2), core.Pi())))
	case e.domain == DomainAngularFourier && to == DomainFourier:
		// omega = 2 pi f
		out = e.expr.Sub("omega", core.MulOf(core.N(2), core.Pi(), core.S("f")))
	case e.domain == DomainLaplace && to == DomainPhasor:
		// The phasor variable stands for the whole of j omega.
		out = e.expr.Sub("s", core.S("jomega"))
	case e.domain == DomainPhasor && to == DomainLaplace:
		out = e.expr.Sub("jomega", core.S("s"))
	case e.domain == DomainPhasor && to == DomainAngularFourier:
		out = e.expr.Sub("jomega", core.MulOf(core.J(), core.S("omega")))
	default:
		return Expr{}, fmt.Errorf("%w: %s to %s", ErrTransformNotFound, e.domain, to)
	}
	if err != nil {
		return Expr{}, err
	}
	return Expr{expr: out, domain: to, kind: e.kind, assume: e.assume}, nil
}
