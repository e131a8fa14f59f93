package lcapy

import (
	"fmt"

	"github.com/HotPushUpGuy420/lcapy/core"
)

// OnePort is a two-terminal network reduced to its Thevenin equivalent: a
// source impedance z(s) behind an open-circuit voltage.  An ideal current
// source has infinite impedance and is held in Norton form instead (z nil,
// isc set).  Source waveforms are kept as superpositions so each part is
// analysed in its natural domain: dc by inspection, ac as phasors, the
// transient via Laplace.
type OnePort struct {
	z   core.Expr // impedance in s; nil means infinite
	voc *Super    // open-circuit voltage, nil for none
	isc *Super    // short-circuit current, only when z is nil
}

func newSuper(k Kind) *Super { return &Super{kind: k, ac: map[string]acPart{}} }

func superDC(v core.Expr, k Kind) *Super {
	s := newSuper(k)
	s.addDC(v)
	return s
}

func superAC(amp, omega, phase core.Expr, k Kind) *Super {
	s := newSuper(k)
	phasor := amp
	if phase != nil && !isZeroExpr(phase) {
		phasor = core.MulOf(phasor, core.ExpOf(core.MulOf(core.J(), phase)))
	}
	s.addAC(omega.Simplify(), phasor.Simplify())
	return s
}

func superTransient(e core.Expr, k Kind) *Super {
	s := newSuper(k)
	s.addTransient(e)
	return s
}

// ---------------------------------------------------------------------------
// Elements

func elementPort(z core.Expr) *OnePort { return &OnePort{z: z} }

// Resistor has impedance R.
func Resistor(value interface{}) (*OnePort, error) {
	r, err := toCore(value)
	if err != nil {
		return nil, err
	}
	return elementPort(r), nil
}

// Conductor has impedance 1/G.
func Conductor(value interface{}) (*OnePort, error) {
	g, err := toCore(value)
	if err != nil {
		return nil, err
	}
	return elementPort(core.QuoOf(core.N(1), g)), nil
}

// Inductor has impedance s L.
func Inductor(value interface{}) (*OnePort, error) {
	l, err := toCore(value)
	if err != nil {
		return nil, err
	}
	return elementPort(core.MulOf(sVar(), l)), nil
}

// Capacitor has impedance 1/(s C).
func Capacitor(value interface{}) (*OnePort, error) {
	c, err := toCore(value)
	if err != nil {
		return nil, err
	}
	return elementPort(core.QuoOf(core.N(1), core.MulOf(sVar(), c))), nil
}

// ---------------------------------------------------------------------------
// Sources

func sourceValue(value interface{}) (core.Expr, error) {
	v, err := toCore(value)
	if err != nil {
		return nil, err
	}
	if core.FreeSymbols(v)["t"] || core.FreeSymbols(v)["s"] {
		return nil, fmt.Errorf("%w: source amplitude must be constant, have %s",
			ErrDomainMismatch, v)
	}
	return v, nil
}

// VoltageDC is an ideal dc voltage source.
func VoltageDC(value interface{}) (*OnePort, error) {
	v, err := sourceValue(value)
	if err != nil {
		return nil, err
	}
	return &OnePort{z: core.N(0), voc: superDC(v, KindVoltage)}, nil
}

// VoltageStep switches on at t = 0: v u(t).
func VoltageStep(value interface{}) (*OnePort, error) {
	v, err := sourceValue(value)
	if err != nil {
		return nil, err
	}
	return &OnePort{z: core.N(0),
		voc: superTransient(core.MulOf(v, core.StepOf(tVar())), KindVoltage)}, nil
}

// VoltageAC is v cos(omega t + phi).
func VoltageAC(amp, omega, phase interface{}) (*OnePort, error) {
	v, err := sourceValue(amp)
	if err != nil {
		return nil, err
	}
	w, err := toCore(omega)
	if err != nil {
		return nil, err
	}
	var ph core.Expr
	if phase != nil {
		if ph, err = toCore(phase); err != nil {
			return nil, err
		}
	}
	return &OnePort{z: core.N(0), voc: superAC(v, w, ph, KindVoltage)}, nil
}

// VoltageSource decomposes an arbitrary time-domain waveform.
func VoltageSource(e Expr) (*OnePort, error) {
	sup, err := DecomposeVoltage(e)
	if err != nil {
		return nil, err
	}
	return &OnePort{z: core.N(0), voc: sup}, nil
}

// CurrentDC is an ideal dc current source.
func CurrentDC(value interface{}) (*OnePort, error) {
	v, err := sourceValue(value)
	if err != nil {
		return nil, err
	}
	return &OnePort{isc: superDC(v, KindCurrent)}, nil
}

// CurrentStep switches on at t = 0: i u(t).
func CurrentStep(value interface{}) (*OnePort, error) {
	v, err := sourceValue(value)
	if err != nil {
		return nil, err
	}
	return &OnePort{isc: superTransient(core.MulOf(v, core.StepOf(tVar())), KindCurrent)}, nil
}

// CurrentAC is i cos(omega t + phi).
func CurrentAC(amp, omega, phase interface{}) (*OnePort, error) {
	v, err := sourceValue(amp)
	if err != nil {
		return nil, err
	}
	w, err := toCore(omega)
	if err != nil {
		return nil, err
	}
	var ph core.Expr
	if phase != nil {
		if ph, err = toCore(phase); err != nil {
			return nil, err
		}
	}
	return &OnePort{isc: superAC(v, w, ph, KindCurrent)}, nil
}

// CurrentSource decomposes an arbitrary time-domain waveform.
func CurrentSource(e Expr) (*OnePort, error) {
	sup, err := DecomposeCurrent(e)
	if err != nil {
		return nil, err
	}
	return &OnePort{isc: sup}, nil
}

// ---------------------------------------------------------------------------
// Superposition-driven scaling

// mulSuperImmittance applies a frequency response z(s) to a superposition
// part by part: the dc component sees z at s -> 0, each phasor sees
// z(j omega), and the transient goes through the Laplace domain and back
// (causally, since a network response to a causal drive is causal).
func mulSuperImmittance(v *Super, z core.Expr, kind Kind) (*Super, error) {
	out := newSuper(kind)
	if v.dc != nil {
		z0, ok := core.Limit(z, "s", core.N(0))
		if !ok {
			return nil, fmt.Errorf("%w: no dc response for %s", ErrNumericEval, z)
		}
		out.addDC(core.MulOf(v.dc, z0).Simplify())
	}
	for _, key := range v.keys {
		p := v.ac[key]
		zjw := z.Sub("s", core.MulOf(core.J(), p.omega))
		out.addAC(p.omega, core.MulOf(p.phasor, zjw).Simplify())
	}
	if v.transient != nil {
		lf, err := forwardLaplace(v.transient)
		if err != nil {
			return nil, err
		}
		prod := core.Expand(core.MulOf(lf, z)).Simplify()
		var o transformOpts
		o.causal = true
		inv, err := inverseLaplace(prod, o, Assumptions{})
		if err != nil {
			return nil, err
		}
		out.addTransient(inv)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Combination

// Ser connects one-ports in series.  A current source in series fixes the
// terminal current, so the chain collapses to that source; two distinct
// current sources in series conflict.
func Ser(ports ...*OnePort) (*OnePort, error) {
	if len(ports) == 0 {
		return nil, fmt.Errorf("lcapy: empty series combination")
	}
	var forced *OnePort
	for _, p := range ports {
		if p.z == nil {
			if forced != nil {
				return nil, fmt.Errorf("lcapy: two current sources in series")
			}
			forced = p
		}
	}
	if forced != nil {
		return &OnePort{isc: forced.isc}, nil
	}
	z := core.Expr(core.N(0))
	var voc *Super
	var err error
	for _, p := range ports {
		z = core.AddOf(z, p.z)
		if p.voc != nil {
			if voc == nil {
				voc = p.voc
			} else if voc, err = voc.Add(p.voc); err != nil {
				return nil, err
			}
		}
	}
	return &OnePort{z: z.Simplify(), voc: voc}, nil
}

// Par connects one-ports in parallel via their Norton forms: admittances
// and short-circuit currents add.  An ideal voltage source in parallel
// fixes the terminal voltage, so the combination collapses to that source;
// two distinct voltage sources in parallel conflict.
func Par(ports ...*OnePort) (*OnePort, error) {
	if len(ports) == 0 {
		return nil, fmt.Errorf("lcapy: empty parallel combination")
	}
	var forced *OnePort
	for _, p := range ports {
		if p.z != nil && isZeroExpr(p.z) && p.voc != nil {
			if forced != nil {
				return nil, fmt.Errorf("lcapy: two voltage sources in parallel")
			}
			forced = p
		}
	}
	if forced != nil {
		return &OnePort{z: core.N(0), voc: forced.voc}, nil
	}
	y := core.Expr(core.N(0))
	var isc *Super
	var err error
	for _, p := range ports {
		if p.z != nil {
			if isZeroExpr(p.z) {
				// Sourceless short.
				return &OnePort{z: core.N(0)}, nil
			}
			y = core.AddOf(y, core.QuoOf(core.N(1), p.z))
		}
		pi, err2 := p.Isc()
		if err2 != nil {
			return nil, err2
		}
		if isc == nil {
			isc = pi
		} else if isc, err = isc.Add(pi); err != nil {
			return nil, err
		}
	}
	y = core.Expand(y).Simplify()
	if isZeroExpr(y) {
		return &OnePort{isc: isc}, nil
	}
	z := core.QuoOf(core.N(1), y)
	var voc *Super
	if isc != nil && (isc.HasDC() || isc.HasAC() || isc.HasTransient()) {
		if voc, err = mulSuperImmittance(isc, z, KindVoltage); err != nil {
			return nil, err
		}
	}
	return &OnePort{z: z, voc: voc}, nil
}

// ---------------------------------------------------------------------------
// Accessors

// Impedance is the source impedance looking into the port with sources
// zeroed.
func (p *OnePort) Impedance() (Impedance, error) {
	if p.z == nil {
		return Impedance{}, fmt.Errorf("%w: infinite impedance", ErrNumericEval)
	}
	return NewImpedance(Expr{expr: p.z, domain: DomainLaplace})
}

// Admittance is the reciprocal; an ideal current source has zero
// admittance.
func (p *OnePort) Admittance() (Admittance, error) {
	if p.z == nil {
		return NewAdmittance(Expr{expr: core.N(0), domain: DomainConst})
	}
	if isZeroExpr(p.z) {
		return Admittance{}, fmt.Errorf("%w: infinite admittance", ErrNumericEval)
	}
	z, err := p.Impedance()
	if err != nil {
		return Admittance{}, err
	}
	return z.Admittance(), nil
}

// Voc is the open-circuit voltage as a superposition.
func (p *OnePort) Voc() (*Super, error) {
	if p.z == nil {
		return nil, fmt.Errorf("%w: open-circuit voltage of an ideal current source",
			ErrNumericEval)
	}
	if p.voc == nil {
		return newSuper(KindVoltage), nil
	}
	return p.voc, nil
}

// Isc is the short-circuit current as a superposition.
func (p *OnePort) Isc() (*Super, error) {
	if p.z == nil {
		return p.isc, nil
	}
	if p.voc == nil {
		return newSuper(KindCurrent), nil
	}
	if isZeroExpr(p.z) {
		return nil, fmt.Errorf("%w: short-circuit current of an ideal voltage source",
			ErrNumericEval)
	}
	return mulSuperImmittance(p.voc, core.QuoOf(core.N(1), p.z), KindCurrent)
}
