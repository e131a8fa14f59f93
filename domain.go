package lcapy

// Domain identifies the transform domain an expression lives in.
type Domain int

const (
	// DomainConst marks constants, which combine freely with any domain.
	DomainConst Domain = iota
	DomainTime
	DomainLaplace
	DomainFourier
	DomainAngularFourier
	DomainPhasor
)

func (d Domain) String() string {
	switch d {
	case DomainConst:
		return "constant"
	case DomainTime:
		return "time"
	case DomainLaplace:
		return "laplace"
	case DomainFourier:
		return "fourier"
	case DomainAngularFourier:
		return "angular fourier"
	case DomainPhasor:
		return "phasor"
	}
	return "unknown"
}

// VarName is the symbol each domain's expressions are written in.
func (d Domain) VarName() string {
	switch d {
	case DomainTime:
		return "t"
	case DomainLaplace:
		return "s"
	case DomainFourier:
		return "f"
	case DomainAngularFourier:
		return "omega"
	case DomainPhasor:
		return "jomega"
	}
	return ""
}

// DomainVar is a domain variable.  The five package-level singletons are
// compared by identity: passing T to Apply always means "the time domain",
// never a symbol that happens to be called t.
type DomainVar struct {
	name   string
	domain Domain
}

func (v *DomainVar) Name() string   { return v.name }
func (v *DomainVar) Domain() Domain { return v.domain }
func (v *DomainVar) String() string { return v.name }

var (
	// T is time (seconds).
	T = &DomainVar{name: "t", domain: DomainTime}
	// S is the Laplace variable.
	S = &DomainVar{name: "s", domain: DomainLaplace}
	// F is ordinary frequency (Hz).
	F = &DomainVar{name: "f", domain: DomainFourier}
	// Omega is angular frequency (rad/s).
	Omega = &DomainVar{name: "omega", domain: DomainAngularFourier}
	// JOmega is the phasor variable jω, treated as a single symbol.
	JOmega = &DomainVar{name: "jomega", domain: DomainPhasor}
)

// domainVarNames guards against user symbols shadowing domain variables.
var domainVarNames = map[string]bool{
	"t": true, "s": true, "f": true, "omega": true, "jomega": true,
}
