package lcapy

import (
	"fmt"
	"sync"

	"github.com/HotPushUpGuy420/lcapy/core"
)

// Tri is a three-valued assumption flag: unset, true or false.
type Tri int8

const (
	TriUnset Tri = iota
	TriTrue
	TriFalse
)

func (t Tri) String() string {
	switch t {
	case TriTrue:
		return "true"
	case TriFalse:
		return "false"
	}
	return "unset"
}

// Assumptions is the fixed-key assumption record attached to symbols and
// expressions.  Unset keys mean "not asserted", not "false".
type Assumptions struct {
	Real      Tri
	Complex   Tri
	Positive  Tri
	Integer   Tri
	DC        Tri
	AC        Tri
	Causal    Tri
	DampedSin Tri
}

// withDefaults applies the registry convention: a plain symbol with no
// reality information is assumed positive, since most circuit parameters
// (R, L, C, time constants) are.  Declaring Real or setting Positive
// explicitly suppresses the default.
func (a Assumptions) withDefaults() Assumptions {
	if a.Real == TriUnset && a.Complex == TriUnset && a.Positive == TriUnset {
		a.Positive = TriTrue
	}
	return a
}

// compatible reports whether b restates or refines a: every key set in b
// must be unset or identical in a, or identical where both are set.
func (a Assumptions) compatible(b Assumptions) bool {
	pairs := [][2]Tri{
		{a.Real, b.Real}, {a.Complex, b.Complex}, {a.Positive, b.Positive},
		{a.Integer, b.Integer}, {a.DC, b.DC}, {a.AC, b.AC},
		{a.Causal, b.Causal}, {a.DampedSin, b.DampedSin},
	}
	for _, p := range pairs {
		if p[1] != TriUnset && p[0] != TriUnset && p[0] != p[1] {
			return false
		}
	}
	return true
}

// merge fills unset keys of a from b.
func (a Assumptions) merge(b Assumptions) Assumptions {
	pick := func(x, y Tri) Tri {
		if x != TriUnset {
			return x
		}
		return y
	}
	return Assumptions{
		Real:      pick(a.Real, b.Real),
		Complex:   pick(a.Complex, b.Complex),
		Positive:  pick(a.Positive, b.Positive),
		Integer:   pick(a.Integer, b.Integer),
		DC:        pick(a.DC, b.DC),
		AC:        pick(a.AC, b.AC),
		Causal:    pick(a.Causal, b.Causal),
		DampedSin: pick(a.DampedSin, b.DampedSin),
	}
}

// Symbol is a registered named quantity.  Identity is the (name,
// assumptions) pair: re-registering a name with conflicting assumptions is
// an error, not a silent second symbol.
type Symbol struct {
	name   string
	assume Assumptions
}

func (s *Symbol) Name() string             { return s.name }
func (s *Symbol) Assumptions() Assumptions { return s.assume }

// Expr wraps the symbol as a constant-domain expression so it can be used
// in arithmetic directly.
func (s *Symbol) Expr() Expr {
	return Expr{expr: core.S(s.name), domain: DomainConst, assume: s.assume}
}

// Context is a symbol registry.  Safe for concurrent use.
type Context struct {
	mu   sync.Mutex
	syms map[string]*Symbol
}

func NewContext() *Context {
	return &Context{syms: map[string]*Symbol{}}
}

// goReserved lists the Go keywords plus predeclared names that would make a
// symbol unusable in generated code or the command line.
var goReserved = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true,
	"continue": true, "default": true, "defer": true, "else": true,
	"fallthrough": true, "for": true, "func": true, "go": true,
	"goto": true, "if": true, "import": true, "interface": true,
	"map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true,
	"var": true,
}

// Symbol registers or retrieves a symbol.  Retrieval with assumptions that
// conflict with the registered ones is an error; compatible assumptions
// refine the stored record.
func (c *Context) Symbol(name string, assume Assumptions) (*Symbol, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrNaming)
	}
	if goReserved[name] {
		return nil, fmt.Errorf("%w: %q is a Go reserved word", ErrNaming, name)
	}
	if domainVarNames[name] || name == "pi" || name == "j" {
		return nil, fmt.Errorf("%w: %q is reserved", ErrNaming, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.syms[name]; ok {
		if !existing.assume.compatible(assume) {
			return nil, fmt.Errorf("%w: symbol %q already registered with different assumptions",
				ErrNaming, name)
		}
		existing.assume = existing.assume.merge(assume)
		return existing, nil
	}
	sym := &Symbol{name: name, assume: assume.withDefaults()}
	c.syms[name] = sym
	return sym, nil
}

// Lookup returns a registered symbol, if any.
func (c *Context) Lookup(name string) (*Symbol, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.syms[name]
	return s, ok
}

// defaultContext backs the package-level helpers; most callers need only
// one registry.
var defaultContext = NewContext()

// Sym registers or retrieves a symbol in the default registry.
func Sym(name string, assume Assumptions) (*Symbol, error) {
	return defaultContext.Symbol(name, assume)
}
