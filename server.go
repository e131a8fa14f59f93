package lcapy

import (
	"fmt"
	"strings"
)

// ============================================================
// Tool Interface
// ============================================================

// ToolRequest is one JSON tool call: a tool name plus loosely typed
// parameters, as produced by agent frameworks and the HTTP server.
type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Domain string      `json:"domain,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func domainByName(name string) (Domain, error) {
	switch name {
	case "time", "t":
		return DomainTime, nil
	case "laplace", "s":
		return DomainLaplace, nil
	case "fourier", "f":
		return DomainFourier, nil
	case "omega", "angular":
		return DomainAngularFourier, nil
	case "phasor", "jomega":
		return DomainPhasor, nil
	case "const", "constant", "":
		return DomainConst, nil
	}
	return 0, fmt.Errorf("unknown domain: %s", name)
}

func domainVarByDomain(d Domain) (*DomainVar, error) {
	switch d {
	case DomainTime:
		return T, nil
	case DomainLaplace:
		return S, nil
	case DomainFourier:
		return F, nil
	case DomainAngularFourier:
		return Omega, nil
	case DomainPhasor:
		return JOmega, nil
	}
	return nil, fmt.Errorf("%s is not a transform target", d)
}

// HandleToolCall executes one tool call.  Errors come back in the
// response, never as a panic.
func HandleToolCall(req ToolRequest) ToolResponse {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	optString := func(key string) string {
		s, _ := req.Params[key].(string)
		return s
	}
	optBool := func(key string) bool {
		b, _ := req.Params[key].(bool)
		return b
	}
	getNumber := func(key string) (float64, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		f, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("param %s must be a number", key)
		}
		return f, nil
	}
	getExpr := func() (Expr, error) {
		src, err := getString("expr")
		if err != nil {
			return Expr{}, err
		}
		name := optString("domain")
		if name == "" || name == "auto" {
			return ExprOf(src)
		}
		d, err := domainByName(name)
		if err != nil {
			return Expr{}, err
		}
		if d == DomainConst {
			return ConstExpr(src)
		}
		e, err := toCore(src)
		if err != nil {
			return Expr{}, err
		}
		if err := checkForeignVars(e, d); err != nil {
			return Expr{}, err
		}
		return Expr{expr: e, domain: d}, nil
	}
	respond := func(e Expr) ToolResponse {
		return ToolResponse{
			Result: e.String(),
			LaTeX:  e.LaTeX(),
			String: e.String(),
			Domain: e.Domain().String(),
		}
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }
	transformOpts := func() []TransformOpt {
		opts := []TransformOpt{}
		if optBool("causal") {
			opts = append(opts, WithCausal())
		}
		if optBool("dc") {
			opts = append(opts, WithDC())
		}
		if optBool("ac") {
			opts = append(opts, WithAC())
		}
		if optBool("damped_sin") {
			opts = append(opts, WithDampedSin())
		}
		return opts
	}

	switch req.Tool {
	case "parse":
		e, err := getExpr()
		if err != nil {
			return fail(err)
		}
		return respond(e)

	case "simplify":
		e, err := getExpr()
		if err != nil {
			return fail(err)
		}
		return respond(e.Simplify())

	case "expand":
		e, err := getExpr()
		if err != nil {
			return fail(err)
		}
		return respond(e.Expand())

	case "transform":
		e, err := getExpr()
		if err != nil {
			return fail(err)
		}
		toName, err := getString("to")
		if err != nil {
			return fail(err)
		}
		toDomain, err := domainByName(toName)
		if err != nil {
			return fail(err)
		}
		dv, err := domainVarByDomain(toDomain)
		if err != nil {
			return fail(err)
		}
		out, err := e.Transform(dv, transformOpts()...)
		if err != nil {
			return fail(err)
		}
		return respond(out)

	case "form":
		e, err := getExpr()
		if err != nil {
			return fail(err)
		}
		var out Expr
		switch kind := optString("form"); kind {
		case "general", "":
			out, err = e.General()
		case "canonical":
			out, err = e.Canonical(false)
		case "canonical_gain":
			out, err = e.Canonical(true)
		case "standard":
			out, err = e.Standard()
		case "expand_canonical":
			out, err = e.ExpandCanonical()
		case "zpk", "factored":
			out, err = e.ZPK()
		case "timeconst":
			out, err = e.TimeConst()
		case "partfrac":
			out, err = e.PartFrac(false)
		case "partfrac_conj":
			out, err = e.PartFrac(true)
		default:
			return fail(fmt.Errorf("unknown form: %s", kind))
		}
		if err != nil {
			return fail(err)
		}
		return respond(out)

	case "poles", "zeros":
		e, err := getExpr()
		if err != nil {
			return fail(err)
		}
		var roots []PoleZero
		if req.Tool == "poles" {
			roots, err = e.Poles()
		} else {
			roots, err = e.Zeros()
		}
		if err != nil {
			return fail(err)
		}
		strs := make([]string, 0, len(roots))
		for _, r := range roots {
			s := r.Value.String()
			if r.Mult > 1 {
				s = fmt.Sprintf("%s (x%d)", s, r.Mult)
			}
			strs = append(strs, s)
		}
		return ToolResponse{Result: strs, String: strings.Join(strs, ", ")}

	case "decompose":
		src, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		e, err := TExpr(src)
		if err != nil {
			return fail(err)
		}
		sup, err := Decompose(e)
		if err != nil {
			return fail(err)
		}
		result := map[string]interface{}{}
		if sup.HasDC() {
			result["dc"] = sup.DC().String()
		}
		if sup.HasAC() {
			acs := map[string]string{}
			for _, c := range sup.AC() {
				acs[c.Omega.String()] = c.Phasor.String()
			}
			result["ac"] = acs
		}
		if sup.HasTransient() {
			result["transient"] = sup.Transient().String()
		}
		return ToolResponse{Result: result, String: sup.String()}

	case "evaluate":
		e, err := getExpr()
		if err != nil {
			return fail(err)
		}
		at, err := getNumber("at")
		if err != nil {
			return fail(err)
		}
		c, err := e.Evaluate(at)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{
			Result: []float64{real(c), imag(c)},
			String: fmt.Sprintf("%g + %gj", real(c), imag(c)),
		}

	case "immittance":
		e, err := getExpr()
		if err != nil {
			return fail(err)
		}
		z, err := NewImpedance(e)
		if err != nil {
			return fail(err)
		}
		var out Expr
		switch part := optString("part"); part {
		case "R", "resistance":
			out, err = z.R()
		case "X", "reactance":
			out, err = z.X()
		case "G", "conductance":
			out, err = z.Admittance().G()
		case "B", "susceptance":
			out, err = z.Admittance().B()
		default:
			return fail(fmt.Errorf("unknown immittance part: %s", part))
		}
		if err != nil {
			return fail(err)
		}
		return respond(out)

	case "eng_format":
		v, err := getNumber("value")
		if err != nil {
			return fail(err)
		}
		s := EngFormat(v, optString("unit"))
		return ToolResponse{Result: s, String: s}
	}
	return fail(fmt.Errorf("unknown tool: %s", req.Tool))
}

// ToolSpec returns the JSON schema used by agent frameworks to register
// the tool set.
func ToolSpec() string {
	return `{
  "name": "lcapy",
  "description": "Domain-aware symbolic algebra for circuit quantities",
  "tools": [
    {"name": "parse", "params": {"expr": "string", "domain": "time|laplace|fourier|omega|phasor|const|auto"}},
    {"name": "simplify", "params": {"expr": "string", "domain": "string"}},
    {"name": "expand", "params": {"expr": "string", "domain": "string"}},
    {"name": "transform", "params": {"expr": "string", "domain": "string", "to": "string", "causal": "bool", "dc": "bool", "ac": "bool", "damped_sin": "bool"}},
    {"name": "form", "params": {"expr": "string", "domain": "string", "form": "general|canonical|canonical_gain|standard|expand_canonical|zpk|timeconst|partfrac|partfrac_conj"}},
    {"name": "poles", "params": {"expr": "string", "domain": "string"}},
    {"name": "zeros", "params": {"expr": "string", "domain": "string"}},
    {"name": "decompose", "params": {"expr": "string"}},
    {"name": "evaluate", "params": {"expr": "string", "domain": "string", "at": "number"}},
    {"name": "immittance", "params": {"expr": "string", "domain": "string", "part": "R|X|G|B"}},
    {"name": "eng_format", "params": {"value": "number", "unit": "string"}}
  ]
}`
}
