package core

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// Parse reads an expression like "5*(s^2+1)/(s^2+5*s+4)" or
// "cos(2*pi*3*t)".  The identifiers j and pi are constants; u, delta,
// Heaviside and DiracDelta are the generalized functions.
func Parse(input string) (Expr, error) {
	p := &parser{src: input}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("parse %q: unexpected %q at offset %d", input, p.src[p.pos], p.pos)
	}
	return e.Simplify(), nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = AddOf(left, right)
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = AddOf(left, MulOf(N(-1), right))
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = MulOf(left, right)
		case '/':
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = QuoOf(left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if p.peek() == '-' {
		p.pos++
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), e), nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek() == '^' {
		p.pos++
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil
	}
	return base, nil
}

var funcAliases = map[string]string{
	"sin": "sin", "cos": "cos", "exp": "exp", "ln": "ln", "log": "ln",
	"sqrt": "sqrt", "abs": "abs", "atan2": "atan2",
	"u": "u", "heaviside": "u", "Heaviside": "u",
	"delta": "delta", "DiracDelta": "delta",
}

func (p *parser) parseAtom() (Expr, error) {
	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, fmt.Errorf("parse: missing close paren at offset %d", p.pos)
		}
		p.pos++
		return e, nil
	case c >= '0' && c <= '9' || c == '.':
		return p.parseNumber()
	case unicode.IsLetter(rune(c)) || c == '_':
		return p.parseIdent()
	}
	return nil, fmt.Errorf("parse: unexpected %q at offset %d", c, p.pos)
}

func (p *parser) parseNumber() (Expr, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= '0' && c <= '9' || c == '.' {
			p.pos++
			continue
		}
		if (c == 'e' || c == 'E') && p.pos+1 < len(p.src) {
			next := p.src[p.pos+1]
			if next >= '0' && next <= '9' || next == '+' || next == '-' {
				p.pos += 2
				for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
					p.pos++
				}
			}
		}
		break
	}
	text := p.src[start:p.pos]
	r, ok := new(big.Rat).SetString(text)
	if !ok {
		return nil, fmt.Errorf("parse: bad number %q", text)
	}
	return realNum(r), nil
}

func (p *parser) parseIdent() (Expr, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
			p.pos++
			continue
		}
		break
	}
	name := p.src[start:p.pos]

	if p.peek() == '(' {
		fname, ok := funcAliases[name]
		if !ok {
			fname = strings.ToLower(name)
			if _, known := funcAliases[fname]; !known {
				return nil, fmt.Errorf("parse: unknown function %q", name)
			}
			fname = funcAliases[fname]
		}
		p.pos++
		args := []Expr{}
		for {
			a, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.peek() == ',' {
				p.pos++
				continue
			}
			break
		}
		if p.peek() != ')' {
			return nil, fmt.Errorf("parse: missing close paren after %s(", name)
		}
		p.pos++
		return funcOf(fname, args...), nil
	}

	switch name {
	case "j", "I":
		return J(), nil
	case "pi":
		return Pi(), nil
	}
	return S(name), nil
}
