package registry

import (
	"fmt"
	"unicode"

	"github.com/tohch4/pinty/errors"
	"github.com/tohch4/pinty/unit"
)

// ParseUnits parses a unit expression such as "kilometer / hour",
// "m * s ** -2" or "joule/(kilogram*kelvin)" into a Container. Every
// referenced name must resolve in the registry; names are canonicalized
// in the result, so "km/h" and "kilometer/hour" parse to equal
// containers.
//
// Grammar: terms joined by '*' and '/', optional '**' (or '^')
// exponents, parentheses for grouping. Exponents are signed integers;
// fractional exponents must be parenthesized, e.g. "m ** (1/2)".
func (r *Registry) ParseUnits(expr string) (unit.Container, error) {
	p := &exprParser{reg: r, input: []rune(expr)}
	p.skipSpace()
	if p.eof() {
		r.metrics.ParseError()
		return unit.Container{}, errors.WrapInvalid(errors.ErrEmptyExpression, "Registry", "ParseUnits", "validate expression")
	}
	c, err := p.parseExpr()
	if err != nil {
		r.metrics.ParseError()
		return unit.Container{}, err
	}
	p.skipSpace()
	if !p.eof() {
		r.metrics.ParseError()
		return unit.Container{}, p.errorf("unexpected %q", string(p.input[p.pos]))
	}
	return c, nil
}

type exprParser struct {
	reg   *Registry
	input []rune
	pos   int
}

func (p *exprParser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return errors.WrapInvalid(
		fmt.Errorf("%s at position %d in %q", msg, p.pos, string(p.input)),
		"Registry", "ParseUnits", "parse expression")
}

func (p *exprParser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *exprParser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}

// accept consumes the literal if it comes next.
func (p *exprParser) accept(literal string) bool {
	runes := []rune(literal)
	if p.pos+len(runes) > len(p.input) {
		return false
	}
	for i, r := range runes {
		if p.input[p.pos+i] != r {
			return false
		}
	}
	p.pos += len(runes)
	return true
}

// parseExpr := term { ('*'|'/') term }
func (p *exprParser) parseExpr() (unit.Container, error) {
	result, err := p.parseTerm()
	if err != nil {
		return unit.Container{}, err
	}
	for {
		p.skipSpace()
		switch {
		case !p.eof() && p.peek() == '*' && !p.lookaheadPower():
			p.pos++
			term, err := p.parseTerm()
			if err != nil {
				return unit.Container{}, err
			}
			result = result.Mul(term)
		case !p.eof() && p.peek() == '/':
			p.pos++
			term, err := p.parseTerm()
			if err != nil {
				return unit.Container{}, err
			}
			result = result.Div(term)
		default:
			return result, nil
		}
	}
}

// lookaheadPower distinguishes the '*' of multiplication from the first
// star of a '**' power operator.
func (p *exprParser) lookaheadPower() bool {
	return p.pos+1 < len(p.input) && p.input[p.pos+1] == '*'
}

// parseTerm := factor [ ('**'|'^') exponent ]
func (p *exprParser) parseTerm() (unit.Container, error) {
	factor, err := p.parseFactor()
	if err != nil {
		return unit.Container{}, err
	}
	p.skipSpace()
	if p.accept("**") || p.accept("^") {
		exp, err := p.parseExponent()
		if err != nil {
			return unit.Container{}, err
		}
		factor = factor.Pow(exp)
	}
	return factor, nil
}

// parseFactor := NAME | '(' expr ')'
func (p *exprParser) parseFactor() (unit.Container, error) {
	p.skipSpace()
	if p.eof() {
		return unit.Container{}, p.errorf("expected unit name")
	}
	if p.peek() == '(' {
		p.pos++
		inner, err := p.parseExpr()
		if err != nil {
			return unit.Container{}, err
		}
		p.skipSpace()
		if !p.accept(")") {
			return unit.Container{}, p.errorf("expected ')'")
		}
		return inner, nil
	}

	name := p.parseName()
	if name == "" {
		return unit.Container{}, p.errorf("expected unit name")
	}
	resolved, err := p.reg.Resolve(name)
	if err != nil {
		return unit.Container{}, err
	}
	return unit.Single(resolved.Name), nil
}

// isNameRune reports runes legal inside a unit name. Degree signs,
// micro signs and percent appear in symbols such as "°C" and "µm".
func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == '_' || r == '°' || r == 'µ' || r == '%'
}

func (p *exprParser) parseName() string {
	start := p.pos
	for !p.eof() && isNameRune(p.input[p.pos]) {
		// A name cannot start with a digit.
		if p.pos == start && unicode.IsDigit(p.input[p.pos]) {
			break
		}
		p.pos++
	}
	return string(p.input[start:p.pos])
}

// parseExponent := ['-'] INT | '(' ['-'] INT '/' INT ')'
func (p *exprParser) parseExponent() (unit.Ratio, error) {
	p.skipSpace()
	if p.accept("(") {
		num, err := p.parseInt()
		if err != nil {
			return unit.Ratio{}, err
		}
		p.skipSpace()
		if !p.accept("/") {
			return unit.Ratio{}, p.errorf("expected '/' in fractional exponent")
		}
		den, err := p.parseInt()
		if err != nil {
			return unit.Ratio{}, err
		}
		if den == 0 {
			return unit.Ratio{}, p.errorf("zero denominator in exponent")
		}
		p.skipSpace()
		if !p.accept(")") {
			return unit.Ratio{}, p.errorf("expected ')' after fractional exponent")
		}
		return unit.RatioOf(num, den), nil
	}
	n, err := p.parseInt()
	if err != nil {
		return unit.Ratio{}, err
	}
	return unit.R(n), nil
}

func (p *exprParser) parseInt() (int64, error) {
	p.skipSpace()
	negative := p.accept("-")
	start := p.pos
	var n int64
	for !p.eof() && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		n = n*10 + int64(p.input[p.pos]-'0')
		p.pos++
	}
	if p.pos == start {
		return 0, p.errorf("expected integer")
	}
	if negative {
		n = -n
	}
	return n, nil
}
