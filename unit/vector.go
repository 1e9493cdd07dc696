package unit

import (
	"sort"
	"strings"
)

// vector holds the shared exponent-map mechanics behind Container and
// Dimensionality: a canonical (zero-stripped) immutable mapping from
// name to rational exponent, plus a precomputed sorted key used for
// map keying and fast equality.
type vector struct {
	exps map[string]Ratio
	key  string
}

// newVector canonicalizes the input: zero exponents are dropped and the
// map is copied so callers cannot mutate the vector afterwards.
func newVector(exps map[string]Ratio) vector {
	m := make(map[string]Ratio, len(exps))
	for name, exp := range exps {
		if !exp.IsZero() {
			m[name] = exp
		}
	}
	return vector{exps: m, key: keyOf(m)}
}

func keyOf(m map[string]Ratio) string {
	if len(m) == 0 {
		return ""
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(m[name].String())
	}
	return b.String()
}

// mul returns the entry-wise exponent sum with zero entries dropped.
func (v vector) mul(o vector) vector {
	m := make(map[string]Ratio, len(v.exps)+len(o.exps))
	for name, exp := range v.exps {
		m[name] = exp
	}
	for name, exp := range o.exps {
		sum := m[name].Add(exp)
		if sum.IsZero() {
			delete(m, name)
		} else {
			m[name] = sum
		}
	}
	return vector{exps: m, key: keyOf(m)}
}

// pow scales every exponent by n. Raising to the zero power yields the
// empty (dimensionless) vector.
func (v vector) pow(n Ratio) vector {
	if n.IsZero() {
		return newVector(nil)
	}
	m := make(map[string]Ratio, len(v.exps))
	for name, exp := range v.exps {
		m[name] = exp.Mul(n)
	}
	return vector{exps: m, key: keyOf(m)}
}

func (v vector) names() []string {
	names := make([]string, 0, len(v.exps))
	for name := range v.exps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// render produces the human-readable form, e.g. "meter * second ** -2".
// decorate wraps each name (dimensionalities render as "[length]").
func (v vector) render(decorate func(string) string, empty string) string {
	if len(v.exps) == 0 {
		return empty
	}
	var b strings.Builder
	for i, name := range v.names() {
		if i > 0 {
			b.WriteString(" * ")
		}
		b.WriteString(decorate(name))
		if exp := v.exps[name]; !exp.IsOne() {
			b.WriteString(" ** ")
			b.WriteString(exp.String())
		}
	}
	return b.String()
}
