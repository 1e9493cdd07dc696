package unit

// Dimensionality is an immutable mapping from base-dimension name to
// rational exponent, e.g. {length: 1, time: -2}. It is the canonical
// answer to "what kind of quantity is this", independent of which units
// express it. Entries with a zero exponent are never stored; the empty
// Dimensionality is the dimensionless kind.
type Dimensionality struct {
	v vector
}

// NewDimensionality builds a Dimensionality from a name → exponent
// mapping. The input map is copied; zero exponents are dropped.
func NewDimensionality(exps map[string]Ratio) Dimensionality {
	return Dimensionality{v: newVector(exps)}
}

// Dim returns the Dimensionality for one base dimension at exponent 1.
func Dim(name string) Dimensionality {
	return NewDimensionality(map[string]Ratio{name: R(1)})
}

// Mul returns the entry-wise exponent sum of d and o.
func (d Dimensionality) Mul(o Dimensionality) Dimensionality {
	return Dimensionality{v: d.v.mul(o.v)}
}

// Div returns d combined with the inverse of o.
func (d Dimensionality) Div(o Dimensionality) Dimensionality {
	return Dimensionality{v: d.v.mul(o.v.pow(R(-1)))}
}

// Pow scales every exponent by n.
func (d Dimensionality) Pow(n Ratio) Dimensionality {
	return Dimensionality{v: d.v.pow(n)}
}

// Equal reports structural equality over the canonical form. Two
// dimensionalities are equal iff their non-zero entries match exactly.
func (d Dimensionality) Equal(o Dimensionality) bool {
	return d.v.key == o.v.key
}

// Len returns the number of distinct base dimensions.
func (d Dimensionality) Len() int {
	return len(d.v.exps)
}

// IsEmpty reports whether d is dimensionless.
func (d Dimensionality) IsEmpty() bool {
	return len(d.v.exps) == 0
}

// Exponent returns the exponent for a dimension name, and whether the
// name is present.
func (d Dimensionality) Exponent(name string) (Ratio, bool) {
	exp, ok := d.v.exps[name]
	return exp, ok
}

// Names returns the dimension names in sorted order.
func (d Dimensionality) Names() []string {
	return d.v.names()
}

// Key returns the canonical sorted form, suitable as a map key.
func (d Dimensionality) Key() string {
	return d.v.key
}

// String renders the dimensionality, e.g. "[length] * [time] ** -2".
func (d Dimensionality) String() string {
	return d.v.render(func(name string) string { return "[" + name + "]" }, "[dimensionless]")
}
