// Package unit provides the symbolic core of pinty: exact rational
// exponents (Ratio), compound unit expressions (Container) and their
// semantic reduction to physical kinds (Dimensionality).
//
// Containers and dimensionalities are immutable values. Combination
// never mutates in place; it always yields a new value. Both carry a
// canonical sorted key so they can serve as cache keys and compare in
// constant time.
package unit

// Container is an immutable mapping from unit name to rational
// exponent, e.g. {meter: 1, second: -1}. It is the surface syntax of a
// compound unit, independent of any numeric value. Entries with a zero
// exponent are never stored; the empty Container is dimensionless and
// is the identity element for Mul.
type Container struct {
	v vector
}

// NewContainer builds a Container from a name → exponent mapping.
// The input map is copied; zero exponents are dropped.
func NewContainer(exps map[string]Ratio) Container {
	return Container{v: newVector(exps)}
}

// Single returns the Container for one unit name at exponent 1.
func Single(name string) Container {
	return NewContainer(map[string]Ratio{name: R(1)})
}

// Mul returns the entry-wise exponent sum of c and o.
// Mul is commutative and associative.
func (c Container) Mul(o Container) Container {
	return Container{v: c.v.mul(o.v)}
}

// Div returns c combined with the inverse of o.
func (c Container) Div(o Container) Container {
	return Container{v: c.v.mul(o.v.pow(R(-1)))}
}

// Pow scales every exponent by n. Fractional powers are recorded
// symbolically, so the square root of an area is a length.
func (c Container) Pow(n Ratio) Container {
	return Container{v: c.v.pow(n)}
}

// Equal reports structural equality over the canonical form.
func (c Container) Equal(o Container) bool {
	return c.v.key == o.v.key
}

// Len returns the number of distinct unit names.
func (c Container) Len() int {
	return len(c.v.exps)
}

// IsEmpty reports whether c is dimensionless (no entries).
func (c Container) IsEmpty() bool {
	return len(c.v.exps) == 0
}

// Exponent returns the exponent for a unit name, and whether the name
// is present.
func (c Container) Exponent(name string) (Ratio, bool) {
	exp, ok := c.v.exps[name]
	return exp, ok
}

// Names returns the unit names in sorted order.
func (c Container) Names() []string {
	return c.v.names()
}

// Key returns the canonical sorted form, suitable as a map key.
// Two containers are equal iff their keys are equal.
func (c Container) Key() string {
	return c.v.key
}

// String renders the container, e.g. "meter * second ** -2".
func (c Container) String() string {
	return c.v.render(func(name string) string { return name }, "dimensionless")
}
