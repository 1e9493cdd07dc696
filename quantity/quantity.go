// Package quantity implements the arithmetic contract over magnitudes
// with units: addition and comparison require equal dimensionality (the
// right operand is converted into the left operand's units),
// multiplication and division compose units freely, and powers scale
// unit exponents symbolically. All operations return new values; a
// Quantity is never mutated in place.
package quantity

import (
	"fmt"
	"math"

	"github.com/tohch4/pinty/errors"
	"github.com/tohch4/pinty/registry"
	"github.com/tohch4/pinty/unit"
)

// Quantity is a numeric magnitude bound to a unit container and the
// registry that gives the container meaning.
type Quantity struct {
	reg       *registry.Registry
	magnitude float64
	units     unit.Container
}

// New creates a quantity after validating that every unit name in the
// container resolves in the registry.
func New(reg *registry.Registry, magnitude float64, units unit.Container) (Quantity, error) {
	if reg == nil {
		return Quantity{}, errors.WrapInvalid(errors.ErrNilRegistry, "Quantity", "New", "validate registry")
	}
	if err := reg.CheckContainer(units); err != nil {
		return Quantity{}, err
	}
	return Quantity{reg: reg, magnitude: magnitude, units: units}, nil
}

// Parse creates a quantity from a unit expression, e.g.
// Parse(reg, 9.81, "m / s ** 2").
func Parse(reg *registry.Registry, magnitude float64, expr string) (Quantity, error) {
	if reg == nil {
		return Quantity{}, errors.WrapInvalid(errors.ErrNilRegistry, "Quantity", "Parse", "validate registry")
	}
	units, err := reg.ParseUnits(expr)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{reg: reg, magnitude: magnitude, units: units}, nil
}

// Magnitude returns the numeric magnitude.
func (q Quantity) Magnitude() float64 {
	return q.magnitude
}

// Units returns the unit container.
func (q Quantity) Units() unit.Container {
	return q.units
}

// Dimensionality returns the quantity's dimension vector.
func (q Quantity) Dimensionality() (unit.Dimensionality, error) {
	return q.reg.Dimensionality(q.units)
}

// String renders the quantity, e.g. "9.81 meter * second ** -2".
func (q Quantity) String() string {
	return fmt.Sprintf("%g %s", q.magnitude, q.units)
}

func (q Quantity) sameRegistry(o Quantity) error {
	if q.reg != o.reg {
		return errors.WrapInvalid(errors.ErrRegistryMismatch, "Quantity", "sameRegistry", "check operands")
	}
	return nil
}

// Add returns q + o. The operands must share a dimensionality; o is
// converted into q's units and the result carries q's units.
func (q Quantity) Add(o Quantity, opts ...registry.ConvertOption) (Quantity, error) {
	if err := q.sameRegistry(o); err != nil {
		return Quantity{}, err
	}
	converted, err := q.reg.Convert(o.magnitude, o.units, q.units, opts...)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{reg: q.reg, magnitude: q.magnitude + converted, units: q.units}, nil
}

// Sub returns q - o under the same rules as Add.
func (q Quantity) Sub(o Quantity, opts ...registry.ConvertOption) (Quantity, error) {
	if err := q.sameRegistry(o); err != nil {
		return Quantity{}, err
	}
	converted, err := q.reg.Convert(o.magnitude, o.units, q.units, opts...)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{reg: q.reg, magnitude: q.magnitude - converted, units: q.units}, nil
}

// checkLinear rejects multiplicative algebra on offset and logarithmic
// units, whose meaning would be ambiguous.
func (q Quantity) checkLinear(operation string) error {
	hasOffset, err := q.reg.HasOffset(q.units)
	if err != nil {
		return err
	}
	if hasOffset {
		return &errors.OffsetUnitCalculusError{Units: q.units.String(), Reason: operation}
	}
	hasLog, err := q.reg.HasLogarithmic(q.units)
	if err != nil {
		return err
	}
	if hasLog {
		return &errors.LogarithmicUnitCalculusError{Units: q.units.String(), Reason: operation}
	}
	return nil
}

// Mul returns q * o: magnitudes multiply and unit containers compose
// entry-wise. No compatibility check is needed, but offset and
// logarithmic units are rejected because scaling them is ambiguous.
func (q Quantity) Mul(o Quantity) (Quantity, error) {
	if err := q.sameRegistry(o); err != nil {
		return Quantity{}, err
	}
	if err := q.checkLinear("multiplication"); err != nil {
		return Quantity{}, err
	}
	if err := o.checkLinear("multiplication"); err != nil {
		return Quantity{}, err
	}
	return Quantity{
		reg:       q.reg,
		magnitude: q.magnitude * o.magnitude,
		units:     q.units.Mul(o.units),
	}, nil
}

// Div returns q / o under the same rules as Mul.
func (q Quantity) Div(o Quantity) (Quantity, error) {
	if err := q.sameRegistry(o); err != nil {
		return Quantity{}, err
	}
	if err := q.checkLinear("division"); err != nil {
		return Quantity{}, err
	}
	if err := o.checkLinear("division"); err != nil {
		return Quantity{}, err
	}
	return Quantity{
		reg:       q.reg,
		magnitude: q.magnitude / o.magnitude,
		units:     q.units.Div(o.units),
	}, nil
}

// MulScalar returns q scaled by a dimensionless factor.
func (q Quantity) MulScalar(factor float64) Quantity {
	return Quantity{reg: q.reg, magnitude: q.magnitude * factor, units: q.units}
}

// Pow raises q to a rational power: the magnitude is exponentiated and
// every unit exponent is scaled symbolically, so the square root of an
// area is a length. Fractional exponents are recorded exactly.
func (q Quantity) Pow(n unit.Ratio) (Quantity, error) {
	if err := q.checkLinear("exponentiation"); err != nil {
		return Quantity{}, err
	}
	return Quantity{
		reg:       q.reg,
		magnitude: math.Pow(q.magnitude, n.Float64()),
		units:     q.units.Pow(n),
	}, nil
}

// Compare returns -1, 0 or 1 ordering q against o. The operands must
// share a dimensionality; o's magnitude is converted before comparing.
func (q Quantity) Compare(o Quantity, opts ...registry.ConvertOption) (int, error) {
	if err := q.sameRegistry(o); err != nil {
		return 0, err
	}
	converted, err := q.reg.Convert(o.magnitude, o.units, q.units, opts...)
	if err != nil {
		return 0, err
	}
	switch {
	case q.magnitude < converted:
		return -1, nil
	case q.magnitude > converted:
		return 1, nil
	default:
		return 0, nil
	}
}

// Less reports whether q < o after conversion.
func (q Quantity) Less(o Quantity, opts ...registry.ConvertOption) (bool, error) {
	c, err := q.Compare(o, opts...)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

// Equal reports whether q == o after conversion.
func (q Quantity) Equal(o Quantity, opts ...registry.ConvertOption) (bool, error) {
	c, err := q.Compare(o, opts...)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

// To converts q into target units, returning a new quantity; q itself
// is unaffected.
func (q Quantity) To(target unit.Container, opts ...registry.ConvertOption) (Quantity, error) {
	converted, err := q.reg.Convert(q.magnitude, q.units, target, opts...)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{reg: q.reg, magnitude: converted, units: target}, nil
}

// ToExpr converts q into the units named by an expression, e.g.
// q.ToExpr("km/h").
func (q Quantity) ToExpr(expr string, opts ...registry.ConvertOption) (Quantity, error) {
	target, err := q.reg.ParseUnits(expr)
	if err != nil {
		return Quantity{}, err
	}
	return q.To(target, opts...)
}
