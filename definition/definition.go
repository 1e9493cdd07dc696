// Package definition holds the structured records a unit registry is
// populated from: base dimensions, prefixes and unit definitions. The
// registry consumes these records as data; this package owns decoding
// them from YAML and validating their structure against a JSON Schema.
// Referential integrity (do the referenced names exist?) is the
// registry's job, not this package's.
package definition

import (
	"math"

	"github.com/tohch4/pinty/errors"
	"github.com/tohch4/pinty/unit"
)

// Record is any definition record a registry can consume: a Dimension,
// a Prefix or a Unit.
type Record interface {
	Validate() error
}

// Dimension declares a base dimension such as "length". Registering a
// base unit requires its dimension to be declared first.
type Dimension struct {
	Name string `yaml:"name"`
}

// Validate checks the record's structure.
func (d Dimension) Validate() error {
	if d.Name == "" {
		return &errors.DefinitionSyntaxError{Field: "dimension.name", Msg: "name cannot be empty"}
	}
	return nil
}

// Prefix declares a multiplicative prefix such as kilo (×1000). The
// symbol and aliases resolve like the name does.
type Prefix struct {
	Name    string   `yaml:"name"`
	Symbol  string   `yaml:"symbol,omitempty"`
	Aliases []string `yaml:"aliases,omitempty"`
	Factor  float64  `yaml:"factor"`
}

// Validate checks the record's structure.
func (p Prefix) Validate() error {
	if p.Name == "" {
		return &errors.DefinitionSyntaxError{Field: "prefix.name", Msg: "name cannot be empty"}
	}
	if p.Factor <= 0 || math.IsInf(p.Factor, 0) || math.IsNaN(p.Factor) {
		return &errors.DefinitionSyntaxError{Field: "prefix.factor", Msg: "factor must be positive and finite"}
	}
	return nil
}

// LogScale marks a unit as logarithmic: a stored value v corresponds to
// the linear quantity scale * Base^(v/Factor) in reference units. For
// decibels of power Base is 10 and Factor is 10.
type LogScale struct {
	Base   float64 `yaml:"base"`
	Factor float64 `yaml:"factor"`
}

// Unit declares one unit. Exactly one of Dimension (base unit, defines
// a new dimension's reference) or Reference (derived unit, expressed as
// a compound of other units) must be set. An explicitly empty Reference
// declares a dimensionless derived unit such as radian or decibel.
type Unit struct {
	Name        string                `yaml:"name"`
	Symbol      string                `yaml:"symbol,omitempty"`
	Aliases     []string              `yaml:"aliases,omitempty"`
	Dimension   string                `yaml:"dimension,omitempty"`
	Reference   map[string]unit.Ratio `yaml:"reference,omitempty"`
	Scale       float64               `yaml:"scale,omitempty"`
	Offset      float64               `yaml:"offset,omitempty"`
	Logarithmic *LogScale             `yaml:"logarithmic,omitempty"`
}

// IsBase reports whether the record defines a base unit.
func (u Unit) IsBase() bool {
	return u.Dimension != ""
}

// EffectiveScale returns the linear scale to the reference expression.
// An omitted scale means 1.
func (u Unit) EffectiveScale() float64 {
	if u.Scale == 0 {
		return 1
	}
	return u.Scale
}

// ReferenceContainer returns the reference expression as a Container.
// It is empty for base units and dimensionless derived units.
func (u Unit) ReferenceContainer() unit.Container {
	return unit.NewContainer(u.Reference)
}

// Validate checks the record's structure.
func (u Unit) Validate() error {
	if u.Name == "" {
		return &errors.DefinitionSyntaxError{Field: "unit.name", Msg: "name cannot be empty"}
	}
	if u.IsBase() && u.Reference != nil {
		return &errors.DefinitionSyntaxError{Field: u.Name, Msg: "a unit is either base (dimension) or derived (reference), not both"}
	}
	if !u.IsBase() && u.Reference == nil {
		return &errors.DefinitionSyntaxError{Field: u.Name, Msg: "a unit needs a dimension or a reference expression"}
	}
	if u.IsBase() {
		if u.Scale != 0 && u.Scale != 1 {
			return &errors.DefinitionSyntaxError{Field: u.Name, Msg: "a base unit defines its own scale"}
		}
		if u.Offset != 0 || u.Logarithmic != nil {
			return &errors.DefinitionSyntaxError{Field: u.Name, Msg: "a base unit cannot carry an offset or logarithmic scale"}
		}
		return nil
	}
	scale := u.EffectiveScale()
	if math.IsInf(scale, 0) || math.IsNaN(scale) {
		return &errors.DefinitionSyntaxError{Field: u.Name, Msg: "scale must be finite and non-zero"}
	}
	if math.IsInf(u.Offset, 0) || math.IsNaN(u.Offset) {
		return &errors.DefinitionSyntaxError{Field: u.Name, Msg: "offset must be finite"}
	}
	if u.Offset != 0 && u.Logarithmic != nil {
		return &errors.DefinitionSyntaxError{Field: u.Name, Msg: "offset and logarithmic scales are mutually exclusive"}
	}
	if lg := u.Logarithmic; lg != nil {
		if lg.Base <= 1 || math.IsInf(lg.Base, 0) || math.IsNaN(lg.Base) {
			return &errors.DefinitionSyntaxError{Field: u.Name, Msg: "logarithmic base must be greater than 1"}
		}
		if lg.Factor == 0 || math.IsInf(lg.Factor, 0) || math.IsNaN(lg.Factor) {
			return &errors.DefinitionSyntaxError{Field: u.Name, Msg: "logarithmic factor must be finite and non-zero"}
		}
	}
	return nil
}

// Pack bundles the records a registry is populated from, in
// registration order. References may only point at earlier entries (or
// prefixed forms of them); the registry enforces this when defining.
type Pack struct {
	Dimensions []Dimension `yaml:"dimensions,omitempty"`
	Prefixes   []Prefix    `yaml:"prefixes,omitempty"`
	Units      []Unit      `yaml:"units,omitempty"`
}

// Validate checks every record in the pack.
func (p Pack) Validate() error {
	for _, d := range p.Dimensions {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	for _, pre := range p.Prefixes {
		if err := pre.Validate(); err != nil {
			return err
		}
	}
	for _, u := range p.Units {
		if err := u.Validate(); err != nil {
			return err
		}
	}
	return nil
}
