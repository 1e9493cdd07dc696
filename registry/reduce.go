package registry

import (
	"math"

	"github.com/tohch4/pinty/errors"
	"github.com/tohch4/pinty/unit"
)

// LogSpec describes a logarithmic scale after reduction: a stored value
// v corresponds to the linear quantity Scale * Base^(v/Factor) in base
// units, where Scale is the Factor.Scale of the same reduction.
type LogSpec struct {
	Base   float64
	Factor float64
}

// Factor is the reduction of a container to base units. For a plain
// linear container only Scale is set. Offset is non-zero only when the
// container is a single affine unit at exponent 1; Log is non-nil only
// for a single logarithmic unit at exponent 1.
type Factor struct {
	Scale  float64
	Offset float64
	Log    *LogSpec
}

// reduced is the cached raw reduction: scales always compose; offset
// and log are meaningful only for lone-unit containers, but their
// presence anywhere in the chain is tracked so policy can reject
// ambiguous compounds.
type reduced struct {
	scale     float64
	offset    float64
	log       *LogSpec
	hasOffset bool
	hasLog    bool
}

// visit tracks the derived-unit chain of one top-level reduction for
// cycle detection.
type visit struct {
	seen  map[string]struct{}
	chain []string
}

func newVisit() *visit {
	return &visit{seen: make(map[string]struct{})}
}

func (v *visit) enter(name string) error {
	if _, ok := v.seen[name]; ok {
		return &errors.CircularDefinitionError{Name: name, Chain: append(append([]string{}, v.chain...), name)}
	}
	v.seen[name] = struct{}{}
	v.chain = append(v.chain, name)
	return nil
}

func (v *visit) leave(name string) {
	delete(v.seen, name)
	v.chain = v.chain[:len(v.chain)-1]
}

// Dimensionality reduces a container to its dimension vector: base
// units contribute their dimension at the container's exponent, derived
// units are resolved recursively through their reference expressions.
// Results are memoized per registry.
func (r *Registry) Dimensionality(c unit.Container) (unit.Dimensionality, error) {
	return r.dimCache.GetOrCompute(c.Key(), func() (unit.Dimensionality, error) {
		return r.reduceDimensionality(c, newVisit())
	})
}

func (r *Registry) reduceDimensionality(c unit.Container, v *visit) (unit.Dimensionality, error) {
	result := unit.NewDimensionality(nil)
	for _, name := range c.Names() {
		exp, _ := c.Exponent(name)
		ru, err := r.Resolve(name)
		if err != nil {
			return unit.Dimensionality{}, err
		}
		if ru.IsBase {
			result = result.Mul(unit.Dim(ru.Dimension).Pow(exp))
			continue
		}
		if err := v.enter(ru.Name); err != nil {
			return unit.Dimensionality{}, err
		}
		sub, err := r.reduceDimensionality(ru.Reference, v)
		v.leave(ru.Name)
		if err != nil {
			return unit.Dimensionality{}, err
		}
		result = result.Mul(sub.Pow(exp))
	}
	return result, nil
}

// BaseFactor reduces a container to its conversion factor against base
// units. Compound expressions touching an affine (offset) unit are
// offset-ambiguous and rejected unless AsDelta is passed, which strips
// offsets and converts with base-unit-delta semantics. Compounds
// touching a logarithmic unit are always rejected.
func (r *Registry) BaseFactor(c unit.Container, opts ...ConvertOption) (Factor, error) {
	options := applyConvertOptions(opts...)
	red, err := r.reducedFactor(c)
	if err != nil {
		return Factor{}, err
	}

	lone := isLone(c)
	if red.hasLog && !lone {
		return Factor{}, &errors.LogarithmicUnitCalculusError{
			Units:  c.String(),
			Reason: "logarithmic units cannot appear in compound expressions",
		}
	}
	if red.hasOffset && !lone && !options.delta {
		return Factor{}, &errors.OffsetUnitCalculusError{
			Units:  c.String(),
			Reason: "compound expression over an offset unit; request delta semantics to convert differences",
		}
	}

	f := Factor{Scale: red.scale}
	if lone && !options.delta {
		f.Offset = red.offset
	}
	if lone {
		f.Log = red.log
	}
	return f, nil
}

// isLone reports whether c is a single unit at exponent exactly 1, the
// only shape on which offsets and logarithmic scales are unambiguous.
func isLone(c unit.Container) bool {
	if c.Len() != 1 {
		return false
	}
	exp, _ := c.Exponent(c.Names()[0])
	return exp.IsOne()
}

// reducedFactor memoizes the raw reduction of a container.
func (r *Registry) reducedFactor(c unit.Container) (reduced, error) {
	return r.factorCache.GetOrCompute(c.Key(), func() (reduced, error) {
		return r.reduceFactor(c, newVisit())
	})
}

func (r *Registry) reduceFactor(c unit.Container, v *visit) (reduced, error) {
	out := reduced{scale: 1}
	lone := isLone(c)
	for _, name := range c.Names() {
		exp, _ := c.Exponent(name)
		ru, err := r.Resolve(name)
		if err != nil {
			return reduced{}, err
		}
		ur, err := r.unitFactor(ru, v)
		if err != nil {
			return reduced{}, err
		}
		out.scale *= math.Pow(ur.scale, exp.Float64())
		out.hasOffset = out.hasOffset || ur.hasOffset
		out.hasLog = out.hasLog || ur.hasLog
		if lone {
			out.offset = ur.offset
			out.log = ur.log
		}
	}
	return out, nil
}

// unitFactor reduces one unit at exponent 1 through its reference
// chain. Affine pairs compose as v -> (v*s1+o1) -> ((v*s1+o1)*s2+o2).
func (r *Registry) unitFactor(ru *ResolvedUnit, v *visit) (reduced, error) {
	if ru.IsBase {
		return reduced{scale: 1}, nil
	}
	if err := v.enter(ru.Name); err != nil {
		return reduced{}, err
	}
	ref, err := r.reduceFactor(ru.Reference, v)
	v.leave(ru.Name)
	if err != nil {
		return reduced{}, err
	}

	out := reduced{
		scale:     ru.Scale * ref.scale,
		offset:    ru.Offset*ref.scale + ref.offset,
		hasOffset: ru.Offset != 0 || ref.hasOffset,
		hasLog:    ru.Log != nil || ref.hasLog,
	}
	switch {
	case ru.Log != nil:
		out.log = &LogSpec{Base: ru.Log.Base, Factor: ru.Log.Factor}
	case ref.log != nil:
		out.log = ref.log
	}
	return out, nil
}

// HasOffset reports whether any unit in the container's definition
// chain carries an additive offset.
func (r *Registry) HasOffset(c unit.Container) (bool, error) {
	red, err := r.reducedFactor(c)
	if err != nil {
		return false, err
	}
	return red.hasOffset, nil
}

// HasLogarithmic reports whether any unit in the container's definition
// chain is logarithmic.
func (r *Registry) HasLogarithmic(c unit.Container) (bool, error) {
	red, err := r.reducedFactor(c)
	if err != nil {
		return false, err
	}
	return red.hasLog, nil
}
