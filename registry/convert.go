package registry

import (
	"math"

	"github.com/tohch4/pinty/errors"
	"github.com/tohch4/pinty/metric"
	"github.com/tohch4/pinty/unit"
)

// Conversion is an affine conversion between two containers:
// value_to = value_from * Scale + Offset.
type Conversion struct {
	Scale  float64
	Offset float64
}

// Apply applies the conversion to a magnitude.
func (c Conversion) Apply(value float64) float64 {
	return value*c.Scale + c.Offset
}

// ConvertOption configures one conversion call.
type ConvertOption func(*convertOptions)

type convertOptions struct {
	delta    bool
	contexts *ContextStack
}

// AsDelta requests offset-stripped, base-unit-delta semantics: affine
// offsets are ignored, so values are treated as differences rather than
// absolute points on the scale. Required to convert compound
// expressions such as "degree_Celsius / second".
func AsDelta() ConvertOption {
	return func(o *convertOptions) {
		o.delta = true
	}
}

// UsingContexts supplies an operation-local context stack whose
// bridging rules may connect otherwise-incompatible dimensionalities.
// Rules are consulted only after direct dimensional equality fails.
func UsingContexts(stack *ContextStack) ConvertOption {
	return func(o *convertOptions) {
		o.contexts = stack
	}
}

func applyConvertOptions(opts ...ConvertOption) convertOptions {
	var options convertOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

// ConversionFactor computes the affine factor between two containers of
// equal dimensionality. Structurally identical containers short-circuit
// to exactly (1, 0) without touching the definition tables, so
// self-conversion never accumulates floating-point drift. Logarithmic
// endpoints have no affine factor; use Convert for those.
func (r *Registry) ConversionFactor(from, to unit.Container, opts ...ConvertOption) (Conversion, error) {
	if from.Equal(to) {
		r.metrics.Conversion(metric.StatusOK)
		return Conversion{Scale: 1, Offset: 0}, nil
	}

	if err := r.checkDimensions(from, to); err != nil {
		return Conversion{}, err
	}

	fromFactor, err := r.BaseFactor(from, opts...)
	if err != nil {
		r.metrics.Conversion(conversionStatus(err))
		return Conversion{}, err
	}
	toFactor, err := r.BaseFactor(to, opts...)
	if err != nil {
		r.metrics.Conversion(conversionStatus(err))
		return Conversion{}, err
	}
	if fromFactor.Log != nil || toFactor.Log != nil {
		err := &errors.LogarithmicUnitCalculusError{
			Units:  from.String() + " -> " + to.String(),
			Reason: "no affine factor exists for a logarithmic scale; use Convert",
		}
		r.metrics.Conversion(metric.StatusLogarithmicIllegal)
		return Conversion{}, err
	}

	r.metrics.Conversion(metric.StatusOK)
	return Conversion{
		Scale:  fromFactor.Scale / toFactor.Scale,
		Offset: (fromFactor.Offset - toFactor.Offset) / toFactor.Scale,
	}, nil
}

// Convert converts a magnitude between two containers, handling the
// full chain: affine offsets, logarithmic delinearization and
// relinearization, and context bridging rules when the dimensionalities
// differ and an active context supplies a matching rule.
func (r *Registry) Convert(value float64, from, to unit.Container, opts ...ConvertOption) (float64, error) {
	if from.Equal(to) {
		r.metrics.Conversion(metric.StatusOK)
		return value, nil
	}
	options := applyConvertOptions(opts...)

	fromDim, toDim, err := r.bothDimensionalities(from, to)
	if err != nil {
		return 0, err
	}

	var bridge TransformFunc
	if !fromDim.Equal(toDim) {
		if options.contexts != nil {
			bridge, _ = options.contexts.lookup(fromDim.Key(), toDim.Key())
		}
		if bridge == nil {
			err := &errors.DimensionalityError{
				From:    from.String(),
				To:      to.String(),
				FromDim: fromDim.String(),
				ToDim:   toDim.String(),
			}
			r.metrics.Conversion(metric.StatusDimensionality)
			return 0, err
		}
	}

	fromFactor, err := r.BaseFactor(from, opts...)
	if err != nil {
		r.metrics.Conversion(conversionStatus(err))
		return 0, err
	}
	toFactor, err := r.BaseFactor(to, opts...)
	if err != nil {
		r.metrics.Conversion(conversionStatus(err))
		return 0, err
	}

	base := delinearize(value, fromFactor)
	if bridge != nil {
		base = bridge(base)
		r.metrics.Conversion(metric.StatusContextBridged)
	} else {
		r.metrics.Conversion(metric.StatusOK)
	}
	return relinearize(base, toFactor), nil
}

// checkDimensions fails with a DimensionalityError when the two
// containers reduce to different dimension vectors.
func (r *Registry) checkDimensions(from, to unit.Container) error {
	fromDim, toDim, err := r.bothDimensionalities(from, to)
	if err != nil {
		return err
	}
	if !fromDim.Equal(toDim) {
		err := &errors.DimensionalityError{
			From:    from.String(),
			To:      to.String(),
			FromDim: fromDim.String(),
			ToDim:   toDim.String(),
		}
		r.metrics.Conversion(metric.StatusDimensionality)
		return err
	}
	return nil
}

func (r *Registry) bothDimensionalities(from, to unit.Container) (unit.Dimensionality, unit.Dimensionality, error) {
	fromDim, err := r.Dimensionality(from)
	if err != nil {
		r.metrics.Conversion(conversionStatus(err))
		return unit.Dimensionality{}, unit.Dimensionality{}, err
	}
	toDim, err := r.Dimensionality(to)
	if err != nil {
		r.metrics.Conversion(conversionStatus(err))
		return unit.Dimensionality{}, unit.Dimensionality{}, err
	}
	return fromDim, toDim, nil
}

// delinearize maps a stored value to the linear base-unit value.
func delinearize(value float64, f Factor) float64 {
	if f.Log != nil {
		return f.Scale * math.Pow(f.Log.Base, value/f.Log.Factor)
	}
	return value*f.Scale + f.Offset
}

// relinearize maps a linear base-unit value back to a stored value.
func relinearize(base float64, f Factor) float64 {
	if f.Log != nil {
		return f.Log.Factor * math.Log(base/f.Scale) / math.Log(f.Log.Base)
	}
	return (base - f.Offset) / f.Scale
}

// conversionStatus maps a reduction error onto a metrics label.
func conversionStatus(err error) string {
	switch {
	case errors.IsUndefinedUnit(err):
		return metric.StatusUndefined
	case errors.IsOffsetUnitCalculus(err):
		return metric.StatusOffsetAmbiguous
	case errors.IsLogarithmicUnitCalculus(err):
		return metric.StatusLogarithmicIllegal
	case errors.IsCircularDefinition(err):
		return metric.StatusCircularDefinition
	case errors.IsDimensionality(err):
		return metric.StatusDimensionality
	default:
		return "error"
	}
}
