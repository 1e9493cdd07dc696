package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tohch4/pinty/errors"
	"github.com/tohch4/pinty/unit"
)

func mustParse(t *testing.T, reg *Registry, expr string) unit.Container {
	t.Helper()
	c, err := reg.ParseUnits(expr)
	require.NoError(t, err)
	return c
}

func TestSelfConversionIsExact(t *testing.T) {
	reg := newTestRegistry(t)
	c := mustParse(t, reg, "joule / kelvin")

	factor, err := reg.ConversionFactor(c, c)
	require.NoError(t, err)
	assert.Equal(t, 1.0, factor.Scale)
	assert.Equal(t, 0.0, factor.Offset)

	got, err := reg.Convert(123.456, c, c)
	require.NoError(t, err)
	assert.Equal(t, 123.456, got)
}

func TestSelfConversionSkipsLookup(t *testing.T) {
	reg := newTestRegistry(t)

	// Structural equality short-circuits before any table access, so
	// even an unresolvable container converts to itself.
	c := unit.Single("no_such_unit")
	got, err := reg.Convert(7, c, c)
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)
}

func TestLinearConversions(t *testing.T) {
	reg := newTestRegistry(t)

	tests := []struct {
		name  string
		value float64
		from  string
		to    string
		want  float64
	}{
		{"km to mile", 1, "kilometer", "mile", 0.621371192237334},
		{"mile to meter", 1, "mile", "meter", 1609.344},
		{"hour to second", 1, "hour", "second", 3600},
		{"kmh to ms", 36, "km/h", "m/s", 10},
		{"pound to kg", 1, "pound", "kilogram", 0.45359237},
		{"liter to m3", 1000, "liter", "meter ** 3", 1},
		{"atm to pascal", 1, "atmosphere", "pascal", 101325},
		{"eV to joule", 1, "electron_volt", "joule", 1.602176634e-19},
		{"percent to dimensionless", 50, "percent", "radian ** 0", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Convert(tt.value, mustParse(t, reg, tt.from), mustParse(t, reg, tt.to))
			require.NoError(t, err)
			assert.InEpsilon(t, tt.want, got, 1e-12)
		})
	}
}

func TestConversionFactorComposesTransitively(t *testing.T) {
	reg := newTestRegistry(t)
	m := mustParse(t, reg, "meter")
	ft := mustParse(t, reg, "foot")
	in := mustParse(t, reg, "inch")

	mToFt, err := reg.ConversionFactor(m, ft)
	require.NoError(t, err)
	ftToIn, err := reg.ConversionFactor(ft, in)
	require.NoError(t, err)
	mToIn, err := reg.ConversionFactor(m, in)
	require.NoError(t, err)

	assert.InEpsilon(t, mToIn.Scale, mToFt.Scale*ftToIn.Scale, 1e-12)
}

func TestConversionRoundTrip(t *testing.T) {
	reg := newTestRegistry(t)
	from := mustParse(t, reg, "mile / hour")
	to := mustParse(t, reg, "meter / second")

	there, err := reg.Convert(88, from, to)
	require.NoError(t, err)
	back, err := reg.Convert(there, to, from)
	require.NoError(t, err)
	assert.InEpsilon(t, 88, back, 1e-12)
}

func TestConvertDimensionalityError(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Convert(1, mustParse(t, reg, "meter"), mustParse(t, reg, "second"))
	require.Error(t, err)
	assert.True(t, errors.IsDimensionality(err))
	assert.Contains(t, err.Error(), "[length]")
	assert.Contains(t, err.Error(), "[time]")

	_, err = reg.ConversionFactor(mustParse(t, reg, "joule"), mustParse(t, reg, "watt"))
	require.Error(t, err)
	assert.True(t, errors.IsDimensionality(err))
}

func TestTemperatureConversions(t *testing.T) {
	reg := newTestRegistry(t)

	tests := []struct {
		name  string
		value float64
		from  string
		to    string
		want  float64
	}{
		{"freezing C to F", 0, "degree_Celsius", "degree_Fahrenheit", 32},
		{"boiling C to F", 100, "degree_Celsius", "degree_Fahrenheit", 212},
		{"absolute zero to C", 0, "kelvin", "degree_Celsius", -273.15},
		{"room temp to K", 25, "degree_Celsius", "kelvin", 298.15},
		{"F to C", 98.6, "degree_Fahrenheit", "degree_Celsius", 37},
		{"K to Rankine", 100, "kelvin", "degree_Rankine", 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Convert(tt.value, mustParse(t, reg, tt.from), mustParse(t, reg, tt.to))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestTemperatureConversionFactor(t *testing.T) {
	reg := newTestRegistry(t)

	factor, err := reg.ConversionFactor(
		mustParse(t, reg, "degree_Celsius"),
		mustParse(t, reg, "degree_Fahrenheit"))
	require.NoError(t, err)
	assert.InDelta(t, 32, factor.Apply(0), 1e-9)
	assert.InDelta(t, 212, factor.Apply(100), 1e-9)
}

func TestCompoundOffsetUnitIsAmbiguous(t *testing.T) {
	reg := newTestRegistry(t)
	rate := mustParse(t, reg, "degree_Celsius / second")

	_, err := reg.BaseFactor(rate)
	require.Error(t, err)
	assert.True(t, errors.IsOffsetUnitCalculus(err))

	_, err = reg.Convert(10, rate, mustParse(t, reg, "kelvin / second"))
	require.Error(t, err)
	assert.True(t, errors.IsOffsetUnitCalculus(err))
}

func TestDeltaSemantics(t *testing.T) {
	reg := newTestRegistry(t)

	// Celsius and kelvin deltas coincide.
	got, err := reg.Convert(10,
		mustParse(t, reg, "degree_Celsius / second"),
		mustParse(t, reg, "kelvin / second"),
		AsDelta())
	require.NoError(t, err)
	assert.InDelta(t, 10, got, 1e-12)

	// A Fahrenheit delta is 5/9 of a kelvin delta.
	got, err = reg.Convert(10,
		mustParse(t, reg, "degree_Celsius"),
		mustParse(t, reg, "degree_Fahrenheit"),
		AsDelta())
	require.NoError(t, err)
	assert.InDelta(t, 18, got, 1e-9)
}

func TestLogarithmicConversions(t *testing.T) {
	reg := newTestRegistry(t)

	tests := []struct {
		name  string
		value float64
		from  string
		to    string
		want  float64
	}{
		{"dBW to watt", 20, "decibelwatt", "watt", 100},
		{"dBm to watt", 30, "decibelmilliwatt", "watt", 1},
		{"dBW to dBm", 20, "decibelwatt", "decibelmilliwatt", 50},
		{"watt to dBW", 100, "watt", "decibelwatt", 20},
		{"milliwatt to dBm", 1, "milliwatt", "decibelmilliwatt", 0},
		{"octave doubling", 3, "octave", "radian ** 0", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Convert(tt.value, mustParse(t, reg, tt.from), mustParse(t, reg, tt.to))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestConversionFactorRejectsLogarithmicEndpoints(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.ConversionFactor(
		mustParse(t, reg, "decibelwatt"),
		mustParse(t, reg, "watt"))
	require.Error(t, err)
	assert.True(t, errors.IsLogarithmicUnitCalculus(err))

	_, err = reg.ConversionFactor(
		mustParse(t, reg, "watt"),
		mustParse(t, reg, "decibelmilliwatt"))
	require.Error(t, err)
	assert.True(t, errors.IsLogarithmicUnitCalculus(err))
}

func TestCompoundLogarithmicUnitIsRejected(t *testing.T) {
	reg := newTestRegistry(t)
	c := mustParse(t, reg, "decibelwatt * second")

	_, err := reg.BaseFactor(c)
	require.Error(t, err)
	assert.True(t, errors.IsLogarithmicUnitCalculus(err))

	// Delta semantics do not make logarithmic compounds meaningful.
	_, err = reg.BaseFactor(c, AsDelta())
	require.Error(t, err)
	assert.True(t, errors.IsLogarithmicUnitCalculus(err))
}

func TestHasOffsetAndHasLogarithmic(t *testing.T) {
	reg := newTestRegistry(t)

	hasOffset, err := reg.HasOffset(mustParse(t, reg, "degree_Celsius / second"))
	require.NoError(t, err)
	assert.True(t, hasOffset)

	hasOffset, err = reg.HasOffset(mustParse(t, reg, "kelvin"))
	require.NoError(t, err)
	assert.False(t, hasOffset)

	hasLog, err := reg.HasLogarithmic(mustParse(t, reg, "decibelwatt"))
	require.NoError(t, err)
	assert.True(t, hasLog)

	hasLog, err = reg.HasLogarithmic(mustParse(t, reg, "watt"))
	require.NoError(t, err)
	assert.False(t, hasLog)
}
