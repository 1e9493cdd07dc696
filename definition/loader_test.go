package definition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tohch4/pinty/errors"
	"github.com/tohch4/pinty/unit"
)

func TestParsePackValid(t *testing.T) {
	input := []byte(`
dimensions:
  - name: length
prefixes:
  - { name: kilo, symbol: k, factor: 1000 }
units:
  - { name: meter, symbol: m, dimension: length }
  - { name: inch, symbol: in, reference: { meter: 1 }, scale: 0.0254 }
  - { name: root_meter, reference: { meter: 1/2 } }
`)
	pack, err := ParsePack(input)
	require.NoError(t, err)

	require.Len(t, pack.Dimensions, 1)
	require.Len(t, pack.Prefixes, 1)
	require.Len(t, pack.Units, 3)

	assert.Equal(t, "kilo", pack.Prefixes[0].Name)
	assert.Equal(t, float64(1000), pack.Prefixes[0].Factor)

	meter := pack.Units[0]
	assert.True(t, meter.IsBase())
	assert.Equal(t, float64(1), meter.EffectiveScale())

	inch := pack.Units[1]
	assert.False(t, inch.IsBase())
	exp, ok := inch.ReferenceContainer().Exponent("meter")
	require.True(t, ok)
	assert.Equal(t, unit.R(1), exp)

	rootMeter := pack.Units[2]
	exp, ok = rootMeter.ReferenceContainer().Exponent("meter")
	require.True(t, ok)
	assert.Equal(t, unit.RatioOf(1, 2), exp)
}

func TestParsePackSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not yaml", "units:\n  - {name: x"},
		{"unknown top-level field", "unitz:\n  - name: meter\n"},
		{"unit without name", "units:\n  - { symbol: m, dimension: length }\n"},
		{"unknown unit field", "units:\n  - { name: meter, dimension: length, color: red }\n"},
		{"bad exponent pattern", "units:\n  - { name: x, reference: { meter: one } }\n"},
		{"non-numeric prefix factor", "prefixes:\n  - { name: kilo, factor: big }\n"},
		{"log base not above 1", "units:\n  - { name: x, reference: {}, logarithmic: { base: 1, factor: 10 } }\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePack([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.IsDefinitionSyntax(err), "expected DefinitionSyntaxError, got %v", err)
		})
	}
}

func TestUnitValidateStructuralRules(t *testing.T) {
	tests := []struct {
		name string
		unit Unit
	}{
		{"base and derived at once", Unit{Name: "x", Dimension: "length", Reference: map[string]unit.Ratio{"meter": unit.R(1)}}},
		{"neither base nor derived", Unit{Name: "x"}},
		{"base with offset", Unit{Name: "x", Dimension: "temperature", Offset: 273.15}},
		{"offset with logarithmic", Unit{
			Name:        "x",
			Reference:   map[string]unit.Ratio{},
			Offset:      1,
			Logarithmic: &LogScale{Base: 10, Factor: 10},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.unit.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsDefinitionSyntax(err))
		})
	}
}

func TestParsePackValidatesRecords(t *testing.T) {
	// Passes the schema but fails Go-side structural validation:
	// a unit that is both base and derived.
	input := []byte("units:\n  - { name: x, dimension: length, reference: { meter: 1 } }\n")
	_, err := ParsePack(input)
	require.Error(t, err)
	assert.True(t, errors.IsDefinitionSyntax(err))
}

func TestDefaultPack(t *testing.T) {
	pack := DefaultPack()

	require.NotEmpty(t, pack.Dimensions)
	require.NotEmpty(t, pack.Prefixes)
	require.NotEmpty(t, pack.Units)
	require.NoError(t, pack.Validate())

	units := make(map[string]Unit, len(pack.Units))
	for _, u := range pack.Units {
		units[u.Name] = u
	}

	meter, ok := units["meter"]
	require.True(t, ok)
	assert.True(t, meter.IsBase())
	assert.Equal(t, "length", meter.Dimension)

	celsius, ok := units["degree_Celsius"]
	require.True(t, ok)
	assert.Equal(t, 273.15, celsius.Offset)

	dbw, ok := units["decibelwatt"]
	require.True(t, ok)
	require.NotNil(t, dbw.Logarithmic)
	assert.Equal(t, float64(10), dbw.Logarithmic.Base)
	assert.Equal(t, float64(10), dbw.Logarithmic.Factor)

	// Prefixed units are synthesized at resolution time, never shipped.
	_, ok = units["kilometer"]
	assert.False(t, ok)
	_, ok = units["kilogram"]
	assert.False(t, ok)
}
