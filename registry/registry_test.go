package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tohch4/pinty/definition"
	"github.com/tohch4/pinty/errors"
	"github.com/tohch4/pinty/unit"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewDefault()
	require.NoError(t, err)
	return reg
}

func TestNewRegistryIsEmpty(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)
	require.NotEmpty(t, reg.ID())

	_, err = reg.Resolve("meter")
	require.Error(t, err)
	assert.True(t, errors.IsUndefinedUnit(err))
}

func TestRegistryIDsAreUnique(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	b, err := New()
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestResolveNameSymbolAlias(t *testing.T) {
	reg := newTestRegistry(t)

	for _, spelling := range []string{"meter", "m", "metre"} {
		ru, err := reg.Resolve(spelling)
		require.NoError(t, err, spelling)
		assert.Equal(t, "meter", ru.Name)
		assert.True(t, ru.IsBase)
		assert.Equal(t, "length", ru.Dimension)
	}
}

func TestResolveUndefined(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Resolve("flibber")
	require.Error(t, err)
	assert.True(t, errors.IsUndefinedUnit(err))
	assert.Contains(t, err.Error(), "flibber")

	_, err = reg.Resolve("")
	require.Error(t, err)
	assert.False(t, errors.IsUndefinedUnit(err))
}

func TestResolvePrefixSynthesis(t *testing.T) {
	reg := newTestRegistry(t)

	km, err := reg.Resolve("kilometer")
	require.NoError(t, err)
	assert.Equal(t, "kilometer", km.Name)
	assert.True(t, km.Prefixed)
	assert.False(t, km.IsBase)
	assert.Equal(t, float64(1000), km.Scale)
	assert.True(t, km.Reference.Equal(unit.Single("meter")))

	// The symbol spelling reaches the same synthesized unit.
	alias, err := reg.Resolve("km")
	require.NoError(t, err)
	assert.Same(t, km, alias)
}

func TestResolveKilogramViaPrefix(t *testing.T) {
	reg := newTestRegistry(t)

	kg, err := reg.Resolve("kg")
	require.NoError(t, err)
	assert.Equal(t, "kilogram", kg.Name)
	assert.Equal(t, float64(1000), kg.Scale)
	assert.True(t, kg.Reference.Equal(unit.Single("gram")))
}

func TestResolveLongestPrefixWins(t *testing.T) {
	reg := newTestRegistry(t)

	// "milli"+"meter", not "m"(milli)+"illimeter".
	mm, err := reg.Resolve("millimeter")
	require.NoError(t, err)
	assert.Equal(t, "millimeter", mm.Name)
	assert.Equal(t, 1e-3, mm.Scale)
}

func TestResolvePrefixNeedsKnownRemainder(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Resolve("kiloflibber")
	require.Error(t, err)
	assert.True(t, errors.IsUndefinedUnit(err))
}

func TestDefineRejectsRedefinition(t *testing.T) {
	reg := newTestRegistry(t)

	err := reg.Define(definition.Unit{Name: "meter", Dimension: "length"})
	require.Error(t, err)
	assert.True(t, errors.IsRedefinition(err))

	err = reg.Define(definition.Dimension{Name: "length"})
	require.Error(t, err)
	assert.True(t, errors.IsRedefinition(err))

	err = reg.Define(definition.Prefix{Name: "kilo", Factor: 1000})
	require.Error(t, err)
	assert.True(t, errors.IsRedefinition(err))
}

func TestDefineIsAtomicOnAliasCollision(t *testing.T) {
	reg := newTestRegistry(t)

	// The symbol collides with meter's "m"; the whole record must be
	// rejected and the new name must stay unknown.
	err := reg.Define(definition.Unit{
		Name:      "mythical",
		Symbol:    "m",
		Reference: map[string]unit.Ratio{"meter": unit.R(1)},
		Scale:     42,
	})
	require.Error(t, err)
	assert.True(t, errors.IsRedefinition(err))

	_, err = reg.Resolve("mythical")
	require.Error(t, err)
	assert.True(t, errors.IsUndefinedUnit(err))
}

func TestDefineBaseUnitRequiresKnownDimension(t *testing.T) {
	reg := newTestRegistry(t)

	err := reg.Define(definition.Unit{Name: "weird", Dimension: "weirdness"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestDefineValidatesReferences(t *testing.T) {
	reg := newTestRegistry(t)

	err := reg.Define(definition.Unit{
		Name:      "broken",
		Reference: map[string]unit.Ratio{"no_such_unit": unit.R(1)},
	})
	require.Error(t, err)
	assert.True(t, errors.IsUndefinedUnit(err))

	_, err = reg.Resolve("broken")
	require.Error(t, err)
}

func TestDefineDerivedUnit(t *testing.T) {
	reg := newTestRegistry(t)

	require.NoError(t, reg.Define(definition.Unit{
		Name:      "furlong",
		Reference: map[string]unit.Ratio{"yard": unit.R(220)},
		Scale:     1,
	}))

	// 1 furlong = 220 yards = 201.168 m.
	got, err := reg.Convert(1, unit.Single("furlong"), unit.Single("meter"))
	require.NoError(t, err)
	assert.InDelta(t, 201.168, got, 1e-9)
}

func TestCheckContainer(t *testing.T) {
	reg := newTestRegistry(t)

	ok := unit.NewContainer(map[string]unit.Ratio{"meter": unit.R(1), "second": unit.R(-1)})
	require.NoError(t, reg.CheckContainer(ok))

	bad := unit.NewContainer(map[string]unit.Ratio{"meter": unit.R(1), "flibber": unit.R(1)})
	err := reg.CheckContainer(bad)
	require.Error(t, err)
	assert.True(t, errors.IsUndefinedUnit(err))
}

func TestDimensionality(t *testing.T) {
	reg := newTestRegistry(t)

	tests := []struct {
		expr string
		want unit.Dimensionality
	}{
		{"meter", unit.Dim("length")},
		{"newton", unit.NewDimensionality(map[string]unit.Ratio{
			"mass": unit.R(1), "length": unit.R(1), "time": unit.R(-2),
		})},
		{"joule", unit.NewDimensionality(map[string]unit.Ratio{
			"mass": unit.R(1), "length": unit.R(2), "time": unit.R(-2),
		})},
		{"km/h", unit.NewDimensionality(map[string]unit.Ratio{
			"length": unit.R(1), "time": unit.R(-1),
		})},
		{"hertz * second", unit.NewDimensionality(nil)},
		{"radian", unit.NewDimensionality(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			c, err := reg.ParseUnits(tt.expr)
			require.NoError(t, err)
			dim, err := reg.Dimensionality(c)
			require.NoError(t, err)
			assert.True(t, dim.Equal(tt.want), "got %s want %s", dim, tt.want)
		})
	}
}

func TestDimensionalityIsMemoized(t *testing.T) {
	reg := newTestRegistry(t)
	c := unit.NewContainer(map[string]unit.Ratio{"newton": unit.R(1), "meter": unit.R(1)})

	first, err := reg.Dimensionality(c)
	require.NoError(t, err)
	second, err := reg.Dimensionality(c)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))

	stats := reg.dimCache.Stats()
	assert.GreaterOrEqual(t, stats.Hits(), int64(1))
}

func TestCircularDefinitionDetected(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)

	// Define rejects dangling references, so a cycle can only arise from
	// corrupted tables; install one directly to prove the guard holds.
	reg.units["ouroboros"] = &ResolvedUnit{
		Name:      "ouroboros",
		Reference: unit.Single("serpent"),
		Scale:     1,
	}
	reg.index["ouroboros"] = "ouroboros"
	reg.units["serpent"] = &ResolvedUnit{
		Name:      "serpent",
		Reference: unit.Single("ouroboros"),
		Scale:     1,
	}
	reg.index["serpent"] = "serpent"

	_, err = reg.Dimensionality(unit.Single("ouroboros"))
	require.Error(t, err)
	assert.True(t, errors.IsCircularDefinition(err))

	_, err = reg.BaseFactor(unit.Single("ouroboros"))
	require.Error(t, err)
	assert.True(t, errors.IsCircularDefinition(err))
}

func TestLoadStopsAtFirstFailure(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)

	pack := definition.Pack{
		Dimensions: []definition.Dimension{{Name: "length"}},
		Units: []definition.Unit{
			{Name: "meter", Dimension: "length"},
			{Name: "meter", Dimension: "length"}, // duplicate
			{Name: "foot", Reference: map[string]unit.Ratio{"meter": unit.R(1)}, Scale: 0.3048},
		},
	}
	err = reg.Load(pack)
	require.Error(t, err)
	assert.True(t, errors.IsRedefinition(err))

	// Records before the failing one are kept, later ones never applied.
	_, err = reg.Resolve("meter")
	require.NoError(t, err)
	_, err = reg.Resolve("foot")
	require.Error(t, err)
}
