package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRatioNormalization(t *testing.T) {
	tests := []struct {
		name string
		in   Ratio
		num  int64
		den  int64
	}{
		{"integer", R(3), 3, 1},
		{"zero", R(0), 0, 1},
		{"reduced", RatioOf(4, 8), 1, 2},
		{"negative denominator", RatioOf(1, -2), -1, 2},
		{"double negative", RatioOf(-3, -6), 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.num, tt.in.Num())
			assert.Equal(t, tt.den, tt.in.Den())
		})
	}
}

func TestRatioArithmetic(t *testing.T) {
	assert.Equal(t, RatioOf(5, 6), RatioOf(1, 2).Add(RatioOf(1, 3)))
	assert.Equal(t, RatioOf(1, 6), RatioOf(1, 2).Sub(RatioOf(1, 3)))
	assert.Equal(t, RatioOf(1, 3), RatioOf(1, 2).Mul(RatioOf(2, 3)))
	assert.Equal(t, RatioOf(-1, 2), RatioOf(1, 2).Neg())
	assert.True(t, RatioOf(1, 2).Sub(RatioOf(1, 2)).IsZero())
	assert.True(t, RatioOf(2, 2).IsOne())
	assert.True(t, R(7).IsInteger())
	assert.False(t, RatioOf(1, 2).IsInteger())
	assert.InDelta(t, 0.5, RatioOf(1, 2).Float64(), 1e-15)
}

func TestRatioZeroValueBehavesAsZero(t *testing.T) {
	var zero Ratio
	assert.True(t, zero.IsZero())
	assert.Equal(t, R(3), zero.Add(R(3)))
	assert.Equal(t, "0", zero.String())
}

func TestParseRatio(t *testing.T) {
	tests := []struct {
		in      string
		want    Ratio
		wantErr bool
	}{
		{"3", R(3), false},
		{"-2", R(-2), false},
		{"1/2", RatioOf(1, 2), false},
		{" -3 / 4 ", RatioOf(-3, 4), false},
		{"", Ratio{}, true},
		{"abc", Ratio{}, true},
		{"1/0", Ratio{}, true},
		{"1/x", Ratio{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRatio(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRatioString(t *testing.T) {
	assert.Equal(t, "3", R(3).String())
	assert.Equal(t, "-1/2", RatioOf(1, -2).String())
}

func TestRatioUnmarshalYAML(t *testing.T) {
	var doc struct {
		Exps map[string]Ratio `yaml:"exps"`
	}
	input := []byte("exps:\n  meter: 2\n  second: -1\n  hertz: 1/2\n")
	require.NoError(t, yaml.Unmarshal(input, &doc))

	assert.Equal(t, R(2), doc.Exps["meter"])
	assert.Equal(t, R(-1), doc.Exps["second"])
	assert.Equal(t, RatioOf(1, 2), doc.Exps["hertz"])

	err := yaml.Unmarshal([]byte("exps:\n  meter: nope\n"), &doc)
	require.Error(t, err)
}
