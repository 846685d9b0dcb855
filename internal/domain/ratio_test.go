package domain

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRatio(t *testing.T) {
	tests := []struct {
		input   string
		atomics string
		str     string
	}{
		{"0.8", "800000000000000000", "0.8"},
		{"0.2", "200000000000000000", "0.2"},
		{"1", "1000000000000000000", "1"},
		{"0", "0", "0"},
		{" 0.50 ", "500000000000000000", "0.5"},
		{"0.000000000000000001", "1", "0.000000000000000001"},
		{"1.05", "1050000000000000000", "1.05"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := ParseRatio(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.atomics, r.Atomics().Dec())
			assert.Equal(t, tt.str, r.String())
		})
	}
}

func TestParseRatioRejects(t *testing.T) {
	for _, input := range []string{"", "abc", "-0.1", "0.0000000000000000001", "1e-19", "0.8.1"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRatio(input)
			require.ErrorIs(t, err, ErrInvalidRatio)
		})
	}
}

func TestRatioAddAndUnity(t *testing.T) {
	sum, overflow := MustParseRatio("0.8").Add(MustParseRatio("0.2"))
	require.False(t, overflow)
	assert.True(t, sum.IsOne())
	assert.Equal(t, RatioOne().String(), sum.String())

	sum, _ = MustParseRatio("0.8").Add(MustParseRatio("0.199999999999999999"))
	assert.False(t, sum.IsOne())

	assert.True(t, Ratio{}.IsZero())
}

func TestRatioMulFloor(t *testing.T) {
	got, overflow := MustParseRatio("0.8").MulFloor(uint256.NewInt(50))
	require.False(t, overflow)
	assert.Equal(t, uint64(40), got.Uint64())

	got, _ = MustParseRatio("0.999999999999999999").MulFloor(uint256.NewInt(1))
	assert.True(t, got.IsZero())

	got, _ = MustParseRatio("0.5").MulFloor(nil)
	assert.True(t, got.IsZero())

	max := new(uint256.Int).SetAllOne()
	got, overflow = RatioOne().MulFloor(max)
	require.False(t, overflow)
	assert.True(t, got.Eq(max))

	_, overflow = MustParseRatio("2").MulFloor(max)
	assert.True(t, overflow)
}
