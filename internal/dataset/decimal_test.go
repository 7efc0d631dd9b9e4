package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecimalPlaces(t *testing.T) {
	tests := []struct {
		value    float64
		expected int
	}{
		{1.2345, 4},
		{100, 0},
		{0, 0},
		{-2.5, 1},
		{0.1, 1},
		{1.5e-7, 8},
		{1e21, 0},
		{1e-30, 20},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		got := DecimalPlaces(tt.value)
		assert.Equal(t, tt.expected, got, "DecimalPlaces(%v)", tt.value)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, MaxPrecision)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		value    float64
		places   int
		expected float64
	}{
		{1.5, 0, 2},
		{-1.5, 0, -2},
		{2.5, 0, 3},
		{-2.5, 0, -3},
		{1.235, 2, 1.24},
		{1.15, 1, 1.1},
		{1.55, 1, 1.6},
		{1.005, 2, 1},
		{0.125, 2, 0.13},
		{1.2, -3, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Round(tt.value, tt.places), "Round(%v, %d)", tt.value, tt.places)
	}
}

func TestThresholds(t *testing.T) {
	tests := []struct {
		name      string
		lo, hi    float64
		precision int
		expected  []float64
	}{
		{"integers", 600, 950, 0, []float64{653, 740, 793, 915}},
		{"collapsing at zero places", 1, 3, 0, []float64{1.3, 1.8, 2.1, 2.8}},
		{"given precision", 0, 10, 2, []float64{1.5, 4, 5.5, 9}},
		{"flat range", 5, 5, 0, []float64{5, 5, 5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, thresholds(tt.lo, tt.hi, tt.precision))
		})
	}
}

func TestThresholdsStayInsideRange(t *testing.T) {
	got := thresholds(1.5, 1.6, 0)
	for i, v := range got {
		assert.GreaterOrEqual(t, v, 1.5)
		assert.LessOrEqual(t, v, 1.6)
		if i > 0 {
			assert.Greater(t, v, got[i-1])
		}
	}
}
