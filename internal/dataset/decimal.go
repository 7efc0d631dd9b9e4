package dataset

import (
	"github.com/shopspring/decimal"
)

// MaxPrecision bounds the number of decimal places used for rounding.
const MaxPrecision = 20

// ThresholdBands are the fractions of the value range at which thresholds sit.
var ThresholdBands = []float64{0.15, 0.40, 0.55, 0.90}

// DecimalPlaces returns how many digits follow the decimal point in the
// shortest decimal form of v, clamped to [0, MaxPrecision].
// DecimalPlaces(1.2345) is 4 and DecimalPlaces(1.5e-7) is 8.
func DecimalPlaces(v float64) int {
	if !finite(v) {
		return 0
	}
	places := -int(decimal.NewFromFloat(v).Exponent())
	switch {
	case places < 0:
		return 0
	case places > MaxPrecision:
		return MaxPrecision
	}
	return places
}

// Round rounds the exact binary value of v to the given number of decimal
// places, so Round(1.15, 1) is 1.1 because 1.15 is stored as 1.1499...
func Round(v float64, places int) float64 {
	if places > MaxPrecision {
		places = MaxPrecision
	}
	if places < 0 {
		places = 0
	}
	out, _ := decimal.NewFromFloatWithExponent(v, -int32(places)).Float64()
	return out
}

// thresholds places ThresholdBands inside [lo, hi] at the given precision.
// When rounding would collapse neighbours or push a value outside the range,
// precision grows one place at a time up to MaxPrecision.
func thresholds(lo, hi float64, precision int) []float64 {
	distance := hi - lo
	out := make([]float64, len(ThresholdBands))
	for p := precision; p <= MaxPrecision; p++ {
		for i, band := range ThresholdBands {
			out[i] = Round(lo+band*distance, p)
		}
		if distance <= 0 || increasingWithin(out, lo, hi) {
			return out
		}
	}
	for i, band := range ThresholdBands {
		out[i] = clamp(lo+band*distance, lo, hi)
	}
	return out
}

func increasingWithin(xs []float64, lo, hi float64) bool {
	for i, x := range xs {
		if x < lo || x > hi {
			return false
		}
		if i > 0 && x <= xs[i-1] {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
