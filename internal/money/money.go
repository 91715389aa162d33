package money

import "math"

// Shared numeric helpers for price math. Every amount that crosses a
// package boundary goes through these so that NaN/Inf and negative
// inputs never reach a total.

// Round2 rounds to currency-cent precision.
func Round2(v float64) float64 {
	if !IsFinite(v) {
		return 0
	}
	return math.Round(v*100) / 100
}

// Sanitize maps NaN/Inf to 0 and passes finite values through.
func Sanitize(v float64) float64 {
	if !IsFinite(v) {
		return 0
	}
	return v
}

// ClampMin returns v floored at min.
func ClampMin(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}

// NonNegative sanitizes v and floors it at 0.
func NonNegative(v float64) float64 {
	return ClampMin(Sanitize(v), 0)
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
