package util

import (
	"math"
	"strconv"
)

// SafeDiv returns n/d, or 0 when d is (numerically) zero.
func SafeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// InRange reports whether lo <= x <= hi.
func InRange(x, lo, hi int) bool {
	return x >= lo && x <= hi
}

// FmtFloat formats f with the shortest representation that round-trips.
func FmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Trunc drops the fractional part, the way the narrative reports whole MAF and percent.
func Trunc(f float64) int {
	if !IsFinite(f) {
		return 0
	}
	return int(math.Trunc(f))
}
