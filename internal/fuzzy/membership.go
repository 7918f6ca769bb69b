// Package fuzzy holds the membership function shapes and certainty-factor
// arithmetic used by the screening rules.
package fuzzy

import "math"

// MembershipFunc maps a measurement to a degree of truth.
type MembershipFunc func(x float64) float64

// Clamp bounds v to [0,1]. NaN is treated as no membership.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Ramp is 0 at or below a, 1 at or above b and linear in between.
func Ramp(a, b float64) MembershipFunc {
	return func(x float64) float64 {
		if x <= a {
			return 0
		}
		if x >= b {
			return 1
		}
		return (x - a) / (b - a)
	}
}

// Triangle rises from a to peak and falls from peak to d. It is 0 outside (a, d).
func Triangle(a, peak, d float64) MembershipFunc {
	return func(x float64) float64 {
		if x <= a || x >= d {
			return 0
		}
		if x <= peak {
			return (x - a) / (peak - a)
		}
		return (d - x) / (d - peak)
	}
}

// Complement negates mf.
func Complement(mf MembershipFunc) MembershipFunc {
	return func(x float64) float64 {
		return 1 - mf(x)
	}
}
