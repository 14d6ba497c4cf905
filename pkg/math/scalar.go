// Package math provides float32 vector and matrix types for camera work.
package math

import "github.com/chewxy/math32"

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1]. NaN maps to 0.
func Clamp01(v float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	return Clamp(v, 0, 1)
}

// Lerp blends a and b by t.
// The weighted form returns a exactly at t=0 and b exactly at t=1.
func Lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
