package math

import (
	"math"
)

const (
	// Epsilon is the tolerance for comparing projected screen values.
	Epsilon = 1.0 / 4096
)

// Finite reports whether f is neither NaN nor infinite.
func Finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// NearlyEqual compares with an absolute tolerance.
func NearlyEqual(a, b, eps float32) bool {
	return Abs(a-b) <= eps
}
