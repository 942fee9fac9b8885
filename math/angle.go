// SPDX-License-Identifier: GPL-2.0-or-later

package math

import "math"

const (
	Pi     = math.Pi
	TwoPi  = 2 * math.Pi
	HalfPi = math.Pi / 2
)

// AngleMod32 changes an angle to be within 0-360 degrees
func AngleMod32(a float32) float32 {
	return float32(AngleMod(float64(a)))
}

// AngleMod changes an angle to be within 0-360 degrees
func AngleMod(a float64) float64 {
	return a - math.Floor(a/360)*360
}

// WrapRad changes an angle in radians to be within [0, 2*Pi)
func WrapRad(a float32) float32 {
	r := float32(float64(a) - math.Floor(float64(a)/TwoPi)*TwoPi)
	if r >= TwoPi {
		return 0
	}
	return r
}

// SignedRad changes an angle in radians to be within [-Pi, Pi)
func SignedRad(a float32) float32 {
	r := WrapRad(a)
	if r >= Pi {
		r -= TwoPi
	}
	return r
}

func Deg2Rad(a float32) float32 {
	return a * (Pi / 180)
}

func Rad2Deg(a float32) float32 {
	return a * (180 / Pi)
}
