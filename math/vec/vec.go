package vec

import (
	"github.com/chewxy/math32"
)

type Vec2 struct {
	X, Y float32
}

type Vec3 struct {
	X, Y, Z float32
}

// XY drops the height.
func (v Vec3) XY() Vec2 {
	return Vec2{v.X, v.Y}
}

// Length returns the length of the vector
func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// Length returns the length of the vector
func (v Vec3) Length() float32 {
	return math32.Sqrt(Dot(v, v))
}

// Add2 returns a + b
func Add2(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub2 returns a - b
func Sub2(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Scale returns the vector multiplied by the skalar s
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot2 returns a dot b
func Dot2(a, b Vec2) float32 {
	return a.X*b.X + a.Y*b.Y
}

// Cross2 returns the z component of a cross b. It is positive if b lies
// counterclockwise of a.
func Cross2(a, b Vec2) float32 {
	return a.X*b.Y - a.Y*b.X
}

// Lerp2 computes a weighted average between two points
func Lerp2(a, b Vec2, frac float32) Vec2 {
	return Vec2{
		a.X + frac*(b.X-a.X),
		a.Y + frac*(b.Y-a.Y),
	}
}

// Rotate returns v rotated counterclockwise by angle (radians).
func (v Vec2) Rotate(angle float32) Vec2 {
	s, c := math32.Sincos(angle)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Angle returns the direction of v in radians.
func (v Vec2) Angle() float32 {
	return math32.Atan2(v.Y, v.X)
}

// Add returns a + b
func Add(a, b Vec3) Vec3 {
	return Vec3{
		X: a.X + b.X,
		Y: a.Y + b.Y,
		Z: a.Z + b.Z,
	}
}

// Sub returns a - b
func Sub(a, b Vec3) Vec3 {
	return Vec3{
		X: a.X - b.X,
		Y: a.Y - b.Y,
		Z: a.Z - b.Z,
	}
}

// Scale returns the vector multiplied by the skalar s
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{
		X: v.X * s,
		Y: v.Y * s,
		Z: v.Z * s,
	}
}

// Dot returns a dot b
func Dot(a Vec3, b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// DoublePrecCross2 returns a cross b calculated in double precision
func DoublePrecCross2(a, b Vec2) float64 {
	return float64(a.X)*float64(b.Y) - float64(a.Y)*float64(b.X)
}

func minmax(a, b float32) (float32, float32) {
	if a < b {
		return a, b
	}
	return b, a
}

func MinMax2(a, b Vec2) (Vec2, Vec2) {
	var r, s Vec2
	r.X, s.X = minmax(a.X, b.X)
	r.Y, s.Y = minmax(a.Y, b.Y)
	return r, s
}
