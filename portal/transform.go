// SPDX-License-Identifier: GPL-2.0-or-later
package portal

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform maps source space to destination space: a rotation about some
// pivot followed by a translation in the xy plane, plus a height offset.
type Transform struct {
	M   mgl32.Mat3
	Rot float32
	DZ  float32
}

func Identity() Transform {
	return Transform{M: mgl32.Ident3()}
}

// Translation moves by (dx, dy, dz) without rotating.
func Translation(dx, dy, dz float32) Transform {
	return Transform{M: mgl32.Translate2D(dx, dy), DZ: dz}
}

// Rotation turns by angle radians around (px, py).
func Rotation(px, py, angle float32) Transform {
	m := mgl32.Translate2D(px, py).
		Mul3(mgl32.HomogRotate2D(angle)).
		Mul3(mgl32.Translate2D(-px, -py))
	return Transform{M: m, Rot: angle}
}

// LineToLine maps the line a1-a2 onto b2-b1. A point in front of line a
// ends up behind line b, so stepping through a leaves b on its front side.
func LineToLine(a1x, a1y, a2x, a2y, b1x, b1y, b2x, b2y float32) Transform {
	aAngle := math32.Atan2(a2y-a1y, a2x-a1x)
	bAngle := math32.Atan2(b2y-b1y, b2x-b1x)
	rot := bAngle - aAngle + math32.Pi
	m := mgl32.Translate2D(b2x, b2y).
		Mul3(mgl32.HomogRotate2D(rot)).
		Mul3(mgl32.Translate2D(-a1x, -a1y))
	return Transform{M: m, Rot: rot}
}

// Then returns the transform applying t first and o second.
func (t Transform) Then(o Transform) Transform {
	return Transform{
		M:   o.M.Mul3(t.M),
		Rot: t.Rot + o.Rot,
		DZ:  t.DZ + o.DZ,
	}
}

func (t Transform) Inverse() Transform {
	return Transform{
		M:   t.M.Inv(),
		Rot: -t.Rot,
		DZ:  -t.DZ,
	}
}

func (t Transform) Apply(x, y, z float32) (float32, float32, float32) {
	v := t.M.Mul3x1(mgl32.Vec3{x, y, 1})
	return v[0], v[1], z + t.DZ
}

func (t Transform) ApplyAngle(a float32) float32 {
	return a + t.Rot
}

// Camera moves c into destination space. The group is left untouched.
func (t Transform) Camera(c Camera) Camera {
	x, y, z := t.Apply(c.X, c.Y, c.Z)
	return Camera{
		X:     x,
		Y:     y,
		Z:     z,
		Angle: t.ApplyAngle(c.Angle),
		Pitch: c.Pitch,
		Group: c.Group,
	}
}

// IsIdentity reports whether t leaves every point in place.
func (t Transform) IsIdentity() bool {
	return t.DZ == 0 && t.M.ApproxEqualThreshold(mgl32.Ident3(), 1e-6)
}
