// SPDX-License-Identifier: GPL-2.0-or-later
package render

import (
	"github.com/chewxy/math32"

	"godoom/math"
	"godoom/portal"
)

const (
	MinFOV = 20
	MaxFOV = 170
	// MaxPitch is the largest look up/down angle in radians.
	MaxPitch = 1.2

	// NearClip is the camera space depth walls get clipped to.
	NearClip = 0.05
	// DepthEpsilon is the smallest depth a projection divides by.
	DepthEpsilon = 1e-4
)

// View is the camera of one (sub)render projected to a width*height screen.
// Nothing changes it after NewView.
type View struct {
	X, Y, Z    float32
	Angle      float32
	Pitch      float32
	Sin, Cos   float32
	Width      int
	Height     int
	XCenter    float32
	YCenter    float32
	XFoc       float32
	YFoc       float32
	FOV        float32 // degrees, clamped
	ClipAngle  float32
	TanHalfFOV float32
	Group      int
}

func NewView(cam portal.Camera, width, height int, fovDeg float32) View {
	fov := math.Clamp(MinFOV, fovDeg, MaxFOV)
	pitch := math.Clamp(-MaxPitch, cam.Pitch, MaxPitch)
	half := math.Deg2Rad(fov) / 2
	tanHalf := math32.Tan(half)
	v := View{
		X:          cam.X,
		Y:          cam.Y,
		Z:          cam.Z,
		Angle:      math.WrapRad(cam.Angle),
		Pitch:      pitch,
		Width:      width,
		Height:     height,
		XCenter:    float32(width) / 2,
		FOV:        fov,
		ClipAngle:  half,
		TanHalfFOV: tanHalf,
		Group:      cam.Group,
	}
	v.Sin, v.Cos = math32.Sincos(v.Angle)
	v.XFoc = v.XCenter / tanHalf
	v.YFoc = v.XFoc
	v.YCenter = float32(height)/2 + math32.Tan(pitch)*v.YFoc
	return v
}

// Camera returns the camera v was built from.
func (v View) Camera() portal.Camera {
	return portal.Camera{X: v.X, Y: v.Y, Z: v.Z, Angle: v.Angle, Pitch: v.Pitch, Group: v.Group}
}

// WithCamera returns a view of the same screen from cam.
func (v View) WithCamera(cam portal.Camera) View {
	return NewView(cam, v.Width, v.Height, v.FOV)
}

// Transformed returns the view moved through t into group.
func (v View) Transformed(t portal.Transform, group int) View {
	c := t.Camera(v.Camera())
	c.Group = group
	return v.WithCamera(c)
}

// toCamera returns the lateral offset (positive to the right) and the depth
// of (x, y) in camera space.
func (v *View) toCamera(x, y float32) (lat, depth float32) {
	dx, dy := x-v.X, y-v.Y
	depth = dx*v.Cos + dy*v.Sin
	lat = dx*v.Sin - dy*v.Cos
	return lat, depth
}

// ScreenX projects a camera space point, depth must be positive.
func (v *View) ScreenX(lat, depth float32) float32 {
	return v.XCenter + lat*v.XFoc/depth
}

// ScreenY projects the world height h seen at depth.
func (v *View) ScreenY(h, depth float32) float32 {
	return v.YCenter - (h-v.Z)*v.YFoc/depth
}

// AngleToX returns the screen x of a direction at angle a relative to the
// view direction, positive to the left.
func (v *View) AngleToX(a float32) float32 {
	return v.XCenter - math32.Tan(a)*v.XFoc
}
