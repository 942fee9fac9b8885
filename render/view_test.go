// SPDX-License-Identifier: GPL-2.0-or-later
package render

import (
	"testing"

	"github.com/chewxy/math32"

	"godoom/bsp"
	"godoom/portal"
)

func near(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}

func TestNewViewClamp(t *testing.T) {
	tests := []struct {
		fov, pitch         float32
		wantFov, wantPitch float32
	}{
		{90, 0, 90, 0},
		{5, 0, MinFOV, 0},
		{300, 0, MaxFOV, 0},
		{90, 2, 90, MaxPitch},
		{90, -2, 90, -MaxPitch},
	}
	for _, tc := range tests {
		v := NewView(portal.Camera{Pitch: tc.pitch}, 320, 200, tc.fov)
		if v.FOV != tc.wantFov || v.Pitch != tc.wantPitch {
			t.Errorf("NewView(fov %v, pitch %v) = fov %v, pitch %v", tc.fov, tc.pitch, v.FOV, v.Pitch)
		}
	}
}

func TestProjection(t *testing.T) {
	v := NewView(portal.Camera{Z: 41}, 320, 200, 90)
	if !near(v.XFoc, 160, 1e-3) {
		t.Fatalf("XFoc = %v, want 160", v.XFoc)
	}
	tests := []struct {
		x, y  float32
		wantX float32
	}{
		{100, 0, 160},
		{100, 100, 0},
		{100, -100, 320},
		{200, 50, 120},
	}
	for _, tc := range tests {
		lat, d := v.toCamera(tc.x, tc.y)
		if got := v.ScreenX(lat, d); !near(got, tc.wantX, 1e-3) {
			t.Errorf("ScreenX(%v,%v) = %v, want %v", tc.x, tc.y, got, tc.wantX)
		}
	}
	if got := v.ScreenY(41, 100); got != v.YCenter {
		t.Errorf("eye height projects to %v, want %v", got, v.YCenter)
	}
	if got := v.AngleToX(math32.Pi / 4); !near(got, 0, 1e-3) {
		t.Errorf("AngleToX(pi/4) = %v", got)
	}
	if got := v.AngleToX(-math32.Pi / 4); !near(got, 320, 1e-3) {
		t.Errorf("AngleToX(-pi/4) = %v", got)
	}
	up := NewView(portal.Camera{Pitch: 0.3}, 320, 200, 90)
	if up.YCenter <= 100 {
		t.Errorf("looking up moves the horizon to %v", up.YCenter)
	}
}

func TestTransformedView(t *testing.T) {
	v := NewView(portal.Camera{X: 10, Y: 20, Z: 41, Angle: 0.5}, 320, 200, 90)
	w := v.Transformed(portal.Translation(100, 0, 8), 3)
	if !near(w.X, 110, 1e-4) || !near(w.Y, 20, 1e-4) || !near(w.Z, 49, 1e-4) {
		t.Errorf("moved to (%v, %v, %v)", w.X, w.Y, w.Z)
	}
	if w.Group != 3 || w.Angle != v.Angle || w.Width != v.Width {
		t.Errorf("transformed view %+v", w)
	}
}

func TestCheckBBox(t *testing.T) {
	fs := &frameState{}
	c := fs.newContext(NewView(portal.Camera{}, 320, 200, 90), nil)
	box := func(top, bottom, left, right float32) *[4]float32 {
		var b [4]float32
		b[bsp.BoxTop], b[bsp.BoxBottom] = top, bottom
		b[bsp.BoxLeft], b[bsp.BoxRight] = left, right
		return &b
	}
	tests := []struct {
		name string
		box  *[4]float32
		want bool
	}{
		{"ahead", box(10, -10, 100, 120), true},
		{"behind", box(10, -10, -120, -100), false},
		{"off the left edge", box(300, 200, 10, 20), false},
		{"off the right edge", box(-200, -300, 10, 20), false},
		{"around the viewer", box(10, -10, -10, 10), true},
		{"left half", box(90, 50, 100, 120), true},
	}
	for _, tc := range tests {
		if got := c.checkBBox(tc.box); got != tc.want {
			t.Errorf("%s: checkBBox = %v, want %v", tc.name, got, tc.want)
		}
	}
	// the left half of the screen is covered
	c.tracker.MarkSolid(0, 159)
	if c.checkBBox(box(90, 50, 100, 120)) {
		t.Errorf("box behind solid columns is visible")
	}
	if !c.checkBBox(box(10, -10, 100, 120)) {
		t.Errorf("box in the open half is hidden")
	}
}
