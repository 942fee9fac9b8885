// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const e = 1e-5

func TestLetterbox(t *testing.T) {
	tests := []struct {
		fw, fh, ww, wh int
		sx, sy         float32
	}{
		{640, 400, 1280, 800, 1, 1},
		{640, 400, 1600, 800, 0.8, 1},
		{640, 400, 1280, 1024, 1, 0.78125},
		{0, 400, 1280, 1024, 1, 1},
	}
	for _, tc := range tests {
		m := Letterbox(tc.fw, tc.fh, tc.ww, tc.wh)
		if d := m.At(0, 0) - tc.sx; d > e || d < -e {
			t.Errorf("Letterbox(%v,%v,%v,%v) x scale = %v, want %v", tc.fw, tc.fh, tc.ww, tc.wh, m.At(0, 0), tc.sx)
		}
		if d := m.At(1, 1) - tc.sy; d > e || d < -e {
			t.Errorf("Letterbox(%v,%v,%v,%v) y scale = %v, want %v", tc.fw, tc.fh, tc.ww, tc.wh, m.At(1, 1), tc.sy)
		}
	}
}

func TestLetterboxCorners(t *testing.T) {
	// a wide frame in a square window keeps its full width
	m := Letterbox(800, 400, 600, 600)
	for _, c := range []mgl32.Vec4{{-1, -1, 0, 1}, {1, 1, 0, 1}} {
		p := m.Mul4x1(c)
		if d := p.X() - c.X(); d > e || d < -e {
			t.Errorf("x of %v maps to %v", c, p.X())
		}
		if d := p.Y() - c.Y()/2; d > e || d < -e {
			t.Errorf("y of %v maps to %v, want %v", c, p.Y(), c.Y()/2)
		}
	}
}
