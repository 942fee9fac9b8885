// SPDX-License-Identifier: GPL-2.0-or-later
package host

import (
	"github.com/chewxy/math32"

	"godoom/bsp"
	"godoom/cvars"
	"godoom/input"
	"godoom/math"
	"godoom/portal"
	"godoom/render"
)

// speedFactor scales move and turn speed while +speed is held.
const speedFactor = 2

// move applies the button state of the last dt seconds to the camera. The
// camera flies freely, walls do not block it but line portals carry it to
// their other side.
func (h *Host) move(dt float32) {
	speed := cvars.MoveSpeed.Value()
	turn := math.Deg2Rad(cvars.TurnSpeed.Value())
	if input.Speed.Down() {
		speed *= speedFactor
		turn *= speedFactor
	}

	c := h.cam
	c.Angle = math.WrapRad(c.Angle + turn*dt*(input.Left.ConsumeImpulse()-input.Right.ConsumeImpulse()))
	c.Pitch = math.Clamp(-render.MaxPitch, c.Pitch+turn*dt*(input.LookUp.ConsumeImpulse()-input.LookDown.ConsumeImpulse()), render.MaxPitch)

	fwd := input.Forward.ConsumeImpulse() - input.Back.ConsumeImpulse()
	side := input.MoveRight.ConsumeImpulse() - input.MoveLeft.ConsumeImpulse()
	up := input.Up.ConsumeImpulse() - input.Down.ConsumeImpulse()
	input.Speed.ResetImpulse()

	sin, cos := math32.Sincos(c.Angle)
	// screen right is (sin, -cos)
	dx := (cos*fwd + sin*side) * speed * dt
	dy := (sin*fwd - cos*side) * speed * dt
	c.Z += up * speed * dt
	h.cam = h.walk(c, dx, dy)
}

// walk moves c by (dx, dy), following the first line portal crossed.
func (h *Host) walk(c portal.Camera, dx, dy float32) portal.Camera {
	if dx == 0 && dy == 0 {
		return c
	}
	nx, ny := c.X+dx, c.Y+dy
	if ln := h.crossedPortal(c.X, c.Y, nx, ny); ln != nil {
		t, _ := lineTransform(ln.Portal)
		c.X, c.Y = nx, ny
		c = t.Camera(c)
		c.Group = h.groupAt(c.X, c.Y, c.Group)
		return c
	}
	c.X, c.Y = nx, ny
	c.Group = h.groupAt(c.X, c.Y, c.Group)
	return c
}

func (h *Host) groupAt(x, y float32, old int) int {
	if s := h.level.SectorAt(x, y); s != nil {
		return s.Group
	}
	return old
}

func lineTransform(p portal.Portal) (portal.Transform, bool) {
	switch p := p.(type) {
	case *portal.Anchored:
		return p.Transform, true
	case *portal.Linked:
		return p.Transform, true
	}
	return portal.Transform{}, false
}

// crossedPortal returns the line portal the segment (x1, y1)-(x2, y2)
// passes through from front to back, nil if none.
func (h *Host) crossedPortal(x1, y1, x2, y2 float32) *bsp.Line {
	var best *bsp.Line
	bestT := float32(2)
	for _, ln := range h.level.Lines {
		if !portal.Visible(ln.Portal) {
			continue
		}
		if _, ok := lineTransform(ln.Portal); !ok {
			continue
		}
		if ln.PointOnSide(x1, y1) != 0 || ln.PointOnSide(x2, y2) != 1 {
			continue
		}
		t, ok := segmentHit(x1, y1, x2, y2, ln)
		if ok && t < bestT {
			best, bestT = ln, t
		}
	}
	return best
}

// segmentHit intersects the movement with the line and returns the
// fraction of the movement, if the hit lies within the line.
func segmentHit(x1, y1, x2, y2 float32, ln *bsp.Line) (float32, bool) {
	mx, my := x2-x1, y2-y1
	den := mx*ln.Dy - my*ln.Dx
	if den == 0 {
		return 0, false
	}
	ox, oy := ln.V1.X-x1, ln.V1.Y-y1
	t := (ox*ln.Dy - oy*ln.Dx) / den
	u := (ox*my - oy*mx) / den
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}
