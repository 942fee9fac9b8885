// SPDX-License-Identifier: GPL-2.0-or-later
package render

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/sirupsen/logrus"

	"godoom/conlog"
	"godoom/portal"
)

// distances below lineClipEpsilon count as on the clip line
const lineClipEpsilon = 1.0 / 256

// lineClip keeps the part of the level beyond a line portal's destination
// line, seen from the viewer.
type lineClip struct {
	x1, y1 float64
	dx, dy float64
	length float64
	sign   float64
}

func newLineClip(x1, y1, x2, y2 float32, v *View) *lineClip {
	lc := &lineClip{
		x1: float64(x1),
		y1: float64(y1),
		dx: float64(x2 - x1),
		dy: float64(y2 - y1),
	}
	lc.length = math.Hypot(lc.dx, lc.dy)
	lc.sign = 1
	if lc.length > 0 && lc.side(v.X, v.Y) < 0 {
		lc.sign = -1
	}
	return lc
}

func (lc *lineClip) side(x, y float32) float64 {
	if lc.length == 0 {
		return 0
	}
	return (lc.dy*(float64(x)-lc.x1) - lc.dx*(float64(y)-lc.y1)) / lc.length
}

// clip returns the parameter range [t0, t1] of the segment lying beyond
// the line. ok is false if nothing of it does.
func (lc *lineClip) clip(x1, y1, x2, y2 float32) (t0, t1 float32, ok bool) {
	f1 := lc.side(x1, y1) * lc.sign
	f2 := lc.side(x2, y2) * lc.sign
	if math.Abs(f1) < lineClipEpsilon {
		f1 = 0
	}
	if math.Abs(f2) < lineClipEpsilon {
		f2 = 0
	}
	switch {
	case f1 >= 0 && f2 >= 0:
		return 0, 0, false
	case f1 <= 0 && f2 <= 0:
		return 0, 1, true
	}
	t := float32(f1 / (f1 - f2))
	if f1 > 0 {
		return t, 1, true
	}
	return 0, t, true
}

// windowContext prepares a traversal limited to the opening of w.
func (fs *frameState) windowContext(w *Window, v View) (*context, error) {
	c := fs.newContext(v, w)
	c.minX, c.maxX = w.MinX, w.MaxX
	c.tracker.Reset(w.MinX, w.MaxX)
	for x := w.MinX; x <= w.MaxX; x++ {
		if w.open(x) {
			c.ceilingClip[x] = int(w.Top[x]) - 1
			c.floorClip[x] = int(w.Bottom[x]) + 1
			continue
		}
		last := x
		for last < w.MaxX && !w.open(last+1) {
			last++
		}
		if err := c.tracker.MarkSolid(x, last); err != nil {
			return nil, err
		}
		for i := x; i <= last; i++ {
			c.ceilingClip[i] = v.Height
			c.floorClip[i] = -1
		}
		x = last
	}
	return c, nil
}

// taint checks whether w closes a cycle of portals or is nested too deep.
// If so every portal on the offending chain is tainted.
func (fs *frameState) taint(w *Window) bool {
	var cycle *Window
	for a := w.Parent; a != nil; a = a.Parent {
		if a.Portal == w.Portal {
			cycle = a
			break
		}
	}
	if cycle == nil && w.Depth <= fs.opts.MaxPortalDepth {
		return false
	}
	for a := w; a != nil; a = a.Parent {
		fs.tainted[a.Portal] = true
		if a == cycle {
			break
		}
	}
	fs.stats.Tainted++
	conlog.WithFields(logrus.Fields{
		"portal": portal.Name(w.Portal),
		"depth":  w.Depth,
		"cycle":  cycle != nil,
	}).Debug("portal tainted")
	return true
}

// linkedVisible checks that the viewer is on the side of a linked portal
// the link is seen from.
func linkedVisible(w *Window, p *portal.Linked, v *View) bool {
	switch w.Kind {
	case FloorWindow:
		return v.Z > p.PlaneZ
	case CeilingWindow:
		return v.Z < p.PlaneZ
	case LineWindow:
		return w.Line != nil && w.Line.PointOnSide(v.X, v.Y) == 0
	}
	return false
}

// transformOf returns the transform of portals that move the view.
func transformOf(p portal.Portal) (portal.Transform, bool) {
	switch p := p.(type) {
	case *portal.Anchored:
		return p.Transform, true
	case *portal.TwoWay:
		return p.Transform, true
	case *portal.Linked:
		return p.Transform, true
	}
	return portal.Transform{}, false
}

// renderWindow renders what is seen through w and queues the windows found
// on the way.
func (fs *frameState) renderWindow(w *Window) error {
	w.State = WindowRendering
	defer func() {
		w.State = WindowRetired
	}()
	if !w.trim() {
		return nil
	}
	fs.stats.Windows++
	from := w.from
	w.View = from

	switch p := w.Portal.(type) {
	case *portal.Plane:
		c, err := fs.windowContext(w, from)
		if err != nil {
			return err
		}
		c.windowPlane(w, p.Z, p.Pic, p.Light, w.Kind == FloorWindow, false, -1, from.Height)
		w.scene = Scene{Planes: c.planes}
		return nil
	case *portal.Horizon:
		c, err := fs.windowContext(w, from)
		if err != nil {
			return err
		}
		horizon := int(math32.Ceil(from.YCenter)) - 1
		c.windowPlane(w, p.CeilingZ, p.CeilingPic, p.Light, false, true, -1, horizon)
		c.windowPlane(w, p.FloorZ, p.FloorPic, p.Light, true, true, horizon+1, from.Height)
		w.scene = Scene{Planes: c.planes}
		return nil
	}

	var view View
	switch p := w.Portal.(type) {
	case *portal.Skybox:
		cam := p.Camera
		cam.Angle = from.Angle + p.Camera.Angle
		cam.Pitch = from.Pitch
		view = from.WithCamera(cam)
	case *portal.Anchored:
		view = from.Transformed(p.Transform, from.Group)
	case *portal.TwoWay:
		view = from.Transformed(p.Transform, from.Group)
	case *portal.Linked:
		if fs.opts.PortalOverlay {
			w.overlay = true
			return nil
		}
		if !linkedVisible(w, p, &from) {
			w.skipped = true
			conlog.WithFields(logrus.Fields{
				"portal": portal.Name(p),
				"depth":  w.Depth,
			}).Debug("linked portal seen from behind")
			return nil
		}
		view = from.Transformed(p.Transform, p.ToGroup)
	default:
		return nil
	}
	if fs.taint(w) {
		w.opaque = true
		return nil
	}
	w.View = view
	c, err := fs.windowContext(w, view)
	if err != nil {
		return err
	}
	if w.Kind == LineWindow && w.Line != nil {
		x1, y1, x2, y2 := w.Line.V1.X, w.Line.V1.Y, w.Line.V2.X, w.Line.V2.Y
		if t, ok := transformOf(w.Portal); ok {
			x1, y1, _ = t.Apply(x1, y1, 0)
			x2, y2, _ = t.Apply(x2, y2, 0)
		}
		c.lineClip = newLineClip(x1, y1, x2, y2, &c.view)
	}
	if err := c.run(); err != nil {
		return err
	}
	w.scene = Scene{Walls: c.scene.Walls, Planes: c.planes}
	fs.queue(c.windows)
	return nil
}

// windowPlane fills the open rows of w between minRow and maxRow with a
// single plane.
func (c *context) windowPlane(w *Window, height float32, pic string, light int, floor, horizon bool, minRow, maxRow int) {
	p := c.newPlane(height, pic, light, nil, floor)
	p.Horizon = horizon
	p.MinX, p.MaxX = w.MinX, w.MaxX
	for x := w.MinX; x <= w.MaxX; x++ {
		if !w.open(x) {
			continue
		}
		top, bottom := int(w.Top[x]), int(w.Bottom[x])
		if top < minRow {
			top = minRow
		}
		if bottom > maxRow {
			bottom = maxRow
		}
		p.mark(x, top, bottom)
	}
}
