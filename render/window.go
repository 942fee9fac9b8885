// SPDX-License-Identifier: GPL-2.0-or-later
package render

import (
	"github.com/pkg/errors"

	"godoom/bsp"
	"godoom/portal"
)

var ErrWindowOverflow = errors.New("portal window pool exhausted")

type WindowState int

const (
	WindowAllocated WindowState = iota
	WindowAccumulating
	WindowQueued
	WindowRendering
	WindowRetired
)

// Window is the screen area a portal surface covers in one (sub)render.
// Rows Top[x]..Bottom[x] are open for x in [MinX, MaxX]; a column with
// Top > Bottom is closed.
type Window struct {
	Kind   WindowKind
	Portal portal.Portal
	Line   *bsp.Line
	PlaneZ float32
	MinX   int
	MaxX   int
	Top    []float32
	Bottom []float32
	Parent *Window
	Depth  int
	View   View
	State  WindowState

	// from is the view of the render the window was found in
	from    View
	opaque  bool
	overlay bool
	skipped bool
	scene   Scene
}

func (w *Window) open(x int) bool {
	return w.Top[x] <= w.Bottom[x]
}

func (w *Window) reset(width int) {
	w.MinX, w.MaxX = width, -1
	if cap(w.Top) < width {
		w.Top = make([]float32, width)
		w.Bottom = make([]float32, width)
	}
	w.Top = w.Top[:width]
	w.Bottom = w.Bottom[:width]
	for i := range w.Top {
		w.Top[i] = float32(width + 1)
		w.Bottom[i] = -1
	}
}

// windowPool hands out the windows of one frame.
type windowPool struct {
	windows []*Window
	limit   int
	width   int
}

func (p *windowPool) alloc(kind WindowKind, pt portal.Portal, line *bsp.Line, planeZ float32, parent *Window) (*Window, error) {
	if len(p.windows) >= p.limit {
		return nil, errors.Wrapf(ErrWindowOverflow, "width %d, %d windows", p.width, len(p.windows))
	}
	w := &Window{
		Kind:   kind,
		Portal: pt,
		Line:   line,
		PlaneZ: planeZ,
		Parent: parent,
		State:  WindowAllocated,
	}
	if parent != nil {
		w.Depth = parent.Depth + 1
	} else {
		w.Depth = 1
	}
	w.reset(p.width)
	p.windows = append(p.windows, w)
	return w, nil
}

// findWindow returns the accumulating window of the context for a portal
// surface, creating it if needed.
func (c *context) findWindow(kind WindowKind, pt portal.Portal, line *bsp.Line, planeZ float32) (*Window, error) {
	for _, w := range c.windows {
		if w.Kind == kind && w.Portal == pt && w.Line == line && w.PlaneZ == planeZ {
			return w, nil
		}
	}
	return c.newWindow(kind, pt, line, planeZ)
}

func (c *context) newWindow(kind WindowKind, pt portal.Portal, line *bsp.Line, planeZ float32) (*Window, error) {
	w, err := c.fs.pool.alloc(kind, pt, line, planeZ, c.window)
	if err != nil {
		return nil, err
	}
	w.State = WindowAccumulating
	w.from = c.view
	c.windows = append(c.windows, w)
	return w, nil
}

// checkWindow makes room for columns [start, stop] in w. Windows never
// hold a column twice, an overlap splits off a new window.
func (c *context) checkWindow(w *Window, start, stop int) (*Window, error) {
	lo, hi := start, stop
	if lo < w.MinX {
		lo = w.MinX
	}
	if hi > w.MaxX {
		hi = w.MaxX
	}
	for x := lo; x <= hi; x++ {
		if w.open(x) {
			nw, err := c.newWindow(w.Kind, w.Portal, w.Line, w.PlaneZ)
			if err != nil {
				return nil, err
			}
			// later lookups find the newest window first
			c.promote(nw)
			nw.MinX, nw.MaxX = start, stop
			return nw, nil
		}
	}
	if start < w.MinX {
		w.MinX = start
	}
	if stop > w.MaxX {
		w.MaxX = stop
	}
	return w, nil
}

func (c *context) promote(w *Window) {
	n := len(c.windows) - 1
	copy(c.windows[1:], c.windows[:n])
	c.windows[0] = w
}

func (w *Window) mark(x int, top, bottom int) {
	if top > bottom {
		return
	}
	w.Top[x] = float32(top)
	w.Bottom[x] = float32(bottom)
}

// trim shrinks [MinX, MaxX] to the open columns. It returns false if none
// is open.
func (w *Window) trim() bool {
	for w.MinX <= w.MaxX && !w.open(w.MinX) {
		w.MinX++
	}
	for w.MaxX >= w.MinX && !w.open(w.MaxX) {
		w.MaxX--
	}
	return w.MinX <= w.MaxX
}

func (w *Window) result() WindowResult {
	return WindowResult{
		Kind:    w.Kind,
		Portal:  w.Portal,
		Line:    w.Line,
		MinX:    w.MinX,
		MaxX:    w.MaxX,
		Top:     w.Top,
		Bottom:  w.Bottom,
		Depth:   w.Depth,
		View:    w.View,
		Opaque:  w.opaque,
		Overlay: w.overlay,
		Skipped: w.skipped,
		Scene:   w.scene,
	}
}
