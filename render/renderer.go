// SPDX-License-Identifier: GPL-2.0-or-later

// Package render turns a level and a camera into the visible wall ranges,
// plane marks and portal windows of one frame.
package render

import (
	"sort"

	"godoom/bsp"
	"godoom/portal"
)

// Renderer renders frames of one level. It keeps no state between frames
// beyond its options.
type Renderer struct {
	level *bsp.Level
	opts  Options
}

func New(level *bsp.Level, opts Options) *Renderer {
	return &Renderer{level: level, opts: opts}
}

func (r *Renderer) Level() *bsp.Level {
	return r.level
}

func (r *Renderer) Options() Options {
	return r.opts
}

func (r *Renderer) SetOptions(o Options) {
	r.opts = o
}

// frameState is everything shared by the (sub)renders of one frame.
type frameState struct {
	level   *bsp.Level
	opts    Options
	pool    windowPool
	pending []*Window
	tainted map[portal.Portal]bool
	stats   Stats
	lines   []NodeLine
}

// context is one traversal: the base view or the view through one window.
type context struct {
	fs     *frameState
	view   View
	window *Window

	tracker     *SpanTracker
	ceilingClip []int
	floorClip   []int
	minX, maxX  int
	lineClip    *lineClip

	planes  []*PlaneMark
	scene   Scene
	windows []*Window

	// current subsector
	front         *bsp.Sector
	floorPlane    *PlaneMark
	ceilingPlane  *PlaneMark
	floorPortal   portal.Portal
	ceilingPortal portal.Portal

	// current seg
	wall wallSeg
}

func (fs *frameState) newContext(v View, w *Window) *context {
	c := &context{
		fs:          fs,
		view:        v,
		window:      w,
		tracker:     NewSpanTracker(v.Width),
		ceilingClip: make([]int, v.Width),
		floorClip:   make([]int, v.Width),
		minX:        0,
		maxX:        v.Width - 1,
	}
	for i := range c.ceilingClip {
		c.ceilingClip[i] = -1
		c.floorClip[i] = v.Height
	}
	return c
}

// Render renders the level seen from cam. Errors are only returned when a
// fixed size pool runs out, the frame is lost then.
func (r *Renderer) Render(cam portal.Camera) (*Frame, error) {
	o := r.opts
	o.normalize()
	fs := &frameState{
		level:   r.level,
		opts:    o,
		pool:    windowPool{limit: o.MaxWindows, width: o.Width},
		tainted: make(map[portal.Portal]bool),
	}
	view := NewView(cam, o.Width, o.Height, o.FOV)
	base := fs.newContext(view, nil)
	if err := base.run(); err != nil {
		return nil, err
	}
	if o.NetPoll != nil {
		o.NetPoll()
	}
	fs.queue(base.windows)
	for len(fs.pending) > 0 {
		w := fs.pending[len(fs.pending)-1]
		fs.pending = fs.pending[:len(fs.pending)-1]
		if err := fs.renderWindow(w); err != nil {
			return nil, err
		}
	}
	if o.NetPoll != nil {
		o.NetPoll()
	}

	f := &Frame{
		Width:     o.Width,
		Height:    o.Height,
		View:      view,
		NodeLines: fs.lines,
		Scene: Scene{
			Walls:  base.scene.Walls,
			Planes: finishPlanes(base.planes),
		},
	}
	for i := len(fs.pool.windows) - 1; i >= 0; i-- {
		w := fs.pool.windows[i]
		if w.MinX > w.MaxX {
			continue
		}
		w.scene.Planes = finishPlanes(w.scene.Planes)
		f.Windows = append(f.Windows, w.result())
	}
	for p := range fs.tainted {
		f.Tainted = append(f.Tainted, p)
	}
	sort.Slice(f.Tainted, func(i, j int) bool {
		return portal.IDOf(f.Tainted[i]) < portal.IDOf(f.Tainted[j])
	})
	f.Stats = fs.stats
	return f, nil
}

// queue pushes the windows found by one traversal onto the work list.
func (fs *frameState) queue(ws []*Window) {
	for _, w := range ws {
		w.State = WindowQueued
		fs.pending = append(fs.pending, w)
	}
}

// run traverses the whole tree from the context's view.
func (c *context) run() error {
	lvl := c.fs.level
	if lvl == nil || len(lvl.Subsectors) == 0 {
		return nil
	}
	return c.renderNode(lvl.RootChild())
}
