// SPDX-License-Identifier: GPL-2.0-or-later

// Package swdraw paints a render.Frame into an RGBA image. Surfaces are
// filled flat with a colour picked from their texture name and shaded by
// light level and distance.
package swdraw

import (
	"hash/fnv"
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"godoom/palette"
	"godoom/render"
)

// light lost per fadeDist units of depth
const fadeDist = 8

type Drawer struct {
	Palette *palette.Palette
	// Overlay fills windows of portals that were not followed.
	Overlay color.RGBA
	// Opaque fills windows cut off by a portal cycle.
	Opaque color.RGBA
	Nodes  color.RGBA

	img *image.RGBA
}

func New(p *palette.Palette) *Drawer {
	if p == nil {
		p = palette.Default()
	}
	return &Drawer{
		Palette: p,
		Overlay: color.RGBA{255, 0, 255, 255},
		Opaque:  color.RGBA{0, 0, 0, 255},
		Nodes:   color.RGBA{0, 255, 0, 255},
	}
}

// Draw paints f. The returned image is reused by the next call.
func (d *Drawer) Draw(f *render.Frame) *image.RGBA {
	r := image.Rect(0, 0, f.Width, f.Height)
	if d.img == nil || d.img.Rect != r {
		d.img = image.NewRGBA(r)
	} else {
		clear(d.img.Pix)
	}
	d.scene(&f.Scene, &f.View)
	for i := range f.Windows {
		w := &f.Windows[i]
		switch {
		case w.Overlay:
			d.fill(w, d.Overlay)
		case w.Opaque:
			d.fill(w, d.Opaque)
		default:
			d.scene(&w.Scene, &w.View)
		}
	}
	for _, l := range f.NodeLines {
		d.line(l.X1, l.Y1, l.X2, l.Y2, d.Nodes)
	}
	return d.img
}

func colorIndex(name string) uint8 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return uint8(h.Sum32())
}

func fade(light int, depth float32) int {
	return light - int(depth)/fadeDist
}

func (d *Drawer) scene(s *render.Scene, v *render.View) {
	for i := range s.Walls {
		d.wall(&s.Walls[i])
	}
	for _, p := range s.Planes {
		d.plane(p, v)
	}
}

func (d *Drawer) column(x int, p render.Post, c color.RGBA) {
	if p.Empty() {
		return
	}
	for y := int(p.Top); y <= int(p.Bottom); y++ {
		d.img.SetRGBA(x, y, c)
	}
}

func (d *Drawer) wall(w *render.WallRange) {
	top, mid, bottom := colorIndex(w.Top), colorIndex(w.Mid), colorIndex(w.Bottom)
	for x := w.X1; x <= w.X2; x++ {
		i := x - w.X1
		dist, _ := w.Column(x)
		l := w.Light
		if dist > 0 {
			l = fade(w.Light, 1/dist)
		}
		if w.Upper != nil {
			d.column(x, w.Upper[i], d.Palette.Shade(top, l))
		}
		if w.Middle != nil {
			d.column(x, w.Middle[i], d.Palette.Shade(mid, l))
		}
		if w.Lower != nil {
			d.column(x, w.Lower[i], d.Palette.Shade(bottom, l))
		}
	}
}

func (d *Drawer) plane(p *render.PlaneMark, v *render.View) {
	ci := colorIndex(p.Pic)
	if p.Sky {
		c := d.Palette.Shade(ci, 255)
		for x := p.MinX; x <= p.MaxX; x++ {
			d.column(x, p.Post(x), c)
		}
		return
	}
	// shade per row, the depth of a flat plane only depends on y
	rows := make(map[int]color.RGBA)
	for x := p.MinX; x <= p.MaxX; x++ {
		post := p.Post(x)
		if post.Empty() {
			continue
		}
		for y := int(post.Top); y <= int(post.Bottom); y++ {
			c, ok := rows[y]
			if !ok {
				c = d.Palette.Shade(ci, fade(p.Light, planeDepth(p.Height, y, v)))
				rows[y] = c
			}
			d.img.SetRGBA(x, y, c)
		}
	}
}

func planeDepth(height float32, y int, v *render.View) float32 {
	dy := v.YCenter - float32(y)
	if math32.Abs(dy) < 0.5 {
		return 0
	}
	depth := (height - v.Z) * v.YFoc / dy
	if depth < 0 {
		return 0
	}
	return depth
}

func (d *Drawer) fill(w *render.WindowResult, c color.RGBA) {
	for x := w.MinX; x <= w.MaxX; x++ {
		if w.Top[x] > w.Bottom[x] {
			continue
		}
		d.column(x, render.Post{Top: int16(w.Top[x]), Bottom: int16(w.Bottom[x])}, c)
	}
}

// line draws from (x1, y1) to (x2, y2) after clipping it to the image.
func (d *Drawer) line(x1, y1, x2, y2 float32, c color.RGBA) {
	b := d.img.Rect
	t0, t1 := float32(0), float32(1)
	dx, dy := x2-x1, y2-y1
	clip := func(p, q float32) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return false
			}
			t1 = min(t1, r)
		}
		return true
	}
	if !clip(-dx, x1) || !clip(dx, float32(b.Max.X-1)-x1) ||
		!clip(-dy, y1) || !clip(dy, float32(b.Max.Y-1)-y1) {
		return
	}
	x1, y1, x2, y2 = x1+t0*dx, y1+t0*dy, x1+t1*dx, y1+t1*dy
	steps := int(max(math32.Abs(x2-x1), math32.Abs(y2-y1))) + 1
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		d.img.SetRGBA(int(x1+t*(x2-x1)+0.5), int(y1+t*(y2-y1)+0.5), c)
	}
}
