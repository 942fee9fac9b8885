// SPDX-License-Identifier: GPL-2.0-or-later
package render

import (
	"godoom/bsp"
)

const noTop = int16(1 << 14)

func (c *context) newPlane(height float32, pic string, light int, slope *bsp.Slope, floor bool) *PlaneMark {
	w := c.view.Width
	p := &PlaneMark{
		Height: height,
		Pic:    pic,
		Light:  light,
		Slope:  slope,
		Floor:  floor,
		Sky:    pic == bsp.SkyFlatName,
		MinX:   w,
		MaxX:   -1,
		Top:    make([]int16, w),
		Bottom: make([]int16, w),
	}
	for i := range p.Top {
		p.Top[i] = noTop
	}
	c.planes = append(c.planes, p)
	return p
}

// findPlane returns a plane of the context with the given attributes.
// All sky planes are the same.
func (c *context) findPlane(height float32, pic string, light int, slope *bsp.Slope, floor bool) *PlaneMark {
	if pic == bsp.SkyFlatName {
		height, light, slope, floor = 0, 0, nil, false
	}
	for _, p := range c.planes {
		if p.Height == height && p.Pic == pic && p.Light == light && p.Slope == slope && p.Floor == floor && !p.Horizon {
			return p
		}
	}
	return c.newPlane(height, pic, light, slope, floor)
}

// checkPlane makes room for columns [start, stop] in p. If any of them is
// already marked a fresh plane with the same attributes is returned.
func (c *context) checkPlane(p *PlaneMark, start, stop int) *PlaneMark {
	var intrl, intrh, unionl, unionh int
	if start < p.MinX {
		intrl, unionl = p.MinX, start
	} else {
		unionl, intrl = p.MinX, start
	}
	if stop > p.MaxX {
		intrh, unionh = p.MaxX, stop
	} else {
		unionh, intrh = p.MaxX, stop
	}
	x := intrl
	for ; x <= intrh; x++ {
		if p.Top[x] != noTop {
			break
		}
	}
	if x > intrh {
		p.MinX, p.MaxX = unionl, unionh
		return p
	}
	np := c.newPlane(p.Height, p.Pic, p.Light, p.Slope, p.Floor)
	np.MinX, np.MaxX = start, stop
	return np
}

func (p *PlaneMark) mark(x, top, bottom int) {
	if top > bottom {
		return
	}
	p.Top[x] = int16(top)
	p.Bottom[x] = int16(bottom)
}

// finishPlanes returns the planes that got any columns, with unmarked
// columns inside [MinX, MaxX] set to an empty post.
func finishPlanes(planes []*PlaneMark) []*PlaneMark {
	out := planes[:0]
	for _, p := range planes {
		if p.MinX > p.MaxX {
			continue
		}
		used := false
		for x := p.MinX; x <= p.MaxX; x++ {
			if p.Top[x] == noTop {
				p.Top[x], p.Bottom[x] = NoPost.Top, NoPost.Bottom
			} else {
				used = true
			}
		}
		if used {
			out = append(out, p)
		}
	}
	return out
}
