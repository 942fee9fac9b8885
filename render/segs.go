// SPDX-License-Identifier: GPL-2.0-or-later
package render

import (
	"github.com/chewxy/math32"

	"godoom/bsp"
	"godoom/math"
	"godoom/portal"
)

// wallSeg is the projected seg currently fed to the span tracker. Every
// *Step is the change per screen column, the base values are at column x1.
type wallSeg struct {
	seg   *bsp.Seg
	side  *bsp.Side
	front *bsp.Sector
	back  *bsp.Sector
	x1    int

	iz, izStep         float32
	uz, uzStep         float32
	top, topStep       float32
	bottom, bottomStep float32
	high, highStep     float32
	low, lowStep       float32

	markFloor   bool
	markCeiling bool
	hasTop      bool
	hasBottom   bool
	// solidMid is a one sided wall
	solidMid bool
	// maskedMid is a two sided middle texture
	maskedMid bool
	portal    portal.Portal

	texTop, texMid, texBottom float32
}

// interp returns the value at column x of a quantity that is q1 at sx1
// and q2 at sx2.
func interp(q1, q2, sx1, sx2 float32, x int) (float32, float32) {
	step := (q2 - q1) / (sx2 - sx1)
	return q1 + (float32(x)-sx1)*step, step
}

// linePortal returns the portal of the line seg runs along, if the view
// should follow it from this side.
func (c *context) linePortal(seg *bsp.Seg) portal.Portal {
	if seg.Side != 0 || seg.Line.Portal == nil {
		return nil
	}
	return c.visiblePortal(seg.Line.Portal)
}

func sameSector(a, b *bsp.Sector) bool {
	return a.FloorHeight == b.FloorHeight &&
		a.CeilingHeight == b.CeilingHeight &&
		a.FloorPic == b.FloorPic &&
		a.CeilingPic == b.CeilingPic &&
		a.LightLevel == b.LightLevel &&
		a.FloorSlope == b.FloorSlope &&
		a.CeilingSlope == b.CeilingSlope &&
		a.FloorPortal == b.FloorPortal &&
		a.CeilingPortal == b.CeilingPortal
}

// closedDoor reports whether nothing can be seen through a two sided line
// at one of its ends.
func closedDoor(ff, fc, bf, bc float32, bothSky, hasTop, hasBottom bool) bool {
	return bf >= fc ||
		(!bothSky && bc <= ff) ||
		(bc <= bf && !bothSky && (bc >= fc || hasTop) && (bf <= ff || hasBottom))
}

// addLine projects seg and hands its visible columns to storeWallRange.
func (c *context) addLine(seg *bsp.Seg) error {
	c.fs.stats.Segs++
	v := &c.view
	x1, y1 := seg.V1.X, seg.V1.Y
	x2, y2 := seg.V2.X, seg.V2.Y
	// facing away from the viewer
	if float64(y2-y1)*float64(v.X-x1)-float64(x2-x1)*float64(v.Y-y1) <= 0 {
		return nil
	}
	side := seg.Sidedef()
	u1 := seg.Offset + side.XOffset
	u2 := u1 + seg.Length
	if c.lineClip != nil {
		t0, t1, ok := c.lineClip.clip(x1, y1, x2, y2)
		if !ok {
			return nil
		}
		if t0 > 0 || t1 < 1 {
			dx, dy, du := x2-x1, y2-y1, u2-u1
			x1, y1, u1, x2, y2, u2 = x1+t0*dx, y1+t0*dy, u1+t0*du, x1+t1*dx, y1+t1*dy, u1+t1*du
		}
	}

	lat1, d1 := v.toCamera(x1, y1)
	lat2, d2 := v.toCamera(x2, y2)
	if d1 < NearClip && d2 < NearClip {
		return nil
	}
	if d1 < NearClip {
		t := (NearClip - d1) / (d2 - d1)
		x1 += t * (x2 - x1)
		y1 += t * (y2 - y1)
		u1 += t * (u2 - u1)
		lat1 += t * (lat2 - lat1)
		d1 = NearClip
	} else if d2 < NearClip {
		t := (NearClip - d2) / (d1 - d2)
		x2 += t * (x1 - x2)
		y2 += t * (y1 - y2)
		u2 += t * (u1 - u2)
		lat2 += t * (lat1 - lat2)
		d2 = NearClip
	}
	if !(d1 >= DepthEpsilon && d2 >= DepthEpsilon) || !math.Finite(d1) || !math.Finite(d2) {
		return nil
	}
	sx1 := v.ScreenX(lat1, d1)
	sx2 := v.ScreenX(lat2, d2)
	if !math.Finite(sx1) || !math.Finite(sx2) || sx1 >= sx2 {
		return nil
	}
	ix1 := int(math32.Ceil(sx1))
	ix2 := int(math32.Ceil(sx2)) - 1
	if ix1 < c.minX {
		ix1 = c.minX
	}
	if ix2 > c.maxX {
		ix2 = c.maxX
	}
	if ix1 > ix2 {
		return nil
	}

	front := c.front
	var back *bsp.Sector
	if seg.Back != nil {
		back = c.fs.opts.Override.Override(seg.Back, v)
	}
	lp := c.linePortal(seg)

	w := &c.wall
	*w = wallSeg{
		seg:    seg,
		side:   side,
		front:  front,
		back:   back,
		x1:     ix1,
		portal: lp,
	}

	fc1, fc2 := front.CeilingZAt(x1, y1), front.CeilingZAt(x2, y2)
	ff1, ff2 := front.FloorZAt(x1, y1), front.FloorZAt(x2, y2)

	solid := back == nil || lp != nil
	if back != nil {
		bc1, bc2 := back.CeilingZAt(x1, y1), back.CeilingZAt(x2, y2)
		bf1, bf2 := back.FloorZAt(x1, y1), back.FloorZAt(x2, y2)
		bothSky := front.CeilingSky() && back.CeilingSky()
		hasTop, hasBottom := side.Top != "", side.Bottom != ""
		closed := closedDoor(ff1, fc1, bf1, bc1, bothSky, hasTop, hasBottom) &&
			closedDoor(ff2, fc2, bf2, bc2, bothSky, hasTop, hasBottom)
		if closed {
			solid = true
		} else if lp == nil && side.Mid == "" && sameSector(front, back) {
			// nothing changes across the line
			return nil
		}
		c.setupTwoSided(x1, y1, x2, y2, bc1, bc2, bf1, bf2, fc1, fc2, ff1, ff2, bothSky)
		if lp != nil {
			// nothing behind the window marks these columns later
			w.markFloor, w.markCeiling = true, true
		}
	} else {
		w.solidMid = lp == nil
		w.markFloor, w.markCeiling = true, true
		w.texMid = front.CeilingHeight
		if seg.Line.Flags&bsp.LineLowerUnpegged != 0 {
			w.texMid = front.FloorHeight + c.fs.opts.TextureHeight(side.Mid)
		}
		w.texMid += side.YOffset
	}
	if front.FloorZAt(v.X, v.Y) >= v.Z || (c.floorPlane == nil && c.floorPortal == nil) {
		w.markFloor = false
	}
	if (front.CeilingZAt(v.X, v.Y) <= v.Z && !front.CeilingSky()) || (c.ceilingPlane == nil && c.ceilingPortal == nil) {
		w.markCeiling = false
	}

	// everything below is linear in screen x
	w.iz, w.izStep = interp(1/d1, 1/d2, sx1, sx2, ix1)
	w.uz, w.uzStep = interp(u1/d1, u2/d2, sx1, sx2, ix1)
	top1, top2 := fc1, fc2
	if back != nil && front.CeilingSky() && back.CeilingSky() {
		// no upper wall between two skies
		top1, top2 = back.CeilingZAt(x1, y1), back.CeilingZAt(x2, y2)
	}
	ys := [8]float32{
		v.ScreenY(top1, d1), v.ScreenY(top2, d2),
		v.ScreenY(ff1, d1), v.ScreenY(ff2, d2),
	}
	if back != nil {
		ys[4], ys[5] = v.ScreenY(back.CeilingZAt(x1, y1), d1), v.ScreenY(back.CeilingZAt(x2, y2), d2)
		ys[6], ys[7] = v.ScreenY(back.FloorZAt(x1, y1), d1), v.ScreenY(back.FloorZAt(x2, y2), d2)
	}
	// a broken plane must not occlude anything
	for _, y := range ys {
		if !math.Finite(y) {
			return nil
		}
	}
	w.top, w.topStep = interp(ys[0], ys[1], sx1, sx2, ix1)
	w.bottom, w.bottomStep = interp(ys[2], ys[3], sx1, sx2, ix1)
	if back != nil {
		w.high, w.highStep = interp(ys[4], ys[5], sx1, sx2, ix1)
		w.low, w.lowStep = interp(ys[6], ys[7], sx1, sx2, ix1)
	}

	c.clipToPlaneWindow(&ix1, &ix2)
	if ix1 > ix2 {
		return nil
	}
	if solid {
		return c.tracker.ClipSolid(ix1, ix2, c.storeWallRange)
	}
	return c.tracker.ClipPass(ix1, ix2, c.storeWallRange)
}

func (c *context) setupTwoSided(x1, y1, x2, y2, bc1, bc2, bf1, bf2, fc1, fc2, ff1, ff2 float32, bothSky bool) {
	w := &c.wall
	front, back, side := w.front, w.back, w.side
	top1, top2 := fc1, fc2
	if bothSky {
		top1, top2 = bc1, bc2
	}
	w.markFloor = bf1 != ff1 || bf2 != ff2 ||
		back.FloorPic != front.FloorPic ||
		back.LightLevel != front.LightLevel ||
		back.FloorSlope != front.FloorSlope ||
		back.FloorPortal != front.FloorPortal
	w.markCeiling = bc1 != top1 || bc2 != top2 ||
		back.CeilingPic != front.CeilingPic ||
		back.LightLevel != front.LightLevel ||
		back.CeilingSlope != front.CeilingSlope ||
		back.CeilingPortal != front.CeilingPortal
	if bc1 <= ff1 || bc2 <= ff2 || bf1 >= fc1 || bf2 >= fc2 {
		// closed door
		w.markFloor, w.markCeiling = true, true
	}
	w.hasTop = side.Top != "" && (bc1 < top1 || bc2 < top2)
	w.hasBottom = side.Bottom != "" && (bf1 > ff1 || bf2 > ff2)
	w.maskedMid = side.Mid != "" && w.portal == nil

	th := c.fs.opts.TextureHeight
	flags := w.seg.Line.Flags
	if flags&bsp.LineUpperUnpegged != 0 {
		w.texTop = front.CeilingHeight
	} else {
		w.texTop = back.CeilingHeight + th(side.Top)
	}
	if flags&bsp.LineLowerUnpegged != 0 {
		w.texBottom = front.CeilingHeight
	} else {
		w.texBottom = back.FloorHeight
	}
	if flags&bsp.LineLowerUnpegged != 0 {
		w.texMid = max(front.FloorHeight, back.FloorHeight) + th(side.Mid)
	} else {
		w.texMid = min(front.CeilingHeight, back.CeilingHeight)
	}
	w.texTop += side.YOffset
	w.texMid += side.YOffset
	w.texBottom += side.YOffset
}

// clipToPlaneWindow trims columns at both ends that lie entirely outside
// the opening of a floor or ceiling window.
func (c *context) clipToPlaneWindow(ix1, ix2 *int) {
	if c.window == nil {
		return
	}
	w := &c.wall
	switch c.window.Kind {
	case FloorWindow:
		// the wall top must reach above the window bottom
		for *ix1 <= *ix2 && w.topAt(*ix1) >= float32(c.floorClip[*ix1]) {
			*ix1++
		}
		for *ix2 >= *ix1 && w.topAt(*ix2) >= float32(c.floorClip[*ix2]) {
			*ix2--
		}
	case CeilingWindow:
		for *ix1 <= *ix2 && w.bottomAt(*ix1) <= float32(c.ceilingClip[*ix1]) {
			*ix1++
		}
		for *ix2 >= *ix1 && w.bottomAt(*ix2) <= float32(c.ceilingClip[*ix2]) {
			*ix2--
		}
	}
}

func (w *wallSeg) topAt(x int) float32 {
	return w.top + float32(x-w.x1)*w.topStep
}

func (w *wallSeg) bottomAt(x int) float32 {
	return w.bottom + float32(x-w.x1)*w.bottomStep
}

// storeWallRange walks the columns [start, stop] of the current seg, clips
// them against the vertical clip arrays, marks planes and windows and emits
// the wall posts.
func (c *context) storeWallRange(start, stop int) error {
	w := &c.wall
	v := &c.view
	n := stop - start + 1
	r := WallRange{
		Seg:    w.seg,
		Sector: w.seg.Front,
		X1:     start,
		X2:     stop,
		Light:  w.front.LightLevel,
		Top:    w.side.Top,
		Bottom: w.side.Bottom,
		Mid:    w.side.Mid,

		TexTop:    w.texTop,
		TexMid:    w.texMid,
		TexBottom: w.texBottom,
	}
	off := float32(start - w.x1)
	r.Dist, r.DistStep = w.iz+off*w.izStep, w.izStep
	r.U, r.UStep = w.uz+off*w.uzStep, w.uzStep
	if w.solidMid || w.maskedMid {
		r.Middle = make([]Post, n)
	}
	if w.hasTop {
		r.Upper = make([]Post, n)
	}
	if w.hasBottom {
		r.Lower = make([]Post, n)
	}

	var (
		ceilingPlane, floorPlane *PlaneMark
		ceilingWin, floorWin     *Window
		lineWin                  *Window
		err                      error
	)
	if w.markCeiling {
		if c.ceilingPortal != nil {
			if ceilingWin, err = c.findWindow(CeilingWindow, c.ceilingPortal, nil, w.front.CeilingHeight); err != nil {
				return err
			}
			if ceilingWin, err = c.checkWindow(ceilingWin, start, stop); err != nil {
				return err
			}
		} else {
			c.ceilingPlane = c.checkPlane(c.ceilingPlane, start, stop)
			ceilingPlane = c.ceilingPlane
		}
	}
	if w.markFloor {
		if c.floorPortal != nil {
			if floorWin, err = c.findWindow(FloorWindow, c.floorPortal, nil, w.front.FloorHeight); err != nil {
				return err
			}
			if floorWin, err = c.checkWindow(floorWin, start, stop); err != nil {
				return err
			}
		} else {
			c.floorPlane = c.checkPlane(c.floorPlane, start, stop)
			floorPlane = c.floorPlane
		}
	}
	if w.portal != nil {
		if lineWin, err = c.findWindow(LineWindow, w.portal, w.seg.Line, 0); err != nil {
			return err
		}
		if lineWin, err = c.checkWindow(lineWin, start, stop); err != nil {
			return err
		}
	}

	cc, fc := c.ceilingClip, c.floorClip
	for x := start; x <= stop; x++ {
		i := x - start
		fx := float32(x - w.x1)
		yl := int(math32.Ceil(w.top + fx*w.topStep))
		if yl < cc[x]+1 {
			yl = cc[x] + 1
		}
		if w.markCeiling {
			top, bottom := cc[x]+1, yl-1
			if bottom >= fc[x] {
				bottom = fc[x] - 1
			}
			if ceilingWin != nil {
				ceilingWin.mark(x, top, bottom)
			} else {
				ceilingPlane.mark(x, top, bottom)
			}
		}
		yh := int(math32.Floor(w.bottom + fx*w.bottomStep))
		if yh >= fc[x] {
			yh = fc[x] - 1
		}
		if w.markFloor {
			top, bottom := yh+1, fc[x]-1
			if top <= cc[x] {
				top = cc[x] + 1
			}
			if floorWin != nil {
				floorWin.mark(x, top, bottom)
			} else {
				floorPlane.mark(x, top, bottom)
			}
		}
		if w.back == nil {
			if w.solidMid {
				r.Middle[i] = post(yl, yh)
			} else if lineWin != nil {
				lineWin.mark(x, yl, yh)
			}
			cc[x] = v.Height
			fc[x] = -1
			continue
		}
		if w.hasTop {
			mid := int(math32.Floor(w.high + fx*w.highStep))
			if mid >= fc[x] {
				mid = fc[x] - 1
			}
			if mid >= yl {
				r.Upper[i] = post(yl, mid)
				cc[x] = mid
			} else {
				r.Upper[i] = NoPost
				cc[x] = yl - 1
			}
		} else if w.markCeiling {
			cc[x] = yl - 1
		}
		if w.hasBottom {
			mid := int(math32.Ceil(w.low + fx*w.lowStep))
			if mid <= cc[x] {
				mid = cc[x] + 1
			}
			if mid <= yh {
				r.Lower[i] = post(mid, yh)
				fc[x] = mid
			} else {
				r.Lower[i] = NoPost
				fc[x] = yh + 1
			}
		} else if w.markFloor {
			fc[x] = yh + 1
		}
		if w.maskedMid {
			r.Middle[i] = post(max(yl, cc[x]+1), min(yh, fc[x]-1))
		}
		if lineWin != nil {
			lineWin.mark(x, max(yl, cc[x]+1), min(yh, fc[x]-1))
			cc[x] = v.Height
			fc[x] = -1
		}
	}
	c.scene.Walls = append(c.scene.Walls, r)
	c.fs.stats.WallRanges++
	return nil
}

func post(top, bottom int) Post {
	if top > bottom {
		return NoPost
	}
	return Post{Top: int16(top), Bottom: int16(bottom)}
}
