// SPDX-License-Identifier: GPL-2.0-or-later
package render

import (
	"github.com/chewxy/math32"

	"godoom/bsp"
	"godoom/math"
)

// checkCoord picks the two box corners spanning the silhouette of a box for
// each of the nine viewer positions around it.
var checkCoord = [12][4]int{
	{bsp.BoxRight, bsp.BoxTop, bsp.BoxLeft, bsp.BoxBottom},
	{bsp.BoxRight, bsp.BoxTop, bsp.BoxLeft, bsp.BoxTop},
	{bsp.BoxRight, bsp.BoxBottom, bsp.BoxLeft, bsp.BoxTop},
	{},
	{bsp.BoxLeft, bsp.BoxTop, bsp.BoxLeft, bsp.BoxBottom},
	{},
	{bsp.BoxRight, bsp.BoxBottom, bsp.BoxRight, bsp.BoxTop},
	{},
	{bsp.BoxLeft, bsp.BoxTop, bsp.BoxRight, bsp.BoxBottom},
	{bsp.BoxLeft, bsp.BoxBottom, bsp.BoxRight, bsp.BoxBottom},
	{bsp.BoxLeft, bsp.BoxBottom, bsp.BoxRight, bsp.BoxTop},
	{},
}

// checkBBox reports whether any part of the box may be visible, that is
// whether it projects to columns not already solid.
func (c *context) checkBBox(box *[4]float32) bool {
	v := &c.view
	var boxx, boxy int
	switch {
	case v.X <= box[bsp.BoxLeft]:
		boxx = 0
	case v.X < box[bsp.BoxRight]:
		boxx = 1
	default:
		boxx = 2
	}
	switch {
	case v.Y >= box[bsp.BoxTop]:
		boxy = 0
	case v.Y > box[bsp.BoxBottom]:
		boxy = 1
	default:
		boxy = 2
	}
	pos := boxy<<2 + boxx
	if pos == 5 {
		// inside the box
		return true
	}
	cc := checkCoord[pos]
	x1, y1 := box[cc[0]], box[cc[1]]
	x2, y2 := box[cc[2]], box[cc[3]]

	angle1 := math.WrapRad(math32.Atan2(y1-v.Y, x1-v.X) - v.Angle)
	angle2 := math.WrapRad(math32.Atan2(y2-v.Y, x2-v.X) - v.Angle)
	span := math.WrapRad(angle1 - angle2)
	if span >= math.Pi {
		// sitting on a line
		return true
	}
	clip := v.ClipAngle
	tspan := math.WrapRad(angle1 + clip)
	if tspan > 2*clip {
		tspan -= 2 * clip
		if tspan >= span {
			// totally off the left edge
			return false
		}
		angle1 = clip
	}
	tspan = math.WrapRad(clip - angle2)
	if tspan > 2*clip {
		tspan -= 2 * clip
		if tspan >= span {
			return false
		}
		angle2 = -clip
	}
	sx1 := v.AngleToX(math.SignedRad(angle1))
	sx2 := v.AngleToX(math.SignedRad(angle2))
	x1c := int(math32.Ceil(sx1))
	x2c := int(math32.Ceil(sx2)) - 1
	if x1c > x2c {
		// does not cross a pixel
		return false
	}
	return !c.tracker.Occluded(x1c, x2c)
}
