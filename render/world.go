// SPDX-License-Identifier: GPL-2.0-or-later
package render

import (
	"godoom/bsp"
	"godoom/portal"
)

// renderNode walks the tree front to back. The far side of a node is only
// entered if its bounding box can still be visible.
func (c *context) renderNode(child uint32) error {
	lvl := c.fs.level
	for child&bsp.LeafFlag == 0 {
		n := lvl.Nodes[child]
		c.fs.stats.Nodes++
		if c.fs.opts.DrawNodes && c.window == nil {
			c.nodeLine(n)
		}
		side := n.PointOnSide(c.view.X, c.view.Y)
		if err := c.renderNode(n.Children[side]); err != nil {
			return err
		}
		if c.tracker.Full() {
			return nil
		}
		if !c.checkBBox(&n.BBox[side^1]) {
			return nil
		}
		child = n.Children[side^1]
	}
	return c.subsector(int(child &^ bsp.LeafFlag))
}

func (c *context) subsector(i int) error {
	ss := c.fs.level.Subsectors[i]
	c.fs.stats.Subsectors++
	c.front = c.fs.opts.Override.Override(ss.Sector, &c.view)
	c.setupPlanes()
	for _, seg := range ss.Segs {
		if err := c.addLine(seg); err != nil {
			return err
		}
	}
	return nil
}

// visiblePortal returns p if a view should be rendered through it.
func (c *context) visiblePortal(p portal.Portal) portal.Portal {
	if c.fs.opts.NoPortals || !portal.Visible(p) {
		return nil
	}
	return p
}

func (c *context) setupPlanes() {
	s := c.front
	v := &c.view
	c.floorPlane, c.ceilingPlane = nil, nil
	c.floorPortal, c.ceilingPortal = nil, nil
	if s.FloorHeight >= s.CeilingHeight && c.window == nil {
		// closed sector, nothing of its planes can show
		return
	}
	if s.FloorZAt(v.X, v.Y) < v.Z {
		if p := c.visiblePortal(s.FloorPortal); p != nil {
			c.floorPortal = p
		} else {
			c.floorPlane = c.findPlane(s.FloorHeight, s.FloorPic, s.LightLevel, s.FloorSlope, true)
		}
	}
	if s.CeilingZAt(v.X, v.Y) > v.Z || s.CeilingSky() {
		if p := c.visiblePortal(s.CeilingPortal); p != nil {
			c.ceilingPortal = p
		} else {
			c.ceilingPlane = c.findPlane(s.CeilingHeight, s.CeilingPic, s.LightLevel, s.CeilingSlope, false)
		}
	}
}

// nodeLine records the partition line of n projected onto the floor under
// the viewer.
func (c *context) nodeLine(n *bsp.Node) {
	v := &c.view
	x1, y1 := n.X, n.Y
	x2, y2 := n.X+n.Dx, n.Y+n.Dy
	lat1, d1 := v.toCamera(x1, y1)
	lat2, d2 := v.toCamera(x2, y2)
	if d1 < NearClip && d2 < NearClip {
		return
	}
	if d1 < NearClip {
		t := (NearClip - d1) / (d2 - d1)
		lat1 += t * (lat2 - lat1)
		d1 = NearClip
	} else if d2 < NearClip {
		t := (NearClip - d2) / (d1 - d2)
		lat2 += t * (lat1 - lat2)
		d2 = NearClip
	}
	z := v.Z - bsp.ViewHeight
	c.fs.lines = append(c.fs.lines, NodeLine{
		X1: v.ScreenX(lat1, d1),
		Y1: v.ScreenY(z, d1),
		X2: v.ScreenX(lat2, d2),
		Y2: v.ScreenY(z, d2),
	})
}
