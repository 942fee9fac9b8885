// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

// PointOnSide returns 0 if (x, y) is in front of the partition line and 1
// if it is behind. Points on the line are in front.
func (n *Node) PointOnSide(x, y float32) int {
	return pointOnSide(n.X, n.Y, n.Dx, n.Dy, x, y)
}

// PointOnSide returns 0 if (x, y) is on the front (right) side of l.
func (l *Line) PointOnSide(x, y float32) int {
	return pointOnSide(l.V1.X, l.V1.Y, l.Dx, l.Dy, x, y)
}

func pointOnSide(ox, oy, dx, dy, x, y float32) int {
	// float64 keeps the sign stable for long lines
	c := float64(dy)*float64(x-ox) - float64(dx)*float64(y-oy)
	if c >= 0 {
		return 0
	}
	return 1
}

func (l *Line) TwoSided() bool {
	return l.Back != nil
}

// RootChild returns the child id the traversal starts with.
func (l *Level) RootChild() uint32 {
	if len(l.Nodes) == 0 {
		return LeafFlag
	}
	return uint32(len(l.Nodes) - 1)
}

func (l *Level) PointInSubsector(x, y float32) *Subsector {
	if len(l.Subsectors) == 0 {
		return nil
	}
	c := l.RootChild()
	for c&LeafFlag == 0 {
		n := l.Nodes[c]
		c = n.Children[n.PointOnSide(x, y)]
	}
	return l.Subsectors[c&^LeafFlag]
}

func (l *Level) SectorAt(x, y float32) *Sector {
	ss := l.PointInSubsector(x, y)
	if ss == nil {
		return nil
	}
	return ss.Sector
}

func (l *Level) SectorsByTag(tag int) []*Sector {
	var r []*Sector
	for _, s := range l.Sectors {
		if s.Tag == tag {
			r = append(r, s)
		}
	}
	return r
}

// BuildGroups assigns coordinate groups. Sectors reachable from each other
// through two sided lines share a group unless the line is a linked portal.
func (l *Level) BuildGroups() {
	for _, s := range l.Sectors {
		s.Group = -1
	}
	id := 0
	var stack []*Sector
	for _, s := range l.Sectors {
		if s.Group >= 0 {
			continue
		}
		s.Group = id
		stack = append(stack[:0], s)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, ln := range cur.Lines {
				if ln.Back == nil || ln.Special == SpecialLinkedLine {
					continue
				}
				other := ln.Front.Sector
				if other == cur {
					other = ln.Back.Sector
				}
				if other.Group < 0 {
					other.Group = id
					stack = append(stack, other)
				}
			}
		}
		id++
	}
	l.Groups = id
}

// addBox grows box to include (x, y).
func addBox(box *[4]float32, x, y float32) {
	if x < box[BoxLeft] {
		box[BoxLeft] = x
	}
	if x > box[BoxRight] {
		box[BoxRight] = x
	}
	if y < box[BoxBottom] {
		box[BoxBottom] = y
	}
	if y > box[BoxTop] {
		box[BoxTop] = y
	}
}

func emptyBox() [4]float32 {
	const big = 1 << 30
	return [4]float32{BoxTop: -big, BoxBottom: big, BoxLeft: big, BoxRight: -big}
}
