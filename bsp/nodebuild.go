// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import (
	"math"

	"github.com/pkg/errors"
)

// distances below onLine count as on the partition line
const onLine = 1.0 / 64

// largest number of partition candidates tried per node
const maxCandidates = 256

type bseg struct {
	x1, y1, x2, y2 float64
	v1, v2         *Vertex
	line           *Line
	side           int
	offset         float64
}

func (s *bseg) length() float64 {
	return math.Hypot(s.x2-s.x1, s.y2-s.y1)
}

type nodeBuilder struct {
	lvl *Level
}

// BuildNodes replaces segs, subsectors and nodes by a freshly built tree.
// Partitions are always taken from seg lines.
func (l *Level) BuildNodes() error {
	var segs []*bseg
	for _, ln := range l.Lines {
		if ln.Dx == 0 && ln.Dy == 0 {
			continue
		}
		segs = append(segs, &bseg{
			x1: float64(ln.V1.X), y1: float64(ln.V1.Y),
			x2: float64(ln.V2.X), y2: float64(ln.V2.Y),
			v1: ln.V1, v2: ln.V2,
			line: ln,
		})
		if ln.Back != nil {
			segs = append(segs, &bseg{
				x1: float64(ln.V2.X), y1: float64(ln.V2.Y),
				x2: float64(ln.V1.X), y2: float64(ln.V1.Y),
				v1: ln.V2, v2: ln.V1,
				line: ln,
				side: 1,
			})
		}
	}
	if len(segs) == 0 {
		return errors.Errorf("%s: no lines to build nodes from", l.Name)
	}
	l.Segs = nil
	l.Subsectors = nil
	l.Nodes = nil
	nb := &nodeBuilder{lvl: l}
	root := nb.build(segs)
	if root&LeafFlag == 0 && int(root) != len(l.Nodes)-1 {
		return errors.Errorf("%s: node builder produced root %d of %d", l.Name, root, len(l.Nodes))
	}
	return nil
}

// side returns the signed distance of (x, y) from the partition, positive
// in front.
func side(p *bseg, x, y float64) float64 {
	dx, dy := p.x2-p.x1, p.y2-p.y1
	return (dy*(x-p.x1) - dx*(y-p.y1)) / math.Hypot(dx, dy)
}

// classify returns -1 for back, 1 for front and 0 if s has to be split.
func classify(p, s *bseg) (int, float64, float64) {
	d1 := side(p, s.x1, s.y1)
	d2 := side(p, s.x2, s.y2)
	a1, a2 := math.Abs(d1) < onLine, math.Abs(d2) < onLine
	switch {
	case a1 && a2:
		if (p.x2-p.x1)*(s.x2-s.x1)+(p.y2-p.y1)*(s.y2-s.y1) > 0 {
			return 1, d1, d2
		}
		return -1, d1, d2
	case (d1 > 0 || a1) && (d2 > 0 || a2):
		return 1, d1, d2
	case (d1 < 0 || a1) && (d2 < 0 || a2):
		return -1, d1, d2
	}
	return 0, d1, d2
}

func (nb *nodeBuilder) choosePartition(segs []*bseg) *bseg {
	step := 1
	if len(segs) > maxCandidates {
		step = len(segs) / maxCandidates
	}
	var best *bseg
	bestCost := math.MaxInt
	for i := 0; i < len(segs); i += step {
		p := segs[i]
		front, back, splits := 0, 0, 0
		for _, s := range segs {
			switch c, _, _ := classify(p, s); c {
			case 1:
				front++
			case -1:
				back++
			default:
				splits++
			}
		}
		if back == 0 && splits == 0 {
			continue
		}
		diff := front - back
		if diff < 0 {
			diff = -diff
		}
		cost := splits*4 + diff
		if cost < bestCost {
			best, bestCost = p, cost
		}
	}
	return best
}

func (nb *nodeBuilder) split(p, s *bseg, d1, d2 float64) (*bseg, *bseg) {
	t := d1 / (d1 - d2)
	ix := s.x1 + t*(s.x2-s.x1)
	iy := s.y1 + t*(s.y2-s.y1)
	v := &Vertex{X: float32(ix), Y: float32(iy)}
	nb.lvl.Vertices = append(nb.lvl.Vertices, v)
	a := *s
	a.x2, a.y2, a.v2 = ix, iy, v
	b := *s
	b.x1, b.y1, b.v1 = ix, iy, v
	b.offset = s.offset + a.length()
	return &a, &b
}

func (nb *nodeBuilder) build(segs []*bseg) uint32 {
	p := nb.choosePartition(segs)
	if p == nil {
		return nb.leaf(segs)
	}
	var front, back []*bseg
	for _, s := range segs {
		c, d1, d2 := classify(p, s)
		switch c {
		case 1:
			front = append(front, s)
		case -1:
			back = append(back, s)
		default:
			a, b := nb.split(p, s, d1, d2)
			if d1 > 0 {
				front, back = append(front, a), append(back, b)
			} else {
				front, back = append(front, b), append(back, a)
			}
		}
	}
	node := &Node{
		X:  float32(p.x1),
		Y:  float32(p.y1),
		Dx: float32(p.x2 - p.x1),
		Dy: float32(p.y2 - p.y1),
	}
	node.BBox[0] = segBox(front)
	node.BBox[1] = segBox(back)
	node.Children[0] = nb.build(front)
	node.Children[1] = nb.build(back)
	nb.lvl.Nodes = append(nb.lvl.Nodes, node)
	return uint32(len(nb.lvl.Nodes) - 1)
}

func (nb *nodeBuilder) leaf(segs []*bseg) uint32 {
	ss := &Subsector{Index: len(nb.lvl.Subsectors)}
	for _, b := range segs {
		s := &Seg{
			V1:     b.v1,
			V2:     b.v2,
			Offset: float32(b.offset),
			Line:   b.line,
			Side:   b.side,
		}
		s.setSectors()
		nb.lvl.Segs = append(nb.lvl.Segs, s)
		ss.Segs = append(ss.Segs, s)
	}
	ss.Sector = ss.Segs[0].Front
	nb.lvl.Subsectors = append(nb.lvl.Subsectors, ss)
	return uint32(ss.Index) | LeafFlag
}

func segBox(segs []*bseg) [4]float32 {
	box := emptyBox()
	for _, s := range segs {
		addBox(&box, float32(s.x1), float32(s.y1))
		addBox(&box, float32(s.x2), float32(s.y2))
	}
	return box
}
