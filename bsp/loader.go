// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import (
	"bytes"
	"encoding/binary"
	"strings"

	"godoom/conlog"
	"godoom/math"
	"godoom/math/vec"
	"godoom/wad"

	"github.com/pkg/errors"
)

// Load reads the level mapName from w. Groups and specials are not set up,
// see Setup.
func Load(w *wad.Wad, mapName string) (*Level, error) {
	idx, err := w.Level(mapName)
	if err != nil {
		return nil, err
	}
	read := func(lump string, decode func([]byte) error) error {
		i, ok := idx[lump]
		if !ok {
			return errors.Errorf("%s: missing lump %s", mapName, lump)
		}
		b, err := w.ReadLump(i)
		if err != nil {
			return err
		}
		if err := decode(b); err != nil {
			return errors.Wrapf(err, "%s: lump %s", mapName, lump)
		}
		return nil
	}

	var (
		vertexes []mapVertex
		sectors  []mapSector
		sidedefs []mapSidedef
		linedefs []mapLinedef
		things   []mapThing
		segs     []mapSeg
		ssectors []mapSubsector
		nodes    []mapNode
	)
	for _, l := range []struct {
		name   string
		decode func([]byte) error
	}{
		{"VERTEXES", func(b []byte) error { return readLump(b, &vertexes) }},
		{"SECTORS", func(b []byte) error { return readLump(b, &sectors) }},
		{"SIDEDEFS", func(b []byte) error { return readLump(b, &sidedefs) }},
		{"LINEDEFS", func(b []byte) error { return readLump(b, &linedefs) }},
		{"THINGS", func(b []byte) error { return readLump(b, &things) }},
	} {
		if err := read(l.name, l.decode); err != nil {
			return nil, err
		}
	}
	// nodes are optional, missing ones get built
	_, hasNodes := idx["NODES"]
	if hasNodes {
		for _, l := range []struct {
			name   string
			decode func([]byte) error
		}{
			{"SEGS", func(b []byte) error { return readLump(b, &segs) }},
			{"SSECTORS", func(b []byte) error { return readLump(b, &ssectors) }},
			{"NODES", func(b []byte) error { return readLump(b, &nodes) }},
		} {
			if err := read(l.name, l.decode); err != nil {
				return nil, err
			}
		}
	}

	lvl := &Level{Name: strings.ToUpper(mapName)}
	lvl.loadVertexes(vertexes)
	lvl.loadSectors(sectors)
	if err := lvl.loadSidedefs(sidedefs); err != nil {
		return nil, err
	}
	if err := lvl.loadLinedefs(linedefs); err != nil {
		return nil, err
	}
	lvl.loadThings(things)
	if len(nodes) == 0 || len(ssectors) == 0 {
		conlog.DPrintf("%s: no nodes, building them\n", lvl.Name)
		if err := lvl.BuildNodes(); err != nil {
			return nil, err
		}
		return lvl, nil
	}
	if err := lvl.loadSegs(segs); err != nil {
		return nil, err
	}
	if err := lvl.loadSubsectors(ssectors); err != nil {
		return nil, err
	}
	if err := lvl.loadNodes(nodes); err != nil {
		return nil, err
	}
	return lvl, nil
}

func readLump[T any](b []byte, data *[]T) error {
	size := binary.Size(new(T))
	if len(b)%size != 0 {
		return errors.Errorf("size %d is not a multiple of %d", len(b), size)
	}
	*data = make([]T, len(b)/size)
	return binary.Read(bytes.NewReader(b), binary.LittleEndian, *data)
}

func lumpString(b [8]byte) string {
	n := bytes.IndexByte(b[:], 0)
	if n < 0 {
		n = len(b)
	}
	s := strings.ToUpper(string(b[:n]))
	if s == "-" {
		return ""
	}
	return s
}

func (l *Level) loadVertexes(in []mapVertex) {
	l.Vertices = make([]*Vertex, len(in))
	for i, v := range in {
		l.Vertices[i] = &Vertex{X: float32(v.X), Y: float32(v.Y)}
	}
}

func (l *Level) loadSectors(in []mapSector) {
	l.Sectors = make([]*Sector, len(in))
	for i, s := range in {
		l.Sectors[i] = &Sector{
			Index:         i,
			FloorHeight:   float32(s.FloorHeight),
			CeilingHeight: float32(s.CeilingHeight),
			FloorPic:      lumpString(s.FloorPic),
			CeilingPic:    lumpString(s.CeilingPic),
			LightLevel:    int(s.LightLevel),
			Special:       int(s.Special),
			Tag:           int(s.Tag),
			HeightSec:     -1,
		}
	}
}

func (l *Level) loadSidedefs(in []mapSidedef) error {
	l.Sides = make([]*Side, len(in))
	for i, s := range in {
		if int(s.Sector) >= len(l.Sectors) {
			return errors.Errorf("%s: sidedef %d references sector %d of %d", l.Name, i, s.Sector, len(l.Sectors))
		}
		l.Sides[i] = &Side{
			XOffset: float32(s.XOffset),
			YOffset: float32(s.YOffset),
			Top:     lumpString(s.Top),
			Bottom:  lumpString(s.Bottom),
			Mid:     lumpString(s.Mid),
			Sector:  l.Sectors[s.Sector],
		}
	}
	return nil
}

func (l *Level) loadLinedefs(in []mapLinedef) error {
	l.Lines = make([]*Line, len(in))
	for i, d := range in {
		if int(d.V1) >= len(l.Vertices) || int(d.V2) >= len(l.Vertices) {
			return errors.Errorf("%s: linedef %d references vertex %d/%d of %d", l.Name, i, d.V1, d.V2, len(l.Vertices))
		}
		if int(d.Front) >= len(l.Sides) {
			return errors.Errorf("%s: linedef %d has bad front sidedef %d", l.Name, i, d.Front)
		}
		ln := &Line{
			Index:   i,
			V1:      l.Vertices[d.V1],
			V2:      l.Vertices[d.V2],
			Flags:   d.Flags,
			Special: int(d.Special),
			Tag:     int(d.Tag),
			Front:   l.Sides[d.Front],
		}
		ln.Dx = ln.V2.X - ln.V1.X
		ln.Dy = ln.V2.Y - ln.V1.Y
		if d.Back != noSide {
			if int(d.Back) >= len(l.Sides) {
				return errors.Errorf("%s: linedef %d has bad back sidedef %d", l.Name, i, d.Back)
			}
			ln.Back = l.Sides[d.Back]
		}
		l.Lines[i] = ln
		l.attachLine(ln)
	}
	return nil
}

func (l *Level) attachLine(ln *Line) {
	fs := ln.Front.Sector
	fs.Lines = append(fs.Lines, ln)
	if ln.Back != nil && ln.Back.Sector != fs {
		ln.Back.Sector.Lines = append(ln.Back.Sector.Lines, ln)
	}
}

func (l *Level) loadThings(in []mapThing) {
	l.Things = make([]Thing, len(in))
	for i, t := range in {
		l.Things[i] = Thing{
			X:     float32(t.X),
			Y:     float32(t.Y),
			Angle: math.Deg2Rad(float32(t.Angle)),
			Type:  int(t.Type),
			Flags: int(t.Flags),
		}
	}
}

func (l *Level) loadSegs(in []mapSeg) error {
	l.Segs = make([]*Seg, len(in))
	for i, s := range in {
		if int(s.V1) >= len(l.Vertices) || int(s.V2) >= len(l.Vertices) {
			return errors.Errorf("%s: seg %d references vertex %d/%d of %d", l.Name, i, s.V1, s.V2, len(l.Vertices))
		}
		if int(s.Line) >= len(l.Lines) {
			return errors.Errorf("%s: seg %d references linedef %d of %d", l.Name, i, s.Line, len(l.Lines))
		}
		ln := l.Lines[s.Line]
		sg := &Seg{
			V1:     l.Vertices[s.V1],
			V2:     l.Vertices[s.V2],
			Offset: float32(s.Offset),
			Line:   ln,
			Side:   int(s.Side & 1),
		}
		sg.setSectors()
		if sg.Front == nil {
			return errors.Errorf("%s: seg %d is on the missing back side of linedef %d", l.Name, i, s.Line)
		}
		l.Segs[i] = sg
	}
	return nil
}

// setSectors fills Front, Back and Length from Line and Side.
func (s *Seg) setSectors() {
	s.Length = vec.Sub2(vec.Vec2{X: s.V2.X, Y: s.V2.Y}, vec.Vec2{X: s.V1.X, Y: s.V1.Y}).Length()
	front, back := s.Line.Front, s.Line.Back
	if s.Side == 1 {
		front, back = back, front
	}
	s.Front, s.Back = nil, nil
	if front != nil {
		s.Front = front.Sector
	}
	if back != nil {
		s.Back = back.Sector
	}
}

// Sidedef returns the side of the line the seg runs along.
func (s *Seg) Sidedef() *Side {
	if s.Side == 1 {
		return s.Line.Back
	}
	return s.Line.Front
}

func (l *Level) loadSubsectors(in []mapSubsector) error {
	l.Subsectors = make([]*Subsector, len(in))
	for i, s := range in {
		first, n := int(s.FirstSeg), int(s.NumSegs)
		if n == 0 || first+n > len(l.Segs) {
			return errors.Errorf("%s: subsector %d has bad segs %d+%d of %d", l.Name, i, first, n, len(l.Segs))
		}
		segs := l.Segs[first : first+n]
		l.Subsectors[i] = &Subsector{
			Index:  i,
			Sector: segs[0].Front,
			Segs:   segs,
		}
	}
	return nil
}

func (l *Level) loadNodes(in []mapNode) error {
	l.Nodes = make([]*Node, len(in))
	for i, n := range in {
		node := &Node{
			X:  float32(n.X),
			Y:  float32(n.Y),
			Dx: float32(n.Dx),
			Dy: float32(n.Dy),
		}
		for c := 0; c < 2; c++ {
			for k := 0; k < 4; k++ {
				node.BBox[c][k] = float32(n.BBox[c][k])
			}
			child := n.Children[c]
			if child&nodeLeaf != 0 {
				ss := uint32(child &^ nodeLeaf)
				if int(ss) >= len(l.Subsectors) {
					return errors.Errorf("%s: node %d references subsector %d of %d", l.Name, i, ss, len(l.Subsectors))
				}
				node.Children[c] = ss | LeafFlag
			} else {
				if int(child) >= len(in) {
					return errors.Errorf("%s: node %d references node %d of %d", l.Name, i, child, len(in))
				}
				node.Children[c] = uint32(child)
			}
		}
		l.Nodes[i] = node
	}
	return nil
}
