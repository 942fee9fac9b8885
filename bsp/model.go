// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import (
	"godoom/portal"
)

// LeafFlag marks a node child as a subsector index.
const LeafFlag = uint32(1) << 31

// Line flags
const (
	LineBlocking      = 0x0001
	LineBlockMonsters = 0x0002
	LineTwoSided      = 0x0004
	LineUpperUnpegged = 0x0008
	LineLowerUnpegged = 0x0010
	LineSecret        = 0x0020
	LineBlockSound    = 0x0040
	LineDontDraw      = 0x0080
	LineMapped        = 0x0100
)

// bounding box indices, top/bottom are y, left/right are x
const (
	BoxTop = iota
	BoxBottom
	BoxLeft
	BoxRight
)

const SkyFlatName = "F_SKY1"

type Vertex struct {
	X, Y float32
}

type Line struct {
	Index   int
	V1, V2  *Vertex
	Dx, Dy  float32
	Flags   uint16
	Special int
	Tag     int
	Front   *Side
	Back    *Side // nil for one sided lines
	Portal  portal.Portal
}

type Side struct {
	XOffset float32
	YOffset float32
	Top     string
	Bottom  string
	Mid     string
	Sector  *Sector
}

type Sector struct {
	Index         int
	FloorHeight   float32
	CeilingHeight float32
	FloorPic      string
	CeilingPic    string
	LightLevel    int
	Special       int
	Tag           int

	FloorSlope    *Slope
	CeilingSlope  *Slope
	FloorPortal   portal.Portal
	CeilingPortal portal.Portal

	// Group is the coordinate group of linked portals.
	Group int
	// HeightSec is the index of the sector providing fake flats, -1 if none.
	HeightSec int

	Lines []*Line
}

type Seg struct {
	V1, V2 *Vertex
	// Offset is the distance along the line from its start to V1.
	Offset float32
	Length float32
	Line   *Line
	// Side is 0 if the seg runs along the front side of Line.
	Side  int
	Front *Sector
	Back  *Sector // nil for one sided lines
}

type Subsector struct {
	Index  int
	Sector *Sector
	Segs   []*Seg
}

type Node struct {
	X, Y   float32
	Dx, Dy float32
	// BBox per child, indexed by BoxTop etc.
	BBox     [2][4]float32
	Children [2]uint32
}

type Thing struct {
	X, Y  float32
	Angle float32 // radians
	Type  int
	Flags int
}

type Level struct {
	Name       string
	Vertices   []*Vertex
	Lines      []*Line
	Sides      []*Side
	Sectors    []*Sector
	Segs       []*Seg
	Subsectors []*Subsector
	Nodes      []*Node
	Things     []Thing
	Portals    []portal.Portal
	// Groups is the number of coordinate groups.
	Groups int
}
