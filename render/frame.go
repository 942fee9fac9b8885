package render

import (
	"godoom/bsp"
	"godoom/portal"
)

// Post is an inclusive run of rows in one column.
type Post struct {
	Top, Bottom int16
}

// NoPost marks a column without rows. Its Top is past every Bottom.
var NoPost = Post{Top: 1 << 14, Bottom: -1}

func (p Post) Empty() bool {
	return p.Top > p.Bottom
}

// WallRange is the visible part of one seg between columns X1 and X2.
// The per column slices are indexed by x-X1.
type WallRange struct {
	Seg    *bsp.Seg
	Sector *bsp.Sector
	X1, X2 int

	Upper  []Post
	Middle []Post
	Lower  []Post

	// Dist is 1/depth at X1, U is texture u/depth at X1. Both change
	// linearly per column.
	Dist     float32
	DistStep float32
	U        float32
	UStep    float32

	// world heights of texture row 0 for each part, row offset applied
	TexTop    float32
	TexMid    float32
	TexBottom float32

	Top, Bottom, Mid string
	Light            int
}

// Column returns 1/depth and the texture u of column x.
func (w *WallRange) Column(x int) (dist, u float32) {
	d := float32(x - w.X1)
	dist = w.Dist + d*w.DistStep
	u = (w.U + d*w.UStep) / dist
	return dist, u
}

// PlaneMark is the set of visible rows per column of one floor or ceiling
// plane. Top and Bottom are indexed by screen x and valid in [MinX, MaxX].
type PlaneMark struct {
	Height  float32
	Pic     string
	Light   int
	Sky     bool
	Slope   *bsp.Slope
	Horizon bool
	// Floor is set for planes below the viewer.
	Floor bool

	MinX, MaxX int
	Top        []int16
	Bottom     []int16
}

func (p *PlaneMark) Post(x int) Post {
	if x < p.MinX || x > p.MaxX {
		return NoPost
	}
	return Post{Top: p.Top[x], Bottom: p.Bottom[x]}
}

type Scene struct {
	Walls  []WallRange
	Planes []*PlaneMark
}

type WindowKind int

const (
	FloorWindow WindowKind = iota
	CeilingWindow
	LineWindow
)

func (k WindowKind) String() string {
	switch k {
	case FloorWindow:
		return "floor"
	case CeilingWindow:
		return "ceiling"
	case LineWindow:
		return "line"
	}
	return "unknown"
}

// WindowResult is one portal window of a frame and what was seen through
// it. Top and Bottom are indexed by screen x.
type WindowResult struct {
	Kind   WindowKind
	Portal portal.Portal
	Line   *bsp.Line
	MinX   int
	MaxX   int
	Top    []float32
	Bottom []float32
	Depth  int
	View   View

	// Opaque windows were cut off by taint and show nothing.
	Opaque bool
	// Overlay windows were not followed and should be filled flat.
	Overlay bool
	// Skipped windows failed the linked portal side check.
	Skipped bool
	Scene   Scene
}

type Stats struct {
	Nodes      int
	Subsectors int
	Segs       int
	WallRanges int
	Windows    int
	Tainted    int
}

// NodeLine is a projected partition line, in screen coordinates.
type NodeLine struct {
	X1, Y1, X2, Y2 float32
}

type Frame struct {
	Width, Height int
	View          View
	Scene         Scene
	// Windows lists the innermost, last discovered windows first.
	Windows   []WindowResult
	NodeLines []NodeLine
	// Tainted lists the portals cut off by a cycle or the depth limit.
	Tainted []portal.Portal
	Stats   Stats
}
