// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import "testing"

func TestPointOnSide(t *testing.T) {
	// partition running north along x = 0
	n := &Node{X: 0, Y: 0, Dx: 0, Dy: 64}
	tests := []struct {
		x, y float32
		want int
	}{
		{10, 5, 0},
		{-10, 5, 1},
		{0, 30, 0},
		{0, -100, 0},
		{1e-3, 1e6, 0},
		{-1e-3, 1e6, 1},
	}
	for _, tc := range tests {
		if got := n.PointOnSide(tc.x, tc.y); got != tc.want {
			t.Errorf("PointOnSide(%v,%v) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestLinePointOnSide(t *testing.T) {
	v1, v2 := &Vertex{0, 0}, &Vertex{64, 0}
	ln := &Line{V1: v1, V2: v2, Dx: 64}
	if got := ln.PointOnSide(32, -1); got != 0 {
		t.Errorf("south of an east line: %v, want front", got)
	}
	if got := ln.PointOnSide(32, 1); got != 1 {
		t.Errorf("north of an east line: %v, want back", got)
	}
}

func twoRooms(t *testing.T) (*Level, *Sector, *Sector) {
	t.Helper()
	b := NewBuilder("tworooms")
	a := b.Sector(0, 128, "FLOOR", "CEIL", 160)
	c := b.Sector(0, 128, "FLOOR", "CEIL", 160)
	// a spans x 0..256, c spans x 256..512, both y 0..256
	b.Line(0, 0, 0, 256, a, nil)
	b.Line(0, 256, 256, 256, a, nil)
	b.Line(256, 0, 0, 0, a, nil)
	b.Line(256, 256, 256, 0, a, c)
	b.Line(256, 256, 512, 256, c, nil)
	b.Line(512, 256, 512, 0, c, nil)
	b.Line(512, 0, 256, 0, c, nil)
	lvl, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return lvl, a, c
}

func TestPointInSubsector(t *testing.T) {
	lvl, a, c := twoRooms(t)
	tests := []struct {
		x, y float32
		want *Sector
	}{
		{10, 10, a},
		{200, 128, a},
		{300, 128, c},
		{500, 250, c},
	}
	for _, tc := range tests {
		if got := lvl.SectorAt(tc.x, tc.y); got != tc.want {
			t.Errorf("SectorAt(%v,%v) = %v, want %v", tc.x, tc.y, got.Index, tc.want.Index)
		}
	}
}

func TestBuildGroups(t *testing.T) {
	lvl, a, c := twoRooms(t)
	if lvl.Groups != 1 || a.Group != 0 || c.Group != 0 {
		t.Errorf("groups = %d (%d, %d), want one group", lvl.Groups, a.Group, c.Group)
	}
	for _, ln := range lvl.Lines {
		if ln.Back != nil {
			ln.Special = SpecialLinkedLine
		}
	}
	lvl.BuildGroups()
	if lvl.Groups != 2 || a.Group == c.Group {
		t.Errorf("groups = %d (%d, %d), want two groups", lvl.Groups, a.Group, c.Group)
	}
}

func TestSlopeZ(t *testing.T) {
	s := &Slope{OX: 0, OY: 0, OZ: 10, DX: 1, DY: 0, Rate: 0.5}
	sec := &Sector{FloorHeight: 10, FloorSlope: s, CeilingHeight: 100}
	if got := sec.FloorZAt(20, 99); got != 20 {
		t.Errorf("FloorZAt(20,99) = %v, want 20", got)
	}
	if got := sec.CeilingZAt(20, 99); got != 100 {
		t.Errorf("CeilingZAt(20,99) = %v, want 100", got)
	}
}
