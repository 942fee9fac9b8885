package bsp

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"godoom/wad"
)

type lump struct {
	name string
	data any
}

func encode(t *testing.T, v any) []byte {
	t.Helper()
	var b bytes.Buffer
	if v == nil {
		return nil
	}
	if err := binary.Write(&b, binary.LittleEndian, v); err != nil {
		t.Fatal(err)
	}
	return b.Bytes()
}

func name8(s string) [8]byte {
	var b [8]byte
	copy(b[:], s)
	return b
}

func makeWad(t *testing.T, lumps []lump) *wad.Wad {
	t.Helper()
	type entry struct {
		Pos, Size int32
		Name      [8]byte
	}
	var body bytes.Buffer
	var dir []entry
	for _, l := range lumps {
		d := encode(t, l.data)
		dir = append(dir, entry{int32(12 + body.Len()), int32(len(d)), name8(l.name)})
		body.Write(d)
	}
	var out bytes.Buffer
	out.WriteString("PWAD")
	out.Write(encode(t, []int32{int32(len(dir)), int32(12 + body.Len())}))
	out.Write(body.Bytes())
	out.Write(encode(t, dir))
	w, err := wad.NewReader(bytes.NewReader(out.Bytes()), "test.wad")
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func roomLumps(sectorRef uint16) []lump {
	return []lump{
		{"E1M1", nil},
		{"THINGS", []mapThing{{X: 128, Y: 128, Angle: 90, Type: 1}}},
		{"LINEDEFS", []mapLinedef{
			{V1: 0, V2: 1, Flags: LineBlocking, Front: 0, Back: noSide},
			{V1: 1, V2: 2, Flags: LineBlocking, Front: 1, Back: noSide},
			{V1: 2, V2: 3, Flags: LineBlocking, Front: 2, Back: noSide},
			{V1: 3, V2: 0, Flags: LineBlocking, Front: 3, Back: noSide, Special: 11},
		}},
		{"SIDEDEFS", []mapSidedef{
			{Mid: name8("STARTAN3"), Top: name8("-"), Sector: sectorRef},
			{Mid: name8("STARTAN3"), Sector: 0},
			{Mid: name8("STARTAN3"), Sector: 0},
			{Mid: name8("SW1STRTN"), Sector: 0},
		}},
		{"VERTEXES", []mapVertex{{0, 0}, {0, 256}, {256, 256}, {256, 0}}},
		{"SECTORS", []mapSector{{
			FloorHeight: 0, CeilingHeight: 128,
			FloorPic: name8("FLOOR4_8"), CeilingPic: name8("F_SKY1"),
			LightLevel: 192, Tag: 3,
		}}},
	}
}

func TestLoadWithoutNodes(t *testing.T) {
	w := makeWad(t, roomLumps(0))
	lvl, err := Load(w, "e1m1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lvl.Lines) != 4 || len(lvl.Sectors) != 1 || len(lvl.Things) != 1 {
		t.Fatalf("got %d lines %d sectors %d things", len(lvl.Lines), len(lvl.Sectors), len(lvl.Things))
	}
	s := lvl.Sectors[0]
	if !s.CeilingSky() || s.FloorSky() || s.LightLevel != 192 || s.Tag != 3 {
		t.Errorf("sector = %+v", s)
	}
	if got := lvl.Sides[0].Top; got != "" {
		t.Errorf("top texture %q, want none", got)
	}
	if got := lvl.Sides[3].Mid; got != "SW1STRTN" {
		t.Errorf("mid texture %q", got)
	}
	if len(s.Lines) != 4 {
		t.Errorf("sector has %d lines", len(s.Lines))
	}
	if len(lvl.Subsectors) != 1 || lvl.PointInSubsector(100, 100).Sector != s {
		t.Errorf("node build failed: %d subsectors", len(lvl.Subsectors))
	}
	if a := lvl.Things[0].Angle; a < 1.57 || a > 1.571 {
		t.Errorf("thing angle %v, want pi/2", a)
	}
}

func TestLoadWithNodes(t *testing.T) {
	lumps := append(roomLumps(0),
		lump{"SEGS", []mapSeg{
			{V1: 0, V2: 1, Line: 0},
			{V1: 1, V2: 2, Line: 1},
			{V1: 2, V2: 3, Line: 2},
			{V1: 3, V2: 0, Line: 3},
		}},
		lump{"SSECTORS", []mapSubsector{{NumSegs: 2, FirstSeg: 0}, {NumSegs: 2, FirstSeg: 2}}},
		lump{"NODES", []mapNode{{
			X: 0, Y: 0, Dx: 256, Dy: 256,
			BBox:     [2][4]int16{{0, 256, 0, 256}, {256, 0, 0, 256}},
			Children: [2]uint16{nodeLeaf | 1, nodeLeaf | 0},
		}}},
	)
	lvl, err := Load(makeWad(t, lumps), "E1M1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lvl.Nodes) != 1 || lvl.RootChild() != 0 {
		t.Fatalf("got %d nodes", len(lvl.Nodes))
	}
	if c := lvl.Nodes[0].Children[0]; c != LeafFlag|1 {
		t.Errorf("child 0 = %x", c)
	}
	if ss := lvl.PointInSubsector(200, 10); ss.Index != 1 {
		t.Errorf("PointInSubsector(200,10) = %d, want 1", ss.Index)
	}
	if sg := lvl.Segs[1]; sg.Length != 256 || sg.Front != lvl.Sectors[0] || sg.Back != nil {
		t.Errorf("seg 1 = %+v", sg)
	}
}

func TestLoadBadReference(t *testing.T) {
	_, err := Load(makeWad(t, roomLumps(7)), "E1M1")
	if err == nil {
		t.Fatal("Load succeeded with a bad sector reference")
	}
	if !strings.Contains(err.Error(), "sidedef 0") {
		t.Errorf("error %q does not name the sidedef", err)
	}
}

func TestLoadMissingMap(t *testing.T) {
	if _, err := Load(makeWad(t, roomLumps(0)), "MAP01"); err == nil {
		t.Error("Load(MAP01) succeeded")
	}
}

func TestLoadTruncatedLump(t *testing.T) {
	lumps := roomLumps(0)
	for i := range lumps {
		if lumps[i].name == "VERTEXES" {
			// one vertex and a stray byte
			lumps[i].data = []byte{0, 0, 0, 1, 9}
		}
	}
	_, err := Load(makeWad(t, lumps), "E1M1")
	if err == nil {
		t.Fatal("Load succeeded with a truncated VERTEXES lump")
	}
	if !strings.Contains(err.Error(), "lump VERTEXES") {
		t.Errorf("error %q does not name the lump", err)
	}
}
