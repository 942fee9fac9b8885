// SPDX-License-Identifier: GPL-2.0-or-later
package render

import (
	"math"
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"godoom/bsp"
	"godoom/portal"
)

func testOptions(width, height int) Options {
	o := DefaultOptions()
	o.Width, o.Height = width, height
	return o
}

func mustRender(t *testing.T, lvl *bsp.Level, o Options, cam portal.Camera) *Frame {
	t.Helper()
	f, err := New(lvl, o).Render(cam)
	if err != nil {
		t.Fatalf("Render(%+v) = %v", cam, err)
	}
	return f
}

func build(t *testing.T, b *bsp.Builder) *bsp.Level {
	t.Helper()
	lvl, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return lvl
}

// coverage returns how many wall ranges cover each column.
func coverage(width int, walls []WallRange) []int {
	n := make([]int, width)
	for _, w := range walls {
		for x := w.X1; x <= w.X2; x++ {
			n[x]++
		}
	}
	return n
}

// twoRooms builds rooms a (x 0..256) and c (x 256..512) joined by the two
// sided line at x = 256.
func twoRooms(t *testing.T, cHeight float32, cPic string) (*bsp.Level, *bsp.Line, *bsp.Sector, *bsp.Sector) {
	t.Helper()
	b := bsp.NewBuilder("tworooms")
	a := b.Sector(0, 128, "FLOOR", "CEIL", 160)
	c := b.Sector(0, cHeight, "FLOOR", cPic, 160)
	b.Line(0, 0, 0, 256, a, nil)
	b.Line(0, 256, 256, 256, a, nil)
	b.Line(256, 0, 0, 0, a, nil)
	l := b.Line(256, 256, 256, 0, a, c)
	b.Line(256, 256, 512, 256, c, nil)
	b.Line(512, 256, 512, 0, c, nil)
	b.Line(512, 0, 256, 0, c, nil)
	return build(t, b), l, a, c
}

var eastCam = portal.Camera{X: 64, Y: 128, Z: 41}

func TestFourWalls(t *testing.T) {
	b := bsp.NewBuilder("room")
	s := b.Sector(0, 128, "FLOOR", "CEIL", 160)
	b.Polygon(s, [2]float32{-128, -128}, [2]float32{-128, 128}, [2]float32{128, 128}, [2]float32{128, -128})
	lvl := build(t, b)
	o := testOptions(320, 200)

	seen := make(map[*bsp.Line]bool)
	for i := 0; i < 4; i++ {
		angle := math32.Pi/4 + float32(i)*math32.Pi/2
		f := mustRender(t, lvl, o, portal.Camera{Z: 41, Angle: angle})
		if len(f.Scene.Walls) != 2 {
			t.Fatalf("angle %v: %d wall ranges, want 2", angle, len(f.Scene.Walls))
		}
		for x, n := range coverage(o.Width, f.Scene.Walls) {
			if n != 1 {
				t.Fatalf("angle %v: column %d covered %d times", angle, x, n)
			}
		}
		for _, w := range f.Scene.Walls {
			seen[w.Seg.Line] = true
			for i, p := range w.Middle {
				if p.Empty() {
					t.Errorf("angle %v: column %d of line %d is empty", angle, w.X1+i, w.Seg.Line.Index)
				}
			}
		}
		if len(f.Scene.Planes) != 2 {
			t.Errorf("angle %v: %d planes, want floor and ceiling", angle, len(f.Scene.Planes))
		}
	}
	if len(seen) != 4 {
		t.Errorf("saw %d walls, want 4", len(seen))
	}
}

func TestIdenticalTwoSidedElided(t *testing.T) {
	lvl, l, _, c := twoRooms(t, 128, "CEIL")
	f := mustRender(t, lvl, testOptions(320, 200), eastCam)
	far := 0
	for _, w := range f.Scene.Walls {
		if w.Seg.Line == l {
			t.Errorf("line between identical sectors produced columns %d..%d", w.X1, w.X2)
		}
		if w.Sector == c {
			far++
		}
	}
	if far != 3 {
		t.Errorf("%d wall ranges of the far room, want 3", far)
	}
}

func TestUpperWall(t *testing.T) {
	lvl, l, _, _ := twoRooms(t, 96, "CEIL")
	f := mustRender(t, lvl, testOptions(320, 200), eastCam)
	for _, w := range f.Scene.Walls {
		if w.Seg.Line != l {
			continue
		}
		if w.Upper == nil || w.Lower != nil || w.Middle != nil {
			t.Fatalf("step down wall parts: upper %v lower %v middle %v", w.Upper != nil, w.Lower != nil, w.Middle != nil)
		}
		for i, p := range w.Upper {
			if p.Empty() {
				t.Errorf("column %d has no upper wall", w.X1+i)
			}
		}
		return
	}
	t.Fatalf("no wall range for the step")
}

func TestSkyToSky(t *testing.T) {
	b := bsp.NewBuilder("sky")
	a := b.Sector(0, 200, "FLOOR", bsp.SkyFlatName, 160)
	c := b.Sector(0, 128, "FLOOR", bsp.SkyFlatName, 160)
	b.Line(0, 0, 0, 256, a, nil)
	b.Line(0, 256, 256, 256, a, nil)
	b.Line(256, 0, 0, 0, a, nil)
	l := b.Line(256, 256, 256, 0, a, c)
	b.Line(256, 256, 512, 256, c, nil)
	b.Line(512, 256, 512, 0, c, nil)
	b.Line(512, 0, 256, 0, c, nil)
	lvl := build(t, b)
	f := mustRender(t, lvl, testOptions(320, 200), eastCam)
	for _, w := range f.Scene.Walls {
		if w.Seg.Line == l && w.Upper != nil {
			t.Errorf("upper wall between two skies")
		}
	}
	sky := 0
	for _, p := range f.Scene.Planes {
		if p.Sky {
			sky++
		}
	}
	if sky != 1 {
		t.Errorf("%d sky planes, want 1", sky)
	}
}

func TestPortalRoundTrip(t *testing.T) {
	lvl, l, _, c := twoRooms(t, 128, "CEIL")
	o := testOptions(320, 200)
	direct := mustRender(t, lvl, o, eastCam)

	l.Portal = &portal.Linked{Common: portal.Common{ID: 1}, Transform: portal.Identity()}
	through := mustRender(t, lvl, o, eastCam)
	if len(through.Windows) != 1 {
		t.Fatalf("%d windows, want 1", len(through.Windows))
	}
	win := through.Windows[0]
	if win.Kind != LineWindow || win.Line != l || win.Opaque || win.Skipped {
		t.Fatalf("window %+v", win)
	}

	var want []WallRange
	for _, w := range direct.Scene.Walls {
		if w.Sector == c {
			want = append(want, w)
		}
	}
	got := win.Scene.Walls
	if len(got) != len(want) {
		t.Fatalf("%d wall ranges through the portal, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Seg != w.Seg || g.X1 != w.X1 || g.X2 != w.X2 || g.Dist != w.Dist || g.U != w.U {
			t.Errorf("range %d: got seg %p %d..%d, want seg %p %d..%d", i, g.Seg, g.X1, g.X2, w.Seg, w.X1, w.X2)
			continue
		}
		for j := range w.Middle {
			if g.Middle[j] != w.Middle[j] {
				t.Errorf("range %d column %d: %v, want %v", i, w.X1+j, g.Middle[j], w.Middle[j])
			}
		}
	}
	for _, w := range through.Scene.Walls {
		if w.Sector == c {
			t.Errorf("far room drawn outside the window")
		}
	}
}

func TestPortalOverlay(t *testing.T) {
	lvl, l, _, _ := twoRooms(t, 128, "CEIL")
	l.Portal = &portal.Linked{Common: portal.Common{ID: 1}, Transform: portal.Identity()}
	o := testOptions(320, 200)
	o.PortalOverlay = true
	f := mustRender(t, lvl, o, eastCam)
	if len(f.Windows) != 1 || !f.Windows[0].Overlay {
		t.Fatalf("windows %+v, want one overlay", f.Windows)
	}
	if len(f.Windows[0].Scene.Walls) != 0 {
		t.Errorf("overlay window was rendered")
	}
}

func TestNoPortals(t *testing.T) {
	lvl, e1, _ := cycleLevel(t)
	o := testOptions(320, 200)
	o.NoPortals = true
	f := mustRender(t, lvl, o, eastCam)
	if len(f.Windows) != 0 {
		t.Errorf("%d windows with portals off", len(f.Windows))
	}
	for _, w := range f.Scene.Walls {
		if w.Seg.Line == e1 && w.Middle != nil {
			return
		}
	}
	t.Errorf("portal line not drawn as a wall")
}

// cycleLevel builds two separate rooms whose east walls look into each
// other through their west walls.
func cycleLevel(t *testing.T) (*bsp.Level, *bsp.Line, *bsp.Line) {
	t.Helper()
	b := bsp.NewBuilder("cycle")
	s1 := b.Sector(0, 128, "FLOOR", "CEIL", 160)
	s2 := b.Sector(0, 128, "FLOOR", "CEIL", 160)
	r1 := b.Polygon(s1, [2]float32{0, 0}, [2]float32{0, 256}, [2]float32{256, 256}, [2]float32{256, 0})
	r2 := b.Polygon(s2, [2]float32{1000, 0}, [2]float32{1000, 256}, [2]float32{1256, 256}, [2]float32{1256, 0})
	lvl := build(t, b)
	link := func(id int, a, b *bsp.Line) {
		a.Portal = &portal.Anchored{
			Common:    portal.Common{ID: id},
			Transform: portal.LineToLine(a.V1.X, a.V1.Y, a.V2.X, a.V2.Y, b.V1.X, b.V1.Y, b.V2.X, b.V2.Y),
		}
	}
	link(1, r1[2], r2[0])
	link(2, r2[2], r1[0])
	return lvl, r1[2], r2[2]
}

func TestTaintCycle(t *testing.T) {
	lvl, e1, e2 := cycleLevel(t)
	f := mustRender(t, lvl, testOptions(320, 200), eastCam)
	if len(f.Tainted) != 2 || f.Tainted[0] != e1.Portal || f.Tainted[1] != e2.Portal {
		t.Fatalf("tainted %v, want both portals", f.Tainted)
	}
	if f.Stats.Tainted != 1 {
		t.Errorf("%d taint events, want 1", f.Stats.Tainted)
	}
	opaque := 0
	for _, w := range f.Windows {
		if w.Opaque {
			opaque++
			if w.Portal != e1.Portal || w.Depth != 3 {
				t.Errorf("opaque window of %s at depth %d", portal.Name(w.Portal), w.Depth)
			}
			if len(w.Scene.Walls) != 0 {
				t.Errorf("opaque window has walls")
			}
		} else if len(w.Scene.Walls) == 0 {
			t.Errorf("window of %s at depth %d shows nothing", portal.Name(w.Portal), w.Depth)
		}
	}
	if opaque == 0 {
		t.Errorf("no opaque window")
	}
}

func TestTaintDepth(t *testing.T) {
	lvl, e1, e2 := cycleLevel(t)
	o := testOptions(320, 200)
	o.MaxPortalDepth = 1
	f := mustRender(t, lvl, o, eastCam)
	if len(f.Tainted) != 2 || f.Tainted[0] != e1.Portal || f.Tainted[1] != e2.Portal {
		t.Fatalf("tainted %v, want both portals", f.Tainted)
	}
	for _, w := range f.Windows {
		if w.Depth > 2 {
			t.Errorf("window at depth %d", w.Depth)
		}
		if w.Depth == 2 && !w.Opaque {
			t.Errorf("window past the depth limit is not opaque")
		}
	}
}

func TestWindowOverflow(t *testing.T) {
	lvl, _, _ := cycleLevel(t)
	o := testOptions(320, 200)
	o.MaxWindows = 0
	_, err := New(lvl, o).Render(eastCam)
	if !errors.Is(err, ErrWindowOverflow) {
		t.Errorf("Render = %v, want ErrWindowOverflow", err)
	}
}

func TestNetPoll(t *testing.T) {
	lvl, _, _ := cycleLevel(t)
	o := testOptions(320, 200)
	calls := 0
	o.NetPoll = func() { calls++ }
	mustRender(t, lvl, o, eastCam)
	if calls != 2 {
		t.Errorf("NetPoll called %d times, want 2", calls)
	}
}

func room(t *testing.T, floorPortal, ceilingPortal portal.Portal) (*bsp.Level, *bsp.Sector) {
	t.Helper()
	b := bsp.NewBuilder("room")
	s := b.Sector(0, 128, "FLOOR", "CEIL", 160)
	s.FloorPortal, s.CeilingPortal = floorPortal, ceilingPortal
	b.Polygon(s, [2]float32{0, 0}, [2]float32{0, 256}, [2]float32{256, 256}, [2]float32{256, 0})
	return build(t, b), s
}

func TestPlanePortal(t *testing.T) {
	lvl, _ := room(t, &portal.Plane{Common: portal.Common{ID: 1}, Pic: "LAVA", Z: -64, Light: 255}, nil)
	f := mustRender(t, lvl, testOptions(320, 200), eastCam)
	for _, p := range f.Scene.Planes {
		if p.Floor {
			t.Errorf("floor drawn under a plane portal")
		}
	}
	if len(f.Windows) != 1 || f.Windows[0].Kind != FloorWindow {
		t.Fatalf("windows %+v, want one floor window", f.Windows)
	}
	ps := f.Windows[0].Scene.Planes
	if len(ps) != 1 || ps[0].Pic != "LAVA" || ps[0].Height != -64 || !ps[0].Floor {
		t.Errorf("planes %+v", ps)
	}
}

func TestHorizonPortal(t *testing.T) {
	h := &portal.Horizon{Common: portal.Common{ID: 1}, FloorPic: "WATER", CeilingPic: "SKY", FloorZ: 0, CeilingZ: 128}
	lvl, _ := room(t, h, nil)
	f := mustRender(t, lvl, testOptions(320, 200), eastCam)
	if len(f.Windows) != 1 {
		t.Fatalf("%d windows", len(f.Windows))
	}
	ps := f.Windows[0].Scene.Planes
	if len(ps) != 1 || !ps[0].Horizon || ps[0].Pic != "WATER" {
		t.Errorf("planes %+v, want the horizon floor", ps)
	}
}

func TestLinkedPlaneSeenFromBehind(t *testing.T) {
	l := &portal.Linked{Common: portal.Common{ID: 1}, Transform: portal.Identity(), PlaneZ: 100}
	lvl, _ := room(t, l, nil)
	f := mustRender(t, lvl, testOptions(320, 200), eastCam)
	if len(f.Windows) != 1 || !f.Windows[0].Skipped {
		t.Fatalf("windows %+v, want one skipped", f.Windows)
	}
}

func TestSkybox(t *testing.T) {
	b := bsp.NewBuilder("skybox")
	s := b.Sector(0, 128, "FLOOR", "CEIL", 160)
	box := b.Sector(0, 128, "FLOOR", "CEIL", 160)
	b.Polygon(s, [2]float32{0, 0}, [2]float32{0, 256}, [2]float32{256, 256}, [2]float32{256, 0})
	b.Polygon(box, [2]float32{1000, 0}, [2]float32{1000, 256}, [2]float32{1256, 256}, [2]float32{1256, 0})
	s.CeilingPortal = &portal.Skybox{Common: portal.Common{ID: 1}, Camera: portal.Camera{X: 1128, Y: 128, Z: 41}}
	lvl := build(t, b)
	f := mustRender(t, lvl, testOptions(320, 200), eastCam)
	if len(f.Windows) != 1 || f.Windows[0].Kind != CeilingWindow {
		t.Fatalf("windows %+v, want one ceiling window", f.Windows)
	}
	w := f.Windows[0]
	if w.View.X != 1128 || w.View.Y != 128 {
		t.Errorf("skybox seen from (%v, %v)", w.View.X, w.View.Y)
	}
	if len(w.Scene.Walls) == 0 {
		t.Fatalf("nothing seen in the skybox")
	}
	for _, r := range w.Scene.Walls {
		if r.Sector != box {
			t.Errorf("wall of sector %d in the skybox", r.Sector.Index)
		}
	}
}

func TestDeepWater(t *testing.T) {
	b := bsp.NewBuilder("water")
	s := b.Sector(0, 128, "FLOOR", "CEIL", 160)
	ctl := b.Sector(32, 96, "WATER", "FAKE", 100)
	s.HeightSec = ctl.Index
	b.Polygon(s, [2]float32{0, 0}, [2]float32{0, 256}, [2]float32{256, 256}, [2]float32{256, 0})
	lvl := build(t, b)
	o := testOptions(320, 200)
	o.Override = DeepWater{Level: lvl}

	tests := []struct {
		z             float32
		floor, ceil   float32
		floorPic, pic string
	}{
		{41, 32, 96, "FLOOR", "CEIL"},
		{20, 0, 31, "FLOOR", "WATER"},
		{110, 97, 128, "FAKE", "CEIL"},
	}
	for _, tc := range tests {
		cam := eastCam
		cam.Z = tc.z
		f := mustRender(t, lvl, o, cam)
		var gotFloor, gotCeil *PlaneMark
		for _, p := range f.Scene.Planes {
			if p.Floor {
				gotFloor = p
			} else {
				gotCeil = p
			}
		}
		if gotFloor == nil || gotCeil == nil {
			t.Fatalf("z %v: planes %+v", tc.z, f.Scene.Planes)
		}
		if gotFloor.Height != tc.floor || gotCeil.Height != tc.ceil || gotFloor.Pic != tc.floorPic || gotCeil.Pic != tc.pic {
			t.Errorf("z %v: floor %v %s, ceiling %v %s", tc.z, gotFloor.Height, gotFloor.Pic, gotCeil.Height, gotCeil.Pic)
		}
	}
}

func TestDrawNodes(t *testing.T) {
	lvl, _, _, _ := twoRooms(t, 96, "CEIL")
	o := testOptions(320, 200)
	if f := mustRender(t, lvl, o, eastCam); len(f.NodeLines) != 0 {
		t.Errorf("node lines without DrawNodes")
	}
	o.DrawNodes = true
	f := mustRender(t, lvl, o, eastCam)
	if len(lvl.Nodes) == 0 || len(f.NodeLines) == 0 {
		t.Errorf("%d nodes, %d node lines", len(lvl.Nodes), len(f.NodeLines))
	}
	if f.Stats.Nodes == 0 || f.Stats.Subsectors == 0 || f.Stats.Segs == 0 {
		t.Errorf("stats %+v", f.Stats)
	}
}

// The depth and texture coordinate of a wall crossing the near plane must
// match a float64 ray cast on every column, whichever side of the plane
// its end point is on.
func TestNearClip(t *testing.T) {
	b := bsp.NewBuilder("near")
	s := b.Sector(0, 128, "FLOOR", "CEIL", 160)
	b.Line(-100, 64, 300, 64, s, nil)
	lvl := build(t, b)
	o := testOptions(320, 200)
	for i := 0; i <= 30; i++ {
		vx := -100.3 + float64(i)*0.02
		f := mustRender(t, lvl, o, portal.Camera{X: float32(vx), Z: 41})
		if len(f.Scene.Walls) != 1 {
			t.Fatalf("x %v: %d wall ranges", vx, len(f.Scene.Walls))
		}
		w := &f.Scene.Walls[0]
		if w.X1 != 0 {
			t.Errorf("x %v: wall starts at column %d", vx, w.X1)
		}
		for x := w.X1; x <= w.X2; x++ {
			k := (float64(x) - 160) / float64(f.View.XFoc)
			// the ray (1, -k) hits y = 64 at depth 64/-k
			depth := 64 / -k
			u := float64(vx) + depth + 100
			dist, gotU := w.Column(x)
			if d := math.Abs(float64(dist) - 1/depth); d > 1e-2/depth {
				t.Fatalf("x %v column %d: 1/depth %v, want %v", vx, x, dist, 1/depth)
			}
			if d := math.Abs(float64(gotU) - u); d > 0.35 {
				t.Fatalf("x %v column %d: u %v, want %v", vx, x, gotU, u)
			}
		}
	}
}

type pillar struct {
	x1, y1, x2, y2 float32
}

func (p pillar) contains(x, y, margin float32) bool {
	return x > p.x1-margin && x < p.x2+margin && y > p.y1-margin && y < p.y2+margin
}

func pillarLevel(t *testing.T, rnd *rand.Rand) (*bsp.Level, []pillar) {
	b := bsp.NewBuilder("pillars")
	s := b.Sector(0, 128, "FLOOR", "CEIL", 160)
	b.Polygon(s, [2]float32{0, 0}, [2]float32{0, 1024}, [2]float32{1024, 1024}, [2]float32{1024, 0})
	var ps []pillar
	for gx := 0; gx < 4; gx++ {
		for gy := 0; gy < 4; gy++ {
			if rnd.Intn(2) == 0 {
				continue
			}
			x1 := float32(gx*256 + 32 + rnd.Intn(64))
			y1 := float32(gy*256 + 32 + rnd.Intn(64))
			p := pillar{x1, y1, x1 + float32(32+rnd.Intn(96)), y1 + float32(32+rnd.Intn(96))}
			// counter clockwise so the room is on the right
			b.Polygon(s, [2]float32{p.x1, p.y1}, [2]float32{p.x2, p.y1}, [2]float32{p.x2, p.y2}, [2]float32{p.x1, p.y2})
			ps = append(ps, p)
		}
	}
	return build(t, b), ps
}

// castRay returns the one sided line first hit by the ray from (x, y) in
// direction (dx, dy).
func castRay(lvl *bsp.Level, x, y, dx, dy float64) *bsp.Line {
	var best *bsp.Line
	bestT := math.Inf(1)
	for _, l := range lvl.Lines {
		ax, ay := float64(l.V1.X), float64(l.V1.Y)
		ex, ey := float64(l.Dx), float64(l.Dy)
		den := dx*ey - dy*ex
		if den == 0 {
			continue
		}
		t := ((ax-x)*ey - (ay-y)*ex) / den
		s := ((ax-x)*dy - (ay-y)*dx) / den
		if t > 0 && s >= 0 && s <= 1 && t < bestT {
			best, bestT = l, t
		}
	}
	return best
}

// Every column of a closed room is covered by exactly one solid wall and
// that wall is the nearest one along the column's ray.
func TestVisibleColumns(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	o := testOptions(320, 200)
	for scene := 0; scene < 20; scene++ {
		lvl, ps := pillarLevel(t, rnd)
		for view := 0; view < 10; view++ {
			var cam portal.Camera
		place:
			for {
				cam = portal.Camera{
					X:     8 + rnd.Float32()*1008,
					Y:     8 + rnd.Float32()*1008,
					Z:     41,
					Angle: rnd.Float32() * 2 * math32.Pi,
				}
				for _, p := range ps {
					if p.contains(cam.X, cam.Y, 8) {
						continue place
					}
				}
				break
			}
			f := mustRender(t, lvl, o, cam)
			for x, n := range coverage(o.Width, f.Scene.Walls) {
				if n != 1 {
					t.Fatalf("scene %d view %+v: column %d covered %d times", scene, cam, x, n)
				}
			}
			v := f.View
			for _, w := range f.Scene.Walls {
				for x := w.X1 + 2; x <= w.X2-2; x++ {
					k := (float64(x) - float64(v.XCenter)) / float64(v.XFoc)
					dx := float64(v.Cos) + k*float64(v.Sin)
					dy := float64(v.Sin) - k*float64(v.Cos)
					if hit := castRay(lvl, float64(v.X), float64(v.Y), dx, dy); hit != w.Seg.Line {
						t.Fatalf("scene %d view %+v: column %d shows line %d, nearest is %v", scene, cam, x, w.Seg.Line.Index, hit)
					}
				}
			}
		}
	}
}

// At FOV 90 facing +x from the centre the east wall fills the view and the
// north east corner lands on column 0.
func TestFacingWall(t *testing.T) {
	b := bsp.NewBuilder("room")
	s := b.Sector(0, 128, "FLOOR", "CEIL", 160)
	lines := b.Polygon(s, [2]float32{-128, -128}, [2]float32{-128, 128}, [2]float32{128, 128}, [2]float32{128, -128})
	lvl := build(t, b)
	o := testOptions(320, 200)
	f := mustRender(t, lvl, o, portal.Camera{Z: 41})
	for x, n := range coverage(o.Width, f.Scene.Walls) {
		if n != 1 {
			t.Fatalf("column %d covered %d times", x, n)
		}
	}
	east := lines[2]
	found := false
	for _, w := range f.Scene.Walls {
		if w.Seg.Line == east {
			found = true
			if w.X1 > 1 || w.X2 != o.Width-1 {
				t.Errorf("east wall covers columns %d..%d, want 1..%d", w.X1, w.X2, o.Width-1)
			}
			continue
		}
		if w.X2 > w.X1 {
			t.Errorf("line %d covers columns %d..%d, want at most a sliver", w.Seg.Line.Index, w.X1, w.X2)
		}
	}
	if !found {
		t.Fatal("east wall not drawn")
	}
}

// rayDepth returns the ray parameter where (x, y) + t*(dx, dy) meets the
// line through l.
func rayDepth(l *bsp.Line, x, y, dx, dy float64) float64 {
	ax, ay := float64(l.V1.X), float64(l.V1.Y)
	ex, ey := float64(l.Dx), float64(l.Dy)
	return ((ax-x)*ey - (ay-y)*ex) / (dx*ey - dy*ex)
}

func TestSlopedFloor(t *testing.T) {
	b := bsp.NewBuilder("slope")
	s := b.Sector(0, 128, "FLOOR", "CEIL", 160)
	s.FloorSlope = &bsp.Slope{DX: 1, Rate: 0.25}
	b.Polygon(s, [2]float32{-128, -128}, [2]float32{-128, 128}, [2]float32{128, 128}, [2]float32{128, -128})
	lvl := build(t, b)
	o := testOptions(320, 200)
	f := mustRender(t, lvl, o, portal.Camera{Z: 41, Angle: 1})
	v := f.View
	checked := 0
	for _, w := range f.Scene.Walls {
		for i, p := range w.Middle {
			if p.Empty() {
				t.Fatalf("column %d of line %d is empty", w.X1+i, w.Seg.Line.Index)
			}
			x := w.X1 + i
			k := (float64(x) - float64(v.XCenter)) / float64(v.XFoc)
			dx := float64(v.Cos) + k*float64(v.Sin)
			dy := float64(v.Sin) - k*float64(v.Cos)
			// (dx, dy) has unit length along the view axis
			depth := rayDepth(w.Seg.Line, float64(v.X), float64(v.Y), dx, dy)
			z := (float64(v.X) + depth*dx) / 4
			want := math.Floor(float64(v.YCenter) - (z-float64(v.Z))*float64(v.YFoc)/depth)
			if want > float64(o.Height-1) {
				want = float64(o.Height - 1)
			}
			if d := math.Abs(float64(p.Bottom) - want); d > 1 {
				t.Errorf("column %d: wall bottom %d, want %v", x, p.Bottom, want)
			}
			checked++
		}
	}
	if checked != o.Width {
		t.Errorf("checked %d columns, want %d", checked, o.Width)
	}
}

func TestNonFiniteSlope(t *testing.T) {
	lvl, _, a, c := twoRooms(t, 96, "CEIL")
	a.FloorSlope = &bsp.Slope{DX: 1, Rate: float32(math.NaN())}
	f := mustRender(t, lvl, testOptions(320, 200), eastCam)
	far := 0
	for _, w := range f.Scene.Walls {
		if w.Sector == a {
			t.Errorf("line %d with a broken floor covers columns %d..%d", w.Seg.Line.Index, w.X1, w.X2)
		}
		if w.Sector == c {
			far++
		}
		for i, p := range w.Middle {
			if p.Empty() {
				t.Errorf("line %d column %d is marked solid but empty", w.Seg.Line.Index, w.X1+i)
			}
		}
	}
	if far == 0 {
		t.Error("the far room is hidden")
	}
}

// Water sectors seen from a sector without a control sector are drawn
// between the fake planes whatever the viewer height.
func TestDeepWaterFromDryLand(t *testing.T) {
	b := bsp.NewBuilder("shore")
	a := b.Sector(0, 128, "FLOOR", "CEIL", 160)
	c := b.Sector(0, 128, "FLOOR", "CEIL", 160)
	ctl := b.Sector(32, 96, "WATER", "FAKE", 100)
	c.HeightSec = ctl.Index
	b.Line(0, 0, 0, 256, a, nil)
	b.Line(0, 256, 256, 256, a, nil)
	b.Line(256, 0, 0, 0, a, nil)
	b.Line(256, 256, 256, 0, a, c)
	b.Line(256, 256, 512, 256, c, nil)
	b.Line(512, 256, 512, 0, c, nil)
	b.Line(512, 0, 256, 0, c, nil)
	lvl := build(t, b)
	o := testOptions(320, 200)
	o.Override = DeepWater{Level: lvl}

	cam := eastCam
	cam.Z = 20
	f := mustRender(t, lvl, o, cam)
	fake := false
	for _, p := range f.Scene.Planes {
		if p.Pic == "WATER" {
			t.Errorf("dry viewer sees the water surface from below at height %v", p.Height)
		}
		if !p.Floor && p.Height == 96 {
			fake = true
		}
	}
	if !fake {
		t.Errorf("no fake ceiling at 96 in %+v", f.Scene.Planes)
	}
}
