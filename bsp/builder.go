package bsp

// Builder assembles a level in code. It is used for generated test maps and
// by the viewer when no wad is given.
type Builder struct {
	lvl   *Level
	verts map[Vertex]*Vertex
}

func NewBuilder(name string) *Builder {
	return &Builder{
		lvl:   &Level{Name: name},
		verts: make(map[Vertex]*Vertex),
	}
}

// Sector adds a sector with flat floor and ceiling.
func (b *Builder) Sector(floor, ceiling float32, floorPic, ceilingPic string, light int) *Sector {
	s := &Sector{
		Index:         len(b.lvl.Sectors),
		FloorHeight:   floor,
		CeilingHeight: ceiling,
		FloorPic:      floorPic,
		CeilingPic:    ceilingPic,
		LightLevel:    light,
		HeightSec:     -1,
	}
	b.lvl.Sectors = append(b.lvl.Sectors, s)
	return s
}

func (b *Builder) vertex(x, y float32) *Vertex {
	k := Vertex{X: x, Y: y}
	if v, ok := b.verts[k]; ok {
		return v
	}
	v := &Vertex{X: x, Y: y}
	b.verts[k] = v
	b.lvl.Vertices = append(b.lvl.Vertices, v)
	return v
}

func (b *Builder) side(s *Sector, top, bottom, mid string) *Side {
	sd := &Side{Top: top, Bottom: bottom, Mid: mid, Sector: s}
	b.lvl.Sides = append(b.lvl.Sides, sd)
	return sd
}

// Line adds a line from (x1, y1) to (x2, y2). front lies on its right.
// A nil back makes a one sided line textured "WALL"; two sided lines get
// "WALL" upper and lower textures and no middle texture.
func (b *Builder) Line(x1, y1, x2, y2 float32, front, back *Sector) *Line {
	ln := &Line{
		Index: len(b.lvl.Lines),
		V1:    b.vertex(x1, y1),
		V2:    b.vertex(x2, y2),
		Dx:    x2 - x1,
		Dy:    y2 - y1,
	}
	if back == nil {
		ln.Flags = LineBlocking
		ln.Front = b.side(front, "", "", "WALL")
	} else {
		ln.Flags = LineTwoSided
		ln.Front = b.side(front, "WALL", "WALL", "")
		ln.Back = b.side(back, "WALL", "WALL", "")
	}
	b.lvl.Lines = append(b.lvl.Lines, ln)
	b.lvl.attachLine(ln)
	return ln
}

// Polygon adds one sided lines around s. The points go clockwise so the
// sector lies on the right of every line.
func (b *Builder) Polygon(s *Sector, pts ...[2]float32) []*Line {
	lines := make([]*Line, 0, len(pts))
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		lines = append(lines, b.Line(p[0], p[1], q[0], q[1], s, nil))
	}
	return lines
}

func (b *Builder) Thing(x, y, angle float32, typ int) {
	b.lvl.Things = append(b.lvl.Things, Thing{X: x, Y: y, Angle: angle, Type: typ})
}

// Build builds the nodes and coordinate groups and returns the level.
func (b *Builder) Build() (*Level, error) {
	if err := b.lvl.BuildNodes(); err != nil {
		return nil, err
	}
	b.lvl.BuildGroups()
	return b.lvl, nil
}
