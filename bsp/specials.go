// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import (
	"godoom/conlog"
	"godoom/math/vec"
	"godoom/portal"

	"github.com/pkg/errors"
)

// Line specials understood by the level setup.
const (
	SpecialHeightSec = 242

	SpecialPlaneCeiling = 283
	SpecialPlaneFloor   = 284
	SpecialPlaneBoth    = 285

	SpecialHorizonCeiling = 286
	SpecialHorizonFloor   = 287
	SpecialHorizonBoth    = 288

	SpecialLineToLine = 289

	SpecialSkyboxCeiling = 290
	SpecialSkyboxFloor   = 291
	SpecialSkyboxBoth    = 292

	SpecialAnchoredCeiling = 293
	SpecialAnchoredFloor   = 294
	SpecialAnchoredBoth    = 295
	SpecialAnchor          = 296

	SpecialTwoWayCeiling = 297
	SpecialTwoWayFloor   = 298
	SpecialTwoWayAnchor  = 299

	SpecialLinkedCeiling = 344
	SpecialLinkedFloor   = 345
	SpecialLinkedBoth    = 346
	SpecialLinkedAnchor  = 347
	SpecialLinkedLine    = 348

	SpecialSlopeFrontFloor   = 386
	SpecialSlopeFrontCeiling = 387
	SpecialSlopeFrontBoth    = 388
	SpecialSlopeBackFloor    = 389
	SpecialSlopeBackCeiling  = 390
	SpecialSlopeBackBoth     = 391
)

// ThingSkyboxCamera marks the viewpoint of skybox portals.
const ThingSkyboxCamera = 5080

// ViewHeight is the eye height above the floor.
const ViewHeight = 41

type planes int

const (
	onCeiling planes = 1 << iota
	onFloor
)

// Setup runs the level specials: slopes, fake flats, coordinate groups
// and, if portals is set, portals.
func (l *Level) Setup(portals bool) error {
	l.SpawnSlopes()
	l.SpawnHeightSecs()
	l.BuildGroups()
	if !portals {
		return nil
	}
	return l.SpawnPortals()
}

// SpawnSlopes pivots sector planes around lines with a slope special. The
// plane meets the other sector's height at the line and keeps its own
// height at the vertex farthest from it.
func (l *Level) SpawnSlopes() {
	for _, ln := range l.Lines {
		var floor, ceiling, back bool
		switch ln.Special {
		case SpecialSlopeFrontFloor:
			floor = true
		case SpecialSlopeFrontCeiling:
			ceiling = true
		case SpecialSlopeFrontBoth:
			floor, ceiling = true, true
		case SpecialSlopeBackFloor:
			floor, back = true, true
		case SpecialSlopeBackCeiling:
			ceiling, back = true, true
		case SpecialSlopeBackBoth:
			floor, ceiling, back = true, true, true
		default:
			continue
		}
		if ln.Back == nil {
			conlog.Warnf("%s: slope line %d is one sided\n", l.Name, ln.Index)
			continue
		}
		sec, other := ln.Front.Sector, ln.Back.Sector
		if back {
			sec, other = other, sec
		}
		if floor {
			sec.FloorSlope = l.lineSlope(ln, sec, other.FloorHeight, sec.FloorHeight)
		}
		if ceiling {
			sec.CeilingSlope = l.lineSlope(ln, sec, other.CeilingHeight, sec.CeilingHeight)
		}
	}
}

func (l *Level) lineSlope(ln *Line, sec *Sector, lineZ, farZ float32) *Slope {
	d := vec.Vec2{X: ln.Dx, Y: ln.Dy}
	length := d.Length()
	if length == 0 {
		return nil
	}
	// unit normal pointing into sec
	nx, ny := ln.Dy/length, -ln.Dx/length
	if ln.Front.Sector != sec {
		nx, ny = -nx, -ny
	}
	var far float32
	for _, sl := range sec.Lines {
		for _, v := range []*Vertex{sl.V1, sl.V2} {
			if dist := (v.X-ln.V1.X)*nx + (v.Y-ln.V1.Y)*ny; dist > far {
				far = dist
			}
		}
	}
	if far < 1 {
		return nil
	}
	return &Slope{
		OX:   ln.V1.X,
		OY:   ln.V1.Y,
		OZ:   lineZ,
		DX:   nx,
		DY:   ny,
		Rate: (farZ - lineZ) / far,
	}
}

// SpawnHeightSecs links tagged sectors to the control sector of fake flat
// lines.
func (l *Level) SpawnHeightSecs() {
	for _, ln := range l.Lines {
		if ln.Special != SpecialHeightSec {
			continue
		}
		for _, s := range l.SectorsByTag(ln.Tag) {
			s.HeightSec = ln.Front.Sector.Index
		}
	}
}

func (l *Level) addPortal(p portal.Portal) {
	l.Portals = append(l.Portals, p)
}

func (l *Level) nextID() int {
	return len(l.Portals) + 1
}

func (l *Level) applySectors(tag int, where planes, p portal.Portal) {
	for _, s := range l.SectorsByTag(tag) {
		if where&onCeiling != 0 {
			s.CeilingPortal = p
		}
		if where&onFloor != 0 {
			s.FloorPortal = p
		}
	}
}

func (l *Level) findAnchor(special, tag int, not *Line) *Line {
	for _, ln := range l.Lines {
		if ln.Special == special && ln.Tag == tag && ln != not {
			return ln
		}
	}
	return nil
}

func (l *Level) skyboxCamera() (portal.Camera, bool) {
	for _, t := range l.Things {
		if t.Type != ThingSkyboxCamera {
			continue
		}
		c := portal.Camera{X: t.X, Y: t.Y, Angle: t.Angle}
		if s := l.SectorAt(t.X, t.Y); s != nil {
			c.Z = s.FloorZAt(t.X, t.Y) + ViewHeight
			c.Group = s.Group
		}
		return c, true
	}
	return portal.Camera{}, false
}

// SpawnPortals creates the portals requested by line specials. Groups must
// be built first.
func (l *Level) SpawnPortals() error {
	l.Portals = nil
	for _, ln := range l.Lines {
		switch ln.Special {
		case SpecialPlaneCeiling, SpecialPlaneFloor, SpecialPlaneBoth:
			l.spawnPlane(ln, planesFor(ln.Special-SpecialPlaneCeiling))
		case SpecialHorizonCeiling, SpecialHorizonFloor, SpecialHorizonBoth:
			fs := ln.Front.Sector
			p := &portal.Horizon{
				Common:     portal.Common{ID: l.nextID()},
				FloorPic:   fs.FloorPic,
				CeilingPic: fs.CeilingPic,
				FloorZ:     fs.FloorHeight,
				CeilingZ:   fs.CeilingHeight,
				Light:      fs.LightLevel,
			}
			l.addPortal(p)
			l.applySectors(ln.Tag, planesFor(ln.Special-SpecialHorizonCeiling), p)
		case SpecialSkyboxCeiling, SpecialSkyboxFloor, SpecialSkyboxBoth:
			cam, ok := l.skyboxCamera()
			if !ok {
				return errors.Errorf("%s: line %d needs a skybox camera (thing %d)", l.Name, ln.Index, ThingSkyboxCamera)
			}
			p := &portal.Skybox{Common: portal.Common{ID: l.nextID()}, Camera: cam}
			l.addPortal(p)
			l.applySectors(ln.Tag, planesFor(ln.Special-SpecialSkyboxCeiling), p)
		case SpecialAnchoredCeiling, SpecialAnchoredFloor, SpecialAnchoredBoth:
			a := l.findAnchor(SpecialAnchor, ln.Tag, ln)
			if a == nil {
				conlog.Warnf("%s: anchored portal line %d has no anchor\n", l.Name, ln.Index)
				continue
			}
			p := &portal.Anchored{
				Common:    portal.Common{ID: l.nextID()},
				Transform: portal.Translation(a.V1.X-ln.V1.X, a.V1.Y-ln.V1.Y, 0),
			}
			l.addPortal(p)
			l.applySectors(ln.Tag, planesFor(ln.Special-SpecialAnchoredCeiling), p)
		case SpecialTwoWayCeiling, SpecialTwoWayFloor:
			l.spawnTwoWay(ln)
		case SpecialLineToLine:
			l.spawnLinePair(ln, false)
		case SpecialLinkedCeiling, SpecialLinkedFloor, SpecialLinkedBoth:
			l.spawnLinked(ln, planesFor(ln.Special-SpecialLinkedCeiling))
		case SpecialLinkedLine:
			l.spawnLinePair(ln, true)
		}
	}
	if len(l.Portals) > 0 {
		conlog.DPrintf("%s: %d portals\n", l.Name, len(l.Portals))
	}
	return nil
}

// planesFor maps the ceiling, floor, both order of special triples.
func planesFor(i int) planes {
	switch i {
	case 0:
		return onCeiling
	case 1:
		return onFloor
	}
	return onCeiling | onFloor
}

func (l *Level) spawnPlane(ln *Line, where planes) {
	fs := ln.Front.Sector
	if where&onCeiling != 0 {
		p := &portal.Plane{
			Common: portal.Common{ID: l.nextID()},
			Pic:    fs.CeilingPic,
			Z:      fs.CeilingHeight,
			Light:  fs.LightLevel,
		}
		l.addPortal(p)
		l.applySectors(ln.Tag, onCeiling, p)
	}
	if where&onFloor != 0 {
		p := &portal.Plane{
			Common: portal.Common{ID: l.nextID()},
			Pic:    fs.FloorPic,
			Z:      fs.FloorHeight,
			Light:  fs.LightLevel,
		}
		l.addPortal(p)
		l.applySectors(ln.Tag, onFloor, p)
	}
}

func (l *Level) spawnTwoWay(ln *Line) {
	a := l.findAnchor(SpecialTwoWayAnchor, ln.Tag, ln)
	if a == nil {
		conlog.Warnf("%s: two way portal line %d has no anchor\n", l.Name, ln.Index)
		return
	}
	t := portal.Translation(a.V1.X-ln.V1.X, a.V1.Y-ln.V1.Y, 0)
	p := &portal.TwoWay{Common: portal.Common{ID: l.nextID()}, Transform: t}
	l.addPortal(p)
	q := &portal.TwoWay{Common: portal.Common{ID: l.nextID()}, Transform: t.Inverse()}
	l.addPortal(q)
	p.Partner, q.Partner = q, p
	as := a.Front.Sector
	if ln.Special == SpecialTwoWayCeiling {
		l.applySectors(ln.Tag, onCeiling, p)
		as.FloorPortal = q
	} else {
		l.applySectors(ln.Tag, onFloor, p)
		as.CeilingPortal = q
	}
}

func (l *Level) spawnLinked(ln *Line, where planes) {
	a := l.findAnchor(SpecialLinkedAnchor, ln.Tag, ln)
	if a == nil {
		conlog.Warnf("%s: linked portal line %d has no anchor\n", l.Name, ln.Index)
		return
	}
	dest := a.Front.Sector
	dx, dy := a.V1.X-ln.V1.X, a.V1.Y-ln.V1.Y
	for _, s := range l.SectorsByTag(ln.Tag) {
		if where&onCeiling != 0 {
			p := &portal.Linked{
				Common:    portal.Common{ID: l.nextID()},
				Transform: portal.Translation(dx, dy, dest.FloorHeight-s.CeilingHeight),
				FromGroup: s.Group,
				ToGroup:   dest.Group,
				PlaneZ:    s.CeilingHeight,
			}
			l.addPortal(p)
			s.CeilingPortal = p
		}
		if where&onFloor != 0 {
			p := &portal.Linked{
				Common:    portal.Common{ID: l.nextID()},
				Transform: portal.Translation(dx, dy, dest.CeilingHeight-s.FloorHeight),
				FromGroup: s.Group,
				ToGroup:   dest.Group,
				PlaneZ:    s.FloorHeight,
			}
			l.addPortal(p)
			s.FloorPortal = p
		}
	}
}

// spawnLinePair joins ln with the other line carrying the same special and
// tag. Each side is handled when its own line is visited.
func (l *Level) spawnLinePair(ln *Line, linked bool) {
	if ln.Portal != nil {
		return
	}
	o := l.findAnchor(ln.Special, ln.Tag, ln)
	if o == nil {
		conlog.Warnf("%s: line portal %d has no partner\n", l.Name, ln.Index)
		return
	}
	there := portal.LineToLine(ln.V1.X, ln.V1.Y, ln.V2.X, ln.V2.Y, o.V1.X, o.V1.Y, o.V2.X, o.V2.Y)
	back := portal.LineToLine(o.V1.X, o.V1.Y, o.V2.X, o.V2.Y, ln.V1.X, ln.V1.Y, ln.V2.X, ln.V2.Y)
	if linked {
		p := &portal.Linked{
			Common:    portal.Common{ID: l.nextID()},
			Transform: there,
			FromGroup: ln.Front.Sector.Group,
			ToGroup:   o.Front.Sector.Group,
		}
		l.addPortal(p)
		q := &portal.Linked{
			Common:    portal.Common{ID: l.nextID()},
			Transform: back,
			FromGroup: o.Front.Sector.Group,
			ToGroup:   ln.Front.Sector.Group,
		}
		l.addPortal(q)
		ln.Portal, o.Portal = p, q
		return
	}
	p := &portal.Anchored{Common: portal.Common{ID: l.nextID()}, Transform: there}
	l.addPortal(p)
	q := &portal.Anchored{Common: portal.Common{ID: l.nextID()}, Transform: back}
	l.addPortal(q)
	ln.Portal, o.Portal = p, q
}
