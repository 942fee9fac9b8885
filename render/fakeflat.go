// SPDX-License-Identifier: GPL-2.0-or-later
package render

import (
	"godoom/bsp"
)

// SectorOverride decides which heights, flats and light a sector is drawn
// with from the given view. It is asked again on every visit.
type SectorOverride interface {
	Override(s *bsp.Sector, v *View) *bsp.Sector
}

// NoOverride draws every sector as it is.
type NoOverride struct{}

func (NoOverride) Override(s *bsp.Sector, _ *View) *bsp.Sector {
	return s
}

// DeepWater implements the fake floors and ceilings of sectors linked to a
// control sector (HeightSec). The control sector of the sector the viewer
// stands in decides whether every such sector is drawn below the fake
// floor, above the fake ceiling or between them.
type DeepWater struct {
	Level *bsp.Level
}

func (d DeepWater) Override(s *bsp.Sector, v *View) *bsp.Sector {
	hs := d.heightSec(s)
	if hs == nil {
		return s
	}
	var under, over bool
	if vs := d.Level.SectorAt(v.X, v.Y); vs != nil {
		if vh := d.heightSec(vs); vh != nil {
			under = v.Z <= vh.FloorHeight
			over = v.Z >= vh.CeilingHeight
		}
	}
	t := *s
	// the fake planes replace any slope
	t.FloorSlope, t.CeilingSlope = nil, nil
	switch {
	case under:
		// the fake floor is seen from below
		t.FloorHeight = s.FloorHeight
		t.CeilingHeight = hs.FloorHeight - 1
		t.CeilingPic = hs.FloorPic
		t.LightLevel = hs.LightLevel
		if hs.CeilingPic == bsp.SkyFlatName && hs.CeilingHeight < s.CeilingHeight {
			t.CeilingPic = hs.CeilingPic
		}
	case over && hs.CeilingHeight < s.CeilingHeight:
		t.FloorHeight = hs.CeilingHeight + 1
		t.CeilingHeight = s.CeilingHeight
		t.FloorPic = hs.CeilingPic
		t.LightLevel = hs.LightLevel
	default:
		t.FloorHeight = hs.FloorHeight
		t.CeilingHeight = hs.CeilingHeight
		if hs.CeilingHeight > s.CeilingHeight {
			t.CeilingHeight = s.CeilingHeight
		}
		if t.FloorHeight < s.FloorHeight {
			t.FloorHeight = s.FloorHeight
		}
	}
	return &t
}

// heightSec returns the control sector of s, nil if it has none.
func (d DeepWater) heightSec(s *bsp.Sector) *bsp.Sector {
	if d.Level == nil || s.HeightSec < 0 || s.HeightSec >= len(d.Level.Sectors) {
		return nil
	}
	return d.Level.Sectors[s.HeightSec]
}
