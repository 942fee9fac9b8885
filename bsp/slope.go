// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

// Slope is an inclined plane. The height rises by Rate per map unit along
// the unit direction (DX, DY) starting at OZ in (OX, OY).
type Slope struct {
	OX, OY, OZ float32
	DX, DY     float32
	Rate       float32
}

func (s *Slope) Z(x, y float32) float32 {
	return s.OZ + ((x-s.OX)*s.DX+(y-s.OY)*s.DY)*s.Rate
}

func (s *Sector) FloorZAt(x, y float32) float32 {
	if s.FloorSlope != nil {
		return s.FloorSlope.Z(x, y)
	}
	return s.FloorHeight
}

func (s *Sector) CeilingZAt(x, y float32) float32 {
	if s.CeilingSlope != nil {
		return s.CeilingSlope.Z(x, y)
	}
	return s.CeilingHeight
}

func (s *Sector) FloorSky() bool {
	return s.FloorPic == SkyFlatName
}

func (s *Sector) CeilingSky() bool {
	return s.CeilingPic == SkyFlatName
}
