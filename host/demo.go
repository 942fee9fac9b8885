// SPDX-License-Identifier: GPL-2.0-or-later
package host

import (
	"godoom/bsp"
)

// DemoMap names the built in level used without a wad.
const DemoMap = "DEMO"

// ThingPlayer1Start is the doomednum of the first player start.
const ThingPlayer1Start = 1

// DemoLevel builds a small level showing the portal kinds that need no
// textures: a courtyard under the sky with a raised platform, whose east
// wall looks into a room far away. That room has a horizon ceiling.
func DemoLevel() *bsp.Level {
	b := bsp.NewBuilder(DemoMap)

	yard := b.Sector(0, 256, "FLOOR4_8", bsp.SkyFlatName, 192)
	yardLines := b.Polygon(yard,
		[2]float32{0, 0}, [2]float32{0, 512}, [2]float32{512, 512}, [2]float32{512, 0})

	stage := b.Sector(24, 256, "FLAT20", bsp.SkyFlatName, 224)
	pts := [][2]float32{{192, 192}, {320, 192}, {320, 320}, {192, 320}}
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		b.Line(p[0], p[1], q[0], q[1], yard, stage)
	}

	room := b.Sector(-32, 160, "FLAT5", "CEIL3_5", 160)
	room.Tag = 2
	roomLines := b.Polygon(room,
		[2]float32{1024, 0}, [2]float32{1024, 512}, [2]float32{1536, 512}, [2]float32{1536, 0})

	// yard east wall <-> room west wall
	yardLines[2].Special, yardLines[2].Tag = bsp.SpecialLineToLine, 1
	roomLines[0].Special, roomLines[0].Tag = bsp.SpecialLineToLine, 1
	// room north wall puts a horizon into the room's own ceiling
	roomLines[1].Special, roomLines[1].Tag = bsp.SpecialHorizonCeiling, 2

	b.Thing(64, 256, 0, ThingPlayer1Start)

	lvl, err := b.Build()
	if err != nil {
		// the geometry above is fixed
		panic(err)
	}
	return lvl
}
