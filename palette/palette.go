// SPDX-License-Identifier: GPL-2.0-or-later
package palette

import (
	"image/color"

	"godoom/wad"

	"github.com/pkg/errors"
)

// Palette is one 256 colour PLAYPAL entry as rgba.
type Palette struct {
	Table [256 * 4]uint8
}

// Load reads the first palette of the PLAYPAL lump.
func Load(w *wad.Wad) (*Palette, error) {
	b, err := w.ReadNamed("PLAYPAL")
	if err != nil {
		return nil, errors.Wrap(err, "couldn't load PLAYPAL")
	}
	return FromRGB(b)
}

// FromRGB builds a palette from 8bit rgb triples. Extra palettes are ignored.
func FromRGB(b []byte) (*Palette, error) {
	if len(b) < 256*3 {
		return nil, errors.Errorf("palette has wrong size: %v", len(b))
	}
	p := &Palette{}
	bi := 0
	pi := 0
	for i := 0; i < 256; i++ {
		p.Table[pi] = b[bi]
		p.Table[pi+1] = b[bi+1]
		p.Table[pi+2] = b[bi+2]
		p.Table[pi+3] = 255
		pi += 4
		bi += 3
	}
	return p, nil
}

// Default is a stand in for running without a wad: a gray ramp with some
// colour in the upper half so neighbouring surfaces remain distinguishable.
func Default() *Palette {
	p := &Palette{}
	for i := 0; i < 256; i++ {
		r, g, b := uint8(i), uint8(i), uint8(i)
		if i >= 128 {
			r = uint8(64 + (i*37)%192)
			g = uint8(64 + (i*71)%192)
			b = uint8(64 + (i*113)%192)
		}
		copy(p.Table[i*4:], []uint8{r, g, b, 255})
	}
	return p
}

func (p *Palette) Color(i uint8) color.RGBA {
	o := int(i) * 4
	return color.RGBA{p.Table[o], p.Table[o+1], p.Table[o+2], p.Table[o+3]}
}

// Shade returns colour i darkened for the sector light level (0-255).
func (p *Palette) Shade(i uint8, light int) color.RGBA {
	if light < 0 {
		light = 0
	} else if light > 255 {
		light = 255
	}
	c := p.Color(i)
	// keep a little ambient so light 0 is not pure black
	l := 32 + light*223/255
	c.R = uint8(int(c.R) * l / 255)
	c.G = uint8(int(c.G) * l / 255)
	c.B = uint8(int(c.B) * l / 255)
	return c
}
