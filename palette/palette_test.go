// SPDX-License-Identifier: GPL-2.0-or-later
package palette

import "testing"

func TestFromRGB(t *testing.T) {
	b := make([]byte, 256*3)
	b[3*7], b[3*7+1], b[3*7+2] = 10, 20, 30
	p, err := FromRGB(b)
	if err != nil {
		t.Fatal(err)
	}
	c := p.Color(7)
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 255 {
		t.Errorf("Color(7) = %v", c)
	}
	if _, err := FromRGB(b[:100]); err == nil {
		t.Errorf("FromRGB(short) succeeded")
	}
}

func TestShade(t *testing.T) {
	p := Default()
	tests := []struct {
		light int
		want  uint8
	}{
		{255, 100},
		{1000, 100},
		{0, 12},
		{-10, 12},
	}
	for _, tc := range tests {
		got := p.Shade(100, tc.light)
		if got.R != tc.want || got.G != tc.want || got.B != tc.want {
			t.Errorf("Shade(100, %d) = %v, want gray %v", tc.light, got, tc.want)
		}
	}
}
