// SPDX-License-Identifier: GPL-2.0-or-later

package filesystem

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"godoom/wad"

	"github.com/pkg/errors"
)

type lump struct {
	name string
	data []byte
}

// wadBytes lays out a wad with the directory at the end.
func wadBytes(t *testing.T, id string, lumps []lump) []byte {
	t.Helper()
	var data bytes.Buffer
	type entry struct {
		FilePos, Size int32
		Name          [8]byte
	}
	var dir []entry
	pos := int32(12)
	for _, l := range lumps {
		e := entry{FilePos: pos, Size: int32(len(l.data))}
		copy(e.Name[:], l.name)
		dir = append(dir, e)
		data.Write(l.data)
		pos += int32(len(l.data))
	}
	var out bytes.Buffer
	out.WriteString(id)
	if err := binary.Write(&out, binary.LittleEndian, [2]int32{int32(len(lumps)), pos}); err != nil {
		t.Fatal(err)
	}
	out.Write(data.Bytes())
	if err := binary.Write(&out, binary.LittleEndian, dir); err != nil {
		t.Fatal(err)
	}
	return out.Bytes()
}

func memWad(t *testing.T, name, id string, lumps []lump) *wad.Wad {
	t.Helper()
	w, err := wad.NewReader(bytes.NewReader(wadBytes(t, id, lumps)), name)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func mapLumps(name string) []lump {
	return []lump{{name, nil}, {"THINGS", []byte{1}}, {"LINEDEFS", nil}}
}

func TestStacking(t *testing.T) {
	iwad := memWad(t, "doom2.wad", "IWAD", append([]lump{
		{"PLAYPAL", []byte{1}},
		{"COLORMAP", []byte{2}},
	}, append(mapLumps("MAP01"), mapLumps("MAP02")...)...))
	pwad := memWad(t, "mod.wad", "PWAD", append([]lump{
		{"PLAYPAL", []byte{3}},
	}, mapLumps("MAP02")...))

	ws := &Wads{}
	ws.Add(iwad)
	ws.Add(pwad)

	for _, tc := range []struct {
		lump string
		want byte
	}{
		{"PLAYPAL", 3},
		{"COLORMAP", 2},
	} {
		b, err := ws.ReadNamed(tc.lump)
		if err != nil {
			t.Fatal(err)
		}
		if len(b) != 1 || b[0] != tc.want {
			t.Errorf("%s = %v, want [%d]", tc.lump, b, tc.want)
		}
	}
	if _, err := ws.ReadNamed("ENDOOM"); !errors.Is(err, wad.ErrNotFound) {
		t.Errorf("ENDOOM: %v", err)
	}

	for _, tc := range []struct {
		level string
		want  *wad.Wad
	}{
		{"MAP01", iwad},
		{"MAP02", pwad},
	} {
		w, err := ws.Level(tc.level)
		if err != nil {
			t.Fatal(err)
		}
		if w != tc.want {
			t.Errorf("%s from %s, want %s", tc.level, w, tc.want)
		}
	}
	if _, err := ws.Level("MAP03"); err == nil {
		t.Error("found MAP03")
	}

	maps := ws.Maps()
	if len(maps) != 2 || maps[0] != "MAP01" || maps[1] != "MAP02" {
		t.Errorf("Maps() = %q", maps)
	}
	if err := ws.Close(); err != nil {
		t.Fatal(err)
	}
	if ws.Len() != 0 {
		t.Error("wads left after Close")
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "test.wad")
	if err := os.WriteFile(name, wadBytes(t, "PWAD", mapLumps("E1M1")), 0660); err != nil {
		t.Fatal(err)
	}
	UseBaseDir(dir)
	defer UseBaseDir("")

	got, err := Find("test.wad")
	if err != nil {
		t.Fatal(err)
	}
	if got != name {
		t.Errorf("Find = %s, want %s", got, name)
	}
	if _, err := Find("missing.wad"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing: %v", err)
	}

	ws, err := Open("test.wad")
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()
	if m := ws.Maps(); len(m) != 1 || m[0] != "E1M1" {
		t.Errorf("Maps() = %q", m)
	}
}

func TestExt(t *testing.T) {
	for _, tc := range []struct {
		in, ext, stripped string
	}{
		{"doom2.wad", ".wad", "doom2"},
		{"dir.d/file", "", "dir.d/file"},
		{`c:\wads\plutonia.WAD`, ".WAD", `c:\wads\plutonia`},
		{"noext", "", "noext"},
	} {
		if got := Ext(tc.in); got != tc.ext {
			t.Errorf("Ext(%q) = %q, want %q", tc.in, got, tc.ext)
		}
		if got := StripExt(tc.in); got != tc.stripped {
			t.Errorf("StripExt(%q) = %q, want %q", tc.in, got, tc.stripped)
		}
	}
}
