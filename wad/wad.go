// SPDX-License-Identifier: GPL-2.0-or-later

// Package wad reads the lump directory of Doom IWAD and PWAD files.
package wad

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

type header struct {
	ID           [4]byte
	NumLumps     int32
	InfoTableOfs int32
}

type entry struct {
	FilePos int32
	Size    int32
	Name    [8]byte
}

const entrySize = 16

var (
	ErrNotWad   = errors.New("not a wad file")
	ErrNotFound = errors.New("lump not found")
)

// levelLumps are the lumps following a map marker in their fixed order.
var levelLumps = []string{
	"THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SEGS",
	"SSECTORS", "NODES", "SECTORS", "REJECT", "BLOCKMAP",
}

type Lump struct {
	Name   string
	Offset int64
	Size   int64
}

type Wad struct {
	r      io.ReaderAt
	c      io.Closer
	name   string
	iwad   bool
	lumps  []Lump
	byName map[string]int
}

// Open reads the directory of the wad file name.
func Open(name string) (*Wad, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	w, err := NewReader(f, name)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.c = f
	return w, nil
}

// NewReader reads the directory from r. name is only used for messages.
func NewReader(r io.ReaderAt, name string) (*Wad, error) {
	w := &Wad{r: r, name: name}
	if err := w.init(); err != nil {
		return nil, errors.Wrapf(err, "wad %s", name)
	}
	return w, nil
}

func (w *Wad) init() error {
	var h header
	if err := binary.Read(io.NewSectionReader(w.r, 0, 12), binary.LittleEndian, &h); err != nil {
		return err
	}
	switch string(h.ID[:]) {
	case "IWAD":
		w.iwad = true
	case "PWAD":
	default:
		return ErrNotWad
	}
	if h.NumLumps < 0 || h.InfoTableOfs < 0 {
		return errors.Errorf("bad directory: %d lumps at %d", h.NumLumps, h.InfoTableOfs)
	}
	dir := io.NewSectionReader(w.r, int64(h.InfoTableOfs), int64(h.NumLumps)*entrySize)
	entries := make([]entry, h.NumLumps)
	if err := binary.Read(dir, binary.LittleEndian, entries); err != nil {
		return errors.Wrap(err, "reading directory")
	}
	w.lumps = make([]Lump, len(entries))
	w.byName = make(map[string]int, len(entries))
	for i, e := range entries {
		if e.FilePos < 0 || e.Size < 0 {
			return errors.Errorf("lump %d has bad position %d/%d", i, e.FilePos, e.Size)
		}
		name := lumpName(e.Name)
		w.lumps[i] = Lump{
			Name:   name,
			Offset: int64(e.FilePos),
			Size:   int64(e.Size),
		}
		// later lumps override earlier ones
		w.byName[name] = i
	}
	return nil
}

func lumpName(b [8]byte) string {
	n := bytes.IndexByte(b[:], 0)
	if n < 0 {
		n = len(b)
	}
	return strings.ToUpper(string(b[:n]))
}

func (w *Wad) String() string {
	return w.name
}

// IWAD reports whether this is an IWAD (as opposed to a PWAD).
func (w *Wad) IWAD() bool {
	return w.iwad
}

func (w *Wad) Close() error {
	if w.c == nil {
		return nil
	}
	return w.c.Close()
}

func (w *Wad) Lumps() []Lump {
	return w.lumps
}

// Find returns the index of the last lump called name.
func (w *Wad) Find(name string) (int, bool) {
	i, ok := w.byName[strings.ToUpper(name)]
	return i, ok
}

// OpenLump returns a reader for lump i.
func (w *Wad) OpenLump(i int) (*io.SectionReader, error) {
	if i < 0 || i >= len(w.lumps) {
		return nil, errors.Errorf("lump index %d out of range", i)
	}
	l := w.lumps[i]
	return io.NewSectionReader(w.r, l.Offset, l.Size), nil
}

// Open returns a reader for the lump called name.
func (w *Wad) Open(name string) (*io.SectionReader, error) {
	i, ok := w.Find(name)
	if !ok {
		return nil, errors.Wrap(ErrNotFound, name)
	}
	return w.OpenLump(i)
}

// ReadLump returns the contents of lump i.
func (w *Wad) ReadLump(i int) ([]byte, error) {
	r, err := w.OpenLump(i)
	if err != nil {
		return nil, err
	}
	b := make([]byte, r.Size())
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrapf(err, "reading lump %s", w.lumps[i].Name)
	}
	return b, nil
}

// ReadNamed returns the contents of the lump called name.
func (w *Wad) ReadNamed(name string) ([]byte, error) {
	i, ok := w.Find(name)
	if !ok {
		return nil, errors.Wrap(ErrNotFound, name)
	}
	return w.ReadLump(i)
}

// Level returns the lump indices of the map mapName keyed by lump name.
func (w *Wad) Level(mapName string) (map[string]int, error) {
	marker, ok := w.Find(mapName)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "map %s", mapName)
	}
	res := make(map[string]int, len(levelLumps))
	for i := marker + 1; i < len(w.lumps) && i <= marker+len(levelLumps); i++ {
		n := w.lumps[i].Name
		if !isLevelLump(n) {
			break
		}
		res[n] = i
	}
	if len(res) == 0 {
		return nil, errors.Errorf("%s is not a map marker", mapName)
	}
	return res, nil
}

// Maps lists the map markers in directory order.
func (w *Wad) Maps() []string {
	var maps []string
	for i := 0; i+1 < len(w.lumps); i++ {
		if w.lumps[i+1].Name == "THINGS" {
			maps = append(maps, w.lumps[i].Name)
		}
	}
	return maps
}

func isLevelLump(n string) bool {
	for _, l := range levelLumps {
		if l == n {
			return true
		}
	}
	return false
}
