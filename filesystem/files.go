// SPDX-License-Identifier: GPL-2.0-or-later

// Package filesystem finds wad files and stacks them so later wads
// replace the lumps of earlier ones.
package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"godoom/conlog"
	"godoom/wad"

	"github.com/pkg/errors"
)

var (
	baseDir string
	mutex   sync.RWMutex
)

func BaseDir() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return baseDir
}

func UseBaseDir(dir string) {
	mutex.Lock()
	defer mutex.Unlock()
	baseDir = dir
}

// searchPath lists the directories a relative wad name is looked up in.
func searchPath() []string {
	dirs := []string{"."}
	if b := BaseDir(); b != "" {
		dirs = append(dirs, b)
	}
	if d := os.Getenv("DOOMWADDIR"); d != "" {
		dirs = append(dirs, d)
	}
	return dirs
}

// Find resolves a wad file name against the search path.
func Find(name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", err
		}
		return name, nil
	}
	for _, d := range searchPath() {
		p := filepath.Join(d, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", errors.Wrap(os.ErrNotExist, name)
}

// Wads is a stack of wads, the last one added wins.
type Wads struct {
	wads []*wad.Wad
}

// Open finds and opens all named wads in order.
func Open(names ...string) (*Wads, error) {
	ws := &Wads{}
	for _, n := range names {
		p, err := Find(n)
		if err != nil {
			ws.Close()
			return nil, err
		}
		w, err := wad.Open(p)
		if err != nil {
			ws.Close()
			return nil, err
		}
		conlog.Printf("Added %s (%d lumps)\n", w, len(w.Lumps()))
		ws.Add(w)
	}
	return ws, nil
}

func (ws *Wads) Add(w *wad.Wad) {
	ws.wads = append(ws.wads, w)
}

func (ws *Wads) Len() int {
	return len(ws.wads)
}

func (ws *Wads) Close() error {
	var first error
	for _, w := range ws.wads {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	ws.wads = nil
	return first
}

// ReadNamed returns the lump from the topmost wad containing it.
func (ws *Wads) ReadNamed(name string) ([]byte, error) {
	for i := len(ws.wads) - 1; i >= 0; i-- {
		if _, ok := ws.wads[i].Find(name); ok {
			return ws.wads[i].ReadNamed(name)
		}
	}
	return nil, errors.Wrap(wad.ErrNotFound, name)
}

// Level returns the topmost wad defining the map mapName. Map lumps are
// never mixed between wads.
func (ws *Wads) Level(mapName string) (*wad.Wad, error) {
	for i := len(ws.wads) - 1; i >= 0; i-- {
		if _, err := ws.wads[i].Level(mapName); err == nil {
			return ws.wads[i], nil
		}
	}
	return nil, errors.Wrapf(wad.ErrNotFound, "map %s", mapName)
}

// Maps lists the maps of all wads sorted by name.
func (ws *Wads) Maps() []string {
	seen := make(map[string]bool)
	var maps []string
	for _, w := range ws.wads {
		for _, m := range w.Maps() {
			if !seen[m] {
				seen[m] = true
				maps = append(maps, m)
			}
		}
	}
	sort.Strings(maps)
	return maps
}

func isSep(c uint8) bool {
	return c == '/' || c == '\\'
}

func Ext(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

func StripExt(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}
