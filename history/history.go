// SPDX-License-Identifier: GPL-2.0-or-later

// Package history keeps the camera bookmarks of the viewer between runs.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"godoom/math"
	"godoom/portal"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// add a max size to prevent the file from growing indefinitely
	maxHistory = 32
)

type History struct {
	txt []string
	idx int
}

func (h *History) String() string {
	if len(h.txt) == h.idx {
		return ""
	}
	return h.txt[h.idx]
}

func (h *History) Len() int {
	return len(h.txt)
}

func (h *History) Up() {
	if h.idx > 0 {
		h.idx--
	}
}

func (h *History) Down() {
	if h.idx < len(h.txt) {
		h.idx++
	}
}

func (h *History) Add(s string) {
	h.txt = append(h.txt, s)
	h.idx = len(h.txt)
}

const (
	historyFilename = "bookmarks.pb"
)

func (h *History) Load(dir string) error {
	fullname := filepath.Join(dir, historyFilename)
	in, err := os.ReadFile(fullname)
	if err != nil {
		// assume no history file
		return nil
	}
	data := &structpb.ListValue{}
	if err := proto.Unmarshal(in, data); err != nil {
		return fmt.Errorf("failed to decode history")
	}
	h.txt = h.txt[:0]
	for _, v := range data.GetValues() {
		if s, ok := v.GetKind().(*structpb.Value_StringValue); ok {
			h.txt = append(h.txt, s.StringValue)
		}
	}
	h.idx = len(h.txt)
	return nil
}

// Save writes the newest entries.
func (h *History) Save(dir string) error {
	fullname := filepath.Join(dir, historyFilename)
	l := min(len(h.txt), maxHistory)
	data := &structpb.ListValue{}
	for _, s := range h.txt[len(h.txt)-l:] {
		data.Values = append(data.Values, structpb.NewStringValue(s))
	}
	out, err := proto.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode history")
	}
	if err := os.WriteFile(fullname, out, 0660); err != nil {
		return fmt.Errorf("failed to write history file")
	}
	return nil
}

// FormatCamera renders a bookmark as "MAP x y z angle pitch" with the
// angles in degrees.
func FormatCamera(mapName string, c portal.Camera) string {
	return fmt.Sprintf("%s %g %g %g %g %g", mapName, c.X, c.Y, c.Z,
		math.Rad2Deg(c.Angle), math.Rad2Deg(c.Pitch))
}

// ParseCamera is the inverse of FormatCamera. The coordinate group is
// left 0, the level knows it.
func ParseCamera(s string) (string, portal.Camera, error) {
	var c portal.Camera
	f := strings.Fields(s)
	if len(f) != 6 {
		return "", c, errors.Errorf("bookmark %q: want 6 fields, got %d", s, len(f))
	}
	var v [5]float32
	for i := range v {
		if _, err := fmt.Sscan(f[i+1], &v[i]); err != nil {
			return "", c, errors.Wrapf(err, "bookmark %q", s)
		}
	}
	c.X, c.Y, c.Z = v[0], v[1], v[2]
	c.Angle = math.Deg2Rad(v[3])
	c.Pitch = math.Deg2Rad(v[4])
	return f[0], c, nil
}
