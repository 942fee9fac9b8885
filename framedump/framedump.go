// SPDX-License-Identifier: GPL-2.0-or-later

// Package framedump writes the visibility result of one frame as json for
// offline inspection.
package framedump

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"godoom/portal"
	"godoom/render"
)

const ext = ".json"

// Struct converts f into a protobuf Struct. Per column data is reduced to
// the column ranges, the posts are not included.
func Struct(f *render.Frame) (*structpb.Struct, error) {
	m := map[string]any{
		"width":  f.Width,
		"height": f.Height,
		"view":   view(&f.View),
		"scene":  scene(&f.Scene),
		"stats": map[string]any{
			"nodes":      f.Stats.Nodes,
			"subsectors": f.Stats.Subsectors,
			"segs":       f.Stats.Segs,
			"wallRanges": f.Stats.WallRanges,
			"windows":    f.Stats.Windows,
			"tainted":    f.Stats.Tainted,
		},
	}
	var ws []any
	for i := range f.Windows {
		w := &f.Windows[i]
		ws = append(ws, map[string]any{
			"kind":    w.Kind.String(),
			"portal":  portal.Name(w.Portal),
			"minX":    w.MinX,
			"maxX":    w.MaxX,
			"depth":   w.Depth,
			"opaque":  w.Opaque,
			"overlay": w.Overlay,
			"skipped": w.Skipped,
			"view":    view(&w.View),
			"scene":   scene(&w.Scene),
		})
	}
	m["windows"] = ws
	var tainted []any
	for _, p := range f.Tainted {
		tainted = append(tainted, portal.Name(p))
	}
	m["tainted"] = tainted
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.Wrap(err, "frame to struct")
	}
	return s, nil
}

func view(v *render.View) map[string]any {
	return map[string]any{
		"x":     v.X,
		"y":     v.Y,
		"z":     v.Z,
		"angle": v.Angle,
		"pitch": v.Pitch,
		"fov":   v.FOV,
		"group": v.Group,
	}
}

func scene(s *render.Scene) map[string]any {
	var walls []any
	for i := range s.Walls {
		w := &s.Walls[i]
		line := -1
		if w.Seg != nil && w.Seg.Line != nil {
			line = w.Seg.Line.Index
		}
		sector := -1
		if w.Sector != nil {
			sector = w.Sector.Index
		}
		walls = append(walls, map[string]any{
			"line":   line,
			"sector": sector,
			"x1":     w.X1,
			"x2":     w.X2,
			"upper":  w.Upper != nil,
			"middle": w.Middle != nil,
			"lower":  w.Lower != nil,
		})
	}
	var planes []any
	for _, p := range s.Planes {
		planes = append(planes, map[string]any{
			"height":  p.Height,
			"pic":     p.Pic,
			"light":   p.Light,
			"sky":     p.Sky,
			"horizon": p.Horizon,
			"floor":   p.Floor,
			"minX":    p.MinX,
			"maxX":    p.MaxX,
		})
	}
	return map[string]any{"walls": walls, "planes": planes}
}

// Write stores f as json in dir under a fresh time ordered name and
// returns the file name.
func Write(dir string, f *render.Frame) (string, error) {
	s, err := Struct(f)
	if err != nil {
		return "", err
	}
	out, err := protojson.MarshalOptions{Multiline: true}.Marshal(s)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode frame")
	}
	name := filepath.Join(dir, "frame-"+uuid.Must(uuid.NewV7()).String()+ext)
	if err := os.WriteFile(name, out, 0660); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", name)
	}
	return name, nil
}

// Read loads a dump written by Write.
func Read(name string) (*structpb.Struct, error) {
	in, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(in, s); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", name)
	}
	return s, nil
}
