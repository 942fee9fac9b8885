// SPDX-License-Identifier: GPL-2.0-or-later
package host

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"godoom/cbuf"
	"godoom/conlog"
	"godoom/cvar"
	"godoom/history"
	"godoom/input"
	kc "godoom/keycode"
	"godoom/math"
)

const configName = "config.cfg"

func (h *Host) registerCommands() error {
	for _, c := range []struct {
		name string
		f    func(cbuf.Arguments) error
	}{
		{"bind", h.bindCmd},
		{"unbind", h.unbindCmd},
		{"unbindall", h.unbindAllCmd},
		{"map", h.mapCmd},
		{"maps", h.mapsCmd},
		{"bookmark", h.bookmarkCmd},
		{"prevbookmark", h.prevBookmarkCmd},
		{"nextbookmark", h.nextBookmarkCmd},
		{"screenshot", h.screenshotCmd},
		{"framedump", h.framedumpCmd},
		{"exec", h.execCmd},
		{"writeconfig", h.writeConfigCmd},
		{"toggle", toggleCmd},
		{"cvarlist", cvarListCmd},
		{"pos", h.posCmd},
		{"setpos", h.setPosCmd},
		{"quit", h.quitCmd},
	} {
		if err := h.cmds.Add(c.name, c.f); err != nil {
			return err
		}
	}
	if err := h.cmds.RegisterList(); err != nil {
		return err
	}
	return h.aliases.Register(h.cmds)
}

func (h *Host) bindCmd(a cbuf.Arguments) error {
	args := a.Args()
	if len(args) < 2 {
		conlog.Printf("bind <key> [command] : attach a command to a key\n")
		return nil
	}
	k := kc.StringToKey(args[1].String())
	if k <= 0 {
		conlog.Printf("\"%s\" isn't a valid key\n", args[1].String())
		return nil
	}
	if len(args) == 2 {
		if b := h.binding(k); b != "" {
			conlog.Printf("\"%s\" = \"%s\"\n", args[1].String(), b)
		} else {
			conlog.Printf("\"%s\" is not bound\n", args[1].String())
		}
		return nil
	}
	h.unbind(k)
	action := strings.Join(a.Strings()[2:], " ")
	if strings.HasPrefix(action, "+") {
		return input.Bind(k, action)
	}
	h.keyCommands[k] = action
	return nil
}

func (h *Host) binding(k kc.KeyCode) string {
	if b := input.Binding(k); b != "" {
		return b
	}
	return h.keyCommands[k]
}

func (h *Host) unbind(k kc.KeyCode) {
	input.Unbind(k)
	delete(h.keyCommands, k)
}

func (h *Host) unbindCmd(a cbuf.Arguments) error {
	if len(a.Args()) != 2 {
		conlog.Printf("unbind <key> : remove commands from a key\n")
		return nil
	}
	k := kc.StringToKey(a.Argv(1).String())
	if k <= 0 {
		conlog.Printf("\"%s\" isn't a valid key\n", a.Argv(1).String())
		return nil
	}
	h.unbind(k)
	return nil
}

func (h *Host) unbindAllCmd(cbuf.Arguments) error {
	input.UnbindAll()
	h.keyCommands = make(map[kc.KeyCode]string)
	return nil
}

func (h *Host) mapCmd(a cbuf.Arguments) error {
	if len(a.Args()) != 2 {
		conlog.Printf("map <mapname> : load a map\n")
		return nil
	}
	return h.LoadMap(strings.ToUpper(a.Argv(1).String()))
}

func (h *Host) mapsCmd(cbuf.Arguments) error {
	maps := h.wads.Maps()
	if len(maps) == 0 {
		maps = []string{DemoMap}
	}
	for _, m := range maps {
		conlog.Printf("  %s\n", m)
	}
	return nil
}

func (h *Host) bookmarkCmd(cbuf.Arguments) error {
	s := history.FormatCamera(h.mapName, h.cam)
	h.bookmarks.Add(s)
	conlog.Printf("Bookmark %d: %s\n", h.bookmarks.Len(), s)
	return nil
}

func (h *Host) prevBookmarkCmd(cbuf.Arguments) error {
	h.bookmarks.Up()
	return h.gotoBookmark()
}

func (h *Host) nextBookmarkCmd(cbuf.Arguments) error {
	h.bookmarks.Down()
	return h.gotoBookmark()
}

func (h *Host) gotoBookmark() error {
	s := h.bookmarks.String()
	if s == "" {
		return nil
	}
	m, c, err := history.ParseCamera(s)
	if err != nil {
		return err
	}
	if m != h.mapName {
		if err := h.LoadMap(m); err != nil {
			return err
		}
	}
	h.SetCamera(c)
	return nil
}

func (h *Host) screenshotCmd(cbuf.Arguments) error {
	h.wantShot = true
	return nil
}

func (h *Host) framedumpCmd(cbuf.Arguments) error {
	h.wantDump = true
	return nil
}

func (h *Host) execCmd(a cbuf.Arguments) error {
	if len(a.Args()) != 2 {
		conlog.Printf("exec <filename> : execute a script file\n")
		return nil
	}
	name := a.Argv(1).String()
	if !filepath.IsAbs(name) {
		name = filepath.Join(h.cfg.Dir, name)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		conlog.Printf("couldn't exec %s\n", a.Argv(1).String())
		return nil
	}
	conlog.Printf("execing %s\n", a.Argv(1).String())
	h.cb.InsertText(string(b))
	return nil
}

// writeConfig stores the bindings and the archived cvars as console text.
func (h *Host) writeConfig() error {
	var b strings.Builder
	b.WriteString("unbindall\n")
	for _, k := range input.BoundKeys() {
		fmt.Fprintf(&b, "bind %q %q\n", kc.KeyToString(k), input.Binding(k))
	}
	keys := make([]kc.KeyCode, 0, len(h.keyCommands))
	for k := range h.keyCommands {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		fmt.Fprintf(&b, "bind %q %q\n", kc.KeyToString(k), h.keyCommands[k])
	}
	for _, cv := range cvar.All() {
		if cv.Archive() {
			fmt.Fprintf(&b, "%s %q\n", cv.Name(), cv.String())
		}
	}
	return os.WriteFile(filepath.Join(h.cfg.Dir, configName), []byte(b.String()), 0660)
}

func (h *Host) writeConfigCmd(cbuf.Arguments) error {
	return h.writeConfig()
}

func toggleCmd(a cbuf.Arguments) error {
	if len(a.Args()) != 2 {
		conlog.Printf("toggle <cvar> : toggle a cvar on/off\n")
		return nil
	}
	cv, ok := cvar.Get(a.Argv(1).String())
	if !ok {
		conlog.Printf("variable %s not found\n", a.Argv(1).String())
		return nil
	}
	cv.Toggle()
	return nil
}

func cvarListCmd(a cbuf.Arguments) error {
	prefix := a.Argv(1).String()
	n := 0
	for _, name := range cvar.List() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		cv, _ := cvar.Get(name)
		conlog.Printf("  %s \"%s\"\n", name, cv.String())
		n++
	}
	conlog.Printf("%d cvars\n", n)
	return nil
}

func (h *Host) posCmd(cbuf.Arguments) error {
	c := h.cam
	conlog.Printf("%s (%.1f %.1f %.1f) angle %.1f pitch %.1f group %d\n", h.mapName,
		c.X, c.Y, c.Z, math.Rad2Deg(c.Angle), math.Rad2Deg(c.Pitch), c.Group)
	return nil
}

func (h *Host) setPosCmd(a cbuf.Arguments) error {
	args := a.Args()
	if len(args) < 4 {
		conlog.Printf("setpos <x> <y> <z> [angle] [pitch]\n")
		return nil
	}
	c := h.cam
	c.X, c.Y, c.Z = args[1].Float32(), args[2].Float32(), args[3].Float32()
	if len(args) > 4 {
		c.Angle = math.WrapRad(math.Deg2Rad(args[4].Float32()))
	}
	if len(args) > 5 {
		c.Pitch = math.Deg2Rad(args[5].Float32())
	}
	h.SetCamera(c)
	return nil
}

func (h *Host) quitCmd(cbuf.Arguments) error {
	h.quit = true
	return nil
}
