// SPDX-License-Identifier: GPL-2.0-or-later

// Package host runs the viewer: it owns the level, the camera and the
// console and turns every frame into an image.
package host

import (
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"godoom/alias"
	"godoom/bsp"
	"godoom/cbuf"
	"godoom/cmd"
	"godoom/conlog"
	"godoom/cvar"
	"godoom/cvars"
	"godoom/filesystem"
	"godoom/framedump"
	"godoom/history"
	gimage "godoom/image"
	"godoom/input"
	kc "godoom/keycode"
	"godoom/palette"
	"godoom/portal"
	"godoom/render"
	"godoom/swdraw"
)

type Config struct {
	// Wads are stacked in order, later ones replace lumps of earlier ones.
	Wads []string
	// Map to start in, the first map of the wads if empty.
	Map string
	// Dir receives dumps, screenshots and bookmarks.
	Dir       string
	NoPortals bool
	// DumpFrame dumps that frame number automatically, 0 for none.
	DumpFrame int
}

type Host struct {
	cfg Config

	wads    *filesystem.Wads
	level   *bsp.Level
	mapName string

	renderer *render.Renderer
	drawer   *swdraw.Drawer
	cam      portal.Camera

	cb          cbuf.CommandBuffer
	cmds        *cmd.Commands
	aliases     *alias.Aliases
	bookmarks   history.History
	keyCommands map[kc.KeyCode]string

	frameCount int
	frame      *render.Frame
	img        *image.RGBA
	netPoll    func()

	wantDump bool
	wantShot bool
	quit     bool
}

// New opens the wads and loads the start map.
func New(cfg Config) (*Host, error) {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	h := &Host{
		cfg:     cfg,
		cmds:    cmd.New(),
		aliases: alias.New(),
		keyCommands: map[kc.KeyCode]string{
			kc.F5:     "bookmark",
			kc.F6:     "prevbookmark",
			kc.F7:     "nextbookmark",
			kc.F11:    "screenshot",
			kc.F12:    "framedump",
			kc.ESCAPE: "quit",
		},
	}
	wads, err := filesystem.Open(cfg.Wads...)
	if err != nil {
		return nil, err
	}
	h.wads = wads
	h.drawer = swdraw.New(h.loadPalette())

	if err := h.registerCommands(); err != nil {
		return nil, err
	}
	h.cb.SetCommandExecutors([]cbuf.Efunc{
		h.cmds.Execute(),
		h.aliases.Execute(),
		func(_ *cbuf.CommandBuffer, a cbuf.Arguments) (bool, error) {
			return cvar.Execute(a.Strings())
		},
	})
	input.DefaultBindings()

	if err := h.bookmarks.Load(cfg.Dir); err != nil {
		conlog.Warnf("bookmarks: %v", err)
	}

	name := cfg.Map
	if name == "" {
		name = DemoMap
		if maps := h.wads.Maps(); len(maps) > 0 {
			name = maps[0]
		}
	}
	if err := h.LoadMap(name); err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(cfg.Dir, configName)); err == nil {
		h.Exec("exec " + configName)
	}
	return h, nil
}

func (h *Host) loadPalette() *palette.Palette {
	b, err := h.wads.ReadNamed("PLAYPAL")
	if err != nil {
		return palette.Default()
	}
	p, err := palette.FromRGB(b)
	if err != nil {
		conlog.Warnf("%v, using the default palette", err)
		return palette.Default()
	}
	return p
}

// LoadMap replaces the level and puts the camera on the player start.
func (h *Host) LoadMap(name string) error {
	var lvl *bsp.Level
	if name == DemoMap && h.wads.Len() == 0 {
		lvl = DemoLevel()
	} else {
		w, err := h.wads.Level(name)
		if err != nil {
			return err
		}
		if lvl, err = bsp.Load(w, name); err != nil {
			return err
		}
	}
	if err := lvl.Setup(!h.cfg.NoPortals); err != nil {
		return err
	}
	h.level = lvl
	h.mapName = name
	h.renderer = render.New(lvl, render.OptionsFromCvars())
	h.cam = startCamera(lvl)
	conlog.WithFields(logrus.Fields{
		"map":     name,
		"sectors": len(lvl.Sectors),
		"lines":   len(lvl.Lines),
		"portals": len(lvl.Portals),
		"groups":  lvl.Groups,
	}).Info("level loaded")
	return nil
}

// startCamera returns the view of the first player start, or the middle of
// the level if there is none.
func startCamera(lvl *bsp.Level) portal.Camera {
	var c portal.Camera
	found := false
	for _, t := range lvl.Things {
		if t.Type == ThingPlayer1Start {
			c.X, c.Y, c.Angle = t.X, t.Y, t.Angle
			found = true
			break
		}
	}
	if !found && len(lvl.Vertices) > 0 {
		var minX, minY, maxX, maxY = lvl.Vertices[0].X, lvl.Vertices[0].Y, lvl.Vertices[0].X, lvl.Vertices[0].Y
		for _, v := range lvl.Vertices[1:] {
			minX, maxX = min(minX, v.X), max(maxX, v.X)
			minY, maxY = min(minY, v.Y), max(maxY, v.Y)
		}
		c.X, c.Y = (minX+maxX)/2, (minY+maxY)/2
	}
	return placeCamera(lvl, c)
}

// placeCamera puts c at eye height above the floor and fixes its group.
func placeCamera(lvl *bsp.Level, c portal.Camera) portal.Camera {
	if s := lvl.SectorAt(c.X, c.Y); s != nil {
		c.Z = s.FloorZAt(c.X, c.Y) + bsp.ViewHeight
		c.Group = s.Group
	}
	return c
}

func (h *Host) Level() *bsp.Level     { return h.level }
func (h *Host) MapName() string       { return h.mapName }
func (h *Host) Camera() portal.Camera { return h.cam }

func (h *Host) SetCamera(c portal.Camera) {
	c.Group = h.groupAt(c.X, c.Y, c.Group)
	h.cam = c
}

// LastFrame returns the visibility result of the last Frame call.
func (h *Host) LastFrame() *render.Frame { return h.frame }

func (h *Host) Quit() bool { return h.quit }

// SetNetPoll installs the hook the renderer calls between its passes.
func (h *Host) SetNetPoll(f func()) { h.netPoll = f }

// Exec queues console text and runs it.
func (h *Host) Exec(text string) {
	h.cb.AddText(text)
	h.cb.Execute()
}

// KeyEvent routes a key to its button or console command.
func (h *Host) KeyEvent(k kc.KeyCode, down bool) {
	if input.KeyEvent(k, down) {
		return
	}
	if !down {
		return
	}
	if c, ok := h.keyCommands[k]; ok {
		h.cb.AddText(c + "\n")
	}
}

// Frame advances the camera by dt seconds and renders and draws a frame.
// The image is reused by the next call.
func (h *Host) Frame(dt float32) (*image.RGBA, error) {
	h.cb.Execute()
	h.move(dt)
	h.frameCount++

	o := render.OptionsFromCvars()
	o.NetPoll = h.netPoll
	o.Override = render.DeepWater{Level: h.level}
	h.renderer.SetOptions(o)

	start := time.Now()
	f, err := h.renderer.Render(h.cam)
	if err != nil {
		return nil, err
	}
	renderTime := time.Since(start)
	h.frame = f
	h.img = h.drawer.Draw(f)
	drawTime := time.Since(start) - renderTime

	if h.cfg.DumpFrame > 0 && h.frameCount == h.cfg.DumpFrame {
		h.wantDump = true
	}
	if h.wantDump {
		h.wantDump = false
		if name, err := framedump.Write(h.cfg.Dir, f); err != nil {
			conlog.Errorf("framedump: %v", err)
		} else {
			conlog.Printf("Wrote %s\n", name)
		}
	}
	if h.wantShot {
		h.wantShot = false
		if _, err := gimage.Screenshot(h.cfg.Dir, h.img); err != nil {
			conlog.Errorf("screenshot: %v", err)
		}
	}
	h.speeds(f, renderTime, drawTime)
	return h.img, nil
}

// speeds logs the frame statistics while r_speeds is set.
func (h *Host) speeds(f *render.Frame, renderTime, drawTime time.Duration) {
	if !cvars.RSpeeds.Bool() {
		return
	}
	conlog.WithFields(logrus.Fields{
		"frame":   h.frameCount,
		"nodes":   f.Stats.Nodes,
		"subs":    f.Stats.Subsectors,
		"segs":    f.Stats.Segs,
		"walls":   f.Stats.WallRanges,
		"windows": f.Stats.Windows,
		"tainted": f.Stats.Tainted,
		"render":  renderTime,
		"draw":    drawTime,
	}).Info("r_speeds")
}

// Shutdown saves the config and the bookmarks and closes the wads.
func (h *Host) Shutdown() {
	if err := h.writeConfig(); err != nil {
		conlog.Warnf("config: %v", err)
	}
	if err := h.bookmarks.Save(h.cfg.Dir); err != nil {
		conlog.Warnf("bookmarks: %v", err)
	}
	if err := h.wads.Close(); err != nil {
		conlog.Warnf("%v", err)
	}
}
