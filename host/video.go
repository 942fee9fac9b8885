// SPDX-License-Identifier: GPL-2.0-or-later
package host

import (
	"time"

	"github.com/gopxl/mainthread/v2"
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"godoom/conlog"
	"godoom/cvars"
	"godoom/gametime"
	"godoom/glh"
	"godoom/input"
	kc "godoom/keycode"
	"godoom/window"
)

// Run opens a window and runs the viewer until it quits. It has to be
// called from the main goroutine.
func Run(cfg Config, fullscreen bool) error {
	var err error
	mainthread.Run(func() {
		err = run(cfg, fullscreen)
	})
	return err
}

func run(cfg Config, fullscreen bool) error {
	h, err := New(cfg)
	if err != nil {
		return err
	}
	defer h.Shutdown()

	if err := mainthread.CallErr(func() error {
		return sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
	}); err != nil {
		return errors.Wrap(err, "couldn't init SDL")
	}
	defer mainthread.Call(sdl.Quit)

	var screen *glh.Screen
	if err := mainthread.CallErr(func() error {
		scale := max(cvars.VideoScale.Int(), 1)
		if err := window.SetMode(cvars.VideoWidth.Int()*scale, cvars.VideoHeight.Int()*scale, fullscreen); err != nil {
			return err
		}
		window.SetTitle(h.MapName())
		var err error
		screen, err = glh.NewScreen()
		return err
	}); err != nil {
		return err
	}
	defer mainthread.Call(window.Shutdown)

	pump := func() { mainthread.Call(h.pollEvents) }
	h.SetNetPoll(pump)

	clock := gametime.New()
	for !h.Quit() {
		pump()
		if !clock.UpdateTime(float64(cvars.HostMaxFps.Value())) {
			time.Sleep(clock.Sleep(float64(cvars.HostMaxFps.Value())))
			continue
		}
		clock.FrameIncrease()
		img, err := h.Frame(float32(clock.FrameTime()))
		if err != nil {
			return err
		}
		mainthread.Call(func() {
			ww, wh := window.Size()
			screen.Draw(img, ww, wh)
			window.EndRendering()
			window.SetTitle(h.MapName())
		})
	}
	conlog.DPrintf("ran %d frames\n", clock.FrameCount())
	return nil
}

// pollEvents drains the SDL event queue, on the main thread.
func (h *Host) pollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			k := kc.FromScancode(e.Keysym.Scancode)
			if k == kc.NONE {
				continue
			}
			h.KeyEvent(k, e.Type == sdl.KEYDOWN)
		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_FOCUS_LOST:
				input.ReleaseAll()
			}
		case *sdl.QuitEvent:
			h.quit = true
		}
	}
}
