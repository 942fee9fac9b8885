// SPDX-License-Identifier: GPL-2.0-or-later

// Package window owns the SDL window and its GL context.
package window

import (
	"unsafe"

	"godoom/conlog"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
)

const title = "GoDoom"

var (
	window  *sdl.Window
	context sdl.GLContext
)

func Get() *sdl.Window {
	return window
}

// Size returns the drawable size in pixels.
func Size() (int, int) {
	if window == nil {
		return 0, 0
	}
	w, h := window.GLGetDrawableSize()
	return int(w), int(h)
}

func Shutdown() {
	if context != nil {
		sdl.GLDeleteContext(context)
		context = nil
	}
	if window != nil {
		window.Destroy()
		window = nil
	}
}

func Fullscreen() bool {
	return window.GetFlags()&sdl.WINDOW_FULLSCREEN != 0
}

func InputFocus() bool {
	return window.GetFlags()&(sdl.WINDOW_MOUSE_FOCUS|sdl.WINDOW_INPUT_FOCUS) != 0
}

func Minimized() bool {
	return window.GetFlags()&sdl.WINDOW_SHOWN == 0
}

func createWindow(width, height int32) (*sdl.Window, error) {
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_HIDDEN | sdl.WINDOW_RESIZABLE)
	w, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, width, height, flags)
	if err == nil {
		return w, nil
	}
	// no depth buffer is needed for a textured quad
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 0)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 0)
	w, err = sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, width, height, flags)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't create window")
	}
	return w, nil
}

// SetMode creates the window on first use and resizes it afterwards.
func SetMode(width, height int, fullscreen bool) error {
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	if window == nil {
		w, err := createWindow(int32(width), int32(height))
		if err != nil {
			return err
		}
		window = w
	}
	if Fullscreen() {
		if err := window.SetFullscreen(0); err != nil {
			return errors.Wrap(err, "couldn't leave fullscreen")
		}
	}
	window.SetSize(int32(width), int32(height))
	window.SetPosition(sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED)
	if fullscreen {
		if err := window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP); err != nil {
			return errors.Wrap(err, "couldn't set fullscreen")
		}
	}

	window.Show()

	if context == nil {
		c, err := window.GLCreateContext()
		if err != nil {
			return errors.Wrap(err, "couldn't create GL context")
		}
		context = c
		if err := gl.Init(); err != nil {
			return errors.Wrap(err, "couldn't init gl")
		}
		gl.DebugMessageCallback(debugCb, unsafe.Pointer(nil))
		conlog.DPrintf("GL_VENDOR: %s\n", gl.GoStr(gl.GetString(gl.VENDOR)))
		conlog.DPrintf("GL_RENDERER: %s\n", gl.GoStr(gl.GetString(gl.RENDERER)))
	}
	return nil
}

func debugCb(
	source uint32,
	gltype uint32,
	id uint32,
	severity uint32,
	length int32,
	message string,
	userParam unsafe.Pointer) {
	if severity == gl.DEBUG_SEVERITY_HIGH {
		conlog.Errorf("[GL_DEBUG] source %d gltype %d id %d severity %d: %s", source, gltype, id, severity, message)
	} else {
		conlog.DPrintf("[GL_DEBUG] source %d gltype %d id %d severity %d: %s\n", source, gltype, id, severity, message)
	}
}

func SetTitle(s string) {
	if window != nil {
		window.SetTitle(title + " - " + s)
	}
}

// EndRendering presents the back buffer.
func EndRendering() {
	window.GLSwap()
}
