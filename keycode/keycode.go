// SPDX-License-Identifier: GPL-2.0-or-later

// Package keycode names the keys the viewer can bind. Printable keys use
// their lower case ASCII value.
package keycode

import (
	"github.com/veandco/go-sdl2/sdl"
)

type KeyCode int

const (
	NONE       KeyCode = 0
	TAB        KeyCode = 9
	ENTER      KeyCode = 13
	ESCAPE     KeyCode = 27
	SPACE      KeyCode = 32
	BACKSPACE  KeyCode = 127
	UPARROW    KeyCode = 128
	DOWNARROW  KeyCode = 129
	LEFTARROW  KeyCode = 130
	RIGHTARROW KeyCode = 131
	ALT        KeyCode = 132
	CTRL       KeyCode = 133
	SHIFT      KeyCode = 134
	F1         KeyCode = 135
	F2         KeyCode = 136
	F3         KeyCode = 137
	F4         KeyCode = 138
	F5         KeyCode = 139
	F6         KeyCode = 140
	F7         KeyCode = 141
	F8         KeyCode = 142
	F9         KeyCode = 143
	F10        KeyCode = 144
	F11        KeyCode = 145
	F12        KeyCode = 146
	INS        KeyCode = 147
	DEL        KeyCode = 148
	PGDN       KeyCode = 149
	PGUP       KeyCode = 150
	HOME       KeyCode = 151
	END        KeyCode = 152
	PAUSE      KeyCode = 255
)

var (
	s2k = map[string]KeyCode{
		"TAB":        TAB,
		"ENTER":      ENTER,
		"ESCAPE":     ESCAPE,
		"SPACE":      SPACE,
		"BACKSPACE":  BACKSPACE,
		"UPARROW":    UPARROW,
		"DOWNARROW":  DOWNARROW,
		"LEFTARROW":  LEFTARROW,
		"RIGHTARROW": RIGHTARROW,

		"ALT":   ALT,
		"CTRL":  CTRL,
		"SHIFT": SHIFT,

		"F1":  F1,
		"F2":  F2,
		"F3":  F3,
		"F4":  F4,
		"F5":  F5,
		"F6":  F6,
		"F7":  F7,
		"F8":  F8,
		"F9":  F9,
		"F10": F10,
		"F11": F11,
		"F12": F12,

		"INS":  INS,
		"DEL":  DEL,
		"PGDN": PGDN,
		"PGUP": PGUP,
		"HOME": HOME,
		"END":  END,

		"PAUSE": PAUSE,

		"SEMICOLON": ';', // a raw semicolon separates assignments
	}
	k2s = reverseMap(s2k)

	// by scancode so the physical key position counts, not its layout
	scancodes = map[sdl.Scancode]KeyCode{
		sdl.SCANCODE_TAB:       TAB,
		sdl.SCANCODE_RETURN:    ENTER,
		sdl.SCANCODE_RETURN2:   ENTER,
		sdl.SCANCODE_KP_ENTER:  ENTER,
		sdl.SCANCODE_ESCAPE:    ESCAPE,
		sdl.SCANCODE_SPACE:     SPACE,
		sdl.SCANCODE_BACKSPACE: BACKSPACE,
		sdl.SCANCODE_UP:        UPARROW,
		sdl.SCANCODE_DOWN:      DOWNARROW,
		sdl.SCANCODE_LEFT:      LEFTARROW,
		sdl.SCANCODE_RIGHT:     RIGHTARROW,
		sdl.SCANCODE_LALT:      ALT,
		sdl.SCANCODE_RALT:      ALT,
		sdl.SCANCODE_LCTRL:     CTRL,
		sdl.SCANCODE_RCTRL:     CTRL,
		sdl.SCANCODE_LSHIFT:    SHIFT,
		sdl.SCANCODE_RSHIFT:    SHIFT,
		sdl.SCANCODE_F1:        F1,
		sdl.SCANCODE_F2:        F2,
		sdl.SCANCODE_F3:        F3,
		sdl.SCANCODE_F4:        F4,
		sdl.SCANCODE_F5:        F5,
		sdl.SCANCODE_F6:        F6,
		sdl.SCANCODE_F7:        F7,
		sdl.SCANCODE_F8:        F8,
		sdl.SCANCODE_F9:        F9,
		sdl.SCANCODE_F10:       F10,
		sdl.SCANCODE_F11:       F11,
		sdl.SCANCODE_F12:       F12,
		sdl.SCANCODE_INSERT:    INS,
		sdl.SCANCODE_DELETE:    DEL,
		sdl.SCANCODE_PAGEDOWN:  PGDN,
		sdl.SCANCODE_PAGEUP:    PGUP,
		sdl.SCANCODE_HOME:      HOME,
		sdl.SCANCODE_END:       END,
		sdl.SCANCODE_PAUSE:     PAUSE,
		sdl.SCANCODE_MINUS:     '-',
		sdl.SCANCODE_EQUALS:    '=',
		sdl.SCANCODE_SEMICOLON: ';',
		sdl.SCANCODE_COMMA:     ',',
		sdl.SCANCODE_PERIOD:    '.',
		sdl.SCANCODE_SLASH:     '/',
		sdl.SCANCODE_GRAVE:     '`',
	}
)

func reverseMap(m map[string]KeyCode) map[KeyCode]string {
	r := make(map[KeyCode]string)
	for k, v := range m {
		r[v] = k
	}
	return r
}

func KeyToString(k KeyCode) string {
	if k == -1 {
		return "<KEY NOT FOUND>"
	}
	if k > 32 && k < 127 && k != ';' {
		return string(rune(k))
	}
	s, ok := k2s[k]
	if ok {
		return s
	}
	return "<UNKNOWN KEYNUM>"
}

func StringToKey(s string) KeyCode {
	if len(s) == 0 {
		return -1
	}
	if len(s) == 1 {
		return KeyCode(s[0])
	}
	v, ok := s2k[s]
	if ok {
		return v
	}
	return -1
}

// FromScancode maps the physical key to a KeyCode, NONE if it is not
// bindable.
func FromScancode(sc sdl.Scancode) KeyCode {
	switch {
	case sc >= sdl.SCANCODE_A && sc <= sdl.SCANCODE_Z:
		return KeyCode('a' + int(sc-sdl.SCANCODE_A))
	case sc >= sdl.SCANCODE_1 && sc <= sdl.SCANCODE_9:
		return KeyCode('1' + int(sc-sdl.SCANCODE_1))
	case sc == sdl.SCANCODE_0:
		return '0'
	}
	if k, ok := scancodes[sc]; ok {
		return k
	}
	return NONE
}
