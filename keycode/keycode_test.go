// SPDX-License-Identifier: GPL-2.0-or-later

package keycode

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestKeyToString(t *testing.T) {
	tests := []struct {
		key KeyCode
		str string
	}{
		{TAB, "TAB"},
		{PAUSE, "PAUSE"},
		{0x30, "0"},
		{0x3B, "SEMICOLON"},
		{0x41, "A"},
		{0x60, "`"},
		{0x61, "a"},
		{0x7E, "~"},
		{0x7F, "BACKSPACE"},
		{0x80, "UPARROW"},
		{F12, "F12"},
		{-1, "<KEY NOT FOUND>"},
		{200, "<UNKNOWN KEYNUM>"},
	}
	for _, test := range tests {
		if got := KeyToString(test.key); got != test.str {
			t.Errorf("KeyToString(%d) = %s; want %s", test.key, got, test.str)
		}
	}
}

func TestStringToKey(t *testing.T) {
	tests := []struct {
		key KeyCode
		str string
	}{
		{TAB, "TAB"},
		{PAUSE, "PAUSE"},
		{0x30, "0"},
		{0x3B, ";"},
		{0x3B, "SEMICOLON"},
		{0x41, "A"},
		{0x60, "`"},
		{0x61, "a"},
		{0x7E, "~"},
		{0x7F, "BACKSPACE"},
		{0x80, "UPARROW"},
		{-1, ""},
		{-1, "NOPE"},
	}
	for _, test := range tests {
		if got := StringToKey(test.str); got != test.key {
			t.Errorf("StringToKey(%s) = %d; want %d", test.str, got, test.key)
		}
	}
}

func TestFromScancode(t *testing.T) {
	tests := []struct {
		sc  sdl.Scancode
		key KeyCode
	}{
		{sdl.SCANCODE_A, 'a'},
		{sdl.SCANCODE_W, 'w'},
		{sdl.SCANCODE_Z, 'z'},
		{sdl.SCANCODE_1, '1'},
		{sdl.SCANCODE_9, '9'},
		{sdl.SCANCODE_0, '0'},
		{sdl.SCANCODE_UP, UPARROW},
		{sdl.SCANCODE_RSHIFT, SHIFT},
		{sdl.SCANCODE_F11, F11},
		{sdl.SCANCODE_KP_ENTER, ENTER},
		{sdl.SCANCODE_CAPSLOCK, NONE},
	}
	for _, test := range tests {
		if got := FromScancode(test.sc); got != test.key {
			t.Errorf("FromScancode(%d) = %s; want %s", test.sc, KeyToString(got), KeyToString(test.key))
		}
	}
}
