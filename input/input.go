// SPDX-License-Identifier: GPL-2.0-or-later

// package input handles button event tracking
package input

import (
	"sort"

	kc "godoom/keycode"

	"github.com/pkg/errors"
)

type button struct {
	// keys holding it down, can handle 2 keys with the same action
	holdingDown [2]kc.KeyCode
	down        bool
	impulseDown bool
	impulseUp   bool
}

var (
	Left      button
	Right     button
	Forward   button
	Back      button
	LookUp    button
	LookDown  button
	MoveLeft  button
	MoveRight button
	Up        button
	Down      button
	Speed     button
)

var actions = map[string]*button{
	"+left":      &Left,
	"+right":     &Right,
	"+forward":   &Forward,
	"+back":      &Back,
	"+lookup":    &LookUp,
	"+lookdown":  &LookDown,
	"+moveleft":  &MoveLeft,
	"+moveright": &MoveRight,
	"+moveup":    &Up,
	"+movedown":  &Down,
	"+speed":     &Speed,
}

var bindings = map[kc.KeyCode]*button{}

func (b button) Down() bool {
	return b.down
}

func (b *button) WentDown() bool {
	// return down + impulse down
	// reset impulse down
	r := b.down || b.impulseDown
	b.impulseDown = false
	return r
}

// Returns 0.25 if a button was pressed and released during the frame,
// 0.5 if it was pressed and held
// 0 if held then released, and
// 1 if held for the entire time
func (b button) GetImpulse() float32 {
	if b.impulseDown && b.impulseUp {
		if b.down {
			return 0.75
		}
		return 0.25
	}
	if !b.impulseDown && !b.impulseUp {
		if b.down {
			return 1
		}
		return 0
	}
	if b.impulseUp && !b.impulseDown {
		return 0
	}
	if b.impulseDown && !b.impulseUp {
		if b.down {
			return 0.5
		}
		return 0
	}
	return 0 // unreachable
}

func (b *button) ResetImpulse() {
	b.impulseDown = false
	b.impulseUp = false
}

func (b *button) ConsumeImpulse() float32 {
	i := b.GetImpulse()
	b.ResetImpulse()
	return i
}

func (b *button) upKey(k kc.KeyCode) {
	if b.holdingDown[0] == k {
		b.holdingDown[0] = 0
	} else if b.holdingDown[1] == k {
		b.holdingDown[1] = 0
	} else {
		return
	}
	if b.holdingDown[0] != 0 || b.holdingDown[1] != 0 {
		// some other key is still holding it down
		return
	}
	if !b.down {
		return
	}
	b.down = false
	b.impulseUp = true
}

func (b *button) downKey(k kc.KeyCode) {
	if b.holdingDown[0] == k || b.holdingDown[1] == k {
		// key repeat
		return
	}
	if b.holdingDown[0] == 0 {
		b.holdingDown[0] = k
	} else if b.holdingDown[1] == 0 {
		b.holdingDown[1] = k
	} else {
		return
	}
	if b.down {
		return
	}
	b.down = true
	b.impulseDown = true
}

func (b *button) release() {
	b.holdingDown = [2]kc.KeyCode{}
	if b.down {
		b.down = false
		b.impulseUp = true
	}
}

// Bind attaches the key to the button named by action, e.g. "+forward".
func Bind(k kc.KeyCode, action string) error {
	b, ok := actions[action]
	if !ok {
		return errors.Errorf("unknown action %q", action)
	}
	if k <= 0 {
		return errors.Errorf("can not bind key %d", k)
	}
	bindings[k] = b
	return nil
}

func Unbind(k kc.KeyCode) {
	if b, ok := bindings[k]; ok {
		b.upKey(k)
		delete(bindings, k)
	}
}

// UnbindAll drops every binding and releases all buttons.
func UnbindAll() {
	for k := range bindings {
		delete(bindings, k)
	}
	for _, b := range actions {
		b.release()
		b.ResetImpulse()
	}
}

// Binding returns the action bound to k, "" if none.
func Binding(k kc.KeyCode) string {
	b, ok := bindings[k]
	if !ok {
		return ""
	}
	for n, a := range actions {
		if a == b {
			return n
		}
	}
	return ""
}

// BoundKeys lists the keys with a binding in key order.
func BoundKeys() []kc.KeyCode {
	r := make([]kc.KeyCode, 0, len(bindings))
	for k := range bindings {
		r = append(r, k)
	}
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return r
}

// Actions lists the bindable action names.
func Actions() []string {
	r := make([]string, 0, len(actions))
	for n := range actions {
		r = append(r, n)
	}
	sort.Strings(r)
	return r
}

// KeyEvent feeds a key transition and reports whether the key is bound.
func KeyEvent(k kc.KeyCode, down bool) bool {
	b, ok := bindings[k]
	if !ok {
		return false
	}
	if down {
		b.downKey(k)
	} else {
		b.upKey(k)
	}
	return true
}

// ReleaseAll lets go of every button, used when the window loses focus.
func ReleaseAll() {
	for _, b := range actions {
		b.release()
	}
}

// ResetImpulses clears the impulses of all buttons at the end of a frame.
func ResetImpulses() {
	for _, b := range actions {
		b.ResetImpulse()
	}
}

// DefaultBindings binds the arrow keys and WASD.
func DefaultBindings() {
	for _, d := range []struct {
		key    kc.KeyCode
		action string
	}{
		{kc.UPARROW, "+forward"},
		{kc.DOWNARROW, "+back"},
		{kc.LEFTARROW, "+left"},
		{kc.RIGHTARROW, "+right"},
		{'w', "+forward"},
		{'s', "+back"},
		{'a', "+moveleft"},
		{'d', "+moveright"},
		{kc.PGUP, "+lookup"},
		{kc.PGDN, "+lookdown"},
		{'e', "+moveup"},
		{'q', "+movedown"},
		{kc.SHIFT, "+speed"},
	} {
		// all actions are known
		_ = Bind(d.key, d.action)
	}
}
