// SPDX-License-Identifier: GPL-2.0-or-later

// Package cbuf buffers console text and runs it line by line.
package cbuf

import (
	"godoom/conlog"
)

// Efunc tries to run a line and reports whether it knew the command.
type Efunc func(*CommandBuffer, Arguments) (bool, error)

type CommandBuffer struct {
	buf string
	// causes the following commands to be executed one frame later
	wait      bool
	executors []Efunc
}

func (c *CommandBuffer) SetCommandExecutors(e []Efunc) {
	c.executors = e
}

// Wait stops Execute after the current line.
func (c *CommandBuffer) Wait() {
	c.wait = true
}

func (c *CommandBuffer) AddText(text string) {
	c.buf += text
}

func (c *CommandBuffer) InsertText(text string) {
	c.buf = text + "\n" + c.buf
}

// Empty reports whether no text is left.
func (c *CommandBuffer) Empty() bool {
	return len(c.buf) == 0
}

func (c *CommandBuffer) nextLine() string {
	i := 0
	quote := false
LineLoop:
	for ; i < len(c.buf); i++ {
		switch c.buf[i] {
		case '"':
			quote = !quote
		case ';':
			if !quote {
				break LineLoop
			}
		case '\n':
			break LineLoop
		}
	}
	// do not put ';' or '\n' in line
	line := c.buf[:i]
	// but remove this char as well
	if i < len(c.buf) {
		i++
	}
	c.buf = c.buf[i:]
	return line
}

// Execute runs the buffered lines until the buffer is empty or a wait
// command was seen. Errors of single lines are logged, not returned.
func (c *CommandBuffer) Execute() {
	for len(c.buf) != 0 {
		line := c.nextLine()
		if err := c.execute(line); err != nil {
			conlog.Warnf("%s: %v", line, err)
		}
		if c.wait {
			// wait for the next frame to continue executing
			c.wait = false
			return
		}
	}
}

func (c *CommandBuffer) execute(s string) error {
	a := Parse(s)
	args := a.Args()
	if len(args) == 0 {
		return nil // no tokens
	}
	if args[0].String() == "wait" {
		c.wait = true
		return nil
	}
	for _, e := range c.executors {
		if ok, err := e(c, a); err != nil {
			return err
		} else if ok {
			return nil
		}
	}
	conlog.Printf("Unknown command \"%s\"\n", args[0].String())
	return nil
}
