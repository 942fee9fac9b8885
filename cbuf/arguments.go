// SPDX-License-Identifier: GPL-2.0-or-later

package cbuf

import (
	"strconv"
	"strings"
	"unicode"
)

type QArg struct {
	a string
}

func (a QArg) String() string {
	return a.a
}

func (a QArg) Int() int {
	r, err := strconv.ParseInt(a.a, 10, 0)
	if err != nil {
		return 0
	}
	return int(r)
}

func (a QArg) Float32() float32 {
	r, err := strconv.ParseFloat(a.a, 32)
	if err != nil {
		return 0
	}
	return float32(r)
}

func (a QArg) Bool() bool {
	switch a.a {
	case "1", "t", "T", "true", "TRUE", "True", "On", "ON", "on":
		return true
	default:
		return false
	}
}

type Arguments struct {
	// each arg on its own
	args []QArg
	// the trimmed line
	full string
}

func (c *Arguments) Argv(i int) QArg {
	if i < 0 || i >= len(c.args) {
		return QArg{""}
	}
	return c.args[i]
}

func (c *Arguments) Full() string {
	return c.full
}

func (c *Arguments) Args() []QArg {
	return c.args
}

// Strings returns the plain argument values.
func (c *Arguments) Strings() []string {
	r := make([]string, len(c.args))
	for i, a := range c.args {
		r[i] = a.a
	}
	return r
}

func (c *Arguments) ArgumentString() string {
	// args[0] is the cmd
	if len(c.args) < 2 {
		return ""
	}
	r := strings.TrimPrefix(c.full, c.args[0].String())
	r = strings.TrimLeftFunc(r, unicode.IsSpace)
	// the result should not start with " or space
	if len(r) > 1 && r[0] == '"' {
		r = strings.Trim(r, "\"\t\n\v\f\r ")
	}
	return r
}

// Message returns the text after the second argument.
func (c *Arguments) Message() string {
	if len(c.args) < 3 {
		return ""
	}
	t := c.args[1].String()
	return c.full[strings.Index(c.full, t)+len(t)+1:]
}

func isSpace(r byte) bool {
	return r == ' ' || r == '\t'
}

// Parse splits one command line into words. Double quotes group words and
// are removed, "//" starts a comment.
func Parse(s string) (args Arguments) {
	args.full = strings.TrimFunc(s, unicode.IsSpace)
	args.args = []QArg{}

	in := args.full
	for i := 0; i < len(in); {
		switch c := in[i]; {
		case isSpace(c):
			i++
		case c == '\r' || c == '\n':
			return
		case c == '/' && i+1 < len(in) && in[i+1] == '/':
			return
		case c == '"':
			end := strings.IndexAny(in[i+1:], "\"\n")
			if end < 0 || in[i+1+end] != '"' {
				// unterminated string
				return
			}
			args.args = append(args.args, QArg{in[i+1 : i+1+end]})
			i += end + 2
		default:
			start := i
			for i < len(in) && in[i] > ' ' && in[i] != '"' {
				i++
			}
			args.args = append(args.args, QArg{in[start:i]})
		}
	}
	return
}
