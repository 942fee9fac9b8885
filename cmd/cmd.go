// SPDX-License-Identifier: GPL-2.0-or-later

// Package cmd holds the named console commands.
package cmd

import (
	"sort"
	"strings"

	"godoom/cbuf"
	"godoom/conlog"

	"github.com/pkg/errors"
)

type QFunc func(args cbuf.Arguments) error

type Commands map[string]QFunc

func New() *Commands {
	c := make(Commands)
	return &c
}

func (c *Commands) Add(name string, f QFunc) error {
	ln := strings.ToLower(name)
	if _, ok := (*c)[ln]; ok {
		return errors.Errorf("command %s already defined", ln)
	}
	(*c)[ln] = f
	return nil
}

func (c *Commands) Exists(cmdName string) bool {
	name := strings.ToLower(cmdName)
	_, ok := (*c)[name]
	return ok
}

func (c *Commands) List() []string {
	cmds := make([]string, 0, len(*c))
	for cmd := range *c {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)
	return cmds
}

// Execute returns the executor running the registered commands.
func (c *Commands) Execute() cbuf.Efunc {
	return func(_ *cbuf.CommandBuffer, a cbuf.Arguments) (bool, error) {
		n := a.Args()
		if len(n) == 0 {
			return false, nil
		}
		name := strings.ToLower(n[0].String())
		cmd, ok := (*c)[name]
		if !ok {
			return false, nil
		}
		return true, cmd(a)
	}
}

// RegisterList adds "cmdlist [prefix]".
func (c *Commands) RegisterList() error {
	return c.Add("cmdlist", func(a cbuf.Arguments) error {
		prefix := a.Argv(1).String()
		count := 0
		for _, n := range c.List() {
			if strings.HasPrefix(n, prefix) {
				conlog.Printf("  %s\n", n)
				count++
			}
		}
		if prefix == "" {
			conlog.Printf("%v commands\n", count)
		} else {
			conlog.Printf("%v commands beginning with \"%v\"\n", count, prefix)
		}
		return nil
	})
}

func Must(err error) {
	if err != nil {
		panic(err.Error())
	}
}
