package main

import (
	"flag"
	"os"
	"strconv"

	"godoom/commandline"
	"godoom/conlog"
	"godoom/cvar"
	"godoom/cvars"
	"godoom/host"
)

func main() {
	flag.Parse()
	conlog.SetDeveloper(commandline.Developer())

	for _, a := range commandline.Assignments() {
		if err := cvar.Set(a.Name, a.Value); err != nil {
			conlog.Warnf("-set %s: %v", a.Name, err)
		}
	}
	if v := commandline.Fov(); v > 0 {
		cvars.Fov.SetValue(float32(v))
	}
	if v := commandline.Width(); v > 0 {
		cvars.VideoWidth.SetByString(strconv.Itoa(v))
	}
	if v := commandline.Height(); v > 0 {
		cvars.VideoHeight.SetByString(strconv.Itoa(v))
	}

	cfg := host.Config{
		Map:       commandline.Map(),
		NoPortals: commandline.NoPortals(),
		DumpFrame: commandline.DumpFrame(),
	}
	if w := commandline.Wad(); w != "" {
		cfg.Wads = []string{w}
	} else {
		cfg.Map = host.DemoMap
	}
	if err := host.Run(cfg, commandline.Fullscreen()); err != nil {
		conlog.Errorf("%v", err)
		os.Exit(1)
	}
}
