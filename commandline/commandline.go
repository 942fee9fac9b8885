package commandline

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var (
	developer  bool
	fullscreen bool
	noPortals  bool

	dump = boolInt{false, 0}

	fov    int
	height int
	width  int

	mapName string
	wadFile string

	sets setList
)

type boolInt struct {
	set bool
	num int
}

func (b *boolInt) IsBoolFlag() bool {
	// We can not support both "-flag" and "-flag 10"
	// This allows "-flag", and "-flag=10"
	// and also "-flag=true" and "-flag=false"
	// but not "-flag 10"
	return true
}

func (b *boolInt) Set(s string) error {
	v, err := strconv.ParseInt(s, 0, strconv.IntSize)
	if err != nil {
		v, err := strconv.ParseBool(s)
		b.set = v
		return err
	}
	b.set = true
	b.num = int(v)
	return nil
}

func (b *boolInt) String() string {
	return fmt.Sprintf("Set: %v, Num: %v", b.set, b.num)
}

// Assignment is one "-set name=value" pair.
type Assignment struct {
	Name  string
	Value string
}

type setList []Assignment

func (s *setList) Set(v string) error {
	name, value, ok := strings.Cut(v, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", v)
	}
	*s = append(*s, Assignment{Name: name, Value: value})
	return nil
}

func (s *setList) String() string {
	var b strings.Builder
	for i, a := range *s {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%s", a.Name, a.Value)
	}
	return b.String()
}

func init() {
	flag.BoolVar(&developer, "developer", false, "enable debug logging")
	flag.BoolVar(&fullscreen, "f", false, "")
	flag.BoolVar(&fullscreen, "fullscreen", false, "")
	flag.BoolVar(&noPortals, "noportals", false, "do not spawn portals from line specials")

	flag.Var(&dump, "dump", "dump frames on F12, optional frame number to dump automatically")
	flag.Var(&sets, "set", "set a console variable, name=value (repeatable)")

	flag.IntVar(&fov, "fov", -1, "horizontal field of view in degrees, negative is unset")
	flag.IntVar(&height, "height", -1, "window height, negative is unset")
	flag.IntVar(&width, "width", -1, "window width, negative is unset")

	flag.StringVar(&mapName, "map", "MAP01", "map marker to load")
	flag.StringVar(&wadFile, "wad", "", "IWAD or PWAD to load the map from")
}

func Developer() bool {
	return developer
}

func Fullscreen() bool {
	return fullscreen
}

func NoPortals() bool {
	return noPortals
}

// Dump reports whether frame dumping is enabled.
func Dump() bool {
	return dump.set
}

// DumpFrame returns the frame number to dump automatically, 0 if none.
func DumpFrame() int {
	if !dump.set {
		return 0
	}
	return dump.num
}

func Fov() int {
	return fov
}

func Height() int {
	return height
}

func Width() int {
	return width
}

func Map() string {
	return mapName
}

func Wad() string {
	return wadFile
}

// Assignments returns the "-set" pairs in command line order.
func Assignments() []Assignment {
	return sets
}
