// SPDX-License-Identifier: GPL-2.0-or-later

// Package portal describes the views a surface can open into another part
// of the level (or into a different level region altogether).
package portal

import "fmt"

type Flags uint8

const (
	// Hidden portals keep their surface but are never rendered through.
	Hidden Flags = 1 << iota
	// NoRender portals draw their surface as if there were no portal.
	NoRender
)

// Camera is a viewpoint in level space.
type Camera struct {
	X, Y, Z float32
	Angle   float32 // radians
	Pitch   float32 // radians, positive looks up
	Group   int
}

// Common holds the attributes every portal kind carries.
type Common struct {
	ID    int
	Flags Flags
}

func (c *Common) common() *Common {
	return c
}

// Portal is one of *Skybox, *Anchored, *TwoWay, *Linked, *Horizon or *Plane.
type Portal interface {
	common() *Common
}

// Skybox shows the level from a fixed camera. Only the view angle follows
// the viewer.
type Skybox struct {
	Common
	Camera Camera
}

// Anchored shows the level through a fixed transform. Used for mirrors and
// fake rooms.
type Anchored struct {
	Common
	Transform Transform
}

// TwoWay is an anchored portal whose partner carries the inverse transform.
type TwoWay struct {
	Common
	Transform Transform
	Partner   *TwoWay
}

// Linked joins two coordinate groups seamlessly. The view is only followed
// while the viewer is on the correct side of PlaneZ (or the portal line).
type Linked struct {
	Common
	Transform Transform
	FromGroup int
	ToGroup   int
	PlaneZ    float32
}

// Horizon draws floor and ceiling planes out to the horizon.
type Horizon struct {
	Common
	FloorPic   string
	CeilingPic string
	FloorZ     float32
	CeilingZ   float32
	Light      int
}

// Plane draws a single infinite plane.
type Plane struct {
	Common
	Pic   string
	Z     float32
	Light int
}

func IDOf(p Portal) int {
	return p.common().ID
}

func FlagsOf(p Portal) Flags {
	return p.common().Flags
}

// Visible reports whether a view should be rendered through p.
func Visible(p Portal) bool {
	return p != nil && p.common().Flags&(Hidden|NoRender) == 0
}

// Name returns a short label for logging.
func Name(p Portal) string {
	var kind string
	switch p.(type) {
	case *Skybox:
		kind = "skybox"
	case *Anchored:
		kind = "anchored"
	case *TwoWay:
		kind = "twoway"
	case *Linked:
		kind = "linked"
	case *Horizon:
		kind = "horizon"
	case *Plane:
		kind = "plane"
	case nil:
		return "none"
	default:
		kind = "unknown"
	}
	return fmt.Sprintf("%s#%d", kind, p.common().ID)
}
