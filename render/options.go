package render

import (
	"godoom/cvars"
)

type Options struct {
	Width  int
	Height int
	// FOV is the horizontal field of view in degrees.
	FOV            float32
	MaxWindows     int
	MaxPortalDepth int
	// NoPortals draws portal surfaces as plain walls and planes.
	NoPortals bool
	// PortalOverlay does not follow linked portals but reports their
	// windows as overlays.
	PortalOverlay bool
	// DrawNodes records the partition line of every visited node.
	DrawNodes bool

	// NetPoll is called after the base traversal and before planes are
	// finished.
	NetPoll  func()
	Override SectorOverride
	// TextureHeight returns the height of a wall texture for pegging.
	TextureHeight func(name string) float32
}

const (
	DefaultMaxWindows     = 128
	DefaultMaxPortalDepth = 6
)

func DefaultOptions() Options {
	return Options{
		Width:          640,
		Height:         400,
		FOV:            90,
		MaxWindows:     DefaultMaxWindows,
		MaxPortalDepth: DefaultMaxPortalDepth,
	}
}

// OptionsFromCvars snapshots the renderer cvars.
func OptionsFromCvars() Options {
	o := DefaultOptions()
	o.Width = int(cvars.VideoWidth.Value())
	o.Height = int(cvars.VideoHeight.Value())
	o.FOV = cvars.Fov.Value()
	o.MaxWindows = int(cvars.RMaxWindows.Value())
	o.MaxPortalDepth = int(cvars.RPortalDepth.Value())
	o.NoPortals = cvars.RNoPortals.Bool()
	o.PortalOverlay = cvars.RPortalOverlay.Bool()
	o.DrawNodes = cvars.RDrawNodes.Bool()
	return o
}

func (o *Options) normalize() {
	if o.Width < 1 {
		o.Width = 1
	}
	if o.Height < 1 {
		o.Height = 1
	}
	if o.MaxWindows < 0 {
		o.MaxWindows = 0
	}
	if o.MaxPortalDepth < 0 {
		o.MaxPortalDepth = 0
	}
	if o.Override == nil {
		o.Override = NoOverride{}
	}
	if o.TextureHeight == nil {
		o.TextureHeight = func(string) float32 { return 128 }
	}
}
