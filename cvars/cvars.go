// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"godoom/conlog"
	"godoom/cvar"
)

var (
	Developer      *cvar.Cvar
	Fov            *cvar.Cvar
	HostMaxFps     *cvar.Cvar
	MoveSpeed      *cvar.Cvar
	RDrawNodes     *cvar.Cvar
	RMaxWindows    *cvar.Cvar
	RNoPortals     *cvar.Cvar
	RPortalDepth   *cvar.Cvar
	RPortalOverlay *cvar.Cvar
	RSpeeds        *cvar.Cvar
	TurnSpeed      *cvar.Cvar
	VideoHeight    *cvar.Cvar
	VideoScale     *cvar.Cvar
	VideoWidth     *cvar.Cvar
)

func init() {
	Developer = cvar.MustRegister("developer", "0", cvar.NONE)
	Fov = cvar.MustRegister("fov", "90", cvar.ARCHIVE)
	HostMaxFps = cvar.MustRegister("host_maxfps", "72", cvar.ARCHIVE)
	MoveSpeed = cvar.MustRegister("cl_movespeed", "320", cvar.ARCHIVE)
	RDrawNodes = cvar.MustRegister("r_drawnodes", "0", cvar.NONE)
	RMaxWindows = cvar.MustRegister("r_maxwindows", "128", cvar.NONE)
	RNoPortals = cvar.MustRegister("r_noportals", "0", cvar.NONE)
	RPortalDepth = cvar.MustRegister("r_portaldepth", "6", cvar.NONE)
	RPortalOverlay = cvar.MustRegister("r_portaloverlay", "0", cvar.NONE)
	RSpeeds = cvar.MustRegister("r_speeds", "0", cvar.NONE)
	TurnSpeed = cvar.MustRegister("cl_turnspeed", "160", cvar.ARCHIVE)
	VideoHeight = cvar.MustRegister("vid_height", "400", cvar.ARCHIVE)
	VideoScale = cvar.MustRegister("vid_scale", "2", cvar.ARCHIVE)
	VideoWidth = cvar.MustRegister("vid_width", "640", cvar.ARCHIVE)

	Developer.SetCallback(func(cv *cvar.Cvar) {
		conlog.SetDeveloper(cv.Bool())
	})
}
