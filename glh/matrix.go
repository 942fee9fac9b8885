// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// SetMatrix loads m into the mat4 uniform at id. mgl32 is column major
// like GL, so no transpose is needed.
func SetMatrix(id int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(id, 1, false, &m[0])
}

// Letterbox returns the matrix fitting a frame of fw*fh pixels into a
// window of ww*wh pixels, keeping the aspect ratio, in clip space of a
// unit quad spanning [-1, 1].
func Letterbox(fw, fh, ww, wh int) mgl32.Mat4 {
	if fw <= 0 || fh <= 0 || ww <= 0 || wh <= 0 {
		return mgl32.Ident4()
	}
	frame := float32(fw) / float32(fh)
	win := float32(ww) / float32(wh)
	if frame > win {
		return mgl32.Scale3D(1, win/frame, 1)
	}
	return mgl32.Scale3D(frame/win, 1, 1)
}
