// SPDX-License-Identifier: GPL-2.0-or-later
package glh

import (
	"image"
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gopxl/mainthread/v2"
)

// Texture2D is an RGBA texture sized by the last uploaded image.
type Texture2D struct {
	id            uint32
	width, height int
}

func NewTexture2D() *Texture2D {
	t := &Texture2D{}
	gl.GenTextures(1, &t.id)
	t.Bind()
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	runtime.AddCleanup(t, deleteTexture, t.id)
	return t
}

func deleteTexture(id uint32) {
	mainthread.CallNonBlock(func() {
		gl.DeleteTextures(1, &id)
	})
}

func (t *Texture2D) Bind() {
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Upload replaces the texture content by img. The texture must be bound.
func (t *Texture2D) Upload(img *image.RGBA) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	if w != t.width || h != t.height {
		t.width, t.height = w, h
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
}
