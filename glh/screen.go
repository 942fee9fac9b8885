// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"image"

	"github.com/go-gl/gl/v4.6-core/gl"
)

const (
	screenVertex = `#version 330
layout (location = 0) in vec2 position;
layout (location = 1) in vec2 texcoord;
uniform mat4 transform;
out vec2 uv;
void main() {
	uv = texcoord;
	gl_Position = transform * vec4(position, 0.0, 1.0);
}
` + "\x00"

	screenFragment = `#version 330
in vec2 uv;
uniform sampler2D frame;
out vec4 color;
void main() {
	color = texture(frame, uv);
}
` + "\x00"
)

// Screen shows software rendered frames on a textured quad.
type Screen struct {
	prog      *Program
	vao       *VertexArray
	vbo       *VertexBuffer
	tex       *Texture2D
	transform int32
	frame     int32
}

// NewScreen needs a current GL context and must run on the main thread.
func NewScreen() (*Screen, error) {
	p, err := NewProgram(screenVertex, screenFragment)
	if err != nil {
		return nil, err
	}
	s := &Screen{
		prog:      p,
		vao:       NewVertexArray(),
		vbo:       NewVertexBuffer(),
		tex:       NewTexture2D(),
		transform: p.Uniform("transform"),
		frame:     p.Uniform("frame"),
	}
	// image rows go top down, texture rows bottom up
	quad := []float32{
		-1, -1, 0, 1,
		1, -1, 1, 1,
		-1, 1, 0, 0,
		1, 1, 1, 0,
	}
	s.vao.Bind()
	s.vbo.Upload(quad)
	s.vao.Float2(0, 4, 0)
	s.vao.Float2(1, 4, 2)
	return s, nil
}

// Draw uploads img and draws it letterboxed into a ww*wh window.
func (s *Screen) Draw(img *image.RGBA, ww, wh int) {
	gl.Viewport(0, 0, int32(ww), int32(wh))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	s.prog.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	s.tex.Bind()
	s.tex.Upload(img)
	gl.Uniform1i(s.frame, 0)
	SetMatrix(s.transform, Letterbox(img.Rect.Dx(), img.Rect.Dy(), ww, wh))
	s.vao.Bind()
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}
