// SPDX-License-Identifier: GPL-2.0-or-later

// Package glh wraps the few GL objects needed to show a software rendered
// frame. Objects are released on the main thread once unreachable.
package glh

import (
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gopxl/mainthread/v2"
	"github.com/pkg/errors"

	"godoom/conlog"
)

type Program struct {
	prog uint32
}

// NewProgram compiles and links a vertex and a fragment shader. The
// sources must be NUL terminated.
func NewProgram(vertex, fragment string) (*Program, error) {
	vert, err := compile(vertex, gl.VERTEX_SHADER)
	if err != nil {
		return nil, errors.Wrap(err, "vertex shader")
	}
	defer gl.DeleteShader(vert)
	frag, err := compile(fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, errors.Wrap(err, "fragment shader")
	}
	defer gl.DeleteShader(frag)

	p := &Program{prog: gl.CreateProgram()}
	gl.AttachShader(p.prog, vert)
	gl.AttachShader(p.prog, frag)
	gl.LinkProgram(p.prog)
	var status int32
	gl.GetProgramiv(p.prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := infoLog(p.prog, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(p.prog)
		return nil, errors.Errorf("failed to link program: %v", log)
	}
	runtime.AddCleanup(p, deleteProgram, p.prog)
	return p, nil
}

func deleteProgram(p uint32) {
	mainthread.CallNonBlock(func() {
		gl.DeleteProgram(p)
	})
}

func (p *Program) Use() {
	gl.UseProgram(p.prog)
}

// Uniform returns the location of the named uniform, -1 if the linker
// dropped it.
func (p *Program) Uniform(n string) int32 {
	l := gl.GetUniformLocation(p.prog, gl.Str(n+"\x00"))
	if l < 0 {
		conlog.DPrintf("uniform %s not found\n", n)
	}
	return l
}

// VertexBuffer holds interleaved float32 vertex attributes.
type VertexBuffer struct {
	buf uint32
}

func NewVertexBuffer() *VertexBuffer {
	b := &VertexBuffer{}
	gl.GenBuffers(1, &b.buf)
	runtime.AddCleanup(b, deleteBuffer, b.buf)
	return b
}

func deleteBuffer(buf uint32) {
	mainthread.CallNonBlock(func() {
		gl.DeleteBuffers(1, &buf)
	})
}

func (b *VertexBuffer) Bind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.buf)
}

// Upload binds the buffer and replaces its content.
func (b *VertexBuffer) Upload(data []float32) {
	b.Bind()
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(data), gl.Ptr(data), gl.STATIC_DRAW)
}

type VertexArray struct {
	a uint32
}

func NewVertexArray() *VertexArray {
	va := &VertexArray{}
	gl.GenVertexArrays(1, &va.a)
	runtime.AddCleanup(va, deleteVertexArray, va.a)
	return va
}

func deleteVertexArray(va uint32) {
	mainthread.CallNonBlock(func() {
		gl.DeleteVertexArrays(1, &va)
	})
}

func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.a)
}

// Float2 describes attribute index as two floats at offset floats into a
// vertex of stride floats. The array and the buffer must be bound.
func (va *VertexArray) Float2(index uint32, stride, offset int) {
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointerWithOffset(index, 2, gl.FLOAT, false, int32(4*stride), uintptr(4*offset))
}

func compile(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(src)
	defer free()
	length := int32(len(src))
	gl.ShaderSource(shader, 1, csource, &length)
	gl.CompileShader(shader)
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		return 0, errors.Errorf("failed to compile: %v", log)
	}
	return shader, nil
}

// infoLog reads the compile or link log of a shader or program.
func infoLog(id uint32, get func(uint32, uint32, *int32), read func(uint32, int32, *int32, *uint8)) string {
	var n int32
	get(id, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	read(id, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}
