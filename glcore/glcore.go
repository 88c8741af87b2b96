// Package glcore implements renderer.GL on top of the OpenGL 4.1 core profile.
package glcore

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/raymarcher/renderer"
)

var glInitOnce sync.Once

// Init loads the OpenGL function pointers. A context must be current on the
// calling thread.
func Init() error {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	return nil
}

// Version returns the GL_VERSION string of the current context.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// GL is the go-gl implementation of renderer.GL.
type GL struct{}

var _ renderer.GL = GL{}

func shaderType(kind renderer.ShaderKind) uint32 {
	if kind == renderer.FragmentShader {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func primitiveMode(p renderer.Primitive) uint32 {
	if p == renderer.TriangleStrip {
		return gl.TRIANGLE_STRIP
	}
	return gl.TRIANGLES
}

func (GL) CreateShader(kind renderer.ShaderKind) uint32 {
	return gl.CreateShader(shaderType(kind))
}

func (GL) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (GL) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (GL) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (GL) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
	return logText
}

func (GL) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (GL) CreateProgram() uint32 { return gl.CreateProgram() }

func (GL) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (GL) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (GL) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (GL) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return logText
}

func (GL) UseProgram(program uint32) { gl.UseProgram(program) }

func (GL) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (GL) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (GL) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (GL) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (GL) Uniform1i(location int32, v int32) { gl.Uniform1i(location, v) }

func (GL) UniformMatrix4fv(location int32, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (GL) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (GL) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (GL) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (GL) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (GL) BindArrayBuffer(buffer uint32) { gl.BindBuffer(gl.ARRAY_BUFFER, buffer) }

func (GL) BindElementBuffer(buffer uint32) { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buffer) }

func (GL) ArrayBufferData(data []float32) {
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (GL) ElementBufferData(data []uint32) {
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (GL) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (GL) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (GL) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (GL) VertexAttribPointer(index uint32, size int32) {
	gl.VertexAttribPointer(index, size, gl.FLOAT, false, 0, gl.PtrOffset(0))
}

func (GL) DrawElements(mode renderer.Primitive, count int32) {
	gl.DrawElements(primitiveMode(mode), count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (GL) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (GL) DisableDepthTest() { gl.Disable(gl.DEPTH_TEST) }

func (GL) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (GL) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT) }

func (GL) ReadPixels(width, height int, pixels []byte) {
	if len(pixels) < width*height*4 {
		return
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}
