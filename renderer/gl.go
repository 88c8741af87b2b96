package renderer

// ShaderKind identifies a programmable pipeline stage.
type ShaderKind int

const (
	VertexShader ShaderKind = iota
	FragmentShader
)

func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// Primitive is the topology passed to DrawElements.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
)

// GL is the subset of the OpenGL API the renderer talks to. The production
// implementation lives in the glcore package; tests use a recording fake.
// Locations follow the GL convention: -1 means the name was not found.
type GL interface {
	CreateShader(kind ShaderKind) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform1i(location int32, v int32)
	UniformMatrix4fv(location int32, m *[16]float32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BindArrayBuffer(buffer uint32)
	BindElementBuffer(buffer uint32)
	ArrayBufferData(data []float32)
	ElementBufferData(data []uint32)
	DeleteBuffer(buffer uint32)

	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32)
	DrawElements(mode Primitive, count int32)

	ClearColor(r, g, b, a float32)
	DisableDepthTest()
	Viewport(x, y, width, height int32)
	Clear()
	ReadPixels(width, height int, pixels []byte)
}

// Device pairs a GL implementation with the state that GL itself treats as
// context-global, such as the currently bound program. Every ShaderProgram
// created on the same context must share one Device.
type Device struct {
	GL     GL
	active uint32
}

func NewDevice(gl GL) *Device {
	return &Device{GL: gl}
}

// useProgram binds program unless it is already bound.
func (d *Device) useProgram(program uint32) {
	if d.active == program {
		return
	}
	d.GL.UseProgram(program)
	d.active = program
}

// ActiveProgram returns the program most recently bound through this device, or 0.
func (d *Device) ActiveProgram() uint32 {
	return d.active
}

// forget clears the active binding if it refers to program.
func (d *Device) forget(program uint32) {
	if d.active == program {
		d.active = 0
	}
}
