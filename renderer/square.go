package renderer

// Drawable is geometry that ShaderProgram.Draw can render.
type Drawable interface {
	Create() error
	BindPos() bool
	BindIdx() bool
	DrawMode() Primitive
	ElemCount() int32
	Destroy()
}

// Square is a quad covering normalized device coordinates, drawn as two
// triangles so every pixel is rasterized once.
type Square struct {
	gl     GL
	center [3]float32

	vao      uint32
	bufPos   uint32
	bufIdx   uint32
	count    int32
	posBound bool
	idxBound bool
}

// NewSquare returns an unallocated quad. Only the z component of center is
// used; the quad always spans x and y in [-1, 1].
func NewSquare(gl GL, center [3]float32) *Square {
	return &Square{gl: gl, center: center}
}

var squareIndices = []uint32{0, 1, 2, 0, 2, 3}

// Positions returns the four homogeneous corner positions.
func (s *Square) Positions() []float32 {
	z := s.center[2]
	return []float32{
		-1, -1, z, 1,
		1, -1, z, 1,
		1, 1, z, 1,
		-1, 1, z, 1,
	}
}

// Create uploads the vertex and index buffers. Calling it again is a no-op.
func (s *Square) Create() error {
	if s.vao != 0 {
		return nil
	}

	s.vao = s.gl.GenVertexArray()
	s.gl.BindVertexArray(s.vao)

	s.bufIdx = s.gl.GenBuffer()
	s.idxBound = s.bufIdx != 0
	s.bufPos = s.gl.GenBuffer()
	s.posBound = s.bufPos != 0

	s.count = int32(len(squareIndices))

	s.gl.BindElementBuffer(s.bufIdx)
	s.gl.ElementBufferData(squareIndices)

	s.gl.BindArrayBuffer(s.bufPos)
	s.gl.ArrayBufferData(s.Positions())

	return nil
}

// BindPos binds the position buffer and reports whether it exists.
func (s *Square) BindPos() bool {
	if s.posBound {
		s.gl.BindVertexArray(s.vao)
		s.gl.BindArrayBuffer(s.bufPos)
	}
	return s.posBound
}

// BindIdx binds the index buffer and reports whether it exists.
func (s *Square) BindIdx() bool {
	if s.idxBound {
		s.gl.BindVertexArray(s.vao)
		s.gl.BindElementBuffer(s.bufIdx)
	}
	return s.idxBound
}

func (s *Square) DrawMode() Primitive { return Triangles }

func (s *Square) ElemCount() int32 { return s.count }

func (s *Square) Destroy() {
	if s.posBound {
		s.gl.DeleteBuffer(s.bufPos)
	}
	if s.idxBound {
		s.gl.DeleteBuffer(s.bufIdx)
	}
	if s.vao != 0 {
		s.gl.DeleteVertexArray(s.vao)
	}
	*s = Square{gl: s.gl, center: s.center}
}
