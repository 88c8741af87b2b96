package renderer

var allUniforms = []string{
	UniformView,
	UniformWidth,
	UniformHeight,
	UniformTime,
	UniformLerpStage,
	UniformLerpValue,
	UniformAmbientOcclusion,
	UniformLensFX,
	UniformDarkScene,
	UniformBarrelDistortion,
	UniformSceneSelect,
}

// drawCall captures the uniform state visible to one DrawElements.
type drawCall struct {
	program uint32
	mode    Primitive
	count   int32
	floats  map[int32]float32
	ints    map[int32]int32
	attribs map[uint32]bool
}

// fakeGL records the calls the renderer makes and keeps per-program uniform
// values the way a real driver would.
type fakeGL struct {
	nextID uint32

	compileLog map[ShaderKind]string
	linkLog    string

	uniforms map[string]int32
	attribs  map[string]int32

	kinds    map[uint32]ShaderKind
	current  uint32
	useCalls int

	floats  map[uint32]map[int32]float32
	ints    map[uint32]map[int32]int32
	enabled map[uint32]bool

	deletedShaders  []uint32
	deletedPrograms []uint32

	viewport [4]int32
	clears   int
	draws    []drawCall

	arrayData   []float32
	elementData []uint32
	genBuffers  int
	noBuffers   bool
}

func newFakeGL() *fakeGL {
	f := &fakeGL{
		compileLog: map[ShaderKind]string{},
		uniforms:   map[string]int32{},
		attribs:    map[string]int32{AttrPosition: 0},
		kinds:      map[uint32]ShaderKind{},
		floats:     map[uint32]map[int32]float32{},
		ints:       map[uint32]map[int32]int32{},
		enabled:    map[uint32]bool{},
	}
	for i, name := range allUniforms {
		f.uniforms[name] = int32(i)
	}
	return f
}

func (f *fakeGL) id() uint32 {
	f.nextID++
	return f.nextID
}

func (f *fakeGL) CreateShader(kind ShaderKind) uint32 {
	id := f.id()
	f.kinds[id] = kind
	return id
}

func (f *fakeGL) ShaderSource(shader uint32, source string) {}
func (f *fakeGL) CompileShader(shader uint32)               {}

func (f *fakeGL) ShaderCompiled(shader uint32) bool {
	_, failed := f.compileLog[f.kinds[shader]]
	return !failed
}

func (f *fakeGL) ShaderInfoLog(shader uint32) string {
	return f.compileLog[f.kinds[shader]] + "\x00"
}

func (f *fakeGL) DeleteShader(shader uint32) {
	f.deletedShaders = append(f.deletedShaders, shader)
}

func (f *fakeGL) CreateProgram() uint32 {
	id := f.id()
	f.floats[id] = map[int32]float32{}
	f.ints[id] = map[int32]int32{}
	return id
}

func (f *fakeGL) AttachShader(program, shader uint32) {}
func (f *fakeGL) LinkProgram(program uint32)          {}
func (f *fakeGL) ProgramLinked(program uint32) bool   { return f.linkLog == "" }
func (f *fakeGL) ProgramInfoLog(program uint32) string {
	return f.linkLog + "\x00"
}

func (f *fakeGL) UseProgram(program uint32) {
	f.current = program
	f.useCalls++
}

func (f *fakeGL) DeleteProgram(program uint32) {
	f.deletedPrograms = append(f.deletedPrograms, program)
}

func (f *fakeGL) GetAttribLocation(program uint32, name string) int32 {
	if loc, ok := f.attribs[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeGL) GetUniformLocation(program uint32, name string) int32 {
	if loc, ok := f.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeGL) Uniform1f(location int32, v float32) {
	f.floats[f.current][location] = v
}

func (f *fakeGL) Uniform1i(location int32, v int32) {
	f.ints[f.current][location] = v
}

func (f *fakeGL) UniformMatrix4fv(location int32, m *[16]float32) {}

func (f *fakeGL) GenVertexArray() uint32     { return f.id() }
func (f *fakeGL) BindVertexArray(vao uint32) {}
func (f *fakeGL) DeleteVertexArray(vao uint32) {}

func (f *fakeGL) GenBuffer() uint32 {
	f.genBuffers++
	if f.noBuffers {
		return 0
	}
	return f.id()
}

func (f *fakeGL) BindArrayBuffer(buffer uint32)   {}
func (f *fakeGL) BindElementBuffer(buffer uint32) {}
func (f *fakeGL) ArrayBufferData(data []float32) {
	f.arrayData = append([]float32(nil), data...)
}
func (f *fakeGL) ElementBufferData(data []uint32) {
	f.elementData = append([]uint32(nil), data...)
}
func (f *fakeGL) DeleteBuffer(buffer uint32) {}

func (f *fakeGL) EnableVertexAttribArray(index uint32)         { f.enabled[index] = true }
func (f *fakeGL) DisableVertexAttribArray(index uint32)        { f.enabled[index] = false }
func (f *fakeGL) VertexAttribPointer(index uint32, size int32) {}

func (f *fakeGL) DrawElements(mode Primitive, count int32) {
	d := drawCall{
		program: f.current,
		mode:    mode,
		count:   count,
		floats:  map[int32]float32{},
		ints:    map[int32]int32{},
		attribs: map[uint32]bool{},
	}
	for k, v := range f.floats[f.current] {
		d.floats[k] = v
	}
	for k, v := range f.ints[f.current] {
		d.ints[k] = v
	}
	for k, v := range f.enabled {
		d.attribs[k] = v
	}
	f.draws = append(f.draws, d)
}

func (f *fakeGL) ClearColor(r, g, b, a float32) {}
func (f *fakeGL) DisableDepthTest()             {}

func (f *fakeGL) Viewport(x, y, width, height int32) {
	f.viewport = [4]int32{x, y, width, height}
}

func (f *fakeGL) Clear() { f.clears++ }

func (f *fakeGL) ReadPixels(width, height int, pixels []byte) {
	for i := range pixels {
		pixels[i] = byte(len(f.draws))
	}
}

func (f *fakeGL) lastDraw() drawCall {
	return f.draws[len(f.draws)-1]
}

// uniformFloat returns the value name had during the last draw.
func (d drawCall) uniformFloat(f *fakeGL, name string) float32 {
	return d.floats[f.uniforms[name]]
}

func (d drawCall) uniformInt(f *fakeGL, name string) int32 {
	return d.ints[f.uniforms[name]]
}

// fakeContext is a window that never closes on its own.
type fakeContext struct {
	width, height int
	frames        int
	closeAfter    int
	shouldClose   bool
	title         string
	onResize      func(int, int)
	keys          map[rune]func()
}

func newFakeContext(width, height int) *fakeContext {
	return &fakeContext{width: width, height: height, keys: map[rune]func(){}}
}

func (c *fakeContext) MakeCurrent()             {}
func (c *fakeContext) Shutdown()                {}
func (c *fakeContext) ShouldClose() bool        { return c.shouldClose }
func (c *fakeContext) SetShouldClose(v bool)    { c.shouldClose = v }
func (c *fakeContext) Time() float64            { return float64(c.frames) / 60 }
func (c *fakeContext) SetTitle(title string)    { c.title = title }
func (c *fakeContext) BindKey(r rune, f func()) { c.keys[r] = f }

func (c *fakeContext) GetFramebufferSize() (int, int) {
	return c.width, c.height
}

func (c *fakeContext) SetResizeCallback(f func(int, int)) { c.onResize = f }

func (c *fakeContext) EndFrame() {
	c.frames++
	if c.closeAfter > 0 && c.frames >= c.closeAfter {
		c.shouldClose = true
	}
}

// resize simulates the window manager changing the framebuffer size.
func (c *fakeContext) resize(width, height int) {
	c.width, c.height = width, height
	if c.onResize != nil {
		c.onResize(width, height)
	}
}

// manualClock fires only when the test says so.
type manualClock struct {
	c       chan struct{}
	stopped bool
}

func newManualClock() *manualClock {
	return &manualClock{c: make(chan struct{}, 8)}
}

func (m *manualClock) fire()              { m.c <- struct{}{} }
func (m *manualClock) C() <-chan struct{} { return m.c }
func (m *manualClock) Stop()              { m.stopped = true }
