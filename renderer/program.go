package renderer

import (
	"fmt"
	"strings"
)

// Uniform and attribute names the raymarch program may declare.
const (
	AttrPosition = "vs_Pos"

	UniformView             = "u_View"
	UniformWidth            = "u_Width"
	UniformHeight           = "u_Height"
	UniformTime             = "u_Time"
	UniformLerpStage        = "u_LerpStage"
	UniformLerpValue        = "u_LerpValue"
	UniformAmbientOcclusion = "u_kAmbientOcclusion"
	UniformLensFX           = "u_kLensFX"
	UniformDarkScene        = "u_kDarkScene"
	UniformBarrelDistortion = "u_kBarrelDistortion"
	UniformSceneSelect      = "u_SceneSelect"
)

// Location is a resolved uniform or attribute slot that may be absent.
type Location struct {
	handle int32
	ok     bool
}

// NoLocation is the absent slot.
var NoLocation = Location{handle: -1}

func locationOf(handle int32) Location {
	if handle < 0 {
		return NoLocation
	}
	return Location{handle: handle, ok: true}
}

// Valid reports whether the slot exists in the linked program.
func (l Location) Valid() bool { return l.ok }

// Handle returns the GL location and whether it is present.
func (l Location) Handle() (int32, bool) { return l.handle, l.ok }

// Shader is a single compiled stage.
type Shader struct {
	ID   uint32
	Kind ShaderKind
}

// NewShader compiles source as a stage of the given kind. The returned error
// carries the compiler's info log.
func NewShader(dev *Device, kind ShaderKind, source string) (*Shader, error) {
	gl := dev.GL
	id := gl.CreateShader(kind)
	gl.ShaderSource(id, source)
	gl.CompileShader(id)

	if !gl.ShaderCompiled(id) {
		logText := strings.TrimRight(gl.ShaderInfoLog(id), "\x00")
		gl.DeleteShader(id)
		return nil, fmt.Errorf("failed to compile %s shader: %v", kind, logText)
	}
	return &Shader{ID: id, Kind: kind}, nil
}

// ProgramOption configures slot resolution in NewShaderProgram.
type ProgramOption func(*programConfig)

type programConfig struct {
	names map[string]string
}

// WithUniformNames maps source-level uniform names to the names present in
// the compiled program. Cross-compilers rename identifiers; a logical name
// missing from the map is treated as absent.
func WithUniformNames(names map[string]string) ProgramOption {
	return func(c *programConfig) {
		c.names = names
	}
}

// ShaderProgram owns a linked GL program and its resolved slots.
type ShaderProgram struct {
	dev  *Device
	prog uint32

	attrPos Location

	unifView             Location
	unifWidth            Location
	unifHeight           Location
	unifTime             Location
	unifLerpStage        Location
	unifLerpValue        Location
	unifAmbientOcclusion Location
	unifLensFX           Location
	unifDarkScene        Location
	unifBarrelDistortion Location
	unifSceneSelect      Location
}

// NewShaderProgram links the given stages and resolves every named slot.
// Stages are deleted once the program is linked.
func NewShaderProgram(dev *Device, shaders []*Shader, opts ...ProgramOption) (*ShaderProgram, error) {
	cfg := programConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	gl := dev.GL
	prog := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(prog, s.ID)
	}
	gl.LinkProgram(prog)

	if !gl.ProgramLinked(prog) {
		logText := strings.TrimRight(gl.ProgramInfoLog(prog), "\x00")
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("failed to link program: %v", logText)
	}

	for _, s := range shaders {
		gl.DeleteShader(s.ID)
	}

	p := &ShaderProgram{dev: dev, prog: prog}

	// the raymarcher only draws a screen-space quad
	p.attrPos = locationOf(gl.GetAttribLocation(prog, AttrPosition))

	resolve := func(name string) Location {
		if cfg.names != nil {
			mapped, ok := cfg.names[name]
			if !ok {
				return NoLocation
			}
			name = mapped
		}
		return locationOf(gl.GetUniformLocation(prog, name))
	}

	p.unifView = resolve(UniformView)
	p.unifWidth = resolve(UniformWidth)
	p.unifHeight = resolve(UniformHeight)
	p.unifTime = resolve(UniformTime)
	p.unifLerpStage = resolve(UniformLerpStage)
	p.unifLerpValue = resolve(UniformLerpValue)

	p.unifAmbientOcclusion = resolve(UniformAmbientOcclusion)
	p.unifLensFX = resolve(UniformLensFX)
	p.unifDarkScene = resolve(UniformDarkScene)
	p.unifBarrelDistortion = resolve(UniformBarrelDistortion)

	p.unifSceneSelect = resolve(UniformSceneSelect)

	return p, nil
}

// ID returns the GL program name.
func (p *ShaderProgram) ID() uint32 { return p.prog }

// Uniform returns the resolved slot for one of the Uniform* names.
func (p *ShaderProgram) Uniform(name string) Location {
	switch name {
	case UniformView:
		return p.unifView
	case UniformWidth:
		return p.unifWidth
	case UniformHeight:
		return p.unifHeight
	case UniformTime:
		return p.unifTime
	case UniformLerpStage:
		return p.unifLerpStage
	case UniformLerpValue:
		return p.unifLerpValue
	case UniformAmbientOcclusion:
		return p.unifAmbientOcclusion
	case UniformLensFX:
		return p.unifLensFX
	case UniformDarkScene:
		return p.unifDarkScene
	case UniformBarrelDistortion:
		return p.unifBarrelDistortion
	case UniformSceneSelect:
		return p.unifSceneSelect
	}
	return NoLocation
}

// Use makes this the active program.
func (p *ShaderProgram) Use() {
	p.dev.useProgram(p.prog)
}

func (p *ShaderProgram) setFloat(l Location, v float32) {
	p.Use()
	if h, ok := l.Handle(); ok {
		p.dev.GL.Uniform1f(h, v)
	}
}

func (p *ShaderProgram) setInt(l Location, v int32) {
	p.Use()
	if h, ok := l.Handle(); ok {
		p.dev.GL.Uniform1i(h, v)
	}
}

func (p *ShaderProgram) setBool(l Location, on bool) {
	var v int32
	if on {
		v = 1
	}
	p.setInt(l, v)
}

func (p *ShaderProgram) SetResolution(width, height int) {
	p.setFloat(p.unifWidth, float32(width))
	p.setFloat(p.unifHeight, float32(height))
}

func (p *ShaderProgram) SetTime(t float32) {
	p.setFloat(p.unifTime, t)
}

func (p *ShaderProgram) SetLerpStage(stage int) {
	p.setInt(p.unifLerpStage, int32(stage))
}

func (p *ShaderProgram) SetLerpValue(value float32) {
	p.setFloat(p.unifLerpValue, value)
}

func (p *ShaderProgram) SetAO(on bool) {
	p.setBool(p.unifAmbientOcclusion, on)
}

func (p *ShaderProgram) SetLensFX(on bool) {
	p.setBool(p.unifLensFX, on)
}

func (p *ShaderProgram) SetDarkScene(on bool) {
	p.setBool(p.unifDarkScene, on)
}

func (p *ShaderProgram) SetBarrelDistortion(on bool) {
	p.setBool(p.unifBarrelDistortion, on)
}

func (p *ShaderProgram) SetSceneSelect(selector float32) {
	p.setFloat(p.unifSceneSelect, selector)
}

// SetView uploads a view matrix. Nothing in the render loop calls it.
func (p *ShaderProgram) SetView(m [16]float32) {
	p.Use()
	if h, ok := p.unifView.Handle(); ok {
		p.dev.GL.UniformMatrix4fv(h, &m)
	}
}

// Draw issues a single indexed draw of d.
func (p *ShaderProgram) Draw(d Drawable) {
	p.Use()
	gl := p.dev.GL

	pos, hasPos := p.attrPos.Handle()
	if hasPos && d.BindPos() {
		gl.EnableVertexAttribArray(uint32(pos))
		gl.VertexAttribPointer(uint32(pos), 4)
	}

	d.BindIdx()
	gl.DrawElements(d.DrawMode(), d.ElemCount())

	if hasPos {
		gl.DisableVertexAttribArray(uint32(pos))
	}
}

// Destroy deletes the GL program.
func (p *ShaderProgram) Destroy() {
	if p.prog == 0 {
		return
	}
	p.dev.forget(p.prog)
	p.dev.GL.DeleteProgram(p.prog)
	p.prog = 0
}
