package renderer

import (
	"context"
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/raymarcher/camera"
	"github.com/richinsley/raymarcher/graphics"
	"github.com/richinsley/raymarcher/scene"
	"github.com/richinsley/raymarcher/stats"
)

// FrameSink receives read-back frames in bottom-up RGBA row order.
type FrameSink interface {
	WriteFrame(pixels []byte) error
}

// frameCounter is a Clock that counts rendered frames itself.
type frameCounter interface {
	Advance()
}

// Renderer drives the per-frame loop: it samples scene state, pushes it into
// the raymarch program and draws the full-screen quad.
type Renderer struct {
	context graphics.Context
	dev     *Device
	program *ShaderProgram
	quad    *Square
	camera  *camera.Camera
	state   *scene.State
	clock   scene.Clock
	stats   *stats.Stats

	reload  <-chan struct{}
	rebuild func() (*ShaderProgram, error)

	width  int
	height int
	frames int64
}

// NewRenderer allocates the screen quad and sizes the viewport to the
// context's framebuffer. The program must already be linked on dev.
func NewRenderer(ctx graphics.Context, dev *Device, program *ShaderProgram, state *scene.State) (*Renderer, error) {
	r := &Renderer{
		context: ctx,
		dev:     dev,
		program: program,
		quad:    NewSquare(dev.GL, [3]float32{0, 0, 0}),
		camera:  camera.New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0}),
		state:   state,
		stats:   stats.New(),
	}

	if err := r.quad.Create(); err != nil {
		return nil, fmt.Errorf("failed to create screen quad: %w", err)
	}

	dev.GL.ClearColor(0, 0, 0, 1)
	dev.GL.DisableDepthTest()

	r.Resize(ctx.GetFramebufferSize())
	return r, nil
}

// SetClock installs the stage clock. Firings are applied at the start of the
// next Tick.
func (r *Renderer) SetClock(c scene.Clock) {
	r.clock = c
}

// WatchProgram makes Tick rebuild the program whenever reload fires. A failed
// rebuild is logged and the current program keeps running.
func (r *Renderer) WatchProgram(reload <-chan struct{}, rebuild func() (*ShaderProgram, error)) {
	r.reload = reload
	r.rebuild = rebuild
}

// ReplaceProgram swaps in p, destroys the previous program and uploads the
// current resolution, effects and scene to p.
func (r *Renderer) ReplaceProgram(p *ShaderProgram) {
	old := r.program
	r.program = p
	if old != nil && old != p {
		old.Destroy()
	}

	p.SetResolution(r.width, r.height)
	for _, e := range scene.Effects {
		r.SetEffect(e, r.state.Effect(e))
	}
	p.SetSceneSelect(r.state.SceneSelect())
}

func (r *Renderer) reloadProgram() {
	if r.reload == nil {
		return
	}
	select {
	case <-r.reload:
	default:
		return
	}

	p, err := r.rebuild()
	if err != nil {
		log.Printf("Shader reload failed: %v", err)
		return
	}
	r.ReplaceProgram(p)
	log.Println("Shader reloaded")
}

// SetStats replaces the frame timing overlay.
func (r *Renderer) SetStats(s *stats.Stats) {
	r.stats = s
}

func (r *Renderer) Stats() *stats.Stats     { return r.stats }
func (r *Renderer) Camera() *camera.Camera  { return r.camera }
func (r *Renderer) State() *scene.State     { return r.state }
func (r *Renderer) Program() *ShaderProgram { return r.program }

// Size returns the current canvas size in pixels.
func (r *Renderer) Size() (int, int) { return r.width, r.height }

// Frames returns the number of completed ticks.
func (r *Renderer) Frames() int64 { return r.frames }

// Resize updates the canvas size, the camera projection and the resolution
// uniforms. The new size takes effect on the next Tick.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		// minimized windows report a zero framebuffer
		return
	}
	r.width, r.height = width, height
	r.camera.SetAspectRatio(float32(width) / float32(height))
	r.camera.UpdateProjectionMatrix()
	r.program.SetResolution(width, height)
}

// SetEffect changes an effect flag and uploads it immediately.
func (r *Renderer) SetEffect(e scene.Effect, on bool) {
	r.state.SetEffect(e, on)
	switch e {
	case scene.AmbientOcclusion:
		r.program.SetAO(on)
	case scene.LensEffect:
		r.program.SetLensFX(on)
	case scene.DarkScene:
		r.program.SetDarkScene(on)
	case scene.BarrelDistortion:
		r.program.SetBarrelDistortion(on)
	}
}

// SelectScene switches scenes, restarting the scene clock, and uploads the selector.
func (r *Renderer) SelectScene(sc scene.Scene) {
	r.state.SelectScene(sc)
	r.program.SetSceneSelect(r.state.SceneSelect())
}

// Tick renders one frame into the current back buffer.
func (r *Renderer) Tick() {
	r.reloadProgram()

	if n := scene.Drain(r.clock, r.state); n > 0 {
		log.Printf("Stage advanced to %d", r.state.LerpStage)
	}

	r.camera.Update()
	r.stats.Begin()

	gl := r.dev.GL
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.Clear()

	r.state.StepLerp()

	r.program.SetTime(r.state.ShaderTime())
	r.program.SetLerpValue(float32(r.state.LerpValue))
	r.program.SetLerpStage(r.state.PushedStage())
	r.program.SetSceneSelect(r.state.SceneSelect())

	r.program.Draw(r.quad)

	r.stats.End()

	r.state.StepTime()
	r.frames++

	if fc, ok := r.clock.(frameCounter); ok {
		fc.Advance()
	}
}

// Run renders and presents frames until ctx is cancelled or the window is
// asked to close.
func (r *Renderer) Run(ctx context.Context) error {
	for !r.context.ShouldClose() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		r.Tick()
		r.context.EndFrame()
	}
	return nil
}

// Record renders frames frames, handing each to sink before presenting it.
func (r *Renderer) Record(ctx context.Context, frames int, sink FrameSink) error {
	w, h := r.width, r.height
	pixels := make([]byte, w*h*4)

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			log.Printf("Recording interrupted after %d frames", i)
			return ctx.Err()
		default:
		}

		r.Tick()
		r.dev.GL.ReadPixels(w, h, pixels)
		if err := sink.WriteFrame(pixels); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", i, err)
		}
		r.context.EndFrame()

		if r.context.ShouldClose() {
			log.Printf("Recording stopped by window close after %d frames", i+1)
			return nil
		}
	}
	return nil
}

// Shutdown releases GL resources owned by the renderer.
func (r *Renderer) Shutdown() {
	if r.clock != nil {
		r.clock.Stop()
	}
	r.quad.Destroy()
	r.program.Destroy()
}
