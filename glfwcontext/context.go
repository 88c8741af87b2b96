package glfwcontext

import (
	"log"
	"runtime"
	"unicode"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/raymarcher/graphics"
)

// Context is a GLFW window with an OpenGL 4.1 core context.
type Context struct {
	window *glfw.Window
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()
	onResize     func(width, height int)
}

var _ graphics.Context = (*Context)(nil)

// New creates a window of the given size. Hidden windows are used for
// recording and are not resizable.
func New(width, height int, title string, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetFramebufferSizeCallback(c.glfwFramebufferSizeCallback)

	return c, nil
}

// RegisterKeyCallback registers f to be called when key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

// BindKey implements graphics.Context. GLFW key codes for printable keys are
// their upper-case ASCII values.
func (c *Context) BindKey(key rune, f func()) {
	c.RegisterKeyCallback(glfw.Key(unicode.ToUpper(key)), f)
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}

	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

func (c *Context) SetResizeCallback(f func(width, height int)) {
	c.onResize = f
}

func (c *Context) glfwFramebufferSizeCallback(w *glfw.Window, width, height int) {
	if c.onResize != nil {
		c.onResize(width, height)
	}
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// SetSwapInterval sets the number of screen refreshes to wait between buffer
// swaps. It applies to the current context.
func (c *Context) SetSwapInterval(interval int) {
	glfw.SwapInterval(interval)
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) SetShouldClose(v bool) {
	c.window.SetShouldClose(v)
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

func (c *Context) SetTitle(title string) {
	c.window.SetTitle(title)
}

// Window returns the underlying *glfw.Window.
func (c *Context) Window() *glfw.Window {
	return c.window
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
