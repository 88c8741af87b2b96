package graphics

// Context defines the interface for an OpenGL window context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	SetShouldClose(bool)
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	SetTitle(title string)
	// SetResizeCallback registers f to run whenever the framebuffer changes
	// size. f runs on the thread that polls events.
	SetResizeCallback(f func(width, height int))
	// BindKey registers f to run when key is pressed.
	BindKey(key rune, f func())
}
