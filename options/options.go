package options

// Options holds command-line flags. A nil or zero flag leaves the
// corresponding Config value untouched.
type Options struct {
	ConfigFile *string
	Help       *bool
	Width      *int
	Height     *int
	Scene      *string
	Fragment   *string // WebGL2 fragment shader to use instead of the built-in one
	Watch      *bool
	Record     *bool
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
}

// Apply copies every set flag onto cfg.
func (o *Options) Apply(cfg *Config) {
	if o.Width != nil && *o.Width > 0 {
		cfg.Window.Width = *o.Width
	}
	if o.Height != nil && *o.Height > 0 {
		cfg.Window.Height = *o.Height
	}
	if o.Scene != nil && *o.Scene != "" {
		cfg.Scene = *o.Scene
	}
	if o.Fragment != nil && *o.Fragment != "" {
		cfg.Shaders.Fragment = *o.Fragment
	}
	if o.Watch != nil && *o.Watch {
		cfg.Shaders.Watch = true
	}
	if o.Record != nil && *o.Record {
		cfg.Record.Enabled = true
	}
	if o.Duration != nil && *o.Duration > 0 {
		cfg.Record.Duration = *o.Duration
	}
	if o.FPS != nil && *o.FPS > 0 {
		cfg.Record.FPS = *o.FPS
	}
	if o.OutputFile != nil && *o.OutputFile != "" {
		cfg.Record.OutputFile = *o.OutputFile
	}
	if o.FFMPEGPath != nil && *o.FFMPEGPath != "" {
		cfg.Record.FFMPEGPath = *o.FFMPEGPath
	}
}
