package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/richinsley/raymarcher/glcore"
	"github.com/richinsley/raymarcher/glfwcontext"
	"github.com/richinsley/raymarcher/options"
	"github.com/richinsley/raymarcher/recorder"
	"github.com/richinsley/raymarcher/renderer"
	"github.com/richinsley/raymarcher/scene"
	"github.com/richinsley/raymarcher/shader"
	"github.com/richinsley/raymarcher/stats"
)

func buildProgram(dev *renderer.Device, src *shader.Sources) (*renderer.ShaderProgram, error) {
	vs, err := renderer.NewShader(dev, renderer.VertexShader, src.Vertex)
	if err != nil {
		return nil, err
	}
	fs, err := renderer.NewShader(dev, renderer.FragmentShader, src.Fragment)
	if err != nil {
		return nil, err
	}

	var opts []renderer.ProgramOption
	if src.Uniforms != nil {
		opts = append(opts, renderer.WithUniformNames(src.Uniforms))
	}
	return renderer.NewShaderProgram(dev, []*renderer.Shader{vs, fs}, opts...)
}

func effectsFromConfig(cfg options.EffectsConfig) map[scene.Effect]bool {
	return map[scene.Effect]bool{
		scene.AmbientOcclusion: cfg.AO,
		scene.LensEffect:       cfg.LensEffect,
		scene.DarkScene:        cfg.DarkScene,
		scene.BarrelDistortion: cfg.BarrelDistortion,
	}
}

func runRaymarcher(ctx context.Context, cfg *options.Config, initialScene scene.Scene) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	// If recording, the window will be hidden (headless mode)
	record := cfg.Record.Enabled
	win, err := glfwcontext.New(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, !record)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Shutdown()

	win.MakeCurrent()
	if err := glcore.Init(); err != nil {
		return err
	}
	log.Printf("OpenGL version %s", glcore.Version())

	if cfg.Window.VSync && !record {
		win.SetSwapInterval(1)
	} else {
		win.SetSwapInterval(0)
	}

	src, err := shader.LoadRaymarch(cfg.Shaders.Fragment)
	if err != nil {
		return err
	}

	dev := renderer.NewDevice(glcore.GL{})
	prog, err := buildProgram(dev, src)
	if err != nil {
		return err
	}

	r, err := renderer.NewRenderer(win, dev, prog, scene.NewState())
	if err != nil {
		prog.Destroy()
		return err
	}
	defer r.Shutdown()

	title := cfg.Window.Title
	r.Stats().OnUpdate = func(s *stats.Stats) {
		win.SetTitle(fmt.Sprintf("%s - %s", title, s))
	}

	panel := renderer.NewControlPanel(r, effectsFromConfig(cfg.Effects), initialScene)
	panel.Apply()
	panel.Bind(win)
	win.SetResizeCallback(r.Resize)

	if record {
		frames := int(cfg.Record.Duration * float64(cfg.Record.FPS))
		r.SetClock(scene.NewFrameTicker(scene.FramesFor(cfg.Timing.StageInterval, cfg.Record.FPS)))

		width, height := r.Size()
		rec, err := recorder.New(recorder.Options{
			Width:      width,
			Height:     height,
			FPS:        cfg.Record.FPS,
			OutputFile: cfg.Record.OutputFile,
			FFMPEGPath: cfg.Record.FFMPEGPath,
		})
		if err != nil {
			return err
		}

		log.Printf("Starting offscreen render loop (%d frames)...", frames)
		renderErr := r.Record(ctx, frames, rec)
		closeErr := rec.Close()
		if renderErr != nil {
			return fmt.Errorf("offscreen rendering failed: %w", renderErr)
		}
		if closeErr != nil {
			return closeErr
		}
		log.Printf("Successfully rendered to %s", cfg.Record.OutputFile)
		return nil
	}

	r.SetClock(scene.NewTicker(ctx, cfg.Timing.StageInterval))

	if cfg.Shaders.Watch {
		w, err := shader.Watch(cfg.Shaders.Fragment)
		if err != nil {
			return err
		}
		defer w.Close()

		log.Printf("Watching %s for changes", w.Path())
		r.WatchProgram(w.C(), func() (*renderer.ShaderProgram, error) {
			src, err := shader.LoadRaymarch(cfg.Shaders.Fragment)
			if err != nil {
				return nil, err
			}
			return buildProgram(dev, src)
		})
	}

	log.Printf("Controls:\n%s", panel.Help())
	log.Println("Starting interactive render loop...")
	return r.Run(ctx)
}

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

func main() {
	opts := options.Options{
		ConfigFile: flag.String("config", "raymarcher.yaml", "Path to configuration file"),
		Help:       flag.Bool("help", false, "Show help message"),
		Width:      flag.Int("width", 0, "Window width (overrides config)"),
		Height:     flag.Int("height", 0, "Window height (overrides config)"),
		Scene:      flag.String("scene", "", "Initial scene: LerpFun or Chess"),
		Fragment:   flag.String("fragment", "", "WebGL2 fragment shader to use instead of the built-in raymarcher"),
		Watch:      flag.Bool("watch", false, "Reload the fragment shader when it changes on disk"),

		// Recording flags
		Record:     flag.Bool("record", false, "Render offscreen and encode to a video file"),
		Duration:   flag.Float64("duration", 0, "Duration to record in seconds"),
		FPS:        flag.Int("fps", 0, "Frames per second for recording"),
		OutputFile: flag.String("output", "", "Output file name for recording"),
		FFMPEGPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
	}
	flag.Parse()

	if *opts.Help {
		fmt.Println("Raymarcher")
		flag.PrintDefaults()
		return
	}

	cfg, err := options.LoadConfig(*opts.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	opts.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	initialScene, err := scene.ParseScene(cfg.Scene)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runRaymarcher(ctx, cfg, initialScene); err != nil {
		log.Fatalf("Raymarcher failed: %v", err)
	}
}
