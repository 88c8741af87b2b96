package recorder

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Options describes the video to produce.
type Options struct {
	Width      int
	Height     int
	FPS        int
	OutputFile string
	FFMPEGPath string
}

// Recorder streams raw RGBA frames into an ffmpeg process.
type Recorder struct {
	opts      Options
	frameSize int
	pipe      *io.PipeWriter
	errc      chan error
	frames    int64
	closed    bool
}

// Stream builds the ffmpeg invocation for opts reading frames from in.
// Frames are read back from OpenGL bottom row first, so the video is flipped.
func Stream(opts Options, in io.Reader) *ffmpeg.Stream {
	inputArgs := ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"r":       opts.FPS,
	}

	outputArgs := ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
		"c:v":     videoCodec(),
	}
	if strings.HasSuffix(opts.OutputFile, ".mp4") {
		outputArgs["movflags"] = "+faststart"
	}

	stream := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(in).ErrorToStdOut()

	if opts.FFMPEGPath != "" {
		stream = stream.SetFfmpegPath(opts.FFMPEGPath)
	}
	return stream
}

func videoCodec() string {
	switch runtime.GOOS {
	case "darwin":
		return "h264_videotoolbox"
	default:
		return "libx264"
	}
}

// New starts ffmpeg. Close must be called to finalize the file.
func New(opts Options) (*Recorder, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid recording size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("invalid recording frame rate %d", opts.FPS)
	}

	pipeReader, pipeWriter := io.Pipe()
	r := &Recorder{
		opts:      opts,
		frameSize: opts.Width * opts.Height * 4,
		pipe:      pipeWriter,
		errc:      make(chan error, 1),
	}

	cmd := Stream(opts, pipeReader)
	log.Printf("Recording %dx%d@%d to %s", opts.Width, opts.Height, opts.FPS, opts.OutputFile)

	go func() {
		err := cmd.Run()
		// unblock a writer if ffmpeg exits early
		pipeReader.CloseWithError(errFFmpegExited)
		r.errc <- err
	}()

	return r, nil
}

var errFFmpegExited = errors.New("ffmpeg exited")

// WriteFrame sends one frame. pixels must hold exactly Width*Height*4 bytes.
func (r *Recorder) WriteFrame(pixels []byte) error {
	if r.closed {
		return errors.New("recorder is closed")
	}
	if len(pixels) != r.frameSize {
		return fmt.Errorf("frame is %d bytes, expected %d", len(pixels), r.frameSize)
	}
	if _, err := r.pipe.Write(pixels); err != nil {
		return fmt.Errorf("failed to write frame to ffmpeg: %w", err)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (r *Recorder) Frames() int64 { return r.frames }

// Close ends the input stream and waits for ffmpeg to finish.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.pipe.Close()
	if err := <-r.errc; err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	log.Printf("Recorded %d frames to %s", r.frames, r.opts.OutputFile)
	return nil
}
