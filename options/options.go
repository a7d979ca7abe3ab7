package options

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingShader = errors.New("get shader path: use -h for help")
	ErrMissingOutput = errors.New("output animation: use -h for help")
)

const (
	DefaultWidth  = 600
	DefaultHeight = 600
	DefaultDelay  = 20 * time.Millisecond
)

type ShaderOptions struct {
	ShaderFile  *string
	Help        *bool
	Interactive *bool
	Size        *string // W,H
	DelayMS     *string
	Animation   *string // fps,duration or a frame count
	OutputFile  *string
	VideoFile   *string
	FFMPEGPath  *string

	// Parsed values.
	Width    int
	Height   int
	Delay    time.Duration
	Frames   int
	FPS      float64
	Duration float64
}

// Batch reports whether frames are exported instead of shown.
func (o *ShaderOptions) Batch() bool { return *o.Animation != "" }

func newFlagSet(o *ShaderOptions, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("shaderview", flag.ContinueOnError)
	fs.SetOutput(out)
	o.ShaderFile = fs.String("f", "", "shader file; .comp files may carry a compute stage, .essl files are WebGL2")
	o.Help = fs.Bool("h", false, "show this help")
	o.Interactive = fs.Bool("i", false, "interactive mode: drag to move the pointer, right-click to pick a pixel")
	o.Size = fs.String("x", "", "window size as W,H (default 600,600)")
	o.DelayMS = fs.String("d", "", "delay between ticks in milliseconds (default 20)")
	o.Animation = fs.String("a", "", "export an animation as fps,duration or as a frame count")
	o.OutputFile = fs.String("o", "", "animation output base path; frames are saved as path_0.png .. path_N.png")
	o.VideoFile = fs.String("v", "", "also encode the exported frames into this video file")
	o.FFMPEGPath = fs.String("ffmpeg", "", "path to the ffmpeg executable")
	fs.Usage = func() {
		fmt.Fprintln(out, "shaderview: live preview of 2D shaders")
		fmt.Fprintln(out, "keys: r g b a i c select a channel view while held, t toggles animation, Esc quits")
		fs.PrintDefaults()
	}
	return fs
}

// Parse reads command line arguments. Malformed numbers fall back to their
// defaults rather than failing.
func Parse(args []string, out io.Writer) (*ShaderOptions, error) {
	o := &ShaderOptions{}
	fs := newFlagSet(o, out)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *o.Help {
		fs.Usage()
		return o, nil
	}
	if *o.ShaderFile == "" {
		return nil, ErrMissingShader
	}
	o.Width, o.Height = parseSize(*o.Size)
	o.Delay = parseDelay(*o.DelayMS)
	if o.Batch() {
		if *o.OutputFile == "" {
			return nil, ErrMissingOutput
		}
		o.Frames, o.FPS, o.Duration = parseAnimation(*o.Animation)
	}
	return o, nil
}

func parseSize(s string) (int, int) {
	w, h, ok := strings.Cut(s, ",")
	if !ok {
		return DefaultWidth, DefaultHeight
	}
	width, err1 := strconv.Atoi(strings.TrimSpace(w))
	height, err2 := strconv.Atoi(strings.TrimSpace(h))
	if err1 != nil || err2 != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

func parseDelay(s string) time.Duration {
	ms, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || ms <= 0 {
		return DefaultDelay
	}
	return time.Duration(ms) * time.Millisecond
}

// parseAnimation accepts "fps,duration" or a bare frame count, which spans
// one second of animation time at that many frames per second.
func parseAnimation(s string) (frames int, fps, duration float64) {
	f, d, ok := strings.Cut(s, ",")
	if !ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 0 {
			return 0, 0, 0
		}
		return n, float64(n), 1
	}
	fps, err1 := strconv.ParseFloat(strings.TrimSpace(f), 64)
	duration, err2 := strconv.ParseFloat(strings.TrimSpace(d), 64)
	if err1 != nil || err2 != nil || fps < 0 || duration < 0 {
		return 0, 0, 0
	}
	return int(math.Floor(fps * duration)), fps, duration
}
