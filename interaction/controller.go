package interaction

import (
	"github.com/richinsley/shaderview/graphics"
	"github.com/soypat/geometry/ms2"
)

// Pipeline is the part of the renderer input acts on.
type Pipeline interface {
	SetMode(mode int)
	SetPointer(p ms2.Vec)
	// PickPixel reads a pixel with a bottom-left origin, from the final
	// image when composite is set.
	PickPixel(x, y int, composite bool) [3]float32
}

type Clipboard interface {
	SetClipboard(text string)
}

// Modes of the post-process pass.
const (
	ModeComposite = iota
	ModeRed
	ModeGreen
	ModeBlue
	ModeAbsolute
	ModeInverted
	ModeFalseColor
)

// Controller turns window events into State changes and pipeline calls.
type Controller struct {
	State
	pipe        Pipeline
	clip        Clipboard
	width       int
	height      int
	interactive bool

	info     string
	clipText string
	errText  string
}

func NewController(pipe Pipeline, clip Clipboard, width, height int, interactive bool) *Controller {
	info, clipText := FormatPixel([3]float32{})
	return &Controller{
		State: State{
			Pointer: ms2.Vec{X: 0.5, Y: 0.5},
			Redraw:  true,
		},
		pipe:        pipe,
		clip:        clip,
		width:       width,
		height:      height,
		interactive: interactive,
		info:        info,
		clipText:    clipText,
	}
}

func (c *Controller) Interactive() bool { return c.interactive }

// Handle applies one event. Every event requests a redraw.
func (c *Controller) Handle(ev graphics.Event) {
	switch ev.Kind {
	case graphics.EventQuit:
		c.Quit = true
	case graphics.EventMove:
		if c.interactive && ev.Held(graphics.ButtonPrimary) {
			p := graphics.ScaleNDC(graphics.PixelToNDC(ev.X, ev.Y, c.width, c.height), c.width, c.height)
			c.Pointer = ms2.Vec{X: p.X, Y: p.Y}
			c.pipe.SetPointer(c.Pointer)
		}
		if ev.Held(graphics.ButtonSecondary) {
			c.pick(ev.X, ev.Y)
		}
	case graphics.EventPress:
		if ev.Button == graphics.ButtonSecondary {
			c.pick(ev.X, ev.Y)
			c.ShowInfo = true
		}
	case graphics.EventRelease:
		if ev.Button == graphics.ButtonSecondary {
			c.clip.SetClipboard(c.clipText)
			c.ShowInfo = false
			c.ShowComposite = false
		}
	case graphics.EventKeyDown:
		c.key(ev.Key)
	case graphics.EventKeyUp:
		c.setMode(ModeComposite)
	}
	c.Redraw = true
}

func (c *Controller) key(k rune) {
	mode := ModeComposite
	switch k {
	case 'r':
		mode = ModeRed
	case 'g':
		mode = ModeGreen
	case 'b':
		mode = ModeBlue
	case 'a':
		mode = ModeAbsolute
	case 'i':
		mode = ModeInverted
	case 'c':
		mode = ModeFalseColor
		c.ShowComposite = true
	case 't':
		c.Continuous = !c.Continuous
	}
	c.setMode(mode)
}

func (c *Controller) setMode(mode int) {
	c.Mode = mode
	c.pipe.SetMode(mode)
}

// pick samples the pixel under a top-left origin window position. Window
// row y is GL row height-1-y.
func (c *Controller) pick(x, y int) {
	px := c.pipe.PickPixel(x, c.height-1-y, c.ShowComposite)
	c.info, c.clipText = FormatPixel(px)
}

// ShouldDraw reports whether the current tick renders a frame.
func (c *Controller) ShouldDraw() bool {
	return (c.interactive && c.Redraw) || c.Continuous
}

func (c *Controller) FrameDone() { c.Redraw = false }

// SetCompileError raises the error overlay for a failed build, or clears it
// when err is nil.
func (c *Controller) SetCompileError(err error) {
	c.ShowError = err != nil
	c.errText = ErrorText(err)
	c.Redraw = true
}

// Overlay returns the text to draw over the frame, if any. A build error
// hides the pixel info.
func (c *Controller) Overlay() (string, bool) {
	switch {
	case c.ShowError:
		return c.errText, true
	case c.ShowInfo:
		return c.info, true
	}
	return "", false
}

// ClipboardText is the value the next secondary release will copy.
func (c *Controller) ClipboardText() string { return c.clipText }
