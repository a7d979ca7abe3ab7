package interaction

import (
	"time"

	"github.com/soypat/geometry/ms2"
)

// State is everything user input changes between frames.
type State struct {
	// Pointer is the last primary-drag position in aspect-corrected NDC.
	Pointer    ms2.Vec
	Mode       int
	Continuous bool

	ShowInfo      bool
	ShowComposite bool // pick from the final image instead of the raw render
	ShowError     bool

	Redraw bool
	Quit   bool
}

// FrameClock is the time uniform source of the viewer. It only moves while
// continuous update is on.
type FrameClock struct {
	elapsed time.Duration
}

func (c *FrameClock) Advance(d time.Duration) { c.elapsed += d }

func (c *FrameClock) Seconds() float32 { return float32(c.elapsed.Seconds()) }
