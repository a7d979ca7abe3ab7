package renderer

import (
	"log"
	"time"

	"github.com/richinsley/shaderview/graphics"
	"github.com/richinsley/shaderview/interaction"
	"github.com/richinsley/shaderview/reload"
)

// Run drives the viewer until the window is closed. Each outer tick checks
// the shader file once, then runs about one second of inner ticks that drain
// input and draw when asked to. A file notification ends the inner ticks
// early.
//
// The only error returned is a fatal one from the watcher.
func (r *Renderer) Run(watcher *reload.Watcher, ctrl *interaction.Controller, delay time.Duration) error {
	var clock interaction.FrameClock
	ticks := max(1, int(time.Second/delay))
	for {
		out, err := watcher.Check(r)
		if err != nil {
			return err
		}
		if out.Changed {
			ctrl.SetCompileError(out.Err)
		}
		if drawOnReload(out, ctrl.Interactive()) {
			r.SetTime(clock.Seconds())
			r.drawFrame(ctrl)
		}

		for n := 0; n < ticks; n++ {
			for _, ev := range r.context.PollEvents() {
				ctrl.Handle(ev)
			}
			if ctrl.ShouldDraw() {
				r.SetTime(clock.Seconds())
				r.drawFrame(ctrl)
			}
			ctrl.FrameDone()
			if stopRequested(r.context, ctrl) {
				log.Println("Window closed")
				return nil
			}
			time.Sleep(delay)
			if ctrl.Continuous {
				clock.Advance(delay)
			}
			if watcher.Pending() {
				break
			}
		}
	}
}

// drawOnReload reports whether a check result needs a frame right away. The
// interactive loop redraws on its own; otherwise both a new program and a
// build error overlay must be presented here.
func drawOnReload(out reload.Outcome, interactive bool) bool {
	return out.Changed && !interactive
}

func stopRequested(ctx graphics.Context, ctrl *interaction.Controller) bool {
	return ctrl.Quit || ctx.ShouldClose()
}

func (r *Renderer) drawFrame(ctrl *interaction.Controller) {
	r.reportGLError(r.RenderFrame())
	if text, ok := ctrl.Overlay(); ok {
		r.DrawOverlay(text)
	}
	r.Present()
}
