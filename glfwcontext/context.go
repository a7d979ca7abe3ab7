package glfwcontext

import (
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/shaderview/graphics"
)

// Context is a fixed-size GLFW window with an OpenGL 4.6 core context. Input
// callbacks queue graphics.Events until the next PollEvents.
type Context struct {
	window  *glfw.Window
	events  []graphics.Event
	buttons graphics.Button
	cursorX int
	cursorY int
}

var _ graphics.Context = (*Context)(nil)

// New creates the window. Batch runs pass visible=false.
func New(title string, width, height int, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.StencilBits, 8)
	if !visible {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	c := &Context{window: win}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetMouseButtonCallback(c.glfwMouseButtonCallback)
	win.SetCursorPosCallback(c.glfwCursorPosCallback)
	win.SetCloseCallback(func(w *glfw.Window) {
		c.push(graphics.Event{Kind: graphics.EventQuit})
	})
	return c, nil
}

func (c *Context) push(ev graphics.Event) {
	ev.Buttons = c.buttons
	c.events = append(c.events, ev)
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape {
		if action == glfw.Press {
			w.SetShouldClose(true)
			c.push(graphics.Event{Kind: graphics.EventQuit})
		}
		return
	}
	ev := graphics.Event{Key: keyRune(key), X: c.cursorX, Y: c.cursorY}
	switch action {
	case glfw.Press:
		ev.Kind = graphics.EventKeyDown
	case glfw.Release:
		ev.Kind = graphics.EventKeyUp
	default:
		return // auto-repeat
	}
	c.push(ev)
}

// keyRune maps letter keys to their lower-case rune.
func keyRune(key glfw.Key) rune {
	if key >= glfw.KeyA && key <= glfw.KeyZ {
		return 'a' + rune(key-glfw.KeyA)
	}
	return 0
}

func mapButton(b glfw.MouseButton) graphics.Button {
	switch b {
	case glfw.MouseButtonLeft:
		return graphics.ButtonPrimary
	case glfw.MouseButtonRight:
		return graphics.ButtonSecondary
	case glfw.MouseButtonMiddle:
		return graphics.ButtonMiddle
	}
	return 0
}

func (c *Context) glfwMouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b := mapButton(button)
	if b == 0 {
		return
	}
	ev := graphics.Event{Button: b, X: c.cursorX, Y: c.cursorY}
	switch action {
	case glfw.Press:
		c.buttons |= b
		ev.Kind = graphics.EventPress
	case glfw.Release:
		c.buttons &^= b
		ev.Kind = graphics.EventRelease
	default:
		return
	}
	c.push(ev)
}

// glfwCursorPosCallback converts window coordinates to framebuffer pixels so
// events line up with pixel reads on high-DPI displays.
func (c *Context) glfwCursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	fbWidth, fbHeight := w.GetFramebufferSize()
	winWidth, winHeight := w.GetSize()
	var scaleX, scaleY float64 = 1.0, 1.0
	if winWidth > 0 && winHeight > 0 {
		scaleX = float64(fbWidth) / float64(winWidth)
		scaleY = float64(fbHeight) / float64(winHeight)
	}
	c.cursorX = int(xpos * scaleX)
	c.cursorY = int(ypos * scaleY)
	c.push(graphics.Event{Kind: graphics.EventMove, X: c.cursorX, Y: c.cursorY})
}

// PollEvents processes pending window events and returns the queued input.
func (c *Context) PollEvents() []graphics.Event {
	glfw.PollEvents()
	events := c.events
	c.events = nil
	return events
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) SwapBuffers() {
	c.window.SwapBuffers()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) SetClipboard(text string) {
	c.window.SetClipboardString(text)
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

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
