package graphics

// Context defines the interface for an OpenGL context and the window that owns it.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	SwapBuffers()
	// PollEvents processes pending window events and returns everything queued
	// since the previous call, oldest first.
	PollEvents() []Event
	GetFramebufferSize() (int, int)
	SetClipboard(text string)
}
