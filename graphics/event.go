package graphics

// EventKind identifies the type of an input Event.
type EventKind int

const (
	EventMove EventKind = iota
	EventPress
	EventRelease
	EventKeyDown
	EventKeyUp
	EventQuit
)

func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventPress:
		return "press"
	case EventRelease:
		return "release"
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventQuit:
		return "quit"
	}
	return "unknown"
}

// Button is a pointer button. Buttons held during a move are reported as a mask.
type Button uint8

const (
	ButtonPrimary Button = 1 << iota
	ButtonSecondary
	ButtonMiddle
)

// Event is a single entry of the window's input queue.
//
// X and Y are framebuffer pixels with the origin at the top-left corner.
// Key holds the lower-case letter for letter keys and is zero otherwise.
type Event struct {
	Kind    EventKind
	Button  Button // button that changed for press/release
	Buttons Button // buttons held when the event was produced
	Key     rune
	X, Y    int
}

// Held reports whether b was down when the event was produced.
func (e Event) Held(b Button) bool {
	return e.Buttons&b != 0
}
