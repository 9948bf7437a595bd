package core

// Event model. Positions are in framebuffer (device) pixels.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

// EventResize carries the new framebuffer size and the content scale at
// the time of the resize.
type EventResize struct {
	W, H  int
	Scale float32
}

func (EventResize) isEvent() {}

// EventMoved is emitted when the window moves; the monitor (and with it the
// content scale) may have changed.
type EventMoved struct {
	X, Y  int
	Scale float32
}

func (EventMoved) isEvent() {}

type EventKey struct {
	Key    Key
	Down   bool
	Repeat bool
	Mods   Mod
}

func (EventKey) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type ScrollUnit int

const (
	ScrollLines ScrollUnit = iota
	ScrollPixels
)

// EventScroll positive DY scrolls toward the top of the content.
type EventScroll struct {
	DX, DY float64
	Unit   ScrollUnit
}

func (EventScroll) isEvent() {}

type TouchPhase int

const (
	TouchStarted TouchPhase = iota
	TouchMoved
	TouchEnded
	TouchCancelled
)

func (p TouchPhase) String() string {
	switch p {
	case TouchStarted:
		return "started"
	case TouchMoved:
		return "moved"
	case TouchEnded:
		return "ended"
	case TouchCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

type EventTouch struct {
	ID    uint64
	Phase TouchPhase
	X, Y  float64
}

func (EventTouch) isEvent() {}

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyQ
	KeyD
	KeyP
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)
