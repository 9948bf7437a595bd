package core

import "time"

// App defines the application hooks driven by Run.
type App interface {
	// OnStart is called once after window and renderer init.
	OnStart(e *Engine)
	// OnEvents receives one drained batch per iteration, in arrival order.
	OnEvents(e *Engine, batch []Event) (quit bool)
	// OnRender builds and submits the frame; an error aborts the loop.
	OnRender(e *Engine) error
	OnShutdown(e *Engine)
}

// Engine exposes core services to the App.
type Engine struct {
	Window   Window
	Renderer Renderer
	Config   Config
	start    time.Time
	frames   uint64
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Frames reports how many frames were presented so far.
func (e *Engine) Frames() uint64 { return e.frames }

// Window abstraction.
type Window interface {
	// NextEvents blocks for at least one event when wait is set, otherwise
	// polls, then returns everything queued since the previous call.
	NextEvents(wait bool) ([]Event, error)
	// SwapBuffers presents the back buffer.
	SwapBuffers() error
	ShouldClose() bool
	FramebufferSize() (int, int)
	ContentScale() float32
	Destroy()
}

// Renderer consumes one display list per frame.
type Renderer interface {
	Name() string
	Resize(w, h int)
	Render(list *DisplayList) error
	SetDebug(enabled bool)
	Stats() FrameStats
	Shutdown()
}

// FrameStats describes the last submitted frame.
type FrameStats struct {
	Backend   string
	Epoch     uint64 // renderer-assigned, opaque
	Items     int
	DrawCalls int
}

// Config for the engine run.
type Config struct {
	Title        string
	Width        int
	Height       int
	VSync        bool
	WaitEvents   bool // block for input instead of polling continuously
	EmulateTouch bool // left-button drags are reported as touch events
}
