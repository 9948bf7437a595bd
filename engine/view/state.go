// Package view holds the application's view state, the reducer that folds
// input events into it, and the frame builder that turns it into a display
// list.
package view

import "github.com/hubastard/musique/engine/core"

// ViewState is everything the frame depends on. It is passed by value
// through Reduce; nothing here is shared.
type ViewState struct {
	WindowW, WindowH int     // device pixels
	DPIFactor        float32 // device pixels per logical unit
	Layout           core.Vec2
	Scroll           core.Vec2 // Y >= 0, integral
	Cursor           core.Vec2 // logical units
	DebugOverlay     bool
	Drag             TouchDrag
}

// TouchDrag anchors a touch scroll between Started and Ended/Cancelled.
type TouchDrag struct {
	Active       bool
	ID           uint64 // finger that started the drag
	AnchorScroll core.Vec2
	AnchorTouch  core.Vec2
}

// NewViewState builds the initial state from the window's framebuffer size
// and content scale.
func NewViewState(w, h int, scale float32) ViewState {
	s := ViewState{WindowW: w, WindowH: h, DPIFactor: 1}
	if scale > 0 {
		s.DPIFactor = scale
	}
	s.relayout()
	return s
}

func (s *ViewState) relayout() {
	s.Layout = core.Vec2{
		X: float32(s.WindowW) / s.DPIFactor,
		Y: float32(s.WindowH) / s.DPIFactor,
	}
}

// toLogical converts a device-pixel point to layout units.
func (s *ViewState) toLogical(x, y float64) core.Vec2 {
	return core.Vec2{X: float32(x) / s.DPIFactor, Y: float32(y) / s.DPIFactor}
}
