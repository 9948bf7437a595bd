package view

import (
	"math"

	"github.com/hubastard/musique/engine/core"
)

// Line heights used for line-based wheel deltas by the two list variants.
const (
	LineHeightTall    = 38.0
	LineHeightCompact = 24.0
)

type ReduceConfig struct {
	// LineHeight converts ScrollLines wheel deltas into pixels.
	LineHeight float64
}

func DefaultReduceConfig() ReduceConfig {
	return ReduceConfig{LineHeight: LineHeightTall}
}

// Changes summarizes what one batch did.
type Changes struct {
	Quit   bool
	Window bool
	Scroll bool
}

// Reduce folds a batch of events into s in arrival order. It never fails;
// out-of-range values are clamped.
func Reduce(s ViewState, batch []core.Event, cfg ReduceConfig) (ViewState, Changes) {
	var ch Changes
	for _, ev := range batch {
		switch e := ev.(type) {
		case core.EventCloseRequested:
			ch.Quit = true

		case core.EventKey:
			if !e.Down {
				continue
			}
			switch e.Key {
			case core.KeyEscape, core.KeyQ:
				ch.Quit = true
			case core.KeyD:
				if !e.Repeat {
					s.DebugOverlay = !s.DebugOverlay
				}
			}

		case core.EventResize:
			if e.Scale > 0 {
				s.DPIFactor = e.Scale
			}
			// minimized windows report 0x0; keep the last usable size
			if e.W > 0 && e.H > 0 {
				s.WindowW, s.WindowH = e.W, e.H
			}
			s.relayout()
			ch.Window = true

		case core.EventMoved:
			if e.Scale > 0 {
				s.DPIFactor = e.Scale
			}
			s.relayout()
			ch.Window = true

		case core.EventMouseMove:
			s.Cursor = s.toLogical(e.X, e.Y)

		case core.EventScroll:
			dy := e.DY
			if e.Unit == core.ScrollLines {
				dy *= cfg.LineHeight
			}
			s.Scroll.Y = clampScroll(float64(s.Scroll.Y) - dy)
			ch.Scroll = true

		case core.EventTouch:
			p := s.toLogical(e.X, e.Y)
			// one finger drives the drag; others are ignored until it lifts
			if s.Drag.Active && e.ID != s.Drag.ID {
				continue
			}
			switch e.Phase {
			case core.TouchStarted:
				s.Drag = TouchDrag{Active: true, ID: e.ID, AnchorScroll: s.Scroll, AnchorTouch: p}
				ch.Scroll = true
			case core.TouchMoved:
				if !s.Drag.Active {
					continue
				}
				y := float64(s.Drag.AnchorScroll.Y) + float64(s.Drag.AnchorTouch.Y-p.Y)
				s.Scroll.Y = clampScroll(y)
				ch.Scroll = true
			case core.TouchEnded, core.TouchCancelled:
				s.Drag = TouchDrag{}
			}
		}
	}
	return s, ch
}

func clampScroll(y float64) float32 {
	return float32(math.Max(0, math.Round(y)))
}
