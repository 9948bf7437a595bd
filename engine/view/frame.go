package view

import (
	"fmt"

	"github.com/hubastard/musique/engine/colors"
	"github.com/hubastard/musique/engine/core"
)

type Fade int

const (
	FadeLerp      Fade = iota // black to white across the list
	FadeAlternate             // even/odd rows, dimming toward the end
)

func (f Fade) String() string {
	switch f {
	case FadeLerp:
		return "lerp"
	case FadeAlternate:
		return "alternate"
	default:
		return fmt.Sprintf("Fade(%d)", int(f))
	}
}

func ParseFade(s string) (Fade, error) {
	switch s {
	case "lerp":
		return FadeLerp, nil
	case "alternate":
		return FadeAlternate, nil
	default:
		return 0, fmt.Errorf("unknown fade %q", s)
	}
}

// FrameStyle describes the row list.
type FrameStyle struct {
	RowCount   int
	RowHeight  float32
	RowGap     float32 // vertical space left empty inside each row slot
	RowInset   float32 // horizontal inset on both sides
	Fade       Fade
	CursorBand bool
	BandHeight float32
	Background colors.Color
}

// StyleDense is the thin-stripe list: 6px rows fading black to white.
var StyleDense = FrameStyle{
	RowCount:   400,
	RowHeight:  6,
	Fade:       FadeLerp,
	Background: colors.DarkGray,
}

// StyleRows is the card list: 35px padded rows with the cursor band.
var StyleRows = FrameStyle{
	RowCount:   200,
	RowHeight:  35,
	RowGap:     5,
	RowInset:   10,
	Fade:       FadeAlternate,
	CursorBand: true,
	BandHeight: 24,
	Background: colors.DarkGray,
}

// Styles indexes the presets by name.
var Styles = map[string]FrameStyle{
	"dense": StyleDense,
	"rows":  StyleRows,
}

// ContentHeight is the virtual height of the whole list.
func (fs FrameStyle) ContentHeight() float32 {
	return float32(fs.RowCount) * fs.RowHeight
}

// RowColor is a pure function of the row index and the row count.
func (fs FrameStyle) RowColor(i int) colors.Color {
	n := fs.RowCount
	if n <= 1 {
		return colors.White
	}
	t := float32(i) / float32(n-1)
	switch fs.Fade {
	case FadeAlternate:
		base := colors.Color{0.35, 0.55, 0.85, 1}
		if i%2 == 1 {
			base = colors.Color{0.85, 0.55, 0.35, 1}
		}
		return base.Scale(1 - 0.6*t)
	default:
		return colors.Lerp(colors.Black, colors.White, t)
	}
}

// BuildFrame enumerates the full list every call; output depends only on
// the layout size, scroll offset, cursor position and style.
func BuildFrame(s ViewState, fs FrameStyle) *core.DisplayList {
	n := fs.RowCount
	if n < 0 {
		n = 0
	}
	list := &core.DisplayList{
		Viewport:   s.Layout,
		Scale:      s.DPIFactor,
		Background: fs.Background,
		Items:      make([]core.DisplayItem, 0, n+3),
	}

	viewport := core.Rect{W: s.Layout.X, H: s.Layout.Y}
	list.PushScrollFrame(viewport, s.Scroll)
	w := s.Layout.X - 2*fs.RowInset
	h := fs.RowHeight - fs.RowGap
	if w > 0 && h > 0 {
		for i := 0; i < n; i++ {
			r := core.Rect{X: fs.RowInset, Y: float32(i) * fs.RowHeight, W: w, H: h}
			list.PushRect(r, fs.RowColor(i))
		}
	}
	list.PopScrollFrame()

	if fs.CursorBand && s.Layout.X > 0 && fs.BandHeight > 0 {
		t := s.Cursor.X / s.Layout.X
		band := core.Rect{Y: s.Cursor.Y - fs.BandHeight/2, W: s.Layout.X, H: fs.BandHeight}
		list.PushGradient(band, colors.Accent.WithAlpha(0), colors.Lerp(colors.Black, colors.Accent, t).WithAlpha(0.8))
	}
	return list
}
