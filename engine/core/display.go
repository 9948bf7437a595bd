package core

import "github.com/hubastard/musique/engine/colors"

type Vec2 struct{ X, Y float32 }

type Rect struct{ X, Y, W, H float32 }

func (r Rect) MaxX() float32 { return r.X + r.W }
func (r Rect) MaxY() float32 { return r.Y + r.H }

// Intersects reports whether r and o overlap with non-zero area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.MaxX() && o.X < r.MaxX() && r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Translate returns r shifted by (dx, dy).
func (r Rect) Translate(dx, dy float32) Rect {
	r.X += dx
	r.Y += dy
	return r
}

type ItemKind uint8

const (
	ItemRect ItemKind = iota
	ItemGradient
	ItemPushScrollFrame
	ItemPopScrollFrame
)

func (k ItemKind) String() string {
	switch k {
	case ItemRect:
		return "rect"
	case ItemGradient:
		return "gradient"
	case ItemPushScrollFrame:
		return "push-scroll-frame"
	case ItemPopScrollFrame:
		return "pop-scroll-frame"
	default:
		return "unknown"
	}
}

// DisplayItem is one drawing primitive. Geometry is in logical units.
//
//   - ItemRect: Bounds filled with Color.
//   - ItemGradient: Bounds filled left to right from Color to End.
//   - ItemPushScrollFrame: Bounds is the clip; items up to the matching pop
//     are offset by -Scroll.
//   - ItemPopScrollFrame: no payload.
type DisplayItem struct {
	Kind   ItemKind
	Bounds Rect
	Color  colors.Color
	End    colors.Color
	Scroll Vec2
}

// DisplayList is the full description of one frame.
type DisplayList struct {
	Viewport   Vec2 // logical size
	Scale      float32
	Background colors.Color
	Items      []DisplayItem
}

func (l *DisplayList) PushRect(r Rect, c colors.Color) {
	l.Items = append(l.Items, DisplayItem{Kind: ItemRect, Bounds: r, Color: c})
}

func (l *DisplayList) PushGradient(r Rect, from, to colors.Color) {
	l.Items = append(l.Items, DisplayItem{Kind: ItemGradient, Bounds: r, Color: from, End: to})
}

func (l *DisplayList) PushScrollFrame(clip Rect, scroll Vec2) {
	l.Items = append(l.Items, DisplayItem{Kind: ItemPushScrollFrame, Bounds: clip, Scroll: scroll})
}

func (l *DisplayList) PopScrollFrame() {
	l.Items = append(l.Items, DisplayItem{Kind: ItemPopScrollFrame})
}

// DrawableCount counts rect and gradient items.
func (l *DisplayList) DrawableCount() int {
	n := 0
	for _, it := range l.Items {
		if it.Kind == ItemRect || it.Kind == ItemGradient {
			n++
		}
	}
	return n
}

// FrameState tracks the scroll-frame stack while walking a display list.
type FrameState struct {
	stack []frame
}

type frame struct {
	clip   Rect
	offset Vec2
}

func (s *FrameState) Reset() { s.stack = s.stack[:0] }

// Push enters a scroll frame. The clip is expressed in the parent's space.
func (s *FrameState) Push(it DisplayItem) {
	off := s.Offset()
	clip := it.Bounds.Translate(-off.X, -off.Y)
	if parent, ok := s.Clip(); ok {
		clip = intersect(clip, parent)
	}
	s.stack = append(s.stack, frame{
		clip:   clip,
		offset: Vec2{X: off.X + it.Scroll.X, Y: off.Y + it.Scroll.Y},
	})
}

func (s *FrameState) Pop() bool {
	if len(s.stack) == 0 {
		return false
	}
	s.stack = s.stack[:len(s.stack)-1]
	return true
}

// Offset is the accumulated scroll of all open frames.
func (s *FrameState) Offset() Vec2 {
	if len(s.stack) == 0 {
		return Vec2{}
	}
	return s.stack[len(s.stack)-1].offset
}

// Clip returns the innermost clip in viewport space.
func (s *FrameState) Clip() (Rect, bool) {
	if len(s.stack) == 0 {
		return Rect{}, false
	}
	return s.stack[len(s.stack)-1].clip, true
}

// Place maps an item rect to viewport space and reports whether any of it
// is visible inside the current clip.
func (s *FrameState) Place(r Rect) (Rect, bool) {
	off := s.Offset()
	r = r.Translate(-off.X, -off.Y)
	if clip, ok := s.Clip(); ok && !r.Intersects(clip) {
		return r, false
	}
	return r, true
}

func intersect(a, b Rect) Rect {
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.MaxX(), b.MaxX()), min(a.MaxY(), b.MaxY())
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
