package core

import "testing"

func TestFrameStatePlace(t *testing.T) {
	var fs FrameState
	if _, ok := fs.Place(Rect{X: -1000, Y: -1000, W: 1, H: 1}); !ok {
		t.Error("item outside any frame must be visible")
	}

	fs.Push(DisplayItem{Kind: ItemPushScrollFrame, Bounds: Rect{W: 100, H: 50}, Scroll: Vec2{Y: 30}})

	tests := []struct {
		name    string
		in      Rect
		want    Rect
		visible bool
	}{
		{"scrolled off top", Rect{Y: 0, W: 100, H: 30}, Rect{Y: -30, W: 100, H: 30}, false},
		{"partially visible", Rect{Y: 20, W: 100, H: 20}, Rect{Y: -10, W: 100, H: 20}, true},
		{"below clip", Rect{Y: 80, W: 100, H: 10}, Rect{Y: 50, W: 100, H: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, vis := fs.Place(tt.in)
			if got != tt.want || vis != tt.visible {
				t.Errorf("Place(%v) = %v, %v; want %v, %v", tt.in, got, vis, tt.want, tt.visible)
			}
		})
	}

	if !fs.Pop() || fs.Pop() {
		t.Error("Pop must succeed exactly once")
	}
	if fs.Offset() != (Vec2{}) {
		t.Errorf("Offset after pop = %v", fs.Offset())
	}
}

func TestFrameStateNestedClip(t *testing.T) {
	var fs FrameState
	fs.Push(DisplayItem{Bounds: Rect{W: 100, H: 100}, Scroll: Vec2{Y: 10}})
	fs.Push(DisplayItem{Bounds: Rect{Y: 50, W: 200, H: 100}})

	clip, ok := fs.Clip()
	if !ok {
		t.Fatal("no clip")
	}
	want := Rect{Y: 40, W: 100, H: 60}
	if clip != want {
		t.Errorf("nested clip = %v, want %v", clip, want)
	}
}

func TestDrawableCount(t *testing.T) {
	var l DisplayList
	l.PushScrollFrame(Rect{W: 10, H: 10}, Vec2{})
	l.PushRect(Rect{W: 1, H: 1}, [4]float32{})
	l.PopScrollFrame()
	l.PushGradient(Rect{W: 1, H: 1}, [4]float32{}, [4]float32{})
	if n := l.DrawableCount(); n != 2 {
		t.Errorf("DrawableCount = %d, want 2", n)
	}
}
