package view

import (
	"reflect"
	"testing"

	"github.com/hubastard/musique/engine/colors"
	"github.com/hubastard/musique/engine/core"
)

func TestBuildFrameDeterministic(t *testing.T) {
	s := NewViewState(1280, 720, 2)
	s.Scroll.Y = 123
	s.Cursor = core.Vec2{X: 77, Y: 210}

	for name, style := range Styles {
		t.Run(name, func(t *testing.T) {
			a := BuildFrame(s, style)
			b := BuildFrame(s, style)
			if !reflect.DeepEqual(a, b) {
				t.Fatal("identical input produced different display lists")
			}
		})
	}
}

func TestBuildFrameEnumeratesWholeList(t *testing.T) {
	s := NewViewState(400, 300, 1)
	s.Scroll.Y = 1000
	list := BuildFrame(s, StyleDense)

	if got := list.DrawableCount(); got != StyleDense.RowCount {
		t.Fatalf("drawables = %d, want %d", got, StyleDense.RowCount)
	}
	first, last := list.Items[0], list.Items[len(list.Items)-1]
	if first.Kind != core.ItemPushScrollFrame || last.Kind != core.ItemPopScrollFrame {
		t.Fatalf("list not wrapped in a scroll frame: first=%v last=%v", first.Kind, last.Kind)
	}
	if first.Scroll != s.Scroll {
		t.Errorf("frame scroll = %v, want %v", first.Scroll, s.Scroll)
	}
	if first.Bounds != (core.Rect{W: 400, H: 300}) {
		t.Errorf("frame clip = %v", first.Bounds)
	}

	lastRow := list.Items[len(list.Items)-2]
	if lastRow.Bounds.MaxY() != StyleDense.ContentHeight() {
		t.Errorf("last row ends at %v, content height %v", lastRow.Bounds.MaxY(), StyleDense.ContentHeight())
	}
	if list.Items[1].Color != colors.Black || lastRow.Color != colors.White {
		t.Errorf("lerp fade endpoints: %v .. %v", list.Items[1].Color, lastRow.Color)
	}
}

func TestBuildFrameRowGeometry(t *testing.T) {
	s := NewViewState(300, 200, 1)
	list := BuildFrame(s, StyleRows)

	row := list.Items[3] // third row after the push
	want := core.Rect{X: 10, Y: 70, W: 280, H: 30}
	if row.Kind != core.ItemRect || row.Bounds != want {
		t.Errorf("row 2 = %v %v, want rect %v", row.Kind, row.Bounds, want)
	}
}

func TestCursorBandFollowsCursor(t *testing.T) {
	s := NewViewState(200, 100, 1)
	s.Cursor = core.Vec2{X: 200, Y: 40}
	list := BuildFrame(s, StyleRows)

	band := list.Items[len(list.Items)-1]
	if band.Kind != core.ItemGradient {
		t.Fatalf("last item = %v, want gradient", band.Kind)
	}
	if band.Bounds != (core.Rect{Y: 28, W: 200, H: 24}) {
		t.Errorf("band bounds = %v", band.Bounds)
	}
	if band.End != colors.Accent.WithAlpha(0.8) {
		t.Errorf("band end at right edge = %v", band.End)
	}

	s.Cursor.X = 0
	if end := BuildFrame(s, StyleRows).Items[len(list.Items)-1].End; end != colors.Black.WithAlpha(0.8) {
		t.Errorf("band end at left edge = %v", end)
	}

	if k := BuildFrame(s, StyleDense).Items; k[len(k)-1].Kind == core.ItemGradient {
		t.Error("dense style must not draw a band")
	}
}

func TestRowColor(t *testing.T) {
	alt := StyleRows
	if alt.RowColor(0) == alt.RowColor(1) {
		t.Error("alternate fade: neighbouring rows share a color")
	}
	nearEnd := alt.RowCount - 2
	if alt.RowColor(0)[0] <= alt.RowColor(nearEnd)[0] {
		t.Error("alternate fade does not dim toward the end")
	}

	one := FrameStyle{RowCount: 1}
	if one.RowColor(0) != colors.White {
		t.Errorf("single row color = %v", one.RowColor(0))
	}
}

func TestBuildFrameDegenerate(t *testing.T) {
	s := NewViewState(0, 0, 1)
	list := BuildFrame(s, StyleRows)
	if list.DrawableCount() != 0 {
		t.Errorf("zero-size window drew %d items", list.DrawableCount())
	}
}

func TestParseFade(t *testing.T) {
	for _, f := range []Fade{FadeLerp, FadeAlternate} {
		got, err := ParseFade(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFade(%q) = %v, %v", f.String(), got, err)
		}
	}
	if _, err := ParseFade("rainbow"); err == nil {
		t.Error("ParseFade accepted unknown fade")
	}
}
