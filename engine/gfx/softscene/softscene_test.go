package softscene

import (
	"errors"
	"testing"

	"github.com/hubastard/musique/engine/core"
	"github.com/hubastard/musique/engine/view"
)

func newRasterizer(t *testing.T) *Rasterizer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestBuildCullsOutsideScrollFrame(t *testing.T) {
	r := newRasterizer(t)
	s := view.NewViewState(200, 100, 1)
	s.Scroll.Y = 350 // rows 10..12 of the 35px list are on screen

	sc := r.Build(view.BuildFrame(s, view.StyleRows))
	if sc.IsEmpty() {
		t.Fatal("scene is empty")
	}
	// rows 10, 11, 12 intersect [350, 450); the band sits at the cursor
	if got := r.Visible(); got != 4 {
		t.Errorf("visible = %d, want 4", got)
	}
}

func TestBuildWithoutFrames(t *testing.T) {
	r := newRasterizer(t)
	list := &core.DisplayList{Viewport: core.Vec2{X: 10, Y: 10}, Scale: 1}
	list.PushRect(core.Rect{X: 100, Y: 100, W: 5, H: 5}, [4]float32{1, 0, 0, 1})
	list.PopScrollFrame() // unbalanced pops are ignored

	r.Build(list)
	if r.Visible() != 1 {
		t.Errorf("visible = %d, want 1", r.Visible())
	}
}

func TestRasterizeNeedsTarget(t *testing.T) {
	r := newRasterizer(t)
	list := view.BuildFrame(view.NewViewState(64, 64, 1), view.StyleDense)
	if _, err := r.Rasterize(list); !errors.Is(err, ErrNoTarget) {
		t.Errorf("Rasterize before Resize = %v, want ErrNoTarget", err)
	}
	r.Resize(0, 10)
	if _, err := r.Rasterize(list); !errors.Is(err, ErrNoTarget) {
		t.Errorf("Rasterize after zero resize = %v, want ErrNoTarget", err)
	}
}

func TestRasterizeFrames(t *testing.T) {
	r := newRasterizer(t)
	r.Resize(128, 96)
	list := view.BuildFrame(view.NewViewState(128, 96, 1), view.StyleRows)

	f1, err := r.Rasterize(list)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if f1.W != 128 || f1.H != 96 || len(f1.Pixels) != 128*96*4 {
		t.Fatalf("frame %dx%d with %d bytes", f1.W, f1.H, len(f1.Pixels))
	}

	r.SetDebug(true)
	f2, err := r.Rasterize(list)
	if err != nil {
		t.Fatalf("Rasterize with overlay: %v", err)
	}
	if f2.Epoch <= f1.Epoch {
		t.Errorf("epoch did not advance: %d then %d", f1.Epoch, f2.Epoch)
	}
	if len(f2.Pixels) != len(f1.Pixels) {
		t.Errorf("overlay frame size %d, want %d", len(f2.Pixels), len(f1.Pixels))
	}
}

func TestCloseReleasesTarget(t *testing.T) {
	r := newRasterizer(t)
	r.Resize(32, 32)
	r.Close()
	r.Close()
	list := view.BuildFrame(view.NewViewState(32, 32, 1), view.StyleDense)
	if _, err := r.Rasterize(list); !errors.Is(err, ErrNoTarget) {
		t.Errorf("Rasterize after Close = %v, want ErrNoTarget", err)
	}
}
