// Package softscene rasterizes display lists on the CPU through the gg
// scene renderer. The GL side only uploads the resulting pixels.
package softscene

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/hubastard/musique/engine/colors"
	"github.com/hubastard/musique/engine/core"
	"github.com/hubastard/musique/engine/profiler"
	"github.com/hubastard/musique/engine/scratch"
)

// gradientSteps is how many solid strips approximate one gradient item;
// scene brushes are solid only.
const gradientSteps = 32

const overlayFontSize = 14

var ErrNoTarget = errors.New("softscene: no render target (call Resize with a non-zero size)")

// Frame is one rasterized image, rows top-down, 4 bytes per pixel.
type Frame struct {
	Pixels []byte
	W, H   int
	Epoch  uint64
}

// Rasterizer owns a reusable scene, the tile renderer and the target pixmap.
type Rasterizer struct {
	scene     *scene.Scene
	renderer  *scene.Renderer
	target    *gg.Pixmap
	face      text.Face
	scaled    text.Face // face at faceScale
	faceScale float64
	frames    core.FrameState
	lines     *scratch.Buffer

	debug   bool
	visible int
	drawn   int
}

func New() (*Rasterizer, error) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("softscene: load overlay font: %w", err)
	}
	return &Rasterizer{
		scene: scene.NewScene(),
		face:  src.Face(overlayFontSize),
		lines: scratch.New(512),
	}, nil
}

// Resize sets the target size in device pixels.
func (r *Rasterizer) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if r.target != nil && r.target.Width() == w && r.target.Height() == h {
		return
	}
	if r.renderer == nil {
		r.renderer = scene.NewRenderer(w, h)
	} else {
		r.renderer.Resize(w, h)
	}
	r.target = gg.NewPixmap(w, h)
	gg.Logger().Debug("softscene resize", slog.Int("w", w), slog.Int("h", h))
}

func (r *Rasterizer) SetDebug(on bool) { r.debug = on }

// Visible reports how many drawables survived clip culling in the last build.
func (r *Rasterizer) Visible() int { return r.visible }

// Build translates list into the reusable scene. Drawables fully outside
// their scroll frame's clip are skipped.
func (r *Rasterizer) Build(list *core.DisplayList) *scene.Scene {
	s := r.scene
	s.Reset()
	r.frames.Reset()
	r.visible, r.drawn = 0, 0

	scale := list.Scale
	if scale <= 0 {
		scale = 1
	}
	s.PushTransform(scene.ScaleAffine(scale, scale))
	s.Fill(scene.FillNonZero, scene.IdentityAffine(), brush(list.Background),
		scene.NewRectShape(0, 0, list.Viewport.X, list.Viewport.Y))

	for _, it := range list.Items {
		switch it.Kind {
		case core.ItemPushScrollFrame:
			r.frames.Push(it)
			b := it.Bounds
			s.PushClip(scene.NewRectShape(b.X, b.Y, b.W, b.H))
			s.PushTransform(scene.TranslateAffine(-it.Scroll.X, -it.Scroll.Y))
		case core.ItemPopScrollFrame:
			if r.frames.Pop() {
				s.PopTransform()
				s.PopClip()
			}
		case core.ItemRect:
			if _, ok := r.frames.Place(it.Bounds); !ok {
				continue
			}
			r.visible++
			r.fillRect(it.Bounds, it.Color)
		case core.ItemGradient:
			if _, ok := r.frames.Place(it.Bounds); !ok {
				continue
			}
			r.visible++
			b := it.Bounds
			step := b.W / gradientSteps
			for i := 0; i < gradientSteps; i++ {
				t := (float32(i) + 0.5) / gradientSteps
				strip := core.Rect{X: b.X + float32(i)*step, Y: b.Y, W: step, H: b.H}
				r.fillRect(strip, colors.Lerp(it.Color, it.End, t))
			}
		}
	}
	s.PopTransform()
	return s
}

func (r *Rasterizer) fillRect(b core.Rect, c colors.Color) {
	r.scene.Fill(scene.FillNonZero, scene.IdentityAffine(), brush(c), scene.NewRectShape(b.X, b.Y, b.W, b.H))
	r.drawn++
}

// Rasterize builds and renders list. When the debug overlay is on, stats
// text is drawn over the result.
func (r *Rasterizer) Rasterize(list *core.DisplayList) (Frame, error) {
	if r.target == nil || r.renderer == nil {
		return Frame{}, ErrNoTarget
	}

	endBuild := profiler.Start("softscene.build")
	s := r.Build(list)
	endBuild()

	endRaster := profiler.Start("softscene.raster")
	r.target.Clear(toRGBA(list.Background))
	err := r.renderer.Render(r.target, s)
	endRaster()
	if err != nil {
		return Frame{}, fmt.Errorf("softscene: render: %w", err)
	}

	f := Frame{Pixels: r.target.Data(), W: r.target.Width(), H: r.target.Height(), Epoch: s.Version()}
	if r.debug {
		img := r.target.ToImage()
		r.drawOverlay(img, list, f.Epoch)
		f.Pixels = img.Pix
	}
	return f, nil
}

// Stats exposes the tile renderer's counters for the last frame.
func (r *Rasterizer) Stats() scene.RenderStats {
	if r.renderer == nil {
		return scene.RenderStats{}
	}
	return r.renderer.Stats()
}

func (r *Rasterizer) drawOverlay(img *image.RGBA, list *core.DisplayList, epoch uint64) {
	st := r.Stats()
	b := r.lines
	b.Reset()

	var lines []string
	add := func(build func(*scratch.Buffer)) {
		m := b.Mark()
		build(b)
		lines = append(lines, b.ViewFrom(m))
	}
	add(func(b *scratch.Buffer) { b.S("backend scene  epoch ").U(epoch) })
	add(func(b *scratch.Buffer) {
		b.S("items ").I(list.DrawableCount()).S("  visible ").I(r.visible).S("  fills ").I(r.drawn)
	})
	add(func(b *scratch.Buffer) {
		b.S("tiles ").I(st.TilesRendered).C('/').I(st.TilesTotal).S("  raster ").F(float64(st.TimeTotal.Microseconds())/1000, 2).S(" ms")
	})
	add(func(b *scratch.Buffer) {
		b.S("heap ").F(float64(profiler.MemoryUsage())/(1<<20), 2).S(" MB  goroutines ").I(profiler.NumGoroutine())
	})

	scale := float64(list.Scale)
	if scale <= 0 {
		scale = 1
	}
	lineH := overlayFontSize * 1.4 * scale
	pad := 8 * scale
	box := image.Rect(0, 0, int(340*scale), int(float64(len(lines))*lineH+2*pad))
	draw.Draw(img, box, image.NewUniform(color.NRGBA{A: 160}), image.Point{}, draw.Over)

	// the face is sized in points at 72 DPI, so scale it with the display
	if r.scaled == nil || r.faceScale != scale {
		r.scaled = r.face.Source().Face(overlayFontSize * scale)
		r.faceScale = scale
	}
	face := r.scaled
	for i, line := range lines {
		text.Draw(img, line, face, pad, pad+float64(i+1)*lineH-lineH*0.3, color.NRGBA{R: 255, G: 230, B: 80, A: 255})
	}
}

// Close stops the tile renderer's workers.
func (r *Rasterizer) Close() {
	if r.renderer != nil {
		r.renderer.Close()
		r.renderer = nil
		r.target = nil
	}
}

func toRGBA(c colors.Color) gg.RGBA {
	return gg.RGBA2(float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3]))
}

func brush(c colors.Color) scene.Brush { return scene.SolidBrush(toRGBA(c)) }
