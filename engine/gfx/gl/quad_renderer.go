package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/musique/engine/assets"
	"github.com/hubastard/musique/engine/colors"
	"github.com/hubastard/musique/engine/core"
	"github.com/hubastard/musique/engine/profiler"
)

const maxQuads = 4096

// QuadRenderer draws display lists as batched colored quads. Scroll frames
// map to glScissor.
type QuadRenderer struct {
	program uint32
	uVP     int32
	batch   *quadBatch

	fbW, fbH int
	frames   core.FrameState
	outlines []core.Rect
	debug    bool
	stats    core.FrameStats
}

func NewQuadRenderer(_ core.Window, _ core.Config) (*QuadRenderer, error) {
	vs, fs, err := assets.LoadProgram("quad")
	if err != nil {
		return nil, err
	}
	prog, err := makeProgram(vs, fs)
	if err != nil {
		return nil, fmt.Errorf("quad program: %w", err)
	}
	r := &QuadRenderer{
		program: prog,
		uVP:     uniform(prog, "uVP"),
		batch:   newQuadBatch(maxQuads),
		stats:   core.FrameStats{Backend: "gl"},
	}
	if err := checkError("quad renderer init"); err != nil {
		r.Shutdown()
		return nil, err
	}
	return r, nil
}

func (r *QuadRenderer) Name() string           { return "gl" }
func (r *QuadRenderer) SetDebug(on bool)       { r.debug = on }
func (r *QuadRenderer) Stats() core.FrameStats { return r.stats }

func (r *QuadRenderer) Resize(w, h int) {
	r.fbW, r.fbH = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *QuadRenderer) Render(list *core.DisplayList) error {
	defer profiler.Start("gl.render")()

	bg := list.Background
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.UseProgram(r.program)
	vp := screenProjection(list.Viewport.X, list.Viewport.Y)
	gl.UniformMatrix4fv(r.uVP, 1, false, &vp[0])

	scale := list.Scale
	if scale <= 0 {
		scale = 1
	}
	r.frames.Reset()
	r.outlines = r.outlines[:0]
	r.batch.begin()

	for _, it := range list.Items {
		switch it.Kind {
		case core.ItemPushScrollFrame:
			r.batch.flush()
			r.frames.Push(it)
			r.scissor(scale)
		case core.ItemPopScrollFrame:
			r.batch.flush()
			r.frames.Pop()
			r.scissor(scale)
		case core.ItemRect, core.ItemGradient:
			placed, ok := r.frames.Place(it.Bounds)
			if !ok {
				continue
			}
			if it.Kind == core.ItemRect {
				r.batch.solid(placed, it.Color)
			} else {
				r.batch.horizontal(placed, it.Color, it.End)
			}
			if r.debug {
				r.outlines = append(r.outlines, placed)
			}
		}
	}
	r.batch.flush()

	if r.debug {
		gl.Disable(gl.SCISSOR_TEST)
		for _, o := range r.outlines {
			r.batch.outline(o, 1, colors.Yellow)
		}
		r.batch.flush()
	}

	gl.UseProgram(0)
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.BLEND)

	r.stats.Epoch++
	r.stats.Items = list.DrawableCount()
	r.stats.DrawCalls = r.batch.drawCalls
	return checkError("gl render")
}

// scissor applies the innermost clip, converting logical units to
// framebuffer pixels (GL scissor origin is bottom-left).
func (r *QuadRenderer) scissor(scale float32) {
	clip, ok := r.frames.Clip()
	if !ok {
		gl.Disable(gl.SCISSOR_TEST)
		return
	}
	x := int32(clip.X * scale)
	w := int32(clip.W * scale)
	h := int32(clip.H * scale)
	y := int32(r.fbH) - int32(clip.MaxY()*scale)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(x, y, max(w, 0), max(h, 0))
}

func (r *QuadRenderer) Shutdown() {
	if r.batch != nil {
		r.batch.delete()
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}
