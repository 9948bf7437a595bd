package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/musique/engine/colors"
	"github.com/hubastard/musique/engine/core"
)

// Vertex: pos2 + color4 => 6 floats
const vStride = 6
const vertsPerQuad = 4
const indsPerQuad = 6

// quadBatch accumulates colored quads and draws them in as few calls as
// the buffer capacity allows.
type quadBatch struct {
	vao, vbo, ebo uint32
	maxQuads      int

	verts     []float32
	quadCount int

	drawCalls int
	quads     int
}

func newQuadBatch(maxQuads int) *quadBatch {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	b := &quadBatch{
		maxQuads: maxQuads,
		verts:    make([]float32, 0, maxQuads*vertsPerQuad*vStride),
	}

	// indices never change: two triangles per quad
	inds := make([]uint32, 0, maxQuads*indsPerQuad)
	for q := 0; q < maxQuads; q++ {
		v := uint32(q * vertsPerQuad)
		inds = append(inds, v+0, v+2, v+1, v+1, v+2, v+3)
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, maxQuads*vertsPerQuad*vStride*4, nil, gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(inds)*4, gl.Ptr(inds), gl.STATIC_DRAW)

	// layout(location = 0) in vec2 aPos;
	// layout(location = 1) in vec4 aColor;
	const stride = vStride * 4 // bytes
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, gl.PtrOffset(2*4))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b
}

func (b *quadBatch) begin() {
	b.verts = b.verts[:0]
	b.quadCount = 0
	b.drawCalls = 0
	b.quads = 0
}

// add queues r with per-corner colors (TL, TR, BL, BR).
func (b *quadBatch) add(r core.Rect, tl, tr, bl, br colors.Color) {
	if b.quadCount >= b.maxQuads {
		b.flush()
	}
	x0, y0, x1, y1 := r.X, r.Y, r.MaxX(), r.MaxY()
	b.verts = append(b.verts,
		x0, y0, tl[0], tl[1], tl[2], tl[3],
		x1, y0, tr[0], tr[1], tr[2], tr[3],
		x0, y1, bl[0], bl[1], bl[2], bl[3],
		x1, y1, br[0], br[1], br[2], br[3],
	)
	b.quadCount++
	b.quads++
}

func (b *quadBatch) solid(r core.Rect, c colors.Color) { b.add(r, c, c, c, c) }

// horizontal draws a left-to-right gradient.
func (b *quadBatch) horizontal(r core.Rect, from, to colors.Color) { b.add(r, from, to, from, to) }

// outline draws a w-thick frame inside r.
func (b *quadBatch) outline(r core.Rect, w float32, c colors.Color) {
	b.solid(core.Rect{X: r.X, Y: r.Y, W: r.W, H: w}, c)
	b.solid(core.Rect{X: r.X, Y: r.MaxY() - w, W: r.W, H: w}, c)
	b.solid(core.Rect{X: r.X, Y: r.Y, W: w, H: r.H}, c)
	b.solid(core.Rect{X: r.MaxX() - w, Y: r.Y, W: w, H: r.H}, c)
}

func (b *quadBatch) flush() {
	if b.quadCount == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(b.verts)*4, gl.Ptr(b.verts))
	gl.DrawElements(gl.TRIANGLES, int32(b.quadCount*indsPerQuad), gl.UNSIGNED_INT, nil)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	b.drawCalls++

	b.verts = b.verts[:0]
	b.quadCount = 0
}

func (b *quadBatch) delete() {
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
}
