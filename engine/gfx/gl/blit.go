package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/musique/engine/assets"
)

// blitter uploads CPU pixels into a texture and draws it over the whole
// viewport with a single fullscreen triangle.
type blitter struct {
	program uint32
	uTex    int32
	vao     uint32
	tex     uint32
	texW    int
	texH    int
}

func newBlitter() (*blitter, error) {
	vs, fs, err := assets.LoadProgram("blit")
	if err != nil {
		return nil, err
	}
	prog, err := makeProgram(vs, fs)
	if err != nil {
		return nil, fmt.Errorf("blit program: %w", err)
	}
	b := &blitter{program: prog, uTex: uniform(prog, "uTex")}

	// core profile needs a bound VAO even without attributes
	gl.GenVertexArrays(1, &b.vao)

	gl.GenTextures(1, &b.tex)
	gl.BindTexture(gl.TEXTURE_2D, b.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return b, nil
}

// upload replaces the texture contents; storage is reallocated only when
// the size changes.
func (b *blitter) upload(pix []byte, w, h int) error {
	if len(pix) < w*h*4 {
		return fmt.Errorf("blit: %d bytes for %dx%d", len(pix), w, h)
	}
	gl.BindTexture(gl.TEXTURE_2D, b.tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	if w != b.texW || h != b.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
		b.texW, b.texH = w, h
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (b *blitter) draw() {
	gl.UseProgram(b.program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.tex)
	gl.Uniform1i(b.uTex, 0)
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}

func (b *blitter) delete() {
	if b.tex != 0 {
		gl.DeleteTextures(1, &b.tex)
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.program != 0 {
		gl.DeleteProgram(b.program)
	}
}
