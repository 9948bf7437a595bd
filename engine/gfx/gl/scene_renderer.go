package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/musique/engine/core"
	"github.com/hubastard/musique/engine/gfx/softscene"
	"github.com/hubastard/musique/engine/profiler"
)

// SceneRenderer hands display lists to the gg scene renderer and presents
// the rasterized frame through a texture.
type SceneRenderer struct {
	raster *softscene.Rasterizer
	blit   *blitter
	stats  core.FrameStats
}

func NewSceneRenderer(_ core.Window, _ core.Config) (*SceneRenderer, error) {
	raster, err := softscene.New()
	if err != nil {
		return nil, err
	}
	blit, err := newBlitter()
	if err != nil {
		return nil, err
	}
	r := &SceneRenderer{raster: raster, blit: blit, stats: core.FrameStats{Backend: "scene"}}
	if err := checkError("scene renderer init"); err != nil {
		r.Shutdown()
		return nil, err
	}
	return r, nil
}

func (r *SceneRenderer) Name() string           { return "scene" }
func (r *SceneRenderer) SetDebug(on bool)       { r.raster.SetDebug(on) }
func (r *SceneRenderer) Stats() core.FrameStats { return r.stats }

func (r *SceneRenderer) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
	r.raster.Resize(w, h)
}

func (r *SceneRenderer) Render(list *core.DisplayList) error {
	frame, err := r.raster.Rasterize(list)
	if err != nil {
		return err
	}

	endUpload := profiler.Start("scene.upload")
	err = r.blit.upload(frame.Pixels, frame.W, frame.H)
	endUpload()
	if err != nil {
		return err
	}
	r.blit.draw()

	r.stats.Epoch = frame.Epoch
	r.stats.Items = list.DrawableCount()
	r.stats.DrawCalls = 1
	return checkError("scene present")
}

func (r *SceneRenderer) Shutdown() {
	r.raster.Close()
	if r.blit != nil {
		r.blit.delete()
	}
}
