package main

import (
	"fmt"
	"log/slog"

	"github.com/hubastard/musique/engine/config"
	"github.com/hubastard/musique/engine/core"
	"github.com/hubastard/musique/engine/profiler"
	"github.com/hubastard/musique/engine/view"
)

// App owns the view state and threads it through the reducer once per batch.
type App struct {
	settings config.Settings
	state    view.ViewState
}

func NewApp(s config.Settings) *App { return &App{settings: s} }

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 16)

	w, h := e.Window.FramebufferSize()
	a.state = view.NewViewState(w, h, e.Window.ContentScale())
	e.Renderer.SetDebug(a.state.DebugOverlay)
	slog.Debug("view state", "layout", a.state.Layout, "dpi", a.state.DPIFactor)
}

func (a *App) OnEvents(e *core.Engine, batch []core.Event) bool {
	for _, ev := range batch {
		slog.Debug("event", "type", fmt.Sprintf("%T", ev), "ev", ev)
		if k, ok := ev.(core.EventKey); ok && k.Down && !k.Repeat && k.Key == core.KeyP && k.Mods&core.ModCtrl != 0 {
			dumpProfile()
		}
	}

	debug := a.state.DebugOverlay
	var ch view.Changes
	a.state, ch = view.Reduce(a.state, batch, a.settings.Reduce)
	if ch.Quit {
		return true
	}
	if a.state.DebugOverlay != debug {
		e.Renderer.SetDebug(a.state.DebugOverlay)
		slog.Info("debug overlay", "enabled", a.state.DebugOverlay)
	}
	if ch.Window {
		slog.Debug("window changed",
			"w", a.state.WindowW, "h", a.state.WindowH,
			"dpi", a.state.DPIFactor, "layout", a.state.Layout)
	}
	return false
}

func (a *App) OnRender(e *core.Engine) error {
	defer profiler.Start("frame")()

	endBuild := profiler.Start("frame.build")
	list := view.BuildFrame(a.state, a.settings.Style)
	endBuild()

	return e.Renderer.Render(list)
}

func (a *App) OnShutdown(e *core.Engine) {
	st := e.Renderer.Stats()
	slog.Info("shutdown",
		"frames", e.Frames(), "backend", st.Backend, "epoch", st.Epoch,
		"items", st.Items, "draw_calls", st.DrawCalls, "scroll", a.state.Scroll.Y)
}

func dumpProfile() {
	path, err := profiler.Dump()
	if err != nil {
		slog.Warn("profiler dump failed", "err", err)
		return
	}
	slog.Info("speedscope dump", "path", path)
}
