package core

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// Run wires the platform window + renderer and executes the main loop.
//
// Each iteration drains one batch of events, hands it to the app, renders
// and presents. The first frame is rendered before any wait so the window
// is never left blank.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	// renderer owns GL objects in the window's context; it must go first
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{Window: win, Renderer: rend, Config: cfg, start: time.Now()}
	app.OnStart(eng)
	defer app.OnShutdown(eng)

	slog.Info("engine start", "backend", rend.Name(), "width", w, "height", h, "wait", cfg.WaitEvents)

	first := true
	for !win.ShouldClose() {
		if !first {
			batch, err := win.NextEvents(cfg.WaitEvents)
			if err != nil {
				return fmt.Errorf("poll events after frame %d: %w", eng.frames, err)
			}
			for _, ev := range batch {
				if rs, ok := ev.(EventResize); ok && rs.W > 0 && rs.H > 0 {
					rend.Resize(rs.W, rs.H)
				}
			}
			if app.OnEvents(eng, batch) {
				break
			}
		}
		first = false

		if err := app.OnRender(eng); err != nil {
			return fmt.Errorf("render frame %d: %w", eng.frames, err)
		}

		if err := win.SwapBuffers(); err != nil {
			return fmt.Errorf("present frame %d: %w", eng.frames, err)
		}
		eng.frames++
	}

	slog.Info("engine exit", "frames", eng.frames, "uptime", eng.Uptime().Round(time.Millisecond))
	return nil
}
