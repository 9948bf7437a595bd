package platform

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/musique/engine/core"
)

// GLFWWindow implements core.Window. Callbacks append to a queue that
// NextEvents hands out once per loop iteration.
type GLFWWindow struct {
	w     *glfw.Window
	queue []core.Event
	touch bool // emulate touch with the left mouse button
	drag  bool
}

// Must be called on main thread before any GL calls.
func NewGLFWWindow(cfg core.Config) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	// GL 3.2+ core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	// resolves GL entry points against the current context
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	slog.Info("gl context",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"vendor", gl.GoStr(gl.GetString(gl.VENDOR)))

	gw := &GLFWWindow{w: win, touch: cfg.EmulateTouch, queue: make([]core.Event, 0, 64)}

	// Callbacks -> translate to core.Event
	win.SetCloseCallback(func(w *glfw.Window) {
		// the loop decides when to stop
		w.SetShouldClose(false)
		gw.emit(core.EventCloseRequested{})
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		slog.Debug("framebuffer resize", "w", w, "h", h)
		gw.emit(core.EventResize{W: w, H: h, Scale: gw.ContentScale()})
	})
	win.SetContentScaleCallback(func(_ *glfw.Window, x, _ float32) {
		fw, fh := win.GetFramebufferSize()
		gw.emit(core.EventResize{W: fw, H: fh, Scale: x})
	})
	win.SetPosCallback(func(_ *glfw.Window, x, y int) {
		gw.emit(core.EventMoved{X: x, Y: y, Scale: gw.ContentScale()})
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		px, py := gw.toPixels(x, y)
		gw.emit(core.EventMouseMove{X: px, Y: py})
		if gw.drag {
			gw.emit(core.EventTouch{Phase: core.TouchMoved, X: px, Y: py})
		}
	})
	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if !gw.touch || button != glfw.MouseButtonLeft {
			return
		}
		px, py := gw.toPixels(w.GetCursorPos())
		switch action {
		case glfw.Press:
			gw.drag = true
			gw.emit(core.EventTouch{Phase: core.TouchStarted, X: px, Y: py})
		case glfw.Release:
			if gw.drag {
				gw.drag = false
				gw.emit(core.EventTouch{Phase: core.TouchEnded, X: px, Y: py})
			}
		}
	})
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused && gw.drag {
			gw.drag = false
			gw.emit(core.EventTouch{Phase: core.TouchCancelled})
		}
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == core.KeyUnknown {
			return
		}
		gw.emit(core.EventKey{
			Key:    k,
			Down:   action != glfw.Release,
			Repeat: action == glfw.Repeat,
			Mods:   translateMods(mods),
		})
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		gw.emit(core.EventScroll{DX: xoff, DY: yoff, Unit: core.ScrollLines})
	})

	return gw, nil
}

func (g *GLFWWindow) emit(ev core.Event) { g.queue = append(g.queue, ev) }

// toPixels converts GLFW screen coordinates to framebuffer pixels.
func (g *GLFWWindow) toPixels(x, y float64) (float64, float64) {
	ww, wh := g.w.GetSize()
	fw, fh := g.w.GetFramebufferSize()
	if ww <= 0 || wh <= 0 {
		return x, y
	}
	return x * float64(fw) / float64(ww), y * float64(fh) / float64(wh)
}

// core.Window impl
func (g *GLFWWindow) NextEvents(wait bool) ([]core.Event, error) {
	err := catch("poll events", func() {
		if wait && len(g.queue) == 0 {
			glfw.WaitEvents()
		} else {
			glfw.PollEvents()
		}
	})
	if err != nil {
		return nil, err
	}
	batch := make([]core.Event, len(g.queue))
	copy(batch, g.queue)
	g.queue = g.queue[:0]
	return batch, nil
}

func (g *GLFWWindow) SwapBuffers() error {
	return catch("swap buffers", g.w.SwapBuffers)
}

func (g *GLFWWindow) ShouldClose() bool           { return g.w.ShouldClose() }
func (g *GLFWWindow) FramebufferSize() (int, int) { return g.w.GetFramebufferSize() }

func (g *GLFWWindow) ContentScale() float32 {
	x, _ := g.w.GetContentScale()
	if x <= 0 {
		return 1
	}
	return x
}

func (g *GLFWWindow) Destroy() {
	g.w.Destroy()
	glfw.Terminate()
}

// catch turns a panic raised by f into an error. go-gl/glfw panics with a
// *glfw.Error on NoCurrentContext and OutOfMemory; anything that is not an
// error is re-raised.
func catch(op string, f func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		e, ok := r.(error)
		if !ok {
			panic(r)
		}
		err = fmt.Errorf("%s: %w", op, e)
	}()
	f()
	return nil
}

func translateKey(k glfw.Key) core.Key {
	switch k {
	case glfw.KeyEscape:
		return core.KeyEscape
	case glfw.KeyQ:
		return core.KeyQ
	case glfw.KeyD:
		return core.KeyD
	case glfw.KeyP:
		return core.KeyP
	default:
		return core.KeyUnknown
	}
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}
