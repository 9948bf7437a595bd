package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/musique/engine/core"
)

// New returns the named backend. The window's GL context must be current.
func New(name string, win core.Window, cfg core.Config) (core.Renderer, error) {
	switch name {
	case "clear":
		return NewClearRenderer(win, cfg)
	case "gl":
		return NewQuadRenderer(win, cfg)
	case "scene":
		return NewSceneRenderer(win, cfg)
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// ClearRenderer only clears the framebuffer to the list background.
type ClearRenderer struct {
	debug bool
	stats core.FrameStats
}

func NewClearRenderer(_ core.Window, _ core.Config) (*ClearRenderer, error) {
	return &ClearRenderer{stats: core.FrameStats{Backend: "clear"}}, nil
}

func (r *ClearRenderer) Name() string           { return "clear" }
func (r *ClearRenderer) SetDebug(on bool)       { r.debug = on }
func (r *ClearRenderer) Stats() core.FrameStats { return r.stats }
func (r *ClearRenderer) Shutdown()              {}

func (r *ClearRenderer) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *ClearRenderer) Render(list *core.DisplayList) error {
	bg := list.Background
	if r.debug {
		// no overlay to draw here; tint so the toggle is visible
		bg[0] = 0.4
	}
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.stats.Epoch++
	r.stats.Items = 0
	r.stats.DrawCalls = 0
	return checkError("clear")
}

// checkError drains the GL error queue and reports the first error.
func checkError(op string) error {
	first := uint32(gl.NO_ERROR)
	for i := 0; i < 8; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		if first == gl.NO_ERROR {
			first = code
		}
	}
	if first != gl.NO_ERROR {
		return fmt.Errorf("%s: gl error 0x%04x", op, first)
	}
	return nil
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}

func uniform(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}
