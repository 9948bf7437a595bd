package platform

import (
	"errors"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hubastard/musique/engine/core"
)

func TestCatchTurnsPanicIntoError(t *testing.T) {
	lost := &glfw.Error{Code: glfw.VersionUnavailable, Desc: "context lost"}
	err := catch("swap buffers", func() { panic(lost) })
	var ge *glfw.Error
	if !errors.As(err, &ge) || ge.Code != glfw.VersionUnavailable {
		t.Fatalf("catch = %v, want wrapped *glfw.Error", err)
	}

	if err := catch("poll events", func() {}); err != nil {
		t.Errorf("catch without panic = %v", err)
	}
}

func TestCatchRepanicsNonErrors(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recovered %v, want boom", r)
		}
	}()
	_ = catch("swap buffers", func() { panic("boom") })
	t.Error("catch swallowed a non-error panic")
}

func TestTranslateMods(t *testing.T) {
	got := translateMods(glfw.ModControl | glfw.ModShift)
	if got != core.ModCtrl|core.ModShift {
		t.Errorf("translateMods = %v", got)
	}
	if translateKey(glfw.KeyF1) != core.KeyUnknown {
		t.Error("unmapped key translated")
	}
}
