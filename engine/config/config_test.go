package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hubastard/musique/engine/colors"
	"github.com/hubastard/musique/engine/view"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if s.Engine.Title != "Musique" {
		t.Errorf("title = %q", s.Engine.Title)
	}
	if s.Reduce.LineHeight != view.LineHeightTall {
		t.Errorf("line height = %v", s.Reduce.LineHeight)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if s.Backend != Default().Backend {
		t.Errorf("backend = %q", s.Backend)
	}
}

func TestLoadFile(t *testing.T) {
	doc := `
title = "Scroller"
width = 800
height = 600
vsync = false
wait_events = false
backend = "gl"
style = "dense"
line_height = 24.0
log_level = "debug"
clear_color = [0.0, 0.0, 0.0, 1.0]

[rows]
count = 50
fade = "alternate"
cursor_band = true
`
	path := filepath.Join(t.TempDir(), "musique.toml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Engine.Title != "Scroller" || s.Engine.Width != 800 || s.Engine.Height != 600 {
		t.Errorf("engine = %+v", s.Engine)
	}
	if s.Engine.VSync || s.Engine.WaitEvents {
		t.Errorf("booleans not applied: %+v", s.Engine)
	}
	if !s.Engine.EmulateTouch {
		t.Error("unset key overrode default")
	}
	if s.Backend != "gl" || s.Reduce.LineHeight != 24 || s.LogLevel != slog.LevelDebug {
		t.Errorf("backend=%q line=%v level=%v", s.Backend, s.Reduce.LineHeight, s.LogLevel)
	}
	if s.Style.RowHeight != view.StyleDense.RowHeight {
		t.Errorf("style preset not applied: row height %v", s.Style.RowHeight)
	}
	if s.Style.RowCount != 50 || s.Style.Fade != view.FadeAlternate || !s.Style.CursorBand || s.Style.BandHeight <= 0 {
		t.Errorf("rows = %+v", s.Style)
	}
	if s.Style.Background != colors.Black {
		t.Errorf("background = %v", s.Style.Background)
	}
}

func TestApplyRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", `colour = "red"`},
		{"unknown backend", `backend = "vulkan"`},
		{"unknown style", `style = "huge"`},
		{"bad level", `log_level = "loud"`},
		{"bad color", `clear_color = [1.0, 0.0]`},
		{"zero width", `width = 0`},
		{"negative line height", `line_height = -1.0`},
		{"gap too big", "[rows]\nheight = 10.0\ngap = 10.0"},
		{"bad fade", "[rows]\nfade = \"sideways\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			err := s.Apply([]byte(tt.doc))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Apply(%q) = %v, want ErrInvalid", tt.doc, err)
			}
		})
	}
}

func TestApplySyntaxError(t *testing.T) {
	s := Default()
	err := s.Apply([]byte("width = = 3"))
	if err == nil || errors.Is(err, ErrInvalid) {
		t.Errorf("syntax error = %v, want a decode error", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load missing = %v", err)
	}
}

func TestSetStyleKeepsFileOverrides(t *testing.T) {
	s := Default()
	doc := "style = \"rows\"\nclear_color = [0.0, 0.0, 0.0, 1.0]\n\n[rows]\ncount = 50\nfade = \"lerp\"\n"
	if err := s.Apply([]byte(doc)); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"rows", "dense"} {
		if err := s.SetStyle(name); err != nil {
			t.Fatalf("SetStyle(%q): %v", name, err)
		}
		if s.Style.RowCount != 50 || s.Style.Fade != view.FadeLerp {
			t.Errorf("SetStyle(%q) dropped [rows]: count=%d fade=%v", name, s.Style.RowCount, s.Style.Fade)
		}
		if s.Style.Background != colors.Black {
			t.Errorf("SetStyle(%q) dropped clear_color: %v", name, s.Style.Background)
		}
		if want := view.Styles[name].RowHeight; s.Style.RowHeight != want {
			t.Errorf("SetStyle(%q) row height = %v, want preset %v", name, s.Style.RowHeight, want)
		}
	}
}

func TestSetStyleWithoutFile(t *testing.T) {
	s := Default()
	if err := s.SetStyle("dense"); err != nil {
		t.Fatal(err)
	}
	if s.Style != view.StyleDense {
		t.Errorf("style = %+v, want the dense preset", s.Style)
	}
}
