// Package config loads application settings: built-in defaults, optionally
// overridden by a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/hubastard/musique/engine/colors"
	"github.com/hubastard/musique/engine/core"
	"github.com/hubastard/musique/engine/view"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Backends lists the accepted renderer names.
var Backends = []string{"clear", "gl", "scene"}

// File mirrors the TOML layout. Pointer fields distinguish unset from zero.
type File struct {
	Title        *string    `toml:"title"`
	Width        *int       `toml:"width"`
	Height       *int       `toml:"height"`
	VSync        *bool      `toml:"vsync"`
	WaitEvents   *bool      `toml:"wait_events"`
	EmulateTouch *bool      `toml:"emulate_touch"`
	Backend      *string    `toml:"backend"`
	Style        *string    `toml:"style"`
	LineHeight   *float64   `toml:"line_height"`
	LogLevel     *string    `toml:"log_level"`
	ClearColor   []float32  `toml:"clear_color"`
	Rows         *RowsTable `toml:"rows"`
}

type RowsTable struct {
	Count      *int     `toml:"count"`
	Height     *float32 `toml:"height"`
	Gap        *float32 `toml:"gap"`
	Inset      *float32 `toml:"inset"`
	Fade       *string  `toml:"fade"`
	CursorBand *bool    `toml:"cursor_band"`
}

// Settings is the resolved configuration.
type Settings struct {
	Engine   core.Config
	Backend  string
	Style    view.FrameStyle
	Reduce   view.ReduceConfig
	LogLevel slog.Level

	// file-level style overrides, re-applied whenever the preset changes
	rows       *RowsTable
	clearColor *colors.Color
}

func Default() Settings {
	return Settings{
		Engine: core.Config{
			Title:        "Musique",
			Width:        1280,
			Height:       720,
			VSync:        true,
			WaitEvents:   true,
			EmulateTouch: true,
		},
		Backend:  "scene",
		Style:    view.StyleRows,
		Reduce:   view.DefaultReduceConfig(),
		LogLevel: slog.LevelInfo,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := s.Apply(b); err != nil {
		return s, fmt.Errorf("config %q: %w", path, err)
	}
	return s, nil
}

// Apply decodes a TOML document and merges it into s. Unknown keys are
// rejected.
func (s *Settings) Apply(doc []byte) error {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(doc))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return fmt.Errorf("%w: %s", ErrInvalid, sme.String())
		}
		return fmt.Errorf("decode toml: %w", err)
	}
	return s.merge(f)
}

func (s *Settings) merge(f File) error {
	if f.ClearColor != nil {
		if len(f.ClearColor) != 4 {
			return fmt.Errorf("%w: clear_color needs 4 components, got %d", ErrInvalid, len(f.ClearColor))
		}
		c := colors.Color(f.ClearColor)
		s.clearColor = &c
	}
	if f.Rows != nil {
		s.rows = f.Rows
	}
	if f.Style != nil {
		if err := s.SetStyle(*f.Style); err != nil {
			return err
		}
	} else if err := s.refineStyle(); err != nil {
		return err
	}

	if f.Title != nil {
		s.Engine.Title = *f.Title
	}
	if f.Width != nil {
		s.Engine.Width = *f.Width
	}
	if f.Height != nil {
		s.Engine.Height = *f.Height
	}
	if f.VSync != nil {
		s.Engine.VSync = *f.VSync
	}
	if f.WaitEvents != nil {
		s.Engine.WaitEvents = *f.WaitEvents
	}
	if f.EmulateTouch != nil {
		s.Engine.EmulateTouch = *f.EmulateTouch
	}
	if f.Backend != nil {
		s.Backend = *f.Backend
	}
	if f.LineHeight != nil {
		s.Reduce.LineHeight = *f.LineHeight
	}
	if f.LogLevel != nil {
		if err := s.LogLevel.UnmarshalText([]byte(*f.LogLevel)); err != nil {
			return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
		}
	}
	return s.Validate()
}

// SetStyle replaces the row style with a named preset. Explicit [rows] keys
// and clear_color from the config file still refine the new preset.
func (s *Settings) SetStyle(name string) error {
	st, ok := view.Styles[name]
	if !ok {
		return fmt.Errorf("%w: unknown style %q", ErrInvalid, name)
	}
	s.Style = st
	return s.refineStyle()
}

func (s *Settings) refineStyle() error {
	if s.clearColor != nil {
		s.Style.Background = *s.clearColor
	}
	r := s.rows
	if r == nil {
		return nil
	}
	if r.Count != nil {
		s.Style.RowCount = *r.Count
	}
	if r.Height != nil {
		s.Style.RowHeight = *r.Height
	}
	if r.Gap != nil {
		s.Style.RowGap = *r.Gap
	}
	if r.Inset != nil {
		s.Style.RowInset = *r.Inset
	}
	if r.Fade != nil {
		fade, err := view.ParseFade(*r.Fade)
		if err != nil {
			return fmt.Errorf("%w: rows.fade: %v", ErrInvalid, err)
		}
		s.Style.Fade = fade
	}
	if r.CursorBand != nil {
		s.Style.CursorBand = *r.CursorBand
		if s.Style.CursorBand && s.Style.BandHeight <= 0 {
			s.Style.BandHeight = view.StyleRows.BandHeight
		}
	}
	return nil
}

func (s Settings) Validate() error {
	switch {
	case s.Engine.Width <= 0 || s.Engine.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, s.Engine.Width, s.Engine.Height)
	case s.Reduce.LineHeight <= 0:
		return fmt.Errorf("%w: line_height %v must be positive", ErrInvalid, s.Reduce.LineHeight)
	case s.Style.RowCount < 0:
		return fmt.Errorf("%w: rows.count %d is negative", ErrInvalid, s.Style.RowCount)
	case s.Style.RowHeight <= 0:
		return fmt.Errorf("%w: rows.height %v must be positive", ErrInvalid, s.Style.RowHeight)
	case s.Style.RowGap < 0 || s.Style.RowGap >= s.Style.RowHeight:
		return fmt.Errorf("%w: rows.gap %v outside [0, height)", ErrInvalid, s.Style.RowGap)
	}
	for _, b := range Backends {
		if s.Backend == b {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown backend %q (want one of %v)", ErrInvalid, s.Backend, Backends)
}
