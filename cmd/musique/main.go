// Command musique opens a window and draws a scrollable list of colored
// rows. Scroll with the wheel or by dragging, D toggles the debug overlay,
// Escape or Q quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"github.com/hubastard/musique/engine/config"
	"github.com/hubastard/musique/engine/core"
	glbackend "github.com/hubastard/musique/engine/gfx/gl"
	"github.com/hubastard/musique/engine/platform"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	settings, err := parseSettings(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: settings.LogLevel}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.New(settings.Backend, win, cfg)
	}
	return core.Run(NewApp(settings), settings.Engine, newWindow, newRenderer)
}

// parseSettings loads the optional config file, then applies the flags
// that were set explicitly.
func parseSettings(args []string) (config.Settings, error) {
	fs := flag.NewFlagSet("musique", flag.ContinueOnError)
	var (
		path    = fs.String("config", "", "TOML config file")
		backend = fs.String("backend", "", "renderer: clear, gl or scene")
		style   = fs.String("style", "", "row style: dense or rows")
		wait    = fs.Bool("wait", true, "block for input instead of polling")
	)
	if err := fs.Parse(args); err != nil {
		return config.Settings{}, err
	}

	s, err := config.Load(*path)
	if err != nil {
		return s, err
	}
	var ferr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			s.Backend = *backend
		case "style":
			if err := s.SetStyle(*style); err != nil && ferr == nil {
				ferr = err
			}
		case "wait":
			s.Engine.WaitEvents = *wait
		}
	})
	if ferr != nil {
		return s, ferr
	}
	return s, s.Validate()
}
