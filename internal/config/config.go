// Package config collects the demo's command-line options.
package config

import (
	"errors"
	"flag"
	"os"
)

// Config holds every runtime option.
type Config struct {
	// Assets is the directory or http(s) URL the asset names are relative to.
	Assets string
	Model  string
	Music  string

	Width      int
	Height     int
	Fullscreen bool
	VSync      bool

	// Autoplay starts the music as soon as it is ready instead of waiting
	// for the play prompt.
	Autoplay bool

	// Timeline runs the sequencer headless against a wall clock and logs
	// each cue, without opening a window.
	Timeline bool

	Debug    bool
	LogLevel string
}

// Default returns the options used when no flag is given.
func Default() Config {
	return Config{
		Assets:   "assets",
		Model:    "models/BigFishA.js",
		Music:    "music/sharks.mp3",
		Width:    1280,
		Height:   720,
		VSync:    true,
		LogLevel: "info",
	}
}

// Parse reads args (without the program name) on top of Default. DEBUG=1 in
// the environment turns debug mode on as well.
func Parse(args []string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()
	fs := flag.NewFlagSet("sharks", flag.ContinueOnError)
	fs.StringVar(&cfg.Assets, "assets", cfg.Assets, "asset directory or base URL")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "model bundle, relative to -assets")
	fs.StringVar(&cfg.Music, "music", cfg.Music, "mp3 soundtrack, relative to -assets")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "window width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "window height")
	fs.BoolVar(&cfg.Fullscreen, "fullscreen", cfg.Fullscreen, "start fullscreen")
	fs.BoolVar(&cfg.VSync, "vsync", cfg.VSync, "sync frames to the display")
	fs.BoolVar(&cfg.Autoplay, "autoplay", cfg.Autoplay, "start the music without the play prompt")
	fs.BoolVar(&cfg.Timeline, "timeline", cfg.Timeline, "run the timeline headless and log cues")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "show the debug overlay")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if getenv("DEBUG") == "1" {
		cfg.Debug = true
	}
	if cfg.Debug && cfg.LogLevel == "info" {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Validate()
}

// Validate checks option ranges.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("config: window size must be positive")
	}
	if c.Assets == "" || c.Model == "" || c.Music == "" {
		return errors.New("config: asset names must not be empty")
	}
	return nil
}
