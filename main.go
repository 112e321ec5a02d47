package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"sharks/internal/config"
	"sharks/internal/director"
	"sharks/internal/frame"
	"sharks/internal/logger"
	"sharks/internal/music"
)

const title = "sharks with frickin' lasers"

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: cfg.Debug})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Timeline {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := runTimeline(ctx, log); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatal("timeline stopped", zap.Error(err))
		}
		return
	}

	game := NewGame(cfg, log)
	game.StartLoading(context.Background())

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)
	ebiten.SetVsyncEnabled(cfg.VSync)

	err = ebiten.RunGame(game)
	game.Cleanup()
	if err != nil {
		log.Fatal("demo stopped", zap.Error(err))
	}
}

// runTimeline plays the cue list against the wall clock and logs each state
// change, without audio or a window.
func runTimeline(ctx context.Context, log *zap.Logger) error {
	clock := music.NewWallClock(nil)
	clock.Start()
	ticker := frame.NewTicker(director.FrameInterval)
	defer ticker.Stop()

	log.Info("timeline started")
	d := director.New(&logPresenter{log: log}, log)
	if err := d.RunHeadless(ctx, clock, ticker); err != nil {
		return err
	}
	log.Info("timeline finished", zap.Float64("clock", clock.CurrentTime()))
	return nil
}

// logPresenter shows captions by logging them.
type logPresenter struct {
	log *zap.Logger
}

func (p *logPresenter) Show(id string) { p.log.Info("show", zap.String("id", id)) }
func (p *logPresenter) Hide(id string) { p.log.Info("hide", zap.String("id", id)) }
