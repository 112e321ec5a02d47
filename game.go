package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sharks/internal/asset"
	"sharks/internal/config"
	"sharks/internal/director"
	"sharks/internal/frame"
	"sharks/internal/music"
	"sharks/internal/overlay"
	"sharks/internal/pipeline"
	"sharks/internal/render"
	"sharks/internal/scene"
)

var errNoModels = errors.New("model bundle is empty")

// loaded is what the startup goroutine hands back to the game loop.
type loaded struct {
	models []*asset.Model
	track  *music.Track
	err    error
}

// Game is the ebiten side of the demo.
type Game struct {
	cfg    config.Config
	log    *zap.Logger
	loader *asset.Loader

	audioContext *audio.Context
	track        *music.Track

	overlay  *overlay.Overlay
	director *director.Director
	clock    *frame.Clock

	programs *render.Programs
	model    *render.Model
	renderer *render.Renderer

	results chan loaded
	frame   pipeline.Frame
	debug   bool
}

// NewGame returns a game showing the loading caption.
func NewGame(cfg config.Config, log *zap.Logger) *Game {
	ov := overlay.New(nil)
	ov.Show(scene.Loading)
	return &Game{
		cfg:          cfg,
		log:          log,
		loader:       asset.NewLoader(nil, log),
		audioContext: audio.NewContext(music.SampleRate),
		overlay:      ov,
		director:     director.New(ov, log),
		clock:        frame.NewClock(nil, nil),
		results:      make(chan loaded, 1),
		debug:        cfg.Debug,
	}
}

// StartLoading fetches the model and decodes the soundtrack in the
// background. Update picks the result up.
func (g *Game) StartLoading(ctx context.Context) {
	modelRef := asset.Join(g.cfg.Assets, g.cfg.Model)
	musicRef := asset.Join(g.cfg.Assets, g.cfg.Music)
	g.log.Info("loading", zap.String("model", modelRef), zap.String("music", musicRef))

	go func() {
		var res loaded
		eg, ctx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			models, err := g.loader.Load(ctx, modelRef)
			if err != nil {
				return fmt.Errorf("load model: %w", err)
			}
			res.models = models
			return nil
		})
		eg.Go(func() error {
			track, err := music.Load(ctx, g.audioContext, g.loader, musicRef)
			if err != nil {
				return fmt.Errorf("load music: %w", err)
			}
			res.track = track
			return nil
		})
		res.err = eg.Wait()
		g.results <- res
	}()
}

func (g *Game) ready() bool {
	return g.renderer != nil
}

// finishLoading builds the GPU side once every asset arrived.
func (g *Game) finishLoading(res loaded) error {
	if res.track != nil {
		g.track = res.track
	}
	if res.err != nil {
		return res.err
	}
	if len(res.models) == 0 {
		return errNoModels
	}

	programs, err := render.CompilePrograms()
	if err != nil {
		return err
	}
	g.programs = programs
	model, err := render.NewModel(res.models[0])
	if err != nil {
		return err
	}
	g.model = model
	g.renderer = render.New(programs, model)
	g.clock.SetMusic(g.track)

	g.overlay.Hide(scene.Loading)
	if g.cfg.Autoplay {
		g.play()
	} else {
		g.overlay.Show(scene.Play)
	}
	g.log.Info("ready", zap.Int("triangles", model.Geometry.NumTriangles()))
	return nil
}

func (g *Game) play() {
	g.overlay.Hide(scene.Play)
	g.track.Play()
	g.log.Info("music started")
}

func playPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter)
}

func (g *Game) Update() error {
	if !g.ready() {
		select {
		case res := <-g.results:
			if err := g.finishLoading(res); err != nil {
				return err
			}
		default:
			return nil
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
		g.log.Info("debug overlay", zap.Bool("enabled", g.debug))
	}
	if !g.track.Started() && playPressed() {
		g.play()
	}

	g.frame = g.director.Step(g.clock.Next())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.ready() {
		g.renderer.Draw(screen, g.frame)
	} else {
		screen.Fill(color.Black)
	}
	g.overlay.Draw(screen)

	if g.debug {
		next, total := g.director.Cue()
		msg := fmt.Sprintf("FPS: %0.1f\nmusic: %0.2f\ncue: %d/%d", ebiten.ActualFPS(), g.frame.Music, next, total)
		if g.ready() {
			st := g.renderer.Stats()
			msg += fmt.Sprintf("\nsharks: %d\nprimitives: %d\ndraws: %d", st.Sharks, st.Primitives, st.DrawCalls)
		}
		ebitenutil.DebugPrint(screen, msg)
	}
}

// Layout draws at the window's device resolution.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := ebiten.Monitor().DeviceScaleFactor()
	return int(float64(outsideWidth) * s), int(float64(outsideHeight) * s)
}

// Cleanup stops the music and releases GPU resources.
func (g *Game) Cleanup() {
	if g.track != nil {
		if err := g.track.Close(); err != nil {
			g.log.Warn("close music", zap.Error(err))
		}
	}
	if g.renderer != nil {
		g.renderer.Dispose()
	}
	if g.model != nil {
		g.model.Dispose()
	}
	if g.programs != nil {
		g.programs.Dispose()
	}
}
