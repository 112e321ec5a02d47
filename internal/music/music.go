// Package music plays the soundtrack and exposes its playback position as the
// demo clock.
package music

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
)

// SampleRate is the rate the audio context runs at.
const SampleRate = 44100

// Clock reports the authoritative timeline position in seconds.
type Clock interface {
	CurrentTime() float64
}

// Source opens a referenced asset.
type Source interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// Track is a decoded mp3 bound to an audio player. It does not loop.
type Track struct {
	player  *audio.Player
	started bool
}

// Load reads and decodes the mp3 at ref. The whole file is buffered so the
// decoder gets a seekable stream.
func Load(ctx context.Context, actx *audio.Context, src Source, ref string) (*Track, error) {
	rc, err := src.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	stream, err := mp3.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	player, err := actx.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("player %s: %w", ref, err)
	}
	return &Track{player: player}, nil
}

// Play starts playback. Calling it again is a no-op.
func (t *Track) Play() {
	if t.started {
		return
	}
	t.started = true
	t.player.Play()
}

// Started reports whether Play was called.
func (t *Track) Started() bool {
	return t.started
}

// CurrentTime returns the playback position in seconds.
func (t *Track) CurrentTime() float64 {
	return t.player.Position().Seconds()
}

// Close stops playback and releases the player.
func (t *Track) Close() error {
	if t.player == nil {
		return nil
	}
	return t.player.Close()
}

// WallClock is a Clock that counts real time from Start. It stands in for the
// soundtrack when running without audio.
type WallClock struct {
	now   func() time.Time
	start time.Time
}

// NewWallClock returns a stopped wall clock. A nil now uses time.Now.
func NewWallClock(now func() time.Time) *WallClock {
	if now == nil {
		now = time.Now
	}
	return &WallClock{now: now}
}

// Start begins counting from zero.
func (w *WallClock) Start() {
	w.start = w.now()
}

// CurrentTime returns the seconds elapsed since Start, or 0 before it.
func (w *WallClock) CurrentTime() float64 {
	if w.start.IsZero() {
		return 0
	}
	return w.now().Sub(w.start).Seconds()
}
