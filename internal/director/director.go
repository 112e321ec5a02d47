// Package director advances the demo one frame at a time: it reads the
// clocks, fires due timeline cues and hands the renderer the resulting frame.
package director

import (
	"context"
	"time"

	"go.uber.org/zap"

	"sharks/internal/frame"
	"sharks/internal/pipeline"
	"sharks/internal/scene"
	"sharks/internal/sequencer"
)

// Director owns the timeline for one run of the demo.
type Director struct {
	seq    *sequencer.Sequencer[scene.State]
	logger *zap.Logger
}

// New returns a director whose cues drive p.
func New(p sequencer.Presenter, logger *zap.Logger) *Director {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Director{seq: scene.NewSequencer(p), logger: logger}
}

// Step fires every cue due at the tick's music time and returns the frame to
// draw.
func (d *Director) Step(t frame.Tick) pipeline.Frame {
	state, fired := d.seq.Advance(t.Music)
	for _, name := range fired {
		d.logger.Debug("cue",
			zap.String("cue", name),
			zap.Float64("clock", t.Music),
			zap.Int("frame", t.Count),
		)
	}
	return pipeline.Frame{
		State:   state,
		Elapsed: t.Elapsed,
		Music:   t.Music,
		Count:   t.Count,
	}
}

// Cue returns the index of the next cue and the number of cues.
func (d *Director) Cue() (int, int) {
	return d.seq.Index(), d.seq.Len()
}

// Done reports whether the whole timeline has played.
func (d *Director) Done() bool {
	return d.seq.Done()
}

// RunHeadless plays the timeline without a window: music is the clock, wait
// paces the frames. It returns once the last cue fired or ctx ends.
func (d *Director) RunHeadless(ctx context.Context, music frame.MusicClock, wait frame.Waiter) error {
	loop := frame.NewLoop(frame.NewClock(music, nil), wait)
	var last scene.State
	return loop.Run(ctx, func(t frame.Tick) error {
		f := d.Step(t)
		if f.State != last {
			d.logger.Info("state",
				zap.Float64("clock", t.Music),
				zap.Bool("water", f.State.ShowWater),
				zap.Bool("swim", f.State.SwimSharks),
				zap.Bool("shape", f.State.ShapeSharks),
				zap.Bool("lasers", f.State.ShowLasers),
				zap.Stringer("mesh", f.State.Shape),
			)
			last = f.State
		}
		if d.Done() {
			return frame.ErrStop
		}
		return nil
	})
}

// FrameInterval is the headless frame period.
const FrameInterval = time.Second / 60
