// Package frame turns "draw the next frame" into an explicit loop: a Waiter
// blocks until the next frame is due, then the loop hands the step function a
// Tick with the frame counter and both clocks.
package frame

import (
	"context"
	"errors"
	"time"
)

// ErrStop ends Run without reporting an error.
var ErrStop = errors.New("frame: stop")

// MusicClock is the audio position in seconds.
type MusicClock interface {
	CurrentTime() float64
}

// Tick describes one frame.
type Tick struct {
	// Count starts at 1 for the first frame.
	Count int
	// Elapsed is the wall time in seconds since the first frame.
	Elapsed float64
	// Music is the soundtrack position in seconds.
	Music float64
}

// Clock produces ticks.
type Clock struct {
	music MusicClock
	now   func() time.Time
	start time.Time
	count int
}

// NewClock returns a clock reading music. A nil now uses time.Now.
func NewClock(music MusicClock, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{music: music, now: now}
}

// SetMusic swaps the music clock, for when the soundtrack finishes loading
// after the loop started.
func (c *Clock) SetMusic(m MusicClock) {
	c.music = m
}

// Next advances the frame counter and returns the tick for this frame.
func (c *Clock) Next() Tick {
	now := c.now()
	if c.count == 0 {
		c.start = now
	}
	c.count++
	t := Tick{
		Count:   c.count,
		Elapsed: now.Sub(c.start).Seconds(),
	}
	if c.music != nil {
		t.Music = c.music.CurrentTime()
	}
	return t
}

// Waiter blocks until the next frame is due.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Loop drives step once per frame.
type Loop struct {
	clock *Clock
	wait  Waiter
}

// NewLoop returns a loop over clock paced by wait.
func NewLoop(clock *Clock, wait Waiter) *Loop {
	return &Loop{clock: clock, wait: wait}
}

// Run calls step for every frame until the context ends, the waiter fails or
// step returns an error. ErrStop is reported as nil.
func (l *Loop) Run(ctx context.Context, step func(Tick) error) error {
	for {
		if err := l.wait.Wait(ctx); err != nil {
			return err
		}
		if err := step(l.clock.Next()); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
}

// Ticker waits on a time.Ticker.
type Ticker struct {
	t *time.Ticker
}

// NewTicker returns a waiter firing every d.
func NewTicker(d time.Duration) *Ticker {
	return &Ticker{t: time.NewTicker(d)}
}

// Wait blocks until the next tick or the context ends.
func (t *Ticker) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.t.C:
		return nil
	}
}

// Stop releases the ticker.
func (t *Ticker) Stop() {
	t.t.Stop()
}
