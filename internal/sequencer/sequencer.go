// Package sequencer runs an ordered timeline of cues against a clock.
//
// Each cue fires once, in order, the first time the clock reaches its time.
// A single Advance may fire several cues when the clock jumped past more than
// one threshold since the previous call.
package sequencer

import (
	"errors"
	"fmt"
)

// ErrUnordered is returned by New when entry times decrease.
var ErrUnordered = errors.New("sequencer: entries must be sorted by time")

// Presenter is the display surface cues may show or hide elements on.
type Presenter interface {
	Show(id string)
	Hide(id string)
}

// Action folds one cue into the state. It may drive the presenter.
type Action[S any] func(state S, p Presenter) S

// Entry is one timeline cue.
type Entry[S any] struct {
	Time   float64
	Name   string
	Action Action[S]
}

// Sequencer holds the timeline, the index of the next cue and the state
// produced by the cues fired so far.
type Sequencer[S any] struct {
	entries   []Entry[S]
	next      int
	state     S
	presenter Presenter
}

// New returns a sequencer positioned before the first entry.
func New[S any](initial S, p Presenter, entries []Entry[S]) (*Sequencer[S], error) {
	for i := 1; i < len(entries); i++ {
		if entries[i].Time < entries[i-1].Time {
			return nil, fmt.Errorf("%w: %q at %.2f after %q at %.2f", ErrUnordered,
				entries[i].Name, entries[i].Time, entries[i-1].Name, entries[i-1].Time)
		}
	}
	if p == nil {
		p = Nop{}
	}
	return &Sequencer[S]{
		entries:   entries,
		state:     initial,
		presenter: p,
	}, nil
}

// Advance fires every pending entry whose time is <= clock and returns the
// resulting state plus the names of the entries fired by this call.
func (s *Sequencer[S]) Advance(clock float64) (S, []string) {
	var fired []string
	for s.next < len(s.entries) && clock >= s.entries[s.next].Time {
		e := s.entries[s.next]
		if e.Action != nil {
			s.state = e.Action(s.state, s.presenter)
		}
		fired = append(fired, e.Name)
		s.next++
	}
	return s.state, fired
}

// State returns the current folded state.
func (s *Sequencer[S]) State() S {
	return s.state
}

// Index returns the index of the next entry to fire.
func (s *Sequencer[S]) Index() int {
	return s.next
}

// Len returns the number of entries.
func (s *Sequencer[S]) Len() int {
	return len(s.entries)
}

// Done reports whether every entry has fired.
func (s *Sequencer[S]) Done() bool {
	return s.next == len(s.entries)
}

// Nop is a Presenter that ignores every call.
type Nop struct{}

func (Nop) Show(string) {}
func (Nop) Hide(string) {}
