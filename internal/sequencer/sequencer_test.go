package sequencer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

func (r *recorder) Show(id string) { r.calls = append(r.calls, "show:"+id) }
func (r *recorder) Hide(id string) { r.calls = append(r.calls, "hide:"+id) }

func counting(times ...float64) []Entry[[]string] {
	entries := make([]Entry[[]string], len(times))
	for i, tm := range times {
		name := string(rune('a' + i))
		entries[i] = Entry[[]string]{
			Time: tm,
			Name: name,
			Action: func(s []string, p Presenter) []string {
				p.Show(name)
				return append(s, name)
			},
		}
	}
	return entries
}

func TestAdvanceCatchesUpInOrder(t *testing.T) {
	rec := &recorder{}
	s, err := New([]string(nil), rec, counting(1, 2, 3, 4))
	require.NoError(t, err)

	state, fired := s.Advance(0.5)
	assert.Empty(t, fired)
	assert.Empty(t, state)

	state, fired = s.Advance(3.2)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Equal(t, []string{"a", "b", "c"}, state)
	assert.Equal(t, []string{"show:a", "show:b", "show:c"}, rec.calls)
	assert.Equal(t, 3, s.Index())
}

func TestAdvanceNeverRefires(t *testing.T) {
	s, err := New([]string(nil), nil, counting(1, 2))
	require.NoError(t, err)

	_, fired := s.Advance(1)
	assert.Equal(t, []string{"a"}, fired)
	for _, clock := range []float64{1, 1.5, 1.9} {
		_, fired = s.Advance(clock)
		assert.Empty(t, fired, "clock %v", clock)
	}
	state, fired := s.Advance(10)
	assert.Equal(t, []string{"b"}, fired)
	assert.Equal(t, []string{"a", "b"}, state)
	assert.True(t, s.Done())

	_, fired = s.Advance(100)
	assert.Empty(t, fired)
}

func TestThresholdIsInclusive(t *testing.T) {
	s, err := New([]string(nil), nil, counting(0.5))
	require.NoError(t, err)
	_, fired := s.Advance(0.5)
	assert.Equal(t, []string{"a"}, fired)
}

func TestEqualTimesFireTogether(t *testing.T) {
	s, err := New([]string(nil), nil, counting(2, 2, 2))
	require.NoError(t, err)
	_, fired := s.Advance(2)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
}

func TestNewRejectsUnordered(t *testing.T) {
	_, err := New([]string(nil), nil, counting(1, 3, 2))
	assert.ErrorIs(t, err, ErrUnordered)
}

func TestEmptyTimelineIsDone(t *testing.T) {
	s, err := New(0, nil, []Entry[int]{})
	require.NoError(t, err)
	assert.True(t, s.Done())
	state, fired := s.Advance(1)
	assert.Zero(t, state)
	assert.Empty(t, fired)
}
