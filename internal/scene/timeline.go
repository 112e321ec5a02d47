package scene

import "sharks/internal/sequencer"

// Overlay element ids.
const (
	Loading = "loading"
	Play    = "play"
	Msg1    = "msg1"
	Msg2    = "msg2"
	Msg3    = "msg3"
	Msg4    = "msg4"
	Msg5    = "msg5"
)

// Cue is a timeline entry over State.
type Cue = sequencer.Entry[State]

/*
00.50 - Sound starts
12.40 - Sharks
20.02 - Key change
35.26 - Lasersharks
50.50 - Key change
65.73 - Ending tag
66.74 - Notes off
68.49 - Reverb mostly inaudible
*/

// Timeline returns the demo's cues in time order.
func Timeline() []Cue {
	return []Cue{
		{Time: 0.50, Name: "addWaterMsg", Action: addWaterMsg},
		{Time: 3.50, Name: "addWater", Action: addWater},
		{Time: 9.40, Name: "addSharksMsg", Action: addSharksMsg},
		{Time: 12.40, Name: "addSharks", Action: addSharks},
		{Time: 17.02, Name: "addLasersMsg", Action: addLasersMsg},
		{Time: 20.02, Name: "addLasers", Action: addLasers},
		{Time: 32.26, Name: "addFrickinMsg", Action: addFrickinMsg},
		{Time: 35.26, Name: "addFrickin", Action: addFrickin},
		{Time: 43.00, Name: "addFrickin2", Action: addFrickin2},
		{Time: 50.50, Name: "addFrickin3", Action: addFrickin3},
		{Time: 65.72, Name: "addEnd", Action: addEnd},
	}
}

// NewSequencer returns a sequencer over Timeline starting from Initial.
func NewSequencer(p sequencer.Presenter) *sequencer.Sequencer[State] {
	s, err := sequencer.New(Initial(), p, Timeline())
	if err != nil {
		// Timeline is a constant; this only trips if someone breaks its order.
		panic(err)
	}
	return s
}

func addWaterMsg(s State, p sequencer.Presenter) State {
	p.Show(Msg1)
	return s
}

func addWater(s State, p sequencer.Presenter) State {
	p.Hide(Msg1)
	s.ShowWater = true
	return s
}

func addSharksMsg(s State, p sequencer.Presenter) State {
	p.Show(Msg2)
	s.WaterOffset = 0
	s.MoveWater = false
	return s
}

func addSharks(s State, p sequencer.Presenter) State {
	p.Hide(Msg2)
	s.SwimSharks = true
	return s
}

func addLasersMsg(s State, p sequencer.Presenter) State {
	p.Show(Msg3)
	return s
}

func addLasers(s State, p sequencer.Presenter) State {
	p.Hide(Msg3)
	s.ShowLasers = true
	return s
}

func addFrickinMsg(s State, p sequencer.Presenter) State {
	p.Show(Msg4)
	return s
}

func addFrickin(s State, p sequencer.Presenter) State {
	p.Hide(Msg4)
	s.SwimSharks = false
	s.ShapeSharks = true
	s.ShowLasers = true
	s.DrawShape = true
	s.Shape = Cube
	return s
}

func addFrickin2(s State, _ sequencer.Presenter) State {
	s.FunkyScale = true
	return s
}

func addFrickin3(s State, _ sequencer.Presenter) State {
	s.Shape = Sphere
	return s
}

func addEnd(s State, p sequencer.Presenter) State {
	p.Show(Msg5)
	return s
}
