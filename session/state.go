package session

import (
	"chordwheel/layout"
	"chordwheel/theory"
)

// Snapshot is the read-only view handed to the render layer.
type Snapshot struct {
	Key            theory.Key
	Mode           PlayMode
	BaseOctave     int
	ActivePad      int // -1 when none
	ActivePetal    *layout.PetalConfig
	FunctionHeld   bool
	SustainActive  bool
	SustainLatched bool
	ChordName      string
	ChordPitches   []int
	HeldNotes      []int
	SustainedNotes []int
}

// Snapshot copies the current state under the session lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Key:            s.key,
		Mode:           s.mode,
		BaseOctave:     s.baseOctave,
		ActivePad:      s.activePad,
		FunctionHeld:   s.functionHeld,
		SustainActive:  s.sustainActive,
		SustainLatched: s.sustainLatched,
		HeldNotes:      sortedPitches(s.held, nil),
		SustainedNotes: sortedPitches(s.sustained, nil),
	}
	if s.activePetal != nil {
		petal := *s.activePetal
		snap.ActivePetal = &petal
	}
	if s.current != nil {
		snap.ChordName = s.current.Name
		snap.ChordPitches = append([]int(nil), s.current.Pitches...)
	}
	return snap
}
