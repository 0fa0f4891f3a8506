// Package session owns the live playing state: it turns pad and petal
// input into voicing engine calls and an ordered stream of MIDI note
// and CC events.
package session

import (
	"sort"
	"sync"

	"chordwheel/debug"
	"chordwheel/layout"
	"chordwheel/midi"
	"chordwheel/theory"
	"chordwheel/voicing"
)

// PlayMode selects how a built chord is emitted.
type PlayMode int

const (
	// PlayFull emits every chord tone.
	PlayFull PlayMode = iota
	// PlayBass emits only the lowest chord tone.
	PlayBass
)

func (m PlayMode) String() string {
	if m == PlayBass {
		return "bass"
	}
	return "full"
}

// Base octave clamp range.
const (
	MinOctave = 2
	MaxOctave = 6
)

// DefaultVelocity is used when the owner does not set one.
const DefaultVelocity = 100

// Session is the single writer over all playing state. Its methods
// serialize on an internal mutex; the held/sustained bookkeeping is a
// multi-step release-then-acquire mutation and is not safe to enter
// concurrently.
type Session struct {
	mu  sync.Mutex
	out midi.Output

	engine     *voicing.Engine
	key        theory.Key
	mode       PlayMode
	baseOctave int
	velocity   uint8

	activePad    int // pad index, -1 when none
	activeDegree int
	activePetal  *layout.PetalConfig

	functionHeld   bool
	sustainActive  bool
	sustainLatched bool

	held      map[int]bool
	sustained map[int]bool
	current   *voicing.BuiltChord

	updates chan struct{}
}

// New creates a session bound to an output. The base octave is clamped
// into [MinOctave, MaxOctave].
func New(out midi.Output, key theory.Key, baseOctave int) *Session {
	baseOctave = clampOctave(baseOctave)
	return &Session{
		out:        out,
		engine:     voicing.NewEngine(key, baseOctave),
		key:        key,
		baseOctave: baseOctave,
		velocity:   DefaultVelocity,
		activePad:  -1,
		held:       make(map[int]bool),
		sustained:  make(map[int]bool),
		updates:    make(chan struct{}, 1),
	}
}

// SetVelocity sets the note-on velocity for subsequent chords.
func (s *Session) SetVelocity(v uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v > 127 {
		v = 127
	}
	s.velocity = v
}

// Updates signals after every state change; the render layer drains it
// and calls Snapshot. Sends never block.
func (s *Session) Updates() <-chan struct{} { return s.updates }

// PadDown handles a pad press, dispatched by pad type.
func (s *Session) PadDown(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pad := layout.Pad(index)
	switch pad.Type {
	case layout.PadDegree:
		// Release-before-acquire: no pitch may ever belong to two
		// chords at once.
		s.releaseHeld()
		s.activePad = pad.Index
		s.activeDegree = pad.Degree
		s.renderChord()
	case layout.PadFunction:
		s.functionHeld = true
	case layout.PadSustain:
		s.sustainActive = true
		s.out.EmitControlChange(midi.CCSustain, 127)
	}
	s.notify()
}

// PadUp handles a pad release.
func (s *Session) PadUp(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pad := layout.Pad(index)
	switch pad.Type {
	case layout.PadDegree:
		if pad.Index != s.activePad {
			return
		}
		s.activePad = -1
		s.activeDegree = 0
		if s.sustainActive || s.sustainLatched {
			for p := range s.held {
				s.sustained[p] = true
			}
			s.held = make(map[int]bool)
		} else {
			s.releaseHeld()
			s.current = nil
		}
	case layout.PadFunction:
		s.functionHeld = false
	case layout.PadSustain:
		s.sustainActive = false
		if !s.sustainLatched {
			s.flushSustained()
		}
	}
	s.notify()
}

// ToggleSustainLatch flips the latch. Turning it off flushes exactly
// like releasing the sustain pad.
func (s *Session) ToggleSustainLatch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sustainLatched = !s.sustainLatched
	if s.sustainLatched {
		s.out.EmitControlChange(midi.CCSustain, 127)
	} else {
		s.flushSustained()
	}
	s.notify()
}

// PetalDown handles a wheel touch. With the function pad held the
// petal selects a key (outer ring major, inner ring the parallel
// minor); otherwise it becomes the active recipe override and a
// sounding chord is re-rendered with it.
func (s *Session) PetalDown(ring layout.Ring, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	petal := layout.Petal(ring, index)
	if s.functionHeld {
		mode := theory.ModeMajor
		if ring == layout.RingInner {
			mode = theory.ModeMinor
		}
		s.setKey(theory.NewKey(petal.PitchClass(), mode))
		s.notify()
		return
	}

	s.activePetal = &petal
	if s.activePad >= 0 {
		s.releaseHeld()
		s.renderChord()
	}
	s.notify()
}

// PetalUp clears the override; a sounding chord re-renders to its
// diatonic default.
func (s *Session) PetalUp() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activePetal = nil
	if s.activePad >= 0 {
		s.releaseHeld()
		s.renderChord()
	}
	s.notify()
}

// SetKey replaces the current key. It does not retrigger a sounding
// chord.
func (s *Session) SetKey(key theory.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setKey(key)
	s.notify()
}

func (s *Session) setKey(key theory.Key) {
	s.key = key
	s.engine.SetKey(key)
	s.engine.ResetLeader()
	debug.Log("session", "key set: %s", key)
}

// SetBaseOctave clamps and rebinds the base octave.
func (s *Session) SetBaseOctave(o int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseOctave = clampOctave(o)
	s.engine.SetBaseOctave(s.baseOctave)
	s.notify()
}

// SetPlayMode switches the play mode. It resets the voice leader only;
// callers pair it with Panic when the switch should also cut audio.
func (s *Session) SetPlayMode(m PlayMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
	s.engine.ResetLeader()
	s.notify()
}

// Panic force-releases everything. Idempotent: a second immediate call
// emits nothing further.
func (s *Session) Panic() {
	s.mu.Lock()
	defer s.mu.Unlock()

	outstanding := len(s.held)+len(s.sustained) > 0
	for _, p := range sortedPitches(s.held, s.sustained) {
		s.noteOff(p)
	}
	if outstanding || s.sustainActive || s.sustainLatched {
		s.out.EmitControlChange(midi.CCSustain, 0)
	}
	s.held = make(map[int]bool)
	s.sustained = make(map[int]bool)
	s.sustainActive = false
	s.sustainLatched = false
	s.activePad = -1
	s.activeDegree = 0
	s.activePetal = nil
	s.functionHeld = false
	s.current = nil
	s.engine.ResetLeader()
	debug.Log("session", "panic")
	s.notify()
}

// renderChord builds the chord for the active degree with the current
// override and emits its note-ons in ascending order. Callers must
// have released the previous chord's held notes first.
func (s *Session) renderChord() {
	var override *theory.ChordRecipe
	autoVoice := false
	if s.activePetal != nil {
		override = s.activePetal.Recipe
		autoVoice = s.activePetal.Ring == layout.RingInner
	}

	chord := s.engine.Build(s.activeDegree, override, autoVoice)
	s.current = &chord

	pitches := chord.Pitches
	if s.mode == PlayBass && len(pitches) > 1 {
		pitches = pitches[:1]
	}
	for _, p := range pitches {
		// A latched pitch being re-acquired gets its note-off first so
		// every note-on keeps exactly one matching note-off.
		if s.sustained[p] {
			s.noteOff(p)
			delete(s.sustained, p)
		}
		s.noteOn(p)
		s.held[p] = true
	}
	debug.Log("session", "chord: %s %v", chord.Name, pitches)
}

// releaseHeld emits note-offs for every held note and clears the set.
func (s *Session) releaseHeld() {
	for _, p := range sortedPitches(s.held, nil) {
		s.noteOff(p)
	}
	s.held = make(map[int]bool)
}

// flushSustained releases sustained notes that are not also held, then
// drops the pedal.
func (s *Session) flushSustained() {
	for _, p := range sortedPitches(s.sustained, nil) {
		if !s.held[p] {
			s.noteOff(p)
		}
	}
	s.sustained = make(map[int]bool)
	s.out.EmitControlChange(midi.CCSustain, 0)
	if s.activePad < 0 {
		s.current = nil
	}
}

func (s *Session) noteOn(pitch int) {
	s.out.EmitNote(uint8(pitch), s.velocity, true)
}

func (s *Session) noteOff(pitch int) {
	s.out.EmitNote(uint8(pitch), 0, false)
}

func (s *Session) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

func clampOctave(o int) int {
	if o < MinOctave {
		return MinOctave
	}
	if o > MaxOctave {
		return MaxOctave
	}
	return o
}

func sortedPitches(a, b map[int]bool) []int {
	out := make([]int, 0, len(a)+len(b))
	for p := range a {
		out = append(out, p)
	}
	for p := range b {
		if !a[p] {
			out = append(out, p)
		}
	}
	sort.Ints(out)
	return out
}
