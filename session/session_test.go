package session

import (
	"reflect"
	"testing"

	"chordwheel/layout"
	"chordwheel/midi"
	"chordwheel/theory"
)

func newTestSession() (*Session, *midi.Capture) {
	cap := &midi.Capture{}
	s := New(cap, theory.NewKey(0, theory.ModeMajor), 4)
	return s, cap
}

func countNotes(events []midi.Event) (ons, offs int) {
	for _, e := range events {
		switch e.Type {
		case midi.NoteOn:
			ons++
		case midi.NoteOff:
			offs++
		}
	}
	return
}

func TestPadPressAndReleaseBalances(t *testing.T) {
	s, cap := newTestSession()

	s.PadDown(0)
	s.PadUp(0)

	ons, offs := countNotes(cap.Take())
	if ons == 0 || ons != offs {
		t.Errorf("note-ons %d, note-offs %d, want equal and non-zero", ons, offs)
	}
	snap := s.Snapshot()
	if len(snap.HeldNotes) != 0 || len(snap.SustainedNotes) != 0 {
		t.Errorf("notes left over: held %v sustained %v", snap.HeldNotes, snap.SustainedNotes)
	}
}

func TestNoteOnsAscend(t *testing.T) {
	s, cap := newTestSession()
	s.PadDown(0)

	prev := -1
	for _, e := range cap.Take() {
		if e.Type != midi.NoteOn {
			continue
		}
		if int(e.Note) <= prev {
			t.Fatalf("note-on %d not above previous %d", e.Note, prev)
		}
		prev = int(e.Note)
	}
	if prev < 0 {
		t.Fatal("no note-ons emitted")
	}
}

func TestTonicChordShape(t *testing.T) {
	s, _ := newTestSession()
	s.PadDown(0)

	snap := s.Snapshot()
	if snap.ChordName != "C" {
		t.Errorf("chord name = %q, want %q", snap.ChordName, "C")
	}
	classes := map[int]bool{}
	for _, p := range snap.ChordPitches {
		classes[p%12] = true
	}
	if !reflect.DeepEqual(classes, map[int]bool{0: true, 4: true, 7: true}) {
		t.Errorf("chord classes = %v, want C E G", snap.ChordPitches)
	}
}

func TestSustainHoldsNotesPastPadRelease(t *testing.T) {
	s, cap := newTestSession()

	s.PadDown(8) // sustain pad
	events := cap.Take()
	if len(events) != 1 || events[0].Type != midi.CC || events[0].Note != midi.CCSustain || events[0].Velocity != 127 {
		t.Fatalf("sustain press events = %v, want CC64=127", events)
	}

	s.PadDown(0)
	ons, _ := countNotes(cap.Take())

	s.PadUp(0)
	if _, offs := countNotes(cap.Take()); offs != 0 {
		t.Fatalf("%d note-offs at pad release, want none while sustained", offs)
	}

	s.PadUp(8)
	events = cap.Take()
	_, offs := countNotes(events)
	if offs != ons {
		t.Errorf("note-offs %d after sustain release, want %d", offs, ons)
	}
	last := events[len(events)-1]
	if last.Type != midi.CC || last.Velocity != 0 {
		t.Errorf("expected trailing CC64=0, got %v", last)
	}
}

func TestSustainLatch(t *testing.T) {
	s, cap := newTestSession()

	s.ToggleSustainLatch()
	events := cap.Take()
	if len(events) != 1 || events[0].Type != midi.CC || events[0].Velocity != 127 {
		t.Fatalf("latch-on events = %v, want CC64=127", events)
	}

	s.PadDown(0)
	ons, _ := countNotes(cap.Take())
	s.PadUp(0)
	if _, offs := countNotes(cap.Take()); offs != 0 {
		t.Fatal("latched notes released at pad up")
	}

	snap := s.Snapshot()
	if len(snap.SustainedNotes) != ons {
		t.Errorf("sustained %d notes, want %d", len(snap.SustainedNotes), ons)
	}

	s.ToggleSustainLatch()
	_, offs := countNotes(cap.Take())
	if offs != ons {
		t.Errorf("latch-off released %d notes, want %d", offs, ons)
	}
}

func TestHeldAndSustainedStayDisjoint(t *testing.T) {
	s, _ := newTestSession()

	s.ToggleSustainLatch()
	s.PadDown(0)
	s.PadUp(0)
	s.PadDown(0) // re-acquires the latched pitches

	snap := s.Snapshot()
	seen := map[int]bool{}
	for _, p := range snap.HeldNotes {
		seen[p] = true
	}
	for _, p := range snap.SustainedNotes {
		if seen[p] {
			t.Fatalf("pitch %d in both held and sustained sets", p)
		}
	}
}

func TestReacquiredLatchedPitchBalancesLifetimes(t *testing.T) {
	s, cap := newTestSession()

	s.ToggleSustainLatch()
	s.PadDown(0)
	s.PadUp(0)
	cap.Take()

	s.PadDown(0)
	onCount, offCount := countNotes(cap.Take())
	if onCount != offCount {
		t.Errorf("re-acquire emitted %d ons but %d offs", onCount, offCount)
	}
}

func TestChordChangeReleasesBeforeAcquiring(t *testing.T) {
	s, cap := newTestSession()

	s.PadDown(0)
	first := cap.Take()
	s.PadDown(4) // V while I still held

	events := cap.Take()
	sawOn := false
	offs := map[uint8]bool{}
	for _, e := range events {
		switch e.Type {
		case midi.NoteOff:
			if sawOn {
				t.Fatalf("note-off after note-on in chord change: %v", events)
			}
			offs[e.Note] = true
		case midi.NoteOn:
			sawOn = true
		}
	}
	for _, e := range first {
		if e.Type == midi.NoteOn && !offs[e.Note] {
			t.Errorf("pitch %d never released before new chord", e.Note)
		}
	}
}

func TestPetalRerender(t *testing.T) {
	s, cap := newTestSession()

	s.PadDown(0)
	if snap := s.Snapshot(); snap.ChordName != "C" {
		t.Fatalf("chord = %q, want C", snap.ChordName)
	}
	held := cap.Take()

	s.PetalDown(layout.RingOuter, 6) // maj7 petal
	events := cap.Take()
	if snap := s.Snapshot(); snap.ChordName != "Cmaj7" {
		t.Errorf("chord = %q, want Cmaj7", snap.ChordName)
	}

	// Old notes fully off before any new note on.
	sawOn := false
	offCount := 0
	for _, e := range events {
		if e.Type == midi.NoteOff {
			if sawOn {
				t.Fatalf("overlapping chords at petal change: %v", events)
			}
			offCount++
		}
		if e.Type == midi.NoteOn {
			sawOn = true
		}
	}
	ons, _ := countNotes(held)
	if offCount != ons {
		t.Errorf("released %d notes at re-render, want %d", offCount, ons)
	}

	s.PetalUp()
	if snap := s.Snapshot(); snap.ChordName != "C" {
		t.Errorf("chord after petal up = %q, want C", snap.ChordName)
	}
}

func TestInnerRingAutoVoices(t *testing.T) {
	s, _ := newTestSession()

	s.PetalDown(layout.RingInner, 6)
	s.PadDown(0)

	snap := s.Snapshot()
	if snap.ChordName != "Cmaj7" {
		t.Errorf("chord = %q, want Cmaj7", snap.ChordName)
	}
	for i := 1; i < len(snap.ChordPitches); i++ {
		if snap.ChordPitches[i] <= snap.ChordPitches[i-1] {
			t.Fatalf("auto voicing not ascending: %v", snap.ChordPitches)
		}
	}
}

func TestFunctionPetalChangesKey(t *testing.T) {
	s, cap := newTestSession()

	s.PadDown(7) // function
	s.PetalDown(layout.RingOuter, 7)
	if snap := s.Snapshot(); snap.Key != theory.NewKey(7, theory.ModeMajor) {
		t.Errorf("key = %s, want G major", snap.Key)
	}

	s.PetalDown(layout.RingInner, 7)
	if snap := s.Snapshot(); snap.Key != theory.NewKey(7, theory.ModeMinor) {
		t.Errorf("key = %s, want G minor", snap.Key)
	}

	for _, e := range cap.Take() {
		if e.Type == midi.NoteOn || e.Type == midi.NoteOff {
			t.Fatalf("key change emitted note event %v", e)
		}
	}
}

func TestPanicFlushesEverything(t *testing.T) {
	s, cap := newTestSession()

	s.ToggleSustainLatch()
	s.PadDown(0)
	s.PadUp(0)
	s.PadDown(4)
	s.PadDown(7)
	cap.Take()

	s.Panic()
	events := cap.Take()
	if len(events) == 0 {
		t.Fatal("panic emitted nothing with notes outstanding")
	}

	snap := s.Snapshot()
	if len(snap.HeldNotes) != 0 || len(snap.SustainedNotes) != 0 {
		t.Error("panic left notes behind")
	}
	if snap.SustainActive || snap.SustainLatched || snap.FunctionHeld {
		t.Error("panic left flags set")
	}
	if snap.ActivePad != -1 || snap.ActivePetal != nil {
		t.Error("panic left active inputs")
	}
}

func TestPanicIsIdempotent(t *testing.T) {
	s, cap := newTestSession()

	s.PadDown(0)
	s.Panic()
	cap.Take()

	s.Panic()
	if events := cap.Take(); len(events) != 0 {
		t.Errorf("second panic emitted %v", events)
	}
}

func TestOctaveClamping(t *testing.T) {
	s, _ := newTestSession()

	s.SetBaseOctave(9)
	if snap := s.Snapshot(); snap.BaseOctave != MaxOctave {
		t.Errorf("octave = %d, want %d", snap.BaseOctave, MaxOctave)
	}
	s.SetBaseOctave(0)
	if snap := s.Snapshot(); snap.BaseOctave != MinOctave {
		t.Errorf("octave = %d, want %d", snap.BaseOctave, MinOctave)
	}
}

func TestPadIndexClamping(t *testing.T) {
	s, cap := newTestSession()

	s.PadDown(42) // clamps to the sustain pad
	events := cap.Take()
	if len(events) != 1 || events[0].Type != midi.CC {
		t.Errorf("clamped pad events = %v, want a single CC", events)
	}
}

func TestPlayBassEmitsOnlyLowestTone(t *testing.T) {
	s, cap := newTestSession()

	s.SetPlayMode(PlayBass)
	s.PadDown(0)

	ons, _ := countNotes(cap.Take())
	if ons != 1 {
		t.Errorf("bass mode emitted %d note-ons, want 1", ons)
	}
	snap := s.Snapshot()
	if len(snap.HeldNotes) != 1 {
		t.Errorf("bass mode held %v, want one pitch", snap.HeldNotes)
	}

	s.PadUp(0)
	_, offs := countNotes(cap.Take())
	if offs != 1 {
		t.Errorf("bass mode released %d notes, want 1", offs)
	}
}

func TestStalePadUpIgnored(t *testing.T) {
	s, cap := newTestSession()

	s.PadDown(0)
	s.PadDown(4) // takes over
	cap.Take()

	s.PadUp(0) // stale: pad 0 no longer active
	if _, offs := countNotes(cap.Take()); offs != 0 {
		t.Error("stale pad up released the active chord")
	}

	s.PadUp(4)
	if snap := s.Snapshot(); len(snap.HeldNotes) != 0 {
		t.Errorf("held notes after release: %v", snap.HeldNotes)
	}
}
