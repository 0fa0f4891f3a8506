package midi

import (
	"bytes"
	"testing"
)

func TestEventBytes(t *testing.T) {
	cases := []struct {
		name string
		e    Event
		want []byte
	}{
		{"note on", Event{Type: NoteOn, Channel: 1, Note: 60, Velocity: 100}, []byte{0x91, 60, 100}},
		{"note off", Event{Type: NoteOff, Note: 60}, []byte{0x80, 60, 0}},
		{"note off velocity forced to zero", Event{Type: NoteOff, Note: 72, Velocity: 64}, []byte{0x80, 72, 0}},
		{"sustain on", Event{Type: CC, Note: CCSustain, Velocity: 127}, []byte{0xB0, 64, 127}},
		{"sustain off channel 3", Event{Type: CC, Channel: 3, Note: CCSustain}, []byte{0xB3, 64, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.e.Bytes(); !bytes.Equal(got, c.want) {
				t.Errorf("Bytes() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestCaptureRecordsAndDrains(t *testing.T) {
	cap := &Capture{Channel: 2}
	cap.EmitNote(48, 100, true)
	cap.EmitNote(48, 0, false)
	cap.EmitControlChange(CCSustain, 0)

	events := cap.Take()
	if len(events) != 3 {
		t.Fatalf("captured %d events, want 3", len(events))
	}
	if events[0].Type != NoteOn || events[0].Note != 48 || events[0].Channel != 2 {
		t.Errorf("first event = %+v, want note-on 48 on channel 2", events[0])
	}
	if events[1].Type != NoteOff {
		t.Errorf("second event = %+v, want note-off", events[1])
	}
	if events[2].Type != CC || events[2].Note != CCSustain {
		t.Errorf("third event = %+v, want CC64", events[2])
	}
	if left := cap.Take(); len(left) != 0 {
		t.Errorf("Take did not drain: %v", left)
	}
}
