// Package midi carries the engine's event shapes and its output and
// input device plumbing.
package midi

// MIDI status bytes
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
	CC      uint8 = 0xB0
)

// CCSustain is the sustain pedal controller number.
const CCSustain uint8 = 64

// Event is one emitted MIDI event. For CC events Note holds the
// controller number and Velocity the value.
type Event struct {
	Type     uint8 // NoteOn, NoteOff, CC
	Channel  uint8
	Note     uint8
	Velocity uint8
}

// Bytes returns the MIDI 1.0 wire form. Note-offs always carry
// velocity 0.
func (e Event) Bytes() []byte {
	if e.Type == NoteOff {
		return []byte{NoteOff | e.Channel, e.Note, 0}
	}
	return []byte{e.Type | e.Channel, e.Note, e.Velocity}
}
