package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// DefaultBaseNote maps degree 1 to C3 when the config does not say
// otherwise.
const DefaultBaseNote uint8 = 48

// Pad index of each semitone offset from the base note within one
// octave: white keys play degrees 1-7, C# is the function pad, D# the
// sustain pad. -1 offsets are unmapped.
var keyPadMap = [12]int{0, 7, 1, 8, 2, 3, -1, 4, -1, 5, -1, 6}

// KeyboardController maps one octave of an external MIDI keyboard onto
// the nine pads.
type KeyboardController struct {
	id       string
	baseNote uint8
	inPort   drivers.In
	stopFunc func()
	padChan  chan PadEvent
}

// NewKeyboardController opens the input port and starts listening.
func NewKeyboardController(id string, inPort drivers.In, baseNote uint8) (*KeyboardController, error) {
	if baseNote == 0 {
		baseNote = DefaultBaseNote
	}
	kb := &KeyboardController{
		id:       id,
		baseNote: baseNote,
		inPort:   inPort,
		padChan:  make(chan PadEvent, 32),
	}

	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		var channel, note, velocity uint8
		if msg.GetNoteStart(&channel, &note, &velocity) {
			kb.forward(note, true, velocity)
		} else if msg.GetNoteEnd(&channel, &note) {
			kb.forward(note, false, 0)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	kb.stopFunc = stop
	return kb, nil
}

func (kb *KeyboardController) forward(note uint8, down bool, velocity uint8) {
	if note < kb.baseNote || note >= kb.baseNote+12 {
		return
	}
	pad := keyPadMap[note-kb.baseNote]
	if pad < 0 {
		return
	}
	select {
	case kb.padChan <- PadEvent{Index: pad, Down: down, Velocity: velocity}:
	default:
	}
}

func (kb *KeyboardController) ID() string {
	return kb.id
}

func (kb *KeyboardController) PadEvents() <-chan PadEvent {
	return kb.padChan
}

func (kb *KeyboardController) Close() error {
	if kb.stopFunc != nil {
		kb.stopFunc()
	}
	close(kb.padChan)
	return nil
}
