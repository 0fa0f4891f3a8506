package midi

// PadEvent mirrors a press or release on the pad surface, produced by
// an external controller.
type PadEvent struct {
	Index    int // pad index 0-8
	Down     bool
	Velocity uint8
}

// Controller is the interface for external MIDI input devices mapped
// onto the instrument's pads.
type Controller interface {
	ID() string
	PadEvents() <-chan PadEvent
	Close() error
}
