package midi

import (
	"fmt"
	"strings"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"chordwheel/debug"
)

// Output is the session engine's emission surface. Delivery is
// fire-and-forget: the engine assumes success and keeps its note
// bookkeeping regardless; retries are a transport concern.
type Output interface {
	EmitNote(pitch, velocity uint8, on bool)
	EmitControlChange(controller, value uint8)
}

// Port sends engine events to a gomidi output port on one channel.
type Port struct {
	name    string
	channel uint8
	out     drivers.Out
	send    func(gomidi.Message) error
}

// OpenPort connects to the first MIDI output whose name matches one of
// the preferred patterns, skipping excluded (virtual/system) ports.
// With no preferred patterns any single non-excluded port is taken.
func OpenPort(preferred, excluded []string, channel uint8) (*Port, error) {
	var candidates []drivers.Out
	for _, p := range gomidi.GetOutPorts() {
		if matchesAny(p.String(), excluded) {
			continue
		}
		candidates = append(candidates, p)
	}

	var chosen drivers.Out
	for _, pat := range preferred {
		for _, p := range candidates {
			if containsCI(p.String(), pat) {
				chosen = p
				break
			}
		}
		if chosen != nil {
			break
		}
	}
	if chosen == nil && len(preferred) == 0 && len(candidates) == 1 {
		chosen = candidates[0]
	}
	if chosen == nil {
		return nil, fmt.Errorf("midi: no matching output port (have %d)", len(candidates))
	}

	send, err := gomidi.SendTo(chosen)
	if err != nil {
		return nil, fmt.Errorf("midi: open output %q: %w", chosen.String(), err)
	}
	debug.Log("midi", "output connected: %s", chosen.String())
	return &Port{name: chosen.String(), channel: channel, out: chosen, send: send}, nil
}

// Name returns the connected port name.
func (p *Port) Name() string { return p.name }

func (p *Port) EmitNote(pitch, velocity uint8, on bool) {
	var msg gomidi.Message
	if on {
		msg = gomidi.NoteOn(p.channel, pitch, velocity)
	} else {
		msg = gomidi.NoteOff(p.channel, pitch)
	}
	if err := p.send(msg); err != nil {
		debug.Log("midi", "send note failed: %v", err)
	}
}

func (p *Port) EmitControlChange(controller, value uint8) {
	if err := p.send(gomidi.ControlChange(p.channel, controller, value)); err != nil {
		debug.Log("midi", "send cc failed: %v", err)
	}
}

// Close releases the underlying port.
func (p *Port) Close() error {
	if p.out != nil {
		return p.out.Close()
	}
	return nil
}

// Capture records emitted events in order. Used by tests and by the
// miditest dry run.
type Capture struct {
	mu      sync.Mutex
	Channel uint8
	Events  []Event
}

func (c *Capture) EmitNote(pitch, velocity uint8, on bool) {
	typ := NoteOff
	if on {
		typ = NoteOn
	} else {
		velocity = 0
	}
	c.mu.Lock()
	c.Events = append(c.Events, Event{Type: typ, Channel: c.Channel, Note: pitch, Velocity: velocity})
	c.mu.Unlock()
}

func (c *Capture) EmitControlChange(controller, value uint8) {
	c.mu.Lock()
	c.Events = append(c.Events, Event{Type: CC, Channel: c.Channel, Note: controller, Velocity: value})
	c.mu.Unlock()
}

// Take returns the recorded events and clears the buffer.
func (c *Capture) Take() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.Events
	c.Events = nil
	return out
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func matchesAny(name string, patterns []string) bool {
	for _, pat := range patterns {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}
