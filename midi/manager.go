package midi

import (
	"context"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver

	"chordwheel/debug"
)

// DeviceEvent is emitted when controllers connect or disconnect.
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// WantedController names an input port to attach when it appears.
type WantedController struct {
	PortName string
	BaseNote uint8
}

// DeviceManager handles hot-plug detection of configured controllers.
type DeviceManager struct {
	wanted      []WantedController
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration
}

// NewDeviceManager watches for the given controllers.
func NewDeviceManager(wanted []WantedController) *DeviceManager {
	return &DeviceManager{
		wanted:      wanted,
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
	}
}

// Events returns a channel of connect/disconnect events.
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Run starts the polling loop (blocking - run in goroutine).
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	dm.scan()
	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	// Enumerate with a timeout; some platform MIDI backends can hang.
	ch := make(chan []drivers.In, 1)
	go func() { ch <- gomidi.GetInPorts() }()

	var inPorts []drivers.In
	select {
	case inPorts = <-ch:
	case <-time.After(3 * time.Second):
		debug.Log("midi", "port scan timed out, skipping")
		return
	}

	seen := make(map[string]bool)
	for i, inPort := range inPorts {
		want, ok := dm.match(inPort.String())
		if !ok {
			continue
		}
		id := inPort.String()
		seen[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		if err := inPorts[i].Open(); err != nil {
			debug.Log("midi", "open input %q failed: %v", id, err)
			continue
		}
		kb, err := NewKeyboardController(id, inPorts[i], want.BaseNote)
		if err != nil {
			debug.Log("midi", "attach %q failed: %v", id, err)
			continue
		}

		dm.mu.Lock()
		dm.controllers[id] = kb
		dm.mu.Unlock()
		debug.Log("midi", "controller connected: %s", id)
		dm.events <- DeviceEvent{Type: DeviceConnected, Controller: kb, ID: id}
	}

	// Disconnects
	dm.mu.Lock()
	var gone []string
	for id := range dm.controllers {
		if !seen[id] {
			gone = append(gone, id)
		}
	}
	for _, id := range gone {
		dm.controllers[id].Close()
		delete(dm.controllers, id)
		debug.Log("midi", "controller disconnected: %s", id)
		dm.events <- DeviceEvent{Type: DeviceDisconnected, ID: id}
	}
	dm.mu.Unlock()
}

func (dm *DeviceManager) match(portName string) (WantedController, bool) {
	for _, w := range dm.wanted {
		if containsCI(portName, w.PortName) {
			return w, true
		}
	}
	return WantedController{}, false
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}
