// Package tui is the terminal front panel: it renders session
// snapshots and translates keys into pad and petal input.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chordwheel/layout"
	"chordwheel/midi"
	"chordwheel/session"
	"chordwheel/theme"
	"chordwheel/widgets"
)

type Model struct {
	Session   *session.Session
	DeviceMgr *midi.DeviceManager
	Theme     *theme.Theme

	padDown     [layout.NumPads]bool
	petalCursor int
	petalRing   layout.Ring
	petalHeld   bool
	controller  midi.Controller
	quitting    bool
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

func NewModel(s *session.Session, deviceMgr *midi.DeviceManager, th *theme.Theme) Model {
	return Model{Session: s, DeviceMgr: deviceMgr, Theme: th}
}

func ListenForUpdates(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		<-s.Updates()
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event := <-deviceMgr.Events()
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForUpdates(m.Session)}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case UpdateMsg:
		return m, ListenForUpdates(m.Session)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		if event.Type == midi.DeviceConnected {
			m.controller = event.Controller

			// Forward controller pads into the session; it is the
			// single writer, the goroutine only relays.
			go func(c midi.Controller) {
				for pad := range c.PadEvents() {
					if pad.Down {
						m.Session.PadDown(pad.Index)
					} else {
						m.Session.PadUp(pad.Index)
					}
				}
			}(event.Controller)
		} else if m.controller != nil && m.controller.ID() == event.ID {
			m.controller = nil
		}
		return m, ListenForDevices(m.DeviceMgr)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.Session.Snapshot()

	switch key := msg.String(); key {
	case "q", "ctrl+c":
		m.quitting = true
		m.Session.Panic()
		return m, tea.Quit

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		// No key-release events in a terminal: digits toggle pads.
		i := int(key[0] - '1')
		if m.padDown[i] {
			m.Session.PadUp(i)
		} else {
			m.Session.PadDown(i)
		}
		m.padDown[i] = !m.padDown[i]

	case "left":
		m.petalCursor = (m.petalCursor + layout.PetalsPerRing - 1) % layout.PetalsPerRing
	case "right":
		m.petalCursor = (m.petalCursor + 1) % layout.PetalsPerRing
	case "tab":
		if m.petalRing == layout.RingOuter {
			m.petalRing = layout.RingInner
		} else {
			m.petalRing = layout.RingOuter
		}
	case "enter":
		if m.petalHeld {
			m.Session.PetalUp()
		} else {
			m.Session.PetalDown(m.petalRing, m.petalCursor)
		}
		m.petalHeld = !m.petalHeld

	case " ":
		m.Session.ToggleSustainLatch()

	case "[":
		m.Session.SetBaseOctave(snap.BaseOctave - 1)
	case "]":
		m.Session.SetBaseOctave(snap.BaseOctave + 1)

	case "k":
		m.Session.SetKey(snap.Key.Relative())
	case "K":
		m.Session.SetKey(snap.Key.Parallel())

	case "m":
		next := session.PlayFull
		if snap.Mode == session.PlayFull {
			next = session.PlayBass
		}
		// A mode switch should also cut audio.
		m.Session.Panic()
		m.Session.SetPlayMode(next)
		m.padDown = [layout.NumPads]bool{}
		m.petalHeld = false

	case "x":
		m.Session.Panic()
		m.padDown = [layout.NumPads]bool{}
		m.petalHeld = false
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Session.Snapshot()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	activeStyle := lipgloss.NewStyle().Foreground(m.Theme.Active())
	fgStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	chord := snap.ChordName
	if chord == "" {
		chord = "-"
	}
	sustain := ""
	if snap.SustainLatched {
		sustain = "  SUS:latch"
	} else if snap.SustainActive {
		sustain = "  SUS"
	}
	device := ""
	if m.controller != nil {
		device = "  KBD"
	}
	header := headerStyle.Render(fmt.Sprintf("chordwheel  %s  oct:%d  mode:%s  chord:%s%s%s",
		snap.Key, snap.BaseOctave, snap.Mode, chord, sustain, device))

	pads := widgets.RenderPads(snap.ActivePad, snap.FunctionHeld,
		snap.SustainActive || snap.SustainLatched, activeStyle, fgStyle)

	cursorStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning()).Underline(true)
	outerCursor, innerCursor := -1, -1
	if m.petalRing == layout.RingOuter {
		outerCursor = m.petalCursor
	} else {
		innerCursor = m.petalCursor
	}
	outer := widgets.RenderWheel(layout.RingOuter, snap.ActivePetal, outerCursor, activeStyle, cursorStyle, fgStyle)
	inner := widgets.RenderWheel(layout.RingInner, snap.ActivePetal, innerCursor, activeStyle, cursorStyle, fgStyle)

	notes := widgets.RenderNotes(snap.HeldNotes, snap.SustainedNotes, fgStyle, warnStyle)

	help := dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeyBinding{
		{Key: "1-7", Desc: "degree pads (toggle)"},
		{Key: "8 / 9", Desc: "function / sustain pad"},
		{Key: "arrows/tab", Desc: "petal cursor / ring"},
		{Key: "enter", Desc: "touch / release petal"},
		{Key: "space", Desc: "sustain latch"},
		{Key: "[ ]", Desc: "octave down/up"},
		{Key: "k / K", Desc: "relative / parallel key"},
		{Key: "m", Desc: "play mode"},
		{Key: "x", Desc: "panic"},
		{Key: "q", Desc: "quit"},
	}))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(pads)
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render("outer ") + outer)
	out.WriteString("\n")
	out.WriteString(dimStyle.Render("inner ") + inner)
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render("notes ") + notes)
	out.WriteString("\n\n")
	out.WriteString(help)
	return out.String()
}
