package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"chordwheel/config"
	"chordwheel/debug"
	"chordwheel/midi"
	"chordwheel/session"
	"chordwheel/theme"
	"chordwheel/theory"
	"chordwheel/tui"
)

func main() {
	debugFlag := flag.Bool("debug", false, "log to ~/.config/chordwheel/debug.log")
	portFlag := flag.String("port", "", "preferred MIDI output port name")
	flag.Parse()

	if *debugFlag {
		if err := debug.Enable(); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	preferred := cfg.Output.PreferredPorts
	if *portFlag != "" {
		preferred = []string{*portFlag}
	}

	// Without a port the engine still runs; events land in a capture
	// sink so the panel stays usable for practice.
	var out midi.Output
	port, err := midi.OpenPort(preferred, cfg.Output.ExcludedPorts, cfg.Output.Channel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "no MIDI output (%v) - running silent\n", err)
		out = &midi.Capture{Channel: cfg.Output.Channel}
	} else {
		defer port.Close()
		out = port
	}

	mode := theory.ModeMajor
	if cfg.Key.Minor {
		mode = theory.ModeMinor
	}
	sess := session.New(out, theory.NewKey(cfg.Key.Root, mode), cfg.BaseOctave)
	if cfg.Velocity > 0 {
		sess.SetVelocity(cfg.Velocity)
	}

	var wanted []midi.WantedController
	for _, c := range cfg.AutoConnectControllers() {
		wanted = append(wanted, midi.WantedController{PortName: c.PortName, BaseNote: c.BaseNote})
	}
	deviceMgr := midi.NewDeviceManager(wanted)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go deviceMgr.Run(ctx)

	m := tui.NewModel(sess, deviceMgr, theme.New())
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Quit path already panicked the session; nothing left sounding.
}
