// miditest lists MIDI ports and plays a short progression through the
// real session engine, either to a port or as a dry-run event dump.
package main

import (
	"fmt"
	"os"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"chordwheel/layout"
	"chordwheel/midi"
	"chordwheel/session"
	"chordwheel/theory"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "play":
		play(false)
	case "dry":
		play(true)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("miditest")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list         - list all MIDI ports")
	fmt.Println("  play [port]  - play a I-vi-IV-V progression to a port")
	fmt.Println("  dry          - print the events the progression emits")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	for i, p := range gomidi.GetInPorts() {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range gomidi.GetOutPorts() {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
}

func play(dry bool) {
	var out midi.Output
	var capture *midi.Capture

	if dry {
		capture = &midi.Capture{}
		out = capture
	} else {
		var preferred []string
		if len(os.Args) > 2 {
			preferred = []string{os.Args[2]}
		}
		port, err := midi.OpenPort(preferred, []string{"Midi Through", "Through Port", "Dummy"}, 0)
		if err != nil {
			fmt.Printf("open output: %v\n", err)
			os.Exit(1)
		}
		defer port.Close()
		fmt.Printf("playing to %s\n", port.Name())
		out = port
	}

	sess := session.New(out, theory.NewKey(0, theory.ModeMajor), 4)
	progression := []int{1, 6, 4, 5} // I vi IV V

	for _, degree := range progression {
		pad := degree - 1
		sess.PadDown(pad)
		snap := sess.Snapshot()
		fmt.Printf("  %-5s %v\n", snap.ChordName, snap.ChordPitches)
		if !dry {
			time.Sleep(600 * time.Millisecond)
		}
		sess.PadUp(pad)
	}

	// Once more with the maj7 petal on degree 1.
	sess.PetalDown(layout.RingOuter, 6)
	sess.PadDown(0)
	snap := sess.Snapshot()
	fmt.Printf("  %-5s %v\n", snap.ChordName, snap.ChordPitches)
	if !dry {
		time.Sleep(900 * time.Millisecond)
	}
	sess.Panic()

	if dry {
		for _, e := range capture.Take() {
			fmt.Printf("  % X\n", e.Bytes())
		}
	}
}
