package theory

import "fmt"

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the sharp-spelled name of a pitch class.
func NoteName(pitchClass int) string {
	return noteNames[((pitchClass%12)+12)%12]
}

// PitchName names an absolute MIDI pitch, e.g. 60 -> "C4".
func PitchName(pitch int) string {
	if pitch < 0 || pitch > 127 {
		return fmt.Sprintf("?%d", pitch)
	}
	return fmt.Sprintf("%s%d", noteNames[pitch%12], pitch/12-1)
}
