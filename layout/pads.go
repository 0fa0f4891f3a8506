// Package layout holds the static pad and petal surface tables.
package layout

// PadType classifies the nine front-panel pads.
type PadType int

const (
	PadDegree PadType = iota
	PadFunction
	PadSustain
)

// NumPads is the size of the pad surface.
const NumPads = 9

// PadConfig describes one pad. Degree is set only for PadDegree pads.
type PadConfig struct {
	Index  int
	Type   PadType
	Degree int // scale degree 1-7
}

// Pads 0-6 play scale degrees 1-7, pad 7 is the function modifier,
// pad 8 is the sustain pad.
var pads = [NumPads]PadConfig{
	{Index: 0, Type: PadDegree, Degree: 1},
	{Index: 1, Type: PadDegree, Degree: 2},
	{Index: 2, Type: PadDegree, Degree: 3},
	{Index: 3, Type: PadDegree, Degree: 4},
	{Index: 4, Type: PadDegree, Degree: 5},
	{Index: 5, Type: PadDegree, Degree: 6},
	{Index: 6, Type: PadDegree, Degree: 7},
	{Index: 7, Type: PadFunction},
	{Index: 8, Type: PadSustain},
}

// Pad looks up a pad config. Out-of-range indices are clamped into the
// surface rather than rejected; the touch layer can report edge indices
// mid-drag.
func Pad(index int) PadConfig {
	if index < 0 {
		index = 0
	}
	if index >= NumPads {
		index = NumPads - 1
	}
	return pads[index]
}
