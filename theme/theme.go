// Package theme maps a fixed palette onto UI color roles.
package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type RGB [3]uint8

// Fixed plasma-style ramp, dark to bright.
var ramp = []RGB{
	{13, 8, 135},
	{84, 2, 163},
	{139, 10, 165},
	{185, 50, 137},
	{219, 92, 104},
	{244, 136, 73},
	{254, 188, 43},
	{240, 249, 33},
}

type Theme struct {
	Symbols Symbols
}

type Symbols struct {
	PadIdle    rune // · unpressed pad
	PadActive  rune // ● pressed pad
	PetalIdle  rune // ○ untouched petal
	PetalHeld  rune // ◉ touched petal
	NoteMarker rune // ▪ held note
}

func New() *Theme {
	return &Theme{
		Symbols: Symbols{
			PadIdle:    '·',
			PadActive:  '●',
			PetalIdle:  '○',
			PetalHeld:  '◉',
			NoteMarker: '▪',
		},
	}
}

// Color roles mapped to ramp positions (0-1)
const (
	RoleMuted   = 0.15
	RoleFG      = 0.45
	RoleAccent  = 0.6
	RoleActive  = 0.75
	RoleWarning = 0.9
)

func (t *Theme) FG() lipgloss.Color      { return t.Color(RoleFG) }
func (t *Theme) Muted() lipgloss.Color   { return t.Color(RoleMuted) }
func (t *Theme) Accent() lipgloss.Color  { return t.Color(RoleAccent) }
func (t *Theme) Active() lipgloss.Color  { return t.Color(RoleActive) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }

// Color returns the lipgloss color at a normalized ramp position.
func (t *Theme) Color(norm float64) lipgloss.Color {
	c := Lookup(norm)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}

// Lookup interpolates the ramp at a normalized position 0-1.
func Lookup(norm float64) RGB {
	if norm <= 0 {
		return ramp[0]
	}
	if norm >= 1 {
		return ramp[len(ramp)-1]
	}
	pos := norm * float64(len(ramp)-1)
	i := int(pos)
	f := pos - float64(i)
	a, b := ramp[i], ramp[i+1]
	var out RGB
	for k := 0; k < 3; k++ {
		out[k] = uint8(float64(a[k]) + f*(float64(b[k])-float64(a[k])))
	}
	return out
}
