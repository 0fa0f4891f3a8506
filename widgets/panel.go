// Package widgets renders the instrument surfaces as terminal text.
package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chordwheel/layout"
	"chordwheel/theory"
)

// PadLabels are the short captions under the 3x3 pad grid.
var PadLabels = [layout.NumPads]string{"I", "II", "III", "IV", "V", "VI", "VII", "fn", "sus"}

// RenderPads draws the 3x3 pad grid, highlighting the active pad and
// the function/sustain states.
func RenderPads(activePad int, functionHeld, sustainOn bool, active, idle lipgloss.Style) string {
	var rows []string
	for row := 0; row < 3; row++ {
		var cells []string
		for col := 0; col < 3; col++ {
			i := row*3 + col
			lit := i == activePad ||
				(layout.Pad(i).Type == layout.PadFunction && functionHeld) ||
				(layout.Pad(i).Type == layout.PadSustain && sustainOn)
			label := fmt.Sprintf("[%3s]", PadLabels[i])
			if lit {
				cells = append(cells, active.Render(label))
			} else {
				cells = append(cells, idle.Render(label))
			}
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return strings.Join(rows, "\n")
}

// RenderWheel draws one petal ring as a single line of recipe symbols,
// highlighting the touched petal and the cursor position (pass -1 for
// no cursor on this ring).
func RenderWheel(ring layout.Ring, activePetal *layout.PetalConfig, cursor int, active, cursorStyle, idle lipgloss.Style) string {
	var cells []string
	for i := 0; i < layout.PetalsPerRing; i++ {
		petal := layout.Petal(ring, i)
		sym := petal.Recipe.Symbol
		if petal.Recipe.Toggle {
			sym = "M/m"
		}
		label := fmt.Sprintf("%-4s", sym)
		switch {
		case activePetal != nil && activePetal.Ring == ring && activePetal.Index == i:
			cells = append(cells, active.Render(label))
		case i == cursor:
			cells = append(cells, cursorStyle.Render(label))
		default:
			cells = append(cells, idle.Render(label))
		}
	}
	return strings.Join(cells, "")
}

// RenderNotes draws held and sustained pitches by name.
func RenderNotes(held, sustained []int, heldStyle, susStyle lipgloss.Style) string {
	var parts []string
	for _, p := range held {
		parts = append(parts, heldStyle.Render(theory.PitchName(p)))
	}
	for _, p := range sustained {
		parts = append(parts, susStyle.Render("("+theory.PitchName(p)+")"))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// KeyBinding is a single key and its description.
type KeyBinding struct {
	Key  string
	Desc string
}

// RenderKeyHelp formats key bindings in a friendly way.
func RenderKeyHelp(keys []KeyBinding) string {
	var lines []string
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
	}
	return strings.Join(lines, "\n")
}
