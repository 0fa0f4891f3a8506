package theory

import "fmt"

// ChordRecipe is an immutable chord formula: ordered semitone intervals
// measured from the root. The first interval is always 0.
type ChordRecipe struct {
	Name      string
	Symbol    string
	Intervals []int

	// Toggle marks the major/minor quality-flip petal: instead of
	// replacing the diatonic recipe it flips its third and seventh.
	Toggle bool
}

// Chord recipe catalog. Constructed once, never mutated.
var (
	Major      = mustRecipe("Major", "", 0, 4, 7)
	Minor      = mustRecipe("Minor", "m", 0, 3, 7)
	Diminished = mustRecipe("Diminished", "dim", 0, 3, 6)
	Augmented  = mustRecipe("Augmented", "aug", 0, 4, 8)
	Sus2       = mustRecipe("Sus2", "sus2", 0, 2, 7)
	Sus4       = mustRecipe("Sus4", "sus4", 0, 5, 7)
	Sixth      = mustRecipe("Sixth", "6", 0, 4, 7, 9)
	Dom7       = mustRecipe("Dominant 7", "7", 0, 4, 7, 10)
	Maj7       = mustRecipe("Major 7", "maj7", 0, 4, 7, 11)
	Min7       = mustRecipe("Minor 7", "m7", 0, 3, 7, 10)
	Dom9       = mustRecipe("Dominant 9", "9", 0, 4, 7, 10, 14)
	Maj9       = mustRecipe("Major 9", "maj9", 0, 4, 7, 11, 14)
	Add9       = mustRecipe("Add 9", "add9", 0, 4, 7, 14)
	Dim7       = mustRecipe("Diminished 7", "dim7", 0, 3, 6, 9)

	// QualityToggle carries Major's intervals only as a placeholder;
	// the voicing engine never stacks them directly.
	QualityToggle = &ChordRecipe{Name: "Quality Toggle", Symbol: "", Intervals: []int{0, 4, 7}, Toggle: true}
)

func mustRecipe(name, symbol string, intervals ...int) *ChordRecipe {
	if len(intervals) == 0 || intervals[0] != 0 {
		panic(fmt.Sprintf("recipe %q: first interval must be 0", name))
	}
	for i := 1; i < len(intervals); i++ {
		if intervals[i] <= intervals[i-1] {
			panic(fmt.Sprintf("recipe %q: intervals must be strictly ascending", name))
		}
	}
	return &ChordRecipe{Name: name, Symbol: symbol, Intervals: intervals}
}

// PitchClasses maps every interval to (root + interval) mod 12,
// preserving interval order.
func (r *ChordRecipe) PitchClasses(root int) []int {
	out := make([]int, len(r.Intervals))
	for i, iv := range r.Intervals {
		out[i] = (root + iv) % 12
	}
	return out
}

// Has reports whether the recipe contains the given interval.
func (r *ChordRecipe) Has(interval int) bool {
	for _, iv := range r.Intervals {
		if iv == interval {
			return true
		}
	}
	return false
}

// Third returns the third interval (3 or 4) if the recipe has one.
func (r *ChordRecipe) Third() (int, bool) {
	if r.Has(4) {
		return 4, true
	}
	if r.Has(3) {
		return 3, true
	}
	return 0, false
}

// Suspended reports whether the recipe replaces its third with a
// second or fourth (has interval 2 or 5 without 3 or 4).
func (r *ChordRecipe) Suspended() bool {
	if _, ok := r.Third(); ok {
		return false
	}
	return r.Has(2) || r.Has(5)
}

// Fifth returns the sounding fifth interval: 7 normally, 6 for a
// diminished fifth without a perfect fifth, 8 for an augmented fifth
// without a perfect fifth.
func (r *ChordRecipe) Fifth() int {
	if r.Has(7) {
		return 7
	}
	if r.Has(6) {
		return 6
	}
	if r.Has(8) {
		return 8
	}
	return 7
}

func (r *ChordRecipe) String() string {
	return r.Name
}
