package theory

import "fmt"

// Mode distinguishes major from natural minor.
type Mode int

const (
	ModeMajor Mode = iota
	ModeMinor
)

func (m Mode) String() string {
	if m == ModeMinor {
		return "minor"
	}
	return "major"
}

var (
	majorScale = [7]int{0, 2, 4, 5, 7, 9, 11}
	minorScale = [7]int{0, 2, 3, 5, 7, 8, 10}

	// Diatonic triad quality per degree: I ii iii IV V vi vii° for
	// major, i ii° III iv v VI VII for natural minor.
	majorDiatonic = [7]*ChordRecipe{Major, Minor, Minor, Major, Major, Minor, Diminished}
	minorDiatonic = [7]*ChordRecipe{Minor, Diminished, Major, Minor, Minor, Major, Major}
)

// Key is a root pitch class plus a mode.
type Key struct {
	Root int // pitch class 0-11, C=0
	Mode Mode
}

// NewKey normalizes the root into pitch-class range.
func NewKey(root int, mode Mode) Key {
	return Key{Root: ((root % 12) + 12) % 12, Mode: mode}
}

// ScaleIntervals returns the seven scale intervals for the key's mode.
func (k Key) ScaleIntervals() [7]int {
	if k.Mode == ModeMinor {
		return minorScale
	}
	return majorScale
}

// DegreeRoot returns the pitch class of scale degree d. Degrees outside
// 1-7 are a caller contract violation.
func (k Key) DegreeRoot(d int) int {
	if d < 1 || d > 7 {
		panic(fmt.Sprintf("theory: scale degree %d out of range 1-7", d))
	}
	scale := k.ScaleIntervals()
	return (k.Root + scale[d-1]) % 12
}

// DiatonicRecipe returns the triad quality naturally built on degree d.
func (k Key) DiatonicRecipe(d int) *ChordRecipe {
	if d < 1 || d > 7 {
		panic(fmt.Sprintf("theory: scale degree %d out of range 1-7", d))
	}
	if k.Mode == ModeMinor {
		return minorDiatonic[d-1]
	}
	return majorDiatonic[d-1]
}

// Relative returns the relative key: major drops three semitones to its
// relative minor, minor rises three to its relative major.
func (k Key) Relative() Key {
	if k.Mode == ModeMinor {
		return NewKey(k.Root+3, ModeMajor)
	}
	return NewKey(k.Root+9, ModeMinor)
}

// Parallel returns the same root with the opposite mode.
func (k Key) Parallel() Key {
	if k.Mode == ModeMinor {
		return Key{Root: k.Root, Mode: ModeMajor}
	}
	return Key{Root: k.Root, Mode: ModeMinor}
}

// RootName returns the key root's note name.
func (k Key) RootName() string {
	return NoteName(k.Root)
}

func (k Key) String() string {
	return k.RootName() + " " + k.Mode.String()
}
