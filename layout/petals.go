package layout

import "chordwheel/theory"

// Ring identifies a petal wheel ring. Outer petals request the spread
// voicing, inner petals request auto voice leading.
type Ring int

const (
	RingOuter Ring = iota
	RingInner
)

func (r Ring) String() string {
	if r == RingInner {
		return "inner"
	}
	return "outer"
}

// PetalsPerRing is the number of petals in each ring.
const PetalsPerRing = 12

// PetalConfig describes one wheel segment. Index doubles as the
// chromatic pitch class when the wheel selects a key.
type PetalConfig struct {
	Index  int
	Ring   Ring
	Angle  float64 // degrees clockwise from twelve o'clock
	Recipe *theory.ChordRecipe
}

// Both rings share one recipe table by index.
var petalRecipes = [PetalsPerRing]*theory.ChordRecipe{
	theory.QualityToggle,
	theory.Sus2,
	theory.Sus4,
	theory.Add9,
	theory.Sixth,
	theory.Dom7,
	theory.Maj7,
	theory.Min7,
	theory.Dom9,
	theory.Dim7,
	theory.Augmented,
	theory.Maj9,
}

// Petal looks up a petal config with index wraparound.
func Petal(ring Ring, index int) PetalConfig {
	i := ((index % PetalsPerRing) + PetalsPerRing) % PetalsPerRing
	return PetalConfig{
		Index:  i,
		Ring:   ring,
		Angle:  float64(i) * 360.0 / PetalsPerRing,
		Recipe: petalRecipes[i],
	}
}

// PitchClass returns the chromatic pitch class this petal selects when
// the wheel is used for key changes.
func (p PetalConfig) PitchClass() int {
	return p.Index
}
