// Package voicing turns (key, degree, recipe) selections into concrete
// ascending MIDI pitch sets, with optional automatic voice leading.
package voicing

import (
	"sort"

	"chordwheel/theory"
)

const (
	// CeilingPitch is the absolute top of the playable range; voicings
	// never place a note above it.
	CeilingPitch = 96

	// Bass notes are confined to this absolute band.
	bassMin = 36
	bassMax = 72

	// At or below this base octave the open and spread voicings shift
	// their upper structure up to keep the chord out of the mud.
	lowRegimeMax = 3
)

// BuiltChord is a concrete rendering of a chord selection.
type BuiltChord struct {
	Pitches    []int // strictly ascending MIDI pitches
	RootName   string
	Recipe     *theory.ChordRecipe
	Name       string
	Degree     int // source scale degree, 0 when built from an absolute root
	AutoVoiced bool
}

// Engine builds chords for one bound key and base octave.
type Engine struct {
	key        theory.Key
	baseOctave int
	leader     *Leader
}

// NewEngine binds a key and base octave. The octave is expected to be
// pre-clamped by the owner.
func NewEngine(key theory.Key, baseOctave int) *Engine {
	return &Engine{key: key, baseOctave: baseOctave, leader: NewLeader()}
}

// SetKey rebinds the key. The caller is responsible for resetting the
// voice leader when a key change should forget the previous chord.
func (e *Engine) SetKey(key theory.Key) { e.key = key }

// Key returns the bound key.
func (e *Engine) Key() theory.Key { return e.key }

// SetBaseOctave rebinds the base octave.
func (e *Engine) SetBaseOctave(o int) { e.baseOctave = o }

// ResetLeader forgets the voice leader's previous-chord context.
func (e *Engine) ResetLeader() { e.leader.Reset() }

// Build renders the chord on a scale degree. With no override the
// diatonic triad gets the open voicing; an override recipe gets the
// spread voicing, or auto voice leading when autoVoice is set. A toggle
// override flips the diatonic quality instead of replacing it.
func (e *Engine) Build(degree int, override *theory.ChordRecipe, autoVoice bool) BuiltChord {
	root := e.key.DegreeRoot(degree)
	recipe := e.key.DiatonicRecipe(degree)

	voiced := false
	if override != nil {
		if override.Toggle {
			recipe = toggled(recipe)
		} else {
			recipe = override
		}
	}

	var pitches []int
	switch {
	case override != nil && autoVoice:
		pitches = e.leader.Voice(recipe.PitchClasses(root), e.baseOctave)
		voiced = true
	case override != nil:
		pitches = spread(recipe, root, e.baseOctave)
	default:
		pitches = openTriad(recipe, root, e.baseOctave)
	}

	return BuiltChord{
		Pitches:    pitches,
		RootName:   theory.NoteName(root),
		Recipe:     recipe,
		Name:       theory.NoteName(root) + recipe.Symbol,
		Degree:     degree,
		AutoVoiced: voiced,
	}
}

// BuildFromRoot renders a chord on an absolute root pitch class,
// bypassing the key. Used for contexts with no degree, e.g. test tones.
func (e *Engine) BuildFromRoot(root int, recipe *theory.ChordRecipe, autoVoice bool) BuiltChord {
	root = ((root % 12) + 12) % 12
	var pitches []int
	voiced := false
	if autoVoice {
		pitches = e.leader.Voice(recipe.PitchClasses(root), e.baseOctave)
		voiced = true
	} else {
		pitches = stacked(recipe.PitchClasses(root), e.baseOctave)
	}
	return BuiltChord{
		Pitches:    pitches,
		RootName:   theory.NoteName(root),
		Recipe:     recipe,
		Name:       theory.NoteName(root) + recipe.Symbol,
		AutoVoiced: voiced,
	}
}

// toggled flips a diatonic triad's quality: third 3<->4 and, when
// present, seventh 10<->11. Suspended, diminished and augmented
// recipes pass through unchanged.
func toggled(r *theory.ChordRecipe) *theory.ChordRecipe {
	third, ok := r.Third()
	if !ok || r.Suspended() {
		return r
	}
	if (r.Has(6) || r.Has(8)) && !r.Has(7) {
		return r
	}

	intervals := make([]int, len(r.Intervals))
	copy(intervals, r.Intervals)
	for i, iv := range intervals {
		switch iv {
		case 3:
			intervals[i] = 4
		case 4:
			intervals[i] = 3
		case 10:
			intervals[i] = 11
		case 11:
			intervals[i] = 10
		}
	}

	if third == 3 {
		return &theory.ChordRecipe{Name: "Major", Symbol: "", Intervals: intervals}
	}
	return &theory.ChordRecipe{Name: "Minor", Symbol: "m", Intervals: intervals}
}

// stacked is the root-position fallback: every pitch class starting at
// baseOctave*12, each bumped up by octaves until strictly above the
// previous note.
func stacked(pitchClasses []int, baseOctave int) []int {
	base := baseOctave * 12
	out := make([]int, 0, len(pitchClasses))
	prev := -1
	for _, pc := range pitchClasses {
		p := base + pc
		for p <= prev {
			p += 12
		}
		out = append(out, p)
		prev = p
	}
	return out
}

// openTriad voices the pads-only chord: bass root, third and fifth, and
// a doubled root on top.
func openTriad(r *theory.ChordRecipe, root, baseOctave int) []int {
	bass := baseOctave*12 + root%12
	third, hasThird := r.Third()
	fifth := r.Fifth()

	notes := []int{bass}
	if baseOctave <= lowRegimeMax {
		if hasThird && !r.Suspended() {
			notes = append(notes, bass+12+third)
		}
		notes = append(notes, bass+12+fifth, bass+24)
		return notes
	}

	if hasThird && !r.Suspended() {
		notes = append(notes, bass+third)
	}
	notes = append(notes, bass+fifth)
	if bass+12 <= CeilingPitch {
		notes = append(notes, bass+12)
	}
	return notes
}

// spread voices an override chord across two octaves. In the low
// regime the third and fifth sit one octave above the bass and the
// extensions two octaves up, reduced mod 12; otherwise the intervals
// stack upward from the bass, bumped only as needed, capped at the
// ceiling.
func spread(r *theory.ChordRecipe, root, baseOctave int) []int {
	bass := baseOctave*12 + root%12
	iv := r.Intervals

	if baseOctave <= lowRegimeMax {
		notes := []int{bass}
		for k := 1; k < len(iv) && k <= 2; k++ {
			notes = append(notes, bass+12+iv[k])
		}
		for k := 3; k < len(iv); k++ {
			notes = append(notes, bass+24+iv[k]%12)
		}
		sort.Ints(notes)
		return dedupe(notes)
	}

	notes := []int{bass}
	prev := bass
	for k := 1; k < len(iv); k++ {
		p := bass + iv[k]
		for p <= prev {
			p += 12
		}
		if p > CeilingPitch {
			continue
		}
		notes = append(notes, p)
		prev = p
	}
	return notes
}

func dedupe(sorted []int) []int {
	out := sorted[:0]
	for i, p := range sorted {
		if i == 0 || p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
