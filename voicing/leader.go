package voicing

import "time"

// idleTimeout invalidates the previous-chord context after a pause;
// checked lazily on the next Voice call, never by a timer.
const idleTimeout = 2 * time.Second

// Candidate notes outside these absolute bounds are discarded outright.
const (
	globalMin = 24
	globalMax = CeilingPitch
)

// Leader picks chord voicings that move each voice as little as
// possible from the previously voiced chord.
type Leader struct {
	prev []int
	last time.Time
	now  func() time.Time
}

// NewLeader returns a leader with no previous-chord context.
func NewLeader() *Leader {
	return &Leader{now: time.Now}
}

// Reset forgets the previous chord. Called on key change, mode switch
// and panic.
func (l *Leader) Reset() {
	l.prev = nil
}

// Voice picks the voicing of the chord given by its ordered pitch
// classes, the root first. The first chord after a reset (or after the
// idle timeout) takes the first generated candidate; subsequent chords
// take the candidate with the smallest weighted movement from the
// previous one.
func (l *Leader) Voice(pitchClasses []int, baseOctave int) []int {
	t := l.now()
	if l.prev != nil && t.Sub(l.last) > idleTimeout {
		l.prev = nil
	}

	cands := candidates(pitchClasses, baseOctave)
	if len(cands) == 0 {
		// Degenerate input: fall back without touching context.
		return stacked(pitchClasses, baseOctave)
	}

	chosen := cands[0]
	if l.prev != nil {
		best := movement(cands[0], l.prev)
		for _, c := range cands[1:] {
			if s := movement(c, l.prev); s < best {
				chosen, best = c, s
			}
		}
	}

	l.prev = chosen
	l.last = t
	return chosen
}

// movement scores a candidate against the previous chord: each note's
// distance to its nearest previous note, doubled for middle voices.
func movement(candidate, prev []int) int {
	total := 0
	for i, n := range candidate {
		d := nearest(n, prev)
		if i != 0 && i != len(candidate)-1 {
			d *= 2
		}
		total += d
	}
	return total
}

func nearest(pitch int, notes []int) int {
	best := 1 << 30
	for _, n := range notes {
		d := pitch - n
		if d < 0 {
			d = -d
		}
		if d < best {
			best = d
		}
	}
	return best
}

// candidates generates voicings in a fixed order: ascending bass
// octave offset, then ascending middle offset, root position before
// the fifth-in-the-bass inversion, and the naive stacked rendering
// last. Ties in scoring resolve to the earliest generated.
func candidates(pitchClasses []int, baseOctave int) [][]int {
	if len(pitchClasses) == 0 {
		return nil
	}

	lowExtra := 0
	if baseOctave <= lowRegimeMax {
		lowExtra = 1
	}

	var out [][]int
	for _, bassOff := range []int{-1, 0, 1} {
		octave := baseOctave + bassOff
		for _, midOff := range []int{0, 1} {
			midShift := midOff + lowExtra

			rootBass := octave*12 + pitchClasses[0]
			if rootBass >= bassMin && rootBass <= bassMax {
				if c := assemble(pitchClasses, rootBass, midShift, lowExtra, false); c != nil {
					out = append(out, c)
				}
			}

			if len(pitchClasses) >= 3 {
				fifthBass := octave*12 + pitchClasses[2]
				if fifthBass >= bassMin && fifthBass <= bassMax {
					if c := assemble(pitchClasses, fifthBass, midShift, lowExtra, true); c != nil {
						out = append(out, c)
					}
				}
			}
		}
	}

	// The stacked rendering closes the list so the scored choice can
	// never move more than it. It skips the bass band but still has to
	// clear the global bounds.
	if s := stacked(pitchClasses, baseOctave); len(s) >= 3 && inBounds(s) {
		out = append(out, s)
	}
	return out
}

func inBounds(notes []int) bool {
	for _, n := range notes {
		if n < globalMin || n > globalMax {
			return false
		}
	}
	return true
}

// assemble builds one candidate: bass, middle voices strictly
// ascending from the middle-shift reference, extensions ascending
// below the ceiling, and a doubled root on top. Returns nil when the
// result is too small or escapes the global bounds.
func assemble(pitchClasses []int, bass, midShift, lowExtra int, inverted bool) []int {
	var middles, extensions []int
	if inverted {
		middles = pitchClasses[:2] // root and third above the fifth bass
	} else {
		end := len(pitchClasses)
		if end > 3 {
			end = 3
		}
		middles = pitchClasses[1:end]
	}
	if len(pitchClasses) > 3 {
		extensions = pitchClasses[3:]
	}

	notes := []int{bass}
	prev := bass + midShift*12
	for _, pc := range middles {
		p := classAbove(prev, pc)
		notes = append(notes, p)
		prev = p
	}
	for _, pc := range extensions {
		p := classAbove(prev, pc)
		if p > CeilingPitch {
			continue
		}
		notes = append(notes, p)
		prev = p
	}

	double := bass + 12*(1+lowExtra)
	for double <= prev {
		double += 12
	}
	if double <= CeilingPitch {
		notes = append(notes, double)
	}

	if len(notes) < 3 || !inBounds(notes) {
		return nil
	}
	return notes
}

// classAbove returns the smallest pitch of the given class strictly
// above prev.
func classAbove(prev, pitchClass int) int {
	delta := ((pitchClass-prev%12)%12 + 12) % 12
	if delta == 0 {
		delta = 12
	}
	return prev + delta
}
