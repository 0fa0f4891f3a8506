package theory

import "testing"

func TestDegreeRoots(t *testing.T) {
	cMajor := NewKey(0, ModeMajor)
	wantMajor := []int{0, 2, 4, 5, 7, 9, 11}
	for d := 1; d <= 7; d++ {
		if got := cMajor.DegreeRoot(d); got != wantMajor[d-1] {
			t.Errorf("C major degree %d root = %d, want %d", d, got, wantMajor[d-1])
		}
	}

	aMinor := NewKey(9, ModeMinor)
	wantMinor := []int{9, 11, 0, 2, 4, 5, 7}
	for d := 1; d <= 7; d++ {
		if got := aMinor.DegreeRoot(d); got != wantMinor[d-1] {
			t.Errorf("A minor degree %d root = %d, want %d", d, got, wantMinor[d-1])
		}
	}
}

func TestDegreeRootContract(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for degree 0")
		}
	}()
	NewKey(0, ModeMajor).DegreeRoot(0)
}

func TestDiatonicRecipes(t *testing.T) {
	cMajor := NewKey(0, ModeMajor)
	wantMajor := []*ChordRecipe{Major, Minor, Minor, Major, Major, Minor, Diminished}
	for d := 1; d <= 7; d++ {
		if got := cMajor.DiatonicRecipe(d); got != wantMajor[d-1] {
			t.Errorf("major degree %d recipe = %s, want %s", d, got.Name, wantMajor[d-1].Name)
		}
	}

	aMinor := NewKey(9, ModeMinor)
	wantMinor := []*ChordRecipe{Minor, Diminished, Major, Minor, Minor, Major, Major}
	for d := 1; d <= 7; d++ {
		if got := aMinor.DiatonicRecipe(d); got != wantMinor[d-1] {
			t.Errorf("minor degree %d recipe = %s, want %s", d, got.Name, wantMinor[d-1].Name)
		}
	}
}

func TestRelativeAndParallel(t *testing.T) {
	cMajor := NewKey(0, ModeMajor)

	rel := cMajor.Relative()
	if rel.Root != 9 || rel.Mode != ModeMinor {
		t.Errorf("relative of C major = %s, want A minor", rel)
	}
	if back := rel.Relative(); back != cMajor {
		t.Errorf("relative round trip = %s, want C major", back)
	}

	par := cMajor.Parallel()
	if par.Root != 0 || par.Mode != ModeMinor {
		t.Errorf("parallel of C major = %s, want C minor", par)
	}
}

func TestKeyNames(t *testing.T) {
	if got := NewKey(7, ModeMajor).String(); got != "G major" {
		t.Errorf("String() = %q, want %q", got, "G major")
	}
	if got := NewKey(10, ModeMinor).String(); got != "A# minor" {
		t.Errorf("String() = %q, want %q", got, "A# minor")
	}
	if got := NewKey(-3, ModeMajor).Root; got != 9 {
		t.Errorf("NewKey(-3) root = %d, want 9", got)
	}
}
