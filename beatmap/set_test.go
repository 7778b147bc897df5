package beatmap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func mapWith(title, artist, version string) *Beatmap {
	return &Beatmap{
		Metadata: Metadata{Title: title, Artist: artist, Version: version},
	}
}

func TestSetAddFillsEmptyScalars(t *testing.T) {
	s := NewSet(mapWith("A", "", "Easy"))
	if s.Title != "A" || s.Artist != "" {
		t.Fatalf("initial set = %+v", s)
	}

	s.Add(mapWith("A", "B", "Hard"))
	if s.Artist != "B" {
		t.Errorf("Artist = %q, want B (fills in once known)", s.Artist)
	}
	if s.Title != "A" {
		t.Errorf("Title = %q, want A (first value kept)", s.Title)
	}
	if len(s.Maps) != 2 {
		t.Errorf("maps = %d, want 2", len(s.Maps))
	}
}

func TestMergePrefersPrimaryNonEmpty(t *testing.T) {
	a := NewSet(mapWith("A", "", "Easy"))
	b := NewSet(mapWith("A", "B", "Hard"))

	m := Merge(a, b)
	if m.Title != "A" {
		t.Errorf("Title = %q, want A", m.Title)
	}
	if m.Artist != "B" {
		t.Errorf("Artist = %q, want B (empty primary yields to secondary)", m.Artist)
	}

	want := []string{"Easy", "Hard"}
	var got []string
	for k := range m.Maps {
		got = append(got, k)
	}
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("difficulty keys mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeSecondaryWinsOnKeyCollision(t *testing.T) {
	oldMap := mapWith("A", "B", "Insane")
	newMap := mapWith("A", "B", "Insane")
	newMap.Difficulty.OverallDifficulty = 9

	m := Merge(NewSet(oldMap), NewSet(newMap))
	if len(m.Maps) != 1 {
		t.Fatalf("maps = %d, want 1", len(m.Maps))
	}
	if got := m.Maps["Insane"].Difficulty.OverallDifficulty; got != 9 {
		t.Errorf("OverallDifficulty = %v, want the secondary's 9", got)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	a := NewSet(mapWith("A", "", "Easy"))
	b := NewSet(mapWith("A", "B", "Hard"))
	Merge(a, b)

	if len(a.Maps) != 1 || len(b.Maps) != 1 {
		t.Errorf("inputs mutated: a=%d b=%d maps", len(a.Maps), len(b.Maps))
	}
	if a.Artist != "" {
		t.Errorf("primary input mutated: Artist = %q", a.Artist)
	}
}
