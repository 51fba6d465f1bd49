package lexicon

import (
	"testing"

	"github.com/quillview/studycore/internal/task"
)

func TestFind(t *testing.T) {
	lex := Default()

	tests := []struct {
		word string
		kind Kind
	}{
		{"create", KindVerb},
		{"wipe", KindVerb},
		{"flashcards", KindTarget},
		{"card", KindTarget},
		{"everything", KindTarget},
		{"blockchain", KindTopic},
		{"seven", KindNumber},
	}
	for _, tt := range tests {
		e, ok := lex.Find(tt.word)
		if !ok {
			t.Errorf("Find(%q) missed", tt.word)
			continue
		}
		if e.Kind != tt.kind {
			t.Errorf("Find(%q).Kind = %v, want %v", tt.word, e.Kind, tt.kind)
		}
	}

	if _, ok := lex.Find("react"); ok {
		t.Error("free-form topics must not be lexicon entries")
	}
}

func TestVerbAndTargetMapping(t *testing.T) {
	lex := Default()

	e, ok := lex.Find("remove")
	if !ok || e.Verb != task.Delete {
		t.Errorf("remove = %+v, want delete verb", e)
	}
	e, ok = lex.Find("give")
	if !ok || e.Verb != task.Create {
		t.Errorf("give = %+v, want create verb", e)
	}
	e, ok = lex.Find("card")
	if !ok || e.Target != task.Flashcards {
		t.Errorf("card = %+v, want flashcards target", e)
	}
	e, ok = lex.Find("all")
	if !ok || e.Target != task.All {
		t.Errorf("all = %+v, want all target", e)
	}
}

func TestNumbers(t *testing.T) {
	lex := Default()

	if n, ok := lex.Number("twenty"); !ok || n != 20 {
		t.Errorf("Number(twenty) = %d, %v", n, ok)
	}
	if _, ok := lex.Number("thirty"); ok {
		t.Error("Number(thirty) should miss")
	}
}

func TestFuzzySurfacesExcludesNumbers(t *testing.T) {
	lex := Default()

	for _, s := range lex.FuzzySurfaces() {
		e, ok := lex.Find(s)
		if !ok {
			t.Fatalf("fuzzable surface %q has no entry", s)
		}
		if e.Kind == KindNumber {
			t.Errorf("number word %q must not be fuzzy-matched", s)
		}
	}
}

func TestFuzzySurfacesOrderStable(t *testing.T) {
	a := Default().FuzzySurfaces()
	b := Default().FuzzySurfaces()

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("order differs at %d: %q vs %q", i, a[i], b[i])
		}
	}
	// Multi-surface targets keep their declared order, which decides fuzzy
	// tie-breaks.
	idx := map[string]int{}
	for i, s := range a {
		idx[s] = i
	}
	if idx["flashcards"] > idx["flashcard"] {
		t.Error("flashcards must precede flashcard")
	}
	if idx["notes"] > idx["note"] {
		t.Error("notes must precede note")
	}
}

func TestStopwordsAndPrepositions(t *testing.T) {
	lex := Default()

	for _, w := range []string{"about", "of", "on", "for"} {
		if !lex.IsPreposition(w) {
			t.Errorf("IsPreposition(%q) = false", w)
		}
	}
	for _, w := range []string{"my", "the", "please", "and"} {
		if !lex.IsStopword(w) {
			t.Errorf("IsStopword(%q) = false", w)
		}
	}
	if lex.IsStopword("react") {
		t.Error("topic words are not stopwords")
	}
}

func TestOptionsExtendTables(t *testing.T) {
	lex := New(Options{
		TargetVariants: map[string][]string{"flashcards": {"decks"}},
		Topics:         []string{"Chemistry"},
	})

	e, ok := lex.Find("decks")
	if !ok || e.Target != task.Flashcards {
		t.Errorf("decks = %+v, want flashcards target", e)
	}
	e, ok = lex.Find("chemistry")
	if !ok || e.Kind != KindTopic {
		t.Errorf("chemistry = %+v, want topic", e)
	}

	// Extensions never override built-ins.
	lex = New(Options{TargetVariants: map[string][]string{"notes": {"card"}}})
	e, _ = lex.Find("card")
	if e.Target != task.Flashcards {
		t.Errorf("card = %+v, built-in mapping must win", e)
	}
}
