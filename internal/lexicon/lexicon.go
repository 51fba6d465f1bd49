// Package lexicon holds the immutable keyword tables that drive request
// normalization and action extraction: verb synonyms, target domain nouns,
// topic nouns, number words, and prepositions. A Lexicon is built once at
// construction time and is safe for concurrent use.
package lexicon

import (
	"strings"

	"github.com/quillview/studycore/internal/task"
)

// Kind classifies a lexicon entry.
type Kind int

const (
	KindVerb Kind = iota + 1
	KindTarget
	KindTopic
	KindNumber
)

// Entry is one recognized surface form.
type Entry struct {
	Surface string
	Kind    Kind

	Verb   task.Verb   // set when Kind == KindVerb
	Target task.Target // set when Kind == KindTarget
	Value  int         // set when Kind == KindNumber
}

// Lexicon is an immutable set of recognized words.
type Lexicon struct {
	entries  map[string]Entry
	fuzzable []string // surfaces eligible for fuzzy correction
	preps    map[string]bool
	stop     map[string]bool
}

var verbSynonyms = map[task.Verb][]string{
	task.Create: {"create", "make", "generate", "build", "add", "give", "write"},
	task.Delete: {"delete", "remove", "clear", "erase", "wipe"},
	task.Update: {"update", "revise", "refresh"},
}

var targetSynonyms = map[task.Target][]string{
	task.Notes:      {"notes", "note"},
	task.Flashcards: {"flashcards", "flashcard", "cards", "card", "flash"},
	task.Schedule:   {"schedule", "schedules", "planner", "timetable"},
	task.Fun:        {"fun", "joke", "jokes", "riddle", "riddles"},
	task.All:        {"all", "everything"},
}

// defaultTopics are domain nouns the normalizer can reassemble from split
// or misspelled tokens ("block cain" -> "blockchain").
var defaultTopics = []string{
	"blockchain", "javascript", "typescript", "python", "database",
	"algorithms", "networking",
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20,
}

var prepositions = []string{
	"about", "of", "on", "for", "from", "regarding", "concerning",
}

var stopwords = []string{
	"a", "an", "the", "my", "me", "some", "please", "i", "want", "need",
	"to", "new", "and", "or", "it", "them", "this", "that",
}

// Options extends the built-in tables. Extra surfaces are merged in; they
// never override built-in entries.
type Options struct {
	TargetVariants map[string][]string // canonical target name -> extra surfaces
	Topics         []string            // extra topic nouns
}

// New builds a Lexicon from the built-in tables plus the given extensions.
func New(opts Options) *Lexicon {
	lex := &Lexicon{
		entries: map[string]Entry{},
		preps:   map[string]bool{},
		stop:    map[string]bool{},
	}

	// Insertion order fixes the tie-break order of fuzzy matching, so the
	// tables are walked in a fixed sequence rather than map order.
	for _, verb := range []task.Verb{task.Create, task.Delete, task.Update} {
		for _, s := range verbSynonyms[verb] {
			lex.add(Entry{Surface: s, Kind: KindVerb, Verb: verb}, true)
		}
	}
	for _, target := range []task.Target{task.Notes, task.Flashcards, task.Schedule, task.Fun, task.All} {
		for _, s := range targetSynonyms[target] {
			lex.add(Entry{Surface: s, Kind: KindTarget, Target: target}, true)
		}
	}
	for _, s := range defaultTopics {
		lex.add(Entry{Surface: s, Kind: KindTopic}, true)
	}
	for s, n := range numberWords {
		// Number words are exact-match only: they are short and fuzzy
		// correction would misread ordinary words as counts.
		lex.add(Entry{Surface: s, Kind: KindNumber, Value: n}, false)
	}
	for _, s := range prepositions {
		lex.preps[s] = true
	}
	for _, s := range stopwords {
		lex.stop[s] = true
	}

	for name, surfaces := range opts.TargetVariants {
		var target task.Target
		if err := target.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
			continue
		}
		for _, s := range surfaces {
			lex.add(Entry{Surface: strings.ToLower(s), Kind: KindTarget, Target: target}, true)
		}
	}
	for _, s := range opts.Topics {
		lex.add(Entry{Surface: strings.ToLower(s), Kind: KindTopic}, true)
	}

	return lex
}

// Default builds the Lexicon with no extensions.
func Default() *Lexicon {
	return New(Options{})
}

func (l *Lexicon) add(e Entry, fuzzable bool) {
	if _, exists := l.entries[e.Surface]; exists {
		return
	}
	l.entries[e.Surface] = e
	if fuzzable {
		l.fuzzable = append(l.fuzzable, e.Surface)
	}
}

// Find returns the entry for an exact surface form.
func (l *Lexicon) Find(word string) (Entry, bool) {
	e, ok := l.entries[word]
	return e, ok
}

// FuzzySurfaces returns the surface forms eligible for fuzzy correction.
// The returned slice must not be modified.
func (l *Lexicon) FuzzySurfaces() []string {
	return l.fuzzable
}

// IsPreposition reports whether word introduces a topic phrase.
func (l *Lexicon) IsPreposition(word string) bool {
	return l.preps[word]
}

// IsStopword reports whether word is filler excluded from topics.
func (l *Lexicon) IsStopword(word string) bool {
	return l.stop[word]
}

// Number returns the value of a number word ("one".."twenty").
func (l *Lexicon) Number(word string) (int, bool) {
	n, ok := numberWords[word]
	return n, ok
}

// CanonicalTarget returns the canonical surface form for a target domain.
func (l *Lexicon) CanonicalTarget(t task.Target) string {
	return t.String()
}
