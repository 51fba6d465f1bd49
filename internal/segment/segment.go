// Package segment splits normalized request text into independent clauses.
package segment

import (
	"strings"
	"unicode"

	"github.com/quillview/studycore/internal/lexicon"
)

// Segmenter splits text on the conjunction "and" and on sentence
// punctuation. Clauses are never empty and never overlap.
type Segmenter struct {
	lex *lexicon.Lexicon
}

// New creates a Segmenter over the given lexicon. The lexicon supplies the
// number-word table used by the quantity boundary guard.
func New(lex *lexicon.Lexicon) *Segmenter {
	return &Segmenter{lex: lex}
}

// Split returns the clauses of text in order. Input with no boundaries
// yields one clause equal to the whole input. An "and" directly following
// a quantity does not split, so phrases like "3 and a half" stay together.
func (s *Segmenter) Split(text string) []string {
	var clauses []string
	var cur []string

	flush := func() {
		if len(cur) > 0 {
			clauses = append(clauses, strings.Join(cur, " "))
			cur = nil
		}
	}

	for _, tok := range strings.Fields(text) {
		word, boundary := trimClausePunct(tok)
		if word == "and" && !s.quantityBefore(cur) {
			flush()
			continue
		}
		if word != "" {
			cur = append(cur, word)
		}
		if boundary {
			flush()
		}
	}
	flush()
	return clauses
}

// quantityBefore reports whether the last accumulated token is a number,
// which blocks splitting at the following "and".
func (s *Segmenter) quantityBefore(cur []string) bool {
	if len(cur) == 0 {
		return false
	}
	last := cur[len(cur)-1]
	if _, ok := s.lex.Number(last); ok {
		return true
	}
	for _, r := range last {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// trimClausePunct strips trailing clause punctuation and reports whether
// any was present.
func trimClausePunct(tok string) (string, bool) {
	trimmed := strings.TrimRight(tok, ".,;!?")
	return trimmed, trimmed != tok
}
