// Package parse classifies normalized request clauses into structured
// actions: a verb, a target domain, a topic, and a count.
package parse

import (
	"strconv"
	"strings"

	"github.com/quillview/studycore/internal/lexicon"
	"github.com/quillview/studycore/internal/task"
)

// Extractor classifies clauses against the domain lexicon. It is pure and
// safe for concurrent use.
type Extractor struct {
	lex *lexicon.Lexicon
}

// New creates an Extractor over the given lexicon.
func New(lex *lexicon.Lexicon) *Extractor {
	return &Extractor{lex: lex}
}

// Extract classifies one clause. prev carries the verb of the preceding
// clause so trailing fragments inherit it ("delete notes and flashcards"
// splits into a verbless second clause). Pass zero when there is no
// preceding clause.
//
// The second return value is false only for pure noise: a clause with
// neither a verb nor a target keyword.
func (e *Extractor) Extract(clause string, prev task.Verb) (task.Action, bool) {
	words := strings.Fields(clause)

	var (
		verb     task.Verb
		target   task.Target
		sawAll   bool
		count    int
		prepIdx  = -1
		consumed = make([]bool, len(words))
	)

	for i, w := range words {
		if prepIdx >= 0 {
			break
		}
		if entry, ok := e.lex.Find(w); ok {
			switch entry.Kind {
			case lexicon.KindVerb:
				if verb == 0 {
					verb = entry.Verb
					consumed[i] = true
				}
				continue
			case lexicon.KindTarget:
				if entry.Target == task.All {
					sawAll = true
					consumed[i] = true
				} else if target == 0 {
					target = entry.Target
					consumed[i] = true
				}
				continue
			case lexicon.KindNumber:
				if count == 0 {
					count = entry.Value
					consumed[i] = true
				}
				continue
			}
		}
		if n, ok := parseInt(w); ok {
			if count == 0 {
				count = n
			}
			consumed[i] = true
			continue
		}
		if e.lex.IsPreposition(w) && prepIdx < 0 {
			prepIdx = i
		}
	}

	hasKeyword := verb != 0 || target != 0 || sawAll
	if !hasKeyword {
		return task.Action{}, false
	}

	if verb == 0 {
		switch {
		case count > 0 && target != 0:
			// A bare count+noun phrase is an implicit create.
			verb = task.Create
		case prev != 0:
			verb = prev
		default:
			verb = task.Create
		}
	}

	if target == 0 {
		if sawAll || verb != task.Create {
			// A delete or update with no specific target means everything.
			target = task.All
		} else {
			// Creation with no domain noun lands in notes.
			target = task.Notes
		}
	}
	if verb == task.Create && target == task.All {
		return task.Action{}, false
	}

	topic := e.topic(words, consumed, prepIdx)
	if topic == "" && verb == task.Create {
		topic = "general"
	}

	if count < 1 {
		count = 1
	}

	return task.Action{Verb: verb, Target: target, Topic: topic, Count: count}, true
}

// topic gathers the topic phrase: everything after the first preposition,
// or the leftover words when no preposition is present.
func (e *Extractor) topic(words []string, consumed []bool, prepIdx int) string {
	var parts []string
	if prepIdx >= 0 {
		for _, w := range words[prepIdx+1:] {
			if e.lex.IsStopword(w) {
				continue
			}
			parts = append(parts, w)
		}
		return strings.Join(parts, " ")
	}

	for i, w := range words {
		if consumed[i] || e.lex.IsStopword(w) || e.lex.IsPreposition(w) {
			continue
		}
		if entry, ok := e.lex.Find(w); ok && entry.Kind != lexicon.KindTopic {
			continue
		}
		parts = append(parts, w)
	}
	return strings.Join(parts, " ")
}

func parseInt(w string) (int, bool) {
	n, err := strconv.Atoi(w)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
