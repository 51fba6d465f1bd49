// Package textnorm cleans and typo-corrects raw request text against the
// domain lexicon. Normalization never fails: tokens that map to nothing
// pass through untouched, and re-normalizing already-normalized text
// records no further corrections.
package textnorm

import (
	"strings"
	"unicode"

	"github.com/quillview/studycore/internal/lexicon"
	"github.com/quillview/studycore/internal/task"
)

// Rule identifiers recorded on corrections.
const (
	RuleLetterRun       = "letter-run"
	RuleFuzzyToken      = "fuzzy-token"
	RuleFuzzyWindow     = "fuzzy-window"
	RuleRedundantTarget = "redundant-target"
)

// Correction records one applied fix.
type Correction struct {
	Span        string `json:"span"`
	Replacement string `json:"replacement"`
	Rule        string `json:"rule"`
}

// Result is the corrected text plus the ordered corrections applied.
type Result struct {
	Text        string       `json:"text"`
	Corrections []Correction `json:"corrections,omitempty"`
}

// Normalizer corrects request text against an immutable lexicon.
type Normalizer struct {
	lex     *lexicon.Lexicon
	matcher Matcher
}

// New creates a Normalizer. A nil matcher defaults to EditDistanceMatcher.
func New(lex *lexicon.Lexicon, matcher Matcher) *Normalizer {
	if matcher == nil {
		matcher = EditDistanceMatcher{}
	}
	return &Normalizer{lex: lex, matcher: matcher}
}

// Normalize lower-cases, strips punctuation noise, and applies the
// correction passes in order: letter-run collapse, split-token reassembly,
// single-token fuzzy correction, and redundant target cleanup.
func (n *Normalizer) Normalize(text string) Result {
	toks := tokenize(text)
	var res Result

	toks = n.collapseRuns(toks, &res)
	toks = n.joinWindows(toks, &res)
	toks = n.fuzzyTokens(toks, &res)
	toks = n.dropRedundant(toks, &res)

	res.Text = render(toks)
	return res
}

type token struct {
	text  string
	punct bool
}

// tokenize lower-cases and splits text into word and sentence-punctuation
// tokens. Clause punctuation (.,;!?) is kept for the segmenter; everything
// else non-alphanumeric separates words and is dropped.
func tokenize(text string) []token {
	var toks []token
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, token{text: cur.String()})
			cur.Reset()
		}
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			cur.WriteRune(r)
		case r == '\'':
			// Apostrophes vanish without splitting the word.
		case r == '.' || r == ',' || r == ';' || r == '!' || r == '?':
			flush()
			toks = append(toks, token{text: string(r), punct: true})
		default:
			flush()
		}
	}
	flush()
	return toks
}

func render(toks []token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 && !t.punct {
			b.WriteByte(' ')
		}
		b.WriteString(t.text)
	}
	return b.String()
}

// collapseRuns fixes tokens whose runs of three or more identical letters
// hide a lexicon word ("flashhhh" -> "flash"). The collapsed form must hit
// the lexicon, exactly or fuzzily; otherwise the token stays as typed.
func (n *Normalizer) collapseRuns(toks []token, res *Result) []token {
	for i, t := range toks {
		if t.punct || !isAlpha(t.text) || maxRun(t.text) < 3 {
			continue
		}
		if fixed, ok := n.resolveCollapsed(t.text); ok {
			res.Corrections = append(res.Corrections, Correction{
				Span: t.text, Replacement: fixed, Rule: RuleLetterRun,
			})
			toks[i].text = fixed
		}
	}
	return toks
}

func (n *Normalizer) resolveCollapsed(word string) (string, bool) {
	single := squeezeRuns(word, 1)
	double := squeezeRuns(word, 2)
	for _, cand := range []string{single, double} {
		if _, ok := n.lex.Find(cand); ok {
			return cand, true
		}
	}
	for _, cand := range []string{single, double} {
		if s, ok := n.matcher.Best(cand, n.lex.FuzzySurfaces()); ok {
			return s, true
		}
	}
	return "", false
}

// joinWindows reassembles split misspellings across two adjacent tokens
// ("block cain" -> "blockchain"). A window is considered only when at
// least one side is unknown to the lexicon, so legitimate adjacent
// keywords are never merged here.
func (n *Normalizer) joinWindows(toks []token, res *Result) []token {
	var out []token
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if i+1 < len(toks) && n.windowable(t) && n.windowable(toks[i+1]) {
			next := toks[i+1]
			if n.known(t.text) && n.known(next.text) {
				out = append(out, t)
				continue
			}
			joined := t.text + next.text
			if fixed, ok := n.resolveJoined(joined); ok {
				res.Corrections = append(res.Corrections, Correction{
					Span: t.text + " " + next.text, Replacement: fixed, Rule: RuleFuzzyWindow,
				})
				out = append(out, token{text: fixed})
				i++
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func (n *Normalizer) resolveJoined(joined string) (string, bool) {
	if _, ok := n.lex.Find(joined); ok {
		return joined, true
	}
	return n.matcher.Best(joined, n.lex.FuzzySurfaces())
}

func (n *Normalizer) windowable(t token) bool {
	return !t.punct && isAlpha(t.text) &&
		!n.lex.IsPreposition(t.text) && !n.lex.IsStopword(t.text)
}

func (n *Normalizer) known(word string) bool {
	_, ok := n.lex.Find(word)
	return ok
}

// fuzzyTokens corrects remaining single-token misspellings.
func (n *Normalizer) fuzzyTokens(toks []token, res *Result) []token {
	for i, t := range toks {
		if t.punct || !isAlpha(t.text) || n.known(t.text) ||
			n.lex.IsPreposition(t.text) || n.lex.IsStopword(t.text) {
			continue
		}
		if s, ok := n.matcher.Best(t.text, n.lex.FuzzySurfaces()); ok {
			res.Corrections = append(res.Corrections, Correction{
				Span: t.text, Replacement: s, Rule: RuleFuzzyToken,
			})
			toks[i].text = s
		}
	}
	return toks
}

// dropRedundant collapses adjacent surface forms of the same target domain
// left behind by earlier fixes ("flash card", "flashcards card") into the
// single canonical noun.
func (n *Normalizer) dropRedundant(toks []token, res *Result) []token {
	var out []token
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if i+1 < len(toks) {
			if target, ok := n.sameTargetPair(t, toks[i+1]); ok {
				canonical := n.lex.CanonicalTarget(target)
				res.Corrections = append(res.Corrections, Correction{
					Span: t.text + " " + toks[i+1].text, Replacement: canonical, Rule: RuleRedundantTarget,
				})
				out = append(out, token{text: canonical})
				i++
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func (n *Normalizer) sameTargetPair(a, b token) (task.Target, bool) {
	if a.punct || b.punct {
		return 0, false
	}
	ea, ok := n.lex.Find(a.text)
	if !ok || ea.Kind != lexicon.KindTarget || ea.Target == task.All {
		return 0, false
	}
	eb, ok := n.lex.Find(b.text)
	if !ok || eb.Kind != lexicon.KindTarget || eb.Target != ea.Target {
		return 0, false
	}
	return ea.Target, true
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// maxRun returns the length of the longest run of one rune in s.
func maxRun(s string) int {
	var prev rune
	run, best := 0, 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			run = 1
			prev = r
		}
		if run > best {
			best = run
		}
	}
	return best
}

// squeezeRuns collapses every run longer than limit down to limit runes.
func squeezeRuns(s string, limit int) string {
	var b strings.Builder
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			run = 1
			prev = r
		}
		if run <= limit {
			b.WriteRune(r)
		}
	}
	return b.String()
}
