package textnorm

// Matcher finds the closest acceptable lexicon surface for a word. The
// matching strategy is pluggable so lexicon content and matching policy can
// be tested independently.
type Matcher interface {
	// Best returns the closest surface to word from surfaces, and whether
	// any surface cleared the acceptance threshold. Ties keep the earliest
	// surface in the slice.
	Best(word string, surfaces []string) (string, bool)
}

// EditDistanceMatcher matches by Levenshtein distance with a length-banded
// acceptance budget: very short words match only exactly, longer words
// tolerate proportionally more edits.
type EditDistanceMatcher struct{}

// Best implements Matcher.
func (EditDistanceMatcher) Best(word string, surfaces []string) (string, bool) {
	budget := distanceBudget(len(word))
	if budget == 0 {
		return "", false
	}

	best := ""
	bestDist := budget + 1
	for _, s := range surfaces {
		if diff := len(s) - len(word); diff > bestDist || -diff > bestDist {
			continue
		}
		if d := levenshtein(word, s); d < bestDist {
			bestDist = d
			best = s
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// distanceBudget returns the maximum accepted edit distance for a word of
// the given length. Words of three letters or fewer never fuzzy-match:
// the false-positive rate on short topic words ("car" vs "card") is too
// high to allow any edits.
func distanceBudget(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	case length <= 10:
		return 2
	default:
		return 3
	}
}

// levenshtein computes the edit distance between two strings using two
// rolling rows.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
