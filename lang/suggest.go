package lang

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxSuggestDistance is the Levenshtein-distance ceiling from §4.1 step 4:
// candidates farther than this from the offending name are not suggested.
const maxSuggestDistance = 3

// suggestName ranks catalog names against name using fuzzy subsequence
// matching (the same library the teacher's REPL uses to rank tab-completion
// candidates) and falls back to plain Levenshtein distance when fuzzy
// scoring finds nothing close enough. It returns "" when no candidate is
// within [maxSuggestDistance].
func suggestName(name string, names []string) string {
	if len(names) == 0 {
		return ""
	}

	upper := strings.ToUpper(name)

	matches := fuzzy.Find(upper, names)
	if len(matches) > 0 {
		best := matches[0]
		if levenshtein(upper, best.Str) <= maxSuggestDistance {
			return best.Str
		}
	}

	// Fuzzy subsequence matching can legitimately find nothing (e.g. the
	// typo reorders letters rather than dropping them); fall back to a
	// plain nearest-neighbor scan by edit distance.
	bestName := ""
	bestDist := maxSuggestDistance + 1

	for _, candidate := range names {
		d := levenshtein(upper, candidate)
		if d < bestDist {
			bestDist = d
			bestName = candidate
		}
	}

	if bestDist <= maxSuggestDistance {
		return bestName
	}

	return ""
}

// levenshtein computes the classic edit distance between a and b.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	if la == 0 {
		return lb
	}

	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)

	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i

		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost

			curr[j] = min3(del, ins, sub)
		}

		prev, curr = curr, prev
	}

	return prev[lb]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}

	if c < m {
		m = c
	}

	return m
}
