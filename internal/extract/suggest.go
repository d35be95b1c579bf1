package extract

import (
	"fmt"

	"cdecl-generator/internal/header"
)

// maxSuggestDistance caps how far a candidate may be from the requested name
// before it stops being a plausible typo.
const maxSuggestDistance = 2

// suggest finds the symbol name closest to the requested one, for error
// messages on markers whose target does not exist.
func (p *Pass) suggest(name string) (string, bool) {
	best, bestDist := "", maxSuggestDistance+1

	for _, sym := range p.table.Symbols {
		if sym.Kind == header.SymbolMarker || sym.Name == name {
			continue
		}

		if d := levenshtein(name, sym.Name); d < bestDist {
			best, bestDist = sym.Name, d
		}
	}

	return best, best != ""
}

// didYouMean formats the suggestion as an error-message suffix, or returns
// the empty string when nothing is close enough.
func (p *Pass) didYouMean(name string) string {
	s, ok := p.suggest(name)
	if !ok {
		return ""
	}

	return fmt.Sprintf(" (did you mean %q?)", s)
}

// levenshtein computes the edit distance between two strings, using two
// rolling rows instead of the full matrix.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}
