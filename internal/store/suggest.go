package store

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

const suggestThreshold = 0.6

// SuggestCategory returns the registered label closest to input, for
// nudging the user toward an existing category instead of minting a
// near-duplicate ("food" vs "Food", "Transprot" vs "Transport"). It
// reports false when nothing scores above the threshold or the input
// is already registered exactly.
func (s *Store) SuggestCategory(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" || s.registered(input) {
		return "", false
	}

	best := ""
	bestScore := 0.0
	for _, c := range s.categories {
		score := similarity(input, c)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	if bestScore < suggestThreshold {
		return "", false
	}
	return best, true
}

func similarity(a, b string) float64 {
	a = strings.ToUpper(a)
	b = strings.ToUpper(b)
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
