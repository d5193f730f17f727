package github

import "github.com/antzucaro/matchr"

// minSimilarity is the Jaro-Winkler score below which no suggestion is made.
const minSimilarity = 0.8

// SuggestTitle returns the candidate closest to want, for "did you mean"
// hints after a failed milestone lookup.
func SuggestTitle(want string, candidates []string) (string, bool) {
	var best string
	var bestScore float64
	for _, c := range candidates {
		score := matchr.JaroWinkler(want, c, false)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < minSimilarity {
		return "", false
	}
	return best, true
}
