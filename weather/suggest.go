package weather

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the closest provider or category name to input
// ok is false when nothing is within a plausible typo distance
func Suggest(input string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(input))
	if key == "" {
		return "", false
	}

	candidates := append(ProviderNames(), "None", "Atmospheric", "Other")
	best, bestDist := "", -1
	for _, cand := range candidates {
		d := levenshtein.ComputeDistance(key, strings.ToLower(cand))
		if bestDist < 0 || d < bestDist {
			best, bestDist = cand, d
		}
	}

	if bestDist > suggestLimit(len(best)) {
		return "", false
	}
	return best, true
}

// suggestLimit allows a transposition on short names, three edits on long ones
func suggestLimit(n int) int {
	if n <= 8 {
		return 2
	}
	return 3
}
