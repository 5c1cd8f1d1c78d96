package analyzer

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Similarity returns the normalized Levenshtein similarity between two
// names, compared lower-cased: 1 - distance/max(len). Identical strings
// score 1.0; the function is symmetric.
func Similarity(a, b string) float64 {
	la := strings.ToLower(a)
	lb := strings.ToLower(b)
	if la == lb {
		return 1.0
	}

	maxLen := len([]rune(la))
	if l := len([]rune(lb)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(la, lb)
	return 1.0 - float64(distance)/float64(maxLen)
}
