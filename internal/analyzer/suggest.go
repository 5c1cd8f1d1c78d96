package analyzer

import (
	"sort"
	"strings"
	"unicode"

	"groupscope/internal/groups"
)

// DefaultThreshold is the similarity score above which two names are
// considered consolidation candidates.
const DefaultThreshold = 0.75

// maxSuggestionConfidence caps hierarchy suggestion confidence.
const maxSuggestionConfidence = 0.95

// Suggestion proposes consolidating two similar group names into one.
type Suggestion struct {
	Names      [2]string `json:"names"`
	Suggested  string    `json:"suggested"`
	Confidence float64   `json:"confidence"`
	Reason     string    `json:"reason"`
}

// HierarchySuggestion proposes grouping flat names under a shared parent.
type HierarchySuggestion struct {
	Parent     string            `json:"parent"`
	Renames    map[string]string `json:"renames"` // original name -> "Parent > Remainder"
	Confidence float64           `json:"confidence"`
}

// FindSimilarGroups compares every pair of names and returns consolidation
// suggestions. A semantic match via normalization scores confidence 1.0 and
// takes priority over raw edit distance; otherwise the pair must exceed the
// threshold. counts supplies per-name record usage for best-name selection.
// Suggestions never mutate the index; consolidation is applied externally by
// editing source and rescanning.
func FindSimilarGroups(names []string, counts map[string]int, threshold float64) []Suggestion {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	var suggestions []Suggestion
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			a, b := sorted[i], sorted[j]
			if strings.EqualFold(a, b) {
				continue
			}
			if SemanticallyIdentical(a, b) {
				suggestions = append(suggestions, Suggestion{
					Names:      [2]string{a, b},
					Suggested:  BestName(a, b, counts),
					Confidence: 1.0,
					Reason:     "semantically identical after normalization",
				})
				continue
			}
			if score := Similarity(a, b); score >= threshold {
				suggestions = append(suggestions, Suggestion{
					Names:      [2]string{a, b},
					Suggested:  BestName(a, b, counts),
					Confidence: score,
					Reason:     "edit-distance similarity",
				})
			}
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	return suggestions
}

// BestName picks which of two similar names to keep: the one with strictly
// more existing usages, then the longer string, then the lexicographically
// smaller one as a deterministic fallback.
func BestName(a, b string, counts map[string]int) string {
	if counts[a] > counts[b] {
		return a
	}
	if counts[b] > counts[a] {
		return b
	}
	if len(a) != len(b) {
		if len(a) > len(b) {
			return a
		}
		return b
	}
	if a < b {
		return a
	}
	return b
}

// SuggestHierarchy groups flat names (no existing ">" separator) by shared
// normalized word prefixes and proposes a parent segment for any prefix
// shared by two or more names. Longer prefixes are claimed first; a name
// already claimed by a longer prefix is not reused. Confidence scales with
// the number of names sharing the prefix, capped at 0.95.
func SuggestHierarchy(names []string) []HierarchySuggestion {
	var flat []string
	for _, name := range names {
		if !strings.Contains(name, ">") && len(strings.Fields(name)) > 1 {
			flat = append(flat, name)
		}
	}
	sort.Strings(flat)

	claimed := make(map[string]bool)
	var suggestions []HierarchySuggestion

	for prefixLen := 3; prefixLen >= 1; prefixLen-- {
		// key: normalized prefix -> names sharing it
		byPrefix := make(map[string][]string)
		for _, name := range flat {
			if claimed[name] {
				continue
			}
			words := strings.Fields(name)
			if len(words) <= prefixLen {
				continue // no remainder left to demote
			}
			key := Normalize(strings.Join(words[:prefixLen], " "))
			byPrefix[key] = append(byPrefix[key], name)
		}

		keys := make([]string, 0, len(byPrefix))
		for key := range byPrefix {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			members := byPrefix[key]
			if len(members) < 2 {
				continue
			}

			parent := titleCase(strings.Join(strings.Fields(members[0])[:prefixLen], " "))
			renames := make(map[string]string, len(members))
			for _, name := range members {
				words := strings.Fields(name)
				remainder := titleCase(strings.Join(words[prefixLen:], " "))
				renames[name] = parent + groups.PathSeparator + remainder
				claimed[name] = true
			}

			confidence := 0.5 + 0.15*float64(len(members))
			if confidence > maxSuggestionConfidence {
				confidence = maxSuggestionConfidence
			}
			suggestions = append(suggestions, HierarchySuggestion{
				Parent:     parent,
				Renames:    renames,
				Confidence: confidence,
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}
		return suggestions[i].Parent < suggestions[j].Parent
	})
	return suggestions
}

// titleCase capitalizes the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
