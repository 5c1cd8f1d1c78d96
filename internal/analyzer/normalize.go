package analyzer

import (
	"regexp"
	"sort"
	"strings"
)

// canonicalWords maps abbreviations and word-form variants to a canonical
// form so that names like "Auth Config" and "Authentication Configuration"
// normalize identically. Applied per whole word, after lower-casing.
var canonicalWords = map[string]string{
	"auth":           "authentication",
	"authn":          "authentication",
	"authz":          "authorization",
	"config":         "configuration",
	"configs":        "configuration",
	"cfg":            "configuration",
	"db":             "database",
	"init":           "initialization",
	"initialize":     "initialization",
	"initializing":   "initialization",
	"initialization": "initialization",
	"validate":       "validation",
	"validating":     "validation",
	"validated":      "validation",
	"validator":      "validation",
	"mgmt":           "management",
	"manager":        "management",
	"managing":       "management",
	"util":           "utilities",
	"utils":          "utilities",
	"utility":        "utilities",
	"sync":           "synchronization",
	"synchronize":    "synchronization",
	"synchronizing":  "synchronization",
	"msg":            "message",
	"msgs":           "message",
	"messages":       "message",
	"err":            "error",
	"errors":         "error",
	"handler":        "handling",
	"handlers":       "handling",
	"handle":         "handling",
	"loader":         "loading",
	"load":           "loading",
}

var wordSplitter = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize reduces a group name to a canonical comparison form: lower-case,
// expand abbreviations and word-form variants, then sort the words so
// "date time" and "time date" compare equal. Normalization is idempotent.
func Normalize(name string) string {
	words := wordSplitter.Split(strings.ToLower(name), -1)
	normalized := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		if canonical, ok := canonicalWords[word]; ok {
			word = canonical
		}
		normalized = append(normalized, word)
	}
	sort.Strings(normalized)
	return strings.Join(normalized, " ")
}

// SemanticallyIdentical reports whether two names normalize to the same
// form. A semantic match takes priority over raw edit-distance similarity.
func SemanticallyIdentical(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
