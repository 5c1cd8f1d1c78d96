package groups

import (
	"strconv"
	"strings"
)

// PathSeparator is the literal token separating hierarchy segments in a
// functionality path (e.g. "Auth > Login > Validation").
const PathSeparator = " > "

// Record represents one occurrence of a @group tag in a scanned file.
type Record struct {
	Functionality string `json:"functionality"`          // ">"-delimited path, case preserved
	Description   string `json:"description,omitempty"`  // Optional free text after the colon
	FilePath      string `json:"filePath"`               // Absolute path of the owning file
	LineNumbers   []int  `json:"lineNumbers"`            // 1-based lines the comment block covers
	IsFavorite    bool   `json:"isFavorite"`             // User emphasis flag, mutable
}

// Key returns the favorite carry-over key for this record, in the form
// "filePath::functionality". It is the unit favorites are persisted under.
func (r Record) Key() string {
	return r.FilePath + "::" + r.Functionality
}

// identityKey returns the dedup identity of a record: the triple
// (functionality, filePath, lineNumbers). Functionality is compared
// case-insensitively; file paths are compared by exact string equality.
func (r Record) identityKey() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(r.Functionality))
	b.WriteString("|")
	b.WriteString(r.FilePath)
	for _, n := range r.LineNumbers {
		b.WriteString("|")
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// valid reports whether a record carries the minimum fields required to be
// indexed. Invalid records are silently dropped at the index boundary.
func (r Record) valid() bool {
	return r.FilePath != "" && strings.TrimSpace(r.Functionality) != ""
}

// IsDescendantOf reports whether the record's functionality is a proper
// descendant of the given path (e.g. "Auth > Login" descends from "Auth").
// The comparison is case-insensitive, matching functionality lookup.
func (r Record) IsDescendantOf(path string) bool {
	prefix := strings.ToLower(path) + PathSeparator
	return strings.HasPrefix(strings.ToLower(r.Functionality), prefix)
}

// matchesPath reports whether the record sits at the path itself or below it.
func (r Record) matchesPath(path string) bool {
	return strings.EqualFold(r.Functionality, path) || r.IsDescendantOf(path)
}
