package extractor

import (
	"strings"

	"groupscope/internal/groups"
)

// LineExtractor recognizes @group tags in line and block comments across
// languages with conventional comment markers.
type LineExtractor struct{}

// NewLineExtractor creates a line-comment extractor.
func NewLineExtractor() *LineExtractor {
	return &LineExtractor{}
}

// Extract scans the content line by line. A tag line must be a comment for
// the given language; the comment lines immediately following the tag (not
// containing another tag) extend the record's line numbers, so a record
// covers its whole comment block. Line numbers are 1-based.
func (e *LineExtractor) Extract(content []byte, languageID, filePath string) []groups.Record {
	markers, ok := lineMarkers[languageID]
	if !ok {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	var records []groups.Record

	for i := 0; i < len(lines); i++ {
		body, isComment := commentBody(lines[i], markers)
		if !isComment || !strings.Contains(body, "@group") {
			continue
		}

		path, description, parsed := parseTag(stripClosers(body))
		if !parsed {
			continue
		}

		lineNumbers := []int{i + 1}
		// Extend over the rest of the comment block.
		for j := i + 1; j < len(lines); j++ {
			next, stillComment := commentBody(lines[j], markers)
			if !stillComment || strings.Contains(next, "@group") {
				break
			}
			lineNumbers = append(lineNumbers, j+1)
			i = j
		}

		records = append(records, groups.Record{
			Functionality: path,
			Description:   description,
			FilePath:      filePath,
			LineNumbers:   lineNumbers,
		})
	}

	return records
}

// commentBody returns the text after the comment marker when the trimmed
// line starts with one of the language's markers.
func commentBody(line string, markers []string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, marker := range markers {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, marker)), true
		}
	}
	return "", false
}

// stripClosers removes trailing block-comment terminators from a tag line.
func stripClosers(s string) string {
	s = strings.TrimSpace(s)
	for _, closer := range []string{"*/", "-->"} {
		s = strings.TrimSpace(strings.TrimSuffix(s, closer))
	}
	return s
}
