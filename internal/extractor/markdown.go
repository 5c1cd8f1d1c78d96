package extractor

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"groupscope/internal/groups"
)

// MarkdownExtractor recognizes @group tags inside HTML comments in markdown
// documents (e.g. "<!-- @group Docs > Setup: install steps -->"). It parses
// the document with goldmark and inspects HTML blocks and inline raw HTML.
type MarkdownExtractor struct {
	parser goldmark.Markdown
}

// NewMarkdownExtractor creates a goldmark-backed markdown extractor.
func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{
		parser: goldmark.New(),
	}
}

// Extract parses the markdown AST and returns a record per HTML comment
// carrying a well-formed tag. Line numbers cover every line the comment
// block spans.
func (e *MarkdownExtractor) Extract(content []byte, languageID, filePath string) []groups.Record {
	if len(content) == 0 {
		return nil
	}

	reader := text.NewReader(content)
	doc := e.parser.Parser().Parse(reader)

	var records []groups.Record
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		var segments *text.Segments
		switch node := n.(type) {
		case *ast.HTMLBlock:
			segments = node.Lines()
		case *ast.RawHTML:
			segments = node.Segments
		default:
			return ast.WalkContinue, nil
		}
		if segments == nil || segments.Len() == 0 {
			return ast.WalkContinue, nil
		}

		var raw strings.Builder
		var lineNumbers []int
		for i := 0; i < segments.Len(); i++ {
			seg := segments.At(i)
			raw.Write(seg.Value(content))
			lineNumbers = append(lineNumbers, lineAt(content, seg.Start))
		}

		if rec, ok := commentRecord(raw.String(), lineNumbers, filePath); ok {
			records = append(records, rec)
		}
		return ast.WalkContinue, nil
	})

	return records
}

// commentRecord parses an HTML comment's text into a record.
func commentRecord(raw string, lineNumbers []int, filePath string) (groups.Record, bool) {
	if !strings.Contains(raw, "<!--") || !strings.Contains(raw, "@group") {
		return groups.Record{}, false
	}

	body := raw
	if start := strings.Index(body, "<!--"); start >= 0 {
		body = body[start+len("<!--"):]
	}
	if end := strings.Index(body, "-->"); end >= 0 {
		body = body[:end]
	}

	// Multi-line comments: the tag grammar is line-scoped.
	tagLine := ""
	for _, line := range strings.Split(body, "\n") {
		if strings.Contains(line, "@group") {
			tagLine = line
			break
		}
	}

	path, description, ok := parseTag(strings.TrimSpace(tagLine))
	if !ok {
		return groups.Record{}, false
	}
	return groups.Record{
		Functionality: path,
		Description:   description,
		FilePath:      filePath,
		LineNumbers:   dedupeLines(lineNumbers),
	}, true
}

// dedupeLines collapses repeated line numbers while preserving order.
func dedupeLines(lines []int) []int {
	seen := make(map[int]struct{}, len(lines))
	out := make([]int, 0, len(lines))
	for _, l := range lines {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// lineAt returns the 1-based line number of a byte offset.
func lineAt(content []byte, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return 1 + bytes.Count(content[:offset], []byte{'\n'})
}
