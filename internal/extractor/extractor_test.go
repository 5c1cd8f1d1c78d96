package extractor

import (
	"reflect"
	"testing"

	"groupscope/internal/groups"
)

func TestLanguageForPath(t *testing.T) {
	tests := []struct {
		path     string
		wantLang string
		wantOK   bool
	}{
		{"/src/main.go", "go", true},
		{"/src/App.TSX", "typescriptreact", true},
		{"/docs/readme.md", "markdown", true},
		{"/src/schema.sql", "sql", true},
		{"/assets/logo.png", "", false},
		{"Makefile", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lang, ok := LanguageForPath(tt.path)
			if lang != tt.wantLang || ok != tt.wantOK {
				t.Errorf("LanguageForPath(%q) = (%q, %v), want (%q, %v)",
					tt.path, lang, ok, tt.wantLang, tt.wantOK)
			}
		})
	}
}

func TestRegistry_ForLanguage(t *testing.T) {
	registry := NewRegistry()

	if _, ok := registry.ForLanguage("markdown").(*MarkdownExtractor); !ok {
		t.Error("markdown should resolve to the markdown extractor")
	}
	if _, ok := registry.ForLanguage("go").(*LineExtractor); !ok {
		t.Error("go should resolve to the line extractor")
	}
	if got := registry.ForLanguage("binary"); got != nil {
		t.Errorf("unknown language should resolve to nil, got %T", got)
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantPath string
		wantDesc string
		wantOK   bool
	}{
		{"simple", "@group Auth", "Auth", "", true},
		{"with description", "@group Auth: token checks", "Auth", "token checks", true},
		{"nested path", "@group Auth > Login: form", "Auth > Login", "form", true},
		{"separator canonicalized", "@group Auth>Login >  Validation", "Auth > Login > Validation", "", true},
		{"trailing whitespace", "@group Billing   ", "Billing", "", true},
		{"no name", "@group", "", "", false},
		{"colon immediately", "@group : orphan description", "", "", false},
		{"no tag at all", "just a comment", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, desc, ok := parseTag(tt.in)
			if path != tt.wantPath || desc != tt.wantDesc || ok != tt.wantOK {
				t.Errorf("parseTag(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.in, path, desc, ok, tt.wantPath, tt.wantDesc, tt.wantOK)
			}
		})
	}
}

func TestLineExtractor_GoComments(t *testing.T) {
	content := []byte(`package auth

// @group Auth > Login: credential checks
func Login() {}

x := "@group NotATag inside a string literal"
`)

	records := NewLineExtractor().Extract(content, "go", "/src/auth.go")
	want := []groups.Record{{
		Functionality: "Auth > Login",
		Description:   "credential checks",
		FilePath:      "/src/auth.go",
		LineNumbers:   []int{3},
	}}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records = %+v, want %+v", records, want)
	}
}

func TestLineExtractor_BlockCommentContinuation(t *testing.T) {
	content := []byte(`/* @group Payments: stripe integration
 * covers charge creation
 */
function charge() {}
`)

	records := NewLineExtractor().Extract(content, "javascript", "/src/pay.js")
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Functionality != "Payments" || rec.Description != "stripe integration" {
		t.Errorf("record = %+v", rec)
	}
	// The whole comment block is covered, not just the tag line.
	if !reflect.DeepEqual(rec.LineNumbers, []int{1, 2, 3}) {
		t.Errorf("LineNumbers = %v, want [1 2 3]", rec.LineNumbers)
	}
}

func TestLineExtractor_AdjacentTagsSplitBlocks(t *testing.T) {
	content := []byte(`# @group Import
# @group Export
`)

	records := NewLineExtractor().Extract(content, "python", "/src/io.py")
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Functionality != "Import" || !reflect.DeepEqual(records[0].LineNumbers, []int{1}) {
		t.Errorf("first record = %+v", records[0])
	}
	if records[1].Functionality != "Export" || !reflect.DeepEqual(records[1].LineNumbers, []int{2}) {
		t.Errorf("second record = %+v", records[1])
	}
}

func TestLineExtractor_MalformedTagsSkipped(t *testing.T) {
	content := []byte(`// @group
// @group : description without a name
-- @group SQL marker in a go file
`)

	if records := NewLineExtractor().Extract(content, "go", "/src/x.go"); len(records) != 0 {
		t.Errorf("got %d records, want 0: %+v", len(records), records)
	}
}

func TestLineExtractor_HTMLComment(t *testing.T) {
	content := []byte(`<html>
<!-- @group Docs > Layout: page shell -->
</html>
`)

	records := NewLineExtractor().Extract(content, "html", "/site/index.html")
	want := []groups.Record{{
		Functionality: "Docs > Layout",
		Description:   "page shell",
		FilePath:      "/site/index.html",
		LineNumbers:   []int{2},
	}}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records = %+v, want %+v", records, want)
	}
}

func TestLineExtractor_UnknownLanguage(t *testing.T) {
	if records := NewLineExtractor().Extract([]byte("// @group X"), "binary", "/x"); records != nil {
		t.Errorf("records = %+v, want nil", records)
	}
}

func TestMarkdownExtractor(t *testing.T) {
	content := []byte(`# Setup

<!-- @group Docs > Setup: install steps -->

Follow the instructions below.
`)

	records := NewMarkdownExtractor().Extract(content, "markdown", "/docs/setup.md")
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1: %+v", len(records), records)
	}
	rec := records[0]
	if rec.Functionality != "Docs > Setup" || rec.Description != "install steps" {
		t.Errorf("record = %+v", rec)
	}
	if len(rec.LineNumbers) == 0 || rec.LineNumbers[0] != 3 {
		t.Errorf("LineNumbers = %v, want to start at line 3", rec.LineNumbers)
	}
}

func TestMarkdownExtractor_IgnoresPlainText(t *testing.T) {
	content := []byte(`The @group tag only counts inside HTML comments.

<!-- a comment without any tag -->
`)

	if records := NewMarkdownExtractor().Extract(content, "markdown", "/docs/x.md"); len(records) != 0 {
		t.Errorf("got %d records, want 0: %+v", len(records), records)
	}
}

func TestMarkdownExtractor_Empty(t *testing.T) {
	if records := NewMarkdownExtractor().Extract(nil, "markdown", "/docs/empty.md"); records != nil {
		t.Errorf("records = %+v, want nil", records)
	}
}
