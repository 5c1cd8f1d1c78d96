package extractor

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_extractor.go -package=mocks groupscope/internal/extractor Extractor

import (
	"path/filepath"
	"regexp"
	"strings"

	"groupscope/internal/groups"
)

// Extractor produces group records from a file's content. Implementations
// are best-effort: malformed or unrecognized tags are omitted, never
// reported as errors.
type Extractor interface {
	Extract(content []byte, languageID, filePath string) []groups.Record
}

// tagPattern matches the tag grammar: "@group <path>[: <description>]".
var tagPattern = regexp.MustCompile(`@group\s+([^:]+?)(?:\s*:\s*(.*))?\s*$`)

// languageByExtension maps file extensions to language IDs. The language ID
// doubles as the index's file-type bucket key.
var languageByExtension = map[string]string{
	".go":   "go",
	".ts":   "typescript",
	".tsx":  "typescriptreact",
	".js":   "javascript",
	".jsx":  "javascriptreact",
	".py":   "python",
	".rb":   "ruby",
	".java": "java",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".hpp":  "cpp",
	".cs":   "csharp",
	".rs":   "rust",
	".kt":   "kotlin",
	".php":  "php",
	".sh":   "shellscript",
	".yaml": "yaml",
	".yml":  "yaml",
	".sql":  "sql",
	".lua":  "lua",
	".md":   "markdown",
	".html": "html",
	".css":  "css",
}

// lineMarkers maps a language ID to the comment markers a tag line may
// start with. Languages with block comments include the continuation
// marker "*" so JSDoc-style bodies are recognized.
var lineMarkers = map[string][]string{
	"go":              {"//"},
	"typescript":      {"//", "*", "/*"},
	"typescriptreact": {"//", "*", "/*"},
	"javascript":      {"//", "*", "/*"},
	"javascriptreact": {"//", "*", "/*"},
	"java":            {"//", "*", "/*"},
	"c":               {"//", "*", "/*"},
	"cpp":             {"//", "*", "/*"},
	"csharp":          {"//"},
	"rust":            {"//"},
	"kotlin":          {"//", "*", "/*"},
	"php":             {"//", "#", "*", "/*"},
	"python":          {"#"},
	"ruby":            {"#"},
	"shellscript":     {"#"},
	"yaml":            {"#"},
	"sql":             {"--"},
	"lua":             {"--"},
	"html":            {"<!--"},
	"css":             {"*", "/*"},
}

// LanguageForPath returns the language ID for a file path, or false when
// the extension is not recognized.
func LanguageForPath(path string) (string, bool) {
	lang, ok := languageByExtension[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// Registry selects the extractor for a language.
type Registry struct {
	line     *LineExtractor
	markdown *MarkdownExtractor
}

// NewRegistry creates a registry with the default extractors.
func NewRegistry() *Registry {
	return &Registry{
		line:     NewLineExtractor(),
		markdown: NewMarkdownExtractor(),
	}
}

// ForLanguage returns the extractor for a language ID, or nil when the
// language has no comment syntax registered.
func (r *Registry) ForLanguage(languageID string) Extractor {
	if languageID == "markdown" {
		return r.markdown
	}
	if _, ok := lineMarkers[languageID]; ok {
		return r.line
	}
	return nil
}

// parseTag parses one candidate tag string (already stripped of comment
// delimiters) into a canonical path and description. The path is
// canonicalized by splitting on ">" and rejoining trimmed segments with
// " > ". Returns ok=false for lines without a well-formed tag.
func parseTag(s string) (path, description string, ok bool) {
	m := tagPattern.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}

	segments := strings.Split(m[1], ">")
	cleaned := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			cleaned = append(cleaned, seg)
		}
	}
	if len(cleaned) == 0 {
		return "", "", false
	}

	return strings.Join(cleaned, groups.PathSeparator), strings.TrimSpace(m[2]), true
}
