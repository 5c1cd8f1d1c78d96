package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFileName is the per-root ignore file consulted in addition to
// configured patterns.
const IgnoreFileName = ".groupscopeignore"

// Root is one workspace directory being scanned for group tags.
type Root struct {
	Name string // Base name of the root, for display
	Path string // Absolute root path
}

// Manager holds the configured workspace roots and their ignore matchers.
type Manager struct {
	roots    []Root
	matchers map[string]*ignore.GitIgnore // root path -> combined matcher
}

// NewManager validates the given root paths and compiles ignore matchers.
// Configured patterns apply to every root; a .groupscopeignore file at a
// root adds root-specific patterns.
func NewManager(rootPaths []string, ignorePatterns []string) (*Manager, error) {
	if len(rootPaths) == 0 {
		return nil, fmt.Errorf("at least one workspace root is required")
	}

	m := &Manager{
		matchers: make(map[string]*ignore.GitIgnore),
	}

	for _, rootPath := range rootPaths {
		abs, err := filepath.Abs(rootPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve workspace root %s: %w", rootPath, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("workspace root %s: %w", abs, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("workspace root %s is not a directory", abs)
		}

		lines := append([]string(nil), ignorePatterns...)
		if fileLines, err := readIgnoreFile(filepath.Join(abs, IgnoreFileName)); err == nil {
			lines = append(lines, fileLines...)
		}

		m.roots = append(m.roots, Root{Name: filepath.Base(abs), Path: abs})
		m.matchers[abs] = ignore.CompileIgnoreLines(lines...)
	}

	return m, nil
}

// Roots returns the configured workspace roots.
func (m *Manager) Roots() []Root {
	return m.roots
}

// ShouldIgnore reports whether a path relative to the given root matches
// the root's ignore patterns.
func (m *Manager) ShouldIgnore(rootPath, relPath string) bool {
	matcher, ok := m.matchers[rootPath]
	if !ok {
		return false
	}
	return matcher.MatchesPath(relPath)
}

// ContainsPath reports whether the absolute path lies under any configured
// root, and returns that root.
func (m *Manager) ContainsPath(absPath string) (Root, bool) {
	for _, root := range m.roots {
		rel, err := filepath.Rel(root.Path, absPath)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return root, true
		}
	}
	return Root{}, false
}

func readIgnoreFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
