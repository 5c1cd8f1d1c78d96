package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"groupscope/internal/extractor"
)

// ScannedFile is one file found during a workspace walk that has a
// recognized language.
type ScannedFile struct {
	Root       Root   // Workspace root the file belongs to
	RelPath    string // Relative path from the root, forward slashes
	AbsPath    string // Absolute file path
	LanguageID string // Detected language, also the index file-type key
}

// ScanAll walks every workspace root and returns the candidate files,
// skipping ignored paths and unrecognized extensions. Cancellation is
// checked per root and between directory entries via the walk callback.
func (m *Manager) ScanAll(ctx context.Context) ([]ScannedFile, error) {
	var files []ScannedFile

	for _, root := range m.roots {
		select {
		case <-ctx.Done():
			return files, ctx.Err()
		default:
		}

		err := filepath.Walk(root.Path, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return fmt.Errorf("failed to access path %s: %w", path, err)
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			rel, relErr := filepath.Rel(root.Path, path)
			if relErr != nil {
				return fmt.Errorf("failed to compute relative path for %s: %w", path, relErr)
			}
			rel = filepath.ToSlash(rel)

			if info.IsDir() {
				if info.Name() == ".git" || info.Name() == "node_modules" {
					return filepath.SkipDir
				}
				if rel != "." && m.ShouldIgnore(root.Path, rel) {
					return filepath.SkipDir
				}
				return nil
			}

			if m.ShouldIgnore(root.Path, rel) {
				return nil
			}

			lang, ok := extractor.LanguageForPath(path)
			if !ok {
				return nil
			}

			files = append(files, ScannedFile{
				Root:       root,
				RelPath:    rel,
				AbsPath:    path,
				LanguageID: lang,
			})
			return nil
		})

		if err != nil {
			return files, fmt.Errorf("failed to scan workspace %s: %w", root.Name, err)
		}
	}

	return files, nil
}

// ResolveFile builds a ScannedFile for a single absolute path, when it lies
// under a configured root, is not ignored, and has a recognized language.
func (m *Manager) ResolveFile(absPath string) (ScannedFile, bool) {
	root, ok := m.ContainsPath(absPath)
	if !ok {
		return ScannedFile{}, false
	}

	rel, err := filepath.Rel(root.Path, absPath)
	if err != nil {
		return ScannedFile{}, false
	}
	rel = filepath.ToSlash(rel)

	if m.ShouldIgnore(root.Path, rel) {
		return ScannedFile{}, false
	}

	lang, ok := extractor.LanguageForPath(absPath)
	if !ok {
		return ScannedFile{}, false
	}

	return ScannedFile{Root: root, RelPath: rel, AbsPath: absPath, LanguageID: lang}, true
}
