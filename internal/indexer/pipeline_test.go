package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"groupscope/internal/extractor"
	"groupscope/internal/groups"
	"groupscope/internal/workspace"
)

func newTestPipeline(t *testing.T, files map[string]string) (*Pipeline, *groups.Index, string) {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	ws, err := workspace.NewManager([]string{dir}, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	index := groups.NewIndex()
	return NewPipeline(ws, extractor.NewRegistry(), index), index, dir
}

func TestPipeline_ScanAll(t *testing.T) {
	p, index, _ := newTestPipeline(t, map[string]string{
		"auth.go":  "// @group Auth: token checks\npackage auth\n",
		"login.ts": "// @group Auth > Login\n// @group Auth > Logout\n",
		"empty.py": "print('no tags here')\n",
	})

	stats, err := p.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("ScanAll: %v", err)
	}

	if stats.FilesScanned != 3 {
		t.Errorf("FilesScanned = %d, want 3", stats.FilesScanned)
	}
	if stats.RecordsAdded != 3 {
		t.Errorf("RecordsAdded = %d, want 3", stats.RecordsAdded)
	}
	if stats.FilesWithNoRecords != 1 {
		t.Errorf("FilesWithNoRecords = %d, want 1", stats.FilesWithNoRecords)
	}
	if stats.RecordsByFileType["typescript"] != 2 {
		t.Errorf("RecordsByFileType = %v", stats.RecordsByFileType)
	}
	if got := len(index.AllRecords()); got != 3 {
		t.Errorf("index holds %d records, want 3", got)
	}
}

func TestPipeline_ScanAll_SkipsUnchanged(t *testing.T) {
	p, _, _ := newTestPipeline(t, map[string]string{
		"auth.go": "// @group Auth\npackage auth\n",
	})

	if _, err := p.ScanAll(context.Background()); err != nil {
		t.Fatalf("first ScanAll: %v", err)
	}
	stats, err := p.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("second ScanAll: %v", err)
	}
	if stats.FilesSkipped != 1 || stats.FilesScanned != 0 {
		t.Errorf("second scan: skipped=%d scanned=%d, want 1/0", stats.FilesSkipped, stats.FilesScanned)
	}
}

func TestPipeline_ScanFile_ReplacesOnChange(t *testing.T) {
	p, index, dir := newTestPipeline(t, map[string]string{
		"auth.go": "// @group Auth\npackage auth\n",
	})
	path := filepath.Join(dir, "auth.go")

	if _, err := p.ScanAll(context.Background()); err != nil {
		t.Fatalf("ScanAll: %v", err)
	}

	// Rewrite the file with a different tag; the old record must be replaced.
	if err := os.WriteFile(path, []byte("// @group Billing\npackage auth\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	added, ok, err := p.ScanPath(context.Background(), path)
	if err != nil || !ok {
		t.Fatalf("ScanPath: added=%d ok=%v err=%v", added, ok, err)
	}
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}

	names := index.DistinctFunctionalities()
	if len(names) != 1 || names[0] != "Billing" {
		t.Errorf("distinct = %v, want [Billing]", names)
	}
}

func TestPipeline_ScanPath_NotScannable(t *testing.T) {
	p, _, dir := newTestPipeline(t, map[string]string{
		"notes.txt": "plain text\n",
	})

	if _, ok, err := p.ScanPath(context.Background(), filepath.Join(dir, "notes.txt")); ok || err != nil {
		t.Errorf("ScanPath(txt) ok=%v err=%v, want not scannable", ok, err)
	}
	if _, ok, _ := p.ScanPath(context.Background(), "/outside/root.go"); ok {
		t.Error("path outside workspace reported scannable")
	}
}

func TestPipeline_RemoveFile(t *testing.T) {
	p, index, dir := newTestPipeline(t, map[string]string{
		"auth.go": "// @group Auth\npackage auth\n",
	})
	path := filepath.Join(dir, "auth.go")

	if _, err := p.ScanAll(context.Background()); err != nil {
		t.Fatalf("ScanAll: %v", err)
	}

	if removed := p.RemoveFile(path); !removed {
		t.Error("RemoveFile = false, want true")
	}
	if got := len(index.AllRecords()); got != 0 {
		t.Errorf("index holds %d records after removal", got)
	}
	if removed := p.RemoveFile(path); removed {
		t.Error("second RemoveFile = true, want no-op")
	}

	// Hash cache was dropped too: a rescan re-indexes the same content.
	added, ok, err := p.ScanPath(context.Background(), path)
	if err != nil || !ok || added != 1 {
		t.Errorf("rescan after removal: added=%d ok=%v err=%v", added, ok, err)
	}
}

func TestPipeline_ScanAll_Cancelled(t *testing.T) {
	p, _, _ := newTestPipeline(t, map[string]string{
		"auth.go": "// @group Auth\npackage auth\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := p.ScanAll(ctx)
	if err == nil {
		t.Fatal("expected a cancellation error")
	}
	if stats == nil {
		t.Fatal("partial stats must still be returned")
	}
	if last := p.LastStats(); last == nil {
		t.Error("cancelled scan should still record stats")
	}
}

func TestPipeline_LastStats(t *testing.T) {
	p, _, _ := newTestPipeline(t, map[string]string{
		"auth.go": "// @group Auth\npackage auth\n",
	})

	if p.LastStats() != nil {
		t.Error("LastStats before any scan should be nil")
	}
	if _, err := p.ScanAll(context.Background()); err != nil {
		t.Fatalf("ScanAll: %v", err)
	}

	last := p.LastStats()
	if last == nil || last.FilesScanned != 1 {
		t.Errorf("LastStats = %+v", last)
	}

	// Returned stats are a copy.
	last.FilesScanned = 99
	if p.LastStats().FilesScanned != 1 {
		t.Error("LastStats must return a copy")
	}
}
